package models

// ComChave é implementado pelos registros que possuem chave natural.
type ComChave interface {
	ChaveNatural() string
}

// Deduplicar colapsa linhas com a mesma chave natural: vale o último valor,
// na posição da primeira ocorrência. IDs de entrada são descartados.
func Deduplicar[T ComChave](lista []T, zerarID func(*T)) []T {
	pos := make(map[string]int, len(lista))
	out := make([]T, 0, len(lista))
	for _, item := range lista {
		if zerarID != nil {
			zerarID(&item)
		}
		k := item.ChaveNatural()
		if i, ok := pos[k]; ok {
			out[i] = item
			continue
		}
		pos[k] = len(out)
		out = append(out, item)
	}
	return out
}
