package inspecao

import (
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/corregedoria/api-inspecoes/internal/models"
)

// Criterios do filtro. Campo vazio/nil = sem restrição.
// Entre campos vale E; dentro de um campo multivalorado vale OU.
type Criterios struct {
	Unidade         []string
	Departamento    []string
	NaoConformidade []string
	Ano             *int
	DataInicial     *time.Time
	DataFinal       *time.Time
	StatusPrazo     string
}

// Vazio informa se nenhum critério foi informado.
func (c Criterios) Vazio() bool {
	return len(c.Unidade) == 0 && len(c.Departamento) == 0 && len(c.NaoConformidade) == 0 &&
		c.Ano == nil && c.DataInicial == nil && c.DataFinal == nil && c.StatusPrazo == ""
}

// Filtrar devolve as inspeções que satisfazem todos os critérios informados.
// A entrada não é alterada.
func Filtrar(todas []models.Inspecao, c Criterios) []models.Inspecao {
	out := make([]models.Inspecao, 0, len(todas))
	if c.Vazio() {
		return append(out, todas...)
	}

	unidades := conjunto(c.Unidade)
	departamentos := conjunto(c.Departamento)
	naoConformidades := conjunto(c.NaoConformidade)

	var inicio, fim time.Time
	if c.DataInicial != nil {
		inicio = models.Dia(*c.DataInicial)
	}
	if c.DataFinal != nil {
		fim = models.Dia(*c.DataFinal)
	}

	for _, i := range todas {
		if unidades != nil && !unidades[i.UnidadeInspecionada] {
			continue
		}
		if departamentos != nil && !departamentos[i.Departamento] {
			continue
		}
		if naoConformidades != nil && !naoConformidades[i.NaoConformidade] {
			continue
		}
		if c.StatusPrazo != "" && i.StatusPrazo != c.StatusPrazo {
			continue
		}
		if c.Ano != nil || c.DataInicial != nil || c.DataFinal != nil {
			if i.DataInspecao == nil {
				continue
			}
			d := models.Dia(*i.DataInspecao)
			if c.Ano != nil && d.Year() != *c.Ano {
				continue
			}
			if c.DataInicial != nil && d.Before(inicio) {
				continue
			}
			if c.DataFinal != nil && d.After(fim) {
				continue
			}
		}
		out = append(out, i)
	}
	return out
}

func conjunto(valores []string) map[string]bool {
	if len(valores) == 0 {
		return nil
	}
	m := make(map[string]bool, len(valores))
	for _, v := range valores {
		m[v] = true
	}
	return m
}

// CriteriosDaQuery converte a query string em Criterios.
// Valores inválidos (ano não numérico, data ilegível) são ignorados.
// Datas seguem models.ParseDia.
func CriteriosDaQuery(q url.Values) Criterios {
	c := Criterios{
		Unidade:         multiplos(q, "unidade"),
		Departamento:    multiplos(q, "departamento"),
		NaoConformidade: multiplos(q, "naoConformidade"),
		StatusPrazo:     strings.TrimSpace(q.Get("statusPrazo")),
	}
	if v := strings.TrimSpace(q.Get("ano")); v != "" {
		if ano, err := strconv.Atoi(v); err == nil {
			c.Ano = &ano
		}
	}
	c.DataInicial = models.ParseDia(q.Get("dataInicial"))
	c.DataFinal = models.ParseDia(q.Get("dataFinal"))
	return c
}

// multiplos lê a chave repetida (?unidade=A&unidade=B). Rótulos podem conter
// vírgula, então cada valor é comparado inteiro.
func multiplos(q url.Values, chave string) []string {
	var out []string
	for _, v := range q[chave] {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

// Opcoes lista os valores distintos de cada campo filtrável, ordenados.
// Anos vêm em ordem decrescente.
func Opcoes(todas []models.Inspecao) OpcoesFiltro {
	unidades := map[string]bool{}
	departamentos := map[string]bool{}
	naoConformidades := map[string]bool{}
	status := map[string]bool{}
	anos := map[int]bool{}
	for _, i := range todas {
		unidades[i.UnidadeInspecionada] = true
		departamentos[i.Departamento] = true
		naoConformidades[i.NaoConformidade] = true
		status[i.StatusPrazo] = true
		if i.DataInspecao != nil {
			anos[i.DataInspecao.UTC().Year()] = true
		}
	}

	op := OpcoesFiltro{
		Unidades:         ordenadas(unidades),
		Departamentos:    ordenadas(departamentos),
		NaoConformidades: ordenadas(naoConformidades),
		StatusPrazo:      ordenadas(status),
		Anos:             make([]int, 0, len(anos)),
	}
	for a := range anos {
		op.Anos = append(op.Anos, a)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(op.Anos)))
	return op
}

func ordenadas(m map[string]bool) []string {
	out := make([]string, 0, len(m))
	for v := range m {
		if v != "" {
			out = append(out, v)
		}
	}
	sort.Strings(out)
	return out
}
