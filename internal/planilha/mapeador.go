package planilha

import (
	"errors"
	"strings"
)

// MaxLinhasCabecalho é quantas linhas do topo são examinadas à procura do cabeçalho.
const MaxLinhasCabecalho = 10

var ErrCabecalhoNaoEncontrado = errors.New("cabeçalho não encontrado nas primeiras linhas da planilha")

// Linha é o resultado do mapeamento: campo canônico -> valor (sem espaços nas pontas).
// Campos ausentes ou vazios não aparecem.
type Linha map[string]string

// Colunas liga cada campo reconhecido ao índice da coluna na planilha.
type Colunas map[string]int

// ResolverCabecalho reconhece os cabeçalhos por trecho (sem diferenciar
// maiúsculas e acentos). Vence o campo com o trecho mais longo contido no
// cabeçalho; cada campo fica com o primeiro cabeçalho que o resolveu.
func ResolverCabecalho(cabecalho []string, tabela TabelaAliases) Colunas {
	cols := Colunas{}
	for i, h := range cabecalho {
		campo := resolver(Normalizar(h), tabela)
		if campo == "" {
			continue
		}
		if _, ok := cols[campo]; !ok {
			cols[campo] = i
		}
	}
	return cols
}

func resolver(h string, tabela TabelaAliases) string {
	if h == "" {
		return ""
	}
	melhor, tamanho := "", 0
	for campo, trechos := range tabela {
		for _, t := range trechos {
			// empate no tamanho: menor nome de campo, para o resultado não depender da ordem do map
			if len(t) < tamanho || (len(t) == tamanho && campo >= melhor) || !strings.Contains(h, t) {
				continue
			}
			melhor, tamanho = campo, len(t)
		}
	}
	return melhor
}

// Linha extrai os valores de uma linha de dados.
func (c Colunas) Linha(dados []string) Linha {
	l := Linha{}
	for campo, i := range c {
		if i >= len(dados) {
			continue
		}
		if v := strings.TrimSpace(dados[i]); v != "" {
			l[campo] = v
		}
	}
	return l
}

// MapearLinha resolve o cabeçalho e extrai a linha de uma só vez.
func MapearLinha(cabecalho, linha []string, tabela TabelaAliases) Linha {
	return ResolverCabecalho(cabecalho, tabela).Linha(linha)
}

// LocalizarCabecalho devolve a primeira linha, entre as MaxLinhasCabecalho
// primeiras, que reconhece pelo menos dois campos.
func LocalizarCabecalho(linhas [][]string, tabela TabelaAliases) (int, Colunas, error) {
	for i := 0; i < len(linhas) && i < MaxLinhasCabecalho; i++ {
		if cols := ResolverCabecalho(linhas[i], tabela); len(cols) >= 2 {
			return i, cols, nil
		}
	}
	return -1, nil, ErrCabecalhoNaoEncontrado
}

// Vazia informa se a linha não tem nenhuma célula preenchida.
func Vazia(linha []string) bool {
	for _, v := range linha {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
