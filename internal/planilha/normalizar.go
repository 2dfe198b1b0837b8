// Package planilha converte linhas de planilhas enviadas pelos usuários em
// registros de inspeção e de controle de prazos.
package planilha

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Normalizar deixa o texto comparável: minúsculas, sem acentos,
// pontuação vira espaço e espaços repetidos são colapsados.
func Normalizar(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	semAcento, _, err := transform.String(t, s)
	if err != nil {
		semAcento = s
	}

	var b strings.Builder
	b.Grow(len(semAcento))
	espaco := true
	for _, r := range strings.ToLower(semAcento) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			espaco = false
			continue
		}
		if !espaco {
			b.WriteByte(' ')
			espaco = true
		}
	}
	return strings.TrimSpace(b.String())
}

// NormalizarStatus traduz o status livre da planilha para o conjunto fechado.
// Vazio ou desconhecido vira pendente.
func NormalizarStatus(s string) string {
	n := Normalizar(s)
	switch {
	case strings.Contains(n, "nao regular"):
		return "nao_regularizado"
	case strings.Contains(n, "regular"):
		return "regularizado"
	case strings.Contains(n, "pendent"):
		return "pendente"
	default:
		return "pendente"
	}
}
