package models

import (
	"strings"
	"time"
)

// Dia normaliza para meia-noite UTC. Todo cálculo de datas usa UTC.
func Dia(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DiaPtr devolve nil para nil, senão Dia(*t).
func DiaPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	d := Dia(*t)
	return &d
}

// DiasEntre retorna o número de dias inteiros de a até b.
func DiasEntre(a, b time.Time) int {
	return int(Dia(b).Sub(Dia(a)).Hours() / 24)
}

// FormatarDia devolve "2006-01-02" ou "" para nil.
func FormatarDia(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.UTC().Format("2006-01-02")
}

var layoutsDia = []string{"2006-01-02", "02/01/2006", time.RFC3339}

// ParseDia aceita YYYY-MM-DD, DD/MM/YYYY ou RFC3339; nil se vazio ou ilegível.
func ParseDia(s string) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	for _, layout := range layoutsDia {
		if t, err := time.Parse(layout, s); err == nil {
			d := Dia(t)
			return &d
		}
	}
	return nil
}
