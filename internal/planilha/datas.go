package planilha

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/corregedoria/api-inspecoes/internal/models"
)

// OffsetSerialExcel é o serial do Excel (sistema 1900) correspondente a 1970-01-01.
const OffsetSerialExcel = 25569

// maior serial aceito: 9999-12-31
const maxSerialExcel = 2958465

var ErrDataInvalida = errors.New("data inválida")

var epoca = time.Date(1970, 1, 1, 0, 0, 0, 0, time.UTC)

var layoutsPlanilha = []string{
	"2/1/2006",
	"2-1-2006",
	"2006-1-2",
	"2/1/06",
	"2.1.2006",
}

// ConverterData aceita serial do Excel, DD/MM/YYYY, DD-MM-YYYY, YYYY-MM-DD,
// DD/MM/YY e prefixos RFC3339. Vazio devolve nil sem erro.
func ConverterData(v string) (*time.Time, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil, nil
	}

	if f, err := strconv.ParseFloat(v, 64); err == nil {
		if math.IsNaN(f) || f < 1 || f > maxSerialExcel {
			return nil, ErrDataInvalida
		}
		d := epoca.AddDate(0, 0, int(math.Floor(f))-OffsetSerialExcel)
		return &d, nil
	}

	// "2024-03-10T00:00:00Z", "2024-03-10 08:00:00"
	if len(v) > 10 && v[4] == '-' && (v[10] == 'T' || v[10] == ' ') {
		v = v[:10]
	}
	for _, layout := range layoutsPlanilha {
		if t, err := time.Parse(layout, v); err == nil {
			d := models.Dia(t)
			return &d, nil
		}
	}
	return nil, ErrDataInvalida
}

// dataOuNil descarta datas ilegíveis.
func dataOuNil(v string) *time.Time {
	d, err := ConverterData(v)
	if err != nil {
		return nil
	}
	return d
}

// ConverterInteiro aceita "30" e "30.0" (células numéricas do Excel).
func ConverterInteiro(v string) (*int, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil, nil
	}
	if n, err := strconv.Atoi(v); err == nil {
		return &n, nil
	}
	f, err := strconv.ParseFloat(strings.Replace(v, ",", ".", 1), 64)
	if err != nil {
		return nil, err
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil, fmt.Errorf("planilha: número inválido %q", v)
	}
	n := int(math.Round(f))
	return &n, nil
}
