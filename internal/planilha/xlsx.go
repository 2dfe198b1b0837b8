package planilha

import (
	"errors"
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

var ErrPlanilhaVazia = errors.New("planilha sem abas")

// LerXLSX devolve as linhas da primeira aba. Células numéricas vêm sem
// formatação, então datas chegam como serial do Excel.
func LerXLSX(r io.Reader) ([][]string, error) {
	f, err := excelize.OpenReader(r, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("planilha: abrir xlsx: %w", err)
	}
	defer f.Close()

	abas := f.GetSheetList()
	if len(abas) == 0 {
		return nil, ErrPlanilhaVazia
	}
	rows, err := f.GetRows(abas[0], excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("planilha: ler aba %q: %w", abas[0], err)
	}
	return rows, nil
}
