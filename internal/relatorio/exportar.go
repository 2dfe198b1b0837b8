package relatorio

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/corregedoria/api-inspecoes/internal/models"
	"github.com/jszwec/csvutil"
	"github.com/xuri/excelize/v2"
)

// linhaExportacao é a forma plana de uma inspeção nas exportações.
type linhaExportacao struct {
	Numero                   string `csv:"numero"`
	UnidadeInspecionada      string `csv:"unidade_inspecionada"`
	Departamento             string `csv:"departamento"`
	Coorpin                  string `csv:"coorpin"`
	DataInspecao             string `csv:"data_inspecao"`
	Responsavel              string `csv:"responsavel_inspecao"`
	NaoConformidade          string `csv:"nao_conformidade"`
	DescricaoNaoConformidade string `csv:"descricao_nao_conformidade"`
	EtapaInicial             string `csv:"etapa_inicial"`
	EtapaIntermediaria       string `csv:"etapa_intermediaria"`
	EtapaConclusiva          string `csv:"etapa_conclusiva"`
	InicioRegularizacao      string `csv:"inicio_regularizacao"`
	PrazoDias                string `csv:"prazo_dias"`
	FimRegularizacao         string `csv:"fim_regularizacao"`
	StatusPrazo              string `csv:"status_prazo"`
	DataReinspecao           string `csv:"data_reinspecao"`
	Criticidade              string `csv:"criticidade"`
}

var cabecalhoXLSX = []any{
	"Número", "Unidade Inspecionada", "Departamento", "COORPIN", "Data da Inspeção",
	"Responsável pela Inspeção", "Não Conformidade", "Descrição da Não Conformidade",
	"Etapa Inicial", "Etapa Intermediária", "Etapa Conclusiva", "Início da Regularização",
	"Prazo (dias)", "Fim da Regularização", "Status do Prazo", "Data da Reinspeção", "Criticidade",
}

func paraLinha(i models.Inspecao) linhaExportacao {
	prazo := ""
	if i.PrazoDias != nil {
		prazo = fmt.Sprint(*i.PrazoDias)
	}
	return linhaExportacao{
		Numero:                   i.Numero,
		UnidadeInspecionada:      i.UnidadeInspecionada,
		Departamento:             i.Departamento,
		Coorpin:                  i.Coorpin,
		DataInspecao:             models.FormatarDia(i.DataInspecao),
		Responsavel:              i.Responsavel,
		NaoConformidade:          i.NaoConformidade,
		DescricaoNaoConformidade: i.DescricaoNaoConformidade,
		EtapaInicial:             i.EtapaInicial,
		EtapaIntermediaria:       i.EtapaIntermediaria,
		EtapaConclusiva:          i.EtapaConclusiva,
		InicioRegularizacao:      models.FormatarDia(i.InicioRegularizacao),
		PrazoDias:                prazo,
		FimRegularizacao:         models.FormatarDia(i.FimRegularizacao),
		StatusPrazo:              i.StatusPrazo,
		DataReinspecao:           models.FormatarDia(i.DataReinspecao),
		Criticidade:              i.Criticidade,
	}
}

// EscreverCSV grava as inspeções em CSV com cabeçalho.
func EscreverCSV(w io.Writer, inspecoes []models.Inspecao) error {
	cw := csv.NewWriter(w)
	enc := csvutil.NewEncoder(cw)
	if len(inspecoes) == 0 {
		if err := enc.EncodeHeader(linhaExportacao{}); err != nil {
			return fmt.Errorf("relatorio: csv: %w", err)
		}
	}
	for _, i := range inspecoes {
		if err := enc.Encode(paraLinha(i)); err != nil {
			return fmt.Errorf("relatorio: csv: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// EscreverXLSX gera a planilha com as abas "Inspeções" e "Resumo".
func EscreverXLSX(w io.Writer, d Dados) error {
	f := excelize.NewFile()
	defer f.Close()

	const aba = "Inspeções"
	if err := f.SetSheetName("Sheet1", aba); err != nil {
		return fmt.Errorf("relatorio: xlsx: %w", err)
	}
	_ = f.SetSheetRow(aba, "A1", &cabecalhoXLSX)
	for n, i := range d.Inspections {
		l := paraLinha(i)
		row := []any{
			l.Numero, l.UnidadeInspecionada, l.Departamento, l.Coorpin, l.DataInspecao,
			l.Responsavel, l.NaoConformidade, l.DescricaoNaoConformidade,
			l.EtapaInicial, l.EtapaIntermediaria, l.EtapaConclusiva, l.InicioRegularizacao,
			l.PrazoDias, l.FimRegularizacao, l.StatusPrazo, l.DataReinspecao, l.Criticidade,
		}
		if i.PrazoDias != nil {
			row[12] = *i.PrazoDias
		}
		cell, _ := excelize.CoordinatesToCellName(1, n+2)
		if err := f.SetSheetRow(aba, cell, &row); err != nil {
			return fmt.Errorf("relatorio: xlsx: %w", err)
		}
	}

	const resumo = "Resumo"
	if _, err := f.NewSheet(resumo); err != nil {
		return fmt.Errorf("relatorio: xlsx: %w", err)
	}
	s := d.Summary
	linhas := [][]any{
		{"Indicador", "Valor"},
		{"Total de inspeções", s.TotalInspecoes},
		{"Total de não conformidades", s.TotalNaoConformidades},
		{"Unidades com prazo definido", s.DentroDoPrazo},
		{"Unidades próximas do vencimento", s.ProximoDoVencimento},
		{"Unidades com prazo vencido", s.Vencidos},
		{"Regularizados", s.Regularizados},
		{"Pendentes", s.Pendentes},
		{"Não regularizados", s.NaoRegularizados},
		{},
		{"Departamento", "Inspeções"},
	}
	for _, it := range d.Charts.Departamentos {
		linhas = append(linhas, []any{it.Nome, it.Valor})
	}
	linhas = append(linhas, []any{}, []any{"Status do prazo", "Registros"})
	for _, it := range d.Charts.Status {
		linhas = append(linhas, []any{it.Nome, it.Valor})
	}
	linhas = append(linhas, []any{}, []any{"Não conformidade", "Ocorrências"})
	for _, it := range d.Charts.NaoConformidades {
		linhas = append(linhas, []any{it.Nome, it.Valor})
	}
	for n, row := range linhas {
		if len(row) == 0 {
			continue
		}
		cell, _ := excelize.CoordinatesToCellName(1, n+1)
		if err := f.SetSheetRow(resumo, cell, &row); err != nil {
			return fmt.Errorf("relatorio: xlsx: %w", err)
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("relatorio: xlsx: %w", err)
	}
	return nil
}
