package importacao

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/corregedoria/api-inspecoes/internal/controleprazo"
	"github.com/corregedoria/api-inspecoes/internal/inspecao"
	"github.com/corregedoria/api-inspecoes/internal/models"
	"github.com/xuri/excelize/v2"
)

func xlsx(t *testing.T, linhas [][]any) *bytes.Buffer {
	t.Helper()
	f := excelize.NewFile()
	for i, l := range linhas {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		row := l
		if err := f.SetSheetRow("Sheet1", cell, &row); err != nil {
			t.Fatal(err)
		}
	}
	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		t.Fatal(err)
	}
	return &buf
}

func novoServico() (*Servico, inspecao.Repository, controleprazo.Repository, Repository) {
	insp := inspecao.NewRepositoryMemoria()
	prazos := controleprazo.NewRepositoryMemoria()
	lotes := NewRepositoryMemoria()
	return NewServico(insp, prazos, lotes, nil, nil), insp, prazos, lotes
}

func TestImportarInspecoes(t *testing.T) {
	ctx := context.Background()
	s, insp, prazos, lotes := novoServico()

	alteracoes := 0
	s.AoAlterar = func() { alteracoes++ }

	_, _ = prazos.UpsertEmLote(ctx, []models.ControlePrazo{{Oficio: "1", Unidade: "A", NaoConformidade: "x"}})

	arquivo := xlsx(t, [][]any{
		{"Planilha de Inspeções"},
		{"Número", "Unidade Inspecionada", "Departamento", "Data da Inspeção", "Não Conformidade", "Status do Prazo"},
		{"001", "Delegacia A", "Administrativo", 45361, "Infraestrutura", "Dentro do prazo"},
		{"002", "Delegacia B", "", 45361, "Armamento", ""},
		{},
		{"001", "Delegacia A", "Administrativo", "10/03/2024", "Infraestrutura", "Prazo expirado"},
		{"003", "Delegacia C", "Operacional", "sem data", "Viaturas", ""},
	})

	res, err := s.ImportarInspecoes(ctx, arquivo, "inspecoes.xlsx", "admin@corregedoria")
	if err != nil {
		t.Fatal(err)
	}
	if res.Total != 4 || res.Processados != 3 || res.Erros != 1 {
		t.Errorf("resultado = %+v", res)
	}
	if len(res.Falhas) != 1 || res.Falhas[0].Linha != 4 {
		t.Errorf("falhas = %+v", res.Falhas)
	}
	if res.LoteID == "" || res.Tipo != TipoInspecoes {
		t.Errorf("lote = %q tipo = %q", res.LoteID, res.Tipo)
	}
	if alteracoes != 1 {
		t.Errorf("AoAlterar chamado %d vezes", alteracoes)
	}

	todas, _ := insp.ListarTodos(ctx)
	if len(todas) != 2 {
		t.Fatalf("esperado 2 inspeções (001 colapsada), got %d", len(todas))
	}
	if todas[0].StatusPrazo != "Prazo expirado" {
		t.Errorf("última ocorrência deve prevalecer, got %q", todas[0].StatusPrazo)
	}
	if todas[0].DataInspecao == nil || todas[0].DataInspecao.Format("2006-01-02") != "2024-03-10" {
		t.Errorf("DataInspecao = %v", todas[0].DataInspecao)
	}
	if todas[1].DataInspecao != nil {
		t.Errorf("data ilegível deve ficar nula, got %v", todas[1].DataInspecao)
	}

	if n, _ := prazos.Contar(ctx); n != 1 {
		t.Errorf("upload de inspeções alterou o controle de prazos: %d", n)
	}

	hist, _ := lotes.ListarRecentes(ctx, 10)
	if len(hist) != 1 || hist[0].EnviadoPor != "admin@corregedoria" || hist[0].Erros != 1 {
		t.Errorf("histórico = %+v", hist)
	}
}

func TestImportarControlePrazos(t *testing.T) {
	ctx := context.Background()
	s, insp, prazos, _ := novoServico()

	_, _ = insp.UpsertEmLote(ctx, []models.Inspecao{{UnidadeInspecionada: "A", Departamento: "D"}})

	arquivo := xlsx(t, [][]any{
		{"Unidade", "Ofício", "Não Conformidade", "Data de Recebimento", "Prazo", "Status"},
		{"Delegacia A", "OF-1", "Extintores", "01/02/2024", 45383, "Regularizado"},
		{"Delegacia A", "OF-2", "Alvará", "01/02/2024", "", "pendente"},
		{"Delegacia B", "OF-3", "Alvará", "ontem", "01/05/2024", ""},
		{"Delegacia B", "", "Alvará", "01/02/2024", "01/05/2024", ""},
		{"Delegacia B", "OF-4", "Alvará", "01/02/2024", "01/05/2024", "Não regularizado"},
	})

	res, err := s.ImportarControlePrazos(ctx, arquivo, "prazos.xlsx", "admin")
	if err != nil {
		t.Fatal(err)
	}
	if res.Total != 5 || res.Processados != 2 || res.Erros != 3 {
		t.Errorf("resultado = %+v", res)
	}

	list, _ := prazos.ListarTodos(ctx)
	if len(list) != 2 {
		t.Fatalf("got %d prazos", len(list))
	}
	status := map[string]string{}
	for _, c := range list {
		status[c.Oficio] = c.Status
	}
	if status["OF-1"] != models.StatusRegularizado || status["OF-4"] != models.StatusNaoRegularizado {
		t.Errorf("status = %v", status)
	}

	if n, _ := insp.Contar(ctx); n != 1 {
		t.Errorf("upload de prazos alterou inspeções: %d", n)
	}
}

func TestImportar_ArquivoInvalido(t *testing.T) {
	s, _, _, lotes := novoServico()

	_, err := s.ImportarInspecoes(context.Background(), bytes.NewBufferString("csv,não,xlsx"), "x.csv", "admin")
	if !errors.Is(err, ErrArquivoInvalido) {
		t.Errorf("err = %v", err)
	}

	semCabecalho := xlsx(t, [][]any{{"foo", "bar"}, {"1", "2"}})
	_, err = s.ImportarControlePrazos(context.Background(), semCabecalho, "x.xlsx", "admin")
	if !errors.Is(err, ErrArquivoInvalido) {
		t.Errorf("err = %v", err)
	}

	if hist, _ := lotes.ListarRecentes(context.Background(), 0); len(hist) != 0 {
		t.Errorf("arquivo inválido não deve gerar lote: %+v", hist)
	}
}
