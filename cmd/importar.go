package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/corregedoria/api-inspecoes/internal/importacao"

	"github.com/spf13/cobra"
)

var (
	tipoImportacao    string
	arquivoImportacao string
	enviadoPor        string
)

var importarCmd = &cobra.Command{
	Use:   "importar",
	Short: "Importa uma planilha XLSX direto no banco",
	Long: `Importa uma planilha de inspeções ou de controle de prazos no PostgreSQL.
Cada tipo grava apenas na sua própria tabela.`,
	Example: "  api-inspecoes importar --tipo inspecoes --arquivo inspecoes.xlsx",
	RunE:    runImportar,
}

func init() {
	importarCmd.Flags().StringVarP(&tipoImportacao, "tipo", "t", importacao.TipoInspecoes,
		"tipo da planilha: "+importacao.TipoInspecoes+" ou "+importacao.TipoControlePrazos)
	importarCmd.Flags().StringVarP(&arquivoImportacao, "arquivo", "a", "", "planilha XLSX (obrigatório)")
	importarCmd.Flags().StringVar(&enviadoPor, "enviado-por", "cli", "identificação gravada no histórico")

	_ = importarCmd.MarkFlagRequired("arquivo")
}

func runImportar(cmd *cobra.Command, _ []string) error {
	cfg, log, err := carregar()
	if err != nil {
		return err
	}

	arm, err := abrirArmazenamento(cfg, log, true)
	if err != nil {
		return err
	}
	defer arm.Fechar()

	f, err := os.Open(arquivoImportacao)
	if err != nil {
		return fmt.Errorf("abrir planilha: %w", err)
	}
	defer f.Close()

	// sem webhook: o processo termina antes de um envio assíncrono
	srv := importacao.NewServico(arm.Inspecoes, arm.Prazos, arm.Lotes, nil, log)
	nome := filepath.Base(arquivoImportacao)

	var res importacao.Resultado
	switch tipoImportacao {
	case importacao.TipoInspecoes:
		res, err = srv.ImportarInspecoes(cmd.Context(), f, nome, enviadoPor)
	case importacao.TipoControlePrazos:
		res, err = srv.ImportarControlePrazos(cmd.Context(), f, nome, enviadoPor)
	default:
		return fmt.Errorf("tipo inválido %q: use %s ou %s", tipoImportacao, importacao.TipoInspecoes, importacao.TipoControlePrazos)
	}
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s (lote %s)\n", res.Mensagem, res.LoteID)
	for _, falha := range res.Falhas {
		fmt.Fprintf(out, "  linha %d: %s\n", falha.Linha, falha.Motivo)
	}
	return nil
}
