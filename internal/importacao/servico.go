// Package importacao orquestra o upload de planilhas: leitura, mapeamento,
// upsert no armazenamento correspondente e registro do lote.
//
// Inspeções e controle de prazos são importados por caminhos separados;
// um upload nunca toca a outra coleção.
package importacao

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/corregedoria/api-inspecoes/internal/controleprazo"
	"github.com/corregedoria/api-inspecoes/internal/inspecao"
	"github.com/corregedoria/api-inspecoes/internal/models"
	"github.com/corregedoria/api-inspecoes/internal/notificacao"
	"github.com/corregedoria/api-inspecoes/internal/planilha"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MaxFalhasDetalhadas limita quantas linhas rejeitadas vão na resposta.
const MaxFalhasDetalhadas = 50

// ErrArquivoInvalido indica planilha ilegível ou sem cabeçalho reconhecível.
var ErrArquivoInvalido = errors.New("arquivo inválido")

var (
	linhasTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "importacao_linhas_total",
			Help: "Linhas de planilha importadas, por tipo e resultado.",
		},
		[]string{"tipo", "resultado"},
	)
	lotesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "importacao_lotes_total",
			Help: "Planilhas importadas, por tipo.",
		},
		[]string{"tipo"},
	)
)

// Resultado é devolvido ao cliente depois do upload.
type Resultado struct {
	Mensagem    string  `json:"message"`
	Tipo        string  `json:"tipo"`
	Total       int     `json:"total"`
	Processados int     `json:"processados"`
	Erros       int     `json:"erros"`
	LoteID      string  `json:"loteId"`
	Falhas      []Falha `json:"falhas,omitempty"`
}

// Falha descreve uma linha rejeitada. Linha segue a numeração do Excel (1 = primeira linha).
type Falha struct {
	Linha  int    `json:"linha"`
	Motivo string `json:"motivo"`
}

type Servico struct {
	Inspecoes inspecao.Repository
	Prazos    controleprazo.Repository
	Lotes     Repository
	Webhook   *notificacao.Webhook
	Log       *slog.Logger

	// AoAlterar é chamado depois de cada upsert bem-sucedido.
	AoAlterar func()
}

func NewServico(insp inspecao.Repository, prazos controleprazo.Repository, lotes Repository, wh *notificacao.Webhook, log *slog.Logger) *Servico {
	if log == nil {
		log = slog.Default()
	}
	return &Servico{
		Inspecoes: insp,
		Prazos:    prazos,
		Lotes:     lotes,
		Webhook:   wh,
		Log:       log.With("component", "importacao"),
	}
}

// ImportarInspecoes lê a planilha e faz upsert apenas na coleção de inspeções.
func (s *Servico) ImportarInspecoes(ctx context.Context, r io.Reader, arquivo, enviadoPor string) (Resultado, error) {
	return importar(ctx, s, r, TipoInspecoes, arquivo, enviadoPor,
		planilha.AliasesInspecao, planilha.InspecaoDaLinha,
		func(ctx context.Context, lista []models.Inspecao) error {
			_, err := s.Inspecoes.UpsertEmLote(ctx, lista)
			return err
		})
}

// ImportarControlePrazos lê a planilha e faz upsert apenas no controle de prazos.
func (s *Servico) ImportarControlePrazos(ctx context.Context, r io.Reader, arquivo, enviadoPor string) (Resultado, error) {
	return importar(ctx, s, r, TipoControlePrazos, arquivo, enviadoPor,
		planilha.AliasesControlePrazo, planilha.ControlePrazoDaLinha,
		func(ctx context.Context, lista []models.ControlePrazo) error {
			_, err := s.Prazos.UpsertEmLote(ctx, lista)
			return err
		})
}

func importar[T any](
	ctx context.Context,
	s *Servico,
	r io.Reader,
	tipo, arquivo, enviadoPor string,
	tabela planilha.TabelaAliases,
	converter func(planilha.Linha) (T, error),
	gravar func(context.Context, []T) error,
) (Resultado, error) {
	rows, err := planilha.LerXLSX(r)
	if err != nil {
		return Resultado{}, fmt.Errorf("%w: %v", ErrArquivoInvalido, err)
	}
	inicioDados, cols, err := planilha.LocalizarCabecalho(rows, tabela)
	if err != nil {
		return Resultado{}, fmt.Errorf("%w: %v", ErrArquivoInvalido, err)
	}

	res := Resultado{Tipo: tipo}
	registros := make([]T, 0, len(rows)-inicioDados)
	for n := inicioDados + 1; n < len(rows); n++ {
		if planilha.Vazia(rows[n]) {
			continue
		}
		res.Total++
		reg, err := converter(cols.Linha(rows[n]))
		if err != nil {
			res.Erros++
			if len(res.Falhas) < MaxFalhasDetalhadas {
				res.Falhas = append(res.Falhas, Falha{Linha: n + 1, Motivo: err.Error()})
			}
			continue
		}
		registros = append(registros, reg)
	}

	if len(registros) > 0 {
		if err := gravar(ctx, registros); err != nil {
			return Resultado{}, err
		}
		if s.AoAlterar != nil {
			s.AoAlterar()
		}
	}
	res.Processados = len(registros)

	lote := Lote{
		ID:          uuid.NewString(),
		Tipo:        tipo,
		Arquivo:     arquivo,
		EnviadoPor:  enviadoPor,
		Total:       res.Total,
		Processados: res.Processados,
		Erros:       res.Erros,
		CriadoEm:    time.Now().UTC(),
	}
	res.LoteID = lote.ID
	res.Mensagem = fmt.Sprintf("%d de %d linhas importadas", res.Processados, res.Total)

	if s.Lotes != nil {
		if err := s.Lotes.Salvar(ctx, &lote); err != nil {
			s.Log.Warn("erro ao registrar lote", "lote", lote.ID, "error", err)
		}
	}

	lotesTotal.WithLabelValues(tipo).Inc()
	linhasTotal.WithLabelValues(tipo, "ok").Add(float64(res.Processados))
	linhasTotal.WithLabelValues(tipo, "erro").Add(float64(res.Erros))

	s.Log.Info("planilha importada",
		"lote", lote.ID, "tipo", tipo, "arquivo", arquivo, "enviado_por", enviadoPor,
		"total", res.Total, "processados", res.Processados, "erros", res.Erros)

	s.Webhook.EnviarAssincrono(notificacao.EventoImportacao{
		Mensagem:    "Nova planilha importada",
		LoteID:      lote.ID,
		Tipo:        tipo,
		Arquivo:     arquivo,
		EnviadoPor:  enviadoPor,
		Total:       res.Total,
		Processados: res.Processados,
		Erros:       res.Erros,
		CriadoEm:    lote.CriadoEm,
	})
	return res, nil
}
