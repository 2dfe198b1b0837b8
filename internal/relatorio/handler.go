package relatorio

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/corregedoria/api-inspecoes/internal/apierro"
	"github.com/corregedoria/api-inspecoes/internal/controleprazo"
	"github.com/corregedoria/api-inspecoes/internal/inspecao"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	montagensTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "relatorio_montagens_total",
			Help: "Relatórios montados, por resultado.",
		},
		[]string{"resultado"},
	)
	montagemDuracao = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "relatorio_montagem_duracao_seconds",
		Help:    "Tempo para carregar, filtrar e agregar um relatório.",
		Buckets: prometheus.DefBuckets,
	})
)

type Handler struct {
	Inspecoes inspecao.Repository
	Prazos    controleprazo.Repository
	Cache     *Cache
	Log       *slog.Logger

	// Agora é substituível nos testes.
	Agora func() time.Time
}

func NewHandler(inspecoes inspecao.Repository, prazos controleprazo.Repository, cache *Cache, log *slog.Logger) *Handler {
	if log == nil {
		log = slog.Default()
	}
	return &Handler{
		Inspecoes: inspecoes,
		Prazos:    prazos,
		Cache:     cache,
		Log:       log.With("component", "relatorio"),
		Agora:     time.Now,
	}
}

// GET /api/reports/data
func (h *Handler) Dados(w http.ResponseWriter, r *http.Request) {
	d, err := h.montar(r)
	if err != nil {
		h.Log.Error("erro ao gerar relatório", "query", r.URL.RawQuery, "error", err)
		apierro.Escrever(w, http.StatusInternalServerError, apierro.CodigoRelatorio, "erro ao gerar relatório")
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(d)
}

// GET /api/reports/export.xlsx
func (h *Handler) ExportarXLSX(w http.ResponseWriter, r *http.Request) {
	d, err := h.montar(r)
	if err != nil {
		h.Log.Error("erro ao gerar relatório", "query", r.URL.RawQuery, "error", err)
		apierro.Escrever(w, http.StatusInternalServerError, apierro.CodigoRelatorio, "erro ao gerar relatório")
		return
	}
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=relatorio_%s.xlsx", h.hoje().Format("2006-01-02")))
	if err := EscreverXLSX(w, d); err != nil {
		h.Log.Error("erro ao escrever xlsx", "error", err)
	}
}

// GET /api/reports/export.csv
func (h *Handler) ExportarCSV(w http.ResponseWriter, r *http.Request) {
	d, err := h.montar(r)
	if err != nil {
		h.Log.Error("erro ao gerar relatório", "query", r.URL.RawQuery, "error", err)
		apierro.Escrever(w, http.StatusInternalServerError, apierro.CodigoRelatorio, "erro ao gerar relatório")
		return
	}
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=inspecoes_%s.csv", h.hoje().Format("2006-01-02")))
	if err := EscreverCSV(w, d.Inspections); err != nil {
		h.Log.Error("erro ao escrever csv", "error", err)
	}
}

func (h *Handler) hoje() time.Time {
	agora := time.Now
	if h.Agora != nil {
		agora = h.Agora
	}
	return agora().UTC()
}

// montar carrega, filtra e agrega. Um panic na agregação vira erro;
// nada parcial é devolvido.
func (h *Handler) montar(r *http.Request) (d Dados, err error) {
	hoje := h.hoje()
	query := r.URL.Query()
	chave := chaveCache(hoje, query.Encode())
	if cached, ok := h.Cache.Get(chave); ok {
		return cached, nil
	}
	geracao := h.Cache.Geracao()

	inicio := time.Now()
	defer func() {
		if p := recover(); p != nil {
			d, err = Dados{}, fmt.Errorf("relatorio: panic na agregação: %v", p)
		}
		resultado := "ok"
		if err != nil {
			resultado = "erro"
		}
		montagensTotal.WithLabelValues(resultado).Inc()
		montagemDuracao.Observe(time.Since(inicio).Seconds())
	}()

	todas, err := h.Inspecoes.ListarTodos(r.Context())
	if err != nil {
		return Dados{}, err
	}
	prazos, err := h.Prazos.ListarTodos(r.Context())
	if err != nil {
		return Dados{}, err
	}

	d = Montar(inspecao.Filtrar(todas, inspecao.CriteriosDaQuery(query)), prazos, hoje)
	if h.Cache != nil && !h.Cache.Set(chave, d, geracao) {
		h.Log.Debug("relatório não guardado: cache limpo durante a montagem", "query", r.URL.RawQuery)
	}
	return d, nil
}
