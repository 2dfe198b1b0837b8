package inspecao

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/corregedoria/api-inspecoes/internal/apierro"
)

type Handler struct {
	Repository Repository
	Log        *slog.Logger

	// AoAlterar é chamado depois de toda escrita bem-sucedida (invalida o cache de relatórios).
	AoAlterar func()
}

func NewHandler(repo Repository, log *slog.Logger, aoAlterar func()) *Handler {
	if log == nil {
		log = slog.Default()
	}
	return &Handler{
		Repository: repo,
		Log:        log.With("component", "inspecao"),
		AoAlterar:  aoAlterar,
	}
}

// GET /api/inspections
func (h *Handler) ListarTodas(w http.ResponseWriter, r *http.Request) {
	list, err := h.Repository.ListarTodos(r.Context())
	if err != nil {
		h.Log.Error("erro ao listar inspeções", "error", err)
		apierro.Armazenamento(w, "erro ao listar inspeções")
		return
	}
	responder(w, http.StatusOK, list)
}

// GET /api/inspections/filtered
// Parâmetros inválidos são ignorados (ver CriteriosDaQuery).
func (h *Handler) ListarFiltradas(w http.ResponseWriter, r *http.Request) {
	todas, err := h.Repository.ListarTodos(r.Context())
	if err != nil {
		h.Log.Error("erro ao listar inspeções", "error", err)
		apierro.Armazenamento(w, "erro ao listar inspeções")
		return
	}
	responder(w, http.StatusOK, Filtrar(todas, CriteriosDaQuery(r.URL.Query())))
}

// GET /api/inspections/filters
func (h *Handler) ListarOpcoesFiltro(w http.ResponseWriter, r *http.Request) {
	todas, err := h.Repository.ListarTodos(r.Context())
	if err != nil {
		h.Log.Error("erro ao listar inspeções", "error", err)
		apierro.Armazenamento(w, "erro ao listar inspeções")
		return
	}
	responder(w, http.StatusOK, Opcoes(todas))
}

// POST /api/inspections
func (h *Handler) Criar(w http.ResponseWriter, r *http.Request) {
	var req CriarInspecaoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierro.Validacao(w, "payload inválido")
		return
	}

	i := req.paraModelo()
	if i.UnidadeInspecionada == "" || i.Departamento == "" {
		apierro.Validacao(w, "unidadeInspecionada e departamento são obrigatórios")
		return
	}

	if err := h.Repository.Criar(r.Context(), &i); err != nil {
		if errors.Is(err, ErrDuplicado) {
			apierro.Conflito(w, "já existe inspeção com o mesmo número, unidade, departamento e não conformidade")
			return
		}
		h.Log.Error("erro ao salvar inspeção", "error", err)
		apierro.Armazenamento(w, "erro ao salvar inspeção")
		return
	}
	h.alterou()

	h.Log.Info("inspeção criada", "id", i.ID, "unidade", i.UnidadeInspecionada)
	responder(w, http.StatusCreated, i)
}

func (h *Handler) alterou() {
	if h.AoAlterar != nil {
		h.AoAlterar()
	}
}

func responder(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
