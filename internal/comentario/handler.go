package comentario

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/corregedoria/api-inspecoes/internal/apierro"
	"github.com/corregedoria/api-inspecoes/internal/auth"
	"github.com/corregedoria/api-inspecoes/internal/controleprazo"

	"github.com/gorilla/mux"
)

// Handler encapsula os comentários e o repositório de prazos (para validar o id).
type Handler struct {
	Repository Repository
	Prazos     controleprazo.Repository
	Log        *slog.Logger
}

func NewHandler(repo Repository, prazos controleprazo.Repository, log *slog.Logger) *Handler {
	if log == nil {
		log = slog.Default()
	}
	return &Handler{
		Repository: repo,
		Prazos:     prazos,
		Log:        log.With("component", "comentario"),
	}
}

// POST /api/controle-prazos/{id}/comentarios
func (h *Handler) Criar(w http.ResponseWriter, r *http.Request) {
	prazoID, ok := h.prazoDaRota(w, r)
	if !ok {
		return
	}

	var req CriarComentarioRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierro.Validacao(w, "JSON inválido")
		return
	}
	texto := strings.TrimSpace(req.Texto)
	if texto == "" {
		apierro.Validacao(w, "o campo 'texto' é obrigatório")
		return
	}

	autorID, email, _ := auth.Usuario(r.Context())
	c := Comentario{
		ControlePrazoID: prazoID,
		Texto:           texto,
		AutorID:         autorID,
		AutorEmail:      email,
	}
	if err := h.Repository.Criar(r.Context(), &c); err != nil {
		h.Log.Error("erro ao criar comentário", "prazo", prazoID, "error", err)
		apierro.Armazenamento(w, "erro ao criar comentário")
		return
	}
	responder(w, http.StatusCreated, toDTO(c))
}

// GET /api/controle-prazos/{id}/comentarios
func (h *Handler) ListarPorPrazo(w http.ResponseWriter, r *http.Request) {
	prazoID, ok := h.prazoDaRota(w, r)
	if !ok {
		return
	}
	comentarios, err := h.Repository.ListarPorPrazo(r.Context(), prazoID)
	if err != nil {
		h.Log.Error("erro ao listar comentários", "prazo", prazoID, "error", err)
		apierro.Armazenamento(w, "erro ao listar comentários")
		return
	}
	responder(w, http.StatusOK, toDTOs(comentarios))
}

// DELETE /api/comentarios/{id}
func (h *Handler) Remover(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil || id <= 0 {
		apierro.Validacao(w, "ID inválido")
		return
	}
	if err := h.Repository.Remover(r.Context(), uint(id)); err != nil {
		h.Log.Error("erro ao remover comentário", "id", id, "error", err)
		apierro.Armazenamento(w, "erro ao remover comentário")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// RegistrarSistema grava um comentário de sistema. Falhas só são registradas no log.
func (h *Handler) RegistrarSistema(ctx context.Context, prazoID uint, texto string) {
	c := Comentario{ControlePrazoID: prazoID, Texto: texto, System: true}
	if err := h.Repository.Criar(ctx, &c); err != nil {
		h.Log.Warn("erro ao registrar comentário de sistema", "prazo", prazoID, "error", err)
	}
}

func (h *Handler) prazoDaRota(w http.ResponseWriter, r *http.Request) (uint, bool) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil || id <= 0 {
		apierro.Validacao(w, "ID de controle de prazo inválido")
		return 0, false
	}
	if _, err := h.Prazos.BuscarPorID(r.Context(), uint(id)); err != nil {
		if errors.Is(err, controleprazo.ErrNaoEncontrado) {
			apierro.NaoEncontrado(w, "controle de prazo não encontrado")
			return 0, false
		}
		h.Log.Error("erro ao buscar controle de prazo", "id", id, "error", err)
		apierro.Armazenamento(w, "erro ao buscar controle de prazo")
		return 0, false
	}
	return uint(id), true
}

func responder(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
