package controleprazo

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/corregedoria/api-inspecoes/internal/apierro"
	"github.com/corregedoria/api-inspecoes/internal/models"
	"github.com/gorilla/mux"
)

type Handler struct {
	Repository Repository
	Log        *slog.Logger
	AoAlterar  func()

	// AoMudarStatus, se definido, é chamado quando um PATCH altera o status.
	AoMudarStatus func(ctx context.Context, id uint, status string)
}

func NewHandler(repo Repository, log *slog.Logger, aoAlterar func()) *Handler {
	if log == nil {
		log = slog.Default()
	}
	return &Handler{
		Repository: repo,
		Log:        log.With("component", "controleprazo"),
		AoAlterar:  aoAlterar,
	}
}

// GET /api/controle-prazos[?unidade=]
func (h *Handler) Listar(w http.ResponseWriter, r *http.Request) {
	var (
		list []models.ControlePrazo
		err  error
	)
	if unidade := strings.TrimSpace(r.URL.Query().Get("unidade")); unidade != "" {
		list, err = h.Repository.ListarPorUnidade(r.Context(), unidade)
	} else {
		list, err = h.Repository.ListarTodos(r.Context())
	}
	if err != nil {
		h.Log.Error("erro ao listar controle de prazos", "error", err)
		apierro.Armazenamento(w, "erro ao listar controle de prazos")
		return
	}
	responder(w, http.StatusOK, list)
}

// POST /api/controle-prazos
func (h *Handler) Criar(w http.ResponseWriter, r *http.Request) {
	var req CriarControlePrazoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierro.Validacao(w, "payload inválido")
		return
	}

	c := models.ControlePrazo{
		Unidade:         strings.TrimSpace(req.Unidade),
		Oficio:          strings.TrimSpace(req.Oficio),
		LinkOficio:      strings.TrimSpace(req.LinkOficio),
		LinkResposta:    strings.TrimSpace(req.LinkResposta),
		NaoConformidade: strings.TrimSpace(req.NaoConformidade),
		Status:          strings.TrimSpace(req.Status),
		Observacoes:     req.Observacoes,
	}
	if c.Status == "" {
		c.Status = models.StatusPendente
	}

	var err error
	if c.DataRecebimento, err = dataOpcional(req.DataRecebimento); err != nil {
		apierro.Validacao(w, "dataRecebimento inválida")
		return
	}
	if c.DataPrazo, err = dataOpcional(req.DataPrazo); err != nil {
		apierro.Validacao(w, "dataPrazo inválida")
		return
	}
	if msg := validar(c); msg != "" {
		apierro.Validacao(w, msg)
		return
	}

	if err := h.Repository.Criar(r.Context(), &c); err != nil {
		h.erroEscrita(w, err, "erro ao salvar controle de prazo")
		return
	}
	h.alterou()
	responder(w, http.StatusCreated, c)
}

// PATCH /api/controle-prazos/{id}
func (h *Handler) Atualizar(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil || id <= 0 {
		apierro.Validacao(w, "ID inválido")
		return
	}

	var req AtualizarControlePrazoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierro.Validacao(w, "payload inválido")
		return
	}

	if req.somenteStatus() {
		status := strings.TrimSpace(*req.Status)
		if !models.StatusValido(status) {
			apierro.Validacao(w, "status inválido: use pendente, regularizado ou nao_regularizado")
			return
		}
		var statusAnterior string
		if atual, err := h.Repository.BuscarPorID(r.Context(), uint(id)); err == nil {
			statusAnterior = atual.Status
		}
		if err := h.Repository.AtualizarStatus(r.Context(), uint(id), status); err != nil {
			h.erroEscrita(w, err, "erro ao atualizar status")
			return
		}
		h.alterou()
		if status != statusAnterior {
			h.mudouStatus(r.Context(), uint(id), status)
		}
		h.responderAtual(w, r, uint(id))
		return
	}

	c, err := h.Repository.BuscarPorID(r.Context(), uint(id))
	if errors.Is(err, ErrNaoEncontrado) {
		apierro.NaoEncontrado(w, "controle de prazo não encontrado")
		return
	}
	if err != nil {
		h.Log.Error("erro ao buscar controle de prazo", "id", id, "error", err)
		apierro.Armazenamento(w, "erro ao buscar controle de prazo")
		return
	}

	if req.Unidade != nil {
		c.Unidade = strings.TrimSpace(*req.Unidade)
	}
	if req.Oficio != nil {
		c.Oficio = strings.TrimSpace(*req.Oficio)
	}
	if req.LinkOficio != nil {
		c.LinkOficio = strings.TrimSpace(*req.LinkOficio)
	}
	if req.LinkResposta != nil {
		c.LinkResposta = strings.TrimSpace(*req.LinkResposta)
	}
	if req.NaoConformidade != nil {
		c.NaoConformidade = strings.TrimSpace(*req.NaoConformidade)
	}
	statusAnterior := c.Status
	if req.Status != nil {
		c.Status = strings.TrimSpace(*req.Status)
	}
	if req.Observacoes != nil {
		c.Observacoes = *req.Observacoes
	}
	if req.DataRecebimento != nil {
		if c.DataRecebimento, err = dataOpcional(*req.DataRecebimento); err != nil {
			apierro.Validacao(w, "dataRecebimento inválida")
			return
		}
	}
	if req.DataPrazo != nil {
		if c.DataPrazo, err = dataOpcional(*req.DataPrazo); err != nil {
			apierro.Validacao(w, "dataPrazo inválida")
			return
		}
	}
	if msg := validar(*c); msg != "" {
		apierro.Validacao(w, msg)
		return
	}

	if err := h.Repository.Atualizar(r.Context(), c); err != nil {
		h.erroEscrita(w, err, "erro ao atualizar controle de prazo")
		return
	}
	h.alterou()
	if c.Status != statusAnterior {
		h.mudouStatus(r.Context(), c.ID, c.Status)
	}
	responder(w, http.StatusOK, c)
}

// DELETE /api/controle-prazos/{id}
// Responde 204 mesmo quando o id não existe.
func (h *Handler) Deletar(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil || id <= 0 {
		apierro.Validacao(w, "ID inválido")
		return
	}
	if err := h.Repository.Deletar(r.Context(), uint(id)); err != nil {
		h.Log.Error("erro ao deletar controle de prazo", "id", id, "error", err)
		apierro.Armazenamento(w, "erro ao deletar controle de prazo")
		return
	}
	h.alterou()
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) responderAtual(w http.ResponseWriter, r *http.Request, id uint) {
	c, err := h.Repository.BuscarPorID(r.Context(), id)
	if err != nil {
		h.erroEscrita(w, err, "erro ao buscar controle de prazo")
		return
	}
	responder(w, http.StatusOK, c)
}

func (h *Handler) erroEscrita(w http.ResponseWriter, err error, msg string) {
	switch {
	case errors.Is(err, ErrNaoEncontrado):
		apierro.NaoEncontrado(w, "controle de prazo não encontrado")
	case errors.Is(err, ErrDuplicado):
		apierro.Conflito(w, "já existe controle de prazo com o mesmo ofício, unidade e não conformidade")
	default:
		h.Log.Error(msg, "error", err)
		apierro.Armazenamento(w, msg)
	}
}

func (h *Handler) mudouStatus(ctx context.Context, id uint, status string) {
	if h.AoMudarStatus != nil {
		h.AoMudarStatus(ctx, id, status)
	}
}

func (h *Handler) alterou() {
	if h.AoAlterar != nil {
		h.AoAlterar()
	}
}

func validar(c models.ControlePrazo) string {
	if c.Unidade == "" || c.Oficio == "" || c.NaoConformidade == "" {
		return "unidade, oficio e naoConformidade são obrigatórios"
	}
	if !models.StatusValido(c.Status) {
		return "status inválido: use pendente, regularizado ou nao_regularizado"
	}
	return ""
}

var errData = errors.New("data inválida")

// dataOpcional: vazio vira nil; texto ilegível é erro.
func dataOpcional(s string) (*time.Time, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	if d := models.ParseDia(s); d != nil {
		return d, nil
	}
	return nil, errData
}

func responder(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
