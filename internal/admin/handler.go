// Package admin expõe as rotas administrativas: upload de planilhas,
// limpeza das coleções e histórico de importações.
package admin

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/corregedoria/api-inspecoes/internal/apierro"
	"github.com/corregedoria/api-inspecoes/internal/auth"
	"github.com/corregedoria/api-inspecoes/internal/controleprazo"
	"github.com/corregedoria/api-inspecoes/internal/importacao"
	"github.com/corregedoria/api-inspecoes/internal/inspecao"
)

// TamanhoMaximoUpload limita o corpo multipart (32 MiB).
const TamanhoMaximoUpload = 32 << 20

const limitePadraoUploads = 50

type Handler struct {
	Servico   *importacao.Servico
	Inspecoes inspecao.Repository
	Prazos    controleprazo.Repository
	Lotes     importacao.Repository
	Log       *slog.Logger

	// AoAlterar é chamado depois de cada limpeza de coleção.
	AoAlterar func()
}

func NewHandler(srv *importacao.Servico, insp inspecao.Repository, prazos controleprazo.Repository, lotes importacao.Repository, log *slog.Logger, aoAlterar func()) *Handler {
	if log == nil {
		log = slog.Default()
	}
	return &Handler{
		Servico:   srv,
		Inspecoes: insp,
		Prazos:    prazos,
		Lotes:     lotes,
		Log:       log.With("component", "admin"),
		AoAlterar: aoAlterar,
	}
}

type importador func(ctx context.Context, r io.Reader, arquivo, enviadoPor string) (importacao.Resultado, error)

// POST /api/admin/upload-excel
func (h *Handler) UploadInspecoes(w http.ResponseWriter, r *http.Request) {
	h.upload(w, r, h.Servico.ImportarInspecoes)
}

// POST /api/admin/upload-controle-prazos
func (h *Handler) UploadControlePrazos(w http.ResponseWriter, r *http.Request) {
	h.upload(w, r, h.Servico.ImportarControlePrazos)
}

func (h *Handler) upload(w http.ResponseWriter, r *http.Request, importar importador) {
	r.Body = http.MaxBytesReader(w, r.Body, TamanhoMaximoUpload)
	arquivo, cab, err := r.FormFile("file")
	if err != nil {
		apierro.Escrever(w, http.StatusBadRequest, apierro.CodigoUpload, "campo 'file' ausente ou inválido")
		return
	}
	defer arquivo.Close()

	_, email, _ := auth.Usuario(r.Context())
	res, err := importar(r.Context(), arquivo, cab.Filename, email)
	if err != nil {
		if errors.Is(err, importacao.ErrArquivoInvalido) {
			apierro.Escrever(w, http.StatusBadRequest, apierro.CodigoUpload, err.Error())
			return
		}
		h.Log.Error("erro ao importar planilha", "arquivo", cab.Filename, "error", err)
		apierro.Armazenamento(w, "erro ao gravar registros importados")
		return
	}
	responder(w, http.StatusOK, res)
}

// DELETE /api/admin/delete-all-inspections
func (h *Handler) DeletarTodasInspecoes(w http.ResponseWriter, r *http.Request) {
	if err := h.Inspecoes.DeletarTodos(r.Context()); err != nil {
		h.Log.Error("erro ao apagar inspeções", "error", err)
		apierro.Armazenamento(w, "erro ao apagar inspeções")
		return
	}
	h.alterou()
	h.Log.Warn("todas as inspeções foram apagadas", "por", emailDe(r))
	responder(w, http.StatusOK, map[string]string{"message": "Todas as inspeções foram removidas"})
}

// DELETE /api/admin/delete-all-controle-prazos
func (h *Handler) DeletarTodosControlePrazos(w http.ResponseWriter, r *http.Request) {
	if err := h.Prazos.DeletarTodos(r.Context()); err != nil {
		h.Log.Error("erro ao apagar controle de prazos", "error", err)
		apierro.Armazenamento(w, "erro ao apagar controle de prazos")
		return
	}
	h.alterou()
	h.Log.Warn("todo o controle de prazos foi apagado", "por", emailDe(r))
	responder(w, http.StatusOK, map[string]string{"message": "Todos os registros de controle de prazos foram removidos"})
}

// GET /api/admin/uploads?limite=N
func (h *Handler) ListarUploads(w http.ResponseWriter, r *http.Request) {
	limite := limitePadraoUploads
	if v := r.URL.Query().Get("limite"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			apierro.Validacao(w, "limite inválido")
			return
		}
		limite = n
	}
	lotes, err := h.Lotes.ListarRecentes(r.Context(), limite)
	if err != nil {
		h.Log.Error("erro ao listar importações", "error", err)
		apierro.Armazenamento(w, "erro ao listar importações")
		return
	}
	responder(w, http.StatusOK, lotes)
}

func (h *Handler) alterou() {
	if h.AoAlterar != nil {
		h.AoAlterar()
	}
}

func emailDe(r *http.Request) string {
	_, email, _ := auth.Usuario(r.Context())
	return email
}

func responder(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
