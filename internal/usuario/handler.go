package usuario

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/corregedoria/api-inspecoes/internal/apierro"
	"github.com/corregedoria/api-inspecoes/internal/auth"
	"github.com/corregedoria/api-inspecoes/internal/utils"
)

const TamanhoMinimoSenha = 8

// Handler encapsula repository e emissor de tokens
type Handler struct {
	Repository Repository
	Tokens     *auth.Tokens
	Log        *slog.Logger
}

func NewHandler(repo Repository, tokens *auth.Tokens, log *slog.Logger) *Handler {
	if log == nil {
		log = slog.Default()
	}
	return &Handler{
		Repository: repo,
		Tokens:     tokens,
		Log:        log.With("component", "usuario"),
	}
}

// Login gera um JWT para credenciais válidas
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierro.Validacao(w, "payload inválido")
		return
	}

	user, err := h.Repository.BuscarPorEmail(r.Context(), req.Email)
	if err != nil {
		if !errors.Is(err, ErrNaoEncontrado) {
			h.Log.Error("erro ao buscar usuário", "error", err)
			apierro.Armazenamento(w, "erro ao buscar usuário")
			return
		}
		apierro.NaoAutorizado(w, "credenciais inválidas")
		return
	}
	if !utils.CheckSenha(user.Senha, req.Senha) {
		apierro.NaoAutorizado(w, "credenciais inválidas")
		return
	}

	token, err := h.Tokens.Gerar(user.ID, user.Email, user.IsAdmin)
	if err != nil {
		h.Log.Error("erro ao gerar token", "error", err)
		apierro.Interno(w, "erro ao gerar token")
		return
	}

	h.Log.Info("login", "usuario", user.ID)
	responder(w, http.StatusOK, LoginResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   int(h.Tokens.TTL.Seconds()),
		Usuario:     *user,
	})
}

// GET /api/auth/me
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	id, _, _ := auth.Usuario(r.Context())
	user, err := h.Repository.BuscarPorID(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNaoEncontrado) {
			apierro.NaoEncontrado(w, "usuário não encontrado")
			return
		}
		h.Log.Error("erro ao buscar usuário", "error", err)
		apierro.Armazenamento(w, "erro ao buscar usuário")
		return
	}
	responder(w, http.StatusOK, user)
}

// POST /api/usuarios (somente admin)
func (h *Handler) Criar(w http.ResponseWriter, r *http.Request) {
	var req CriarUsuarioRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierro.Validacao(w, "payload inválido")
		return
	}

	u, err := Novo(r.Context(), h.Repository, req)
	switch {
	case errors.Is(err, ErrEmailEmUso):
		apierro.Conflito(w, err.Error())
		return
	case errors.Is(err, ErrDadosInvalidos):
		apierro.Validacao(w, err.Error())
		return
	case err != nil:
		h.Log.Error("erro ao criar usuário", "error", err)
		apierro.Armazenamento(w, "erro ao criar usuário")
		return
	}

	h.Log.Info("usuário criado", "usuario", u.ID, "admin", u.IsAdmin)
	responder(w, http.StatusCreated, u)
}

var ErrDadosInvalidos = errors.New("dados de usuário inválidos")

// Novo valida, gera o hash da senha e persiste o usuário.
func Novo(ctx context.Context, repo Repository, req CriarUsuarioRequest) (*Usuario, error) {
	email := strings.TrimSpace(req.Email)
	if email == "" || !strings.Contains(email, "@") {
		return nil, fmt.Errorf("%w: e-mail obrigatório", ErrDadosInvalidos)
	}
	if len(req.Senha) < TamanhoMinimoSenha {
		return nil, fmt.Errorf("%w: senha deve ter ao menos %d caracteres", ErrDadosInvalidos, TamanhoMinimoSenha)
	}

	hash, err := utils.HashSenha(req.Senha)
	if errors.Is(err, utils.ErrSenhaLonga) {
		return nil, fmt.Errorf("%w: %v", ErrDadosInvalidos, err)
	}
	if err != nil {
		return nil, fmt.Errorf("usuario: hash da senha: %w", err)
	}
	u := &Usuario{
		Nome:    strings.TrimSpace(req.Nome),
		Email:   email,
		Senha:   hash,
		IsAdmin: req.IsAdmin,
	}
	if err := repo.Criar(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// GarantirAdmin cria o administrador inicial quando o e-mail ainda não existe.
// Devolve true se criou.
func GarantirAdmin(ctx context.Context, repo Repository, email, senha string) (bool, error) {
	if email == "" || senha == "" {
		return false, nil
	}
	if _, err := repo.BuscarPorEmail(ctx, email); err == nil {
		return false, nil
	} else if !errors.Is(err, ErrNaoEncontrado) {
		return false, err
	}
	if _, err := Novo(ctx, repo, CriarUsuarioRequest{Nome: "Administrador", Email: email, Senha: senha, IsAdmin: true}); err != nil {
		return false, err
	}
	return true, nil
}

func responder(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
