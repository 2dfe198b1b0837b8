package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/corregedoria/api-inspecoes/internal/apierro"
)

type ctxKey string

const (
	CtxUserID  ctxKey = "usuarioID"
	CtxIsAdmin ctxKey = "isAdmin"
	CtxEmail   ctxKey = "email"
)

// Autenticar exige "Authorization: Bearer <token>" e injeta o usuário no contexto.
func (t *Tokens) Autenticar(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodOptions {
			next.ServeHTTP(w, r)
			return
		}
		h := r.Header.Get("Authorization")
		if h == "" || !strings.HasPrefix(h, "Bearer ") {
			apierro.NaoAutorizado(w, "token ausente")
			return
		}
		claims, err := t.Validar(strings.TrimPrefix(h, "Bearer "))
		if err != nil {
			apierro.NaoAutorizado(w, "token inválido")
			return
		}
		next.ServeHTTP(w, r.WithContext(ComUsuario(r.Context(), claims.UserID, claims.Email, claims.IsAdmin)))
	})
}

func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if ok, _ := r.Context().Value(CtxIsAdmin).(bool); !ok {
			apierro.Proibido(w, "acesso restrito a administradores")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// ComUsuario grava a identidade do chamador no contexto.
func ComUsuario(ctx context.Context, id uint, email string, isAdmin bool) context.Context {
	ctx = context.WithValue(ctx, CtxUserID, id)
	ctx = context.WithValue(ctx, CtxEmail, email)
	return context.WithValue(ctx, CtxIsAdmin, isAdmin)
}

// Usuario lê a identidade gravada por Autenticar.
func Usuario(ctx context.Context) (id uint, email string, isAdmin bool) {
	id, _ = ctx.Value(CtxUserID).(uint)
	email, _ = ctx.Value(CtxEmail).(string)
	isAdmin, _ = ctx.Value(CtxIsAdmin).(bool)
	return id, email, isAdmin
}
