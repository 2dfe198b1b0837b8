package middleware

import (
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/corregedoria/api-inspecoes/internal/apierro"
)

// Recover transforma panics em 500 INTERNAL_ERROR.
func Recover(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			wrapped := newResponseWriter(w)
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				logger.Error("panic no handler",
					"path", r.URL.Path,
					"panic", rec,
					"stack", string(debug.Stack()))
				if !wrapped.escreveu {
					apierro.Interno(wrapped, "erro interno")
				}
			}()
			next.ServeHTTP(wrapped, r)
		})
	}
}
