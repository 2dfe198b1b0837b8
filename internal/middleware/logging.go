// Package middleware reúne os middlewares HTTP da API: log de requisições,
// métricas Prometheus e recuperação de panics.
package middleware

import (
	"log/slog"
	"net/http"
	"time"
)

// responseWriter guarda o status e o tamanho da resposta.
type responseWriter struct {
	http.ResponseWriter
	statusCode int
	written    int64
	escreveu   bool
}

func newResponseWriter(w http.ResponseWriter) *responseWriter {
	if rw, ok := w.(*responseWriter); ok {
		return rw
	}
	return &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
}

func (rw *responseWriter) WriteHeader(code int) {
	if rw.escreveu {
		return
	}
	rw.statusCode = code
	rw.escreveu = true
	rw.ResponseWriter.WriteHeader(code)
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	rw.escreveu = true
	n, err := rw.ResponseWriter.Write(b)
	rw.written += int64(n)
	return n, err
}

// Unwrap permite que http.ResponseController alcance o ResponseWriter original.
func (rw *responseWriter) Unwrap() http.ResponseWriter {
	return rw.ResponseWriter
}

// RequestLogger registra método, caminho, status, duração e bytes de cada requisição.
// O nível segue o status: INFO até 3xx, WARN para 4xx, ERROR para 5xx.
func RequestLogger(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			wrapped := newResponseWriter(w)

			next.ServeHTTP(wrapped, r)

			level := slog.LevelInfo
			if wrapped.statusCode >= 500 {
				level = slog.LevelError
			} else if wrapped.statusCode >= 400 {
				level = slog.LevelWarn
			}

			logger.LogAttrs(r.Context(), level, "requisição HTTP",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", wrapped.statusCode),
				slog.Duration("duration", time.Since(start)),
				slog.Int64("bytes", wrapped.written),
				slog.String("remote_addr", r.RemoteAddr),
			)
		})
	}
}
