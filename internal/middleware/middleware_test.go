package middleware

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRequestLogger_NivelPorStatus(t *testing.T) {
	casos := []struct {
		status int
		nivel  string
	}{
		{http.StatusOK, "INFO"},
		{http.StatusNotFound, "WARN"},
		{http.StatusInternalServerError, "ERROR"},
	}
	for _, c := range casos {
		var buf bytes.Buffer
		log := slog.New(slog.NewJSONHandler(&buf, nil))
		h := RequestLogger(log)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(c.status)
			_, _ = w.Write([]byte("abc"))
		}))
		h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/inspections", nil))

		saida := buf.String()
		if !strings.Contains(saida, `"level":"`+c.nivel+`"`) || !strings.Contains(saida, `"bytes":3`) {
			t.Errorf("status %d: log = %s", c.status, saida)
		}
	}
}

func TestRecover(t *testing.T) {
	var buf bytes.Buffer
	h := Recover(slog.New(slog.NewJSONHandler(&buf, nil)))(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("falha inesperada")
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusInternalServerError || !strings.Contains(rec.Body.String(), "INTERNAL_ERROR") {
		t.Errorf("status = %d body = %s", rec.Code, rec.Body)
	}
	if !strings.Contains(buf.String(), "falha inesperada") {
		t.Errorf("panic não registrado: %s", buf.String())
	}
}

func TestMetricas_UsaTemplateDaRota(t *testing.T) {
	r := mux.NewRouter()
	r.Use(Metricas)
	r.HandleFunc("/api/controle-prazos/{id}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}).Methods(http.MethodDelete)

	antes := testutil.ToFloat64(httpRequestsTotal.WithLabelValues(http.MethodDelete, "/api/controle-prazos/{id}", "204"))
	for _, id := range []string{"1", "2", "3"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodDelete, "/api/controle-prazos/"+id, nil))
	}
	depois := testutil.ToFloat64(httpRequestsTotal.WithLabelValues(http.MethodDelete, "/api/controle-prazos/{id}", "204"))
	if depois-antes != 3 {
		t.Errorf("contador = %v, want +3", depois-antes)
	}
}
