package notificacao

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestWebhook_Enviar(t *testing.T) {
	var recebido EventoImportacao
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("Content-Type = %q", ct)
		}
		_ = json.NewDecoder(r.Body).Decode(&recebido)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	wh := NewWebhook(srv.URL, nil)
	err := wh.Enviar(context.Background(), EventoImportacao{LoteID: "abc", Tipo: "inspecoes", Processados: 3})
	if err != nil {
		t.Fatal(err)
	}
	if recebido.LoteID != "abc" || recebido.Processados != 3 {
		t.Errorf("recebido = %+v", recebido)
	}
}

func TestWebhook_StatusDeErro(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	if err := NewWebhook(srv.URL, nil).Enviar(context.Background(), EventoImportacao{}); err == nil {
		t.Error("esperado erro para 502")
	}
}

func TestWebhook_SemURLNaoEnvia(t *testing.T) {
	if err := NewWebhook("", nil).Enviar(context.Background(), EventoImportacao{}); err != nil {
		t.Errorf("err = %v", err)
	}
	var nulo *Webhook
	nulo.EnviarAssincrono(EventoImportacao{})
}
