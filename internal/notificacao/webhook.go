package notificacao

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"
)

// Webhook avisa um sistema externo quando uma planilha é importada.
// URL vazia desliga o envio.
type Webhook struct {
	URL    string
	Client *http.Client
	Log    *slog.Logger
}

// EventoImportacao é o corpo enviado ao webhook.
type EventoImportacao struct {
	Mensagem    string    `json:"mensagem"`
	LoteID      string    `json:"loteId"`
	Tipo        string    `json:"tipo"`
	Arquivo     string    `json:"arquivo"`
	EnviadoPor  string    `json:"enviadoPor"`
	Total       int       `json:"total"`
	Processados int       `json:"processados"`
	Erros       int       `json:"erros"`
	CriadoEm    time.Time `json:"criadoEm"`
}

func NewWebhook(url string, log *slog.Logger) *Webhook {
	if log == nil {
		log = slog.Default()
	}
	return &Webhook{
		URL:    url,
		Client: &http.Client{Timeout: 5 * time.Second},
		Log:    log.With("component", "notificacao"),
	}
}

// Enviar faz o POST de forma síncrona.
func (w *Webhook) Enviar(ctx context.Context, ev EventoImportacao) error {
	if w == nil || w.URL == "" {
		return nil
	}
	body, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.URL, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := w.Client.Do(req)
	if err != nil {
		return fmt.Errorf("notificacao: enviar webhook: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return fmt.Errorf("notificacao: webhook respondeu %d", resp.StatusCode)
	}
	return nil
}

// EnviarAssincrono dispara em background; falhas só são registradas no log.
func (w *Webhook) EnviarAssincrono(ev EventoImportacao) {
	if w == nil || w.URL == "" {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := w.Enviar(ctx, ev); err != nil {
			w.Log.Warn("erro ao enviar webhook", "lote", ev.LoteID, "error", err)
		}
	}()
}
