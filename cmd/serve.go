package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/corregedoria/api-inspecoes/internal/auth"
	"github.com/corregedoria/api-inspecoes/internal/notificacao"
	"github.com/corregedoria/api-inspecoes/internal/relatorio"
	"github.com/corregedoria/api-inspecoes/internal/rotas"
	"github.com/corregedoria/api-inspecoes/internal/usuario"

	"github.com/spf13/cobra"
)

const tempoEncerramento = 15 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Inicia o servidor HTTP",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, log, err := carregar()
	if err != nil {
		return err
	}
	if cfg.JWTSecret == "" {
		return errors.New("JWT_SECRET não configurado")
	}

	arm, err := abrirArmazenamento(cfg, log, false)
	if err != nil {
		return err
	}
	defer arm.Fechar()

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	criado, err := usuario.GarantirAdmin(ctx, arm.Usuarios, cfg.AdminEmail, cfg.AdminSenha)
	if err != nil {
		return fmt.Errorf("administrador inicial: %w", err)
	}
	if criado {
		log.Info("administrador inicial criado", "email", cfg.AdminEmail)
	}

	handler := rotas.Configurar(rotas.Deps{
		Inspecoes:     arm.Inspecoes,
		Prazos:        arm.Prazos,
		Usuarios:      arm.Usuarios,
		Lotes:         arm.Lotes,
		Comentarios:   arm.Comentarios,
		Tokens:        auth.NewTokens(cfg.JWTSecret, cfg.TokenTTL),
		Cache:         relatorio.NewCache(cfg.CacheRelatorioTamanho, cfg.CacheRelatorioTTL),
		Webhook:       notificacao.NewWebhook(cfg.WebhookURL, log),
		CORSOrigins:   cfg.CORSOrigins,
		Armazenamento: arm.Nome,
		Log:           log,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	erros := make(chan error, 1)
	go func() {
		log.Info("servidor iniciado", "addr", srv.Addr, "armazenamento", arm.Nome)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			erros <- err
		}
		close(erros)
	}()

	select {
	case err := <-erros:
		return fmt.Errorf("servidor: %w", err)
	case <-ctx.Done():
	}

	log.Info("encerrando servidor")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), tempoEncerramento)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("encerramento: %w", err)
	}
	log.Info("servidor encerrado")
	return nil
}
