package main

import (
	"fmt"
	"log/slog"

	"github.com/corregedoria/api-inspecoes/internal/comentario"
	"github.com/corregedoria/api-inspecoes/internal/config"
	"github.com/corregedoria/api-inspecoes/internal/controleprazo"
	"github.com/corregedoria/api-inspecoes/internal/importacao"
	"github.com/corregedoria/api-inspecoes/internal/inspecao"
	"github.com/corregedoria/api-inspecoes/internal/rotas"
	"github.com/corregedoria/api-inspecoes/internal/usuario"
	"github.com/corregedoria/api-inspecoes/internal/utils"
	"github.com/corregedoria/api-inspecoes/internal/utils/db"

	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

var rootCmd = &cobra.Command{
	Use:   "api-inspecoes",
	Short: "API de inspeções e controle de prazos da corregedoria",
	Long: `api-inspecoes serve a API HTTP de inspeções e controle de prazos
e oferece comandos de manutenção (importação de planilhas e cadastro de usuários).`,
	SilenceUsage: true,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(importarCmd)
	rootCmd.AddCommand(criarUsuarioCmd)
}

// armazenamento agrupa os repositórios de um backend (PostgreSQL ou memória).
type armazenamento struct {
	Nome        string
	Inspecoes   inspecao.Repository
	Prazos      controleprazo.Repository
	Usuarios    usuario.Repository
	Lotes       importacao.Repository
	Comentarios comentario.Repository
	DB          *gorm.DB
}

func (a *armazenamento) Fechar() {
	if a.DB == nil {
		return
	}
	if sqlDB, err := a.DB.DB(); err == nil {
		_ = sqlDB.Close()
	}
}

// carregar lê a configuração e prepara o logger global.
func carregar() (*config.Config, *slog.Logger, error) {
	cfg, err := config.Carregar()
	if err != nil {
		return nil, nil, fmt.Errorf("configuração: %w", err)
	}
	if err := utils.DefinirCustoSenha(cfg.BcryptCusto); err != nil {
		return nil, nil, fmt.Errorf("configuração: %w", err)
	}
	return cfg, config.ConfigurarLogger(cfg, nil), nil
}

// abrirArmazenamento conecta ao PostgreSQL e migra as tabelas; sem banco
// configurado usa memória, a menos que exigirBanco seja true.
func abrirArmazenamento(cfg *config.Config, log *slog.Logger, exigirBanco bool) (*armazenamento, error) {
	if !cfg.UsaBanco() {
		if exigirBanco {
			return nil, fmt.Errorf("configure DATABASE_URL ou DB_HOST")
		}
		log.Warn("banco não configurado: usando armazenamento em memória (dados se perdem ao reiniciar)")
		return &armazenamento{
			Nome:        rotas.ArmazenamentoMemoria,
			Inspecoes:   inspecao.NewRepositoryMemoria(),
			Prazos:      controleprazo.NewRepositoryMemoria(),
			Usuarios:    usuario.NewRepositoryMemoria(),
			Lotes:       importacao.NewRepositoryMemoria(),
			Comentarios: comentario.NewRepositoryMemoria(),
		}, nil
	}

	conn, err := db.GetDB(cfg)
	if err != nil {
		return nil, err
	}
	for _, migrar := range []func(*gorm.DB) error{
		inspecao.Migrate,
		controleprazo.Migrate,
		usuario.Migrate,
		importacao.Migrate,
		comentario.Migrate,
	} {
		if err := migrar(conn); err != nil {
			return nil, fmt.Errorf("migração: %w", err)
		}
	}
	log.Info("banco conectado", "host", cfg.DBHost, "database", cfg.DBName)

	return &armazenamento{
		Nome:        rotas.ArmazenamentoPostgres,
		Inspecoes:   inspecao.NewRepository(conn),
		Prazos:      controleprazo.NewRepository(conn),
		Usuarios:    usuario.NewRepository(conn),
		Lotes:       importacao.NewRepository(conn),
		Comentarios: comentario.NewRepository(conn),
		DB:          conn,
	}, nil
}
