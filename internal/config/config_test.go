package config

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
	"time"
)

func TestCarregar_Padroes(t *testing.T) {
	for _, k := range []string{"DATABASE_URL", "DB_HOST", "DB_PORT", "TOKEN_TTL", "LOG_LEVEL", "LOG_FORMAT",
		"CACHE_RELATORIO_TTL", "CACHE_RELATORIO_TAMANHO", "CORS_ORIGINS", "PORT", "BCRYPT_CUSTO"} {
		t.Setenv(k, "")
	}
	t.Setenv("CORS_ORIGINS", "*")
	t.Setenv("PORT", "8080")

	cfg, err := Carregar()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.UsaBanco() {
		t.Error("sem DB_HOST/DATABASE_URL deve usar memória")
	}
	if cfg.DBPort != 5432 || cfg.TokenTTL != 8*time.Hour || cfg.CacheRelatorioTamanho != 128 || cfg.BcryptCusto != 10 {
		t.Errorf("cfg = %+v", cfg)
	}
	if cfg.LogLevel != slog.LevelInfo || cfg.LogFormat != "json" {
		t.Errorf("log = %v %q", cfg.LogLevel, cfg.LogFormat)
	}
}

func TestCarregar_Valores(t *testing.T) {
	t.Setenv("DB_HOST", "db")
	t.Setenv("DB_PORT", "6543")
	t.Setenv("DB_SSL_MODE_DISABLE", "true")
	t.Setenv("TOKEN_TTL", "30m")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "text")
	t.Setenv("CORS_ORIGINS", "http://localhost:3000, https://painel.exemplo")
	t.Setenv("CACHE_RELATORIO_TAMANHO", "0")

	cfg, err := Carregar()
	if err != nil {
		t.Fatal(err)
	}
	if !cfg.UsaBanco() || cfg.DBPort != 6543 || !cfg.DBSSLModeDisabled {
		t.Errorf("banco = %+v", cfg)
	}
	if cfg.TokenTTL != 30*time.Minute || cfg.LogLevel != slog.LevelDebug {
		t.Errorf("cfg = %+v", cfg)
	}
	if len(cfg.CORSOrigins) != 2 || cfg.CORSOrigins[1] != "https://painel.exemplo" {
		t.Errorf("CORSOrigins = %v", cfg.CORSOrigins)
	}
	if cfg.CacheRelatorioTamanho != 0 {
		t.Errorf("CacheRelatorioTamanho = %d", cfg.CacheRelatorioTamanho)
	}
}

func TestCarregar_Invalidos(t *testing.T) {
	casos := map[string]string{
		"DB_PORT":                 "porta",
		"TOKEN_TTL":               "oito horas",
		"LOG_LEVEL":               "verbose",
		"LOG_FORMAT":              "xml",
		"CACHE_RELATORIO_TAMANHO": "muito",
		"BCRYPT_CUSTO":            "40",
	}
	for k, v := range casos {
		t.Run(k, func(t *testing.T) {
			t.Setenv(k, v)
			if _, err := Carregar(); err == nil {
				t.Errorf("%s=%q deveria falhar", k, v)
			}
		})
	}
}

func TestConfigurarLogger(t *testing.T) {
	var buf bytes.Buffer
	log := ConfigurarLogger(&Config{LogLevel: slog.LevelWarn, LogFormat: "json"}, &buf)
	log.Info("ignorado")
	log.Warn("registrado", "k", 1)

	saida := buf.String()
	if strings.Contains(saida, "ignorado") || !strings.Contains(saida, `"msg":"registrado"`) {
		t.Errorf("saida = %s", saida)
	}
}
