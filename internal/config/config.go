package config

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config reúne a configuração lida do ambiente (.env opcional).
type Config struct {
	Port string

	// Banco: DATABASE_URL tem prioridade sobre DB_HOST/DB_PORT/...
	DatabaseURL       string
	DBHost            string
	DBPort            uint
	DBName            string
	DBUsername        string
	DBPassword        string
	DBSSLModeDisabled bool

	JWTSecret   string
	TokenTTL    time.Duration
	CORSOrigins []string

	LogLevel  slog.Level
	LogFormat string

	AdminEmail string
	AdminSenha string
	// BcryptCusto vale para senhas criadas a partir de agora.
	BcryptCusto int

	WebhookURL string

	CacheRelatorioTTL     time.Duration
	CacheRelatorioTamanho int
}

// UsaBanco indica se há PostgreSQL configurado; senão o armazenamento é em memória.
func (c *Config) UsaBanco() bool {
	return c.DatabaseURL != "" || c.DBHost != ""
}

// Carregar lê o .env (se existir) e as variáveis de ambiente.
func Carregar() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Port:        getEnv("PORT", "8080"),
		DatabaseURL: getEnv("DATABASE_URL", ""),
		DBHost:      getEnv("DB_HOST", ""),
		DBName:      getEnv("DB_NAME", "inspecoes"),
		DBUsername:  getEnv("DB_USERNAME", "postgres"),
		DBPassword:  getEnv("DB_PASSWORD", ""),
		JWTSecret:   getEnv("JWT_SECRET", ""),
		LogFormat:   strings.ToLower(getEnv("LOG_FORMAT", "json")),
		AdminEmail:  getEnv("ADMIN_EMAIL", ""),
		AdminSenha:  getEnv("ADMIN_SENHA", ""),
		WebhookURL:  getEnv("WEBHOOK_URL", ""),
		CORSOrigins: lista(getEnv("CORS_ORIGINS", "*")),
	}
	cfg.DBSSLModeDisabled = getEnv("DB_SSL_MODE_DISABLE", "") == "true"

	port, err := strconv.ParseUint(getEnv("DB_PORT", "5432"), 10, 32)
	if err != nil {
		return nil, fmt.Errorf("DB_PORT inválida: %w", err)
	}
	cfg.DBPort = uint(port)

	if cfg.TokenTTL, err = getEnvDuration("TOKEN_TTL", 8*time.Hour); err != nil {
		return nil, err
	}
	if cfg.CacheRelatorioTTL, err = getEnvDuration("CACHE_RELATORIO_TTL", time.Minute); err != nil {
		return nil, err
	}
	if cfg.CacheRelatorioTamanho, err = getEnvInt("CACHE_RELATORIO_TAMANHO", 128); err != nil {
		return nil, err
	}
	if cfg.BcryptCusto, err = getEnvInt("BCRYPT_CUSTO", 10); err != nil {
		return nil, err
	}
	if cfg.BcryptCusto < 4 || cfg.BcryptCusto > 31 {
		return nil, fmt.Errorf("BCRYPT_CUSTO inválido %d: use de 4 a 31", cfg.BcryptCusto)
	}
	if cfg.LogLevel, err = parseLogLevel(getEnv("LOG_LEVEL", "info")); err != nil {
		return nil, err
	}
	if cfg.LogFormat != "json" && cfg.LogFormat != "text" {
		return nil, fmt.Errorf("LOG_FORMAT inválido %q: use json ou text", cfg.LogFormat)
	}
	return cfg, nil
}

// ConfigurarLogger cria o logger slog global conforme LOG_LEVEL/LOG_FORMAT.
func ConfigurarLogger(cfg *Config, w io.Writer) *slog.Logger {
	if w == nil {
		w = os.Stdout
	}
	opts := &slog.HandlerOptions{Level: cfg.LogLevel}

	var handler slog.Handler
	if cfg.LogFormat == "text" {
		handler = slog.NewTextHandler(w, opts)
	} else {
		handler = slog.NewJSONHandler(w, opts)
	}
	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger
}

// getEnv trata variável vazia como ausente.
func getEnv(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) (int, error) {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s inválido %q: %w", key, v, err)
	}
	return n, nil
}

func getEnvDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s inválido %q: %w", key, v, err)
	}
	return d, nil
}

func parseLogLevel(level string) (slog.Level, error) {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("LOG_LEVEL inválido %q: use debug, info, warn ou error", level)
	}
}

func lista(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
