package db

import (
	"testing"

	"github.com/corregedoria/api-inspecoes/internal/config"
)

func TestParametros_DSN(t *testing.T) {
	p := ParametrosDe(&config.Config{
		DBHost: "db", DBPort: 5432, DBName: "inspecoes", DBUsername: "app", DBPassword: "x",
		DBSSLModeDisabled: true,
	})
	want := "host=db user=app password=x dbname=inspecoes port=5432 sslmode=disable"
	if got := p.DSN(); got != want {
		t.Errorf("DSN() = %q, want %q", got, want)
	}

	p.URL = "postgres://app:x@db:5432/inspecoes"
	if got := p.DSN(); got != p.URL {
		t.Errorf("URL deve ter prioridade, got %q", got)
	}
}
