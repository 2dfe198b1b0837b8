// Package testhelpers sobe um PostgreSQL descartável (testcontainers) para os
// testes de integração dos repositórios gorm.
package testhelpers

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/gorm"

	"github.com/corregedoria/api-inspecoes/internal/utils/db"
)

// VarIntegracao habilita os testes que dependem de Docker.
const VarIntegracao = "TEST_INTEGRATION"

// NovoBanco inicia um contêiner PostgreSQL, conecta via gorm e aplica as
// migrações recebidas. O contêiner é encerrado no fim do teste.
func NovoBanco(t *testing.T, migracoes ...func(*gorm.DB) error) *gorm.DB {
	t.Helper()

	if os.Getenv(VarIntegracao) == "" {
		t.Skip("teste de integração ignorado: " + VarIntegracao + " não definida")
	}

	ctx := context.Background()
	container, err := postgres.Run(ctx,
		"docker.io/postgres:16-alpine",
		postgres.WithDatabase("inspecoes_test"),
		postgres.WithUsername("inspecoes"),
		postgres.WithPassword("test-password"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	if err != nil {
		t.Fatalf("não foi possível iniciar o PostgreSQL: %v", err)
	}
	t.Cleanup(func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("erro ao encerrar contêiner: %v", err)
		}
	})

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("connection string: %v", err)
	}

	conn, err := db.ConnectDataBase(db.Parametros{URL: dsn})
	if err != nil {
		t.Fatalf("conectar: %v", err)
	}
	for _, m := range migracoes {
		if err := m(conn); err != nil {
			t.Fatalf("migrar: %v", err)
		}
	}
	return conn
}

// Limpar trunca as tabelas informadas e reinicia as sequências.
func Limpar(t *testing.T, conn *gorm.DB, tabelas ...string) {
	t.Helper()
	for _, tabela := range tabelas {
		if err := conn.Exec(fmt.Sprintf(`TRUNCATE TABLE %q RESTART IDENTITY CASCADE`, tabela)).Error; err != nil {
			t.Fatalf("truncar %s: %v", tabela, err)
		}
	}
}
