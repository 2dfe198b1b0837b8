package usuario_test

import (
	"context"
	"errors"
	"testing"

	"github.com/corregedoria/api-inspecoes/internal/importacao"
	"github.com/corregedoria/api-inspecoes/internal/testhelpers"
	"github.com/corregedoria/api-inspecoes/internal/usuario"
)

func TestRepositoryGorm_Usuarios(t *testing.T) {
	conn := testhelpers.NovoBanco(t, usuario.Migrate, importacao.Migrate)
	repo := usuario.NewRepository(conn)
	ctx := context.Background()

	criado, err := usuario.GarantirAdmin(ctx, repo, "Admin@Corregedoria.gov", "senha-forte-123")
	if err != nil || !criado {
		t.Fatalf("GarantirAdmin = %v, %v", criado, err)
	}
	u, err := repo.BuscarPorEmail(ctx, "admin@corregedoria.gov")
	if err != nil || !u.IsAdmin {
		t.Fatalf("u = %+v err = %v", u, err)
	}

	_, err = usuario.Novo(ctx, repo, usuario.CriarUsuarioRequest{Email: "ADMIN@corregedoria.gov", Senha: "12345678"})
	if !errors.Is(err, usuario.ErrEmailEmUso) {
		t.Errorf("err = %v, want ErrEmailEmUso", err)
	}
	if _, err := repo.BuscarPorID(ctx, 999); !errors.Is(err, usuario.ErrNaoEncontrado) {
		t.Errorf("err = %v", err)
	}
}
