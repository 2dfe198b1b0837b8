package controleprazo_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/corregedoria/api-inspecoes/internal/controleprazo"
	"github.com/corregedoria/api-inspecoes/internal/models"
	"github.com/corregedoria/api-inspecoes/internal/testhelpers"
)

func data(d int) *time.Time {
	t := time.Date(2024, 3, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func TestRepositoryGorm_OrdemEUpsert(t *testing.T) {
	conn := testhelpers.NovoBanco(t, controleprazo.Migrate)
	repo := controleprazo.NewRepository(conn)
	ctx := context.Background()

	_, err := repo.UpsertEmLote(ctx, []models.ControlePrazo{
		{Unidade: "A", Oficio: "OF-1", NaoConformidade: "x", DataPrazo: nil},
		{Unidade: "A", Oficio: "OF-2", NaoConformidade: "x", DataPrazo: data(20)},
		{Unidade: "B", Oficio: "OF-3", NaoConformidade: "y", DataPrazo: data(5)},
	})
	if err != nil {
		t.Fatal(err)
	}

	lista, err := repo.ListarTodos(ctx)
	if err != nil {
		t.Fatal(err)
	}
	var oficios []string
	for _, c := range lista {
		oficios = append(oficios, c.Oficio)
	}
	if len(oficios) != 3 || oficios[0] != "OF-3" || oficios[1] != "OF-2" || oficios[2] != "OF-1" {
		t.Errorf("ordem = %v, want [OF-3 OF-2 OF-1]", oficios)
	}
	if lista[0].Status != models.StatusPendente {
		t.Errorf("status padrão = %q", lista[0].Status)
	}

	// mesma chave: atualiza em vez de inserir
	_, err = repo.UpsertEmLote(ctx, []models.ControlePrazo{
		{Unidade: "B", Oficio: "OF-3", NaoConformidade: "y", DataPrazo: data(6), Status: models.StatusRegularizado},
	})
	if err != nil {
		t.Fatal(err)
	}
	if n, _ := repo.Contar(ctx); n != 3 {
		t.Errorf("Contar = %d", n)
	}
	daUnidade, _ := repo.ListarPorUnidade(ctx, "B")
	if len(daUnidade) != 1 || daUnidade[0].Status != models.StatusRegularizado {
		t.Errorf("B = %+v", daUnidade)
	}
}

func TestRepositoryGorm_StatusEDeletar(t *testing.T) {
	conn := testhelpers.NovoBanco(t, controleprazo.Migrate)
	repo := controleprazo.NewRepository(conn)
	ctx := context.Background()

	c := models.ControlePrazo{Unidade: "A", Oficio: "OF-1", NaoConformidade: "x"}
	if err := repo.Criar(ctx, &c); err != nil {
		t.Fatal(err)
	}
	if err := repo.AtualizarStatus(ctx, c.ID, models.StatusNaoRegularizado); err != nil {
		t.Fatal(err)
	}
	if err := repo.AtualizarStatus(ctx, c.ID+100, models.StatusRegularizado); !errors.Is(err, controleprazo.ErrNaoEncontrado) {
		t.Errorf("err = %v, want ErrNaoEncontrado", err)
	}

	if err := repo.Deletar(ctx, c.ID); err != nil {
		t.Fatal(err)
	}
	if err := repo.Deletar(ctx, c.ID); err != nil {
		t.Errorf("deletar id ausente deve ser no-op, err = %v", err)
	}
	if _, err := repo.BuscarPorID(ctx, c.ID); !errors.Is(err, controleprazo.ErrNaoEncontrado) {
		t.Errorf("err = %v", err)
	}
}
