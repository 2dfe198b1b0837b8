package inspecao

import (
	"context"
	"errors"
	"testing"

	"github.com/corregedoria/api-inspecoes/internal/models"
)

func TestRepositoryMemoria_UpsertEmLote(t *testing.T) {
	ctx := context.Background()
	repo := NewRepositoryMemoria()

	lote := []models.Inspecao{
		{Numero: "1", UnidadeInspecionada: "A", Departamento: "D", NaoConformidade: "X", Criticidade: "baixa"},
		{Numero: "2", UnidadeInspecionada: "A", Departamento: "D", NaoConformidade: "Y"},
		{Numero: "1", UnidadeInspecionada: "A", Departamento: "D", NaoConformidade: "X", Criticidade: "alta"},
	}
	salvas, err := repo.UpsertEmLote(ctx, lote)
	if err != nil {
		t.Fatalf("UpsertEmLote: %v", err)
	}
	if len(salvas) != 2 {
		t.Fatalf("duplicatas no mesmo lote devem colapsar, got %d", len(salvas))
	}
	if salvas[0].Criticidade != "alta" || salvas[0].ID == 0 {
		t.Errorf("último valor deve prevalecer na posição da primeira ocorrência: %+v", salvas[0])
	}

	idOriginal := salvas[0].ID
	_, err = repo.UpsertEmLote(ctx, []models.Inspecao{
		{Numero: "1", UnidadeInspecionada: "A", Departamento: "D", NaoConformidade: "X", Criticidade: "media"},
	})
	if err != nil {
		t.Fatalf("UpsertEmLote: %v", err)
	}

	todas, _ := repo.ListarTodos(ctx)
	if len(todas) != 2 {
		t.Fatalf("esperado 2 linhas, got %d", len(todas))
	}
	if todas[0].ID != idOriginal || todas[0].Criticidade != "media" {
		t.Errorf("atualização deve manter o id e refletir o último valor: %+v", todas[0])
	}
}

func TestRepositoryMemoria_CriarDuplicado(t *testing.T) {
	ctx := context.Background()
	repo := NewRepositoryMemoria()

	i := models.Inspecao{Numero: "1", UnidadeInspecionada: "A", Departamento: "D"}
	if err := repo.Criar(ctx, &i); err != nil {
		t.Fatalf("Criar: %v", err)
	}
	dup := i
	if err := repo.Criar(ctx, &dup); !errors.Is(err, ErrDuplicado) {
		t.Errorf("esperado ErrDuplicado, got %v", err)
	}
}

func TestRepositoryMemoria_DeletarTodosIdempotente(t *testing.T) {
	ctx := context.Background()
	repo := NewRepositoryMemoria()
	_, _ = repo.UpsertEmLote(ctx, []models.Inspecao{{UnidadeInspecionada: "A", Departamento: "D"}})

	for n := 0; n < 2; n++ {
		if err := repo.DeletarTodos(ctx); err != nil {
			t.Fatalf("DeletarTodos: %v", err)
		}
	}
	if n, _ := repo.Contar(ctx); n != 0 {
		t.Errorf("Contar = %d", n)
	}
}
