package inspecao

import (
	"context"
	"errors"
	"fmt"

	"github.com/corregedoria/api-inspecoes/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// TamanhoLote limita as linhas por INSERT (teto de parâmetros do PostgreSQL).
const TamanhoLote = 500

var ErrDuplicado = errors.New("inspecao: registro duplicado")

// Repository é o contrato de armazenamento das inspeções.
// Há duas implementações: PostgreSQL (gorm) e memória.
type Repository interface {
	ListarTodos(ctx context.Context) ([]models.Inspecao, error)
	Criar(ctx context.Context, i *models.Inspecao) error
	UpsertEmLote(ctx context.Context, lista []models.Inspecao) ([]models.Inspecao, error)
	DeletarTodos(ctx context.Context) error
	Contar(ctx context.Context) (int64, error)
}

type repositoryGorm struct {
	DB *gorm.DB
}

// NewRepository cria o repositório PostgreSQL.
func NewRepository(db *gorm.DB) Repository {
	return &repositoryGorm{DB: db}
}

// Migrate cria a tabela e o índice único da chave natural.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&models.Inspecao{})
}

func (r *repositoryGorm) ListarTodos(ctx context.Context) ([]models.Inspecao, error) {
	var list []models.Inspecao
	if err := r.DB.WithContext(ctx).Order("id ASC").Find(&list).Error; err != nil {
		return nil, fmt.Errorf("inspecao: listar: %w", err)
	}
	return list, nil
}

func (r *repositoryGorm) Criar(ctx context.Context, i *models.Inspecao) error {
	i.ID = 0
	err := r.DB.WithContext(ctx).Create(i).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrDuplicado
	}
	if err != nil {
		return fmt.Errorf("inspecao: criar: %w", err)
	}
	return nil
}

// UpsertEmLote insere ou atualiza pela chave natural
// (numero, unidade_inspecionada, departamento, nao_conformidade).
// Todo o upload roda numa única transação.
func (r *repositoryGorm) UpsertEmLote(ctx context.Context, lista []models.Inspecao) ([]models.Inspecao, error) {
	linhas := models.Deduplicar(lista, func(i *models.Inspecao) { i.ID = 0 })
	if len(linhas) == 0 {
		return []models.Inspecao{}, nil
	}

	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{
				{Name: "numero"},
				{Name: "unidade_inspecionada"},
				{Name: "departamento"},
				{Name: "nao_conformidade"},
			},
			DoUpdates: clause.AssignmentColumns(models.ColunasInspecaoAtualizaveis),
		}).CreateInBatches(&linhas, TamanhoLote).Error
	})
	if err != nil {
		return nil, fmt.Errorf("inspecao: upsert: %w", err)
	}
	return linhas, nil
}

func (r *repositoryGorm) DeletarTodos(ctx context.Context) error {
	err := r.DB.WithContext(ctx).Session(&gorm.Session{AllowGlobalUpdate: true}).
		Delete(&models.Inspecao{}).Error
	if err != nil {
		return fmt.Errorf("inspecao: deletar todos: %w", err)
	}
	return nil
}

func (r *repositoryGorm) Contar(ctx context.Context) (int64, error) {
	var n int64
	if err := r.DB.WithContext(ctx).Model(&models.Inspecao{}).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("inspecao: contar: %w", err)
	}
	return n, nil
}
