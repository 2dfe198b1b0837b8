package controleprazo

import (
	"context"
	"errors"
	"fmt"

	"github.com/corregedoria/api-inspecoes/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const TamanhoLote = 500

var (
	ErrNaoEncontrado = errors.New("controle de prazo não encontrado")
	ErrDuplicado     = errors.New("controle de prazo duplicado")
)

type Repository interface {
	ListarTodos(ctx context.Context) ([]models.ControlePrazo, error)
	ListarPorUnidade(ctx context.Context, unidade string) ([]models.ControlePrazo, error)
	BuscarPorID(ctx context.Context, id uint) (*models.ControlePrazo, error)
	Criar(ctx context.Context, c *models.ControlePrazo) error
	Atualizar(ctx context.Context, c *models.ControlePrazo) error
	AtualizarStatus(ctx context.Context, id uint, status string) error
	// Deletar não retorna erro quando o id não existe.
	Deletar(ctx context.Context, id uint) error
	UpsertEmLote(ctx context.Context, lista []models.ControlePrazo) ([]models.ControlePrazo, error)
	DeletarTodos(ctx context.Context) error
	Contar(ctx context.Context) (int64, error)
}

type repositoryGorm struct {
	DB *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repositoryGorm{DB: db}
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&models.ControlePrazo{})
}

// statusPadrao aplica "pendente" quando o status vem vazio.
func statusPadrao(c *models.ControlePrazo) {
	if c.Status == "" {
		c.Status = models.StatusPendente
	}
}

const ordemPrazo = "data_prazo ASC NULLS LAST, id ASC"

func (r *repositoryGorm) ListarTodos(ctx context.Context) ([]models.ControlePrazo, error) {
	var list []models.ControlePrazo
	if err := r.DB.WithContext(ctx).Order(ordemPrazo).Find(&list).Error; err != nil {
		return nil, fmt.Errorf("controleprazo: listar: %w", err)
	}
	return list, nil
}

func (r *repositoryGorm) ListarPorUnidade(ctx context.Context, unidade string) ([]models.ControlePrazo, error) {
	var list []models.ControlePrazo
	err := r.DB.WithContext(ctx).Where("unidade = ?", unidade).Order(ordemPrazo).Find(&list).Error
	if err != nil {
		return nil, fmt.Errorf("controleprazo: listar por unidade: %w", err)
	}
	return list, nil
}

func (r *repositoryGorm) BuscarPorID(ctx context.Context, id uint) (*models.ControlePrazo, error) {
	var c models.ControlePrazo
	err := r.DB.WithContext(ctx).First(&c, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNaoEncontrado
	}
	if err != nil {
		return nil, fmt.Errorf("controleprazo: buscar %d: %w", id, err)
	}
	return &c, nil
}

func (r *repositoryGorm) Criar(ctx context.Context, c *models.ControlePrazo) error {
	c.ID = 0
	statusPadrao(c)
	err := r.DB.WithContext(ctx).Create(c).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrDuplicado
	}
	if err != nil {
		return fmt.Errorf("controleprazo: criar: %w", err)
	}
	return nil
}

// Atualizar grava todos os campos do registro (Save).
func (r *repositoryGorm) Atualizar(ctx context.Context, c *models.ControlePrazo) error {
	err := r.DB.WithContext(ctx).Save(c).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrDuplicado
	}
	if err != nil {
		return fmt.Errorf("controleprazo: atualizar %d: %w", c.ID, err)
	}
	return nil
}

func (r *repositoryGorm) AtualizarStatus(ctx context.Context, id uint, status string) error {
	res := r.DB.WithContext(ctx).Model(&models.ControlePrazo{}).Where("id = ?", id).Update("status", status)
	if res.Error != nil {
		return fmt.Errorf("controleprazo: atualizar status %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNaoEncontrado
	}
	return nil
}

func (r *repositoryGorm) Deletar(ctx context.Context, id uint) error {
	if err := r.DB.WithContext(ctx).Delete(&models.ControlePrazo{}, id).Error; err != nil {
		return fmt.Errorf("controleprazo: deletar %d: %w", id, err)
	}
	return nil
}

// UpsertEmLote insere ou atualiza pela chave natural (oficio, unidade, nao_conformidade).
func (r *repositoryGorm) UpsertEmLote(ctx context.Context, lista []models.ControlePrazo) ([]models.ControlePrazo, error) {
	linhas := models.Deduplicar(lista, func(c *models.ControlePrazo) {
		c.ID = 0
		statusPadrao(c)
	})
	if len(linhas) == 0 {
		return []models.ControlePrazo{}, nil
	}

	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{
				{Name: "oficio"},
				{Name: "unidade"},
				{Name: "nao_conformidade"},
			},
			DoUpdates: clause.AssignmentColumns(models.ColunasControlePrazoAtualizaveis),
		}).CreateInBatches(&linhas, TamanhoLote).Error
	})
	if err != nil {
		return nil, fmt.Errorf("controleprazo: upsert: %w", err)
	}
	return linhas, nil
}

func (r *repositoryGorm) DeletarTodos(ctx context.Context) error {
	err := r.DB.WithContext(ctx).Session(&gorm.Session{AllowGlobalUpdate: true}).
		Delete(&models.ControlePrazo{}).Error
	if err != nil {
		return fmt.Errorf("controleprazo: deletar todos: %w", err)
	}
	return nil
}

func (r *repositoryGorm) Contar(ctx context.Context) (int64, error) {
	var n int64
	if err := r.DB.WithContext(ctx).Model(&models.ControlePrazo{}).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("controleprazo: contar: %w", err)
	}
	return n, nil
}
