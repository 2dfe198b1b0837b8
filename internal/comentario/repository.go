package comentario

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"gorm.io/gorm"
)

type Repository interface {
	Criar(ctx context.Context, c *Comentario) error
	ListarPorPrazo(ctx context.Context, prazoID uint) ([]Comentario, error)
	// Remover não falha quando o id não existe.
	Remover(ctx context.Context, id uint) error
}

type repositoryGorm struct {
	DB *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repositoryGorm{DB: db}
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&Comentario{})
}

func (r *repositoryGorm) Criar(ctx context.Context, c *Comentario) error {
	c.ID = 0
	if err := r.DB.WithContext(ctx).Create(c).Error; err != nil {
		return fmt.Errorf("comentario: criar: %w", err)
	}
	return nil
}

func (r *repositoryGorm) ListarPorPrazo(ctx context.Context, prazoID uint) ([]Comentario, error) {
	var comentarios []Comentario
	err := r.DB.WithContext(ctx).
		Where("controle_prazo_id = ?", prazoID).
		Order("created_at ASC, id ASC").
		Find(&comentarios).Error
	if err != nil {
		return nil, fmt.Errorf("comentario: listar do prazo %d: %w", prazoID, err)
	}
	return comentarios, nil
}

func (r *repositoryGorm) Remover(ctx context.Context, id uint) error {
	if err := r.DB.WithContext(ctx).Delete(&Comentario{}, id).Error; err != nil {
		return fmt.Errorf("comentario: remover %d: %w", id, err)
	}
	return nil
}

type repositoryMemoria struct {
	mu        sync.RWMutex
	proximoID uint
	porID     map[uint]Comentario
}

func NewRepositoryMemoria() Repository {
	return &repositoryMemoria{porID: map[uint]Comentario{}}
}

func (r *repositoryMemoria) Criar(_ context.Context, c *Comentario) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.proximoID++
	c.ID = r.proximoID
	c.CreatedAt = time.Now()
	r.porID[c.ID] = *c
	return nil
}

func (r *repositoryMemoria) ListarPorPrazo(_ context.Context, prazoID uint) ([]Comentario, error) {
	r.mu.RLock()
	out := []Comentario{}
	for _, c := range r.porID {
		if c.ControlePrazoID == prazoID {
			out = append(out, c)
		}
	}
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *repositoryMemoria) Remover(_ context.Context, id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.porID, id)
	return nil
}
