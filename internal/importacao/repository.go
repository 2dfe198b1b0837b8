package importacao

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"gorm.io/gorm"
)

// Repository guarda o histórico de importações.
type Repository interface {
	Salvar(ctx context.Context, l *Lote) error
	// ListarRecentes devolve os lotes mais novos primeiro; limite <= 0 devolve todos.
	ListarRecentes(ctx context.Context, limite int) ([]Lote, error)
}

type repositoryGorm struct {
	DB *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repositoryGorm{DB: db}
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&Lote{})
}

func (r *repositoryGorm) Salvar(ctx context.Context, l *Lote) error {
	if err := r.DB.WithContext(ctx).Create(l).Error; err != nil {
		return fmt.Errorf("importacao: salvar lote: %w", err)
	}
	return nil
}

func (r *repositoryGorm) ListarRecentes(ctx context.Context, limite int) ([]Lote, error) {
	q := r.DB.WithContext(ctx).Order("criado_em DESC")
	if limite > 0 {
		q = q.Limit(limite)
	}
	var list []Lote
	if err := q.Find(&list).Error; err != nil {
		return nil, fmt.Errorf("importacao: listar lotes: %w", err)
	}
	return list, nil
}

type repositoryMemoria struct {
	mu    sync.RWMutex
	lotes []Lote
}

func NewRepositoryMemoria() Repository {
	return &repositoryMemoria{}
}

func (r *repositoryMemoria) Salvar(_ context.Context, l *Lote) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lotes = append(r.lotes, *l)
	return nil
}

func (r *repositoryMemoria) ListarRecentes(_ context.Context, limite int) ([]Lote, error) {
	r.mu.RLock()
	out := make([]Lote, len(r.lotes))
	copy(out, r.lotes)
	r.mu.RUnlock()

	sort.SliceStable(out, func(i, j int) bool { return out[i].CriadoEm.After(out[j].CriadoEm) })
	if limite > 0 && len(out) > limite {
		out = out[:limite]
	}
	return out, nil
}
