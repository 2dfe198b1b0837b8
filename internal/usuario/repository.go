package usuario

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"gorm.io/gorm"
)

var (
	ErrNaoEncontrado = errors.New("usuário não encontrado")
	ErrEmailEmUso    = errors.New("e-mail já cadastrado")
)

type Repository interface {
	BuscarPorEmail(ctx context.Context, email string) (*Usuario, error)
	BuscarPorID(ctx context.Context, id uint) (*Usuario, error)
	Criar(ctx context.Context, u *Usuario) error
}

type repositoryGorm struct {
	DB *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repositoryGorm{DB: db}
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&Usuario{})
}

func (r *repositoryGorm) BuscarPorEmail(ctx context.Context, email string) (*Usuario, error) {
	var u Usuario
	err := r.DB.WithContext(ctx).Where("email = ?", normalizarEmail(email)).First(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNaoEncontrado
	}
	if err != nil {
		return nil, fmt.Errorf("usuario: buscar por email: %w", err)
	}
	return &u, nil
}

func (r *repositoryGorm) BuscarPorID(ctx context.Context, id uint) (*Usuario, error) {
	var u Usuario
	err := r.DB.WithContext(ctx).First(&u, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNaoEncontrado
	}
	if err != nil {
		return nil, fmt.Errorf("usuario: buscar %d: %w", id, err)
	}
	return &u, nil
}

func (r *repositoryGorm) Criar(ctx context.Context, u *Usuario) error {
	u.Email = normalizarEmail(u.Email)
	err := r.DB.WithContext(ctx).Create(u).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrEmailEmUso
	}
	if err != nil {
		return fmt.Errorf("usuario: criar: %w", err)
	}
	return nil
}

type repositoryMemoria struct {
	mu        sync.RWMutex
	proximoID uint
	porID     map[uint]Usuario
}

func NewRepositoryMemoria() Repository {
	return &repositoryMemoria{porID: map[uint]Usuario{}}
}

func (r *repositoryMemoria) BuscarPorEmail(_ context.Context, email string) (*Usuario, error) {
	email = normalizarEmail(email)
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, u := range r.porID {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, ErrNaoEncontrado
}

func (r *repositoryMemoria) BuscarPorID(_ context.Context, id uint) (*Usuario, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.porID[id]
	if !ok {
		return nil, ErrNaoEncontrado
	}
	return &u, nil
}

func (r *repositoryMemoria) Criar(_ context.Context, u *Usuario) error {
	u.Email = normalizarEmail(u.Email)
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existente := range r.porID {
		if existente.Email == u.Email {
			return ErrEmailEmUso
		}
	}
	r.proximoID++
	u.ID = r.proximoID
	u.CreatedAt = time.Now()
	u.UpdatedAt = u.CreatedAt
	r.porID[u.ID] = *u
	return nil
}

func normalizarEmail(e string) string {
	return strings.ToLower(strings.TrimSpace(e))
}
