package inspecao

import (
	"context"
	"sync"
	"time"

	"github.com/corregedoria/api-inspecoes/internal/models"
)

// repositoryMemoria é usado quando nenhum banco está configurado.
type repositoryMemoria struct {
	mu        sync.RWMutex
	proximoID uint
	linhas    []models.Inspecao
	indice    map[string]int // chave natural -> posição em linhas
}

// NewRepositoryMemoria cria o repositório em memória.
func NewRepositoryMemoria() Repository {
	return &repositoryMemoria{indice: map[string]int{}}
}

func (r *repositoryMemoria) ListarTodos(_ context.Context) ([]models.Inspecao, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]models.Inspecao, len(r.linhas))
	copy(out, r.linhas)
	return out, nil
}

func (r *repositoryMemoria) Criar(_ context.Context, i *models.Inspecao) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.indice[i.ChaveNatural()]; ok {
		return ErrDuplicado
	}
	r.inserir(i, time.Now())
	return nil
}

func (r *repositoryMemoria) UpsertEmLote(_ context.Context, lista []models.Inspecao) ([]models.Inspecao, error) {
	linhas := models.Deduplicar(lista, func(i *models.Inspecao) { i.ID = 0 })

	r.mu.Lock()
	defer r.mu.Unlock()

	agora := time.Now()
	for n := range linhas {
		l := &linhas[n]
		if pos, ok := r.indice[l.ChaveNatural()]; ok {
			atual := r.linhas[pos]
			l.ID = atual.ID
			l.CreatedAt = atual.CreatedAt
			l.UpdatedAt = agora
			r.linhas[pos] = *l
			continue
		}
		r.inserir(l, agora)
	}
	return linhas, nil
}

// inserir exige r.mu travado.
func (r *repositoryMemoria) inserir(i *models.Inspecao, agora time.Time) {
	r.proximoID++
	i.ID = r.proximoID
	i.CreatedAt = agora
	i.UpdatedAt = agora
	r.indice[i.ChaveNatural()] = len(r.linhas)
	r.linhas = append(r.linhas, *i)
}

func (r *repositoryMemoria) DeletarTodos(_ context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.linhas = nil
	r.indice = map[string]int{}
	return nil
}

func (r *repositoryMemoria) Contar(_ context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.linhas)), nil
}
