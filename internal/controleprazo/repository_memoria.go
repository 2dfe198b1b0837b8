package controleprazo

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/corregedoria/api-inspecoes/internal/models"
)

type repositoryMemoria struct {
	mu        sync.RWMutex
	proximoID uint
	linhas    map[uint]models.ControlePrazo
	indice    map[string]uint // chave natural -> id
}

func NewRepositoryMemoria() Repository {
	return &repositoryMemoria{
		linhas: map[uint]models.ControlePrazo{},
		indice: map[string]uint{},
	}
}

func (r *repositoryMemoria) ListarTodos(_ context.Context) ([]models.ControlePrazo, error) {
	return r.listar(func(models.ControlePrazo) bool { return true }), nil
}

func (r *repositoryMemoria) ListarPorUnidade(_ context.Context, unidade string) ([]models.ControlePrazo, error) {
	return r.listar(func(c models.ControlePrazo) bool { return c.Unidade == unidade }), nil
}

// listar devolve na mesma ordem do PostgreSQL: data_prazo crescente, nulos no fim, depois id.
func (r *repositoryMemoria) listar(incluir func(models.ControlePrazo) bool) []models.ControlePrazo {
	r.mu.RLock()
	out := make([]models.ControlePrazo, 0, len(r.linhas))
	for _, c := range r.linhas {
		if incluir(c) {
			out = append(out, c)
		}
	}
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		a, b := out[i].DataPrazo, out[j].DataPrazo
		switch {
		case a == nil && b == nil:
		case a == nil:
			return false
		case b == nil:
			return true
		case !a.Equal(*b):
			return a.Before(*b)
		}
		return out[i].ID < out[j].ID
	})
	return out
}

func (r *repositoryMemoria) BuscarPorID(_ context.Context, id uint) (*models.ControlePrazo, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.linhas[id]
	if !ok {
		return nil, ErrNaoEncontrado
	}
	return &c, nil
}

func (r *repositoryMemoria) Criar(_ context.Context, c *models.ControlePrazo) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.indice[c.ChaveNatural()]; ok {
		return ErrDuplicado
	}
	r.inserir(c, time.Now())
	return nil
}

func (r *repositoryMemoria) Atualizar(_ context.Context, c *models.ControlePrazo) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	atual, ok := r.linhas[c.ID]
	if !ok {
		return ErrNaoEncontrado
	}
	novaChave := c.ChaveNatural()
	if id, ok := r.indice[novaChave]; ok && id != c.ID {
		return ErrDuplicado
	}
	delete(r.indice, atual.ChaveNatural())
	r.indice[novaChave] = c.ID

	c.CreatedAt = atual.CreatedAt
	c.UpdatedAt = time.Now()
	r.linhas[c.ID] = *c
	return nil
}

func (r *repositoryMemoria) AtualizarStatus(_ context.Context, id uint, status string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.linhas[id]
	if !ok {
		return ErrNaoEncontrado
	}
	c.Status = status
	c.UpdatedAt = time.Now()
	r.linhas[id] = c
	return nil
}

func (r *repositoryMemoria) Deletar(_ context.Context, id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if c, ok := r.linhas[id]; ok {
		delete(r.indice, c.ChaveNatural())
		delete(r.linhas, id)
	}
	return nil
}

func (r *repositoryMemoria) UpsertEmLote(_ context.Context, lista []models.ControlePrazo) ([]models.ControlePrazo, error) {
	linhas := models.Deduplicar(lista, func(c *models.ControlePrazo) {
		c.ID = 0
		statusPadrao(c)
	})

	r.mu.Lock()
	defer r.mu.Unlock()

	agora := time.Now()
	for n := range linhas {
		l := &linhas[n]
		if id, ok := r.indice[l.ChaveNatural()]; ok {
			l.ID = id
			l.CreatedAt = r.linhas[id].CreatedAt
			l.UpdatedAt = agora
			r.linhas[id] = *l
			continue
		}
		r.inserir(l, agora)
	}
	return linhas, nil
}

// inserir exige r.mu travado.
func (r *repositoryMemoria) inserir(c *models.ControlePrazo, agora time.Time) {
	r.proximoID++
	c.ID = r.proximoID
	statusPadrao(c)
	c.CreatedAt = agora
	c.UpdatedAt = agora
	r.linhas[c.ID] = *c
	r.indice[c.ChaveNatural()] = c.ID
}

func (r *repositoryMemoria) DeletarTodos(_ context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.linhas = map[uint]models.ControlePrazo{}
	r.indice = map[string]uint{}
	return nil
}

func (r *repositoryMemoria) Contar(_ context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.linhas)), nil
}
