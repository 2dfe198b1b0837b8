package relatorio

import (
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	cacheHitsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "relatorio_cache_hits_total",
		Help: "Relatórios servidos do cache.",
	})
	cacheMissesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "relatorio_cache_misses_total",
		Help: "Relatórios recalculados.",
	})
)

// Cache guarda relatórios montados por consulta. A chave inclui o dia corrente,
// então as faixas de prazo nunca atravessam a meia-noite.
// Toda escrita no armazenamento deve chamar Limpar.
//
// Limpar avança a geração; um relatório carregado antes disso não é gravado
// por Set, mesmo que termine depois da escrita.
type Cache struct {
	lru *expirable.LRU[string, Dados]

	mu      sync.Mutex
	geracao uint64
}

// NewCache com tamanho <= 0 devolve nil (cache desligado); os métodos aceitam receptor nil.
func NewCache(tamanho int, ttl time.Duration) *Cache {
	if tamanho <= 0 {
		return nil
	}
	return &Cache{lru: expirable.NewLRU[string, Dados](tamanho, nil, ttl)}
}

func (c *Cache) Get(chave string) (Dados, bool) {
	if c == nil {
		return Dados{}, false
	}
	d, ok := c.lru.Get(chave)
	if ok {
		cacheHitsTotal.Inc()
		return d, true
	}
	cacheMissesTotal.Inc()
	return Dados{}, false
}

// Geracao deve ser lida antes de carregar os dados que serão passados a Set.
func (c *Cache) Geracao() uint64 {
	if c == nil {
		return 0
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.geracao
}

// Set grava d somente se nenhuma limpeza ocorreu desde a geração informada.
// Devolve false quando o relatório foi descartado.
func (c *Cache) Set(chave string, d Dados, geracao uint64) bool {
	if c == nil {
		return false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if geracao != c.geracao {
		return false
	}
	c.lru.Add(chave, d)
	return true
}

// Limpar descarta todos os relatórios e invalida montagens em andamento.
func (c *Cache) Limpar() {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.geracao++
	c.lru.Purge()
}

// Len informa quantos relatórios estão guardados.
func (c *Cache) Len() int {
	if c == nil {
		return 0
	}
	return c.lru.Len()
}

func chaveCache(hoje time.Time, query string) string {
	return hoje.Format("2006-01-02") + "?" + query
}
