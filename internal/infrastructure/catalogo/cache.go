package catalogo

import (
	"context"
	"sync"
	"time"

	"github.com/nutrichain/almacen-service/internal/application/catalogo"
)

var _ catalogo.ProductCatalog = (*CachedCatalog)(nil)

type cacheEntry struct {
	result    catalogo.Existence
	expiresAt time.Time
}

// CachedCatalog decora un ProductCatalog con un caché TTL en memoria.
// Solo se cachean veredictos definitivos (confirmado / no existe); un resultado
// indeterminado nunca entra al caché, de modo que una caída transitoria del
// catálogo no queda "pegada" hasta que venza el TTL.
type CachedCatalog struct {
	inner      catalogo.ProductCatalog
	ttl        time.Duration
	maxEntries int

	mu      sync.Mutex
	entries map[string]cacheEntry
}

// NewCachedCatalog construye el decorador. maxEntries acota el tamaño del caché;
// al llegar al límite se vacía completo (los veredictos se reconstruyen solos).
func NewCachedCatalog(inner catalogo.ProductCatalog, ttl time.Duration, maxEntries int) *CachedCatalog {
	return &CachedCatalog{
		inner:      inner,
		ttl:        ttl,
		maxEntries: maxEntries,
		entries:    make(map[string]cacheEntry),
	}
}

// Verify devuelve el veredicto cacheado si sigue vigente; si no, consulta al
// catálogo real y cachea solo resultados definitivos.
func (c *CachedCatalog) Verify(ctx context.Context, productID string) (catalogo.Existence, error) {
	c.mu.Lock()
	if e, ok := c.entries[productID]; ok && time.Now().Before(e.expiresAt) {
		c.mu.Unlock()
		return e.result, nil
	}
	c.mu.Unlock()

	result, err := c.inner.Verify(ctx, productID)
	if err != nil || result == catalogo.ExistenceIndeterminate {
		return result, err
	}

	c.mu.Lock()
	if len(c.entries) >= c.maxEntries {
		c.entries = make(map[string]cacheEntry)
	}
	c.entries[productID] = cacheEntry{result: result, expiresAt: time.Now().Add(c.ttl)}
	c.mu.Unlock()
	return result, nil
}

// Invalidate elimina el veredicto cacheado de un producto.
func (c *CachedCatalog) Invalidate(productID string) {
	c.mu.Lock()
	delete(c.entries, productID)
	c.mu.Unlock()
}
