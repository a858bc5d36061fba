// Package catalogo implementa el cliente HTTP hacia el servicio de catálogo de
// productos, el oráculo externo que decide si un producto existe. La política es
// fail-closed: ante cualquier respuesta indeterminada (timeout, 5xx, red caída)
// el producto NO se da por existente y el movimiento se rechaza.
package catalogo

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/nutrichain/almacen-service/internal/application/catalogo"
	"github.com/nutrichain/almacen-service/internal/domain"
)

var _ catalogo.ProductCatalog = (*HTTPClient)(nil)

// HTTPClient implementa catalogo.ProductCatalog consultando el endpoint REST
// del servicio de catálogo. Usa net/http de la stdlib.
type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewHTTPClient construye el cliente. timeout acota la llamada completa
// (conexión + respuesta); un timeout corto mantiene el registro de movimientos
// responsivo cuando el catálogo está caído.
func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Verify consulta la existencia del producto en el catálogo.
//   - 200 -> ExistenceConfirmed
//   - 404 -> ExistenceNotFound
//   - cualquier otro status -> ExistenceIndeterminate + domain.ErrExternalService
//   - error de red/timeout  -> ExistenceIndeterminate + domain.ErrCatalogUnavailable
func (c *HTTPClient) Verify(ctx context.Context, productID string) (catalogo.Existence, error) {
	url := fmt.Sprintf("%s/api/productos/%s", c.baseURL, productID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return catalogo.ExistenceIndeterminate, fmt.Errorf("construir request al catálogo: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return catalogo.ExistenceIndeterminate,
			fmt.Errorf("catálogo inalcanzable: %v: %w", err, domain.ErrCatalogUnavailable)
	}
	defer resp.Body.Close()
	// Drenar el body para reusar la conexión keep-alive.
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))

	switch {
	case resp.StatusCode == http.StatusOK:
		return catalogo.ExistenceConfirmed, nil
	case resp.StatusCode == http.StatusNotFound:
		return catalogo.ExistenceNotFound, nil
	default:
		return catalogo.ExistenceIndeterminate,
			fmt.Errorf("catálogo respondió %d: %w", resp.StatusCode, domain.ErrExternalService)
	}
}
