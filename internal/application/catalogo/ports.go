package catalogo

import "context"

// Existence resultado de consultar el catálogo por un producto.
type Existence int

const (
	// ExistenceConfirmed el catálogo confirmó que el producto existe y es usable.
	ExistenceConfirmed Existence = iota
	// ExistenceNotFound el catálogo confirmó que el producto NO existe.
	ExistenceNotFound
	// ExistenceIndeterminate no se pudo obtener una respuesta confiable
	// (timeout, error de red, status inesperado). NUNCA se interpreta como éxito.
	ExistenceIndeterminate
)

func (e Existence) String() string {
	switch e {
	case ExistenceConfirmed:
		return "confirmed"
	case ExistenceNotFound:
		return "not_found"
	default:
		return "indeterminate"
	}
}

// ProductCatalog puerto hacia el servicio de catálogo (colaborador externo).
// Política fail-closed: solo ExistenceConfirmed autoriza una mutación de stock;
// ExistenceIndeterminate llega acompañado del error de dominio que lo causó.
type ProductCatalog interface {
	Verify(ctx context.Context, productID string) (Existence, error)
}
