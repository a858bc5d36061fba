package movimientos

import (
	"context"

	"github.com/nutrichain/almacen-service/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios
// atados a esa tx. Garantiza atomicidad entre el ledger de movimientos y el stock:
// o se confirman todas las escrituras del callback o ninguna.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		movRepo repository.MovementRepository,
		stockRepo repository.StockRepository,
	) error) error
}
