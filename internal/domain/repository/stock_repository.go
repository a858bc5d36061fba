package repository

import (
	"github.com/shopspring/decimal"

	"github.com/nutrichain/almacen-service/internal/domain/entity"
)

// StockFilter filtros para listados de stock.
type StockFilter struct {
	WarehouseID string
	ProductID   string
	// WithStock: true = solo filas con disponible > 0, false = solo agotadas, nil = todas.
	WithStock *bool
	Limit     int
	Offset    int
}

// ConsolidatedStock resumen de un producto agregado entre almacenes.
type ConsolidatedStock struct {
	ProductID      string
	TotalOnHand    decimal.Decimal
	TotalAvailable decimal.Decimal
	Warehouses     int
	TotalValue     decimal.Decimal
}

// StockRepository define el puerto para consultar/actualizar stock por producto+almacén.
// Las escrituras solo son alcanzables desde el orquestador de movimientos, dentro de
// una transacción (repos atados a la tx vía TxRunner).
type StockRepository interface {
	// Get devuelve nil (sin error) si no existe fila para la clave.
	Get(productID, warehouseID string) (*entity.Stock, error)
	// GetForUpdate bloquea la fila para update (SELECT FOR UPDATE). Devuelve nil si no existe.
	GetForUpdate(productID, warehouseID string) (*entity.Stock, error)
	Create(stock *entity.Stock) error
	// CreateIfAbsent inserta la fila solo si la clave no existe todavía.
	// Devuelve true si insertó; false si otra transacción ganó la clave.
	CreateIfAbsent(stock *entity.Stock) (bool, error)
	Update(stock *entity.Stock) error
	List(filter StockFilter) ([]*entity.Stock, int, error)
	ListByProduct(productID string) ([]*entity.Stock, error)
	ListBelowMinimum(warehouseID string) ([]*entity.Stock, error)
	Consolidated(warehouseID string) ([]ConsolidatedStock, error)
	CountByWarehouse(warehouseID string) (int, error)
}
