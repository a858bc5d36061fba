package repository

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/nutrichain/almacen-service/internal/domain/entity"
)

// MovementFilter filtros combinables para listados de movimientos.
// WarehouseID busca en origen O destino.
type MovementFilter struct {
	ProductID   string
	WarehouseID string
	Type        string
	From        *time.Time
	To          *time.Time
	Limit       int
	Offset      int
}

// MovementStats agregados de movimientos para reportes.
type MovementStats struct {
	From           time.Time
	To             time.Time
	TotalMovements int
	ByType         map[string]int
	ByStatus       map[string]int
	TotalValue     decimal.Decimal
	TopProducts    []ProductActivity
	TopWarehouses  []WarehouseActivity
}

// ProductActivity cantidad total movida de un producto en el periodo.
type ProductActivity struct {
	ProductID string
	Quantity  decimal.Decimal
	Movements int
}

// WarehouseActivity número de movimientos que tocan un almacén en el periodo.
type WarehouseActivity struct {
	WarehouseID string
	Movements   int
}

// MovementRepository define el puerto de persistencia del ledger de movimientos.
// El ledger es append-only: no existen Update ni Delete.
type MovementRepository interface {
	Create(movement *entity.Movement) error
	GetByID(id string) (*entity.Movement, error)
	List(filter MovementFilter) ([]*entity.Movement, int, error)
	Stats(from, to time.Time, warehouseID, movementType string) (*MovementStats, error)
}
