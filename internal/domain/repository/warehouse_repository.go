package repository

import "github.com/nutrichain/almacen-service/internal/domain/entity"

// WarehouseFilter filtros para listados de almacenes.
type WarehouseFilter struct {
	Active *bool
	Type   string
	Limit  int
	Offset int
}

// WarehouseRepository define el puerto de persistencia para Warehouse (DIP).
type WarehouseRepository interface {
	Create(warehouse *entity.Warehouse) error
	// GetByID devuelve nil (sin error) si no existe.
	GetByID(id string) (*entity.Warehouse, error)
	GetByCode(code string) (*entity.Warehouse, error)
	Update(warehouse *entity.Warehouse) error
	List(filter WarehouseFilter) ([]*entity.Warehouse, int, error)
	Delete(id string) error
}
