package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateWarehouseRequest entrada para crear un almacén.
type CreateWarehouseRequest struct {
	Code        string           `json:"codigo" validate:"required,min=1,max=50"`
	Name        string           `json:"nombre" validate:"required,min=1,max=200"`
	Location    string           `json:"ubicacion"`
	Responsible string           `json:"responsable"`
	Phone       string           `json:"telefono"`
	Email       string           `json:"email"`
	Type        string           `json:"tipo"`
	MaxCapacity *decimal.Decimal `json:"capacidad_maxima,omitempty"`
}

// UpdateWarehouseRequest entrada para actualizar un almacén (parcial).
type UpdateWarehouseRequest struct {
	Name        *string          `json:"nombre,omitempty"`
	Location    *string          `json:"ubicacion,omitempty"`
	Responsible *string          `json:"responsable,omitempty"`
	Phone       *string          `json:"telefono,omitempty"`
	Email       *string          `json:"email,omitempty"`
	Type        *string          `json:"tipo,omitempty"`
	MaxCapacity *decimal.Decimal `json:"capacidad_maxima,omitempty"`
}

// WarehouseResponse salida de un almacén.
type WarehouseResponse struct {
	ID          string           `json:"id"`
	Code        string           `json:"codigo"`
	Name        string           `json:"nombre"`
	Location    string           `json:"ubicacion,omitempty"`
	Responsible string           `json:"responsable,omitempty"`
	Phone       string           `json:"telefono,omitempty"`
	Email       string           `json:"email,omitempty"`
	Type        string           `json:"tipo,omitempty"`
	MaxCapacity *decimal.Decimal `json:"capacidad_maxima,omitempty"`
	Active      bool             `json:"activo"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
}

// WarehouseListResponse lista paginada de almacenes.
type WarehouseListResponse struct {
	Items []WarehouseResponse `json:"items"`
	Page  PageResponse        `json:"page"`
}

// WarehouseListQuery filtros de GET /api/almacenes.
type WarehouseListQuery struct {
	Active *bool  `query:"activo"`
	Type   string `query:"tipo"`
	PageRequest
}
