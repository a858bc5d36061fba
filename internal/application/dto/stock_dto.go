package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockResponse salida de una posición de stock.
type StockResponse struct {
	ProductID         string           `json:"producto_id"`
	WarehouseID       string           `json:"almacen_id"`
	QuantityOnHand    decimal.Decimal  `json:"cantidad_actual"`
	QuantityReserved  decimal.Decimal  `json:"cantidad_reservada"`
	QuantityAvailable decimal.Decimal  `json:"cantidad_disponible"`
	QuantityMin       *decimal.Decimal `json:"cantidad_minima,omitempty"`
	QuantityMax       *decimal.Decimal `json:"cantidad_maxima,omitempty"`
	UnitCost          *decimal.Decimal `json:"costo_unitario,omitempty"`
	LowStock          bool             `json:"stock_bajo"`
	UpdatedAt         time.Time        `json:"updated_at"`
}

// StockListResponse lista paginada de stock.
type StockListResponse struct {
	Items []StockResponse `json:"items"`
	Page  PageResponse    `json:"page"`
}

// StockListQuery filtros de GET /api/stock.
type StockListQuery struct {
	WarehouseID string `query:"almacen_id"`
	ProductID   string `query:"producto_id"`
	WithStock   *bool  `query:"con_stock"`
	PageRequest
}

// AvailabilityRequest body de POST /api/stock/disponibilidad.
type AvailabilityRequest struct {
	ProductID        string          `json:"producto_id"`
	RequiredQuantity decimal.Decimal `json:"cantidad_requerida"`
	WarehouseID      string          `json:"almacen_id,omitempty"` // vacío = todos los almacenes
}

// WarehouseAvailability desglose de disponibilidad por almacén.
type WarehouseAvailability struct {
	WarehouseID       string          `json:"almacen_id"`
	QuantityAvailable decimal.Decimal `json:"cantidad_disponible"`
	CanCover          bool            `json:"puede_cubrir"`
}

// AvailabilityResponse respuesta de la consulta de disponibilidad.
type AvailabilityResponse struct {
	ProductID        string                  `json:"producto_id"`
	RequiredQuantity decimal.Decimal         `json:"cantidad_requerida"`
	TotalAvailable   decimal.Decimal         `json:"cantidad_disponible_total"`
	Available        bool                    `json:"disponible"`
	Warehouses       []WarehouseAvailability `json:"almacenes"`
	Suggestions      []string                `json:"sugerencias,omitempty"`
}

// ConsolidatedStockResponse resumen de un producto entre almacenes.
type ConsolidatedStockResponse struct {
	ProductID      string          `json:"producto_id"`
	TotalOnHand    decimal.Decimal `json:"cantidad_total"`
	TotalAvailable decimal.Decimal `json:"cantidad_disponible_total"`
	Warehouses     int             `json:"almacenes_con_stock"`
	TotalValue     decimal.Decimal `json:"valor_total"`
}

// LowStockItem producto en o por debajo de su mínimo, con sugerencia de pedido.
type LowStockItem struct {
	ProductID         string          `json:"producto_id"`
	WarehouseID       string          `json:"almacen_id"`
	QuantityOnHand    decimal.Decimal `json:"cantidad_actual"`
	QuantityMin       decimal.Decimal `json:"cantidad_minima"`
	SuggestedOrderQty decimal.Decimal `json:"cantidad_sugerida"` // min*1.5 - actual
	Depleted          bool            `json:"agotado"`
}
