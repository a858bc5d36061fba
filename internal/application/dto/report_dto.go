package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// MovementReportQuery filtros de GET /api/reportes/movimientos.
type MovementReportQuery struct {
	From        string `query:"fecha_inicio"` // YYYY-MM-DD, requerido
	To          string `query:"fecha_fin"`    // YYYY-MM-DD, requerido
	WarehouseID string `query:"almacen_id"`
	Type        string `query:"tipo_movimiento"`
}

// MovementReportResponse agregados de movimientos en un rango de fechas.
type MovementReportResponse struct {
	From           time.Time                   `json:"fecha_inicio"`
	To             time.Time                   `json:"fecha_fin"`
	TotalMovements int                         `json:"total_movimientos"`
	ByType         map[string]int              `json:"movimientos_por_tipo"`
	ByStatus       map[string]int              `json:"movimientos_por_estado"`
	TotalValue     decimal.Decimal             `json:"valor_total_movido"`
	TopProducts    []ProductActivityResponse   `json:"productos_mas_movidos"`
	TopWarehouses  []WarehouseActivityResponse `json:"almacenes_mas_activos"`
}

// ProductActivityResponse actividad de un producto en el periodo.
type ProductActivityResponse struct {
	ProductID string          `json:"producto_id"`
	Quantity  decimal.Decimal `json:"cantidad_total"`
	Movements int             `json:"movimientos"`
}

// WarehouseActivityResponse actividad de un almacén en el periodo.
type WarehouseActivityResponse struct {
	WarehouseID string `json:"almacen_id"`
	Movements   int    `json:"movimientos"`
}
