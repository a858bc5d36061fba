package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntradaRequest body para un movimiento de entrada individual.
type EntradaRequest struct {
	ProductID            string           `json:"producto_id"`
	DestinationWarehouse string           `json:"almacen_destino_id"`
	Quantity             decimal.Decimal  `json:"cantidad"`
	UnitCost             *decimal.Decimal `json:"costo_unitario,omitempty"`
	Reason               string           `json:"motivo"`
	ExternalRef          string           `json:"referencia_externa,omitempty"`
	Actor                string           `json:"usuario,omitempty"`
}

// SalidaRequest body para un movimiento de salida individual.
type SalidaRequest struct {
	ProductID       string          `json:"producto_id"`
	OriginWarehouse string          `json:"almacen_origen_id"`
	Quantity        decimal.Decimal `json:"cantidad"`
	Reason          string          `json:"motivo"`
	ExternalRef     string          `json:"referencia_externa,omitempty"`
	Actor           string          `json:"usuario,omitempty"`
}

// EntradaEnvelope body aceptado por POST /api/movimientos/entrada.
// La variante (individual o lote) se decide UNA vez en el handler:
// si Movimientos no está vacío es un lote, si no se usan los campos planos.
type EntradaEnvelope struct {
	EntradaRequest
	Movimientos []EntradaRequest `json:"movimientos,omitempty"`
}

// SalidaEnvelope body aceptado por POST /api/movimientos/salida.
type SalidaEnvelope struct {
	SalidaRequest
	Movimientos []SalidaRequest `json:"movimientos,omitempty"`
}

// IsBatch indica si el envelope transporta un lote.
func (e *EntradaEnvelope) IsBatch() bool { return len(e.Movimientos) > 0 }

// IsBatch indica si el envelope transporta un lote.
func (e *SalidaEnvelope) IsBatch() bool { return len(e.Movimientos) > 0 }

// TransferenciaRequest body para POST /api/movimientos/transferencia.
type TransferenciaRequest struct {
	ProductID            string          `json:"producto_id"`
	OriginWarehouse      string          `json:"almacen_origen_id"`
	DestinationWarehouse string          `json:"almacen_destino_id"`
	Quantity             decimal.Decimal `json:"cantidad"`
	Reason               string          `json:"motivo"`
	ExternalRef          string          `json:"referencia_externa,omitempty"`
	Actor                string          `json:"usuario,omitempty"`
}

// AjusteInicialRequest body para POST /api/movimientos/ajuste-inicial.
// Única forma sancionada de crear stock inicial con auditoría.
type AjusteInicialRequest struct {
	ProductID       string           `json:"producto_id"`
	WarehouseID     string           `json:"almacen_id"`
	InitialQuantity decimal.Decimal  `json:"cantidad_inicial"`
	QuantityMin     *decimal.Decimal `json:"cantidad_minima,omitempty"`
	QuantityMax     *decimal.Decimal `json:"cantidad_maxima,omitempty"`
	UnitCost        *decimal.Decimal `json:"costo_unitario,omitempty"`
	Reason          string           `json:"motivo"`
	Actor           string           `json:"usuario,omitempty"`
}

// MovementResponse salida de un movimiento persistido.
type MovementResponse struct {
	ID                     string           `json:"id"`
	ProductID              string           `json:"producto_id"`
	OriginWarehouseID      *string          `json:"almacen_origen_id,omitempty"`
	DestinationWarehouseID *string          `json:"almacen_destino_id,omitempty"`
	Type                   string           `json:"tipo_movimiento"`
	Quantity               decimal.Decimal  `json:"cantidad"`
	UnitCost               *decimal.Decimal `json:"costo_unitario,omitempty"`
	TotalCost              *decimal.Decimal `json:"costo_total,omitempty"`
	Reason                 string           `json:"motivo,omitempty"`
	ExternalRef            string           `json:"referencia_externa,omitempty"`
	Actor                  string           `json:"usuario,omitempty"`
	Status                 string           `json:"estado"`
	CreatedAt              time.Time        `json:"fecha_movimiento"`
}

// MovementWithStockResponse movimiento creado + snapshot del stock resultante.
type MovementWithStockResponse struct {
	Movement MovementResponse `json:"movimiento"`
	Stock    *StockResponse   `json:"stock_actualizado,omitempty"`
}

// TransferenciaResponse movimiento de transferencia + ambos saldos resultantes.
type TransferenciaResponse struct {
	Movement         MovementResponse `json:"movimiento"`
	OriginStock      *StockResponse   `json:"stock_origen,omitempty"`
	DestinationStock *StockResponse   `json:"stock_destino,omitempty"`
}

// MovementBatchResponse respuesta de un lote aplicado atómicamente.
type MovementBatchResponse struct {
	Movements []MovementWithStockResponse `json:"movimientos"`
	Total     int                         `json:"total"`
}

// MovementListResponse lista paginada de movimientos.
type MovementListResponse struct {
	Items []MovementResponse `json:"movimientos"`
	Page  PageResponse       `json:"page"`
}

// MovementListQuery filtros de GET /api/movimientos.
type MovementListQuery struct {
	ProductID   string `query:"producto_id"`
	WarehouseID string `query:"almacen_id"`
	Type        string `query:"tipo_movimiento"`
	From        string `query:"fecha_inicio"` // YYYY-MM-DD
	To          string `query:"fecha_fin"`    // YYYY-MM-DD
	PageRequest
}
