package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Stock representa el saldo actual de un producto en un almacén.
// Clave única (ProductID, WarehouseID). Solo el orquestador de movimientos
// puede crearlo o mutarlo; toda modificación queda justificada por un Movement.
type Stock struct {
	ProductID        string
	WarehouseID      string
	QuantityOnHand   decimal.Decimal
	QuantityReserved decimal.Decimal
	QuantityMin      *decimal.Decimal
	QuantityMax      *decimal.Decimal
	UnitCost         *decimal.Decimal
	UpdatedAt        time.Time
}

// Available cantidad disponible para salida (actual - reservada).
func (s *Stock) Available() decimal.Decimal {
	return s.QuantityOnHand.Sub(s.QuantityReserved)
}

// Low indica si el saldo está en o por debajo del mínimo configurado.
func (s *Stock) Low() bool {
	if s.QuantityMin == nil {
		return false
	}
	return s.QuantityOnHand.LessThanOrEqual(*s.QuantityMin)
}

// Depleted indica si no queda cantidad disponible.
func (s *Stock) Depleted() bool {
	return s.Available().LessThanOrEqual(decimal.Zero)
}
