package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Warehouse representa un almacén físico donde se guarda inventario.
// Un almacén inactivo sigue existiendo pero rechaza movimientos.
type Warehouse struct {
	ID          string
	Code        string // código único legible (ej. "ALM-NORTE")
	Name        string
	Location    string
	Responsible string
	Phone       string
	Email       string
	Type        string // general, refrigerado, tránsito...
	MaxCapacity *decimal.Decimal
	Active      bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
