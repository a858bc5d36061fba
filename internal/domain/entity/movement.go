package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento de inventario.
const (
	MovementTypeEntrada       = "entrada"
	MovementTypeSalida        = "salida"
	MovementTypeTransferencia = "transferencia"
	MovementTypeAjuste        = "ajuste"
)

// Estado terminal de un movimiento persistido. El ledger es append-only:
// no existe transición posterior (ni cancelación ni reverso).
const MovementStatusProcesado = "procesado"

// Movement es el registro de auditoría inmutable de un evento que afecta stock.
// Invariantes de almacenes según tipo:
//   - entrada: solo destino
//   - salida: solo origen
//   - transferencia: origen y destino, distintos
//   - ajuste: destino (el almacén ajustado)
type Movement struct {
	ID                     string
	ProductID              string
	OriginWarehouseID      *string
	DestinationWarehouseID *string
	Type                   string
	Quantity               decimal.Decimal // siempre > 0; el signo lo da el tipo
	UnitCost               *decimal.Decimal
	TotalCost              *decimal.Decimal
	Reason                 string
	ExternalRef            string
	Actor                  string
	Status                 string
	CreatedAt              time.Time
}
