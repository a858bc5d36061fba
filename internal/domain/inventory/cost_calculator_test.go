package inventory_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/nutrichain/almacen-service/internal/domain/inventory"
)

func TestCostCalculator_PromedioPonderado(t *testing.T) {
	// (100*10 + 50*16) / 150 = 12
	got := inventory.CostCalculator(
		decimal.NewFromInt(100), decimal.NewFromInt(10),
		decimal.NewFromInt(50), decimal.NewFromInt(16),
	)
	assert.True(t, got.Equal(decimal.NewFromInt(12)), "esperado 12, got %s", got)
}

func TestCostCalculator_SinStockPrevio(t *testing.T) {
	got := inventory.CostCalculator(
		decimal.Zero, decimal.Zero,
		decimal.NewFromInt(20), decimal.NewFromInt(7),
	)
	assert.True(t, got.Equal(decimal.NewFromInt(7)), "sin stock previo el costo es el de la entrada")
}

func TestCostCalculator_SumaCeroDevuelveCero(t *testing.T) {
	got := inventory.CostCalculator(
		decimal.Zero, decimal.NewFromInt(10),
		decimal.Zero, decimal.NewFromInt(5),
	)
	assert.True(t, got.IsZero())
}
