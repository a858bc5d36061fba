package entity_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/nutrichain/almacen-service/internal/domain/entity"
)

func dec(f float64) decimal.Decimal     { return decimal.NewFromFloat(f) }
func decPtr(f float64) *decimal.Decimal { d := decimal.NewFromFloat(f); return &d }

func TestStock_Available(t *testing.T) {
	s := &entity.Stock{QuantityOnHand: dec(100), QuantityReserved: dec(30)}
	assert.True(t, s.Available().Equal(dec(70)))
}

func TestStock_Low(t *testing.T) {
	tests := []struct {
		name   string
		onHand float64
		min    *decimal.Decimal
		want   bool
	}{
		{"sin mínimo configurado", 5, nil, false},
		{"por encima del mínimo", 100, decPtr(50), false},
		{"exactamente en el mínimo", 50, decPtr(50), true},
		{"por debajo del mínimo", 10, decPtr(50), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &entity.Stock{QuantityOnHand: dec(tt.onHand), QuantityMin: tt.min}
			assert.Equal(t, tt.want, s.Low())
		})
	}
}

func TestStock_Depleted(t *testing.T) {
	s := &entity.Stock{QuantityOnHand: dec(10), QuantityReserved: dec(10)}
	assert.True(t, s.Depleted(), "todo reservado = nada disponible")

	s.QuantityReserved = dec(9)
	assert.False(t, s.Depleted())
}
