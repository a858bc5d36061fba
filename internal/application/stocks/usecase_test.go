package stocks_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nutrichain/almacen-service/internal/application/catalogo"
	"github.com/nutrichain/almacen-service/internal/application/dto"
	"github.com/nutrichain/almacen-service/internal/application/stocks"
	"github.com/nutrichain/almacen-service/internal/domain"
	"github.com/nutrichain/almacen-service/internal/domain/entity"
	"github.com/nutrichain/almacen-service/internal/domain/repository"
)

type fakeStockRepo struct {
	rows []*entity.Stock
}

func (f *fakeStockRepo) Get(p, w string) (*entity.Stock, error) {
	for _, s := range f.rows {
		if s.ProductID == p && s.WarehouseID == w {
			return s, nil
		}
	}
	return nil, nil
}
func (f *fakeStockRepo) GetForUpdate(p, w string) (*entity.Stock, error) { return f.Get(p, w) }
func (f *fakeStockRepo) Create(s *entity.Stock) error                    { f.rows = append(f.rows, s); return nil }
func (f *fakeStockRepo) CreateIfAbsent(s *entity.Stock) (bool, error)    { f.rows = append(f.rows, s); return true, nil }
func (f *fakeStockRepo) Update(*entity.Stock) error                      { return nil }
func (f *fakeStockRepo) List(filter repository.StockFilter) ([]*entity.Stock, int, error) {
	return f.rows, len(f.rows), nil
}
func (f *fakeStockRepo) ListByProduct(p string) ([]*entity.Stock, error) {
	var out []*entity.Stock
	for _, s := range f.rows {
		if s.ProductID == p {
			out = append(out, s)
		}
	}
	return out, nil
}
func (f *fakeStockRepo) ListBelowMinimum(w string) ([]*entity.Stock, error) {
	var out []*entity.Stock
	for _, s := range f.rows {
		if s.QuantityMin != nil && s.QuantityOnHand.LessThanOrEqual(*s.QuantityMin) {
			if w == "" || s.WarehouseID == w {
				out = append(out, s)
			}
		}
	}
	return out, nil
}
func (f *fakeStockRepo) Consolidated(string) ([]repository.ConsolidatedStock, error) {
	return nil, nil
}
func (f *fakeStockRepo) CountByWarehouse(string) (int, error) { return 0, nil }

type fakeCatalog struct {
	result catalogo.Existence
	err    error
}

func (f *fakeCatalog) Verify(context.Context, string) (catalogo.Existence, error) {
	return f.result, f.err
}

func dec(v float64) decimal.Decimal     { return decimal.NewFromFloat(v) }
func decPtr(v float64) *decimal.Decimal { d := decimal.NewFromFloat(v); return &d }

func seed(p, w string, onHand, reserved float64, min *decimal.Decimal) *entity.Stock {
	return &entity.Stock{
		ProductID:        p,
		WarehouseID:      w,
		QuantityOnHand:   dec(onHand),
		QuantityReserved: dec(reserved),
		QuantityMin:      min,
		UpdatedAt:        time.Now(),
	}
}

func TestAvailability_GlobalCubreLaDemanda(t *testing.T) {
	repo := &fakeStockRepo{rows: []*entity.Stock{
		seed("prod-1", "alm-1", 60, 10, nil),
		seed("prod-1", "alm-2", 40, 0, nil),
	}}
	uc := stocks.NewStockQueryUseCase(repo, &fakeCatalog{result: catalogo.ExistenceConfirmed})

	out, err := uc.Availability(context.Background(), dto.AvailabilityRequest{
		ProductID:        "prod-1",
		RequiredQuantity: dec(80),
	})
	require.NoError(t, err)

	// 50 disponibles en alm-1 + 40 en alm-2 = 90 >= 80
	assert.True(t, out.TotalAvailable.Equal(dec(90)))
	assert.True(t, out.Available)
	require.Len(t, out.Warehouses, 2)
	assert.False(t, out.Warehouses[0].CanCover, "alm-1 solo tiene 50 disponibles")
	assert.Empty(t, out.Suggestions)
}

func TestAvailability_InsuficienteSugiereFaltante(t *testing.T) {
	repo := &fakeStockRepo{rows: []*entity.Stock{
		seed("prod-1", "alm-1", 30, 0, nil),
	}}
	uc := stocks.NewStockQueryUseCase(repo, &fakeCatalog{result: catalogo.ExistenceConfirmed})

	out, err := uc.Availability(context.Background(), dto.AvailabilityRequest{
		ProductID:        "prod-1",
		RequiredQuantity: dec(100),
	})
	require.NoError(t, err)
	assert.False(t, out.Available)
	require.NotEmpty(t, out.Suggestions)
	assert.Contains(t, out.Suggestions[0], "70", "debe indicar cuántas unidades faltan")
}

func TestAvailability_ProductoInexistente(t *testing.T) {
	uc := stocks.NewStockQueryUseCase(&fakeStockRepo{}, &fakeCatalog{result: catalogo.ExistenceNotFound})

	_, err := uc.Availability(context.Background(), dto.AvailabilityRequest{
		ProductID:        "prod-x",
		RequiredQuantity: dec(1),
	})
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAvailability_CatalogoCaidoFailClosed(t *testing.T) {
	uc := stocks.NewStockQueryUseCase(&fakeStockRepo{}, &fakeCatalog{
		result: catalogo.ExistenceIndeterminate,
		err:    domain.ErrCatalogUnavailable,
	})

	_, err := uc.Availability(context.Background(), dto.AvailabilityRequest{
		ProductID:        "prod-1",
		RequiredQuantity: dec(1),
	})
	require.ErrorIs(t, err, domain.ErrCatalogUnavailable)
}

func TestGet_NoExisteDevuelveNotFound(t *testing.T) {
	uc := stocks.NewStockQueryUseCase(&fakeStockRepo{}, &fakeCatalog{result: catalogo.ExistenceConfirmed})

	_, err := uc.Get("prod-1", "alm-1")
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestLowStock_CalculaSugerencia(t *testing.T) {
	repo := &fakeStockRepo{rows: []*entity.Stock{
		seed("prod-1", "alm-1", 20, 0, decPtr(50)),  // bajo: sugerido 50*1.5-20 = 55
		seed("prod-2", "alm-1", 200, 0, decPtr(50)), // sano
	}}
	uc := stocks.NewStockQueryUseCase(repo, &fakeCatalog{result: catalogo.ExistenceConfirmed})

	out, err := uc.LowStock("")
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "prod-1", out[0].ProductID)
	assert.True(t, out[0].SuggestedOrderQty.Equal(dec(55)), "sugerido = min*1.5 - actual, got %s", out[0].SuggestedOrderQty)
}
