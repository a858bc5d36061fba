package http_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nutrichain/almacen-service/internal/application/catalogo"
	"github.com/nutrichain/almacen-service/internal/application/dto"
	"github.com/nutrichain/almacen-service/internal/application/movimientos"
	"github.com/nutrichain/almacen-service/internal/domain/entity"
	"github.com/nutrichain/almacen-service/internal/domain/repository"
	apphttp "github.com/nutrichain/almacen-service/internal/interfaces/http"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes mínimos para armar el caso de uso detrás del handler
// ──────────────────────────────────────────────────────────────────────────────

type memStockRepo struct {
	rows map[string]*entity.Stock
}

func key(p, w string) string { return p + "|" + w }

func (m *memStockRepo) Get(p, w string) (*entity.Stock, error) {
	if s, ok := m.rows[key(p, w)]; ok {
		c := *s
		return &c, nil
	}
	return nil, nil
}
func (m *memStockRepo) GetForUpdate(p, w string) (*entity.Stock, error) { return m.Get(p, w) }
func (m *memStockRepo) Create(s *entity.Stock) error {
	c := *s
	m.rows[key(s.ProductID, s.WarehouseID)] = &c
	return nil
}
func (m *memStockRepo) CreateIfAbsent(s *entity.Stock) (bool, error) {
	if _, ok := m.rows[key(s.ProductID, s.WarehouseID)]; ok {
		return false, nil
	}
	return true, m.Create(s)
}
func (m *memStockRepo) Update(s *entity.Stock) error { return m.Create(s) }
func (m *memStockRepo) List(repository.StockFilter) ([]*entity.Stock, int, error) {
	return nil, 0, nil
}
func (m *memStockRepo) ListByProduct(string) ([]*entity.Stock, error)    { return nil, nil }
func (m *memStockRepo) ListBelowMinimum(string) ([]*entity.Stock, error) { return nil, nil }
func (m *memStockRepo) Consolidated(string) ([]repository.ConsolidatedStock, error) {
	return nil, nil
}
func (m *memStockRepo) CountByWarehouse(string) (int, error) { return 0, nil }

type memMovementRepo struct {
	rows []*entity.Movement
}

func (m *memMovementRepo) Create(mov *entity.Movement) error {
	if mov.ID == "" {
		mov.ID = "mov-test"
	}
	c := *mov
	m.rows = append(m.rows, &c)
	return nil
}
func (m *memMovementRepo) GetByID(string) (*entity.Movement, error) { return nil, nil }
func (m *memMovementRepo) List(repository.MovementFilter) ([]*entity.Movement, int, error) {
	return m.rows, len(m.rows), nil
}
func (m *memMovementRepo) Stats(from, to time.Time, _, _ string) (*repository.MovementStats, error) {
	return &repository.MovementStats{From: from, To: to, ByType: map[string]int{}}, nil
}

type memWarehouseRepo struct{}

func (memWarehouseRepo) Create(*entity.Warehouse) error { return nil }
func (memWarehouseRepo) GetByID(id string) (*entity.Warehouse, error) {
	return &entity.Warehouse{ID: id, Active: true}, nil
}
func (memWarehouseRepo) GetByCode(string) (*entity.Warehouse, error) { return nil, nil }
func (memWarehouseRepo) Update(*entity.Warehouse) error              { return nil }
func (memWarehouseRepo) List(repository.WarehouseFilter) ([]*entity.Warehouse, int, error) {
	return nil, 0, nil
}
func (memWarehouseRepo) Delete(string) error { return nil }

type okCatalog struct{}

func (okCatalog) Verify(context.Context, string) (catalogo.Existence, error) {
	return catalogo.ExistenceConfirmed, nil
}

type passthroughTxRunner struct {
	movRepo   *memMovementRepo
	stockRepo *memStockRepo
}

func (r *passthroughTxRunner) Run(_ context.Context, fn func(repository.MovementRepository, repository.StockRepository) error) error {
	return fn(r.movRepo, r.stockRepo)
}

func buildTestApp(movRepo *memMovementRepo, stockRepo *memStockRepo) *fiber.App {
	runner := &passthroughTxRunner{movRepo: movRepo, stockRepo: stockRepo}
	registerUC := movimientos.NewRegisterMovementUseCase(runner, memWarehouseRepo{}, stockRepo, okCatalog{})
	queryUC := movimientos.NewMovementQueryUseCase(movRepo)

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		RegisterMovement: registerUC,
		MovementQuery:    queryUC,
	})
	return app
}

// ──────────────────────────────────────────────────────────────────────────────
// La variante individual/lote se decide una sola vez en el handler
// ──────────────────────────────────────────────────────────────────────────────

func TestEntrada_Individual(t *testing.T) {
	movRepo := &memMovementRepo{}
	stockRepo := &memStockRepo{rows: map[string]*entity.Stock{}}
	app := buildTestApp(movRepo, stockRepo)

	body := `{"producto_id":"prod-1","almacen_destino_id":"alm-1","cantidad":"10","motivo":"compra"}`
	req := httptest.NewRequest("POST", "/api/movimientos/entrada", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var out dto.MovementWithStockResponse
	raw, _ := io.ReadAll(resp.Body)
	require.NoError(t, json.Unmarshal(raw, &out))
	assert.Equal(t, entity.MovementTypeEntrada, out.Movement.Type)
	assert.Len(t, movRepo.rows, 1)
}

func TestEntrada_LoteSeDetectaPorElCampoMovimientos(t *testing.T) {
	movRepo := &memMovementRepo{}
	stockRepo := &memStockRepo{rows: map[string]*entity.Stock{}}
	app := buildTestApp(movRepo, stockRepo)

	body := `{"movimientos":[
		{"producto_id":"prod-1","almacen_destino_id":"alm-1","cantidad":"10"},
		{"producto_id":"prod-2","almacen_destino_id":"alm-1","cantidad":"5"}
	]}`
	req := httptest.NewRequest("POST", "/api/movimientos/entrada", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var out dto.MovementBatchResponse
	raw, _ := io.ReadAll(resp.Body)
	require.NoError(t, json.Unmarshal(raw, &out))
	assert.Equal(t, 2, out.Total)
	assert.Len(t, movRepo.rows, 2)
}

func TestEntrada_BodyInvalido(t *testing.T) {
	app := buildTestApp(&memMovementRepo{}, &memStockRepo{rows: map[string]*entity.Stock{}})

	req := httptest.NewRequest("POST", "/api/movimientos/entrada", strings.NewReader("{no es json"))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestSalida_SinStockDevuelve404(t *testing.T) {
	app := buildTestApp(&memMovementRepo{}, &memStockRepo{rows: map[string]*entity.Stock{}})

	body := `{"producto_id":"prod-1","almacen_origen_id":"alm-1","cantidad":"3","motivo":"despacho"}`
	req := httptest.NewRequest("POST", "/api/movimientos/salida", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	var out dto.ErrorResponse
	raw, _ := io.ReadAll(resp.Body)
	require.NoError(t, json.Unmarshal(raw, &out))
	assert.Equal(t, "NOT_FOUND", out.Code)
}
