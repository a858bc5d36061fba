package almacenes_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nutrichain/almacen-service/internal/application/almacenes"
	"github.com/nutrichain/almacen-service/internal/application/dto"
	"github.com/nutrichain/almacen-service/internal/domain"
	"github.com/nutrichain/almacen-service/internal/domain/entity"
	"github.com/nutrichain/almacen-service/internal/domain/repository"
)

type fakeWarehouseRepo struct {
	rows map[string]*entity.Warehouse
}

func newFakeWarehouseRepo() *fakeWarehouseRepo {
	return &fakeWarehouseRepo{rows: map[string]*entity.Warehouse{}}
}

func (f *fakeWarehouseRepo) Create(w *entity.Warehouse) error { f.rows[w.ID] = w; return nil }
func (f *fakeWarehouseRepo) GetByID(id string) (*entity.Warehouse, error) {
	if w, ok := f.rows[id]; ok {
		return w, nil
	}
	return nil, nil
}
func (f *fakeWarehouseRepo) GetByCode(code string) (*entity.Warehouse, error) {
	for _, w := range f.rows {
		if w.Code == code {
			return w, nil
		}
	}
	return nil, nil
}
func (f *fakeWarehouseRepo) Update(w *entity.Warehouse) error { f.rows[w.ID] = w; return nil }
func (f *fakeWarehouseRepo) List(filter repository.WarehouseFilter) ([]*entity.Warehouse, int, error) {
	var out []*entity.Warehouse
	for _, w := range f.rows {
		out = append(out, w)
	}
	return out, len(out), nil
}
func (f *fakeWarehouseRepo) Delete(id string) error { delete(f.rows, id); return nil }

type stubStockCounter struct {
	count int
}

func (s *stubStockCounter) Get(string, string) (*entity.Stock, error)          { return nil, nil }
func (s *stubStockCounter) GetForUpdate(string, string) (*entity.Stock, error) { return nil, nil }
func (s *stubStockCounter) Create(*entity.Stock) error                         { return nil }
func (s *stubStockCounter) CreateIfAbsent(*entity.Stock) (bool, error)         { return true, nil }
func (s *stubStockCounter) Update(*entity.Stock) error                         { return nil }
func (s *stubStockCounter) List(repository.StockFilter) ([]*entity.Stock, int, error) {
	return nil, 0, nil
}
func (s *stubStockCounter) ListByProduct(string) ([]*entity.Stock, error)    { return nil, nil }
func (s *stubStockCounter) ListBelowMinimum(string) ([]*entity.Stock, error) { return nil, nil }
func (s *stubStockCounter) Consolidated(string) ([]repository.ConsolidatedStock, error) {
	return nil, nil
}
func (s *stubStockCounter) CountByWarehouse(string) (int, error) { return s.count, nil }

func TestCreate_AsignaDefaults(t *testing.T) {
	uc := almacenes.NewWarehouseUseCase(newFakeWarehouseRepo(), &stubStockCounter{})

	out, err := uc.Create(dto.CreateWarehouseRequest{Code: "CEN", Name: "Central"})
	require.NoError(t, err)
	assert.NotEmpty(t, out.ID)
	assert.True(t, out.Active, "un almacén nuevo nace activo")
	assert.Equal(t, "general", out.Type)
}

func TestCreate_CodigoDuplicado(t *testing.T) {
	repo := newFakeWarehouseRepo()
	uc := almacenes.NewWarehouseUseCase(repo, &stubStockCounter{})

	_, err := uc.Create(dto.CreateWarehouseRequest{Code: "CEN", Name: "Central"})
	require.NoError(t, err)

	_, err = uc.Create(dto.CreateWarehouseRequest{Code: "CEN", Name: "Otro"})
	require.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestCreate_CamposRequeridos(t *testing.T) {
	uc := almacenes.NewWarehouseUseCase(newFakeWarehouseRepo(), &stubStockCounter{})

	_, err := uc.Create(dto.CreateWarehouseRequest{Code: "", Name: "Sin código"})
	require.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSetActive_Desactiva(t *testing.T) {
	repo := newFakeWarehouseRepo()
	uc := almacenes.NewWarehouseUseCase(repo, &stubStockCounter{})

	created, err := uc.Create(dto.CreateWarehouseRequest{Code: "CEN", Name: "Central"})
	require.NoError(t, err)

	out, err := uc.SetActive(created.ID, false)
	require.NoError(t, err)
	assert.False(t, out.Active)

	// Reactivar
	out, err = uc.SetActive(created.ID, true)
	require.NoError(t, err)
	assert.True(t, out.Active)
}

func TestDelete_RechazaAlmacenConStock(t *testing.T) {
	repo := newFakeWarehouseRepo()
	uc := almacenes.NewWarehouseUseCase(repo, &stubStockCounter{count: 3})

	created, err := uc.Create(dto.CreateWarehouseRequest{Code: "CEN", Name: "Central"})
	require.NoError(t, err)

	err = uc.Delete(created.ID)
	require.ErrorIs(t, err, domain.ErrWarehouseNotEmpty)

	// Sigue existiendo
	_, err = uc.GetByID(created.ID)
	require.NoError(t, err)
}

func TestDelete_AlmacenVacio(t *testing.T) {
	repo := newFakeWarehouseRepo()
	uc := almacenes.NewWarehouseUseCase(repo, &stubStockCounter{count: 0})

	created, err := uc.Create(dto.CreateWarehouseRequest{Code: "CEN", Name: "Central"})
	require.NoError(t, err)

	require.NoError(t, uc.Delete(created.ID))
	_, err = uc.GetByID(created.ID)
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUpdate_Parcial(t *testing.T) {
	repo := newFakeWarehouseRepo()
	uc := almacenes.NewWarehouseUseCase(repo, &stubStockCounter{})

	created, err := uc.Create(dto.CreateWarehouseRequest{Code: "CEN", Name: "Central", Location: "Bogotá"})
	require.NoError(t, err)

	newName := "Central Norte"
	out, err := uc.Update(created.ID, dto.UpdateWarehouseRequest{Name: &newName})
	require.NoError(t, err)
	assert.Equal(t, "Central Norte", out.Name)
	assert.Equal(t, "Bogotá", out.Location, "los campos no enviados se conservan")
}
