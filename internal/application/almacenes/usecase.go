package almacenes

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/nutrichain/almacen-service/internal/application/dto"
	"github.com/nutrichain/almacen-service/internal/domain"
	"github.com/nutrichain/almacen-service/internal/domain/entity"
	"github.com/nutrichain/almacen-service/internal/domain/repository"
)

// WarehouseUseCase casos de uso CRUD para almacenes (registro local).
// El registro decide si un almacén puede recibir movimientos: existir + activo.
type WarehouseUseCase struct {
	repo      repository.WarehouseRepository
	stockRepo repository.StockRepository
}

// NewWarehouseUseCase construye el caso de uso.
func NewWarehouseUseCase(repo repository.WarehouseRepository, stockRepo repository.StockRepository) *WarehouseUseCase {
	return &WarehouseUseCase{repo: repo, stockRepo: stockRepo}
}

// Create crea un nuevo almacén, activo por defecto. El código debe ser único.
func (uc *WarehouseUseCase) Create(in dto.CreateWarehouseRequest) (*dto.WarehouseResponse, error) {
	if in.Code == "" || in.Name == "" {
		return nil, fmt.Errorf("codigo y nombre son requeridos: %w", domain.ErrInvalidInput)
	}
	existing, err := uc.repo.GetByCode(in.Code)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("ya existe un almacén con código %q: %w", in.Code, domain.ErrDuplicate)
	}

	now := time.Now()
	wh := &entity.Warehouse{
		ID:          uuid.New().String(),
		Code:        in.Code,
		Name:        in.Name,
		Location:    in.Location,
		Responsible: in.Responsible,
		Phone:       in.Phone,
		Email:       in.Email,
		Type:        in.Type,
		MaxCapacity: in.MaxCapacity,
		Active:      true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if wh.Type == "" {
		wh.Type = "general"
	}
	if err := uc.repo.Create(wh); err != nil {
		return nil, err
	}
	return toWarehouseResponse(wh), nil
}

// GetByID obtiene un almacén por ID.
func (uc *WarehouseUseCase) GetByID(id string) (*dto.WarehouseResponse, error) {
	wh, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if wh == nil {
		return nil, fmt.Errorf("almacén %s: %w", id, domain.ErrNotFound)
	}
	return toWarehouseResponse(wh), nil
}

// List lista almacenes con filtros y paginación.
func (uc *WarehouseUseCase) List(q dto.WarehouseListQuery) (*dto.WarehouseListResponse, error) {
	q.DefaultPage()
	list, total, err := uc.repo.List(repository.WarehouseFilter{
		Active: q.Active,
		Type:   q.Type,
		Limit:  q.Limit,
		Offset: q.Offset,
	})
	if err != nil {
		return nil, err
	}
	items := make([]dto.WarehouseResponse, 0, len(list))
	for _, w := range list {
		items = append(items, *toWarehouseResponse(w))
	}
	return &dto.WarehouseListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: q.Limit, Offset: q.Offset, Total: total},
	}, nil
}

// Update actualiza campos editables de un almacén (parcial).
func (uc *WarehouseUseCase) Update(id string, in dto.UpdateWarehouseRequest) (*dto.WarehouseResponse, error) {
	wh, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if wh == nil {
		return nil, fmt.Errorf("almacén %s: %w", id, domain.ErrNotFound)
	}
	if in.Name != nil {
		wh.Name = *in.Name
	}
	if in.Location != nil {
		wh.Location = *in.Location
	}
	if in.Responsible != nil {
		wh.Responsible = *in.Responsible
	}
	if in.Phone != nil {
		wh.Phone = *in.Phone
	}
	if in.Email != nil {
		wh.Email = *in.Email
	}
	if in.Type != nil {
		wh.Type = *in.Type
	}
	if in.MaxCapacity != nil {
		wh.MaxCapacity = in.MaxCapacity
	}
	wh.UpdatedAt = time.Now()
	if err := uc.repo.Update(wh); err != nil {
		return nil, err
	}
	return toWarehouseResponse(wh), nil
}

// SetActive activa o desactiva un almacén. Desactivar no borra nada: los
// movimientos futuros hacia/desde el almacén quedan rechazados por el registro.
func (uc *WarehouseUseCase) SetActive(id string, active bool) (*dto.WarehouseResponse, error) {
	wh, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if wh == nil {
		return nil, fmt.Errorf("almacén %s: %w", id, domain.ErrNotFound)
	}
	wh.Active = active
	wh.UpdatedAt = time.Now()
	if err := uc.repo.Update(wh); err != nil {
		return nil, err
	}
	return toWarehouseResponse(wh), nil
}

// Delete elimina un almacén solo si no tiene stock registrado; si lo tiene,
// la operación correcta es desactivarlo.
func (uc *WarehouseUseCase) Delete(id string) error {
	wh, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if wh == nil {
		return fmt.Errorf("almacén %s: %w", id, domain.ErrNotFound)
	}
	count, err := uc.stockRepo.CountByWarehouse(id)
	if err != nil {
		return err
	}
	if count > 0 {
		return fmt.Errorf("almacén %s: %w", id, domain.ErrWarehouseNotEmpty)
	}
	return uc.repo.Delete(id)
}

func toWarehouseResponse(w *entity.Warehouse) *dto.WarehouseResponse {
	return &dto.WarehouseResponse{
		ID:          w.ID,
		Code:        w.Code,
		Name:        w.Name,
		Location:    w.Location,
		Responsible: w.Responsible,
		Phone:       w.Phone,
		Email:       w.Email,
		Type:        w.Type,
		MaxCapacity: w.MaxCapacity,
		Active:      w.Active,
		CreatedAt:   w.CreatedAt,
		UpdatedAt:   w.UpdatedAt,
	}
}
