package movimientos

import (
	"fmt"
	"time"

	"github.com/nutrichain/almacen-service/internal/application/dto"
	"github.com/nutrichain/almacen-service/internal/domain"
	"github.com/nutrichain/almacen-service/internal/domain/entity"
	"github.com/nutrichain/almacen-service/internal/domain/repository"
)

// MovementQueryUseCase consultas de solo lectura sobre el ledger de movimientos.
type MovementQueryUseCase struct {
	movementRepo repository.MovementRepository
}

// NewMovementQueryUseCase construye el caso de uso de consulta.
func NewMovementQueryUseCase(movementRepo repository.MovementRepository) *MovementQueryUseCase {
	return &MovementQueryUseCase{movementRepo: movementRepo}
}

// GetByID obtiene un movimiento por ID.
func (uc *MovementQueryUseCase) GetByID(id string) (*dto.MovementResponse, error) {
	mov, err := uc.movementRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if mov == nil {
		return nil, fmt.Errorf("movimiento %s: %w", id, domain.ErrNotFound)
	}
	out := toMovementResponse(mov)
	return &out, nil
}

// List lista movimientos con filtros combinables y paginación.
func (uc *MovementQueryUseCase) List(q dto.MovementListQuery) (*dto.MovementListResponse, error) {
	q.DefaultPage()

	filter := repository.MovementFilter{
		ProductID:   q.ProductID,
		WarehouseID: q.WarehouseID,
		Type:        q.Type,
		Limit:       q.Limit,
		Offset:      q.Offset,
	}
	if q.Type != "" && !isValidMovementType(q.Type) {
		return nil, fmt.Errorf("tipo_movimiento %q: %w", q.Type, domain.ErrInvalidInput)
	}

	var err error
	if filter.From, err = parseDate(q.From, false); err != nil {
		return nil, err
	}
	if filter.To, err = parseDate(q.To, true); err != nil {
		return nil, err
	}

	list, total, err := uc.movementRepo.List(filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.MovementResponse, 0, len(list))
	for _, m := range list {
		items = append(items, toMovementResponse(m))
	}
	return &dto.MovementListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: q.Limit, Offset: q.Offset, Total: total},
	}, nil
}

func isValidMovementType(t string) bool {
	switch t {
	case entity.MovementTypeEntrada, entity.MovementTypeSalida,
		entity.MovementTypeTransferencia, entity.MovementTypeAjuste:
		return true
	}
	return false
}

// parseDate interpreta YYYY-MM-DD; endOfDay desplaza al final del día para que
// el rango de fechas sea inclusivo.
func parseDate(s string, endOfDay bool) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil, fmt.Errorf("fecha %q (se espera YYYY-MM-DD): %w", s, domain.ErrInvalidInput)
	}
	if endOfDay {
		t = t.Add(24*time.Hour - time.Nanosecond)
	}
	return &t, nil
}
