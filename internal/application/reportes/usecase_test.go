package reportes_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nutrichain/almacen-service/internal/application/dto"
	"github.com/nutrichain/almacen-service/internal/application/reportes"
	"github.com/nutrichain/almacen-service/internal/domain"
	"github.com/nutrichain/almacen-service/internal/domain/entity"
	"github.com/nutrichain/almacen-service/internal/domain/repository"
)

type stubMovementRepo struct {
	stats   *repository.MovementStats
	gotFrom time.Time
	gotTo   time.Time
	gotWh   string
	gotTipo string
}

func (s *stubMovementRepo) Create(*entity.Movement) error            { return nil }
func (s *stubMovementRepo) GetByID(string) (*entity.Movement, error) { return nil, nil }
func (s *stubMovementRepo) List(repository.MovementFilter) ([]*entity.Movement, int, error) {
	return nil, 0, nil
}
func (s *stubMovementRepo) Stats(from, to time.Time, warehouseID, movementType string) (*repository.MovementStats, error) {
	s.gotFrom, s.gotTo, s.gotWh, s.gotTipo = from, to, warehouseID, movementType
	return s.stats, nil
}

func TestMovementStats_RangoInclusivo(t *testing.T) {
	repo := &stubMovementRepo{stats: &repository.MovementStats{
		TotalMovements: 7,
		ByType:         map[string]int{"entrada": 4, "salida": 3},
		ByStatus:       map[string]int{"procesado": 7},
		TotalValue:     decimal.NewFromInt(1500),
	}}
	uc := reportes.NewReportUseCase(repo, nil)

	out, err := uc.MovementStats(dto.MovementReportQuery{
		From: "2026-08-01",
		To:   "2026-08-31",
	})
	require.NoError(t, err)
	assert.Equal(t, 7, out.TotalMovements)
	assert.Equal(t, 4, out.ByType["entrada"])
	assert.Equal(t, 7, out.ByStatus["procesado"])

	// El día final entra completo en el rango
	assert.Equal(t, 1, repo.gotFrom.Day())
	assert.Equal(t, 31, repo.gotTo.Day())
	assert.Equal(t, 23, repo.gotTo.Hour())
}

func TestMovementStats_FechasRequeridas(t *testing.T) {
	uc := reportes.NewReportUseCase(&stubMovementRepo{}, nil)

	_, err := uc.MovementStats(dto.MovementReportQuery{From: "2026-08-01"})
	require.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestMovementStats_RangoInvertido(t *testing.T) {
	uc := reportes.NewReportUseCase(&stubMovementRepo{}, nil)

	_, err := uc.MovementStats(dto.MovementReportQuery{
		From: "2026-08-31",
		To:   "2026-08-01",
	})
	require.ErrorIs(t, err, domain.ErrInvalidInput)
}
