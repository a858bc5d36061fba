package reportes

import (
	"context"
	"fmt"
	"time"

	"github.com/nutrichain/almacen-service/internal/application/dto"
	"github.com/nutrichain/almacen-service/internal/domain"
	"github.com/nutrichain/almacen-service/internal/domain/entity"
	"github.com/nutrichain/almacen-service/internal/domain/repository"
)

// MovementReportPDFGenerator puerto hacia el generador de PDF del reporte.
type MovementReportPDFGenerator interface {
	GenerateMovementReport(ctx context.Context, report *dto.MovementReportResponse, movements []*entity.Movement) ([]byte, error)
}

// ReportUseCase reportes agregados sobre el ledger de movimientos (solo lectura).
type ReportUseCase struct {
	movementRepo repository.MovementRepository
	pdfGenerator MovementReportPDFGenerator
}

// NewReportUseCase construye el caso de uso.
func NewReportUseCase(movementRepo repository.MovementRepository, pdfGenerator MovementReportPDFGenerator) *ReportUseCase {
	return &ReportUseCase{movementRepo: movementRepo, pdfGenerator: pdfGenerator}
}

// MovementStats devuelve los agregados de movimientos de un rango de fechas.
func (uc *ReportUseCase) MovementStats(q dto.MovementReportQuery) (*dto.MovementReportResponse, error) {
	from, to, err := parseRange(q.From, q.To)
	if err != nil {
		return nil, err
	}
	stats, err := uc.movementRepo.Stats(from, to, q.WarehouseID, q.Type)
	if err != nil {
		return nil, err
	}
	return toReportResponse(stats), nil
}

// MovementReportPDF genera el mismo reporte como PDF descargable.
func (uc *ReportUseCase) MovementReportPDF(ctx context.Context, q dto.MovementReportQuery) ([]byte, error) {
	from, to, err := parseRange(q.From, q.To)
	if err != nil {
		return nil, err
	}
	stats, err := uc.movementRepo.Stats(from, to, q.WarehouseID, q.Type)
	if err != nil {
		return nil, err
	}
	movements, _, err := uc.movementRepo.List(repository.MovementFilter{
		WarehouseID: q.WarehouseID,
		Type:        q.Type,
		From:        &from,
		To:          &to,
		Limit:       500,
	})
	if err != nil {
		return nil, err
	}
	return uc.pdfGenerator.GenerateMovementReport(ctx, toReportResponse(stats), movements)
}

func parseRange(fromStr, toStr string) (time.Time, time.Time, error) {
	if fromStr == "" || toStr == "" {
		return time.Time{}, time.Time{}, fmt.Errorf("fecha_inicio y fecha_fin son requeridas: %w", domain.ErrInvalidInput)
	}
	from, err := time.Parse("2006-01-02", fromStr)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("fecha_inicio %q: %w", fromStr, domain.ErrInvalidInput)
	}
	to, err := time.Parse("2006-01-02", toStr)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("fecha_fin %q: %w", toStr, domain.ErrInvalidInput)
	}
	if to.Before(from) {
		return time.Time{}, time.Time{}, fmt.Errorf("fecha_fin anterior a fecha_inicio: %w", domain.ErrInvalidInput)
	}
	// Rango inclusivo hasta el final del día
	to = to.Add(24*time.Hour - time.Nanosecond)
	return from, to, nil
}

func toReportResponse(s *repository.MovementStats) *dto.MovementReportResponse {
	out := &dto.MovementReportResponse{
		From:           s.From,
		To:             s.To,
		TotalMovements: s.TotalMovements,
		ByType:         s.ByType,
		ByStatus:       s.ByStatus,
		TotalValue:     s.TotalValue,
	}
	for _, p := range s.TopProducts {
		out.TopProducts = append(out.TopProducts, dto.ProductActivityResponse{
			ProductID: p.ProductID,
			Quantity:  p.Quantity,
			Movements: p.Movements,
		})
	}
	for _, w := range s.TopWarehouses {
		out.TopWarehouses = append(out.TopWarehouses, dto.WarehouseActivityResponse{
			WarehouseID: w.WarehouseID,
			Movements:   w.Movements,
		})
	}
	return out
}
