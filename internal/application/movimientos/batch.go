package movimientos

import (
	"context"
	"fmt"
	"time"

	"github.com/nutrichain/almacen-service/internal/application/dto"
	"github.com/nutrichain/almacen-service/internal/domain"
	"github.com/nutrichain/almacen-service/internal/domain/repository"
)

// RecordEntradaBatch registra varias entradas como una sola unidad atómica.
// Todos los ítems se validan antes de escribir; cualquier fallo posterior
// revierte el lote completo (una única transacción).
func (uc *RegisterMovementUseCase) RecordEntradaBatch(ctx context.Context, items []dto.EntradaRequest) (*dto.MovementBatchResponse, error) {
	if len(items) == 0 {
		return nil, fmt.Errorf("debe proporcionar al menos un movimiento: %w", domain.ErrInvalidInput)
	}

	// Prevalidación completa antes de cualquier escritura
	for i, in := range items {
		if err := validateEntrada(in); err != nil {
			return nil, fmt.Errorf("movimiento %d: %w", i, err)
		}
		if err := uc.validarProducto(ctx, in.ProductID); err != nil {
			return nil, fmt.Errorf("movimiento %d: %w", i, err)
		}
		if err := uc.validarAlmacen(in.DestinationWarehouse); err != nil {
			return nil, fmt.Errorf("movimiento %d: %w", i, err)
		}
	}

	results := make([]dto.MovementWithStockResponse, 0, len(items))
	err := uc.txRunner.Run(ctx, func(movRepo repository.MovementRepository, stockRepo repository.StockRepository) error {
		now := time.Now()
		for i, in := range items {
			res, err := applyEntrada(movRepo, stockRepo, in, now)
			if err != nil {
				return fmt.Errorf("movimiento %d: %w", i, err)
			}
			results = append(results, *res)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &dto.MovementBatchResponse{Movements: results, Total: len(results)}, nil
}

// RecordSalidaBatch registra varias salidas como una sola unidad atómica.
// Además de producto y almacén, se prevalida la disponibilidad de cada ítem;
// dentro de la transacción se revalida bajo el lock de fila, de modo que un
// saldo movido entre la prevalidación y el commit no puede sobregirarse.
func (uc *RegisterMovementUseCase) RecordSalidaBatch(ctx context.Context, items []dto.SalidaRequest) (*dto.MovementBatchResponse, error) {
	if len(items) == 0 {
		return nil, fmt.Errorf("debe proporcionar al menos un movimiento: %w", domain.ErrInvalidInput)
	}

	for i, in := range items {
		if err := validateSalida(in); err != nil {
			return nil, fmt.Errorf("movimiento %d: %w", i, err)
		}
		if err := uc.validarProducto(ctx, in.ProductID); err != nil {
			return nil, fmt.Errorf("movimiento %d: %w", i, err)
		}
		if err := uc.validarAlmacen(in.OriginWarehouse); err != nil {
			return nil, fmt.Errorf("movimiento %d: %w", i, err)
		}
		if err := uc.validarDisponibilidad(in); err != nil {
			return nil, fmt.Errorf("movimiento %d: %w", i, err)
		}
	}

	results := make([]dto.MovementWithStockResponse, 0, len(items))
	err := uc.txRunner.Run(ctx, func(movRepo repository.MovementRepository, stockRepo repository.StockRepository) error {
		now := time.Now()
		for i, in := range items {
			res, err := applySalida(movRepo, stockRepo, in, now)
			if err != nil {
				return fmt.Errorf("movimiento %d: %w", i, err)
			}
			results = append(results, *res)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &dto.MovementBatchResponse{Movements: results, Total: len(results)}, nil
}

// validarDisponibilidad chequeo optimista fuera de tx; el chequeo definitivo
// ocurre bajo el lock en applySalida.
func (uc *RegisterMovementUseCase) validarDisponibilidad(in dto.SalidaRequest) error {
	stock, err := uc.stockRepo.Get(in.ProductID, in.OriginWarehouse)
	if err != nil {
		return err
	}
	if stock == nil {
		return fmt.Errorf("no hay stock del producto %s en el almacén %s: %w",
			in.ProductID, in.OriginWarehouse, domain.ErrNotFound)
	}
	if stock.Available().LessThan(in.Quantity) {
		return fmt.Errorf("disponible %s, requerido %s: %w",
			stock.Available(), in.Quantity, domain.ErrInsufficientStock)
	}
	return nil
}
