// Package stocks expone la superficie de SOLO LECTURA del inventario.
// No existen métodos de escritura en este paquete: toda modificación de stock
// pasa por el orquestador de movimientos, que es quien audita cada cambio.
package stocks

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/nutrichain/almacen-service/internal/application/catalogo"
	"github.com/nutrichain/almacen-service/internal/application/dto"
	"github.com/nutrichain/almacen-service/internal/domain"
	"github.com/nutrichain/almacen-service/internal/domain/entity"
	"github.com/nutrichain/almacen-service/internal/domain/repository"
)

// StockQueryUseCase consultas y reportes de stock.
type StockQueryUseCase struct {
	stockRepo repository.StockRepository
	catalog   catalogo.ProductCatalog
}

// NewStockQueryUseCase construye el caso de uso.
func NewStockQueryUseCase(stockRepo repository.StockRepository, catalog catalogo.ProductCatalog) *StockQueryUseCase {
	return &StockQueryUseCase{stockRepo: stockRepo, catalog: catalog}
}

// Get obtiene la posición de stock de un producto en un almacén.
func (uc *StockQueryUseCase) Get(productID, warehouseID string) (*dto.StockResponse, error) {
	stock, err := uc.stockRepo.Get(productID, warehouseID)
	if err != nil {
		return nil, err
	}
	if stock == nil {
		return nil, fmt.Errorf("stock de producto %s en almacén %s: %w",
			productID, warehouseID, domain.ErrNotFound)
	}
	return toStockResponse(stock), nil
}

// List lista posiciones de stock con filtros y paginación.
func (uc *StockQueryUseCase) List(q dto.StockListQuery) (*dto.StockListResponse, error) {
	q.DefaultPage()
	list, total, err := uc.stockRepo.List(repository.StockFilter{
		WarehouseID: q.WarehouseID,
		ProductID:   q.ProductID,
		WithStock:   q.WithStock,
		Limit:       q.Limit,
		Offset:      q.Offset,
	})
	if err != nil {
		return nil, err
	}
	items := make([]dto.StockResponse, 0, len(list))
	for _, s := range list {
		items = append(items, *toStockResponse(s))
	}
	return &dto.StockListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: q.Limit, Offset: q.Offset, Total: total},
	}, nil
}

// Availability consulta cuánto stock disponible hay de un producto, por almacén
// o global, y si cubre la cantidad requerida. Valida la existencia del producto
// contra el catálogo antes de responder.
func (uc *StockQueryUseCase) Availability(ctx context.Context, in dto.AvailabilityRequest) (*dto.AvailabilityResponse, error) {
	if in.ProductID == "" {
		return nil, domain.ErrInvalidInput
	}
	if !in.RequiredQuantity.GreaterThan(decimal.Zero) {
		return nil, fmt.Errorf("cantidad_requerida debe ser mayor a cero: %w", domain.ErrInvalidInput)
	}

	res, err := uc.catalog.Verify(ctx, in.ProductID)
	if err != nil {
		return nil, err
	}
	if res == catalogo.ExistenceNotFound {
		return nil, fmt.Errorf("producto %s no existe en el catálogo: %w", in.ProductID, domain.ErrNotFound)
	}
	if res != catalogo.ExistenceConfirmed {
		return nil, domain.ErrCatalogUnavailable
	}

	var positions []*entity.Stock
	if in.WarehouseID != "" {
		stock, err := uc.stockRepo.Get(in.ProductID, in.WarehouseID)
		if err != nil {
			return nil, err
		}
		if stock != nil {
			positions = append(positions, stock)
		}
	} else {
		positions, err = uc.stockRepo.ListByProduct(in.ProductID)
		if err != nil {
			return nil, err
		}
	}

	out := &dto.AvailabilityResponse{
		ProductID:        in.ProductID,
		RequiredQuantity: in.RequiredQuantity,
		TotalAvailable:   decimal.Zero,
	}
	for _, s := range positions {
		available := s.Available()
		out.TotalAvailable = out.TotalAvailable.Add(available)
		out.Warehouses = append(out.Warehouses, dto.WarehouseAvailability{
			WarehouseID:       s.WarehouseID,
			QuantityAvailable: available,
			CanCover:          available.GreaterThanOrEqual(in.RequiredQuantity),
		})
	}
	if len(positions) == 0 && in.WarehouseID != "" {
		out.Suggestions = append(out.Suggestions,
			fmt.Sprintf("No hay stock del producto %s en el almacén %s", in.ProductID, in.WarehouseID))
	}

	out.Available = out.TotalAvailable.GreaterThanOrEqual(in.RequiredQuantity)
	if !out.Available {
		faltante := in.RequiredQuantity.Sub(out.TotalAvailable)
		out.Suggestions = append(out.Suggestions,
			fmt.Sprintf("Faltan %s unidades para cubrir la demanda", faltante))
	}
	return out, nil
}

// Consolidated devuelve el resumen por producto agregado entre almacenes.
func (uc *StockQueryUseCase) Consolidated(warehouseID string) ([]dto.ConsolidatedStockResponse, error) {
	rows, err := uc.stockRepo.Consolidated(warehouseID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ConsolidatedStockResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.ConsolidatedStockResponse{
			ProductID:      r.ProductID,
			TotalOnHand:    r.TotalOnHand,
			TotalAvailable: r.TotalAvailable,
			Warehouses:     r.Warehouses,
			TotalValue:     r.TotalValue,
		})
	}
	return out, nil
}

// LowStock lista las posiciones en o por debajo de su mínimo con la cantidad
// sugerida de pedido (stock ideal = mínimo * 1.5).
func (uc *StockQueryUseCase) LowStock(warehouseID string) ([]dto.LowStockItem, error) {
	list, err := uc.stockRepo.ListBelowMinimum(warehouseID)
	if err != nil {
		return nil, err
	}

	ideal := decimal.NewFromFloat(1.5)
	out := make([]dto.LowStockItem, 0, len(list))
	for _, s := range list {
		if s.QuantityMin == nil {
			continue
		}
		suggested := s.QuantityMin.Mul(ideal).Sub(s.QuantityOnHand)
		if suggested.IsNegative() {
			suggested = decimal.Zero
		}
		out = append(out, dto.LowStockItem{
			ProductID:         s.ProductID,
			WarehouseID:       s.WarehouseID,
			QuantityOnHand:    s.QuantityOnHand,
			QuantityMin:       *s.QuantityMin,
			SuggestedOrderQty: suggested,
			Depleted:          s.Depleted(),
		})
	}
	return out, nil
}

func toStockResponse(s *entity.Stock) *dto.StockResponse {
	return &dto.StockResponse{
		ProductID:         s.ProductID,
		WarehouseID:       s.WarehouseID,
		QuantityOnHand:    s.QuantityOnHand,
		QuantityReserved:  s.QuantityReserved,
		QuantityAvailable: s.Available(),
		QuantityMin:       s.QuantityMin,
		QuantityMax:       s.QuantityMax,
		UnitCost:          s.UnitCost,
		LowStock:          s.Low(),
		UpdatedAt:         s.UpdatedAt,
	}
}
