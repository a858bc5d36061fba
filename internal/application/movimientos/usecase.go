package movimientos

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/nutrichain/almacen-service/internal/application/catalogo"
	"github.com/nutrichain/almacen-service/internal/application/dto"
	"github.com/nutrichain/almacen-service/internal/domain"
	"github.com/nutrichain/almacen-service/internal/domain/entity"
	"github.com/nutrichain/almacen-service/internal/domain/inventory"
	"github.com/nutrichain/almacen-service/internal/domain/repository"
)

// RegisterMovementUseCase es la única autoridad para modificar stock.
// Cada operación valida el producto contra el catálogo (fail-closed, ANTES de
// abrir la transacción), valida el almacén, y dentro de una transacción bloquea
// la fila de stock (SELECT FOR UPDATE), inserta el movimiento de auditoría y
// actualiza el saldo. Commit o Rollback completos; nunca estados intermedios.
type RegisterMovementUseCase struct {
	txRunner      TxRunner
	warehouseRepo repository.WarehouseRepository
	stockRepo     repository.StockRepository // solo lecturas fuera de tx (prevalidación de lotes)
	catalog       catalogo.ProductCatalog
}

// NewRegisterMovementUseCase construye el caso de uso.
func NewRegisterMovementUseCase(
	txRunner TxRunner,
	warehouseRepo repository.WarehouseRepository,
	stockRepo repository.StockRepository,
	catalog catalogo.ProductCatalog,
) *RegisterMovementUseCase {
	return &RegisterMovementUseCase{
		txRunner:      txRunner,
		warehouseRepo: warehouseRepo,
		stockRepo:     stockRepo,
		catalog:       catalog,
	}
}

// validarProducto consulta el catálogo con política fail-closed: solo una
// confirmación explícita autoriza la mutación. Un resultado indeterminado
// (timeout, error de red, status inesperado) aborta la operación sin escribir.
func (uc *RegisterMovementUseCase) validarProducto(ctx context.Context, productID string) error {
	res, err := uc.catalog.Verify(ctx, productID)
	if err != nil {
		return err
	}
	switch res {
	case catalogo.ExistenceConfirmed:
		return nil
	case catalogo.ExistenceNotFound:
		return fmt.Errorf("producto %s no existe en el catálogo: %w", productID, domain.ErrNotFound)
	default:
		return domain.ErrCatalogUnavailable
	}
}

// validarAlmacen exige que el almacén exista y esté activo. Se verifica en cada
// llamada mutadora: un almacén puede desactivarse entre operaciones.
func (uc *RegisterMovementUseCase) validarAlmacen(warehouseID string) error {
	wh, err := uc.warehouseRepo.GetByID(warehouseID)
	if err != nil {
		return err
	}
	if wh == nil {
		return fmt.Errorf("almacén %s: %w", warehouseID, domain.ErrNotFound)
	}
	if !wh.Active {
		return fmt.Errorf("almacén %s: %w", warehouseID, domain.ErrWarehouseInactive)
	}
	return nil
}

// RecordEntrada registra una entrada de inventario. Crea la fila de stock en
// cero si no existe y actualiza el costo promedio ponderado cuando la entrada
// trae costo unitario.
func (uc *RegisterMovementUseCase) RecordEntrada(ctx context.Context, in dto.EntradaRequest) (*dto.MovementWithStockResponse, error) {
	if err := validateEntrada(in); err != nil {
		return nil, err
	}
	// Validaciones externas ANTES de abrir la transacción: nunca se sostiene
	// un lock de fila durante una llamada de red al catálogo.
	if err := uc.validarProducto(ctx, in.ProductID); err != nil {
		return nil, err
	}
	if err := uc.validarAlmacen(in.DestinationWarehouse); err != nil {
		return nil, err
	}

	var result *dto.MovementWithStockResponse
	err := uc.txRunner.Run(ctx, func(movRepo repository.MovementRepository, stockRepo repository.StockRepository) error {
		var err error
		result, err = applyEntrada(movRepo, stockRepo, in, time.Now())
		return err
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// RecordSalida registra una salida de inventario. La disponibilidad
// (actual - reservada) se revalida bajo el lock de fila.
func (uc *RegisterMovementUseCase) RecordSalida(ctx context.Context, in dto.SalidaRequest) (*dto.MovementWithStockResponse, error) {
	if err := validateSalida(in); err != nil {
		return nil, err
	}
	if err := uc.validarProducto(ctx, in.ProductID); err != nil {
		return nil, err
	}
	if err := uc.validarAlmacen(in.OriginWarehouse); err != nil {
		return nil, err
	}

	var result *dto.MovementWithStockResponse
	err := uc.txRunner.Run(ctx, func(movRepo repository.MovementRepository, stockRepo repository.StockRepository) error {
		var err error
		result, err = applySalida(movRepo, stockRepo, in, time.Now())
		return err
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// RecordTransferencia mueve stock entre dos almacenes distintos con un único
// movimiento de auditoría. Resta en origen y suma en destino dentro de la misma
// transacción; si el destino no tiene stock, se crea heredando mínimo, máximo y
// costo unitario del origen. Ningún estado parcial es observable.
func (uc *RegisterMovementUseCase) RecordTransferencia(ctx context.Context, in dto.TransferenciaRequest) (*dto.TransferenciaResponse, error) {
	if in.ProductID == "" || in.OriginWarehouse == "" || in.DestinationWarehouse == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.OriginWarehouse == in.DestinationWarehouse {
		return nil, fmt.Errorf("almacén origen y destino deben ser diferentes: %w", domain.ErrInvalidInput)
	}
	if !in.Quantity.GreaterThan(decimal.Zero) {
		return nil, fmt.Errorf("la cantidad debe ser mayor a cero: %w", domain.ErrInvalidInput)
	}
	if err := uc.validarProducto(ctx, in.ProductID); err != nil {
		return nil, err
	}

	var result *dto.TransferenciaResponse
	err := uc.txRunner.Run(ctx, func(movRepo repository.MovementRepository, stockRepo repository.StockRepository) error {
		now := time.Now()

		var origin, dest *entity.Stock
		var destCreated bool

		lockOrigin := func() error {
			var err error
			origin, err = stockRepo.GetForUpdate(in.ProductID, in.OriginWarehouse)
			return err
		}
		lockDest := func() error {
			var err error
			dest, destCreated, err = lockOrCreateStock(stockRepo, &entity.Stock{
				ProductID:        in.ProductID,
				WarehouseID:      in.DestinationWarehouse,
				QuantityOnHand:   decimal.Zero,
				QuantityReserved: decimal.Zero,
				UpdatedAt:        now,
			})
			return err
		}

		// Los dos locks de fila se toman en orden de clave: transferencias
		// opuestas concurrentes (A→B y B→A) no pueden interbloquearse.
		if in.DestinationWarehouse < in.OriginWarehouse {
			if err := lockDest(); err != nil {
				return err
			}
			if err := lockOrigin(); err != nil {
				return err
			}
		} else {
			if err := lockOrigin(); err != nil {
				return err
			}
			if err := lockDest(); err != nil {
				return err
			}
		}

		if origin == nil {
			return fmt.Errorf("no hay stock del producto %s en el almacén %s: %w",
				in.ProductID, in.OriginWarehouse, domain.ErrNotFound)
		}
		if origin.Available().LessThan(in.Quantity) {
			return fmt.Errorf("disponible %s, solicitado %s: %w",
				origin.Available(), in.Quantity, domain.ErrInsufficientStock)
		}
		// Un destino recién creado hereda mínimo, máximo y costo del origen
		if destCreated {
			dest.QuantityMin = origin.QuantityMin
			dest.QuantityMax = origin.QuantityMax
			dest.UnitCost = origin.UnitCost
		}

		// Movimiento primero (auditoría), luego los dos saldos
		originID := in.OriginWarehouse
		destID := in.DestinationWarehouse
		mov := &entity.Movement{
			ProductID:              in.ProductID,
			OriginWarehouseID:      &originID,
			DestinationWarehouseID: &destID,
			Type:                   entity.MovementTypeTransferencia,
			Quantity:               in.Quantity,
			UnitCost:               origin.UnitCost,
			TotalCost:              mulCost(in.Quantity, origin.UnitCost),
			Reason:                 in.Reason,
			ExternalRef:            in.ExternalRef,
			Actor:                  in.Actor,
			Status:                 entity.MovementStatusProcesado,
			CreatedAt:              now,
		}
		if err := movRepo.Create(mov); err != nil {
			return err
		}

		origin.QuantityOnHand = origin.QuantityOnHand.Sub(in.Quantity)
		origin.UpdatedAt = now
		if err := stockRepo.Update(origin); err != nil {
			return err
		}

		dest.QuantityOnHand = dest.QuantityOnHand.Add(in.Quantity)
		dest.UpdatedAt = now
		if err := stockRepo.Update(dest); err != nil {
			return err
		}

		result = &dto.TransferenciaResponse{
			Movement:         toMovementResponse(mov),
			OriginStock:      toStockResponse(origin),
			DestinationStock: toStockResponse(dest),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// RecordAjusteInicial crea stock inicial de forma auditada. Es la ÚNICA forma
// sancionada de sembrar un saldo: si ya existe stock para la clave se rechaza
// (usar entrada para aumentar cantidad existente).
func (uc *RegisterMovementUseCase) RecordAjusteInicial(ctx context.Context, in dto.AjusteInicialRequest) (*dto.MovementWithStockResponse, error) {
	if in.ProductID == "" || in.WarehouseID == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.InitialQuantity.IsNegative() {
		return nil, fmt.Errorf("la cantidad inicial no puede ser negativa: %w", domain.ErrInvalidInput)
	}
	if in.QuantityMin != nil && in.QuantityMax != nil && !in.QuantityMax.GreaterThan(*in.QuantityMin) {
		return nil, fmt.Errorf("cantidad máxima debe ser mayor a la mínima: %w", domain.ErrInvalidInput)
	}
	if err := uc.validarProducto(ctx, in.ProductID); err != nil {
		return nil, err
	}
	if err := uc.validarAlmacen(in.WarehouseID); err != nil {
		return nil, err
	}

	var result *dto.MovementWithStockResponse
	err := uc.txRunner.Run(ctx, func(movRepo repository.MovementRepository, stockRepo repository.StockRepository) error {
		now := time.Now()

		existing, err := stockRepo.GetForUpdate(in.ProductID, in.WarehouseID)
		if err != nil {
			return err
		}
		if existing != nil {
			return fmt.Errorf("producto %s en almacén %s: %w",
				in.ProductID, in.WarehouseID, domain.ErrStockAlreadyExists)
		}

		stock := &entity.Stock{
			ProductID:        in.ProductID,
			WarehouseID:      in.WarehouseID,
			QuantityOnHand:   in.InitialQuantity,
			QuantityReserved: decimal.Zero,
			QuantityMin:      in.QuantityMin,
			QuantityMax:      in.QuantityMax,
			UnitCost:         in.UnitCost,
			UpdatedAt:        now,
		}
		// Si dos ajustes iniciales concurrentes pasan el chequeo, el índice
		// único (producto, almacén) rechaza al segundo.
		if err := stockRepo.Create(stock); err != nil {
			return err
		}

		reason := in.Reason
		if reason == "" {
			reason = "Creación de stock inicial"
		}
		whID := in.WarehouseID
		mov := &entity.Movement{
			ProductID:              in.ProductID,
			DestinationWarehouseID: &whID,
			Type:                   entity.MovementTypeAjuste,
			Quantity:               in.InitialQuantity,
			UnitCost:               in.UnitCost,
			TotalCost:              mulCost(in.InitialQuantity, in.UnitCost),
			Reason:                 reason,
			Actor:                  in.Actor,
			Status:                 entity.MovementStatusProcesado,
			CreatedAt:              now,
		}
		if err := movRepo.Create(mov); err != nil {
			return err
		}

		result = &dto.MovementWithStockResponse{
			Movement: toMovementResponse(mov),
			Stock:    toStockResponse(stock),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// ── Apliques dentro de transacción (compartidos por operación única y lote) ──

// lockOrCreateStock devuelve la fila de stock de la clave de seed bloqueada
// para update, creándola con los valores de seed si no existe. Dos
// transacciones concurrentes sobre la misma clave ausente se serializan en el
// índice único: el perdedor del INSERT no inserta nada, relee y bloquea la
// fila del ganador, nunca recibe un rechazo por duplicado.
func lockOrCreateStock(stockRepo repository.StockRepository, seed *entity.Stock) (*entity.Stock, bool, error) {
	stock, err := stockRepo.GetForUpdate(seed.ProductID, seed.WarehouseID)
	if err != nil || stock != nil {
		return stock, false, err
	}
	created, err := stockRepo.CreateIfAbsent(seed)
	if err != nil {
		return nil, false, err
	}
	stock, err = stockRepo.GetForUpdate(seed.ProductID, seed.WarehouseID)
	if err != nil {
		return nil, false, err
	}
	if stock == nil {
		return nil, false, fmt.Errorf("stock de producto %s en almacén %s no visible tras insertar",
			seed.ProductID, seed.WarehouseID)
	}
	return stock, created, nil
}

// applyEntrada ejecuta una entrada usando repos atados a la tx del caller:
// bloquea (o crea en cero) la fila de stock, inserta el movimiento y suma el saldo.
func applyEntrada(
	movRepo repository.MovementRepository,
	stockRepo repository.StockRepository,
	in dto.EntradaRequest,
	now time.Time,
) (*dto.MovementWithStockResponse, error) {
	stock, _, err := lockOrCreateStock(stockRepo, &entity.Stock{
		ProductID:        in.ProductID,
		WarehouseID:      in.DestinationWarehouse,
		QuantityOnHand:   decimal.Zero,
		QuantityReserved: decimal.Zero,
		UpdatedAt:        now,
	})
	if err != nil {
		return nil, err
	}

	whID := in.DestinationWarehouse
	mov := &entity.Movement{
		ProductID:              in.ProductID,
		DestinationWarehouseID: &whID,
		Type:                   entity.MovementTypeEntrada,
		Quantity:               in.Quantity,
		UnitCost:               in.UnitCost,
		TotalCost:              mulCost(in.Quantity, in.UnitCost),
		Reason:                 in.Reason,
		ExternalRef:            in.ExternalRef,
		Actor:                  in.Actor,
		Status:                 entity.MovementStatusProcesado,
		CreatedAt:              now,
	}
	if err := movRepo.Create(mov); err != nil {
		return nil, err
	}

	// Costo promedio ponderado cuando la entrada trae costo
	if in.UnitCost != nil {
		current := decimal.Zero
		if stock.UnitCost != nil {
			current = *stock.UnitCost
		}
		newCost := inventory.CostCalculator(stock.QuantityOnHand, current, in.Quantity, *in.UnitCost)
		stock.UnitCost = &newCost
	}
	stock.QuantityOnHand = stock.QuantityOnHand.Add(in.Quantity)
	stock.UpdatedAt = now
	if err := stockRepo.Update(stock); err != nil {
		return nil, err
	}

	return &dto.MovementWithStockResponse{
		Movement: toMovementResponse(mov),
		Stock:    toStockResponse(stock),
	}, nil
}

// applySalida ejecuta una salida usando repos atados a la tx del caller.
// La disponibilidad se verifica bajo el lock: dos salidas concurrentes sobre la
// misma clave no pueden sobregirar el saldo.
func applySalida(
	movRepo repository.MovementRepository,
	stockRepo repository.StockRepository,
	in dto.SalidaRequest,
	now time.Time,
) (*dto.MovementWithStockResponse, error) {
	stock, err := stockRepo.GetForUpdate(in.ProductID, in.OriginWarehouse)
	if err != nil {
		return nil, err
	}
	if stock == nil {
		return nil, fmt.Errorf("no hay stock del producto %s en el almacén %s: %w",
			in.ProductID, in.OriginWarehouse, domain.ErrNotFound)
	}
	if stock.Available().LessThan(in.Quantity) {
		return nil, fmt.Errorf("disponible %s, requerido %s: %w",
			stock.Available(), in.Quantity, domain.ErrInsufficientStock)
	}

	whID := in.OriginWarehouse
	mov := &entity.Movement{
		ProductID:         in.ProductID,
		OriginWarehouseID: &whID,
		Type:              entity.MovementTypeSalida,
		Quantity:          in.Quantity,
		UnitCost:          stock.UnitCost,
		TotalCost:         mulCost(in.Quantity, stock.UnitCost),
		Reason:            in.Reason,
		ExternalRef:       in.ExternalRef,
		Actor:             in.Actor,
		Status:            entity.MovementStatusProcesado,
		CreatedAt:         now,
	}
	if err := movRepo.Create(mov); err != nil {
		return nil, err
	}

	stock.QuantityOnHand = stock.QuantityOnHand.Sub(in.Quantity)
	stock.UpdatedAt = now
	if err := stockRepo.Update(stock); err != nil {
		return nil, err
	}

	return &dto.MovementWithStockResponse{
		Movement: toMovementResponse(mov),
		Stock:    toStockResponse(stock),
	}, nil
}

// ── Validaciones de campos ───────────────────────────────────────────────────

func validateEntrada(in dto.EntradaRequest) error {
	if in.ProductID == "" || in.DestinationWarehouse == "" {
		return domain.ErrInvalidInput
	}
	if !in.Quantity.GreaterThan(decimal.Zero) {
		return fmt.Errorf("la cantidad debe ser mayor a cero: %w", domain.ErrInvalidInput)
	}
	if in.UnitCost != nil && in.UnitCost.IsNegative() {
		return fmt.Errorf("el costo unitario no puede ser negativo: %w", domain.ErrInvalidInput)
	}
	return nil
}

func validateSalida(in dto.SalidaRequest) error {
	if in.ProductID == "" || in.OriginWarehouse == "" {
		return domain.ErrInvalidInput
	}
	if !in.Quantity.GreaterThan(decimal.Zero) {
		return fmt.Errorf("la cantidad debe ser mayor a cero: %w", domain.ErrInvalidInput)
	}
	return nil
}

// ── Mapeos ───────────────────────────────────────────────────────────────────

func mulCost(qty decimal.Decimal, unitCost *decimal.Decimal) *decimal.Decimal {
	if unitCost == nil {
		return nil
	}
	total := qty.Mul(*unitCost)
	return &total
}

func toMovementResponse(m *entity.Movement) dto.MovementResponse {
	return dto.MovementResponse{
		ID:                     m.ID,
		ProductID:              m.ProductID,
		OriginWarehouseID:      m.OriginWarehouseID,
		DestinationWarehouseID: m.DestinationWarehouseID,
		Type:                   m.Type,
		Quantity:               m.Quantity,
		UnitCost:               m.UnitCost,
		TotalCost:              m.TotalCost,
		Reason:                 m.Reason,
		ExternalRef:            m.ExternalRef,
		Actor:                  m.Actor,
		Status:                 m.Status,
		CreatedAt:              m.CreatedAt,
	}
}

func toStockResponse(s *entity.Stock) *dto.StockResponse {
	if s == nil {
		return nil
	}
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
