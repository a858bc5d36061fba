package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/nutrichain/almacen-service/internal/domain"
	"github.com/nutrichain/almacen-service/internal/domain/entity"
	"github.com/nutrichain/almacen-service/internal/domain/repository"
)

var _ repository.StockRepository = (*StockRepo)(nil)

const stockColumns = `product_id, warehouse_id, quantity_on_hand, quantity_reserved, quantity_min, quantity_max, unit_cost, updated_at`

// StockRepo implementación de StockRepository sobre PostgreSQL (usable con pool o tx).
type StockRepo struct {
	q Querier
}

// NewStockRepository construye el adaptador de stock. Pasar pool o tx (Querier).
func NewStockRepository(q Querier) *StockRepo {
	return &StockRepo{q: q}
}

// Get obtiene la posición de stock de un producto en un almacén. Devuelve nil si no existe.
func (r *StockRepo) Get(productID, warehouseID string) (*entity.Stock, error) {
	query := `SELECT ` + stockColumns + ` FROM stock WHERE product_id = $1 AND warehouse_id = $2`
	return r.scanOne(query, productID, warehouseID)
}

// GetForUpdate obtiene la posición y bloquea la fila (SELECT FOR UPDATE). Devuelve nil si no existe.
func (r *StockRepo) GetForUpdate(productID, warehouseID string) (*entity.Stock, error) {
	query := `SELECT ` + stockColumns + ` FROM stock WHERE product_id = $1 AND warehouse_id = $2 FOR UPDATE`
	return r.scanOne(query, productID, warehouseID)
}

func (r *StockRepo) scanOne(query string, args ...any) (*entity.Stock, error) {
	var s entity.Stock
	err := r.q.QueryRow(context.Background(), query, args...).Scan(
		&s.ProductID, &s.WarehouseID, &s.QuantityOnHand, &s.QuantityReserved,
		&s.QuantityMin, &s.QuantityMax, &s.UnitCost, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock: %w", err)
	}
	return &s, nil
}

// Create inserta una nueva posición de stock. Un duplicado (producto+almacén) se
// traduce a domain.ErrStockAlreadyExists.
func (r *StockRepo) Create(stock *entity.Stock) error {
	query := `
		INSERT INTO stock (product_id, warehouse_id, quantity_on_hand, quantity_reserved, quantity_min, quantity_max, unit_cost, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		stock.ProductID, stock.WarehouseID, stock.QuantityOnHand, stock.QuantityReserved,
		stock.QuantityMin, stock.QuantityMax, stock.UnitCost, stock.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("stock de producto %s en almacén %s: %w",
				stock.ProductID, stock.WarehouseID, domain.ErrStockAlreadyExists)
		}
		return fmt.Errorf("create stock: %w", err)
	}
	return nil
}

// CreateIfAbsent inserta la posición solo si la clave (producto, almacén) no
// existe. Ante una inserción concurrente, el perdedor espera en el índice único
// y termina sin insertar nada en lugar de recibir un rechazo por duplicado.
func (r *StockRepo) CreateIfAbsent(stock *entity.Stock) (bool, error) {
	query := `
		INSERT INTO stock (product_id, warehouse_id, quantity_on_hand, quantity_reserved, quantity_min, quantity_max, unit_cost, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (product_id, warehouse_id) DO NOTHING`
	tag, err := r.q.Exec(context.Background(), query,
		stock.ProductID, stock.WarehouseID, stock.QuantityOnHand, stock.QuantityReserved,
		stock.QuantityMin, stock.QuantityMax, stock.UnitCost, stock.UpdatedAt,
	)
	if err != nil {
		return false, fmt.Errorf("create stock if absent: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

// Update actualiza una posición existente (por producto y almacén).
func (r *StockRepo) Update(stock *entity.Stock) error {
	query := `
		UPDATE stock
		SET quantity_on_hand = $3, quantity_reserved = $4, quantity_min = $5,
		    quantity_max = $6, unit_cost = $7, updated_at = $8
		WHERE product_id = $1 AND warehouse_id = $2`
	tag, err := r.q.Exec(context.Background(), query,
		stock.ProductID, stock.WarehouseID, stock.QuantityOnHand, stock.QuantityReserved,
		stock.QuantityMin, stock.QuantityMax, stock.UnitCost, stock.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update stock: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("stock de producto %s en almacén %s: %w",
			stock.ProductID, stock.WarehouseID, domain.ErrNotFound)
	}
	return nil
}

// List lista posiciones de stock con filtros combinables y total para paginación.
func (r *StockRepo) List(filter repository.StockFilter) ([]*entity.Stock, int, error) {
	where := " WHERE 1=1"
	args := []any{}
	pos := 1
	if filter.WarehouseID != "" {
		where += fmt.Sprintf(" AND warehouse_id = $%d", pos)
		args = append(args, filter.WarehouseID)
		pos++
	}
	if filter.ProductID != "" {
		where += fmt.Sprintf(" AND product_id = $%d", pos)
		args = append(args, filter.ProductID)
		pos++
	}
	if filter.WithStock != nil {
		if *filter.WithStock {
			where += " AND quantity_on_hand - quantity_reserved > 0"
		} else {
			where += " AND quantity_on_hand - quantity_reserved <= 0"
		}
	}

	var total int
	if err := r.q.QueryRow(context.Background(), "SELECT COUNT(*) FROM stock"+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count stock: %w", err)
	}

	query := "SELECT " + stockColumns + " FROM stock" + where +
		fmt.Sprintf(" ORDER BY warehouse_id, product_id LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, filter.Limit, filter.Offset)

	list, err := r.scanMany(query, args...)
	if err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

// ListByProduct lista todas las posiciones de un producto entre almacenes.
func (r *StockRepo) ListByProduct(productID string) ([]*entity.Stock, error) {
	query := `SELECT ` + stockColumns + ` FROM stock WHERE product_id = $1 ORDER BY warehouse_id`
	return r.scanMany(query, productID)
}

// ListBelowMinimum lista posiciones en o por debajo de su mínimo configurado.
func (r *StockRepo) ListBelowMinimum(warehouseID string) ([]*entity.Stock, error) {
	query := `SELECT ` + stockColumns + ` FROM stock WHERE quantity_min IS NOT NULL AND quantity_on_hand <= quantity_min`
	args := []any{}
	if warehouseID != "" {
		query += " AND warehouse_id = $1"
		args = append(args, warehouseID)
	}
	query += " ORDER BY warehouse_id, product_id"
	return r.scanMany(query, args...)
}

// Consolidated agrega el stock por producto entre almacenes.
func (r *StockRepo) Consolidated(warehouseID string) ([]repository.ConsolidatedStock, error) {
	query := `
		SELECT product_id,
		       COALESCE(SUM(quantity_on_hand), 0),
		       COALESCE(SUM(quantity_on_hand - quantity_reserved), 0),
		       COUNT(DISTINCT warehouse_id),
		       COALESCE(SUM(quantity_on_hand * COALESCE(unit_cost, 0)), 0)
		FROM stock`
	args := []any{}
	if warehouseID != "" {
		query += " WHERE warehouse_id = $1"
		args = append(args, warehouseID)
	}
	query += " GROUP BY product_id ORDER BY product_id"

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("consolidated stock: %w", err)
	}
	defer rows.Close()

	var out []repository.ConsolidatedStock
	for rows.Next() {
		var c repository.ConsolidatedStock
		if err := rows.Scan(&c.ProductID, &c.TotalOnHand, &c.TotalAvailable, &c.Warehouses, &c.TotalValue); err != nil {
			return nil, fmt.Errorf("scan consolidated: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// CountByWarehouse cuenta las posiciones de stock registradas en un almacén.
func (r *StockRepo) CountByWarehouse(warehouseID string) (int, error) {
	var count int
	err := r.q.QueryRow(context.Background(),
		`SELECT COUNT(*) FROM stock WHERE warehouse_id = $1`, warehouseID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count by warehouse: %w", err)
	}
	return count, nil
}

func (r *StockRepo) scanMany(query string, args ...any) ([]*entity.Stock, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list stock: %w", err)
	}
	defer rows.Close()

	var list []*entity.Stock
	for rows.Next() {
		var s entity.Stock
		if err := rows.Scan(&s.ProductID, &s.WarehouseID, &s.QuantityOnHand, &s.QuantityReserved,
			&s.QuantityMin, &s.QuantityMax, &s.UnitCost, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan stock: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}
