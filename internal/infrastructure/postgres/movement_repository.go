package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/nutrichain/almacen-service/internal/domain"
	"github.com/nutrichain/almacen-service/internal/domain/entity"
	"github.com/nutrichain/almacen-service/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

const movementColumns = `id, product_id, origin_warehouse_id, destination_warehouse_id, type, quantity, unit_cost, total_cost, reason, external_ref, actor, status, created_at`

// MovementRepo implementación del ledger de movimientos sobre PostgreSQL
// (usable con pool o tx). La tabla es append-only: este adaptador no expone
// UPDATE ni DELETE.
type MovementRepo struct {
	q Querier
}

// NewMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

// Create persiste un movimiento. Una referencia externa duplicada se traduce a
// domain.ErrDuplicate (constraint único sobre external_ref).
func (r *MovementRepo) Create(movement *entity.Movement) error {
	if movement.ID == "" {
		movement.ID = uuid.New().String()
	}
	query := `
		INSERT INTO movements (` + movementColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	externalRef := (*string)(nil)
	if movement.ExternalRef != "" {
		externalRef = &movement.ExternalRef
	}
	_, err := r.q.Exec(context.Background(), query,
		movement.ID, movement.ProductID, movement.OriginWarehouseID, movement.DestinationWarehouseID,
		movement.Type, movement.Quantity, movement.UnitCost, movement.TotalCost,
		movement.Reason, externalRef, movement.Actor, movement.Status, movement.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("referencia externa %q ya registrada: %w",
				movement.ExternalRef, domain.ErrDuplicate)
		}
		return fmt.Errorf("create movement: %w", err)
	}
	return nil
}

// GetByID obtiene un movimiento por ID. Devuelve nil si no existe.
func (r *MovementRepo) GetByID(id string) (*entity.Movement, error) {
	query := `SELECT ` + movementColumns + ` FROM movements WHERE id = $1`
	var m entity.Movement
	var externalRef *string
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&m.ID, &m.ProductID, &m.OriginWarehouseID, &m.DestinationWarehouseID,
		&m.Type, &m.Quantity, &m.UnitCost, &m.TotalCost,
		&m.Reason, &externalRef, &m.Actor, &m.Status, &m.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get movement: %w", err)
	}
	if externalRef != nil {
		m.ExternalRef = *externalRef
	}
	return &m, nil
}

// List lista movimientos con filtros combinables, más recientes primero.
// WarehouseID busca en origen O destino.
func (r *MovementRepo) List(filter repository.MovementFilter) ([]*entity.Movement, int, error) {
	where := " WHERE 1=1"
	args := []any{}
	pos := 1
	if filter.ProductID != "" {
		where += fmt.Sprintf(" AND product_id = $%d", pos)
		args = append(args, filter.ProductID)
		pos++
	}
	if filter.WarehouseID != "" {
		where += fmt.Sprintf(" AND (origin_warehouse_id = $%d OR destination_warehouse_id = $%d)", pos, pos)
		args = append(args, filter.WarehouseID)
		pos++
	}
	if filter.Type != "" {
		where += fmt.Sprintf(" AND type = $%d", pos)
		args = append(args, filter.Type)
		pos++
	}
	if filter.From != nil {
		where += fmt.Sprintf(" AND created_at >= $%d", pos)
		args = append(args, *filter.From)
		pos++
	}
	if filter.To != nil {
		where += fmt.Sprintf(" AND created_at <= $%d", pos)
		args = append(args, *filter.To)
		pos++
	}

	var total int
	if err := r.q.QueryRow(context.Background(), "SELECT COUNT(*) FROM movements"+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count movements: %w", err)
	}

	query := "SELECT " + movementColumns + " FROM movements" + where +
		fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, filter.Limit, filter.Offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list movements: %w", err)
	}
	defer rows.Close()

	var list []*entity.Movement
	for rows.Next() {
		var m entity.Movement
		var externalRef *string
		if err := rows.Scan(&m.ID, &m.ProductID, &m.OriginWarehouseID, &m.DestinationWarehouseID,
			&m.Type, &m.Quantity, &m.UnitCost, &m.TotalCost,
			&m.Reason, &externalRef, &m.Actor, &m.Status, &m.CreatedAt); err != nil {
			return nil, 0, fmt.Errorf("scan movement: %w", err)
		}
		if externalRef != nil {
			m.ExternalRef = *externalRef
		}
		list = append(list, &m)
	}
	return list, total, rows.Err()
}

// Stats agrega los movimientos de un rango de fechas para reportes.
func (r *MovementRepo) Stats(from, to time.Time, warehouseID, movementType string) (*repository.MovementStats, error) {
	where := " WHERE created_at >= $1 AND created_at <= $2"
	args := []any{from, to}
	pos := 3
	if warehouseID != "" {
		where += fmt.Sprintf(" AND (origin_warehouse_id = $%d OR destination_warehouse_id = $%d)", pos, pos)
		args = append(args, warehouseID)
		pos++
	}
	if movementType != "" {
		where += fmt.Sprintf(" AND type = $%d", pos)
		args = append(args, movementType)
		pos++
	}

	stats := &repository.MovementStats{From: from, To: to, ByType: map[string]int{}, ByStatus: map[string]int{}}

	rows, err := r.q.Query(context.Background(),
		"SELECT type, COUNT(*) FROM movements"+where+" GROUP BY type", args...)
	if err != nil {
		return nil, fmt.Errorf("stats by type: %w", err)
	}
	for rows.Next() {
		var t string
		var n int
		if err := rows.Scan(&t, &n); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan stats: %w", err)
		}
		stats.ByType[t] = n
		stats.TotalMovements += n
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	rows, err = r.q.Query(context.Background(),
		"SELECT status, COUNT(*) FROM movements"+where+" GROUP BY status", args...)
	if err != nil {
		return nil, fmt.Errorf("stats by status: %w", err)
	}
	for rows.Next() {
		var s string
		var n int
		if err := rows.Scan(&s, &n); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan stats: %w", err)
		}
		stats.ByStatus[s] = n
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	err = r.q.QueryRow(context.Background(),
		"SELECT COALESCE(SUM(total_cost), 0) FROM movements"+where, args...).Scan(&stats.TotalValue)
	if err != nil {
		return nil, fmt.Errorf("stats total value: %w", err)
	}

	rows, err = r.q.Query(context.Background(),
		"SELECT product_id, COALESCE(SUM(quantity), 0), COUNT(*) FROM movements"+where+
			" GROUP BY product_id ORDER BY SUM(quantity) DESC LIMIT 10", args...)
	if err != nil {
		return nil, fmt.Errorf("stats top products: %w", err)
	}
	for rows.Next() {
		var p repository.ProductActivity
		if err := rows.Scan(&p.ProductID, &p.Quantity, &p.Movements); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan top product: %w", err)
		}
		stats.TopProducts = append(stats.TopProducts, p)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// Un movimiento cuenta para su almacén de origen y el de destino por separado.
	rows, err = r.q.Query(context.Background(), `
		SELECT warehouse_id, COUNT(*) FROM (
			SELECT origin_warehouse_id AS warehouse_id FROM movements`+where+`
			UNION ALL
			SELECT destination_warehouse_id FROM movements`+where+`
		) w WHERE warehouse_id IS NOT NULL
		GROUP BY warehouse_id ORDER BY COUNT(*) DESC LIMIT 10`, args...)
	if err != nil {
		return nil, fmt.Errorf("stats top warehouses: %w", err)
	}
	for rows.Next() {
		var w repository.WarehouseActivity
		if err := rows.Scan(&w.WarehouseID, &w.Movements); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan top warehouse: %w", err)
		}
		stats.TopWarehouses = append(stats.TopWarehouses, w)
	}
	rows.Close()
	return stats, rows.Err()
}
