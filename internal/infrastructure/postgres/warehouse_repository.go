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

var _ repository.WarehouseRepository = (*WarehouseRepo)(nil)

const warehouseColumns = `id, code, name, location, responsible, phone, email, type, max_capacity, active, created_at, updated_at`

// WarehouseRepo implementación de WarehouseRepository sobre PostgreSQL.
type WarehouseRepo struct {
	q Querier
}

// NewWarehouseRepository construye el adaptador. Pasar pool o tx (Querier).
func NewWarehouseRepository(q Querier) *WarehouseRepo {
	return &WarehouseRepo{q: q}
}

// Create persiste un nuevo almacén. Un código duplicado se traduce a domain.ErrDuplicate.
func (r *WarehouseRepo) Create(w *entity.Warehouse) error {
	query := `
		INSERT INTO warehouses (` + warehouseColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(context.Background(), query,
		w.ID, w.Code, w.Name, w.Location, w.Responsible, w.Phone, w.Email,
		w.Type, w.MaxCapacity, w.Active, w.CreatedAt, w.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("almacén con código %q: %w", w.Code, domain.ErrDuplicate)
		}
		return fmt.Errorf("create warehouse: %w", err)
	}
	return nil
}

// GetByID obtiene un almacén por ID. Devuelve nil si no existe.
func (r *WarehouseRepo) GetByID(id string) (*entity.Warehouse, error) {
	query := `SELECT ` + warehouseColumns + ` FROM warehouses WHERE id = $1`
	return r.scanOne(query, id)
}

// GetByCode obtiene un almacén por su código único. Devuelve nil si no existe.
func (r *WarehouseRepo) GetByCode(code string) (*entity.Warehouse, error) {
	query := `SELECT ` + warehouseColumns + ` FROM warehouses WHERE code = $1`
	return r.scanOne(query, code)
}

func (r *WarehouseRepo) scanOne(query string, args ...any) (*entity.Warehouse, error) {
	var w entity.Warehouse
	err := r.q.QueryRow(context.Background(), query, args...).Scan(
		&w.ID, &w.Code, &w.Name, &w.Location, &w.Responsible, &w.Phone, &w.Email,
		&w.Type, &w.MaxCapacity, &w.Active, &w.CreatedAt, &w.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get warehouse: %w", err)
	}
	return &w, nil
}

// Update actualiza un almacén existente.
func (r *WarehouseRepo) Update(w *entity.Warehouse) error {
	query := `
		UPDATE warehouses
		SET name = $2, location = $3, responsible = $4, phone = $5, email = $6,
		    type = $7, max_capacity = $8, active = $9, updated_at = $10
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query,
		w.ID, w.Name, w.Location, w.Responsible, w.Phone, w.Email,
		w.Type, w.MaxCapacity, w.Active, w.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update warehouse: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("almacén %s: %w", w.ID, domain.ErrNotFound)
	}
	return nil
}

// List lista almacenes con filtros y total para paginación.
func (r *WarehouseRepo) List(filter repository.WarehouseFilter) ([]*entity.Warehouse, int, error) {
	where := " WHERE 1=1"
	args := []any{}
	pos := 1
	if filter.Active != nil {
		where += fmt.Sprintf(" AND active = $%d", pos)
		args = append(args, *filter.Active)
		pos++
	}
	if filter.Type != "" {
		where += fmt.Sprintf(" AND type = $%d", pos)
		args = append(args, filter.Type)
		pos++
	}

	var total int
	if err := r.q.QueryRow(context.Background(), "SELECT COUNT(*) FROM warehouses"+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count warehouses: %w", err)
	}

	query := "SELECT " + warehouseColumns + " FROM warehouses" + where +
		fmt.Sprintf(" ORDER BY code LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, filter.Limit, filter.Offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list warehouses: %w", err)
	}
	defer rows.Close()

	var list []*entity.Warehouse
	for rows.Next() {
		var w entity.Warehouse
		if err := rows.Scan(&w.ID, &w.Code, &w.Name, &w.Location, &w.Responsible, &w.Phone, &w.Email,
			&w.Type, &w.MaxCapacity, &w.Active, &w.CreatedAt, &w.UpdatedAt); err != nil {
			return nil, 0, fmt.Errorf("scan warehouse: %w", err)
		}
		list = append(list, &w)
	}
	return list, total, rows.Err()
}

// Delete elimina un almacén por ID.
func (r *WarehouseRepo) Delete(id string) error {
	tag, err := r.q.Exec(context.Background(), `DELETE FROM warehouses WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete warehouse: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("almacén %s: %w", id, domain.ErrNotFound)
	}
	return nil
}
