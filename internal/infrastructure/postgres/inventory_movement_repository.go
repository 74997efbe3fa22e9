package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/casavidal/ferreteria-api/internal/domain/entity"
	"github.com/casavidal/ferreteria-api/internal/domain/repository"
)

var _ repository.InventoryMovementRepository = (*InventoryMovementRepo)(nil)

// InventoryMovementRepo implementación del libro de movimientos sobre PostgreSQL.
// Append-only: la tabla no recibe UPDATE ni DELETE desde la aplicación.
type InventoryMovementRepo struct {
	q Querier
}

// NewInventoryMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInventoryMovementRepository(q Querier) *InventoryMovementRepo {
	return &InventoryMovementRepo{q: q}
}

// Create inserta un movimiento.
func (r *InventoryMovementRepo) Create(m *entity.InventoryMovement) error {
	query := `
		INSERT INTO inventory_movements (id, product_id, type, quantity, stock_before, stock_after,
			reference, notes, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NULLIF($9, ''), $10)`
	_, err := r.q.Exec(context.Background(), query,
		m.ID, m.ProductID, m.Type, m.Quantity, m.StockBefore, m.StockAfter,
		m.Reference, m.Notes, m.CreatedBy, m.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert movement: %w", err)
	}
	return nil
}

// ListByProduct devuelve los movimientos de un producto en orden de creación
// ascendente. Con limit > 0 devuelve los últimos N preservando el orden.
func (r *InventoryMovementRepo) ListByProduct(productID string, limit int) ([]*entity.InventoryMovement, error) {
	query := `
		SELECT id, product_id, type, quantity, stock_before, stock_after,
		       reference, notes, COALESCE(created_by, ''), created_at
		FROM inventory_movements WHERE product_id = $1 ORDER BY created_at ASC, id ASC`
	args := []any{productID}
	if limit > 0 {
		// Subconsulta descendente re-ordenada: los últimos N en orden ascendente.
		query = `
			SELECT * FROM (
				SELECT id, product_id, type, quantity, stock_before, stock_after,
				       reference, notes, COALESCE(created_by, ''), created_at
				FROM inventory_movements WHERE product_id = $1
				ORDER BY created_at DESC, id DESC LIMIT $2
			) last_n ORDER BY created_at ASC, id ASC`
		args = append(args, limit)
	}
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list movements: %w", err)
	}
	defer rows.Close()
	return collectMovements(rows)
}

// CountByProduct cuenta los movimientos de un producto.
func (r *InventoryMovementRepo) CountByProduct(productID string) (int, error) {
	var count int
	err := r.q.QueryRow(context.Background(),
		`SELECT count(*) FROM inventory_movements WHERE product_id = $1`, productID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count movements: %w", err)
	}
	return count, nil
}

func collectMovements(rows pgx.Rows) ([]*entity.InventoryMovement, error) {
	var list []*entity.InventoryMovement
	for rows.Next() {
		var m entity.InventoryMovement
		if err := rows.Scan(
			&m.ID, &m.ProductID, &m.Type, &m.Quantity, &m.StockBefore, &m.StockAfter,
			&m.Reference, &m.Notes, &m.CreatedBy, &m.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}
