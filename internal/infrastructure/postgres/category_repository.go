package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/casavidal/ferreteria-api/internal/domain/entity"
	"github.com/casavidal/ferreteria-api/internal/domain/repository"
)

var _ repository.CategoryRepository = (*CategoryRepo)(nil)

// CategoryRepo implementación del puerto CategoryRepository sobre PostgreSQL.
type CategoryRepo struct {
	q Querier
}

// NewCategoryRepository construye el adaptador de categorías. Pasar pool o tx (Querier).
func NewCategoryRepository(q Querier) *CategoryRepo {
	return &CategoryRepo{q: q}
}

// UpsertByName crea la categoría si el nombre no existe; si ya existe la
// devuelve sin modificarla. ON CONFLICT DO NOTHING + relectura hace el seed
// idempotente sin carreras.
func (r *CategoryRepo) UpsertByName(name, icon string) (*entity.Category, error) {
	query := `
		INSERT INTO categories (id, name, icon, is_active, created_at)
		VALUES ($1, $2, $3, true, $4)
		ON CONFLICT (name) DO NOTHING
		RETURNING id, name, icon, is_active, created_at`
	var c entity.Category
	err := r.q.QueryRow(context.Background(), query,
		uuid.New().String(), name, icon, time.Now(),
	).Scan(&c.ID, &c.Name, &c.Icon, &c.IsActive, &c.CreatedAt)
	if err == nil {
		return &c, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("upsert category: %w", err)
	}
	// Conflicto: la fila ya existía, releerla.
	err = r.q.QueryRow(context.Background(),
		`SELECT id, name, icon, is_active, created_at FROM categories WHERE name = $1`, name,
	).Scan(&c.ID, &c.Name, &c.Icon, &c.IsActive, &c.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("get category by name: %w", err)
	}
	return &c, nil
}

// GetByID obtiene una categoría por ID; nil si no existe.
func (r *CategoryRepo) GetByID(id string) (*entity.Category, error) {
	var c entity.Category
	err := r.q.QueryRow(context.Background(),
		`SELECT id, name, icon, is_active, created_at FROM categories WHERE id = $1`, id,
	).Scan(&c.ID, &c.Name, &c.Icon, &c.IsActive, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get category: %w", err)
	}
	return &c, nil
}

// ListActive lista las categorías activas ordenadas por nombre.
func (r *CategoryRepo) ListActive() ([]*entity.Category, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT id, name, icon, is_active, created_at FROM categories WHERE is_active = true ORDER BY name ASC`)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()
	var list []*entity.Category
	for rows.Next() {
		var c entity.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Icon, &c.IsActive, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}
