package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/casavidal/ferreteria-api/internal/domain"
	"github.com/casavidal/ferreteria-api/internal/domain/entity"
	"github.com/casavidal/ferreteria-api/internal/domain/repository"
)

var _ repository.ClientRepository = (*ClientRepo)(nil)

const clientColumns = `id, client_type, first_name, last_name, company_name,
	COALESCE(document, ''), COALESCE(rif, ''), email, phone, address, city, state,
	category, notes, loyalty_points, total_purchases, purchase_count, last_purchase_at,
	is_active, created_at, updated_at`

// ClientRepo implementación del puerto ClientRepository sobre PostgreSQL (usable con pool o tx).
type ClientRepo struct {
	q Querier
}

// NewClientRepository construye el adaptador de persistencia para clientes. Pasar pool o tx (Querier).
func NewClientRepository(q Querier) *ClientRepo {
	return &ClientRepo{q: q}
}

func scanClient(row pgx.Row) (*entity.Client, error) {
	var c entity.Client
	err := row.Scan(
		&c.ID, &c.ClientType, &c.FirstName, &c.LastName, &c.CompanyName,
		&c.Document, &c.RIF, &c.Email, &c.Phone, &c.Address, &c.City, &c.State,
		&c.Category, &c.Notes, &c.LoyaltyPoints, &c.TotalPurchases, &c.PurchaseCount,
		&c.LastPurchaseAt, &c.IsActive, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}

// Create inserta un cliente. Document y RIF vacíos se guardan como NULL para
// que el índice único no choque entre vacíos; la unicidad cubre también
// clientes desactivados.
func (r *ClientRepo) Create(client *entity.Client) error {
	query := `
		INSERT INTO clients (id, client_type, first_name, last_name, company_name,
			document, rif, email, phone, address, city, state, category, notes,
			loyalty_points, total_purchases, purchase_count, last_purchase_at,
			is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''), NULLIF($7, ''), $8, $9, $10, $11, $12,
			$13, $14, $15, $16, $17, $18, $19, $20, $21)`
	_, err := r.q.Exec(context.Background(), query,
		client.ID, client.ClientType, client.FirstName, client.LastName, client.CompanyName,
		client.Document, client.RIF, client.Email, client.Phone, client.Address,
		client.City, client.State, client.Category, client.Notes, client.LoyaltyPoints,
		client.TotalPurchases, client.PurchaseCount, client.LastPurchaseAt,
		client.IsActive, client.CreatedAt, client.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return mapUniqueViolation(err, client.Document)
		}
		return fmt.Errorf("insert client: %w", err)
	}
	return nil
}

// GetByID obtiene un cliente por ID; nil si no existe.
func (r *ClientRepo) GetByID(id string) (*entity.Client, error) {
	c, err := scanClient(r.q.QueryRow(context.Background(),
		`SELECT `+clientColumns+` FROM clients WHERE id = $1`, id))
	if err != nil {
		return nil, fmt.Errorf("get client: %w", err)
	}
	return c, nil
}

// GetByDocument busca por cédula entre todos los clientes, activos o no.
func (r *ClientRepo) GetByDocument(document string) (*entity.Client, error) {
	if document == "" {
		return nil, nil
	}
	c, err := scanClient(r.q.QueryRow(context.Background(),
		`SELECT `+clientColumns+` FROM clients WHERE document = $1`, document))
	if err != nil {
		return nil, fmt.Errorf("get client by document: %w", err)
	}
	return c, nil
}

// GetByRIF busca por RIF entre todos los clientes, activos o no.
func (r *ClientRepo) GetByRIF(rif string) (*entity.Client, error) {
	if rif == "" {
		return nil, nil
	}
	c, err := scanClient(r.q.QueryRow(context.Background(),
		`SELECT `+clientColumns+` FROM clients WHERE rif = $1`, rif))
	if err != nil {
		return nil, fmt.Errorf("get client by rif: %w", err)
	}
	return c, nil
}

// Update persiste cambios de campos; nunca toca el scoring.
func (r *ClientRepo) Update(client *entity.Client) error {
	query := `
		UPDATE clients SET first_name = $2, last_name = $3, company_name = $4,
			document = NULLIF($5, ''), rif = NULLIF($6, ''), email = $7, phone = $8,
			address = $9, city = $10, state = $11, category = $12, notes = $13,
			total_purchases = $14, purchase_count = $15, last_purchase_at = $16,
			is_active = $17, updated_at = $18
		WHERE id = $1`
	cmd, err := r.q.Exec(context.Background(), query,
		client.ID, client.FirstName, client.LastName, client.CompanyName,
		client.Document, client.RIF, client.Email, client.Phone, client.Address,
		client.City, client.State, client.Category, client.Notes,
		client.TotalPurchases, client.PurchaseCount, client.LastPurchaseAt,
		client.IsActive, client.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return mapUniqueViolation(err, client.Document)
		}
		return fmt.Errorf("update client: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// SetActive activa o desactiva (soft delete) un cliente.
func (r *ClientRepo) SetActive(id string, active bool) error {
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE clients SET is_active = $2, updated_at = now() WHERE id = $1`,
		id, active,
	)
	if err != nil {
		return fmt.Errorf("set client active: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// AddLoyaltyPoints incrementa el balance de puntos de forma atómica en la DB.
func (r *ClientRepo) AddLoyaltyPoints(id string, points int) error {
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE clients SET loyalty_points = loyalty_points + $2, updated_at = now() WHERE id = $1`,
		id, points,
	)
	if err != nil {
		return fmt.Errorf("add loyalty points: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List filtra, ordena (categoría, luego última compra más reciente) y pagina.
func (r *ClientRepo) List(f repository.ClientFilter) ([]*entity.Client, int, error) {
	where := ` WHERE 1=1`
	args := []any{}
	n := 0
	if f.IsActive != nil {
		n++
		where += fmt.Sprintf(` AND is_active = $%d`, n)
		args = append(args, *f.IsActive)
	}
	if f.Category != "" {
		n++
		where += fmt.Sprintf(` AND category = $%d`, n)
		args = append(args, f.Category)
	}
	if f.ClientType != "" {
		n++
		where += fmt.Sprintf(` AND client_type = $%d`, n)
		args = append(args, f.ClientType)
	}
	if f.Search != "" {
		n++
		where += fmt.Sprintf(
			` AND (unaccent(first_name || ' ' || last_name) ILIKE unaccent($%d)
			   OR unaccent(company_name) ILIKE unaccent($%d)
			   OR email ILIKE $%d OR phone ILIKE $%d)`,
			n, n, n, n)
		args = append(args, "%"+f.Search+"%")
	}

	var total int
	if err := r.q.QueryRow(context.Background(), `SELECT count(*) FROM clients`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count clients: %w", err)
	}

	query := `SELECT ` + clientColumns + ` FROM clients` + where +
		` ORDER BY category ASC, last_purchase_at DESC NULLS LAST`
	if f.Limit > 0 {
		n++
		query += fmt.Sprintf(` LIMIT $%d`, n)
		args = append(args, f.Limit)
	}
	if f.Offset > 0 {
		n++
		query += fmt.Sprintf(` OFFSET $%d`, n)
		args = append(args, f.Offset)
	}

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list clients: %w", err)
	}
	defer rows.Close()
	list, err := collectClients(rows)
	if err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

// ListVIP clientes VIP activos ordenados por compras totales.
func (r *ClientRepo) ListVIP(limit int) ([]*entity.Client, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT `+clientColumns+` FROM clients
		 WHERE is_active = true AND category = $1
		 ORDER BY total_purchases DESC LIMIT $2`,
		entity.ClientCategoryVIP, limit)
	if err != nil {
		return nil, fmt.Errorf("list vip clients: %w", err)
	}
	defer rows.Close()
	return collectClients(rows)
}

// ListTopScoring clientes activos con mayor score (join contra client_scorings).
func (r *ClientRepo) ListTopScoring(limit int) ([]*entity.Client, error) {
	query := `
		SELECT ` + prefixedClientColumns("c") + `
		FROM clients c
		JOIN client_scorings s ON s.client_id = c.id
		WHERE c.is_active = true
		ORDER BY s.score DESC LIMIT $1`
	rows, err := r.q.Query(context.Background(), query, limit)
	if err != nil {
		return nil, fmt.Errorf("list top scoring: %w", err)
	}
	defer rows.Close()
	return collectClients(rows)
}

// ListChurnRisk clientes activos con churn_probability >= threshold, de mayor
// a menor riesgo.
func (r *ClientRepo) ListChurnRisk(threshold float64) ([]*entity.Client, error) {
	query := `
		SELECT ` + prefixedClientColumns("c") + `
		FROM clients c
		JOIN client_scorings s ON s.client_id = c.id
		WHERE c.is_active = true AND s.churn_probability >= $1
		ORDER BY s.churn_probability DESC`
	rows, err := r.q.Query(context.Background(), query, threshold)
	if err != nil {
		return nil, fmt.Errorf("list churn risk: %w", err)
	}
	defer rows.Close()
	return collectClients(rows)
}

// Stats agregados de clientes para el dashboard, en una sola pasada.
func (r *ClientRepo) Stats() (*repository.ClientStats, error) {
	query := `
		SELECT count(*),
		       count(*) FILTER (WHERE category = 'NUEVO'),
		       count(*) FILTER (WHERE category = 'VIP'),
		       count(*) FILTER (WHERE category = 'MAYORISTA'),
		       count(*) FILTER (WHERE NOT is_active),
		       COALESCE(sum(total_purchases), 0)
		FROM clients`
	var st repository.ClientStats
	err := r.q.QueryRow(context.Background(), query).Scan(
		&st.Total, &st.Nuevos, &st.VIP, &st.Mayoristas, &st.Inactivos, &st.TotalVentas,
	)
	if err != nil {
		return nil, fmt.Errorf("client stats: %w", err)
	}
	return &st, nil
}

// prefixedClientColumns antepone el alias de tabla a cada columna (para joins).
func prefixedClientColumns(alias string) string {
	return alias + `.id, ` + alias + `.client_type, ` + alias + `.first_name, ` + alias + `.last_name, ` +
		alias + `.company_name, COALESCE(` + alias + `.document, ''), COALESCE(` + alias + `.rif, ''), ` +
		alias + `.email, ` + alias + `.phone, ` + alias + `.address, ` + alias + `.city, ` + alias + `.state, ` +
		alias + `.category, ` + alias + `.notes, ` + alias + `.loyalty_points, ` + alias + `.total_purchases, ` +
		alias + `.purchase_count, ` + alias + `.last_purchase_at, ` + alias + `.is_active, ` +
		alias + `.created_at, ` + alias + `.updated_at`
}

func collectClients(rows pgx.Rows) ([]*entity.Client, error) {
	var list []*entity.Client
	for rows.Next() {
		var c entity.Client
		if err := rows.Scan(
			&c.ID, &c.ClientType, &c.FirstName, &c.LastName, &c.CompanyName,
			&c.Document, &c.RIF, &c.Email, &c.Phone, &c.Address, &c.City, &c.State,
			&c.Category, &c.Notes, &c.LoyaltyPoints, &c.TotalPurchases, &c.PurchaseCount,
			&c.LastPurchaseAt, &c.IsActive, &c.CreatedAt, &c.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan client: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}
