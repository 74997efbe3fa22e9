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

var _ repository.ProductRepository = (*ProductRepo)(nil)

const productColumns = `id, sku, COALESCE(barcode, ''), name, description, category_id,
	cost_price, sale_price, wholesale_price, current_stock, min_stock, max_stock, unit,
	has_variants, COALESCE(parent_product_id, ''), variant_info, image, is_active, created_at, updated_at`

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

func scanProduct(row pgx.Row) (*entity.Product, error) {
	var p entity.Product
	err := row.Scan(
		&p.ID, &p.SKU, &p.Barcode, &p.Name, &p.Description, &p.CategoryID,
		&p.CostPrice, &p.SalePrice, &p.WholesalePrice, &p.CurrentStock, &p.MinStock,
		&p.MaxStock, &p.Unit, &p.HasVariants, &p.ParentProductID, &p.VariantInfo,
		&p.Image, &p.IsActive, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

// Create persiste un nuevo producto. Barcode y parent_product_id vacíos se
// guardan como NULL para que el índice único parcial no choque entre vacíos.
func (r *ProductRepo) Create(product *entity.Product) error {
	query := `
		INSERT INTO products (id, sku, barcode, name, description, category_id,
			cost_price, sale_price, wholesale_price, current_stock, min_stock, max_stock,
			unit, has_variants, parent_product_id, variant_info, image, is_active, created_at, updated_at)
		VALUES ($1, $2, NULLIF($3, ''), $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, NULLIF($15, ''), $16, $17, $18, $19, $20)`
	_, err := r.q.Exec(context.Background(), query,
		product.ID, product.SKU, product.Barcode, product.Name, product.Description,
		product.CategoryID, product.CostPrice, product.SalePrice, product.WholesalePrice,
		product.CurrentStock, product.MinStock, product.MaxStock, product.Unit,
		product.HasVariants, product.ParentProductID, product.VariantInfo, product.Image,
		product.IsActive, product.CreatedAt, product.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return mapUniqueViolation(err, product.SKU)
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByID obtiene un producto por ID; nil si no existe.
func (r *ProductRepo) GetByID(id string) (*entity.Product, error) {
	p, err := scanProduct(r.q.QueryRow(context.Background(),
		`SELECT `+productColumns+` FROM products WHERE id = $1`, id))
	if err != nil {
		return nil, fmt.Errorf("get product: %w", err)
	}
	return p, nil
}

// GetBySKU obtiene un producto por SKU.
func (r *ProductRepo) GetBySKU(sku string) (*entity.Product, error) {
	p, err := scanProduct(r.q.QueryRow(context.Background(),
		`SELECT `+productColumns+` FROM products WHERE sku = $1`, sku))
	if err != nil {
		return nil, fmt.Errorf("get product by sku: %w", err)
	}
	return p, nil
}

// GetByBarcode obtiene un producto por código de barras.
func (r *ProductRepo) GetByBarcode(barcode string) (*entity.Product, error) {
	if barcode == "" {
		return nil, nil
	}
	p, err := scanProduct(r.q.QueryRow(context.Background(),
		`SELECT `+productColumns+` FROM products WHERE barcode = $1`, barcode))
	if err != nil {
		return nil, fmt.Errorf("get product by barcode: %w", err)
	}
	return p, nil
}

// GetByCode busca por SKU o código de barras (lectura de pistola POS).
func (r *ProductRepo) GetByCode(code string) (*entity.Product, error) {
	p, err := scanProduct(r.q.QueryRow(context.Background(),
		`SELECT `+productColumns+` FROM products WHERE sku = $1 OR barcode = $1`, code))
	if err != nil {
		return nil, fmt.Errorf("get product by code: %w", err)
	}
	return p, nil
}

// GetForUpdate bloquea la fila del producto para la transacción actual.
// Serializa los movimientos concurrentes sobre el mismo producto.
func (r *ProductRepo) GetForUpdate(id string) (*entity.Product, error) {
	p, err := scanProduct(r.q.QueryRow(context.Background(),
		`SELECT `+productColumns+` FROM products WHERE id = $1 FOR UPDATE`, id))
	if err != nil {
		return nil, fmt.Errorf("get product for update: %w", err)
	}
	return p, nil
}

// UpdateStock escribe el nuevo stock; solo el motor de movimientos debe llamarlo.
func (r *ProductRepo) UpdateStock(id string, stock int) error {
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE products SET current_stock = $2, updated_at = now() WHERE id = $1`,
		id, stock,
	)
	if err != nil {
		return fmt.Errorf("update product stock: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Update actualiza campos descriptivos. No toca current_stock: ese campo solo
// se muta vía UpdateStock dentro de la transacción del motor de movimientos.
func (r *ProductRepo) Update(product *entity.Product) error {
	query := `
		UPDATE products SET barcode = NULLIF($2, ''), name = $3, description = $4,
			category_id = $5, cost_price = $6, sale_price = $7, wholesale_price = $8,
			min_stock = $9, max_stock = $10, unit = $11, variant_info = $12, image = $13,
			is_active = $14, updated_at = $15
		WHERE id = $1`
	cmd, err := r.q.Exec(context.Background(), query,
		product.ID, product.Barcode, product.Name, product.Description,
		product.CategoryID, product.CostPrice, product.SalePrice, product.WholesalePrice,
		product.MinStock, product.MaxStock, product.Unit, product.VariantInfo,
		product.Image, product.IsActive, product.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return mapUniqueViolation(err, product.Barcode)
		}
		return fmt.Errorf("update product: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// SetActive activa o desactiva (soft delete) un producto.
func (r *ProductRepo) SetActive(id string, active bool) error {
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE products SET is_active = $2, updated_at = now() WHERE id = $1`,
		id, active,
	)
	if err != nil {
		return fmt.Errorf("set product active: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List filtra, ordena (menos stock primero, luego nombre) y pagina.
// La búsqueda ignora acentos vía unaccent (la migración habilita la extensión).
func (r *ProductRepo) List(f repository.ProductFilter) ([]*entity.Product, int, error) {
	where := ` WHERE 1=1`
	args := []any{}
	n := 0
	if f.IsActive == nil {
		where += ` AND is_active = true`
	} else {
		n++
		where += fmt.Sprintf(` AND is_active = $%d`, n)
		args = append(args, *f.IsActive)
	}
	if f.CategoryID != "" {
		n++
		where += fmt.Sprintf(` AND category_id = $%d`, n)
		args = append(args, f.CategoryID)
	}
	if f.LowStock {
		where += ` AND current_stock <= min_stock`
	}
	if f.Search != "" {
		n++
		where += fmt.Sprintf(
			` AND (unaccent(name) ILIKE unaccent($%d) OR sku ILIKE $%d OR COALESCE(barcode, '') ILIKE $%d OR unaccent(description) ILIKE unaccent($%d))`,
			n, n, n, n)
		args = append(args, "%"+f.Search+"%")
	}

	var total int
	if err := r.q.QueryRow(context.Background(), `SELECT count(*) FROM products`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count products: %w", err)
	}

	query := `SELECT ` + productColumns + ` FROM products` + where + ` ORDER BY current_stock ASC, name ASC`
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
		return nil, 0, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()
	list, err := collectProducts(rows)
	if err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

// ListLowStock productos activos con stock en o bajo el mínimo.
func (r *ProductRepo) ListLowStock() ([]*entity.Product, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT `+productColumns+` FROM products
		 WHERE is_active = true AND current_stock <= min_stock
		 ORDER BY current_stock ASC`)
	if err != nil {
		return nil, fmt.Errorf("list low stock: %w", err)
	}
	defer rows.Close()
	return collectProducts(rows)
}

// ListOutOfStock productos activos sin existencias.
func (r *ProductRepo) ListOutOfStock() ([]*entity.Product, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT `+productColumns+` FROM products
		 WHERE is_active = true AND current_stock = 0
		 ORDER BY name ASC`)
	if err != nil {
		return nil, fmt.Errorf("list out of stock: %w", err)
	}
	defer rows.Close()
	return collectProducts(rows)
}

// ListVariants variantes activas de un producto padre.
func (r *ProductRepo) ListVariants(parentID string) ([]*entity.Product, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT `+productColumns+` FROM products
		 WHERE is_active = true AND parent_product_id = $1
		 ORDER BY name ASC`, parentID)
	if err != nil {
		return nil, fmt.Errorf("list variants: %w", err)
	}
	defer rows.Close()
	return collectProducts(rows)
}

// Stats agregados de inventario para el dashboard, en una sola pasada.
func (r *ProductRepo) Stats() (*repository.ProductStats, error) {
	query := `
		SELECT count(*),
		       count(*) FILTER (WHERE is_active),
		       count(*) FILTER (WHERE is_active AND current_stock <= min_stock),
		       count(*) FILTER (WHERE is_active AND current_stock = 0),
		       COALESCE(sum(current_stock) FILTER (WHERE is_active), 0)
		FROM products`
	var st repository.ProductStats
	err := r.q.QueryRow(context.Background(), query).Scan(
		&st.TotalProducts, &st.ActiveProducts, &st.LowStockCount, &st.OutOfStockCount, &st.TotalUnits,
	)
	if err != nil {
		return nil, fmt.Errorf("product stats: %w", err)
	}
	return &st, nil
}

func collectProducts(rows pgx.Rows) ([]*entity.Product, error) {
	var list []*entity.Product
	for rows.Next() {
		var p entity.Product
		if err := rows.Scan(
			&p.ID, &p.SKU, &p.Barcode, &p.Name, &p.Description, &p.CategoryID,
			&p.CostPrice, &p.SalePrice, &p.WholesalePrice, &p.CurrentStock, &p.MinStock,
			&p.MaxStock, &p.Unit, &p.HasVariants, &p.ParentProductID, &p.VariantInfo,
			&p.Image, &p.IsActive, &p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}
