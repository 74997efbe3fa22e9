package repository

import "github.com/casavidal/ferreteria-api/internal/domain/entity"

// ProductFilter filtros para listados de productos.
type ProductFilter struct {
	Search     string // busca en nombre, sku, barcode y descripción
	CategoryID string
	IsActive   *bool // nil = solo activos
	LowStock   bool  // currentStock <= minStock
	Limit      int
	Offset     int
}

// ProductStats agregados de inventario para el dashboard.
type ProductStats struct {
	TotalProducts   int
	ActiveProducts  int
	LowStockCount   int
	OutOfStockCount int
	TotalUnits      int
}

// ProductRepository define el puerto de persistencia para Product.
// El stock solo se muta vía GetForUpdate + UpdateStock dentro de la sección
// exclusiva por producto (ver inventory.TxRunner).
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	GetBySKU(sku string) (*entity.Product, error)
	GetByBarcode(barcode string) (*entity.Product, error)
	// GetByCode busca por SKU o código de barras (lectura de pistola POS).
	GetByCode(code string) (*entity.Product, error)
	// GetForUpdate obtiene el producto bloqueando su fila para la transacción actual.
	GetForUpdate(id string) (*entity.Product, error)
	// UpdateStock escribe el nuevo stock; solo el motor de movimientos debe llamarlo.
	UpdateStock(id string, stock int) error
	// Update persiste cambios de campos descriptivos; nunca toca CurrentStock.
	Update(product *entity.Product) error
	SetActive(id string, active bool) error
	List(f ProductFilter) ([]*entity.Product, int, error)
	ListLowStock() ([]*entity.Product, error)
	ListOutOfStock() ([]*entity.Product, error)
	ListVariants(parentID string) ([]*entity.Product, error)
	Stats() (*ProductStats, error)
}
