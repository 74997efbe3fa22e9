package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto o SKU del catálogo.
// CurrentStock se mantiene exclusivamente vía movimientos de inventario: en todo
// momento equivale a la suma (con signo) de sus movimientos en orden de creación.
type Product struct {
	ID              string
	SKU             string // único
	Barcode         string // único si no está vacío
	Name            string
	Description     string
	CategoryID      string
	CostPrice       decimal.Decimal
	SalePrice       decimal.Decimal
	WholesalePrice  decimal.Decimal // cero = sin precio mayorista
	CurrentStock    int
	MinStock        int
	MaxStock        int // cero = sin tope
	Unit            string
	HasVariants     bool
	ParentProductID string // vacío si no es variante
	VariantInfo     string
	Image           string
	IsActive        bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// IsVariant indica si el producto es una presentación de un producto padre.
// Una variante nunca puede declarar variantes propias.
func (p *Product) IsVariant() bool { return p.ParentProductID != "" }
