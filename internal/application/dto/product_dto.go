package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest datos para crear un producto.
type CreateProductRequest struct {
	SKU             string          `json:"sku"`
	Barcode         string          `json:"barcode"`
	Name            string          `json:"name"`
	Description     string          `json:"description"`
	CategoryID      string          `json:"categoryId"`
	CostPrice       decimal.Decimal `json:"costPrice"`
	SalePrice       decimal.Decimal `json:"salePrice"`
	WholesalePrice  decimal.Decimal `json:"wholesalePrice"`
	CurrentStock    int             `json:"currentStock"`
	MinStock        int             `json:"minStock"`
	MaxStock        int             `json:"maxStock"`
	Unit            string          `json:"unit"`
	HasVariants     bool            `json:"hasVariants"`
	ParentProductID string          `json:"parentProductId"`
	VariantInfo     string          `json:"variantInfo"`
	Image           string          `json:"image"`
}

// UpdateProductRequest campos opcionales para actualizar un producto.
// CurrentStock no aparece: el stock solo se muta vía movimientos.
type UpdateProductRequest struct {
	Barcode        *string          `json:"barcode"`
	Name           *string          `json:"name"`
	Description    *string          `json:"description"`
	CategoryID     *string          `json:"categoryId"`
	CostPrice      *decimal.Decimal `json:"costPrice"`
	SalePrice      *decimal.Decimal `json:"salePrice"`
	WholesalePrice *decimal.Decimal `json:"wholesalePrice"`
	MinStock       *int             `json:"minStock"`
	MaxStock       *int             `json:"maxStock"`
	Unit           *string          `json:"unit"`
	VariantInfo    *string          `json:"variantInfo"`
	Image          *string          `json:"image"`
	IsActive       *bool            `json:"isActive"`
}

// ProductFilterRequest filtros de listado de productos.
type ProductFilterRequest struct {
	PageRequest
	Search     string `query:"search"`
	CategoryID string `query:"categoryId"`
	IsActive   *bool  `query:"isActive"`
	LowStock   bool   `query:"lowStock"`
}

// ProductResponse representación HTTP de un producto.
type ProductResponse struct {
	ID              string          `json:"id"`
	SKU             string          `json:"sku"`
	Barcode         string          `json:"barcode,omitempty"`
	Name            string          `json:"name"`
	Description     string          `json:"description,omitempty"`
	CategoryID      string          `json:"categoryId"`
	CostPrice       decimal.Decimal `json:"costPrice"`
	SalePrice       decimal.Decimal `json:"salePrice"`
	WholesalePrice  decimal.Decimal `json:"wholesalePrice"`
	CurrentStock    int             `json:"currentStock"`
	MinStock        int             `json:"minStock"`
	MaxStock        int             `json:"maxStock,omitempty"`
	Unit            string          `json:"unit"`
	HasVariants     bool            `json:"hasVariants"`
	ParentProductID string          `json:"parentProductId,omitempty"`
	VariantInfo     string          `json:"variantInfo,omitempty"`
	Image           string          `json:"image,omitempty"`
	IsActive        bool            `json:"isActive"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}

// ProductListResponse listado paginado de productos.
type ProductListResponse struct {
	Products   []*ProductResponse `json:"products"`
	Pagination Pagination         `json:"pagination"`
}

// ProductStatsResponse agregados de inventario.
type ProductStatsResponse struct {
	TotalProducts   int `json:"totalProducts"`
	ActiveProducts  int `json:"activeProducts"`
	LowStockCount   int `json:"lowStockCount"`
	OutOfStockCount int `json:"outOfStockCount"`
	TotalUnits      int `json:"totalUnits"`
}

// CategoryResponse representación HTTP de una categoría.
type CategoryResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Icon string `json:"icon,omitempty"`
}
