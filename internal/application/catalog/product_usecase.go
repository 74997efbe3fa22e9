package catalog

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/casavidal/ferreteria-api/internal/application/dto"
	"github.com/casavidal/ferreteria-api/internal/application/inventory"
	"github.com/casavidal/ferreteria-api/internal/domain"
	"github.com/casavidal/ferreteria-api/internal/domain/entity"
	"github.com/casavidal/ferreteria-api/internal/domain/repository"
)

// Valores por defecto al crear productos.
const (
	DefaultMinStock = 5
	DefaultUnit     = "unidad"
)

// ProductUseCase supervisa el catálogo de productos: unicidad de SKU y barcode,
// referencias a categoría y producto padre, y reglas de variantes. El stock
// nunca se muta acá directamente; el alta con stock inicial delega en el motor
// de movimientos.
type ProductUseCase struct {
	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryRepository
	movementUC   *inventory.RegisterMovementUseCase
}

// NewProductUseCase construye el supervisor de productos.
func NewProductUseCase(
	productRepo repository.ProductRepository,
	categoryRepo repository.CategoryRepository,
	movementUC *inventory.RegisterMovementUseCase,
) *ProductUseCase {
	return &ProductUseCase{productRepo: productRepo, categoryRepo: categoryRepo, movementUC: movementUC}
}

// Create crea un producto. Chequeos en orden: SKU único, barcode único si viene,
// categoría existente, padre existente si es variante (una variante no puede
// declarar variantes propias). Con stock inicial positivo registra un único
// movimiento ENTRADA "Stock inicial".
func (uc *ProductUseCase) Create(ctx context.Context, in dto.CreateProductRequest, createdBy string) (*dto.ProductResponse, error) {
	if in.SKU == "" {
		return nil, &domain.ValidationError{Field: "sku", Reason: "requerido"}
	}
	if in.Name == "" {
		return nil, &domain.ValidationError{Field: "name", Reason: "requerido"}
	}
	if in.CurrentStock < 0 {
		return nil, &domain.ValidationError{Field: "currentStock", Reason: "no puede ser negativo"}
	}
	if in.CostPrice.IsNegative() || in.SalePrice.IsNegative() || in.WholesalePrice.IsNegative() {
		return nil, &domain.ValidationError{Field: "price", Reason: "los precios no pueden ser negativos"}
	}

	// Pre-chequeos de unicidad; la constraint del storage es la autoridad final.
	if existing, err := uc.productRepo.GetBySKU(in.SKU); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, &domain.DuplicateError{Field: "sku", Value: in.SKU}
	}
	if in.Barcode != "" {
		if existing, err := uc.productRepo.GetByBarcode(in.Barcode); err != nil {
			return nil, err
		} else if existing != nil {
			return nil, &domain.DuplicateError{Field: "barcode", Value: in.Barcode}
		}
	}

	category, err := uc.categoryRepo.GetByID(in.CategoryID)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, &domain.ReferenceError{Entity: "categoría", ID: in.CategoryID}
	}

	hasVariants := in.HasVariants
	if in.ParentProductID != "" {
		parent, err := uc.productRepo.GetByID(in.ParentProductID)
		if err != nil {
			return nil, err
		}
		if parent == nil {
			return nil, &domain.ReferenceError{Entity: "producto padre", ID: in.ParentProductID}
		}
		// Las variantes no pueden tener variantes.
		hasVariants = false
	}

	minStock := in.MinStock
	if minStock == 0 {
		minStock = DefaultMinStock
	}
	unit := in.Unit
	if unit == "" {
		unit = DefaultUnit
	}

	now := time.Now()
	product := &entity.Product{
		ID:              uuid.New().String(),
		SKU:             in.SKU,
		Barcode:         in.Barcode,
		Name:            in.Name,
		Description:     in.Description,
		CategoryID:      in.CategoryID,
		CostPrice:       in.CostPrice,
		SalePrice:       in.SalePrice,
		WholesalePrice:  in.WholesalePrice,
		CurrentStock:    0, // el stock inicial entra vía movimiento
		MinStock:        minStock,
		MaxStock:        in.MaxStock,
		Unit:            unit,
		HasVariants:     hasVariants,
		ParentProductID: in.ParentProductID,
		VariantInfo:     in.VariantInfo,
		Image:           in.Image,
		IsActive:        true,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := uc.productRepo.Create(product); err != nil {
		return nil, err
	}

	if in.CurrentStock > 0 {
		mov, err := uc.movementUC.RegisterInitialStock(ctx, product.ID, in.CurrentStock, createdBy)
		if err != nil {
			return nil, err
		}
		product.CurrentStock = mov.StockAfter
	}
	return toProductResponse(product), nil
}

// GetByID obtiene un producto por ID; nil si no existe.
func (uc *ProductUseCase) GetByID(id string) (*dto.ProductResponse, error) {
	product, err := uc.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	return toProductResponse(product), nil
}

// GetByCode busca por SKU o código de barras (lectura de pistola POS).
func (uc *ProductUseCase) GetByCode(code string) (*dto.ProductResponse, error) {
	product, err := uc.productRepo.GetByCode(code)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	return toProductResponse(product), nil
}

// List lista productos con filtros y paginación.
func (uc *ProductUseCase) List(in dto.ProductFilterRequest) (*dto.ProductListResponse, error) {
	in.DefaultPage()
	products, total, err := uc.productRepo.List(repository.ProductFilter{
		Search:     in.Search,
		CategoryID: in.CategoryID,
		IsActive:   in.IsActive,
		LowStock:   in.LowStock,
		Limit:      in.Limit,
		Offset:     in.Offset(),
	})
	if err != nil {
		return nil, err
	}
	out := make([]*dto.ProductResponse, 0, len(products))
	for _, p := range products {
		out = append(out, toProductResponse(p))
	}
	return &dto.ProductListResponse{
		Products:   out,
		Pagination: dto.NewPagination(in.Page, in.Limit, total),
	}, nil
}

// Update actualiza campos descriptivos re-validando unicidad de barcode contra
// los demás productos (exclusión de sí mismo). Nunca toca CurrentStock.
func (uc *ProductUseCase) Update(id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}

	if in.Barcode != nil && *in.Barcode != "" && *in.Barcode != product.Barcode {
		existing, err := uc.productRepo.GetByBarcode(*in.Barcode)
		if err != nil {
			return nil, err
		}
		if existing != nil && existing.ID != id {
			return nil, &domain.DuplicateError{Field: "barcode", Value: *in.Barcode}
		}
	}
	if in.CategoryID != nil && *in.CategoryID != product.CategoryID {
		category, err := uc.categoryRepo.GetByID(*in.CategoryID)
		if err != nil {
			return nil, err
		}
		if category == nil {
			return nil, &domain.ReferenceError{Entity: "categoría", ID: *in.CategoryID}
		}
		product.CategoryID = *in.CategoryID
	}

	if in.Barcode != nil {
		product.Barcode = *in.Barcode
	}
	if in.Name != nil {
		product.Name = *in.Name
	}
	if in.Description != nil {
		product.Description = *in.Description
	}
	if in.CostPrice != nil {
		product.CostPrice = *in.CostPrice
	}
	if in.SalePrice != nil {
		product.SalePrice = *in.SalePrice
	}
	if in.WholesalePrice != nil {
		product.WholesalePrice = *in.WholesalePrice
	}
	if in.MinStock != nil {
		product.MinStock = *in.MinStock
	}
	if in.MaxStock != nil {
		product.MaxStock = *in.MaxStock
	}
	if in.Unit != nil {
		product.Unit = *in.Unit
	}
	if in.VariantInfo != nil {
		product.VariantInfo = *in.VariantInfo
	}
	if in.Image != nil {
		product.Image = *in.Image
	}
	if in.IsActive != nil {
		product.IsActive = *in.IsActive
	}
	product.UpdatedAt = time.Now()

	if err := uc.productRepo.Update(product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// SoftDelete desactiva el producto. El historial de movimientos se conserva
// siempre; nunca hay borrado físico.
func (uc *ProductUseCase) SoftDelete(id string) error {
	product, err := uc.productRepo.GetByID(id)
	if err != nil {
		return err
	}
	if product == nil {
		return domain.ErrNotFound
	}
	return uc.productRepo.SetActive(id, false)
}

// AdjustStock pasa directo al motor de movimientos; propaga ErrStockNegativo
// sin modificar.
func (uc *ProductUseCase) AdjustStock(ctx context.Context, in dto.RegisterMovementRequest, createdBy string) (*dto.MovementResponse, error) {
	mov, err := uc.movementUC.RegisterMovement(ctx, inventory.MovementInput{
		ProductID: in.ProductID,
		Quantity:  in.Quantity,
		Type:      in.Type,
		Reference: in.Reference,
		Notes:     in.Notes,
		CreatedBy: createdBy,
	})
	if err != nil {
		return nil, err
	}
	return toMovementResponse(mov), nil
}

// ListLowStock productos activos con currentStock <= minStock.
func (uc *ProductUseCase) ListLowStock() ([]*dto.ProductResponse, error) {
	products, err := uc.productRepo.ListLowStock()
	if err != nil {
		return nil, err
	}
	return toProductResponses(products), nil
}

// ListOutOfStock productos activos con currentStock == 0.
func (uc *ProductUseCase) ListOutOfStock() ([]*dto.ProductResponse, error) {
	products, err := uc.productRepo.ListOutOfStock()
	if err != nil {
		return nil, err
	}
	return toProductResponses(products), nil
}

// GetVariants variantes activas de un producto padre. Si el producto no
// declara variantes devuelve lista vacía.
func (uc *ProductUseCase) GetVariants(productID string) ([]*dto.ProductResponse, error) {
	product, err := uc.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	if !product.HasVariants {
		return []*dto.ProductResponse{}, nil
	}
	variants, err := uc.productRepo.ListVariants(productID)
	if err != nil {
		return nil, err
	}
	return toProductResponses(variants), nil
}

// Stats agregados de inventario para el dashboard.
func (uc *ProductUseCase) Stats() (*dto.ProductStatsResponse, error) {
	st, err := uc.productRepo.Stats()
	if err != nil {
		return nil, err
	}
	return &dto.ProductStatsResponse{
		TotalProducts:   st.TotalProducts,
		ActiveProducts:  st.ActiveProducts,
		LowStockCount:   st.LowStockCount,
		OutOfStockCount: st.OutOfStockCount,
		TotalUnits:      st.TotalUnits,
	}, nil
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	return &dto.ProductResponse{
		ID:              p.ID,
		SKU:             p.SKU,
		Barcode:         p.Barcode,
		Name:            p.Name,
		Description:     p.Description,
		CategoryID:      p.CategoryID,
		CostPrice:       p.CostPrice,
		SalePrice:       p.SalePrice,
		WholesalePrice:  p.WholesalePrice,
		CurrentStock:    p.CurrentStock,
		MinStock:        p.MinStock,
		MaxStock:        p.MaxStock,
		Unit:            p.Unit,
		HasVariants:     p.HasVariants,
		ParentProductID: p.ParentProductID,
		VariantInfo:     p.VariantInfo,
		Image:           p.Image,
		IsActive:        p.IsActive,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
}

func toProductResponses(products []*entity.Product) []*dto.ProductResponse {
	out := make([]*dto.ProductResponse, 0, len(products))
	for _, p := range products {
		out = append(out, toProductResponse(p))
	}
	return out
}

func toMovementResponse(m *entity.InventoryMovement) *dto.MovementResponse {
	return &dto.MovementResponse{
		ID:          m.ID,
		ProductID:   m.ProductID,
		Type:        m.Type,
		Quantity:    m.Quantity,
		StockBefore: m.StockBefore,
		StockAfter:  m.StockAfter,
		Reference:   m.Reference,
		Notes:       m.Notes,
		CreatedBy:   m.CreatedBy,
		CreatedAt:   m.CreatedAt,
	}
}
