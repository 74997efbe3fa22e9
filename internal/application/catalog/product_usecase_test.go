package catalog_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/casavidal/ferreteria-api/internal/application/catalog"
	"github.com/casavidal/ferreteria-api/internal/application/dto"
	"github.com/casavidal/ferreteria-api/internal/application/inventory"
	"github.com/casavidal/ferreteria-api/internal/domain"
	"github.com/casavidal/ferreteria-api/internal/domain/entity"
	"github.com/casavidal/ferreteria-api/internal/infrastructure/memory"
)

type productFixture struct {
	uc         *catalog.ProductUseCase
	store      *memory.Store
	categoryID string
}

func newProductFixture(t *testing.T) *productFixture {
	t.Helper()
	store := memory.NewStore()
	movUC := inventory.NewRegisterMovementUseCase(store, store.Products(), store.Movements())
	uc := catalog.NewProductUseCase(store.Products(), store.Categories(), movUC)

	cat, err := store.Categories().UpsertByName("Herramientas", "wrench")
	require.NoError(t, err)
	return &productFixture{uc: uc, store: store, categoryID: cat.ID}
}

func validProduct(categoryID string) dto.CreateProductRequest {
	return dto.CreateProductRequest{
		SKU:        "TAL-001",
		Name:       "Taladro percutor 650W",
		CategoryID: categoryID,
		CostPrice:  decimal.NewFromInt(45),
		SalePrice:  decimal.NewFromInt(68),
	}
}

func TestProductCreate_Defaults(t *testing.T) {
	f := newProductFixture(t)

	resp, err := f.uc.Create(context.Background(), validProduct(f.categoryID), "")
	require.NoError(t, err)
	assert.Equal(t, catalog.DefaultMinStock, resp.MinStock)
	assert.Equal(t, catalog.DefaultUnit, resp.Unit)
	assert.Equal(t, 0, resp.CurrentStock)
	assert.True(t, resp.IsActive)

	// Sin stock inicial no debe haber movimiento.
	movs, err := f.store.Movements().ListByProduct(resp.ID, 0)
	require.NoError(t, err)
	assert.Empty(t, movs)
}

func TestProductCreate_StockInicial(t *testing.T) {
	f := newProductFixture(t)

	in := validProduct(f.categoryID)
	in.CurrentStock = 30
	resp, err := f.uc.Create(context.Background(), in, "user-1")
	require.NoError(t, err)
	assert.Equal(t, 30, resp.CurrentStock)

	movs, err := f.store.Movements().ListByProduct(resp.ID, 0)
	require.NoError(t, err)
	require.Len(t, movs, 1)
	assert.Equal(t, entity.MovementTypeEntrada, movs[0].Type)
	assert.Equal(t, inventory.NotaStockInicial, movs[0].Notes)
	assert.Equal(t, 0, movs[0].StockBefore)
	assert.Equal(t, 30, movs[0].StockAfter)
	assert.Equal(t, "user-1", movs[0].CreatedBy)
}

func TestProductCreate_SKUDuplicado(t *testing.T) {
	f := newProductFixture(t)

	_, err := f.uc.Create(context.Background(), validProduct(f.categoryID), "")
	require.NoError(t, err)

	dup := validProduct(f.categoryID)
	dup.Name = "Otro taladro"
	_, err = f.uc.Create(context.Background(), dup, "")
	var derr *domain.DuplicateError
	require.ErrorAs(t, err, &derr)
	assert.Equal(t, "sku", derr.Field)
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestProductCreate_BarcodeDuplicado(t *testing.T) {
	f := newProductFixture(t)

	first := validProduct(f.categoryID)
	first.Barcode = "7591234567890"
	_, err := f.uc.Create(context.Background(), first, "")
	require.NoError(t, err)

	second := validProduct(f.categoryID)
	second.SKU = "TAL-002"
	second.Barcode = "7591234567890"
	_, err = f.uc.Create(context.Background(), second, "")
	var derr *domain.DuplicateError
	require.ErrorAs(t, err, &derr)
	assert.Equal(t, "barcode", derr.Field)
}

func TestProductCreate_CategoriaInexistente(t *testing.T) {
	f := newProductFixture(t)

	in := validProduct("no-existe")
	_, err := f.uc.Create(context.Background(), in, "")
	require.ErrorIs(t, err, domain.ErrReferenceNotFound)
}

func TestProductCreate_VarianteNoPuedeTenerVariantes(t *testing.T) {
	f := newProductFixture(t)

	parent := validProduct(f.categoryID)
	parent.HasVariants = true
	parentResp, err := f.uc.Create(context.Background(), parent, "")
	require.NoError(t, err)

	variant := validProduct(f.categoryID)
	variant.SKU = "TAL-001-110V"
	variant.ParentProductID = parentResp.ID
	variant.VariantInfo = "110V"
	variant.HasVariants = true // debe forzarse a false
	variantResp, err := f.uc.Create(context.Background(), variant, "")
	require.NoError(t, err)
	assert.False(t, variantResp.HasVariants)

	variants, err := f.uc.GetVariants(parentResp.ID)
	require.NoError(t, err)
	require.Len(t, variants, 1)
	assert.Equal(t, "TAL-001-110V", variants[0].SKU)

	// La variante no declara variantes: lista vacía, no error.
	none, err := f.uc.GetVariants(variantResp.ID)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestProductCreate_PadreInexistente(t *testing.T) {
	f := newProductFixture(t)

	in := validProduct(f.categoryID)
	in.ParentProductID = "no-existe"
	_, err := f.uc.Create(context.Background(), in, "")
	require.ErrorIs(t, err, domain.ErrReferenceNotFound)
}

func TestProductUpdate_NoTocaStock(t *testing.T) {
	f := newProductFixture(t)

	in := validProduct(f.categoryID)
	in.CurrentStock = 12
	created, err := f.uc.Create(context.Background(), in, "")
	require.NoError(t, err)

	name := "Taladro percutor 750W"
	updated, err := f.uc.Update(created.ID, dto.UpdateProductRequest{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, name, updated.Name)
	assert.Equal(t, 12, updated.CurrentStock)
}

func TestProductUpdate_BarcodeDuplicadoExcluyeSelf(t *testing.T) {
	f := newProductFixture(t)

	first := validProduct(f.categoryID)
	first.Barcode = "111"
	a, err := f.uc.Create(context.Background(), first, "")
	require.NoError(t, err)

	second := validProduct(f.categoryID)
	second.SKU = "TAL-002"
	second.Barcode = "222"
	b, err := f.uc.Create(context.Background(), second, "")
	require.NoError(t, err)

	// Reasignar su propio barcode no es colisión.
	own := "111"
	_, err = f.uc.Update(a.ID, dto.UpdateProductRequest{Barcode: &own})
	require.NoError(t, err)

	// El barcode del otro sí.
	taken := "111"
	_, err = f.uc.Update(b.ID, dto.UpdateProductRequest{Barcode: &taken})
	require.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestProductSoftDelete(t *testing.T) {
	f := newProductFixture(t)

	in := validProduct(f.categoryID)
	in.CurrentStock = 8
	created, err := f.uc.Create(context.Background(), in, "")
	require.NoError(t, err)
	require.NoError(t, f.uc.SoftDelete(created.ID))

	got, err := f.uc.GetByID(created.ID)
	require.NoError(t, err)
	assert.False(t, got.IsActive)

	// El historial sobrevive al soft delete.
	movs, err := f.store.Movements().ListByProduct(created.ID, 0)
	require.NoError(t, err)
	assert.Len(t, movs, 1)
}

func TestProductGetByCode(t *testing.T) {
	f := newProductFixture(t)

	in := validProduct(f.categoryID)
	in.Barcode = "7590000000001"
	created, err := f.uc.Create(context.Background(), in, "")
	require.NoError(t, err)

	bySKU, err := f.uc.GetByCode("TAL-001")
	require.NoError(t, err)
	assert.Equal(t, created.ID, bySKU.ID)

	byBarcode, err := f.uc.GetByCode("7590000000001")
	require.NoError(t, err)
	assert.Equal(t, created.ID, byBarcode.ID)

	_, err = f.uc.GetByCode("XXX")
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestProductListLowStockYOutOfStock(t *testing.T) {
	f := newProductFixture(t)
	ctx := context.Background()

	low := validProduct(f.categoryID)
	low.SKU = "LOW-001"
	low.CurrentStock = 3 // minStock por defecto 5
	_, err := f.uc.Create(ctx, low, "")
	require.NoError(t, err)

	out := validProduct(f.categoryID)
	out.SKU = "OUT-001"
	_, err = f.uc.Create(ctx, out, "")
	require.NoError(t, err)

	ok := validProduct(f.categoryID)
	ok.SKU = "OK-001"
	ok.CurrentStock = 50
	_, err = f.uc.Create(ctx, ok, "")
	require.NoError(t, err)

	lows, err := f.uc.ListLowStock()
	require.NoError(t, err)
	skus := make([]string, 0, len(lows))
	for _, p := range lows {
		skus = append(skus, p.SKU)
	}
	assert.ElementsMatch(t, []string{"LOW-001", "OUT-001"}, skus)

	outs, err := f.uc.ListOutOfStock()
	require.NoError(t, err)
	require.Len(t, outs, 1)
	assert.Equal(t, "OUT-001", outs[0].SKU)
}

func TestProductList_BusquedaSinAcentos(t *testing.T) {
	f := newProductFixture(t)
	ctx := context.Background()

	a := validProduct(f.categoryID)
	a.SKU = "CER-001"
	a.Name = "Cerámica española 30x30"
	_, err := f.uc.Create(ctx, a, "")
	require.NoError(t, err)

	b := validProduct(f.categoryID)
	b.SKU = "TUB-001"
	b.Name = "Tubo PVC 1/2"
	_, err = f.uc.Create(ctx, b, "")
	require.NoError(t, err)

	resp, err := f.uc.List(dto.ProductFilterRequest{Search: "ceramica espanola"})
	require.NoError(t, err)
	require.Len(t, resp.Products, 1)
	assert.Equal(t, "CER-001", resp.Products[0].SKU)
}

func TestProductStats(t *testing.T) {
	f := newProductFixture(t)
	ctx := context.Background()

	a := validProduct(f.categoryID)
	a.SKU = "A-001"
	a.CurrentStock = 10
	_, err := f.uc.Create(ctx, a, "")
	require.NoError(t, err)

	b := validProduct(f.categoryID)
	b.SKU = "B-001"
	b.CurrentStock = 2
	created, err := f.uc.Create(ctx, b, "")
	require.NoError(t, err)
	require.NoError(t, f.uc.SoftDelete(created.ID))

	st, err := f.uc.Stats()
	require.NoError(t, err)
	assert.Equal(t, 2, st.TotalProducts)
	assert.Equal(t, 1, st.ActiveProducts)
}
