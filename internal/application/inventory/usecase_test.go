package inventory_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/casavidal/ferreteria-api/internal/application/inventory"
	"github.com/casavidal/ferreteria-api/internal/domain"
	"github.com/casavidal/ferreteria-api/internal/domain/entity"
	"github.com/casavidal/ferreteria-api/internal/infrastructure/memory"
)

func newEngine(t *testing.T) (*inventory.RegisterMovementUseCase, *memory.Store) {
	t.Helper()
	store := memory.NewStore()
	uc := inventory.NewRegisterMovementUseCase(store, store.Products(), store.Movements())
	return uc, store
}

func seedProduct(t *testing.T, store *memory.Store, stock int) *entity.Product {
	t.Helper()
	p := &entity.Product{
		ID:           uuid.New().String(),
		SKU:          "MART-" + uuid.New().String()[:8],
		Name:         "Martillo de carpintero",
		SalePrice:    decimal.NewFromInt(12),
		CurrentStock: stock,
		MinStock:     5,
		Unit:         "unidad",
		IsActive:     true,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
	require.NoError(t, store.Products().Create(p))
	return p
}

func TestRegisterMovement_Entrada(t *testing.T) {
	uc, store := newEngine(t)
	p := seedProduct(t, store, 10)

	mov, err := uc.RegisterMovement(context.Background(), inventory.MovementInput{
		ProductID: p.ID,
		Quantity:  15,
		Type:      entity.MovementTypeEntrada,
		Reference: "FAC-001",
	})
	require.NoError(t, err)
	assert.Equal(t, 10, mov.StockBefore)
	assert.Equal(t, 25, mov.StockAfter)

	updated, err := store.Products().GetByID(p.ID)
	require.NoError(t, err)
	assert.Equal(t, 25, updated.CurrentStock)
}

func TestRegisterMovement_SalidaMayorAlStock(t *testing.T) {
	uc, store := newEngine(t)
	p := seedProduct(t, store, 50)

	_, err := uc.RegisterMovement(context.Background(), inventory.MovementInput{
		ProductID: p.ID,
		Quantity:  -30,
		Type:      entity.MovementTypeSalida,
	})
	require.NoError(t, err)

	// 20 en stock: una salida de 25 debe rechazarse sin dejar rastro.
	_, err = uc.RegisterMovement(context.Background(), inventory.MovementInput{
		ProductID: p.ID,
		Quantity:  -25,
		Type:      entity.MovementTypeSalida,
	})
	require.ErrorIs(t, err, domain.ErrStockNegativo)

	updated, err := store.Products().GetByID(p.ID)
	require.NoError(t, err)
	assert.Equal(t, 20, updated.CurrentStock)

	movs, err := store.Movements().ListByProduct(p.ID, 0)
	require.NoError(t, err)
	assert.Len(t, movs, 1, "el movimiento rechazado no debe persistirse")
}

func TestRegisterMovement_TipoInvalido(t *testing.T) {
	uc, store := newEngine(t)
	p := seedProduct(t, store, 10)

	_, err := uc.RegisterMovement(context.Background(), inventory.MovementInput{
		ProductID: p.ID,
		Quantity:  1,
		Type:      "TRASLADO",
	})
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "type", verr.Field)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRegisterMovement_CantidadCero(t *testing.T) {
	uc, store := newEngine(t)
	p := seedProduct(t, store, 10)

	_, err := uc.RegisterMovement(context.Background(), inventory.MovementInput{
		ProductID: p.ID,
		Quantity:  0,
		Type:      entity.MovementTypeAjustePositivo,
	})
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "quantity", verr.Field)
}

func TestRegisterMovement_ProductoInexistente(t *testing.T) {
	uc, _ := newEngine(t)

	_, err := uc.RegisterMovement(context.Background(), inventory.MovementInput{
		ProductID: uuid.New().String(),
		Quantity:  5,
		Type:      entity.MovementTypeEntrada,
	})
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRegisterMovement_ProductoInactivoAcepta(t *testing.T) {
	uc, store := newEngine(t)
	p := seedProduct(t, store, 10)
	require.NoError(t, store.Products().SetActive(p.ID, false))

	// Devolución sobre producto desactivado: el historial sigue vivo.
	mov, err := uc.RegisterMovement(context.Background(), inventory.MovementInput{
		ProductID: p.ID,
		Quantity:  2,
		Type:      entity.MovementTypeDevolucion,
	})
	require.NoError(t, err)
	assert.Equal(t, 12, mov.StockAfter)
}

func TestRegisterInitialStock(t *testing.T) {
	uc, store := newEngine(t)
	p := seedProduct(t, store, 0)

	mov, err := uc.RegisterInitialStock(context.Background(), p.ID, 40, "")
	require.NoError(t, err)
	assert.Equal(t, entity.MovementTypeEntrada, mov.Type)
	assert.Equal(t, inventory.NotaStockInicial, mov.Notes)
	assert.Equal(t, 0, mov.StockBefore)
	assert.Equal(t, 40, mov.StockAfter)
}

func TestHistory_OrdenYLimite(t *testing.T) {
	uc, store := newEngine(t)
	p := seedProduct(t, store, 0)

	quantities := []int{10, -3, 7, -2, 5}
	for _, q := range quantities {
		typ := entity.MovementTypeEntrada
		if q < 0 {
			typ = entity.MovementTypeSalida
		}
		_, err := uc.RegisterMovement(context.Background(), inventory.MovementInput{
			ProductID: p.ID,
			Quantity:  q,
			Type:      typ,
		})
		require.NoError(t, err)
	}

	all, err := uc.History(p.ID, 0)
	require.NoError(t, err)
	require.Len(t, all, 5)
	for i, mov := range all {
		assert.Equal(t, quantities[i], mov.Quantity)
	}

	// limit = últimos N preservando orden ascendente.
	last2, err := uc.History(p.ID, 2)
	require.NoError(t, err)
	require.Len(t, last2, 2)
	assert.Equal(t, -2, last2[0].Quantity)
	assert.Equal(t, 5, last2[1].Quantity)
}

func TestRegisterMovement_Concurrencia(t *testing.T) {
	uc, store := newEngine(t)
	p := seedProduct(t, store, 1000)

	const workers = 50
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		q := 1
		typ := entity.MovementTypeEntrada
		if i%2 == 0 {
			q = -1
			typ = entity.MovementTypeSalida
		}
		go func(q int, typ string) {
			defer wg.Done()
			_, err := uc.RegisterMovement(context.Background(), inventory.MovementInput{
				ProductID: p.ID,
				Quantity:  q,
				Type:      typ,
			})
			assert.NoError(t, err)
		}(q, typ)
	}
	wg.Wait()

	updated, err := store.Products().GetByID(p.ID)
	require.NoError(t, err)
	assert.Equal(t, 1000, updated.CurrentStock, "mismo número de entradas y salidas")

	movs, err := store.Movements().ListByProduct(p.ID, 0)
	require.NoError(t, err)
	require.Len(t, movs, workers)

	// La cadena before/after debe ser contigua y sumar al stock final.
	sum := 0
	prev := 1000
	for _, mov := range movs {
		assert.Equal(t, prev, mov.StockBefore)
		assert.Equal(t, mov.StockBefore+mov.Quantity, mov.StockAfter)
		prev = mov.StockAfter
		sum += mov.Quantity
	}
	assert.Equal(t, 1000+sum, updated.CurrentStock)
}
