package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/casavidal/ferreteria-api/internal/domain"
	"github.com/casavidal/ferreteria-api/internal/domain/entity"
	"github.com/casavidal/ferreteria-api/internal/domain/repository"
)

// NotaStockInicial es la nota del movimiento ENTRADA que establece el stock
// inicial de un producto recién creado.
const NotaStockInicial = "Stock inicial"

// RegisterMovementUseCase aplica un delta de stock a un producto produciendo
// exactamente un movimiento inmutable por llamada exitosa. Llamadas
// concurrentes sobre el mismo producto se serializan; la cadena
// stockBefore/stockAfter nunca se corrompe.
type RegisterMovementUseCase struct {
	txRunner    TxRunner
	productRepo repository.ProductRepository
	movRepo     repository.InventoryMovementRepository
}

// NewRegisterMovementUseCase construye el motor de movimientos. movRepo se usa
// solo para lecturas de historial; las escrituras pasan por el TxRunner.
func NewRegisterMovementUseCase(txRunner TxRunner, productRepo repository.ProductRepository, movRepo repository.InventoryMovementRepository) *RegisterMovementUseCase {
	return &RegisterMovementUseCase{txRunner: txRunner, productRepo: productRepo, movRepo: movRepo}
}

// MovementInput entrada para registrar un movimiento.
// Quantity lleva el signo; el motor nunca lo infiere del tipo.
type MovementInput struct {
	ProductID string
	Quantity  int
	Type      string
	Reference string
	Notes     string
	CreatedBy string // UserID opcional (actor autenticado)
}

// RegisterMovement valida la entrada, abre la sección exclusiva del producto,
// lee stockBefore, calcula stockAfter y persiste nuevo stock + movimiento de
// forma atómica. Si stockAfter quedaría negativo aborta con ErrStockNegativo
// sin crear movimiento ni mutar stock.
func (uc *RegisterMovementUseCase) RegisterMovement(ctx context.Context, in MovementInput) (*entity.InventoryMovement, error) {
	if !entity.ValidMovementType(in.Type) {
		return nil, &domain.ValidationError{Field: "type", Reason: "tipo de movimiento desconocido: " + in.Type}
	}
	if in.Quantity == 0 {
		return nil, &domain.ValidationError{Field: "quantity", Reason: "la cantidad no puede ser cero"}
	}

	// Pre-chequeo de existencia fuera de la transacción (optimización; el
	// GetForUpdate dentro de la tx es la autoridad final). El producto puede
	// estar inactivo: su historial sigue vivo.
	product, err := uc.productRepo.GetByID(in.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}

	var mov *entity.InventoryMovement
	err = uc.txRunner.Run(ctx, in.ProductID, func(
		productRepo repository.ProductRepository,
		movRepo repository.InventoryMovementRepository,
	) error {
		locked, err := productRepo.GetForUpdate(in.ProductID)
		if err != nil {
			return err
		}
		if locked == nil {
			return domain.ErrNotFound
		}
		stockBefore := locked.CurrentStock
		stockAfter := stockBefore + in.Quantity
		if stockAfter < 0 {
			return domain.ErrStockNegativo
		}
		if err := productRepo.UpdateStock(in.ProductID, stockAfter); err != nil {
			return err
		}
		mov = &entity.InventoryMovement{
			ID:          uuid.New().String(),
			ProductID:   in.ProductID,
			Type:        in.Type,
			Quantity:    in.Quantity,
			StockBefore: stockBefore,
			StockAfter:  stockAfter,
			Reference:   in.Reference,
			Notes:       in.Notes,
			CreatedBy:   in.CreatedBy,
			CreatedAt:   time.Now(),
		}
		return movRepo.Create(mov)
	})
	if err != nil {
		return nil, err
	}
	return mov, nil
}

// RegisterInitialStock registra el movimiento ENTRADA que establece el stock
// inicial de un producto recién creado (stockBefore 0). Lo invoca el
// supervisor de catálogo; pasa por el mismo camino que cualquier movimiento.
func (uc *RegisterMovementUseCase) RegisterInitialStock(ctx context.Context, productID string, quantity int, createdBy string) (*entity.InventoryMovement, error) {
	return uc.RegisterMovement(ctx, MovementInput{
		ProductID: productID,
		Quantity:  quantity,
		Type:      entity.MovementTypeEntrada,
		Notes:     NotaStockInicial,
		CreatedBy: createdBy,
	})
}

// History devuelve los movimientos de un producto en orden de creación
// ascendente (limit <= 0 devuelve todos).
func (uc *RegisterMovementUseCase) History(productID string, limit int) ([]*entity.InventoryMovement, error) {
	product, err := uc.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	return uc.movRepo.ListByProduct(productID, limit)
}
