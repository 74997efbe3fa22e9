package inventory

import (
	"context"

	"github.com/casavidal/ferreteria-api/internal/domain/repository"
)

// TxRunner ejecuta fn dentro de la sección exclusiva del producto indicado,
// pasando repositorios atados a esa transacción. Garantiza atomicidad del
// motor de movimientos: o se escriben stock y movimiento juntos, o ninguno.
//
// En PostgreSQL la exclusión la da el bloqueo de fila (SELECT FOR UPDATE)
// dentro de la transacción; en memoria, un mutex por producto. Ajustes sobre
// productos distintos corren en paralelo.
type TxRunner interface {
	Run(ctx context.Context, productID string, fn func(
		productRepo repository.ProductRepository,
		movRepo repository.InventoryMovementRepository,
	) error) error
}
