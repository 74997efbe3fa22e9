package repository

import "github.com/casavidal/ferreteria-api/internal/domain/entity"

// InventoryMovementRepository define el puerto para el libro de movimientos.
// Append-only: no existen Update ni Delete; el historial es inmutable.
type InventoryMovementRepository interface {
	Create(m *entity.InventoryMovement) error
	// ListByProduct devuelve los movimientos de un producto en orden de creación
	// ascendente. limit <= 0 devuelve todos.
	ListByProduct(productID string, limit int) ([]*entity.InventoryMovement, error)
	CountByProduct(productID string) (int, error)
}
