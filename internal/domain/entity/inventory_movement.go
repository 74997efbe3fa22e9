package entity

import "time"

// Tipos de movimiento de inventario. El signo de la cantidad lo aporta el
// llamador; el tipo es solo clasificación para auditoría.
const (
	MovementTypeEntrada        = "ENTRADA"
	MovementTypeSalida         = "SALIDA"
	MovementTypeAjustePositivo = "AJUSTE_POSITIVO"
	MovementTypeAjusteNegativo = "AJUSTE_NEGATIVO"
	MovementTypeDevolucion     = "DEVOLUCION"
)

// ValidMovementType verifica que el tipo sea uno de los conocidos.
func ValidMovementType(t string) bool {
	switch t {
	case MovementTypeEntrada, MovementTypeSalida, MovementTypeAjustePositivo,
		MovementTypeAjusteNegativo, MovementTypeDevolucion:
		return true
	}
	return false
}

// InventoryMovement es una entrada inmutable del libro de inventario.
// Invariantes: StockAfter = StockBefore + Quantity, y el StockBefore del
// movimiento n coincide con el StockAfter del n-1 del mismo producto
// (0 para el primero). Nunca se actualiza ni se borra.
type InventoryMovement struct {
	ID          string
	ProductID   string
	Type        string
	Quantity    int // con signo: positivo entrada, negativo salida
	StockBefore int
	StockAfter  int
	Reference   string // factura, orden, nota de ajuste, etc.
	Notes       string
	CreatedBy   string // UserID opcional
	CreatedAt   time.Time
}
