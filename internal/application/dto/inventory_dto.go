package dto

import "time"

// RegisterMovementRequest ajuste manual de stock vía API.
// Quantity lleva el signo; el tipo es solo clasificación.
type RegisterMovementRequest struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
	Type      string `json:"type"` // ENTRADA, SALIDA, AJUSTE_POSITIVO, AJUSTE_NEGATIVO, DEVOLUCION
	Reference string `json:"reference"`
	Notes     string `json:"notes"`
}

// MovementResponse representación HTTP de un movimiento de inventario.
type MovementResponse struct {
	ID          string    `json:"id"`
	ProductID   string    `json:"productId"`
	Type        string    `json:"type"`
	Quantity    int       `json:"quantity"`
	StockBefore int       `json:"stockBefore"`
	StockAfter  int       `json:"stockAfter"`
	Reference   string    `json:"reference,omitempty"`
	Notes       string    `json:"notes,omitempty"`
	CreatedBy   string    `json:"createdBy,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}
