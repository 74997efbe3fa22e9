// Package scoring implementa el motor de scoring de clientes: funciones puras
// sobre Client y ClientScoring, sin I/O ni llamadas externas.
package scoring

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/casavidal/ferreteria-api/internal/domain/entity"
)

// InitialScore devuelve la semilla de score al crear un cliente según su categoría:
// VIP 90, REGULAR 65, el resto (NUEVO, MAYORISTA, INACTIVO) 50.
func InitialScore(category string) float64 {
	switch category {
	case entity.ClientCategoryVIP:
		return 90
	case entity.ClientCategoryRegular:
		return 65
	default:
		return 50
	}
}

// InitialChurn devuelve la probabilidad de churn inicial: NUEVO 80, el resto 20.
func InitialChurn(category string) float64 {
	if category == entity.ClientCategoryNuevo {
		return 80
	}
	return 20
}

// AverageTicket calcula totalPurchases / purchaseCount, o cero si no hay compras.
func AverageTicket(totalPurchases decimal.Decimal, purchaseCount int) decimal.Decimal {
	if purchaseCount <= 0 {
		return decimal.Zero
	}
	return totalPurchases.Div(decimal.NewFromInt(int64(purchaseCount)))
}

// NewInitial construye el registro de scoring que acompaña a un cliente recién
// creado. Determinista: mismas entradas, mismo registro (salvo ID y timestamp).
func NewInitial(c *entity.Client) *entity.ClientScoring {
	return &entity.ClientScoring{
		ID:                uuid.New().String(),
		ClientID:          c.ID,
		Score:             InitialScore(c.Category),
		PurchaseFrequency: c.PurchaseCount,
		AverageTicket:     AverageTicket(c.TotalPurchases, c.PurchaseCount),
		LifetimeValue:     c.TotalPurchases,
		ChurnProbability:  InitialChurn(c.Category),
		UpdatedAt:         time.Now(),
	}
}

// Recompute actualiza las métricas derivadas de los agregados del cliente:
// frecuencia, ticket promedio y lifetime value. Score y ChurnProbability se
// dejan intactos; la fórmula de actualización post-creación es un punto de
// extensión pendiente de definir con negocio.
func Recompute(c *entity.Client, s *entity.ClientScoring) {
	s.PurchaseFrequency = c.PurchaseCount
	s.AverageTicket = AverageTicket(c.TotalPurchases, c.PurchaseCount)
	s.LifetimeValue = c.TotalPurchases
	s.UpdatedAt = time.Now()
}
