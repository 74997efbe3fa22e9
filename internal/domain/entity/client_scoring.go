package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// ClientScoring métricas de salud de la relación con un cliente (1 a 1 con Client).
// Existe si y solo si existe su cliente; se crea en la misma transacción.
// AverageTicket y LifetimeValue siempre se recalculan desde los agregados del
// cliente y nunca divergen de ellos.
type ClientScoring struct {
	ID                  string
	ClientID            string
	Score               float64 // 0-100
	PurchaseFrequency   int     // espejo de Client.PurchaseCount
	AverageTicket       decimal.Decimal
	LifetimeValue       decimal.Decimal
	ChurnProbability    float64 // 0-100
	RecommendedProducts []string
	UpdatedAt           time.Time
}
