package scoring_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/casavidal/ferreteria-api/internal/domain/entity"
	"github.com/casavidal/ferreteria-api/internal/domain/scoring"
)

// TestInitialScore_PorCategoria valida las semillas por categoría:
// VIP 90, REGULAR 65, todo lo demás 50.
func TestInitialScore_PorCategoria(t *testing.T) {
	assert.Equal(t, float64(90), scoring.InitialScore(entity.ClientCategoryVIP))
	assert.Equal(t, float64(65), scoring.InitialScore(entity.ClientCategoryRegular))
	assert.Equal(t, float64(50), scoring.InitialScore(entity.ClientCategoryNuevo))
	assert.Equal(t, float64(50), scoring.InitialScore(entity.ClientCategoryMayorista))
	assert.Equal(t, float64(50), scoring.InitialScore(entity.ClientCategoryInactivo))
}

// TestInitialChurn_PorCategoria valida churn inicial: NUEVO 80, el resto 20.
func TestInitialChurn_PorCategoria(t *testing.T) {
	assert.Equal(t, float64(80), scoring.InitialChurn(entity.ClientCategoryNuevo))
	assert.Equal(t, float64(20), scoring.InitialChurn(entity.ClientCategoryVIP))
	assert.Equal(t, float64(20), scoring.InitialChurn(entity.ClientCategoryRegular))
	assert.Equal(t, float64(20), scoring.InitialChurn(entity.ClientCategoryMayorista))
}

// TestAverageTicket_SinCompras un cliente sin compras tiene ticket promedio cero,
// nunca división por cero.
func TestAverageTicket_SinCompras(t *testing.T) {
	got := scoring.AverageTicket(decimal.Zero, 0)
	assert.True(t, got.IsZero())
}

// TestAverageTicket_ConCompras ticket promedio = total / cantidad de compras.
func TestAverageTicket_ConCompras(t *testing.T) {
	got := scoring.AverageTicket(decimal.NewFromInt(15000), 25)
	assert.True(t, got.Equal(decimal.NewFromInt(600)), "15000 / 25 debe ser 600, fue %s", got)
}

// TestNewInitial_ClienteVIP el registro inicial de un VIP con historial refleja
// exactamente sus agregados: score 90, churn 20, avg = total/count.
func TestNewInitial_ClienteVIP(t *testing.T) {
	c := &entity.Client{
		ID:             "cli-1",
		Category:       entity.ClientCategoryVIP,
		TotalPurchases: decimal.NewFromInt(15000),
		PurchaseCount:  25,
	}
	s := scoring.NewInitial(c)
	require.NotNil(t, s)
	assert.Equal(t, "cli-1", s.ClientID)
	assert.Equal(t, float64(90), s.Score)
	assert.Equal(t, float64(20), s.ChurnProbability)
	assert.Equal(t, 25, s.PurchaseFrequency)
	assert.True(t, s.AverageTicket.Equal(decimal.NewFromInt(600)))
	assert.True(t, s.LifetimeValue.Equal(decimal.NewFromInt(15000)))
}

// TestNewInitial_ClienteNuevo un cliente NUEVO sin historial arranca con
// score 50, churn 80 y métricas en cero.
func TestNewInitial_ClienteNuevo(t *testing.T) {
	c := &entity.Client{ID: "cli-2", Category: entity.ClientCategoryNuevo}
	s := scoring.NewInitial(c)
	assert.Equal(t, float64(50), s.Score)
	assert.Equal(t, float64(80), s.ChurnProbability)
	assert.Equal(t, 0, s.PurchaseFrequency)
	assert.True(t, s.AverageTicket.IsZero())
	assert.True(t, s.LifetimeValue.IsZero())
}

// TestRecompute_ActualizaDerivadasSinTocarScore Recompute sincroniza frecuencia,
// ticket promedio y lifetime value con los agregados del cliente, pero no toca
// score ni churn (punto de extensión).
func TestRecompute_ActualizaDerivadasSinTocarScore(t *testing.T) {
	c := &entity.Client{
		ID:             "cli-3",
		Category:       entity.ClientCategoryRegular,
		TotalPurchases: decimal.NewFromInt(3500),
		PurchaseCount:  8,
	}
	s := scoring.NewInitial(c)

	c.TotalPurchases = decimal.NewFromInt(4200)
	c.PurchaseCount = 10
	scoring.Recompute(c, s)

	assert.Equal(t, 10, s.PurchaseFrequency)
	assert.True(t, s.AverageTicket.Equal(decimal.NewFromInt(420)))
	assert.True(t, s.LifetimeValue.Equal(decimal.NewFromInt(4200)))
	assert.Equal(t, float64(65), s.Score, "Recompute no debe alterar el score")
	assert.Equal(t, float64(20), s.ChurnProbability, "Recompute no debe alterar el churn")
}
