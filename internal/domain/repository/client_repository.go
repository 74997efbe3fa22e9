package repository

import (
	"github.com/shopspring/decimal"

	"github.com/casavidal/ferreteria-api/internal/domain/entity"
)

// ClientFilter filtros para listados de clientes.
type ClientFilter struct {
	Search     string // busca en nombres, razón social, email y teléfono
	Category   string
	ClientType string
	IsActive   *bool // nil = todos
	Limit      int
	Offset     int
}

// ClientStats agregados de clientes para el dashboard.
type ClientStats struct {
	Total       int
	Nuevos      int
	VIP         int
	Mayoristas  int
	Inactivos   int
	TotalVentas decimal.Decimal
}

// ClientRepository define el puerto de persistencia para Client.
// Las unicidades de documento y RIF aplican sobre clientes activos e inactivos.
type ClientRepository interface {
	Create(client *entity.Client) error
	GetByID(id string) (*entity.Client, error)
	GetByDocument(document string) (*entity.Client, error)
	GetByRIF(rif string) (*entity.Client, error)
	// Update persiste cambios de campos; nunca toca el scoring.
	Update(client *entity.Client) error
	SetActive(id string, active bool) error
	// AddLoyaltyPoints incrementa el balance de puntos de forma atómica.
	AddLoyaltyPoints(id string, points int) error
	List(f ClientFilter) ([]*entity.Client, int, error)
	ListVIP(limit int) ([]*entity.Client, error)
	ListTopScoring(limit int) ([]*entity.Client, error)
	// ListChurnRisk devuelve clientes activos con churnProbability >= threshold,
	// ordenados de mayor a menor riesgo.
	ListChurnRisk(threshold float64) ([]*entity.Client, error)
	Stats() (*ClientStats, error)
}
