package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateClientRequest datos para crear un cliente.
// Document puede venir armado o en partes (docPrefix + docNumber + docCheck);
// las partes tienen prioridad y los guiones se eliminan.
type CreateClientRequest struct {
	ClientType  string `json:"clientType"`
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	CompanyName string `json:"companyName"`
	Document    string `json:"document"`
	DocPrefix   string `json:"docPrefix"`
	DocNumber   string `json:"docNumber"`
	DocCheck    string `json:"docCheck"`
	RIF         string `json:"rif"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	Address     string `json:"address"`
	City        string `json:"city"`
	State       string `json:"state"`
	Category    string `json:"category"`
	Notes       string `json:"notes"`
}

// UpdateClientRequest campos opcionales para actualizar un cliente.
// Nunca toca stock ni scoring.
type UpdateClientRequest struct {
	FirstName   *string `json:"firstName"`
	LastName    *string `json:"lastName"`
	CompanyName *string `json:"companyName"`
	Document    *string `json:"document"`
	DocPrefix   *string `json:"docPrefix"`
	DocNumber   *string `json:"docNumber"`
	DocCheck    *string `json:"docCheck"`
	RIF         *string `json:"rif"`
	Email       *string `json:"email"`
	Phone       *string `json:"phone"`
	Address     *string `json:"address"`
	City        *string `json:"city"`
	State       *string `json:"state"`
	Category    *string `json:"category"`
	Notes       *string `json:"notes"`
	IsActive    *bool   `json:"isActive"`
}

// ClientFilterRequest filtros de listado de clientes.
type ClientFilterRequest struct {
	PageRequest
	Search     string `query:"search"`
	Category   string `query:"category"`
	ClientType string `query:"clientType"`
	IsActive   *bool  `query:"isActive"`
}

// ScoringResponse métricas de scoring de un cliente.
type ScoringResponse struct {
	Score               float64         `json:"score"`
	PurchaseFrequency   int             `json:"purchaseFrequency"`
	AverageTicket       decimal.Decimal `json:"averageTicket"`
	LifetimeValue       decimal.Decimal `json:"lifetimeValue"`
	ChurnProbability    float64         `json:"churnProbability"`
	RecommendedProducts []string        `json:"recommendedProducts,omitempty"`
}

// ClientResponse representación HTTP de un cliente con su scoring.
type ClientResponse struct {
	ID             string           `json:"id"`
	ClientType     string           `json:"clientType"`
	FirstName      string           `json:"firstName,omitempty"`
	LastName       string           `json:"lastName,omitempty"`
	CompanyName    string           `json:"companyName,omitempty"`
	Document       string           `json:"document,omitempty"`
	RIF            string           `json:"rif,omitempty"`
	Email          string           `json:"email,omitempty"`
	Phone          string           `json:"phone"`
	Address        string           `json:"address"`
	City           string           `json:"city,omitempty"`
	State          string           `json:"state,omitempty"`
	Category       string           `json:"category"`
	Notes          string           `json:"notes,omitempty"`
	LoyaltyPoints  int              `json:"loyaltyPoints"`
	TotalPurchases decimal.Decimal  `json:"totalPurchases"`
	PurchaseCount  int              `json:"purchaseCount"`
	LastPurchaseAt *time.Time       `json:"lastPurchaseAt,omitempty"`
	IsActive       bool             `json:"isActive"`
	Scoring        *ScoringResponse `json:"scoring,omitempty"`
	CreatedAt      time.Time        `json:"createdAt"`
}

// ClientListResponse listado paginado de clientes.
type ClientListResponse struct {
	Clients    []*ClientResponse `json:"clients"`
	Pagination Pagination        `json:"pagination"`
}

// ClientStatsResponse agregados de clientes.
type ClientStatsResponse struct {
	Total       int             `json:"total"`
	Nuevos      int             `json:"nuevos"`
	VIP         int             `json:"vip"`
	Mayoristas  int             `json:"mayoristas"`
	Inactivos   int             `json:"inactivos"`
	TotalVentas decimal.Decimal `json:"totalVentas"`
}

// LoyaltyPointsRequest incremento de puntos de lealtad.
type LoyaltyPointsRequest struct {
	Points int `json:"points"`
}
