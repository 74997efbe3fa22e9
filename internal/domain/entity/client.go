package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de cliente.
const (
	ClientTypeNatural  = "NATURAL"
	ClientTypeJuridico = "JURIDICO"
)

// Categorías de cliente (segmentación gruesa que alimenta el scoring inicial).
const (
	ClientCategoryNuevo     = "NUEVO"
	ClientCategoryRegular   = "REGULAR"
	ClientCategoryVIP       = "VIP"
	ClientCategoryMayorista = "MAYORISTA"
	ClientCategoryInactivo  = "INACTIVO"
)

// ValidClientType verifica que el tipo sea NATURAL o JURIDICO.
func ValidClientType(t string) bool {
	return t == ClientTypeNatural || t == ClientTypeJuridico
}

// ValidClientCategory verifica que la categoría sea una de las conocidas.
func ValidClientCategory(c string) bool {
	switch c {
	case ClientCategoryNuevo, ClientCategoryRegular, ClientCategoryVIP,
		ClientCategoryMayorista, ClientCategoryInactivo:
		return true
	}
	return false
}

// Client representa un cliente de la ferretería. Persona natural (cédula) o
// jurídica (RIF); cada identidad es única globalmente cuando está presente.
type Client struct {
	ID             string
	ClientType     string // NATURAL | JURIDICO
	FirstName      string // requerido si NATURAL
	LastName       string // requerido si NATURAL
	CompanyName    string // requerido si JURIDICO
	Document       string // cédula, único si no está vacío
	RIF            string // único si no está vacío
	Email          string
	Phone          string
	Address        string
	City           string
	State          string
	Category       string // NUEVO, REGULAR, VIP, MAYORISTA, INACTIVO
	Notes          string
	LoyaltyPoints  int
	TotalPurchases decimal.Decimal
	PurchaseCount  int
	LastPurchaseAt *time.Time
	IsActive       bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// DisplayName devuelve el nombre visible según el tipo de cliente.
func (c *Client) DisplayName() string {
	if c.ClientType == ClientTypeJuridico {
		return c.CompanyName
	}
	return c.FirstName + " " + c.LastName
}
