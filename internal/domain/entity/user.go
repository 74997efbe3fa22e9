package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin    = "ADMIN"
	RoleVendedor = "VENDEDOR"
)

// User representa un usuario del sistema; su ID viaja como actor (CreatedBy)
// en los movimientos de inventario.
type User struct {
	ID           string
	Email        string // único
	PasswordHash string // bcrypt, nunca plano en dominio después de persistir
	FirstName    string
	LastName     string
	Role         string // ADMIN, VENDEDOR
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
