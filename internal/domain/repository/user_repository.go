package repository

import "github.com/casavidal/ferreteria-api/internal/domain/entity"

// UserRepository define el puerto de persistencia para User.
type UserRepository interface {
	Create(user *entity.User) error
	GetByID(id string) (*entity.User, error)
	GetByEmail(email string) (*entity.User, error)
	// UpsertByEmail crea el usuario si el email no existe; si ya existe lo
	// devuelve sin modificarlo (seed idempotente).
	UpsertByEmail(user *entity.User) (*entity.User, error)
}
