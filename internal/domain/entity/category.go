package entity

import "time"

// Category representa una categoría de productos (dato de referencia, nombre único).
type Category struct {
	ID        string
	Name      string // único
	Icon      string
	IsActive  bool
	CreatedAt time.Time
}
