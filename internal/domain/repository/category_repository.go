package repository

import "github.com/casavidal/ferreteria-api/internal/domain/entity"

// CategoryRepository define el puerto para las categorías (dato de referencia).
type CategoryRepository interface {
	// UpsertByName crea la categoría si el nombre no existe; si ya existe la
	// devuelve sin modificarla. Atómico respecto a la constraint única para
	// que re-ejecutar el seed nunca duplique filas.
	UpsertByName(name, icon string) (*entity.Category, error)
	GetByID(id string) (*entity.Category, error)
	ListActive() ([]*entity.Category, error)
}
