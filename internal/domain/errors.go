package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrReferenceNotFound  = errors.New("referencia no encontrada")
	ErrStockNegativo      = errors.New("el stock no puede ser negativo")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
)

// DuplicateError identifica qué clave única colisionó (sku, barcode, document, rif, email).
// errors.Is(err, ErrDuplicate) es verdadero para este tipo.
type DuplicateError struct {
	Field string
	Value string
}

func (e *DuplicateError) Error() string {
	return fmt.Sprintf("ya existe un registro con %s=%q", e.Field, e.Value)
}

func (e *DuplicateError) Is(target error) bool { return target == ErrDuplicate }

// ValidationError identifica el campo que violó una regla de negocio cruzada.
// errors.Is(err, ErrInvalidInput) es verdadero para este tipo.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validación en %s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Is(target error) bool { return target == ErrInvalidInput }

// ReferenceError identifica la entidad referenciada que no existe,
// por ejemplo la categoría o el producto padre de una variante.
// errors.Is(err, ErrReferenceNotFound) es verdadero para este tipo.
type ReferenceError struct {
	Entity string
	ID     string
}

func (e *ReferenceError) Error() string {
	return fmt.Sprintf("%s no encontrado: %s", e.Entity, e.ID)
}

func (e *ReferenceError) Is(target error) bool { return target == ErrReferenceNotFound }
