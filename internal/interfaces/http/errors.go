package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/casavidal/ferreteria-api/internal/application/dto"
	"github.com/casavidal/ferreteria-api/internal/domain"
)

// respondError traduce un error de dominio a código HTTP + cuerpo uniforme.
// Los errores tipados aportan el campo que colisionó o falló validación.
func respondError(c *fiber.Ctx, err error) error {
	var dup *domain.DuplicateError
	if errors.As(err, &dup) {
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
			Code: "DUPLICATE", Message: err.Error(), Field: dup.Field,
		})
	}
	var val *domain.ValidationError
	if errors.As(err, &val) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code: "VALIDATION", Message: err.Error(), Field: val.Field,
		})
	}
	var ref *domain.ReferenceError
	if errors.As(err, &ref) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code: "REFERENCE_NOT_FOUND", Message: err.Error(),
		})
	}
	switch {
	case errors.Is(err, domain.ErrStockNegativo):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
			Code: "NEGATIVE_STOCK", Message: err.Error(),
		})
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrUserNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Code: "NOT_FOUND", Message: err.Error(),
		})
	case errors.Is(err, domain.ErrDuplicate), errors.Is(err, domain.ErrEmailAlreadyExists):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
			Code: "DUPLICATE", Message: err.Error(),
		})
	case errors.Is(err, domain.ErrInvalidInput), errors.Is(err, domain.ErrReferenceNotFound):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code: "VALIDATION", Message: err.Error(),
		})
	case errors.Is(err, domain.ErrUnauthorized):
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Code: "UNAUTHORIZED", Message: err.Error(),
		})
	case errors.Is(err, domain.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
			Code: "FORBIDDEN", Message: err.Error(),
		})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
		Code: "INTERNAL", Message: err.Error(),
	})
}

func badBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
		Code: "INVALID_BODY", Message: "cuerpo inválido",
	})
}
