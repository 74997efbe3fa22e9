package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/casavidal/ferreteria-api/internal/application/dto"
	"github.com/casavidal/ferreteria-api/internal/domain/repository"
)

// CategoryHandler maneja el listado y alta de categorías (protegido).
type CategoryHandler struct {
	repo repository.CategoryRepository
}

// NewCategoryHandler construye el handler.
func NewCategoryHandler(repo repository.CategoryRepository) *CategoryHandler {
	return &CategoryHandler{repo: repo}
}

type upsertCategoryRequest struct {
	Name string `json:"name"`
	Icon string `json:"icon"`
}

// List godoc
// @Summary      Listar categorías activas
// @Tags         categories
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.CategoryResponse
// @Router       /api/categories [get]
func (h *CategoryHandler) List(c *fiber.Ctx) error {
	categories, err := h.repo.ListActive()
	if err != nil {
		return respondError(c, err)
	}
	out := make([]*dto.CategoryResponse, 0, len(categories))
	for _, cat := range categories {
		out = append(out, &dto.CategoryResponse{ID: cat.ID, Name: cat.Name, Icon: cat.Icon})
	}
	return c.JSON(out)
}

// Upsert godoc
// @Summary      Crear categoría (idempotente por nombre)
// @Tags         categories
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  upsertCategoryRequest  true  "name, icon"
// @Success      200   {object}  dto.CategoryResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/categories [post]
func (h *CategoryHandler) Upsert(c *fiber.Ctx) error {
	var in upsertCategoryRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if in.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code: "VALIDATION", Message: "name requerido", Field: "name",
		})
	}
	cat, err := h.repo.UpsertByName(in.Name, in.Icon)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(&dto.CategoryResponse{ID: cat.ID, Name: cat.Name, Icon: cat.Icon})
}
