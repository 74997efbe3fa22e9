package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/casavidal/ferreteria-api/internal/application/catalog"
	"github.com/casavidal/ferreteria-api/internal/application/dto"
	"github.com/casavidal/ferreteria-api/internal/application/inventory"
)

// InventoryHandler maneja los movimientos de inventario (protegido).
type InventoryHandler struct {
	productUC *catalog.ProductUseCase
	engineUC  *inventory.RegisterMovementUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(productUC *catalog.ProductUseCase, engineUC *inventory.RegisterMovementUseCase) *InventoryHandler {
	return &InventoryHandler{productUC: productUC, engineUC: engineUC}
}

// RegisterMovement godoc
// @Summary      Registrar movimiento de inventario
// @Description  quantity lleva el signo; stockAfter negativo se rechaza con 409 sin crear movimiento.
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterMovementRequest  true  "productId, type, quantity (con signo), reference, notes"
// @Success      201   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventory/movements [post]
func (h *InventoryHandler) RegisterMovement(c *fiber.Ctx) error {
	var in dto.RegisterMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	resp, err := h.productUC.AdjustStock(c.Context(), in, GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// History godoc
// @Summary      Historial de movimientos de un producto
// @Description  Orden de creación ascendente; con limit devuelve los últimos N.
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        id     path   string  true   "ID del producto"
// @Param        limit  query  int     false  "últimos N movimientos"
// @Success      200  {array}   dto.MovementResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/products/{id}/movements [get]
func (h *InventoryHandler) History(c *fiber.Ctx) error {
	limit, _ := strconv.Atoi(c.Query("limit"))
	movs, err := h.engineUC.History(c.Params("id"), limit)
	if err != nil {
		return respondError(c, err)
	}
	out := make([]*dto.MovementResponse, 0, len(movs))
	for _, m := range movs {
		out = append(out, &dto.MovementResponse{
			ID:          m.ID,
			ProductID:   m.ProductID,
			Type:        m.Type,
			Quantity:    m.Quantity,
			StockBefore: m.StockBefore,
			StockAfter:  m.StockAfter,
			Reference:   m.Reference,
			Notes:       m.Notes,
			CreatedBy:   m.CreatedBy,
			CreatedAt:   m.CreatedAt,
		})
	}
	return c.JSON(out)
}
