package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/casavidal/ferreteria-api/internal/application/catalog"
	"github.com/casavidal/ferreteria-api/internal/application/dto"
)

// ClientHandler maneja las peticiones HTTP de clientes y scoring (protegido).
type ClientHandler struct {
	uc *catalog.ClientUseCase
}

// NewClientHandler construye el handler.
func NewClientHandler(uc *catalog.ClientUseCase) *ClientHandler {
	return &ClientHandler{uc: uc}
}

// Create godoc
// @Summary      Crear cliente
// @Description  Crea el cliente y su scoring inicial en la misma transacción.
// @Tags         clients
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateClientRequest  true  "clientType, identidad, contacto, categoría"
// @Success      201   {object}  dto.ClientResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/clients [post]
func (h *ClientHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateClientRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	resp, err := h.uc.Create(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// List godoc
// @Summary      Listar clientes
// @Tags         clients
// @Security     Bearer
// @Produce      json
// @Param        search      query  string  false  "búsqueda por nombre, razón social, email, teléfono (ignora acentos)"
// @Param        category    query  string  false  "NUEVO, REGULAR, VIP, MAYORISTA, INACTIVO"
// @Param        clientType  query  string  false  "NATURAL o JURIDICO"
// @Param        page        query  int     false  "página (1)"
// @Param        limit       query  int     false  "tamaño de página (10, máx 100)"
// @Success      200  {object}  dto.ClientListResponse
// @Router       /api/clients [get]
func (h *ClientHandler) List(c *fiber.Ctx) error {
	var in dto.ClientFilterRequest
	if err := c.QueryParser(&in); err != nil {
		return badBody(c)
	}
	resp, err := h.uc.List(in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}

// GetByID godoc
// @Summary      Obtener cliente por ID (con scoring)
// @Tags         clients
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del cliente"
// @Success      200  {object}  dto.ClientResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/clients/{id} [get]
func (h *ClientHandler) GetByID(c *fiber.Ctx) error {
	resp, err := h.uc.GetByID(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}

// Update godoc
// @Summary      Actualizar cliente
// @Description  Campos de identidad y contacto; el scoring nunca se modifica por esta vía.
// @Tags         clients
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                   true  "ID del cliente"
// @Param        body  body  dto.UpdateClientRequest  true  "campos a actualizar"
// @Success      200   {object}  dto.ClientResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/clients/{id} [put]
func (h *ClientHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateClientRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	resp, err := h.uc.Update(c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}

// Delete godoc
// @Summary      Desactivar cliente (soft delete)
// @Tags         clients
// @Security     Bearer
// @Param        id  path  string  true  "ID del cliente"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/clients/{id} [delete]
func (h *ClientHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.SoftDelete(c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// AddLoyaltyPoints godoc
// @Summary      Sumar puntos de lealtad
// @Tags         clients
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                    true  "ID del cliente"
// @Param        body  body  dto.LoyaltyPointsRequest  true  "points"
// @Success      200   {object}  dto.ClientResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/clients/{id}/loyalty-points [post]
func (h *ClientHandler) AddLoyaltyPoints(c *fiber.Ctx) error {
	var in dto.LoyaltyPointsRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	resp, err := h.uc.AddLoyaltyPoints(c.Params("id"), in.Points)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}

// ListVIP godoc
// @Summary      Clientes VIP
// @Tags         clients
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.ClientResponse
// @Router       /api/clients/vip [get]
func (h *ClientHandler) ListVIP(c *fiber.Ctx) error {
	resp, err := h.uc.ListVIP()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}

// ListTopScoring godoc
// @Summary      Clientes con mayor score
// @Tags         clients
// @Security     Bearer
// @Produce      json
// @Param        limit  query  int  false  "cantidad (10)"
// @Success      200  {array}  dto.ClientResponse
// @Router       /api/clients/top-scoring [get]
func (h *ClientHandler) ListTopScoring(c *fiber.Ctx) error {
	limit, _ := strconv.Atoi(c.Query("limit"))
	resp, err := h.uc.ListTopScoring(limit)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}

// ListChurnRisk godoc
// @Summary      Clientes en riesgo de fuga
// @Description  churnProbability >= threshold (70 por defecto), de mayor a menor riesgo.
// @Tags         clients
// @Security     Bearer
// @Produce      json
// @Param        threshold  query  number  false  "umbral de churn (70)"
// @Success      200  {array}  dto.ClientResponse
// @Router       /api/clients/churn-risk [get]
func (h *ClientHandler) ListChurnRisk(c *fiber.Ctx) error {
	threshold, _ := strconv.ParseFloat(c.Query("threshold"), 64)
	resp, err := h.uc.ListChurnRisk(threshold)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}

// Stats godoc
// @Summary      Agregados de clientes
// @Tags         clients
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.ClientStatsResponse
// @Router       /api/clients/stats [get]
func (h *ClientHandler) Stats(c *fiber.Ctx) error {
	resp, err := h.uc.Stats()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}
