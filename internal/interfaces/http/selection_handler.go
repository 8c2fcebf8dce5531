package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/bione-api/internal/application/dto"
	"github.com/jhoicas/bione-api/internal/application/workspace"
)

// SelectionHandler expone la selección global de cliente.
type SelectionHandler struct {
	ws *workspace.Workspace
}

// NewSelectionHandler construye el handler.
func NewSelectionHandler(ws *workspace.Workspace) *SelectionHandler {
	return &SelectionHandler{ws: ws}
}

// Get GET /api/selecao
// @Summary      Cliente seleccionado
// @Tags         selecao
// @Produce      json
// @Success      200  {object}  dto.SelectionResponse
// @Router       /api/selecao [get]
func (h *SelectionHandler) Get(c *fiber.Ctx) error {
	return c.JSON(dto.NewSelectionResponse(h.ws.Selection.Get()))
}

// Set PUT /api/selecao
// Un idcliente nulo limpia la selección.
// @Summary      Seleccionar cliente
// @Tags         selecao
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SelectionRequest  true  "idcliente"
// @Success      200   {object}  dto.SelectionResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/selecao [put]
func (h *SelectionHandler) Set(c *fiber.Ctx) error {
	var in dto.SelectionRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if err := h.ws.SelectCustomer(in.CustomerID); err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.NewSelectionResponse(h.ws.Selection.Get()))
}

// Clear DELETE /api/selecao
// @Summary      Limpiar selección
// @Tags         selecao
// @Success      204
// @Router       /api/selecao [delete]
func (h *SelectionHandler) Clear(c *fiber.Ctx) error {
	h.ws.Selection.Clear()
	return c.SendStatus(fiber.StatusNoContent)
}
