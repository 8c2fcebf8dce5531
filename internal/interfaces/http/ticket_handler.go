package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/bione-api/internal/application/dto"
	"github.com/jhoicas/bione-api/internal/application/forms"
	"github.com/jhoicas/bione-api/internal/application/workspace"
	"github.com/jhoicas/bione-api/pkg/logger"
)

// TicketHandler maneja las peticiones HTTP de chamados.
type TicketHandler struct {
	ws  *workspace.Workspace
	log *logger.Logger
}

// NewTicketHandler construye el handler.
func NewTicketHandler(ws *workspace.Workspace, log *logger.Logger) *TicketHandler {
	return &TicketHandler{ws: ws, log: log}
}

// List GET /api/chamados
// @Summary      Listar chamados (más recientes primero)
// @Tags         chamados
// @Produce      json
// @Success      200  {array}  dto.TicketResponse
// @Router       /api/chamados [get]
func (h *TicketHandler) List(c *fiber.Ctx) error {
	names := customerNames(h.ws)
	items := h.ws.Tickets.Items()
	out := make([]dto.TicketResponse, 0, len(items))
	for _, t := range items {
		out = append(out, dto.NewTicketResponse(t, names[t.CustomerID]))
	}
	return c.JSON(out)
}

// Create POST /api/chamados
// Sin idcliente se usa el cliente seleccionado globalmente.
// @Summary      Abrir chamado
// @Tags         chamados
// @Accept       json
// @Produce      json
// @Param        body  body  dto.TicketRequest  true  "Datos del chamado"
// @Success      201   {object}  dto.TicketResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      502   {object}  dto.ErrorResponse
// @Router       /api/chamados [post]
func (h *TicketHandler) Create(c *fiber.Ctx) error {
	var in dto.TicketRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	form := forms.NewTicketForm(h.ws.Tickets, h.ws.Selection, h.log)
	defer form.Close()
	fillTicket(form, in)

	created, err := form.Submit(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewTicketResponse(created, customerNames(h.ws)[created.CustomerID]))
}

// Update PUT /api/chamados/:id
// @Summary      Editar chamado
// @Tags         chamados
// @Accept       json
// @Produce      json
// @Param        id    path  int                true  "idchamado"
// @Param        body  body  dto.TicketRequest  true  "Datos del chamado"
// @Success      200   {object}  dto.TicketResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/chamados/{id} [put]
func (h *TicketHandler) Update(c *fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return invalidID(c)
	}
	var in dto.TicketRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	form := forms.NewTicketForm(h.ws.Tickets, h.ws.Selection, h.log)
	defer form.Close()
	if !form.StartEdit(id) {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "chamado no encontrado"})
	}
	fillTicket(form, in)

	updated, err := form.Submit(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.NewTicketResponse(updated, customerNames(h.ws)[updated.CustomerID]))
}

// Close POST /api/chamados/:id/finalizar
// El cierre se publica antes de la respuesta del backend y se revierte si falla.
// @Summary      Finalizar chamado
// @Tags         chamados
// @Accept       json
// @Produce      json
// @Param        id    path  int                     true  "idchamado"
// @Param        body  body  dto.CloseTicketRequest  true  "Solución"
// @Success      200   {object}  dto.TicketResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      502   {object}  dto.ErrorResponse
// @Router       /api/chamados/{id}/finalizar [post]
func (h *TicketHandler) Close(c *fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return invalidID(c)
	}
	var in dto.CloseTicketRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	closed, err := h.ws.TicketForm.Finalize(c.Context(), id, in.Solucao)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.NewTicketResponse(closed, customerNames(h.ws)[closed.CustomerID]))
}

// Delete DELETE /api/chamados/:id
// @Summary      Eliminar chamado
// @Tags         chamados
// @Param        id   path  int  true  "idchamado"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/chamados/{id} [delete]
func (h *TicketHandler) Delete(c *fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return invalidID(c)
	}
	if err := h.ws.Tickets.Remove(c.Context(), id); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func fillTicket(form *forms.TicketForm, in dto.TicketRequest) {
	form.Edit(func(d forms.TicketDraft) forms.TicketDraft {
		d.Title = in.Titulo
		d.Description = in.Descricao
		d.Category = in.Tipo
		return d
	})
	if in.CustomerID != nil {
		form.PickCustomer(in.CustomerID)
	}
}

func customerNames(ws *workspace.Workspace) map[int64]string {
	list := ws.Customers.Items()
	out := make(map[int64]string, len(list))
	for _, c := range list {
		out[c.ID] = c.DisplayName()
	}
	return out
}
