package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/bione-api/internal/application/dto"
	"github.com/jhoicas/bione-api/internal/application/forms"
	"github.com/jhoicas/bione-api/internal/application/workspace"
	"github.com/jhoicas/bione-api/internal/domain"
	"github.com/jhoicas/bione-api/internal/domain/entity"
	"github.com/jhoicas/bione-api/pkg/logger"
)

// ContactHandler maneja las peticiones HTTP de contato_cliente.
type ContactHandler struct {
	ws  *workspace.Workspace
	log *logger.Logger
}

// NewContactHandler construye el handler.
func NewContactHandler(ws *workspace.Workspace, log *logger.Logger) *ContactHandler {
	return &ContactHandler{ws: ws, log: log}
}

// List GET /api/contatos
// @Summary      Listar contactos
// @Tags         contatos
// @Produce      json
// @Success      200  {array}  dto.ContactResponse
// @Router       /api/contatos [get]
func (h *ContactHandler) List(c *fiber.Ctx) error {
	names := customerNames(h.ws)
	items := h.ws.Contacts.Items()
	out := make([]dto.ContactResponse, 0, len(items))
	for _, ct := range items {
		out = append(out, dto.NewContactResponse(ct, names[ct.CustomerID]))
	}
	return c.JSON(out)
}

// Create POST /api/contatos
// @Summary      Registrar contacto
// @Tags         contatos
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ContactRequest  true  "Datos del contacto"
// @Success      201   {object}  dto.ContactResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/contatos [post]
func (h *ContactHandler) Create(c *fiber.Ctx) error {
	var in dto.ContactRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	form := forms.NewContactForm(h.ws.Contacts, h.ws.Selection, h.log)
	defer form.Close()
	if err := fillContact(form, in); err != nil {
		return writeError(c, err)
	}
	created, err := form.Submit(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewContactResponse(created, customerNames(h.ws)[created.CustomerID]))
}

// Update PUT /api/contatos/:id
// @Summary      Editar contacto
// @Tags         contatos
// @Accept       json
// @Produce      json
// @Param        id    path  int                 true  "idcontato"
// @Param        body  body  dto.ContactRequest  true  "Datos del contacto"
// @Success      200   {object}  dto.ContactResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/contatos/{id} [put]
func (h *ContactHandler) Update(c *fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return invalidID(c)
	}
	var in dto.ContactRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	form := forms.NewContactForm(h.ws.Contacts, h.ws.Selection, h.log)
	defer form.Close()
	if !form.StartEdit(id) {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "contato no encontrado"})
	}
	if err := fillContact(form, in); err != nil {
		return writeError(c, err)
	}
	updated, err := form.Submit(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.NewContactResponse(updated, customerNames(h.ws)[updated.CustomerID]))
}

// Delete DELETE /api/contatos/:id
// @Summary      Eliminar contacto
// @Tags         contatos
// @Param        id   path  int  true  "idcontato"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/contatos/{id} [delete]
func (h *ContactHandler) Delete(c *fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return invalidID(c)
	}
	if err := h.ws.Contacts.Remove(c.Context(), id); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func fillContact(form *forms.ContactForm, in dto.ContactRequest) error {
	next, err := dto.ParseOptionalDate(in.DataProximoContato)
	if err != nil {
		return &domain.ValidationError{Field: "data_proximo_contato", Message: "use YYYY-MM-DD"}
	}
	form.Edit(func(d forms.ContactDraft) forms.ContactDraft {
		if in.Tipo != "" {
			d.Type = entity.ContactType(in.Tipo)
		}
		d.Subject = in.Assunto
		d.Description = in.Descricao
		d.Responsible = in.Responsavel
		d.NextContactOn = next
		d.Notes = in.Observacoes
		return d
	})
	if in.CustomerID != nil {
		form.PickCustomer(in.CustomerID)
	}
	return nil
}
