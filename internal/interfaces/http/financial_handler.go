package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/bione-api/internal/application/billing"
	"github.com/jhoicas/bione-api/internal/application/dto"
	"github.com/jhoicas/bione-api/internal/application/forms"
	"github.com/jhoicas/bione-api/internal/application/workspace"
	"github.com/jhoicas/bione-api/internal/domain"
	"github.com/jhoicas/bione-api/internal/domain/entity"
	"github.com/jhoicas/bione-api/pkg/logger"
)

// FinancialHandler maneja las peticiones HTTP de financeiro y el extracto en PDF.
type FinancialHandler struct {
	ws        *workspace.Workspace
	statement *billing.StatementUseCase
	log       *logger.Logger
}

// NewFinancialHandler construye el handler.
func NewFinancialHandler(ws *workspace.Workspace, statement *billing.StatementUseCase, log *logger.Logger) *FinancialHandler {
	return &FinancialHandler{ws: ws, statement: statement, log: log}
}

// List GET /api/financeiro
// @Summary      Listar lanzamientos
// @Tags         financeiro
// @Produce      json
// @Success      200  {array}  dto.FinancialResponse
// @Router       /api/financeiro [get]
func (h *FinancialHandler) List(c *fiber.Ctx) error {
	names := customerNames(h.ws)
	items := h.ws.Financials.Items()
	out := make([]dto.FinancialResponse, 0, len(items))
	for _, f := range items {
		out = append(out, dto.NewFinancialResponse(f, names[f.CustomerID]))
	}
	return c.JSON(out)
}

// Create POST /api/financeiro
// @Summary      Registrar lanzamiento
// @Tags         financeiro
// @Accept       json
// @Produce      json
// @Param        body  body  dto.FinancialRequest  true  "Datos del lanzamiento"
// @Success      201   {object}  dto.FinancialResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/financeiro [post]
func (h *FinancialHandler) Create(c *fiber.Ctx) error {
	var in dto.FinancialRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	form := forms.NewFinancialForm(h.ws.Financials, h.ws.Selection, h.log)
	defer form.Close()
	if err := fillFinancial(form, in); err != nil {
		return writeError(c, err)
	}
	created, err := form.Submit(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewFinancialResponse(created, customerNames(h.ws)[created.CustomerID]))
}

// Update PUT /api/financeiro/:id
// @Summary      Editar lanzamiento
// @Tags         financeiro
// @Accept       json
// @Produce      json
// @Param        id    path  int                   true  "idfinanceiro"
// @Param        body  body  dto.FinancialRequest  true  "Datos del lanzamiento"
// @Success      200   {object}  dto.FinancialResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/financeiro/{id} [put]
func (h *FinancialHandler) Update(c *fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return invalidID(c)
	}
	var in dto.FinancialRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	form := forms.NewFinancialForm(h.ws.Financials, h.ws.Selection, h.log)
	defer form.Close()
	if !form.StartEdit(id) {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "lançamento no encontrado"})
	}
	if err := fillFinancial(form, in); err != nil {
		return writeError(c, err)
	}
	updated, err := form.Submit(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.NewFinancialResponse(updated, customerNames(h.ws)[updated.CustomerID]))
}

// Delete DELETE /api/financeiro/:id
// @Summary      Eliminar lanzamiento
// @Tags         financeiro
// @Param        id   path  int  true  "idfinanceiro"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/financeiro/{id} [delete]
func (h *FinancialHandler) Delete(c *fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return invalidID(c)
	}
	if err := h.ws.Financials.Remove(c.Context(), id); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Statement descarga el extracto financiero en PDF.
// GET /api/financeiro/extrato?idcliente=1
// Sin idcliente se usa el cliente seleccionado globalmente.
// @Summary      Extracto financiero del cliente (PDF)
// @Tags         financeiro
// @Produce      application/pdf
// @Param        idcliente  query  int  false  "Cliente; por defecto la selección global"
// @Success      200  {file}    binary
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/financeiro/extrato [get]
func (h *FinancialHandler) Statement(c *fiber.Ctx) error {
	var customerID *int64
	if raw := c.Query("idcliente"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "idcliente inválido", Field: "idcliente"})
		}
		customerID = &id
	} else if id, ok := h.ws.Selection.ID(); ok {
		customerID = &id
	}

	pdfBytes, filename, err := h.statement.DownloadStatementPDF(c.Context(), customerID)
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(pdfBytes)
}

func fillFinancial(form *forms.FinancialForm, in dto.FinancialRequest) error {
	due, err := dto.ParseOptionalDate(in.Vencimento)
	if err != nil {
		return &domain.ValidationError{Field: "vencimento", Message: "use YYYY-MM-DD"}
	}
	form.Edit(func(d forms.FinancialDraft) forms.FinancialDraft {
		d.Description = in.Descricao
		d.Amount = string(in.Valor)
		if in.Tipo != "" {
			d.Kind = entity.FinancialKind(in.Tipo)
		}
		if in.Status != "" {
			d.Status = entity.FinancialStatus(in.Status)
		}
		d.DueOn = due
		d.Notes = in.Observacoes
		return d
	})
	if in.CustomerID != nil {
		form.PickCustomer(in.CustomerID)
	}
	return nil
}
