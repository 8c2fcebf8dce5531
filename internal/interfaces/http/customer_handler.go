package http

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/bione-api/internal/application/autocomplete"
	"github.com/jhoicas/bione-api/internal/application/dto"
	"github.com/jhoicas/bione-api/internal/application/forms"
	"github.com/jhoicas/bione-api/internal/application/workspace"
	"github.com/jhoicas/bione-api/pkg/logger"
)

// CustomerHandler maneja las peticiones HTTP de clientes.
type CustomerHandler struct {
	ws  *workspace.Workspace
	log *logger.Logger
}

// NewCustomerHandler construye el handler.
func NewCustomerHandler(ws *workspace.Workspace, log *logger.Logger) *CustomerHandler {
	return &CustomerHandler{ws: ws, log: log}
}

// List GET /api/clientes
// @Summary      Listar clientes
// @Tags         clientes
// @Produce      json
// @Success      200  {array}  dto.CustomerResponse
// @Router       /api/clientes [get]
func (h *CustomerHandler) List(c *fiber.Ctx) error {
	return c.JSON(dto.NewCustomerList(h.ws.Customers.Items()))
}

// Create POST /api/clientes
// @Summary      Crear cliente
// @Tags         clientes
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CustomerRequest  true  "Datos del cliente"
// @Success      201   {object}  dto.CustomerResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      502   {object}  dto.ErrorResponse
// @Router       /api/clientes [post]
func (h *CustomerHandler) Create(c *fiber.Ctx) error {
	var in dto.CustomerRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	form := forms.NewCustomerForm(h.ws.Customers, nil, h.log)
	defer form.Close()
	form.Edit(func(forms.CustomerDraft) forms.CustomerDraft { return customerDraft(in) })

	created, err := form.Submit(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewCustomerResponse(created))
}

// Update PUT /api/clientes/:id
// @Summary      Actualizar cliente (los teléfonos se reemplazan)
// @Tags         clientes
// @Accept       json
// @Produce      json
// @Param        id    path  int                  true  "idcliente"
// @Param        body  body  dto.CustomerRequest  true  "Datos del cliente"
// @Success      200   {object}  dto.CustomerResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/clientes/{id} [put]
func (h *CustomerHandler) Update(c *fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return invalidID(c)
	}
	var in dto.CustomerRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	form := forms.NewCustomerForm(h.ws.Customers, nil, h.log)
	defer form.Close()
	if !form.StartEdit(id) {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "cliente no encontrado"})
	}
	form.Edit(func(forms.CustomerDraft) forms.CustomerDraft { return customerDraft(in) })

	updated, err := form.Submit(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.NewCustomerResponse(updated))
}

// Delete DELETE /api/clientes/:id
// @Summary      Eliminar cliente y sus teléfonos
// @Tags         clientes
// @Param        id   path  int  true  "idcliente"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/clientes/{id} [delete]
func (h *CustomerHandler) Delete(c *fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return invalidID(c)
	}
	if err := h.ws.Customers.Remove(c.Context(), id); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Reload POST /api/clientes/recarregar
// @Summary      Recargar clientes desde el backend
// @Tags         clientes
// @Produce      json
// @Success      200  {array}   dto.CustomerResponse
// @Failure      502  {object}  dto.ErrorResponse
// @Router       /api/clientes/recarregar [post]
func (h *CustomerHandler) Reload(c *fiber.Ctx) error {
	if err := h.ws.Customers.Load(c.Context()); err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.NewCustomerList(h.ws.Customers.Items()))
}

// Search GET /api/clientes/busca?q=acme&selecionar=true
// Con selecionar=true una coincidencia exacta pasa a ser la selección global.
// @Summary      Autocompletado de cliente
// @Tags         clientes
// @Produce      json
// @Param        q           query  string  false  "razão social, fantasia o CNPJ/CPF"
// @Param        selecionar  query  bool    false  "aplicar la resolución a la selección global"
// @Success      200  {object}  dto.AutocompleteResponse
// @Router       /api/clientes/busca [get]
func (h *CustomerHandler) Search(c *fiber.Ctx) error {
	apply, _ := strconv.ParseBool(c.Query("selecionar", "false"))
	opts := autocomplete.Options{Logger: h.log}
	if apply {
		opts.OnResolve = func(id *int64) {
			if err := h.ws.SelectCustomer(id); err != nil {
				h.log.Warn().Err(err).Msg("selección desde la búsqueda")
			}
		}
	}
	r := autocomplete.New(h.ws.Customers, opts)
	defer r.Close()
	r.Type(c.Query("q"))

	st := r.State()
	return c.JSON(dto.AutocompleteResponse{
		Fase:       string(st.Phase),
		Texto:      st.Query,
		Candidatos: dto.NewCustomerList(st.Candidates),
		CustomerID: st.SelectedID,
		Dropdown:   st.Dropdown,
	})
}

func customerDraft(in dto.CustomerRequest) forms.CustomerDraft {
	d := forms.CustomerDraft{
		LegalName: in.Razao,
		TradeName: in.Fantasia,
		TaxID:     strings.TrimSpace(in.CPCN),
		Email:     in.Email,
		Notes:     in.Observacoes,
	}
	for _, p := range in.Telefones {
		d.Phones = append(d.Phones, forms.PhoneDraft{Phone: p.Telefone, Responsible: p.Responsavel, Email: p.Email})
	}
	return d
}
