package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/bione-api/internal/application/dto"
	"github.com/jhoicas/bione-api/internal/application/views"
	"github.com/jhoicas/bione-api/internal/application/workspace"
)

// ScreenHandler sirve las cinco pantallas ya derivadas. Los filtros de texto de cada
// pantalla son estado del workspace: un PUT los cambia para todos los clientes.
type ScreenHandler struct {
	ws *workspace.Workspace
}

// NewScreenHandler construye el handler.
func NewScreenHandler(ws *workspace.Workspace) *ScreenHandler {
	return &ScreenHandler{ws: ws}
}

// Get devuelve la pantalla pedida.
// GET /api/telas/:tela
//
// Las fechas relativas (histograma, próximos contactos) se recalculan con el reloj
// del servidor en cada petición.
// @Summary      Pantalla derivada
// @Tags         telas
// @Produce      json
// @Param        tela  path  string  true  "overview | chamados | clientes | contatos | financeiro"
// @Success      200   {object}  dto.OverviewResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/telas/{tela} [get]
func (h *ScreenHandler) Get(c *fiber.Ctx) error {
	h.ws.Views.Tick()
	return h.render(c, views.Screen(c.Params("tela")))
}

// SetFilters reemplaza los filtros de texto de la pantalla y la devuelve recalculada.
// PUT /api/telas/:tela/filtros
// @Summary      Cambiar filtros de una pantalla
// @Tags         telas
// @Accept       json
// @Produce      json
// @Param        tela  path  string  true  "chamados | clientes | contatos | financeiro"
// @Success      200   {object}  dto.TicketsScreenResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/telas/{tela}/filtros [put]
func (h *ScreenHandler) SetFilters(c *fiber.Ctx) error {
	v := h.ws.Views
	screen := views.Screen(c.Params("tela"))
	switch screen {
	case views.ScreenTickets:
		var f views.TicketFilters
		if err := c.BodyParser(&f); err != nil {
			return invalidBody(c)
		}
		v.Tickets.Filters.Set(f)
	case views.ScreenCustomers:
		var f views.CustomerFilters
		if err := c.BodyParser(&f); err != nil {
			return invalidBody(c)
		}
		v.Customers.Filters.Set(f)
	case views.ScreenContacts:
		var f views.ContactFilters
		if err := c.BodyParser(&f); err != nil {
			return invalidBody(c)
		}
		v.Contacts.Filters.Set(f)
	case views.ScreenFinancials:
		var f views.FinancialFilters
		if err := c.BodyParser(&f); err != nil {
			return invalidBody(c)
		}
		v.Financials.Filters.Set(f)
	case views.ScreenOverview:
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "la pantalla overview no tiene filtros"})
	}
	return h.render(c, screen)
}

func (h *ScreenHandler) render(c *fiber.Ctx, screen views.Screen) error {
	v := h.ws.Views
	switch screen {
	case views.ScreenOverview:
		return c.JSON(dto.NewOverviewResponse(v.Overview.Summary.Get()))
	case views.ScreenTickets:
		return c.JSON(dto.TicketsScreenResponse{
			Filtros:  v.Tickets.Filters.Get(),
			Abertos:  dto.NewTicketRows(v.Tickets.Open.Get()),
			Fechados: dto.NewTicketRows(v.Tickets.Closed.Get()),
		})
	case views.ScreenCustomers:
		return c.JSON(dto.CustomersScreenResponse{
			Filtros:  v.Customers.Filters.Get(),
			Clientes: dto.NewCustomerList(v.Customers.Rows.Get()),
		})
	case views.ScreenContacts:
		return c.JSON(dto.ContactsScreenResponse{
			Filtros:  v.Contacts.Filters.Get(),
			Contatos: dto.NewContactRows(v.Contacts.Rows.Get()),
			Proximos: dto.NewContactRows(v.Contacts.Upcoming.Get()),
			Resumo:   dto.NewContactSummary(v.Contacts.Summary.Get()),
		})
	case views.ScreenFinancials:
		return c.JSON(dto.FinancialScreenResponse{
			Filtros:     v.Financials.Filters.Get(),
			Lancamentos: dto.NewFinancialRows(v.Financials.Rows.Get()),
			Resumo:      dto.NewFinancialSummary(v.Financials.Summary.Get()),
		})
	}
	return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "pantalla desconocida: " + string(screen)})
}
