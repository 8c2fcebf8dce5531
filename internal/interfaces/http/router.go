package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"

	"github.com/jhoicas/bione-api/internal/application/billing"
	"github.com/jhoicas/bione-api/internal/application/dto"
	"github.com/jhoicas/bione-api/internal/application/workspace"
	"github.com/jhoicas/bione-api/internal/infrastructure/metrics"
	"github.com/jhoicas/bione-api/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Workspace *workspace.Workspace
	Statement *billing.StatementUseCase
	Metrics   *metrics.Metrics // nil = sin /metrics
	Logger    *logger.Logger
	Service   string
}

// Router registra middlewares y rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	log := deps.Logger
	if log == nil {
		log = logger.Nop()
	}
	ws := deps.Workspace

	app.Use(RequestID())
	app.Use(Observe(log.Component("http"), deps.Metrics))

	app.Get("/health", func(c *fiber.Ctx) error {
		backend := "postgres"
		if ws.Local() {
			backend = "local"
		}
		return c.JSON(dto.HealthResponse{Status: "ok", Service: deps.Service, Backend: backend})
	})
	if deps.Metrics != nil {
		app.Get("/metrics", adaptor.HTTPHandler(deps.Metrics.Handler()))
	}

	api := app.Group("/api")

	customers := api.Group("/clientes")
	customerHandler := NewCustomerHandler(ws, log)
	customers.Get("/", customerHandler.List)
	customers.Post("/", customerHandler.Create)
	customers.Get("/busca", customerHandler.Search)
	customers.Post("/recarregar", customerHandler.Reload)
	customers.Put("/:id", customerHandler.Update)
	customers.Delete("/:id", customerHandler.Delete)

	tickets := api.Group("/chamados")
	ticketHandler := NewTicketHandler(ws, log)
	tickets.Get("/", ticketHandler.List)
	tickets.Post("/", ticketHandler.Create)
	tickets.Put("/:id", ticketHandler.Update)
	tickets.Post("/:id/finalizar", ticketHandler.Close)
	tickets.Delete("/:id", ticketHandler.Delete)

	contacts := api.Group("/contatos")
	contactHandler := NewContactHandler(ws, log)
	contacts.Get("/", contactHandler.List)
	contacts.Post("/", contactHandler.Create)
	contacts.Put("/:id", contactHandler.Update)
	contacts.Delete("/:id", contactHandler.Delete)

	financials := api.Group("/financeiro")
	financialHandler := NewFinancialHandler(ws, deps.Statement, log)
	financials.Get("/", financialHandler.List)
	financials.Post("/", financialHandler.Create)
	financials.Get("/extrato", financialHandler.Statement)
	financials.Put("/:id", financialHandler.Update)
	financials.Delete("/:id", financialHandler.Delete)

	selection := api.Group("/selecao")
	selectionHandler := NewSelectionHandler(ws)
	selection.Get("/", selectionHandler.Get)
	selection.Put("/", selectionHandler.Set)
	selection.Delete("/", selectionHandler.Clear)

	screens := api.Group("/telas")
	screenHandler := NewScreenHandler(ws)
	screens.Get("/:tela", screenHandler.Get)
	screens.Put("/:tela/filtros", screenHandler.SetFilters)
}
