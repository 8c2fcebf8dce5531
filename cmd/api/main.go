package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/bione-api/internal/application/billing"
	"github.com/jhoicas/bione-api/internal/bootstrap"
	"github.com/jhoicas/bione-api/internal/infrastructure/metrics"
	infrapdf "github.com/jhoicas/bione-api/internal/infrastructure/pdf"
	httpRouter "github.com/jhoicas/bione-api/internal/interfaces/http"
	"github.com/jhoicas/bione-api/pkg/clock"
	"github.com/jhoicas/bione-api/pkg/config"
	"github.com/jhoicas/bione-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Bool("backend", cfg.Backend.Enabled).
		Msg("iniciando aplicación")

	var m *metrics.Metrics
	if cfg.Metrics.Enabled {
		m = metrics.New(nil, cfg.Metrics.Prefix)
	}

	ctx := context.Background()
	ws, cleanup := bootstrap.Workspace(ctx, cfg, log, m)
	defer cleanup()

	// PDF: extracto financiero por cliente
	pdfGenerator := infrapdf.NewMarotoPDFGenerator()
	statementUC := billing.NewStatementUseCase(ws.Customers, ws.Financials, pdfGenerator, clock.Real(), cfg.UI.StatementTitle)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "BI One API",
	}))

	httpRouter.Router(app, httpRouter.RouterDeps{
		Workspace: ws,
		Statement: statementUC,
		Metrics:   m,
		Logger:    log,
		Service:   cfg.App.Name,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
