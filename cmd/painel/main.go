// painel es la consola de terminal del panel BI One: las mismas pantallas que la API
// sobre el mismo workspace, con el campo de cliente alimentando la selección global.
//
// Los logs van a un archivo (--log-file) para no romper la pantalla alternativa.
package main

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/pflag"

	"github.com/jhoicas/bione-api/internal/bootstrap"
	"github.com/jhoicas/bione-api/internal/interfaces/tui"
	"github.com/jhoicas/bione-api/pkg/config"
	"github.com/jhoicas/bione-api/pkg/logger"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var (
		local    bool
		logFile  string
		logLevel string
	)
	flagSet := pflag.NewFlagSet("painel", pflag.ContinueOnError)
	flagSet.BoolVar(&local, "local", false, "trabajar en memoria aunque BACKEND_ENABLED sea true")
	flagSet.StringVar(&logFile, "log-file", "painel.log", "archivo de log")
	flagSet.StringVar(&logLevel, "log-level", "", "nivel de log (por defecto LOG_LEVEL)")
	flagSet.BoolP("help", "h", false, "mostrar ayuda")

	if err := flagSet.Parse(os.Args[1:]); err != nil {
		if err == pflag.ErrHelp {
			printHelp(flagSet)
			return nil
		}
		return err
	}
	if help, _ := flagSet.GetBool("help"); help {
		printHelp(flagSet)
		return nil
	}
	if args := flagSet.Args(); len(args) > 0 {
		return fmt.Errorf("argumento inesperado: %s", args[0])
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("cargar configuración: %w", err)
	}
	if local {
		cfg.Backend.Enabled = false
	}
	if logLevel == "" {
		logLevel = cfg.App.LogLevel
	}

	out, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("abrir log %s: %w", logFile, err)
	}
	defer out.Close()
	log := logger.New(logger.Config{Env: "production", Level: logLevel, Out: out})

	ws, cleanup := bootstrap.Workspace(context.Background(), cfg, log, nil)
	defer cleanup()

	model := tui.NewModel(ws, log)
	defer model.Stop()

	program := tea.NewProgram(model, tea.WithAltScreen())
	_, err = program.Run()
	return err
}

func printHelp(flagSet *pflag.FlagSet) {
	fmt.Fprintf(os.Stderr, `painel: consola de terminal del panel BI One.

Usa la misma configuración que la API (DATABASE_URL, DB_*, BACKEND_ENABLED, UI_BLUR_DELAY_MS).
Si PostgreSQL no responde arranca en modo local con datos de ejemplo.

Uso:
  painel [flags]

Flags:
`)
	flagSet.SetOutput(os.Stderr)
	flagSet.PrintDefaults()
}
