// Package bootstrap arma el workspace a partir de la configuración: conecta con
// PostgreSQL si el backend está habilitado y, si no puede, arranca en modo local.
package bootstrap

import (
	"context"

	"github.com/jhoicas/bione-api/internal/application/workspace"
	"github.com/jhoicas/bione-api/internal/infrastructure/metrics"
	"github.com/jhoicas/bione-api/internal/infrastructure/postgres"
	"github.com/jhoicas/bione-api/pkg/clock"
	"github.com/jhoicas/bione-api/pkg/config"
	"github.com/jhoicas/bione-api/pkg/logger"
)

// Workspace construye y carga el workspace. cleanup cierra el workspace y el pool.
// Los fallos de carga no son fatales: cada store ya aplicó su fallback.
func Workspace(ctx context.Context, cfg *config.Config, log *logger.Logger, m *metrics.Metrics) (ws *workspace.Workspace, cleanup func()) {
	opts := workspace.Options{
		Clock:     clock.Real(),
		Logger:    log,
		Observer:  m,
		BlurDelay: cfg.UI.BlurDelay,
	}

	closePool := func() {}
	if cfg.Backend.Enabled {
		pool, err := postgres.NewPool(ctx, cfg.DB, cfg.Backend.ConnectTimeout)
		if err != nil {
			log.Warn().Err(err).Msg("PostgreSQL no disponible; se arranca en modo local")
		} else {
			closePool = pool.Close
			repos := postgres.NewRepositories(pool, m)
			opts.Repos = &workspace.Repositories{
				Tickets:    repos.Tickets,
				Customers:  repos.Customers,
				Contacts:   repos.Contacts,
				Financials: repos.Financials,
			}
		}
	} else {
		log.Info().Msg("backend deshabilitado; modo local")
	}

	ws = workspace.New(opts)
	_ = ws.LoadAll(ctx)

	return ws, func() {
		ws.Close()
		closePool()
	}
}
