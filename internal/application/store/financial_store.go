package store

import (
	"context"

	"github.com/jhoicas/bione-api/internal/domain/entity"
	"github.com/jhoicas/bione-api/internal/domain/repository"
	"github.com/jhoicas/bione-api/pkg/clock"
	"github.com/jhoicas/bione-api/pkg/logger"
)

// FinancialStore colección de lanzamientos financieros ordenada por data_cadastro descendente.
type FinancialStore struct {
	*EntityStore[entity.Financial]
	clock clock.Clock
}

// NewFinancialStore construye la store. Sin backend empieza vacía.
func NewFinancialStore(repo repository.FinancialRepository, clk clock.Clock, log *logger.Logger, obs Observer) *FinancialStore {
	if clk == nil {
		clk = clock.Real()
	}
	opts := Options[entity.Financial]{
		Name:    "financeiro",
		Seed:    SeedFinancials(),
		Key:     entity.Financial.Key,
		WithKey: func(f entity.Financial, id int64) entity.Financial { f.ID = id; return f },
		Clone: func(f entity.Financial) entity.Financial {
			if f.DueOn != nil {
				d := *f.DueOn
				f.DueOn = &d
			}
			return f
		},
		Logger:   log,
		Observer: obs,
	}
	if repo != nil {
		opts.Repo = repo
	}
	return &FinancialStore{EntityStore: NewEntityStore(opts), clock: clk}
}

// Add registra el lanzamiento; sin data_cadastro se usa el día actual y sin status, Pendente.
func (s *FinancialStore) Add(ctx context.Context, f entity.Financial) (entity.Financial, error) {
	if f.CreatedOn.IsZero() {
		f.CreatedOn = startOfDay(s.clock.Now())
	}
	if f.Status == "" {
		f.Status = entity.FinancialPending
	}
	return s.EntityStore.Add(ctx, f)
}
