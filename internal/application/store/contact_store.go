package store

import (
	"context"

	"github.com/jhoicas/bione-api/internal/domain/entity"
	"github.com/jhoicas/bione-api/internal/domain/repository"
	"github.com/jhoicas/bione-api/pkg/clock"
	"github.com/jhoicas/bione-api/pkg/logger"
)

// ContactStore colección de contato_cliente ordenada por data_cadastro descendente.
type ContactStore struct {
	*EntityStore[entity.Contact]
	clock clock.Clock
}

// NewContactStore construye la store. Sin backend empieza vacía.
func NewContactStore(repo repository.ContactRepository, clk clock.Clock, log *logger.Logger, obs Observer) *ContactStore {
	if clk == nil {
		clk = clock.Real()
	}
	opts := Options[entity.Contact]{
		Name:    "contato_cliente",
		Seed:    SeedContacts(),
		Key:     entity.Contact.Key,
		WithKey: func(c entity.Contact, id int64) entity.Contact { c.ID = id; return c },
		Clone: func(c entity.Contact) entity.Contact {
			if c.NextContactOn != nil {
				d := *c.NextContactOn
				c.NextContactOn = &d
			}
			return c
		},
		Logger:   log,
		Observer: obs,
	}
	if repo != nil {
		opts.Repo = repo
	}
	return &ContactStore{EntityStore: NewEntityStore(opts), clock: clk}
}

// Add registra el contacto; sin data_cadastro se usa el día actual.
func (s *ContactStore) Add(ctx context.Context, c entity.Contact) (entity.Contact, error) {
	if c.CreatedOn.IsZero() {
		c.CreatedOn = startOfDay(s.clock.Now())
	}
	return s.EntityStore.Add(ctx, c)
}
