package store

import (
	"context"
	"fmt"

	"github.com/jhoicas/bione-api/internal/domain"
	"github.com/jhoicas/bione-api/internal/domain/entity"
	"github.com/jhoicas/bione-api/internal/domain/repository"
	"github.com/jhoicas/bione-api/pkg/clock"
	"github.com/jhoicas/bione-api/pkg/logger"
)

// TicketStore colección de chamados ordenada por dataabertura descendente.
type TicketStore struct {
	*EntityStore[entity.Ticket]
	clock clock.Clock
}

// NewTicketStore construye la store. repo nil = modo local con la semilla de ejemplo.
func NewTicketStore(repo repository.TicketRepository, clk clock.Clock, log *logger.Logger, obs Observer) *TicketStore {
	if clk == nil {
		clk = clock.Real()
	}
	opts := Options[entity.Ticket]{
		Name:     "chamados",
		Seed:     SeedTickets(clk.Now()),
		Key:      entity.Ticket.Key,
		WithKey:  func(t entity.Ticket, id int64) entity.Ticket { t.ID = id; return t },
		Clone:    cloneTicket,
		Logger:   log,
		Observer: obs,
	}
	if repo != nil {
		opts.Repo = repo
	}
	return &TicketStore{EntityStore: NewEntityStore(opts), clock: clk}
}

// Add abre un chamado. Si no trae status ni fecha de apertura se completan con Aberto y ahora.
func (s *TicketStore) Add(ctx context.Context, t entity.Ticket) (entity.Ticket, error) {
	if t.Status == "" {
		t.Status = entity.TicketOpen
	}
	if t.OpenedAt.IsZero() {
		t.OpenedAt = s.clock.Now()
	}
	return s.EntityStore.Add(ctx, t)
}

// Close finaliza el chamado con la solución dada. El cierre se publica antes de la llamada
// al backend, con fecha de cierre nunca anterior a la apertura; si el backend falla se revierte.
func (s *TicketStore) Close(ctx context.Context, id int64, solution string) (entity.Ticket, error) {
	t, ok := s.Find(id)
	if !ok {
		return entity.Ticket{}, fmt.Errorf("chamado %d: %w", id, domain.ErrNotFound)
	}
	return s.Update(ctx, id, t.Closed(solution, s.clock.Now()))
}

func cloneTicket(t entity.Ticket) entity.Ticket {
	if t.ClosedAt != nil {
		at := *t.ClosedAt
		t.ClosedAt = &at
	}
	return t
}
