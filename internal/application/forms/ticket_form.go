package forms

import (
	"context"
	"fmt"
	"strings"

	"github.com/jhoicas/bione-api/internal/application/store"
	"github.com/jhoicas/bione-api/internal/domain"
	"github.com/jhoicas/bione-api/internal/domain/entity"
	"github.com/jhoicas/bione-api/pkg/logger"
)

// TicketDraft campos editables de un chamado.
type TicketDraft struct {
	Title       string
	Description string
	Category    string
	CustomerID  *int64
}

// TicketWriter operaciones de la store de chamados que usa el formulario.
type TicketWriter interface {
	Writer[entity.Ticket]
	Close(ctx context.Context, id int64, solution string) (entity.Ticket, error)
}

// TicketForm formulario de apertura y edición de chamados, más la finalización.
type TicketForm struct {
	*Form[TicketDraft, entity.Ticket]
	tickets TicketWriter
}

// NewTicketForm construye el formulario; el cliente del borrador sigue la selección global.
func NewTicketForm(tickets TicketWriter, sel *store.Selection, log *logger.Logger) *TicketForm {
	def := definition[TicketDraft, entity.Ticket]{
		name:     "chamado",
		empty:    func() TicketDraft { return TicketDraft{} },
		validate: validateTicket,
		build: func(d TicketDraft) entity.Ticket {
			return entity.Ticket{
				Title:       strings.TrimSpace(d.Title),
				Description: strings.TrimSpace(d.Description),
				Category:    strings.TrimSpace(d.Category),
				CustomerID:  *d.CustomerID,
				Status:      entity.TicketOpen,
			}
		},
		merge: func(t entity.Ticket, d TicketDraft) entity.Ticket {
			t.Title = strings.TrimSpace(d.Title)
			t.Description = strings.TrimSpace(d.Description)
			t.Category = strings.TrimSpace(d.Category)
			t.CustomerID = *d.CustomerID
			return t
		},
		load: func(t entity.Ticket) TicketDraft {
			id := t.CustomerID
			return TicketDraft{Title: t.Title, Description: t.Description, Category: t.Category, CustomerID: &id}
		},
		customer: func(d TicketDraft) *int64 { return d.CustomerID },
		withCust: func(d TicketDraft, id *int64) TicketDraft { d.CustomerID = id; return d },
	}
	f := &TicketForm{Form: newForm[TicketDraft, entity.Ticket](def, tickets, sel, log), tickets: tickets}
	f.followSelection()
	return f
}

func validateTicket(d TicketDraft) error {
	if blank(d.Title) {
		return domain.Required("titulo")
	}
	if blank(d.Description) {
		return domain.Required("descricao")
	}
	if d.CustomerID == nil {
		return domain.Required("idcliente")
	}
	return nil
}

// Finalize cierra el chamado id con la solución. La solución es obligatoria.
func (f *TicketForm) Finalize(ctx context.Context, id int64, solution string) (entity.Ticket, error) {
	solution = strings.TrimSpace(solution)
	if solution == "" {
		return entity.Ticket{}, domain.Required("solucao")
	}
	t, err := f.tickets.Close(ctx, id, solution)
	if err != nil {
		return entity.Ticket{}, fmt.Errorf("finalizar chamado %d: %w", id, err)
	}
	return t, nil
}
