package views

import (
	"github.com/jhoicas/bione-api/internal/application/reactive"
	"github.com/jhoicas/bione-api/internal/domain/entity"
)

// TicketFilters filtros de texto de la pantalla de chamados.
type TicketFilters struct {
	Customer string `json:"cliente"`
	Category string `json:"tipo"`
}

// TicketRow chamado con el nombre del cliente resuelto.
type TicketRow struct {
	entity.Ticket
	CustomerName string
}

// TicketsView pantalla de chamados: lista filtrada y su partición en abiertos y cerrados.
type TicketsView struct {
	Filters *reactive.Value[TicketFilters]
	Rows    *reactive.Derived[[]TicketRow]
	Open    *reactive.Derived[[]TicketRow]
	Closed  *reactive.Derived[[]TicketRow]
}

// NewTicketsView construye la vista.
func NewTicketsView(src Sources) *TicketsView {
	v := &TicketsView{Filters: reactive.NewValue(TicketFilters{})}
	v.Rows = reactive.Derive(func() []TicketRow {
		return FilterTickets(src.Tickets.Items(), src.Customers.Items(), src.Selection.Get(), v.Filters.Get())
	}, src.Tickets, src.Customers, src.Selection, v.Filters)
	v.Open = reactive.Derive(func() []TicketRow { return byStatus(v.Rows.Get(), entity.TicketOpen) }, v.Rows)
	v.Closed = reactive.Derive(func() []TicketRow { return byStatus(v.Rows.Get(), entity.TicketClosed) }, v.Rows)
	return v
}

// Close desconecta la vista.
func (v *TicketsView) Close() { closeAll(v.Closed, v.Open, v.Rows) }

// FilterTickets aplica selección y filtros. El filtro de tipo se aplica siempre;
// el de cliente solo cuando no hay selección.
func FilterTickets(tickets []entity.Ticket, customers []entity.Customer, sel *entity.Customer, f TicketFilters) []TicketRow {
	names := customerNames(customers)
	out := make([]TicketRow, 0, len(tickets))
	for _, t := range tickets {
		name := nameOf(names, t.CustomerID)
		if !matchCustomer(sel, f.Customer, name, t.CustomerID) {
			continue
		}
		if !Contains(t.Category, f.Category) {
			continue
		}
		out = append(out, TicketRow{Ticket: t, CustomerName: name})
	}
	return out
}

func byStatus(rows []TicketRow, status entity.TicketStatus) []TicketRow {
	out := make([]TicketRow, 0, len(rows))
	for _, r := range rows {
		if r.Status == status {
			out = append(out, r)
		}
	}
	return out
}
