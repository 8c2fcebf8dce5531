package views_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/bione-api/internal/application/store"
	"github.com/jhoicas/bione-api/internal/application/views"
	"github.com/jhoicas/bione-api/internal/domain/entity"
	"github.com/jhoicas/bione-api/pkg/clock"
)

var now = time.Date(2025, 3, 14, 15, 0, 0, 0, time.UTC)

type fixture struct {
	clk        *clock.Fake
	sel        *store.Selection
	tickets    *store.TicketStore
	customers  *store.CustomerStore
	contacts   *store.ContactStore
	financials *store.FinancialStore
	views      *views.Views
	acme, beta entity.Customer
}

func ptrTime(t time.Time) *time.Time { return &t }

// newFixture arma stores locales con datos conocidos:
// clientes 1 (semilla), 2 Acme Corp, 3 Beta Serviços;
// chamados 1 (semilla, cliente 1), 2 (Acme, abierto), 3 (Beta, cerrado 4h), 4 (Acme, cerrado 2h, hace 10 días).
func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	f := &fixture{clk: clock.NewFake(now), sel: store.NewSelection()}
	f.tickets = store.NewTicketStore(nil, f.clk, nil, nil)
	f.customers = store.NewCustomerStore(nil, nil, nil)
	f.contacts = store.NewContactStore(nil, f.clk, nil, nil)
	f.financials = store.NewFinancialStore(nil, f.clk, nil, nil)
	for _, l := range []interface{ Load(context.Context) error }{f.tickets, f.customers, f.contacts, f.financials} {
		require.NoError(t, l.Load(ctx))
	}

	var err error
	f.acme, err = f.customers.Add(ctx, entity.Customer{LegalName: "Acme Corp", TradeName: "Acme", Active: true})
	require.NoError(t, err)
	f.beta, err = f.customers.Add(ctx, entity.Customer{LegalName: "Beta Serviços", Active: true})
	require.NoError(t, err)

	addTicket := func(tk entity.Ticket) {
		_, err := f.tickets.Add(ctx, tk)
		require.NoError(t, err)
	}
	addTicket(entity.Ticket{Title: "Sem rede", Description: "x", CustomerID: f.acme.ID, Category: "Rede", OpenedAt: now.AddDate(0, 0, -1)})
	opened3 := now.AddDate(0, 0, -2)
	addTicket(entity.Ticket{Title: "Switch", Description: "x", CustomerID: f.beta.ID, Category: "Rede", OpenedAt: opened3,
		Status: entity.TicketClosed, ClosedAt: ptrTime(opened3.Add(4 * time.Hour))})
	opened4 := now.AddDate(0, 0, -10)
	addTicket(entity.Ticket{Title: "Toner", Description: "x", CustomerID: f.acme.ID, Category: "Impressora", OpenedAt: opened4,
		Status: entity.TicketClosed, ClosedAt: ptrTime(opened4.Add(2 * time.Hour))})

	_, err = f.contacts.Add(ctx, entity.Contact{CustomerID: f.acme.ID, Type: entity.ContactSupport, Subject: "Visita técnica",
		Responsible: "Ana", NextContactOn: ptrTime(time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC)), Active: true})
	require.NoError(t, err)
	_, err = f.contacts.Add(ctx, entity.Contact{CustomerID: f.beta.ID, Type: entity.ContactCommercial, Subject: "Proposta",
		NextContactOn: ptrTime(time.Date(2025, 3, 13, 0, 0, 0, 0, time.UTC)), Active: true})
	require.NoError(t, err)

	addFin := func(fin entity.Financial) {
		_, err := f.financials.Add(ctx, fin)
		require.NoError(t, err)
	}
	addFin(entity.Financial{CustomerID: f.acme.ID, Description: "Mensalidade", Amount: decimal.NewFromInt(1000), Kind: entity.FinancialRevenue, Status: entity.FinancialPaid})
	addFin(entity.Financial{CustomerID: f.acme.ID, Description: "Visita", Amount: decimal.NewFromInt(300), Kind: entity.FinancialExpense, Status: entity.FinancialPaid})
	addFin(entity.Financial{CustomerID: f.beta.ID, Description: "Projeto", Amount: decimal.NewFromInt(500), Kind: entity.FinancialRevenue})

	f.views = views.New(views.Sources{
		Selection: f.sel, Tickets: f.tickets, Customers: f.customers,
		Contacts: f.contacts, Financials: f.financials, Clock: f.clk,
	})
	t.Cleanup(f.views.Close)
	return f
}

func ticketIDs(rows []views.TicketRow) []int64 {
	out := make([]int64, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.ID)
	}
	return out
}

// ─── selección ───────────────────────────────────────────────────────────────

func TestSeleccion_PropagaATodasLasVistas(t *testing.T) {
	f := newFixture(t)
	require.Len(t, f.views.Tickets.Rows.Get(), 4)

	f.sel.Set(&f.acme)

	assert.ElementsMatch(t, []int64{2, 4}, ticketIDs(f.views.Tickets.Rows.Get()))
	require.Len(t, f.views.Customers.Rows.Get(), 1)
	assert.Equal(t, f.acme.ID, f.views.Customers.Rows.Get()[0].ID)
	require.Len(t, f.views.Contacts.Rows.Get(), 1)
	assert.Equal(t, "Visita técnica", f.views.Contacts.Rows.Get()[0].Subject)
	assert.Len(t, f.views.Financials.Rows.Get(), 2)

	o := f.views.Overview.Summary.Get()
	assert.Equal(t, 2, o.TicketsTotal)
	assert.Equal(t, 1, o.TicketsOpen)
	assert.Equal(t, 1, o.TicketsClosed)
	assert.Equal(t, 3, o.CustomersTotal, "el total de clientes no depende de la selección")
	assert.True(t, o.Balance.Equal(decimal.NewFromInt(700)))
	assert.Equal(t, 1, o.ContactsTotal)
}

func TestSeleccion_AnulaFiltroDeClienteYLimpiarRestaura(t *testing.T) {
	f := newFixture(t)
	f.views.Tickets.Filters.Set(views.TicketFilters{Customer: "ACME"})
	assert.ElementsMatch(t, []int64{2, 4}, ticketIDs(f.views.Tickets.Rows.Get()))

	f.sel.Set(&f.beta)
	assert.Equal(t, []int64{3}, ticketIDs(f.views.Tickets.Rows.Get()), "la selección manda sobre el texto")

	f.sel.Clear()
	assert.ElementsMatch(t, []int64{2, 4}, ticketIDs(f.views.Tickets.Rows.Get()))
}

func TestSeleccion_FiltroDeTipoSigueAplicando(t *testing.T) {
	f := newFixture(t)
	f.sel.Set(&f.acme)
	f.views.Tickets.Filters.Set(views.TicketFilters{Category: "impress"})
	assert.Equal(t, []int64{4}, ticketIDs(f.views.Tickets.Rows.Get()))
}

// ─── chamados ────────────────────────────────────────────────────────────────

func TestTickets_CierreMueveDeAbiertosACerrados(t *testing.T) {
	f := newFixture(t)
	assert.Contains(t, ticketIDs(f.views.Tickets.Open.Get()), int64(2))

	_, err := f.tickets.Close(context.Background(), 2, "cabo trocado")
	require.NoError(t, err)

	assert.NotContains(t, ticketIDs(f.views.Tickets.Open.Get()), int64(2))
	assert.Contains(t, ticketIDs(f.views.Tickets.Closed.Get()), int64(2))
	assert.InDelta(t, (4.0+2.0+24.0)/3, f.views.Overview.Summary.Get().AvgResolutionHours, 1e-9)
}

func TestTickets_NombreDeCliente(t *testing.T) {
	f := newFixture(t)
	for _, r := range f.views.Tickets.Rows.Get() {
		if r.ID == 1 {
			assert.Equal(t, "Empresa X Ltda", r.CustomerName)
		}
	}
}

// ─── agregados ───────────────────────────────────────────────────────────────

func TestAverageResolutionHours(t *testing.T) {
	opened := now
	closedAt := func(h int) *time.Time { return ptrTime(opened.Add(time.Duration(h) * time.Hour)) }
	tickets := []entity.Ticket{
		{OpenedAt: opened, Status: entity.TicketClosed, ClosedAt: closedAt(1)},
		{OpenedAt: opened, Status: entity.TicketClosed, ClosedAt: closedAt(2)},
		{OpenedAt: opened, Status: entity.TicketOpen},
		{OpenedAt: opened, Status: entity.TicketOpen, ClosedAt: closedAt(100)},
		{OpenedAt: opened, Status: entity.TicketClosed},
	}
	assert.InDelta(t, 1.5, views.AverageResolutionHours(tickets), 1e-9)
	assert.Equal(t, 0.0, views.AverageResolutionHours(tickets[2:3]))
	assert.Equal(t, 0.0, views.AverageResolutionHours(nil))
}

func TestCountCategories_PorcentajeYOrden(t *testing.T) {
	tickets := []entity.Ticket{{Category: "Rede"}, {Category: "Rede"}, {Category: "Impressora"}}
	got := views.CountCategories(tickets)
	assert.Equal(t, []views.CategoryCount{
		{Category: "Rede", Count: 2, Percent: 67},
		{Category: "Impressora", Count: 1, Percent: 33},
	}, got)
	assert.Empty(t, views.CountCategories(nil))
}

func TestHistogram_SieteDias(t *testing.T) {
	f := newFixture(t)
	o := f.views.Overview.Summary.Get()
	require.Len(t, o.LastDays, views.HistogramDays)
	assert.Equal(t, "08/03", o.LastDays[0].Label)
	assert.Equal(t, "14/03", o.LastDays[6].Label)

	assert.Equal(t, 1, o.LastDays[6].Opened, "semilla abierta hoy")
	assert.Equal(t, 1, o.LastDays[5].Opened)
	assert.Equal(t, 1, o.LastDays[4].Opened)
	assert.Equal(t, 1, o.LastDays[4].Closed)
	assert.Equal(t, 1, o.MaxPerDay)
}

func TestHistogram_CierreSegunStatus(t *testing.T) {
	closedAt := now.Add(-time.Hour)
	tickets := []entity.Ticket{
		{OpenedAt: now.Add(-2 * time.Hour), Status: entity.TicketOpen, ClosedAt: &closedAt},
		{OpenedAt: now.Add(-3 * time.Hour), Status: entity.TicketClosed, ClosedAt: &closedAt},
		{OpenedAt: now.Add(-4 * time.Hour), Status: entity.TicketClosed},
	}

	o := views.Summarize(tickets, nil, nil, nil, now)
	assert.Equal(t, 1, o.TicketsOpen)
	assert.Equal(t, 2, o.TicketsClosed)
	assert.Equal(t, 3, o.LastDays[6].Opened)
	assert.Equal(t, 1, o.LastDays[6].Closed, "datafechamento sin status Fechado no cuenta como cierre")
}

func TestHistogram_MaximoYVacio(t *testing.T) {
	tickets := []entity.Ticket{{OpenedAt: now}, {OpenedAt: now.Add(-time.Hour)}, {OpenedAt: now.AddDate(0, 0, -30)}}
	days, max := views.Histogram(tickets, now, 7)
	assert.Equal(t, 2, days[6].Opened)
	assert.Equal(t, 2, max)

	_, max = views.Histogram(nil, now, 7)
	assert.Equal(t, 1, max, "nunca cero")
}

// ─── contactos y financiero ──────────────────────────────────────────────────

func TestContacts_ProximosYTick(t *testing.T) {
	f := newFixture(t)
	s := f.views.Contacts.Summary.Get()
	assert.Equal(t, 2, s.Total)
	assert.Equal(t, 1, s.Upcoming, "el de hoy cuenta, el de ayer no")
	assert.Equal(t, []views.TypeCount{{Type: "Comercial", Count: 1}, {Type: "Suporte", Count: 1}}, s.ByType)

	f.views.Contacts.Filters.Set(views.ContactFilters{Text: "ana"})
	assert.Equal(t, 1, f.views.Contacts.Summary.Get().Total)

	f.clk.Advance(48 * time.Hour)
	f.views.Tick()
	assert.Equal(t, 0, f.views.Contacts.Summary.Get().Upcoming)
	assert.Equal(t, 0, f.views.Overview.Summary.Get().UpcomingFollowUps)
}

func TestFinancials_Resumen(t *testing.T) {
	f := newFixture(t)
	s := f.views.Financials.Summary.Get()
	assert.True(t, s.Revenue.Equal(decimal.NewFromInt(1000)), "solo receitas pagas")
	assert.True(t, s.Expense.Equal(decimal.NewFromInt(300)))
	assert.True(t, s.Balance.Equal(decimal.NewFromInt(700)))
	assert.Equal(t, 1, s.Pending)

	f.views.Financials.Filters.Set(views.FinancialFilters{Text: "pendente"})
	assert.Equal(t, 1, f.views.Financials.Summary.Get().Total)
}

func TestCustomers_BusquedaPorCpcn(t *testing.T) {
	f := newFixture(t)
	f.views.Customers.Filters.Set(views.CustomerFilters{Text: "123456"})
	rows := f.views.Customers.Rows.Get()
	require.Len(t, rows, 1)
	assert.Equal(t, int64(1), rows[0].ID)
}

func TestEqualFold(t *testing.T) {
	assert.True(t, views.EqualFold("Straße", "STRASSE"))
	assert.True(t, views.EqualFold("Beta Serviços", "beta SERVIÇOS"))
	assert.False(t, views.EqualFold("Acme", "Acme Corp"))
}

func TestContains(t *testing.T) {
	assert.True(t, views.Contains("Beta Serviços", "SERVIÇOS"))
	assert.True(t, views.Contains("qualquer", "  "))
	assert.False(t, views.Contains("Acme", "beta"))
	assert.True(t, views.ContainsAny("x", "a", "xyz"))
}
