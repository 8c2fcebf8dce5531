// Package views contiene las derivaciones de cada pantalla: listas filtradas y agregados
// calculados a partir de las stores, la selección global y los filtros de texto locales.
// Cada vista declara sus fuentes y se recalcula de inmediato cuando alguna cambia.
package views

import (
	"time"

	"github.com/jhoicas/bione-api/internal/application/reactive"
	"github.com/jhoicas/bione-api/internal/application/store"
	"github.com/jhoicas/bione-api/pkg/clock"
)

// Screen identifica una pantalla del panel.
type Screen string

const (
	ScreenOverview   Screen = "overview"
	ScreenTickets    Screen = "chamados"
	ScreenCustomers  Screen = "clientes"
	ScreenContacts   Screen = "contatos"
	ScreenFinancials Screen = "financeiro"
)

// Screens en el orden de las pestañas.
var Screens = []Screen{ScreenOverview, ScreenTickets, ScreenCustomers, ScreenContacts, ScreenFinancials}

// Sources entradas compartidas por todas las vistas.
type Sources struct {
	Selection  *store.Selection
	Tickets    *store.TicketStore
	Customers  *store.CustomerStore
	Contacts   *store.ContactStore
	Financials *store.FinancialStore
	Clock      clock.Clock
}

// Views reúne las vistas de las cinco pantallas.
type Views struct {
	// Now ancla las derivaciones que dependen del día actual (histograma, próximos contactos).
	Now *reactive.Value[time.Time]

	Tickets    *TicketsView
	Customers  *CustomersView
	Contacts   *ContactsView
	Financials *FinancialsView
	Overview   *OverviewView

	clock clock.Clock
}

// New construye todas las vistas sobre las mismas fuentes.
func New(src Sources) *Views {
	if src.Clock == nil {
		src.Clock = clock.Real()
	}
	now := reactive.NewValue(src.Clock.Now())
	return &Views{
		Now:        now,
		Tickets:    NewTicketsView(src),
		Customers:  NewCustomersView(src),
		Contacts:   NewContactsView(src, now),
		Financials: NewFinancialsView(src),
		Overview:   NewOverviewView(src, now),
		clock:      src.Clock,
	}
}

// Tick vuelve a leer el reloj y recalcula lo que depende de la fecha.
func (v *Views) Tick() { v.Now.Set(v.clock.Now()) }

// Close desconecta todas las derivaciones de sus fuentes.
func (v *Views) Close() {
	v.Tickets.Close()
	v.Customers.Close()
	v.Contacts.Close()
	v.Financials.Close()
	v.Overview.Close()
}

type closer interface{ Close() }

func closeAll(cs ...closer) {
	for _, c := range cs {
		c.Close()
	}
}
