package views

import (
	"sort"
	"time"

	"github.com/jhoicas/bione-api/internal/application/reactive"
	"github.com/jhoicas/bione-api/internal/domain/entity"
)

// ContactFilters filtro de cliente y filtro libre sobre tipo, assunto y responsavel.
type ContactFilters struct {
	Customer string `json:"cliente"`
	Text     string `json:"busca"`
}

// ContactRow contacto con el nombre del cliente.
type ContactRow struct {
	entity.Contact
	CustomerName string
}

// TypeCount cantidad de registros de un tipo.
type TypeCount struct {
	Type  string
	Count int
}

// ContactSummary agregados de la pantalla de contactos.
type ContactSummary struct {
	Total    int
	ByType   []TypeCount
	Upcoming int
}

// ContactsView pantalla de contactos.
type ContactsView struct {
	Filters  *reactive.Value[ContactFilters]
	Rows     *reactive.Derived[[]ContactRow]
	Upcoming *reactive.Derived[[]ContactRow]
	Summary  *reactive.Derived[ContactSummary]
}

// NewContactsView construye la vista; now ancla los próximos contactos.
func NewContactsView(src Sources, now *reactive.Value[time.Time]) *ContactsView {
	v := &ContactsView{Filters: reactive.NewValue(ContactFilters{})}
	v.Rows = reactive.Derive(func() []ContactRow {
		return FilterContacts(src.Contacts.Items(), src.Customers.Items(), src.Selection.Get(), v.Filters.Get())
	}, src.Contacts, src.Customers, src.Selection, v.Filters)
	v.Upcoming = reactive.Derive(func() []ContactRow {
		return UpcomingFollowUps(v.Rows.Get(), now.Get())
	}, v.Rows, now)
	v.Summary = reactive.Derive(func() ContactSummary {
		rows := v.Rows.Get()
		return ContactSummary{
			Total:    len(rows),
			ByType:   CountContactTypes(rows),
			Upcoming: len(v.Upcoming.Get()),
		}
	}, v.Rows, v.Upcoming)
	return v
}

// Close desconecta la vista.
func (v *ContactsView) Close() { closeAll(v.Summary, v.Upcoming, v.Rows) }

// FilterContacts aplica selección y filtros de texto.
func FilterContacts(contacts []entity.Contact, customers []entity.Customer, sel *entity.Customer, f ContactFilters) []ContactRow {
	names := customerNames(customers)
	out := make([]ContactRow, 0, len(contacts))
	for _, c := range contacts {
		name := nameOf(names, c.CustomerID)
		if !matchCustomer(sel, f.Customer, name, c.CustomerID) {
			continue
		}
		if !ContainsAny(f.Text, string(c.Type), c.Subject, c.Responsible) {
			continue
		}
		out = append(out, ContactRow{Contact: c, CustomerName: name})
	}
	return out
}

// UpcomingFollowUps contactos con próximo contacto desde hoy en adelante, el más cercano primero.
func UpcomingFollowUps(rows []ContactRow, now time.Time) []ContactRow {
	today := startOfDay(now)
	out := make([]ContactRow, 0)
	for _, r := range rows {
		if r.HasUpcomingFollowUp(today) {
			out = append(out, r)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].NextContactOn.Before(*out[j].NextContactOn) })
	return out
}

// CountContactTypes cuenta por tipo en el orden canónico de tipos.
func CountContactTypes(rows []ContactRow) []TypeCount {
	counts := make(map[entity.ContactType]int)
	for _, r := range rows {
		counts[r.Type]++
	}
	out := make([]TypeCount, 0, len(counts))
	for _, t := range entity.ContactTypes {
		if n := counts[t]; n > 0 {
			out = append(out, TypeCount{Type: string(t), Count: n})
		}
	}
	return out
}
