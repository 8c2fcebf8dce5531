package views

import (
	"math"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/bione-api/internal/application/reactive"
	"github.com/jhoicas/bione-api/internal/domain/entity"
)

// HistogramDays días del histograma de chamados.
const HistogramDays = 7

// CategoryCount chamados de un tipo y su porcentaje redondeado sobre el total.
type CategoryCount struct {
	Category string
	Count    int
	Percent  int
}

// DayBucket chamados abiertos y cerrados en un día local.
type DayBucket struct {
	Day    time.Time
	Label  string // dd/MM
	Opened int
	Closed int
}

// Overview indicadores de la pantalla inicial, restringidos al cliente seleccionado si lo hay.
// CustomersTotal es la excepción: cuenta siempre todos los clientes.
type Overview struct {
	TicketsTotal       int
	TicketsOpen        int
	TicketsClosed      int
	AvgResolutionHours float64
	CustomersTotal     int
	Revenue            decimal.Decimal
	Expense            decimal.Decimal
	Balance            decimal.Decimal
	ContactsTotal      int
	UpcomingFollowUps  int
	ByCategory         []CategoryCount
	LastDays           []DayBucket
	MaxPerDay          int
}

// OverviewView pantalla inicial. Las listas por cliente solo dependen de la selección;
// los agregados reducen esas listas ya filtradas. Customers no se restringe.
type OverviewView struct {
	Tickets    *reactive.Derived[[]entity.Ticket]
	Customers  *reactive.Derived[[]entity.Customer]
	Contacts   *reactive.Derived[[]entity.Contact]
	Financials *reactive.Derived[[]entity.Financial]
	Summary    *reactive.Derived[Overview]
}

// NewOverviewView construye la vista.
func NewOverviewView(src Sources, now *reactive.Value[time.Time]) *OverviewView {
	v := &OverviewView{}
	v.Tickets = reactive.Derive(func() []entity.Ticket {
		return scoped(src.Tickets.Items(), src.Selection.Get(), func(t entity.Ticket) int64 { return t.CustomerID })
	}, src.Tickets, src.Selection)
	v.Customers = reactive.Derive(func() []entity.Customer {
		return src.Customers.Items()
	}, src.Customers)
	v.Contacts = reactive.Derive(func() []entity.Contact {
		return scoped(src.Contacts.Items(), src.Selection.Get(), func(c entity.Contact) int64 { return c.CustomerID })
	}, src.Contacts, src.Selection)
	v.Financials = reactive.Derive(func() []entity.Financial {
		return scoped(src.Financials.Items(), src.Selection.Get(), func(f entity.Financial) int64 { return f.CustomerID })
	}, src.Financials, src.Selection)

	v.Summary = reactive.Derive(func() Overview {
		return Summarize(v.Tickets.Get(), v.Customers.Get(), v.Contacts.Get(), v.Financials.Get(), now.Get())
	}, v.Tickets, v.Customers, v.Contacts, v.Financials, now)
	return v
}

// Close desconecta la vista.
func (v *OverviewView) Close() {
	closeAll(v.Summary, v.Financials, v.Contacts, v.Customers, v.Tickets)
}

func scoped[T any](list []T, sel *entity.Customer, customerID func(T) int64) []T {
	if sel == nil {
		return list
	}
	out := make([]T, 0)
	for _, v := range list {
		if customerID(v) == sel.ID {
			out = append(out, v)
		}
	}
	return out
}

// Summarize calcula los indicadores sobre listas ya restringidas.
func Summarize(tickets []entity.Ticket, customers []entity.Customer, contacts []entity.Contact, financials []entity.Financial, now time.Time) Overview {
	o := Overview{
		TicketsTotal:       len(tickets),
		AvgResolutionHours: AverageResolutionHours(tickets),
		CustomersTotal:     len(customers),
		ContactsTotal:      len(contacts),
		ByCategory:         CountCategories(tickets),
	}
	for _, t := range tickets {
		if t.IsClosed() {
			o.TicketsClosed++
		} else {
			o.TicketsOpen++
		}
	}

	rows := make([]FinancialRow, 0, len(financials))
	for _, f := range financials {
		rows = append(rows, FinancialRow{Financial: f})
	}
	fin := SummarizeFinancials(rows)
	o.Revenue, o.Expense, o.Balance = fin.Revenue, fin.Expense, fin.Balance

	today := startOfDay(now)
	for _, c := range contacts {
		if c.HasUpcomingFollowUp(today) {
			o.UpcomingFollowUps++
		}
	}

	o.LastDays, o.MaxPerDay = Histogram(tickets, now, HistogramDays)
	return o
}

// AverageResolutionHours media exacta de (cierre - apertura) en horas sobre los chamados
// cerrados con fecha de cierre. Sin cerrados devuelve 0.
func AverageResolutionHours(tickets []entity.Ticket) float64 {
	var total time.Duration
	n := 0
	for _, t := range tickets {
		if d, ok := t.ResolutionTime(); ok {
			total += d
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return total.Hours() / float64(n)
}

// CountCategories agrupa por tipo con porcentaje redondeado, de mayor a menor cantidad.
func CountCategories(tickets []entity.Ticket) []CategoryCount {
	counts := make(map[string]int)
	for _, t := range tickets {
		counts[t.Category]++
	}
	out := make([]CategoryCount, 0, len(counts))
	for cat, n := range counts {
		pct := 0
		if len(tickets) > 0 {
			pct = int(math.Round(float64(n) / float64(len(tickets)) * 100))
		}
		out = append(out, CategoryCount{Category: cat, Count: n, Percent: pct})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Category < out[j].Category
	})
	return out
}

// Histogram cuenta aperturas y cierres por día local en los últimos days días terminando hoy.
// Un cierre cuenta solo si el status es Fechado y hay fecha de cierre. El máximo por día es al menos 1 para que la escala del gráfico nunca sea cero.
func Histogram(tickets []entity.Ticket, now time.Time, days int) ([]DayBucket, int) {
	loc := now.Location()
	today := startOfDay(now)
	buckets := make([]DayBucket, days)
	index := make(map[string]int, days)
	for i := 0; i < days; i++ {
		day := today.AddDate(0, 0, i-(days-1))
		buckets[i] = DayBucket{Day: day, Label: day.Format("02/01")}
		index[dayKey(day)] = i
	}
	for _, t := range tickets {
		if i, ok := index[dayKey(t.OpenedAt.In(loc))]; ok {
			buckets[i].Opened++
		}
		if t.IsClosed() && t.ClosedAt != nil {
			if i, ok := index[dayKey(t.ClosedAt.In(loc))]; ok {
				buckets[i].Closed++
			}
		}
	}
	top := 1
	for _, b := range buckets {
		top = max(top, b.Opened, b.Closed)
	}
	return buckets, top
}

func dayKey(t time.Time) string { return t.Format("2006-01-02") }
