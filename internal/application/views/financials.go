package views

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/bione-api/internal/application/reactive"
	"github.com/jhoicas/bione-api/internal/domain/entity"
)

// FinancialFilters filtro de cliente y filtro libre sobre tipo, status y descricao.
type FinancialFilters struct {
	Customer string `json:"cliente"`
	Text     string `json:"busca"`
}

// FinancialRow lanzamiento con el nombre del cliente.
type FinancialRow struct {
	entity.Financial
	CustomerName string
}

// FinancialSummary totales de lanzamientos pagados y pendientes.
type FinancialSummary struct {
	Revenue decimal.Decimal // receitas pagas
	Expense decimal.Decimal // despesas pagas
	Balance decimal.Decimal
	Pending int
	Total   int
}

// FinancialsView pantalla financiera.
type FinancialsView struct {
	Filters *reactive.Value[FinancialFilters]
	Rows    *reactive.Derived[[]FinancialRow]
	Summary *reactive.Derived[FinancialSummary]
}

// NewFinancialsView construye la vista.
func NewFinancialsView(src Sources) *FinancialsView {
	v := &FinancialsView{Filters: reactive.NewValue(FinancialFilters{})}
	v.Rows = reactive.Derive(func() []FinancialRow {
		return FilterFinancials(src.Financials.Items(), src.Customers.Items(), src.Selection.Get(), v.Filters.Get())
	}, src.Financials, src.Customers, src.Selection, v.Filters)
	v.Summary = reactive.Derive(func() FinancialSummary { return SummarizeFinancials(v.Rows.Get()) }, v.Rows)
	return v
}

// Close desconecta la vista.
func (v *FinancialsView) Close() { closeAll(v.Summary, v.Rows) }

// FilterFinancials aplica selección y filtros de texto.
func FilterFinancials(list []entity.Financial, customers []entity.Customer, sel *entity.Customer, f FinancialFilters) []FinancialRow {
	names := customerNames(customers)
	out := make([]FinancialRow, 0, len(list))
	for _, fin := range list {
		name := nameOf(names, fin.CustomerID)
		if !matchCustomer(sel, f.Customer, name, fin.CustomerID) {
			continue
		}
		if !ContainsAny(f.Text, string(fin.Kind), string(fin.Status), fin.Description) {
			continue
		}
		out = append(out, FinancialRow{Financial: fin, CustomerName: name})
	}
	return out
}

// SummarizeFinancials suma receitas y despesas pagas y cuenta pendientes.
func SummarizeFinancials(rows []FinancialRow) FinancialSummary {
	s := FinancialSummary{Revenue: decimal.Zero, Expense: decimal.Zero, Total: len(rows)}
	for _, r := range rows {
		if r.Status == entity.FinancialPending {
			s.Pending++
		}
		if !r.IsPaid() {
			continue
		}
		switch r.Kind {
		case entity.FinancialRevenue:
			s.Revenue = s.Revenue.Add(r.Amount)
		case entity.FinancialExpense:
			s.Expense = s.Expense.Add(r.Amount)
		}
	}
	s.Balance = s.Revenue.Sub(s.Expense)
	return s
}
