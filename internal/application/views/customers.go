package views

import (
	"github.com/jhoicas/bione-api/internal/application/reactive"
	"github.com/jhoicas/bione-api/internal/domain/entity"
)

// CustomerFilters busca por razao, fantasia o cpcn.
type CustomerFilters struct {
	Text string `json:"busca"`
}

// CustomersView pantalla de clientes. Con un cliente seleccionado solo se muestra ese.
type CustomersView struct {
	Filters *reactive.Value[CustomerFilters]
	Rows    *reactive.Derived[[]entity.Customer]
}

// NewCustomersView construye la vista.
func NewCustomersView(src Sources) *CustomersView {
	v := &CustomersView{Filters: reactive.NewValue(CustomerFilters{})}
	v.Rows = reactive.Derive(func() []entity.Customer {
		return FilterCustomers(src.Customers.Items(), src.Selection.Get(), v.Filters.Get())
	}, src.Customers, src.Selection, v.Filters)
	return v
}

// Close desconecta la vista.
func (v *CustomersView) Close() { v.Rows.Close() }

// FilterCustomers aplica la selección o, sin ella, la búsqueda de texto.
func FilterCustomers(customers []entity.Customer, sel *entity.Customer, f CustomerFilters) []entity.Customer {
	out := make([]entity.Customer, 0, len(customers))
	for _, c := range customers {
		if sel != nil {
			if c.ID == sel.ID {
				out = append(out, c)
			}
			continue
		}
		if ContainsAny(f.Text, c.LegalName, c.TradeName, c.TaxIDString()) {
			out = append(out, c)
		}
	}
	return out
}
