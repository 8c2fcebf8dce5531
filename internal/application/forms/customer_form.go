package forms

import (
	"strconv"
	"strings"
	"sync"

	"github.com/jhoicas/bione-api/internal/application/reactive"
	"github.com/jhoicas/bione-api/internal/application/store"
	"github.com/jhoicas/bione-api/internal/domain"
	"github.com/jhoicas/bione-api/internal/domain/entity"
	"github.com/jhoicas/bione-api/pkg/logger"
)

// PhoneDraft una línea de contacto del cliente.
type PhoneDraft struct {
	Phone       string
	Responsible string
	Email       string
}

// CustomerDraft campos editables del cliente. TaxID es texto; se aceptan puntos, barras y guiones.
type CustomerDraft struct {
	LegalName string
	TradeName string
	TaxID     string
	Email     string
	Notes     string
	Phones    []PhoneDraft
}

// CustomerForm formulario de clientes. El objetivo de edición es el cliente seleccionado
// globalmente: seleccionar carga sus datos en modo edición, y una actualización exitosa
// limpia la selección.
type CustomerForm struct {
	*Form[CustomerDraft, entity.Customer]
	mu     sync.Mutex
	loaded int64
	stopFn func()
}

// NewCustomerForm construye el formulario.
func NewCustomerForm(customers Writer[entity.Customer], sel *store.Selection, log *logger.Logger) *CustomerForm {
	def := definition[CustomerDraft, entity.Customer]{
		name:     "cliente",
		empty:    func() CustomerDraft { return CustomerDraft{Phones: []PhoneDraft{{}}} },
		validate: validateCustomer,
		build: func(d CustomerDraft) entity.Customer {
			return mergeCustomer(entity.Customer{Active: true}, d)
		},
		merge: mergeCustomer,
		load:  loadCustomer,
	}
	if sel != nil {
		def.onSaved = func(m Mode) {
			if m == ModeEdit {
				sel.Clear()
			}
		}
	}
	f := &CustomerForm{Form: newForm[CustomerDraft, entity.Customer](def, customers, sel, log)}
	if sel != nil {
		f.stopFn = reactive.Effect(func() { f.syncTarget(sel.Get()) }, sel)
	}
	return f
}

func (f *CustomerForm) syncTarget(c *entity.Customer) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if c == nil {
		if f.loaded != 0 {
			f.loaded = 0
			if f.State().Mode == ModeEdit {
				f.Reset()
			}
		}
		return
	}
	if c.ID == f.loaded {
		return
	}
	f.loaded = c.ID
	if !f.StartEdit(c.ID) {
		f.state.Set(State[CustomerDraft]{Draft: loadCustomer(*c), Mode: ModeEdit, EditID: c.ID})
	}
}

// AddPhone agrega una línea de contacto vacía al borrador.
func (f *CustomerForm) AddPhone() {
	f.Edit(func(d CustomerDraft) CustomerDraft {
		d.Phones = append(append([]PhoneDraft(nil), d.Phones...), PhoneDraft{})
		return d
	})
}

// RemovePhone quita la línea i del borrador.
func (f *CustomerForm) RemovePhone(i int) {
	f.Edit(func(d CustomerDraft) CustomerDraft {
		if i < 0 || i >= len(d.Phones) {
			return d
		}
		out := make([]PhoneDraft, 0, len(d.Phones)-1)
		out = append(out, d.Phones[:i]...)
		d.Phones = append(out, d.Phones[i+1:]...)
		return d
	})
}

// Close deja de observar la selección.
func (f *CustomerForm) Close() {
	if f.stopFn != nil {
		f.stopFn()
	}
	f.Form.Close()
}

// ParseTaxID extrae el número del CNPJ/CPF; vacío significa sin cpcn.
func ParseTaxID(s string) (*int64, error) {
	digits := strings.Map(func(r rune) rune {
		switch r {
		case '.', '/', '-', ' ':
			return -1
		}
		return r
	}, strings.TrimSpace(s))
	if digits == "" {
		return nil, nil
	}
	n, err := strconv.ParseInt(digits, 10, 64)
	if err != nil {
		return nil, err
	}
	return &n, nil
}

func validateCustomer(d CustomerDraft) error {
	if blank(d.LegalName) {
		return domain.Required("razao")
	}
	if _, err := ParseTaxID(d.TaxID); err != nil {
		return &domain.ValidationError{Field: "cpcn", Message: "debe ser numérico"}
	}
	for _, p := range d.Phones {
		if !blank(p.Phone) || !blank(p.Email) {
			return nil
		}
	}
	return &domain.ValidationError{Field: "clientes_telefone", Message: "al menos un contacto con teléfono o email"}
}

func mergeCustomer(c entity.Customer, d CustomerDraft) entity.Customer {
	c = c.Clone()
	taxID, _ := ParseTaxID(d.TaxID)
	c.LegalName = strings.TrimSpace(d.LegalName)
	c.TradeName = strings.TrimSpace(d.TradeName)
	c.TaxID = taxID
	c.Email = strings.TrimSpace(d.Email)
	c.Notes = strings.TrimSpace(d.Notes)

	phones := make([]entity.CustomerPhone, 0, len(d.Phones))
	for _, p := range d.Phones {
		cp := entity.CustomerPhone{
			Phone:       strings.TrimSpace(p.Phone),
			Responsible: strings.TrimSpace(p.Responsible),
			Email:       strings.TrimSpace(p.Email),
			Active:      true,
		}
		if cp.HasReachablePhone() {
			phones = append(phones, cp)
		}
	}
	c.Phones = phones
	return c
}

func loadCustomer(c entity.Customer) CustomerDraft {
	d := CustomerDraft{
		LegalName: c.LegalName,
		TradeName: c.TradeName,
		TaxID:     c.TaxIDString(),
		Email:     c.Email,
		Notes:     c.Notes,
	}
	for _, p := range c.Phones {
		d.Phones = append(d.Phones, PhoneDraft{Phone: p.Phone, Responsible: p.Responsible, Email: p.Email})
	}
	if len(d.Phones) == 0 {
		d.Phones = []PhoneDraft{{}}
	}
	return d
}
