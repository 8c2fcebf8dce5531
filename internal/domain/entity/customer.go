package entity

import (
	"strconv"
	"strings"
)

// Customer representa un cliente (tabla clientes) con sus contactos telefónicos.
// Los valores son inmutables por convención: cualquier cambio produce una copia (ver Clone).
type Customer struct {
	ID        int64
	LegalName string // razao (obligatoria)
	TradeName string // fantasia
	TaxID     *int64 // cpcn: CNPJ/CPF numérico
	Active    bool
	Phones    []CustomerPhone
	Email     string
	Notes     string
}

// CustomerPhone sub-registro de contacto (tabla clientes_telefone), propiedad del cliente.
type CustomerPhone struct {
	ID          int64
	Phone       string // celular
	Responsible string
	Email       string
	Active      bool
}

// Key devuelve el identificador asignado por el backend.
func (c Customer) Key() int64 { return c.ID }

// HasReachablePhone indica si el contacto tiene teléfono o email.
func (p CustomerPhone) HasReachablePhone() bool {
	return strings.TrimSpace(p.Phone) != "" || strings.TrimSpace(p.Email) != ""
}

// DisplayName devuelve razao, si no fantasia, si no el id.
func (c Customer) DisplayName() string {
	if c.LegalName != "" {
		return c.LegalName
	}
	if c.TradeName != "" {
		return c.TradeName
	}
	return strconv.FormatInt(c.ID, 10)
}

// TaxIDString devuelve el cpcn como texto ("" si no tiene).
func (c Customer) TaxIDString() string {
	if c.TaxID == nil {
		return ""
	}
	return strconv.FormatInt(*c.TaxID, 10)
}

// Clone copia profunda (teléfonos y cpcn incluidos).
func (c Customer) Clone() Customer {
	out := c
	if c.TaxID != nil {
		v := *c.TaxID
		out.TaxID = &v
	}
	if c.Phones != nil {
		out.Phones = make([]CustomerPhone, len(c.Phones))
		copy(out.Phones, c.Phones)
	}
	return out
}

// Equal compara por valor, incluidos los teléfonos.
func (c Customer) Equal(o Customer) bool {
	if c.ID != o.ID || c.LegalName != o.LegalName || c.TradeName != o.TradeName ||
		c.Active != o.Active || c.Email != o.Email || c.Notes != o.Notes {
		return false
	}
	if (c.TaxID == nil) != (o.TaxID == nil) || (c.TaxID != nil && *c.TaxID != *o.TaxID) {
		return false
	}
	if len(c.Phones) != len(o.Phones) {
		return false
	}
	for i := range c.Phones {
		if c.Phones[i] != o.Phones[i] {
			return false
		}
	}
	return true
}
