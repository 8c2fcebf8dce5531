package entity

import (
	"fmt"
	"time"
)

// ContactType categoría del registro de contacto.
type ContactType string

const (
	ContactCommercial ContactType = "Comercial"
	ContactSuccess    ContactType = "Sucesso"
	ContactSupport    ContactType = "Suporte"
	ContactFinancial  ContactType = "Financeiro"
	ContactOther      ContactType = "Outro"
)

// ContactTypes lista los tipos en el orden en que se muestran.
var ContactTypes = []ContactType{ContactCommercial, ContactSuccess, ContactSupport, ContactFinancial, ContactOther}

// ParseContactType valida el tipo textual.
func ParseContactType(s string) (ContactType, error) {
	for _, t := range ContactTypes {
		if string(t) == s {
			return t, nil
		}
	}
	return "", fmt.Errorf("tipo de contato desconocido %q", s)
}

// Contact registro de una interacción con el cliente (tabla contato_cliente).
type Contact struct {
	ID            int64
	CustomerID    int64
	Type          ContactType
	Subject       string
	Description   string
	CreatedOn     time.Time // data_cadastro (fecha)
	Responsible   string
	NextContactOn *time.Time // data_proximo_contato (fecha)
	Notes         string
	Active        bool
}

// Key devuelve el identificador asignado por el backend.
func (c Contact) Key() int64 { return c.ID }

// HasUpcomingFollowUp indica si el próximo contacto es en now o después.
func (c Contact) HasUpcomingFollowUp(now time.Time) bool {
	return c.NextContactOn != nil && !c.NextContactOn.Before(now)
}
