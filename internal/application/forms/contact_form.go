package forms

import (
	"strings"
	"time"

	"github.com/jhoicas/bione-api/internal/application/store"
	"github.com/jhoicas/bione-api/internal/domain"
	"github.com/jhoicas/bione-api/internal/domain/entity"
	"github.com/jhoicas/bione-api/pkg/logger"
)

// ContactDraft campos editables de un registro de contacto.
type ContactDraft struct {
	CustomerID    *int64
	Type          entity.ContactType
	Subject       string
	Description   string
	Responsible   string
	NextContactOn *time.Time
	Notes         string
}

// ContactForm formulario de contato_cliente.
type ContactForm struct {
	*Form[ContactDraft, entity.Contact]
}

// NewContactForm construye el formulario.
func NewContactForm(contacts Writer[entity.Contact], sel *store.Selection, log *logger.Logger) *ContactForm {
	def := definition[ContactDraft, entity.Contact]{
		name:     "contato",
		empty:    func() ContactDraft { return ContactDraft{Type: entity.ContactCommercial} },
		validate: validateContact,
		build: func(d ContactDraft) entity.Contact {
			return mergeContact(entity.Contact{Active: true}, d)
		},
		merge: mergeContact,
		load: func(c entity.Contact) ContactDraft {
			id := c.CustomerID
			return ContactDraft{
				CustomerID: &id, Type: c.Type, Subject: c.Subject, Description: c.Description,
				Responsible: c.Responsible, NextContactOn: c.NextContactOn, Notes: c.Notes,
			}
		},
		customer: func(d ContactDraft) *int64 { return d.CustomerID },
		withCust: func(d ContactDraft, id *int64) ContactDraft { d.CustomerID = id; return d },
	}
	f := &ContactForm{Form: newForm[ContactDraft, entity.Contact](def, contacts, sel, log)}
	f.followSelection()
	return f
}

func validateContact(d ContactDraft) error {
	if d.CustomerID == nil {
		return domain.Required("idcliente")
	}
	if _, err := entity.ParseContactType(string(d.Type)); err != nil {
		return &domain.ValidationError{Field: "tipo", Message: err.Error()}
	}
	if blank(d.Subject) {
		return domain.Required("assunto")
	}
	if blank(d.Description) {
		return domain.Required("descricao")
	}
	return nil
}

func mergeContact(c entity.Contact, d ContactDraft) entity.Contact {
	c.CustomerID = *d.CustomerID
	c.Type = d.Type
	c.Subject = strings.TrimSpace(d.Subject)
	c.Description = strings.TrimSpace(d.Description)
	c.Responsible = strings.TrimSpace(d.Responsible)
	c.NextContactOn = d.NextContactOn
	c.Notes = strings.TrimSpace(d.Notes)
	return c
}
