package store

import (
	"time"

	"github.com/jhoicas/bione-api/internal/domain/entity"
)

// SeedTickets chamado de ejemplo que se muestra sin backend.
func SeedTickets(now time.Time) []entity.Ticket {
	return []entity.Ticket{{
		ID:          1,
		Title:       "Exemplo: PC não liga (Mock)",
		Description: "O computador da recepção não dá sinal de vida.",
		OpenedAt:    now,
		Status:      entity.TicketOpen,
		CustomerID:  1,
		Category:    "Dúvidas",
	}}
}

// SeedCustomers cliente de ejemplo del modo local.
func SeedCustomers() []entity.Customer {
	taxID := int64(12345678900000)
	return []entity.Customer{{
		ID:        1,
		LegalName: "Empresa X Ltda",
		TradeName: "Empresa X",
		TaxID:     &taxID,
		Active:    true,
		Phones: []entity.CustomerPhone{
			{ID: 1, Phone: "+5511999999999", Responsible: "João", Email: "joao@empresa.com", Active: true},
		},
	}}
}

// SeedContacts sin registros de ejemplo.
func SeedContacts() []entity.Contact { return nil }

// SeedFinancials sin registros de ejemplo.
func SeedFinancials() []entity.Financial { return nil }

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
