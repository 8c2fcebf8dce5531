package repository

import "github.com/jhoicas/bione-api/internal/domain/entity"

// TicketRepository define el puerto de persistencia para Ticket (chamados), ordenado por dataabertura.
type TicketRepository interface {
	Table[entity.Ticket]
}
