package entity

import (
	"fmt"
	"time"
)

// TicketStatus estado del chamado. Es la única fuente de verdad: nunca se deriva de ClosedAt.
type TicketStatus string

const (
	TicketOpen   TicketStatus = "Aberto"
	TicketClosed TicketStatus = "Fechado"
)

// ParseTicketStatus valida el valor textual que viene del backend.
func ParseTicketStatus(s string) (TicketStatus, error) {
	switch TicketStatus(s) {
	case TicketOpen, TicketClosed:
		return TicketStatus(s), nil
	}
	return "", fmt.Errorf("status de chamado desconocido %q", s)
}

// Ticket representa un chamado de soporte (tabla chamados).
type Ticket struct {
	ID          int64
	Title       string
	Description string
	OpenedAt    time.Time
	ClosedAt    *time.Time
	Status      TicketStatus
	Solution    string
	CustomerID  int64
	Category    string // tipo (texto libre)
}

// Key devuelve el identificador asignado por el backend.
func (t Ticket) Key() int64 { return t.ID }

// IsClosed indica si el chamado está cerrado según su status.
func (t Ticket) IsClosed() bool { return t.Status == TicketClosed }

// Closed devuelve una copia cerrada con la solución dada. El cierre nunca queda antes de la apertura.
func (t Ticket) Closed(solution string, at time.Time) Ticket {
	if at.Before(t.OpenedAt) {
		at = t.OpenedAt
	}
	out := t
	out.Status = TicketClosed
	out.Solution = solution
	out.ClosedAt = &at
	return out
}

// ResolutionTime devuelve close-open para chamados cerrados con fecha de cierre.
func (t Ticket) ResolutionTime() (time.Duration, bool) {
	if !t.IsClosed() || t.ClosedAt == nil {
		return 0, false
	}
	return t.ClosedAt.Sub(t.OpenedAt), true
}
