package dto

import "github.com/jhoicas/bione-api/internal/domain/entity"

// TicketRequest body para POST /api/chamados y PUT /api/chamados/:id.
// Sin idcliente se usa el cliente seleccionado globalmente.
type TicketRequest struct {
	Titulo     string `json:"titulo"`
	Descricao  string `json:"descricao"`
	Tipo       string `json:"tipo,omitempty"`
	CustomerID *int64 `json:"idcliente,omitempty"`
}

// CloseTicketRequest body para POST /api/chamados/:id/finalizar.
type CloseTicketRequest struct {
	Solucao string `json:"solucao"`
}

// TicketResponse chamado en respuestas.
type TicketResponse struct {
	ID             int64   `json:"idchamado"`
	Titulo         string  `json:"titulo"`
	Descricao      string  `json:"descricao"`
	Tipo           string  `json:"tipo,omitempty"`
	CustomerID     int64   `json:"idcliente"`
	Cliente        string  `json:"cliente,omitempty"`
	Status         string  `json:"status"`
	DataAbertura   string  `json:"data_abertura"`
	DataFechamento *string `json:"data_fechamento,omitempty"`
	Solucao        string  `json:"solucao,omitempty"`
	Provisional    bool    `json:"provisorio,omitempty"`
}

// NewTicketResponse mapea la entidad; customerName puede ir vacío.
func NewTicketResponse(t entity.Ticket, customerName string) TicketResponse {
	out := TicketResponse{
		ID:           t.ID,
		Titulo:       t.Title,
		Descricao:    t.Description,
		Tipo:         t.Category,
		CustomerID:   t.CustomerID,
		Cliente:      customerName,
		Status:       string(t.Status),
		DataAbertura: t.OpenedAt.Format(timestampLayout),
		Solucao:      t.Solution,
		Provisional:  t.ID < 0,
	}
	if t.ClosedAt != nil {
		s := t.ClosedAt.Format(timestampLayout)
		out.DataFechamento = &s
	}
	return out
}
