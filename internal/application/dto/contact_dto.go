package dto

import "github.com/jhoicas/bione-api/internal/domain/entity"

// ContactRequest body para POST /api/contatos y PUT /api/contatos/:id.
type ContactRequest struct {
	CustomerID         *int64 `json:"idcliente,omitempty"`
	Tipo               string `json:"tipo,omitempty"`
	Assunto            string `json:"assunto"`
	Descricao          string `json:"descricao"`
	Responsavel        string `json:"responsavel,omitempty"`
	DataProximoContato string `json:"data_proximo_contato,omitempty"` // YYYY-MM-DD
	Observacoes        string `json:"observacoes,omitempty"`
}

// ContactResponse contato_cliente en respuestas.
type ContactResponse struct {
	ID                 int64   `json:"idcontato"`
	CustomerID         int64   `json:"idcliente"`
	Cliente            string  `json:"cliente,omitempty"`
	Tipo               string  `json:"tipo"`
	Assunto            string  `json:"assunto"`
	Descricao          string  `json:"descricao"`
	DataCadastro       string  `json:"data_cadastro"`
	Responsavel        string  `json:"responsavel,omitempty"`
	DataProximoContato *string `json:"data_proximo_contato,omitempty"`
	Observacoes        string  `json:"observacoes,omitempty"`
	Ativo              bool    `json:"ativo"`
}

// NewContactResponse mapea la entidad.
func NewContactResponse(c entity.Contact, customerName string) ContactResponse {
	return ContactResponse{
		ID:                 c.ID,
		CustomerID:         c.CustomerID,
		Cliente:            customerName,
		Tipo:               string(c.Type),
		Assunto:            c.Subject,
		Descricao:          c.Description,
		DataCadastro:       FormatDate(c.CreatedOn),
		Responsavel:        c.Responsible,
		DataProximoContato: FormatOptionalDate(c.NextContactOn),
		Observacoes:        c.Notes,
		Ativo:              c.Active,
	}
}
