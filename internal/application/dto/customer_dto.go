package dto

import "github.com/jhoicas/bione-api/internal/domain/entity"

// PhoneRequest línea de clientes_telefone en el body.
type PhoneRequest struct {
	Telefone    string `json:"celular"`
	Responsavel string `json:"responsavel,omitempty"`
	Email       string `json:"email,omitempty"`
}

// CustomerRequest body para POST /api/clientes y PUT /api/clientes/:id.
// cpcn admite puntos, barras y guiones.
type CustomerRequest struct {
	Razao       string         `json:"razao"`
	Fantasia    string         `json:"fantasia,omitempty"`
	CPCN        string         `json:"cpcn,omitempty"`
	Email       string         `json:"email,omitempty"`
	Observacoes string         `json:"observacoes,omitempty"`
	Telefones   []PhoneRequest `json:"clientes_telefone"`
}

// PhoneResponse teléfono en respuestas.
type PhoneResponse struct {
	ID          int64  `json:"idtelefone"`
	Telefone    string `json:"celular"`
	Responsavel string `json:"responsavel,omitempty"`
	Email       string `json:"email,omitempty"`
	Ativo       bool   `json:"ativo"`
}

// CustomerResponse cliente en respuestas.
type CustomerResponse struct {
	ID          int64           `json:"idcliente"`
	Razao       string          `json:"razao"`
	Fantasia    string          `json:"fantasia,omitempty"`
	CPCN        *int64          `json:"cpcn,omitempty"`
	Email       string          `json:"email,omitempty"`
	Observacoes string          `json:"observacoes,omitempty"`
	Ativo       bool            `json:"ativo"`
	Telefones   []PhoneResponse `json:"clientes_telefone"`
	// Provisional true mientras el alta espera la confirmación del backend.
	Provisional bool `json:"provisorio,omitempty"`
}

// NewCustomerResponse mapea la entidad.
func NewCustomerResponse(c entity.Customer) CustomerResponse {
	out := CustomerResponse{
		ID:          c.ID,
		Razao:       c.LegalName,
		Fantasia:    c.TradeName,
		CPCN:        c.TaxID,
		Email:       c.Email,
		Observacoes: c.Notes,
		Ativo:       c.Active,
		Telefones:   make([]PhoneResponse, 0, len(c.Phones)),
		Provisional: c.ID < 0,
	}
	for _, p := range c.Phones {
		out.Telefones = append(out.Telefones, PhoneResponse{
			ID: p.ID, Telefone: p.Phone, Responsavel: p.Responsible, Email: p.Email, Ativo: p.Active,
		})
	}
	return out
}

// NewCustomerList mapea una lista.
func NewCustomerList(list []entity.Customer) []CustomerResponse {
	out := make([]CustomerResponse, 0, len(list))
	for _, c := range list {
		out = append(out, NewCustomerResponse(c))
	}
	return out
}

// SelectionRequest body para PUT /api/selecao.
type SelectionRequest struct {
	CustomerID *int64 `json:"idcliente"`
}

// SelectionResponse selección global actual; Cliente nil sin selección.
type SelectionResponse struct {
	Cliente *CustomerResponse `json:"cliente"`
}

// NewSelectionResponse mapea la selección.
func NewSelectionResponse(c *entity.Customer) SelectionResponse {
	if c == nil {
		return SelectionResponse{}
	}
	r := NewCustomerResponse(*c)
	return SelectionResponse{Cliente: &r}
}

// AutocompleteResponse resultado de GET /api/clientes/busca.
type AutocompleteResponse struct {
	Fase       string             `json:"fase"`
	Texto      string             `json:"texto"`
	Candidatos []CustomerResponse `json:"candidatos"`
	CustomerID *int64             `json:"idcliente,omitempty"`
	Dropdown   bool               `json:"dropdown"`
}
