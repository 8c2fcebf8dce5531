package dto

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/bione-api/internal/domain/entity"
)

// AmountInput valor tal como llega en el body: número JSON o texto ("1500,50").
type AmountInput string

// UnmarshalJSON acepta número o string.
func (a *AmountInput) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*a = AmountInput(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("valor: %w", err)
	}
	// Un número JSON siempre usa punto decimal; se normaliza para que 1.500 no parezca miles.
	d, err := decimal.NewFromString(n.String())
	if err != nil {
		return fmt.Errorf("valor: %w", err)
	}
	*a = AmountInput(d.String())
	return nil
}

// FinancialRequest body para POST /api/financeiro y PUT /api/financeiro/:id.
type FinancialRequest struct {
	CustomerID  *int64      `json:"idcliente,omitempty"`
	Descricao   string      `json:"descricao"`
	Valor       AmountInput `json:"valor"`
	Tipo        string      `json:"tipo,omitempty"`   // Receita | Despesa
	Status      string      `json:"status,omitempty"` // Pendente | Pago | Vencido
	Vencimento  string      `json:"vencimento,omitempty"`
	Observacoes string      `json:"observacoes,omitempty"`
}

// FinancialResponse lanzamiento en respuestas.
type FinancialResponse struct {
	ID           int64           `json:"idfinanceiro"`
	CustomerID   int64           `json:"idcliente"`
	Cliente      string          `json:"cliente,omitempty"`
	Descricao    string          `json:"descricao"`
	Valor        decimal.Decimal `json:"valor"`
	Tipo         string          `json:"tipo"`
	DataCadastro string          `json:"data_cadastro"`
	Status       string          `json:"status"`
	Vencimento   *string         `json:"vencimento,omitempty"`
	Observacoes  string          `json:"observacoes,omitempty"`
	Ativo        bool            `json:"ativo"`
}

// NewFinancialResponse mapea la entidad.
func NewFinancialResponse(f entity.Financial, customerName string) FinancialResponse {
	return FinancialResponse{
		ID:           f.ID,
		CustomerID:   f.CustomerID,
		Cliente:      customerName,
		Descricao:    f.Description,
		Valor:        f.Amount,
		Tipo:         string(f.Kind),
		DataCadastro: FormatDate(f.CreatedOn),
		Status:       string(f.Status),
		Vencimento:   FormatOptionalDate(f.DueOn),
		Observacoes:  f.Notes,
		Ativo:        f.Active,
	}
}

// FinancialSummaryDTO totales de la pantalla financiera.
type FinancialSummaryDTO struct {
	Receitas  decimal.Decimal `json:"receitas"` // receitas pagas
	Despesas  decimal.Decimal `json:"despesas"` // despesas pagas
	Saldo     decimal.Decimal `json:"saldo"`
	Pendentes int             `json:"pendentes"`
	Total     int             `json:"total"`
}
