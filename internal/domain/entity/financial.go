package entity

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// FinancialKind distingue cuentas a cobrar (Receita) de cuentas a pagar (Despesa).
type FinancialKind string

const (
	FinancialRevenue FinancialKind = "Receita"
	FinancialExpense FinancialKind = "Despesa"
)

// FinancialStatus estado del lanzamiento.
type FinancialStatus string

const (
	FinancialPending FinancialStatus = "Pendente"
	FinancialPaid    FinancialStatus = "Pago"
	FinancialOverdue FinancialStatus = "Vencido"
)

// ParseFinancialKind valida el tipo textual.
func ParseFinancialKind(s string) (FinancialKind, error) {
	switch FinancialKind(s) {
	case FinancialRevenue, FinancialExpense:
		return FinancialKind(s), nil
	}
	return "", fmt.Errorf("tipo financeiro desconocido %q", s)
}

// ParseFinancialStatus valida el status textual.
func ParseFinancialStatus(s string) (FinancialStatus, error) {
	switch FinancialStatus(s) {
	case FinancialPending, FinancialPaid, FinancialOverdue:
		return FinancialStatus(s), nil
	}
	return "", fmt.Errorf("status financeiro desconocido %q", s)
}

// Financial lanzamiento financiero ligado a un cliente (tabla financeiro).
type Financial struct {
	ID          int64
	CustomerID  int64
	Description string
	Amount      decimal.Decimal // valor (con signo)
	Kind        FinancialKind
	CreatedOn   time.Time // data_cadastro (fecha)
	Status      FinancialStatus
	DueOn       *time.Time // vencimento (fecha)
	Notes       string
	Active      bool
}

// Key devuelve el identificador asignado por el backend.
func (f Financial) Key() int64 { return f.ID }

// IsPaid indica si el lanzamiento ya fue liquidado.
func (f Financial) IsPaid() bool { return f.Status == FinancialPaid }
