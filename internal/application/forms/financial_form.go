package forms

import (
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/bione-api/internal/application/store"
	"github.com/jhoicas/bione-api/internal/domain"
	"github.com/jhoicas/bione-api/internal/domain/entity"
	"github.com/jhoicas/bione-api/pkg/logger"
)

// FinancialDraft campos editables de un lanzamiento. Amount es texto tal como se tipea:
// "1.500,50" (coma decimal, punto de miles) o "1500.50" (punto decimal, sin miles).
// Un valor solo con puntos agrupados de a tres ("1.500") se rechaza por ambiguo.
type FinancialDraft struct {
	CustomerID  *int64
	Description string
	Amount      string
	Kind        entity.FinancialKind
	Status      entity.FinancialStatus
	DueOn       *time.Time
	Notes       string
}

// FinancialForm formulario de lanzamientos financieros.
type FinancialForm struct {
	*Form[FinancialDraft, entity.Financial]
}

// NewFinancialForm construye el formulario.
func NewFinancialForm(financials Writer[entity.Financial], sel *store.Selection, log *logger.Logger) *FinancialForm {
	def := definition[FinancialDraft, entity.Financial]{
		name: "financeiro",
		empty: func() FinancialDraft {
			return FinancialDraft{Kind: entity.FinancialRevenue, Status: entity.FinancialPending}
		},
		validate: validateFinancial,
		build: func(d FinancialDraft) entity.Financial {
			return mergeFinancial(entity.Financial{Active: true}, d)
		},
		merge: mergeFinancial,
		load: func(f entity.Financial) FinancialDraft {
			id := f.CustomerID
			return FinancialDraft{
				CustomerID: &id, Description: f.Description, Amount: strings.Replace(f.Amount.String(), ".", ",", 1),
				Kind: f.Kind, Status: f.Status, DueOn: f.DueOn, Notes: f.Notes,
			}
		},
		customer: func(d FinancialDraft) *int64 { return d.CustomerID },
		withCust: func(d FinancialDraft, id *int64) FinancialDraft { d.CustomerID = id; return d },
	}
	f := &FinancialForm{Form: newForm[FinancialDraft, entity.Financial](def, financials, sel, log)}
	f.followSelection()
	return f
}

// ErrAmbiguousAmount valor que puede leerse como miles o como decimales.
var ErrAmbiguousAmount = errors.New("valor ambiguo: use 1.500,00 o 1500.00")

var thousandsOnly = regexp.MustCompile(`^[+-]?\d{1,3}(\.\d{3})+$`)

// ParseAmount acepta coma decimal con punto de miles, o punto decimal sin separador de miles.
func ParseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if strings.Contains(s, ",") {
		s = strings.ReplaceAll(s, ".", "")
		s = strings.ReplaceAll(s, ",", ".")
	} else if thousandsOnly.MatchString(s) {
		return decimal.Decimal{}, ErrAmbiguousAmount
	}
	return decimal.NewFromString(s)
}

func validateFinancial(d FinancialDraft) error {
	if d.CustomerID == nil {
		return domain.Required("idcliente")
	}
	if blank(d.Description) {
		return domain.Required("descricao")
	}
	if blank(d.Amount) {
		return domain.Required("valor")
	}
	if _, err := ParseAmount(d.Amount); err != nil {
		msg := "número inválido"
		if errors.Is(err, ErrAmbiguousAmount) {
			msg = err.Error()
		}
		return &domain.ValidationError{Field: "valor", Message: msg}
	}
	if _, err := entity.ParseFinancialKind(string(d.Kind)); err != nil {
		return &domain.ValidationError{Field: "tipo", Message: err.Error()}
	}
	if _, err := entity.ParseFinancialStatus(string(d.Status)); err != nil {
		return &domain.ValidationError{Field: "status", Message: err.Error()}
	}
	return nil
}

func mergeFinancial(f entity.Financial, d FinancialDraft) entity.Financial {
	amount, _ := ParseAmount(d.Amount)
	f.CustomerID = *d.CustomerID
	f.Description = strings.TrimSpace(d.Description)
	f.Amount = amount
	f.Kind = d.Kind
	f.Status = d.Status
	f.DueOn = d.DueOn
	f.Notes = strings.TrimSpace(d.Notes)
	return f
}
