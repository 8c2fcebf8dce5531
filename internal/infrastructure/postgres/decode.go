package postgres

import (
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/bione-api/internal/domain"
	"github.com/jhoicas/bione-api/internal/domain/entity"
	"github.com/jhoicas/bione-api/internal/infrastructure/metrics"
)

// Las columnas de fecha se leen como texto (::text) y se convierten aquí. Cada tabla tiene
// su fila "cruda" con tipos laxos y una función decode que falla cerrada: una fila que no
// respeta el contrato se descarta en lugar de publicarse a medias.

const dateLayout = "2006-01-02"

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999-07",
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04:05.999999999",
}

// parseDate interpreta YYYY-MM-DD en la zona local; acepta también timestamps completos.
func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.ParseInLocation(dateLayout, s, time.Local); err == nil {
		return t, nil
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("fecha inválida %q", s)
}

func parseOptionalDate(s *string) (*time.Time, error) {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil, nil
	}
	t, err := parseDate(*s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func formatDate(t time.Time) string { return t.Format(dateLayout) }

func formatOptionalDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := formatDate(*t)
	return &s
}

func decodeError(table, field string, err error) error {
	if err == nil {
		return fmt.Errorf("%s.%s: %w", table, field, domain.ErrDecode)
	}
	return fmt.Errorf("%s.%s: %w: %v", table, field, domain.ErrDecode, err)
}

// dropped registra la fila descartada.
func dropped(m *metrics.Metrics, table string, id int64, err error) {
	log.Warn().Err(err).Str("table", table).Int64("id", id).Msg("fila descartada al decodificar")
	m.DecodeDropped(table)
}

// ─── chamados ────────────────────────────────────────────────────────────────

type ticketRow struct {
	ID          int64
	Title       *string
	Description *string
	OpenedAt    *string
	ClosedAt    *string
	Status      *string
	Solution    *string
	CustomerID  *int64
	Category    *string
}

func decodeTicket(r ticketRow) (entity.Ticket, error) {
	const table = "chamados"
	if r.OpenedAt == nil {
		return entity.Ticket{}, decodeError(table, "dataabertura", nil)
	}
	opened, err := parseDate(*r.OpenedAt)
	if err != nil {
		return entity.Ticket{}, decodeError(table, "dataabertura", err)
	}
	closed, err := parseOptionalDate(r.ClosedAt)
	if err != nil {
		return entity.Ticket{}, decodeError(table, "datafechamento", err)
	}
	status, err := entity.ParseTicketStatus(deref(r.Status))
	if err != nil {
		return entity.Ticket{}, decodeError(table, "status", err)
	}
	if r.CustomerID == nil {
		return entity.Ticket{}, decodeError(table, "idcliente", nil)
	}
	return entity.Ticket{
		ID:          r.ID,
		Title:       deref(r.Title),
		Description: deref(r.Description),
		OpenedAt:    opened,
		ClosedAt:    closed,
		Status:      status,
		Solution:    deref(r.Solution),
		CustomerID:  *r.CustomerID,
		Category:    deref(r.Category),
	}, nil
}

// ─── clientes ────────────────────────────────────────────────────────────────

type customerRow struct {
	ID        int64
	LegalName *string
	TradeName *string
	TaxID     *int64
	Active    *bool
	Email     *string
	Notes     *string
}

type phoneRow struct {
	ID          int64
	CustomerID  int64
	Phone       *string
	Responsible *string
	Email       *string
	Active      *bool
}

func decodeCustomer(r customerRow, phones []phoneRow) (entity.Customer, error) {
	if r.LegalName == nil || strings.TrimSpace(*r.LegalName) == "" {
		return entity.Customer{}, decodeError("clientes", "razao", nil)
	}
	c := entity.Customer{
		ID:        r.ID,
		LegalName: *r.LegalName,
		TradeName: deref(r.TradeName),
		TaxID:     r.TaxID,
		Active:    boolOr(r.Active, true),
		Email:     deref(r.Email),
		Notes:     deref(r.Notes),
		Phones:    make([]entity.CustomerPhone, 0, len(phones)),
	}
	for _, p := range phones {
		c.Phones = append(c.Phones, entity.CustomerPhone{
			ID:          p.ID,
			Phone:       deref(p.Phone),
			Responsible: deref(p.Responsible),
			Email:       deref(p.Email),
			Active:      boolOr(p.Active, true),
		})
	}
	return c, nil
}

func boolOr(b *bool, def bool) bool {
	if b == nil {
		return def
	}
	return *b
}

// ─── contato_cliente ─────────────────────────────────────────────────────────

type contactRow struct {
	ID            int64
	CustomerID    *int64
	Type          *string
	Subject       *string
	Description   *string
	CreatedOn     *string
	Responsible   *string
	NextContactOn *string
	Notes         *string
	Active        *bool
}

func decodeContact(r contactRow) (entity.Contact, error) {
	const table = "contato_cliente"
	if r.CustomerID == nil {
		return entity.Contact{}, decodeError(table, "idcliente", nil)
	}
	typ, err := entity.ParseContactType(deref(r.Type))
	if err != nil {
		return entity.Contact{}, decodeError(table, "tipo", err)
	}
	if r.CreatedOn == nil {
		return entity.Contact{}, decodeError(table, "data_cadastro", nil)
	}
	created, err := parseDate(*r.CreatedOn)
	if err != nil {
		return entity.Contact{}, decodeError(table, "data_cadastro", err)
	}
	next, err := parseOptionalDate(r.NextContactOn)
	if err != nil {
		return entity.Contact{}, decodeError(table, "data_proximo_contato", err)
	}
	return entity.Contact{
		ID:            r.ID,
		CustomerID:    *r.CustomerID,
		Type:          typ,
		Subject:       deref(r.Subject),
		Description:   deref(r.Description),
		CreatedOn:     created,
		Responsible:   deref(r.Responsible),
		NextContactOn: next,
		Notes:         deref(r.Notes),
		Active:        boolOr(r.Active, true),
	}, nil
}

// ─── financeiro ──────────────────────────────────────────────────────────────

type financialRow struct {
	ID          int64
	CustomerID  *int64
	Description *string
	Amount      decimal.NullDecimal
	Kind        *string
	CreatedOn   *string
	Status      *string
	DueOn       *string
	Notes       *string
	Active      *bool
}

func decodeFinancial(r financialRow) (entity.Financial, error) {
	const table = "financeiro"
	if r.CustomerID == nil {
		return entity.Financial{}, decodeError(table, "idcliente", nil)
	}
	if !r.Amount.Valid {
		return entity.Financial{}, decodeError(table, "valor", nil)
	}
	kind, err := entity.ParseFinancialKind(deref(r.Kind))
	if err != nil {
		return entity.Financial{}, decodeError(table, "tipo", err)
	}
	status, err := entity.ParseFinancialStatus(deref(r.Status))
	if err != nil {
		return entity.Financial{}, decodeError(table, "status", err)
	}
	if r.CreatedOn == nil {
		return entity.Financial{}, decodeError(table, "data_cadastro", nil)
	}
	created, err := parseDate(*r.CreatedOn)
	if err != nil {
		return entity.Financial{}, decodeError(table, "data_cadastro", err)
	}
	due, err := parseOptionalDate(r.DueOn)
	if err != nil {
		return entity.Financial{}, decodeError(table, "vencimento", err)
	}
	return entity.Financial{
		ID:          r.ID,
		CustomerID:  *r.CustomerID,
		Description: deref(r.Description),
		Amount:      r.Amount.Decimal,
		Kind:        kind,
		CreatedOn:   created,
		Status:      status,
		DueOn:       due,
		Notes:       deref(r.Notes),
		Active:      boolOr(r.Active, true),
	}, nil
}
