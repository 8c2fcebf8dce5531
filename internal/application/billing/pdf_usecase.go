package billing

import (
	"context"
	"fmt"
	"sort"

	"github.com/jhoicas/bione-api/internal/application/views"
	"github.com/jhoicas/bione-api/internal/domain"
	"github.com/jhoicas/bione-api/internal/domain/entity"
	"github.com/jhoicas/bione-api/pkg/clock"
)

// StatementUseCase genera el extracto financiero (PDF) de un cliente a partir del estado
// cargado en las stores.
type StatementUseCase struct {
	customers  CustomerSource
	financials FinancialSource
	generator  StatementGenerator
	clock      clock.Clock
	title      string
}

// NewStatementUseCase construye el caso de uso inyectando todas sus dependencias.
func NewStatementUseCase(
	customers CustomerSource,
	financials FinancialSource,
	generator StatementGenerator,
	clk clock.Clock,
	title string,
) *StatementUseCase {
	if clk == nil {
		clk = clock.Real()
	}
	if title == "" {
		title = "Extrato financeiro"
	}
	return &StatementUseCase{
		customers:  customers,
		financials: financials,
		generator:  generator,
		clock:      clk,
		title:      title,
	}
}

// Build reúne los lanzamientos del cliente y sus totales.
//
// Retorna:
//   - domain.ErrInvalidInput si customerID es nil (no hay cliente seleccionado).
//   - domain.ErrNotFound     si el cliente no existe.
func (uc *StatementUseCase) Build(customerID *int64) (Statement, error) {
	if customerID == nil {
		return Statement{}, fmt.Errorf("%w: seleccione un cliente para generar el extrato", domain.ErrInvalidInput)
	}
	customer, ok := uc.customers.Find(*customerID)
	if !ok {
		return Statement{}, fmt.Errorf("cliente %d: %w", *customerID, domain.ErrNotFound)
	}

	rows := views.FilterFinancials(uc.financials.Items(), []entity.Customer{customer}, &customer, views.FinancialFilters{})
	entries := make([]entity.Financial, 0, len(rows))
	for _, r := range rows {
		entries = append(entries, r.Financial)
	}
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].CreatedOn.Equal(entries[j].CreatedOn) {
			return entries[i].ID < entries[j].ID
		}
		return entries[i].CreatedOn.Before(entries[j].CreatedOn)
	})

	return Statement{
		Title:       uc.title,
		Customer:    customer,
		GeneratedAt: uc.clock.Now(),
		Entries:     entries,
		Summary:     views.SummarizeFinancials(rows),
	}, nil
}

// DownloadStatementPDF genera el PDF y el nombre de archivo sugerido.
func (uc *StatementUseCase) DownloadStatementPDF(ctx context.Context, customerID *int64) (pdfBytes []byte, filename string, err error) {
	st, err := uc.Build(customerID)
	if err != nil {
		return nil, "", err
	}
	pdfBytes, err = uc.generator.GenerateStatementPDF(ctx, st)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: generación fallida: %w", err)
	}
	filename = fmt.Sprintf("extrato_%d_%s.pdf", st.Customer.ID, st.GeneratedAt.Format("20060102"))
	return pdfBytes, filename, nil
}
