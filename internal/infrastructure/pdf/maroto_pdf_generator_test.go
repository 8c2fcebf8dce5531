package pdf_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/bione-api/internal/application/billing"
	"github.com/jhoicas/bione-api/internal/domain/entity"
	"github.com/jhoicas/bione-api/internal/infrastructure/pdf"
)

func TestGenerateStatementPDF(t *testing.T) {
	due := time.Date(2025, 4, 10, 0, 0, 0, 0, time.Local)
	st := billing.Statement{
		Title:       "Extrato financeiro",
		Customer:    entity.Customer{ID: 1, LegalName: "Empresa X Ltda", TradeName: "Empresa X"},
		GeneratedAt: time.Date(2025, 3, 14, 15, 0, 0, 0, time.Local),
		Entries: []entity.Financial{
			{ID: 1, CustomerID: 1, Description: "Mensalidade", Amount: decimal.NewFromInt(1500), Kind: entity.FinancialRevenue, Status: entity.FinancialPaid, CreatedOn: due.AddDate(0, -1, 0)},
			{ID: 2, CustomerID: 1, Description: "Visita técnica", Amount: decimal.NewFromInt(200), Kind: entity.FinancialExpense, Status: entity.FinancialPending, DueOn: &due},
		},
	}

	out, err := pdf.NewMarotoPDFGenerator().GenerateStatementPDF(context.Background(), st)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestGenerateStatementPDF_SinLanzamientos(t *testing.T) {
	out, err := pdf.NewMarotoPDFGenerator().GenerateStatementPDF(context.Background(), billing.Statement{
		Title:    "Extrato",
		Customer: entity.Customer{ID: 2, LegalName: "Beta"},
	})
	require.NoError(t, err)
	assert.NotEmpty(t, out)
}
