package billing_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/bione-api/internal/application/billing"
	"github.com/jhoicas/bione-api/internal/domain"
	"github.com/jhoicas/bione-api/internal/domain/entity"
	"github.com/jhoicas/bione-api/pkg/clock"
)

type customers map[int64]entity.Customer

func (c customers) Find(id int64) (entity.Customer, bool) {
	v, ok := c[id]
	return v, ok
}

type financials []entity.Financial

func (f financials) Items() []entity.Financial { return f }

type fakeGenerator struct {
	got billing.Statement
	err error
}

func (g *fakeGenerator) GenerateStatementPDF(_ context.Context, st billing.Statement) ([]byte, error) {
	g.got = st
	if g.err != nil {
		return nil, g.err
	}
	return []byte("%PDF-fake"), nil
}

func day(d int) time.Time { return time.Date(2025, 3, d, 0, 0, 0, 0, time.Local) }

func newUseCase(gen *fakeGenerator) *billing.StatementUseCase {
	cs := customers{
		1: {ID: 1, LegalName: "Acme"},
		2: {ID: 2, LegalName: "Beta"},
	}
	fs := financials{
		{ID: 3, CustomerID: 1, Description: "c", Amount: decimal.NewFromInt(300), Kind: entity.FinancialExpense, Status: entity.FinancialPaid, CreatedOn: day(10)},
		{ID: 2, CustomerID: 2, Description: "b", Amount: decimal.NewFromInt(50), Kind: entity.FinancialRevenue, Status: entity.FinancialPaid, CreatedOn: day(5)},
		{ID: 1, CustomerID: 1, Description: "a", Amount: decimal.NewFromInt(1000), Kind: entity.FinancialRevenue, Status: entity.FinancialPaid, CreatedOn: day(2)},
		{ID: 4, CustomerID: 1, Description: "d", Amount: decimal.NewFromInt(90), Kind: entity.FinancialRevenue, Status: entity.FinancialPending, CreatedOn: day(12)},
	}
	clk := clock.NewFake(time.Date(2025, 3, 14, 15, 0, 0, 0, time.Local))
	return billing.NewStatementUseCase(cs, fs, gen, clk, "")
}

func TestStatement_SoloDelClienteEnOrdenCronologico(t *testing.T) {
	gen := &fakeGenerator{}
	uc := newUseCase(gen)
	id := int64(1)

	out, filename, err := uc.DownloadStatementPDF(context.Background(), &id)
	require.NoError(t, err)

	assert.Equal(t, []byte("%PDF-fake"), out)
	assert.Equal(t, "extrato_1_20250314.pdf", filename)
	assert.Equal(t, "Extrato financeiro", gen.got.Title)
	require.Len(t, gen.got.Entries, 3)
	assert.Equal(t, int64(1), gen.got.Entries[0].ID)
	assert.Equal(t, int64(3), gen.got.Entries[1].ID)
	assert.Equal(t, int64(4), gen.got.Entries[2].ID)
	assert.True(t, gen.got.Summary.Balance.Equal(decimal.NewFromInt(700)))
	assert.Equal(t, 1, gen.got.Summary.Pending)
}

func TestStatement_Errores(t *testing.T) {
	gen := &fakeGenerator{}
	uc := newUseCase(gen)

	_, _, err := uc.DownloadStatementPDF(context.Background(), nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	missing := int64(9)
	_, _, err = uc.DownloadStatementPDF(context.Background(), &missing)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	gen.err = errors.New("fuente no disponible")
	id := int64(2)
	_, _, err = uc.DownloadStatementPDF(context.Background(), &id)
	assert.ErrorContains(t, err, "fuente no disponible")
}
