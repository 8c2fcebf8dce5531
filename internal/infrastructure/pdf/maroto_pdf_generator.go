// Package pdf genera el extracto financiero de un cliente.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Título + cliente        │  Fecha de emisión        │
//	│  ─────────────────────────────────────────────────────────  │
//	│  CLIENTE: Razão social / Fantasia / CNPJ-CPF / Email         │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Data | Descrição | Tipo | Status | Venc. | Valor     │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: Receitas pagas / Despesas pagas / SALDO            │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/bione-api/internal/application/billing"
	"github.com/jhoicas/bione-api/internal/domain/entity"
	"github.com/jhoicas/bione-api/pkg/money"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 180, Green: 83, Blue: 9}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorRed     = &props.Color{Red: 185, Green: 28, Blue: 28}
	colorGreen   = &props.Color{Red: 21, Green: 128, Blue: 61}
)

const dateLayout = "02/01/2006"

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoPDFGenerator implementa billing.StatementGenerator usando Maroto v2.
type MarotoPDFGenerator struct{}

// NewMarotoPDFGenerator construye el generador.
func NewMarotoPDFGenerator() *MarotoPDFGenerator { return &MarotoPDFGenerator{} }

var _ billing.StatementGenerator = (*MarotoPDFGenerator)(nil)

// GenerateStatementPDF genera el PDF y devuelve sus bytes.
func (g *MarotoPDFGenerator) GenerateStatementPDF(_ context.Context, st billing.Statement) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(st.Title, true).
		WithAuthor("BI One", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(st))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(customerRow(st.Customer))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	if len(st.Entries) == 0 {
		m.AddRows(row.New(8).Add(col.New(12).Add(
			text.New("Nenhum lançamento para este cliente.", props.Text{
				Size: 8, Align: align.Center, Top: 2, Color: colorGray,
			}),
		)))
	}
	m.AddRows(tableDetailRows(st.Entries)...)

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(st))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(st billing.Statement) core.Row {
	return row.New(16).Add(
		col.New(8).Add(
			text.New(st.Title, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New(st.Customer.DisplayName(), props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(4).Add(
			text.New("Emitido em "+st.GeneratedAt.Format(dateLayout+" 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 2, Color: colorGray,
			}),
		),
	)
}

func customerRow(c entity.Customer) core.Row {
	return row.New(14).Add(
		col.New(12).Add(
			text.New("CLIENTE", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(c.LegalName, props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 6,
			}),
			text.New(fmt.Sprintf("Fantasia: %s   |   CNPJ/CPF: %s   |   Email: %s",
				nonEmpty(c.TradeName, "—"),
				nonEmpty(c.TaxIDString(), "—"),
				nonEmpty(c.Email, "—"),
			), props.Text{Size: 8, Top: 11, Color: colorGray}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Data", 2, align.Left),
		h("Descrição", 4, align.Left),
		h("Tipo", 1, align.Center),
		h("Status", 1, align.Center),
		h("Venc.", 2, align.Center),
		h("Valor", 2, align.Right),
	)
}

// tableDetailRows: una fila por lanzamiento; las despesas en rojo.
func tableDetailRows(entries []entity.Financial) []core.Row {
	result := make([]core.Row, 0, len(entries))
	for _, f := range entries {
		valueColor := colorGreen
		if f.Kind == entity.FinancialExpense {
			valueColor = colorRed
		}
		due := "—"
		if f.DueOn != nil {
			due = f.DueOn.Format(dateLayout)
		}
		result = append(result, row.New(7).Add(
			col.New(2).Add(text.New(f.CreatedOn.Format(dateLayout), props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(4).Add(text.New(f.Description, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(1).Add(text.New(string(f.Kind), props.Text{Size: 7, Align: align.Center, Top: 1})),
			col.New(1).Add(text.New(string(f.Status), props.Text{Size: 7, Align: align.Center, Top: 1})),
			col.New(2).Add(text.New(due, props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(2).Add(text.New(money.Format(f.Amount), props.Text{
				Size: 8, Align: align.Right, Top: 1, Right: 1, Color: valueColor,
			})),
		))
	}
	return result
}

func totalsRow(st billing.Statement) core.Row {
	label := func(s string, top float64) core.Component {
		return text.New(s, props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2, Top: top})
	}
	value := func(s string, top float64) core.Component {
		return text.New(s, props.Text{Size: 9, Align: align.Right, Right: 1, Top: top})
	}
	s := st.Summary
	return row.New(22).Add(
		col.New(4).Add(
			text.New(fmt.Sprintf("%d lançamento(s), %d pendente(s)", s.Total, s.Pending), props.Text{
				Size: 8, Top: 2, Color: colorGray,
			}),
		),
		col.New(4).Add(
			label("Receitas pagas:", 2),
			label("Despesas pagas:", 8),
			text.New("SALDO:", props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Right: 2, Top: 14,
			}),
		),
		col.New(4).Add(
			value(money.Format(s.Revenue), 2),
			value(money.Format(s.Expense), 8),
			text.New(money.Format(s.Balance), props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Right: 1, Top: 14,
			}),
		),
	)
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
