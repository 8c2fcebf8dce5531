package billing

import (
	"context"
	"time"

	"github.com/jhoicas/bione-api/internal/application/views"
	"github.com/jhoicas/bione-api/internal/domain/entity"
)

// StatementGenerator genera el PDF del extracto financiero de un cliente.
type StatementGenerator interface {
	GenerateStatementPDF(ctx context.Context, st Statement) ([]byte, error)
}

// Statement datos ya resueltos que recibe el generador.
type Statement struct {
	Title       string
	Customer    entity.Customer
	GeneratedAt time.Time
	// Entries en orden cronológico por data_cadastro.
	Entries []entity.Financial
	Summary views.FinancialSummary
}

// CustomerSource búsqueda de clientes (la store de clientes la satisface).
type CustomerSource interface {
	Find(id int64) (entity.Customer, bool)
}

// FinancialSource colección de lanzamientos (la store financiera la satisface).
type FinancialSource interface {
	Items() []entity.Financial
}
