package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/bione-api/internal/domain"
	"github.com/jhoicas/bione-api/internal/domain/entity"
	"github.com/jhoicas/bione-api/internal/domain/repository"
	"github.com/jhoicas/bione-api/internal/infrastructure/metrics"
)

var _ repository.FinancialRepository = (*FinancialRepo)(nil)

const financialColumns = `idfinanceiro, idcliente, descricao, valor, tipo, data_cadastro::text, status,
	vencimento::text, observacoes, ativo`

// FinancialRepo implementación de FinancialRepository sobre financeiro.
// valor (NUMERIC) se lee con el codec de shopspring/decimal registrado en el pool.
type FinancialRepo struct {
	q       Querier
	metrics *metrics.Metrics
}

// NewFinancialRepository construye el adaptador.
func NewFinancialRepository(q Querier, m *metrics.Metrics) *FinancialRepo {
	return &FinancialRepo{q: q, metrics: m}
}

func scanFinancial(row pgx.Row) (financialRow, error) {
	var r financialRow
	err := row.Scan(&r.ID, &r.CustomerID, &r.Description, &r.Amount, &r.Kind, &r.CreatedOn,
		&r.Status, &r.DueOn, &r.Notes, &r.Active)
	return r, err
}

// List devuelve los lanzamientos por data_cadastro descendente.
func (r *FinancialRepo) List(ctx context.Context) ([]entity.Financial, error) {
	rows, err := r.q.Query(ctx, `SELECT `+financialColumns+` FROM financeiro ORDER BY data_cadastro DESC, idfinanceiro DESC`)
	if err != nil {
		return nil, fmt.Errorf("list financeiro: %w", err)
	}
	defer rows.Close()
	list := make([]entity.Financial, 0)
	for rows.Next() {
		raw, err := scanFinancial(rows)
		if err != nil {
			return nil, fmt.Errorf("scan financeiro: %w", err)
		}
		f, err := decodeFinancial(raw)
		if err != nil {
			dropped(r.metrics, "financeiro", raw.ID, err)
			continue
		}
		list = append(list, f)
	}
	return list, rows.Err()
}

// Insert persiste el lanzamiento y devuelve la fila creada.
func (r *FinancialRepo) Insert(ctx context.Context, f entity.Financial) (entity.Financial, error) {
	query := `
		INSERT INTO financeiro (idcliente, descricao, valor, tipo, data_cadastro, status, vencimento, observacoes, ativo)
		VALUES ($1, $2, $3, $4, $5::date, $6, $7::date, $8, $9)
		RETURNING ` + financialColumns
	raw, err := scanFinancial(r.q.QueryRow(ctx, query,
		f.CustomerID, f.Description, f.Amount, string(f.Kind), formatDate(f.CreatedOn), string(f.Status),
		formatOptionalDate(f.DueOn), nullIfEmpty(f.Notes), f.Active,
	))
	if err != nil {
		return entity.Financial{}, fmt.Errorf("insert financeiro: %w", err)
	}
	created, err := decodeFinancial(raw)
	if err != nil {
		return entity.Financial{}, fmt.Errorf("insert financeiro: %w", err)
	}
	return created, nil
}

// Update reescribe el lanzamiento por idfinanceiro.
func (r *FinancialRepo) Update(ctx context.Context, f entity.Financial) error {
	query := `
		UPDATE financeiro SET idcliente = $2, descricao = $3, valor = $4, tipo = $5, data_cadastro = $6::date,
			status = $7, vencimento = $8::date, observacoes = $9, ativo = $10
		WHERE idfinanceiro = $1`
	tag, err := r.q.Exec(ctx, query,
		f.ID, f.CustomerID, f.Description, f.Amount, string(f.Kind), formatDate(f.CreatedOn), string(f.Status),
		formatOptionalDate(f.DueOn), nullIfEmpty(f.Notes), f.Active,
	)
	if err != nil {
		return fmt.Errorf("update financeiro: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("financeiro %d: %w", f.ID, domain.ErrNotFound)
	}
	return nil
}

// Delete elimina un lanzamiento por id.
func (r *FinancialRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM financeiro WHERE idfinanceiro = $1`, id)
	if err != nil {
		return fmt.Errorf("delete financeiro: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("financeiro %d: %w", id, domain.ErrNotFound)
	}
	return nil
}
