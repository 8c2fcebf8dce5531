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

var _ repository.TicketRepository = (*TicketRepo)(nil)

const ticketColumns = `idchamado, titulo, descricao, dataabertura::text, datafechamento::text, status, solucao, idcliente, tipo`

// TicketRepo implementación de TicketRepository sobre la tabla chamados.
type TicketRepo struct {
	q       Querier
	metrics *metrics.Metrics
}

// NewTicketRepository construye el adaptador. Pasar pool o tx (Querier).
func NewTicketRepository(q Querier, m *metrics.Metrics) *TicketRepo {
	return &TicketRepo{q: q, metrics: m}
}

func scanTicket(row pgx.Row) (ticketRow, error) {
	var r ticketRow
	err := row.Scan(&r.ID, &r.Title, &r.Description, &r.OpenedAt, &r.ClosedAt, &r.Status, &r.Solution, &r.CustomerID, &r.Category)
	return r, err
}

// List devuelve los chamados del más reciente al más antiguo.
func (r *TicketRepo) List(ctx context.Context) ([]entity.Ticket, error) {
	rows, err := r.q.Query(ctx, `SELECT `+ticketColumns+` FROM chamados ORDER BY dataabertura DESC, idchamado DESC`)
	if err != nil {
		return nil, fmt.Errorf("list chamados: %w", err)
	}
	defer rows.Close()
	list := make([]entity.Ticket, 0)
	for rows.Next() {
		raw, err := scanTicket(rows)
		if err != nil {
			return nil, fmt.Errorf("scan chamado: %w", err)
		}
		t, err := decodeTicket(raw)
		if err != nil {
			dropped(r.metrics, "chamados", raw.ID, err)
			continue
		}
		list = append(list, t)
	}
	return list, rows.Err()
}

// Insert persiste el chamado y devuelve la fila creada.
func (r *TicketRepo) Insert(ctx context.Context, t entity.Ticket) (entity.Ticket, error) {
	query := `
		INSERT INTO chamados (titulo, descricao, dataabertura, datafechamento, status, solucao, idcliente, tipo)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING ` + ticketColumns
	raw, err := scanTicket(r.q.QueryRow(ctx, query,
		t.Title, t.Description, t.OpenedAt, t.ClosedAt, string(t.Status), nullIfEmpty(t.Solution), t.CustomerID, t.Category,
	))
	if err != nil {
		if isUniqueViolation(err) {
			return entity.Ticket{}, domain.ErrDuplicate
		}
		return entity.Ticket{}, fmt.Errorf("insert chamado: %w", err)
	}
	created, err := decodeTicket(raw)
	if err != nil {
		return entity.Ticket{}, fmt.Errorf("insert chamado: %w", err)
	}
	return created, nil
}

// Update reescribe el chamado por idchamado.
func (r *TicketRepo) Update(ctx context.Context, t entity.Ticket) error {
	query := `
		UPDATE chamados SET titulo = $2, descricao = $3, dataabertura = $4, datafechamento = $5,
			status = $6, solucao = $7, idcliente = $8, tipo = $9
		WHERE idchamado = $1`
	tag, err := r.q.Exec(ctx, query,
		t.ID, t.Title, t.Description, t.OpenedAt, t.ClosedAt, string(t.Status), nullIfEmpty(t.Solution), t.CustomerID, t.Category,
	)
	if err != nil {
		return fmt.Errorf("update chamado: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("chamado %d: %w", t.ID, domain.ErrNotFound)
	}
	return nil
}

// Delete elimina un chamado por id.
func (r *TicketRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM chamados WHERE idchamado = $1`, id)
	if err != nil {
		return fmt.Errorf("delete chamado: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("chamado %d: %w", id, domain.ErrNotFound)
	}
	return nil
}
