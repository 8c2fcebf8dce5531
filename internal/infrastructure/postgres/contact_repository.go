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

var _ repository.ContactRepository = (*ContactRepo)(nil)

const contactColumns = `idcontato, idcliente, tipo, assunto, descricao, data_cadastro::text, responsavel,
	data_proximo_contato::text, observacoes, ativo`

// ContactRepo implementación de ContactRepository sobre contato_cliente.
type ContactRepo struct {
	q       Querier
	metrics *metrics.Metrics
}

// NewContactRepository construye el adaptador.
func NewContactRepository(q Querier, m *metrics.Metrics) *ContactRepo {
	return &ContactRepo{q: q, metrics: m}
}

func scanContact(row pgx.Row) (contactRow, error) {
	var r contactRow
	err := row.Scan(&r.ID, &r.CustomerID, &r.Type, &r.Subject, &r.Description, &r.CreatedOn,
		&r.Responsible, &r.NextContactOn, &r.Notes, &r.Active)
	return r, err
}

// List devuelve los contactos por data_cadastro descendente.
func (r *ContactRepo) List(ctx context.Context) ([]entity.Contact, error) {
	rows, err := r.q.Query(ctx, `SELECT `+contactColumns+` FROM contato_cliente ORDER BY data_cadastro DESC, idcontato DESC`)
	if err != nil {
		return nil, fmt.Errorf("list contato_cliente: %w", err)
	}
	defer rows.Close()
	list := make([]entity.Contact, 0)
	for rows.Next() {
		raw, err := scanContact(rows)
		if err != nil {
			return nil, fmt.Errorf("scan contato: %w", err)
		}
		c, err := decodeContact(raw)
		if err != nil {
			dropped(r.metrics, "contato_cliente", raw.ID, err)
			continue
		}
		list = append(list, c)
	}
	return list, rows.Err()
}

// Insert persiste el contacto y devuelve la fila creada.
func (r *ContactRepo) Insert(ctx context.Context, c entity.Contact) (entity.Contact, error) {
	query := `
		INSERT INTO contato_cliente (idcliente, tipo, assunto, descricao, data_cadastro, responsavel,
			data_proximo_contato, observacoes, ativo)
		VALUES ($1, $2, $3, $4, $5::date, $6, $7::date, $8, $9)
		RETURNING ` + contactColumns
	raw, err := scanContact(r.q.QueryRow(ctx, query,
		c.CustomerID, string(c.Type), c.Subject, c.Description, formatDate(c.CreatedOn), nullIfEmpty(c.Responsible),
		formatOptionalDate(c.NextContactOn), nullIfEmpty(c.Notes), c.Active,
	))
	if err != nil {
		return entity.Contact{}, fmt.Errorf("insert contato: %w", err)
	}
	created, err := decodeContact(raw)
	if err != nil {
		return entity.Contact{}, fmt.Errorf("insert contato: %w", err)
	}
	return created, nil
}

// Update reescribe el contacto por idcontato.
func (r *ContactRepo) Update(ctx context.Context, c entity.Contact) error {
	query := `
		UPDATE contato_cliente SET idcliente = $2, tipo = $3, assunto = $4, descricao = $5,
			data_cadastro = $6::date, responsavel = $7, data_proximo_contato = $8::date,
			observacoes = $9, ativo = $10
		WHERE idcontato = $1`
	tag, err := r.q.Exec(ctx, query,
		c.ID, c.CustomerID, string(c.Type), c.Subject, c.Description, formatDate(c.CreatedOn),
		nullIfEmpty(c.Responsible), formatOptionalDate(c.NextContactOn), nullIfEmpty(c.Notes), c.Active,
	)
	if err != nil {
		return fmt.Errorf("update contato: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("contato %d: %w", c.ID, domain.ErrNotFound)
	}
	return nil
}

// Delete elimina un contacto por id.
func (r *ContactRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM contato_cliente WHERE idcontato = $1`, id)
	if err != nil {
		return fmt.Errorf("delete contato: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("contato %d: %w", id, domain.ErrNotFound)
	}
	return nil
}
