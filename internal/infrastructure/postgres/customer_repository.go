package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog/log"

	"github.com/jhoicas/bione-api/internal/domain"
	"github.com/jhoicas/bione-api/internal/domain/entity"
	"github.com/jhoicas/bione-api/internal/domain/repository"
	"github.com/jhoicas/bione-api/internal/infrastructure/metrics"
)

var _ repository.CustomerRepository = (*CustomerRepo)(nil)

const customerColumns = `idcliente, razao, fantasia, cpcn, ativo, email, observacoes`

// CustomerRepo implementación de CustomerRepository sobre clientes + clientes_telefone.
// Las escrituras que tocan las dos tablas van en una transacción.
type CustomerRepo struct {
	q       Querier
	tx      *TxRunner
	metrics *metrics.Metrics
}

// NewCustomerRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCustomerRepository(q Querier, m *metrics.Metrics) *CustomerRepo {
	return &CustomerRepo{q: q, tx: NewTxRunner(q), metrics: m}
}

// List devuelve los clientes por idcliente descendente con sus teléfonos.
func (r *CustomerRepo) List(ctx context.Context) ([]entity.Customer, error) {
	rows, err := r.q.Query(ctx, `SELECT `+customerColumns+` FROM clientes ORDER BY idcliente DESC`)
	if err != nil {
		return nil, fmt.Errorf("list clientes: %w", err)
	}
	var raws []customerRow
	ids := make([]int64, 0)
	for rows.Next() {
		var c customerRow
		if err := rows.Scan(&c.ID, &c.LegalName, &c.TradeName, &c.TaxID, &c.Active, &c.Email, &c.Notes); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan cliente: %w", err)
		}
		raws = append(raws, c)
		ids = append(ids, c.ID)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list clientes: %w", err)
	}

	phones, err := r.phonesByCustomer(ctx, ids)
	if err != nil {
		return nil, err
	}

	list := make([]entity.Customer, 0, len(raws))
	for _, raw := range raws {
		c, err := decodeCustomer(raw, phones[raw.ID])
		if err != nil {
			dropped(r.metrics, "clientes", raw.ID, err)
			continue
		}
		list = append(list, c)
	}
	return list, nil
}

func (r *CustomerRepo) phonesByCustomer(ctx context.Context, ids []int64) (map[int64][]phoneRow, error) {
	out := make(map[int64][]phoneRow, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	rows, err := r.q.Query(ctx, `
		SELECT idtelefone, idcliente, celular, responsavel, email, ativo
		FROM clientes_telefone WHERE idcliente = ANY($1) ORDER BY idtelefone`, ids)
	if err != nil {
		return nil, fmt.Errorf("list clientes_telefone: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var p phoneRow
		if err := rows.Scan(&p.ID, &p.CustomerID, &p.Phone, &p.Responsible, &p.Email, &p.Active); err != nil {
			return nil, fmt.Errorf("scan telefone: %w", err)
		}
		out[p.CustomerID] = append(out[p.CustomerID], p)
	}
	return out, rows.Err()
}

// Insert crea el cliente y sus teléfonos. Si la tabla no tiene la columna observacoes,
// reintenta una vez sin ella.
func (r *CustomerRepo) Insert(ctx context.Context, c entity.Customer) (entity.Customer, error) {
	id, err := r.insert(ctx, c, true)
	if err != nil && isUndefinedColumn(err) {
		log.Warn().Err(err).Msg("clientes sin columna observacoes; reintentando sin ella")
		id, err = r.insert(ctx, c, false)
	}
	if err != nil {
		if isUniqueViolation(err) {
			return entity.Customer{}, domain.ErrDuplicate
		}
		return entity.Customer{}, fmt.Errorf("insert cliente: %w", err)
	}
	created, err := r.get(ctx, id)
	if err != nil {
		return entity.Customer{}, fmt.Errorf("insert cliente: %w", err)
	}
	return created, nil
}

func (r *CustomerRepo) insert(ctx context.Context, c entity.Customer, withNotes bool) (int64, error) {
	var id int64
	err := r.tx.Run(ctx, func(tx pgx.Tx) error {
		var row pgx.Row
		if withNotes {
			row = tx.QueryRow(ctx, `
				INSERT INTO clientes (razao, fantasia, cpcn, ativo, email, observacoes)
				VALUES ($1, $2, $3, $4, $5, $6) RETURNING idcliente`,
				c.LegalName, nullIfEmpty(c.TradeName), c.TaxID, c.Active, nullIfEmpty(c.Email), nullIfEmpty(c.Notes))
		} else {
			row = tx.QueryRow(ctx, `
				INSERT INTO clientes (razao, fantasia, cpcn, ativo, email)
				VALUES ($1, $2, $3, $4, $5) RETURNING idcliente`,
				c.LegalName, nullIfEmpty(c.TradeName), c.TaxID, c.Active, nullIfEmpty(c.Email))
		}
		if err := row.Scan(&id); err != nil {
			return err
		}
		return insertPhones(ctx, tx, id, c.Phones)
	})
	return id, err
}

// Update reescribe el cliente y reemplaza su lista de teléfonos.
func (r *CustomerRepo) Update(ctx context.Context, c entity.Customer) error {
	err := r.update(ctx, c, true)
	if err != nil && isUndefinedColumn(err) {
		log.Warn().Err(err).Msg("clientes sin columna observacoes; reintentando sin ella")
		err = r.update(ctx, c, false)
	}
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return err
		}
		return fmt.Errorf("update cliente: %w", err)
	}
	return nil
}

func (r *CustomerRepo) update(ctx context.Context, c entity.Customer, withNotes bool) error {
	return r.tx.Run(ctx, func(tx pgx.Tx) error {
		query := `UPDATE clientes SET razao = $2, fantasia = $3, cpcn = $4, ativo = $5, email = $6 WHERE idcliente = $1`
		args := []any{c.ID, c.LegalName, nullIfEmpty(c.TradeName), c.TaxID, c.Active, nullIfEmpty(c.Email)}
		if withNotes {
			query = `UPDATE clientes SET razao = $2, fantasia = $3, cpcn = $4, ativo = $5, email = $6, observacoes = $7 WHERE idcliente = $1`
			args = append(args, nullIfEmpty(c.Notes))
		}
		tag, err := tx.Exec(ctx, query, args...)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return fmt.Errorf("cliente %d: %w", c.ID, domain.ErrNotFound)
		}
		if _, err := tx.Exec(ctx, `DELETE FROM clientes_telefone WHERE idcliente = $1`, c.ID); err != nil {
			return fmt.Errorf("delete telefones: %w", err)
		}
		return insertPhones(ctx, tx, c.ID, c.Phones)
	})
}

// Delete elimina primero los teléfonos (FK) y después el cliente.
func (r *CustomerRepo) Delete(ctx context.Context, id int64) error {
	return r.tx.Run(ctx, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM clientes_telefone WHERE idcliente = $1`, id); err != nil {
			return fmt.Errorf("delete telefones: %w", err)
		}
		tag, err := tx.Exec(ctx, `DELETE FROM clientes WHERE idcliente = $1`, id)
		if err != nil {
			return fmt.Errorf("delete cliente: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return fmt.Errorf("cliente %d: %w", id, domain.ErrNotFound)
		}
		return nil
	})
}

func (r *CustomerRepo) get(ctx context.Context, id int64) (entity.Customer, error) {
	var raw customerRow
	err := r.q.QueryRow(ctx, `SELECT `+customerColumns+` FROM clientes WHERE idcliente = $1`, id).
		Scan(&raw.ID, &raw.LegalName, &raw.TradeName, &raw.TaxID, &raw.Active, &raw.Email, &raw.Notes)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return entity.Customer{}, fmt.Errorf("cliente %d: %w", id, domain.ErrNotFound)
		}
		return entity.Customer{}, fmt.Errorf("get cliente: %w", err)
	}
	phones, err := r.phonesByCustomer(ctx, []int64{id})
	if err != nil {
		return entity.Customer{}, err
	}
	return decodeCustomer(raw, phones[id])
}

// insertPhones guarda solo los contactos con teléfono o email.
func insertPhones(ctx context.Context, q Querier, customerID int64, phones []entity.CustomerPhone) error {
	for _, p := range phones {
		if !p.HasReachablePhone() {
			continue
		}
		_, err := q.Exec(ctx, `
			INSERT INTO clientes_telefone (idcliente, celular, responsavel, email, ativo)
			VALUES ($1, $2, $3, $4, $5)`,
			customerID, nullIfEmpty(p.Phone), nullIfEmpty(p.Responsible), nullIfEmpty(p.Email), p.Active)
		if err != nil {
			return fmt.Errorf("insert telefone: %w", err)
		}
	}
	return nil
}
