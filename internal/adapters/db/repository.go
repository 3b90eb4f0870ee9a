// internal/adapters/db/repository.go
package db

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/ammerola/stockflow-be/internal/core/domain"
	"github.com/ammerola/stockflow-be/internal/core/ports"
)

// partyRepository serves both customers and suppliers; the two tables share
// one shape and differ only in name and in which invoices reference them.
type partyRepository struct {
	q      ports.Querier
	table  string
	entity string
	logger *slog.Logger
}

var _ ports.PartyRepository = (*partyRepository)(nil)

// NewCustomerRepository creates a party repository over the customers table
func NewCustomerRepository(q ports.Querier, logger *slog.Logger) ports.PartyRepository {
	return newPartyRepository(q, "customers", domain.EntityCustomer, logger)
}

// NewSupplierRepository creates a party repository over the suppliers table
func NewSupplierRepository(q ports.Querier, logger *slog.Logger) ports.PartyRepository {
	return newPartyRepository(q, "suppliers", domain.EntitySupplier, logger)
}

func newPartyRepository(q ports.Querier, table, entity string, logger *slog.Logger) *partyRepository {
	return &partyRepository{
		q:      q,
		table:  table,
		entity: entity,
		logger: logger.With(slog.String("repository", table)),
	}
}

func (r *partyRepository) notFound(id int64) error {
	return &domain.NotFoundError{Entity: r.entity, ID: id}
}

func (r *partyRepository) writeError(err error, id int64) error {
	if isUniqueViolation(err) {
		return &domain.DuplicateError{Entity: r.entity, Field: "phone_no"}
	}
	return translateError(err, r.entity, id)
}

// Create inserts a party
func (r *partyRepository) Create(ctx context.Context, party *domain.Party) error {
	query, args, err := squirrel.Insert(r.table).
		Columns("name", "phone_no", "address").
		Values(party.Name, party.PhoneNo, party.Address).
		Suffix("RETURNING id, created_at, updated_at").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build query: %w", err)
	}

	if err := r.q.QueryRow(ctx, query, args...).Scan(&party.ID, &party.CreatedAt, &party.UpdatedAt); err != nil {
		return r.writeError(err, 0)
	}

	r.logger.DebugContext(ctx, "party saved", slog.Int64("id", party.ID))
	return nil
}

// Update replaces name, phone and address
func (r *partyRepository) Update(ctx context.Context, party *domain.Party) error {
	query, args, err := squirrel.Update(r.table).
		Set("name", party.Name).
		Set("phone_no", party.PhoneNo).
		Set("address", party.Address).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": party.ID}).
		Suffix("RETURNING created_at, updated_at").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build query: %w", err)
	}

	if err := r.q.QueryRow(ctx, query, args...).Scan(&party.CreatedAt, &party.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return r.notFound(party.ID)
		}
		return r.writeError(err, party.ID)
	}
	return nil
}

func (r *partyRepository) selectBuilder() squirrel.SelectBuilder {
	return squirrel.Select("id", "name", "phone_no", "address", "created_at", "updated_at").
		From(r.table).
		PlaceholderFormat(squirrel.Dollar)
}

func scanParty(row pgx.Row) (*domain.Party, error) {
	p := &domain.Party{}
	if err := row.Scan(&p.ID, &p.Name, &p.PhoneNo, &p.Address, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	return p, nil
}

// FindByID retrieves a party by id
func (r *partyRepository) FindByID(ctx context.Context, id int64) (*domain.Party, error) {
	query, args, err := r.selectBuilder().Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	p, err := scanParty(r.q.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, r.notFound(id)
		}
		return nil, fmt.Errorf("failed to find %s: %w", r.entity, err)
	}
	return p, nil
}

// List returns parties in id order
func (r *partyRepository) List(ctx context.Context, params ports.ListParams) (*ports.ListResult[domain.Party], error) {
	total, err := countRows(ctx, r.q, "SELECT COUNT(*) FROM "+r.table)
	if err != nil {
		return nil, err
	}

	query, args, err := paginate(r.selectBuilder().OrderBy("id ASC"), params).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", r.table, err)
	}
	defer rows.Close()

	var parties []domain.Party
	for rows.Next() {
		p, err := scanParty(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan %s: %w", r.entity, err)
		}
		parties = append(parties, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return ports.NewListResult(parties, total, params), nil
}

// Delete removes a party that has no invoices
func (r *partyRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.q.Exec(ctx, "DELETE FROM "+r.table+" WHERE id = $1", id)
	if err != nil {
		if pgErr, ok := pgError(err); ok && pgErr.Code == pgForeignKeyViolation {
			return domain.NewValidationError("id", r.entity+" is referenced by existing invoices")
		}
		return fmt.Errorf("failed to delete %s: %w", r.entity, err)
	}
	if tag.RowsAffected() == 0 {
		return r.notFound(id)
	}

	r.logger.InfoContext(ctx, "party deleted", slog.Int64("id", id))
	return nil
}
