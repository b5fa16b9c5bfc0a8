package customer

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"retail-customers/internal/domain"
)

type postgresRepo struct {
	pool   *pgxpool.Pool
	logger *zap.Logger
}

// NewPostgres returns a Repository backed by Postgres.
func NewPostgres(pool *pgxpool.Pool, logger *zap.Logger) Repository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &postgresRepo{pool: pool, logger: logger}
}

const customerColumns = `id, first_name, last_name, email, phone_number, street, city, postal_code, country,
       available_credit_cents, currency, created_at, updated_at`

func (r *postgresRepo) Save(ctx context.Context, c *domain.Customer) error {
	const q = `
INSERT INTO customers (
    id, first_name, last_name, email, phone_number, street, city, postal_code, country,
    available_credit_cents, currency, created_at, updated_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
`
	rec := ToRecord(c)
	_, err := r.pool.Exec(ctx, q,
		rec.ID,
		rec.FirstName,
		rec.LastName,
		rec.Email,
		rec.PhoneNumber,
		rec.Address.Street,
		rec.Address.City,
		rec.Address.PostalCode,
		rec.Address.Country,
		rec.AvailableCreditInCents,
		rec.Currency,
		rec.CreatedAt,
		rec.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("customer with id %s %w", rec.ID, domain.ErrAlreadyExists)
		}
		r.logger.Error("insert customer", zap.String("id", rec.ID), zap.Error(err))
		return err
	}
	return nil
}

func (r *postgresRepo) FindByID(ctx context.Context, id domain.CustomerID) (*domain.Customer, error) {
	q := `SELECT ` + customerColumns + `
FROM customers
WHERE id = $1
LIMIT 1`
	c, err := r.scanCustomer(r.pool.QueryRow(ctx, q, id.String()))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return c, err
}

func (r *postgresRepo) FindAll(ctx context.Context) ([]*domain.Customer, error) {
	q := `SELECT ` + customerColumns + `
FROM customers
ORDER BY created_at, id`
	return r.list(ctx, q)
}

func (r *postgresRepo) Update(ctx context.Context, c *domain.Customer) error {
	const q = `
UPDATE customers
SET first_name = $2,
    last_name = $3,
    email = $4,
    phone_number = $5,
    street = $6,
    city = $7,
    postal_code = $8,
    country = $9,
    available_credit_cents = $10,
    currency = $11,
    updated_at = $12
WHERE id = $1
`
	rec := ToRecord(c)
	tag, err := r.pool.Exec(ctx, q,
		rec.ID,
		rec.FirstName,
		rec.LastName,
		rec.Email,
		rec.PhoneNumber,
		rec.Address.Street,
		rec.Address.City,
		rec.Address.PostalCode,
		rec.Address.Country,
		rec.AvailableCreditInCents,
		rec.Currency,
		rec.UpdatedAt,
	)
	if err != nil {
		r.logger.Error("update customer", zap.String("id", rec.ID), zap.Error(err))
		return err
	}
	if tag.RowsAffected() == 0 {
		return notFound(c.ID())
	}
	return nil
}

func (r *postgresRepo) Delete(ctx context.Context, id domain.CustomerID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM customers WHERE id = $1`, id.String())
	if err != nil {
		r.logger.Error("delete customer", zap.String("id", id.String()), zap.Error(err))
		return err
	}
	if tag.RowsAffected() == 0 {
		return notFound(id)
	}
	return nil
}

func (r *postgresRepo) FindAllSortedByCredit(ctx context.Context, ascending bool) ([]*domain.Customer, error) {
	direction := "DESC"
	if ascending {
		direction = "ASC"
	}
	q := `SELECT ` + customerColumns + `
FROM customers
ORDER BY available_credit_cents ` + direction + `, created_at, id`
	return r.list(ctx, q)
}

func (r *postgresRepo) list(ctx context.Context, q string) ([]*domain.Customer, error) {
	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		r.logger.Error("list customers", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var out []*domain.Customer
	for rows.Next() {
		c, err := r.scanCustomer(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *postgresRepo) scanCustomer(row pgx.Row) (*domain.Customer, error) {
	var rec Record
	err := row.Scan(
		&rec.ID,
		&rec.FirstName,
		&rec.LastName,
		&rec.Email,
		&rec.PhoneNumber,
		&rec.Address.Street,
		&rec.Address.City,
		&rec.Address.PostalCode,
		&rec.Address.Country,
		&rec.AvailableCreditInCents,
		&rec.Currency,
		&rec.CreatedAt,
		&rec.UpdatedAt,
	)
	if err != nil {
		if !errors.Is(err, pgx.ErrNoRows) {
			r.logger.Error("scan customer", zap.Error(err))
		}
		return nil, err
	}
	c, err := rec.Customer()
	if err != nil {
		r.logger.Error("decode customer row", zap.String("id", rec.ID), zap.Error(err))
		return nil, err
	}
	return c, nil
}
