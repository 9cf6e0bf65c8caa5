// internal/adapters/db/customer_repository.go
package db

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/ammerola/frontdesk-be/internal/core/domain"
	"github.com/ammerola/frontdesk-be/internal/core/ports"
)

var customerColumns = []string{"id", "name", "contact_info", "created_at"}

// customerRepository implements ports.CustomerRepository
type customerRepository struct {
	db     *Database
	logger *slog.Logger
}

// NewCustomerRepository creates a new customer repository
func NewCustomerRepository(db *Database, logger *slog.Logger) ports.CustomerRepository {
	return &customerRepository{
		db:     db,
		logger: logger.With(slog.String("repository", "customer")),
	}
}

// Save inserts a new customer and fills in its id
func (r *customerRepository) Save(ctx context.Context, c *domain.Customer) error {
	query := `
		INSERT INTO customers (name, contact_info)
		VALUES ($1, $2)
		RETURNING id, created_at`

	if err := r.db.QueryRow(ctx, query, c.Name, c.ContactInfo).Scan(&c.ID, &c.CreatedAt); err != nil {
		return fmt.Errorf("failed to save customer: %w", err)
	}

	r.logger.DebugContext(ctx, "customer saved", slog.Int64("id", c.ID))
	return nil
}

// FindFirstByName returns the lowest-id customer with the exact name
func (r *customerRepository) FindFirstByName(ctx context.Context, name string) (*domain.Customer, error) {
	qb := psql.Select(customerColumns...).From("customers").Where(squirrel.Eq{"name": name})

	c, err := selectFirst(ctx, r.db, qb, func(row pgx.Row) (*domain.Customer, error) {
		customer, err := scanCustomer(row)
		return &customer, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to find customer: %w", err)
	}
	return c, nil
}

// FindAll lists every customer by id
func (r *customerRepository) FindAll(ctx context.Context) ([]domain.Customer, error) {
	qb := psql.Select(customerColumns...).From("customers").OrderBy("id ASC")

	customers, err := selectAll(ctx, r.db, qb, func(rows pgx.Rows) (domain.Customer, error) {
		return scanCustomer(rows)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list customers: %w", err)
	}
	return customers, nil
}

func scanCustomer(row pgx.Row) (domain.Customer, error) {
	var c domain.Customer
	err := row.Scan(&c.ID, &c.Name, &c.ContactInfo, &c.CreatedAt)
	return c, err
}
