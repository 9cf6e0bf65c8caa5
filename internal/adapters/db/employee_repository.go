// internal/adapters/db/employee_repository.go
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

var employeeColumns = []string{"id", "name", "position", "department", "created_at"}

// employeeRepository implements ports.EmployeeRepository
type employeeRepository struct {
	db     *Database
	logger *slog.Logger
}

// NewEmployeeRepository creates a new employee repository
func NewEmployeeRepository(db *Database, logger *slog.Logger) ports.EmployeeRepository {
	return &employeeRepository{
		db:     db,
		logger: logger.With(slog.String("repository", "employee")),
	}
}

// Save inserts a new employee and fills in its id
func (r *employeeRepository) Save(ctx context.Context, e *domain.Employee) error {
	query := `
		INSERT INTO employees (name, position, department)
		VALUES ($1, $2, $3)
		RETURNING id, created_at`

	if err := r.db.QueryRow(ctx, query, e.Name, e.Position, e.Department).Scan(&e.ID, &e.CreatedAt); err != nil {
		return fmt.Errorf("failed to save employee: %w", err)
	}

	r.logger.DebugContext(ctx, "employee saved", slog.Int64("id", e.ID))
	return nil
}

// FindByID retrieves an employee by id
func (r *employeeRepository) FindByID(ctx context.Context, id int64) (*domain.Employee, error) {
	qb := psql.Select(employeeColumns...).From("employees").Where(squirrel.Eq{"id": id})

	e, err := selectFirst(ctx, r.db, qb, func(row pgx.Row) (*domain.Employee, error) {
		emp, err := scanEmployee(row)
		return &emp, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to find employee: %w", err)
	}
	return e, nil
}

// FindAll lists every employee by id
func (r *employeeRepository) FindAll(ctx context.Context) ([]domain.Employee, error) {
	qb := psql.Select(employeeColumns...).From("employees").OrderBy("id ASC")

	employees, err := selectAll(ctx, r.db, qb, func(rows pgx.Rows) (domain.Employee, error) {
		return scanEmployee(rows)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	return employees, nil
}

func scanEmployee(row pgx.Row) (domain.Employee, error) {
	var e domain.Employee
	err := row.Scan(&e.ID, &e.Name, &e.Position, &e.Department, &e.CreatedAt)
	return e, err
}
