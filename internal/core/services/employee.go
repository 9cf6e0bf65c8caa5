// internal/core/services/employee.go
package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ammerola/frontdesk-be/internal/core/domain"
	"github.com/ammerola/frontdesk-be/internal/core/ports"
)

// EmployeeService handles desk staff records
type EmployeeService struct {
	repo   ports.EmployeeRepository
	cache  *ListingCache
	logger *slog.Logger
}

var _ ports.EmployeeService = (*EmployeeService)(nil)

// NewEmployeeService creates a new employee service
func NewEmployeeService(repo ports.EmployeeRepository, cache *ListingCache, logger *slog.Logger) *EmployeeService {
	return &EmployeeService{
		repo:   repo,
		cache:  cache,
		logger: logger.With(slog.String("service", "employee")),
	}
}

// AddEmployee validates and stores a new employee
func (s *EmployeeService) AddEmployee(ctx context.Context, employee *domain.Employee) error {
	if err := employee.Validate(); err != nil {
		return err
	}

	if err := s.repo.Save(ctx, employee); err != nil {
		return fmt.Errorf("failed to save employee: %w", err)
	}

	s.cache.invalidate(ctx, KeyEmployees, KeyDashboard)
	s.logger.InfoContext(ctx, "employee added", slog.Int64("id", employee.ID))
	return nil
}

// ListEmployees returns every employee by id
func (s *EmployeeService) ListEmployees(ctx context.Context) ([]domain.Employee, error) {
	employees, err := cachedList(ctx, s.cache, KeyEmployees, s.repo.FindAll)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	return employees, nil
}

// resolveEmployee checks that an explicit employee id refers to a stored employee
func resolveEmployee(ctx context.Context, repo ports.EmployeeRepository, id *int64) error {
	if id == nil {
		return nil
	}
	employee, err := repo.FindByID(ctx, *id)
	if err != nil {
		return fmt.Errorf("failed to find employee: %w", err)
	}
	if employee == nil {
		return domain.NewInputError(domain.MsgUnknownEmployee)
	}
	return nil
}
