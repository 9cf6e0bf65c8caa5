// internal/core/services/customer.go
package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ammerola/frontdesk-be/internal/core/domain"
	"github.com/ammerola/frontdesk-be/internal/core/ports"
)

// CustomerService handles customer registration
type CustomerService struct {
	repo   ports.CustomerRepository
	cache  *ListingCache
	logger *slog.Logger
}

var _ ports.CustomerService = (*CustomerService)(nil)

// NewCustomerService creates a new customer service
func NewCustomerService(repo ports.CustomerRepository, cache *ListingCache, logger *slog.Logger) *CustomerService {
	return &CustomerService{
		repo:   repo,
		cache:  cache,
		logger: logger.With(slog.String("service", "customer")),
	}
}

// AddCustomer registers a customer. Duplicate names are allowed.
func (s *CustomerService) AddCustomer(ctx context.Context, name, contact string) (*domain.Customer, error) {
	customer := &domain.Customer{Name: name, ContactInfo: contact}
	if err := customer.Validate(); err != nil {
		return nil, err
	}

	if err := s.repo.Save(ctx, customer); err != nil {
		return nil, fmt.Errorf("failed to save customer: %w", err)
	}

	s.cache.invalidate(ctx, KeyCustomers, KeyDashboard)
	s.logger.InfoContext(ctx, "customer added", slog.Int64("id", customer.ID))

	return customer, nil
}

// ListCustomers returns every customer by id
func (s *CustomerService) ListCustomers(ctx context.Context) ([]domain.Customer, error) {
	customers, err := cachedList(ctx, s.cache, KeyCustomers, s.repo.FindAll)
	if err != nil {
		return nil, fmt.Errorf("failed to list customers: %w", err)
	}
	return customers, nil
}
