// internal/core/services/dashboard.go
package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ammerola/frontdesk-be/internal/core/domain"
	"github.com/ammerola/frontdesk-be/internal/core/ports"
)

// DashboardService builds the desk summary
type DashboardService struct {
	repo              ports.DashboardRepository
	cache             *ListingCache
	lowStockThreshold int
	logger            *slog.Logger
}

var _ ports.DashboardService = (*DashboardService)(nil)

// NewDashboardService creates a new dashboard service
func NewDashboardService(repo ports.DashboardRepository, cache *ListingCache, lowStockThreshold int, logger *slog.Logger) *DashboardService {
	return &DashboardService{
		repo:              repo,
		cache:             cache,
		lowStockThreshold: lowStockThreshold,
		logger:            logger.With(slog.String("service", "dashboard")),
	}
}

// Summary returns the desk figures
func (s *DashboardService) Summary(ctx context.Context) (*domain.DashboardSummary, error) {
	summary, err := cachedValue(ctx, s.cache, KeyDashboard, func(ctx context.Context) (*domain.DashboardSummary, error) {
		return s.repo.Summary(ctx, s.lowStockThreshold)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build dashboard: %w", err)
	}
	return summary, nil
}
