// internal/adapters/db/dashboard_repository.go
package db

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"golang.org/x/sync/errgroup"

	"github.com/ammerola/frontdesk-be/internal/core/domain"
	"github.com/ammerola/frontdesk-be/internal/core/ports"
)

// dashboardRepository implements ports.DashboardRepository
type dashboardRepository struct {
	db     *Database
	logger *slog.Logger
}

// NewDashboardRepository creates a new dashboard repository
func NewDashboardRepository(db *Database, logger *slog.Logger) ports.DashboardRepository {
	return &dashboardRepository{
		db:     db,
		logger: logger.With(slog.String("repository", "dashboard")),
	}
}

// Summary aggregates counts across the desk tables. The queries run
// concurrently on separate pool connections.
func (r *dashboardRepository) Summary(ctx context.Context, lowStockThreshold int) (*domain.DashboardSummary, error) {
	summary := &domain.DashboardSummary{
		DevicesByStatus: make(map[domain.DeviceStatus]int64),
		GeneratedAt:     time.Now().UTC(),
	}

	counts := []struct {
		target *int64
		query  string
		args   []interface{}
	}{
		{&summary.Customers, `SELECT 1 FROM customers`, nil},
		{&summary.Employees, `SELECT 1 FROM employees`, nil},
		{&summary.OpenBorrowings, `SELECT 1 FROM borrowings WHERE return_date IS NULL`, nil},
		{&summary.LowStockItems, `SELECT 1 FROM inventory WHERE current_stock <= $1`, []interface{}{lowStockThreshold}},
	}

	g, gctx := errgroup.WithContext(ctx)

	for _, c := range counts {
		g.Go(func() error {
			n, err := r.db.Count(gctx, c.query, c.args...)
			if err != nil {
				return fmt.Errorf("failed to count: %w", err)
			}
			*c.target = n
			return nil
		})
	}

	var byStatus map[domain.DeviceStatus]int64
	g.Go(func() error {
		var err error
		byStatus, err = r.devicesByStatus(gctx)
		return err
	})

	g.Go(func() error {
		err := r.db.QueryRow(gctx, `SELECT COUNT(*), COALESCE(SUM(amount), 0) FROM sales`).
			Scan(&summary.SalesCount, &summary.SalesTotal)
		if err != nil {
			return fmt.Errorf("failed to total sales: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	summary.DevicesByStatus = byStatus
	r.logger.DebugContext(ctx, "dashboard summary built",
		slog.Int64("sales_count", summary.SalesCount),
		slog.Int64("low_stock_items", summary.LowStockItems))

	return summary, nil
}

func (r *dashboardRepository) devicesByStatus(ctx context.Context) (map[domain.DeviceStatus]int64, error) {
	rows, err := r.db.Query(ctx, `SELECT status, COUNT(*) FROM devices GROUP BY status`)
	if err != nil {
		return nil, fmt.Errorf("failed to count devices: %w", err)
	}

	type statusCount struct {
		status string
		count  int64
	}
	counts, err := ScanMany(rows, func(row pgx.Rows) (statusCount, error) {
		var sc statusCount
		err := row.Scan(&sc.status, &sc.count)
		return sc, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan device counts: %w", err)
	}

	byStatus := make(map[domain.DeviceStatus]int64, len(counts))
	for _, sc := range counts {
		byStatus[domain.DeviceStatus(sc.status)] = sc.count
	}
	return byStatus, nil
}
