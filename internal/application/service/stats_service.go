package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/mesahq/mesa-api/internal/domain/repository"
	"github.com/mesahq/mesa-api/pkg/pagination"
	"github.com/shopspring/decimal"
)

const topItemsLimit = 10

// BusinessStats is the reporting view over a business's orders for a period
type BusinessStats struct {
	TotalOrders       int64                      `json:"total_orders"`
	PendingOrders     int64                      `json:"pending_orders"`
	CompletedOrders   int64                      `json:"completed_orders"`
	CancelledOrders   int64                      `json:"cancelled_orders"`
	TotalRevenue      decimal.Decimal            `json:"total_revenue"`
	AverageOrderValue decimal.Decimal            `json:"average_order_value"`
	TopSellingItems   []repository.TopItemResult `json:"top_selling_items"`
}

// DashboardStats bundles the common dashboard periods plus recent orders
type DashboardStats struct {
	Today        *BusinessStats            `json:"today"`
	ThisWeek     *BusinessStats            `json:"this_week"`
	ThisMonth    *BusinessStats            `json:"this_month"`
	RecentOrders []repository.OrderSummary `json:"recent_orders"`
}

// StatsService derives read-only reporting views from persisted orders.
// Results reflect the order set at query time; there are no transactional
// guarantees across the individual queries.
type StatsService struct {
	statsRepo repository.StatsRepository
	orderRepo repository.OrderRepository
}

// NewStatsService creates a new stats service
func NewStatsService(statsRepo repository.StatsRepository, orderRepo repository.OrderRepository) *StatsService {
	return &StatsService{statsRepo: statsRepo, orderRepo: orderRepo}
}

// GetBusinessStats returns order counts, revenue (cancelled orders excluded),
// average order value and the top selling items for the optional date range.
func (s *StatsService) GetBusinessStats(ctx context.Context, businessID uuid.UUID, from, to *time.Time) (*BusinessStats, error) {
	stats, err := s.statsRepo.GetOrderStats(ctx, businessID, from, to)
	if err != nil {
		return nil, err
	}

	topItems, err := s.statsRepo.GetTopItems(ctx, businessID, from, to, topItemsLimit)
	if err != nil {
		return nil, err
	}

	avg := decimal.Zero
	if stats.TotalOrders > 0 {
		avg = stats.TotalRevenue.Div(decimal.NewFromInt(stats.TotalOrders)).Round(2)
	}

	return &BusinessStats{
		TotalOrders:       stats.TotalOrders,
		PendingOrders:     stats.PendingOrders,
		CompletedOrders:   stats.CompletedOrders,
		CancelledOrders:   stats.CancelledOrders,
		TotalRevenue:      stats.TotalRevenue.Round(2),
		AverageOrderValue: avg,
		TopSellingItems:   topItems,
	}, nil
}

// GetDashboardStats returns today / this-week / this-month stats plus the ten
// most recent orders.
func (s *StatsService) GetDashboardStats(ctx context.Context, businessID uuid.UUID) (*DashboardStats, error) {
	now := time.Now()
	todayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	weekStart := todayStart.AddDate(0, 0, -int(todayStart.Weekday()))
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	today, err := s.GetBusinessStats(ctx, businessID, &todayStart, &now)
	if err != nil {
		return nil, err
	}
	week, err := s.GetBusinessStats(ctx, businessID, &weekStart, &now)
	if err != nil {
		return nil, err
	}
	month, err := s.GetBusinessStats(ctx, businessID, &monthStart, &now)
	if err != nil {
		return nil, err
	}

	recent, _, err := s.orderRepo.List(ctx, businessID, &repository.OrderFilterParams{
		Pagination: &pagination.PaginationParams{Page: 1, PerPage: 10},
	})
	if err != nil {
		return nil, err
	}

	return &DashboardStats{
		Today:        today,
		ThisWeek:     week,
		ThisMonth:    month,
		RecentOrders: recent,
	}, nil
}
