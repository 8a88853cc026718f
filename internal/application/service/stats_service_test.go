package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/mesahq/mesa-api/internal/domain/enum"
	"github.com/mesahq/mesa-api/internal/domain/repository"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

type fakeStatsRepo struct {
	stats    *repository.OrderStatsResult
	topItems []repository.TopItemResult
}

func (f *fakeStatsRepo) GetOrderStats(_ context.Context, _ uuid.UUID, _, _ *time.Time) (*repository.OrderStatsResult, error) {
	return f.stats, nil
}

func (f *fakeStatsRepo) GetTopItems(_ context.Context, _ uuid.UUID, _, _ *time.Time, limit int) ([]repository.TopItemResult, error) {
	if len(f.topItems) > limit {
		return f.topItems[:limit], nil
	}
	return f.topItems, nil
}

func TestGetBusinessStats(t *testing.T) {
	statsRepo := &fakeStatsRepo{
		stats: &repository.OrderStatsResult{
			TotalOrders:     8,
			PendingOrders:   2,
			CompletedOrders: 5,
			CancelledOrders: 1,
			TotalRevenue:    dec("214.75"),
		},
		topItems: []repository.TopItemResult{
			{ItemID: uuid.New(), ItemName: "Burger", Quantity: 12, Revenue: dec("138.00")},
			{ItemID: uuid.New(), ItemName: "Fries", Quantity: 9, Revenue: dec("31.50")},
		},
	}
	svc := NewStatsService(statsRepo, newFakeOrderRepo())

	stats, err := svc.GetBusinessStats(context.Background(), uuid.New(), nil, nil)
	require.NoError(t, err)
	require.EqualValues(t, 8, stats.TotalOrders)
	require.EqualValues(t, 1, stats.CancelledOrders)
	requireDec(t, "214.75", stats.TotalRevenue)
	// 214.75 / 8 = 26.84375 -> 26.84
	requireDec(t, "26.84", stats.AverageOrderValue)
	require.Len(t, stats.TopSellingItems, 2)
	require.Equal(t, "Burger", stats.TopSellingItems[0].ItemName)
}

func TestGetBusinessStatsNoOrders(t *testing.T) {
	statsRepo := &fakeStatsRepo{
		stats: &repository.OrderStatsResult{TotalRevenue: decimal.Zero},
	}
	svc := NewStatsService(statsRepo, newFakeOrderRepo())

	stats, err := svc.GetBusinessStats(context.Background(), uuid.New(), nil, nil)
	require.NoError(t, err)
	require.EqualValues(t, 0, stats.TotalOrders)
	requireDec(t, "0", stats.AverageOrderValue)
	require.Empty(t, stats.TopSellingItems)
}

func TestGetDashboardStats(t *testing.T) {
	f := newOrderServiceFixture(t, OrderServiceConfig{})
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := f.service.CreateOrder(ctx, f.burgerOrderInput())
		require.NoError(t, err)
	}

	statsRepo := &fakeStatsRepo{
		stats: &repository.OrderStatsResult{TotalOrders: 3, TotalRevenue: dec("80.52")},
	}
	svc := NewStatsService(statsRepo, f.orderRepo)

	dashboard, err := svc.GetDashboardStats(ctx, f.business.ID)
	require.NoError(t, err)
	require.NotNil(t, dashboard.Today)
	require.NotNil(t, dashboard.ThisWeek)
	require.NotNil(t, dashboard.ThisMonth)
	requireDec(t, "26.84", dashboard.Today.AverageOrderValue)
	require.Len(t, dashboard.RecentOrders, 3)
	for _, order := range dashboard.RecentOrders {
		require.Equal(t, enum.OrderStatusPending, order.Status)
	}
}
