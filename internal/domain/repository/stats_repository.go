package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderStatsResult aggregates order counts and revenue for a business over an
// optional date range. Revenue excludes cancelled orders.
type OrderStatsResult struct {
	TotalOrders     int64
	PendingOrders   int64
	CompletedOrders int64
	CancelledOrders int64
	TotalRevenue    decimal.Decimal
}

// TopItemResult represents one item's sales volume within a date range
type TopItemResult struct {
	ItemID   uuid.UUID       `json:"item_id"`
	ItemName string          `json:"item_name"`
	Quantity int64           `json:"quantity"`
	Revenue  decimal.Decimal `json:"revenue"`
}

// StatsRepository defines the read-only aggregation queries behind the stats
// views. Results are a snapshot of the order set at query time; nothing here
// is transactional.
type StatsRepository interface {
	// GetOrderStats returns counts by status and revenue for the business,
	// optionally bounded by [from, to].
	GetOrderStats(ctx context.Context, businessID uuid.UUID, from, to *time.Time) (*OrderStatsResult, error)

	// GetTopItems returns the top selling items by quantity, with revenue.
	GetTopItems(ctx context.Context, businessID uuid.UUID, from, to *time.Time, limit int) ([]TopItemResult, error)
}
