package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	domainRepo "github.com/mesahq/mesa-api/internal/domain/repository"
	"gorm.io/gorm"
)

type statsRepository struct {
	db *gorm.DB
}

// NewStatsRepository creates a new stats repository
func NewStatsRepository(db *gorm.DB) domainRepo.StatsRepository {
	return &statsRepository{db: db}
}

// dateRange renders the optional [from, to] bounds as extra WHERE conditions
// against the given column.
func dateRange(column string, from, to *time.Time, args []any) (string, []any) {
	cond := ""
	if from != nil {
		cond += " AND " + column + " >= ?"
		args = append(args, *from)
	}
	if to != nil {
		cond += " AND " + column + " <= ?"
		args = append(args, *to)
	}
	return cond, args
}

func (r *statsRepository) GetOrderStats(ctx context.Context, businessID uuid.UUID, from, to *time.Time) (*domainRepo.OrderStatsResult, error) {
	args := []any{businessID}
	cond, args := dateRange("created_at", from, to, args)

	var result domainRepo.OrderStatsResult
	err := r.db.WithContext(ctx).Raw(`
		SELECT
			COUNT(*) AS total_orders,
			COUNT(*) FILTER (WHERE status = 'pending') AS pending_orders,
			COUNT(*) FILTER (WHERE status = 'completed') AS completed_orders,
			COUNT(*) FILTER (WHERE status = 'cancelled') AS cancelled_orders,
			COALESCE(SUM(grand_total) FILTER (WHERE status <> 'cancelled'), 0) AS total_revenue
		FROM orders
		WHERE business_id = ?`+cond, args...).Scan(&result).Error
	if err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *statsRepository) GetTopItems(ctx context.Context, businessID uuid.UUID, from, to *time.Time, limit int) ([]domainRepo.TopItemResult, error) {
	args := []any{businessID}
	cond, args := dateRange("o.created_at", from, to, args)
	args = append(args, limit)

	var results []domainRepo.TopItemResult
	err := r.db.WithContext(ctx).Raw(`
		SELECT
			oi.item_id,
			oi.item_name,
			COALESCE(SUM(oi.quantity), 0) AS quantity,
			COALESCE(SUM(oi.total_price), 0) AS revenue
		FROM order_items oi
		JOIN orders o ON o.id = oi.order_id
		WHERE o.business_id = ? AND o.status <> 'cancelled'`+cond+`
		GROUP BY oi.item_id, oi.item_name
		ORDER BY quantity DESC
		LIMIT ?`, args...).Scan(&results).Error
	if err != nil {
		return nil, err
	}

	return results, nil
}
