package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/mesahq/mesa-api/internal/domain/entity"
	"github.com/mesahq/mesa-api/internal/domain/enum"
	"github.com/mesahq/mesa-api/pkg/pagination"
	"github.com/shopspring/decimal"
)

// OrderRepository defines the interface for order aggregate persistence.
//
// Read methods return (nil, nil) when the order does not exist; turning that
// into an error (or a 404) is the caller's decision.
type OrderRepository interface {
	// CreateAggregate persists the order together with its items, options,
	// variants and payments inside a single transaction. Either the whole
	// aggregate becomes visible or none of it does.
	CreateAggregate(ctx context.Context, order *entity.Order) error

	// GetAggregate loads the order with nested items, options, variants and
	// payments.
	GetAggregate(ctx context.Context, id uuid.UUID) (*entity.Order, error)

	// GetByOrderNumber loads the aggregate by its per-business order number.
	GetByOrderNumber(ctx context.Context, businessID uuid.UUID, orderNumber string) (*entity.Order, error)

	// Mutate loads the aggregate under a row lock, applies fn and persists the
	// resulting order fields plus any payments fn appended, all in one
	// transaction. Concurrent mutations of the same order are serialized by
	// the lock. An error from fn rolls everything back and is returned as-is.
	Mutate(ctx context.Context, id uuid.UUID, fn func(order *entity.Order) error) (*entity.Order, error)

	// List returns order summaries matching the filter, newest first unless
	// the filter says otherwise.
	List(ctx context.Context, businessID uuid.UUID, params *OrderFilterParams) ([]OrderSummary, int64, error)
}

// OrderFilterParams contains filtering parameters for order list queries
type OrderFilterParams struct {
	Pagination    *pagination.PaginationParams
	Status        *enum.OrderStatus
	Type          *enum.OrderType
	PaymentStatus *enum.PaymentStatus
	TableID       *string
	CustomerID    *uuid.UUID
	DateFrom      *time.Time
	DateTo        *time.Time
	Search        string
	SortBy        string
	SortOrder     string
}

// OrderSummary is the condensed row shape used by order listings
type OrderSummary struct {
	OrderID       uuid.UUID          `json:"order_id"`
	OrderNumber   string             `json:"order_number"`
	CustomerName  *string            `json:"customer_name,omitempty"`
	Type          enum.OrderType     `json:"type"`
	Status        enum.OrderStatus   `json:"status"`
	GrandTotal    decimal.Decimal    `json:"grand_total"`
	PaymentStatus enum.PaymentStatus `json:"payment_status"`
	EstimatedTime *int               `json:"estimated_time,omitempty"`
	CreatedAt     time.Time          `json:"created_at"`
	ItemCount     int                `json:"item_count"`
}
