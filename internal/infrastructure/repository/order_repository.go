package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/mesahq/mesa-api/internal/domain/entity"
	domainRepo "github.com/mesahq/mesa-api/internal/domain/repository"
	"github.com/mesahq/mesa-api/pkg/apperror"
	"github.com/mesahq/mesa-api/pkg/pagination"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type orderRepository struct {
	db *gorm.DB
}

// NewOrderRepository creates a new order repository
func NewOrderRepository(db *gorm.DB) domainRepo.OrderRepository {
	return &orderRepository{db: db}
}

// CreateAggregate writes the order and every nested row explicitly inside one
// transaction. No hidden cascading writes: each level is created on its own
// with associations omitted, so the persistence shape is exactly what this
// function says it is.
func (r *orderRepository) CreateAggregate(ctx context.Context, order *entity.Order) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(order).Error; err != nil {
			return err
		}

		for i := range order.Items {
			item := &order.Items[i]
			item.OrderID = order.ID
			if err := tx.Omit(clause.Associations).Create(item).Error; err != nil {
				return err
			}

			for j := range item.Options {
				option := &item.Options[j]
				option.OrderItemID = item.ID
				if err := tx.Omit(clause.Associations).Create(option).Error; err != nil {
					return err
				}

				for k := range option.Variants {
					variant := &option.Variants[k]
					variant.OrderItemOptionID = option.ID
					if err := tx.Create(variant).Error; err != nil {
						return err
					}
				}
			}
		}

		return nil
	})

	// A duplicate (business_id, order_number) cannot happen while counter
	// allocation stays atomic; if it does, surface it as a conflict so the
	// integrity bug is visible instead of retried away.
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return apperror.NewConflictError("Order number already exists for this business")
	}
	return err
}

func (r *orderRepository) GetAggregate(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	var order entity.Order
	err := r.db.WithContext(ctx).
		Preload("Items.Options.Variants").
		Preload("Payments").
		First(&order, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *orderRepository) GetByOrderNumber(ctx context.Context, businessID uuid.UUID, orderNumber string) (*entity.Order, error) {
	var order entity.Order
	err := r.db.WithContext(ctx).
		Preload("Items.Options.Variants").
		Preload("Payments").
		First(&order, "business_id = ? AND order_number = ?", businessID, orderNumber).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// Mutate locks the order row FOR UPDATE, loads the full aggregate, applies fn
// and persists the order fields plus any payments fn appended. The row lock
// serializes concurrent mutations so checks inside fn (state transitions,
// remaining balance) always run against a consistent snapshot.
func (r *orderRepository) Mutate(ctx context.Context, id uuid.UUID, fn func(order *entity.Order) error) (*entity.Order, error) {
	var result *entity.Order

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var locked entity.Order
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Select("id").
			First(&locked, "id = ?", id).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.NewNotFoundError("Order")
		}
		if err != nil {
			return err
		}

		var order entity.Order
		if err := tx.
			Preload("Items.Options.Variants").
			Preload("Payments").
			First(&order, "id = ?", id).Error; err != nil {
			return err
		}

		if err := fn(&order); err != nil {
			return err
		}

		if err := tx.Omit(clause.Associations).Save(&order).Error; err != nil {
			return err
		}

		// Payments appended by fn have no ID yet; items and existing payments
		// are immutable and never rewritten.
		for i := range order.Payments {
			payment := &order.Payments[i]
			if payment.ID == uuid.Nil {
				payment.OrderID = order.ID
				if err := tx.Create(payment).Error; err != nil {
					return err
				}
			}
		}

		result = &order
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (r *orderRepository) List(ctx context.Context, businessID uuid.UUID, params *domainRepo.OrderFilterParams) ([]domainRepo.OrderSummary, int64, error) {
	query := r.db.WithContext(ctx).Model(&entity.Order{}).
		Where("business_id = ?", businessID)

	if params.Status != nil {
		query = query.Where("status = ?", *params.Status)
	}
	if params.Type != nil {
		query = query.Where("type = ?", *params.Type)
	}
	if params.PaymentStatus != nil {
		query = query.Where("payment_status = ?", *params.PaymentStatus)
	}
	if params.TableID != nil {
		query = query.Where("table_id = ?", *params.TableID)
	}
	if params.CustomerID != nil {
		query = query.Where("customer_id = ?", *params.CustomerID)
	}
	if params.DateFrom != nil {
		query = query.Where("created_at >= ?", *params.DateFrom)
	}
	if params.DateTo != nil {
		query = query.Where("created_at <= ?", *params.DateTo)
	}
	if params.Search != "" {
		pattern := "%" + params.Search + "%"
		query = query.Where(
			"order_number ILIKE ? OR customer_name ILIKE ? OR customer_phone ILIKE ?",
			pattern, pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	// Sorting restricted to a fixed column whitelist; anything else falls
	// back to created_at
	sortBy := "created_at"
	switch params.SortBy {
	case "order_number", "grand_total":
		sortBy = params.SortBy
	}
	sortOrder := "DESC"
	if params.SortOrder == "ASC" || params.SortOrder == "asc" {
		sortOrder = "ASC"
	}

	if params.Pagination == nil {
		params.Pagination = pagination.DefaultPagination()
	}
	params.Pagination.Validate()

	var summaries []domainRepo.OrderSummary
	err := query.
		Select(`orders.id AS order_id,
			orders.order_number,
			orders.customer_name,
			orders.type,
			orders.status,
			orders.grand_total,
			orders.payment_status,
			orders.estimated_time,
			orders.created_at,
			(SELECT COUNT(*) FROM order_items oi WHERE oi.order_id = orders.id) AS item_count`).
		Order(sortBy + " " + sortOrder).
		Offset(params.Pagination.Offset()).
		Limit(params.Pagination.PerPage).
		Scan(&summaries).Error
	if err != nil {
		return nil, 0, err
	}

	return summaries, total, nil
}
