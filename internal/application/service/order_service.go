package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mesahq/mesa-api/internal/domain/entity"
	"github.com/mesahq/mesa-api/internal/domain/enum"
	"github.com/mesahq/mesa-api/internal/domain/repository"
	"github.com/mesahq/mesa-api/pkg/apperror"
	"github.com/mesahq/mesa-api/pkg/pagination"
	"github.com/shopspring/decimal"
)

// SelectionPolicy decides what happens when an order references an option or
// variant that is missing or unavailable in the catalog.
type SelectionPolicy int

const (
	// SelectionLenient silently drops unknown or unavailable option/variant
	// selections and prices the order from what remains.
	SelectionLenient SelectionPolicy = iota
	// SelectionStrict rejects the whole order instead.
	SelectionStrict
)

// OrderServiceConfig tunes engine policy knobs
type OrderServiceConfig struct {
	// OrderNumberWidth is the minimum digit width of formatted order numbers.
	// Counters that outgrow it keep their full digits.
	OrderNumberWidth int
	// SelectionPolicy controls handling of bad option/variant references.
	SelectionPolicy SelectionPolicy
}

// OrderService orchestrates order creation, updates, cancellation and
// payments. Every mutating operation is one atomic transaction at the
// repository boundary.
type OrderService struct {
	orderRepo    repository.OrderRepository
	businessRepo repository.BusinessRepository
	catalogRepo  repository.CatalogRepository
	pricing      *PricingCalculator
	ledger       *PaymentLedger
	cfg          OrderServiceConfig
}

// NewOrderService creates a new order service
func NewOrderService(
	orderRepo repository.OrderRepository,
	businessRepo repository.BusinessRepository,
	catalogRepo repository.CatalogRepository,
	pricing *PricingCalculator,
	ledger *PaymentLedger,
	cfg OrderServiceConfig,
) *OrderService {
	if cfg.OrderNumberWidth <= 0 {
		cfg.OrderNumberWidth = 4
	}
	return &OrderService{
		orderRepo:    orderRepo,
		businessRepo: businessRepo,
		catalogRepo:  catalogRepo,
		pricing:      pricing,
		ledger:       ledger,
		cfg:          cfg,
	}
}

// FormatOrderNumber renders a counter value as "#NNNN", zero-padded to the
// given minimum width. Values past the width are not wrapped; the number just
// grows a digit.
func FormatOrderNumber(counter int64, width int) string {
	return fmt.Sprintf("#%0*d", width, counter)
}

// CreateOrderVariantInput selects a variant within an option group
type CreateOrderVariantInput struct {
	VariantID uuid.UUID
}

// CreateOrderOptionInput selects an option group and its variants
type CreateOrderOptionInput struct {
	OptionID uuid.UUID
	Variants []CreateOrderVariantInput
}

// CreateOrderItemInput is one requested line of a new order
type CreateOrderItemInput struct {
	ItemID              uuid.UUID
	Quantity            int
	SpecialInstructions *string
	Options             []CreateOrderOptionInput
}

// CreateOrderInput represents the create order request
type CreateOrderInput struct {
	BusinessID    uuid.UUID
	Type          enum.OrderType
	TableID       *string
	CustomerID    *uuid.UUID
	CustomerName  *string
	CustomerPhone *string
	Notes         *string
	EstimatedTime *int
	Items         []CreateOrderItemInput
	Discount      decimal.Decimal
	TipAmount     decimal.Decimal
}

// UpdateOrderInput carries the mutable order fields. Nil means "leave as is".
type UpdateOrderInput struct {
	TableID       *string
	CustomerName  *string
	CustomerPhone *string
	Status        *enum.OrderStatus
	Notes         *string
	EstimatedTime *int
	Discount      *decimal.Decimal
	TipAmount     *decimal.Decimal
}

// AddPaymentInput represents a payment against an order
type AddPaymentInput struct {
	Amount        decimal.Decimal
	Method        enum.PaymentMethod
	TransactionID *string
	Reference     *string
}

// CreateOrder validates the request against the catalog, prices the order
// from catalog-authoritative data, allocates the next order number for the
// business and persists the whole aggregate atomically with status PENDING.
// Client-supplied prices are never trusted.
func (s *OrderService) CreateOrder(ctx context.Context, input *CreateOrderInput) (*entity.Order, error) {
	if err := validateCreateInput(input); err != nil {
		return nil, err
	}

	business, err := s.businessRepo.GetByID(ctx, input.BusinessID)
	if err != nil {
		return nil, err
	}
	if business == nil {
		return nil, apperror.NewNotFoundError("Business")
	}

	items, err := s.snapshotItems(ctx, input)
	if err != nil {
		return nil, err
	}

	itemTotals := make([]decimal.Decimal, len(items))
	for i := range items {
		itemTotals[i] = items[i].TotalPrice
	}

	deliveryFee := s.pricing.DeliveryFee(input.Type)
	totals, err := s.pricing.Calculate(business.TaxRate, itemTotals, input.Discount, input.TipAmount, deliveryFee)
	if err != nil {
		return nil, err
	}

	counter, err := s.businessRepo.IncrementOrderCounter(ctx, input.BusinessID)
	if err != nil {
		return nil, err
	}

	order := &entity.Order{
		BusinessID:    input.BusinessID,
		OrderNumber:   FormatOrderNumber(counter, s.cfg.OrderNumberWidth),
		Type:          input.Type,
		Status:        enum.OrderStatusPending,
		TableID:       input.TableID,
		CustomerID:    input.CustomerID,
		CustomerName:  input.CustomerName,
		CustomerPhone: input.CustomerPhone,
		Subtotal:      totals.Subtotal,
		Tax:           totals.Tax,
		DeliveryFee:   deliveryFee,
		Discount:      input.Discount.Round(2),
		TipAmount:     input.TipAmount.Round(2),
		GrandTotal:    totals.GrandTotal,
		PaymentStatus: enum.PaymentStatusPending,
		Notes:         input.Notes,
		EstimatedTime: input.EstimatedTime,
		Items:         items,
	}

	if err := s.orderRepo.CreateAggregate(ctx, order); err != nil {
		return nil, err
	}

	return s.orderRepo.GetAggregate(ctx, order.ID)
}

func validateCreateInput(input *CreateOrderInput) error {
	if !input.Type.Valid() {
		return apperror.NewValidationErrorf("Invalid order type %q", input.Type)
	}
	if len(input.Items) == 0 {
		return apperror.NewValidationError("Order must contain at least one item")
	}
	for _, item := range input.Items {
		if item.Quantity < 1 {
			return apperror.NewValidationError("Item quantity must be at least 1")
		}
	}
	if input.Discount.IsNegative() || input.TipAmount.IsNegative() {
		return apperror.NewValidationError("Discount and tip amount must be non-negative")
	}
	return nil
}

// snapshotItems resolves every requested item against the catalog and copies
// names and prices into order items so later catalog edits cannot alter the
// order.
func (s *OrderService) snapshotItems(ctx context.Context, input *CreateOrderInput) ([]entity.OrderItem, error) {
	itemIDs := make([]uuid.UUID, len(input.Items))
	for i, item := range input.Items {
		itemIDs[i] = item.ItemID
	}

	menuItems, err := s.catalogRepo.GetItems(ctx, input.BusinessID, itemIDs)
	if err != nil {
		return nil, err
	}

	menuByID := make(map[uuid.UUID]*entity.MenuItem, len(menuItems))
	for i := range menuItems {
		menuByID[menuItems[i].ID] = &menuItems[i]
	}

	var unavailable []string
	for _, item := range input.Items {
		menuItem, ok := menuByID[item.ItemID]
		if !ok || !menuItem.IsAvailable {
			unavailable = append(unavailable, item.ItemID.String())
		}
	}
	if len(unavailable) > 0 {
		return nil, apperror.NewValidationErrorf(
			"One or more menu items are not available: %s", strings.Join(unavailable, ", "))
	}

	items := make([]entity.OrderItem, 0, len(input.Items))
	for _, itemInput := range input.Items {
		menuItem := menuByID[itemInput.ItemID]
		if menuItem.Price.IsNegative() {
			return nil, apperror.NewValidationErrorf("Invalid price for item %s", menuItem.Name)
		}

		options, variantPrices, err := s.snapshotOptions(menuItem, itemInput.Options)
		if err != nil {
			return nil, err
		}

		items = append(items, entity.OrderItem{
			ItemID:              menuItem.ID,
			ItemName:            menuItem.Name,
			BasePrice:           menuItem.Price,
			Quantity:            itemInput.Quantity,
			TotalPrice:          ItemTotal(menuItem.Price, variantPrices, itemInput.Quantity),
			SpecialInstructions: itemInput.SpecialInstructions,
			Options:             options,
		})
	}

	return items, nil
}

// snapshotOptions resolves option/variant selections for one item. Under the
// lenient policy unknown or unavailable selections are dropped; under the
// strict policy they fail the order. A variant's price counts only when the
// variant is available at selection time.
func (s *OrderService) snapshotOptions(menuItem *entity.MenuItem, selections []CreateOrderOptionInput) ([]entity.OrderItemOption, []decimal.Decimal, error) {
	var options []entity.OrderItemOption
	var variantPrices []decimal.Decimal

	for _, optionInput := range selections {
		var menuOption *entity.MenuItemOption
		for i := range menuItem.Options {
			if menuItem.Options[i].ID == optionInput.OptionID {
				menuOption = &menuItem.Options[i]
				break
			}
		}
		if menuOption == nil {
			if s.cfg.SelectionPolicy == SelectionStrict {
				return nil, nil, apperror.NewValidationErrorf(
					"Option %s not found for item %s", optionInput.OptionID, menuItem.Name)
			}
			continue
		}

		var variants []entity.OrderItemOptionVariant
		for _, variantInput := range optionInput.Variants {
			var menuVariant *entity.MenuItemOptionVariant
			for i := range menuOption.Variants {
				if menuOption.Variants[i].ID == variantInput.VariantID {
					menuVariant = &menuOption.Variants[i]
					break
				}
			}
			if menuVariant == nil || !menuVariant.IsAvailable {
				if s.cfg.SelectionPolicy == SelectionStrict {
					return nil, nil, apperror.NewValidationErrorf(
						"Variant %s is not available for item %s", variantInput.VariantID, menuItem.Name)
				}
				continue
			}
			if menuVariant.Price.IsNegative() {
				continue
			}

			variantPrices = append(variantPrices, menuVariant.Price)
			variants = append(variants, entity.OrderItemOptionVariant{
				VariantID:    menuVariant.ID,
				VariantName:  menuVariant.Name,
				VariantPrice: menuVariant.Price,
			})
		}

		if len(variants) > 0 {
			options = append(options, entity.OrderItemOption{
				OptionID:   menuOption.ID,
				OptionName: menuOption.Name,
				Variants:   variants,
			})
		}
	}

	return options, variantPrices, nil
}

// UpdateOrder applies a partial update to an order. Status changes go through
// the state machine; discount or tip changes recompute the totals from the
// stored item totals and the existing delivery fee. The whole change persists
// atomically under a row lock.
func (s *OrderService) UpdateOrder(ctx context.Context, id uuid.UUID, input *UpdateOrderInput) (*entity.Order, error) {
	if input.Status != nil && !input.Status.Valid() {
		return nil, apperror.NewValidationErrorf("Invalid order status %q", *input.Status)
	}
	if input.Discount != nil && input.Discount.IsNegative() {
		return nil, apperror.NewValidationError("Discount must be non-negative")
	}
	if input.TipAmount != nil && input.TipAmount.IsNegative() {
		return nil, apperror.NewValidationError("Tip amount must be non-negative")
	}

	return s.orderRepo.Mutate(ctx, id, func(order *entity.Order) error {
		if input.Status != nil && *input.Status != order.Status {
			if !order.Status.CanTransitionTo(*input.Status) {
				return apperror.NewValidationErrorf(
					"Invalid status transition from %s to %s", order.Status, *input.Status)
			}
			order.Status = *input.Status
		}

		if input.TableID != nil {
			order.TableID = input.TableID
		}
		if input.CustomerName != nil {
			order.CustomerName = input.CustomerName
		}
		if input.CustomerPhone != nil {
			order.CustomerPhone = input.CustomerPhone
		}
		if input.Notes != nil {
			order.Notes = input.Notes
		}
		if input.EstimatedTime != nil {
			order.EstimatedTime = input.EstimatedTime
		}

		if input.Discount != nil || input.TipAmount != nil {
			if input.Discount != nil {
				order.Discount = input.Discount.Round(2)
			}
			if input.TipAmount != nil {
				order.TipAmount = input.TipAmount.Round(2)
			}

			business, err := s.businessRepo.GetByID(ctx, order.BusinessID)
			if err != nil {
				return err
			}
			if business == nil {
				return apperror.NewNotFoundError("Business")
			}

			itemTotals := make([]decimal.Decimal, len(order.Items))
			for i := range order.Items {
				itemTotals[i] = order.Items[i].TotalPrice
			}

			totals, err := s.pricing.Calculate(business.TaxRate, itemTotals, order.Discount, order.TipAmount, order.DeliveryFee)
			if err != nil {
				return err
			}
			order.Subtotal = totals.Subtotal
			order.Tax = totals.Tax
			order.GrandTotal = totals.GrandTotal

			// The payment status is derived from paid sum vs. grand total, so a
			// total change must rederive it: a discount can settle an order that
			// was only partially paid before.
			order.PaymentStatus = s.ledger.DerivePaymentStatus(s.ledger.TotalPaid(order), order.GrandTotal)
		}

		return nil
	})
}

// CancelOrder cancels an order, recording the reason in its notes. Completed
// and already cancelled orders cannot be cancelled.
func (s *OrderService) CancelOrder(ctx context.Context, id uuid.UUID, reason string) (*entity.Order, error) {
	return s.orderRepo.Mutate(ctx, id, func(order *entity.Order) error {
		if order.Status.IsTerminal() {
			return apperror.NewValidationError("Cannot cancel completed or already cancelled order")
		}

		order.Status = enum.OrderStatusCancelled
		if reason != "" {
			existing := ""
			if order.Notes != nil {
				existing = *order.Notes
			}
			notes := strings.TrimSpace(existing + "\nCancellation reason: " + reason)
			order.Notes = &notes
		}
		return nil
	})
}

// AddPayment records a payment against an order through the payment ledger.
// The repository row lock guarantees the remaining-balance check runs against
// a consistent snapshot even under concurrent payments.
func (s *OrderService) AddPayment(ctx context.Context, orderID uuid.UUID, input *AddPaymentInput) (*entity.Payment, error) {
	if !input.Amount.IsPositive() {
		return nil, apperror.NewValidationError("Payment amount must be positive")
	}
	if !input.Method.Valid() {
		return nil, apperror.NewValidationErrorf("Invalid payment method %q", input.Method)
	}

	var payment *entity.Payment
	_, err := s.orderRepo.Mutate(ctx, orderID, func(order *entity.Order) error {
		p, err := s.ledger.Record(order, input.Amount.Round(2), input.Method, input.TransactionID, input.Reference, time.Now())
		if err != nil {
			return err
		}
		payment = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	return payment, nil
}

// GetOrder fetches an order aggregate. Absence is not an error: it returns
// (nil, nil) and the caller decides what that means.
func (s *OrderService) GetOrder(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	return s.orderRepo.GetAggregate(ctx, id)
}

// GetOrderByNumber fetches an order aggregate by its per-business number,
// returning (nil, nil) when absent.
func (s *OrderService) GetOrderByNumber(ctx context.Context, businessID uuid.UUID, orderNumber string) (*entity.Order, error) {
	return s.orderRepo.GetByOrderNumber(ctx, businessID, orderNumber)
}

// ListOrders returns paginated order summaries for a business
func (s *OrderService) ListOrders(ctx context.Context, businessID uuid.UUID, params *repository.OrderFilterParams) (*pagination.PaginatedResult[repository.OrderSummary], error) {
	if params.Pagination == nil {
		params.Pagination = pagination.DefaultPagination()
	}
	orders, total, err := s.orderRepo.List(ctx, businessID, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(orders, pag), nil
}
