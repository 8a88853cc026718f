package request

import (
	"github.com/google/uuid"
	"github.com/mesahq/mesa-api/internal/application/service"
	"github.com/mesahq/mesa-api/internal/domain/enum"
	"github.com/shopspring/decimal"
)

// CreateOrderVariantRequest selects a variant of an option group
type CreateOrderVariantRequest struct {
	VariantID uuid.UUID `json:"variant_id" binding:"required"`
}

// CreateOrderOptionRequest selects an option group
type CreateOrderOptionRequest struct {
	OptionID uuid.UUID                   `json:"option_id" binding:"required"`
	Variants []CreateOrderVariantRequest `json:"variants"`
}

// CreateOrderItemRequest is one requested line of a new order
type CreateOrderItemRequest struct {
	ItemID              uuid.UUID                  `json:"item_id" binding:"required"`
	Quantity            int                        `json:"quantity" binding:"required,min=1"`
	SpecialInstructions *string                    `json:"special_instructions"`
	Options             []CreateOrderOptionRequest `json:"options"`
}

// CreateOrderRequest is the create-order payload
type CreateOrderRequest struct {
	Type          enum.OrderType           `json:"type" binding:"required"`
	TableID       *string                  `json:"table_id"`
	CustomerID    *uuid.UUID               `json:"customer_id"`
	CustomerName  *string                  `json:"customer_name"`
	CustomerPhone *string                  `json:"customer_phone"`
	Notes         *string                  `json:"notes"`
	EstimatedTime *int                     `json:"estimated_time"`
	Items         []CreateOrderItemRequest `json:"order_items" binding:"required,min=1,dive"`
	Discount      *float64                 `json:"discount" binding:"omitempty,gte=0"`
	TipAmount     *float64                 `json:"tip_amount" binding:"omitempty,gte=0"`
}

// ToInput converts the request into a service input
func (r *CreateOrderRequest) ToInput(businessID uuid.UUID) *service.CreateOrderInput {
	items := make([]service.CreateOrderItemInput, len(r.Items))
	for i, item := range r.Items {
		options := make([]service.CreateOrderOptionInput, len(item.Options))
		for j, option := range item.Options {
			variants := make([]service.CreateOrderVariantInput, len(option.Variants))
			for k, variant := range option.Variants {
				variants[k] = service.CreateOrderVariantInput{VariantID: variant.VariantID}
			}
			options[j] = service.CreateOrderOptionInput{
				OptionID: option.OptionID,
				Variants: variants,
			}
		}
		items[i] = service.CreateOrderItemInput{
			ItemID:              item.ItemID,
			Quantity:            item.Quantity,
			SpecialInstructions: item.SpecialInstructions,
			Options:             options,
		}
	}

	return &service.CreateOrderInput{
		BusinessID:    businessID,
		Type:          r.Type,
		TableID:       r.TableID,
		CustomerID:    r.CustomerID,
		CustomerName:  r.CustomerName,
		CustomerPhone: r.CustomerPhone,
		Notes:         r.Notes,
		EstimatedTime: r.EstimatedTime,
		Items:         items,
		Discount:      optionalAmount(r.Discount),
		TipAmount:     optionalAmount(r.TipAmount),
	}
}

// UpdateOrderRequest is the partial-update payload. Absent fields are left
// untouched.
type UpdateOrderRequest struct {
	TableID       *string           `json:"table_id"`
	CustomerName  *string           `json:"customer_name"`
	CustomerPhone *string           `json:"customer_phone"`
	Status        *enum.OrderStatus `json:"status"`
	Notes         *string           `json:"notes"`
	EstimatedTime *int              `json:"estimated_time"`
	Discount      *float64          `json:"discount" binding:"omitempty,gte=0"`
	TipAmount     *float64          `json:"tip_amount" binding:"omitempty,gte=0"`
}

// ToInput converts the request into a service input
func (r *UpdateOrderRequest) ToInput() *service.UpdateOrderInput {
	input := &service.UpdateOrderInput{
		TableID:       r.TableID,
		CustomerName:  r.CustomerName,
		CustomerPhone: r.CustomerPhone,
		Status:        r.Status,
		Notes:         r.Notes,
		EstimatedTime: r.EstimatedTime,
	}
	if r.Discount != nil {
		d := decimal.NewFromFloat(*r.Discount)
		input.Discount = &d
	}
	if r.TipAmount != nil {
		t := decimal.NewFromFloat(*r.TipAmount)
		input.TipAmount = &t
	}
	return input
}

// CancelOrderRequest carries the optional cancellation reason
type CancelOrderRequest struct {
	Reason string `json:"reason"`
}

// AddPaymentRequest is the add-payment payload
type AddPaymentRequest struct {
	Amount        float64            `json:"amount" binding:"required,gt=0"`
	PaymentMethod enum.PaymentMethod `json:"payment_method" binding:"required"`
	TransactionID *string            `json:"transaction_id"`
	Reference     *string            `json:"reference"`
}

// ToInput converts the request into a service input
func (r *AddPaymentRequest) ToInput() *service.AddPaymentInput {
	return &service.AddPaymentInput{
		Amount:        decimal.NewFromFloat(r.Amount),
		Method:        r.PaymentMethod,
		TransactionID: r.TransactionID,
		Reference:     r.Reference,
	}
}

func optionalAmount(v *float64) decimal.Decimal {
	if v == nil {
		return decimal.Zero
	}
	return decimal.NewFromFloat(*v)
}
