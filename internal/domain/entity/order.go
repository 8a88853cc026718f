package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/mesahq/mesa-api/internal/domain/enum"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Order is the aggregate root for a placed order. Items, their options and
// variants are immutable snapshots of the catalog at creation time; payments
// are append-only. Orders are never deleted, cancellation is a status.
type Order struct {
	ID            uuid.UUID          `gorm:"type:uuid;primary_key" json:"order_id"`
	BusinessID    uuid.UUID          `gorm:"type:uuid;not null;uniqueIndex:idx_orders_business_number,priority:1" json:"business_id"`
	OrderNumber   string             `gorm:"size:16;not null;uniqueIndex:idx_orders_business_number,priority:2" json:"order_number"`
	Type          enum.OrderType     `gorm:"size:20;not null" json:"type"`
	Status        enum.OrderStatus   `gorm:"size:20;not null;index" json:"status"`
	TableID       *string            `gorm:"size:64" json:"table_id,omitempty"`
	CustomerID    *uuid.UUID         `gorm:"type:uuid;index" json:"customer_id,omitempty"`
	CustomerName  *string            `gorm:"size:255" json:"customer_name,omitempty"`
	CustomerPhone *string            `gorm:"size:32" json:"customer_phone,omitempty"`
	Subtotal      decimal.Decimal    `gorm:"type:numeric(10,2);not null" json:"subtotal"`
	Tax           decimal.Decimal    `gorm:"type:numeric(10,2);not null" json:"tax"`
	DeliveryFee   decimal.Decimal    `gorm:"type:numeric(10,2);not null" json:"delivery_fee"`
	Discount      decimal.Decimal    `gorm:"type:numeric(10,2);not null" json:"discount"`
	TipAmount     decimal.Decimal    `gorm:"type:numeric(10,2);not null" json:"tip_amount"`
	GrandTotal    decimal.Decimal    `gorm:"type:numeric(10,2);not null" json:"grand_total"`
	PaymentStatus enum.PaymentStatus `gorm:"size:20;not null" json:"payment_status"`
	PaymentMethod *enum.PaymentMethod `gorm:"size:20" json:"payment_method,omitempty"`
	Notes         *string            `gorm:"type:text" json:"notes,omitempty"`
	EstimatedTime *int               `json:"estimated_time,omitempty"`
	CreatedAt     time.Time          `gorm:"index" json:"created_at"`
	UpdatedAt     time.Time          `json:"updated_at"`

	Items    []OrderItem `gorm:"foreignKey:OrderID" json:"order_items,omitempty"`
	Payments []Payment   `gorm:"foreignKey:OrderID" json:"payments,omitempty"`
}

// BeforeCreate generates a UUID before creating a new order
func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Order model
func (Order) TableName() string {
	return "orders"
}

// OrderItem is a snapshot of a catalog item at order time. Price changes to
// the catalog after creation never alter it.
type OrderItem struct {
	ID                  uuid.UUID       `gorm:"type:uuid;primary_key" json:"order_item_id"`
	OrderID             uuid.UUID       `gorm:"type:uuid;not null;index" json:"order_id"`
	ItemID              uuid.UUID       `gorm:"type:uuid;not null;index" json:"item_id"`
	ItemName            string          `gorm:"size:255;not null" json:"item_name"`
	BasePrice           decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"base_price"`
	Quantity            int             `gorm:"not null" json:"quantity"`
	TotalPrice          decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"total_price"`
	SpecialInstructions *string         `gorm:"type:text" json:"special_instructions,omitempty"`
	CreatedAt           time.Time       `json:"created_at"`

	Options []OrderItemOption `gorm:"foreignKey:OrderItemID" json:"options,omitempty"`
}

// BeforeCreate generates a UUID before creating a new order item
func (i *OrderItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the OrderItem model
func (OrderItem) TableName() string {
	return "order_items"
}

// OrderItemOption is a snapshot of a selected option group
type OrderItemOption struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	OrderItemID uuid.UUID `gorm:"type:uuid;not null;index" json:"order_item_id"`
	OptionID    uuid.UUID `gorm:"type:uuid;not null" json:"option_id"`
	OptionName  string    `gorm:"size:255;not null" json:"option_name"`

	Variants []OrderItemOptionVariant `gorm:"foreignKey:OrderItemOptionID" json:"variants,omitempty"`
}

// BeforeCreate generates a UUID before creating a new order item option
func (o *OrderItemOption) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the OrderItemOption model
func (OrderItemOption) TableName() string {
	return "order_item_options"
}

// OrderItemOptionVariant is a snapshot of a selected variant and the price it
// carried when the order was placed
type OrderItemOptionVariant struct {
	ID                uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	OrderItemOptionID uuid.UUID       `gorm:"type:uuid;not null;index" json:"order_item_option_id"`
	VariantID         uuid.UUID       `gorm:"type:uuid;not null" json:"variant_id"`
	VariantName       string          `gorm:"size:255;not null" json:"variant_name"`
	VariantPrice      decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"variant_price"`
}

// BeforeCreate generates a UUID before creating a new order item option variant
func (v *OrderItemOptionVariant) BeforeCreate(tx *gorm.DB) error {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the OrderItemOptionVariant model
func (OrderItemOptionVariant) TableName() string {
	return "order_item_option_variants"
}
