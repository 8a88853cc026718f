package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/mesahq/mesa-api/internal/domain/enum"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Payment is one entry in an order's payment ledger. Entries are append-only;
// there is no edit or delete path.
type Payment struct {
	ID            uuid.UUID          `gorm:"type:uuid;primary_key" json:"payment_id"`
	OrderID       uuid.UUID          `gorm:"type:uuid;not null;index" json:"order_id"`
	Amount        decimal.Decimal    `gorm:"type:numeric(10,2);not null" json:"amount"`
	PaymentMethod enum.PaymentMethod `gorm:"size:20;not null" json:"payment_method"`
	Status        enum.PaymentStatus `gorm:"size:20;not null" json:"status"`
	TransactionID *string            `gorm:"size:128" json:"transaction_id,omitempty"`
	Reference     *string            `gorm:"size:255" json:"reference,omitempty"`
	ProcessedAt   *time.Time         `json:"processed_at,omitempty"`
	CreatedAt     time.Time          `json:"created_at"`
}

// BeforeCreate generates a UUID before creating a new payment
func (p *Payment) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Payment model
func (Payment) TableName() string {
	return "payments"
}
