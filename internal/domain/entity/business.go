package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Business represents a tenant of the platform. The order engine only reads
// its tax rate and currency and increments its order counter; profile
// management lives elsewhere.
type Business struct {
	ID           uuid.UUID       `gorm:"type:uuid;primary_key" json:"business_id"`
	Name         string          `gorm:"size:255;not null" json:"name"`
	TaxRate      decimal.Decimal `gorm:"type:numeric(5,4);not null;default:0" json:"tax_rate"`
	OrderCounter int64           `gorm:"not null;default:0" json:"-"`
	Currency     string          `gorm:"size:3;not null;default:'USD'" json:"currency"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// BeforeCreate generates a UUID before creating a new business
func (b *Business) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Business model
func (Business) TableName() string {
	return "businesses"
}
