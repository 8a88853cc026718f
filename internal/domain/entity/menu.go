package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// MenuItem is a catalog item owned by a business. The order engine treats the
// catalog as read-only: item prices here are authoritative at order time and
// are snapshotted into order items.
type MenuItem struct {
	ID          uuid.UUID       `gorm:"type:uuid;primary_key" json:"item_id"`
	BusinessID  uuid.UUID       `gorm:"type:uuid;not null;index" json:"business_id"`
	Name        string          `gorm:"size:255;not null" json:"name"`
	Price       decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"price"`
	IsAvailable bool            `gorm:"not null;default:true" json:"is_available"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`

	Options []MenuItemOption `gorm:"foreignKey:ItemID" json:"options,omitempty"`
}

// BeforeCreate generates a UUID before creating a new menu item
func (m *MenuItem) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the MenuItem model
func (MenuItem) TableName() string {
	return "menu_items"
}

// MenuItemOption is a customization group on a menu item (e.g. "Size")
type MenuItemOption struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"option_id"`
	ItemID    uuid.UUID `gorm:"type:uuid;not null;index" json:"item_id"`
	Name      string    `gorm:"size:255;not null" json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Variants []MenuItemOptionVariant `gorm:"foreignKey:OptionID" json:"variants,omitempty"`
}

// BeforeCreate generates a UUID before creating a new menu item option
func (o *MenuItemOption) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the MenuItemOption model
func (MenuItemOption) TableName() string {
	return "menu_item_options"
}

// MenuItemOptionVariant is a selectable value within an option group
// (e.g. "Large", +1.50)
type MenuItemOptionVariant struct {
	ID          uuid.UUID       `gorm:"type:uuid;primary_key" json:"variant_id"`
	OptionID    uuid.UUID       `gorm:"type:uuid;not null;index" json:"option_id"`
	Name        string          `gorm:"size:255;not null" json:"name"`
	Price       decimal.Decimal `gorm:"type:numeric(10,2);not null;default:0" json:"price"`
	IsAvailable bool            `gorm:"not null;default:true" json:"is_available"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// BeforeCreate generates a UUID before creating a new variant
func (v *MenuItemOptionVariant) BeforeCreate(tx *gorm.DB) error {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the MenuItemOptionVariant model
func (MenuItemOptionVariant) TableName() string {
	return "menu_item_option_variants"
}
