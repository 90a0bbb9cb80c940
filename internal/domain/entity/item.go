package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Item represents a stock item in the stall's inventory.
// ItemID is the business-facing identifier assigned by the shopkeeper;
// it is immutable once the item is created.
type Item struct {
	ID                uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	ItemID            string    `gorm:"size:100;uniqueIndex;not null" json:"item_id"`
	Name              string    `gorm:"size:255;not null" json:"name"`
	PurchasePrice     float64   `gorm:"not null;default:0" json:"purchase_price"`
	SalePrice         float64   `gorm:"not null;default:0" json:"sale_price"`
	QuantityAvailable int       `gorm:"not null;default:0" json:"quantity_available"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// BeforeCreate generates a UUID before creating a new item
func (i *Item) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Item model
func (Item) TableName() string {
	return "items"
}
