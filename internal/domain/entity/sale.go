package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Sale represents a completed checkout. It is written once at settlement
// time and never mutated afterwards.
type Sale struct {
	ID             uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	ReceiptID      string    `gorm:"size:8;uniqueIndex;not null" json:"sale_id"`
	CustomerName   string    `gorm:"size:255" json:"customer_name"`
	CustomerEmail  string    `gorm:"size:255" json:"customer_email"`
	CustomerPhone  string    `gorm:"size:50" json:"customer_phone"`
	Subtotal       float64   `gorm:"not null;default:0" json:"subtotal"`
	Discount       float64   `gorm:"not null;default:0" json:"discount"`
	DeliveryCharge float64   `gorm:"not null;default:0" json:"delivery_charge"`
	TotalPaid      float64   `gorm:"not null;default:0" json:"total_paid"`
	TotalProfit    float64   `gorm:"not null;default:0" json:"total_profit"`
	CreatedAt      time.Time `gorm:"index" json:"created_at"`

	Lines []SaleLine `gorm:"foreignKey:SaleID" json:"lines"`
}

// BeforeCreate generates a UUID before creating a new sale
func (s *Sale) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Sale model
func (Sale) TableName() string {
	return "sales"
}

// SaleLine is a settled line item in a sale. Beyond the cart snapshot it
// carries the cost basis captured at settlement time and this line's
// attributed share of the sale's profit.
type SaleLine struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	SaleID        uuid.UUID `gorm:"type:uuid;not null;index" json:"-"`
	ItemID        string    `gorm:"size:100;not null;index" json:"item_id"`
	ItemName      string    `gorm:"size:255;not null" json:"item_name"`
	SalePrice     float64   `gorm:"not null;default:0" json:"sale_price"`
	Quantity      int       `gorm:"not null" json:"quantity"`
	Total         float64   `gorm:"not null;default:0" json:"total"`
	PurchasePrice float64   `gorm:"not null;default:0" json:"purchase_price"`
	TotalCost     float64   `gorm:"not null;default:0" json:"total_cost"`
	TotalProfit   float64   `gorm:"not null;default:0" json:"total_profit"`
	ProfitPerUnit float64   `gorm:"not null;default:0" json:"profit_per_unit"`
	CreatedAt     time.Time `json:"created_at"`
}

// BeforeCreate generates a UUID before creating a new sale line
func (l *SaleLine) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the SaleLine model
func (SaleLine) TableName() string {
	return "sale_lines"
}
