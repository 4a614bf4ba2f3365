package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Accepted payment methods.
const (
	PaymentCash   = "cash"
	PaymentDebit  = "debit"
	PaymentCredit = "credit"
	PaymentPix    = "pix"
)

// Sale is created once, atomically, together with its items, the stock
// decrement and the compensating movements. It is never updated or deleted.
type Sale struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CustomerName  *string
	PaymentMethod string          `gorm:"not null"` // cash | debit | credit | pix
	Total         decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	CreatedAt     time.Time

	Items []SaleItem `gorm:"foreignKey:SaleID;constraint:OnDelete:CASCADE"`
}

// SaleItem snapshots product and variation names so history survives catalog
// edits. Subtotal = UnitPrice × Quantity × (1 − Discount/100), rounded to 2dp.
type SaleItem struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SaleID        uuid.UUID `gorm:"type:uuid;not null;index"`
	ProductID     uuid.UUID `gorm:"type:uuid;not null;index"`
	VariationID   uuid.UUID `gorm:"type:uuid;not null"`
	ProductName   string    `gorm:"not null"`
	VariationName string    `gorm:"not null"`
	Quantity      int       `gorm:"not null"`
	UnitPrice     decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Discount      decimal.Decimal `gorm:"type:decimal(5,2);not null;default:0"` // percentage, 0-100
	Subtotal      decimal.Decimal `gorm:"type:decimal(10,2);not null"`
}
