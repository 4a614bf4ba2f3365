package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product is a catalog entry. Stock is not tracked here: every product sells
// through one or more Variations, each with its own stock count.
type Product struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name        string    `gorm:"index;not null"`
	Description *string
	Category    string          `gorm:"not null"`
	Price       decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	MinStock    int             `gorm:"not null;default:0"`
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Variations []Variation `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
}

// TotalStock sums stock across all variations.
func (p *Product) TotalStock() int {
	total := 0
	for _, v := range p.Variations {
		total += v.Stock
	}
	return total
}

// IsLowStock reports whether the product's combined stock has reached the
// minimum threshold.
func (p *Product) IsLowStock() bool {
	return p.TotalStock() <= p.MinStock
}

// Variation is a purchasable form of a product (size, color, ...).
// A variation belongs to exactly one product. Stock never goes negative;
// the stock service enforces that on every write.
type Variation struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ProductID uuid.UUID `gorm:"type:uuid;not null;index"`
	Name      string    `gorm:"not null"`
	Stock     int       `gorm:"not null;default:0"`
}
