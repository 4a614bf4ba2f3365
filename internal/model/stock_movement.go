package model

import (
	"time"

	"github.com/google/uuid"
)

// Movement types.
const (
	MovementIn  = "in"
	MovementOut = "out"
)

// StockMovement records every stock change on a variation, with the stock
// value before and after. Movements form an append-only audit ledger: rows
// are never edited or deleted after creation.
type StockMovement struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ProductID     uuid.UUID `gorm:"type:uuid;not null;index"`
	VariationID   uuid.UUID `gorm:"type:uuid;not null;index"`
	Type          string    `gorm:"not null"` // "in" | "out"
	Quantity      int       `gorm:"not null"` // always positive; direction comes from Type
	PreviousStock int       `gorm:"not null"`
	NewStock      int       `gorm:"not null"`
	Reason        string
	SaleID        *uuid.UUID `gorm:"type:uuid"` // set when the movement compensates a sale
	CreatedAt     time.Time

	Product   *Product   `gorm:"foreignKey:ProductID"`
	Variation *Variation `gorm:"foreignKey:VariationID"`
}
