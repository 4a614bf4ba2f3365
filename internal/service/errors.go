package service

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// ErrProductNotFound covers both a missing product and a variation that does
// not belong to the referenced product. Handlers map it to 404.
var ErrProductNotFound = errors.New("product not found")

// InsufficientStockError is returned whenever a stock write would drive a
// variation below zero. It names the offending line so the client can show
// which product ran out.
type InsufficientStockError struct {
	ProductID     uuid.UUID
	VariationID   uuid.UUID
	ProductName   string
	VariationName string
	Available     int
	Requested     int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for %s %s: available %d, requested %d",
		e.ProductName, e.VariationName, e.Available, e.Requested)
}
