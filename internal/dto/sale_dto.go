package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type SaleItemRequest struct {
	ProductID   string          `json:"productId"   validate:"required,uuid"`
	VariationID string          `json:"variationId" validate:"required,uuid"`
	Quantity    int             `json:"quantity"    validate:"required,min=1"`
	UnitPrice   decimal.Decimal `json:"unitPrice"   validate:"min=0"`
	// Discount is a percentage applied to the line, 0-100.
	Discount decimal.Decimal `json:"discount" validate:"min=0,max=100"`
}

type CreateSaleRequest struct {
	CustomerName  *string           `json:"customerName"`
	PaymentMethod string            `json:"paymentMethod" validate:"required,oneof=cash debit credit pix"`
	Items         []SaleItemRequest `json:"items"         validate:"required,min=1,dive"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type SaleItemResponse struct {
	ID            string          `json:"id"`
	ProductID     string          `json:"productId"`
	VariationID   string          `json:"variationId"`
	ProductName   string          `json:"productName"`
	VariationName string          `json:"variationName"`
	Quantity      int             `json:"quantity"`
	UnitPrice     decimal.Decimal `json:"unitPrice"`
	Discount      decimal.Decimal `json:"discount"`
	Subtotal      decimal.Decimal `json:"subtotal"`
}

type SaleResponse struct {
	ID            string             `json:"id"`
	CustomerName  *string            `json:"customerName"`
	PaymentMethod string             `json:"paymentMethod"`
	Total         decimal.Decimal    `json:"total"`
	Items         []SaleItemResponse `json:"items"`
	CreatedAt     string             `json:"createdAt"`
}
