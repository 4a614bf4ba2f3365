package dto

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CreateMovementRequest struct {
	ProductID   string `json:"productId"   validate:"required,uuid"`
	VariationID string `json:"variationId" validate:"required,uuid"`
	Type        string `json:"type"        validate:"required,oneof=in out"`
	Quantity    int    `json:"quantity"    validate:"required,min=1"`
	Reason      string `json:"reason"`
}

// MovementFilter is bound from the query string of GET /api/stock-movements.
type MovementFilter struct {
	ProductID string `form:"productId" validate:"omitempty,uuid"`
	Type      string `form:"type"      validate:"omitempty,oneof=in out"`
	Page      int    `form:"page,default=1"    validate:"min=1"`
	Limit     int    `form:"limit,default=100" validate:"min=1,max=500"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type MovementResponse struct {
	ID            string `json:"id"`
	ProductID     string `json:"productId"`
	VariationID   string `json:"variationId"`
	ProductName   string `json:"productName,omitempty"`
	VariationName string `json:"variationName,omitempty"`
	Type          string `json:"type"`
	Quantity      int    `json:"quantity"`
	PreviousStock int    `json:"previousStock"`
	NewStock      int    `json:"newStock"`
	Reason        string `json:"reason,omitempty"`
	SaleID        *string `json:"saleId,omitempty"`
	CreatedAt     string `json:"createdAt"`
}

type MovementListResponse struct {
	Data  []MovementResponse `json:"data"`
	Total int64              `json:"total"`
	Page  int                `json:"page"`
	Limit int                `json:"limit"`
}
