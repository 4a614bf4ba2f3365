package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type VariationRequest struct {
	Name  string `json:"name"  validate:"required,min=1,max=60"`
	Stock int    `json:"stock" validate:"min=0"`
}

type CreateProductRequest struct {
	Name        string             `json:"name"     validate:"required,min=2,max=120"`
	Description *string            `json:"description"`
	Category    string             `json:"category" validate:"required"`
	Price       decimal.Decimal    `json:"price"    validate:"required"`
	MinStock    int                `json:"minStock" validate:"min=0"`
	Variations  []VariationRequest `json:"variations" validate:"required,min=1,dive"`
}

type UpdateProductRequest struct {
	Name        *string          `json:"name" validate:"omitempty,min=2,max=120"`
	Description *string          `json:"description"`
	Category    *string          `json:"category"`
	Price       *decimal.Decimal `json:"price"`
	MinStock    *int             `json:"minStock" validate:"omitempty,min=0"`
}

// ─── Filter / Pagination ─────────────────────────────────────────────────────

type ProductFilter struct {
	Name     string `form:"name"`
	Category string `form:"category"`
	Page     int    `form:"page,default=1"   validate:"min=1"`
	Limit    int    `form:"limit,default=20" validate:"min=1,max=100"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type VariationResponse struct {
	ID        string `json:"id"`
	ProductID string `json:"productId"`
	Name      string `json:"name"`
	Stock     int    `json:"stock"`
}

type ProductResponse struct {
	ID          string              `json:"id"`
	Name        string              `json:"name"`
	Description *string             `json:"description"`
	Category    string              `json:"category"`
	Price       decimal.Decimal     `json:"price"`
	MinStock    int                 `json:"minStock"`
	TotalStock  int                 `json:"totalStock"`
	IsLowStock  bool                `json:"isLowStock"`
	Variations  []VariationResponse `json:"variations"`
	CreatedAt   string              `json:"createdAt"`
}

type ProductListResponse struct {
	Data       []ProductResponse `json:"data"`
	Total      int64             `json:"total"`
	Page       int               `json:"page"`
	Limit      int               `json:"limit"`
	TotalPages int               `json:"totalPages"`
}
