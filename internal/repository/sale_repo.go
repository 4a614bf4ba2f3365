package repository

import (
	"context"
	"time"

	"github.com/RafaelCassiano30011/box-menager/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// TopProductRow is the aggregation row behind the top-products report.
type TopProductRow struct {
	ProductID    uuid.UUID
	Name         string
	Category     string
	Price        decimal.Decimal
	TotalSold    int
	TotalRevenue decimal.Decimal
}

type SaleRepository interface {
	// Create persists the sale header and its items inside the given tx.
	Create(ctx context.Context, tx *gorm.DB, s *model.Sale) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Sale, error)
	List(ctx context.Context) ([]model.Sale, error)
	Recent(ctx context.Context, limit int) ([]model.Sale, error)
	InRange(ctx context.Context, start, end time.Time) ([]model.Sale, error)

	// TotalsBetween returns sum(total) and sum(item quantities) for sales
	// created in [start, end).
	TotalsBetween(ctx context.Context, start, end time.Time) (decimal.Decimal, int, error)
	TopProducts(ctx context.Context, limit int) ([]TopProductRow, error)

	// DB exposes the DB for transaction creation in the service layer.
	DB() *gorm.DB
}

type saleRepo struct{ db *gorm.DB }

func NewSaleRepository(db *gorm.DB) SaleRepository { return &saleRepo{db: db} }

func (r *saleRepo) DB() *gorm.DB { return r.db }

func (r *saleRepo) Create(ctx context.Context, tx *gorm.DB, s *model.Sale) error {
	return tx.WithContext(ctx).Create(s).Error
}

func (r *saleRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Sale, error) {
	var s model.Sale
	err := r.db.WithContext(ctx).Preload("Items").First(&s, id).Error
	return &s, err
}

func (r *saleRepo) List(ctx context.Context) ([]model.Sale, error) {
	var sales []model.Sale
	err := r.db.WithContext(ctx).Preload("Items").
		Order("created_at DESC").
		Find(&sales).Error
	return sales, err
}

func (r *saleRepo) Recent(ctx context.Context, limit int) ([]model.Sale, error) {
	var sales []model.Sale
	err := r.db.WithContext(ctx).Preload("Items").
		Order("created_at DESC").
		Limit(limit).
		Find(&sales).Error
	return sales, err
}

func (r *saleRepo) InRange(ctx context.Context, start, end time.Time) ([]model.Sale, error) {
	var sales []model.Sale
	err := r.db.WithContext(ctx).Preload("Items").
		Where("created_at >= ? AND created_at < ?", start, end).
		Order("created_at DESC").
		Find(&sales).Error
	return sales, err
}

func (r *saleRepo) TotalsBetween(ctx context.Context, start, end time.Time) (decimal.Decimal, int, error) {
	var totalStr *string
	err := r.db.WithContext(ctx).Model(&model.Sale{}).
		Select("SUM(total)").
		Where("created_at >= ? AND created_at < ?", start, end).
		Scan(&totalStr).Error
	if err != nil {
		return decimal.Zero, 0, err
	}
	total := decimal.Zero
	if totalStr != nil {
		if total, err = decimal.NewFromString(*totalStr); err != nil {
			return decimal.Zero, 0, err
		}
	}

	var sold *int
	err = r.db.WithContext(ctx).Model(&model.SaleItem{}).
		Select("SUM(sale_items.quantity)").
		Joins("JOIN sales ON sales.id = sale_items.sale_id").
		Where("sales.created_at >= ? AND sales.created_at < ?", start, end).
		Scan(&sold).Error
	if err != nil {
		return decimal.Zero, 0, err
	}
	if sold == nil {
		return total, 0, nil
	}
	return total, *sold, nil
}

func (r *saleRepo) TopProducts(ctx context.Context, limit int) ([]TopProductRow, error) {
	var rows []TopProductRow
	err := r.db.WithContext(ctx).Model(&model.Product{}).
		Select(`products.id AS product_id,
			products.name,
			products.category,
			products.price,
			COALESCE(SUM(sale_items.quantity), 0) AS total_sold,
			COALESCE(SUM(sale_items.subtotal), 0) AS total_revenue`).
		Joins("LEFT JOIN sale_items ON sale_items.product_id = products.id").
		Group("products.id").
		Order("total_sold DESC").
		Limit(limit).
		Scan(&rows).Error
	return rows, err
}
