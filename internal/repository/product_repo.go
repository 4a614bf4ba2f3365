package repository

import (
	"context"

	"github.com/RafaelCassiano30011/box-menager/internal/dto"
	"github.com/RafaelCassiano30011/box-menager/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ProductRepository defines the data access contract for products and their
// variations. Services depend on this interface, not on the concrete GORM
// implementation, enabling clean unit testing via stubs.
type ProductRepository interface {
	Create(ctx context.Context, p *model.Product) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Product, error)
	List(ctx context.Context, filter dto.ProductFilter) ([]model.Product, int64, error)
	Update(ctx context.Context, p *model.Product) error
	Delete(ctx context.Context, id uuid.UUID) error

	FindVariation(ctx context.Context, productID, variationID uuid.UUID) (*model.Variation, error)
	ListVariations(ctx context.Context) ([]model.Variation, error)

	// Dashboard queries
	LowStock(ctx context.Context) ([]model.Product, error)
	CountProducts(ctx context.Context) (int64, error)
	SumStock(ctx context.Context) (int, error)

	// Used inside transactions — callers must pass the tx instance.
	// LockVariationTx takes a FOR UPDATE row lock so concurrent sales against
	// the same variation serialize on the availability check.
	LockVariationTx(tx *gorm.DB, variationID uuid.UUID) (*model.Variation, error)
	UpdateVariationStockTx(tx *gorm.DB, variationID uuid.UUID, newStock int) error

	// DB exposes the underlying *gorm.DB so services can open transactions.
	DB() *gorm.DB
}

type productRepo struct{ db *gorm.DB }

func NewProductRepository(db *gorm.DB) ProductRepository { return &productRepo{db: db} }

func (r *productRepo) Create(ctx context.Context, p *model.Product) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *productRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	var p model.Product
	err := r.db.WithContext(ctx).Preload("Variations").First(&p, id).Error
	return &p, err
}

func (r *productRepo) List(ctx context.Context, filter dto.ProductFilter) ([]model.Product, int64, error) {
	var products []model.Product
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Product{})

	if filter.Name != "" {
		q = q.Where("name ILIKE ?", "%"+filter.Name+"%")
	}
	if filter.Category != "" {
		q = q.Where("category = ?", filter.Category)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	err := q.Preload("Variations").
		Order("created_at DESC").
		Limit(filter.Limit).Offset(offset).
		Find(&products).Error
	return products, total, err
}

func (r *productRepo) Update(ctx context.Context, p *model.Product) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *productRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Select(clause.Associations).Delete(&model.Product{ID: id}).Error
}

func (r *productRepo) FindVariation(ctx context.Context, productID, variationID uuid.UUID) (*model.Variation, error) {
	var v model.Variation
	err := r.db.WithContext(ctx).
		Where("id = ? AND product_id = ?", variationID, productID).
		First(&v).Error
	return &v, err
}

func (r *productRepo) ListVariations(ctx context.Context) ([]model.Variation, error) {
	var variations []model.Variation
	err := r.db.WithContext(ctx).Find(&variations).Error
	return variations, err
}

// LowStock returns products whose summed variation stock has reached min_stock.
func (r *productRepo) LowStock(ctx context.Context) ([]model.Product, error) {
	var products []model.Product
	err := r.db.WithContext(ctx).
		Preload("Variations").
		Where(`(SELECT COALESCE(SUM(stock), 0) FROM variations WHERE variations.product_id = products.id) <= min_stock`).
		Find(&products).Error
	return products, err
}

func (r *productRepo) CountProducts(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Product{}).Count(&count).Error
	return count, err
}

func (r *productRepo) SumStock(ctx context.Context) (int, error) {
	var total *int
	err := r.db.WithContext(ctx).Model(&model.Variation{}).
		Select("SUM(stock)").Scan(&total).Error
	if err != nil || total == nil {
		return 0, err
	}
	return *total, nil
}

func (r *productRepo) LockVariationTx(tx *gorm.DB, variationID uuid.UUID) (*model.Variation, error) {
	var v model.Variation
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&v, variationID).Error
	return &v, err
}

func (r *productRepo) UpdateVariationStockTx(tx *gorm.DB, variationID uuid.UUID, newStock int) error {
	return tx.Model(&model.Variation{}).Where("id = ?", variationID).
		Update("stock", newStock).Error
}

func (r *productRepo) DB() *gorm.DB { return r.db }
