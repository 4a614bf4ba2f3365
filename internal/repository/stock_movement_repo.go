package repository

import (
	"context"
	"time"

	"github.com/RafaelCassiano30011/box-menager/internal/dto"
	"github.com/RafaelCassiano30011/box-menager/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// StockMovementRepository appends to and reads from the movement ledger.
// There are no update or delete operations: movements are immutable.
type StockMovementRepository interface {
	Create(ctx context.Context, m *model.StockMovement) error
	CreateTx(tx *gorm.DB, m *model.StockMovement) error
	List(ctx context.Context, filter dto.MovementFilter) ([]model.StockMovement, int64, error)
	HistoryByProduct(ctx context.Context, productID uuid.UUID) ([]model.StockMovement, error)

	// NetChangeSince returns the signed stock delta recorded since t
	// (in movements add, out movements subtract).
	NetChangeSince(ctx context.Context, t time.Time) (int, error)
}

type stockMovementRepo struct{ db *gorm.DB }

func NewStockMovementRepository(db *gorm.DB) StockMovementRepository {
	return &stockMovementRepo{db: db}
}

func (r *stockMovementRepo) Create(ctx context.Context, m *model.StockMovement) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *stockMovementRepo) CreateTx(tx *gorm.DB, m *model.StockMovement) error {
	return tx.Create(m).Error
}

func (r *stockMovementRepo) List(ctx context.Context, filter dto.MovementFilter) ([]model.StockMovement, int64, error) {
	q := r.db.WithContext(ctx).Model(&model.StockMovement{}).
		Preload("Product").Preload("Variation")
	if filter.ProductID != "" {
		q = q.Where("product_id = ?", filter.ProductID)
	}
	if filter.Type != "" {
		q = q.Where("type = ?", filter.Type)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	var movements []model.StockMovement
	err := q.Order("created_at DESC").Offset(offset).Limit(filter.Limit).Find(&movements).Error
	return movements, total, err
}

func (r *stockMovementRepo) HistoryByProduct(ctx context.Context, productID uuid.UUID) ([]model.StockMovement, error) {
	var movements []model.StockMovement
	err := r.db.WithContext(ctx).
		Preload("Variation").
		Where("product_id = ?", productID).
		Order("created_at DESC").
		Find(&movements).Error
	return movements, err
}

func (r *stockMovementRepo) NetChangeSince(ctx context.Context, t time.Time) (int, error) {
	var net *int
	err := r.db.WithContext(ctx).Model(&model.StockMovement{}).
		Select("SUM(CASE WHEN type = 'in' THEN quantity ELSE -quantity END)").
		Where("created_at >= ?", t).
		Scan(&net).Error
	if err != nil || net == nil {
		return 0, err
	}
	return *net, nil
}
