package service

import (
	"context"
	"fmt"
	"time"

	"github.com/RafaelCassiano30011/box-menager/internal/dto"
	"github.com/RafaelCassiano30011/box-menager/internal/model"
	"github.com/RafaelCassiano30011/box-menager/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// StockService is the ledger for manual stock adjustments. Sales go through
// SaleService instead, which shares the same lock-check-apply discipline.
type StockService interface {
	CreateMovement(ctx context.Context, req dto.CreateMovementRequest) (*dto.MovementResponse, error)
	ListMovements(ctx context.Context, filter dto.MovementFilter) (*dto.MovementListResponse, error)
	ProductHistory(ctx context.Context, productID uuid.UUID) ([]dto.MovementResponse, error)
	GetAvailable(ctx context.Context, productID, variationID uuid.UUID) (int, error)
}

type stockService struct {
	productRepo  repository.ProductRepository
	movementRepo repository.StockMovementRepository
}

func NewStockService(productRepo repository.ProductRepository, movementRepo repository.StockMovementRepository) StockService {
	return &stockService{productRepo: productRepo, movementRepo: movementRepo}
}

// CreateMovement applies a manual adjustment to a variation and appends the
// audit record, atomically. An "out" movement that would drive stock below
// zero fails with InsufficientStockError and changes nothing.
func (s *stockService) CreateMovement(ctx context.Context, req dto.CreateMovementRequest) (*dto.MovementResponse, error) {
	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		return nil, fmt.Errorf("invalid productId: %w", err)
	}
	variationID, err := uuid.Parse(req.VariationID)
	if err != nil {
		return nil, fmt.Errorf("invalid variationId: %w", err)
	}

	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrProductNotFound, req.ProductID)
	}
	variation, err := s.productRepo.FindVariation(ctx, productID, variationID)
	if err != nil {
		return nil, fmt.Errorf("%w: variation %s of product %s", ErrProductNotFound, req.VariationID, product.Name)
	}

	var movement model.StockMovement
	txErr := runTx(ctx, s.productRepo.DB(), func(tx *gorm.DB) error {
		locked, err := s.productRepo.LockVariationTx(tx, variationID)
		if err != nil {
			return err
		}

		newStock := locked.Stock + req.Quantity
		if req.Type == model.MovementOut {
			newStock = locked.Stock - req.Quantity
		}
		if newStock < 0 {
			return &InsufficientStockError{
				ProductID:     productID,
				VariationID:   variationID,
				ProductName:   product.Name,
				VariationName: variation.Name,
				Available:     locked.Stock,
				Requested:     req.Quantity,
			}
		}

		if err := s.productRepo.UpdateVariationStockTx(tx, variationID, newStock); err != nil {
			return err
		}

		movement = model.StockMovement{
			ProductID:     productID,
			VariationID:   variationID,
			Type:          req.Type,
			Quantity:      req.Quantity,
			PreviousStock: locked.Stock,
			NewStock:      newStock,
			Reason:        req.Reason,
		}
		return s.movementRepo.CreateTx(tx, &movement)
	})
	if txErr != nil {
		return nil, txErr
	}

	resp := movementToResponse(&movement)
	resp.ProductName = product.Name
	resp.VariationName = variation.Name
	return resp, nil
}

func (s *stockService) ListMovements(ctx context.Context, filter dto.MovementFilter) (*dto.MovementListResponse, error) {
	movements, total, err := s.movementRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	data := make([]dto.MovementResponse, 0, len(movements))
	for i := range movements {
		data = append(data, *movementToResponse(&movements[i]))
	}
	return &dto.MovementListResponse{
		Data:  data,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}, nil
}

func (s *stockService) ProductHistory(ctx context.Context, productID uuid.UUID) ([]dto.MovementResponse, error) {
	if _, err := s.productRepo.FindByID(ctx, productID); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrProductNotFound, productID)
	}
	movements, err := s.movementRepo.HistoryByProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	data := make([]dto.MovementResponse, 0, len(movements))
	for i := range movements {
		data = append(data, *movementToResponse(&movements[i]))
	}
	return data, nil
}

func (s *stockService) GetAvailable(ctx context.Context, productID, variationID uuid.UUID) (int, error) {
	variation, err := s.productRepo.FindVariation(ctx, productID, variationID)
	if err != nil {
		return 0, fmt.Errorf("%w: variation %s", ErrProductNotFound, variationID)
	}
	return variation.Stock, nil
}

func movementToResponse(m *model.StockMovement) *dto.MovementResponse {
	resp := &dto.MovementResponse{
		ID:            m.ID.String(),
		ProductID:     m.ProductID.String(),
		VariationID:   m.VariationID.String(),
		Type:          m.Type,
		Quantity:      m.Quantity,
		PreviousStock: m.PreviousStock,
		NewStock:      m.NewStock,
		Reason:        m.Reason,
		CreatedAt:     m.CreatedAt.Format(time.RFC3339),
	}
	if m.Product != nil {
		resp.ProductName = m.Product.Name
	}
	if m.Variation != nil {
		resp.VariationName = m.Variation.Name
	}
	if m.SaleID != nil {
		saleID := m.SaleID.String()
		resp.SaleID = &saleID
	}
	return resp
}
