package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/RafaelCassiano30011/box-menager/internal/dto"
	"github.com/RafaelCassiano30011/box-menager/internal/model"
	"github.com/RafaelCassiano30011/box-menager/internal/pricing"
	"github.com/RafaelCassiano30011/box-menager/internal/repository"
	"github.com/RafaelCassiano30011/box-menager/internal/worker"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type SaleService interface {
	CreateSale(ctx context.Context, req dto.CreateSaleRequest) (*dto.SaleResponse, error)
	GetSale(ctx context.Context, id uuid.UUID) (*dto.SaleResponse, error)
	ListSales(ctx context.Context) ([]dto.SaleResponse, error)
}

type saleService struct {
	repo         repository.SaleRepository
	productRepo  repository.ProductRepository
	movementRepo repository.StockMovementRepository
	dispatcher   *worker.Dispatcher
}

func NewSaleService(
	repo repository.SaleRepository,
	productRepo repository.ProductRepository,
	movementRepo repository.StockMovementRepository,
	dispatcher *worker.Dispatcher,
) SaleService {
	return &saleService{
		repo:         repo,
		productRepo:  productRepo,
		movementRepo: movementRepo,
		dispatcher:   dispatcher,
	}
}

// runTx executes fn inside a GORM transaction when db is available,
// or calls fn(nil) directly when db is nil (unit test mode).
func runTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	if db == nil {
		return fn(nil)
	}
	return db.WithContext(ctx).Transaction(fn)
}

// variationDemand aggregates the requested quantity per distinct variation so
// that a cart with two lines for the same variation produces one stock
// decrement and one movement.
type variationDemand struct {
	product   *model.Product
	variation *model.Variation
	quantity  int
}

// ── CreateSale ────────────────────────────────────────────────────────────────
// The only entry point that turns a cart into a durable sale:
//   1. Resolve product + variation per line, snapshot names.
//   2. Check availability against current stock (fast fail before the tx).
//   3. Compute line subtotals and the total.
//   4. One transaction: insert sale + items; per distinct variation lock the
//      row FOR UPDATE, re-check availability, decrement stock, append one
//      "out" movement.
//   5. Commit. Any failure aborts everything; no partial state survives.

func (s *saleService) CreateSale(ctx context.Context, req dto.CreateSaleRequest) (*dto.SaleResponse, error) {
	demands := make(map[uuid.UUID]*variationDemand)
	order := make([]uuid.UUID, 0, len(req.Items))

	sale := model.Sale{
		CustomerName:  req.CustomerName,
		PaymentMethod: req.PaymentMethod,
	}

	subtotals := make([]decimal.Decimal, 0, len(req.Items))
	for _, item := range req.Items {
		productID, err := uuid.Parse(item.ProductID)
		if err != nil {
			return nil, fmt.Errorf("invalid productId: %w", err)
		}
		variationID, err := uuid.Parse(item.VariationID)
		if err != nil {
			return nil, fmt.Errorf("invalid variationId: %w", err)
		}

		product, err := s.productRepo.FindByID(ctx, productID)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", ErrProductNotFound, item.ProductID)
		}

		var variation *model.Variation
		for i := range product.Variations {
			if product.Variations[i].ID == variationID {
				variation = &product.Variations[i]
				break
			}
		}
		if variation == nil {
			return nil, fmt.Errorf("%w: variation %s of product %s", ErrProductNotFound, item.VariationID, product.Name)
		}

		d, seen := demands[variationID]
		if !seen {
			d = &variationDemand{product: product, variation: variation}
			demands[variationID] = d
			order = append(order, variationID)
		}
		d.quantity += item.Quantity

		if d.quantity > variation.Stock {
			return nil, &InsufficientStockError{
				ProductID:     productID,
				VariationID:   variationID,
				ProductName:   product.Name,
				VariationName: variation.Name,
				Available:     variation.Stock,
				Requested:     d.quantity,
			}
		}

		subtotal := pricing.LineSubtotal(item.UnitPrice, item.Quantity, item.Discount)
		subtotals = append(subtotals, subtotal)

		sale.Items = append(sale.Items, model.SaleItem{
			ProductID:     productID,
			VariationID:   variationID,
			ProductName:   product.Name,
			VariationName: variation.Name,
			Quantity:      item.Quantity,
			UnitPrice:     item.UnitPrice,
			Discount:      item.Discount,
			Subtotal:      subtotal,
		})
	}

	sale.Total = pricing.Total(subtotals)

	// Lock variations in a deterministic order so two concurrent sales with
	// reversed carts cannot deadlock on each other's row locks.
	sort.Slice(order, func(i, j int) bool {
		return order[i].String() < order[j].String()
	})

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if err := s.repo.Create(ctx, tx, &sale); err != nil {
			return err
		}

		for _, variationID := range order {
			d := demands[variationID]

			// Re-read under the row lock: a concurrent sale may have
			// committed between validation and here.
			locked, err := s.productRepo.LockVariationTx(tx, variationID)
			if err != nil {
				return err
			}
			if locked.Stock < d.quantity {
				return &InsufficientStockError{
					ProductID:     d.product.ID,
					VariationID:   variationID,
					ProductName:   d.product.Name,
					VariationName: d.variation.Name,
					Available:     locked.Stock,
					Requested:     d.quantity,
				}
			}

			newStock := locked.Stock - d.quantity
			if err := s.productRepo.UpdateVariationStockTx(tx, variationID, newStock); err != nil {
				return err
			}

			saleRef := sale.ID
			movement := &model.StockMovement{
				ProductID:     d.product.ID,
				VariationID:   variationID,
				Type:          model.MovementOut,
				Quantity:      d.quantity,
				PreviousStock: locked.Stock,
				NewStock:      newStock,
				Reason:        "Sale",
				SaleID:        &saleRef,
			}
			if err := s.movementRepo.CreateTx(tx, movement); err != nil {
				return err
			}
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	s.notifyLowStock(ctx, demands)

	return saleToResponse(&sale), nil
}

// notifyLowStock enqueues alert jobs for touched products that fell to or
// below their minimum stock. Best effort — a queue failure never fails the
// already-committed sale.
func (s *saleService) notifyLowStock(ctx context.Context, demands map[uuid.UUID]*variationDemand) {
	if s.dispatcher == nil {
		return
	}
	notified := make(map[uuid.UUID]bool)
	for _, d := range demands {
		if notified[d.product.ID] {
			continue
		}
		notified[d.product.ID] = true

		product, err := s.productRepo.FindByID(ctx, d.product.ID)
		if err != nil || !product.IsLowStock() {
			continue
		}
		alert := worker.LowStockAlert{
			ProductID:  product.ID.String(),
			Name:       product.Name,
			TotalStock: product.TotalStock(),
			MinStock:   product.MinStock,
		}
		if err := s.dispatcher.EnqueueLowStockAlert(ctx, alert); err != nil {
			log.Warn().Err(err).Str("product_id", alert.ProductID).Msg("failed to enqueue low-stock alert")
		}
	}
}

func (s *saleService) GetSale(ctx context.Context, id uuid.UUID) (*dto.SaleResponse, error) {
	sale, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return saleToResponse(sale), nil
}

func (s *saleService) ListSales(ctx context.Context) ([]dto.SaleResponse, error) {
	sales, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	responses := make([]dto.SaleResponse, 0, len(sales))
	for i := range sales {
		responses = append(responses, *saleToResponse(&sales[i]))
	}
	return responses, nil
}

func saleToResponse(s *model.Sale) *dto.SaleResponse {
	items := make([]dto.SaleItemResponse, 0, len(s.Items))
	for _, item := range s.Items {
		items = append(items, dto.SaleItemResponse{
			ID:            item.ID.String(),
			ProductID:     item.ProductID.String(),
			VariationID:   item.VariationID.String(),
			ProductName:   item.ProductName,
			VariationName: item.VariationName,
			Quantity:      item.Quantity,
			UnitPrice:     item.UnitPrice,
			Discount:      item.Discount,
			Subtotal:      item.Subtotal,
		})
	}
	return &dto.SaleResponse{
		ID:            s.ID.String(),
		CustomerName:  s.CustomerName,
		PaymentMethod: s.PaymentMethod,
		Total:         s.Total,
		Items:         items,
		CreatedAt:     s.CreatedAt.Format(time.RFC3339),
	}
}
