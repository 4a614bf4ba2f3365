package service

import (
	"context"
	"fmt"
	"time"

	"github.com/RafaelCassiano30011/box-menager/internal/dto"
	"github.com/RafaelCassiano30011/box-menager/internal/model"
	"github.com/RafaelCassiano30011/box-menager/internal/repository"

	"github.com/google/uuid"
)

// ProductService covers catalog management. Stock on variations is only
// written through StockService and SaleService.
type ProductService interface {
	Create(ctx context.Context, req dto.CreateProductRequest) (*dto.ProductResponse, error)
	GetByID(ctx context.Context, id uuid.UUID) (*dto.ProductResponse, error)
	List(ctx context.Context, filter dto.ProductFilter) (*dto.ProductListResponse, error)
	Update(ctx context.Context, id uuid.UUID, req dto.UpdateProductRequest) (*dto.ProductResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
	ListVariations(ctx context.Context) ([]dto.VariationResponse, error)
	LowStock(ctx context.Context) ([]dto.ProductResponse, error)
}

type productService struct {
	repo repository.ProductRepository
}

func NewProductService(repo repository.ProductRepository) ProductService {
	return &productService{repo: repo}
}

func (s *productService) Create(ctx context.Context, req dto.CreateProductRequest) (*dto.ProductResponse, error) {
	product := model.Product{
		Name:        req.Name,
		Description: req.Description,
		Category:    req.Category,
		Price:       req.Price,
		MinStock:    req.MinStock,
	}
	for _, v := range req.Variations {
		product.Variations = append(product.Variations, model.Variation{
			Name:  v.Name,
			Stock: v.Stock,
		})
	}
	if err := s.repo.Create(ctx, &product); err != nil {
		return nil, err
	}
	return productToResponse(&product), nil
}

func (s *productService) GetByID(ctx context.Context, id uuid.UUID) (*dto.ProductResponse, error) {
	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrProductNotFound, id)
	}
	return productToResponse(product), nil
}

func (s *productService) List(ctx context.Context, filter dto.ProductFilter) (*dto.ProductListResponse, error) {
	products, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	data := make([]dto.ProductResponse, 0, len(products))
	for i := range products {
		data = append(data, *productToResponse(&products[i]))
	}
	totalPages := int(total) / filter.Limit
	if int(total)%filter.Limit > 0 {
		totalPages++
	}
	return &dto.ProductListResponse{
		Data:       data,
		Total:      total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: totalPages,
	}, nil
}

func (s *productService) Update(ctx context.Context, id uuid.UUID, req dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrProductNotFound, id)
	}
	if req.Name != nil {
		product.Name = *req.Name
	}
	if req.Description != nil {
		product.Description = req.Description
	}
	if req.Category != nil {
		product.Category = *req.Category
	}
	if req.Price != nil {
		product.Price = *req.Price
	}
	if req.MinStock != nil {
		product.MinStock = *req.MinStock
	}
	if err := s.repo.Update(ctx, product); err != nil {
		return nil, err
	}
	return productToResponse(product), nil
}

func (s *productService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return fmt.Errorf("%w: %s", ErrProductNotFound, id)
	}
	return s.repo.Delete(ctx, id)
}

func (s *productService) ListVariations(ctx context.Context) ([]dto.VariationResponse, error) {
	variations, err := s.repo.ListVariations(ctx)
	if err != nil {
		return nil, err
	}
	data := make([]dto.VariationResponse, 0, len(variations))
	for _, v := range variations {
		data = append(data, variationToResponse(&v))
	}
	return data, nil
}

func (s *productService) LowStock(ctx context.Context) ([]dto.ProductResponse, error) {
	products, err := s.repo.LowStock(ctx)
	if err != nil {
		return nil, err
	}
	data := make([]dto.ProductResponse, 0, len(products))
	for i := range products {
		data = append(data, *productToResponse(&products[i]))
	}
	return data, nil
}

func variationToResponse(v *model.Variation) dto.VariationResponse {
	return dto.VariationResponse{
		ID:        v.ID.String(),
		ProductID: v.ProductID.String(),
		Name:      v.Name,
		Stock:     v.Stock,
	}
}

func productToResponse(p *model.Product) *dto.ProductResponse {
	variations := make([]dto.VariationResponse, 0, len(p.Variations))
	for i := range p.Variations {
		variations = append(variations, variationToResponse(&p.Variations[i]))
	}
	return &dto.ProductResponse{
		ID:          p.ID.String(),
		Name:        p.Name,
		Description: p.Description,
		Category:    p.Category,
		Price:       p.Price,
		MinStock:    p.MinStock,
		TotalStock:  p.TotalStock(),
		IsLowStock:  p.IsLowStock(),
		Variations:  variations,
		CreatedAt:   p.CreatedAt.Format(time.RFC3339),
	}
}
