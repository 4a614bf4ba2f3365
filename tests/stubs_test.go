package tests

// In-memory repository stubs. They satisfy the repository interfaces so
// services can be unit-tested without a database; DB() returns nil, which
// makes runTx execute the callback directly.

import (
	"context"
	"strings"
	"time"

	"github.com/RafaelCassiano30011/box-menager/internal/dto"
	"github.com/RafaelCassiano30011/box-menager/internal/model"
	"github.com/RafaelCassiano30011/box-menager/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ─── Product repository stub ─────────────────────────────────────────────────

type stubProductRepo struct {
	products map[uuid.UUID]*model.Product
}

func newStubProductRepo() *stubProductRepo {
	return &stubProductRepo{products: make(map[uuid.UUID]*model.Product)}
}

// addProduct seeds a product with one variation and returns both IDs.
func (r *stubProductRepo) addProduct(name string, price string, minStock int, variationName string, stock int) (uuid.UUID, uuid.UUID) {
	productID := uuid.New()
	variationID := uuid.New()
	r.products[productID] = &model.Product{
		ID:       productID,
		Name:     name,
		Category: "general",
		Price:    decimal.RequireFromString(price),
		MinStock: minStock,
		Variations: []model.Variation{
			{ID: variationID, ProductID: productID, Name: variationName, Stock: stock},
		},
	}
	return productID, variationID
}

func (r *stubProductRepo) stockOf(variationID uuid.UUID) int {
	for _, p := range r.products {
		for i := range p.Variations {
			if p.Variations[i].ID == variationID {
				return p.Variations[i].Stock
			}
		}
	}
	return -1
}

func (r *stubProductRepo) Create(_ context.Context, p *model.Product) error {
	p.ID = uuid.New()
	for i := range p.Variations {
		p.Variations[i].ID = uuid.New()
		p.Variations[i].ProductID = p.ID
	}
	p.CreatedAt = time.Now()
	r.products[p.ID] = p
	return nil
}

func (r *stubProductRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return p, nil
}

func (r *stubProductRepo) List(_ context.Context, filter dto.ProductFilter) ([]model.Product, int64, error) {
	var out []model.Product
	for _, p := range r.products {
		if filter.Name != "" && !strings.Contains(strings.ToLower(p.Name), strings.ToLower(filter.Name)) {
			continue
		}
		if filter.Category != "" && p.Category != filter.Category {
			continue
		}
		out = append(out, *p)
	}
	return out, int64(len(out)), nil
}

func (r *stubProductRepo) Update(_ context.Context, p *model.Product) error {
	r.products[p.ID] = p
	return nil
}

func (r *stubProductRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.products[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(r.products, id)
	return nil
}

func (r *stubProductRepo) FindVariation(_ context.Context, productID, variationID uuid.UUID) (*model.Variation, error) {
	p, ok := r.products[productID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	for i := range p.Variations {
		if p.Variations[i].ID == variationID {
			return &p.Variations[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubProductRepo) ListVariations(_ context.Context) ([]model.Variation, error) {
	var out []model.Variation
	for _, p := range r.products {
		out = append(out, p.Variations...)
	}
	return out, nil
}

func (r *stubProductRepo) LowStock(_ context.Context) ([]model.Product, error) {
	var out []model.Product
	for _, p := range r.products {
		if p.IsLowStock() {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *stubProductRepo) CountProducts(_ context.Context) (int64, error) {
	return int64(len(r.products)), nil
}

func (r *stubProductRepo) SumStock(_ context.Context) (int, error) {
	sum := 0
	for _, p := range r.products {
		sum += p.TotalStock()
	}
	return sum, nil
}

func (r *stubProductRepo) LockVariationTx(_ *gorm.DB, variationID uuid.UUID) (*model.Variation, error) {
	for _, p := range r.products {
		for i := range p.Variations {
			if p.Variations[i].ID == variationID {
				snapshot := p.Variations[i]
				return &snapshot, nil
			}
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubProductRepo) UpdateVariationStockTx(_ *gorm.DB, variationID uuid.UUID, newStock int) error {
	for _, p := range r.products {
		for i := range p.Variations {
			if p.Variations[i].ID == variationID {
				p.Variations[i].Stock = newStock
				return nil
			}
		}
	}
	return gorm.ErrRecordNotFound
}

func (r *stubProductRepo) DB() *gorm.DB { return nil }

// ─── Sale repository stub ────────────────────────────────────────────────────

type stubSaleRepo struct {
	sales []*model.Sale
}

func newStubSaleRepo() *stubSaleRepo { return &stubSaleRepo{} }

func (r *stubSaleRepo) Create(_ context.Context, _ *gorm.DB, s *model.Sale) error {
	s.ID = uuid.New()
	s.CreatedAt = time.Now()
	for i := range s.Items {
		s.Items[i].ID = uuid.New()
		s.Items[i].SaleID = s.ID
	}
	r.sales = append(r.sales, s)
	return nil
}

func (r *stubSaleRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Sale, error) {
	for _, s := range r.sales {
		if s.ID == id {
			return s, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubSaleRepo) List(_ context.Context) ([]model.Sale, error) {
	out := make([]model.Sale, 0, len(r.sales))
	for i := len(r.sales) - 1; i >= 0; i-- {
		out = append(out, *r.sales[i])
	}
	return out, nil
}

func (r *stubSaleRepo) Recent(_ context.Context, limit int) ([]model.Sale, error) {
	all, _ := r.List(context.Background())
	if len(all) > limit {
		all = all[:limit]
	}
	return all, nil
}

func (r *stubSaleRepo) InRange(_ context.Context, start, end time.Time) ([]model.Sale, error) {
	var out []model.Sale
	for _, s := range r.sales {
		if !s.CreatedAt.Before(start) && s.CreatedAt.Before(end) {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (r *stubSaleRepo) TotalsBetween(_ context.Context, start, end time.Time) (decimal.Decimal, int, error) {
	total := decimal.Zero
	units := 0
	for _, s := range r.sales {
		if s.CreatedAt.Before(start) || !s.CreatedAt.Before(end) {
			continue
		}
		total = total.Add(s.Total)
		for _, item := range s.Items {
			units += item.Quantity
		}
	}
	return total, units, nil
}

func (r *stubSaleRepo) TopProducts(_ context.Context, _ int) ([]repository.TopProductRow, error) {
	return nil, nil
}

func (r *stubSaleRepo) DB() *gorm.DB { return nil }

// ─── Stock movement repository stub ──────────────────────────────────────────

type stubMovementRepo struct {
	movements []*model.StockMovement
}

func newStubMovementRepo() *stubMovementRepo { return &stubMovementRepo{} }

func (r *stubMovementRepo) Create(_ context.Context, m *model.StockMovement) error {
	return r.CreateTx(nil, m)
}

func (r *stubMovementRepo) CreateTx(_ *gorm.DB, m *model.StockMovement) error {
	m.ID = uuid.New()
	m.CreatedAt = time.Now()
	r.movements = append(r.movements, m)
	return nil
}

func (r *stubMovementRepo) List(_ context.Context, filter dto.MovementFilter) ([]model.StockMovement, int64, error) {
	var out []model.StockMovement
	for i := len(r.movements) - 1; i >= 0; i-- {
		m := r.movements[i]
		if filter.ProductID != "" && m.ProductID.String() != filter.ProductID {
			continue
		}
		if filter.Type != "" && m.Type != filter.Type {
			continue
		}
		out = append(out, *m)
	}
	return out, int64(len(out)), nil
}

func (r *stubMovementRepo) HistoryByProduct(_ context.Context, productID uuid.UUID) ([]model.StockMovement, error) {
	var out []model.StockMovement
	for i := len(r.movements) - 1; i >= 0; i-- {
		if r.movements[i].ProductID == productID {
			out = append(out, *r.movements[i])
		}
	}
	return out, nil
}

func (r *stubMovementRepo) NetChangeSince(_ context.Context, t time.Time) (int, error) {
	net := 0
	for _, m := range r.movements {
		if m.CreatedAt.Before(t) {
			continue
		}
		if m.Type == model.MovementIn {
			net += m.Quantity
		} else {
			net -= m.Quantity
		}
	}
	return net, nil
}
