package tests

import (
	"context"
	"errors"
	"testing"

	"github.com/RafaelCassiano30011/box-menager/internal/dto"
	"github.com/RafaelCassiano30011/box-menager/internal/model"
	"github.com/RafaelCassiano30011/box-menager/internal/service"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newSaleFixture() (*stubProductRepo, *stubSaleRepo, *stubMovementRepo, service.SaleService) {
	productRepo := newStubProductRepo()
	saleRepo := newStubSaleRepo()
	movementRepo := newStubMovementRepo()
	svc := service.NewSaleService(saleRepo, productRepo, movementRepo, nil)
	return productRepo, saleRepo, movementRepo, svc
}

func TestCreateSaleComputesTotalsAndDecrementsStock(t *testing.T) {
	productRepo, saleRepo, movementRepo, svc := newSaleFixture()
	productID, variationID := productRepo.addProduct("T-Shirt", "10.00", 2, "M", 5)

	resp, err := svc.CreateSale(context.Background(), dto.CreateSaleRequest{
		PaymentMethod: "cash",
		Items: []dto.SaleItemRequest{
			{
				ProductID:   productID.String(),
				VariationID: variationID.String(),
				Quantity:    2,
				UnitPrice:   decimal.RequireFromString("10.00"),
				Discount:    decimal.RequireFromString("10"),
			},
		},
	})
	require.NoError(t, err)

	// 2 × 10.00 × 0.9 = 18.00
	assert.True(t, resp.Total.Equal(decimal.RequireFromString("18.00")), "total = %s", resp.Total)
	require.Len(t, resp.Items, 1)
	assert.True(t, resp.Items[0].Subtotal.Equal(decimal.RequireFromString("18.00")))
	assert.Equal(t, "T-Shirt", resp.Items[0].ProductName)
	assert.Equal(t, "M", resp.Items[0].VariationName)

	assert.Equal(t, 3, productRepo.stockOf(variationID))
	require.Len(t, saleRepo.sales, 1)

	require.Len(t, movementRepo.movements, 1)
	m := movementRepo.movements[0]
	assert.Equal(t, model.MovementOut, m.Type)
	assert.Equal(t, 2, m.Quantity)
	assert.Equal(t, 5, m.PreviousStock)
	assert.Equal(t, 3, m.NewStock)
	assert.Equal(t, "Sale", m.Reason)
	require.NotNil(t, m.SaleID)
	assert.Equal(t, saleRepo.sales[0].ID, *m.SaleID)
}

func TestCreateSaleInsufficientStockLeavesNothingBehind(t *testing.T) {
	productRepo, saleRepo, movementRepo, svc := newSaleFixture()
	productID, variationID := productRepo.addProduct("Mug", "8.50", 0, "White", 3)

	_, err := svc.CreateSale(context.Background(), dto.CreateSaleRequest{
		PaymentMethod: "pix",
		Items: []dto.SaleItemRequest{
			{
				ProductID:   productID.String(),
				VariationID: variationID.String(),
				Quantity:    10,
				UnitPrice:   decimal.RequireFromString("8.50"),
			},
		},
	})

	var insufficient *service.InsufficientStockError
	require.ErrorAs(t, err, &insufficient)
	assert.Equal(t, 3, insufficient.Available)
	assert.Equal(t, 10, insufficient.Requested)
	assert.Equal(t, "Mug", insufficient.ProductName)

	assert.Empty(t, saleRepo.sales)
	assert.Empty(t, movementRepo.movements)
	assert.Equal(t, 3, productRepo.stockOf(variationID))
}

func TestCreateSaleAggregatesLinesForSameVariation(t *testing.T) {
	productRepo, saleRepo, movementRepo, svc := newSaleFixture()
	productID, variationID := productRepo.addProduct("Cap", "25.00", 1, "Blue", 10)

	resp, err := svc.CreateSale(context.Background(), dto.CreateSaleRequest{
		PaymentMethod: "debit",
		Items: []dto.SaleItemRequest{
			{ProductID: productID.String(), VariationID: variationID.String(), Quantity: 2, UnitPrice: decimal.RequireFromString("25.00")},
			{ProductID: productID.String(), VariationID: variationID.String(), Quantity: 3, UnitPrice: decimal.RequireFromString("25.00")},
		},
	})
	require.NoError(t, err)

	// Both lines persist on the sale, but one movement covers the variation.
	assert.Len(t, resp.Items, 2)
	assert.True(t, resp.Total.Equal(decimal.RequireFromString("125.00")))

	require.Len(t, movementRepo.movements, 1)
	m := movementRepo.movements[0]
	assert.Equal(t, 5, m.Quantity)
	assert.Equal(t, 10, m.PreviousStock)
	assert.Equal(t, 5, m.NewStock)

	assert.Equal(t, 5, productRepo.stockOf(variationID))
	assert.Len(t, saleRepo.sales, 1)
}

func TestCreateSaleAggregatedDemandExceedsStock(t *testing.T) {
	productRepo, saleRepo, movementRepo, svc := newSaleFixture()
	productID, variationID := productRepo.addProduct("Cap", "25.00", 1, "Red", 4)

	// Each line alone fits, combined they do not.
	_, err := svc.CreateSale(context.Background(), dto.CreateSaleRequest{
		PaymentMethod: "cash",
		Items: []dto.SaleItemRequest{
			{ProductID: productID.String(), VariationID: variationID.String(), Quantity: 3, UnitPrice: decimal.RequireFromString("25.00")},
			{ProductID: productID.String(), VariationID: variationID.String(), Quantity: 3, UnitPrice: decimal.RequireFromString("25.00")},
		},
	})

	var insufficient *service.InsufficientStockError
	require.ErrorAs(t, err, &insufficient)
	assert.Equal(t, 4, insufficient.Available)
	assert.Equal(t, 6, insufficient.Requested)

	assert.Empty(t, saleRepo.sales)
	assert.Empty(t, movementRepo.movements)
	assert.Equal(t, 4, productRepo.stockOf(variationID))
}

func TestCreateSaleUnknownProduct(t *testing.T) {
	_, saleRepo, _, svc := newSaleFixture()

	_, err := svc.CreateSale(context.Background(), dto.CreateSaleRequest{
		PaymentMethod: "cash",
		Items: []dto.SaleItemRequest{
			{ProductID: uuid.NewString(), VariationID: uuid.NewString(), Quantity: 1, UnitPrice: decimal.RequireFromString("5.00")},
		},
	})

	assert.True(t, errors.Is(err, service.ErrProductNotFound))
	assert.Empty(t, saleRepo.sales)
}

func TestCreateSaleUnknownVariation(t *testing.T) {
	productRepo, saleRepo, _, svc := newSaleFixture()
	productID, _ := productRepo.addProduct("Socks", "4.00", 0, "39-42", 20)

	_, err := svc.CreateSale(context.Background(), dto.CreateSaleRequest{
		PaymentMethod: "credit",
		Items: []dto.SaleItemRequest{
			{ProductID: productID.String(), VariationID: uuid.NewString(), Quantity: 1, UnitPrice: decimal.RequireFromString("4.00")},
		},
	})

	assert.True(t, errors.Is(err, service.ErrProductNotFound))
	assert.Empty(t, saleRepo.sales)
}

func TestCreateSaleMixedItemsTotal(t *testing.T) {
	productRepo, _, movementRepo, svc := newSaleFixture()
	shirtID, shirtVarID := productRepo.addProduct("T-Shirt", "10.00", 0, "L", 8)
	mugID, mugVarID := productRepo.addProduct("Mug", "8.50", 0, "Black", 4)

	resp, err := svc.CreateSale(context.Background(), dto.CreateSaleRequest{
		PaymentMethod: "cash",
		Items: []dto.SaleItemRequest{
			{ProductID: shirtID.String(), VariationID: shirtVarID.String(), Quantity: 3, UnitPrice: decimal.RequireFromString("10.00"), Discount: decimal.RequireFromString("15")},
			{ProductID: mugID.String(), VariationID: mugVarID.String(), Quantity: 2, UnitPrice: decimal.RequireFromString("8.50")},
		},
	})
	require.NoError(t, err)

	// 3 × 10.00 × 0.85 = 25.50, 2 × 8.50 = 17.00 → 42.50
	assert.True(t, resp.Total.Equal(decimal.RequireFromString("42.50")), "total = %s", resp.Total)

	// One movement per distinct variation touched.
	assert.Len(t, movementRepo.movements, 2)
	assert.Equal(t, 5, productRepo.stockOf(shirtVarID))
	assert.Equal(t, 2, productRepo.stockOf(mugVarID))
}

// contendedProductRepo simulates a concurrent sale committing between the
// availability pre-check and the row lock: the locked read reports less stock
// than FindByID did.
type contendedProductRepo struct {
	*stubProductRepo
	lockedStock int
}

func (r *contendedProductRepo) LockVariationTx(tx *gorm.DB, variationID uuid.UUID) (*model.Variation, error) {
	v, err := r.stubProductRepo.LockVariationTx(tx, variationID)
	if err != nil {
		return nil, err
	}
	v.Stock = r.lockedStock
	return v, nil
}

func TestCreateSaleRechecksAvailabilityUnderLock(t *testing.T) {
	productRepo := &contendedProductRepo{stubProductRepo: newStubProductRepo(), lockedStock: 1}
	saleRepo := newStubSaleRepo()
	movementRepo := newStubMovementRepo()
	svc := service.NewSaleService(saleRepo, productRepo, movementRepo, nil)

	productID, variationID := productRepo.addProduct("T-Shirt", "10.00", 0, "M", 5)

	// Pre-check sees 5 units; the locked row only has 1 left.
	_, err := svc.CreateSale(context.Background(), dto.CreateSaleRequest{
		PaymentMethod: "cash",
		Items: []dto.SaleItemRequest{
			{ProductID: productID.String(), VariationID: variationID.String(), Quantity: 2, UnitPrice: decimal.RequireFromString("10.00")},
		},
	})

	var insufficient *service.InsufficientStockError
	require.ErrorAs(t, err, &insufficient)
	assert.Equal(t, 1, insufficient.Available)
	assert.Equal(t, 2, insufficient.Requested)

	// No stock write and no movement; with a real DB the sale row rolls back
	// with the transaction.
	assert.Equal(t, 5, productRepo.stockOf(variationID))
	assert.Empty(t, movementRepo.movements)
}

func TestCreateSaleLocksVariationsInDeterministicOrder(t *testing.T) {
	productRepo, _, movementRepo, svc := newSaleFixture()
	aID, aVarID := productRepo.addProduct("Alpha", "5.00", 0, "One", 10)
	bID, bVarID := productRepo.addProduct("Beta", "5.00", 0, "One", 10)

	// Cart in descending UUID order; locks must still happen ascending.
	first, second := aID, bID
	firstVar, secondVar := aVarID, bVarID
	if bVarID.String() > aVarID.String() {
		first, second = bID, aID
		firstVar, secondVar = bVarID, aVarID
	}

	_, err := svc.CreateSale(context.Background(), dto.CreateSaleRequest{
		PaymentMethod: "cash",
		Items: []dto.SaleItemRequest{
			{ProductID: first.String(), VariationID: firstVar.String(), Quantity: 1, UnitPrice: decimal.RequireFromString("5.00")},
			{ProductID: second.String(), VariationID: secondVar.String(), Quantity: 1, UnitPrice: decimal.RequireFromString("5.00")},
		},
	})
	require.NoError(t, err)

	require.Len(t, movementRepo.movements, 2)
	assert.Equal(t, secondVar, movementRepo.movements[0].VariationID)
	assert.Equal(t, firstVar, movementRepo.movements[1].VariationID)
}

func TestGetSaleAfterCreate(t *testing.T) {
	productRepo, saleRepo, _, svc := newSaleFixture()
	productID, variationID := productRepo.addProduct("T-Shirt", "10.00", 0, "S", 5)

	created, err := svc.CreateSale(context.Background(), dto.CreateSaleRequest{
		PaymentMethod: "cash",
		Items: []dto.SaleItemRequest{
			{ProductID: productID.String(), VariationID: variationID.String(), Quantity: 1, UnitPrice: decimal.RequireFromString("10.00")},
		},
	})
	require.NoError(t, err)

	fetched, err := svc.GetSale(context.Background(), saleRepo.sales[0].ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, fetched.ID)
	assert.True(t, fetched.Total.Equal(created.Total))
}
