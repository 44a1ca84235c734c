package service_test

import (
	"testing"

	"github.com/JayRamoliya/merch-master-pro/internal/model"
	"github.com/JayRamoliya/merch-master-pro/internal/repository"
	"github.com/JayRamoliya/merch-master-pro/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newReturnService(db *gorm.DB) service.ReturnService {
	return service.NewReturnService(
		repository.NewReturnRepo(db),
		repository.NewSaleRepo(db),
		repository.NewVariantRepo(db),
		repository.NewStockLogRepo(db),
		db,
		nil,
	)
}

func createCustomer(t *testing.T, db *gorm.DB) *model.Customer {
	t.Helper()
	customer := &model.Customer{Name: "Jordan"}
	customer.CreatedBy = "test"
	customer.UpdatedBy = "test"
	require.NoError(t, db.Create(customer).Error)
	return customer
}

// sellTo runs a real checkout so the return tests exercise actual sale rows.
func sellTo(t *testing.T, db *gorm.DB, customer *model.Customer, p *model.Product, v *model.ProductVariant, qty int) *model.Sale {
	t.Helper()
	checkout := newCheckoutService(db)

	req := &service.CheckoutRequest{
		PaymentMethod: model.PaymentCash,
		Lines: []service.CartLine{
			{ProductID: p.ID, VariantID: v.ID, Quantity: qty},
		},
	}
	if customer != nil {
		req.CustomerID = &customer.ID
	}

	sale, err := checkout.Checkout(req, "user-1", "Alice")
	require.NoError(t, err)
	return sale
}

func TestCreateReturnRestocksAndLogs(t *testing.T) {
	db := newTestDB(t)
	svc := newReturnService(db)

	p, v := createProduct(t, db, "RET-001", "30.00", 10)
	sale := sellTo(t, db, nil, p, v, 3)
	require.Equal(t, 7, reloadVariant(t, db, v).Quantity)

	ret, err := svc.CreateReturn(&service.CreateReturnRequest{
		SaleID:       sale.ID,
		RefundMethod: model.RefundCash,
		Reason:       "wrong size",
		Lines: []service.ReturnLine{
			{ProductID: p.ID, VariantID: v.ID, Quantity: 2},
		},
	}, "user-1", "Alice")
	require.NoError(t, err)

	assert.Equal(t, "60.00", ret.RefundTotal.StringFixed(2))
	assert.NotEmpty(t, ret.ReturnNumber)
	assert.Equal(t, 9, reloadVariant(t, db, v).Quantity)

	var logEntry model.StockLog
	require.NoError(t, db.Where("variant_id = ? AND type = ?", v.ID, model.StockReturn).First(&logEntry).Error)
	assert.Equal(t, 2, logEntry.Quantity)
	assert.Equal(t, "return "+ret.ReturnNumber, logEntry.Note)

	// Cash refund leaves no credit behind
	var creditCount int64
	require.NoError(t, db.Model(&model.Credit{}).Count(&creditCount).Error)
	assert.EqualValues(t, 0, creditCount)
}

func TestCreateReturnQtyTooHigh(t *testing.T) {
	db := newTestDB(t)
	svc := newReturnService(db)

	p, v := createProduct(t, db, "RET-002", "30.00", 10)
	sale := sellTo(t, db, nil, p, v, 2)

	_, err := svc.CreateReturn(&service.CreateReturnRequest{
		SaleID:       sale.ID,
		RefundMethod: model.RefundCash,
		Lines: []service.ReturnLine{
			{ProductID: p.ID, VariantID: v.ID, Quantity: 3},
		},
	}, "user-1", "Alice")
	require.ErrorIs(t, err, service.ErrReturnQtyTooHigh)

	// Nothing restocked
	assert.Equal(t, 8, reloadVariant(t, db, v).Quantity)
}

func TestReturnRepeatedVariantLinesCheckedTogether(t *testing.T) {
	db := newTestDB(t)
	svc := newReturnService(db)

	p, v := createProduct(t, db, "RET-007", "10.00", 10)
	sale := sellTo(t, db, nil, p, v, 3)
	require.Equal(t, 7, reloadVariant(t, db, v).Quantity)

	// Two lines of 3 for the same variant add up to 6 against a 3-unit sale
	_, err := svc.CreateReturn(&service.CreateReturnRequest{
		SaleID:       sale.ID,
		RefundMethod: model.RefundCash,
		Lines: []service.ReturnLine{
			{ProductID: p.ID, VariantID: v.ID, Quantity: 3},
			{ProductID: p.ID, VariantID: v.ID, Quantity: 3},
		},
	}, "user-1", "Alice")
	require.ErrorIs(t, err, service.ErrReturnQtyTooHigh)

	// No restock, no return rows, no logs
	assert.Equal(t, 7, reloadVariant(t, db, v).Quantity)
	var returnCount int64
	require.NoError(t, db.Model(&model.Return{}).Count(&returnCount).Error)
	assert.EqualValues(t, 0, returnCount)
	var logCount int64
	require.NoError(t, db.Model(&model.StockLog{}).Where("type = ?", model.StockReturn).Count(&logCount).Error)
	assert.EqualValues(t, 0, logCount)
}

func TestSuccessiveReturnsCappedBySoldQuantity(t *testing.T) {
	db := newTestDB(t)
	svc := newReturnService(db)

	p, v := createProduct(t, db, "RET-008", "10.00", 10)
	sale := sellTo(t, db, nil, p, v, 3)

	_, err := svc.CreateReturn(&service.CreateReturnRequest{
		SaleID:       sale.ID,
		RefundMethod: model.RefundCash,
		Lines: []service.ReturnLine{
			{ProductID: p.ID, VariantID: v.ID, Quantity: 2},
		},
	}, "user-1", "Alice")
	require.NoError(t, err)
	require.Equal(t, 9, reloadVariant(t, db, v).Quantity)

	// 2 already returned, so another 2 would exceed the 3 sold
	_, err = svc.CreateReturn(&service.CreateReturnRequest{
		SaleID:       sale.ID,
		RefundMethod: model.RefundCash,
		Lines: []service.ReturnLine{
			{ProductID: p.ID, VariantID: v.ID, Quantity: 2},
		},
	}, "user-1", "Alice")
	require.ErrorIs(t, err, service.ErrReturnQtyTooHigh)
	assert.Equal(t, 9, reloadVariant(t, db, v).Quantity)

	// The last sold unit is still returnable
	_, err = svc.CreateReturn(&service.CreateReturnRequest{
		SaleID:       sale.ID,
		RefundMethod: model.RefundCash,
		Lines: []service.ReturnLine{
			{ProductID: p.ID, VariantID: v.ID, Quantity: 1},
		},
	}, "user-1", "Alice")
	require.NoError(t, err)
	assert.Equal(t, 10, reloadVariant(t, db, v).Quantity)
}

func TestCreditRefundCreatesCredit(t *testing.T) {
	db := newTestDB(t)
	svc := newReturnService(db)

	customer := createCustomer(t, db)
	p, v := createProduct(t, db, "RET-003", "45.00", 10)
	sale := sellTo(t, db, customer, p, v, 1)

	ret, err := svc.CreateReturn(&service.CreateReturnRequest{
		SaleID:       sale.ID,
		RefundMethod: model.RefundCredit,
		Lines: []service.ReturnLine{
			{ProductID: p.ID, VariantID: v.ID, Quantity: 1},
		},
	}, "user-1", "Alice")
	require.NoError(t, err)

	credits, err := svc.GetCustomerCredits(customer.ID)
	require.NoError(t, err)
	require.Len(t, credits, 1)
	assert.Equal(t, "45.00", credits[0].Amount.StringFixed(2))
	require.NotNil(t, credits[0].ReturnID)
	assert.Equal(t, ret.ID, *credits[0].ReturnID)
}

func TestCreditRefundWithoutCustomerRejected(t *testing.T) {
	db := newTestDB(t)
	svc := newReturnService(db)

	p, v := createProduct(t, db, "RET-004", "45.00", 10)
	sale := sellTo(t, db, nil, p, v, 1)

	_, err := svc.CreateReturn(&service.CreateReturnRequest{
		SaleID:       sale.ID,
		RefundMethod: model.RefundCredit,
		Lines: []service.ReturnLine{
			{ProductID: p.ID, VariantID: v.ID, Quantity: 1},
		},
	}, "user-1", "Alice")
	assert.ErrorIs(t, err, service.ErrCreditNeedsCustomer)
}

func TestReturnItemNotOnSale(t *testing.T) {
	db := newTestDB(t)
	svc := newReturnService(db)

	p, v := createProduct(t, db, "RET-005", "45.00", 10)
	other, otherVariant := createProduct(t, db, "RET-006", "5.00", 10)
	sale := sellTo(t, db, nil, p, v, 1)

	_, err := svc.CreateReturn(&service.CreateReturnRequest{
		SaleID:       sale.ID,
		RefundMethod: model.RefundCash,
		Lines: []service.ReturnLine{
			{ProductID: other.ID, VariantID: otherVariant.ID, Quantity: 1},
		},
	}, "user-1", "Alice")
	assert.ErrorIs(t, err, service.ErrItemNotOnSale)
}
