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

func newCheckoutService(db *gorm.DB) service.CheckoutService {
	return service.NewCheckoutService(
		repository.NewProductRepo(db),
		repository.NewVariantRepo(db),
		repository.NewSaleRepo(db),
		repository.NewStockLogRepo(db),
		repository.NewSettingsRepo(db),
		db,
		nil,
	)
}

func TestPreviewCartTotals(t *testing.T) {
	db := newTestDB(t)
	svc := newCheckoutService(db)

	pA, vA := createProduct(t, db, "POS-A", "100.00", 10)
	pB, vB := createProduct(t, db, "POS-B", "50.00", 10)

	totals, err := svc.PreviewCart([]service.CartLine{
		{ProductID: pA.ID, VariantID: vA.ID, Quantity: 2},
		{ProductID: pB.ID, VariantID: vB.ID, Quantity: 1},
	})
	require.NoError(t, err)

	// Default tax rate is 5%
	assert.Equal(t, "250.00", totals.Subtotal.StringFixed(2))
	assert.Equal(t, "12.50", totals.Tax.StringFixed(2))
	assert.Equal(t, "262.50", totals.Total.StringFixed(2))
	require.Len(t, totals.Lines, 2)
	assert.Equal(t, "200.00", totals.Lines[0].LineTotal.StringFixed(2))
	assert.Equal(t, "50.00", totals.Lines[1].LineTotal.StringFixed(2))
}

func TestPreviewCartUsesConfiguredTaxRate(t *testing.T) {
	db := newTestDB(t)
	svc := newCheckoutService(db)

	settingsRepo := repository.NewSettingsRepo(db)
	settings, err := settingsRepo.Get()
	require.NoError(t, err)
	settings.TaxRate = decimalFromString(t, "0.10")
	require.NoError(t, settingsRepo.Update(settings))

	p, v := createProduct(t, db, "POS-C", "100.00", 10)
	totals, err := svc.PreviewCart([]service.CartLine{
		{ProductID: p.ID, VariantID: v.ID, Quantity: 1},
	})
	require.NoError(t, err)
	assert.Equal(t, "10.00", totals.Tax.StringFixed(2))
	assert.Equal(t, "110.00", totals.Total.StringFixed(2))
}

func TestCheckoutDecrementsStockAndLogs(t *testing.T) {
	db := newTestDB(t)
	svc := newCheckoutService(db)

	p, v := createProduct(t, db, "POS-D", "25.00", 10)

	sale, err := svc.Checkout(&service.CheckoutRequest{
		PaymentMethod: model.PaymentCash,
		Lines: []service.CartLine{
			{ProductID: p.ID, VariantID: v.ID, Quantity: 3},
		},
	}, "user-1", "Alice")
	require.NoError(t, err)

	assert.NotEmpty(t, sale.SaleNumber)
	assert.Equal(t, model.PaymentPaid, sale.PaymentStatus)
	assert.Equal(t, "75.00", sale.Subtotal.StringFixed(2))
	require.Len(t, sale.Items, 1)
	assert.Equal(t, "25.00", sale.Items[0].UnitPrice.StringFixed(2))

	fresh := reloadVariant(t, db, v)
	assert.Equal(t, 7, fresh.Quantity)

	var logEntry model.StockLog
	require.NoError(t, db.First(&logEntry, "variant_id = ?", v.ID).Error)
	assert.Equal(t, model.StockSale, logEntry.Type)
	assert.Equal(t, 3, logEntry.Quantity)
	assert.Equal(t, "sale "+sale.SaleNumber, logEntry.Note)
}

func TestCheckoutInsufficientStockAbortsEverything(t *testing.T) {
	db := newTestDB(t)
	svc := newCheckoutService(db)

	pA, vA := createProduct(t, db, "POS-E", "10.00", 10)
	pB, vB := createProduct(t, db, "POS-F", "10.00", 1)

	_, err := svc.Checkout(&service.CheckoutRequest{
		PaymentMethod: model.PaymentCash,
		Lines: []service.CartLine{
			{ProductID: pA.ID, VariantID: vA.ID, Quantity: 5},
			{ProductID: pB.ID, VariantID: vB.ID, Quantity: 2},
		},
	}, "user-1", "Alice")
	require.ErrorIs(t, err, service.ErrInsufficientStock)

	// First line's decrement must have been rolled back too
	assert.Equal(t, 10, reloadVariant(t, db, vA).Quantity)
	assert.Equal(t, 1, reloadVariant(t, db, vB).Quantity)
	assert.EqualValues(t, 0, countStockLogs(t, db))

	var saleCount int64
	require.NoError(t, db.Model(&model.Sale{}).Count(&saleCount).Error)
	assert.EqualValues(t, 0, saleCount)
}

func TestCheckoutVariantMismatch(t *testing.T) {
	db := newTestDB(t)
	svc := newCheckoutService(db)

	pA, _ := createProduct(t, db, "POS-G", "10.00", 10)
	_, vB := createProduct(t, db, "POS-H", "10.00", 10)

	_, err := svc.Checkout(&service.CheckoutRequest{
		PaymentMethod: model.PaymentCash,
		Lines: []service.CartLine{
			{ProductID: pA.ID, VariantID: vB.ID, Quantity: 1},
		},
	}, "user-1", "Alice")
	assert.ErrorIs(t, err, service.ErrVariantMismatch)
}

func TestPreviewCartEmpty(t *testing.T) {
	db := newTestDB(t)
	svc := newCheckoutService(db)

	_, err := svc.PreviewCart(nil)
	assert.ErrorIs(t, err, service.ErrEmptyCart)
}
