package service_test

import (
	"testing"

	"github.com/JayRamoliya/merch-master-pro/internal/model"
	"github.com/JayRamoliya/merch-master-pro/internal/repository"
	"github.com/JayRamoliya/merch-master-pro/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newPurchaseService(db *gorm.DB) service.PurchaseService {
	return service.NewPurchaseService(
		repository.NewPurchaseOrderRepo(db),
		repository.NewSupplierRepo(db),
		repository.NewVariantRepo(db),
		repository.NewStockLogRepo(db),
		db,
		nil,
	)
}

func createSupplier(t *testing.T, db *gorm.DB) *model.Supplier {
	t.Helper()
	supplier := &model.Supplier{Name: "Acme Wholesale"}
	supplier.CreatedBy = "test"
	supplier.UpdatedBy = "test"
	require.NoError(t, db.Create(supplier).Error)
	return supplier
}

func TestCreateAndReceivePurchaseOrder(t *testing.T) {
	db := newTestDB(t)
	svc := newPurchaseService(db)

	supplier := createSupplier(t, db)
	p, v := createProduct(t, db, "PO-001", "40.00", 0)

	po, err := svc.CreatePurchaseOrder(&service.CreatePurchaseOrderRequest{
		SupplierID: supplier.ID,
		Lines: []service.PurchaseOrderLine{
			{ProductID: p.ID, VariantID: v.ID, Quantity: 5, UnitCost: decimalFromString(t, "20.00")},
		},
	}, "user-1")
	require.NoError(t, err)

	assert.Equal(t, model.POOrdered, po.Status)
	assert.Equal(t, "100.00", po.Total.StringFixed(2))
	assert.NotEmpty(t, po.PONumber)

	received, err := svc.ReceivePurchaseOrder(po.ID, "user-1", "Alice")
	require.NoError(t, err)
	assert.Equal(t, model.POReceived, received.Status)
	assert.NotNil(t, received.ReceivedAt)

	fresh := reloadVariant(t, db, v)
	assert.Equal(t, 5, fresh.Quantity)

	var logEntry model.StockLog
	require.NoError(t, db.First(&logEntry, "variant_id = ?", v.ID).Error)
	assert.Equal(t, model.StockIn, logEntry.Type)
	assert.Equal(t, 5, logEntry.Quantity)
	assert.Equal(t, "received "+po.PONumber, logEntry.Note)
}

func TestReceivePurchaseOrderTwiceRejected(t *testing.T) {
	db := newTestDB(t)
	svc := newPurchaseService(db)

	supplier := createSupplier(t, db)
	p, v := createProduct(t, db, "PO-002", "40.00", 0)

	po, err := svc.CreatePurchaseOrder(&service.CreatePurchaseOrderRequest{
		SupplierID: supplier.ID,
		Lines: []service.PurchaseOrderLine{
			{ProductID: p.ID, VariantID: v.ID, Quantity: 2, UnitCost: decimalFromString(t, "5.00")},
		},
	}, "user-1")
	require.NoError(t, err)

	_, err = svc.ReceivePurchaseOrder(po.ID, "user-1", "Alice")
	require.NoError(t, err)

	_, err = svc.ReceivePurchaseOrder(po.ID, "user-1", "Alice")
	assert.ErrorIs(t, err, service.ErrPONotReceivable)

	// No double restock
	assert.Equal(t, 2, reloadVariant(t, db, v).Quantity)
}

func TestCreatePurchaseOrderUnknownSupplier(t *testing.T) {
	db := newTestDB(t)
	svc := newPurchaseService(db)
	p, v := createProduct(t, db, "PO-003", "40.00", 0)

	_, err := svc.CreatePurchaseOrder(&service.CreatePurchaseOrderRequest{
		SupplierID: uuid.New(),
		Lines: []service.PurchaseOrderLine{
			{ProductID: p.ID, VariantID: v.ID, Quantity: 1, UnitCost: decimalFromString(t, "5.00")},
		},
	}, "user-1")
	assert.ErrorIs(t, err, service.ErrSupplierNotFound)
}

func TestCancelReceivedPurchaseOrderRejected(t *testing.T) {
	db := newTestDB(t)
	svc := newPurchaseService(db)

	supplier := createSupplier(t, db)
	p, v := createProduct(t, db, "PO-004", "40.00", 0)

	po, err := svc.CreatePurchaseOrder(&service.CreatePurchaseOrderRequest{
		SupplierID: supplier.ID,
		Lines: []service.PurchaseOrderLine{
			{ProductID: p.ID, VariantID: v.ID, Quantity: 1, UnitCost: decimalFromString(t, "5.00")},
		},
	}, "user-1")
	require.NoError(t, err)

	_, err = svc.ReceivePurchaseOrder(po.ID, "user-1", "Alice")
	require.NoError(t, err)

	err = svc.CancelPurchaseOrder(po.ID, "user-1")
	assert.Error(t, err)
}
