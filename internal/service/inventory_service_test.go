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

func newInventoryService(db *gorm.DB) service.InventoryService {
	return service.NewInventoryService(
		repository.NewVariantRepo(db),
		repository.NewStockLogRepo(db),
		db,
		nil,
	)
}

func TestAdjustStockAdd(t *testing.T) {
	db := newTestDB(t)
	svc := newInventoryService(db)
	_, variant := createProduct(t, db, "TS-001", "10.00", 10)

	updated, err := svc.AdjustStock(&service.AdjustStockRequest{
		VariantID: variant.ID,
		Operation: service.OpAdd,
		Value:     5,
		Note:      "restock",
	}, "user-1", "Alice")
	require.NoError(t, err)
	assert.Equal(t, 15, updated.Quantity)

	var logEntry model.StockLog
	require.NoError(t, db.First(&logEntry, "variant_id = ?", variant.ID).Error)
	assert.Equal(t, model.StockAdjustAdd, logEntry.Type)
	assert.Equal(t, 5, logEntry.Quantity)
	assert.Equal(t, "restock", logEntry.Note)
}

func TestAdjustStockRemove(t *testing.T) {
	db := newTestDB(t)
	svc := newInventoryService(db)
	_, variant := createProduct(t, db, "TS-002", "10.00", 10)

	updated, err := svc.AdjustStock(&service.AdjustStockRequest{
		VariantID: variant.ID,
		Operation: service.OpRemove,
		Value:     4,
	}, "user-1", "Alice")
	require.NoError(t, err)
	assert.Equal(t, 6, updated.Quantity)

	var logEntry model.StockLog
	require.NoError(t, db.First(&logEntry, "variant_id = ?", variant.ID).Error)
	assert.Equal(t, model.StockAdjustRemove, logEntry.Type)
	assert.Equal(t, 4, logEntry.Quantity)
}

func TestAdjustStockRemoveBelowZeroRejected(t *testing.T) {
	db := newTestDB(t)
	svc := newInventoryService(db)
	_, variant := createProduct(t, db, "TS-003", "10.00", 10)

	_, err := svc.AdjustStock(&service.AdjustStockRequest{
		VariantID: variant.ID,
		Operation: service.OpRemove,
		Value:     12,
	}, "user-1", "Alice")
	require.ErrorIs(t, err, service.ErrNegativeStock)

	// Nothing written: quantity unchanged, no log rows
	fresh := reloadVariant(t, db, variant)
	assert.Equal(t, 10, fresh.Quantity)
	assert.EqualValues(t, 0, countStockLogs(t, db))
}

func TestAdjustStockSetLogsResultingQuantity(t *testing.T) {
	db := newTestDB(t)
	svc := newInventoryService(db)
	_, variant := createProduct(t, db, "TS-004", "10.00", 10)

	updated, err := svc.AdjustStock(&service.AdjustStockRequest{
		VariantID: variant.ID,
		Operation: service.OpSet,
		Value:     4,
		Note:      "stocktake",
	}, "user-1", "Alice")
	require.NoError(t, err)
	assert.Equal(t, 4, updated.Quantity)

	var logEntry model.StockLog
	require.NoError(t, db.First(&logEntry, "variant_id = ?", variant.ID).Error)
	assert.Equal(t, model.StockAdjustSet, logEntry.Type)
	assert.Equal(t, 4, logEntry.Quantity)
}

func TestAdjustStockValidation(t *testing.T) {
	db := newTestDB(t)
	svc := newInventoryService(db)
	_, variant := createProduct(t, db, "TS-005", "10.00", 10)

	_, err := svc.AdjustStock(&service.AdjustStockRequest{
		VariantID: variant.ID,
		Operation: service.OpAdd,
		Value:     0,
	}, "user-1", "Alice")
	assert.ErrorIs(t, err, service.ErrInvalidQuantity)

	_, err = svc.AdjustStock(&service.AdjustStockRequest{
		VariantID: variant.ID,
		Operation: service.OpSet,
		Value:     -1,
	}, "user-1", "Alice")
	assert.ErrorIs(t, err, service.ErrNegativeStock)

	_, err = svc.AdjustStock(&service.AdjustStockRequest{
		VariantID: variant.ID,
		Operation: service.AdjustOp("destroy"),
		Value:     1,
	}, "user-1", "Alice")
	assert.ErrorIs(t, err, service.ErrInvalidOperation)
}

func TestAdjustStockUnknownVariant(t *testing.T) {
	db := newTestDB(t)
	svc := newInventoryService(db)

	_, err := svc.AdjustStock(&service.AdjustStockRequest{
		VariantID: uuid.New(),
		Operation: service.OpAdd,
		Value:     1,
	}, "user-1", "Alice")
	assert.ErrorIs(t, err, service.ErrVariantNotFound)
}

func TestGetLowStockVariants(t *testing.T) {
	db := newTestDB(t)
	svc := newInventoryService(db)

	_, low := createProduct(t, db, "TS-006", "10.00", 2)
	require.NoError(t, db.Model(low).Update("min_quantity", 5).Error)
	createProduct(t, db, "TS-007", "10.00", 50)

	variants, err := svc.GetLowStockVariants()
	require.NoError(t, err)
	require.Len(t, variants, 1)
	assert.Equal(t, low.ID, variants[0].ID)
}
