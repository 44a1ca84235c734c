package service_test

import (
	"strings"
	"testing"

	"github.com/JayRamoliya/merch-master-pro/internal/model"
	"github.com/JayRamoliya/merch-master-pro/internal/repository"
	"github.com/JayRamoliya/merch-master-pro/internal/service"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newProductService(db *gorm.DB) service.ProductService {
	return service.NewProductService(
		repository.NewProductRepo(db),
		repository.NewVariantRepo(db),
		repository.NewStockLogRepo(db),
		db,
		nil,
	)
}

func TestCreateProductGetsDefaultVariant(t *testing.T) {
	db := newTestDB(t)
	svc := newProductService(db)

	product := &model.Product{
		SKU:   "NEW-001",
		Name:  "Plain Tee",
		Price: decimalFromString(t, "19.99"),
	}
	require.NoError(t, svc.CreateProduct(product, "user-1"))
	require.Len(t, product.Variants, 1)
	assert.Equal(t, 0, product.Variants[0].Quantity)
}

func TestCreateProductDuplicateSKU(t *testing.T) {
	db := newTestDB(t)
	svc := newProductService(db)
	createProduct(t, db, "DUP-001", "10.00", 0)

	err := svc.CreateProduct(&model.Product{
		SKU:   "DUP-001",
		Name:  "Imposter",
		Price: decimalFromString(t, "5.00"),
	}, "user-1")
	assert.ErrorIs(t, err, service.ErrSKUExists)
}

func TestCreateProductNegativePrice(t *testing.T) {
	db := newTestDB(t)
	svc := newProductService(db)

	err := svc.CreateProduct(&model.Product{
		SKU:   "NEG-001",
		Name:  "Broken",
		Price: decimalFromString(t, "-1.00"),
	}, "user-1")
	assert.ErrorIs(t, err, service.ErrNegativePrice)
}

func TestBulkAdjustPercent(t *testing.T) {
	db := newTestDB(t)
	svc := newProductService(db)

	pA, _ := createProduct(t, db, "BLK-A", "100.00", 0)
	pB, _ := createProduct(t, db, "BLK-B", "50.00", 0)
	pC, _ := createProduct(t, db, "BLK-C", "20.00", 0)

	err := svc.BulkUpdatePrices(&service.BulkPriceRequest{
		ProductIDs: []uuid.UUID{pA.ID, pB.ID, pC.ID},
		Mode:       service.BulkAdjustPercent,
		Value:      decimalFromString(t, "-30"),
	}, "user-1")
	require.NoError(t, err)

	want := map[uuid.UUID]string{pA.ID: "70.00", pB.ID: "35.00", pC.ID: "14.00"}
	for id, price := range want {
		var p model.Product
		require.NoError(t, db.First(&p, "id = ?", id).Error)
		assert.Equal(t, price, p.Price.StringFixed(2))
	}
}

func TestBulkAdjustAbortsWholeBatchOnNegative(t *testing.T) {
	db := newTestDB(t)
	svc := newProductService(db)

	pA, _ := createProduct(t, db, "BLK-D", "100.00", 0)
	pB, _ := createProduct(t, db, "BLK-E", "10.00", 0)

	// -150% would push every price negative; nothing may change
	err := svc.BulkUpdatePrices(&service.BulkPriceRequest{
		ProductIDs: []uuid.UUID{pA.ID, pB.ID},
		Mode:       service.BulkAdjustPercent,
		Value:      decimalFromString(t, "-150"),
	}, "user-1")
	require.ErrorIs(t, err, service.ErrNegativePrice)

	var a, b model.Product
	require.NoError(t, db.First(&a, "id = ?", pA.ID).Error)
	require.NoError(t, db.First(&b, "id = ?", pB.ID).Error)
	assert.Equal(t, "100.00", a.Price.StringFixed(2))
	assert.Equal(t, "10.00", b.Price.StringFixed(2))
}

func TestBulkAdjustFixed(t *testing.T) {
	db := newTestDB(t)
	svc := newProductService(db)

	p, _ := createProduct(t, db, "BLK-F", "10.00", 0)

	err := svc.BulkUpdatePrices(&service.BulkPriceRequest{
		ProductIDs: []uuid.UUID{p.ID},
		Mode:       service.BulkAdjustFixed,
		Value:      decimalFromString(t, "2.50"),
	}, "user-1")
	require.NoError(t, err)

	var fresh model.Product
	require.NoError(t, db.First(&fresh, "id = ?", p.ID).Error)
	assert.Equal(t, "12.50", fresh.Price.StringFixed(2))
}

func TestBulkSetPrice(t *testing.T) {
	db := newTestDB(t)
	svc := newProductService(db)

	pA, _ := createProduct(t, db, "BLK-G", "100.00", 0)
	pB, _ := createProduct(t, db, "BLK-H", "50.00", 0)

	err := svc.BulkUpdatePrices(&service.BulkPriceRequest{
		ProductIDs: []uuid.UUID{pA.ID, pB.ID},
		Mode:       service.BulkSet,
		Value:      decimalFromString(t, "9.99"),
	}, "user-1")
	require.NoError(t, err)

	for _, id := range []uuid.UUID{pA.ID, pB.ID} {
		var p model.Product
		require.NoError(t, db.First(&p, "id = ?", id).Error)
		assert.Equal(t, "9.99", p.Price.StringFixed(2))
	}
}

func TestBulkUpdateUnknownProduct(t *testing.T) {
	db := newTestDB(t)
	svc := newProductService(db)

	err := svc.BulkUpdatePrices(&service.BulkPriceRequest{
		ProductIDs: []uuid.UUID{uuid.New()},
		Mode:       service.BulkAdjustPercent,
		Value:      decimalFromString(t, "10"),
	}, "user-1")
	assert.ErrorIs(t, err, service.ErrProductMissing)
}

func TestParseProductCSV(t *testing.T) {
	db := newTestDB(t)
	svc := newProductService(db)

	csvData := strings.Join([]string{
		"name,sku,price,quantity",
		"Blue Tee,TEE-BLU,15.50,20",
		"Red Tee,TEE-RED,15.50,0",
	}, "\n")

	rows, err := svc.ParseProductCSV(strings.NewReader(csvData))
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Blue Tee", rows[0].Name)
	assert.Equal(t, "TEE-BLU", rows[0].SKU)
	assert.True(t, rows[0].Price.Equal(decimal.RequireFromString("15.50")))
	assert.Equal(t, 20, rows[0].Quantity)
}

func TestParseProductCSVBadPrice(t *testing.T) {
	db := newTestDB(t)
	svc := newProductService(db)

	csvData := "name,sku,price,quantity\nBad,BAD-1,abc,1"
	_, err := svc.ParseProductCSV(strings.NewReader(csvData))
	assert.ErrorIs(t, err, service.ErrInvalidCSVRow)
}

func TestImportProductsDedup(t *testing.T) {
	db := newTestDB(t)
	svc := newProductService(db)

	// TEE-OLD already exists in the store
	createProduct(t, db, "TEE-OLD", "10.00", 5)

	rows := []service.ProductImportRow{
		{Name: "Blue Tee", SKU: "TEE-BLU", Price: decimalFromString(t, "15.50"), Quantity: 20},
		{Name: "Blue Tee again", SKU: "TEE-BLU", Price: decimalFromString(t, "16.00"), Quantity: 5},
		{Name: "Old Tee", SKU: "TEE-OLD", Price: decimalFromString(t, "11.00"), Quantity: 3},
		{Name: "Green Tee", SKU: "TEE-GRN", Price: decimalFromString(t, "12.00"), Quantity: 0},
	}

	summary, err := svc.ImportProducts(rows, "user-1")
	require.NoError(t, err)
	assert.Equal(t, 2, summary.Imported)
	assert.Equal(t, 1, summary.SkippedExisting)
	assert.Equal(t, 1, summary.DuplicateInFile)

	// The imported product carries its initial quantity and an "in" log
	var blue model.Product
	require.NoError(t, db.Preload("Variants").First(&blue, "sku = ?", "TEE-BLU").Error)
	require.Len(t, blue.Variants, 1)
	assert.Equal(t, 20, blue.Variants[0].Quantity)

	var logEntry model.StockLog
	require.NoError(t, db.First(&logEntry, "product_id = ?", blue.ID).Error)
	assert.Equal(t, model.StockIn, logEntry.Type)
	assert.Equal(t, 20, logEntry.Quantity)
	assert.Equal(t, "import", logEntry.Note)

	// Zero-quantity imports get a variant but no stock log
	var green model.Product
	require.NoError(t, db.Preload("Variants").First(&green, "sku = ?", "TEE-GRN").Error)
	require.Len(t, green.Variants, 1)
	var greenLogs int64
	require.NoError(t, db.Model(&model.StockLog{}).Where("product_id = ?", green.ID).Count(&greenLogs).Error)
	assert.EqualValues(t, 0, greenLogs)

	// The pre-existing product's price is untouched
	var old model.Product
	require.NoError(t, db.First(&old, "sku = ?", "TEE-OLD").Error)
	assert.Equal(t, "10.00", old.Price.StringFixed(2))
}
