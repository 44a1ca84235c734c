package service_test

import (
	"testing"

	"github.com/JayRamoliya/merch-master-pro/internal/repository"
	"github.com/JayRamoliya/merch-master-pro/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newDashboardService(db *gorm.DB) service.DashboardService {
	return service.NewDashboardService(
		repository.NewProductRepo(db),
		repository.NewVariantRepo(db),
		repository.NewSaleRepo(db),
		db,
	)
}

func TestDashboardStats(t *testing.T) {
	db := newTestDB(t)
	svc := newDashboardService(db)

	// 10 * 20.00 + 3 * 5.00 = 215.00 on hand
	createProduct(t, db, "DASH-A", "20.00", 10)
	_, low := createProduct(t, db, "DASH-B", "5.00", 3)
	require.NoError(t, db.Model(low).Update("min_quantity", 5).Error)

	stats, err := svc.GetStats()
	require.NoError(t, err)
	assert.EqualValues(t, 2, stats.TotalProducts)
	assert.EqualValues(t, 1, stats.LowStockCount)
	assert.Equal(t, "215.00", stats.TotalValuation.StringFixed(2))
}

func TestDashboardSalesSummary(t *testing.T) {
	db := newTestDB(t)
	svc := newDashboardService(db)

	p, v := createProduct(t, db, "DASH-C", "100.00", 10)
	sellTo(t, db, nil, p, v, 2)

	summary, err := svc.GetSalesSummary(7)
	require.NoError(t, err)
	assert.EqualValues(t, 1, summary.SaleCount)
	assert.Equal(t, "210.00", summary.Revenue.StringFixed(2))
	assert.Equal(t, "10.00", summary.TaxTotal.StringFixed(2))
}

func TestDashboardStatsIgnoreDeletedProducts(t *testing.T) {
	db := newTestDB(t)
	svc := newDashboardService(db)

	p, _ := createProduct(t, db, "DASH-D", "50.00", 4)
	createProduct(t, db, "DASH-E", "10.00", 1)

	productRepo := repository.NewProductRepo(db)
	require.NoError(t, productRepo.Delete(p.ID, "test"))

	stats, err := svc.GetStats()
	require.NoError(t, err)
	assert.EqualValues(t, 1, stats.TotalProducts)
	assert.Equal(t, "10.00", stats.TotalValuation.StringFixed(2))
}

func TestDashboardStatsEmptyStore(t *testing.T) {
	db := newTestDB(t)
	svc := newDashboardService(db)

	stats, err := svc.GetStats()
	require.NoError(t, err)
	assert.EqualValues(t, 0, stats.TotalProducts)
	assert.Equal(t, "0.00", stats.TotalValuation.StringFixed(2))
}
