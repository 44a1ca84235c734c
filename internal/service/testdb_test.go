package service_test

import (
	"testing"

	"github.com/JayRamoliya/merch-master-pro/internal/model"
	"github.com/JayRamoliya/merch-master-pro/internal/repository"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens an in-memory SQLite database with the full schema.
// Max open conns is pinned to 1 so every query sees the same :memory: DB.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	err = db.AutoMigrate(
		&model.Category{},
		&model.Product{},
		&model.ProductVariant{},
		&model.StockLog{},
		&model.Customer{},
		&model.Sale{},
		&model.SaleItem{},
		&model.Supplier{},
		&model.PurchaseOrder{},
		&model.PurchaseOrderItem{},
		&model.Return{},
		&model.ReturnItem{},
		&model.Credit{},
		&model.Expense{},
		&model.ShopSettings{},
		&model.User{},
		&model.Privilege{},
		&model.Role{},
	)
	require.NoError(t, err)

	return db
}

// seedAuth seeds privileges and roles the way the server does on boot.
func seedAuth(t *testing.T, db *gorm.DB) {
	t.Helper()

	privilegeRepo := repository.NewPrivilegeRepo(db)
	roleRepo := repository.NewRoleRepo(db)

	require.NoError(t, privilegeRepo.SeedDefaults())
	require.NoError(t, roleRepo.SeedDefaults())

	allPrivileges, err := privilegeRepo.FindAll()
	require.NoError(t, err)

	adminRole, err := roleRepo.FindByCode(model.RoleAdmin)
	require.NoError(t, err)
	require.NoError(t, db.Model(&adminRole).Association("Privileges").Replace(allPrivileges))

	staffPrivileges, err := privilegeRepo.FindByCodes(model.StaffPrivilegeCodes)
	require.NoError(t, err)
	staffRole, err := roleRepo.FindByCode(model.RoleStaff)
	require.NoError(t, err)
	require.NoError(t, db.Model(&staffRole).Association("Privileges").Replace(staffPrivileges))
}

// createProduct inserts a product with a single variant at the given
// price and quantity.
func createProduct(t *testing.T, db *gorm.DB, sku, price string, quantity int) (*model.Product, *model.ProductVariant) {
	t.Helper()

	product := &model.Product{
		SKU:   sku,
		Name:  "Product " + sku,
		Price: decimal.RequireFromString(price),
	}
	product.CreatedBy = "test"
	product.UpdatedBy = "test"
	require.NoError(t, db.Create(product).Error)

	variant := &model.ProductVariant{
		ProductID: product.ID,
		Quantity:  quantity,
	}
	variant.CreatedBy = "test"
	variant.UpdatedBy = "test"
	require.NoError(t, db.Create(variant).Error)

	return product, variant
}

func decimalFromString(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	require.NoError(t, err)
	return d
}

func countStockLogs(t *testing.T, db *gorm.DB) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(&model.StockLog{}).Count(&n).Error)
	return n
}

func reloadVariant(t *testing.T, db *gorm.DB, variant *model.ProductVariant) *model.ProductVariant {
	t.Helper()
	var fresh model.ProductVariant
	require.NoError(t, db.First(&fresh, "id = ?", variant.ID).Error)
	return &fresh
}
