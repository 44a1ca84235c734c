package service

import (
	"time"

	"github.com/JayRamoliya/merch-master-pro/internal/model"
	"github.com/JayRamoliya/merch-master-pro/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// DashboardStats is the store overview: catalog size, variants under
// their reorder threshold, and the retail value of stock on hand.
type DashboardStats struct {
	TotalProducts  int64           `json:"total_products"`
	LowStockCount  int64           `json:"low_stock_count"`
	TotalValuation decimal.Decimal `json:"total_valuation"`
}

type DashboardService interface {
	GetStats() (*DashboardStats, error)
	GetLowStock() ([]model.ProductVariant, error)
	GetSalesSummary(days int) (*repository.SalesSummary, error)
}

type dashboardService struct {
	productRepo repository.ProductRepository
	variantRepo repository.VariantRepository
	saleRepo    repository.SaleRepository
	db          *gorm.DB
}

func NewDashboardService(pRepo repository.ProductRepository, vRepo repository.VariantRepository, sRepo repository.SaleRepository, db *gorm.DB) DashboardService {
	return &dashboardService{
		productRepo: pRepo,
		variantRepo: vRepo,
		saleRepo:    sRepo,
		db:          db,
	}
}

func (s *dashboardService) GetStats() (*DashboardStats, error) {
	stats := &DashboardStats{TotalValuation: decimal.Zero}

	total, err := s.productRepo.Count()
	if err != nil {
		return nil, err
	}
	stats.TotalProducts = total

	lowStock, err := s.variantRepo.CountLowStock()
	if err != nil {
		return nil, err
	}
	stats.LowStockCount = lowStock

	// Valuation = SUM(variant.quantity * product.price)
	var valuation decimal.NullDecimal
	err = s.db.Model(&model.ProductVariant{}).
		Joins("JOIN products ON products.id = product_variants.product_id").
		Where("product_variants.deleted_at IS NULL AND products.deleted_at IS NULL").
		Select("SUM(product_variants.quantity * products.price)").
		Scan(&valuation).Error
	if err != nil {
		return nil, err
	}
	stats.TotalValuation = valuation.Decimal

	return stats, nil
}

func (s *dashboardService) GetLowStock() ([]model.ProductVariant, error) {
	return s.variantRepo.FindLowStock()
}

func (s *dashboardService) GetSalesSummary(days int) (*repository.SalesSummary, error) {
	endDate := time.Now()
	startDate := endDate.AddDate(0, 0, -days)
	return s.saleRepo.GetSalesSummary(startDate, endDate)
}
