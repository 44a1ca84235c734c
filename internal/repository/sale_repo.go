package repository

import (
	"time"

	"github.com/JayRamoliya/merch-master-pro/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type SaleRepository interface {
	// Create inserts the sale header and its line items as one unit inside
	// the caller's transaction.
	Create(tx *gorm.DB, sale *model.Sale) error
	FindAll() ([]model.Sale, error)
	FindByID(id uuid.UUID) (*model.Sale, error)
	GetSalesSummary(startDate, endDate time.Time) (*SalesSummary, error)
}

// SalesSummary is the dashboard rollup for a date range.
type SalesSummary struct {
	SaleCount int64           `json:"sale_count"`
	Revenue   decimal.Decimal `json:"revenue"`
	TaxTotal  decimal.Decimal `json:"tax_total"`
}

type saleRepo struct {
	db *gorm.DB
}

func NewSaleRepo(db *gorm.DB) SaleRepository {
	return &saleRepo{db}
}

func (r *saleRepo) Create(tx *gorm.DB, sale *model.Sale) error {
	return tx.Create(sale).Error
}

func (r *saleRepo) FindAll() ([]model.Sale, error) {
	var sales []model.Sale
	err := r.db.Preload("Customer").Preload("Items").
		Order("created_at DESC").
		Find(&sales).Error
	return sales, err
}

func (r *saleRepo) FindByID(id uuid.UUID) (*model.Sale, error) {
	var sale model.Sale
	err := r.db.Preload("Customer").Preload("CreatedByUser").
		Preload("Items").Preload("Items.Product").Preload("Items.Variant").
		First(&sale, "id = ?", id).Error
	return &sale, err
}

func (r *saleRepo) GetSalesSummary(startDate, endDate time.Time) (*SalesSummary, error) {
	var summary SalesSummary

	err := r.db.Model(&model.Sale{}).
		Where("created_at BETWEEN ? AND ?", startDate, endDate).
		Count(&summary.SaleCount).Error
	if err != nil {
		return nil, err
	}

	var revenue, taxTotal decimal.NullDecimal
	err = r.db.Model(&model.Sale{}).
		Where("created_at BETWEEN ? AND ?", startDate, endDate).
		Select("SUM(total)").
		Scan(&revenue).Error
	if err != nil {
		return nil, err
	}
	err = r.db.Model(&model.Sale{}).
		Where("created_at BETWEEN ? AND ?", startDate, endDate).
		Select("SUM(tax_amount)").
		Scan(&taxTotal).Error
	if err != nil {
		return nil, err
	}

	summary.Revenue = revenue.Decimal
	summary.TaxTotal = taxTotal.Decimal
	return &summary, nil
}
