package repository

import (
	"github.com/JayRamoliya/merch-master-pro/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type StockLogRepository interface {
	// Create takes the ambient *gorm.DB so the log row lands in the same
	// transaction as the stock write it documents.
	Create(tx *gorm.DB, log *model.StockLog) error
	FindAll(limit int) ([]model.StockLog, error)
	FindByProductID(productID uuid.UUID) ([]model.StockLog, error)
	FindByVariantID(variantID uuid.UUID) ([]model.StockLog, error)
}

type stockLogRepo struct {
	db *gorm.DB
}

func NewStockLogRepo(db *gorm.DB) StockLogRepository {
	return &stockLogRepo{db}
}

func (r *stockLogRepo) Create(tx *gorm.DB, log *model.StockLog) error {
	return tx.Create(log).Error
}

func (r *stockLogRepo) FindAll(limit int) ([]model.StockLog, error) {
	var logs []model.StockLog
	q := r.db.Preload("Product").Preload("Variant").Preload("CreatedByUser").
		Order("created_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	err := q.Find(&logs).Error
	return logs, err
}

func (r *stockLogRepo) FindByProductID(productID uuid.UUID) ([]model.StockLog, error) {
	var logs []model.StockLog
	err := r.db.Preload("Variant").Preload("CreatedByUser").
		Where("product_id = ?", productID).
		Order("created_at DESC").
		Find(&logs).Error
	return logs, err
}

func (r *stockLogRepo) FindByVariantID(variantID uuid.UUID) ([]model.StockLog, error) {
	var logs []model.StockLog
	err := r.db.Preload("CreatedByUser").
		Where("variant_id = ?", variantID).
		Order("created_at DESC").
		Find(&logs).Error
	return logs, err
}
