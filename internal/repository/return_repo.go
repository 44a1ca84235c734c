package repository

import (
	"github.com/JayRamoliya/merch-master-pro/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ReturnRepository interface {
	Create(tx *gorm.DB, ret *model.Return) error
	FindAll() ([]model.Return, error)
	FindByID(id uuid.UUID) (*model.Return, error)
	// FindItemsBySale returns the line items of every prior return against
	// the sale, for cumulative quantity checks.
	FindItemsBySale(saleID uuid.UUID) ([]model.ReturnItem, error)
	CreateCredit(tx *gorm.DB, credit *model.Credit) error
	FindCreditsByCustomer(customerID uuid.UUID) ([]model.Credit, error)
}

type returnRepo struct {
	db *gorm.DB
}

func NewReturnRepo(db *gorm.DB) ReturnRepository {
	return &returnRepo{db}
}

func (r *returnRepo) Create(tx *gorm.DB, ret *model.Return) error {
	return tx.Create(ret).Error
}

func (r *returnRepo) FindAll() ([]model.Return, error) {
	var returns []model.Return
	err := r.db.Preload("Customer").Preload("Items").
		Order("created_at DESC").
		Find(&returns).Error
	return returns, err
}

func (r *returnRepo) FindByID(id uuid.UUID) (*model.Return, error) {
	var ret model.Return
	err := r.db.Preload("Customer").Preload("Sale").
		Preload("Items").Preload("Items.Product").Preload("Items.Variant").
		First(&ret, "id = ?", id).Error
	return &ret, err
}

func (r *returnRepo) FindItemsBySale(saleID uuid.UUID) ([]model.ReturnItem, error) {
	var items []model.ReturnItem
	err := r.db.
		Joins("JOIN returns ON returns.id = return_items.return_id").
		Where("returns.sale_id = ? AND returns.deleted_at IS NULL", saleID).
		Find(&items).Error
	return items, err
}

func (r *returnRepo) CreateCredit(tx *gorm.DB, credit *model.Credit) error {
	return tx.Create(credit).Error
}

func (r *returnRepo) FindCreditsByCustomer(customerID uuid.UUID) ([]model.Credit, error) {
	var credits []model.Credit
	err := r.db.Where("customer_id = ?", customerID).
		Order("created_at DESC").
		Find(&credits).Error
	return credits, err
}
