package repository

import (
	"github.com/JayRamoliya/merch-master-pro/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type ProductRepository interface {
	Create(product *model.Product) error
	CreateTx(tx *gorm.DB, product *model.Product) error
	FindAll() ([]model.Product, error)
	FindByID(id uuid.UUID) (*model.Product, error)
	FindByIDs(ids []uuid.UUID) ([]model.Product, error)
	FindBySKU(sku string) (*model.Product, error)
	FindByBarcode(barcode string) (*model.Product, error)
	ExistingSKUs(skus []string) ([]string, error)
	Update(product *model.Product) error
	UpdatePriceTx(tx *gorm.DB, id uuid.UUID, price decimal.Decimal, updatedBy string) error
	SetPriceBulk(ids []uuid.UUID, price decimal.Decimal, updatedBy string) error
	Delete(id uuid.UUID, deletedBy string) error
	Count() (int64, error)
}

type productRepo struct {
	db *gorm.DB
}

func NewProductRepo(db *gorm.DB) ProductRepository {
	return &productRepo{db}
}

func (r *productRepo) Create(product *model.Product) error {
	return r.db.Create(product).Error
}

func (r *productRepo) CreateTx(tx *gorm.DB, product *model.Product) error {
	return tx.Create(product).Error
}

func (r *productRepo) FindAll() ([]model.Product, error) {
	var products []model.Product
	err := r.db.Preload("Category").Preload("Variants").Order("name ASC").Find(&products).Error
	return products, err
}

func (r *productRepo) FindByID(id uuid.UUID) (*model.Product, error) {
	var product model.Product
	err := r.db.Preload("Category").Preload("Variants").First(&product, "id = ?", id).Error
	return &product, err
}

func (r *productRepo) FindByIDs(ids []uuid.UUID) ([]model.Product, error) {
	var products []model.Product
	err := r.db.Where("id IN ?", ids).Find(&products).Error
	return products, err
}

func (r *productRepo) FindBySKU(sku string) (*model.Product, error) {
	var product model.Product
	err := r.db.First(&product, "sku = ?", sku).Error
	return &product, err
}

func (r *productRepo) FindByBarcode(barcode string) (*model.Product, error) {
	var product model.Product
	err := r.db.Preload("Variants").First(&product, "barcode = ?", barcode).Error
	return &product, err
}

// ExistingSKUs returns the subset of the given SKUs that are already stored.
func (r *productRepo) ExistingSKUs(skus []string) ([]string, error) {
	var existing []string
	err := r.db.Model(&model.Product{}).Where("sku IN ?", skus).Pluck("sku", &existing).Error
	return existing, err
}

func (r *productRepo) Update(product *model.Product) error {
	return r.db.Save(product).Error
}

// UpdatePriceTx runs inside the caller's transaction so a bulk edit is
// all-or-nothing.
func (r *productRepo) UpdatePriceTx(tx *gorm.DB, id uuid.UUID, price decimal.Decimal, updatedBy string) error {
	return tx.Model(&model.Product{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"price":      price,
			"updated_by": updatedBy,
		}).Error
}

// SetPriceBulk applies one absolute price to all selected products in a
// single batched update.
func (r *productRepo) SetPriceBulk(ids []uuid.UUID, price decimal.Decimal, updatedBy string) error {
	return r.db.Model(&model.Product{}).
		Where("id IN ?", ids).
		Updates(map[string]interface{}{
			"price":      price,
			"updated_by": updatedBy,
		}).Error
}

func (r *productRepo) Delete(id uuid.UUID, deletedBy string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.Product{}).Where("id = ?", id).
			Update("deleted_by", deletedBy).Error; err != nil {
			return err
		}
		if err := tx.Where("product_id = ?", id).Delete(&model.ProductVariant{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Product{}, "id = ?", id).Error
	})
}

func (r *productRepo) Count() (int64, error) {
	var count int64
	err := r.db.Model(&model.Product{}).Count(&count).Error
	return count, err
}
