package repository

import (
	"github.com/JayRamoliya/merch-master-pro/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type VariantRepository interface {
	Create(variant *model.ProductVariant) error
	CreateTx(tx *gorm.DB, variant *model.ProductVariant) error
	FindByID(id uuid.UUID) (*model.ProductVariant, error)
	FindByProductID(productID uuid.UUID) ([]model.ProductVariant, error)
	Update(variant *model.ProductVariant) error
	UpdateQuantity(tx *gorm.DB, id uuid.UUID, newQuantity int, updatedBy string) error
	Delete(id uuid.UUID, deletedBy string) error
	FindLowStock() ([]model.ProductVariant, error)
	CountLowStock() (int64, error)
}

type variantRepo struct {
	db *gorm.DB
}

func NewVariantRepo(db *gorm.DB) VariantRepository {
	return &variantRepo{db}
}

func (r *variantRepo) Create(variant *model.ProductVariant) error {
	return r.db.Create(variant).Error
}

func (r *variantRepo) CreateTx(tx *gorm.DB, variant *model.ProductVariant) error {
	return tx.Create(variant).Error
}

func (r *variantRepo) FindByID(id uuid.UUID) (*model.ProductVariant, error) {
	var variant model.ProductVariant
	err := r.db.Preload("Product").First(&variant, "id = ?", id).Error
	return &variant, err
}

func (r *variantRepo) FindByProductID(productID uuid.UUID) ([]model.ProductVariant, error) {
	var variants []model.ProductVariant
	err := r.db.Where("product_id = ?", productID).Order("size ASC, color ASC").Find(&variants).Error
	return variants, err
}

func (r *variantRepo) Update(variant *model.ProductVariant) error {
	return r.db.Save(variant).Error
}

// UpdateQuantity takes the ambient *gorm.DB so stock writes participate in
// the caller's transaction.
func (r *variantRepo) UpdateQuantity(tx *gorm.DB, id uuid.UUID, newQuantity int, updatedBy string) error {
	return tx.Model(&model.ProductVariant{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"quantity":   newQuantity,
			"updated_by": updatedBy,
		}).Error
}

func (r *variantRepo) Delete(id uuid.UUID, deletedBy string) error {
	return r.db.Model(&model.ProductVariant{}).Where("id = ?", id).Updates(map[string]interface{}{
		"deleted_at": gorm.Expr("CURRENT_TIMESTAMP"),
		"deleted_by": deletedBy,
	}).Error
}

func (r *variantRepo) FindLowStock() ([]model.ProductVariant, error) {
	var variants []model.ProductVariant
	err := r.db.Preload("Product").
		Where("quantity < min_quantity").
		Order("quantity ASC").
		Find(&variants).Error
	return variants, err
}

func (r *variantRepo) CountLowStock() (int64, error) {
	var count int64
	err := r.db.Model(&model.ProductVariant{}).Where("quantity < min_quantity").Count(&count).Error
	return count, err
}
