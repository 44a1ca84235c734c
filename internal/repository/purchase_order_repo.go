package repository

import (
	"github.com/JayRamoliya/merch-master-pro/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PurchaseOrderRepository interface {
	Create(po *model.PurchaseOrder) error
	FindAll() ([]model.PurchaseOrder, error)
	FindByID(id uuid.UUID) (*model.PurchaseOrder, error)
	UpdateStatusTx(tx *gorm.DB, id uuid.UUID, status model.PurchaseOrderStatus, updatedBy string) error
}

type purchaseOrderRepo struct {
	db *gorm.DB
}

func NewPurchaseOrderRepo(db *gorm.DB) PurchaseOrderRepository {
	return &purchaseOrderRepo{db}
}

func (r *purchaseOrderRepo) Create(po *model.PurchaseOrder) error {
	return r.db.Create(po).Error
}

func (r *purchaseOrderRepo) FindAll() ([]model.PurchaseOrder, error) {
	var orders []model.PurchaseOrder
	err := r.db.Preload("Supplier").Preload("Items").
		Order("created_at DESC").
		Find(&orders).Error
	return orders, err
}

func (r *purchaseOrderRepo) FindByID(id uuid.UUID) (*model.PurchaseOrder, error) {
	var po model.PurchaseOrder
	err := r.db.Preload("Supplier").
		Preload("Items").Preload("Items.Product").Preload("Items.Variant").
		First(&po, "id = ?", id).Error
	return &po, err
}

func (r *purchaseOrderRepo) UpdateStatusTx(tx *gorm.DB, id uuid.UUID, status model.PurchaseOrderStatus, updatedBy string) error {
	updates := map[string]interface{}{
		"status":     status,
		"updated_by": updatedBy,
	}
	if status == model.POReceived {
		updates["received_at"] = gorm.Expr("CURRENT_TIMESTAMP")
	}
	return tx.Model(&model.PurchaseOrder{}).Where("id = ?", id).Updates(updates).Error
}
