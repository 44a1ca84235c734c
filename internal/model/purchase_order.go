package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type PurchaseOrderStatus string

const (
	PODraft     PurchaseOrderStatus = "DRAFT"
	POOrdered   PurchaseOrderStatus = "ORDERED"
	POReceived  PurchaseOrderStatus = "RECEIVED"
	POCancelled PurchaseOrderStatus = "CANCELLED"
)

type PurchaseOrder struct {
	BaseModel
	PONumber   string              `gorm:"type:varchar(30);uniqueIndex;not null" json:"po_number"`
	SupplierID uuid.UUID           `gorm:"type:uuid;not null;index" json:"supplier_id" validate:"uuid_required"`
	Supplier   *Supplier           `gorm:"foreignKey:SupplierID" json:"supplier,omitempty"`
	Status     PurchaseOrderStatus `gorm:"type:varchar(20);not null;default:'DRAFT'" json:"status"`
	Note       string              `gorm:"type:text" json:"note"`

	Total      decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"total"`
	ReceivedAt *time.Time      `json:"received_at,omitempty"`

	CreatedByUserID *string `gorm:"type:varchar(255)" json:"created_by_user_id,omitempty"`

	Items []PurchaseOrderItem `gorm:"constraint:OnDelete:CASCADE" json:"items"`
}

type PurchaseOrderItem struct {
	BaseModel
	PurchaseOrderID uuid.UUID       `gorm:"type:uuid;not null;index" json:"purchase_order_id"`
	ProductID       uuid.UUID       `gorm:"type:uuid;not null;index" json:"product_id"`
	Product         *Product        `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	VariantID       uuid.UUID       `gorm:"type:uuid;not null;index" json:"variant_id"`
	Variant         *ProductVariant `gorm:"foreignKey:VariantID" json:"variant,omitempty"`

	Quantity int             `gorm:"not null" json:"quantity"`
	UnitCost decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"unit_cost"`
}
