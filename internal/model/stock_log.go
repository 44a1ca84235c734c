package model

import "github.com/google/uuid"

type StockLogType string

const (
	StockIn           StockLogType = "in"
	StockOut          StockLogType = "out"
	StockSale         StockLogType = "sale"
	StockReturn       StockLogType = "return"
	StockAdjustAdd    StockLogType = "adjustment_add"
	StockAdjustRemove StockLogType = "adjustment_remove"
	StockAdjustSet    StockLogType = "adjustment_set"
)

// StockLog is an immutable, append-only record of a quantity change.
// Rows are only ever inserted; nothing in the codebase updates or deletes
// them. Quantity holds the delta for every type except adjustment_set,
// where it holds the resulting quantity.
type StockLog struct {
	BaseModel
	ProductID uuid.UUID       `gorm:"type:uuid;not null;index" json:"product_id" validate:"uuid_required"`
	Product   *Product        `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	VariantID uuid.UUID       `gorm:"type:uuid;not null;index" json:"variant_id" validate:"uuid_required"`
	Variant   *ProductVariant `gorm:"foreignKey:VariantID" json:"variant,omitempty"`

	Type     StockLogType `gorm:"type:varchar(20);not null" json:"type" validate:"required"`
	Quantity int          `gorm:"not null" json:"quantity"`
	Note     string       `gorm:"type:text" json:"note"`

	CreatedByUserID *string `gorm:"type:varchar(255)" json:"created_by_user_id,omitempty"`
	CreatedByUser   *User   `gorm:"foreignKey:CreatedByUserID;references:ID" json:"created_by_user,omitempty"`
}
