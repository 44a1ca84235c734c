package model

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type RefundMethod string

const (
	RefundCash   RefundMethod = "CASH"
	RefundCredit RefundMethod = "CREDIT"
)

// Return records merchandise coming back against a completed sale.
// Restocking and refund accounting happen in the same database
// transaction that creates the return.
type Return struct {
	BaseModel
	ReturnNumber string     `gorm:"type:varchar(30);uniqueIndex;not null" json:"return_number"`
	SaleID       uuid.UUID  `gorm:"type:uuid;not null;index" json:"sale_id" validate:"uuid_required"`
	Sale         *Sale      `gorm:"foreignKey:SaleID" json:"sale,omitempty"`
	CustomerID   *uuid.UUID `gorm:"type:uuid;index" json:"customer_id,omitempty"`
	Customer     *Customer  `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`

	RefundMethod RefundMethod    `gorm:"type:varchar(20);not null" json:"refund_method"`
	RefundTotal  decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"refund_total"`
	Reason       string          `gorm:"type:text" json:"reason"`

	CreatedByUserID *string `gorm:"type:varchar(255)" json:"created_by_user_id,omitempty"`

	Items []ReturnItem `gorm:"constraint:OnDelete:CASCADE" json:"items"`
}

type ReturnItem struct {
	BaseModel
	ReturnID  uuid.UUID       `gorm:"type:uuid;not null;index" json:"return_id"`
	ProductID uuid.UUID       `gorm:"type:uuid;not null;index" json:"product_id"`
	Product   *Product        `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	VariantID uuid.UUID       `gorm:"type:uuid;not null;index" json:"variant_id"`
	Variant   *ProductVariant `gorm:"foreignKey:VariantID" json:"variant,omitempty"`

	Quantity   int             `gorm:"not null" json:"quantity"`
	UnitPrice  decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"unit_price"`
	LineRefund decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"line_refund"`
}

// Credit is store credit issued to a customer, usually from a return
// refunded as CREDIT.
type Credit struct {
	BaseModel
	CustomerID uuid.UUID       `gorm:"type:uuid;not null;index" json:"customer_id" validate:"uuid_required"`
	Customer   *Customer       `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	ReturnID   *uuid.UUID      `gorm:"type:uuid;index" json:"return_id,omitempty"`
	Amount     decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"amount"`
	Note       string          `gorm:"type:text" json:"note"`
}
