package model

import "github.com/shopspring/decimal"

// ShopSettings is a single-row table. TaxRate is the only source of truth
// for the checkout tax computation.
type ShopSettings struct {
	BaseModel
	ShopName      string          `gorm:"type:varchar(255);not null" json:"shop_name"`
	Address       string          `gorm:"type:text" json:"address"`
	Currency      string          `gorm:"type:varchar(10);not null;default:'USD'" json:"currency"`
	TaxRate       decimal.Decimal `gorm:"type:decimal(6,4);not null" json:"tax_rate"`
	LowStockAlert bool            `gorm:"not null;default:true" json:"low_stock_alert"`
}

// DefaultShopSettings seeds the settings row on first boot. The 5% tax
// rate matches the historical checkout default.
func DefaultShopSettings() *ShopSettings {
	return &ShopSettings{
		ShopName: "My Shop",
		Currency: "USD",
		TaxRate:  decimal.NewFromFloat(0.05),
	}
}
