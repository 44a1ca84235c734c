package handler

import (
	"github.com/JayRamoliya/merch-master-pro/internal/repository"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

type SettingsHandler struct {
	settingsRepo repository.SettingsRepository
}

func NewSettingsHandler(repo repository.SettingsRepository) *SettingsHandler {
	return &SettingsHandler{settingsRepo: repo}
}

func (h *SettingsHandler) GetSettings(c *fiber.Ctx) error {
	settings, err := h.settingsRepo.Get()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch settings"})
	}
	return c.JSON(fiber.Map{"data": settings})
}

type updateSettingsRequest struct {
	ShopName      string          `json:"shop_name"`
	Address       string          `json:"address"`
	Currency      string          `json:"currency"`
	TaxRate       decimal.Decimal `json:"tax_rate"`
	LowStockAlert *bool           `json:"low_stock_alert"`
}

// UpdateSettings mutates the single settings row. The tax rate set here
// applies to every checkout from the next cart computation on.
func (h *SettingsHandler) UpdateSettings(c *fiber.Ctx) error {
	var req updateSettingsRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}
	if req.TaxRate.IsNegative() || req.TaxRate.GreaterThan(decimal.NewFromInt(1)) {
		return c.Status(400).JSON(fiber.Map{"error": "tax_rate must be between 0 and 1"})
	}

	settings, err := h.settingsRepo.Get()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch settings"})
	}

	if req.ShopName != "" {
		settings.ShopName = req.ShopName
	}
	settings.Address = req.Address
	if req.Currency != "" {
		settings.Currency = req.Currency
	}
	settings.TaxRate = req.TaxRate
	if req.LowStockAlert != nil {
		settings.LowStockAlert = *req.LowStockAlert
	}
	settings.UpdatedBy = getUserID(c)

	if err := h.settingsRepo.Update(settings); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to update settings"})
	}
	return c.JSON(fiber.Map{"message": "Settings updated", "data": settings})
}
