package handler

import (
	"github.com/JayRamoliya/merch-master-pro/internal/service"

	"github.com/gofiber/fiber/v2"
)

type InventoryHandler struct {
	service service.InventoryService
}

func NewInventoryHandler(s service.InventoryService) *InventoryHandler {
	return &InventoryHandler{service: s}
}

func (h *InventoryHandler) AdjustStock(c *fiber.Ctx) error {
	var req service.AdjustStockRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	variant, err := h.service.AdjustStock(&req, getUserID(c), getUserName(c))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"message": "Stock adjusted", "data": variant})
}

func (h *InventoryHandler) GetStockLogs(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 100)

	logs, err := h.service.GetStockLogs(limit)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch stock logs"})
	}
	return c.JSON(fiber.Map{"data": logs})
}

func (h *InventoryHandler) GetStockLogsByProduct(c *fiber.Ctx) error {
	productID, err := parseUUID(c.Params("productId"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid product ID"})
	}

	logs, err := h.service.GetStockLogsByProduct(productID)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch stock logs"})
	}
	return c.JSON(fiber.Map{"data": logs})
}

func (h *InventoryHandler) GetStockLogsByVariant(c *fiber.Ctx) error {
	variantID, err := parseUUID(c.Params("variantId"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid variant ID"})
	}

	logs, err := h.service.GetStockLogsByVariant(variantID)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch stock logs"})
	}
	return c.JSON(fiber.Map{"data": logs})
}

func (h *InventoryHandler) GetLowStock(c *fiber.Ctx) error {
	variants, err := h.service.GetLowStockVariants()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch low stock variants"})
	}
	return c.JSON(fiber.Map{"data": variants})
}
