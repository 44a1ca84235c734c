package handler

import (
	"github.com/JayRamoliya/merch-master-pro/internal/model"
	"github.com/JayRamoliya/merch-master-pro/internal/repository"

	"github.com/gofiber/fiber/v2"
)

// VariantHandler manages size/color variants under a product. Quantity is
// deliberately NOT editable here; stock moves only through the inventory
// adjustment, checkout, purchase and return flows so the log stays honest.
type VariantHandler struct {
	variantRepo repository.VariantRepository
	productRepo repository.ProductRepository
}

func NewVariantHandler(variantRepo repository.VariantRepository, productRepo repository.ProductRepository) *VariantHandler {
	return &VariantHandler{variantRepo: variantRepo, productRepo: productRepo}
}

func (h *VariantHandler) GetVariantsByProduct(c *fiber.Ctx) error {
	productID, err := parseUUID(c.Params("productId"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid product ID"})
	}

	variants, err := h.variantRepo.FindByProductID(productID)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch variants"})
	}
	return c.JSON(fiber.Map{"data": variants})
}

type createVariantRequest struct {
	Size        string `json:"size"`
	Color       string `json:"color"`
	MinQuantity int    `json:"min_quantity"`
}

func (h *VariantHandler) CreateVariant(c *fiber.Ctx) error {
	productID, err := parseUUID(c.Params("productId"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid product ID"})
	}
	if _, err := h.productRepo.FindByID(productID); err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "Product not found"})
	}

	var req createVariantRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}
	if req.MinQuantity < 0 {
		return c.Status(400).JSON(fiber.Map{"error": "min_quantity cannot be negative"})
	}

	variant := &model.ProductVariant{
		ProductID:   productID,
		Size:        req.Size,
		Color:       req.Color,
		MinQuantity: req.MinQuantity,
	}
	variant.CreatedBy = getUserID(c)
	variant.UpdatedBy = getUserID(c)

	if err := h.variantRepo.Create(variant); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to create variant"})
	}
	return c.Status(201).JSON(fiber.Map{"message": "Variant created", "data": variant})
}

func (h *VariantHandler) UpdateVariant(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid variant ID"})
	}

	variant, err := h.variantRepo.FindByID(id)
	if err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "Variant not found"})
	}

	var req createVariantRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}
	if req.MinQuantity < 0 {
		return c.Status(400).JSON(fiber.Map{"error": "min_quantity cannot be negative"})
	}

	variant.Size = req.Size
	variant.Color = req.Color
	variant.MinQuantity = req.MinQuantity
	variant.UpdatedBy = getUserID(c)

	if err := h.variantRepo.Update(variant); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to update variant"})
	}
	return c.JSON(fiber.Map{"message": "Variant updated", "data": variant})
}

func (h *VariantHandler) DeleteVariant(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid variant ID"})
	}

	if _, err := h.variantRepo.FindByID(id); err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "Variant not found"})
	}

	if err := h.variantRepo.Delete(id, getUserID(c)); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to delete variant"})
	}
	return c.JSON(fiber.Map{"message": "Variant deleted"})
}
