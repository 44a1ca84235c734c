package handler

import (
	"github.com/JayRamoliya/merch-master-pro/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ReturnHandler struct {
	service service.ReturnService
}

func NewReturnHandler(s service.ReturnService) *ReturnHandler {
	return &ReturnHandler{service: s}
}

func (h *ReturnHandler) CreateReturn(c *fiber.Ctx) error {
	var req service.CreateReturnRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	ret, err := h.service.CreateReturn(&req, getUserID(c), getUserName(c))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}
	return c.Status(201).JSON(fiber.Map{"message": "Return processed", "data": ret})
}

func (h *ReturnHandler) GetAllReturns(c *fiber.Ctx) error {
	returns, err := h.service.GetAllReturns()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch returns"})
	}
	return c.JSON(fiber.Map{"data": returns})
}

func (h *ReturnHandler) GetReturn(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid return ID"})
	}

	ret, err := h.service.GetReturnByID(id)
	if err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "Return not found"})
	}
	return c.JSON(fiber.Map{"data": ret})
}

func (h *ReturnHandler) GetCustomerCredits(c *fiber.Ctx) error {
	customerID, err := parseUUID(c.Params("customerId"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid customer ID"})
	}

	credits, err := h.service.GetCustomerCredits(customerID)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch credits"})
	}
	return c.JSON(fiber.Map{"data": credits})
}
