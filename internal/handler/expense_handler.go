package handler

import (
	"time"

	"github.com/JayRamoliya/merch-master-pro/internal/model"
	"github.com/JayRamoliya/merch-master-pro/internal/repository"
	"github.com/JayRamoliya/merch-master-pro/pkg/validator"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

type ExpenseHandler struct {
	expenseRepo repository.ExpenseRepository
}

func NewExpenseHandler(repo repository.ExpenseRepository) *ExpenseHandler {
	return &ExpenseHandler{expenseRepo: repo}
}

type expenseRequest struct {
	Title       string          `json:"title" validate:"required"`
	Category    string          `json:"category"`
	Amount      decimal.Decimal `json:"amount"`
	ExpenseDate string          `json:"expense_date"` // YYYY-MM-DD, defaults to today
	Note        string          `json:"note"`
}

func (r *expenseRequest) parseDate() (time.Time, error) {
	if r.ExpenseDate == "" {
		return time.Now(), nil
	}
	return time.Parse("2006-01-02", r.ExpenseDate)
}

func (h *ExpenseHandler) CreateExpense(c *fiber.Ctx) error {
	var req expenseRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}
	if errs := validator.ValidateStruct(&req); len(errs) > 0 {
		return c.Status(400).JSON(fiber.Map{"error": "Validation failed", "details": errs})
	}
	if req.Amount.IsNegative() {
		return c.Status(400).JSON(fiber.Map{"error": "Amount cannot be negative"})
	}
	expenseDate, err := req.parseDate()
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid expense_date, use YYYY-MM-DD"})
	}

	userID := getUserID(c)
	expense := &model.Expense{
		Title:           req.Title,
		Category:        req.Category,
		Amount:          req.Amount.Round(2),
		ExpenseDate:     expenseDate,
		Note:            req.Note,
		CreatedByUserID: &userID,
	}
	expense.CreatedBy = userID
	expense.UpdatedBy = userID

	if err := h.expenseRepo.Create(expense); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to create expense"})
	}
	return c.Status(201).JSON(fiber.Map{"message": "Expense recorded", "data": expense})
}

// GetAllExpenses optionally filters by ?start=YYYY-MM-DD&end=YYYY-MM-DD.
func (h *ExpenseHandler) GetAllExpenses(c *fiber.Ctx) error {
	start := c.Query("start")
	end := c.Query("end")

	if start != "" && end != "" {
		startDate, err := time.Parse("2006-01-02", start)
		if err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "Invalid start date, use YYYY-MM-DD"})
		}
		endDate, err := time.Parse("2006-01-02", end)
		if err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "Invalid end date, use YYYY-MM-DD"})
		}
		expenses, err := h.expenseRepo.FindByDateRange(startDate, endDate)
		if err != nil {
			return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch expenses"})
		}
		return c.JSON(fiber.Map{"data": expenses})
	}

	expenses, err := h.expenseRepo.FindAll()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch expenses"})
	}
	return c.JSON(fiber.Map{"data": expenses})
}

func (h *ExpenseHandler) UpdateExpense(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid expense ID"})
	}

	expense, err := h.expenseRepo.FindByID(id)
	if err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "Expense not found"})
	}

	var req expenseRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}
	if errs := validator.ValidateStruct(&req); len(errs) > 0 {
		return c.Status(400).JSON(fiber.Map{"error": "Validation failed", "details": errs})
	}
	if req.Amount.IsNegative() {
		return c.Status(400).JSON(fiber.Map{"error": "Amount cannot be negative"})
	}
	expenseDate, err := req.parseDate()
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid expense_date, use YYYY-MM-DD"})
	}

	expense.Title = req.Title
	expense.Category = req.Category
	expense.Amount = req.Amount.Round(2)
	expense.ExpenseDate = expenseDate
	expense.Note = req.Note
	expense.UpdatedBy = getUserID(c)

	if err := h.expenseRepo.Update(expense); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to update expense"})
	}
	return c.JSON(fiber.Map{"message": "Expense updated", "data": expense})
}

func (h *ExpenseHandler) DeleteExpense(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid expense ID"})
	}

	if _, err := h.expenseRepo.FindByID(id); err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "Expense not found"})
	}

	if err := h.expenseRepo.Delete(id, getUserID(c)); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to delete expense"})
	}
	return c.JSON(fiber.Map{"message": "Expense deleted"})
}
