package repository

import (
	"time"

	"github.com/JayRamoliya/merch-master-pro/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ExpenseRepository interface {
	Create(expense *model.Expense) error
	FindAll() ([]model.Expense, error)
	FindByID(id uuid.UUID) (*model.Expense, error)
	FindByDateRange(startDate, endDate time.Time) ([]model.Expense, error)
	Update(expense *model.Expense) error
	Delete(id uuid.UUID, deletedBy string) error
}

type expenseRepo struct {
	db *gorm.DB
}

func NewExpenseRepo(db *gorm.DB) ExpenseRepository {
	return &expenseRepo{db}
}

func (r *expenseRepo) Create(expense *model.Expense) error {
	return r.db.Create(expense).Error
}

func (r *expenseRepo) FindAll() ([]model.Expense, error) {
	var expenses []model.Expense
	err := r.db.Order("expense_date DESC").Find(&expenses).Error
	return expenses, err
}

func (r *expenseRepo) FindByID(id uuid.UUID) (*model.Expense, error) {
	var expense model.Expense
	err := r.db.First(&expense, "id = ?", id).Error
	return &expense, err
}

func (r *expenseRepo) FindByDateRange(startDate, endDate time.Time) ([]model.Expense, error) {
	var expenses []model.Expense
	err := r.db.Where("expense_date BETWEEN ? AND ?", startDate, endDate).
		Order("expense_date DESC").
		Find(&expenses).Error
	return expenses, err
}

func (r *expenseRepo) Update(expense *model.Expense) error {
	return r.db.Save(expense).Error
}

func (r *expenseRepo) Delete(id uuid.UUID, deletedBy string) error {
	return r.db.Model(&model.Expense{}).Where("id = ?", id).Updates(map[string]interface{}{
		"deleted_at": gorm.Expr("CURRENT_TIMESTAMP"),
		"deleted_by": deletedBy,
	}).Error
}
