package service

import (
	"errors"
	"fmt"

	"github.com/JayRamoliya/merch-master-pro/internal/model"
	"github.com/JayRamoliya/merch-master-pro/internal/repository"
	"github.com/JayRamoliya/merch-master-pro/internal/ws"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// AdjustOp is the requested stock operation against a variant.
type AdjustOp string

const (
	OpAdd    AdjustOp = "add"
	OpRemove AdjustOp = "remove"
	OpSet    AdjustOp = "set"
)

var (
	ErrVariantNotFound  = errors.New("variant not found")
	ErrNegativeStock    = errors.New("adjustment would make stock negative")
	ErrInvalidOperation = errors.New("invalid adjustment operation")
	ErrInvalidQuantity  = errors.New("quantity must be positive")
)

type AdjustStockRequest struct {
	VariantID uuid.UUID `json:"variant_id" validate:"uuid_required"`
	Operation AdjustOp  `json:"operation" validate:"required,oneof=add remove set"`
	Value     int       `json:"value"`
	Note      string    `json:"note"`
}

type InventoryService interface {
	AdjustStock(req *AdjustStockRequest, userID, userName string) (*model.ProductVariant, error)
	GetStockLogs(limit int) ([]model.StockLog, error)
	GetStockLogsByProduct(productID uuid.UUID) ([]model.StockLog, error)
	GetStockLogsByVariant(variantID uuid.UUID) ([]model.StockLog, error)
	GetLowStockVariants() ([]model.ProductVariant, error)
}

type inventoryService struct {
	variantRepo  repository.VariantRepository
	stockLogRepo repository.StockLogRepository
	db           *gorm.DB
	wsHub        *ws.Hub
}

func NewInventoryService(vRepo repository.VariantRepository, slRepo repository.StockLogRepository, db *gorm.DB, hub *ws.Hub) InventoryService {
	return &inventoryService{
		variantRepo:  vRepo,
		stockLogRepo: slRepo,
		db:           db,
		wsHub:        hub,
	}
}

// AdjustStock applies add/remove/set to a variant's quantity and appends
// the matching stock log. Quantity update and log insert run in one
// database transaction with the variant row locked, so a failed log never
// leaves a silent quantity change behind.
func (s *inventoryService) AdjustStock(req *AdjustStockRequest, userID, userName string) (*model.ProductVariant, error) {
	// 1. Validate the request shape before touching the database
	switch req.Operation {
	case OpAdd, OpRemove:
		if req.Value <= 0 {
			return nil, ErrInvalidQuantity
		}
	case OpSet:
		if req.Value < 0 {
			return nil, ErrNegativeStock
		}
	default:
		return nil, ErrInvalidOperation
	}

	var updated *model.ProductVariant
	var oldQuantity int

	err := s.db.Transaction(func(tx *gorm.DB) error {
		// 2. Find & lock the variant row
		var variant model.ProductVariant
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&variant, "id = ?", req.VariantID).Error; err != nil {
			return ErrVariantNotFound
		}
		oldQuantity = variant.Quantity

		// 3. Compute the new quantity
		var newQuantity int
		var logType model.StockLogType
		var logQuantity int
		switch req.Operation {
		case OpAdd:
			newQuantity = variant.Quantity + req.Value
			logType = model.StockAdjustAdd
			logQuantity = req.Value
		case OpRemove:
			newQuantity = variant.Quantity - req.Value
			logType = model.StockAdjustRemove
			logQuantity = req.Value
		case OpSet:
			newQuantity = req.Value
			logType = model.StockAdjustSet
			logQuantity = newQuantity // set logs the resulting quantity, not a delta
		}
		if newQuantity < 0 {
			return ErrNegativeStock
		}

		// 4. Persist the quantity
		if err := s.variantRepo.UpdateQuantity(tx, variant.ID, newQuantity, userID); err != nil {
			return err
		}

		// 5. Append the audit log in the same transaction
		logEntry := &model.StockLog{
			ProductID:       variant.ProductID,
			VariantID:       variant.ID,
			Type:            logType,
			Quantity:        logQuantity,
			Note:            req.Note,
			CreatedByUserID: &userID,
		}
		logEntry.CreatedBy = userID
		if err := s.stockLogRepo.Create(tx, logEntry); err != nil {
			return err
		}

		variant.Quantity = newQuantity
		variant.UpdatedBy = userID
		updated = &variant
		return nil
	})
	if err != nil {
		return nil, err
	}

	// 6. Broadcast after the transaction commits
	if s.wsHub != nil {
		s.wsHub.Publish(ws.Event{
			Type:   "stock_update",
			Action: "adjustment",
			Payload: map[string]interface{}{
				"variant_id":   updated.ID,
				"product_id":   updated.ProductID,
				"old_quantity": oldQuantity,
				"new_quantity": updated.Quantity,
				"operation":    req.Operation,
			},
			Actor:   userName,
			Message: fmt.Sprintf("%s adjusted stock (%s %d)", userName, req.Operation, req.Value),
		})
	}

	return updated, nil
}

func (s *inventoryService) GetStockLogs(limit int) ([]model.StockLog, error) {
	return s.stockLogRepo.FindAll(limit)
}

func (s *inventoryService) GetStockLogsByProduct(productID uuid.UUID) ([]model.StockLog, error) {
	return s.stockLogRepo.FindByProductID(productID)
}

func (s *inventoryService) GetStockLogsByVariant(variantID uuid.UUID) ([]model.StockLog, error) {
	return s.stockLogRepo.FindByVariantID(variantID)
}

func (s *inventoryService) GetLowStockVariants() ([]model.ProductVariant, error) {
	return s.variantRepo.FindLowStock()
}
