package service

import (
	"errors"
	"fmt"

	"github.com/JayRamoliya/merch-master-pro/internal/model"
	"github.com/JayRamoliya/merch-master-pro/internal/repository"
	"github.com/JayRamoliya/merch-master-pro/internal/ws"
	"github.com/JayRamoliya/merch-master-pro/pkg/validator"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrSaleNotFound        = errors.New("sale not found")
	ErrReturnNotFound      = errors.New("return not found")
	ErrItemNotOnSale       = errors.New("returned item was not part of the sale")
	ErrReturnQtyTooHigh    = errors.New("return quantity exceeds sold quantity")
	ErrCreditNeedsCustomer = errors.New("store credit requires the sale to have a customer")
)

type ReturnLine struct {
	ProductID uuid.UUID `json:"product_id" validate:"uuid_required"`
	VariantID uuid.UUID `json:"variant_id" validate:"uuid_required"`
	Quantity  int       `json:"quantity" validate:"required,gt=0"`
}

type CreateReturnRequest struct {
	SaleID       uuid.UUID          `json:"sale_id" validate:"uuid_required"`
	RefundMethod model.RefundMethod `json:"refund_method" validate:"required,oneof=CASH CREDIT"`
	Reason       string             `json:"reason"`
	Lines        []ReturnLine       `json:"lines" validate:"required,min=1,dive"`
}

type ReturnService interface {
	CreateReturn(req *CreateReturnRequest, userID, userName string) (*model.Return, error)
	GetAllReturns() ([]model.Return, error)
	GetReturnByID(id uuid.UUID) (*model.Return, error)
	GetCustomerCredits(customerID uuid.UUID) ([]model.Credit, error)
}

type returnService struct {
	returnRepo   repository.ReturnRepository
	saleRepo     repository.SaleRepository
	variantRepo  repository.VariantRepository
	stockLogRepo repository.StockLogRepository
	db           *gorm.DB
	wsHub        *ws.Hub
}

func NewReturnService(
	rRepo repository.ReturnRepository,
	sRepo repository.SaleRepository,
	vRepo repository.VariantRepository,
	slRepo repository.StockLogRepository,
	db *gorm.DB,
	hub *ws.Hub,
) ReturnService {
	return &returnService{
		returnRepo:   rRepo,
		saleRepo:     sRepo,
		variantRepo:  vRepo,
		stockLogRepo: slRepo,
		db:           db,
		wsHub:        hub,
	}
}

// CreateReturn validates returned quantities per variant against the
// sale's line items, counting earlier returns against the same sale,
// restocks the variants with "return" logs, and records the refund.
// A CREDIT refund additionally creates a Credit row for the sale's
// customer. Everything runs in one transaction.
func (s *returnService) CreateReturn(req *CreateReturnRequest, userID, userName string) (*model.Return, error) {
	// 1. Validate request
	if err := validator.Validate(req); err != nil {
		return nil, err
	}

	// 2. Load the sale with its items
	sale, err := s.saleRepo.FindByID(req.SaleID)
	if err != nil {
		return nil, ErrSaleNotFound
	}
	if req.RefundMethod == model.RefundCredit && sale.CustomerID == nil {
		return nil, ErrCreditNeedsCustomer
	}

	soldByVariant := make(map[uuid.UUID]model.SaleItem, len(sale.Items))
	for _, item := range sale.Items {
		soldByVariant[item.VariantID] = item
	}

	// 3. Quantities already returned against this sale still count toward
	// the sold quantity
	prior, err := s.returnRepo.FindItemsBySale(sale.ID)
	if err != nil {
		return nil, err
	}
	returnedByVariant := make(map[uuid.UUID]int, len(prior))
	for _, item := range prior {
		returnedByVariant[item.VariantID] += item.Quantity
	}

	// 4. Every line must match a sold line, and the request is checked
	// per variant across all its lines plus prior returns, so repeating a
	// variant cannot return more than was sold
	requestedByVariant := make(map[uuid.UUID]int, len(req.Lines))
	for _, line := range req.Lines {
		sold, ok := soldByVariant[line.VariantID]
		if !ok || sold.ProductID != line.ProductID {
			return nil, ErrItemNotOnSale
		}
		requestedByVariant[line.VariantID] += line.Quantity
	}
	for variantID, requested := range requestedByVariant {
		if requested+returnedByVariant[variantID] > soldByVariant[variantID].Quantity {
			return nil, ErrReturnQtyTooHigh
		}
	}

	// 5. Build the return
	ret := &model.Return{
		ReturnNumber:    newDocumentNumber("R"),
		SaleID:          sale.ID,
		CustomerID:      sale.CustomerID,
		RefundMethod:    req.RefundMethod,
		Reason:          req.Reason,
		CreatedByUserID: &userID,
	}
	ret.CreatedBy = userID
	ret.UpdatedBy = userID

	refundTotal := decimal.Zero
	for _, line := range req.Lines {
		sold := soldByVariant[line.VariantID]
		lineRefund := sold.UnitPrice.Mul(decimal.NewFromInt(int64(line.Quantity))).Round(2)
		refundTotal = refundTotal.Add(lineRefund)
		ret.Items = append(ret.Items, model.ReturnItem{
			ProductID:  line.ProductID,
			VariantID:  line.VariantID,
			Quantity:   line.Quantity,
			UnitPrice:  sold.UnitPrice,
			LineRefund: lineRefund,
		})
	}
	ret.RefundTotal = refundTotal.Round(2)

	err = s.db.Transaction(func(tx *gorm.DB) error {
		// 6. Persist return header + items
		if err := s.returnRepo.Create(tx, ret); err != nil {
			return err
		}

		// 7. Restock each variant and log it
		for _, line := range req.Lines {
			var variant model.ProductVariant
			if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&variant, "id = ?", line.VariantID).Error; err != nil {
				return ErrVariantNotFound
			}
			if err := s.variantRepo.UpdateQuantity(tx, variant.ID, variant.Quantity+line.Quantity, userID); err != nil {
				return err
			}

			logEntry := &model.StockLog{
				ProductID:       line.ProductID,
				VariantID:       line.VariantID,
				Type:            model.StockReturn,
				Quantity:        line.Quantity,
				Note:            "return " + ret.ReturnNumber,
				CreatedByUserID: &userID,
			}
			logEntry.CreatedBy = userID
			if err := s.stockLogRepo.Create(tx, logEntry); err != nil {
				return err
			}
		}

		// 8. Store credit for CREDIT refunds
		if req.RefundMethod == model.RefundCredit {
			credit := &model.Credit{
				CustomerID: *sale.CustomerID,
				ReturnID:   &ret.ID,
				Amount:     ret.RefundTotal,
				Note:       "refund for " + ret.ReturnNumber,
			}
			credit.CreatedBy = userID
			if err := s.returnRepo.CreateCredit(tx, credit); err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	if s.wsHub != nil {
		s.wsHub.Publish(ws.Event{
			Type:   "stock_update",
			Action: "return_created",
			Payload: map[string]interface{}{
				"return_id":     ret.ID,
				"return_number": ret.ReturnNumber,
				"refund_total":  ret.RefundTotal,
			},
			Actor:   userName,
			Message: fmt.Sprintf("%s processed return %s", userName, ret.ReturnNumber),
		})
	}

	return ret, nil
}

func (s *returnService) GetAllReturns() ([]model.Return, error) {
	return s.returnRepo.FindAll()
}

func (s *returnService) GetReturnByID(id uuid.UUID) (*model.Return, error) {
	return s.returnRepo.FindByID(id)
}

func (s *returnService) GetCustomerCredits(customerID uuid.UUID) ([]model.Credit, error) {
	return s.returnRepo.FindCreditsByCustomer(customerID)
}
