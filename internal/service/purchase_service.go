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
	ErrSupplierNotFound = errors.New("supplier not found")
	ErrPONotFound       = errors.New("purchase order not found")
	ErrPONotReceivable  = errors.New("purchase order cannot be received in its current status")
	ErrPOEmptyItems     = errors.New("purchase order needs at least one item")
)

type PurchaseOrderLine struct {
	ProductID uuid.UUID       `json:"product_id" validate:"uuid_required"`
	VariantID uuid.UUID       `json:"variant_id" validate:"uuid_required"`
	Quantity  int             `json:"quantity" validate:"required,gt=0"`
	UnitCost  decimal.Decimal `json:"unit_cost"`
}

type CreatePurchaseOrderRequest struct {
	SupplierID uuid.UUID           `json:"supplier_id" validate:"uuid_required"`
	Note       string              `json:"note"`
	Lines      []PurchaseOrderLine `json:"lines" validate:"required,min=1,dive"`
}

type PurchaseService interface {
	CreatePurchaseOrder(req *CreatePurchaseOrderRequest, userID string) (*model.PurchaseOrder, error)
	ReceivePurchaseOrder(id uuid.UUID, userID, userName string) (*model.PurchaseOrder, error)
	CancelPurchaseOrder(id uuid.UUID, userID string) error
	GetAllPurchaseOrders() ([]model.PurchaseOrder, error)
	GetPurchaseOrderByID(id uuid.UUID) (*model.PurchaseOrder, error)
}

type purchaseService struct {
	poRepo       repository.PurchaseOrderRepository
	supplierRepo repository.SupplierRepository
	variantRepo  repository.VariantRepository
	stockLogRepo repository.StockLogRepository
	db           *gorm.DB
	wsHub        *ws.Hub
}

func NewPurchaseService(
	poRepo repository.PurchaseOrderRepository,
	supplierRepo repository.SupplierRepository,
	vRepo repository.VariantRepository,
	slRepo repository.StockLogRepository,
	db *gorm.DB,
	hub *ws.Hub,
) PurchaseService {
	return &purchaseService{
		poRepo:       poRepo,
		supplierRepo: supplierRepo,
		variantRepo:  vRepo,
		stockLogRepo: slRepo,
		db:           db,
		wsHub:        hub,
	}
}

func (s *purchaseService) CreatePurchaseOrder(req *CreatePurchaseOrderRequest, userID string) (*model.PurchaseOrder, error) {
	// 1. Validate request
	if err := validator.Validate(req); err != nil {
		return nil, err
	}
	if len(req.Lines) == 0 {
		return nil, ErrPOEmptyItems
	}

	// 2. Supplier must exist
	if _, err := s.supplierRepo.FindByID(req.SupplierID); err != nil {
		return nil, ErrSupplierNotFound
	}

	// 3. Build header + items; total is the sum of line costs
	po := &model.PurchaseOrder{
		PONumber:        newDocumentNumber("PO"),
		SupplierID:      req.SupplierID,
		Status:          model.POOrdered,
		Note:            req.Note,
		CreatedByUserID: &userID,
	}
	po.CreatedBy = userID
	po.UpdatedBy = userID

	total := decimal.Zero
	for _, line := range req.Lines {
		variant, err := s.variantRepo.FindByID(line.VariantID)
		if err != nil {
			return nil, ErrVariantNotFound
		}
		if variant.ProductID != line.ProductID {
			return nil, ErrVariantMismatch
		}
		lineCost := line.UnitCost.Mul(decimal.NewFromInt(int64(line.Quantity))).Round(2)
		total = total.Add(lineCost)
		po.Items = append(po.Items, model.PurchaseOrderItem{
			ProductID: line.ProductID,
			VariantID: line.VariantID,
			Quantity:  line.Quantity,
			UnitCost:  line.UnitCost,
		})
	}
	po.Total = total.Round(2)

	// 4. Persist header and items together
	if err := s.poRepo.Create(po); err != nil {
		return nil, err
	}
	return po, nil
}

// ReceivePurchaseOrder marks the order received and restocks every line's
// variant with an "in" stock log. Status flip, quantity updates and log
// appends share one transaction.
func (s *purchaseService) ReceivePurchaseOrder(id uuid.UUID, userID, userName string) (*model.PurchaseOrder, error) {
	po, err := s.poRepo.FindByID(id)
	if err != nil {
		return nil, ErrPONotFound
	}
	if po.Status != model.POOrdered && po.Status != model.PODraft {
		return nil, ErrPONotReceivable
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		for _, item := range po.Items {
			var variant model.ProductVariant
			if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&variant, "id = ?", item.VariantID).Error; err != nil {
				return ErrVariantNotFound
			}
			if err := s.variantRepo.UpdateQuantity(tx, variant.ID, variant.Quantity+item.Quantity, userID); err != nil {
				return err
			}

			logEntry := &model.StockLog{
				ProductID:       item.ProductID,
				VariantID:       item.VariantID,
				Type:            model.StockIn,
				Quantity:        item.Quantity,
				Note:            "received " + po.PONumber,
				CreatedByUserID: &userID,
			}
			logEntry.CreatedBy = userID
			if err := s.stockLogRepo.Create(tx, logEntry); err != nil {
				return err
			}
		}

		return s.poRepo.UpdateStatusTx(tx, po.ID, model.POReceived, userID)
	})
	if err != nil {
		return nil, err
	}

	if s.wsHub != nil {
		s.wsHub.Publish(ws.Event{
			Type:   "stock_update",
			Action: "po_received",
			Payload: map[string]interface{}{
				"po_id":     po.ID,
				"po_number": po.PONumber,
				"items":     len(po.Items),
			},
			Actor:   userName,
			Message: fmt.Sprintf("%s received purchase order %s", userName, po.PONumber),
		})
	}

	return s.poRepo.FindByID(id)
}

func (s *purchaseService) CancelPurchaseOrder(id uuid.UUID, userID string) error {
	po, err := s.poRepo.FindByID(id)
	if err != nil {
		return ErrPONotFound
	}
	if po.Status == model.POReceived {
		return errors.New("received purchase orders cannot be cancelled")
	}
	return s.poRepo.UpdateStatusTx(s.db, po.ID, model.POCancelled, userID)
}

func (s *purchaseService) GetAllPurchaseOrders() ([]model.PurchaseOrder, error) {
	return s.poRepo.FindAll()
}

func (s *purchaseService) GetPurchaseOrderByID(id uuid.UUID) (*model.PurchaseOrder, error) {
	return s.poRepo.FindByID(id)
}
