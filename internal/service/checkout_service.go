package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

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
	ErrEmptyCart         = errors.New("cart is empty")
	ErrProductNotFound   = errors.New("product not found")
	ErrInsufficientStock = errors.New("insufficient stock remaining")
	ErrVariantMismatch   = errors.New("variant does not belong to product")
)

// CartLine is one (product, variant, quantity) entry in the cart.
type CartLine struct {
	ProductID uuid.UUID `json:"product_id" validate:"uuid_required"`
	VariantID uuid.UUID `json:"variant_id" validate:"uuid_required"`
	Quantity  int       `json:"quantity" validate:"required,gt=0"`
}

type CheckoutRequest struct {
	CustomerID    *uuid.UUID          `json:"customer_id,omitempty"`
	PaymentMethod model.PaymentMethod `json:"payment_method" validate:"required,oneof=CASH CARD TRANSFER"`
	Note          string              `json:"note"`
	Lines         []CartLine          `json:"lines" validate:"required,min=1,dive"`
}

// CartTotals is the derived pricing for a cart: per-line totals, subtotal,
// tax at the shop's configured rate, and the grand total. All amounts are
// rounded to 2 decimal places.
type CartTotals struct {
	Lines    []CartLineTotal `json:"lines"`
	Subtotal decimal.Decimal `json:"subtotal"`
	TaxRate  decimal.Decimal `json:"tax_rate"`
	Tax      decimal.Decimal `json:"tax"`
	Total    decimal.Decimal `json:"total"`
}

type CartLineTotal struct {
	ProductID uuid.UUID       `json:"product_id"`
	VariantID uuid.UUID       `json:"variant_id"`
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	LineTotal decimal.Decimal `json:"line_total"`
}

type CheckoutService interface {
	PreviewCart(lines []CartLine) (*CartTotals, error)
	Checkout(req *CheckoutRequest, userID, userName string) (*model.Sale, error)
	GetAllSales() ([]model.Sale, error)
	GetSaleByID(id uuid.UUID) (*model.Sale, error)
}

type checkoutService struct {
	productRepo  repository.ProductRepository
	variantRepo  repository.VariantRepository
	saleRepo     repository.SaleRepository
	stockLogRepo repository.StockLogRepository
	settingsRepo repository.SettingsRepository
	db           *gorm.DB
	wsHub        *ws.Hub
}

func NewCheckoutService(
	pRepo repository.ProductRepository,
	vRepo repository.VariantRepository,
	sRepo repository.SaleRepository,
	slRepo repository.StockLogRepository,
	setRepo repository.SettingsRepository,
	db *gorm.DB,
	hub *ws.Hub,
) CheckoutService {
	return &checkoutService{
		productRepo:  pRepo,
		variantRepo:  vRepo,
		saleRepo:     sRepo,
		stockLogRepo: slRepo,
		settingsRepo: setRepo,
		db:           db,
		wsHub:        hub,
	}
}

// computeTotals prices the cart. The tax rate comes from shop settings;
// there is exactly one source of truth for it.
func (s *checkoutService) computeTotals(lines []CartLine) (*CartTotals, error) {
	if len(lines) == 0 {
		return nil, ErrEmptyCart
	}

	settings, err := s.settingsRepo.Get()
	if err != nil {
		return nil, err
	}

	totals := &CartTotals{TaxRate: settings.TaxRate}
	subtotal := decimal.Zero
	for _, line := range lines {
		product, err := s.productRepo.FindByID(line.ProductID)
		if err != nil {
			return nil, ErrProductNotFound
		}
		lineTotal := product.Price.Mul(decimal.NewFromInt(int64(line.Quantity))).Round(2)
		subtotal = subtotal.Add(lineTotal)
		totals.Lines = append(totals.Lines, CartLineTotal{
			ProductID: line.ProductID,
			VariantID: line.VariantID,
			Name:      product.Name,
			Quantity:  line.Quantity,
			UnitPrice: product.Price,
			LineTotal: lineTotal,
		})
	}

	totals.Subtotal = subtotal.Round(2)
	totals.Tax = totals.Subtotal.Mul(settings.TaxRate).Round(2)
	totals.Total = totals.Subtotal.Add(totals.Tax).Round(2)
	return totals, nil
}

func (s *checkoutService) PreviewCart(lines []CartLine) (*CartTotals, error) {
	for i := range lines {
		if err := validator.Validate(&lines[i]); err != nil {
			return nil, err
		}
	}
	return s.computeTotals(lines)
}

// Checkout persists the sale header and line items, decrements each
// line's variant and appends a sale stock log per line — all inside one
// database transaction. Insufficient stock on any line aborts the whole
// sale with nothing written.
func (s *checkoutService) Checkout(req *CheckoutRequest, userID, userName string) (*model.Sale, error) {
	// 1. Validate input
	if err := validator.Validate(req); err != nil {
		return nil, err
	}

	// 2. Price the cart up front
	totals, err := s.computeTotals(req.Lines)
	if err != nil {
		return nil, err
	}

	sale := &model.Sale{
		SaleNumber:      newDocumentNumber("S"),
		CustomerID:      req.CustomerID,
		PaymentMethod:   req.PaymentMethod,
		PaymentStatus:   model.PaymentPaid,
		Subtotal:        totals.Subtotal,
		TaxRate:         totals.TaxRate,
		TaxAmount:       totals.Tax,
		Total:           totals.Total,
		Note:            req.Note,
		CreatedByUserID: &userID,
	}
	sale.CreatedBy = userID
	sale.UpdatedBy = userID

	err = s.db.Transaction(func(tx *gorm.DB) error {
		// 3. Lock, check and decrement stock per line
		for i, line := range req.Lines {
			var variant model.ProductVariant
			if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&variant, "id = ?", line.VariantID).Error; err != nil {
				return ErrVariantNotFound
			}
			if variant.ProductID != line.ProductID {
				return ErrVariantMismatch
			}
			if variant.Quantity < line.Quantity {
				return fmt.Errorf("%w: %s (need %d, have %d)",
					ErrInsufficientStock, totals.Lines[i].Name, line.Quantity, variant.Quantity)
			}
			if err := s.variantRepo.UpdateQuantity(tx, variant.ID, variant.Quantity-line.Quantity, userID); err != nil {
				return err
			}

			sale.Items = append(sale.Items, model.SaleItem{
				ProductID: line.ProductID,
				VariantID: line.VariantID,
				Quantity:  line.Quantity,
				UnitPrice: totals.Lines[i].UnitPrice,
				LineTotal: totals.Lines[i].LineTotal,
			})
		}

		// 4. Insert the sale header with its line items
		if err := s.saleRepo.Create(tx, sale); err != nil {
			return err
		}

		// 5. Append one sale log per line, referencing the new sale number
		for _, line := range req.Lines {
			logEntry := &model.StockLog{
				ProductID:       line.ProductID,
				VariantID:       line.VariantID,
				Type:            model.StockSale,
				Quantity:        line.Quantity,
				Note:            "sale " + sale.SaleNumber,
				CreatedByUserID: &userID,
			}
			logEntry.CreatedBy = userID
			if err := s.stockLogRepo.Create(tx, logEntry); err != nil {
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
			Type:   "sale_created",
			Action: "checkout",
			Payload: map[string]interface{}{
				"sale_id":     sale.ID,
				"sale_number": sale.SaleNumber,
				"total":       sale.Total,
				"items":       len(sale.Items),
			},
			Actor:   userName,
			Message: fmt.Sprintf("%s completed sale %s (%s)", userName, sale.SaleNumber, sale.Total.StringFixed(2)),
		})
	}

	return sale, nil
}

func (s *checkoutService) GetAllSales() ([]model.Sale, error) {
	return s.saleRepo.FindAll()
}

func (s *checkoutService) GetSaleByID(id uuid.UUID) (*model.Sale, error) {
	return s.saleRepo.FindByID(id)
}

// newDocumentNumber builds a unique, human-scannable document number like
// S-20250117-9F3A2C1B. Uniqueness is backed by the unique index on the
// column.
func newDocumentNumber(prefix string) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
	return fmt.Sprintf("%s-%s-%s", prefix, time.Now().Format("20060102"), suffix)
}
