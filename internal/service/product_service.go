package service

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/JayRamoliya/merch-master-pro/internal/model"
	"github.com/JayRamoliya/merch-master-pro/internal/repository"
	"github.com/JayRamoliya/merch-master-pro/internal/ws"
	"github.com/JayRamoliya/merch-master-pro/pkg/validator"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	ErrSKUExists      = errors.New("SKU already exists")
	ErrBarcodeExists  = errors.New("barcode already exists")
	ErrNegativePrice  = errors.New("price cannot be negative")
	ErrNoProducts     = errors.New("no products selected")
	ErrInvalidCSVRow  = errors.New("invalid CSV row")
	ErrUnknownBulkOp  = errors.New("unknown bulk price mode")
	ErrProductMissing = errors.New("one or more selected products do not exist")
)

// BulkPriceMode selects how a bulk edit computes the new price.
type BulkPriceMode string

const (
	BulkSet           BulkPriceMode = "set"
	BulkAdjustFixed   BulkPriceMode = "adjust_fixed"
	BulkAdjustPercent BulkPriceMode = "adjust_percent"
)

type BulkPriceRequest struct {
	ProductIDs []uuid.UUID     `json:"product_ids" validate:"required,min=1"`
	Mode       BulkPriceMode   `json:"mode" validate:"required,oneof=set adjust_fixed adjust_percent"`
	Value      decimal.Decimal `json:"value"`
}

// ProductImportRow is one parsed line of a product CSV.
type ProductImportRow struct {
	Name     string
	SKU      string
	Price    decimal.Decimal
	Quantity int
}

// ImportSummary reports what an import run did, with duplicates inside the
// file counted separately from SKUs that already existed in the store.
type ImportSummary struct {
	Imported        int `json:"imported"`
	SkippedExisting int `json:"skipped_existing"`
	DuplicateInFile int `json:"duplicate_in_file"`
}

type ProductService interface {
	CreateProduct(req *model.Product, userID string) error
	UpdateProduct(id uuid.UUID, req *model.Product, userID string) (*model.Product, error)
	DeleteProduct(id uuid.UUID, userID string) error
	GetAllProducts() ([]model.Product, error)
	GetProductByID(id uuid.UUID) (*model.Product, error)
	GetProductByBarcode(barcode string) (*model.Product, error)
	BulkUpdatePrices(req *BulkPriceRequest, userID string) error
	ParseProductCSV(r io.Reader) ([]ProductImportRow, error)
	ImportProducts(rows []ProductImportRow, userID string) (*ImportSummary, error)
}

type productService struct {
	productRepo  repository.ProductRepository
	variantRepo  repository.VariantRepository
	stockLogRepo repository.StockLogRepository
	db           *gorm.DB
	wsHub        *ws.Hub
}

func NewProductService(pRepo repository.ProductRepository, vRepo repository.VariantRepository, slRepo repository.StockLogRepository, db *gorm.DB, hub *ws.Hub) ProductService {
	return &productService{
		productRepo:  pRepo,
		variantRepo:  vRepo,
		stockLogRepo: slRepo,
		db:           db,
		wsHub:        hub,
	}
}

func (s *productService) CreateProduct(req *model.Product, userID string) error {
	// 1. Basic struct validation
	if err := validator.Validate(req); err != nil {
		return err
	}
	if req.Price.IsNegative() {
		return ErrNegativePrice
	}

	// 2. Uniqueness checks before the insert
	existing, _ := s.productRepo.FindBySKU(req.SKU)
	if existing != nil && existing.ID != uuid.Nil {
		return ErrSKUExists
	}
	if req.Barcode != nil && *req.Barcode != "" {
		dup, _ := s.productRepo.FindByBarcode(*req.Barcode)
		if dup != nil && dup.ID != uuid.Nil {
			return ErrBarcodeExists
		}
	}

	// 3. Audit fields
	req.CreatedBy = userID
	req.UpdatedBy = userID
	req.CreatedByUserID = &userID
	req.UpdatedByUserID = &userID

	// 4. Save product and, when no variants were supplied, a default one so
	// the product has a stock bucket from day one.
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.productRepo.CreateTx(tx, req); err != nil {
			return err
		}
		if len(req.Variants) == 0 {
			variant := &model.ProductVariant{ProductID: req.ID}
			variant.CreatedBy = userID
			variant.UpdatedBy = userID
			if err := s.variantRepo.CreateTx(tx, variant); err != nil {
				return err
			}
			req.Variants = append(req.Variants, *variant)
		}
		return nil
	})
}

func (s *productService) UpdateProduct(id uuid.UUID, req *model.Product, userID string) (*model.Product, error) {
	if err := validator.Validate(req); err != nil {
		return nil, err
	}
	if req.Price.IsNegative() {
		return nil, ErrNegativePrice
	}

	existing, err := s.productRepo.FindByID(id)
	if err != nil {
		return nil, ErrProductNotFound
	}

	// SKU can change, but never into a collision
	if req.SKU != existing.SKU {
		dup, _ := s.productRepo.FindBySKU(req.SKU)
		if dup != nil && dup.ID != uuid.Nil {
			return nil, ErrSKUExists
		}
	}

	existing.Name = req.Name
	existing.SKU = req.SKU
	existing.Barcode = req.Barcode
	existing.Price = req.Price
	existing.Description = req.Description
	existing.CategoryID = req.CategoryID
	existing.UpdatedBy = userID
	existing.UpdatedByUserID = &userID

	if err := s.productRepo.Update(existing); err != nil {
		return nil, err
	}
	return existing, nil
}

func (s *productService) DeleteProduct(id uuid.UUID, userID string) error {
	if _, err := s.productRepo.FindByID(id); err != nil {
		return ErrProductNotFound
	}
	return s.productRepo.Delete(id, userID)
}

func (s *productService) GetAllProducts() ([]model.Product, error) {
	return s.productRepo.FindAll()
}

func (s *productService) GetProductByID(id uuid.UUID) (*model.Product, error) {
	return s.productRepo.FindByID(id)
}

func (s *productService) GetProductByBarcode(barcode string) (*model.Product, error) {
	return s.productRepo.FindByBarcode(barcode)
}

// BulkUpdatePrices applies one price change to every selected product.
// "set" is a single batched update. The adjust modes compute each new
// price from that product's own current price; if any computed price
// comes out negative the entire batch is rejected before a single write.
func (s *productService) BulkUpdatePrices(req *BulkPriceRequest, userID string) error {
	if err := validator.Validate(req); err != nil {
		return err
	}
	if len(req.ProductIDs) == 0 {
		return ErrNoProducts
	}

	switch req.Mode {
	case BulkSet:
		if req.Value.IsNegative() {
			return ErrNegativePrice
		}
		return s.productRepo.SetPriceBulk(req.ProductIDs, req.Value.Round(2), userID)

	case BulkAdjustFixed, BulkAdjustPercent:
		products, err := s.productRepo.FindByIDs(req.ProductIDs)
		if err != nil {
			return err
		}
		if len(products) != len(req.ProductIDs) {
			return ErrProductMissing
		}

		// Compute everything first; reject the whole batch on any negative.
		hundred := decimal.NewFromInt(100)
		newPrices := make(map[uuid.UUID]decimal.Decimal, len(products))
		for _, p := range products {
			var newPrice decimal.Decimal
			if req.Mode == BulkAdjustFixed {
				newPrice = p.Price.Add(req.Value)
			} else {
				newPrice = p.Price.Mul(hundred.Add(req.Value)).Div(hundred)
			}
			newPrice = newPrice.Round(2)
			if newPrice.IsNegative() {
				return fmt.Errorf("%w: %s would become %s", ErrNegativePrice, p.SKU, newPrice.StringFixed(2))
			}
			newPrices[p.ID] = newPrice
		}

		// Per-row writes, all-or-nothing.
		return s.db.Transaction(func(tx *gorm.DB) error {
			for id, price := range newPrices {
				if err := s.productRepo.UpdatePriceTx(tx, id, price, userID); err != nil {
					return err
				}
			}
			return nil
		})

	default:
		return ErrUnknownBulkOp
	}
}

// ParseProductCSV reads rows of "name,sku,price,quantity" with a header
// line. Parsing stays deliberately simple; the interesting part of an
// import is the dedup in ImportProducts.
func (s *productService) ParseProductCSV(r io.Reader) ([]ProductImportRow, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return nil, errors.New("CSV has no data rows")
	}

	var rows []ProductImportRow
	for i, record := range records[1:] { // skip header
		if len(record) < 4 {
			return nil, fmt.Errorf("%w: line %d has %d columns, want 4", ErrInvalidCSVRow, i+2, len(record))
		}
		price, err := decimal.NewFromString(strings.TrimSpace(record[2]))
		if err != nil {
			return nil, fmt.Errorf("%w: line %d has invalid price %q", ErrInvalidCSVRow, i+2, record[2])
		}
		quantity, err := strconv.Atoi(strings.TrimSpace(record[3]))
		if err != nil {
			return nil, fmt.Errorf("%w: line %d has invalid quantity %q", ErrInvalidCSVRow, i+2, record[3])
		}
		rows = append(rows, ProductImportRow{
			Name:     strings.TrimSpace(record[0]),
			SKU:      strings.TrimSpace(record[1]),
			Price:    price,
			Quantity: quantity,
		})
	}
	return rows, nil
}

// ImportProducts creates a product (plus default variant holding the
// initial quantity) per new SKU. SKUs repeated within the file and SKUs
// already stored are skipped and counted separately.
func (s *productService) ImportProducts(rows []ProductImportRow, userID string) (*ImportSummary, error) {
	summary := &ImportSummary{}
	if len(rows) == 0 {
		return summary, nil
	}

	skus := make([]string, 0, len(rows))
	for _, row := range rows {
		skus = append(skus, row.SKU)
	}
	existing, err := s.productRepo.ExistingSKUs(skus)
	if err != nil {
		return nil, err
	}
	existingSet := make(map[string]bool, len(existing))
	for _, sku := range existing {
		existingSet[sku] = true
	}

	seen := make(map[string]bool, len(rows))
	err = s.db.Transaction(func(tx *gorm.DB) error {
		for _, row := range rows {
			if seen[row.SKU] {
				summary.DuplicateInFile++
				continue
			}
			seen[row.SKU] = true

			if existingSet[row.SKU] {
				summary.SkippedExisting++
				continue
			}

			product := &model.Product{
				SKU:             row.SKU,
				Name:            row.Name,
				Price:           row.Price.Round(2),
				CreatedByUserID: &userID,
				UpdatedByUserID: &userID,
			}
			product.CreatedBy = userID
			product.UpdatedBy = userID
			if err := s.productRepo.CreateTx(tx, product); err != nil {
				return err
			}

			variant := &model.ProductVariant{
				ProductID: product.ID,
				Quantity:  row.Quantity,
			}
			variant.CreatedBy = userID
			variant.UpdatedBy = userID
			if err := s.variantRepo.CreateTx(tx, variant); err != nil {
				return err
			}

			// Initial quantity shows up in the audit trail too
			if row.Quantity > 0 {
				logEntry := &model.StockLog{
					ProductID:       product.ID,
					VariantID:       variant.ID,
					Type:            model.StockIn,
					Quantity:        row.Quantity,
					Note:            "import",
					CreatedByUserID: &userID,
				}
				logEntry.CreatedBy = userID
				if err := s.stockLogRepo.Create(tx, logEntry); err != nil {
					return err
				}
			}

			summary.Imported++
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return summary, nil
}
