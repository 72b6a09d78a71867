package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/easystock/easystock-api/internal/models"
	"github.com/easystock/easystock-api/internal/repository"
	"github.com/easystock/easystock-api/internal/utils"
)

// StockInNotifier delivers receipt/adjustment alerts. Best-effort, like
// StockNotifier.
type StockInNotifier interface {
	NotifyStockIn(ctx context.Context, p *models.Product, qty int, actor string)
	NotifyOutOfStock(ctx context.Context, p *models.Product)
	NotifyLowStock(ctx context.Context, p *models.Product)
}

// ProductService implements catalog operations.
type ProductService struct {
	products          *repository.ProductRepository
	listings          *repository.ListingRepository
	notifier          StockInNotifier
	lowStockThreshold int
}

// NewProductService constructs a ProductService. notifier may be nil.
func NewProductService(products *repository.ProductRepository, listings *repository.ListingRepository, notifier StockInNotifier, lowStockThreshold int) *ProductService {
	return &ProductService{
		products:          products,
		listings:          listings,
		notifier:          notifier,
		lowStockThreshold: lowStockThreshold,
	}
}

// List returns products for the filter plus the total count.
func (s *ProductService) List(filter *models.ProductFilter) ([]models.Product, int, error) {
	return s.products.GetAll(filter)
}

// Get returns one product.
func (s *ProductService) Get(id int64) (*models.Product, error) {
	p, err := s.products.GetByID(id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("product %d not found: %w", id, utils.ErrProductNotFound)
		}
		return nil, err
	}
	return p, nil
}

// Create validates and inserts a product. The starting stock is recorded as
// initial_stock, which movement history treats as the receipt quantity.
func (s *ProductService) Create(ctx context.Context, p *models.Product, createdBy int64, actorName string) error {
	p.Code = strings.TrimSpace(p.Code)
	p.Title = strings.TrimSpace(p.Title)
	if p.Code == "" || p.Title == "" {
		return fmt.Errorf("code and title are required: %w", utils.ErrValidation)
	}
	if p.Stock < 0 || p.CostPrice < 0 || p.SalePrice < 0 {
		return fmt.Errorf("stock and prices must not be negative: %w", utils.ErrValidation)
	}

	p.InitialStock = p.Stock
	p.CreatedBy = &createdBy
	if err := s.products.Create(p); err != nil {
		return err
	}

	if s.notifier != nil && p.Stock > 0 {
		s.notifier.NotifyStockIn(ctx, p, p.Stock, actorName)
	}
	return nil
}

// Update edits product fields, including corrective stock changes. A stock
// increase triggers a stock-in alert (with a low-stock follow-up when the
// result is still under the threshold); a decrease to zero an out-of-stock
// alert. All best-effort.
func (s *ProductService) Update(ctx context.Context, id int64, apply func(p *models.Product) error, actorName string) (*models.Product, error) {
	p, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	before := p.Stock

	if err := apply(p); err != nil {
		return nil, err
	}
	p.Code = strings.TrimSpace(p.Code)
	p.Title = strings.TrimSpace(p.Title)
	if p.Code == "" || p.Title == "" {
		return nil, fmt.Errorf("code and title are required: %w", utils.ErrValidation)
	}
	if p.Stock < 0 || p.CostPrice < 0 || p.SalePrice < 0 {
		return nil, fmt.Errorf("stock and prices must not be negative: %w", utils.ErrValidation)
	}

	if err := s.products.Update(p); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("product %d not found: %w", id, utils.ErrProductNotFound)
		}
		return nil, err
	}

	if s.notifier != nil && p.Stock != before {
		diff := p.Stock - before
		if diff > 0 {
			s.notifier.NotifyStockIn(ctx, p, diff, actorName)
			if p.Stock < s.lowStockThreshold {
				s.notifier.NotifyLowStock(ctx, p)
			}
		} else if p.Stock == 0 {
			s.notifier.NotifyOutOfStock(ctx, p)
		}
		log.Info().Int64("product_id", p.ID).Int("from", before).Int("to", p.Stock).
			Str("actor", actorName).Msg("Stock adjusted")
	}

	return p, nil
}

// Unlist removes the product's listing and clears its on_sale flag.
func (s *ProductService) Unlist(id int64) (*models.Product, error) {
	p, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if err := s.listings.DeleteByProductID(id); err != nil {
		return nil, err
	}
	if err := s.products.ClearOnSale(id); err != nil {
		return nil, err
	}
	p.OnSale = false
	return p, nil
}

// LowStock returns products under the configured threshold.
func (s *ProductService) LowStock() ([]models.Product, error) {
	return s.products.GetLowStock(s.lowStockThreshold)
}

// --- Categories ---

// Categories returns all categories with product counts.
func (s *ProductService) Categories() ([]models.Category, error) {
	return s.products.GetCategories()
}

// CreateCategory validates and inserts a category.
func (s *ProductService) CreateCategory(c *models.Category) error {
	c.Name = strings.TrimSpace(c.Name)
	if c.Name == "" {
		return fmt.Errorf("name is required: %w", utils.ErrValidation)
	}
	return s.products.CreateCategory(c)
}

// UpdateCategory renames a category.
func (s *ProductService) UpdateCategory(c *models.Category) error {
	c.Name = strings.TrimSpace(c.Name)
	if c.Name == "" {
		return fmt.Errorf("name is required: %w", utils.ErrValidation)
	}
	err := s.products.UpdateCategory(c)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("category %d not found: %w", c.ID, utils.ErrNotFound)
	}
	return err
}

// DeleteCategory removes a category; its products fall back to uncategorized.
func (s *ProductService) DeleteCategory(id int64) error {
	err := s.products.DeleteCategory(id)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("category %d not found: %w", id, utils.ErrNotFound)
	}
	return err
}
