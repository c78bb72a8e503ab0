package services

import (
	"context"
	"strings"

	apperrors "mughal/internal/errors"
	"mughal/internal/ids"
	"mughal/internal/models"
	"mughal/internal/pagination"
	"mughal/internal/reports"
	"mughal/internal/store"
)

// inventoryService manages the product catalogue.
type inventoryService struct {
	store *store.Store
}

// NewInventoryService creates a new InventoryServicer.
func NewInventoryService(s *store.Store) InventoryServicer {
	return &inventoryService{store: s}
}

func (in ProductInput) validate() error {
	if strings.TrimSpace(in.SKU) == "" || strings.TrimSpace(in.Name) == "" {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "sku and name are required")
	}
	if in.CostPrice.IsNegative() || in.RetailPrice.IsNegative() || in.WholesalePrice.IsNegative() {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "prices cannot be negative")
	}
	if in.MinStock < 0 {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "minimum stock cannot be negative")
	}
	return nil
}

func (in ProductInput) product(id string) models.Product {
	return models.Product{
		ID:             id,
		SKU:            strings.TrimSpace(in.SKU),
		Name:           strings.TrimSpace(in.Name),
		Category:       in.Category,
		CostPrice:      in.CostPrice,
		RetailPrice:    in.RetailPrice,
		WholesalePrice: in.WholesalePrice,
		Stock:          in.Stock,
		MinStock:       in.MinStock,
	}
}

// List returns products whose name or SKU contains query, ignoring case.
func (s *inventoryService) List(_ context.Context, query string, lowStockOnly bool, page pagination.PageRequest) (*pagination.PageResponse[reports.ProductLine], error) {
	q := strings.ToLower(strings.TrimSpace(query))
	var matched []reports.ProductLine
	for _, line := range reports.InventoryReport(s.store.Snapshot()) {
		if lowStockOnly && !line.LowStock {
			continue
		}
		if q != "" && !strings.Contains(strings.ToLower(line.Name), q) && !strings.Contains(strings.ToLower(line.SKU), q) {
			continue
		}
		matched = append(matched, line)
	}
	resp := pagination.Slice(matched, page)
	return &resp, nil
}

// Get returns one product.
func (s *inventoryService) Get(_ context.Context, id string) (*models.Product, error) {
	p, ok := s.store.Snapshot().FindProduct(id)
	if !ok {
		return nil, apperrors.ErrProductNotFound
	}
	return &p, nil
}

// Create adds a product to the catalogue.
func (s *inventoryService) Create(ctx context.Context, in ProductInput) (*models.Product, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	p := in.product(ids.New(ids.PrefixProduct))
	if err := s.store.AddProduct(ctx, p); err != nil {
		return nil, err
	}
	return &p, nil
}

// Update replaces a product's fields. Stock set here is a manual count and
// records no transaction.
func (s *inventoryService) Update(ctx context.Context, id string, in ProductInput) (*models.Product, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	p := in.product(id)
	if err := s.store.UpdateProduct(ctx, p); err != nil {
		return nil, err
	}
	return &p, nil
}
