package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"miniinventory/internal/cache"
	apperrors "miniinventory/internal/errors"
	"miniinventory/internal/export"
	"miniinventory/internal/model"
	"miniinventory/internal/repository"
)

const (
	dashboardCacheKey = "inventory:dashboard"
	dashboardCacheTTL = time.Minute
)

// InventoryService exposes product catalog operations.
type InventoryService interface {
	List(ctx context.Context, filter string) ([]model.Product, error)
	Get(ctx context.Context, id uint) (*model.Product, error)
	Insert(ctx context.Context, input model.ProductInput) (*model.Product, error)
	Update(ctx context.Context, id uint, input model.ProductInput) error
	Delete(ctx context.Context, id uint) error
	Dashboard(ctx context.Context) (*Dashboard, error)
	Export(ctx context.Context, w io.Writer, format export.Format, filter string) error
	ExportFile(ctx context.Context, path string, format export.Format, filter string) (int, error)
}

type inventoryService struct {
	repo     repository.ProductRepository
	cache    *cache.Client
	exporter *export.Exporter
}

// NewInventoryService builds an InventoryService. cache may be nil.
func NewInventoryService(repo repository.ProductRepository, cache *cache.Client, exporter *export.Exporter) InventoryService {
	return &inventoryService{
		repo:     repo,
		cache:    cache,
		exporter: exporter,
	}
}

func (s *inventoryService) List(ctx context.Context, filter string) ([]model.Product, error) {
	products, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, storageError("list products", err)
	}
	return products, nil
}

func (s *inventoryService) Get(ctx context.Context, id uint) (*model.Product, error) {
	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, storageError(fmt.Sprintf("get product %d", id), err)
	}
	return product, nil
}

// Insert validates input, stamps AddedOn and stores the product.
func (s *inventoryService) Insert(ctx context.Context, input model.ProductInput) (*model.Product, error) {
	input, err := normalize(input)
	if err != nil {
		return nil, err
	}

	product := &model.Product{
		Name:     input.Name,
		Category: input.Category,
		Quantity: input.Quantity,
		Price:    input.Price,
		AddedOn:  time.Now().UTC().Truncate(time.Second),
	}
	if err := s.repo.Create(ctx, product); err != nil {
		return nil, storageError("insert product", err)
	}
	s.invalidateDashboard(ctx)
	return product, nil
}

// Update rewrites the editable fields of product id. A missing id yields
// ErrProductNotFound.
func (s *inventoryService) Update(ctx context.Context, id uint, input model.ProductInput) error {
	input, err := normalize(input)
	if err != nil {
		return err
	}
	if err := s.repo.Update(ctx, id, input); err != nil {
		return storageError(fmt.Sprintf("update product %d", id), err)
	}
	s.invalidateDashboard(ctx)
	return nil
}

func (s *inventoryService) Delete(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return storageError(fmt.Sprintf("delete product %d", id), err)
	}
	s.invalidateDashboard(ctx)
	return nil
}

// Dashboard aggregates over every product regardless of any list filter.
func (s *inventoryService) Dashboard(ctx context.Context) (*Dashboard, error) {
	if data, _ := s.cache.Get(ctx, dashboardCacheKey); data != nil {
		var cached Dashboard
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
	}

	products, err := s.repo.List(ctx, "")
	if err != nil {
		return nil, storageError("compute dashboard", err)
	}
	dashboard := ComputeDashboard(products)

	if payload, err := json.Marshal(dashboard); err == nil {
		_ = s.cache.Set(ctx, dashboardCacheKey, payload, dashboardCacheTTL)
	}
	return &dashboard, nil
}

// Export writes the (optionally filtered) product list to w.
func (s *inventoryService) Export(ctx context.Context, w io.Writer, format export.Format, filter string) error {
	if err := s.exporter.Supports(format); err != nil {
		return err
	}
	products, err := s.List(ctx, filter)
	if err != nil {
		return err
	}
	if len(products) == 0 {
		return apperrors.ErrNothingToExport
	}
	return s.exporter.Write(w, format, products)
}

// ExportFile writes the (optionally filtered) product list to a new file at
// path and returns the number of rows written.
func (s *inventoryService) ExportFile(ctx context.Context, path string, format export.Format, filter string) (int, error) {
	if err := s.exporter.Supports(format); err != nil {
		return 0, err
	}
	products, err := s.List(ctx, filter)
	if err != nil {
		return 0, err
	}
	if len(products) == 0 {
		return 0, apperrors.ErrNothingToExport
	}
	if err := s.exporter.WriteFile(path, format, products); err != nil {
		return 0, err
	}
	return len(products), nil
}

func (s *inventoryService) invalidateDashboard(ctx context.Context) {
	_ = s.cache.Delete(ctx, dashboardCacheKey)
}

// normalize trims text fields and rejects input that would break the
// product invariants.
func normalize(input model.ProductInput) (model.ProductInput, error) {
	input.Name = strings.TrimSpace(input.Name)
	input.Category = strings.TrimSpace(input.Category)

	switch {
	case input.Name == "":
		return input, fmt.Errorf("%w: product name required", apperrors.ErrValidation)
	case input.Quantity < 0:
		return input, fmt.Errorf("%w: quantity must not be negative", apperrors.ErrValidation)
	case input.Quantity > model.MaxQuantity:
		return input, fmt.Errorf("%w: quantity must not exceed %d", apperrors.ErrValidation, model.MaxQuantity)
	case input.Price.IsNegative():
		return input, fmt.Errorf("%w: price must not be negative", apperrors.ErrValidation)
	case input.Price.GreaterThan(model.MaxPrice):
		return input, fmt.Errorf("%w: price must not exceed %s", apperrors.ErrValidation, model.MaxPrice)
	}
	return input, nil
}

func storageError(op string, err error) error {
	if errors.Is(err, apperrors.ErrProductNotFound) {
		return fmt.Errorf("%s: %w", op, err)
	}
	return fmt.Errorf("%s: %w: %w", op, apperrors.ErrStorageUnavailable, err)
}
