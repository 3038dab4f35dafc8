package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	apperrors "miniinventory/internal/errors"
	"miniinventory/internal/model"
)

// ProductRepository defines product persistence operations.
type ProductRepository interface {
	List(ctx context.Context, filter string) ([]model.Product, error)
	FindByID(ctx context.Context, id uint) (*model.Product, error)
	Create(ctx context.Context, product *model.Product) error
	Update(ctx context.Context, id uint, input model.ProductInput) error
	Delete(ctx context.Context, id uint) error
}

type productRepository struct {
	db *gorm.DB
}

// NewProductRepository builds a GORM-backed repository.
func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepository{db: db}
}

// List returns products newest first. A non-empty filter keeps rows whose
// name or category contains it; matching is case-sensitive and treats
// LIKE wildcards literally.
func (r *productRepository) List(ctx context.Context, filter string) ([]model.Product, error) {
	var products []model.Product
	query := r.db.WithContext(ctx).Order("id DESC")
	if filter != "" {
		query = query.Where(r.containsClause(), filter, filter)
	}
	if err := query.Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

func (r *productRepository) FindByID(ctx context.Context, id uint) (*model.Product, error) {
	var product model.Product
	if err := r.db.WithContext(ctx).First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrProductNotFound
		}
		return nil, err
	}
	return &product, nil
}

func (r *productRepository) Create(ctx context.Context, product *model.Product) error {
	return r.db.WithContext(ctx).Create(product).Error
}

// Update writes the editable columns only; added_on is left untouched.
func (r *productRepository) Update(ctx context.Context, id uint, input model.ProductInput) error {
	res := r.db.WithContext(ctx).Model(&model.Product{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"name":     input.Name,
			"category": input.Category,
			"quantity": input.Quantity,
			"price":    input.Price,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrProductNotFound
	}
	return nil
}

func (r *productRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&model.Product{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrProductNotFound
	}
	return nil
}

func (r *productRepository) containsClause() string {
	if r.db.Dialector.Name() == "postgres" {
		return "strpos(name, ?) > 0 OR strpos(category, ?) > 0"
	}
	return "instr(name, ?) > 0 OR instr(category, ?) > 0"
}
