package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/innocentteam/restaurant/internal/models"
)

// ProductRepository is interface for interacting with product catalog data
type ProductRepository interface {
	// CreateProduct inserts new product
	CreateProduct(ctx context.Context, product *models.Product) (*models.Product, error)
	// GetProductByID returns product by id
	GetProductByID(ctx context.Context, id string) (*models.Product, error)
	// GetProducts returns all catalog products
	GetProducts(ctx context.Context) ([]models.Product, error)
	// UpdateProduct updates product fields
	UpdateProduct(ctx context.Context, product *models.Product) (*models.Product, error)
	// DeleteProduct removes product by id
	DeleteProduct(ctx context.Context, id string) error
}

// ProductService implements admin product catalog management
type ProductService struct {
	repo ProductRepository
}

// NewProductService creates new ProductService instance
func NewProductService(repo ProductRepository) *ProductService {
	return &ProductService{repo: repo}
}

// Add creates new catalog product
func (ps *ProductService) Add(ctx context.Context, product *models.Product) (*models.Product, error) {
	product.ID = uuid.NewString()
	return ps.repo.CreateProduct(ctx, product)
}

// Update updates an existing catalog product
func (ps *ProductService) Update(ctx context.Context, product *models.Product) (*models.Product, error) {
	if _, err := uuid.Parse(product.ID); err != nil {
		return nil, models.ErrInvalidID
	}

	updated, err := ps.repo.UpdateProduct(ctx, product)
	if err != nil {
		if errors.Is(err, models.ErrDataNotFound) {
			return nil, models.ErrProductNotFound
		}
		return nil, err
	}

	return updated, nil
}

// Delete removes a catalog product
func (ps *ProductService) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return models.ErrInvalidID
	}

	if err := ps.repo.DeleteProduct(ctx, id); err != nil {
		if errors.Is(err, models.ErrDataNotFound) {
			return models.ErrProductNotFound
		}
		return err
	}

	return nil
}

// List returns all catalog products
func (ps *ProductService) List(ctx context.Context) ([]models.Product, error) {
	return ps.repo.GetProducts(ctx)
}
