package repository

import (
	"context"
	"errors"

	"github.com/innocentteam/restaurant/internal/models"
	"github.com/innocentteam/restaurant/internal/repository/postgres"
	"github.com/jackc/pgx/v5"
)

const (
	insertProductQuery = `
						INSERT INTO products (id, name, price, available)
						VALUES ($1, $2, $3, $4)
						RETURNING id, name, price, available, created_at
`
	selectProductByIDQuery = `
						SELECT id, name, price, available, created_at FROM products
						WHERE id = $1
`
	selectProductsQuery = `
						SELECT id, name, price, available, created_at FROM products
						ORDER BY created_at DESC
`
	updateProductQuery = `
						UPDATE products
						SET name = $2, price = $3, available = $4
						WHERE id = $1
						RETURNING id, name, price, available, created_at
`
	deleteProductQuery = `
						DELETE FROM products
						WHERE id = $1
`
)

// ProductRepository implements service.ProductRepository interface
type ProductRepository struct {
	db *postgres.DB
}

// NewProductRepository creates new ProductRepository instance
func NewProductRepository(db *postgres.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

func scanProduct(row pgx.Row) (*models.Product, error) {
	product := models.Product{}
	err := row.Scan(&product.ID, &product.Name, &product.Price, &product.Available, &product.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrDataNotFound
		}
		return nil, err
	}
	return &product, nil
}

// CreateProduct inserts new product to database
func (pr *ProductRepository) CreateProduct(ctx context.Context, product *models.Product) (*models.Product, error) {
	return scanProduct(pr.db.QueryRow(ctx, insertProductQuery,
		product.ID, product.Name, product.Price, product.Available))
}

// GetProductByID returns product by id
func (pr *ProductRepository) GetProductByID(ctx context.Context, id string) (*models.Product, error) {
	return scanProduct(pr.db.QueryRow(ctx, selectProductByIDQuery, id))
}

// GetProducts returns all catalog products
func (pr *ProductRepository) GetProducts(ctx context.Context) ([]models.Product, error) {
	rows, err := pr.db.Query(ctx, selectProductsQuery)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	products := []models.Product{}

	for rows.Next() {
		product := models.Product{}
		err = rows.Scan(&product.ID, &product.Name, &product.Price, &product.Available, &product.CreatedAt)
		if err != nil {
			continue
		}
		products = append(products, product)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return products, nil
}

// UpdateProduct updates product fields
func (pr *ProductRepository) UpdateProduct(ctx context.Context, product *models.Product) (*models.Product, error) {
	return scanProduct(pr.db.QueryRow(ctx, updateProductQuery,
		product.ID, product.Name, product.Price, product.Available))
}

// DeleteProduct removes product by id
func (pr *ProductRepository) DeleteProduct(ctx context.Context, id string) error {
	cmd, err := pr.db.Exec(ctx, deleteProductQuery, id)
	if err != nil {
		return err
	}

	if cmd.RowsAffected() == 0 {
		return models.ErrDataNotFound
	}

	return nil
}
