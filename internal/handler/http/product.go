package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/innocentteam/restaurant/internal/models"
)

// ProductService is the part of the catalog workflow used by product endpoints
type ProductService interface {
	Add(ctx context.Context, product *models.Product) (*models.Product, error)
	Update(ctx context.Context, product *models.Product) (*models.Product, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]models.Product, error)
}

// ProductHandler represents HTTP handler for product catalog requests
type ProductHandler struct {
	svc ProductService
}

// NewProductHandler creates new ProductHandler instance
func NewProductHandler(svc ProductService) *ProductHandler {
	return &ProductHandler{svc: svc}
}

type productRequest struct {
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Available *bool   `json:"available"`
}

type productResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Price     float64   `json:"price"`
	Available bool      `json:"available"`
	CreatedAt time.Time `json:"created_at"`
}

func newProductResponse(product *models.Product) productResponse {
	return productResponse{
		ID:        product.ID,
		Name:      product.Name,
		Price:     product.Price,
		Available: product.Available,
		CreatedAt: product.CreatedAt,
	}
}

// AddProduct creates new catalog product
// 201 — product created;
// 400 — bad request body;
// 500 — internal error.
func (ph *ProductHandler) AddProduct() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req productRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, "bad request", nil)
			return
		}
		defer r.Body.Close()

		if req.Name == "" || req.Price < 0 {
			writeJSON(w, http.StatusBadRequest, "All fields required!", nil)
			return
		}

		available := true
		if req.Available != nil {
			available = *req.Available
		}

		product, err := ph.svc.Add(r.Context(), &models.Product{
			Name:      req.Name,
			Price:     req.Price,
			Available: available,
		})
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, "Product added successfully.", newProductResponse(product))
	}
}

// UpdateProduct updates an existing catalog product
// 200 — product updated;
// 400 — bad request body or malformed id;
// 404 — product not found;
// 500 — internal error.
func (ph *ProductHandler) UpdateProduct() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req productRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, "bad request", nil)
			return
		}
		defer r.Body.Close()

		if req.Name == "" || req.Price < 0 {
			writeJSON(w, http.StatusBadRequest, "All fields required!", nil)
			return
		}

		available := true
		if req.Available != nil {
			available = *req.Available
		}

		product, err := ph.svc.Update(r.Context(), &models.Product{
			ID:        chi.URLParam(r, "id"),
			Name:      req.Name,
			Price:     req.Price,
			Available: available,
		})
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, "Product updated successfully.", newProductResponse(product))
	}
}

// DeleteProduct removes a catalog product
// 200 — product deleted;
// 400 — malformed id;
// 404 — product not found;
// 500 — internal error.
func (ph *ProductHandler) DeleteProduct() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := ph.svc.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, "Product deleted successfully.", nil)
	}
}

// ListProducts returns all catalog products
// 200 — success;
// 500 — internal error.
func (ph *ProductHandler) ListProducts() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		products, err := ph.svc.List(r.Context())
		if err != nil {
			writeError(w, err)
			return
		}

		resp := make([]productResponse, 0, len(products))
		for i := range products {
			resp = append(resp, newProductResponse(&products[i]))
		}

		writeJSON(w, http.StatusOK, "Products fetched successfully.", resp)
	}
}
