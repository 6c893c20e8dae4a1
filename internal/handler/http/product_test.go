package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/golang/mock/gomock"
	"github.com/innocentteam/restaurant/internal/handler/http/mocks"
	"github.com/innocentteam/restaurant/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testProductID = "f0b9af79-35b4-4b93-9d14-54a0061dcd40"

func TestProductHandler_AddProduct(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		setup          func(t *testing.T) *mocks.MockProductService
		wantStatusCode int
	}{
		{
			// 201 — product created
			name: "valid_request_return_201",
			body: `{"name":"pizza","price":9.5}`,
			setup: func(t *testing.T) *mocks.MockProductService {
				ctrl := gomock.NewController(t)

				svcMock := mocks.NewMockProductService(ctrl)
				svcMock.EXPECT().Add(gomock.Any(), gomock.Any()).Return(&models.Product{
					ID:        testProductID,
					Name:      "pizza",
					Price:     9.5,
					Available: true,
				}, nil).Times(1)
				return svcMock
			},
			wantStatusCode: http.StatusCreated,
		},
		{
			// 400 — missing name
			name: "missing_name_return_400",
			body: `{"price":9.5}`,
			setup: func(t *testing.T) *mocks.MockProductService {
				ctrl := gomock.NewController(t)

				svcMock := mocks.NewMockProductService(ctrl)
				svcMock.EXPECT().Add(gomock.Any(), gomock.Any()).Times(0)
				return svcMock
			},
			wantStatusCode: http.StatusBadRequest,
		},
		{
			// 400 — negative price
			name: "negative_price_return_400",
			body: `{"name":"pizza","price":-1}`,
			setup: func(t *testing.T) *mocks.MockProductService {
				ctrl := gomock.NewController(t)

				svcMock := mocks.NewMockProductService(ctrl)
				svcMock.EXPECT().Add(gomock.Any(), gomock.Any()).Times(0)
				return svcMock
			},
			wantStatusCode: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, err := http.NewRequest(http.MethodPost, "/addProduct", strings.NewReader(tt.body))
			require.NoError(t, err)

			w := httptest.NewRecorder()

			handler := NewProductHandler(tt.setup(t))
			h := handler.AddProduct()
			h(w, req)

			res := w.Result()
			defer res.Body.Close()
			assert.Equal(t, tt.wantStatusCode, res.StatusCode)
		})
	}
}

func TestProductHandler_UpdateProduct(t *testing.T) {
	tests := []struct {
		name           string
		setup          func(t *testing.T) *mocks.MockProductService
		wantStatusCode int
	}{
		{
			// 200 — product updated
			name: "existing_product_return_200",
			setup: func(t *testing.T) *mocks.MockProductService {
				ctrl := gomock.NewController(t)

				svcMock := mocks.NewMockProductService(ctrl)
				svcMock.EXPECT().Update(gomock.Any(), gomock.Any()).Return(&models.Product{
					ID:        testProductID,
					Name:      "pizza",
					Price:     10.0,
					Available: true,
				}, nil).Times(1)
				return svcMock
			},
			wantStatusCode: http.StatusOK,
		},
		{
			// 404 — product not found
			name: "unknown_product_return_404",
			setup: func(t *testing.T) *mocks.MockProductService {
				ctrl := gomock.NewController(t)

				svcMock := mocks.NewMockProductService(ctrl)
				svcMock.EXPECT().Update(gomock.Any(), gomock.Any()).Return(nil, models.ErrProductNotFound).AnyTimes()
				return svcMock
			},
			wantStatusCode: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := chi.NewRouter()
			router.Patch("/updateProduct/{id}", NewProductHandler(tt.setup(t)).UpdateProduct())

			req, err := http.NewRequest(http.MethodPatch, "/updateProduct/"+testProductID,
				strings.NewReader(`{"name":"pizza","price":10.0}`))
			require.NoError(t, err)

			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			res := w.Result()
			defer res.Body.Close()
			assert.Equal(t, tt.wantStatusCode, res.StatusCode)
		})
	}
}

func TestProductHandler_DeleteProduct(t *testing.T) {
	tests := []struct {
		name           string
		setup          func(t *testing.T) *mocks.MockProductService
		wantStatusCode int
	}{
		{
			// 200 — product deleted
			name: "existing_product_return_200",
			setup: func(t *testing.T) *mocks.MockProductService {
				ctrl := gomock.NewController(t)

				svcMock := mocks.NewMockProductService(ctrl)
				svcMock.EXPECT().Delete(gomock.Any(), testProductID).Return(nil).Times(1)
				return svcMock
			},
			wantStatusCode: http.StatusOK,
		},
		{
			// 404 — product not found
			name: "unknown_product_return_404",
			setup: func(t *testing.T) *mocks.MockProductService {
				ctrl := gomock.NewController(t)

				svcMock := mocks.NewMockProductService(ctrl)
				svcMock.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(models.ErrProductNotFound).AnyTimes()
				return svcMock
			},
			wantStatusCode: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := chi.NewRouter()
			router.Delete("/deleteProduct/{id}", NewProductHandler(tt.setup(t)).DeleteProduct())

			req, err := http.NewRequest(http.MethodDelete, "/deleteProduct/"+testProductID, nil)
			require.NoError(t, err)

			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			res := w.Result()
			defer res.Body.Close()
			assert.Equal(t, tt.wantStatusCode, res.StatusCode)
		})
	}
}
