package handlers

import (
	"context"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "mughal/internal/errors"
	"mughal/internal/models"
	"mughal/internal/pagination"
	"mughal/internal/reports"
	"mughal/internal/services"
)

type mockInventoryService struct {
	listFn   func(ctx context.Context, query string, lowStockOnly bool, page pagination.PageRequest) (*pagination.PageResponse[reports.ProductLine], error)
	getFn    func(ctx context.Context, id string) (*models.Product, error)
	createFn func(ctx context.Context, in services.ProductInput) (*models.Product, error)
	updateFn func(ctx context.Context, id string, in services.ProductInput) (*models.Product, error)
}

var _ services.InventoryServicer = (*mockInventoryService)(nil)

func (m *mockInventoryService) List(ctx context.Context, query string, lowStockOnly bool, page pagination.PageRequest) (*pagination.PageResponse[reports.ProductLine], error) {
	if m.listFn != nil {
		return m.listFn(ctx, query, lowStockOnly, page)
	}
	resp := pagination.NewPageResponse([]reports.ProductLine{}, 1, 20, 0)
	return &resp, nil
}

func (m *mockInventoryService) Get(ctx context.Context, id string) (*models.Product, error) {
	if m.getFn != nil {
		return m.getFn(ctx, id)
	}
	return &models.Product{}, nil
}

func (m *mockInventoryService) Create(ctx context.Context, in services.ProductInput) (*models.Product, error) {
	if m.createFn != nil {
		return m.createFn(ctx, in)
	}
	return &models.Product{}, nil
}

func (m *mockInventoryService) Update(ctx context.Context, id string, in services.ProductInput) (*models.Product, error) {
	if m.updateFn != nil {
		return m.updateFn(ctx, id, in)
	}
	return &models.Product{}, nil
}

func setupProductRouter(svc *mockInventoryService) *gin.Engine {
	handler := NewProductHandler(svc)
	r := gin.New()
	api := r.Group("", injectUser(adminUser))
	api.GET("/products", handler.ListProducts)
	api.GET("/products/:id", handler.GetProduct)
	api.POST("/products", handler.CreateProduct)
	api.PUT("/products/:id", handler.UpdateProduct)
	return r
}

const whiskBody = `{"sku":"SKU003","name":"Balloon Whisk","category":"Kitchen","costPrice":450,"retailPrice":850,"wholesalePrice":650,"stock":15,"minStock":5}`

func TestProductHandler_ListProducts(t *testing.T) {
	t.Run("passes search and low stock flag", func(t *testing.T) {
		svc := &mockInventoryService{
			listFn: func(_ context.Context, query string, lowStockOnly bool, _ pagination.PageRequest) (*pagination.PageResponse[reports.ProductLine], error) {
				if query != "whisk" || !lowStockOnly {
					t.Errorf("query=%q lowStock=%v", query, lowStockOnly)
				}
				resp := pagination.NewPageResponse([]reports.ProductLine{{
					Product: models.Product{ID: "3", Name: "Whisk"},
					Margin:  decimal.RequireFromString("47.06"),
				}}, 1, 20, 1)
				return &resp, nil
			},
		}
		r := setupProductRouter(svc)

		rec := doRequest(r, "GET", "/products?q=whisk&low_stock=true", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		data := parseJSON(t, rec)["data"].([]interface{})
		line := data[0].(map[string]interface{})
		if line["name"] != "Whisk" || line["margin"].(float64) != 47.06 {
			t.Errorf("line = %v", line)
		}
	})
}

func TestProductHandler_CreateProduct(t *testing.T) {
	t.Run("returns 201 on success", func(t *testing.T) {
		svc := &mockInventoryService{
			createFn: func(_ context.Context, in services.ProductInput) (*models.Product, error) {
				if in.SKU != "SKU003" || !in.RetailPrice.Equal(decimal.NewFromInt(850)) || in.MinStock != 5 {
					t.Errorf("input = %+v", in)
				}
				return &models.Product{ID: "PRD-1", SKU: in.SKU, Name: in.Name}, nil
			},
		}
		r := setupProductRouter(svc)

		rec := doRequest(r, "POST", "/products", whiskBody)

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		product := parseJSON(t, rec)["product"].(map[string]interface{})
		if product["id"] != "PRD-1" {
			t.Errorf("id = %v", product["id"])
		}
	})

	tests := []struct {
		name string
		body string
	}{
		{"rejects missing sku", `{"name":"Whisk"}`},
		{"rejects negative cost", `{"sku":"X","name":"Whisk","costPrice":-1}`},
		{"rejects negative threshold", `{"sku":"X","name":"Whisk","minStock":-1}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := setupProductRouter(&mockInventoryService{})

			rec := doRequest(r, "POST", "/products", tt.body)

			if rec.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d", rec.Code)
			}
			assertErrorCode(t, parseJSON(t, rec), "INVALID_INPUT")
		})
	}

	t.Run("returns 409 on duplicate sku", func(t *testing.T) {
		svc := &mockInventoryService{
			createFn: func(context.Context, services.ProductInput) (*models.Product, error) {
				return nil, apperrors.ErrDuplicateSKU
			},
		}
		r := setupProductRouter(svc)

		rec := doRequest(r, "POST", "/products", whiskBody)

		if rec.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "DUPLICATE_SKU")
	})
}

func TestProductHandler_UpdateProduct(t *testing.T) {
	t.Run("returns 200 on success", func(t *testing.T) {
		svc := &mockInventoryService{
			updateFn: func(_ context.Context, id string, in services.ProductInput) (*models.Product, error) {
				if id != "3" || in.Stock != 15 {
					t.Errorf("id=%q input=%+v", id, in)
				}
				return &models.Product{ID: id, Name: in.Name}, nil
			},
		}
		r := setupProductRouter(svc)

		rec := doRequest(r, "PUT", "/products/3", whiskBody)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
	})

	t.Run("returns 404 when missing", func(t *testing.T) {
		svc := &mockInventoryService{
			updateFn: func(context.Context, string, services.ProductInput) (*models.Product, error) {
				return nil, apperrors.ErrProductNotFound
			},
		}
		r := setupProductRouter(svc)

		rec := doRequest(r, "PUT", "/products/99", whiskBody)

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "PRODUCT_NOT_FOUND")
	})
}

func TestProductHandler_GetProduct(t *testing.T) {
	svc := &mockInventoryService{
		getFn: func(_ context.Context, id string) (*models.Product, error) {
			return &models.Product{ID: id, Name: "Sourdough"}, nil
		},
	}
	r := setupProductRouter(svc)

	rec := doRequest(r, "GET", "/products/5", "")

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	product := parseJSON(t, rec)["product"].(map[string]interface{})
	if product["name"] != "Sourdough" {
		t.Errorf("name = %v", product["name"])
	}
}
