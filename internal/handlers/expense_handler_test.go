package handlers

import (
	"context"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"mughal/internal/models"
	"mughal/internal/pagination"
	"mughal/internal/services"
)

type mockExpenseService struct {
	createFn func(ctx context.Context, in services.ExpenseInput) (*models.Expense, error)
	listFn   func(ctx context.Context, page pagination.PageRequest) (*pagination.PageResponse[models.Expense], error)
}

var _ services.ExpenseServicer = (*mockExpenseService)(nil)

func (m *mockExpenseService) Create(ctx context.Context, in services.ExpenseInput) (*models.Expense, error) {
	if m.createFn != nil {
		return m.createFn(ctx, in)
	}
	return &models.Expense{}, nil
}

func (m *mockExpenseService) List(ctx context.Context, page pagination.PageRequest) (*pagination.PageResponse[models.Expense], error) {
	if m.listFn != nil {
		return m.listFn(ctx, page)
	}
	resp := pagination.NewPageResponse([]models.Expense{}, 1, 20, 0)
	return &resp, nil
}

func setupExpenseRouter(svc *mockExpenseService) *gin.Engine {
	handler := NewExpenseHandler(svc)
	r := gin.New()
	api := r.Group("", injectUser(adminUser))
	api.POST("/expenses", handler.CreateExpense)
	api.GET("/expenses", handler.ListExpenses)
	return r
}

func TestExpenseHandler_CreateExpense(t *testing.T) {
	t.Run("returns 201 on success", func(t *testing.T) {
		svc := &mockExpenseService{
			createFn: func(_ context.Context, in services.ExpenseInput) (*models.Expense, error) {
				if in.Category != models.ExpenseCategoryElectricity || !in.Amount.Equal(decimal.NewFromInt(5000)) {
					t.Errorf("input = %+v", in)
				}
				if in.Date == nil || in.Date.Format("2006-01-02") != "2026-06-15" {
					t.Errorf("date = %v", in.Date)
				}
				return &models.Expense{ID: "EXP-1", Category: in.Category, Amount: in.Amount}, nil
			},
		}
		r := setupExpenseRouter(svc)

		rec := doRequest(r, "POST", "/expenses",
			`{"category":"Electricity","description":"June bill","amount":5000,"date":"2026-06-15"}`)

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		expense := parseJSON(t, rec)["expense"].(map[string]interface{})
		if expense["amount"].(float64) != 5000 {
			t.Errorf("amount = %v", expense["amount"])
		}
	})

	t.Run("defaults the date", func(t *testing.T) {
		svc := &mockExpenseService{
			createFn: func(_ context.Context, in services.ExpenseInput) (*models.Expense, error) {
				if in.Date != nil {
					t.Errorf("expected nil date, got %v", in.Date)
				}
				return &models.Expense{ID: "EXP-2"}, nil
			},
		}
		r := setupExpenseRouter(svc)

		rec := doRequest(r, "POST", "/expenses", `{"category":"Rent","amount":30000}`)

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d", rec.Code)
		}
	})

	tests := []struct {
		name string
		body string
	}{
		{"rejects unknown category", `{"category":"Travel","amount":100}`},
		{"rejects zero amount", `{"category":"Rent","amount":0}`},
		{"rejects negative amount", `{"category":"Rent","amount":-10}`},
		{"rejects bad date", `{"category":"Rent","amount":10,"date":"yesterday"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := setupExpenseRouter(&mockExpenseService{})

			rec := doRequest(r, "POST", "/expenses", tt.body)

			if rec.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
			}
			assertErrorCode(t, parseJSON(t, rec), "INVALID_INPUT")
		})
	}
}

func TestExpenseHandler_ListExpenses(t *testing.T) {
	svc := &mockExpenseService{
		listFn: func(_ context.Context, page pagination.PageRequest) (*pagination.PageResponse[models.Expense], error) {
			resp := pagination.NewPageResponse([]models.Expense{{ID: "EXP-1"}}, 1, 20, 1)
			return &resp, nil
		},
	}
	r := setupExpenseRouter(svc)

	rec := doRequest(r, "GET", "/expenses", "")

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if got := parseJSON(t, rec)["total_items"].(float64); got != 1 {
		t.Errorf("total_items = %v", got)
	}
}
