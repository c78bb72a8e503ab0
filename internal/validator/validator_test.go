package validator

import (
	"testing"

	"github.com/shopspring/decimal"
)

type saleRequest struct {
	Type     string          `validate:"sale_type"`
	Discount decimal.Decimal `validate:"gte=0"`
}

type expenseRequest struct {
	Category string           `validate:"expense_category"`
	Amount   decimal.Decimal  `validate:"gt=0"`
	Paid     *decimal.Decimal `validate:"omitempty,gte=0"`
}

func TestSaleType(t *testing.T) {
	v := New()
	tests := []struct {
		name    string
		req     saleRequest
		wantErr bool
	}{
		{"retail", saleRequest{Type: "SALE_RETAIL"}, false},
		{"wholesale", saleRequest{Type: "SALE_WHOLESALE"}, false},
		{"purchase_rejected", saleRequest{Type: "PURCHASE"}, true},
		{"negative_discount", saleRequest{Type: "SALE_RETAIL", Discount: decimal.NewFromInt(-1)}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Struct(tt.req)
			if (err != nil) != tt.wantErr {
				t.Errorf("Struct() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestExpenseRules(t *testing.T) {
	v := New()
	negative := decimal.NewFromInt(-5)
	tests := []struct {
		name    string
		req     expenseRequest
		wantErr bool
	}{
		{"valid", expenseRequest{Category: "Rent", Amount: decimal.NewFromInt(100)}, false},
		{"others_allowed", expenseRequest{Category: "Others", Amount: decimal.RequireFromString("0.5")}, false},
		{"unknown_category", expenseRequest{Category: "Travel", Amount: decimal.NewFromInt(100)}, true},
		{"zero_amount", expenseRequest{Category: "Rent", Amount: decimal.Zero}, true},
		{"negative_optional", expenseRequest{Category: "Rent", Amount: decimal.NewFromInt(1), Paid: &negative}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Struct(tt.req)
			if (err != nil) != tt.wantErr {
				t.Errorf("Struct() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
