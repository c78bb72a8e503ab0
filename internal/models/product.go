package models

import "github.com/shopspring/decimal"

func init() {
	// Amounts round-trip as JSON numbers, matching the stored snapshot shape.
	decimal.MarshalJSONWithoutQuotes = true
}

// Product is a stocked item. Stock may go negative when the ledger policy
// allows back-orders.
type Product struct {
	ID             string          `json:"id" validate:"required"`
	SKU            string          `json:"sku" validate:"required"`
	Name           string          `json:"name" validate:"required"`
	Category       string          `json:"category"`
	CostPrice      decimal.Decimal `json:"costPrice" validate:"gte=0"`
	RetailPrice    decimal.Decimal `json:"retailPrice" validate:"gte=0"`
	WholesalePrice decimal.Decimal `json:"wholesalePrice" validate:"gte=0"`
	Stock          int             `json:"stock"`
	MinStock       int             `json:"minStock" validate:"gte=0"`
}

// IsLowStock reports whether stock has reached the reorder threshold.
func (p Product) IsLowStock() bool {
	return p.Stock <= p.MinStock
}

// Margin returns the retail margin as a percentage of the retail price.
func (p Product) Margin() decimal.Decimal {
	if p.RetailPrice.IsZero() {
		return decimal.Zero
	}
	return p.RetailPrice.Sub(p.CostPrice).Div(p.RetailPrice).Mul(decimal.NewFromInt(100))
}

// PriceFor returns the unit price used for a new line of the given transaction type.
func (p Product) PriceFor(t TransactionType) decimal.Decimal {
	switch t {
	case TransactionTypeSaleWholesale:
		return p.WholesalePrice
	case TransactionTypePurchase:
		return p.CostPrice
	default:
		return p.RetailPrice
	}
}
