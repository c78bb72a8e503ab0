package models

import (
	"time"

	"github.com/shopspring/decimal"

	"mughal/internal/ids"
)

// TransactionType represents the kind of ledger transaction.
type TransactionType string

const (
	TransactionTypeSaleRetail    TransactionType = "SALE_RETAIL"
	TransactionTypeSaleWholesale TransactionType = "SALE_WHOLESALE"
	TransactionTypePurchase      TransactionType = "PURCHASE"
	TransactionTypeReturn        TransactionType = "RETURN"
)

// IsSale reports whether t is a retail or wholesale sale.
func (t TransactionType) IsSale() bool {
	return t == TransactionTypeSaleRetail || t == TransactionTypeSaleWholesale
}

// Valid reports whether t is one of the known transaction types.
func (t TransactionType) Valid() bool {
	switch t {
	case TransactionTypeSaleRetail, TransactionTypeSaleWholesale, TransactionTypePurchase, TransactionTypeReturn:
		return true
	}
	return false
}

// IDPrefix returns the document prefix used for transactions of this type.
func (t TransactionType) IDPrefix() string {
	switch t {
	case TransactionTypePurchase:
		return ids.PrefixPurchase
	case TransactionTypeReturn:
		return ids.PrefixReturn
	default:
		return ids.PrefixSale
	}
}

// TransactionItem is one line of a transaction. Name and Price are captured
// when the line is created and do not follow later product edits.
type TransactionItem struct {
	ProductID string          `json:"productId" validate:"required"`
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity" validate:"gt=0"`
	Price     decimal.Decimal `json:"price" validate:"gte=0"`
	Total     decimal.Decimal `json:"total"`
}

// Transaction is an immutable ledger entry.
type Transaction struct {
	ID         string            `json:"id" validate:"required"`
	Date       time.Time         `json:"date" validate:"required"`
	Type       TransactionType   `json:"type" validate:"oneof=SALE_RETAIL SALE_WHOLESALE PURCHASE RETURN"`
	Items      []TransactionItem `json:"items" validate:"dive"`
	SubTotal   decimal.Decimal   `json:"subTotal"`
	Discount   decimal.Decimal   `json:"discount" validate:"gte=0"`
	Total      decimal.Decimal   `json:"total"`
	PaidAmount decimal.Decimal   `json:"paidAmount"`
	Balance    decimal.Decimal   `json:"balance"`
	PartyID    string            `json:"partyId,omitempty"`
	DueDate    *time.Time        `json:"dueDate,omitempty"`
	Notes      string            `json:"notes,omitempty"`
}

// IsSale reports whether the transaction is a retail or wholesale sale.
func (t Transaction) IsSale() bool { return t.Type.IsSale() }

// QuantityOf returns the total quantity of productID across all lines.
func (t Transaction) QuantityOf(productID string) int {
	n := 0
	for _, item := range t.Items {
		if item.ProductID == productID {
			n += item.Quantity
		}
	}
	return n
}

// Clone returns a copy that shares no slices or pointers with t.
func (t Transaction) Clone() Transaction {
	c := t
	if t.Items != nil {
		c.Items = append([]TransactionItem(nil), t.Items...)
	}
	if t.DueDate != nil {
		d := *t.DueDate
		c.DueDate = &d
	}
	return c
}
