package ledger

import (
	"time"

	"github.com/shopspring/decimal"

	"mughal/internal/models"
)

// CreditTerm is how long a customer has to settle an unpaid sale balance.
const CreditTerm = 30 * 24 * time.Hour

// NewItem builds a line for qty units of p at the given unit price, capturing
// the product name as it is now.
func NewItem(p models.Product, qty int, price decimal.Decimal) models.TransactionItem {
	return models.TransactionItem{
		ProductID: p.ID,
		Name:      p.Name,
		Quantity:  qty,
		Price:     price,
		Total:     price.Mul(decimal.NewFromInt(int64(qty))),
	}
}

// SubTotal sums the line totals.
func SubTotal(items []models.TransactionItem) decimal.Decimal {
	sum := decimal.Zero
	for _, item := range items {
		sum = sum.Add(item.Total)
	}
	return sum
}

// SaleParams carries the inputs of a sale.
type SaleParams struct {
	ID       string
	Date     time.Time
	Type     models.TransactionType
	Items    []models.TransactionItem
	Discount decimal.Decimal
	// PaidAmount defaults to the full total when nil.
	PaidAmount *decimal.Decimal
	PartyID    string
}

// NewSale derives the totals of a sale. The total and the unpaid balance are
// floored at zero, and a positive balance falls due CreditTerm after Date.
func NewSale(p SaleParams) models.Transaction {
	subTotal := SubTotal(p.Items)
	total := decimal.Max(decimal.Zero, subTotal.Sub(p.Discount))

	paid := total
	if p.PaidAmount != nil {
		paid = *p.PaidAmount
	}
	balance := decimal.Max(decimal.Zero, total.Sub(paid))

	tx := models.Transaction{
		ID:         p.ID,
		Date:       p.Date,
		Type:       p.Type,
		Items:      p.Items,
		SubTotal:   subTotal,
		Discount:   p.Discount,
		Total:      total,
		PaidAmount: paid,
		Balance:    balance,
		PartyID:    p.PartyID,
	}
	if balance.IsPositive() {
		due := p.Date.Add(CreditTerm)
		tx.DueDate = &due
	}
	return tx
}

// PurchaseParams carries the inputs of a stock purchase.
type PurchaseParams struct {
	ID    string
	Date  time.Time
	Items []models.TransactionItem
	// PaidAmount defaults to zero when nil.
	PaidAmount *decimal.Decimal
	PartyID    string
}

// NewPurchase derives the totals of a purchase. The balance is not floored:
// overpaying a supplier yields a negative balance.
func NewPurchase(p PurchaseParams) models.Transaction {
	total := SubTotal(p.Items)
	paid := decimal.Zero
	if p.PaidAmount != nil {
		paid = *p.PaidAmount
	}
	return models.Transaction{
		ID:         p.ID,
		Date:       p.Date,
		Type:       models.TransactionTypePurchase,
		Items:      p.Items,
		SubTotal:   total,
		Discount:   decimal.Zero,
		Total:      total,
		PaidAmount: paid,
		Balance:    total.Sub(paid),
		PartyID:    p.PartyID,
	}
}

// ReturnParams carries the inputs of a customer return against a sale.
type ReturnParams struct {
	ID      string
	Date    time.Time
	Invoice models.Transaction
	Items   []models.TransactionItem
}

// NewReturn derives a full-refund return for items taken back from Invoice.
// The party is copied from the invoice.
func NewReturn(p ReturnParams) models.Transaction {
	total := SubTotal(p.Items)
	return models.Transaction{
		ID:         p.ID,
		Date:       p.Date,
		Type:       models.TransactionTypeReturn,
		Items:      p.Items,
		SubTotal:   total,
		Discount:   decimal.Zero,
		Total:      total,
		PaidAmount: total,
		Balance:    decimal.Zero,
		PartyID:    p.Invoice.PartyID,
		Notes:      ReturnNote(p.Invoice.ID),
	}
}

// ReturnNote is the note that links a return to the sale it reverses.
func ReturnNote(invoiceID string) string {
	return "Return from invoice " + invoiceID
}

// ReturnedQuantities sums, per product, the quantities already returned
// against invoiceID.
func ReturnedQuantities(txs []models.Transaction, invoiceID string) map[string]int {
	note := ReturnNote(invoiceID)
	returned := make(map[string]int)
	for _, tx := range txs {
		if tx.Type != models.TransactionTypeReturn || tx.Notes != note {
			continue
		}
		for _, item := range tx.Items {
			returned[item.ProductID] += item.Quantity
		}
	}
	return returned
}
