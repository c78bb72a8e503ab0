package services

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"mughal/internal/models"
	"mughal/internal/pagination"
	"mughal/internal/reports"
)

// Clock returns the current time. Services take one so tests can pin "now".
type Clock func() time.Time

// LineInput is one requested cart line. Price overrides the product's list
// price for the transaction type when set.
type LineInput struct {
	ProductID string
	Quantity  int
	Price     *decimal.Decimal
}

// SaleInput carries a point-of-sale checkout.
type SaleInput struct {
	Type     models.TransactionType
	Items    []LineInput
	Discount decimal.Decimal
	// PaidAmount defaults to the full total when nil.
	PaidAmount *decimal.Decimal
	// PartyID defaults to the walk-in customer when empty.
	PartyID string
}

// SalesServicer defines the contract for recording sales.
type SalesServicer interface {
	CreateSale(ctx context.Context, in SaleInput) (*models.Transaction, error)
}

// PurchaseInput carries a stock purchase from a supplier.
type PurchaseInput struct {
	Items []LineInput
	// PaidAmount defaults to zero when nil.
	PaidAmount *decimal.Decimal
	PartyID    string
}

// PurchaseServicer defines the contract for recording purchases.
type PurchaseServicer interface {
	CreatePurchase(ctx context.Context, in PurchaseInput) (*models.Transaction, error)
}

// ReturnLineInput is one product taken back from an invoice.
type ReturnLineInput struct {
	ProductID string
	Quantity  int
}

// ReturnInput carries a customer return. An empty Items list returns
// everything still returnable on the invoice.
type ReturnInput struct {
	InvoiceID string
	Items     []ReturnLineInput
}

// ReturnableLine is an invoice line with the quantity still open for return.
type ReturnableLine struct {
	models.TransactionItem
	Returned  int `json:"returned"`
	Remaining int `json:"remaining"`
}

// ReturnableInvoice is a sale invoice looked up for a return.
type ReturnableInvoice struct {
	Invoice models.Transaction `json:"invoice"`
	Lines   []ReturnableLine   `json:"lines"`
}

// ReturnServicer defines the contract for customer returns.
type ReturnServicer interface {
	FindReturnableInvoice(ctx context.Context, invoiceID string) (*ReturnableInvoice, error)
	CreateReturn(ctx context.Context, in ReturnInput) (*models.Transaction, error)
}

// TransactionFilter holds optional filter parameters for listing transactions.
type TransactionFilter struct {
	FromDate *time.Time
	ToDate   *time.Time
	Type     *models.TransactionType
	PartyID  string
}

// TransactionServicer defines the contract for reading the transaction history.
type TransactionServicer interface {
	List(ctx context.Context, filter TransactionFilter, page pagination.PageRequest) (*pagination.PageResponse[models.Transaction], error)
	Get(ctx context.Context, id string) (*models.Transaction, error)
	Invoice(ctx context.Context, id string) (*reports.Invoice, error)
}

// ExpenseInput carries a new operating expense. Date defaults to now.
type ExpenseInput struct {
	Category    models.ExpenseCategory
	Description string
	Amount      decimal.Decimal
	Date        *time.Time
}

// ExpenseServicer defines the contract for expense bookkeeping.
type ExpenseServicer interface {
	Create(ctx context.Context, in ExpenseInput) (*models.Expense, error)
	List(ctx context.Context, page pagination.PageRequest) (*pagination.PageResponse[models.Expense], error)
}

// ProductInput carries the editable fields of a product.
type ProductInput struct {
	SKU            string
	Name           string
	Category       string
	CostPrice      decimal.Decimal
	RetailPrice    decimal.Decimal
	WholesalePrice decimal.Decimal
	Stock          int
	MinStock       int
}

// InventoryServicer defines the contract for catalogue management.
type InventoryServicer interface {
	List(ctx context.Context, query string, lowStockOnly bool, page pagination.PageRequest) (*pagination.PageResponse[reports.ProductLine], error)
	Get(ctx context.Context, id string) (*models.Product, error)
	Create(ctx context.Context, in ProductInput) (*models.Product, error)
	Update(ctx context.Context, id string, in ProductInput) (*models.Product, error)
}

// PartyStatement is a party with its transaction history, most recent first.
type PartyStatement struct {
	Party        models.Party         `json:"party"`
	Transactions []models.Transaction `json:"transactions"`
}

// PartyServicer defines the contract for customers and suppliers.
type PartyServicer interface {
	List(ctx context.Context, partyType *models.PartyType) ([]models.Party, error)
	Get(ctx context.Context, id string) (*models.Party, error)
	Statement(ctx context.Context, id string) (*PartyStatement, error)
}

// ReportServicer defines the contract for dashboards and statements.
type ReportServicer interface {
	Dashboard(ctx context.Context) (*reports.Dashboard, error)
	ProfitAndLoss(ctx context.Context) (*reports.ProfitAndLoss, error)
	ProfitAndLossCSV(ctx context.Context) (data []byte, filename string, err error)
	SalesChart(ctx context.Context, days int) ([]reports.DailySales, error)
	Reconcile(ctx context.Context) ([]reports.BalanceCheck, error)
}

// SessionServicer defines the contract for staff sessions and the login log.
type SessionServicer interface {
	Login(ctx context.Context, username, password string) (*models.User, error)
	Logout(ctx context.Context) error
	Current(ctx context.Context) (*models.User, error)
	LoginLogs(ctx context.Context, page pagination.PageRequest) (*pagination.PageResponse[models.LoginEvent], error)
}

// Insight is the advisory text for the dashboard.
type Insight struct {
	Text        string    `json:"text"`
	GeneratedAt time.Time `json:"generatedAt"`
}

// InsightServicer defines the contract for advisory insights.
type InsightServicer interface {
	Insights(ctx context.Context) (*Insight, error)
}
