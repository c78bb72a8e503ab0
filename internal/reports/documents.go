package reports

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"mughal/internal/models"
)

func amount(d decimal.Decimal) string { return d.StringFixed(2) }

func deduction(d decimal.Decimal) string { return "-" + d.StringFixed(2) }

// WriteProfitAndLossCSV writes the statement as CSV: a title block, a
// REVENUE section ending in GROSS PROFIT, one OPERATIONAL EXPENSES line per
// expense, TOTAL EXPENSES and the final NET PROFIT / LOSS row.
func WriteProfitAndLossCSV(w io.Writer, pl ProfitAndLoss, businessName string, generatedAt time.Time) error {
	rows := [][]string{
		{businessName + " - Profit & Loss Statement"},
		{"Report Generated: " + generatedAt.Format("2006-01-02 15:04:05"), ""},
		{"Description", "Category", "Amount (" + Currency + ")"},
		{"REVENUE", "", ""},
		{"Net Sales Revenue", "Income", amount(pl.SalesRevenue)},
		{"Cost of Goods Sold (COGS)", "Expense", deduction(pl.COGS)},
		{"GROSS PROFIT", "Subtotal", amount(pl.GrossProfit)},
		{"", "", ""},
		{"OPERATIONAL EXPENSES", "", ""},
	}
	for _, e := range pl.Expenses {
		rows = append(rows, []string{e.Label(), string(e.Category), deduction(e.Amount)})
	}
	rows = append(rows,
		[]string{"TOTAL EXPENSES", "Total", deduction(pl.TotalExpenses)},
		[]string{"", "", ""},
		[]string{"NET PROFIT / LOSS", "Final", amount(pl.NetProfit)},
	)

	cw := csv.NewWriter(w)
	if err := cw.WriteAll(rows); err != nil {
		return fmt.Errorf("writing profit and loss csv: %w", err)
	}
	return nil
}

// ProfitAndLossFilename is the download name for a statement generated at t.
func ProfitAndLossFilename(businessName string, t time.Time) string {
	prefix := strings.Join(strings.Fields(businessName), "_")
	if prefix == "" {
		prefix = "Store"
	}
	return fmt.Sprintf("%s_PNL_Statement_%s.csv", prefix, t.Format("2006-01-02"))
}

// Invoice is the printable view of one transaction.
type Invoice struct {
	BusinessName string                   `json:"businessName"`
	Title        string                   `json:"title"`
	Reference    string                   `json:"reference"`
	Date         time.Time                `json:"date"`
	Type         models.TransactionType   `json:"type"`
	BilledTo     string                   `json:"billedTo"`
	Phone        string                   `json:"phone"`
	Status       string                   `json:"status"`
	Items        []models.TransactionItem `json:"items"`
	SubTotal     decimal.Decimal          `json:"subTotal"`
	Discount     decimal.Decimal          `json:"discount"`
	Total        decimal.Decimal          `json:"total"`
	PaidAmount   decimal.Decimal          `json:"paidAmount"`
	Balance      decimal.Decimal          `json:"balance"`
	DueDate      *time.Time               `json:"dueDate,omitempty"`
	Notes        string                   `json:"notes,omitempty"`
	Currency     string                   `json:"currency"`
}

// Invoice statuses.
const (
	StatusPaid   = "Paid"
	StatusCredit = "Unpaid/Credit"
)

func invoiceTitle(t models.TransactionType) string {
	switch t {
	case models.TransactionTypePurchase:
		return "Purchase Voucher"
	case models.TransactionTypeReturn:
		return "Return Receipt"
	default:
		return "Official Store Invoice"
	}
}

// BuildInvoice renders tx against the parties in snap. Transactions without
// a known party are billed to the walk-in customer.
func BuildInvoice(snap models.Snapshot, tx models.Transaction, businessName string) Invoice {
	inv := Invoice{
		BusinessName: businessName,
		Title:        invoiceTitle(tx.Type),
		Reference:    tx.ID,
		Date:         tx.Date,
		Type:         tx.Type,
		BilledTo:     "Walk-in Customer",
		Phone:        "N/A",
		Status:       StatusPaid,
		Items:        tx.Items,
		SubTotal:     tx.SubTotal,
		Discount:     tx.Discount,
		Total:        tx.Total,
		PaidAmount:   tx.PaidAmount,
		Balance:      tx.Balance,
		DueDate:      tx.DueDate,
		Notes:        tx.Notes,
		Currency:     Currency,
	}
	if party, ok := snap.FindParty(tx.PartyID); ok {
		inv.BilledTo = party.Name
		if party.Phone != "" {
			inv.Phone = party.Phone
		}
	}
	if !tx.Balance.IsZero() {
		inv.Status = StatusCredit
	}
	return inv
}
