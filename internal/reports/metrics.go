// Package reports computes read-only views over a snapshot: dashboard
// figures, profit and loss, statements and printable documents. Every
// function is a pure projection and treats an empty snapshot as all zeros.
package reports

import (
	"time"

	"github.com/shopspring/decimal"

	"mughal/internal/models"
)

// Currency is the display currency of all amounts.
const Currency = "PKR"

// sameDay reports whether t falls on the calendar day of ref, in ref's location.
func sameDay(t, ref time.Time) bool {
	ty, tm, td := t.In(ref.Location()).Date()
	ry, rm, rd := ref.Date()
	return ty == ry && tm == rm && td == rd
}

// TodayRevenue sums sale totals dated on the calendar day of now.
func TodayRevenue(snap models.Snapshot, now time.Time) decimal.Decimal {
	sum := decimal.Zero
	for _, tx := range snap.Transactions {
		if tx.IsSale() && sameDay(tx.Date, now) {
			sum = sum.Add(tx.Total)
		}
	}
	return sum
}

// Receivables sums the positive balances of customers.
func Receivables(snap models.Snapshot) decimal.Decimal {
	sum := decimal.Zero
	for _, p := range snap.Parties {
		if p.IsCustomer() && p.Balance.IsPositive() {
			sum = sum.Add(p.Balance)
		}
	}
	return sum
}

// Payables sums what the business owes suppliers, as a positive amount.
func Payables(snap models.Snapshot) decimal.Decimal {
	sum := decimal.Zero
	for _, p := range snap.Parties {
		if p.IsSupplier() && p.Balance.IsNegative() {
			sum = sum.Add(p.Balance.Neg())
		}
	}
	return sum
}

// NetCash is cash received on sales minus cash paid for expenses and
// purchases. Returns are excluded from both sides.
func NetCash(snap models.Snapshot) decimal.Decimal {
	in, out := decimal.Zero, TotalExpenses(snap)
	for _, tx := range snap.Transactions {
		switch tx.Type {
		case models.TransactionTypePurchase:
			out = out.Add(tx.PaidAmount)
		case models.TransactionTypeReturn:
		default:
			in = in.Add(tx.PaidAmount)
		}
	}
	return in.Sub(out)
}

// Valuation is the value of stock on hand.
type Valuation struct {
	Cost   decimal.Decimal `json:"cost"`
	Retail decimal.Decimal `json:"retail"`
}

// InventoryValuation values stock at cost and at retail price.
func InventoryValuation(snap models.Snapshot) Valuation {
	v := Valuation{Cost: decimal.Zero, Retail: decimal.Zero}
	for _, p := range snap.Products {
		qty := decimal.NewFromInt(int64(p.Stock))
		v.Cost = v.Cost.Add(p.CostPrice.Mul(qty))
		v.Retail = v.Retail.Add(p.RetailPrice.Mul(qty))
	}
	return v
}

// SalesRevenue sums the totals of all sales.
func SalesRevenue(snap models.Snapshot) decimal.Decimal {
	sum := decimal.Zero
	for _, tx := range snap.Transactions {
		if tx.IsSale() {
			sum = sum.Add(tx.Total)
		}
	}
	return sum
}

// COGS is the cost of goods sold, priced at each product's current cost.
// Lines whose product no longer exists cost nothing.
func COGS(snap models.Snapshot) decimal.Decimal {
	cost := make(map[string]decimal.Decimal, len(snap.Products))
	for _, p := range snap.Products {
		cost[p.ID] = p.CostPrice
	}
	sum := decimal.Zero
	for _, tx := range snap.Transactions {
		if !tx.IsSale() {
			continue
		}
		for _, item := range tx.Items {
			if c, ok := cost[item.ProductID]; ok {
				sum = sum.Add(c.Mul(decimal.NewFromInt(int64(item.Quantity))))
			}
		}
	}
	return sum
}

// GrossProfit is sales revenue minus COGS.
func GrossProfit(snap models.Snapshot) decimal.Decimal {
	return SalesRevenue(snap).Sub(COGS(snap))
}

// TotalExpenses sums all expense amounts.
func TotalExpenses(snap models.Snapshot) decimal.Decimal {
	sum := decimal.Zero
	for _, e := range snap.Expenses {
		sum = sum.Add(e.Amount)
	}
	return sum
}

// NetProfit is gross profit minus expenses.
func NetProfit(snap models.Snapshot) decimal.Decimal {
	return GrossProfit(snap).Sub(TotalExpenses(snap))
}

// PartyStatement returns the party's transactions in store order
// (most recent first).
func PartyStatement(snap models.Snapshot, partyID string) []models.Transaction {
	out := []models.Transaction{}
	for _, tx := range snap.Transactions {
		if tx.PartyID == partyID {
			out = append(out, tx)
		}
	}
	return out
}

// LowStock returns products at or below their reorder threshold.
func LowStock(snap models.Snapshot) []models.Product {
	out := []models.Product{}
	for _, p := range snap.Products {
		if p.IsLowStock() {
			out = append(out, p)
		}
	}
	return out
}

// DailySales is the sales total of one calendar day.
type DailySales struct {
	Date  string          `json:"date"`
	Label string          `json:"label"`
	Sales decimal.Decimal `json:"sales"`
}

// SalesChart returns sale totals for the last days calendar days ending on
// now's day, oldest first.
func SalesChart(snap models.Snapshot, now time.Time, days int) []DailySales {
	if days <= 0 {
		days = 7
	}
	out := make([]DailySales, days)
	for i := range out {
		day := now.AddDate(0, 0, -(days - 1 - i))
		out[i] = DailySales{Date: day.Format("2006-01-02"), Label: day.Format("01/02"), Sales: decimal.Zero}
		for _, tx := range snap.Transactions {
			if tx.IsSale() && sameDay(tx.Date, day) {
				out[i].Sales = out[i].Sales.Add(tx.Total)
			}
		}
	}
	return out
}

// CategoryTotal is the expense total of one category.
type CategoryTotal struct {
	Category models.ExpenseCategory `json:"category"`
	Amount   decimal.Decimal        `json:"amount"`
}

// ExpensesByCategory totals expenses per category in display order,
// skipping categories with no expenses.
func ExpensesByCategory(snap models.Snapshot) []CategoryTotal {
	totals := make(map[models.ExpenseCategory]decimal.Decimal)
	for _, e := range snap.Expenses {
		totals[e.Category] = totals[e.Category].Add(e.Amount)
	}
	out := []CategoryTotal{}
	for _, c := range models.ExpenseCategories {
		if amount, ok := totals[c]; ok {
			out = append(out, CategoryTotal{Category: c, Amount: amount})
		}
	}
	return out
}

// ProductLine is one row of the inventory report.
type ProductLine struct {
	models.Product
	Margin     decimal.Decimal `json:"margin"`
	StockValue decimal.Decimal `json:"stockValue"`
	LowStock   bool            `json:"lowStock"`
}

// InventoryReport returns per-product margin and stock value at cost.
func InventoryReport(snap models.Snapshot) []ProductLine {
	out := make([]ProductLine, 0, len(snap.Products))
	for _, p := range snap.Products {
		out = append(out, ProductLine{
			Product:    p,
			Margin:     p.Margin().Round(2),
			StockValue: p.CostPrice.Mul(decimal.NewFromInt(int64(p.Stock))),
			LowStock:   p.IsLowStock(),
		})
	}
	return out
}
