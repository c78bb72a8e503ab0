package reports

import (
	"time"

	"github.com/shopspring/decimal"

	"mughal/internal/ledger"
	"mughal/internal/models"
)

// Dashboard is the operational overview.
type Dashboard struct {
	TodayRevenue     decimal.Decimal  `json:"todayRevenue"`
	Receivables      decimal.Decimal  `json:"receivables"`
	Payables         decimal.Decimal  `json:"payables"`
	NetCash          decimal.Decimal  `json:"netCash"`
	Inventory        Valuation        `json:"inventory"`
	LowStock         []models.Product `json:"lowStock"`
	SalesChart       []DailySales     `json:"salesChart"`
	ProductCount     int              `json:"productCount"`
	TransactionCount int              `json:"transactionCount"`
}

// BuildDashboard assembles the overview for the calendar day of now.
func BuildDashboard(snap models.Snapshot, now time.Time) Dashboard {
	return Dashboard{
		TodayRevenue:     TodayRevenue(snap, now),
		Receivables:      Receivables(snap),
		Payables:         Payables(snap),
		NetCash:          NetCash(snap),
		Inventory:        InventoryValuation(snap),
		LowStock:         LowStock(snap),
		SalesChart:       SalesChart(snap, now, 7),
		ProductCount:     len(snap.Products),
		TransactionCount: len(snap.Transactions),
	}
}

// ProfitAndLoss is the profit and loss statement.
type ProfitAndLoss struct {
	SalesRevenue  decimal.Decimal  `json:"salesRevenue"`
	COGS          decimal.Decimal  `json:"cogs"`
	GrossProfit   decimal.Decimal  `json:"grossProfit"`
	Expenses      []models.Expense `json:"expenses"`
	ByCategory    []CategoryTotal  `json:"byCategory"`
	TotalExpenses decimal.Decimal  `json:"totalExpenses"`
	NetProfit     decimal.Decimal  `json:"netProfit"`
	Inventory     Valuation        `json:"inventory"`
}

// BuildProfitAndLoss computes the statement over the full history.
func BuildProfitAndLoss(snap models.Snapshot) ProfitAndLoss {
	expenses := snap.Expenses
	if expenses == nil {
		expenses = []models.Expense{}
	}
	return ProfitAndLoss{
		SalesRevenue:  SalesRevenue(snap),
		COGS:          COGS(snap),
		GrossProfit:   GrossProfit(snap),
		Expenses:      expenses,
		ByCategory:    ExpensesByCategory(snap),
		TotalExpenses: TotalExpenses(snap),
		NetProfit:     NetProfit(snap),
		Inventory:     InventoryValuation(snap),
	}
}

// BalanceCheck compares a party's stored balance with a replay of its history.
type BalanceCheck struct {
	PartyID  string          `json:"partyId"`
	Name     string          `json:"name"`
	Stored   decimal.Decimal `json:"stored"`
	Replayed decimal.Decimal `json:"replayed"`
	Drift    decimal.Decimal `json:"drift"`
}

// Reconcile replays every transaction on top of the opening balances and
// reports, per party, how far the stored running balance has drifted.
func Reconcile(snap models.Snapshot, opening []models.Party) []BalanceCheck {
	replayed := ledger.ReplayBalances(opening, snap.Transactions)
	out := make([]BalanceCheck, 0, len(snap.Parties))
	for _, p := range snap.Parties {
		r := replayed[p.ID]
		out = append(out, BalanceCheck{
			PartyID:  p.ID,
			Name:     p.Name,
			Stored:   p.Balance,
			Replayed: r,
			Drift:    p.Balance.Sub(r),
		})
	}
	return out
}
