package reports

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"mughal/internal/ledger"
	"mughal/internal/models"
)

var testNow = time.Date(2026, 3, 14, 10, 30, 0, 0, time.UTC)

func d(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func dp(v int64) *decimal.Decimal {
	x := d(v)
	return &x
}

func line(t *testing.T, snap models.Snapshot, productID string, qty int, tt models.TransactionType) models.TransactionItem {
	t.Helper()
	p, ok := snap.FindProduct(productID)
	if !ok {
		t.Fatalf("product %q not in fixture", productID)
	}
	return ledger.NewItem(p, qty, p.PriceFor(tt))
}

// fixture records a retail sale today, a wholesale credit sale yesterday, a
// part-paid purchase, a return against the retail sale and two expenses.
func fixture(t *testing.T) models.Snapshot {
	t.Helper()
	snap := models.NewSeedSnapshot()

	retail := ledger.NewSale(ledger.SaleParams{
		ID: "TX-1", Date: testNow, Type: models.TransactionTypeSaleRetail,
		Items:   []models.TransactionItem{line(t, snap, "1", 2, models.TransactionTypeSaleRetail)},
		PartyID: models.WalkInCustomerID,
	})
	snap = ledger.Apply(snap, retail)

	snap = ledger.Apply(snap, ledger.NewSale(ledger.SaleParams{
		ID: "TX-2", Date: testNow.AddDate(0, 0, -1), Type: models.TransactionTypeSaleWholesale,
		Items:      []models.TransactionItem{line(t, snap, "2", 10, models.TransactionTypeSaleWholesale)},
		PaidAmount: dp(800),
		PartyID:    "c2",
	}))

	snap = ledger.Apply(snap, ledger.NewPurchase(ledger.PurchaseParams{
		ID: "PUR-1", Date: testNow,
		Items:      []models.TransactionItem{line(t, snap, "5", 20, models.TransactionTypePurchase)},
		PaidAmount: dp(1000),
		PartyID:    "s1",
	}))

	coffee, _ := snap.FindProduct("1")
	snap = ledger.Apply(snap, ledger.NewReturn(ledger.ReturnParams{
		ID: "RET-1", Date: testNow, Invoice: retail,
		Items: []models.TransactionItem{ledger.NewItem(coffee, 1, retail.Items[0].Price)},
	}))

	snap = ledger.ApplyExpense(snap, models.Expense{ID: "EXP-1", Date: testNow, Category: models.ExpenseCategoryRent, Amount: d(30000)})
	snap = ledger.ApplyExpense(snap, models.Expense{ID: "EXP-2", Date: testNow, Category: models.ExpenseCategoryElectricity,
		Description: "June bill", Amount: d(5000)})
	return snap
}

func assertDecimal(t *testing.T, name string, got, want decimal.Decimal) {
	t.Helper()
	if !got.Equal(want) {
		t.Errorf("%s = %s, want %s", name, got, want)
	}
}

func TestMetrics(t *testing.T) {
	snap := fixture(t)

	t.Run("revenue_and_profit", func(t *testing.T) {
		assertDecimal(t, "TodayRevenue", TodayRevenue(snap, testNow), d(4500))
		assertDecimal(t, "SalesRevenue", SalesRevenue(snap), d(9300))
		assertDecimal(t, "COGS", COGS(snap), d(6500))
		assertDecimal(t, "GrossProfit", GrossProfit(snap), d(2800))
		assertDecimal(t, "TotalExpenses", TotalExpenses(snap), d(35000))
		assertDecimal(t, "NetProfit", NetProfit(snap), d(-32200))
	})

	t.Run("party_positions", func(t *testing.T) {
		assertDecimal(t, "Receivables", Receivables(snap), d(49000))
		assertDecimal(t, "Payables", Payables(snap), d(123000))
	})

	t.Run("net_cash_excludes_returns", func(t *testing.T) {
		// in: 4500 + 800; out: 35000 expenses + 1000 paid on the purchase
		assertDecimal(t, "NetCash", NetCash(snap), d(-30700))
	})

	t.Run("inventory_valuation", func(t *testing.T) {
		v := InventoryValuation(snap)
		assertDecimal(t, "cost", v.Cost, d(164850))
		// 44*2250 + 110*550 + 15*850 + 60*1450 + 28*450
		assertDecimal(t, "retail", v.Retail, d(99000+60500+12750+87000+12600))
	})

	t.Run("empty_snapshot_is_zero", func(t *testing.T) {
		empty := models.Snapshot{}
		assertDecimal(t, "SalesRevenue", SalesRevenue(empty), decimal.Zero)
		assertDecimal(t, "NetProfit", NetProfit(empty), decimal.Zero)
		assertDecimal(t, "NetCash", NetCash(empty), decimal.Zero)
		if got := LowStock(empty); got == nil || len(got) != 0 {
			t.Errorf("LowStock(empty) = %v, want empty slice", got)
		}
	})

	t.Run("today_uses_reference_location", func(t *testing.T) {
		karachi := time.FixedZone("PKT", 5*60*60)
		// 21:00 UTC on the 13th is already the 14th in Karachi.
		late := models.Transaction{ID: "TX-9", Type: models.TransactionTypeSaleRetail,
			Date: time.Date(2026, 3, 13, 21, 0, 0, 0, time.UTC), Total: d(100)}
		s := models.Snapshot{Transactions: []models.Transaction{late}}
		assertDecimal(t, "karachi", TodayRevenue(s, testNow.In(karachi)), d(100))
		assertDecimal(t, "utc", TodayRevenue(s, testNow), decimal.Zero)
	})
}

func TestLowStock(t *testing.T) {
	snap := models.NewSeedSnapshot()
	snap.Products[2].Stock = 5 // at threshold
	snap.Products[4].Stock = -3

	got := LowStock(snap)
	if len(got) != 2 || got[0].ID != "3" || got[1].ID != "5" {
		t.Errorf("LowStock = %+v, want products 3 and 5", got)
	}
}

func TestPartyStatement(t *testing.T) {
	snap := fixture(t)

	got := PartyStatement(snap, models.WalkInCustomerID)
	if len(got) != 2 || got[0].ID != "RET-1" || got[1].ID != "TX-1" {
		t.Errorf("statement = %+v, want RET-1 then TX-1", got)
	}
	if got := PartyStatement(snap, "unknown"); len(got) != 0 {
		t.Errorf("unknown party statement = %+v", got)
	}
}

func TestSalesChart(t *testing.T) {
	chart := SalesChart(fixture(t), testNow, 7)
	if len(chart) != 7 {
		t.Fatalf("len = %d, want 7", len(chart))
	}
	if chart[6].Date != "2026-03-14" || chart[0].Date != "2026-03-08" {
		t.Errorf("range = %s..%s", chart[0].Date, chart[6].Date)
	}
	if chart[6].Label != "03/14" {
		t.Errorf("label = %s", chart[6].Label)
	}
	assertDecimal(t, "today", chart[6].Sales, d(4500))
	assertDecimal(t, "yesterday", chart[5].Sales, d(4800))
	assertDecimal(t, "first", chart[0].Sales, decimal.Zero)
}

func TestExpensesByCategory(t *testing.T) {
	got := ExpensesByCategory(fixture(t))
	if len(got) != 2 {
		t.Fatalf("got %d categories, want 2", len(got))
	}
	if got[0].Category != models.ExpenseCategoryRent || got[1].Category != models.ExpenseCategoryElectricity {
		t.Errorf("order = %s, %s", got[0].Category, got[1].Category)
	}
	assertDecimal(t, "rent", got[0].Amount, d(30000))
}

func TestInventoryReport(t *testing.T) {
	lines := InventoryReport(models.NewSeedSnapshot())
	if len(lines) != 5 {
		t.Fatalf("len = %d", len(lines))
	}
	// (2250-1500)/2250
	assertDecimal(t, "margin", lines[0].Margin, decimal.RequireFromString("33.33"))
	assertDecimal(t, "stock value", lines[0].StockValue, d(45*1500))
}

func TestBuildDashboard(t *testing.T) {
	dash := BuildDashboard(fixture(t), testNow)
	assertDecimal(t, "TodayRevenue", dash.TodayRevenue, d(4500))
	if dash.ProductCount != 5 || dash.TransactionCount != 4 {
		t.Errorf("counts = %d products %d transactions", dash.ProductCount, dash.TransactionCount)
	}
	if len(dash.SalesChart) != 7 {
		t.Errorf("chart has %d days", len(dash.SalesChart))
	}
}

func TestReconcile(t *testing.T) {
	t.Run("applied_history_has_no_drift", func(t *testing.T) {
		snap := models.NewSeedSnapshot()
		snap = ledger.Apply(snap, ledger.NewSale(ledger.SaleParams{
			ID: "TX-1", Date: testNow, Type: models.TransactionTypeSaleWholesale,
			Items:      []models.TransactionItem{line(t, snap, "1", 3, models.TransactionTypeSaleWholesale)},
			PaidAmount: dp(0), PartyID: "c2",
		}))
		for _, check := range Reconcile(snap, models.SeedParties()) {
			if !check.Drift.IsZero() {
				t.Errorf("%s drift = %s", check.PartyID, check.Drift)
			}
		}
	})

	t.Run("reports_edited_balance", func(t *testing.T) {
		snap := models.NewSeedSnapshot()
		snap.Parties[1].Balance = d(46000)
		checks := Reconcile(snap, models.SeedParties())
		assertDecimal(t, "c2 drift", checks[1].Drift, d(1000))
		assertDecimal(t, "c2 replayed", checks[1].Replayed, d(45000))
	})
}

func TestWriteProfitAndLossCSV(t *testing.T) {
	pl := BuildProfitAndLoss(fixture(t))

	var buf bytes.Buffer
	if err := WriteProfitAndLossCSV(&buf, pl, "Mughal Enterprise", testNow); err != nil {
		t.Fatalf("WriteProfitAndLossCSV: %v", err)
	}

	want := []string{
		"Mughal Enterprise - Profit & Loss Statement",
		"Report Generated: 2026-03-14 10:30:00,",
		"Description,Category,Amount (PKR)",
		"REVENUE,,",
		"Net Sales Revenue,Income,9300.00",
		"Cost of Goods Sold (COGS),Expense,-6500.00",
		"GROSS PROFIT,Subtotal,2800.00",
		",,",
		"OPERATIONAL EXPENSES,,",
		"June bill,Electricity,-5000.00",
		"Rent,Rent,-30000.00",
		"TOTAL EXPENSES,Total,-35000.00",
		",,",
		"NET PROFIT / LOSS,Final,-32200.00",
	}
	got := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(got) != len(want) {
		t.Fatalf("got %d lines, want %d:\n%s", len(got), len(want), buf.String())
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i+1, got[i], want[i])
		}
	}
}

func TestProfitAndLossFilename(t *testing.T) {
	if got := ProfitAndLossFilename("Mughal Enterprise", testNow); got != "Mughal_Enterprise_PNL_Statement_2026-03-14.csv" {
		t.Errorf("filename = %s", got)
	}
	if got := ProfitAndLossFilename("  ", testNow); got != "Store_PNL_Statement_2026-03-14.csv" {
		t.Errorf("blank name filename = %s", got)
	}
}

func TestBuildInvoice(t *testing.T) {
	snap := fixture(t)

	t.Run("credit_sale_to_known_party", func(t *testing.T) {
		tx, _ := snap.FindTransaction("TX-2")
		inv := BuildInvoice(snap, tx, "Mughal Enterprise")
		if inv.BilledTo != "City Cafe Ltd" || inv.Phone != "555-0199" {
			t.Errorf("billed to = %s / %s", inv.BilledTo, inv.Phone)
		}
		if inv.Status != StatusCredit {
			t.Errorf("status = %s, want %s", inv.Status, StatusCredit)
		}
		if inv.Title != "Official Store Invoice" || inv.Reference != "TX-2" {
			t.Errorf("header = %s / %s", inv.Title, inv.Reference)
		}
		assertDecimal(t, "balance", inv.Balance, d(4000))
		if inv.DueDate == nil {
			t.Error("credit invoice should carry a due date")
		}
	})

	t.Run("party_without_phone", func(t *testing.T) {
		tx, _ := snap.FindTransaction("TX-1")
		inv := BuildInvoice(snap, tx, "Mughal Enterprise")
		if inv.BilledTo != "Walk-in Customer" || inv.Phone != "N/A" {
			t.Errorf("billed to = %s / %s", inv.BilledTo, inv.Phone)
		}
		if inv.Status != StatusPaid {
			t.Errorf("status = %s", inv.Status)
		}
	})

	t.Run("unknown_party_falls_back", func(t *testing.T) {
		tx := models.Transaction{ID: "TX-X", Type: models.TransactionTypeSaleRetail, PartyID: "gone"}
		inv := BuildInvoice(snap, tx, "Mughal Enterprise")
		if inv.BilledTo != "Walk-in Customer" || inv.Phone != "N/A" {
			t.Errorf("billed to = %s / %s", inv.BilledTo, inv.Phone)
		}
	})

	t.Run("purchase_title", func(t *testing.T) {
		tx, _ := snap.FindTransaction("PUR-1")
		if inv := BuildInvoice(snap, tx, "Mughal Enterprise"); inv.Title != "Purchase Voucher" {
			t.Errorf("title = %s", inv.Title)
		}
	})
}
