package services

import (
	"context"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"mughal/internal/ids"
	"mughal/internal/ledger"
	"mughal/internal/models"
	"mughal/internal/testutil"
)

func TestCreateSale(t *testing.T) {
	ctx := context.Background()

	t.Run("fully_paid_retail_sale", func(t *testing.T) {
		s := testutil.NewTestStore(t)
		svc := NewSalesService(s, ledger.DefaultPolicy(), fixedClock)

		tx, err := svc.CreateSale(ctx, SaleInput{
			Type:  models.TransactionTypeSaleRetail,
			Items: []LineInput{{ProductID: "1", Quantity: 5}},
		})
		testutil.AssertNoError(t, err)

		if !strings.HasPrefix(tx.ID, ids.PrefixSale+"-") {
			t.Errorf("id = %s, want TX- prefix", tx.ID)
		}
		testutil.AssertDecimal(t, "total", tx.Total, 11250)
		testutil.AssertDecimal(t, "paid", tx.PaidAmount, 11250)
		testutil.AssertDecimal(t, "balance", tx.Balance, 0)
		if tx.PartyID != models.WalkInCustomerID {
			t.Errorf("party = %q, want walk-in", tx.PartyID)
		}
		if tx.DueDate != nil {
			t.Error("paid sale should have no due date")
		}

		p, _ := s.Snapshot().FindProduct("1")
		if p.Stock != 40 {
			t.Errorf("stock = %d, want 40", p.Stock)
		}
	})

	t.Run("wholesale_credit_sale", func(t *testing.T) {
		s := testutil.NewTestStore(t)
		svc := NewSalesService(s, ledger.DefaultPolicy(), fixedClock)

		tx, err := svc.CreateSale(ctx, SaleInput{
			Type:       models.TransactionTypeSaleWholesale,
			Items:      []LineInput{{ProductID: "2", Quantity: 10}},
			Discount:   dec(300),
			PaidAmount: decPtr(1000),
			PartyID:    "c2",
		})
		testutil.AssertNoError(t, err)

		// 10 x 480 wholesale - 300 discount
		testutil.AssertDecimal(t, "total", tx.Total, 4500)
		testutil.AssertDecimal(t, "balance", tx.Balance, 3500)
		if tx.DueDate == nil || !tx.DueDate.Equal(testutil.FixedNow.Add(ledger.CreditTerm)) {
			t.Errorf("due date = %v", tx.DueDate)
		}
		c2, _ := s.Snapshot().FindParty("c2")
		testutil.AssertDecimal(t, "c2 balance", c2.Balance, 48500)
	})

	t.Run("price_override", func(t *testing.T) {
		s := testutil.NewTestStore(t)
		svc := NewSalesService(s, ledger.DefaultPolicy(), fixedClock)

		tx, err := svc.CreateSale(ctx, SaleInput{
			Type:  models.TransactionTypeSaleRetail,
			Items: []LineInput{{ProductID: "3", Quantity: 2, Price: decPtr(800)}},
		})
		testutil.AssertNoError(t, err)
		testutil.AssertDecimal(t, "line total", tx.Items[0].Total, 1600)
	})

	t.Run("empty_cart", func(t *testing.T) {
		svc := NewSalesService(testutil.NewTestStore(t), ledger.DefaultPolicy(), fixedClock)
		_, err := svc.CreateSale(ctx, SaleInput{Type: models.TransactionTypeSaleRetail})
		testutil.AssertAppError(t, err, "EMPTY_CART")
	})

	t.Run("unknown_product", func(t *testing.T) {
		svc := NewSalesService(testutil.NewTestStore(t), ledger.DefaultPolicy(), fixedClock)
		_, err := svc.CreateSale(ctx, SaleInput{
			Type:  models.TransactionTypeSaleRetail,
			Items: []LineInput{{ProductID: "999", Quantity: 1}},
		})
		testutil.AssertAppError(t, err, "PRODUCT_NOT_FOUND")
	})

	t.Run("supplier_cannot_buy", func(t *testing.T) {
		svc := NewSalesService(testutil.NewTestStore(t), ledger.DefaultPolicy(), fixedClock)
		_, err := svc.CreateSale(ctx, SaleInput{
			Type:    models.TransactionTypeSaleRetail,
			Items:   []LineInput{{ProductID: "1", Quantity: 1}},
			PartyID: "s1",
		})
		testutil.AssertAppError(t, err, "INVALID_PARTY_TYPE")
	})

	t.Run("purchase_type_rejected", func(t *testing.T) {
		svc := NewSalesService(testutil.NewTestStore(t), ledger.DefaultPolicy(), fixedClock)
		_, err := svc.CreateSale(ctx, SaleInput{
			Type:  models.TransactionTypePurchase,
			Items: []LineInput{{ProductID: "1", Quantity: 1}},
		})
		testutil.AssertAppError(t, err, "INVALID_TRANSACTION_TYPE")
	})

	t.Run("negative_discount", func(t *testing.T) {
		svc := NewSalesService(testutil.NewTestStore(t), ledger.DefaultPolicy(), fixedClock)
		_, err := svc.CreateSale(ctx, SaleInput{
			Type:     models.TransactionTypeSaleRetail,
			Items:    []LineInput{{ProductID: "1", Quantity: 1}},
			Discount: dec(-1),
		})
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("zero_quantity", func(t *testing.T) {
		svc := NewSalesService(testutil.NewTestStore(t), ledger.DefaultPolicy(), fixedClock)
		_, err := svc.CreateSale(ctx, SaleInput{
			Type:  models.TransactionTypeSaleRetail,
			Items: []LineInput{{ProductID: "1", Quantity: 0}},
		})
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("oversell_allowed_by_default", func(t *testing.T) {
		s := testutil.NewTestStore(t)
		svc := NewSalesService(s, ledger.DefaultPolicy(), fixedClock)
		_, err := svc.CreateSale(ctx, SaleInput{
			Type:  models.TransactionTypeSaleRetail,
			Items: []LineInput{{ProductID: "5", Quantity: 10}},
		})
		testutil.AssertNoError(t, err)
		p, _ := s.Snapshot().FindProduct("5")
		if p.Stock != -2 {
			t.Errorf("stock = %d, want -2", p.Stock)
		}
	})

	t.Run("oversell_rejected_by_strict_policy", func(t *testing.T) {
		s := testutil.NewTestStore(t)
		svc := NewSalesService(s, ledger.Policy{AllowNegativeStock: false}, fixedClock)
		_, err := svc.CreateSale(ctx, SaleInput{
			Type:  models.TransactionTypeSaleRetail,
			Items: []LineInput{{ProductID: "5", Quantity: 5}, {ProductID: "5", Quantity: 4}},
		})
		testutil.AssertAppError(t, err, "INSUFFICIENT_STOCK")
		if n := len(s.Snapshot().Transactions); n != 0 {
			t.Errorf("rejected sale recorded %d transactions", n)
		}
	})

	t.Run("concurrent_sales_never_oversell_under_strict_policy", func(t *testing.T) {
		s := testutil.NewTestStore(t)
		svc := NewSalesService(s, ledger.Policy{AllowNegativeStock: false}, fixedClock)

		const workers = 20
		var wg sync.WaitGroup
		var accepted atomic.Int32
		for i := 0; i < workers; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, err := svc.CreateSale(ctx, SaleInput{
					Type:  models.TransactionTypeSaleRetail,
					Items: []LineInput{{ProductID: "5", Quantity: 1}},
				})
				if err == nil {
					accepted.Add(1)
				}
			}()
		}
		wg.Wait()

		// eight loaves of sourdough in stock
		if got := accepted.Load(); got != 8 {
			t.Errorf("accepted %d sales, want 8", got)
		}
		if p, _ := s.Snapshot().FindProduct("5"); p.Stock != 0 {
			t.Errorf("stock = %d, want 0", p.Stock)
		}
	})
}
