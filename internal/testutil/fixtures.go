package testutil

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"mughal/internal/ledger"
	"mughal/internal/models"
	"mughal/internal/store"
	"mughal/internal/store/kv"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// FixedNow is the reference time used by fixtures.
var FixedNow = time.Date(2026, 3, 14, 10, 30, 0, 0, time.UTC)

// NewTestStore returns a store over an in-memory backend, loaded with the
// seed catalogue.
func NewTestStore(t *testing.T) *store.Store {
	t.Helper()
	return loadStore(t, kv.NewMemoryStore())
}

// NewTestSQLStore returns a store persisted to an in-memory SQLite database.
func NewTestSQLStore(t *testing.T) *store.Store {
	t.Helper()
	db := SetupTestDB(t)
	t.Cleanup(func() { TeardownTestDB(t, db) })
	return loadStore(t, kv.NewGormStore(db))
}

func loadStore(t *testing.T, backend kv.Store) *store.Store {
	t.Helper()
	s := store.New(backend)
	if err := s.Load(context.Background()); err != nil {
		t.Fatalf("failed to load test store: %v", err)
	}
	return s
}

// TestUser returns a staff identity with the given role.
func TestUser(role models.Role) *models.User {
	n := nextID()
	return &models.User{ID: fmt.Sprintf("u-test-%d", n), Name: fmt.Sprintf("Test %s %d", role, n), Role: role}
}

// CreateTestSale records a retail credit sale of qty units of productID to
// partyID, paying paid, and returns it.
func CreateTestSale(t *testing.T, s *store.Store, partyID, productID string, qty int, paid int64) models.Transaction {
	t.Helper()

	p, ok := s.Snapshot().FindProduct(productID)
	if !ok {
		t.Fatalf("product %q not in test store", productID)
	}
	paidAmount := decimal.NewFromInt(paid)
	tx := ledger.NewSale(ledger.SaleParams{
		ID:         fmt.Sprintf("TX-test-%d", nextID()),
		Date:       FixedNow,
		Type:       models.TransactionTypeSaleRetail,
		Items:      []models.TransactionItem{ledger.NewItem(p, qty, p.RetailPrice)},
		PaidAmount: &paidAmount,
		PartyID:    partyID,
	})
	if err := s.ApplyTransaction(context.Background(), tx); err != nil {
		t.Fatalf("failed to create test sale: %v", err)
	}
	return tx
}

// CreateTestExpense records an expense of amount in category.
func CreateTestExpense(t *testing.T, s *store.Store, category models.ExpenseCategory, amount int64) models.Expense {
	t.Helper()

	e := models.Expense{
		ID:       fmt.Sprintf("EXP-test-%d", nextID()),
		Date:     FixedNow,
		Category: category,
		Amount:   decimal.NewFromInt(amount),
	}
	if err := s.ApplyExpense(context.Background(), e); err != nil {
		t.Fatalf("failed to create test expense: %v", err)
	}
	return e
}
