package testutil_test

import (
	"context"
	"testing"

	"mughal/internal/errors"
	"mughal/internal/models"
	"mughal/internal/testutil"
)

func TestSetupTestDB(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	var count int64
	if err := db.Table("kv_entries").Count(&count).Error; err != nil {
		t.Errorf("table kv_entries should exist after migration: %v", err)
	}
}

func TestFixtures(t *testing.T) {
	s := testutil.NewTestSQLStore(t)

	tx := testutil.CreateTestSale(t, s, "c2", "1", 2, 500)
	if !tx.Balance.Equal(tx.Total.Sub(tx.PaidAmount)) {
		t.Errorf("balance = %s", tx.Balance)
	}
	c2, _ := s.Snapshot().FindParty("c2")
	testutil.AssertDecimal(t, "c2 balance", c2.Balance, 45000+4500-500)

	testutil.CreateTestExpense(t, s, models.ExpenseCategoryRent, 1000)
	if n := len(s.Snapshot().Expenses); n != 1 {
		t.Errorf("expected 1 expense, got %d", n)
	}

	u := testutil.TestUser(models.RoleSalesman)
	if u.ID == "" || u.Role != models.RoleSalesman {
		t.Errorf("user = %+v", u)
	}
}

func TestNewTestSQLStore_Persists(t *testing.T) {
	s := testutil.NewTestSQLStore(t)
	testutil.CreateTestSale(t, s, models.WalkInCustomerID, "5", 1, 450)

	if err := s.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if n := len(s.Snapshot().Transactions); n != 1 {
		t.Errorf("reloaded %d transactions, want 1", n)
	}
	if _, ok := s.Snapshot().FindTransaction("missing"); ok {
		t.Error("unexpected transaction")
	}
}

func TestAssertAppError(t *testing.T) {
	testutil.AssertAppError(t, errors.ErrNotFound, "NOT_FOUND")
	testutil.AssertAppError(t, errors.Wrap(errors.ErrInternalServer, nil), "INTERNAL_ERROR")
	testutil.AssertNoError(t, nil)
}
