package services

import (
	"context"
	"testing"

	"mughal/internal/models"
	"mughal/internal/testutil"
)

func TestPartyService(t *testing.T) {
	ctx := context.Background()
	s := testutil.NewTestStore(t)
	sale := testutil.CreateTestSale(t, s, "c2", "1", 1, 0)
	testutil.CreateTestSale(t, s, models.WalkInCustomerID, "1", 1, 2250)
	svc := NewPartyService(s)

	t.Run("list_all", func(t *testing.T) {
		parties, err := svc.List(ctx, nil)
		testutil.AssertNoError(t, err)
		if len(parties) != 3 {
			t.Errorf("got %d parties", len(parties))
		}
	})

	t.Run("list_suppliers", func(t *testing.T) {
		supplier := models.PartyTypeSupplier
		parties, err := svc.List(ctx, &supplier)
		testutil.AssertNoError(t, err)
		if len(parties) != 1 || parties[0].ID != "s1" {
			t.Errorf("suppliers = %+v", parties)
		}
	})

	t.Run("get", func(t *testing.T) {
		p, err := svc.Get(ctx, "c2")
		testutil.AssertNoError(t, err)
		testutil.AssertDecimal(t, "balance", p.Balance, 47250)

		_, err = svc.Get(ctx, "x")
		testutil.AssertAppError(t, err, "PARTY_NOT_FOUND")
	})

	t.Run("statement", func(t *testing.T) {
		st, err := svc.Statement(ctx, "c2")
		testutil.AssertNoError(t, err)
		if len(st.Transactions) != 1 || st.Transactions[0].ID != sale.ID {
			t.Errorf("statement = %+v", st.Transactions)
		}

		st, err = svc.Statement(ctx, "s1")
		testutil.AssertNoError(t, err)
		if st.Transactions == nil || len(st.Transactions) != 0 {
			t.Errorf("supplier statement = %+v", st.Transactions)
		}

		_, err = svc.Statement(ctx, "x")
		testutil.AssertAppError(t, err, "PARTY_NOT_FOUND")
	})
}
