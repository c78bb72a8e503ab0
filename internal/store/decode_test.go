package store

import (
	"fmt"
	"strings"
	"testing"

	"mughal/internal/validator"
)

const legacyDocument = `{
  "currentUser": {"id": "u1", "name": "System Admin", "role": "ADMIN"},
  "products": [
    {"id": "1", "sku": "SKU001", "name": "Premium Coffee Beans (1kg)", "category": "Grocery",
     "costPrice": 1500, "retailPrice": 2250, "wholesalePrice": 1800, "stock": 40, "minStock": 10}
  ],
  "parties": [
    {"id": "c1", "name": "Walk-in Customer", "phone": "", "type": "CUSTOMER", "subType": "RETAIL", "balance": 0}
  ],
  "transactions": [
    {"id": "TX-1718000000000", "date": "2024-06-10T06:13:20.000Z", "type": "SALE_RETAIL",
     "items": [{"productId": "1", "name": "Premium Coffee Beans (1kg)", "quantity": 5, "price": 2250, "total": 11250}],
     "subTotal": 11250, "discount": 0, "total": 11250, "paidAmount": 11250, "balance": 0, "partyId": "c1"}
  ],
  "expenses": [
    {"id": "EXP-1718000000001", "date": "2024-06-10T07:00:00.000Z", "category": "Rent", "description": "", "amount": 30000}
  ],
  "loginLogs": [
    {"id": "LOG-1718000000002", "userName": "System Admin", "role": "ADMIN", "timestamp": "2024-06-10T05:00:00.000Z", "status": "SUCCESS"}
  ]
}`

func TestDecode(t *testing.T) {
	v := validator.New()

	t.Run("accepts_stored_document", func(t *testing.T) {
		snap, repairs, err := Decode([]byte(legacyDocument), v)
		if err != nil {
			t.Fatalf("Decode: %v", err)
		}
		if len(repairs) != 0 {
			t.Errorf("unexpected repairs: %v", repairs)
		}
		if snap.CurrentUser == nil || snap.CurrentUser.Name != "System Admin" {
			t.Errorf("current user = %+v", snap.CurrentUser)
		}
		if len(snap.Transactions) != 1 || snap.Transactions[0].Items[0].Quantity != 5 {
			t.Errorf("transactions = %+v", snap.Transactions)
		}
	})

	t.Run("clears_logged_out_user_placeholder", func(t *testing.T) {
		doc := strings.Replace(legacyDocument,
			`{"id": "u1", "name": "System Admin", "role": "ADMIN"}`,
			`{"id": "", "name": "", "role": "ADMIN"}`, 1)

		snap, repairs, err := Decode([]byte(doc), v)
		if err != nil {
			t.Fatalf("Decode: %v", err)
		}
		if snap.CurrentUser != nil {
			t.Errorf("current user = %+v, want nil", snap.CurrentUser)
		}
		if len(snap.Transactions) != 1 || len(snap.Expenses) != 1 {
			t.Error("history should survive a logged-out document")
		}
		if len(repairs) != 1 || repairs[0] != "empty current user cleared" {
			t.Errorf("repairs = %v", repairs)
		}
	})

	t.Run("rejects_unknown_fields", func(t *testing.T) {
		doc := strings.Replace(legacyDocument, `"minStock": 10`, `"minStock": 10, "supplier": "x"`, 1)
		if _, _, err := Decode([]byte(doc), v); err == nil {
			t.Error("expected unknown field to be rejected")
		}
	})

	t.Run("rejects_unknown_transaction_type", func(t *testing.T) {
		doc := strings.Replace(legacyDocument, `"type": "SALE_RETAIL"`, `"type": "GIFT"`, 1)
		if _, _, err := Decode([]byte(doc), v); err == nil {
			t.Error("expected invalid type to be rejected")
		}
	})

	t.Run("rejects_duplicate_product_ids", func(t *testing.T) {
		doc := `{"products":[{"id":"1","sku":"A","name":"A"},{"id":"1","sku":"B","name":"B"}]}`
		if _, _, err := Decode([]byte(doc), v); err == nil {
			t.Error("expected duplicate ids to be rejected")
		}
	})

	t.Run("repairs_missing_collections", func(t *testing.T) {
		snap, repairs, err := Decode([]byte(`{"products":[]}`), v)
		if err != nil {
			t.Fatalf("Decode: %v", err)
		}
		if snap.Parties == nil || snap.Transactions == nil || snap.Expenses == nil || snap.LoginLogs == nil {
			t.Errorf("collections left nil: %+v", snap)
		}
		if len(repairs) != 4 {
			t.Errorf("repairs = %v, want 4 entries", repairs)
		}
	})

	t.Run("repairs_missing_line_total", func(t *testing.T) {
		doc := strings.Replace(legacyDocument, `"price": 2250, "total": 11250`, `"price": 2250`, 1)
		snap, repairs, err := Decode([]byte(doc), v)
		if err != nil {
			t.Fatalf("Decode: %v", err)
		}
		if got := snap.Transactions[0].Items[0].Total.String(); got != "11250" {
			t.Errorf("line total = %s, want 11250", got)
		}
		if len(repairs) != 1 {
			t.Errorf("repairs = %v", repairs)
		}
	})

	t.Run("trims_oversized_login_log", func(t *testing.T) {
		var entries []string
		for i := 0; i < 60; i++ {
			entries = append(entries, fmt.Sprintf(`{"id":"LOG-%d","userName":"a","role":"ADMIN","timestamp":"2024-06-10T05:00:00Z","status":"SUCCESS"}`, i))
		}
		doc := `{"loginLogs":[` + strings.Join(entries, ",") + `]}`
		snap, _, err := Decode([]byte(doc), v)
		if err != nil {
			t.Fatalf("Decode: %v", err)
		}
		if len(snap.LoginLogs) != 50 || snap.LoginLogs[0].ID != "LOG-0" {
			t.Errorf("log not trimmed to newest 50: len=%d first=%s", len(snap.LoginLogs), snap.LoginLogs[0].ID)
		}
	})
}
