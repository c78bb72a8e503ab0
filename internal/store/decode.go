package store

import (
	"bytes"
	"encoding/json"
	"fmt"

	govalidator "github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"mughal/internal/models"
)

// Decode parses a stored snapshot document. Unknown fields and documents that
// fail validation are rejected. Recoverable gaps are repaired and described in
// the returned list: absent collections become empty, line totals missing
// from old documents are recomputed, a logged-out placeholder user is cleared
// and the session log is trimmed to its cap.
func Decode(data []byte, v *govalidator.Validate) (models.Snapshot, []string, error) {
	var snap models.Snapshot

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&snap); err != nil {
		return models.Snapshot{}, nil, fmt.Errorf("decoding snapshot: %w", err)
	}
	if dec.More() {
		return models.Snapshot{}, nil, fmt.Errorf("decoding snapshot: trailing data after document")
	}

	repairs := repair(&snap)

	if err := v.Struct(snap); err != nil {
		return models.Snapshot{}, nil, fmt.Errorf("validating snapshot: %w", err)
	}
	if err := checkIdentity(snap); err != nil {
		return models.Snapshot{}, nil, err
	}
	return snap, repairs, nil
}

func repair(snap *models.Snapshot) []string {
	var repairs []string

	if snap.CurrentUser != nil && snap.CurrentUser.ID == "" {
		snap.CurrentUser = nil
		repairs = append(repairs, "empty current user cleared")
	}
	if snap.Products == nil {
		snap.Products = []models.Product{}
		repairs = append(repairs, "products missing")
	}
	if snap.Parties == nil {
		snap.Parties = []models.Party{}
		repairs = append(repairs, "parties missing")
	}
	if snap.Transactions == nil {
		snap.Transactions = []models.Transaction{}
		repairs = append(repairs, "transactions missing")
	}
	if snap.Expenses == nil {
		snap.Expenses = []models.Expense{}
		repairs = append(repairs, "expenses missing")
	}
	if snap.LoginLogs == nil {
		snap.LoginLogs = []models.LoginEvent{}
		repairs = append(repairs, "login logs missing")
	}
	if len(snap.LoginLogs) > models.MaxLoginEvents {
		repairs = append(repairs, fmt.Sprintf("login log trimmed from %d entries", len(snap.LoginLogs)))
		snap.LoginLogs = snap.LoginLogs[:models.MaxLoginEvents]
	}

	for i := range snap.Transactions {
		tx := &snap.Transactions[i]
		for j := range tx.Items {
			item := &tx.Items[j]
			want := item.Price.Mul(decimal.NewFromInt(int64(item.Quantity)))
			if item.Total.IsZero() && !want.IsZero() {
				item.Total = want
				repairs = append(repairs, fmt.Sprintf("line total recomputed for %s/%s", tx.ID, item.ProductID))
			}
		}
	}
	return repairs
}

func checkIdentity(snap models.Snapshot) error {
	products := make(map[string]bool, len(snap.Products))
	for _, p := range snap.Products {
		if products[p.ID] {
			return fmt.Errorf("validating snapshot: duplicate product id %q", p.ID)
		}
		products[p.ID] = true
	}
	parties := make(map[string]bool, len(snap.Parties))
	for _, p := range snap.Parties {
		if parties[p.ID] {
			return fmt.Errorf("validating snapshot: duplicate party id %q", p.ID)
		}
		parties[p.ID] = true
	}
	return nil
}
