package services

import (
	"fmt"

	"github.com/shopspring/decimal"

	apperrors "mughal/internal/errors"
	"mughal/internal/ledger"
	"mughal/internal/models"
)

// buildItems resolves cart lines against the catalogue, pricing each line
// for transaction type t unless the line carries its own price.
func buildItems(snap models.Snapshot, t models.TransactionType, lines []LineInput) ([]models.TransactionItem, error) {
	if len(lines) == 0 {
		return nil, apperrors.ErrEmptyCart
	}
	items := make([]models.TransactionItem, 0, len(lines))
	for _, line := range lines {
		if line.Quantity <= 0 {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "quantity must be positive")
		}
		product, ok := snap.FindProduct(line.ProductID)
		if !ok {
			return nil, apperrors.WithMessage(apperrors.ErrProductNotFound, fmt.Sprintf("Product %q not found", line.ProductID))
		}
		price := product.PriceFor(t)
		if line.Price != nil {
			if line.Price.IsNegative() {
				return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "price cannot be negative")
			}
			price = *line.Price
		}
		items = append(items, ledger.NewItem(product, line.Quantity, price))
	}
	return items, nil
}

// requireParty returns the party with id and checks it has type want.
func requireParty(snap models.Snapshot, id string, want models.PartyType) (models.Party, error) {
	party, ok := snap.FindParty(id)
	if !ok {
		return models.Party{}, apperrors.ErrPartyNotFound
	}
	if party.Type != want {
		return models.Party{}, apperrors.WithMessage(apperrors.ErrInvalidPartyType,
			fmt.Sprintf("%s is not a %s", party.Name, want))
	}
	return party, nil
}

func checkPaid(paid *decimal.Decimal) error {
	if paid != nil && paid.IsNegative() {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "paid amount cannot be negative")
	}
	return nil
}

// checkStock applies the stock policy to tx.
func checkStock(policy ledger.Policy, snap models.Snapshot, tx models.Transaction) error {
	shortfalls := policy.CheckStock(snap, tx)
	if len(shortfalls) == 0 {
		return nil
	}
	s := shortfalls[0]
	return apperrors.WithMessage(apperrors.ErrInsufficientStock,
		fmt.Sprintf("Insufficient stock for %s: requested %d, available %d", s.Name, s.Requested, s.Available))
}
