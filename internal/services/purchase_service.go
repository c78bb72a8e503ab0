package services

import (
	"context"

	"go.uber.org/zap"

	apperrors "mughal/internal/errors"
	"mughal/internal/ids"
	"mughal/internal/ledger"
	"mughal/internal/logger"
	"mughal/internal/models"
	"mughal/internal/store"
)

// purchaseService handles stock purchases from suppliers.
type purchaseService struct {
	store *store.Store
	now   Clock
	log   *zap.SugaredLogger
}

// NewPurchaseService creates a new PurchaseServicer.
func NewPurchaseService(s *store.Store, now Clock) PurchaseServicer {
	return &purchaseService{store: s, now: now, log: logger.Named("purchases")}
}

// CreatePurchase prices the lines at cost unless overridden and records the
// purchase against the supplier.
func (s *purchaseService) CreatePurchase(ctx context.Context, in PurchaseInput) (*models.Transaction, error) {
	if in.PartyID == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "supplier is required")
	}
	if err := checkPaid(in.PaidAmount); err != nil {
		return nil, err
	}

	tx, err := s.store.ApplyTransactionFunc(ctx, func(snap models.Snapshot) (models.Transaction, error) {
		items, err := buildItems(snap, models.TransactionTypePurchase, in.Items)
		if err != nil {
			return models.Transaction{}, err
		}
		if _, err := requireParty(snap, in.PartyID, models.PartyTypeSupplier); err != nil {
			return models.Transaction{}, err
		}
		return ledger.NewPurchase(ledger.PurchaseParams{
			ID:         ids.New(models.TransactionTypePurchase.IDPrefix()),
			Date:       s.now(),
			Items:      items,
			PaidAmount: in.PaidAmount,
			PartyID:    in.PartyID,
		}), nil
	})
	if err != nil {
		return nil, err
	}
	s.log.Infow("purchase recorded", "id", tx.ID, "total", tx.Total.String(), "party_id", tx.PartyID)
	return &tx, nil
}
