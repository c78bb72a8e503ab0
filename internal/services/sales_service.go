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

// salesService handles point-of-sale checkouts.
type salesService struct {
	store  *store.Store
	policy ledger.Policy
	now    Clock
	log    *zap.SugaredLogger
}

// NewSalesService creates a new SalesServicer.
func NewSalesService(s *store.Store, policy ledger.Policy, now Clock) SalesServicer {
	return &salesService{store: s, policy: policy, now: now, log: logger.Named("sales")}
}

// CreateSale prices the cart, derives totals and records the sale.
func (s *salesService) CreateSale(ctx context.Context, in SaleInput) (*models.Transaction, error) {
	if !in.Type.IsSale() {
		return nil, apperrors.ErrInvalidTransactionType
	}
	if in.Discount.IsNegative() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "discount cannot be negative")
	}
	if err := checkPaid(in.PaidAmount); err != nil {
		return nil, err
	}

	partyID := in.PartyID
	if partyID == "" {
		partyID = models.WalkInCustomerID
	}

	tx, err := s.store.ApplyTransactionFunc(ctx, func(snap models.Snapshot) (models.Transaction, error) {
		items, err := buildItems(snap, in.Type, in.Items)
		if err != nil {
			return models.Transaction{}, err
		}
		if _, err := requireParty(snap, partyID, models.PartyTypeCustomer); err != nil {
			return models.Transaction{}, err
		}

		tx := ledger.NewSale(ledger.SaleParams{
			ID:         ids.New(in.Type.IDPrefix()),
			Date:       s.now(),
			Type:       in.Type,
			Items:      items,
			Discount:   in.Discount,
			PaidAmount: in.PaidAmount,
			PartyID:    partyID,
		})
		if err := checkStock(s.policy, snap, tx); err != nil {
			return models.Transaction{}, err
		}
		return tx, nil
	})
	if err != nil {
		return nil, err
	}
	s.log.Infow("sale recorded", "id", tx.ID, "type", tx.Type, "total", tx.Total.String(), "party_id", tx.PartyID)
	return &tx, nil
}
