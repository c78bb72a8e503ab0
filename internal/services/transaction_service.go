package services

import (
	"context"

	apperrors "mughal/internal/errors"
	"mughal/internal/models"
	"mughal/internal/pagination"
	"mughal/internal/reports"
	"mughal/internal/store"
)

// transactionService reads the transaction history.
type transactionService struct {
	store        *store.Store
	businessName string
}

// NewTransactionService creates a new TransactionServicer. businessName
// heads printed invoices.
func NewTransactionService(s *store.Store, businessName string) TransactionServicer {
	return &transactionService{store: s, businessName: businessName}
}

func (f TransactionFilter) matches(tx models.Transaction) bool {
	if f.Type != nil && tx.Type != *f.Type {
		return false
	}
	if f.PartyID != "" && tx.PartyID != f.PartyID {
		return false
	}
	if f.FromDate != nil && tx.Date.Before(*f.FromDate) {
		return false
	}
	if f.ToDate != nil && tx.Date.After(*f.ToDate) {
		return false
	}
	return true
}

// List returns matching transactions, most recent first.
func (s *transactionService) List(_ context.Context, filter TransactionFilter, page pagination.PageRequest) (*pagination.PageResponse[models.Transaction], error) {
	if filter.FromDate != nil && filter.ToDate != nil && filter.FromDate.After(*filter.ToDate) {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "from_date must be before to_date")
	}
	var matched []models.Transaction
	for _, tx := range s.store.Snapshot().Transactions {
		if filter.matches(tx) {
			matched = append(matched, tx)
		}
	}
	resp := pagination.Slice(matched, page)
	return &resp, nil
}

// Get returns one transaction.
func (s *transactionService) Get(_ context.Context, id string) (*models.Transaction, error) {
	tx, ok := s.store.Snapshot().FindTransaction(id)
	if !ok {
		return nil, apperrors.ErrTransactionNotFound
	}
	return &tx, nil
}

// Invoice renders the printable invoice of a transaction.
func (s *transactionService) Invoice(_ context.Context, id string) (*reports.Invoice, error) {
	snap := s.store.Snapshot()
	tx, ok := snap.FindTransaction(id)
	if !ok {
		return nil, apperrors.ErrTransactionNotFound
	}
	inv := reports.BuildInvoice(snap, tx, s.businessName)
	return &inv, nil
}
