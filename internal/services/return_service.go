package services

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	apperrors "mughal/internal/errors"
	"mughal/internal/ids"
	"mughal/internal/ledger"
	"mughal/internal/logger"
	"mughal/internal/models"
	"mughal/internal/store"
)

// returnService handles customer returns against sale invoices.
type returnService struct {
	store *store.Store
	now   Clock
	log   *zap.SugaredLogger
}

// NewReturnService creates a new ReturnServicer.
func NewReturnService(s *store.Store, now Clock) ReturnServicer {
	return &returnService{store: s, now: now, log: logger.Named("returns")}
}

// returnable lists the invoice's products in first-seen order with the
// quantity sold, already returned and still open.
func returnable(snap models.Snapshot, invoiceID string) (models.Transaction, []ReturnableLine, error) {
	invoice, ok := snap.FindTransaction(invoiceID)
	if !ok || !invoice.IsSale() {
		return models.Transaction{}, nil, apperrors.ErrInvoiceNotFound
	}

	returned := ledger.ReturnedQuantities(snap.Transactions, invoiceID)
	var lines []ReturnableLine
	index := make(map[string]int)
	for _, item := range invoice.Items {
		if i, seen := index[item.ProductID]; seen {
			lines[i].Quantity += item.Quantity
			lines[i].Total = lines[i].Total.Add(item.Total)
			continue
		}
		index[item.ProductID] = len(lines)
		lines = append(lines, ReturnableLine{TransactionItem: item})
	}
	for i := range lines {
		lines[i].Returned = returned[lines[i].ProductID]
		lines[i].Remaining = lines[i].Quantity - lines[i].Returned
		if lines[i].Remaining < 0 {
			lines[i].Remaining = 0
		}
	}
	return invoice, lines, nil
}

// FindReturnableInvoice looks up a sale invoice for a return.
func (s *returnService) FindReturnableInvoice(_ context.Context, invoiceID string) (*ReturnableInvoice, error) {
	invoice, lines, err := returnable(s.store.Snapshot(), invoiceID)
	if err != nil {
		return nil, err
	}
	return &ReturnableInvoice{Invoice: invoice, Lines: lines}, nil
}

// CreateReturn takes goods back at their invoiced unit price and refunds
// them in full. The remaining quantities are checked against the snapshot the
// return is applied to.
func (s *returnService) CreateReturn(ctx context.Context, in ReturnInput) (*models.Transaction, error) {
	tx, err := s.store.ApplyTransactionFunc(ctx, func(snap models.Snapshot) (models.Transaction, error) {
		invoice, lines, err := returnable(snap, in.InvoiceID)
		if err != nil {
			return models.Transaction{}, err
		}
		items, err := returnItems(invoice, lines, in.Items)
		if err != nil {
			return models.Transaction{}, err
		}
		return ledger.NewReturn(ledger.ReturnParams{
			ID:      ids.New(models.TransactionTypeReturn.IDPrefix()),
			Date:    s.now(),
			Invoice: invoice,
			Items:   items,
		}), nil
	})
	if err != nil {
		return nil, err
	}
	s.log.Infow("return recorded", "id", tx.ID, "invoice_id", in.InvoiceID, "total", tx.Total.String())
	return &tx, nil
}

// returnItems prices the requested lines at the invoice price. No requests
// means everything still open on the invoice.
func returnItems(invoice models.Transaction, lines []ReturnableLine, requests []ReturnLineInput) ([]models.TransactionItem, error) {
	if len(requests) == 0 {
		for _, l := range lines {
			if l.Remaining > 0 {
				requests = append(requests, ReturnLineInput{ProductID: l.ProductID, Quantity: l.Remaining})
			}
		}
		if len(requests) == 0 {
			return nil, apperrors.WithMessage(apperrors.ErrReturnExceedsSale, "Everything on this invoice has already been returned")
		}
	}

	byProduct := make(map[string]ReturnableLine, len(lines))
	for _, l := range lines {
		byProduct[l.ProductID] = l
	}
	requested := make(map[string]int)
	items := make([]models.TransactionItem, 0, len(requests))
	for _, r := range requests {
		if r.Quantity <= 0 {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "quantity must be positive")
		}
		line, ok := byProduct[r.ProductID]
		if !ok {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput,
				fmt.Sprintf("Product %q is not on invoice %s", r.ProductID, invoice.ID))
		}
		requested[r.ProductID] += r.Quantity
		if requested[r.ProductID] > line.Remaining {
			return nil, apperrors.WithMessage(apperrors.ErrReturnExceedsSale,
				fmt.Sprintf("Only %d of %s can still be returned", line.Remaining, line.Name))
		}
		items = append(items, models.TransactionItem{
			ProductID: line.ProductID,
			Name:      line.Name,
			Quantity:  r.Quantity,
			Price:     line.Price,
			Total:     line.Price.Mul(decimal.NewFromInt(int64(r.Quantity))),
		})
	}
	return items, nil
}
