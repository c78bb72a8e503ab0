package services

import (
	"context"

	apperrors "mughal/internal/errors"
	"mughal/internal/ids"
	"mughal/internal/logger"
	"mughal/internal/models"
	"mughal/internal/pagination"
	"mughal/internal/store"
)

// expenseService handles operating expenses.
type expenseService struct {
	store *store.Store
	now   Clock
}

// NewExpenseService creates a new ExpenseServicer.
func NewExpenseService(s *store.Store, now Clock) ExpenseServicer {
	return &expenseService{store: s, now: now}
}

// Create records an expense. The amount must be positive and the category
// one of the fixed set.
func (s *expenseService) Create(ctx context.Context, in ExpenseInput) (*models.Expense, error) {
	if !in.Amount.IsPositive() {
		return nil, apperrors.ErrInvalidExpenseAmount
	}
	if !in.Category.Valid() {
		return nil, apperrors.ErrInvalidExpenseCategory
	}

	date := s.now()
	if in.Date != nil {
		date = *in.Date
	}
	e := models.Expense{
		ID:          ids.New(ids.PrefixExpense),
		Date:        date,
		Category:    in.Category,
		Description: in.Description,
		Amount:      in.Amount,
	}
	if err := s.store.ApplyExpense(ctx, e); err != nil {
		return nil, err
	}
	logger.Get().Infow("expense recorded", "id", e.ID, "category", e.Category, "amount", e.Amount.String())
	return &e, nil
}

// List returns expenses, most recent first.
func (s *expenseService) List(_ context.Context, page pagination.PageRequest) (*pagination.PageResponse[models.Expense], error) {
	resp := pagination.Slice(s.store.Snapshot().Expenses, page)
	return &resp, nil
}
