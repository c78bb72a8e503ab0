// Package store owns the current business snapshot. Every mutation goes
// through the Store, is applied to a copy, persisted as a whole document and
// only then becomes visible to readers.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"sync"

	govalidator "github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	apperrors "mughal/internal/errors"
	"mughal/internal/ledger"
	"mughal/internal/logger"
	"mughal/internal/models"
	"mughal/internal/store/kv"
	"mughal/internal/validator"
)

// Storage keys.
const (
	StateKey   = "mughal_erp_state"
	SessionKey = "mughal_erp_isLoggedIn"
)

// Store holds the single current snapshot.
type Store struct {
	mu       sync.RWMutex
	backend  kv.Store
	snap     models.Snapshot
	validate *govalidator.Validate
	log      *zap.SugaredLogger
}

// New returns a Store over backend holding a freshly seeded snapshot. Call
// Load to replace it with the persisted one.
func New(backend kv.Store) *Store {
	return &Store{
		backend:  backend,
		snap:     models.NewSeedSnapshot(),
		validate: validator.New(),
		log:      logger.Named("store"),
	}
}

// Load reads the persisted snapshot. A missing or unusable document is
// replaced by a seeded snapshot, which is persisted immediately. Only
// backend read/write failures are returned.
func (s *Store) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := s.backend.Get(ctx, StateKey)
	switch {
	case errors.Is(err, kv.ErrNotFound):
		s.log.Infow("no stored snapshot, seeding from fixtures")
		return s.replaceLocked(ctx, models.NewSeedSnapshot())
	case err != nil:
		return fmt.Errorf("loading snapshot: %w", err)
	}

	snap, repairs, err := Decode(data, s.validate)
	if err != nil {
		s.log.Warnw("discarding stored snapshot, seeding from fixtures", "error", err)
		return s.replaceLocked(ctx, models.NewSeedSnapshot())
	}
	for _, r := range repairs {
		s.log.Infow("repaired stored snapshot", "repair", r)
	}

	s.snap = snap
	s.log.Infow("snapshot loaded",
		"products", len(snap.Products),
		"parties", len(snap.Parties),
		"transactions", len(snap.Transactions),
		"expenses", len(snap.Expenses),
	)
	return nil
}

// Reset discards all history and reseeds from fixtures.
func (s *Store) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.replaceLocked(ctx, models.NewSeedSnapshot()); err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// Snapshot returns a deep copy of the current snapshot.
func (s *Store) Snapshot() models.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap.Clone()
}

// Export returns the current snapshot as the stored JSON document.
func (s *Store) Export() ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	data, err := json.Marshal(s.snap)
	if err != nil {
		return nil, fmt.Errorf("encoding snapshot: %w", err)
	}
	return data, nil
}

// ApplyTransaction records tx through the ledger engine.
func (s *Store) ApplyTransaction(ctx context.Context, tx models.Transaction) error {
	_, err := s.ApplyTransactionFunc(ctx, func(models.Snapshot) (models.Transaction, error) {
		return tx, nil
	})
	return err
}

// ApplyTransactionFunc builds a transaction from the current snapshot and
// records it under the same write lock, so checks made by build still hold
// when the transaction is applied. build must not modify cur. An error from
// build leaves the store untouched and is returned as is.
func (s *Store) ApplyTransactionFunc(ctx context.Context, build func(cur models.Snapshot) (models.Transaction, error)) (models.Transaction, error) {
	var tx models.Transaction
	err := s.withWrite(ctx, func(cur models.Snapshot) (models.Snapshot, error) {
		var err error
		if tx, err = build(cur); err != nil {
			return cur, err
		}
		return ledger.Apply(cur, tx), nil
	})
	if err != nil {
		return models.Transaction{}, err
	}
	return tx, nil
}

// ApplyExpense prepends e to the expense history.
func (s *Store) ApplyExpense(ctx context.Context, e models.Expense) error {
	return s.withWrite(ctx, func(cur models.Snapshot) (models.Snapshot, error) {
		return ledger.ApplyExpense(cur, e), nil
	})
}

// UpdateProduct replaces the product with the same id. It bypasses the
// ledger: no transaction is recorded and no balance moves.
func (s *Store) UpdateProduct(ctx context.Context, p models.Product) error {
	return s.withWrite(ctx, func(cur models.Snapshot) (models.Snapshot, error) {
		idx := -1
		for i := range cur.Products {
			if cur.Products[i].ID == p.ID {
				idx = i
			} else if cur.Products[i].SKU == p.SKU {
				return cur, apperrors.ErrDuplicateSKU
			}
		}
		if idx < 0 {
			return cur, apperrors.ErrProductNotFound
		}
		next := cur
		next.Products = append([]models.Product(nil), cur.Products...)
		next.Products[idx] = p
		return next, nil
	})
}

// AddProduct appends a new product to the catalogue.
func (s *Store) AddProduct(ctx context.Context, p models.Product) error {
	return s.withWrite(ctx, func(cur models.Snapshot) (models.Snapshot, error) {
		for _, existing := range cur.Products {
			if existing.SKU == p.SKU {
				return cur, apperrors.ErrDuplicateSKU
			}
			if existing.ID == p.ID {
				return cur, apperrors.WithMessage(apperrors.ErrInvalidInput, "product id already in use")
			}
		}
		next := cur
		next.Products = append(append(make([]models.Product, 0, len(cur.Products)+1), cur.Products...), p)
		return next, nil
	})
}

// RecordLogin appends ev to the capped session log.
func (s *Store) RecordLogin(ctx context.Context, ev models.LoginEvent) error {
	return s.withWrite(ctx, func(cur models.Snapshot) (models.Snapshot, error) {
		return ledger.AppendLogin(cur, ev), nil
	})
}

// SetSession sets the active user (nil to log out) and persists the
// session-active flag alongside the snapshot. The flag is written first; if
// the snapshot then fails to persist the previous flag is restored.
func (s *Store) SetSession(ctx context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.putSessionFlag(ctx, user != nil); err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	next := s.snap
	next.CurrentUser = nil
	if user != nil {
		u := *user
		next.CurrentUser = &u
	}
	if err := s.replaceLocked(ctx, next); err != nil {
		s.log.Errorw("failed to persist session", "error", err)
		if restoreErr := s.putSessionFlag(ctx, s.snap.CurrentUser != nil); restoreErr != nil {
			s.log.Errorw("failed to restore session flag", "error", restoreErr)
		}
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

func (s *Store) putSessionFlag(ctx context.Context, active bool) error {
	if err := s.backend.Put(ctx, SessionKey, []byte(strconv.FormatBool(active))); err != nil {
		return fmt.Errorf("persisting session flag: %w", err)
	}
	return nil
}

// SessionActive reports the persisted session-active flag. A missing flag
// means no session.
func (s *Store) SessionActive(ctx context.Context) (bool, error) {
	data, err := s.backend.Get(ctx, SessionKey)
	if errors.Is(err, kv.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("reading session flag: %w", err)
	}
	return string(data) == "true", nil
}

// withWrite applies fn to the current snapshot under the write lock and
// persists the result. The in-memory snapshot only changes when persisting
// succeeds.
func (s *Store) withWrite(ctx context.Context, fn func(models.Snapshot) (models.Snapshot, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	next, err := fn(s.snap)
	if err != nil {
		return err
	}
	if err := s.replaceLocked(ctx, next); err != nil {
		s.log.Errorw("failed to persist snapshot", "error", err)
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

func (s *Store) replaceLocked(ctx context.Context, next models.Snapshot) error {
	data, err := json.Marshal(next)
	if err != nil {
		return fmt.Errorf("encoding snapshot: %w", err)
	}
	if err := s.backend.Put(ctx, StateKey, data); err != nil {
		return fmt.Errorf("persisting snapshot: %w", err)
	}
	s.snap = next
	return nil
}
