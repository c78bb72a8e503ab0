package services

import (
	"context"

	apperrors "mughal/internal/errors"
	"mughal/internal/models"
	"mughal/internal/reports"
	"mughal/internal/store"
)

// partyService reads customers and suppliers.
type partyService struct {
	store *store.Store
}

// NewPartyService creates a new PartyServicer.
func NewPartyService(s *store.Store) PartyServicer {
	return &partyService{store: s}
}

// List returns parties, optionally only those of one type.
func (s *partyService) List(_ context.Context, partyType *models.PartyType) ([]models.Party, error) {
	out := []models.Party{}
	for _, p := range s.store.Snapshot().Parties {
		if partyType == nil || p.Type == *partyType {
			out = append(out, p)
		}
	}
	return out, nil
}

// Get returns one party.
func (s *partyService) Get(_ context.Context, id string) (*models.Party, error) {
	p, ok := s.store.Snapshot().FindParty(id)
	if !ok {
		return nil, apperrors.ErrPartyNotFound
	}
	return &p, nil
}

// Statement returns the party with its transaction history.
func (s *partyService) Statement(_ context.Context, id string) (*PartyStatement, error) {
	snap := s.store.Snapshot()
	p, ok := snap.FindParty(id)
	if !ok {
		return nil, apperrors.ErrPartyNotFound
	}
	return &PartyStatement{Party: p, Transactions: reports.PartyStatement(snap, id)}, nil
}
