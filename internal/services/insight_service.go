package services

import (
	"context"

	"mughal/internal/advisor"
	"mughal/internal/store"
)

// insightService asks the advisor about the current snapshot.
type insightService struct {
	store   *store.Store
	advisor advisor.Advisor
	now     Clock
}

// NewInsightService creates a new InsightServicer.
func NewInsightService(s *store.Store, a advisor.Advisor, now Clock) InsightServicer {
	return &insightService{store: s, advisor: a, now: now}
}

// Insights never fails: advisor problems come back as the fallback text.
func (s *insightService) Insights(ctx context.Context) (*Insight, error) {
	return &Insight{Text: s.advisor.Insights(ctx, s.store.Snapshot()), GeneratedAt: s.now()}, nil
}
