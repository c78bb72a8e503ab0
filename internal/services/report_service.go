package services

import (
	"bytes"
	"context"
	"time"

	apperrors "mughal/internal/errors"
	"mughal/internal/models"
	"mughal/internal/reports"
	"mughal/internal/store"
)

// MaxChartDays bounds the sales chart window.
const MaxChartDays = 90

// reportService computes dashboards and statements from the current snapshot.
type reportService struct {
	store        *store.Store
	businessName string
	loc          *time.Location
	now          Clock
}

// NewReportService creates a new ReportServicer. Calendar days are taken in loc.
func NewReportService(s *store.Store, businessName string, loc *time.Location, now Clock) ReportServicer {
	if loc == nil {
		loc = time.UTC
	}
	return &reportService{store: s, businessName: businessName, loc: loc, now: now}
}

func (s *reportService) today() time.Time {
	return s.now().In(s.loc)
}

// Dashboard returns the operational overview for today.
func (s *reportService) Dashboard(_ context.Context) (*reports.Dashboard, error) {
	d := reports.BuildDashboard(s.store.Snapshot(), s.today())
	return &d, nil
}

// ProfitAndLoss returns the statement over the full history.
func (s *reportService) ProfitAndLoss(_ context.Context) (*reports.ProfitAndLoss, error) {
	pl := reports.BuildProfitAndLoss(s.store.Snapshot())
	return &pl, nil
}

// ProfitAndLossCSV renders the statement as CSV along with its download name.
func (s *reportService) ProfitAndLossCSV(_ context.Context) ([]byte, string, error) {
	now := s.today()
	var buf bytes.Buffer
	if err := reports.WriteProfitAndLossCSV(&buf, reports.BuildProfitAndLoss(s.store.Snapshot()), s.businessName, now); err != nil {
		return nil, "", apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return buf.Bytes(), reports.ProfitAndLossFilename(s.businessName, now), nil
}

// SalesChart returns daily sale totals for the last days days.
func (s *reportService) SalesChart(_ context.Context, days int) ([]reports.DailySales, error) {
	if days < 1 || days > MaxChartDays {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "days must be between 1 and 90")
	}
	return reports.SalesChart(s.store.Snapshot(), s.today(), days), nil
}

// Reconcile replays the history on top of the opening balances of the seed
// parties and reports any drift in the stored balances.
func (s *reportService) Reconcile(_ context.Context) ([]reports.BalanceCheck, error) {
	return reports.Reconcile(s.store.Snapshot(), models.SeedParties()), nil
}
