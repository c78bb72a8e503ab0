package services

import (
	"context"

	"go.uber.org/zap"

	"mughal/internal/auth"
	apperrors "mughal/internal/errors"
	"mughal/internal/ids"
	"mughal/internal/logger"
	"mughal/internal/models"
	"mughal/internal/pagination"
	"mughal/internal/store"
)

// sessionService handles staff logins and the login log.
type sessionService struct {
	store *store.Store
	auth  auth.Authenticator
	now   Clock
	log   *zap.SugaredLogger
}

// NewSessionService creates a new SessionServicer.
func NewSessionService(s *store.Store, authenticator auth.Authenticator, now Clock) SessionServicer {
	return &sessionService{store: s, auth: authenticator, now: now, log: logger.Named("session")}
}

// record appends a login event. Errors are logged but never propagate to
// avoid disrupting the login itself.
func (s *sessionService) record(ctx context.Context, userName string, role models.Role, status models.LoginStatus) {
	ev := models.LoginEvent{
		ID:        ids.New(ids.PrefixLogin),
		UserName:  userName,
		Role:      role,
		Timestamp: s.now(),
		Status:    status,
	}
	if err := s.store.RecordLogin(ctx, ev); err != nil {
		s.log.Errorw("failed to record login event",
			"error", err,
			"user_name", userName,
			"status", status,
		)
	}
}

// Login authenticates the staff member and opens the session.
func (s *sessionService) Login(ctx context.Context, username, password string) (*models.User, error) {
	user, err := s.auth.Authenticate(ctx, username, password)
	if err != nil {
		s.record(ctx, username, "", models.LoginStatusFailed)
		s.log.Warnw("login failed", "user_name", username)
		return nil, err
	}

	if err := s.store.SetSession(ctx, user); err != nil {
		return nil, err
	}
	s.record(ctx, user.Name, user.Role, models.LoginStatusSuccess)
	s.log.Infow("login", "user_id", user.ID, "role", user.Role)
	return user, nil
}

// Logout closes the session.
func (s *sessionService) Logout(ctx context.Context) error {
	return s.store.SetSession(ctx, nil)
}

// Current returns the signed-in staff member.
func (s *sessionService) Current(_ context.Context) (*models.User, error) {
	u := s.store.Snapshot().CurrentUser
	if u == nil {
		return nil, apperrors.ErrUnauthorized
	}
	return u, nil
}

// LoginLogs returns the login log, most recent first.
func (s *sessionService) LoginLogs(_ context.Context, page pagination.PageRequest) (*pagination.PageResponse[models.LoginEvent], error) {
	resp := pagination.Slice(s.store.Snapshot().LoginLogs, page)
	return &resp, nil
}
