package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"mughal/internal/config"
	"mughal/internal/models"
)

type mockSessions struct {
	sessionActiveFn func(ctx context.Context) (bool, error)
}

func (m *mockSessions) SessionActive(ctx context.Context) (bool, error) {
	return m.sessionActiveFn(ctx)
}

func activeSessions(active bool) *mockSessions {
	return &mockSessions{sessionActiveFn: func(context.Context) (bool, error) { return active, nil }}
}

var cashier = &models.User{ID: "u2", Name: "Front Desk Cashier", Role: models.RoleCashier}

func setupAuthRouter(sessions SessionChecker, roles ...models.Role) *gin.Engine {
	r := gin.New()
	r.Use(ErrorHandler())
	r.GET("/test", AuthMiddleware(sessions), RequireRole(roles...), func(c *gin.Context) {
		u := c.MustGet(UserKey).(*models.User)
		c.JSON(http.StatusOK, gin.H{"id": u.ID, "role": u.Role})
	})
	return r
}

func doAuthRequest(r *gin.Engine, header string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/test", http.NoBody)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func mustToken(t *testing.T, u *models.User) string {
	t.Helper()
	token, err := GenerateToken(u)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	return token
}

func TestGenerateToken_RoundTrip(t *testing.T) {
	claims, err := ParseToken(mustToken(t, cashier))
	if err != nil {
		t.Fatalf("ParseToken: %v", err)
	}
	if claims.UserID != "u2" || claims.Name != "Front Desk Cashier" || claims.Role != models.RoleCashier {
		t.Errorf("claims = %+v", claims)
	}
	if claims.Subject != "u2" {
		t.Errorf("subject = %q", claims.Subject)
	}
}

func TestParseToken_Rejects(t *testing.T) {
	t.Run("wrong_key", func(t *testing.T) {
		claims := &JWTClaims{UserID: "u1", Role: models.RoleAdmin}
		token, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("not-the-key"))
		if _, err := ParseToken(token); err == nil {
			t.Error("expected error")
		}
	})

	t.Run("expired", func(t *testing.T) {
		claims := &JWTClaims{UserID: "u1", Role: models.RoleAdmin, RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		}}
		token, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(config.Get().JWTSecret))
		if _, err := ParseToken(token); err == nil {
			t.Error("expected error")
		}
	})

	t.Run("unknown_role", func(t *testing.T) {
		claims := &JWTClaims{UserID: "u1", Role: "OWNER"}
		token, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(config.Get().JWTSecret))
		if _, err := ParseToken(token); err == nil {
			t.Error("expected error")
		}
	})
}

func TestAuthMiddleware(t *testing.T) {
	valid := "Bearer " + mustToken(t, cashier)

	tests := []struct {
		name       string
		sessions   SessionChecker
		roles      []models.Role
		header     string
		wantStatus int
	}{
		{"valid_token", nil, AllRoles, valid, http.StatusOK},
		{"missing_header", nil, AllRoles, "", http.StatusUnauthorized},
		{"wrong_scheme", nil, AllRoles, "Token abc", http.StatusUnauthorized},
		{"garbage_token", nil, AllRoles, "Bearer abc.def.ghi", http.StatusUnauthorized},
		{"active_session", activeSessions(true), CounterRoles, valid, http.StatusOK},
		{"ended_session", activeSessions(false), AllRoles, valid, http.StatusUnauthorized},
		{"role_not_allowed", nil, AdminOnly, valid, http.StatusForbidden},
		{"stock_area_denied_to_cashier", nil, StockRoles, valid, http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doAuthRequest(setupAuthRouter(tt.sessions, tt.roles...), tt.header)
			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d (%s)", rec.Code, tt.wantStatus, rec.Body.String())
			}
		})
	}

	t.Run("session_lookup_failure", func(t *testing.T) {
		sessions := &mockSessions{sessionActiveFn: func(context.Context) (bool, error) {
			return false, errors.New("backend down")
		}}
		rec := doAuthRequest(setupAuthRouter(sessions, AllRoles...), valid)
		if rec.Code != http.StatusInternalServerError {
			t.Errorf("status = %d, want 500", rec.Code)
		}
	})
}

func TestRequireRole_WithoutAuth(t *testing.T) {
	r := gin.New()
	r.GET("/test", RequireRole(AdminOnly...), func(c *gin.Context) { c.Status(http.StatusOK) })
	rec := doAuthRequest(r, "")
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}
