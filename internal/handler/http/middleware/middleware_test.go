package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/audit"
	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func protectedRouter(svc *jwt.JWTService, permission user.Permission) http.Handler {
	r := chi.NewRouter()
	r.Use(jwtauth.Verifier(svc.JWTAuth()))
	r.Use(AuthRequired(svc))
	r.With(RequirePermission(permission)).Get("/", func(w http.ResponseWriter, r *http.Request) {
		actor, _ := user.ActorFromContext(r.Context())
		_, _ = w.Write([]byte(actor.UserID))
	})
	return r
}

func get(t *testing.T, h http.Handler, token string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestAuthRequired(t *testing.T) {
	svc := jwt.NewJWTService("test-secret", time.Minute, time.Hour, false)
	h := protectedRouter(svc, user.PermissionDashboardView)

	t.Run("missing token", func(t *testing.T) {
		assert.Equal(t, http.StatusUnauthorized, get(t, h, "").Code)
	})

	t.Run("access token passes", func(t *testing.T) {
		token, _, err := svc.GenerateAccessToken("user-1", "a@example.com", nil, user.RoleEmployee)
		require.NoError(t, err)

		rec := get(t, h, token)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "user-1", rec.Body.String())
	})

	t.Run("refresh token rejected", func(t *testing.T) {
		token, _, err := svc.GenerateRefreshToken("user-1")
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, get(t, h, token).Code)
	})

	t.Run("revoked token rejected", func(t *testing.T) {
		token, _, err := svc.GenerateAccessToken("user-2", "b@example.com", nil, user.RoleAdmin)
		require.NoError(t, err)
		require.NoError(t, svc.RevokeAccessToken(token))
		assert.Equal(t, http.StatusUnauthorized, get(t, h, token).Code)
	})
}

func TestRequirePermission(t *testing.T) {
	svc := jwt.NewJWTService("test-secret", time.Minute, time.Hour, false)
	h := protectedRouter(svc, user.PermissionPayrollManage)

	employeeToken, _, err := svc.GenerateAccessToken("user-1", "a@example.com", nil, user.RoleEmployee)
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, get(t, h, employeeToken).Code)

	payrollToken, _, err := svc.GenerateAccessToken("user-3", "p@example.com", nil, user.RolePayroll)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, get(t, h, payrollToken).Code)
}

func TestClientIP(t *testing.T) {
	var seen *string
	h := ClientIP(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = audit.IPAddressFromContext(r.Context())
	}))

	tests := []struct {
		name    string
		headers map[string]string
		remote  string
		want    string
	}{
		{name: "forwarded first hop", headers: map[string]string{"X-Forwarded-For": "203.0.113.7, 10.0.0.1"}, remote: "10.0.0.2:5000", want: "203.0.113.7"},
		{name: "real ip", headers: map[string]string{"X-Real-IP": "198.51.100.4"}, remote: "10.0.0.2:5000", want: "198.51.100.4"},
		{name: "remote addr", remote: "192.0.2.10:41234", want: "192.0.2.10"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remote
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			h.ServeHTTP(httptest.NewRecorder(), req)
			require.NotNil(t, seen)
			assert.Equal(t, tt.want, *seen)
		})
	}
}
