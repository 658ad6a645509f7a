package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/aarambh-hq/attendance-backend-go/internal/domain/user"
	"github.com/aarambh-hq/attendance-backend-go/internal/pkg/jwt"
	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func requestWithToken(t *testing.T, ja *jwtauth.JWTAuth, tokenString string) *http.Request {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if tokenString == "" {
		return req.WithContext(jwtauth.NewContext(req.Context(), nil, nil))
	}
	token, err := ja.Decode(tokenString)
	require.NoError(t, err)
	return req.WithContext(jwtauth.NewContext(req.Context(), token, nil))
}

func TestAuthRequired(t *testing.T) {
	jwtSvc := jwt.NewJWTService("test-secret-key-for-jwt", "1h", "24h")
	ja := jwtSvc.JWTAuth()
	handler := AuthRequired(ja)(okHandler())

	t.Run("valid access token passes", func(t *testing.T) {
		token, _, err := jwtSvc.GenerateAccessToken("user-1", "asha", nil, user.RoleEmployee)
		require.NoError(t, err)

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, requestWithToken(t, ja, token))
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("missing token is rejected", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, requestWithToken(t, ja, ""))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("refresh token is not an access token", func(t *testing.T) {
		token, _, err := jwtSvc.GenerateRefreshToken("user-1")
		require.NoError(t, err)

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, requestWithToken(t, ja, token))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("sse token is not an access token", func(t *testing.T) {
		token, _, err := jwtSvc.GenerateSSEToken("user-1")
		require.NoError(t, err)

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, requestWithToken(t, ja, token))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestManagementOnly(t *testing.T) {
	jwtSvc := jwt.NewJWTService("test-secret-key-for-jwt", "1h", "24h")
	ja := jwtSvc.JWTAuth()
	handler := ManagementOnly(okHandler())

	t.Run("management role passes", func(t *testing.T) {
		token, _, err := jwtSvc.GenerateAccessToken("user-2", "boss", nil, user.RoleManagement)
		require.NoError(t, err)

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, requestWithToken(t, ja, token))
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("employee role is forbidden", func(t *testing.T) {
		employeeID := "emp-1"
		token, _, err := jwtSvc.GenerateAccessToken("user-1", "asha", &employeeID, user.RoleEmployee)
		require.NoError(t, err)

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, requestWithToken(t, ja, token))
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})
}
