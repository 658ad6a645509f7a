package auth

import (
	"testing"

	"github.com/aarambh-hq/attendance-backend-go/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loginFields(t *testing.T, err error) map[string]string {
	t.Helper()
	var errs validator.ValidationErrors
	require.ErrorAs(t, err, &errs)
	return errs.ToMap()
}

func TestLoginRequestValidate(t *testing.T) {
	t.Run("valid request", func(t *testing.T) {
		req := LoginRequest{Username: "asha.verma", Password: "secret123"}
		assert.NoError(t, req.Validate())
	})

	t.Run("accepts usernames shorter than the creation format rule", func(t *testing.T) {
		req := LoginRequest{Username: "hr", Password: "secret123"}
		assert.NoError(t, req.Validate())
	})

	t.Run("trims username whitespace", func(t *testing.T) {
		req := LoginRequest{Username: "  asha.verma  ", Password: "secret123"}
		require.NoError(t, req.Validate())
		assert.Equal(t, "asha.verma", req.Username)
	})

	t.Run("missing username", func(t *testing.T) {
		req := LoginRequest{Password: "secret123"}
		fields := loginFields(t, req.Validate())
		assert.Contains(t, fields, "username")
	})

	t.Run("missing password", func(t *testing.T) {
		req := LoginRequest{Username: "asha.verma"}
		fields := loginFields(t, req.Validate())
		assert.Contains(t, fields, "password")
	})

	t.Run("short password", func(t *testing.T) {
		req := LoginRequest{Username: "asha.verma", Password: "abc"}
		fields := loginFields(t, req.Validate())
		assert.Contains(t, fields, "password")
	})
}
