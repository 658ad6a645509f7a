package employee

import (
	"testing"

	"github.com/aarambh-hq/attendance-backend-go/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validCreateRequest() CreateEmployeeRequest {
	return CreateEmployeeRequest{
		FullName:     "Asha Verma",
		EmployeeCode: "EMP001",
		Username:     "asha.verma",
		Password:     "secret123",
		Department:   "Engineering",
		Designation:  "Software Engineer",
	}
}

func fieldsOf(t *testing.T, err error) map[string]string {
	t.Helper()
	var errs validator.ValidationErrors
	require.ErrorAs(t, err, &errs)
	return errs.ToMap()
}

func TestCreateEmployeeRequestValidate(t *testing.T) {
	t.Run("valid request", func(t *testing.T) {
		req := validCreateRequest()
		assert.NoError(t, req.Validate())
	})

	t.Run("trims whitespace", func(t *testing.T) {
		req := validCreateRequest()
		req.FullName = "  Asha Verma  "
		req.EmployeeCode = " EMP001 "
		require.NoError(t, req.Validate())
		assert.Equal(t, "Asha Verma", req.FullName)
		assert.Equal(t, "EMP001", req.EmployeeCode)
	})

	t.Run("missing required fields", func(t *testing.T) {
		req := CreateEmployeeRequest{}
		fields := fieldsOf(t, req.Validate())
		for _, f := range []string{"full_name", "employee_code", "username", "password", "department", "designation"} {
			assert.Contains(t, fields, f)
		}
	})

	t.Run("lowercase employee code is rejected", func(t *testing.T) {
		req := validCreateRequest()
		req.EmployeeCode = "emp001"
		fields := fieldsOf(t, req.Validate())
		assert.Contains(t, fields, "employee_code")
	})

	t.Run("short password is rejected", func(t *testing.T) {
		req := validCreateRequest()
		req.Password = "abc"
		fields := fieldsOf(t, req.Validate())
		assert.Contains(t, fields, "password")
	})

	t.Run("bad optional email is rejected", func(t *testing.T) {
		req := validCreateRequest()
		bad := "not-an-email"
		req.Email = &bad
		fields := fieldsOf(t, req.Validate())
		assert.Contains(t, fields, "email")
	})

	t.Run("empty optional email is accepted", func(t *testing.T) {
		req := validCreateRequest()
		empty := ""
		req.Email = &empty
		assert.NoError(t, req.Validate())
	})

	t.Run("bad mobile number is rejected", func(t *testing.T) {
		req := validCreateRequest()
		bad := "12345"
		req.Mobile = &bad
		fields := fieldsOf(t, req.Validate())
		assert.Contains(t, fields, "mobile")
	})
}

func TestUpdateProfileRequestValidate(t *testing.T) {
	t.Run("empty update is valid", func(t *testing.T) {
		req := UpdateProfileRequest{}
		assert.NoError(t, req.Validate())
	})

	t.Run("blank full name is rejected", func(t *testing.T) {
		req := UpdateProfileRequest{}
		blank := "   "
		req.FullName = &blank
		fields := fieldsOf(t, req.Validate())
		assert.Contains(t, fields, "full_name")
	})

	t.Run("valid partial update", func(t *testing.T) {
		name := "Asha V"
		email := "asha@example.com"
		req := UpdateProfileRequest{FullName: &name, Email: &email}
		assert.NoError(t, req.Validate())
	})
}
