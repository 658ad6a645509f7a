package auth

import (
	"context"
	"testing"

	"github.com/aarambh-hq/attendance-backend-go/internal/config"
	"github.com/aarambh-hq/attendance-backend-go/internal/domain/auth"
	"github.com/aarambh-hq/attendance-backend-go/internal/domain/employee"
	"github.com/aarambh-hq/attendance-backend-go/internal/domain/user"
	"github.com/aarambh-hq/attendance-backend-go/internal/pkg/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const (
	testSecret     = "test-secret-key-for-jwt"
	testAccessExp  = "1h"
	testRefreshExp = "24h"
)

type fakeUserRepo struct {
	user.UserRepository
	users map[string]user.User
}

func (f *fakeUserRepo) find(match func(user.User) bool) (user.User, error) {
	for _, u := range f.users {
		if match(u) {
			return u, nil
		}
	}
	return user.User{}, user.ErrUserNotFound
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id string) (user.User, error) {
	return f.find(func(u user.User) bool { return u.ID == id })
}

func (f *fakeUserRepo) GetByUsername(ctx context.Context, username string) (user.User, error) {
	return f.find(func(u user.User) bool { return u.Username == username })
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (user.User, error) {
	return f.find(func(u user.User) bool { return u.Email != nil && *u.Email == email })
}

func (f *fakeUserRepo) UpdatePassword(ctx context.Context, id string, passwordHash string) error {
	u, err := f.GetByID(ctx, id)
	if err != nil {
		return err
	}
	u.PasswordHash = &passwordHash
	f.users[id] = u
	return nil
}

func (f *fakeUserRepo) LinkGoogleAccount(ctx context.Context, googleID string, email string) (user.User, error) {
	u, err := f.GetByEmail(ctx, email)
	if err != nil {
		return user.User{}, err
	}
	provider := "google"
	u.OAuthProvider = &provider
	u.OAuthProviderID = &googleID
	f.users[u.ID] = u
	return u, nil
}

type fakeEmployeeRepo struct {
	employee.EmployeeRepository
	byUserID map[string]employee.Employee
}

func (f *fakeEmployeeRepo) GetByUserID(ctx context.Context, userID string) (employee.Employee, error) {
	if emp, ok := f.byUserID[userID]; ok {
		return emp, nil
	}
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (f *fakeEmployeeRepo) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	for _, emp := range f.byUserID {
		if emp.ID == id {
			return emp, nil
		}
	}
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

type fakeRefreshTokenRepo struct {
	stored  []string
	revoked map[string]bool
}

func (f *fakeRefreshTokenRepo) CreateRefreshToken(ctx context.Context, userID, token string, expiresAt int64, sessionReq auth.SessionTrackingRequest) error {
	f.stored = append(f.stored, token)
	return nil
}

func (f *fakeRefreshTokenRepo) IsRefreshTokenRevoked(ctx context.Context, token string) (bool, error) {
	return f.revoked[token], nil
}

func (f *fakeRefreshTokenRepo) RevokeRefreshToken(ctx context.Context, token string) error {
	f.revoked[token] = true
	return nil
}

func (f *fakeRefreshTokenRepo) RevokeAllForUser(ctx context.Context, userID string) error {
	for _, token := range f.stored {
		f.revoked[token] = true
	}
	return nil
}

type recordingEmailSender struct {
	sentTo []string
	links  []string
}

func (r *recordingEmailSender) SendPasswordReset(to, resetLink, expiresAt string) error {
	r.sentTo = append(r.sentTo, to)
	r.links = append(r.links, resetLink)
	return nil
}

type authFixture struct {
	svc    auth.AuthService
	users  *fakeUserRepo
	tokens *fakeRefreshTokenRepo
	emails *recordingEmailSender
	jwtSvc jwt.Service
}

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	require.NoError(t, err)
	hashStr := string(hash)
	email := "asha@example.com"
	googleID := "google-123"

	users := &fakeUserRepo{users: map[string]user.User{
		"user-1": {ID: "user-1", Username: "asha", Email: &email, PasswordHash: &hashStr, Role: user.RoleEmployee},
		"user-2": {ID: "user-2", Username: "boss", Role: user.RoleManagement, OAuthProviderID: &googleID},
	}}
	empUserID := "user-1"
	employees := &fakeEmployeeRepo{byUserID: map[string]employee.Employee{
		"user-1": {ID: "emp-1", UserID: &empUserID, FullName: "Asha Verma"},
	}}
	tokens := &fakeRefreshTokenRepo{revoked: map[string]bool{}}
	emails := &recordingEmailSender{}
	jwtSvc := jwt.NewJWTService(testSecret, testAccessExp, testRefreshExp)

	cfg := &config.Config{App: config.AppConfig{FrontendURL: "http://localhost:3000"}}

	return &authFixture{
		svc:    NewAuthService(cfg, users, employees, tokens, jwtSvc, emails),
		users:  users,
		tokens: tokens,
		emails: emails,
		jwtSvc: jwtSvc,
	}
}

func TestLogin(t *testing.T) {
	ctx := context.Background()

	t.Run("valid credentials", func(t *testing.T) {
		f := newAuthFixture(t)
		resp, err := f.svc.Login(ctx, auth.LoginRequest{Username: "asha", Password: "password123"})
		require.NoError(t, err)

		assert.NotEmpty(t, resp.AccessToken)
		assert.NotEmpty(t, resp.RefreshToken)
		assert.Greater(t, resp.AccessTokenExpiresIn, int64(0))
		assert.Equal(t, "user-1", resp.User.UserID)
		require.NotNil(t, resp.User.EmployeeID)
		assert.Equal(t, "emp-1", *resp.User.EmployeeID)
		require.NotNil(t, resp.User.FullName)
		assert.Equal(t, "Asha Verma", *resp.User.FullName)

		// The refresh token is tracked for revocation.
		assert.Len(t, f.tokens.stored, 1)
	})

	t.Run("wrong password", func(t *testing.T) {
		f := newAuthFixture(t)
		_, err := f.svc.Login(ctx, auth.LoginRequest{Username: "asha", Password: "nope-wrong"})
		assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
	})

	t.Run("unknown username", func(t *testing.T) {
		f := newAuthFixture(t)
		_, err := f.svc.Login(ctx, auth.LoginRequest{Username: "ghost", Password: "password123"})
		assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
	})

	t.Run("oauth-only account cannot use password login", func(t *testing.T) {
		f := newAuthFixture(t)
		_, err := f.svc.Login(ctx, auth.LoginRequest{Username: "boss", Password: "password123"})
		assert.ErrorIs(t, err, auth.ErrPasswordLoginBlocked)
	})

	t.Run("management login carries no employee id", func(t *testing.T) {
		f := newAuthFixture(t)
		hash, err := bcrypt.GenerateFromPassword([]byte("topsecret99"), bcrypt.DefaultCost)
		require.NoError(t, err)
		hashStr := string(hash)
		f.users.users["user-3"] = user.User{ID: "user-3", Username: "hr", PasswordHash: &hashStr, Role: user.RoleManagement}

		resp, err := f.svc.Login(ctx, auth.LoginRequest{Username: "hr", Password: "topsecret99"})
		require.NoError(t, err)
		assert.Nil(t, resp.User.EmployeeID)
		assert.Equal(t, "management", resp.User.Role)
	})
}

func TestLoginWithGoogle(t *testing.T) {
	ctx := context.Background()

	t.Run("matching linked account", func(t *testing.T) {
		f := newAuthFixture(t)
		email := "boss@example.com"
		u := f.users.users["user-2"]
		u.Email = &email
		f.users.users["user-2"] = u

		resp, err := f.svc.LoginWithGoogle(ctx, email, "google-123")
		require.NoError(t, err)
		assert.Equal(t, "user-2", resp.User.UserID)
	})

	t.Run("first google sign-in links the account", func(t *testing.T) {
		f := newAuthFixture(t)
		resp, err := f.svc.LoginWithGoogle(ctx, "asha@example.com", "google-999")
		require.NoError(t, err)
		assert.Equal(t, "user-1", resp.User.UserID)

		linked, err := f.users.GetByID(ctx, "user-1")
		require.NoError(t, err)
		require.NotNil(t, linked.OAuthProviderID)
		assert.Equal(t, "google-999", *linked.OAuthProviderID)
	})

	t.Run("mismatched google account is rejected", func(t *testing.T) {
		f := newAuthFixture(t)
		email := "boss@example.com"
		u := f.users.users["user-2"]
		u.Email = &email
		f.users.users["user-2"] = u

		_, err := f.svc.LoginWithGoogle(ctx, email, "someone-else")
		assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
	})

	t.Run("unknown email is rejected", func(t *testing.T) {
		f := newAuthFixture(t)
		_, err := f.svc.LoginWithGoogle(ctx, "stranger@example.com", "google-123")
		assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
	})
}

func TestRefreshToken(t *testing.T) {
	ctx := context.Background()

	t.Run("valid refresh token issues a new access token", func(t *testing.T) {
		f := newAuthFixture(t)
		login, err := f.svc.Login(ctx, auth.LoginRequest{Username: "asha", Password: "password123"})
		require.NoError(t, err)

		resp, err := f.svc.RefreshToken(ctx, auth.RefreshTokenRequest{RefreshToken: login.RefreshToken})
		require.NoError(t, err)
		assert.NotEmpty(t, resp.AccessToken)
		assert.Greater(t, resp.AccessTokenExpiresIn, int64(0))
	})

	t.Run("revoked token is rejected", func(t *testing.T) {
		f := newAuthFixture(t)
		login, err := f.svc.Login(ctx, auth.LoginRequest{Username: "asha", Password: "password123"})
		require.NoError(t, err)

		require.NoError(t, f.svc.Logout(ctx, login.RefreshToken))

		_, err = f.svc.RefreshToken(ctx, auth.RefreshTokenRequest{RefreshToken: login.RefreshToken})
		assert.ErrorIs(t, err, auth.ErrInvalidRefreshToken)
	})

	t.Run("garbage token is rejected", func(t *testing.T) {
		f := newAuthFixture(t)
		_, err := f.svc.RefreshToken(ctx, auth.RefreshTokenRequest{RefreshToken: "not-a-jwt"})
		assert.ErrorIs(t, err, auth.ErrInvalidRefreshToken)
	})

	t.Run("access token cannot be used as refresh token", func(t *testing.T) {
		f := newAuthFixture(t)
		login, err := f.svc.Login(ctx, auth.LoginRequest{Username: "asha", Password: "password123"})
		require.NoError(t, err)

		_, err = f.svc.RefreshToken(ctx, auth.RefreshTokenRequest{RefreshToken: login.AccessToken})
		assert.ErrorIs(t, err, auth.ErrInvalidRefreshToken)
	})
}

func TestLogout(t *testing.T) {
	ctx := context.Background()
	f := newAuthFixture(t)

	// An empty token is a no-op, not an error.
	assert.NoError(t, f.svc.Logout(ctx, ""))
}

func TestForgotPassword(t *testing.T) {
	ctx := context.Background()

	t.Run("known email receives a reset link", func(t *testing.T) {
		f := newAuthFixture(t)
		err := f.svc.ForgotPassword(ctx, auth.ForgotPasswordRequest{Email: "asha@example.com"})
		require.NoError(t, err)

		require.Len(t, f.emails.sentTo, 1)
		assert.Equal(t, "asha@example.com", f.emails.sentTo[0])
		assert.Contains(t, f.emails.links[0], "http://localhost:3000/reset-password?token=")
	})

	t.Run("unknown email is silently accepted", func(t *testing.T) {
		f := newAuthFixture(t)
		err := f.svc.ForgotPassword(ctx, auth.ForgotPasswordRequest{Email: "stranger@example.com"})
		require.NoError(t, err)
		assert.Empty(t, f.emails.sentTo)
	})
}

func TestResetPassword(t *testing.T) {
	ctx := context.Background()

	t.Run("valid token updates the password and revokes sessions", func(t *testing.T) {
		f := newAuthFixture(t)
		login, err := f.svc.Login(ctx, auth.LoginRequest{Username: "asha", Password: "password123"})
		require.NoError(t, err)

		token, err := f.jwtSvc.GenerateResetToken("user-1")
		require.NoError(t, err)

		err = f.svc.ResetPassword(ctx, auth.ResetPasswordRequest{
			Token:           token,
			Password:        "newpassword1",
			ConfirmPassword: "newpassword1",
		})
		require.NoError(t, err)

		// Old password no longer works, new one does.
		_, err = f.svc.Login(ctx, auth.LoginRequest{Username: "asha", Password: "password123"})
		assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
		_, err = f.svc.Login(ctx, auth.LoginRequest{Username: "asha", Password: "newpassword1"})
		assert.NoError(t, err)

		// Open sessions are revoked.
		assert.True(t, f.tokens.revoked[login.RefreshToken])
	})

	t.Run("invalid token is rejected", func(t *testing.T) {
		f := newAuthFixture(t)
		err := f.svc.ResetPassword(ctx, auth.ResetPasswordRequest{
			Token:           "bogus",
			Password:        "newpassword1",
			ConfirmPassword: "newpassword1",
		})
		assert.ErrorIs(t, err, auth.ErrInvalidResetToken)
	})
}
