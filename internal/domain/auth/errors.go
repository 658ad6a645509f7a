package auth

import "errors"

var (
	ErrInvalidToken         = errors.New("invalid or missing access token")
	ErrInvalidCredentials   = errors.New("invalid username or password")
	ErrInvalidRefreshToken  = errors.New("invalid or expired refresh token")
	ErrInvalidResetToken    = errors.New("invalid or expired reset token")
	ErrPasswordLoginBlocked = errors.New("this account signs in with Google")
	ErrOAuthNotConfigured   = errors.New("google sign-in is not configured")
)
