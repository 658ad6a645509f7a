package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/aarambh-hq/attendance-backend-go/internal/config"
	"github.com/aarambh-hq/attendance-backend-go/internal/domain/auth"
	"github.com/aarambh-hq/attendance-backend-go/internal/domain/employee"
	"github.com/aarambh-hq/attendance-backend-go/internal/domain/user"
	"github.com/aarambh-hq/attendance-backend-go/internal/pkg/jwt"
	"github.com/go-chi/jwtauth/v5"
	"golang.org/x/crypto/bcrypt"
)

type AuthServiceImpl struct {
	cfg *config.Config
	user.UserRepository
	employee.EmployeeRepository
	refreshTokenRepo auth.RefreshTokenRepository
	jwtService       jwt.Service
	emailService     EmailSender
}

// EmailSender is the slice of the email service the auth flow needs.
type EmailSender interface {
	SendPasswordReset(to, resetLink, expiresAt string) error
}

func NewAuthService(
	cfg *config.Config,
	userRepo user.UserRepository,
	employeeRepo employee.EmployeeRepository,
	refreshTokenRepo auth.RefreshTokenRepository,
	jwtService jwt.Service,
	emailService EmailSender,
) auth.AuthService {
	return &AuthServiceImpl{
		cfg:                cfg,
		UserRepository:     userRepo,
		EmployeeRepository: employeeRepo,
		refreshTokenRepo:   refreshTokenRepo,
		jwtService:         jwtService,
		emailService:       emailService,
	}
}

// issueTokens builds the token pair and session payload for a user.
func (s *AuthServiceImpl) issueTokens(ctx context.Context, u user.User) (auth.TokenResponse, error) {
	var employeeID *string
	var fullName *string

	emp, err := s.EmployeeRepository.GetByUserID(ctx, u.ID)
	switch {
	case err == nil:
		employeeID = &emp.ID
		fullName = &emp.FullName
	case errors.Is(err, employee.ErrEmployeeNotFound):
		// Management accounts may have no employee profile.
	default:
		return auth.TokenResponse{}, err
	}

	accessToken, accessExpiresAt, err := s.jwtService.GenerateAccessToken(u.ID, u.Username, employeeID, u.Role)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to generate access token: %w", err)
	}

	refreshToken, refreshExpiresAt, err := s.jwtService.GenerateRefreshToken(u.ID)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	sessionReq, _ := ctx.Value(sessionTrackingKey{}).(auth.SessionTrackingRequest)
	if err := s.refreshTokenRepo.CreateRefreshToken(ctx, u.ID, refreshToken, refreshExpiresAt, sessionReq); err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to store refresh token: %w", err)
	}

	return auth.TokenResponse{
		AccessToken:           accessToken,
		AccessTokenExpiresIn:  accessExpiresAt - time.Now().Unix(),
		RefreshToken:          refreshToken,
		RefreshTokenExpiresIn: refreshExpiresAt - time.Now().Unix(),
		User: auth.SessionUser{
			UserID:     u.ID,
			Username:   u.Username,
			Role:       string(u.Role),
			EmployeeID: employeeID,
			FullName:   fullName,
		},
	}, nil
}

type sessionTrackingKey struct{}

// WithSessionTracking attaches request metadata stored alongside the
// refresh token.
func WithSessionTracking(ctx context.Context, req auth.SessionTrackingRequest) context.Context {
	return context.WithValue(ctx, sessionTrackingKey{}, req)
}

// Login implements auth.AuthService.
func (s *AuthServiceImpl) Login(ctx context.Context, req auth.LoginRequest) (auth.TokenResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.TokenResponse{}, err
	}

	u, err := s.UserRepository.GetByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return auth.TokenResponse{}, auth.ErrInvalidCredentials
		}
		return auth.TokenResponse{}, err
	}

	if u.PasswordHash == nil {
		return auth.TokenResponse{}, auth.ErrPasswordLoginBlocked
	}

	if err := bcrypt.CompareHashAndPassword([]byte(*u.PasswordHash), []byte(req.Password)); err != nil {
		return auth.TokenResponse{}, auth.ErrInvalidCredentials
	}

	return s.issueTokens(ctx, u)
}

// LoginWithGoogle implements auth.AuthService. The Google account is
// matched to an existing user by verified email and linked on first use.
func (s *AuthServiceImpl) LoginWithGoogle(ctx context.Context, email, googleID string) (auth.TokenResponse, error) {
	u, err := s.UserRepository.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return auth.TokenResponse{}, auth.ErrInvalidCredentials
		}
		return auth.TokenResponse{}, err
	}

	if u.OAuthProviderID == nil {
		linked, err := s.UserRepository.LinkGoogleAccount(ctx, googleID, email)
		if err != nil {
			return auth.TokenResponse{}, err
		}
		u = linked
	} else if *u.OAuthProviderID != googleID {
		return auth.TokenResponse{}, auth.ErrInvalidCredentials
	}

	return s.issueTokens(ctx, u)
}

// RefreshToken implements auth.AuthService.
func (s *AuthServiceImpl) RefreshToken(ctx context.Context, req auth.RefreshTokenRequest) (auth.AccessTokenResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.AccessTokenResponse{}, err
	}

	userID, err := s.jwtService.ValidateRefreshToken(req.RefreshToken)
	if err != nil {
		return auth.AccessTokenResponse{}, auth.ErrInvalidRefreshToken
	}

	revoked, err := s.refreshTokenRepo.IsRefreshTokenRevoked(ctx, req.RefreshToken)
	if err != nil || revoked {
		return auth.AccessTokenResponse{}, auth.ErrInvalidRefreshToken
	}

	u, err := s.UserRepository.GetByID(ctx, userID)
	if err != nil {
		return auth.AccessTokenResponse{}, auth.ErrInvalidRefreshToken
	}

	var employeeID *string
	emp, err := s.EmployeeRepository.GetByUserID(ctx, u.ID)
	if err == nil {
		employeeID = &emp.ID
	} else if !errors.Is(err, employee.ErrEmployeeNotFound) {
		return auth.AccessTokenResponse{}, err
	}

	accessToken, expiresAt, err := s.jwtService.GenerateAccessToken(u.ID, u.Username, employeeID, u.Role)
	if err != nil {
		return auth.AccessTokenResponse{}, fmt.Errorf("failed to generate access token: %w", err)
	}

	return auth.AccessTokenResponse{
		AccessToken:          accessToken,
		AccessTokenExpiresIn: expiresAt - time.Now().Unix(),
	}, nil
}

// Logout implements auth.AuthService.
func (s *AuthServiceImpl) Logout(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return nil
	}
	return s.refreshTokenRepo.RevokeRefreshToken(ctx, refreshToken)
}

// Session implements auth.AuthService. It reflects the verified claims
// back so the client can restore its session on reload.
func (s *AuthServiceImpl) Session(ctx context.Context) (auth.SessionUser, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return auth.SessionUser{}, fmt.Errorf("failed to extract claims from context: %w", err)
	}

	userID, _ := claims["user_id"].(string)
	username, _ := claims["username"].(string)
	role, _ := claims["role"].(string)

	session := auth.SessionUser{
		UserID:   userID,
		Username: username,
		Role:     role,
	}

	if id, ok := claims["employee_id"].(string); ok && id != "" {
		session.EmployeeID = &id
		if emp, err := s.EmployeeRepository.GetByID(ctx, id); err == nil {
			session.FullName = &emp.FullName
		}
	}

	return session, nil
}

// ForgotPassword implements auth.AuthService. The response is identical
// whether or not the email exists.
func (s *AuthServiceImpl) ForgotPassword(ctx context.Context, req auth.ForgotPasswordRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	u, err := s.UserRepository.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			slog.Info("password reset requested for unknown email")
			return nil
		}
		return err
	}

	token, err := s.jwtService.GenerateResetToken(u.ID)
	if err != nil {
		return fmt.Errorf("failed to generate reset token: %w", err)
	}

	resetLink := fmt.Sprintf("%s/reset-password?token=%s", s.cfg.App.FrontendURL, token)
	expiresAt := time.Now().Add(30 * time.Minute).Format(time.RFC1123)

	if err := s.emailService.SendPasswordReset(req.Email, resetLink, expiresAt); err != nil {
		return fmt.Errorf("failed to send reset email: %w", err)
	}

	return nil
}

// ResetPassword implements auth.AuthService.
func (s *AuthServiceImpl) ResetPassword(ctx context.Context, req auth.ResetPasswordRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	userID, err := s.jwtService.ValidateResetToken(req.Token)
	if err != nil {
		return auth.ErrInvalidResetToken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	hashStr := string(hash)
	if err := s.UserRepository.UpdatePassword(ctx, userID, hashStr); err != nil {
		return err
	}

	// A reset invalidates every open session for the account.
	if err := s.refreshTokenRepo.RevokeAllForUser(ctx, userID); err != nil {
		slog.Warn("failed to revoke sessions after password reset", "user_id", userID, "error", err)
	}

	return nil
}
