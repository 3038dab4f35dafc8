package service

import (
	"context"
	"errors"
	"fmt"
	"log"

	"gorm.io/gorm"

	"miniinventory/internal/auth"
	apperrors "miniinventory/internal/errors"
	"miniinventory/internal/model"
	"miniinventory/internal/repository"
)

// DefaultAdmin is the credential seeded on first start.
type DefaultAdmin struct {
	Username string
	Password string
}

// AuthService verifies credentials and manages login sessions.
type AuthService interface {
	Verify(ctx context.Context, username, password string) (bool, error)
	EnsureDefaultAdmin(ctx context.Context) error
	Login(ctx context.Context, username, password string) (accessToken, refreshToken string, user *model.User, err error)
	Refresh(ctx context.Context, refreshToken string) (accessToken string, err error)
	Logout(ctx context.Context, refreshToken string) error
}

type authService struct {
	userRepo   repository.UserRepository
	jwtService *auth.JWTService
	sessions   auth.SessionStore
	admin      DefaultAdmin
}

// NewAuthService creates a new authentication service.
func NewAuthService(userRepo repository.UserRepository, jwtService *auth.JWTService, sessions auth.SessionStore, admin DefaultAdmin) AuthService {
	return &authService{
		userRepo:   userRepo,
		jwtService: jwtService,
		sessions:   sessions,
		admin:      admin,
	}
}

// Verify reports whether username and the digest of password match a stored credential.
func (s *authService) Verify(ctx context.Context, username, password string) (bool, error) {
	user, err := s.lookup(ctx, username, password)
	if err != nil {
		return false, err
	}
	return user != nil, nil
}

// EnsureDefaultAdmin seeds the reserved admin record unless it already exists.
func (s *authService) EnsureDefaultAdmin(ctx context.Context) error {
	created, err := s.userRepo.CreateIfAbsent(ctx, &model.User{
		ID:           model.DefaultAdminID,
		Username:     s.admin.Username,
		PasswordHash: auth.Digest(s.admin.Password),
	})
	if err != nil {
		return fmt.Errorf("seed default admin: %w: %w", apperrors.ErrStorageUnavailable, err)
	}
	if created {
		log.Printf("Default admin %q created", s.admin.Username)
	}
	return nil
}

// Login verifies credentials and opens a session.
func (s *authService) Login(ctx context.Context, username, password string) (accessToken, refreshToken string, user *model.User, err error) {
	user, err = s.lookup(ctx, username, password)
	if err != nil {
		return "", "", nil, err
	}
	if user == nil {
		return "", "", nil, apperrors.ErrInvalidCredentials
	}

	accessToken, err = s.jwtService.GenerateAccessToken(user.ID, user.Username)
	if err != nil {
		return "", "", nil, fmt.Errorf("generate access token: %w", err)
	}

	tokenID, refreshToken, err := s.jwtService.GenerateRefreshToken(user.ID, user.Username)
	if err != nil {
		return "", "", nil, fmt.Errorf("generate refresh token: %w", err)
	}

	if err := s.sessions.Save(ctx, tokenID, user.ID, user.Username, auth.RefreshTokenExpiry); err != nil {
		return "", "", nil, fmt.Errorf("store session: %w", err)
	}

	return accessToken, refreshToken, user, nil
}

// Refresh exchanges a live refresh token for a new access token.
func (s *authService) Refresh(ctx context.Context, refreshToken string) (string, error) {
	claims, err := s.jwtService.ValidateRefreshToken(refreshToken)
	if err != nil {
		return "", apperrors.ErrInvalidRefreshToken
	}

	userID, username, err := s.sessions.Get(ctx, claims.ID)
	if err != nil {
		return "", apperrors.ErrInvalidRefreshToken
	}
	if userID != claims.UserID || username != claims.Username {
		return "", apperrors.ErrInvalidRefreshToken
	}

	accessToken, err := s.jwtService.GenerateAccessToken(claims.UserID, claims.Username)
	if err != nil {
		return "", fmt.Errorf("generate access token: %w", err)
	}
	return accessToken, nil
}

// Logout discards the session; the client must log in again.
func (s *authService) Logout(ctx context.Context, refreshToken string) error {
	claims, err := s.jwtService.ValidateRefreshToken(refreshToken)
	if err != nil {
		return apperrors.ErrInvalidRefreshToken
	}
	return s.sessions.Delete(ctx, claims.ID)
}

// lookup returns the matching user, or nil when no credential matches.
func (s *authService) lookup(ctx context.Context, username, password string) (*model.User, error) {
	user, err := s.userRepo.FindByCredentials(ctx, username, auth.Digest(password))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("verify credentials: %w: %w", apperrors.ErrStorageUnavailable, err)
	}
	return user, nil
}
