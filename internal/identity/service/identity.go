package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/QwabenaBoateng/Angiesplug/internal/identity/auth"
	"github.com/QwabenaBoateng/Angiesplug/internal/identity/domain"
	"github.com/QwabenaBoateng/Angiesplug/internal/identity/repository"
	apperrors "github.com/QwabenaBoateng/Angiesplug/pkg/errors"
)

// BypassConfig is the development backdoor account. When enabled, logging in
// with the configured email and password yields a synthetic admin session
// without touching the database.
type BypassConfig struct {
	Enabled  bool
	Email    string
	Password string
	UserID   string
}

// DefaultBypassConfig returns the backdoor credentials the storefront has
// always shipped with.
func DefaultBypassConfig() BypassConfig {
	return BypassConfig{
		Enabled:  true,
		Email:    "admin@gmail.com",
		Password: "admin",
		UserID:   "admin-123",
	}
}

// RegisterInput holds the parameters for creating an account.
type RegisterInput struct {
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=6"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// LoginResult is a successful authentication: the session user plus tokens.
type LoginResult struct {
	User         *domain.SessionUser `json:"user"`
	AccessToken  string              `json:"access_token"`
	RefreshToken string              `json:"refresh_token"`
}

// IdentityService implements authentication and account management.
type IdentityService struct {
	repo   repository.ProfileRepository
	jwt    *auth.JWTManager
	bypass BypassConfig
	logger *slog.Logger
}

// NewIdentityService creates a new identity service.
func NewIdentityService(repo repository.ProfileRepository, jwt *auth.JWTManager, bypass BypassConfig, logger *slog.Logger) *IdentityService {
	return &IdentityService{
		repo:   repo,
		jwt:    jwt,
		bypass: bypass,
		logger: logger,
	}
}

// Register creates a new account with the default role.
func (s *IdentityService) Register(ctx context.Context, input *RegisterInput) (*domain.Profile, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if email == "" {
		return nil, apperrors.InvalidInput("email is required")
	}
	if len(input.Password) < 6 {
		return nil, apperrors.InvalidInput("password must be at least 6 characters")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := time.Now().UTC()
	profile := &domain.Profile{
		ID:           uuid.New().String(),
		Email:        email,
		Role:         domain.RoleUser,
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Create(ctx, profile); err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}

	s.logger.InfoContext(ctx, "account registered",
		slog.String("user_id", profile.ID),
	)

	return profile, nil
}

// Login authenticates a user and issues tokens. The bypass account is
// checked first and never reaches the database.
func (s *IdentityService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	if s.bypass.Enabled && email == s.bypass.Email && password == s.bypass.Password {
		user := &domain.SessionUser{
			ID:    s.bypass.UserID,
			Email: s.bypass.Email,
			Role:  domain.RoleAdmin,
		}
		s.logger.WarnContext(ctx, "bypass login used",
			slog.String("user_id", user.ID),
		)
		return s.issueTokens(user)
	}

	profile, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.Unauthorized("invalid email or password")
		}
		return nil, fmt.Errorf("login: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(profile.PasswordHash), []byte(password)); err != nil {
		return nil, apperrors.Unauthorized("invalid email or password")
	}

	s.logger.InfoContext(ctx, "user logged in",
		slog.String("user_id", profile.ID),
	)

	return s.issueTokens(profile.SessionUser())
}

// GetSession resolves an access token to its session user.
func (s *IdentityService) GetSession(token string) (*domain.SessionUser, error) {
	claims, err := s.jwt.ValidateAccessToken(token)
	if err != nil {
		return nil, apperrors.Unauthorized("invalid or expired token")
	}

	return claims.SessionUser(), nil
}

// Refresh exchanges a refresh token for a new token pair. The role is
// re-read from the database so a role change takes effect at refresh time.
func (s *IdentityService) Refresh(ctx context.Context, refreshToken string) (*LoginResult, error) {
	userID, err := s.jwt.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, apperrors.Unauthorized("invalid or expired refresh token")
	}

	if s.bypass.Enabled && userID == s.bypass.UserID {
		return s.issueTokens(&domain.SessionUser{
			ID:    s.bypass.UserID,
			Email: s.bypass.Email,
			Role:  domain.RoleAdmin,
		})
	}

	profile, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("refresh: %w", err)
	}

	return s.issueTokens(profile.SessionUser())
}

// FetchProfile loads the profile for a user.
func (s *IdentityService) FetchProfile(ctx context.Context, userID string) (*domain.Profile, error) {
	profile, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("fetch profile: %w", err)
	}
	return profile, nil
}

// ListUsers returns profiles for the admin console. The caller must hold the
// manage_users capability.
func (s *IdentityService) ListUsers(ctx context.Context, actor *domain.SessionUser, page, perPage int) ([]domain.Profile, int, error) {
	if !domain.HasCapability(actor, domain.CapabilityManageUsers) {
		return nil, 0, apperrors.Forbidden("missing manage_users capability")
	}

	profiles, total, err := s.repo.List(ctx, page, perPage)
	if err != nil {
		return nil, 0, fmt.Errorf("list users: %w", err)
	}
	return profiles, total, nil
}

// UpdateUserRole changes a user's role. The caller must hold the
// manage_users capability.
func (s *IdentityService) UpdateUserRole(ctx context.Context, actor *domain.SessionUser, userID, role string) error {
	if !domain.HasCapability(actor, domain.CapabilityManageUsers) {
		return apperrors.Forbidden("missing manage_users capability")
	}
	if !domain.IsValidRole(role) {
		return apperrors.InvalidInput(fmt.Sprintf("invalid role %q", role))
	}

	if _, err := s.repo.GetByID(ctx, userID); err != nil {
		return fmt.Errorf("get user for role update: %w", err)
	}

	if err := s.repo.UpdateRole(ctx, userID, role); err != nil {
		return fmt.Errorf("update user role: %w", err)
	}

	s.logger.InfoContext(ctx, "user role updated",
		slog.String("user_id", userID),
		slog.String("role", role),
	)

	return nil
}

func (s *IdentityService) issueTokens(user *domain.SessionUser) (*LoginResult, error) {
	access, err := s.jwt.GenerateAccessToken(user)
	if err != nil {
		return nil, fmt.Errorf("issue access token: %w", err)
	}

	refresh, err := s.jwt.GenerateRefreshToken(user.ID)
	if err != nil {
		return nil, fmt.Errorf("issue refresh token: %w", err)
	}

	return &LoginResult{
		User:         user,
		AccessToken:  access,
		RefreshToken: refresh,
	}, nil
}
