package service

import (
	"context"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/QwabenaBoateng/Angiesplug/internal/identity/auth"
	"github.com/QwabenaBoateng/Angiesplug/internal/identity/domain"
	apperrors "github.com/QwabenaBoateng/Angiesplug/pkg/errors"
)

type mockProfileRepository struct {
	mock.Mock
}

func (m *mockProfileRepository) Create(ctx context.Context, profile *domain.Profile) error {
	args := m.Called(ctx, profile)
	return args.Error(0)
}

func (m *mockProfileRepository) GetByID(ctx context.Context, id string) (*domain.Profile, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Profile), args.Error(1)
}

func (m *mockProfileRepository) GetByEmail(ctx context.Context, email string) (*domain.Profile, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Profile), args.Error(1)
}

func (m *mockProfileRepository) List(ctx context.Context, page, perPage int) ([]domain.Profile, int, error) {
	args := m.Called(ctx, page, perPage)
	return args.Get(0).([]domain.Profile), args.Int(1), args.Error(2)
}

func (m *mockProfileRepository) UpdateRole(ctx context.Context, userID, role string) error {
	args := m.Called(ctx, userID, role)
	return args.Error(0)
}

func newTestIdentityService(repo *mockProfileRepository) *IdentityService {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
	jwtMgr := auth.NewJWTManager("test-secret", 15*time.Minute, 24*time.Hour)
	return NewIdentityService(repo, jwtMgr, DefaultBypassConfig(), logger)
}

func TestLogin_BypassAccount(t *testing.T) {
	repo := new(mockProfileRepository)
	svc := newTestIdentityService(repo)

	result, err := svc.Login(context.Background(), "admin@gmail.com", "admin")

	require.NoError(t, err)
	assert.Equal(t, "admin-123", result.User.ID)
	assert.Equal(t, domain.RoleAdmin, result.User.Role)
	assert.NotEmpty(t, result.AccessToken)
	assert.NotEmpty(t, result.RefreshToken)
	repo.AssertNotCalled(t, "GetByEmail")
}

func TestLogin_BypassDisabled(t *testing.T) {
	repo := new(mockProfileRepository)
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
	jwtMgr := auth.NewJWTManager("test-secret", 15*time.Minute, 24*time.Hour)
	svc := NewIdentityService(repo, jwtMgr, BypassConfig{}, logger)

	repo.On("GetByEmail", mock.Anything, "admin@gmail.com").
		Return(nil, apperrors.NotFound("profile", "admin@gmail.com"))

	_, err := svc.Login(context.Background(), "admin@gmail.com", "admin")
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
}

func TestLogin_CorrectPassword(t *testing.T) {
	repo := new(mockProfileRepository)
	svc := newTestIdentityService(repo)

	hash, err := bcrypt.GenerateFromPassword([]byte("hunter22"), bcrypt.MinCost)
	require.NoError(t, err)

	profile := &domain.Profile{
		ID:           "user-1",
		Email:        "jo@example.com",
		Role:         domain.RoleUser,
		PasswordHash: string(hash),
	}
	repo.On("GetByEmail", mock.Anything, "jo@example.com").Return(profile, nil)

	result, err := svc.Login(context.Background(), "Jo@Example.com", "hunter22")

	require.NoError(t, err)
	assert.Equal(t, "user-1", result.User.ID)
	assert.Equal(t, domain.RoleUser, result.User.Role)
}

func TestLogin_WrongPassword(t *testing.T) {
	repo := new(mockProfileRepository)
	svc := newTestIdentityService(repo)

	hash, err := bcrypt.GenerateFromPassword([]byte("hunter22"), bcrypt.MinCost)
	require.NoError(t, err)

	profile := &domain.Profile{ID: "user-1", Email: "jo@example.com", PasswordHash: string(hash)}
	repo.On("GetByEmail", mock.Anything, "jo@example.com").Return(profile, nil)

	_, err = svc.Login(context.Background(), "jo@example.com", "wrong")
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
}

func TestLogin_UnknownEmail(t *testing.T) {
	repo := new(mockProfileRepository)
	svc := newTestIdentityService(repo)

	repo.On("GetByEmail", mock.Anything, "ghost@example.com").
		Return(nil, apperrors.NotFound("profile", "ghost@example.com"))

	_, err := svc.Login(context.Background(), "ghost@example.com", "anything")
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
}

func TestGetSession_RoundTrip(t *testing.T) {
	repo := new(mockProfileRepository)
	svc := newTestIdentityService(repo)

	result, err := svc.Login(context.Background(), "admin@gmail.com", "admin")
	require.NoError(t, err)

	user, err := svc.GetSession(result.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "admin-123", user.ID)
	assert.Equal(t, domain.RoleAdmin, user.Role)
}

func TestGetSession_InvalidToken(t *testing.T) {
	repo := new(mockProfileRepository)
	svc := newTestIdentityService(repo)

	_, err := svc.GetSession("not-a-token")
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
}

func TestRegister_HashesPassword(t *testing.T) {
	repo := new(mockProfileRepository)
	svc := newTestIdentityService(repo)

	repo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Profile")).Return(nil)

	profile, err := svc.Register(context.Background(), &RegisterInput{
		Email:    "New@Example.com",
		Password: "secret-pass",
	})

	require.NoError(t, err)
	assert.Equal(t, "new@example.com", profile.Email)
	assert.Equal(t, domain.RoleUser, profile.Role)
	assert.NotEqual(t, "secret-pass", profile.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(profile.PasswordHash), []byte("secret-pass")))
}

func TestRegister_ShortPassword(t *testing.T) {
	repo := new(mockProfileRepository)
	svc := newTestIdentityService(repo)

	_, err := svc.Register(context.Background(), &RegisterInput{
		Email:    "a@example.com",
		Password: "abc",
	})

	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
	repo.AssertNotCalled(t, "Create")
}

func TestUpdateUserRole_RequiresManageUsers(t *testing.T) {
	repo := new(mockProfileRepository)
	svc := newTestIdentityService(repo)
	ctx := context.Background()

	admin := &domain.SessionUser{ID: "a", Role: domain.RoleAdmin}
	err := svc.UpdateUserRole(ctx, admin, "user-1", domain.RoleAdmin)
	assert.ErrorIs(t, err, apperrors.ErrForbidden)

	superAdmin := &domain.SessionUser{ID: "s", Role: domain.RoleSuperAdmin}
	repo.On("GetByID", ctx, "user-1").Return(&domain.Profile{ID: "user-1"}, nil)
	repo.On("UpdateRole", ctx, "user-1", domain.RoleAdmin).Return(nil)

	err = svc.UpdateUserRole(ctx, superAdmin, "user-1", domain.RoleAdmin)
	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestUpdateUserRole_InvalidRole(t *testing.T) {
	repo := new(mockProfileRepository)
	svc := newTestIdentityService(repo)

	superAdmin := &domain.SessionUser{ID: "s", Role: domain.RoleSuperAdmin}
	err := svc.UpdateUserRole(context.Background(), superAdmin, "user-1", "owner")

	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
	repo.AssertNotCalled(t, "UpdateRole")
}

func TestListUsers_RequiresManageUsers(t *testing.T) {
	repo := new(mockProfileRepository)
	svc := newTestIdentityService(repo)

	_, _, err := svc.ListUsers(context.Background(), &domain.SessionUser{Role: domain.RoleUser}, 1, 20)
	assert.ErrorIs(t, err, apperrors.ErrForbidden)
}
