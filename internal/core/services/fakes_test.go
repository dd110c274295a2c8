package services_test

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/SscSPs/user_account_service/internal/apperrors"
	"github.com/SscSPs/user_account_service/internal/core/domain"
	portsrepo "github.com/SscSPs/user_account_service/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/user_account_service/internal/core/ports/services"
	"github.com/SscSPs/user_account_service/internal/platform/config"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// --- In-memory user store with the same slot semantics as the pgsql repository ---
type fakeUserRepo struct {
	mu    sync.Mutex
	users map[string]domain.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]domain.User)}
}

var _ portsrepo.UserRepositoryFacade = (*fakeUserRepo)(nil)

func (r *fakeUserRepo) FindUserByID(_ context.Context, userID string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[userID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &u, nil
}

func (r *fakeUserRepo) FindUserByUsernameOrEmail(_ context.Context, username, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if (username != "" && u.Username == username) || (email != "" && u.Email == email) {
			return &u, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (r *fakeUserRepo) CreateUser(_ context.Context, p domain.NewUserParams) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Username == p.Username || u.Email == p.Email {
			return nil, apperrors.ErrDuplicate
		}
	}
	u := domain.User{
		UserID:       uuid.NewString(),
		Username:     p.Username,
		Email:        p.Email,
		FullName:     p.FullName,
		PasswordHash: p.PasswordHash,
		Avatar:       p.Avatar,
		CoverImage:   p.CoverImage,
		AuditFields:  domain.AuditFields{CreatedAt: p.CreatedAt, LastUpdatedAt: p.CreatedAt},
	}
	r.users[u.UserID] = u
	return &u, nil
}

func (r *fakeUserRepo) SetRefreshTokenHash(_ context.Context, userID string, tokenHash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[userID]
	if !ok {
		return apperrors.ErrNotFound
	}
	u.RefreshTokenHash = tokenHash
	r.users[userID] = u
	return nil
}

func (r *fakeUserRepo) SwapRefreshTokenHash(_ context.Context, userID string, expected string, next string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[userID]
	if !ok || u.RefreshTokenHash == "" || u.RefreshTokenHash != expected {
		return false, nil
	}
	u.RefreshTokenHash = next
	r.users[userID] = u
	return true, nil
}

func (r *fakeUserRepo) ClearRefreshTokenHash(_ context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[userID]
	if !ok {
		return apperrors.ErrNotFound
	}
	u.RefreshTokenHash = ""
	r.users[userID] = u
	return nil
}

func (r *fakeUserRepo) slot(userID string) string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.users[userID].RefreshTokenHash
}

// --- Mock UserRepository for failure injection ---
type MockUserRepository struct {
	mock.Mock
}

var _ portsrepo.UserRepositoryFacade = (*MockUserRepository)(nil)

func (m *MockUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Error(1)
}

func (m *MockUserRepository) FindUserByUsernameOrEmail(ctx context.Context, username, email string) (*domain.User, error) {
	args := m.Called(ctx, username, email)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Error(1)
}

func (m *MockUserRepository) CreateUser(ctx context.Context, params domain.NewUserParams) (*domain.User, error) {
	args := m.Called(ctx, params)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Error(1)
}

func (m *MockUserRepository) SetRefreshTokenHash(ctx context.Context, userID string, tokenHash string) error {
	args := m.Called(ctx, userID, tokenHash)
	return args.Error(0)
}

func (m *MockUserRepository) SwapRefreshTokenHash(ctx context.Context, userID string, expected string, next string) (bool, error) {
	args := m.Called(ctx, userID, expected, next)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) ClearRefreshTokenHash(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

// --- Mock ImageUploader ---
type MockImageUploader struct {
	mock.Mock
}

var _ portssvc.ImageUploader = (*MockImageUploader)(nil)

func (m *MockImageUploader) Upload(ctx context.Context, localPath string) (string, error) {
	args := m.Called(ctx, localPath)
	return args.String(0), args.Error(1)
}

var errStoreDown = errors.New("store unavailable")

func newTestConfig(policy domain.LoginIdentifierPolicy) *config.Config {
	return &config.Config{
		AccessTokenSecret:          "access-secret-for-tests",
		AccessTokenExpiryDuration:  15 * time.Minute,
		RefreshTokenSecret:         "refresh-secret-for-tests",
		RefreshTokenExpiryDuration: 24 * time.Hour,
		JWTIssuer:                  "user-account-service-test",
		LoginIdentifierPolicy:      policy,
	}
}
