package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"timehair/internal/domain"
	"timehair/internal/pkg/jwt"
)

type mockUserRepo struct {
	mock.Mock
}

func (m *mockUserRepo) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *mockUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func adminUser(t *testing.T) *domain.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("admin"), bcrypt.MinCost)
	require.NoError(t, err)
	return &domain.User{ID: "u-1", Username: "admin", PasswordHash: string(hash), CreatedAt: time.Now()}
}

func TestService_Login_Success(t *testing.T) {
	users := new(mockUserRepo)
	users.On("GetByUsername", mock.Anything, "admin").Return(adminUser(t), nil)
	tokens := jwt.New("secret", 24*time.Hour)
	svc := NewService(users, tokens)

	res, err := svc.Login(context.Background(), LoginRequest{Username: " admin ", Password: "admin"})

	require.NoError(t, err)
	assert.Equal(t, "admin", res.User.Username)
	claims, err := tokens.ValidateToken(res.Token)
	require.NoError(t, err)
	assert.Equal(t, "u-1", claims.UserID)
	users.AssertExpectations(t)
}

func TestService_Login_WrongPassword(t *testing.T) {
	users := new(mockUserRepo)
	users.On("GetByUsername", mock.Anything, "admin").Return(adminUser(t), nil)
	svc := NewService(users, jwt.New("secret", time.Hour))

	_, err := svc.Login(context.Background(), LoginRequest{Username: "admin", Password: "nope"})

	assert.ErrorIs(t, err, ErrInvalidCredentials)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestService_Login_UnknownUser(t *testing.T) {
	users := new(mockUserRepo)
	users.On("GetByUsername", mock.Anything, "ghost").Return(nil, domain.ErrNotFound)
	svc := NewService(users, jwt.New("secret", time.Hour))

	_, err := svc.Login(context.Background(), LoginRequest{Username: "ghost", Password: "x"})

	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestService_Login_StorageFailurePropagates(t *testing.T) {
	users := new(mockUserRepo)
	storageErr := errors.Join(domain.ErrStorage, errors.New("disk"))
	users.On("GetByUsername", mock.Anything, "admin").Return(nil, storageErr)
	svc := NewService(users, jwt.New("secret", time.Hour))

	_, err := svc.Login(context.Background(), LoginRequest{Username: "admin", Password: "admin"})

	assert.ErrorIs(t, err, domain.ErrStorage)
}

func TestService_CurrentUser(t *testing.T) {
	users := new(mockUserRepo)
	u := adminUser(t)
	users.On("GetByID", mock.Anything, "u-1").Return(u, nil)
	tokens := jwt.New("secret", time.Hour)
	svc := NewService(users, tokens)

	token, err := tokens.GenerateToken("u-1", "admin")
	require.NoError(t, err)

	info, err := svc.CurrentUser(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, "admin", info.Username)
}

func TestService_CurrentUser_ExpiredToken(t *testing.T) {
	users := new(mockUserRepo)
	expired, err := jwt.New("secret", -time.Minute).GenerateToken("u-1", "admin")
	require.NoError(t, err)
	svc := NewService(users, jwt.New("secret", time.Hour))

	_, err = svc.CurrentUser(context.Background(), expired)

	assert.ErrorIs(t, err, ErrInvalidToken)
	users.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
}

func TestService_CurrentUser_DeletedUser(t *testing.T) {
	users := new(mockUserRepo)
	users.On("GetByID", mock.Anything, "u-1").Return(nil, domain.ErrNotFound)
	tokens := jwt.New("secret", time.Hour)
	token, _ := tokens.GenerateToken("u-1", "admin")

	_, err := NewService(users, tokens).CurrentUser(context.Background(), token)

	assert.ErrorIs(t, err, ErrInvalidToken)
}
