package auth

import (
	"context"
	"testing"

	"conectasonda/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, u *domain.User) error {
	args := m.Called(ctx, u)
	if u != nil {
		u.ID = 12
	}
	return args.Error(0)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

type stubIssuer struct{}

func (stubIssuer) GenerateToken(userID int64, role domain.UserRole) (string, error) {
	return "token", nil
}

func hash(t *testing.T, password string) string {
	t.Helper()
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(h)
}

func TestService_Login(t *testing.T) {
	t.Run("valid credentials", func(t *testing.T) {
		users := new(MockUserRepository)
		users.On("GetByEmail", mock.Anything, "operator@conectasonda.cl").
			Return(&domain.User{
				ID:           12,
				Email:        "operator@conectasonda.cl",
				PasswordHash: hash(t, "secret123"),
				Role:         domain.RoleOperator,
			}, nil)

		svc := NewService(users, stubIssuer{})

		res, err := svc.Login(context.Background(), LoginRequest{
			Email:    "operator@conectasonda.cl",
			Password: "secret123",
		})
		require.NoError(t, err)
		assert.Equal(t, "token", res.AccessToken)
		assert.Equal(t, int64(12), res.User.ID)
	})

	t.Run("wrong password", func(t *testing.T) {
		users := new(MockUserRepository)
		users.On("GetByEmail", mock.Anything, "operator@conectasonda.cl").
			Return(&domain.User{PasswordHash: hash(t, "secret123")}, nil)

		svc := NewService(users, stubIssuer{})

		_, err := svc.Login(context.Background(), LoginRequest{
			Email:    "operator@conectasonda.cl",
			Password: "wrong",
		})
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown email", func(t *testing.T) {
		users := new(MockUserRepository)
		users.On("GetByEmail", mock.Anything, "nobody@conectasonda.cl").
			Return(nil, gorm.ErrRecordNotFound)

		svc := NewService(users, stubIssuer{})

		_, err := svc.Login(context.Background(), LoginRequest{
			Email:    "nobody@conectasonda.cl",
			Password: "secret123",
		})
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestService_Register(t *testing.T) {
	t.Run("defaults to operator role", func(t *testing.T) {
		users := new(MockUserRepository)
		users.On("GetByEmail", mock.Anything, "new@conectasonda.cl").
			Return(nil, gorm.ErrRecordNotFound)
		users.On("Create", mock.Anything, mock.Anything).Return(nil)

		svc := NewService(users, stubIssuer{})

		u, err := svc.Register(context.Background(), RegisterRequest{
			Email:    "new@conectasonda.cl",
			Password: "secret123",
			Name:     "Nuevo Operador",
		})
		require.NoError(t, err)
		assert.Equal(t, domain.RoleOperator, u.Role)
		assert.NotEqual(t, "secret123", u.PasswordHash)
	})

	t.Run("email already taken", func(t *testing.T) {
		users := new(MockUserRepository)
		users.On("GetByEmail", mock.Anything, "operator@conectasonda.cl").
			Return(&domain.User{ID: 12}, nil)

		svc := NewService(users, stubIssuer{})

		_, err := svc.Register(context.Background(), RegisterRequest{
			Email:    "operator@conectasonda.cl",
			Password: "secret123",
			Name:     "Duplicado",
		})
		assert.ErrorIs(t, err, ErrEmailTaken)
		users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("unknown role", func(t *testing.T) {
		svc := NewService(new(MockUserRepository), stubIssuer{})

		_, err := svc.Register(context.Background(), RegisterRequest{
			Email:    "new@conectasonda.cl",
			Password: "secret123",
			Name:     "Nuevo",
			Role:     "admin",
		})
		assert.ErrorIs(t, err, ErrValidation)
	})
}
