package services_test

import (
	"context"
	"testing"
	"time"

	"catalog/internal/apperror"
	"catalog/internal/models"
	"catalog/internal/services"

	"github.com/dgrijalva/jwt-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const testSecret = "test_secret_key"

func hashedUser(t *testing.T, password string) *models.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return &models.User{ID: "user-1", Name: "Admin", Email: "admin@example.com", Password: string(hash), Role: models.RoleAdmin}
}

func TestAuthService_Login(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := services.NewAuthService(mockRepo, testSecret)
	ctx := context.Background()

	user := hashedUser(t, "secret123")
	mockRepo.On("GetByEmail", ctx, "admin@example.com").Return(user, nil)

	t.Run("valid credentials", func(t *testing.T) {
		token, err := authService.Login(ctx, "  Admin@Example.com ", "secret123")
		require.NoError(t, err)
		assert.NotEmpty(t, token)

		claims, err := authService.ValidateToken(token)
		require.NoError(t, err)
		assert.Equal(t, "user-1", claims.UserID)
		assert.Equal(t, models.RoleAdmin, claims.Role)
		assert.WithinDuration(t, time.Now().Add(24*time.Hour), time.Unix(claims.ExpiresAt, 0), time.Minute)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := authService.Login(ctx, "admin@example.com", "nope")
		assert.True(t, apperror.Is(err, apperror.KindUnauthorized))
	})
}

func TestAuthService_Login_UnknownEmail(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := services.NewAuthService(mockRepo, testSecret)
	ctx := context.Background()

	mockRepo.On("GetByEmail", ctx, "ghost@example.com").Return(nil, apperror.NotFound("User not found")).Once()

	_, err := authService.Login(ctx, "ghost@example.com", "whatever")
	require.Error(t, err)
	assert.True(t, apperror.Is(err, apperror.KindUnauthorized))
	assert.Equal(t, "invalid credentials", err.Error())
}

func TestAuthService_Login_StoreFailure(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := services.NewAuthService(mockRepo, testSecret)
	ctx := context.Background()

	mockRepo.On("GetByEmail", ctx, "admin@example.com").Return(nil, apperror.New(apperror.KindStore, "connection refused")).Once()

	_, err := authService.Login(ctx, "admin@example.com", "secret123")
	assert.True(t, apperror.Is(err, apperror.KindStore))
}

func TestAuthService_ValidateToken(t *testing.T) {
	authService := services.NewAuthService(new(MockUserRepository), testSecret)

	t.Run("expired", func(t *testing.T) {
		token := jwt.NewWithClaims(jwt.SigningMethodHS256, services.Claims{
			UserID:         "user-1",
			Role:           models.RoleUser,
			StandardClaims: jwt.StandardClaims{ExpiresAt: time.Now().Add(-time.Hour).Unix()},
		})
		signed, err := token.SignedString([]byte(testSecret))
		require.NoError(t, err)

		_, err = authService.ValidateToken(signed)
		assert.True(t, apperror.Is(err, apperror.KindUnauthorized))
	})

	t.Run("wrong secret", func(t *testing.T) {
		other := services.NewAuthService(new(MockUserRepository), "another_secret")
		signed, err := other.IssueToken(&models.User{ID: "user-1", Role: models.RoleUser})
		require.NoError(t, err)

		_, err = authService.ValidateToken(signed)
		assert.True(t, apperror.Is(err, apperror.KindUnauthorized))
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := authService.ValidateToken("not.a.token")
		assert.True(t, apperror.Is(err, apperror.KindUnauthorized))
	})
}
