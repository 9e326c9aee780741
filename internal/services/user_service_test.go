package services_test

import (
	"context"
	"testing"

	"catalog/internal/apperror"
	"catalog/internal/models"
	"catalog/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestUserService_CreateUser(t *testing.T) {
	mockRepo := new(MockUserRepository)
	events := new(MockPublisher)
	service := services.NewUserService(mockRepo, events)
	ctx := context.Background()

	mockRepo.On("GetByEmail", ctx, "jane@example.com").Return(nil, apperror.NotFound("User not found")).Once()
	mockRepo.On("Create", ctx, mock.AnythingOfType("*models.User")).Return(nil).Once()
	events.On("Publish", ctx, services.EventUserCreated, mock.AnythingOfType("*models.User")).Return(nil).Once()

	user, err := service.CreateUser(ctx, models.UserInput{
		Name:     "Jane",
		Email:    "Jane@Example.com",
		Password: "secret123",
	})
	require.NoError(t, err)

	assert.Equal(t, "jane@example.com", user.Email)
	assert.Equal(t, models.RoleUser, user.Role)
	assert.NotNil(t, user.Cart)
	assert.NotEqual(t, "secret123", user.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("secret123")))
	mockRepo.AssertExpectations(t)
	events.AssertExpectations(t)
}

func TestUserService_CreateUser_DuplicateEmail(t *testing.T) {
	mockRepo := new(MockUserRepository)
	service := services.NewUserService(mockRepo, nil)
	ctx := context.Background()

	mockRepo.On("GetByEmail", ctx, "jane@example.com").Return(&models.User{ID: "1", Email: "jane@example.com"}, nil).Once()

	_, err := service.CreateUser(ctx, models.UserInput{Name: "Jane", Email: "jane@example.com", Password: "secret123"})
	assert.True(t, apperror.Is(err, apperror.KindConflict))
	mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestUserService_CreateUser_Validation(t *testing.T) {
	mockRepo := new(MockUserRepository)
	service := services.NewUserService(mockRepo, nil)

	_, err := service.CreateUser(context.Background(), models.UserInput{Name: "Jane", Email: "not-an-email", Password: "123", Role: "owner"})
	require.Error(t, err)

	var appErr *apperror.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperror.KindValidation, appErr.Kind)
	assert.Contains(t, appErr.Fields, "Email")
	assert.Contains(t, appErr.Fields, "Password")
	assert.Contains(t, appErr.Fields, "Role")
	mockRepo.AssertNotCalled(t, "GetByEmail", mock.Anything, mock.Anything)
}

func TestUserService_UpdateRole(t *testing.T) {
	mockRepo := new(MockUserRepository)
	events := new(MockPublisher)
	service := services.NewUserService(mockRepo, events)
	ctx := context.Background()

	updated := &models.User{ID: "1", Name: "Jane", Role: models.RoleAdmin}
	mockRepo.On("UpdateRole", ctx, "1", models.RoleAdmin).Return(updated, nil).Once()
	events.On("Publish", ctx, services.EventUserRoleUpdated, updated).Return(nil).Once()

	user, err := service.UpdateRole(ctx, "1", models.RoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, user.Role)

	_, err = service.UpdateRole(ctx, "1", models.Role("owner"))
	assert.True(t, apperror.Is(err, apperror.KindValidation))

	mockRepo.On("UpdateRole", ctx, "missing", models.RoleUser).Return(nil, apperror.NotFound("User with ID missing not found")).Once()
	_, err = service.UpdateRole(ctx, "missing", models.RoleUser)
	assert.True(t, apperror.Is(err, apperror.KindNotFound))

	mockRepo.AssertExpectations(t)
	events.AssertExpectations(t)
}
