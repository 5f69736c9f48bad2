package services_test

import (
	"testing"

	"til/internal/models"
	"til/internal/repositories"
	"til/internal/services"

	"github.com/stretchr/testify/assert"
)

func TestUserService_GetAllUsers(t *testing.T) {
	mockRepo := new(MockUserRepository)
	service := services.NewUserService(mockRepo)

	stored := []models.User{
		{ID: "1", Username: "alice", Email: "alice@example.com", Hash: "h1", Salt: "s1"},
		{ID: "2", Username: "bob", Email: "bob@example.com", Hash: "h2", Salt: "s2"},
	}
	mockRepo.On("GetAll").Return(stored, nil).Once()

	users, err := service.GetAllUsers()
	assert.NoError(t, err)
	assert.Len(t, users, len(stored))
	for _, u := range users {
		assert.Empty(t, u.Hash)
		assert.Empty(t, u.Salt)
		assert.Zero(t, u.IssuedAt)
		assert.Zero(t, u.ExpiresAt)
	}
	assert.Equal(t, "alice", users[0].Username)
	assert.Equal(t, "bob", users[1].Username)
	mockRepo.AssertExpectations(t)
}

func TestUserService_DeleteUser_Forbidden(t *testing.T) {
	mockRepo := new(MockUserRepository)
	service := services.NewUserService(mockRepo)

	// A mismatched caller is rejected before any lookup, even when the
	// target id does not exist in the store.
	user, err := service.DeleteUser("caller-id", "someone-else")
	assert.Nil(t, user)
	assert.ErrorIs(t, err, services.ErrForbidden)
	mockRepo.AssertNotCalled(t, "GetByID", "someone-else")
	mockRepo.AssertNotCalled(t, "Delete", "someone-else")
}

func TestUserService_DeleteUser_NotFound(t *testing.T) {
	mockRepo := new(MockUserRepository)
	service := services.NewUserService(mockRepo)

	mockRepo.On("GetByID", "ghost").Return(nil, repositories.ErrNotFound).Once()

	user, err := service.DeleteUser("ghost", "ghost")
	assert.Nil(t, user)
	assert.ErrorIs(t, err, services.ErrNotFound)
	mockRepo.AssertNotCalled(t, "Delete", "ghost")
	mockRepo.AssertExpectations(t)
}

func TestUserService_DeleteUser_Success(t *testing.T) {
	mockRepo := new(MockUserRepository)
	service := services.NewUserService(mockRepo)

	stored := &models.User{ID: "user-1", Username: "alice", Email: "alice@example.com", Hash: "h", Salt: "s"}
	mockRepo.On("GetByID", "user-1").Return(stored, nil).Once()
	mockRepo.On("Delete", "user-1").Return(nil).Once()

	user, err := service.DeleteUser("user-1", "user-1")
	assert.NoError(t, err)
	assert.Equal(t, "user-1", user.ID)
	assert.Equal(t, "alice", user.Username)
	// The returned pre-deletion record is sanitized.
	assert.Empty(t, user.Hash)
	assert.Empty(t, user.Salt)
	mockRepo.AssertExpectations(t)
}

func TestUserService_GetUserByID(t *testing.T) {
	mockRepo := new(MockUserRepository)
	service := services.NewUserService(mockRepo)

	stored := &models.User{ID: "user-1", Username: "alice", Hash: "h", Salt: "s"}
	mockRepo.On("GetByID", "user-1").Return(stored, nil).Once()
	user, err := service.GetUserByID("user-1")
	assert.NoError(t, err)
	assert.Equal(t, "alice", user.Username)
	assert.Empty(t, user.Hash)
	mockRepo.AssertExpectations(t)

	mockRepo.On("GetByID", "ghost").Return(nil, repositories.ErrNotFound).Once()
	user, err = service.GetUserByID("ghost")
	assert.Nil(t, user)
	assert.ErrorIs(t, err, services.ErrNotFound)
	mockRepo.AssertExpectations(t)
}
