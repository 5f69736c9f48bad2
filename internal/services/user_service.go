package services

import (
	"errors"
	"fmt"

	"til/internal/models"
	"til/internal/repositories"
)

// UserService handles business logic related to user resources.
type UserService struct {
	userRepo repositories.UserRepository
}

// NewUserService creates a new UserService.
func NewUserService(userRepo repositories.UserRepository) *UserService {
	return &UserService{
		userRepo: userRepo,
	}
}

// GetAllUsers retrieves every user, sanitized.
func (s *UserService) GetAllUsers() ([]models.User, error) {
	users, err := s.userRepo.GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	sanitized := make([]models.User, 0, len(users))
	for _, u := range users {
		sanitized = append(sanitized, SanitizeUser(u))
	}
	return sanitized, nil
}

// GetUserByID retrieves a single user by ID, sanitized.
func (s *UserService) GetUserByID(id string) (*models.User, error) {
	user, err := s.userRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	sanitized := SanitizeUser(*user)
	return &sanitized, nil
}

// DeleteUser deletes the user identified by targetID on behalf of the
// caller. Only the user themselves may delete their account; the
// ownership check uses id equality alone and runs before any lookup,
// so a mismatched caller gets ErrForbidden even when the target does
// not exist. On success the sanitized pre-deletion record is returned.
func (s *UserService) DeleteUser(callerID, targetID string) (*models.User, error) {
	if callerID != targetID {
		return nil, ErrForbidden
	}

	user, err := s.userRepo.GetByID(targetID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if err := s.userRepo.Delete(targetID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to delete user %s: %w", targetID, err)
	}

	sanitized := SanitizeUser(*user)
	return &sanitized, nil
}
