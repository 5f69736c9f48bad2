package repositories

import "til/internal/models"

// PostRepository defines the interface for post data access.
type PostRepository interface {
	GetAll() ([]models.Post, error)
	GetByID(id string) (*models.Post, error)
	Create(post *models.Post) error
	Update(post *models.Post) error
	Delete(id string) error
}
