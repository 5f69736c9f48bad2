package repositories

import (
	"sync"
	"time"

	"til/internal/models"

	"github.com/google/uuid"
)

// MockPostRepository is an in-memory implementation of PostRepository.
type MockPostRepository struct {
	posts map[string]models.Post
	mu    sync.RWMutex
}

// NewMockPostRepository creates a new instance of MockPostRepository.
func NewMockPostRepository() *MockPostRepository {
	return &MockPostRepository{
		posts: make(map[string]models.Post),
	}
}

// GetAll returns all posts.
func (r *MockPostRepository) GetAll() ([]models.Post, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	postList := make([]models.Post, 0, len(r.posts))
	for _, p := range r.posts {
		postList = append(postList, p)
	}
	return postList, nil
}

// GetByID returns a post by its ID.
func (r *MockPostRepository) GetByID(id string) (*models.Post, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	post, ok := r.posts[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &post, nil
}

// Create adds a new post.
func (r *MockPostRepository) Create(post *models.Post) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if post.ID == "" {
		post.ID = uuid.New().String()
	}
	post.CreatedAt = time.Now()
	post.UpdatedAt = time.Now()
	r.posts[post.ID] = *post
	return nil
}

// Update modifies an existing post.
func (r *MockPostRepository) Update(post *models.Post) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, ok := r.posts[post.ID]
	if !ok {
		return ErrNotFound
	}
	post.UpdatedAt = time.Now()
	r.posts[post.ID] = *post
	return nil
}

// Delete removes a post by its ID.
func (r *MockPostRepository) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, ok := r.posts[id]
	if !ok {
		return ErrNotFound
	}
	delete(r.posts, id)
	return nil
}

// Reset clears all stored posts. Intended for test harnesses.
func (r *MockPostRepository) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.posts = make(map[string]models.Post)
}
