package services

import (
	"errors"
	"fmt"
	"log"

	"til/internal/models"
	"til/internal/repositories"
)

// PostEventPublisher publishes post lifecycle events to a message
// broker. Implemented by pkg/rabbitmq.Client; tests inject mocks.
type PostEventPublisher interface {
	PublishPostCreated(event map[string]interface{}) error
}

// PostService handles business logic related to posts.
type PostService struct {
	postRepo  repositories.PostRepository
	publisher PostEventPublisher
}

// NewPostService creates a new PostService. publisher may be nil, in
// which case post events are not published.
func NewPostService(postRepo repositories.PostRepository, publisher PostEventPublisher) *PostService {
	return &PostService{
		postRepo:  postRepo,
		publisher: publisher,
	}
}

// GetAllPosts retrieves all posts.
func (s *PostService) GetAllPosts() ([]models.Post, error) {
	return s.postRepo.GetAll()
}

// GetPostByID retrieves a single post by its ID.
func (s *PostService) GetPostByID(id string) (*models.Post, error) {
	post, err := s.postRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return post, nil
}

// CreatePost creates a new post owned by authorID. The author always
// comes from the authenticated identity, never from the request body.
func (s *PostService) CreatePost(authorID string, req models.CreatePostRequest) (*models.Post, error) {
	post := &models.Post{
		AuthorID: authorID,
		Title:    req.Title,
		Content:  req.Content,
	}
	if err := s.postRepo.Create(post); err != nil {
		return nil, fmt.Errorf("failed to create post: %w", err)
	}

	if s.publisher != nil {
		event := map[string]interface{}{
			"postID":   post.ID,
			"authorID": post.AuthorID,
			"title":    post.Title,
		}
		if err := s.publisher.PublishPostCreated(event); err != nil {
			log.Printf("Warning: failed to publish post created event for post %s: %v", post.ID, err)
		}
	}

	return post, nil
}

// UpdatePost applies a partial update to a post on behalf of the
// caller. Only the post's author may update it. Recognized keys are
// "title" and "content"; "id", "authorId" and unknown keys are
// silently dropped. The merged post is returned.
func (s *PostService) UpdatePost(callerID, id string, updates map[string]string) (*models.Post, error) {
	post, err := s.postRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if post.AuthorID != callerID {
		return nil, ErrForbidden
	}

	for key, value := range updates {
		switch key {
		case "title":
			post.Title = value
		case "content":
			post.Content = value
		}
	}

	if err := s.postRepo.Update(post); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to update post %s: %w", id, err)
	}
	return post, nil
}

// DeletePost deletes a post on behalf of the caller. Only the post's
// author may delete it. On success the pre-deletion record is returned.
func (s *PostService) DeletePost(callerID, id string) (*models.Post, error) {
	post, err := s.postRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if post.AuthorID != callerID {
		return nil, ErrForbidden
	}

	if err := s.postRepo.Delete(id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to delete post %s: %w", id, err)
	}
	return post, nil
}
