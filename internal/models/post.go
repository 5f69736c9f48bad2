package models

import "time"

// Post represents a single "today I learned" entry.
// AuthorID is set from the authenticated identity when the post is
// created and is never changed by an update.
type Post struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	AuthorID  string    `json:"authorId" gorm:"index;type:varchar(36)"`
	Title     string    `json:"title" validate:"required,min=1,max=200"`
	Content   string    `json:"content" validate:"omitempty,max=5000"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// CreatePostRequest is the payload accepted by the post creation endpoint.
// The author is always taken from the authenticated identity, never from
// the body.
type CreatePostRequest struct {
	Title   string `json:"title" validate:"required,min=1,max=200"`
	Content string `json:"content" validate:"omitempty,max=5000"`
}

// UpdatePostRequest carries a partial field map for a post update.
// Unrecognized keys are dropped by the service.
type UpdatePostRequest struct {
	Updates map[string]string `json:"updates" validate:"required"`
}
