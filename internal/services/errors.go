package services

import "errors"

var (
	// ErrForbidden means the caller is authenticated but not entitled to
	// act on the target resource. Handlers surface it as a bare 403.
	ErrForbidden = errors.New("forbidden")

	// ErrNotFound means the target resource does not exist. Handlers
	// surface it as a bare 404.
	ErrNotFound = errors.New("not found")
)
