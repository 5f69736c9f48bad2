package repositories

import "errors"

// ErrNotFound is returned by repositories when no record matches the
// given key. Callers discriminate it from store failures with errors.Is.
var ErrNotFound = errors.New("record not found")
