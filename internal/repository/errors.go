package repository

import "errors"

// ErrNotFound is wrapped by all repositories when a row does not exist.
// Callers match it with errors.Is.
var ErrNotFound = errors.New("not found")
