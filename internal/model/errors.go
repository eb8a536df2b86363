package model

import "errors"

// ErrNotFound is returned by stores when no row matches the query.
var ErrNotFound = errors.New("not found")

// ErrConflict is returned by stores when an insert violates a
// uniqueness constraint.
var ErrConflict = errors.New("already exists")
