package models

import "errors"

var (
	// ErrNameCollision is returned when a rename target is already used by another object.
	ErrNameCollision = errors.New("name already in use")
	ErrEmptyName     = errors.New("name cannot be empty")
	ErrNotFound      = errors.New("object not found")
	ErrWrongType     = errors.New("object has the wrong type")
)
