package domain

import "errors"

var (
	// ErrNotFound is returned by repositories when a record does not exist
	ErrNotFound = errors.New("not found")

	// ErrInvalidArgument wraps every validation failure
	ErrInvalidArgument = errors.New("invalid argument")
)
