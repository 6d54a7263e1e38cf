package models

import "errors"

var (
	// ErrInvalidArgument indicates a malformed or missing required input.
	// It is surfaced immediately at the call site and never recovered.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrNotFound indicates that neither the remote source nor the
	// fallback store has a matching post.
	ErrNotFound = errors.New("post not found")
)
