package errors

// Package errors provides sentinel errors for note discovery and rendering
// operations. These enable consistent classification at the command boundary.

import "errors"

var (
	// ErrContentRootNotFound indicates the configured content root does not exist.
	ErrContentRootNotFound = errors.New("content root not found")

	// ErrWalkFailed indicates filesystem traversal of the content root failed.
	ErrWalkFailed = errors.New("content root walk failed")

	// ErrFileReadFailed indicates reading a discovered note failed.
	ErrFileReadFailed = errors.New("note read failed")

	// ErrFileWriteFailed indicates writing a rendered page failed.
	ErrFileWriteFailed = errors.New("page write failed")

	// ErrInvalidRelativePath indicates calculating a path relative to the content root failed.
	ErrInvalidRelativePath = errors.New("invalid relative path calculation")
)
