package entities

import "errors"

// Domain errors
var (
	// Record errors
	ErrRecordNotFound  = errors.New("record not found")
	ErrPropertyMissing = errors.New("property missing")
	ErrPropertyEmpty   = errors.New("property has no text")

	// Archive errors
	ErrArchiveObjectNotFound = errors.New("archived object not found")

	// Sweep errors
	ErrSweepInProgress = errors.New("sweep already in progress")
)
