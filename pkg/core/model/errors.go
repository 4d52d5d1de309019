package model

import "errors"

// Error kinds surfaced to the user. Callers wrap these with context and match with errors.Is.
var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrInsufficientRoster = errors.New("insufficient roster")
	ErrFileNotFound       = errors.New("file not found")
	ErrExportFailure      = errors.New("export failure")
)
