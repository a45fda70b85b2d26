package domain

import "errors"

var (
	ErrNotFound          = errors.New("resource not found")
	ErrInvalidInput      = errors.New("invalid input")
	ErrSyncInProgress    = errors.New("delta sync already in progress")
	ErrSyncCancelled     = errors.New("delta sync cancelled by reset")
	ErrSourceUnavailable = errors.New("sample source unavailable")
	ErrNoSummary         = errors.New("not enough data for a summary")
)
