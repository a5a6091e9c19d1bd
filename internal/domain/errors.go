package domain

import "errors"

var (
	// ErrSourceUnavailable means the record source could not be opened or read
	ErrSourceUnavailable = errors.New("record source unavailable")

	// ErrInvalidTimestamp means a record timestamp could not be parsed
	ErrInvalidTimestamp = errors.New("invalid timestamp")

	// ErrMissingColumn means the source lacks a required column
	ErrMissingColumn = errors.New("missing required column")
)
