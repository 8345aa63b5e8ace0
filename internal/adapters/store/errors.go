package store

import "errors"

// Sentinel kinds for store errors.
var (
	ErrOutOfRange = errors.New("made shots out of range")
	ErrClosed     = errors.New("store closed")
)
