package app

import "errors"

// Sentinel kinds for session errors.
var (
	ErrOutOfRange       = errors.New("made shots out of range")
	ErrInvalidView      = errors.New("unknown view")
	ErrSubmitFailed     = errors.New("submit failed")
	ErrVoiceUnsupported = errors.New("voice capture not supported")
)
