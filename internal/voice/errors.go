package voice

import "errors"

// Sentinel kinds for voice errors.
var (
	ErrUnsupported = errors.New("speech recognition not supported")
)
