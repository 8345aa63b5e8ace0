package sink

import "errors"

// Sentinel kinds for sink errors.
var (
	ErrTransport = errors.New("sink transport failed")
)
