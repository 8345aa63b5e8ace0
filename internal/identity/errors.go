package identity

import "errors"

// Sentinel kinds for identity errors.
var (
	ErrInvalidToken = errors.New("invalid bootstrap token")
)
