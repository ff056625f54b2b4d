// internal/domain/entity/errors.go
package entity

import "errors"

// Error kinds surfaced by the core. Callers classify with errors.Is; the
// data-source client wraps its HTTP failures in these sentinels.
var (
	ErrValidation     = errors.New("validation failed")
	ErrNotFound       = errors.New("not found")
	ErrInvalidRequest = errors.New("invalid request")
	ErrUnauthorized   = errors.New("unauthorized")
	ErrDecode         = errors.New("decode failed")
)
