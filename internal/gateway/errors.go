package gateway

import "errors"

// GatewayError is a custom error type for platform failures callers branch on
type GatewayError string

// Error implements the error interface
func (e GatewayError) Error() string {
	return string(e)
}

const (
	// ErrNotFound means the target channel or message no longer exists
	ErrNotFound GatewayError = "resource not found"

	// ErrForbidden means the bot lacks permission for the call
	ErrForbidden GatewayError = "forbidden"
)

// IsNotFound reports whether err means the resource is already gone
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
