package api

import "errors"

// Error is a business-rule failure: the server answered with
// success:false and a message meant to be shown to the user verbatim.
type Error struct {
	StatusCode int
	Message    string
}

func (e *Error) Error() string {
	return e.Message
}

// IsBusinessError reports whether err carries a server-side business
// message, as opposed to a transport or parse failure.
func IsBusinessError(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr)
}
