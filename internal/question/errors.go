package question

import "errors"

// Error kinds surfaced by the service. Handlers map them onto HTTP statuses.
var (
	ErrBadRequest    = errors.New("bad request")
	ErrNotFound      = errors.New("resource not found")
	ErrUnprocessable = errors.New("unprocessable")
	ErrInternal      = errors.New("internal error")
)
