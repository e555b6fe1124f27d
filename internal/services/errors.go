package services

import (
	"errors"
)

// Error taxonomy shared by the lifecycle services. Store errors that do not
// fit one of these propagate verbatim; nothing here retries.
var (
	ErrNotFound          = errors.New("not found")
	ErrValidation        = errors.New("validation failed")
	ErrForbidden         = errors.New("forbidden")
	ErrRejectedImmutable = errors.New("rejected reviews cannot be edited")
)
