// Package domain holds the error kind shared by every domain service.
package domain

import (
	"errors"
	"fmt"
)

// NotFoundError is the only error kind the domain services raise themselves:
// a lookup the caller expected to succeed found no matching record. The
// transport layer maps it to a 404. Every other failure propagates unchanged.
type NotFoundError struct {
	msg string
}

func (e *NotFoundError) Error() string { return e.msg }

// NewNotFound builds a NotFoundError for an id lookup, e.g.
// "Game not found with id: 42".
func NewNotFound(resource string, id int64) *NotFoundError {
	return &NotFoundError{msg: fmt.Sprintf("%s not found with id: %d", resource, id)}
}

// NotFoundf builds a NotFoundError with a free-form lookup value, e.g.
// "Platform not found: ps5".
func NotFoundf(resource string, value string) *NotFoundError {
	return &NotFoundError{msg: fmt.Sprintf("%s not found: %s", resource, value)}
}

// IsNotFound reports whether err is (or wraps) a NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}
