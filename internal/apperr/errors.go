// Package apperr holds the failure kinds shared by the portal services.
// Callers wrap them with fmt.Errorf("...: %w", ErrX) and test with errors.Is.
package apperr

import "errors"

// ErrUnauthenticated means no credential was presented.
var ErrUnauthenticated = errors.New("unauthenticated")

// ErrInvalidCredential means a credential was presented but its signature
// did not match or it has expired.
var ErrInvalidCredential = errors.New("invalid credential")

// ErrForbidden means the caller is authenticated but not permitted.
var ErrForbidden = errors.New("forbidden")

// ErrInvalidState means an authenticated identity has no backing profile.
var ErrInvalidState = errors.New("identity has no profile")

// ErrUnavailable means the persistence store timed out or is unreachable.
var ErrUnavailable = errors.New("store unavailable")

var ErrNotFound = errors.New("not found")

var ErrInvalidInput = errors.New("invalid input")
