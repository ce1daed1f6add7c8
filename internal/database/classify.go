package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/doctorsportal/portal/internal/apperr"
	"go.mongodb.org/mongo-driver/mongo"
)

// Classify maps driver failures that mean "the store could not be reached
// in time" onto apperr.ErrUnavailable, keeping the driver error as detail.
// Not-found is left alone: repositories translate mongo.ErrNoDocuments
// themselves. A nil error stays nil.
func Classify(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, apperr.ErrUnavailable) {
		return err
	}
	if errors.Is(err, context.DeadlineExceeded) ||
		errors.Is(err, context.Canceled) ||
		errors.Is(err, mongo.ErrClientDisconnected) ||
		mongo.IsTimeout(err) ||
		mongo.IsNetworkError(err) {
		return fmt.Errorf("%w: %v", apperr.ErrUnavailable, err)
	}
	return err
}

// IsDuplicateKey reports whether err is a unique index violation.
func IsDuplicateKey(err error) bool {
	return mongo.IsDuplicateKeyError(err)
}
