package mongo

import (
	"context"
	"errors"

	"gymbuddy/app/internal/repository"

	"go.mongodb.org/mongo-driver/mongo"
)

// mapErr translates driver errors into repository sentinels. Timeouts and
// cancellations become ErrUnavailable so callers can retry; everything else
// passes through.
func mapErr(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, mongo.ErrNoDocuments):
		return repository.ErrNotFound
	case mongo.IsDuplicateKeyError(err):
		return repository.ErrDuplicate
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled), mongo.IsTimeout(err):
		return repository.ErrUnavailable
	default:
		return err
	}
}
