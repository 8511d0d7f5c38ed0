package errors

import (
	"context"
)

// CheckContext returns a wrapped error if the context is canceled or has
// exceeded its deadline. The dispatchers use this to distinguish
// infrastructure-level aborts from per-individual failures.
func CheckContext(ctx context.Context, operation string) error {
	err := ctx.Err()
	if err == nil {
		return nil
	}
	if err == context.DeadlineExceeded {
		return Wrap(err, Timeout, operation+" deadline exceeded")
	}
	return Wrap(err, Canceled, operation+" canceled")
}
