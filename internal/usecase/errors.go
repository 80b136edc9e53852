package usecase

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrNotFound              = errors.New("resource not found")
	ErrUnauthorized          = errors.New("unauthorized")
	ErrDependencyUnavailable = errors.New("dependency unavailable")
	ErrScoringInProgress     = errors.New("scoring run already in progress")
	ErrAlreadyArchived       = errors.New("season already archived")
)

// BatchError reports a batch that stopped part way. Processed counts the items
// committed before the failure so the caller can retry without double work.
type BatchError struct {
	Op        string
	Processed int
	Err       error
}

func (e *BatchError) Error() string {
	return fmt.Sprintf("%s aborted after %d processed: %v", e.Op, e.Processed, e.Err)
}

func (e *BatchError) Unwrap() error {
	return e.Err
}

// AsBatchError extracts a BatchError from err's chain.
func AsBatchError(err error) (*BatchError, bool) {
	var batchErr *BatchError
	if errors.As(err, &batchErr) {
		return batchErr, true
	}
	return nil, false
}
