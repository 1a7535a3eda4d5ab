package service

import (
	"errors"

	"kanban-board-api/internal/ordering"
	"kanban-board-api/internal/repository"
	"kanban-board-api/internal/response"
)

// reorderRetryLimit bounds the automatic retries after a serialization
// abort. One retry resolves the common two-writer race; anything beyond
// that is surfaced to the caller as TRANSACTION_CONFLICT.
const reorderRetryLimit = 1

// withReorderRetry runs fn, retrying up to reorderRetryLimit times when the
// storage layer aborts the transaction for isolation reasons. A retry that
// succeeds is invisible to the caller.
func withReorderRetry(fn func() error) error {
	err := fn()
	for attempt := 0; attempt < reorderRetryLimit && repository.IsSerializationFailure(err); attempt++ {
		err = fn()
	}
	return err
}

// mapReorderError converts ordering validation failures and exhausted
// isolation retries into typed service errors. Other errors pass through
// for the generic handling at the call site.
func mapReorderError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, ordering.ErrNoAnchor),
		errors.Is(err, ordering.ErrSelfAnchor),
		errors.Is(err, ordering.ErrSameAnchors),
		errors.Is(err, ordering.ErrAnchorOrder):
		return response.NewValidationError("Invalid reorder anchors", err.Error())
	case errors.Is(err, ordering.ErrUnknownAnchor):
		return response.NewNotFoundError("Reorder anchor not found", err.Error())
	case errors.Is(err, ordering.ErrUnknownSibling):
		return response.NewNotFoundError("Resource not found among its siblings", err.Error())
	case repository.IsSerializationFailure(err):
		return response.NewTxConflictError("Concurrent reorder detected, please retry", "")
	default:
		return err
	}
}
