package errors

import (
	"fmt"
)

// ValidationError reports input that failed schema validation. The operation
// aborted before any persistence call was made.
type ValidationError struct {
	Entity string
	Detail error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %v", e.Entity, e.Detail)
}

func (e *ValidationError) Unwrap() error { return e.Detail }

// MissingIDError reports an update or delete issued without the required
// identifier.
type MissingIDError struct {
	Entity string
}

func (e *MissingIDError) Error() string {
	return fmt.Sprintf("%s id is required", e.Entity)
}

// StoreError wraps a failure from the entity store itself. It is not
// recoverable locally and propagates up for user notification.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store %s failed: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error { return e.Err }

// BulkDeleteError reports a failed batched deletion. The whole batch is
// considered failed even if external-resource cleanup partially succeeded.
type BulkDeleteError struct {
	Entity string
	Count  int
	Err    error
}

func (e *BulkDeleteError) Error() string {
	return fmt.Sprintf("bulk delete of %d %s(s) failed: %v", e.Count, e.Entity, e.Err)
}

func (e *BulkDeleteError) Unwrap() error { return e.Err }

// ExternalResourceError wraps a failed calendar or notification-scheduler
// call. Fatal for single-entity operations, logged and swallowed inside bulk
// operations.
type ExternalResourceError struct {
	Resource string
	Err      error
}

func (e *ExternalResourceError) Error() string {
	return fmt.Sprintf("%s operation failed: %v", e.Resource, e.Err)
}

func (e *ExternalResourceError) Unwrap() error { return e.Err }
