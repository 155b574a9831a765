// Package actions is the mutation layer between the CLI/TUI surfaces and the
// store. Every write goes through here: inputs are validated before any store
// call, external resources (calendar events, scheduled notifications) are
// cleaned up alongside their records, and bulk deletions are applied as one
// atomic batch.
package actions

import (
	"sync"
	"time"

	"github.com/google/uuid"

	errs "github.com/kestrelapps/lodestar/internal/errors"
	"github.com/kestrelapps/lodestar/internal/logger"
	"github.com/kestrelapps/lodestar/internal/storage"
)

var nowFunc = func() time.Time { return time.Now().UTC() }

func newID() string {
	return uuid.NewString()
}

// cleanupFunc releases one external resource. Failures are logged, never
// raised, because bulk deletion must not strand the store records behind a
// flaky calendar or scheduler.
type cleanupFunc func() error

// runCleanups runs the cleanups concurrently and waits for all of them.
func runCleanups(entity string, cleanups []cleanupFunc) {
	if len(cleanups) == 0 {
		return
	}
	var wg sync.WaitGroup
	for _, fn := range cleanups {
		wg.Add(1)
		go func(fn cleanupFunc) {
			defer wg.Done()
			if err := fn(); err != nil {
				logger.Warn("external cleanup failed", "entity", entity, "error", err)
			}
		}(fn)
	}
	wg.Wait()
}

// deleteBatch issues the store deletions for ids as one atomic batch.
func deleteBatch(store storage.Provider, entity storage.EntityType, ids []string) error {
	ops := make([]storage.Op, 0, len(ids))
	for _, id := range ids {
		if id == "" {
			return &errs.BulkDeleteError{
				Entity: string(entity),
				Count:  len(ids),
				Err:    &errs.MissingIDError{Entity: string(entity)},
			}
		}
		ops = append(ops, storage.Op{Kind: storage.OpDelete, Entity: entity, ID: id})
	}
	if err := store.Transact(ops); err != nil {
		return &errs.BulkDeleteError{Entity: string(entity), Count: len(ids), Err: err}
	}
	return nil
}

func storeErr(op string, err error) error {
	return &errs.StoreError{Op: op, Err: err}
}

func validationErr(entity string, err error) error {
	return &errs.ValidationError{Entity: entity, Detail: err}
}

func externalErr(resource string, err error) error {
	return &errs.ExternalResourceError{Resource: resource, Err: err}
}
