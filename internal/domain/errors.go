package domain

import "errors"

var (
	ErrEventExists    = errors.New("event already exists")
	ErrEventNotFound  = errors.New("event does not exist")
	ErrEventNameEmpty = errors.New("event name is required")
	// ErrStoreCorrupted is returned once a store operation has panicked while
	// holding the lock. The store refuses all further work after that.
	ErrStoreCorrupted = errors.New("event store corrupted")
)
