package repository

import "errors"

// ErrNotFound is returned when no record in a collection matches the requested id.
var ErrNotFound = errors.New("not found")

// ErrKeyNotFound is returned by a Backend when the key has never been written.
var ErrKeyNotFound = errors.New("key not found")

// ErrStoreUnavailable is returned when neither tier could produce a collection.
var ErrStoreUnavailable = errors.New("store unavailable")

// ErrStorageExhausted is returned when every configured tier rejected a write.
// The mutation is lost at this point and must be surfaced to the caller.
var ErrStorageExhausted = errors.New("storage exhausted")

// ErrConflict is returned when the stored collection changed since it was loaded.
var ErrConflict = errors.New("version conflict")

// ErrDuplicateID is returned when a replacement collection repeats an id.
var ErrDuplicateID = errors.New("duplicate id")
