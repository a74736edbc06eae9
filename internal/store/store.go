// Package store persists the ledger document as a single serialized blob
// under one fixed key. The core never talks to a backend directly; it only
// receives and returns document values, and the service layer drives Load
// and Save through the Store interface.
package store

import (
	"context"
	"errors"
)

// DocumentKey is the single storage key every backend writes under.
const DocumentKey = "ledger_v1"

// ErrNotFound reports that no document has been saved yet.
var ErrNotFound = errors.New("store: document not found")

// Store is the persistence boundary for the serialized document blob.
type Store interface {
	// Load returns the raw blob, or ErrNotFound when nothing was saved yet.
	Load(ctx context.Context) ([]byte, error)
	// Save replaces the blob wholesale.
	Save(ctx context.Context, blob []byte) error
	Close() error
}
