// Package store provides persistence for named layout documents.
//
// Stores back the HTTP API's saved-layout endpoints: a computed layout can
// be saved under a generated ID, listed, re-fetched, and deleted. Two
// backends are provided:
//
//   - memory: process-local storage for development and tests
//   - mongo: MongoDB-backed storage for shared deployments
package store

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/boxlay/boxlay/pkg/layout"
)

// Sentinel errors for store operations.
var (
	// ErrNotFound is returned when no layout exists under the given ID.
	ErrNotFound = errors.New("layout not found")

	// ErrInvalidID is returned for empty or malformed layout IDs.
	ErrInvalidID = errors.New("invalid layout ID")
)

// Record is a stored layout document with ownership metadata.
type Record struct {
	ID        string          `json:"id" bson:"_id"`
	Name      string          `json:"name,omitempty" bson:"name,omitempty"`
	Document  layout.Document `json:"document" bson:"document"`
	CreatedAt time.Time       `json:"created_at" bson:"created_at"`
}

// Store is the interface for layout persistence backends.
// Implementations must be safe for concurrent use.
type Store interface {
	// Save stores a layout document under a fresh ID and returns the
	// stored record.
	Save(ctx context.Context, name string, doc layout.Document) (Record, error)

	// Get retrieves a stored layout by ID.
	// Returns ErrNotFound if the ID is unknown.
	Get(ctx context.Context, id string) (Record, error)

	// List returns all stored records, newest first.
	List(ctx context.Context) ([]Record, error)

	// Delete removes a stored layout.
	// Returns ErrNotFound if the ID is unknown.
	Delete(ctx context.Context, id string) error

	// Close releases backend resources.
	Close(ctx context.Context) error
}

// newID generates a layout record ID.
func newID() string { return uuid.NewString() }
