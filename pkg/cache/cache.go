// Package cache provides caching for computed layouts and rendered
// artifacts.
//
// Layout computation is the expensive stage of the pipeline (the refinement
// loop is O(n³) per step), so results are cached under a key derived from
// the graph content hash and the complete tuning configuration. Three
// backends are provided:
//
//   - [FileCache]: hash-sharded files on disk, for CLI usage
//   - [RedisCache]: shared cache for multi-instance serving
//   - [NullCache]: caching disabled
//
// Keys are produced by a [Keyer] so every component that caches derives
// keys the same way.
package cache

import (
	"context"
	"time"

	"github.com/boxlay/boxlay/pkg/layout/force"
	"github.com/boxlay/boxlay/pkg/layout/refine"
)

// Default retention per cached artifact kind. Layouts are pure functions
// of graph and tuning, so they keep longer than rendered artifacts.
const (
	TTLLayout   = 30 * 24 * time.Hour
	TTLArtifact = 7 * 24 * time.Hour
)

// Cache stores opaque byte values under string keys with optional TTL.
// Implementations must be safe for concurrent use.
type Cache interface {
	// Get retrieves a value. The second return reports whether the key
	// was present and unexpired.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value. A zero ttl means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// LayoutKeyOpts captures everything that changes a computed layout:
// the full force and refinement tunings plus the normalization offset.
// The graph itself is covered by the content hash passed separately.
type LayoutKeyOpts struct {
	Force  force.Config
	Refine refine.Config
	Offset float64
}

// ArtifactKeyOpts captures everything that changes a rendered artifact
// beyond the layout it was rendered from.
type ArtifactKeyOpts struct {
	Format string
	Engine string
}

// Keyer derives cache keys for the pipeline stages.
type Keyer interface {
	// LayoutKey keys a computed layout by graph content and tuning.
	LayoutKey(graphHash string, opts LayoutKeyOpts) string

	// ArtifactKey keys a rendered artifact by layout content and format.
	ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer hashes the option structs into stable keys.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer { return &DefaultKeyer{} }

// LayoutKey generates a key for layout caching.
func (k *DefaultKeyer) LayoutKey(graphHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", graphHash, opts)
}

// ArtifactKey generates a key for artifact caching.
func (k *DefaultKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", layoutHash, opts)
}
