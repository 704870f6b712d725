// Package cache provides pluggable caching for conversion artifacts.
//
// Conversions are pure functions of their inputs, so results are
// content-addressed: the cache key covers the template bytes and every
// option that changes the output. The CLI uses [FileCache] under the
// user's cache directory; the HTTP service can swap in [RedisCache] or
// disable caching with [NullCache].
package cache

import (
	"context"
	"time"
)

// Default TTLs. Converted layouts and previews are cheap to rebuild, so
// entries mainly exist to make repeated CLI runs and watch loops instant.
const (
	TTLConvert = 7 * 24 * time.Hour
	TTLPreview = 7 * 24 * time.Hour
)

// Cache is the storage interface shared by the CLI and the HTTP service.
// Implementations must be safe for concurrent use.
type Cache interface {
	// Get retrieves a value. A miss is (nil, false, nil), not an error.
	Get(ctx context.Context, key string) (data []byte, hit bool, err error)

	// Set stores a value. A ttl of zero means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases any resources held by the cache.
	Close() error
}

// Keyer derives cache keys for conversion artifacts.
type Keyer interface {
	// ConvertKey identifies a conversion result: the template bytes plus
	// everything that changes the serialized document.
	ConvertKey(input []byte, opts ConvertKeyOpts) string

	// PreviewKey identifies a rendered SVG preview of a converted layout.
	PreviewKey(layoutHash string, opts PreviewKeyOpts) string
}

// ConvertKeyOpts captures the options that affect a conversion result.
type ConvertKeyOpts struct {
	Vars    string // canonical variable fingerprint (expr.Context.Fingerprint)
	Padding int
	Format  int // serializer format version
}

// PreviewKeyOpts captures the options that affect a rendered preview.
type PreviewKeyOpts struct {
	Width  float64
	Height float64
	Labels bool
}

// DefaultKeyer generates keys by hashing the components with SHA-256.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// ConvertKey generates a key for a conversion result.
func (k *DefaultKeyer) ConvertKey(input []byte, opts ConvertKeyOpts) string {
	return hashKey("convert", Hash(input), opts)
}

// PreviewKey generates a key for a rendered preview.
func (k *DefaultKeyer) PreviewKey(layoutHash string, opts PreviewKeyOpts) string {
	return hashKey("preview", layoutHash, opts)
}

// Ensure DefaultKeyer implements Keyer.
var _ Keyer = (*DefaultKeyer)(nil)
