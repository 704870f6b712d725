// Package convert provides the core template-to-layout conversion pipeline.
//
// This package implements the complete parse → build → serialize pipeline
// that can be used by CLI, watch, and service components. By centralizing
// this logic, we ensure consistent behavior across all entry points and
// avoid code duplication.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Parse: Read the GridMove template into sections and diagnostics
//  2. Build: Evaluate bounds and assemble the deduplicated zone set
//  3. Serialize: Emit the KZones JSON document
//
// Conversion is a pure function of its inputs, so results are cached
// content-addressed: the key covers the template bytes and every option
// that changes the document.
//
// # Usage
//
// Create a Runner and convert a template:
//
//	runner := convert.NewRunner(fileCache, nil, logger)
//	opts := convert.Options{
//	    Input:    templateBytes,
//	    BaseName: "xipergrid2",
//	}
//	result, err := runner.Convert(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.WriteFile("xipergrid2_kzones.json", result.JSON, 0644)
package convert

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/gridkz/pkg/cache"
	"github.com/matzehuels/gridkz/pkg/errors"
	"github.com/matzehuels/gridkz/pkg/expr"
	"github.com/matzehuels/gridkz/pkg/kzones"
)

// FormatVersion is part of every convert cache key. Bump it whenever the
// serialized document changes shape, so stale cache entries never leak
// an old format.
const FormatVersion = 1

// DefaultBaseName is used when a conversion has no originating file.
const DefaultBaseName = "layout"

// Options contains all configuration for one conversion.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Input is the raw GridMove template text.
	Input []byte `json:"input,omitempty"`

	// BaseName names the resulting layout ("<base> (converted)");
	// usually the template file's stem.
	BaseName string `json:"base_name,omitempty"`

	// Vars extends or overrides the default Monitor1 variables.
	Vars map[string]float64 `json:"vars,omitempty"`

	// Padding is the gap between snapped windows, in pixels.
	Padding int `json:"padding,omitempty"`

	// Refresh bypasses the cache read; the fresh result is still stored.
	Refresh bool `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// Result contains the outputs of a conversion.
type Result struct {
	// Layout is the converted zone set with its skip diagnostics.
	Layout *kzones.Layout

	// JSON is the serialized KZones document.
	JSON []byte

	// LayoutHash is the content hash of JSON, used for preview cache
	// keys and response ETags.
	LayoutHash string

	// Stats contains counts and timing information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains conversion statistics for the user-visible summary.
type Stats struct {
	Sections    int // sections encountered, complete or not
	Zones       int // zones in the final document
	Duplicates  int // zones removed as exact duplicates
	Skipped     []kzones.Skip
	ConvertTime time.Duration
}

// CacheInfo tracks cache hits per stage.
type CacheInfo struct {
	ConvertHit bool // whether the document came from cache
	PreviewHit bool // whether the preview came from cache
}

// PreviewOptions configures SVG preview rendering.
type PreviewOptions struct {
	Width    float64 `json:"width,omitempty"`  // canvas width in pixels, default 960
	Height   float64 `json:"height,omitempty"` // canvas height in pixels, default 540
	NoLabels bool    `json:"no_labels,omitempty"`
}

// ValidateAndSetDefaults checks required fields and applies defaults.
// This method is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if len(o.Input) == 0 {
		return errors.New(errors.ErrCodeInvalidInput, "input template is required")
	}
	if o.Padding < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "padding must not be negative")
	}
	for name := range o.Vars {
		if err := errors.ValidateVariableName(name); err != nil {
			return err
		}
	}
	if o.BaseName == "" {
		o.BaseName = DefaultBaseName
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	o.validated = true
	return nil
}

// Context returns the variable context for this conversion: the default
// Monitor1 percentage space extended with o.Vars.
func (o *Options) Context() expr.Context {
	return expr.DefaultContext().Extend(o.Vars)
}

// ConvertKeyOpts returns cache key options for this conversion.
func (o *Options) ConvertKeyOpts() cache.ConvertKeyOpts {
	return cache.ConvertKeyOpts{
		Vars:    o.Context().Fingerprint(),
		Padding: o.Padding,
		Format:  FormatVersion,
	}
}
