package convert

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/gridkz/pkg/cache"
	"github.com/matzehuels/gridkz/pkg/errors"
	"github.com/matzehuels/gridkz/pkg/gridmove"
	"github.com/matzehuels/gridkz/pkg/kzones"
	"github.com/matzehuels/gridkz/pkg/observability"
)

// Runner encapsulates conversion with caching.
// Both CLI and API can use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store conversion results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// cachedConversion is the cache envelope for a converted template. The
// layout and section count ride along with the document so a cache hit
// can reconstruct the full Result, skip diagnostics included.
type cachedConversion struct {
	Document []byte         `json:"document"`
	Layout   *kzones.Layout `json:"layout"`
	Sections int            `json:"sections"`
}

// Convert runs the complete parse → build → serialize pipeline with caching.
//
// On soft failures the returned error carries a code from pkg/errors and
// the Result is still populated with the layout and its skip diagnostics,
// so callers can report which sections were dropped and why.
func (r *Runner) Convert(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	observability.Conversion().OnConvertStart(ctx, opts.BaseName, len(opts.Input))

	start := time.Now()
	result, err := r.ConvertWithCacheInfo(ctx, opts)
	elapsed := time.Since(start)

	zones, skipped := 0, 0
	if result != nil {
		result.Stats.ConvertTime = elapsed
		zones = result.Stats.Zones
		skipped = len(result.Stats.Skipped)
	}
	observability.Conversion().OnConvertEnd(ctx, opts.BaseName, zones, skipped, elapsed, err)
	if err != nil {
		return result, err
	}

	r.Logger.Info("converted template",
		"name", opts.BaseName,
		"sections", result.Stats.Sections,
		"zones", result.Stats.Zones,
		"skipped", skipped,
		"cached", result.CacheInfo.ConvertHit,
		"duration", elapsed)

	return result, nil
}

// ConvertWithCacheInfo converts with caching and marks the cache hit on
// the result. Refresh bypasses the cache read but still stores the fresh
// document.
func (r *Runner) ConvertWithCacheInfo(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	cacheKey := r.Keyer.ConvertKey(opts.Input, opts.ConvertKeyOpts())

	// Try cache first (unless refresh requested)
	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			var entry cachedConversion
			if err := json.Unmarshal(data, &entry); err == nil && entry.Layout != nil {
				observability.Cache().OnCacheHit(ctx, "convert")
				return &Result{
					Layout:     entry.Layout,
					JSON:       entry.Document,
					LayoutHash: cache.Hash(entry.Document),
					Stats:      statsFor(entry.Layout, entry.Sections),
					CacheInfo:  CacheInfo{ConvertHit: true},
				}, nil
			}
			// If deserialization fails, fall through to reconvert
		}
		observability.Cache().OnCacheMiss(ctx, "convert")
	}

	result, err := r.convert(opts)
	if err != nil {
		return result, err
	}

	// Cache the result
	entry := cachedConversion{
		Document: result.JSON,
		Layout:   result.Layout,
		Sections: result.Stats.Sections,
	}
	if data, err := json.Marshal(entry); err == nil {
		if err := r.Cache.Set(ctx, cacheKey, data, cache.TTLConvert); err == nil {
			observability.Cache().OnCacheSet(ctx, "convert", len(data))
		}
	}

	return result, nil
}

// convert performs the uncached parse → build → serialize work.
func (r *Runner) convert(opts Options) (*Result, error) {
	tmpl, err := gridmove.ParseBytes(opts.Input)
	if err != nil {
		return nil, err
	}
	for _, d := range tmpl.Diagnostics {
		if d.Code == errors.ErrCodeMalformedLine {
			opts.Logger.Warn("malformed line", "line", d.Line, "detail", d.Message)
		}
	}

	// Count every section the template declared, dropped ones included.
	sections := len(tmpl.Sections) + tmpl.Incomplete()

	layout, buildErr := kzones.Build(tmpl, opts.Context())
	for _, s := range layout.Skipped {
		opts.Logger.Warn("skipped section",
			"section", s.Section,
			"line", s.Line,
			"reason", s.Reason)
	}
	if buildErr != nil {
		// Partial result: the layout still carries the skip diagnostics.
		return &Result{Layout: layout, Stats: statsFor(layout, sections)}, buildErr
	}

	layout.Name = kzones.LayoutName(opts.BaseName)
	layout.Padding = opts.Padding

	doc, err := kzones.MarshalDocument(layout)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "serialize layout")
	}

	return &Result{
		Layout:     layout,
		JSON:       doc,
		LayoutHash: cache.Hash(doc),
		Stats:      statsFor(layout, sections),
	}, nil
}

// statsFor derives conversion statistics from a built layout.
func statsFor(l *kzones.Layout, sections int) Stats {
	return Stats{
		Sections:   sections,
		Zones:      len(l.Zones),
		Duplicates: l.Duplicates,
		Skipped:    l.Skipped,
	}
}

// PreviewWithCacheInfo renders an SVG preview of a converted layout with
// caching, recording the hit on result.CacheInfo. The cache key is derived
// from the layout hash, so identical layouts share previews across inputs.
func (r *Runner) PreviewWithCacheInfo(ctx context.Context, result *Result, opts PreviewOptions) ([]byte, bool, error) {
	if result == nil || result.Layout == nil {
		return nil, false, errors.New(errors.ErrCodeInvalidInput, "no layout to preview")
	}
	if opts.Width == 0 {
		opts.Width = kzones.DefaultCanvasWidth
	}
	if opts.Height == 0 {
		opts.Height = kzones.DefaultCanvasHeight
	}

	cacheKey := r.Keyer.PreviewKey(result.LayoutHash, cache.PreviewKeyOpts{
		Width:  opts.Width,
		Height: opts.Height,
		Labels: !opts.NoLabels,
	})

	if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
		observability.Cache().OnCacheHit(ctx, "preview")
		result.CacheInfo.PreviewHit = true
		return data, true, nil
	}
	observability.Cache().OnCacheMiss(ctx, "preview")

	svgOpts := []kzones.SVGOption{kzones.WithCanvas(opts.Width, opts.Height)}
	if opts.NoLabels {
		svgOpts = append(svgOpts, kzones.WithoutLabels())
	}
	svg := kzones.RenderSVG(result.Layout, svgOpts...)

	if err := r.Cache.Set(ctx, cacheKey, svg, cache.TTLPreview); err == nil {
		observability.Cache().OnCacheSet(ctx, "preview", len(svg))
	}

	return svg, false, nil
}

// Preview is a convenience wrapper that calls PreviewWithCacheInfo and
// discards the cache hit info.
func (r *Runner) Preview(ctx context.Context, result *Result, opts PreviewOptions) ([]byte, error) {
	svg, _, err := r.PreviewWithCacheInfo(ctx, result, opts)
	return svg, err
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
// Called before validation so the runner's logger, not the discard
// default, carries parse and skip warnings.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
