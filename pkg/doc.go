// Package pkg provides the core libraries for Gridkz template conversion.
//
// # Overview
//
// Gridkz converts GridMove window-grid templates into KZones zone layouts.
// GridMove describes snap targets as ini-like sections of percentage
// expressions; KZones wants a JSON document of normalized rectangles. The
// pkg directory is organized into three main areas:
//
//  1. Domain logic (expression evaluation, template parsing, zone building)
//  2. Orchestration (the conversion runner with caching)
//  3. Infrastructure (caching backends, configuration, storage, hooks)
//
// # Architecture
//
// The typical data flow through Gridkz:
//
//	GridMove Template (.ini)
//	         ↓
//	    [gridmove] package (scan sections + bound directives)
//	         ↓
//	    [expr] package (evaluate percentage expressions)
//	         ↓
//	    [kzones] package (normalize → clamp → dedupe zones)
//	         ↓
//	    KZones JSON / SVG output
//
// # Quick Start
//
// Parse a template and serialize the converted layout:
//
//	import (
//	    "os"
//	    "github.com/matzehuels/gridkz/pkg/expr"
//	    "github.com/matzehuels/gridkz/pkg/gridmove"
//	    "github.com/matzehuels/gridkz/pkg/kzones"
//	)
//
//	// 1. Parse the GridMove template
//	f, _ := os.Open("xipergrid2.ini")
//	t, _ := gridmove.Parse(f)
//
//	// 2. Build the zone layout
//	l, _ := kzones.Build(t, expr.DefaultContext())
//	l.Name = kzones.LayoutName("xipergrid2")
//
//	// 3. Serialize to the KZones document format
//	data, _ := kzones.MarshalDocument(l)
//	os.WriteFile("xipergrid2_kzones.json", data, 0o644)
//
// # Main Packages
//
// ## Core Domain Logic
//
// [expr] - Restricted arithmetic for GridMove bound expressions: decimal
// numbers, bracketed monitor variables, + - * /, unary minus, and
// parentheses. Nothing else evaluates; an unknown token is an error, not
// a guess.
//
// [gridmove] - Template parser. Bracketed markers open sections, the four
// Grid* directives collect bound expressions, and everything else is
// ignored. Malformed lines and incomplete sections become diagnostics on
// the returned Template rather than parse failures.
//
// [kzones] - Zone building and serialization. [kzones.Build] evaluates
// each section's bounds, normalizes inverted axes, clamps to [0, 100],
// drops empty rectangles, and removes exact duplicates while keeping the
// first occurrence. JSON output matches the KZones applet schema; SVG
// output previews the layout.
//
// ## Orchestration
//
// [convert] - The conversion runner used by CLI, watch mode, and the HTTP
// service. Wraps parse → build → serialize with content-addressed caching,
// per-run statistics, and observability hooks. Ensures consistent behavior
// across all entry points.
//
// ## Infrastructure
//
// [cache] - Content-addressed caching for conversion and preview results.
// FileCache for the CLI (filesystem fan-out), RedisCache for the service,
// NullCache for tests and --no-cache runs.
//
// [config] - TOML configuration shared by all commands: default variables,
// padding, watch debounce, and service backends.
//
// [store] - Layout persistence for the HTTP service. MemoryStore for
// development and tests, MongoStore for deployments.
//
// [errors] - Structured error codes shared across packages. Soft codes
// (UNKNOWN_VARIABLE, DIVISION_BY_ZERO, ...) skip a section; hard codes
// (NO_CONVERTIBLE_ZONES, INVALID_INPUT, ...) fail the conversion.
//
// [observability] - Process-wide hook registry for conversion, cache, and
// HTTP events. Defaults to no-ops; deployments register their own sinks.
//
// [buildinfo] - Version, commit, and build date injected via ldflags.
//
// # Common Workflows
//
// Convert with custom monitor variables:
//
//	vars := expr.DefaultContext().Extend(map[string]float64{"TaskbarHeight": 4})
//	l, _ := kzones.Build(t, vars)
//
// Run a cached conversion:
//
//	runner := convert.NewRunner(fileCache, nil, logger)
//	res, _ := runner.Convert(ctx, convert.Options{Input: data, BaseName: "grid"})
//
// Render a preview:
//
//	svg := kzones.RenderSVG(l, kzones.WithCanvas(800, 450))
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...              # All tests
//	go test ./pkg/kzones/...       # Specific package
//	go test -run Document ./pkg/kzones/  # Serialization tests only
//
// [expr]: https://pkg.go.dev/github.com/matzehuels/gridkz/pkg/expr
// [gridmove]: https://pkg.go.dev/github.com/matzehuels/gridkz/pkg/gridmove
// [kzones]: https://pkg.go.dev/github.com/matzehuels/gridkz/pkg/kzones
// [kzones.Build]: https://pkg.go.dev/github.com/matzehuels/gridkz/pkg/kzones#Build
// [convert]: https://pkg.go.dev/github.com/matzehuels/gridkz/pkg/convert
// [cache]: https://pkg.go.dev/github.com/matzehuels/gridkz/pkg/cache
// [config]: https://pkg.go.dev/github.com/matzehuels/gridkz/pkg/config
// [store]: https://pkg.go.dev/github.com/matzehuels/gridkz/pkg/store
// [errors]: https://pkg.go.dev/github.com/matzehuels/gridkz/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/gridkz/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/gridkz/pkg/buildinfo
package pkg
