package kzones

import (
	"github.com/matzehuels/gridkz/pkg/errors"
	"github.com/matzehuels/gridkz/pkg/expr"
	"github.com/matzehuels/gridkz/pkg/gridmove"
)

// Build converts a parsed template into a Layout. Sections whose bounds
// cannot be evaluated, or whose zone collapses to nothing after clamping,
// are dropped and recorded on Layout.Skipped; incomplete-section
// diagnostics from the parser are carried over the same way. Duplicate
// zones keep the first occurrence.
//
// Build returns the layout even when it reports an error, so callers can
// still surface the skip reasons after a template converts to nothing.
// The only error condition is an empty zone set (NO_CONVERTIBLE_ZONES).
func Build(t *gridmove.Template, vars expr.Context) (*Layout, error) {
	layout := &Layout{}

	for _, d := range t.Diagnostics {
		if d.Code != errors.ErrCodeIncompleteSection {
			continue
		}
		layout.Skipped = append(layout.Skipped, Skip{
			Section: d.Section,
			Line:    d.Line,
			Code:    d.Code,
			Reason:  d.Message,
		})
	}

	seen := make(map[Zone]struct{})
	for _, s := range t.Sections {
		z, skip := sectionZone(s, vars)
		if skip != nil {
			layout.Skipped = append(layout.Skipped, *skip)
			continue
		}

		z = z.Normalize().Clamp()
		if z.Empty() {
			layout.Skipped = append(layout.Skipped, Skip{
				Section: s.Name,
				Line:    s.Line,
				Code:    errors.ErrCodeEmptyZone,
				Reason:  "zone has no area after clamping",
			})
			continue
		}

		if _, dup := seen[z]; dup {
			layout.Duplicates++
			continue
		}
		seen[z] = struct{}{}
		layout.Zones = append(layout.Zones, z)
	}

	if len(layout.Zones) == 0 {
		return layout, errors.New(errors.ErrCodeNoConvertibleZones,
			"template produced no usable zones (%d sections skipped)", len(layout.Skipped))
	}
	return layout, nil
}

// sectionZone evaluates the four bounds of a complete section. On the
// first failing bound it returns a Skip naming the key and the reason.
func sectionZone(s gridmove.Section, vars expr.Context) (Zone, *Skip) {
	var z Zone
	for _, b := range []struct {
		key string
		dst *float64
	}{
		{gridmove.KeyTop, &z.Top},
		{gridmove.KeyBottom, &z.Bottom},
		{gridmove.KeyLeft, &z.Left},
		{gridmove.KeyRight, &z.Right},
	} {
		v, err := expr.Eval(s.Bounds[b.key], vars)
		if err != nil {
			return Zone{}, &Skip{
				Section: s.Name,
				Line:    s.Line,
				Code:    errors.GetCode(err),
				Reason:  b.key + ": " + errors.UserMessage(err),
			}
		}
		*b.dst = v
	}
	return z, nil
}
