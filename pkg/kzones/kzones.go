package kzones

import "github.com/matzehuels/gridkz/pkg/errors"

// PercentMax is the upper bound of the monitor percentage space. Every
// zone bound lives in [0, PercentMax] after clamping.
const PercentMax = 100.0

// Zone is a single rectangular snap target in monitor percentage space.
// Top and Left are the smaller coordinates after normalization; y grows
// downward, so Height is Bottom minus Top.
type Zone struct {
	Left, Right float64
	Top, Bottom float64
}

// Width returns the horizontal span of the zone.
func (z Zone) Width() float64 { return z.Right - z.Left }

// Height returns the vertical span of the zone.
func (z Zone) Height() float64 { return z.Bottom - z.Top }

// Normalize returns z with inverted axes swapped so that Left <= Right
// and Top <= Bottom. Inverted authoring (GridLeft=90, GridRight=10) is
// treated as the same rectangle, not an error.
func (z Zone) Normalize() Zone {
	if z.Left > z.Right {
		z.Left, z.Right = z.Right, z.Left
	}
	if z.Top > z.Bottom {
		z.Top, z.Bottom = z.Bottom, z.Top
	}
	return z
}

// Clamp returns z with every bound forced into [0, PercentMax].
func (z Zone) Clamp() Zone {
	return Zone{
		Left:   clampPct(z.Left),
		Right:  clampPct(z.Right),
		Top:    clampPct(z.Top),
		Bottom: clampPct(z.Bottom),
	}
}

// Empty reports whether the zone has no usable area.
func (z Zone) Empty() bool {
	return z.Width() <= 0 || z.Height() <= 0
}

func clampPct(v float64) float64 {
	return min(PercentMax, max(0, v))
}

// Skip records a template section that produced no zone and why. Skips
// are informational; they feed the conversion summary and the service
// response, not the error path.
type Skip struct {
	Section string      // section name as authored
	Line    int         // line of the section marker
	Code    errors.Code // what went wrong, e.g. UNKNOWN_VARIABLE
	Reason  string      // human-readable explanation
}

// Layout is the converted zone set for one template, ready for
// serialization. Zones preserve first-appearance order.
type Layout struct {
	Name    string // display name, usually LayoutName(base)
	Padding int    // gap between snapped windows, in pixels
	Zones   []Zone

	// Skipped lists the sections that yielded no zone; Duplicates counts
	// zones removed because an earlier section produced the same bounds.
	Skipped    []Skip
	Duplicates int
}

// LayoutName derives the display name of a converted layout from the
// template's base name.
func LayoutName(base string) string {
	return base + " (converted)"
}
