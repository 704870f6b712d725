package kzones

import (
	"math"
	"strings"
	"testing"

	"github.com/matzehuels/gridkz/pkg/errors"
	"github.com/matzehuels/gridkz/pkg/expr"
	"github.com/matzehuels/gridkz/pkg/gridmove"
)

func buildString(t *testing.T, input string) (*Layout, error) {
	t.Helper()
	tmpl, err := gridmove.Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	return Build(tmpl, expr.DefaultContext())
}

func mustBuild(t *testing.T, input string) *Layout {
	t.Helper()
	layout, err := buildString(t, input)
	if err != nil {
		t.Fatalf("Build error: %v", err)
	}
	return layout
}

func TestBuildMinimalSection(t *testing.T) {
	layout := mustBuild(t, `[Z]
GridTop=0
GridBottom=100
GridLeft=0
GridRight=50
`)

	if len(layout.Zones) != 1 {
		t.Fatalf("got %d zones, want 1", len(layout.Zones))
	}
	want := Zone{Left: 0, Right: 50, Top: 0, Bottom: 100}
	if layout.Zones[0] != want {
		t.Errorf("zone = %+v, want %+v", layout.Zones[0], want)
	}
	if len(layout.Skipped) != 0 {
		t.Errorf("unexpected skips: %v", layout.Skipped)
	}
}

func TestBuildVariableArithmetic(t *testing.T) {
	layout := mustBuild(t, `[1]
GridTop=[Monitor1Top]+([Monitor1Height]/3)
GridBottom=[Monitor1Bottom]
GridLeft=[Monitor1Left]
GridRight=[Monitor1Right]
`)

	z := layout.Zones[0]
	if math.Abs(z.Top-100.0/3) > 1e-9 {
		t.Errorf("Top = %v, want %v", z.Top, 100.0/3)
	}
	if z.Bottom != 100 || z.Left != 0 || z.Right != 100 {
		t.Errorf("zone = %+v, want bottom/left/right 100/0/100", z)
	}
}

func TestBuildClampsOverflow(t *testing.T) {
	layout := mustBuild(t, `[1]
GridTop=0
GridBottom=101
GridLeft=-5
GridRight=50
`)

	want := Zone{Left: 0, Right: 50, Top: 0, Bottom: 100}
	if layout.Zones[0] != want {
		t.Errorf("zone = %+v, want %+v", layout.Zones[0], want)
	}
}

func TestBuildDropsCollapsedZone(t *testing.T) {
	// Both horizontal bounds clamp to 100, so the zone loses its width.
	layout := mustBuild(t, `[gone]
GridTop=0
GridBottom=100
GridLeft=100
GridRight=120

[kept]
GridTop=0
GridBottom=100
GridLeft=0
GridRight=100
`)

	if len(layout.Zones) != 1 {
		t.Fatalf("got %d zones, want 1", len(layout.Zones))
	}
	if len(layout.Skipped) != 1 {
		t.Fatalf("got %d skips, want 1", len(layout.Skipped))
	}
	skip := layout.Skipped[0]
	if skip.Section != "gone" {
		t.Errorf("skip section = %q, want %q", skip.Section, "gone")
	}
	if skip.Code != errors.ErrCodeEmptyZone {
		t.Errorf("skip code = %v, want %v", skip.Code, errors.ErrCodeEmptyZone)
	}
}

func TestBuildNormalizesInvertedBounds(t *testing.T) {
	layout := mustBuild(t, `[1]
GridTop=100
GridBottom=0
GridLeft=90
GridRight=10
`)

	want := Zone{Left: 10, Right: 90, Top: 0, Bottom: 100}
	if layout.Zones[0] != want {
		t.Errorf("zone = %+v, want %+v", layout.Zones[0], want)
	}
}

func TestBuildDedupesFirstWins(t *testing.T) {
	layout := mustBuild(t, `[first]
GridTop=0
GridBottom=100
GridLeft=0
GridRight=50

[second]
GridTop=0
GridBottom=100
GridLeft=50
GridRight=100

[echo of first]
GridTop=0
GridBottom=100
GridLeft=0
GridRight=50
`)

	if len(layout.Zones) != 2 {
		t.Fatalf("got %d zones, want 2", len(layout.Zones))
	}
	if layout.Duplicates != 1 {
		t.Errorf("Duplicates = %d, want 1", layout.Duplicates)
	}
	// Order must follow first appearance.
	if layout.Zones[0].Right != 50 || layout.Zones[1].Left != 50 {
		t.Errorf("zone order changed: %+v", layout.Zones)
	}
}

func TestBuildDedupesEquivalentSpellings(t *testing.T) {
	// Same rectangle authored via arithmetic and authored inverted.
	layout := mustBuild(t, `[1]
GridTop=0
GridBottom=[Monitor1Height]
GridLeft=[Monitor1Width]/2
GridRight=[Monitor1Right]

[2]
GridTop=[Monitor1Bottom]
GridBottom=0
GridLeft=100
GridRight=50
`)

	if len(layout.Zones) != 1 {
		t.Fatalf("got %d zones, want 1: %+v", len(layout.Zones), layout.Zones)
	}
	if layout.Duplicates != 1 {
		t.Errorf("Duplicates = %d, want 1", layout.Duplicates)
	}
}

func TestBuildSkipsIncompleteSection(t *testing.T) {
	layout := mustBuild(t, `[1]
GridTop=0
GridBottom=100
GridLeft=0

[2]
GridTop=0
GridBottom=100
GridLeft=50
GridRight=100
`)

	if len(layout.Zones) != 1 {
		t.Fatalf("got %d zones, want 1", len(layout.Zones))
	}
	if len(layout.Skipped) != 1 {
		t.Fatalf("got %d skips, want 1", len(layout.Skipped))
	}
	skip := layout.Skipped[0]
	if skip.Code != errors.ErrCodeIncompleteSection {
		t.Errorf("skip code = %v, want %v", skip.Code, errors.ErrCodeIncompleteSection)
	}
	if skip.Section != "1" {
		t.Errorf("skip section = %q, want %q", skip.Section, "1")
	}
	if !strings.Contains(skip.Reason, "GridRight") {
		t.Errorf("skip reason %q should name the missing key", skip.Reason)
	}
}

func TestBuildSkipsUnknownVariable(t *testing.T) {
	layout := mustBuild(t, `[bad]
GridTop=0
GridBottom=100
GridLeft=[Foo]
GridRight=100

[good]
GridTop=0
GridBottom=100
GridLeft=0
GridRight=100
`)

	if len(layout.Zones) != 1 {
		t.Fatalf("got %d zones, want 1", len(layout.Zones))
	}
	if len(layout.Skipped) != 1 {
		t.Fatalf("got %d skips, want 1", len(layout.Skipped))
	}
	skip := layout.Skipped[0]
	if skip.Code != errors.ErrCodeUnknownVariable {
		t.Errorf("skip code = %v, want %v", skip.Code, errors.ErrCodeUnknownVariable)
	}
	if !strings.Contains(skip.Reason, "GridLeft") || !strings.Contains(skip.Reason, "[Foo]") {
		t.Errorf("skip reason %q should name the key and the variable", skip.Reason)
	}
}

func TestBuildSkipsDivisionByZero(t *testing.T) {
	layout := mustBuild(t, `[bad]
GridTop=100/[Monitor1Top]
GridBottom=100
GridLeft=0
GridRight=100

[good]
GridTop=0
GridBottom=100
GridLeft=0
GridRight=100
`)

	if len(layout.Skipped) != 1 {
		t.Fatalf("got %d skips, want 1", len(layout.Skipped))
	}
	if layout.Skipped[0].Code != errors.ErrCodeDivisionByZero {
		t.Errorf("skip code = %v, want %v", layout.Skipped[0].Code, errors.ErrCodeDivisionByZero)
	}
}

func TestBuildNoConvertibleZones(t *testing.T) {
	layout, err := buildString(t, `[1]
GridTop=0
GridBottom=100
GridLeft=[Nope]
GridRight=100
`)

	if err == nil {
		t.Fatal("expected error for template with no usable zones")
	}
	if !errors.Is(err, errors.ErrCodeNoConvertibleZones) {
		t.Errorf("error code = %v, want %v", errors.GetCode(err), errors.ErrCodeNoConvertibleZones)
	}
	if layout == nil {
		t.Fatal("layout should still be returned for its skip list")
	}
	if len(layout.Skipped) != 1 {
		t.Errorf("got %d skips, want 1", len(layout.Skipped))
	}
}

func TestBuildEmptyTemplate(t *testing.T) {
	_, err := buildString(t, "")
	if !errors.Is(err, errors.ErrCodeNoConvertibleZones) {
		t.Errorf("error code = %v, want %v", errors.GetCode(err), errors.ErrCodeNoConvertibleZones)
	}
}

func TestBuildCustomVariables(t *testing.T) {
	tmpl, err := gridmove.ParseBytes([]byte(`[1]
GridTop=[Monitor2Top]
GridBottom=100
GridLeft=0
GridRight=100
`))
	if err != nil {
		t.Fatalf("ParseBytes error: %v", err)
	}

	vars := expr.DefaultContext().Extend(map[string]float64{"Monitor2Top": 25})
	layout, err := Build(tmpl, vars)
	if err != nil {
		t.Fatalf("Build error: %v", err)
	}
	if layout.Zones[0].Top != 25 {
		t.Errorf("Top = %v, want 25", layout.Zones[0].Top)
	}
}

func TestBuildPreservesSectionOrder(t *testing.T) {
	layout := mustBuild(t, `[right]
GridTop=0
GridBottom=100
GridLeft=50
GridRight=100

[left]
GridTop=0
GridBottom=100
GridLeft=0
GridRight=50
`)

	if layout.Zones[0].Left != 50 {
		t.Errorf("first zone Left = %v, want 50 (template order must hold)", layout.Zones[0].Left)
	}
	if layout.Zones[1].Left != 0 {
		t.Errorf("second zone Left = %v, want 0", layout.Zones[1].Left)
	}
}
