package kzones

import (
	"bytes"
	"strings"
	"testing"
)

func previewLayout() *Layout {
	return &Layout{
		Name: "halves (converted)",
		Zones: []Zone{
			{Left: 0, Right: 50, Top: 0, Bottom: 100},
			{Left: 50, Right: 100, Top: 0, Bottom: 100},
		},
	}
}

func TestRenderSVG(t *testing.T) {
	svg := string(RenderSVG(previewLayout()))

	if !strings.HasPrefix(svg, `<svg xmlns="http://www.w3.org/2000/svg"`) {
		t.Error("output should start with an svg element")
	}
	if !strings.HasSuffix(svg, "</svg>\n") {
		t.Error("output should end with a closing svg tag")
	}
	if got := strings.Count(svg, `<rect class="zone"`); got != 2 {
		t.Errorf("zone rect count = %d, want 2", got)
	}
	if got := strings.Count(svg, `<text class="zone-label"`); got != 2 {
		t.Errorf("label count = %d, want 2", got)
	}
	if !strings.Contains(svg, `viewBox="0 0 960 540"`) {
		t.Error("default canvas should be 960x540")
	}
}

func TestRenderSVGScalesToCanvas(t *testing.T) {
	svg := string(RenderSVG(previewLayout(), WithCanvas(200, 100)))

	if !strings.Contains(svg, `viewBox="0 0 200 100"`) {
		t.Error("viewBox should match the configured canvas")
	}
	// Left half of a 200x100 canvas.
	if !strings.Contains(svg, `x="0.0" y="0.0" width="100.0" height="100.0"`) {
		t.Errorf("first zone not scaled to canvas:\n%s", svg)
	}
}

func TestRenderSVGWithoutLabels(t *testing.T) {
	svg := string(RenderSVG(previewLayout(), WithoutLabels()))

	if strings.Contains(svg, `<text class="zone-label"`) {
		t.Error("labels should be suppressed")
	}
}

func TestRenderSVGWithColors(t *testing.T) {
	svg := string(RenderSVG(previewLayout(), WithColors("#ff0000", "#00ff00")))

	if !strings.Contains(svg, `fill="#ff0000"`) {
		t.Error("custom fill color not applied")
	}
	if !strings.Contains(svg, `stroke="#00ff00"`) {
		t.Error("custom stroke color not applied")
	}
}

func TestRenderSVGEmptyLayout(t *testing.T) {
	svg := string(RenderSVG(&Layout{Name: "empty"}))

	if strings.Count(svg, `<rect class="zone"`) != 0 {
		t.Error("empty layout should render no zones")
	}
	if !strings.HasSuffix(svg, "</svg>\n") {
		t.Error("output should still be a closed svg document")
	}
}

func TestWriteSVG(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteSVG(&buf, previewLayout()); err != nil {
		t.Fatalf("WriteSVG() error: %v", err)
	}
	if !bytes.Equal(buf.Bytes(), RenderSVG(previewLayout())) {
		t.Error("WriteSVG output should match RenderSVG")
	}
}

func TestLabelSize(t *testing.T) {
	tests := []struct {
		name string
		w, h float64
		want float64
	}{
		{name: "large zone capped", w: 960, h: 540, want: 32},
		{name: "small zone floored", w: 20, h: 12, want: 10},
		{name: "proportional", w: 90, h: 60, want: 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := labelSize(tt.w, tt.h); got != tt.want {
				t.Errorf("labelSize(%v, %v) = %v, want %v", tt.w, tt.h, got, tt.want)
			}
		})
	}
}
