package kzones

import (
	"bytes"
	"fmt"
	"io"
)

const zoneInteractionCSS = `
    .zone { transition: fill-opacity 0.2s ease; }
    .zone:hover { fill-opacity: 0.45; }
    .zone-label { font-family: ui-monospace, SFMono-Regular, monospace; pointer-events: none; }`

// Default preview canvas size in pixels (16:9).
const (
	DefaultCanvasWidth  = 960.0
	DefaultCanvasHeight = 540.0
)

// SVGOption configures SVG rendering via [RenderSVG].
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	width  float64
	height float64
	fill   string
	stroke string
	labels bool
}

// WithCanvas sets the pixel size of the rendered monitor rectangle.
// The default is 960x540; pick your monitor's aspect ratio to preview
// exact proportions.
func WithCanvas(width, height float64) SVGOption {
	return func(r *svgRenderer) { r.width, r.height = width, height }
}

// WithColors overrides the zone fill and stroke colors.
func WithColors(fill, stroke string) SVGOption {
	return func(r *svgRenderer) { r.fill, r.stroke = fill, stroke }
}

// WithoutLabels suppresses the numeric index drawn in each zone.
func WithoutLabels() SVGOption { return func(r *svgRenderer) { r.labels = false } }

// RenderSVG draws the zone set on a fixed canvas so a layout can be
// eyeballed before loading it into KZones. Percent coordinates scale to
// the canvas size; zones render in layout order with one-based index
// labels and a hover highlight.
func RenderSVG(l *Layout, opts ...SVGOption) []byte {
	r := newSVGRenderer(opts...)

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.0f %.0f" width="%.0f" height="%.0f">`+"\n",
		r.width, r.height, r.width, r.height)
	fmt.Fprintf(&buf, "  <style>%s\n  </style>\n", zoneInteractionCSS)
	fmt.Fprintf(&buf, `  <rect x="0" y="0" width="%.0f" height="%.0f" fill="#1b1e20"/>`+"\n",
		r.width, r.height)

	sx, sy := r.width/PercentMax, r.height/PercentMax
	for i, z := range l.Zones {
		x, y := z.Left*sx, z.Top*sy
		w, h := z.Width()*sx, z.Height()*sy
		fmt.Fprintf(&buf,
			`  <rect class="zone" id="zone-%d" x="%.1f" y="%.1f" width="%.1f" height="%.1f" rx="6" fill="%s" fill-opacity="0.25" stroke="%s" stroke-width="2"/>`+"\n",
			i+1, x, y, w, h, r.fill, r.stroke)
		if r.labels {
			fmt.Fprintf(&buf,
				`  <text class="zone-label" x="%.1f" y="%.1f" font-size="%.0f" fill="#eff0f1" text-anchor="middle" dominant-baseline="central">%d</text>`+"\n",
				x+w/2, y+h/2, labelSize(w, h), i+1)
		}
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

// WriteSVG renders the layout and writes it to w.
func WriteSVG(w io.Writer, l *Layout, opts ...SVGOption) error {
	_, err := w.Write(RenderSVG(l, opts...))
	return err
}

func newSVGRenderer(opts ...SVGOption) svgRenderer {
	r := svgRenderer{
		width:  DefaultCanvasWidth,
		height: DefaultCanvasHeight,
		fill:   "#3daee9",
		stroke: "#93cee9",
		labels: true,
	}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

func labelSize(w, h float64) float64 {
	s := min(w, h) / 3
	return min(max(s, 10), 32)
}
