// Package kzones turns parsed GridMove templates into KZones layouts.
//
// # Overview
//
// GridMove grids and KZones layouts describe the same thing, rectangular
// window snap targets, in two different dialects. GridMove gives each
// grid element four bound expressions (GridTop, GridBottom, GridLeft,
// GridRight) in monitor percentage space; KZones wants a JSON document of
// zones with x/y/width/height. This package implements the conversion:
//
//  1. Build ([Build]): Evaluate every section's bounds, normalize and
//     clamp the geometry, drop what cannot become a zone, and dedupe.
//  2. Serialize ([MarshalDocument], [WriteJSON]): Emit the KZones settings
//     document, a single-element JSON array.
//  3. Preview ([RenderSVG], [WriteSVG]): Draw the zone set as an SVG so a
//     layout can be eyeballed before loading it into KWin.
//
// # Conversion Pipeline
//
// Typical usage:
//
//	tmpl, err := gridmove.Parse(f)
//	// ... handle err ...
//
//	layout, err := kzones.Build(tmpl, expr.DefaultContext())
//	// ... handle err ...
//
//	layout.Name = kzones.LayoutName("xipergrid2")
//	err = kzones.WriteJSON(out, layout)
//
// Sections that cannot be converted (unevaluable bounds, missing keys,
// zero area after clamping) are recorded on [Layout.Skipped] rather than
// failing the run; only an empty result is an error.
package kzones
