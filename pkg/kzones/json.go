package kzones

import (
	"encoding/json"
	"io"
	"math"

	"github.com/matzehuels/gridkz/pkg/errors"
)

type jsonLayout struct {
	Name    string     `json:"name"`
	Padding int        `json:"padding"`
	Zones   []jsonZone `json:"zones"`
}

type jsonZone struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// MarshalDocument renders the layout as a KZones settings document, a
// single-element JSON array ready to paste into the KWin script's layout
// editor. Coordinates are emitted as x/y/width/height percentages rounded
// to three decimals; rounding happens only here, never during building.
func MarshalDocument(l *Layout) ([]byte, error) {
	doc := []jsonLayout{{
		Name:    l.Name,
		Padding: l.Padding,
		Zones:   buildJSONZones(l.Zones),
	}}
	return json.MarshalIndent(doc, "", "  ")
}

// WriteJSON writes the marshaled document to w, followed by a newline.
func WriteJSON(w io.Writer, l *Layout) error {
	data, err := MarshalDocument(l)
	if err != nil {
		return err
	}
	data = append(data, '\n')
	_, err = w.Write(data)
	return err
}

// ParseDocument reads a KZones settings document back into a Layout,
// taking the first layout when the array holds several. This is the
// inverse of MarshalDocument up to rounding; it exists so previews can
// work from an already-converted file.
func ParseDocument(data []byte) (*Layout, error) {
	var doc []jsonLayout
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "not a KZones document")
	}
	if len(doc) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidFormat, "document holds no layouts")
	}

	in := doc[0]
	l := &Layout{
		Name:    in.Name,
		Padding: in.Padding,
		Zones:   make([]Zone, len(in.Zones)),
	}
	for i, z := range in.Zones {
		l.Zones[i] = Zone{
			Left:   z.X,
			Top:    z.Y,
			Right:  z.X + z.Width,
			Bottom: z.Y + z.Height,
		}
	}
	return l, nil
}

func buildJSONZones(zones []Zone) []jsonZone {
	out := make([]jsonZone, len(zones))
	for i, z := range zones {
		out[i] = jsonZone{
			X:      round3(z.Left),
			Y:      round3(z.Top),
			Width:  round3(z.Width()),
			Height: round3(z.Height()),
		}
	}
	return out
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
