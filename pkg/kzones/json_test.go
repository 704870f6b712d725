package kzones

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestMarshalDocument(t *testing.T) {
	l := &Layout{
		Name:    "xipergrid2 (converted)",
		Padding: 0,
		Zones: []Zone{
			{Left: 0, Right: 50, Top: 0, Bottom: 100},
			{Left: 50, Right: 100, Top: 0, Bottom: 100},
		},
	}

	data, err := MarshalDocument(l)
	if err != nil {
		t.Fatalf("MarshalDocument() error: %v", err)
	}

	var doc []jsonLayout
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("json.Unmarshal() error: %v", err)
	}

	if len(doc) != 1 {
		t.Fatalf("document has %d layouts, want 1", len(doc))
	}
	out := doc[0]
	if out.Name != "xipergrid2 (converted)" {
		t.Errorf("Name = %q, want %q", out.Name, "xipergrid2 (converted)")
	}
	if out.Padding != 0 {
		t.Errorf("Padding = %d, want 0", out.Padding)
	}
	if len(out.Zones) != 2 {
		t.Fatalf("Zones count = %d, want 2", len(out.Zones))
	}

	first := out.Zones[0]
	if first.X != 0 || first.Y != 0 || first.Width != 50 || first.Height != 100 {
		t.Errorf("first zone = %+v, want {0 0 50 100}", first)
	}
}

func TestMarshalDocumentRounding(t *testing.T) {
	l := &Layout{
		Name: "thirds (converted)",
		Zones: []Zone{
			{Left: 100.0 / 3, Right: 200.0 / 3, Top: 0, Bottom: 100},
		},
	}

	data, err := MarshalDocument(l)
	if err != nil {
		t.Fatalf("MarshalDocument() error: %v", err)
	}

	var doc []jsonLayout
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("json.Unmarshal() error: %v", err)
	}

	z := doc[0].Zones[0]
	if z.X != 33.333 {
		t.Errorf("X = %v, want 33.333", z.X)
	}
	if z.Width != 33.333 {
		t.Errorf("Width = %v, want 33.333", z.Width)
	}
}

func TestMarshalDocumentEmptyZoneList(t *testing.T) {
	// The builder never produces this, but the serializer should not
	// panic or emit null for a layout with no zones.
	data, err := MarshalDocument(&Layout{Name: "empty"})
	if err != nil {
		t.Fatalf("MarshalDocument() error: %v", err)
	}
	if !strings.Contains(string(data), `"zones": []`) {
		t.Errorf("output should contain an empty zones array:\n%s", data)
	}
}

func TestMarshalDocumentKeyNames(t *testing.T) {
	l := &Layout{
		Name:  "keys",
		Zones: []Zone{{Left: 0, Right: 100, Top: 0, Bottom: 100}},
	}

	data, err := MarshalDocument(l)
	if err != nil {
		t.Fatalf("MarshalDocument() error: %v", err)
	}

	for _, key := range []string{`"name"`, `"padding"`, `"zones"`, `"x"`, `"y"`, `"width"`, `"height"`} {
		if !strings.Contains(string(data), key) {
			t.Errorf("output missing key %s:\n%s", key, data)
		}
	}
}

func TestWriteJSON(t *testing.T) {
	l := &Layout{
		Name:  "w (converted)",
		Zones: []Zone{{Left: 0, Right: 100, Top: 0, Bottom: 100}},
	}

	var buf bytes.Buffer
	if err := WriteJSON(&buf, l); err != nil {
		t.Fatalf("WriteJSON() error: %v", err)
	}
	if !bytes.HasSuffix(buf.Bytes(), []byte("\n")) {
		t.Error("output should end with a newline")
	}

	var doc []jsonLayout
	if err := json.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatalf("written document is not valid JSON: %v", err)
	}
}

func TestParseDocumentRoundTrip(t *testing.T) {
	l := &Layout{
		Name:    "halves (converted)",
		Padding: 8,
		Zones: []Zone{
			{Left: 0, Right: 50, Top: 0, Bottom: 100},
			{Left: 50, Right: 100, Top: 0, Bottom: 100},
		},
	}

	data, err := MarshalDocument(l)
	if err != nil {
		t.Fatalf("MarshalDocument() error: %v", err)
	}

	got, err := ParseDocument(data)
	if err != nil {
		t.Fatalf("ParseDocument() error: %v", err)
	}

	if got.Name != l.Name {
		t.Errorf("Name = %q, want %q", got.Name, l.Name)
	}
	if got.Padding != 8 {
		t.Errorf("Padding = %d, want 8", got.Padding)
	}
	if len(got.Zones) != 2 {
		t.Fatalf("Zones count = %d, want 2", len(got.Zones))
	}
	if got.Zones[1].Left != 50 || got.Zones[1].Right != 100 {
		t.Errorf("second zone = %+v, want Left 50 Right 100", got.Zones[1])
	}
}

func TestParseDocumentRejectsBadInput(t *testing.T) {
	if _, err := ParseDocument([]byte("not json")); err == nil {
		t.Error("garbage input should fail")
	}
	if _, err := ParseDocument([]byte("[]")); err == nil {
		t.Error("empty document should fail")
	}
}

func TestRound3(t *testing.T) {
	tests := []struct {
		name  string
		value float64
		want  float64
	}{
		{name: "no fraction", value: 50, want: 50},
		{name: "repeating third", value: 100.0 / 3, want: 33.333},
		{name: "rounds up", value: 66.66666666, want: 66.667},
		{name: "already three decimals", value: 12.125, want: 12.125},
		{name: "zero", value: 0, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := round3(tt.value); got != tt.want {
				t.Errorf("round3(%v) = %v, want %v", tt.value, got, tt.want)
			}
		})
	}
}
