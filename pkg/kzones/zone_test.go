package kzones

import "testing"

func TestZoneWidth(t *testing.T) {
	tests := []struct {
		name string
		zone Zone
		want float64
	}{
		{
			name: "positive width",
			zone: Zone{Left: 10, Right: 50},
			want: 40,
		},
		{
			name: "zero width",
			zone: Zone{Left: 10, Right: 10},
			want: 0,
		},
		{
			name: "full monitor",
			zone: Zone{Left: 0, Right: 100},
			want: 100,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.zone.Width(); got != tt.want {
				t.Errorf("Width() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestZoneHeight(t *testing.T) {
	tests := []struct {
		name string
		zone Zone
		want float64
	}{
		{
			name: "positive height",
			zone: Zone{Top: 20, Bottom: 80},
			want: 60,
		},
		{
			name: "zero height",
			zone: Zone{Top: 50, Bottom: 50},
			want: 0,
		},
		{
			name: "full monitor",
			zone: Zone{Top: 0, Bottom: 100},
			want: 100,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.zone.Height(); got != tt.want {
				t.Errorf("Height() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestZoneNormalize(t *testing.T) {
	tests := []struct {
		name string
		zone Zone
		want Zone
	}{
		{
			name: "already normalized",
			zone: Zone{Left: 0, Right: 50, Top: 0, Bottom: 100},
			want: Zone{Left: 0, Right: 50, Top: 0, Bottom: 100},
		},
		{
			name: "inverted horizontal",
			zone: Zone{Left: 90, Right: 10, Top: 0, Bottom: 100},
			want: Zone{Left: 10, Right: 90, Top: 0, Bottom: 100},
		},
		{
			name: "inverted vertical",
			zone: Zone{Left: 0, Right: 100, Top: 100, Bottom: 0},
			want: Zone{Left: 0, Right: 100, Top: 0, Bottom: 100},
		},
		{
			name: "both inverted",
			zone: Zone{Left: 100, Right: 0, Top: 100, Bottom: 0},
			want: Zone{Left: 0, Right: 100, Top: 0, Bottom: 100},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.zone.Normalize(); got != tt.want {
				t.Errorf("Normalize() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestZoneNormalizeIdempotent(t *testing.T) {
	z := Zone{Left: 90, Right: 10, Top: 100, Bottom: 0}
	once := z.Normalize()
	twice := once.Normalize()
	if once != twice {
		t.Errorf("Normalize() not idempotent: %+v vs %+v", once, twice)
	}
}

func TestZoneClamp(t *testing.T) {
	tests := []struct {
		name string
		zone Zone
		want Zone
	}{
		{
			name: "in range untouched",
			zone: Zone{Left: 0, Right: 50, Top: 25, Bottom: 75},
			want: Zone{Left: 0, Right: 50, Top: 25, Bottom: 75},
		},
		{
			name: "overflow clamped to 100",
			zone: Zone{Left: 0, Right: 101, Top: 0, Bottom: 150},
			want: Zone{Left: 0, Right: 100, Top: 0, Bottom: 100},
		},
		{
			name: "negative clamped to 0",
			zone: Zone{Left: -10, Right: 50, Top: -5, Bottom: 100},
			want: Zone{Left: 0, Right: 50, Top: 0, Bottom: 100},
		},
		{
			name: "fully out of range collapses",
			zone: Zone{Left: 100, Right: 120, Top: 0, Bottom: 100},
			want: Zone{Left: 100, Right: 100, Top: 0, Bottom: 100},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.zone.Clamp(); got != tt.want {
				t.Errorf("Clamp() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestZoneEmpty(t *testing.T) {
	tests := []struct {
		name string
		zone Zone
		want bool
	}{
		{
			name: "regular zone",
			zone: Zone{Left: 0, Right: 50, Top: 0, Bottom: 100},
			want: false,
		},
		{
			name: "zero width",
			zone: Zone{Left: 100, Right: 100, Top: 0, Bottom: 100},
			want: true,
		},
		{
			name: "zero height",
			zone: Zone{Left: 0, Right: 100, Top: 50, Bottom: 50},
			want: true,
		},
		{
			name: "zero struct",
			zone: Zone{},
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.zone.Empty(); got != tt.want {
				t.Errorf("Empty() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestLayoutName(t *testing.T) {
	if got := LayoutName("xipergrid2"); got != "xipergrid2 (converted)" {
		t.Errorf("LayoutName() = %q, want %q", got, "xipergrid2 (converted)")
	}
}
