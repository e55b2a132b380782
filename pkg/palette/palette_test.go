package palette

import (
	"image/color"
	"testing"
)

func TestParseHex(t *testing.T) {
	tests := []struct {
		in      string
		want    color.RGBA
		wantErr bool
	}{
		{"#00ff41", color.RGBA{0, 255, 65, 255}, false},
		{"#fff", color.RGBA{255, 255, 255, 255}, false},
		{"green", color.RGBA{}, true},
	}
	for _, tt := range tests {
		got, err := ParseHex(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseHex(%q) err = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseHex(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
	if got := Hex(color.RGBA{0, 255, 65, 255}); got != "#00ff41" {
		t.Errorf("Hex = %q, want #00ff41", got)
	}
}

func TestBlendEndpoints(t *testing.T) {
	a := color.RGBA{0, 0, 0, 255}
	b := color.RGBA{200, 100, 50, 255}
	if got := Blend(a, b, 0); got != a {
		t.Errorf("Blend(t=0) = %v, want %v", got, a)
	}
	if got := Blend(a, b, 1); got != b {
		t.Errorf("Blend(t=1) = %v, want %v", got, b)
	}
	mid := Blend(a, b, 0.5)
	if mid.R < 95 || mid.R > 105 {
		t.Errorf("Blend(t=0.5).R = %d, want ~100", mid.R)
	}

	grad := make([]color.RGBA, 3)
	Gradient(grad, a, b)
	if grad[0] != a || grad[2] != b {
		t.Errorf("Gradient endpoints = %v, %v", grad[0], grad[2])
	}
}

func TestLookupFallsBackToGreen(t *testing.T) {
	if _, ok := Lookup("amber"); !ok {
		t.Error("amber theme missing")
	}
	th, ok := Lookup("magenta")
	if ok || th.Name != "green" {
		t.Errorf("Lookup(magenta) = %q, %v; want green fallback", th.Name, ok)
	}
	if got := DarkenColor(color.RGBA{200, 100, 50, 255}, 0.5); got != (color.RGBA{100, 50, 25, 255}) {
		t.Errorf("DarkenColor = %v", got)
	}
}
