// rgb_test.go - Color helper tests

package textmode

import (
	"image/color"
	"testing"
)

func TestParseHex(t *testing.T) {
	tests := []struct {
		in   string
		want RGB
	}{
		{"#ff1493", RGB{255, 20, 147}},
		{"0055aa", RGB{0, 85, 170}},
		{" #FFFFFF ", White},
		{"#f00", RGB{255, 0, 0}},
	}
	for _, tt := range tests {
		got, err := ParseHex(tt.in)
		if err != nil {
			t.Errorf("ParseHex(%q): %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseHex(%q) = %+v, want %+v", tt.in, got, tt.want)
		}
	}
}

func TestParseHex_Invalid(t *testing.T) {
	for _, in := range []string{"", "#12", "zzzzzz", "#1234567"} {
		if _, err := ParseHex(in); err == nil {
			t.Errorf("ParseHex(%q) should fail", in)
		}
	}
}

func TestMustParseHex_Panics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic")
		}
	}()
	MustParseHex("nope")
}

func TestRGB_Hex(t *testing.T) {
	if got := (RGB{1, 171, 255}).Hex(); got != "#01abff" {
		t.Fatalf("got %q", got)
	}
}

func TestRGBFromColor(t *testing.T) {
	got := RGBFromColor(color.RGBA{R: 128, G: 64, B: 0, A: 255})
	if got != (RGB{128, 64, 0}) {
		t.Fatalf("got %+v", got)
	}
	var _ color.Color = RGB{}
}
