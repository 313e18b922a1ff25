package rgb

import (
	"bytes"
	"image/color"
	"testing"
)

func TestRGB565AppendEncoded(t *testing.T) {
	tests := []struct {
		name string
		c    RGB565
		want []byte
	}{
		{"black", RGB565{}, []byte{0x00, 0x00}},
		{"white", RGB565{R: 31, G: 63, B: 31}, []byte{0xFF, 0xFF}},
		{"red", RGB565{R: 31}, []byte{0xF8, 0x00}},
		{"green", RGB565{G: 63}, []byte{0x07, 0xE0}},
		{"blue", RGB565{B: 31}, []byte{0x00, 0x1F}},
		{"mask ignored", RGB565{R: 0xFF, G: 0xFF, B: 0xFF}, []byte{0xFF, 0xFF}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.c.AppendEncoded(nil); !bytes.Equal(got, tt.want) {
				t.Errorf("AppendEncoded() = % X, want % X", got, tt.want)
			}
		})
	}
}

func TestRGB565RoundTrip(t *testing.T) {
	for r := uint8(0); r <= mask5; r++ {
		for g := uint8(0); g <= mask6; g++ {
			for b := uint8(0); b <= mask5; b++ {
				c := RGB565{R: r, G: g, B: b}
				buf := c.AppendEncoded(nil)
				if len(buf) != 2 {
					t.Fatalf("%v encoded to %d bytes, want 2", c, len(buf))
				}
				if got := Decode565(buf); got != c {
					t.Fatalf("Decode565(% X) = %v, want %v", buf, got, c)
				}
			}
		}
	}
}

func TestRGB666AppendEncoded(t *testing.T) {
	tests := []struct {
		name string
		c    RGB666
		want []byte
	}{
		{"black", RGB666{}, []byte{0x00, 0x00, 0x00}},
		{"white", RGB666{R: 63, G: 63, B: 63}, []byte{0xFC, 0xFC, 0xFC}},
		{"mixed", RGB666{R: 1, G: 32, B: 62}, []byte{0x04, 0x80, 0xF8}},
		{"mask ignored", RGB666{R: 0xFF}, []byte{0xFC, 0x00, 0x00}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.c.AppendEncoded(nil); !bytes.Equal(got, tt.want) {
				t.Errorf("AppendEncoded() = % X, want % X", got, tt.want)
			}
		})
	}
}

func TestRGB666RoundTrip(t *testing.T) {
	for r := uint8(0); r <= mask6; r++ {
		for g := uint8(0); g <= mask6; g++ {
			for b := uint8(0); b <= mask6; b++ {
				c := RGB666{R: r, G: g, B: b}
				buf := c.AppendEncoded(nil)
				if len(buf) != 3 {
					t.Fatalf("%v encoded to %d bytes, want 3", c, len(buf))
				}
				for i, v := range buf {
					if v&0x03 != 0 {
						t.Fatalf("byte %d of %v = %#02x, low bits must be zero", i, c, v)
					}
				}
				if got := Decode666(buf); got != c {
					t.Fatalf("Decode666(% X) = %v, want %v", buf, got, c)
				}
			}
		}
	}
}

func TestDecode666IgnoresLowBits(t *testing.T) {
	want := RGB666{R: 63, G: 0, B: 21}
	if got := Decode666([]byte{0xFF, 0x03, 0x56}); got != want {
		t.Errorf("Decode666() = %v, want %v", got, want)
	}
}

func TestBits(t *testing.T) {
	if got := (RGB565{}).Bits(); got != 16 {
		t.Errorf("RGB565.Bits() = %d, want 16", got)
	}
	if got := (RGB666{}).Bits(); got != 18 {
		t.Errorf("RGB666.Bits() = %d, want 18", got)
	}
}

func TestRGBA(t *testing.T) {
	tests := []struct {
		name    string
		c       color.Color
		r, g, b uint32
	}{
		{"565 black", RGB565{}, 0, 0, 0},
		{"565 white", RGB565{R: 31, G: 63, B: 31}, 0xFFFF, 0xFFFF, 0xFFFF},
		{"565 mid", RGB565{R: 16, G: 32, B: 16}, 0x8484, 0x8282, 0x8484},
		{"666 white", RGB666{R: 63, G: 63, B: 63}, 0xFFFF, 0xFFFF, 0xFFFF},
		{"666 mid", RGB666{R: 32, G: 32, B: 32}, 0x8282, 0x8282, 0x8282},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, g, b, a := tt.c.RGBA()
			if r != tt.r || g != tt.g || b != tt.b || a != 0xFFFF {
				t.Errorf("RGBA() = (%x, %x, %x, %x), want (%x, %x, %x, ffff)", r, g, b, a, tt.r, tt.g, tt.b)
			}
		})
	}
}

func TestModelConvert(t *testing.T) {
	tests := []struct {
		name  string
		model color.Model
		input color.Color
		want  color.Color
	}{
		{"565 passthrough", RGB565Model, RGB565{R: 3, G: 4, B: 5}, RGB565{R: 3, G: 4, B: 5}},
		{"565 white", RGB565Model, color.White, RGB565{R: 31, G: 63, B: 31}},
		{"565 black", RGB565Model, color.Black, RGB565{}},
		{"565 orange", RGB565Model, color.RGBA{0xFF, 0x80, 0x00, 0xFF}, RGB565{R: 31, G: 32, B: 0}},
		{"666 passthrough", RGB666Model, RGB666{R: 7, G: 8, B: 9}, RGB666{R: 7, G: 8, B: 9}},
		{"666 white", RGB666Model, color.White, RGB666{R: 63, G: 63, B: 63}},
		{"666 from 565", RGB666Model, RGB565{R: 31}, RGB666{R: 63}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.model.Convert(tt.input); got != tt.want {
				t.Errorf("Convert(%v) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestModelRoundTrip(t *testing.T) {
	for r := uint8(0); r <= mask5; r++ {
		c := RGB565{R: r, G: r * 2, B: mask5 - r}
		if got := RGB565Model.Convert(color.RGBA64Model.Convert(c)); got != c {
			t.Errorf("RGB565Model round trip of %v = %v", c, got)
		}
	}
	for v := uint8(0); v <= mask6; v++ {
		c := RGB666{R: v, G: mask6 - v, B: v / 2}
		if got := RGB666Model.Convert(color.RGBA64Model.Convert(c)); got != c {
			t.Errorf("RGB666Model round trip of %v = %v", c, got)
		}
	}
}

func TestNew(t *testing.T) {
	if got, want := New565(0xFF, 0x80, 0x08), (RGB565{R: 31, G: 32, B: 1}); got != want {
		t.Errorf("New565() = %v, want %v", got, want)
	}
	if got, want := New666(0xFF, 0x80, 0x08), (RGB666{R: 63, G: 32, B: 2}); got != want {
		t.Errorf("New666() = %v, want %v", got, want)
	}
}
