package rgb

import (
	"image/color"
)

const (
	mask5 = 0x1F
	mask6 = 0x3F
)

// RGB565 is a 16-bit color with 5 bits of red, 6 bits of green and 5 bits of blue.
// Only the low bits of each channel are used.
type RGB565 struct {
	R, G, B uint8
}

// New565 returns the RGB565 color closest to the 8-bit channel values.
func New565(r, g, b uint8) RGB565 {
	return RGB565{R: r >> 3, G: g >> 2, B: b >> 3}
}

// RGBA implements color.Color.
func (c RGB565) RGBA() (r, g, b, a uint32) {
	return expand5(c.R), expand6(c.G), expand5(c.B), 0xFFFF
}

// Bits returns 16.
func (RGB565) Bits() int {
	return 16
}

// Uint16 returns the packed 5-6-5 value.
func (c RGB565) Uint16() uint16 {
	return uint16(c.R&mask5)<<11 | uint16(c.G&mask6)<<5 | uint16(c.B&mask5)
}

// AppendEncoded appends the two bus bytes of c to b, most significant byte first.
func (c RGB565) AppendEncoded(b []byte) []byte {
	v := c.Uint16()
	return append(b, byte(v>>8), byte(v))
}

// Decode565 decodes the first two bytes of p.
func Decode565(p []byte) RGB565 {
	v := uint16(p[0])<<8 | uint16(p[1])
	return RGB565{
		R: uint8(v>>11) & mask5,
		G: uint8(v>>5) & mask6,
		B: uint8(v) & mask5,
	}
}

// RGB666 is an 18-bit color with 6 bits per channel.
// Only the low 6 bits of each channel are used.
type RGB666 struct {
	R, G, B uint8
}

// New666 returns the RGB666 color closest to the 8-bit channel values.
func New666(r, g, b uint8) RGB666 {
	return RGB666{R: r >> 2, G: g >> 2, B: b >> 2}
}

// RGBA implements color.Color.
func (c RGB666) RGBA() (r, g, b, a uint32) {
	return expand6(c.R), expand6(c.G), expand6(c.B), 0xFFFF
}

// Bits returns 18.
func (RGB666) Bits() int {
	return 18
}

// AppendEncoded appends the three bus bytes of c to b. Each channel occupies
// the six most significant bits of its byte; the two low bits are zero.
func (c RGB666) AppendEncoded(b []byte) []byte {
	return append(b, (c.R&mask6)<<2, (c.G&mask6)<<2, (c.B&mask6)<<2)
}

// Decode666 decodes the first three bytes of p, ignoring the two low bits of each byte.
func Decode666(p []byte) RGB666 {
	return RGB666{R: p[0] >> 2, G: p[1] >> 2, B: p[2] >> 2}
}

// RGB565Model converts colors to RGB565.
var RGB565Model = color.ModelFunc(toRGB565)

// RGB666Model converts colors to RGB666.
var RGB666Model = color.ModelFunc(toRGB666)

func toRGB565(c color.Color) color.Color {
	if v, ok := c.(RGB565); ok {
		return v
	}
	r, g, b, _ := c.RGBA()
	return RGB565{R: uint8(r >> 11), G: uint8(g >> 10), B: uint8(b >> 11)}
}

func toRGB666(c color.Color) color.Color {
	if v, ok := c.(RGB666); ok {
		return v
	}
	r, g, b, _ := c.RGBA()
	return RGB666{R: uint8(r >> 10), G: uint8(g >> 10), B: uint8(b >> 10)}
}

// expand5 scales a 5-bit channel to 16 bits by bit replication.
func expand5(v uint8) uint32 {
	v &= mask5
	c := uint32(v<<3 | v>>2)
	return c<<8 | c
}

// expand6 scales a 6-bit channel to 16 bits by bit replication.
func expand6(v uint8) uint32 {
	v &= mask6
	c := uint32(v<<2 | v>>4)
	return c<<8 | c
}
