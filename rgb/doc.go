// Package rgb provides the color formats streamed to MIPI DCS display controllers.
//
// Each format knows how many bits per pixel it carries and how a single pixel
// is laid out on the bus:
//
//	RGB565 (16 bpp, 2 bytes, big endian):
//	  byte 0: R4 R3 R2 R1 R0 G5 G4 G3
//	  byte 1: G2 G1 G0 B4 B3 B2 B1 B0
//
//	RGB666 (18 bpp, 3 bytes, each channel left-aligned):
//	  byte 0: R5 R4 R3 R2 R1 R0 -  -
//	  byte 1: G5 G4 G3 G2 G1 G0 -  -
//	  byte 2: B5 B4 B3 B2 B1 B0 -  -
//
// Channel values are stored at their native precision, so RGB565{R: 31} is
// full red. Both types implement color.Color and have a matching color.Model
// for converting standard Go colors:
//
//	c := rgb.RGB565Model.Convert(color.RGBA{0xff, 0x80, 0x00, 0xff}).(rgb.RGB565)
//	buf := c.AppendEncoded(nil) // []byte{0xfc, 0x00}
package rgb
