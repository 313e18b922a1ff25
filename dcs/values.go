package dcs

import (
	"fmt"
)

// BitsPerPixel is the 3-bit pixel depth field of the pixel format register.
type BitsPerPixel uint8

// Pixel depths.
const (
	Bpp3  BitsPerPixel = 0b001
	Bpp8  BitsPerPixel = 0b010
	Bpp12 BitsPerPixel = 0b011
	Bpp16 BitsPerPixel = 0b101
	Bpp18 BitsPerPixel = 0b110
	Bpp24 BitsPerPixel = 0b111
)

// BitsPerPixelFromBits returns the field value for a depth in bits.
func BitsPerPixelFromBits(bits int) (BitsPerPixel, error) {
	switch bits {
	case 3:
		return Bpp3, nil
	case 8:
		return Bpp8, nil
	case 12:
		return Bpp12, nil
	case 16:
		return Bpp16, nil
	case 18:
		return Bpp18, nil
	case 24:
		return Bpp24, nil
	}
	return 0, fmt.Errorf("dcs: unsupported pixel depth %d", bits)
}

// Bits returns the depth in bits, or 0 for an unknown field value.
func (b BitsPerPixel) Bits() int {
	switch b {
	case Bpp3:
		return 3
	case Bpp8:
		return 8
	case Bpp12:
		return 12
	case Bpp16:
		return 16
	case Bpp18:
		return 18
	case Bpp24:
		return 24
	}
	return 0
}

// PixelFormat is the value of the interface pixel format register (COLMOD).
// Bits 6:4 select the RGB (DPI) interface depth, bits 2:0 the MCU (DBI)
// interface depth.
type PixelFormat uint8

// NewPixelFormat combines the DPI and DBI depths.
func NewPixelFormat(dpi, dbi BitsPerPixel) PixelFormat {
	return PixelFormat((dpi&0x07)<<4 | dbi&0x07)
}

// PixelFormatWithAll uses the same depth for both interfaces.
func PixelFormatWithAll(bpp BitsPerPixel) PixelFormat {
	return NewPixelFormat(bpp, bpp)
}

// DPI returns the RGB interface depth.
func (pf PixelFormat) DPI() BitsPerPixel {
	return BitsPerPixel(pf>>4) & 0x07
}

// DBI returns the MCU interface depth.
func (pf PixelFormat) DBI() BitsPerPixel {
	return BitsPerPixel(pf) & 0x07
}

// AddressMode is the value of the memory access control register (MADCTL).
// It is what a controller ends up configured with after initialization and
// tells upper layers how logical coordinates map to controller memory.
type AddressMode uint8

// Memory access control bits.
const (
	RowOrder        AddressMode = 0x80 // MY: rows addressed bottom to top
	ColumnOrder     AddressMode = 0x40 // MX: columns addressed right to left
	RowColumnSwap   AddressMode = 0x20 // MV: rows and columns exchanged
	VerticalRefresh AddressMode = 0x10 // ML: refresh bottom to top
	BGR             AddressMode = 0x08 // blue-green-red subpixel order
	HorizontalFlip  AddressMode = 0x04 // MH: refresh right to left
)

// Has reports whether all bits of f are set.
func (m AddressMode) Has(f AddressMode) bool {
	return m&f == f
}

// Swapped reports whether the row/column exchange bit is set.
func (m AddressMode) Swapped() bool {
	return m.Has(RowColumnSwap)
}

func (m AddressMode) String() string {
	return fmt.Sprintf("MADCTL(0x%02X)", uint8(m))
}
