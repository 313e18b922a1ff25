package mipidsi

import (
	"errors"
	"image"

	"tinygo.org/x/drivers"

	"github.com/flavioheleno/mipidsi/dcs"
)

// Orientation is the clockwise rotation of the picture, optionally mirrored
// horizontally.
type Orientation struct {
	Rotation drivers.Rotation
	Mirrored bool
}

// Swapped reports whether rows and columns are exchanged.
func (o Orientation) Swapped() bool {
	return o.Rotation == drivers.Rotation90 || o.Rotation == drivers.Rotation270
}

func (o Orientation) addressMode() dcs.AddressMode {
	if !o.Mirrored {
		switch o.Rotation {
		case drivers.Rotation90:
			return dcs.ColumnOrder | dcs.HorizontalFlip | dcs.RowColumnSwap
		case drivers.Rotation180:
			return dcs.ColumnOrder | dcs.HorizontalFlip | dcs.RowOrder | dcs.VerticalRefresh
		case drivers.Rotation270:
			return dcs.RowColumnSwap | dcs.RowOrder | dcs.VerticalRefresh
		}
		return 0
	}
	switch o.Rotation {
	case drivers.Rotation90:
		return dcs.ColumnOrder | dcs.HorizontalFlip | dcs.RowOrder | dcs.VerticalRefresh | dcs.RowColumnSwap
	case drivers.Rotation180:
		return dcs.RowOrder | dcs.VerticalRefresh
	case drivers.Rotation270:
		return dcs.RowColumnSwap
	}
	return dcs.ColumnOrder | dcs.HorizontalFlip
}

// ColorOrder is the subpixel order of the panel.
type ColorOrder uint8

const (
	RGB ColorOrder = iota
	BGR
)

// RefreshOrder flips the direction the panel is refreshed in, relative to
// the direction implied by the orientation.
type RefreshOrder struct {
	BottomToTop bool
	RightToLeft bool
}

// Options is the geometry and addressing configuration of a display.
//
// FramebufferSize is the controller memory in use and DisplaySize the visible
// panel, both in the native (unrotated) orientation. A panel smaller than the
// framebuffer is placed at DisplayOffset.
type Options struct {
	FramebufferSize image.Point
	DisplaySize     image.Point
	DisplayOffset   image.Point

	Orientation  Orientation
	ColorOrder   ColorOrder
	Refresh      RefreshOrder
	InvertColors bool
}

// Validate checks the geometry.
func (o *Options) Validate() error {
	if o.FramebufferSize.X < 0 || o.FramebufferSize.Y < 0 {
		return errors.New("mipidsi: framebuffer size must not be negative")
	}
	if o.DisplaySize.X < 0 || o.DisplaySize.Y < 0 {
		return errors.New("mipidsi: display size must not be negative")
	}
	if o.DisplayOffset.X < 0 || o.DisplayOffset.Y < 0 {
		return errors.New("mipidsi: display offset must not be negative")
	}
	if o.DisplayOffset.X+o.DisplaySize.X > 0x10000 || o.DisplayOffset.Y+o.DisplaySize.Y > 0x10000 {
		return errors.New("mipidsi: display does not fit 16-bit addresses")
	}
	return nil
}

// AddressMode returns the memory access control value for o.
func (o *Options) AddressMode() dcs.AddressMode {
	m := o.Orientation.addressMode()
	if o.Refresh.BottomToTop {
		m ^= dcs.VerticalRefresh
	}
	if o.Refresh.RightToLeft {
		m ^= dcs.HorizontalFlip
	}
	if o.ColorOrder == BGR {
		m |= dcs.BGR
	}
	return m
}

// Size returns the visible size as drawn, after rotation.
func (o *Options) Size() image.Point {
	if o.Orientation.Swapped() {
		return image.Pt(o.DisplaySize.Y, o.DisplaySize.X)
	}
	return o.DisplaySize
}

// offset returns the panel offset as drawn, after rotation.
func (o *Options) offset() image.Point {
	if o.Orientation.Swapped() {
		return image.Pt(o.DisplayOffset.Y, o.DisplayOffset.X)
	}
	return o.DisplayOffset
}

// window converts r, in drawing coordinates, to inclusive column and page
// address ranges. ok is false for an empty rectangle.
func (o *Options) window(r image.Rectangle) (cols, pages [2]uint16, ok bool) {
	if r.Empty() {
		return cols, pages, false
	}
	off := o.offset()
	cols = [2]uint16{uint16(r.Min.X + off.X), uint16(r.Max.X - 1 + off.X)}
	pages = [2]uint16{uint16(r.Min.Y + off.Y), uint16(r.Max.Y - 1 + off.Y)}
	return cols, pages, true
}
