package mipidsi

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"iter"
	"time"

	"github.com/flavioheleno/mipidsi/dcs"
)

// Color is a pixel color a Model can stream to a controller. Its zero
// value reports the pixel depth, and AppendEncoded is the byte layout the
// controller expects for that depth.
type Color interface {
	color.Color
	comparable
	// Bits returns the number of bits per pixel.
	Bits() int
	// AppendEncoded appends the bus encoding of the color to b.
	AppendEncoded(b []byte) []byte
}

// SetupFunc sends the chip specific part of the initialization sequence,
// after the controller has been reset, and returns the address mode the
// controller was configured with.
type SetupFunc func(ctx context.Context, w *dcs.Writer, d Delayer, o *Options, pf dcs.PixelFormat) (dcs.AddressMode, error)

// Chip describes a controller: its native geometry, reset timing and
// initialization sequence. Adding a controller only requires a new Chip.
type Chip struct {
	Name string
	// Size is the native framebuffer and panel size.
	Size image.Point
	// ResetHold is how long the reset line is held low.
	ResetHold time.Duration
	// ResetSettle is the wait after a hardware or software reset.
	ResetSettle time.Duration
	Setup       SetupFunc
}

// Model drives a Chip with pixels of type C.
//
// A Model holds no hardware state: the address window and every other
// register live in the controller. Init must succeed before WritePixels is
// used; this is not checked.
type Model[C Color] struct {
	chip          Chip
	colorModel    color.Model
	bpp           dcs.BitsPerPixel
	bytesPerPixel int
}

// NewModel returns a model for chip using colors of type C. cm converts
// arbitrary colors to C.
func NewModel[C Color](chip Chip, cm color.Model) (*Model[C], error) {
	if chip.Setup == nil {
		return nil, fmt.Errorf("mipidsi: chip %q has no setup sequence", chip.Name)
	}
	var zero C
	bpp, err := dcs.BitsPerPixelFromBits(zero.Bits())
	if err != nil {
		return nil, fmt.Errorf("mipidsi: chip %q: %w", chip.Name, err)
	}
	n := len(zero.AppendEncoded(nil))
	if n == 0 {
		return nil, fmt.Errorf("mipidsi: chip %q: color encodes to no bytes", chip.Name)
	}
	return &Model[C]{chip: chip, colorModel: cm, bpp: bpp, bytesPerPixel: n}, nil
}

func mustModel[C Color](chip Chip, cm color.Model) *Model[C] {
	m, err := NewModel[C](chip, cm)
	if err != nil {
		panic(err)
	}
	return m
}

// Chip returns the controller description.
func (m *Model[C]) Chip() Chip {
	return m.chip
}

// ColorModel returns the color model converting to C.
func (m *Model[C]) ColorModel() color.Model {
	return m.colorModel
}

// PixelFormat returns the value negotiated with the controller during Init.
func (m *Model[C]) PixelFormat() dcs.PixelFormat {
	return dcs.PixelFormatWithAll(m.bpp)
}

// BytesPerPixel returns the size of one encoded pixel.
func (m *Model[C]) BytesPerPixel() int {
	return m.bytesPerPixel
}

// DefaultOptions returns the native geometry of the chip.
func (m *Model[C]) DefaultOptions() Options {
	return Options{
		FramebufferSize: m.chip.Size,
		DisplaySize:     m.chip.Size,
	}
}

// Init resets the controller, then runs the chip initialization sequence with
// the pixel format of C. rst selects a hardware reset through a pin or a
// software reset command; nil is a software reset.
//
// o may be nil to use the model defaults. Invalid options are rejected
// before anything is sent to the controller.
//
// Errors are *InitError wrapping a *ResetPinError or a *dcs.TransportError.
// A failed Init leaves the controller in an unknown state; call Init again.
func (m *Model[C]) Init(ctx context.Context, w *dcs.Writer, d Delayer, o *Options, rst Reset) (dcs.AddressMode, error) {
	if o == nil {
		def := m.DefaultOptions()
		o = &def
	}
	if err := o.Validate(); err != nil {
		return 0, err
	}

	if r, ok := hardReset(rst); ok {
		if err := r.pulse(ctx, d, m.chip.ResetHold, m.chip.ResetSettle); err != nil {
			return 0, &InitError{Err: err}
		}
	} else {
		if err := w.WriteCommand(ctx, dcs.SoftReset); err != nil {
			return 0, &InitError{Err: err}
		}
		d.Delay(ctx, m.chip.ResetSettle)
	}

	mode, err := m.chip.Setup(ctx, w, d, o, m.PixelFormat())
	if err != nil {
		return 0, &InitError{Err: err}
	}
	return mode, nil
}

// WritePixels streams colors into the current address window of the
// controller. Errors are *dcs.TransportError.
func (m *Model[C]) WritePixels(ctx context.Context, w *dcs.Writer, colors iter.Seq[C]) error {
	return dcs.WritePixels(ctx, w, m.bytesPerPixel, colors)
}

// convert returns c as a C.
func (m *Model[C]) convert(c color.Color) C {
	if v, ok := c.(C); ok {
		return v
	}
	return m.colorModel.Convert(c).(C)
}
