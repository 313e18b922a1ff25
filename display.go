package mipidsi

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"iter"

	"periph.io/x/conn/v3/display"

	"github.com/flavioheleno/mipidsi/dcs"
	"github.com/flavioheleno/mipidsi/rgb"
)

var (
	_ display.Drawer = (*Display[rgb.RGB565])(nil)
	_ display.Drawer = (*Display[rgb.RGB666])(nil)
)

// Display is an initialized controller ready for drawing. It implements
// display.Drawer from periph.io.
//
// A Display is not safe for concurrent use.
type Display[C Color] struct {
	w     *dcs.Writer
	model *Model[C]
	delay Delayer
	opts  Options
	mode  dcs.AddressMode
	rect  image.Rectangle

	halted bool
}

// New initializes the controller behind ch and returns a Display.
//
// opts may be nil to use the model defaults. d may be nil to use SleepDelayer.
func New[C Color](ctx context.Context, ch dcs.Channel, model *Model[C], d Delayer, rst Reset, opts *Options) (*Display[C], error) {
	o := model.DefaultOptions()
	if opts != nil {
		o = *opts
	}
	if err := o.Validate(); err != nil {
		return nil, err
	}
	if d == nil {
		d = SleepDelayer{}
	}

	disp := &Display[C]{
		w:     dcs.NewWriter(ch),
		model: model,
		delay: d,
		opts:  o,
		rect:  image.Rectangle{Max: o.Size()},
	}

	mode, err := model.Init(ctx, disp.w, d, &disp.opts, rst)
	if err != nil {
		return nil, err
	}
	disp.mode = mode
	return disp, nil
}

// Model returns the controller model.
func (disp *Display[C]) Model() *Model[C] {
	return disp.model
}

// Options returns the options in effect.
func (disp *Display[C]) Options() Options {
	return disp.opts
}

// AddressMode returns the memory access control value last written.
func (disp *Display[C]) AddressMode() dcs.AddressMode {
	return disp.mode
}

// ColorModel implements display.Drawer.
func (disp *Display[C]) ColorModel() color.Model {
	return disp.model.ColorModel()
}

// Bounds implements display.Drawer.
func (disp *Display[C]) Bounds() image.Rectangle {
	return disp.rect
}

// String implements display.Drawer.
func (disp *Display[C]) String() string {
	return fmt.Sprintf("mipidsi.Display{%s %dx%d}", disp.model.chip.Name, disp.rect.Dx(), disp.rect.Dy())
}

// SetAddressWindow selects the rectangle subsequent pixel writes land in.
func (disp *Display[C]) SetAddressWindow(ctx context.Context, r image.Rectangle) error {
	if disp.halted {
		return ErrHalted
	}
	cols, pages, ok := disp.opts.window(r)
	if !ok {
		return errors.New("mipidsi: empty address window")
	}
	if err := disp.w.SetColumnAddress(ctx, cols[0], cols[1]); err != nil {
		return err
	}
	return disp.w.SetPageAddress(ctx, pages[0], pages[1])
}

// SetPixels fills r with colors, row by row.
func (disp *Display[C]) SetPixels(ctx context.Context, r image.Rectangle, colors iter.Seq[C]) error {
	if disp.halted {
		return ErrHalted
	}
	if r.Empty() {
		return nil
	}
	if !r.In(disp.rect) {
		return errors.New("mipidsi: rectangle outside display area")
	}
	if err := disp.SetAddressWindow(ctx, r); err != nil {
		return err
	}
	return disp.model.WritePixels(ctx, disp.w, colors)
}

// SetPixel sets a single pixel.
func (disp *Display[C]) SetPixel(ctx context.Context, x, y int, c C) error {
	return disp.SetPixels(ctx, image.Rect(x, y, x+1, y+1), func(yield func(C) bool) {
		yield(c)
	})
}

// FillRect fills r with a single color.
func (disp *Display[C]) FillRect(ctx context.Context, r image.Rectangle, c C) error {
	return disp.SetPixels(ctx, r, repeat(c, r.Dx()*r.Dy()))
}

// Clear fills the whole display with c.
func (disp *Display[C]) Clear(ctx context.Context, c C) error {
	return disp.FillRect(ctx, disp.rect, c)
}

// Draw implements display.Drawer. The src image is converted to the model
// color type pixel by pixel.
func (disp *Display[C]) Draw(dst image.Rectangle, src image.Image, sp image.Point) error {
	return disp.DrawContext(context.Background(), dst, src, sp)
}

// DrawContext is Draw with a context.
func (disp *Display[C]) DrawContext(ctx context.Context, dst image.Rectangle, src image.Image, sp image.Point) error {
	if disp.halted {
		return ErrHalted
	}

	// Clip to display bounds
	clipped := dst.Intersect(disp.rect)
	if clipped.Empty() {
		return nil
	}
	sp = sp.Add(clipped.Min.Sub(dst.Min))

	return disp.SetPixels(ctx, clipped, func(yield func(C) bool) {
		for y := 0; y < clipped.Dy(); y++ {
			for x := 0; x < clipped.Dx(); x++ {
				if !yield(disp.model.convert(src.At(sp.X+x, sp.Y+y))) {
					return
				}
			}
		}
	})
}

// SetOrientation rotates or mirrors the picture. Bounds changes accordingly
// when rows and columns are exchanged.
func (disp *Display[C]) SetOrientation(ctx context.Context, o Orientation) error {
	if disp.halted {
		return ErrHalted
	}
	opts := disp.opts
	opts.Orientation = o
	mode := opts.AddressMode()
	if err := disp.w.SetAddressMode(ctx, mode); err != nil {
		return err
	}
	disp.opts = opts
	disp.mode = mode
	disp.rect = image.Rectangle{Max: opts.Size()}
	return nil
}

// SetInvertColors enables or disables color inversion.
func (disp *Display[C]) SetInvertColors(ctx context.Context, invert bool) error {
	if disp.halted {
		return ErrHalted
	}
	if err := disp.w.SetInvertMode(ctx, invert); err != nil {
		return err
	}
	disp.opts.InvertColors = invert
	return nil
}

// Sleep puts the controller into sleep mode. Memory contents are retained.
func (disp *Display[C]) Sleep(ctx context.Context) error {
	if disp.halted {
		return ErrHalted
	}
	if err := disp.w.WriteCommand(ctx, dcs.EnterSleepMode); err != nil {
		return err
	}
	disp.delay.Delay(ctx, ili934xSleepOut)
	return nil
}

// Wake leaves sleep mode.
func (disp *Display[C]) Wake(ctx context.Context) error {
	if disp.halted {
		return ErrHalted
	}
	if err := disp.w.WriteCommand(ctx, dcs.ExitSleepMode); err != nil {
		return err
	}
	disp.delay.Delay(ctx, ili934xWake)
	return nil
}

// Halt turns the display off and puts the controller to sleep.
// After calling Halt, the display will not accept further calls until a new
// Display is created.
func (disp *Display[C]) Halt() error {
	if disp.halted {
		return nil
	}
	disp.halted = true
	ctx := context.Background()
	if err := disp.w.WriteCommand(ctx, dcs.SetDisplayOff); err != nil {
		return err
	}
	return disp.w.WriteCommand(ctx, dcs.EnterSleepMode)
}

// repeat yields c n times.
func repeat[C any](c C, n int) iter.Seq[C] {
	return func(yield func(C) bool) {
		for i := 0; i < n; i++ {
			if !yield(c) {
				return
			}
		}
	}
}
