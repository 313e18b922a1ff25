// Package sim is a software model of an ILI934x display controller.
//
// Panel implements dcs.Channel. It records every operation it receives and
// interprets the subset of the command set needed to render pixel data:
// reset, sleep, display on/off, inversion, pixel format, memory access
// control, column/page address windows and memory writes. It is used to test
// drivers without hardware and to preview output on a desktop.
package sim

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"sync"

	"github.com/flavioheleno/mipidsi/dcs"
	"github.com/flavioheleno/mipidsi/rgb"
)

// ErrInjected is returned by the operation selected with Panel.FailAt.
var ErrInjected = errors.New("sim: injected failure")

// Op is one recorded channel operation.
type Op struct {
	Cmd  byte   // Command, or the command the data belongs to
	Data bool   // Data continuation rather than a command
	B    []byte // Parameters or data bytes
}

func (o Op) String() string {
	if o.Data {
		return fmt.Sprintf("data(0x%02X, %d bytes)", o.Cmd, len(o.B))
	}
	return fmt.Sprintf("cmd(0x%02X % X)", o.Cmd, o.B)
}

// Panel is a simulated controller with a w×h memory.
type Panel struct {
	mu sync.Mutex

	// FailAt makes the n-th operation (1-based) and every later one fail
	// with ErrInjected, as if the bus went away. Failed operations are not
	// recorded. Zero disables injection.
	FailAt int
	// TxSize, when positive, is reported as the channel's MaxTxSize.
	TxSize int

	ops []Op
	mem *image.RGBA

	asleep   bool
	on       bool
	inverted bool
	format   dcs.PixelFormat
	mode     dcs.AddressMode

	col0, col1   uint16
	page0, page1 uint16
	x, y         uint16
	writing      bool
	last         byte
	pending      []byte
	pixelsStored int
}

// New returns a powered-up panel with w×h pixels of memory.
func New(w, h int) *Panel {
	p := &Panel{mem: image.NewRGBA(image.Rect(0, 0, w, h))}
	p.reset()
	return p
}

// reset puts the registers into their power-on state.
func (p *Panel) reset() {
	b := p.mem.Bounds()
	p.asleep = true
	p.on = false
	p.inverted = false
	p.format = dcs.PixelFormatWithAll(dcs.Bpp18)
	p.mode = 0
	p.col0, p.col1 = 0, uint16(b.Dx()-1)
	p.page0, p.page1 = 0, uint16(b.Dy()-1)
	p.writing = false
	p.pending = p.pending[:0]
}

// MaxTxSize implements conn.Limits.
func (p *Panel) MaxTxSize() int {
	return p.TxSize
}

// WriteCommand implements dcs.Channel.
func (p *Panel) WriteCommand(ctx context.Context, cmd byte, params []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.record(Op{Cmd: cmd, B: append([]byte(nil), params...)}); err != nil {
		return err
	}
	p.last = cmd
	p.writing = false
	p.pending = p.pending[:0]

	switch cmd {
	case dcs.SoftReset:
		p.reset()
	case dcs.ExitSleepMode:
		p.asleep = false
	case dcs.EnterSleepMode:
		p.asleep = true
	case dcs.SetDisplayOn:
		p.on = true
	case dcs.SetDisplayOff:
		p.on = false
	case dcs.EnterInvertMode:
		p.inverted = true
	case dcs.ExitInvertMode:
		p.inverted = false
	case dcs.SetPixelFormat:
		if len(params) > 0 {
			p.format = dcs.PixelFormat(params[0])
		}
	case dcs.SetAddressMode:
		if len(params) > 0 {
			p.mode = dcs.AddressMode(params[0])
		}
	case dcs.SetColumnAddress:
		if len(params) >= 4 {
			p.col0, p.col1 = be16(params[0:]), be16(params[2:])
		}
	case dcs.SetPageAddress:
		if len(params) >= 4 {
			p.page0, p.page1 = be16(params[0:]), be16(params[2:])
		}
	case dcs.WriteMemoryStart:
		p.writing = true
		p.x, p.y = p.col0, p.page0
	case dcs.WriteMemoryCont:
		p.writing = true
	}
	return nil
}

// WriteData implements dcs.Channel.
func (p *Panel) WriteData(ctx context.Context, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.record(Op{Cmd: p.last, Data: true, B: append([]byte(nil), data...)}); err != nil {
		return err
	}
	if !p.writing {
		return nil
	}

	n := p.bytesPerPixel()
	if n == 0 {
		return nil
	}
	p.pending = append(p.pending, data...)
	for len(p.pending) >= n {
		p.store(p.decode(p.pending[:n]))
		p.pending = p.pending[n:]
	}
	return nil
}

func (p *Panel) record(op Op) error {
	if p.FailAt > 0 && len(p.ops)+1 >= p.FailAt {
		return ErrInjected
	}
	p.ops = append(p.ops, op)
	return nil
}

func (p *Panel) bytesPerPixel() int {
	switch p.format.DBI() {
	case dcs.Bpp16:
		return 2
	case dcs.Bpp18:
		return 3
	}
	return 0
}

func (p *Panel) decode(b []byte) color.RGBA {
	var c color.Color
	if len(b) == 2 {
		c = rgb.Decode565(b)
	} else {
		c = rgb.Decode666(b)
	}
	return color.RGBAModel.Convert(c).(color.RGBA)
}

// store writes one pixel at the cursor and advances it through the window.
func (p *Panel) store(c color.RGBA) {
	if pt, ok := p.physical(int(p.x), int(p.y)); ok {
		p.mem.SetRGBA(pt.X, pt.Y, c)
	}
	p.pixelsStored++
	if p.x < p.col1 {
		p.x++
		return
	}
	p.x = p.col0
	if p.y < p.page1 {
		p.y++
	} else {
		p.y = p.page0
	}
}

// physical maps a logical column/page address to panel memory through the
// memory access control bits.
func (p *Panel) physical(x, y int) (image.Point, bool) {
	b := p.mem.Bounds()
	w, h := b.Dx(), b.Dy()
	if p.mode.Swapped() {
		w, h = h, w
	}
	if x >= w || y >= h {
		return image.Point{}, false
	}
	if p.mode.Has(dcs.ColumnOrder) {
		x = w - 1 - x
	}
	if p.mode.Has(dcs.RowOrder) {
		y = h - 1 - y
	}
	if p.mode.Swapped() {
		x, y = y, x
	}
	return image.Pt(x, y), true
}

func be16(b []byte) uint16 {
	return uint16(b[0])<<8 | uint16(b[1])
}

// Ops returns a copy of the recorded operations.
func (p *Panel) Ops() []Op {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]Op(nil), p.ops...)
}

// Commands returns the recorded command opcodes in order, without data.
func (p *Panel) Commands() []byte {
	p.mu.Lock()
	defer p.mu.Unlock()
	var cmds []byte
	for _, op := range p.ops {
		if !op.Data {
			cmds = append(cmds, op.Cmd)
		}
	}
	return cmds
}

// ClearOps clears the operation log without touching the panel state.
func (p *Panel) ClearOps() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.ops = nil
	p.pixelsStored = 0
}

// State is a snapshot of the controller registers.
type State struct {
	Asleep       bool
	On           bool
	Inverted     bool
	Format       dcs.PixelFormat
	Mode         dcs.AddressMode
	Columns      [2]uint16
	Pages        [2]uint16
	PixelsStored int
}

// State returns the current register values.
func (p *Panel) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return State{
		Asleep:       p.asleep,
		On:           p.on,
		Inverted:     p.inverted,
		Format:       p.format,
		Mode:         p.mode,
		Columns:      [2]uint16{p.col0, p.col1},
		Pages:        [2]uint16{p.page0, p.page1},
		PixelsStored: p.pixelsStored,
	}
}

// Image returns a copy of the panel memory. Pixels are shown as stored,
// without applying inversion or the display on/off state.
func (p *Panel) Image() *image.RGBA {
	p.mu.Lock()
	defer p.mu.Unlock()
	img := image.NewRGBA(p.mem.Rect)
	copy(img.Pix, p.mem.Pix)
	return img
}

// CopyPix copies the visible panel contents into dst, which must hold
// 4*w*h bytes. A sleeping or switched off panel shows black; inversion is applied.
func (p *Panel) CopyPix(dst []byte) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.asleep || !p.on {
		for i := range dst {
			if i%4 == 3 {
				dst[i] = 0xFF
			} else {
				dst[i] = 0
			}
		}
		return
	}
	copy(dst, p.mem.Pix)
	if p.inverted {
		for i := range dst {
			if i%4 != 3 {
				dst[i] = ^dst[i]
			}
		}
	}
}

// Bounds returns the panel memory size.
func (p *Panel) Bounds() image.Rectangle {
	return p.mem.Rect
}
