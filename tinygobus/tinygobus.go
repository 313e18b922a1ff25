// Package tinygobus is a dcs.Channel over a TinyGo SPI bus.
//
// The SPI bus must have already been configured.
package tinygobus

import (
	"context"

	"tinygo.org/x/drivers"
)

// Pin is a digital output. machine.Pin implements it.
type Pin interface {
	High()
	Low()
}

// Bus drives the DC pin low for commands and high for data. The optional
// CS pin is asserted around every transfer.
type Bus struct {
	bus drivers.SPI
	dc  Pin
	cs  Pin
	cmd [1]byte
}

// New returns a Bus. cs may be nil when chip select is handled by hardware.
func New(bus drivers.SPI, dc, cs Pin) *Bus {
	b := &Bus{bus: bus, dc: dc, cs: cs}
	dc.High()
	if cs != nil {
		cs.High()
	}
	return b
}

// WriteCommand implements dcs.Channel.
func (b *Bus) WriteCommand(ctx context.Context, cmd byte, params []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	b.startWrite()
	defer b.endWrite()

	b.dc.Low() // command mode
	b.cmd[0] = cmd
	if err := b.bus.Tx(b.cmd[:], nil); err != nil {
		return err
	}
	b.dc.High() // data mode
	if len(params) == 0 {
		return nil
	}
	return b.bus.Tx(params, nil)
}

// WriteData implements dcs.Channel.
func (b *Bus) WriteData(ctx context.Context, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	b.startWrite()
	defer b.endWrite()

	b.dc.High()
	return b.bus.Tx(data, nil)
}

func (b *Bus) startWrite() {
	if b.cs != nil {
		b.cs.Low()
	}
}

func (b *Bus) endWrite() {
	if b.cs != nil {
		b.cs.High()
	}
}
