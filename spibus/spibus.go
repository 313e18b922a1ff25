// Package spibus is a dcs.Channel over a periph.io SPI connection with a
// separate data/command GPIO pin (4-line serial interface).
package spibus

import (
	"context"
	"fmt"

	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
)

// Opts is the SPI configuration.
type Opts struct {
	// Frequency of the SPI clock (default: 40MHz, the ILI9341 write cycle limit)
	Frequency physic.Frequency
	// Mode of the SPI bus (default: spi.Mode0)
	Mode spi.Mode
}

// DefaultMaxTxSize is used when the connection does not report its limit.
const DefaultMaxTxSize = 4096

// Bus sends DCS commands with the DC pin low and data with the DC pin high.
type Bus struct {
	c         conn.Conn
	dc        gpio.PinOut
	maxTxSize int
	cmd       [1]byte
}

// NewSPI connects to p and returns a Bus.
//
// opts can be nil to use defaults.
func NewSPI(p spi.Port, dc gpio.PinOut, opts *Opts) (*Bus, error) {
	if opts == nil {
		opts = &Opts{}
	}
	f := opts.Frequency
	if f == 0 {
		f = 40 * physic.MegaHertz
	}
	c, err := p.Connect(f, opts.Mode, 8)
	if err != nil {
		return nil, fmt.Errorf("spibus: %w", err)
	}
	return New(c, dc), nil
}

// New returns a Bus over an established connection.
func New(c conn.Conn, dc gpio.PinOut) *Bus {
	// Get the maxTxSize from the conn if it implements the conn.Limits interface,
	// otherwise use 4096 bytes.
	maxTxSize := 0
	if limits, ok := c.(conn.Limits); ok {
		maxTxSize = limits.MaxTxSize()
	}
	if maxTxSize <= 0 {
		maxTxSize = DefaultMaxTxSize
	}
	return &Bus{c: c, dc: dc, maxTxSize: maxTxSize}
}

// MaxTxSize implements conn.Limits.
func (b *Bus) MaxTxSize() int {
	return b.maxTxSize
}

// String returns the connection name.
func (b *Bus) String() string {
	return fmt.Sprintf("spibus.Bus{%s}", b.c)
}

// WriteCommand implements dcs.Channel.
func (b *Bus) WriteCommand(ctx context.Context, cmd byte, params []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := b.dc.Out(gpio.Low); err != nil {
		return fmt.Errorf("spibus: failed to pull DC low: %w", err)
	}
	b.cmd[0] = cmd
	if err := b.c.Tx(b.cmd[:], nil); err != nil {
		return err
	}
	if len(params) == 0 {
		return nil
	}
	return b.WriteData(ctx, params)
}

// WriteData implements dcs.Channel. Data larger than MaxTxSize is split
// into several transactions.
func (b *Bus) WriteData(ctx context.Context, data []byte) error {
	if err := b.dc.Out(gpio.High); err != nil {
		return fmt.Errorf("spibus: failed to pull DC high: %w", err)
	}
	for len(data) > 0 {
		if err := ctx.Err(); err != nil {
			return err
		}
		n := min(len(data), b.maxTxSize)
		if err := b.c.Tx(data[:n], nil); err != nil {
			return err
		}
		data = data[n:]
	}
	return nil
}
