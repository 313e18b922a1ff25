// Package dcs implements the MIPI Display Command Set shared by most TFT
// display controllers: the command opcodes, the values written with them and
// a Writer that sends commands and pixel data over a Channel.
package dcs

import (
	"context"
	"fmt"

	"periph.io/x/conn/v3"
)

// Command opcodes, MIPI DCS 1.1 and ILI9341 datasheet §8.2.
const (
	Nop              byte = 0x00
	SoftReset        byte = 0x01
	EnterSleepMode   byte = 0x10
	ExitSleepMode    byte = 0x11
	EnterPartialMode byte = 0x12
	EnterNormalMode  byte = 0x13
	ExitInvertMode   byte = 0x20
	EnterInvertMode  byte = 0x21
	SetDisplayOff    byte = 0x28
	SetDisplayOn     byte = 0x29
	SetColumnAddress byte = 0x2A
	SetPageAddress   byte = 0x2B
	WriteMemoryStart byte = 0x2C
	SetTearOff       byte = 0x34
	SetTearOn        byte = 0x35
	SetAddressMode   byte = 0x36
	SetScrollStart   byte = 0x37
	ExitIdleMode     byte = 0x38
	EnterIdleMode    byte = 0x39
	SetPixelFormat   byte = 0x3A
	WriteMemoryCont  byte = 0x3C
)

// Channel sends commands and data to a display controller.
//
// WriteCommand sends cmd with the command line asserted, followed by params as
// data. WriteData sends data bytes continuing the last command, typically pixel
// data after WriteMemoryStart.
//
// A Channel may implement conn.Limits to bound the size of a single WriteData call.
type Channel interface {
	WriteCommand(ctx context.Context, cmd byte, params []byte) error
	WriteData(ctx context.Context, data []byte) error
}

// TransportError reports a failed channel operation.
type TransportError struct {
	Cmd  byte // Command being sent, or the command the data belongs to
	Data bool // Failure happened while sending data rather than the command
	Err  error
}

func (e *TransportError) Error() string {
	if e.Data {
		return fmt.Sprintf("dcs: data for command 0x%02X: %v", e.Cmd, e.Err)
	}
	return fmt.Sprintf("dcs: command 0x%02X: %v", e.Cmd, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// DefaultMaxTxSize is used when the Channel does not implement conn.Limits.
const DefaultMaxTxSize = 4096

// Writer issues DCS commands over a Channel.
//
// A Writer is not safe for concurrent use; the controller has a single command
// stream and interleaved calls would corrupt it.
type Writer struct {
	ch        Channel
	maxTxSize int
	buf       []byte
	last      byte
}

// NewWriter returns a Writer sending over ch.
func NewWriter(ch Channel) *Writer {
	maxTxSize := 0
	if limits, ok := ch.(conn.Limits); ok {
		maxTxSize = limits.MaxTxSize()
	}
	if maxTxSize <= 0 {
		maxTxSize = DefaultMaxTxSize
	}
	return &Writer{ch: ch, maxTxSize: maxTxSize}
}

// Channel returns the underlying channel.
func (w *Writer) Channel() Channel {
	return w.ch
}

// MaxTxSize returns the largest data chunk the Writer hands to the channel.
func (w *Writer) MaxTxSize() int {
	return w.maxTxSize
}

// WriteCommand sends a command with optional parameters.
func (w *Writer) WriteCommand(ctx context.Context, cmd byte, params ...byte) error {
	w.last = cmd
	if err := w.ch.WriteCommand(ctx, cmd, params); err != nil {
		return &TransportError{Cmd: cmd, Err: err}
	}
	return nil
}

// WriteData sends data bytes belonging to the last command.
func (w *Writer) WriteData(ctx context.Context, data []byte) error {
	if err := w.ch.WriteData(ctx, data); err != nil {
		return &TransportError{Cmd: w.last, Data: true, Err: err}
	}
	return nil
}

// SetAddressMode writes the memory access control register.
func (w *Writer) SetAddressMode(ctx context.Context, m AddressMode) error {
	return w.WriteCommand(ctx, SetAddressMode, byte(m))
}

// SetPixelFormat writes the interface pixel format register.
func (w *Writer) SetPixelFormat(ctx context.Context, pf PixelFormat) error {
	return w.WriteCommand(ctx, SetPixelFormat, byte(pf))
}

// SetColumnAddress sets the inclusive column range of the write window.
func (w *Writer) SetColumnAddress(ctx context.Context, start, end uint16) error {
	return w.WriteCommand(ctx, SetColumnAddress, byte(start>>8), byte(start), byte(end>>8), byte(end))
}

// SetPageAddress sets the inclusive page (row) range of the write window.
func (w *Writer) SetPageAddress(ctx context.Context, start, end uint16) error {
	return w.WriteCommand(ctx, SetPageAddress, byte(start>>8), byte(start), byte(end>>8), byte(end))
}

// SetInvertMode enables or disables color inversion.
func (w *Writer) SetInvertMode(ctx context.Context, invert bool) error {
	if invert {
		return w.WriteCommand(ctx, EnterInvertMode)
	}
	return w.WriteCommand(ctx, ExitInvertMode)
}
