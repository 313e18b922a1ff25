package mipidsi

import (
	"context"
	"image"
	"time"

	"github.com/flavioheleno/mipidsi/dcs"
	"github.com/flavioheleno/mipidsi/rgb"
)

// ILI934x manufacturer commands.
const (
	ili934xInversionControl byte = 0xB4
)

// ILI934x timing, ILI9341 datasheet §15.4 and §8.2.12.
const (
	ili934xResetHold   = 10 * time.Microsecond
	ili934xResetSettle = 120 * time.Millisecond
	ili934xSleepOut    = 5 * time.Millisecond   // before the next command after sleep out
	ili934xWake        = 120 * time.Millisecond // after sleep out, before display on
	ili934xDisplayOn   = 5 * time.Millisecond
)

// ILI9341 is a 240x320 TFT controller.
var ILI9341 = Chip{
	Name:        "ILI9341",
	Size:        image.Pt(240, 320),
	ResetHold:   ili934xResetHold,
	ResetSettle: ili934xResetSettle,
	Setup:       ili934xSetup,
}

// ILI9342C is the 320x240 landscape variant of the ILI9341.
var ILI9342C = Chip{
	Name:        "ILI9342C",
	Size:        image.Pt(320, 240),
	ResetHold:   ili934xResetHold,
	ResetSettle: ili934xResetSettle,
	Setup:       ili934xSetup,
}

// NewILI9341RGB565 returns an ILI9341 in 16-bit color mode.
//
// The 16-bit mode is not available when the controller is wired for 3/4-line SPI.
func NewILI9341RGB565() *Model[rgb.RGB565] {
	return mustModel[rgb.RGB565](ILI9341, rgb.RGB565Model)
}

// NewILI9341RGB666 returns an ILI9341 in 18-bit color mode.
func NewILI9341RGB666() *Model[rgb.RGB666] {
	return mustModel[rgb.RGB666](ILI9341, rgb.RGB666Model)
}

// NewILI9342CRGB565 returns an ILI9342C in 16-bit color mode.
func NewILI9342CRGB565() *Model[rgb.RGB565] {
	return mustModel[rgb.RGB565](ILI9342C, rgb.RGB565Model)
}

// NewILI9342CRGB666 returns an ILI9342C in 18-bit color mode.
func NewILI9342CRGB666() *Model[rgb.RGB666] {
	return mustModel[rgb.RGB666](ILI9342C, rgb.RGB666Model)
}

// command is one step of an initialization sequence.
type command struct {
	cmd   byte
	data  []byte
	delay time.Duration // Wait after the command
}

func runCommands(ctx context.Context, w *dcs.Writer, d Delayer, cmds []command) error {
	for _, c := range cmds {
		if err := w.WriteCommand(ctx, c.cmd, c.data...); err != nil {
			return err
		}
		if c.delay > 0 {
			d.Delay(ctx, c.delay)
		}
	}
	return nil
}

// ili934xSetup is the initialization sequence shared by the ILI934x family.
func ili934xSetup(ctx context.Context, w *dcs.Writer, d Delayer, o *Options, pf dcs.PixelFormat) (dcs.AddressMode, error) {
	mode := o.AddressMode()
	invert := dcs.ExitInvertMode
	if o.InvertColors {
		invert = dcs.EnterInvertMode
	}

	cmds := []command{
		{cmd: dcs.ExitSleepMode, delay: ili934xSleepOut},
		{cmd: dcs.SetAddressMode, data: []byte{byte(mode)}},
		{cmd: ili934xInversionControl, data: []byte{0x00}}, // column inversion
		{cmd: invert},
		{cmd: dcs.SetPixelFormat, data: []byte{byte(pf)}},
		{cmd: dcs.EnterNormalMode},
	}

	// Default window spans the whole visible area
	if cols, pages, ok := o.window(image.Rectangle{Max: o.Size()}); ok {
		cmds = append(cmds,
			command{cmd: dcs.SetColumnAddress, data: []byte{byte(cols[0] >> 8), byte(cols[0]), byte(cols[1] >> 8), byte(cols[1])}},
			command{cmd: dcs.SetPageAddress, data: []byte{byte(pages[0] >> 8), byte(pages[0]), byte(pages[1] >> 8), byte(pages[1])}},
		)
	}

	cmds[len(cmds)-1].delay = ili934xWake - ili934xSleepOut
	cmds = append(cmds, command{cmd: dcs.SetDisplayOn, delay: ili934xDisplayOn})

	if err := runCommands(ctx, w, d, cmds); err != nil {
		return 0, err
	}
	return mode, nil
}
