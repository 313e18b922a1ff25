// Package mipidsi drives TFT display controllers that speak the MIPI Display
// Command Set, such as the ILI9341.
//
// The package is split in layers:
//
// - Model: the controller protocol. Init resets the controller, negotiates
// the pixel format and runs the chip initialization sequence; WritePixels
// streams colors into the current address window.
// - Display: an initialized Model bound to a channel, with address window
// management, fills and the display.Drawer interface from periph.io.
// - dcs.Channel: the command/data transport. See the spibus package for
// periph.io SPI buses, tinygobus for TinyGo and sim for a software controller.
//
// # Display Characteristics
//
// - ILI9341: 240×320, ILI9342C: 320×240
// - 16-bit (rgb.RGB565) or 18-bit (rgb.RGB666) color
// - Rotation in 90° steps, mirroring, RGB/BGR subpixel order, color inversion
//
// # Hardware Connection
//
//	Display Pin → System Pin
//	GND         → GND
//	VCC         → 3.3V
//	SCK         → SPI Clock (SCLK)
//	SDI/MOSI    → SPI Data (MOSI)
//	D/C         → GPIO (any available pin)
//	CS          → SPI Chip Select
//	RESET       → Optional: GPIO for hardware reset
//
// # Basic Usage
//
//	package main
//
//	import (
//		"context"
//		"image"
//
//		"periph.io/x/conn/v3/gpio/gpioreg"
//		"periph.io/x/conn/v3/spi/spireg"
//		"periph.io/x/host/v3"
//
//		"github.com/flavioheleno/mipidsi"
//		"github.com/flavioheleno/mipidsi/rgb"
//		"github.com/flavioheleno/mipidsi/spibus"
//	)
//
//	func main() {
//		host.Init()
//		port, _ := spireg.Open("")
//		bus, _ := spibus.NewSPI(port, gpioreg.ByName("GPIO25"), nil)
//
//		ctx := context.Background()
//		disp, _ := mipidsi.New(ctx, bus, mipidsi.NewILI9341RGB666(), nil, mipidsi.SoftReset{}, nil)
//		defer disp.Halt()
//
//		disp.Clear(ctx, rgb.RGB666{B: 63})
//		disp.FillRect(ctx, image.Rect(10, 10, 50, 50), rgb.RGB666{R: 63})
//	}
//
// # Reset
//
// Init performs exactly one kind of reset. With HardReset the reset line is
// pulled low for 10µs, released, and the controller is given 120ms to
// settle; no reset command is sent. With SoftReset (or a nil Reset) the
// software reset command is sent instead:
//
//	rst := mipidsi.HardReset{Pin: gpioreg.ByName("GPIO24")}
//	disp, err := mipidsi.New(ctx, bus, model, nil, rst, nil)
//
// # Errors
//
// Init rejects invalid Options before touching the controller. Once the
// reset starts, errors are *InitError. It wraps a *ResetPinError when the
// reset line could not be driven and a *TransportError when the bus failed. Nothing is
// retried: after a failure the controller state is unknown and Init must be
// run again.
//
// # Adding Controllers
//
// A controller is described by a Chip: its native size, reset timing and a
// SetupFunc sending the chip specific initialization commands. NewModel binds
// a Chip to a color type, so reset and sequencing are the same for every
// color format of a chip.
//
// # Concurrency
//
// Models, Displays and Writers have no locks. The controller has a single
// command stream; callers must serialize access to a Display and its channel.
//
// # Compatibility with periph.io
//
// Display implements the display.Drawer interface from periph.io:
// https://pkg.go.dev/periph.io/x/conn/v3/display
package mipidsi
