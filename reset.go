package mipidsi

import (
	"context"
	"errors"
	"time"

	"periph.io/x/conn/v3/gpio"
)

// OutputPin is a digital output. gpio.PinOut implements it.
type OutputPin interface {
	Out(l gpio.Level) error
}

// Reset selects how Init resets the controller: HardReset or SoftReset.
// Pointers to either variant are accepted too.
type Reset interface {
	isReset()
}

// HardReset pulses the active-low reset line of the controller.
type HardReset struct {
	Pin OutputPin
}

// SoftReset sends the software reset command, for boards without a reset line.
type SoftReset struct{}

func (HardReset) isReset() {}
func (SoftReset) isReset() {}

var errNoResetPin = errors.New("no reset pin")

// hardReset returns the pulse to run for rst, if it is a HardReset.
func hardReset(rst Reset) (HardReset, bool) {
	switch r := rst.(type) {
	case HardReset:
		return r, true
	case *HardReset:
		if r == nil {
			return HardReset{}, true
		}
		return *r, true
	}
	return HardReset{}, false
}

// pulse drives the line low for hold, releases it and waits settle.
func (r HardReset) pulse(ctx context.Context, d Delayer, hold, settle time.Duration) error {
	if r.Pin == nil {
		return &ResetPinError{Level: gpio.Low, Err: errNoResetPin}
	}
	if err := r.Pin.Out(gpio.Low); err != nil {
		return &ResetPinError{Level: gpio.Low, Err: err}
	}
	d.Delay(ctx, hold)
	if err := r.Pin.Out(gpio.High); err != nil {
		return &ResetPinError{Level: gpio.High, Err: err}
	}
	d.Delay(ctx, settle)
	return nil
}

// Delayer waits for a duration. Implementations may return early when ctx is
// done; the next channel operation then reports the cancellation.
type Delayer interface {
	Delay(ctx context.Context, d time.Duration)
}

// SleepDelayer delays with a timer.
type SleepDelayer struct{}

// Delay implements Delayer.
func (SleepDelayer) Delay(ctx context.Context, d time.Duration) {
	if d <= 0 {
		return
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
	case <-ctx.Done():
	}
}
