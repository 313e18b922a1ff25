package mipidsi

import (
	"errors"
	"fmt"

	"periph.io/x/conn/v3/gpio"

	"github.com/flavioheleno/mipidsi/dcs"
)

// ErrHalted is returned by a Display after Halt.
var ErrHalted = errors.New("mipidsi: halted")

// TransportError reports a failed command or data write.
type TransportError = dcs.TransportError

// ResetPinError reports a failure driving the reset line.
type ResetPinError struct {
	Level gpio.Level
	Err   error
}

func (e *ResetPinError) Error() string {
	return fmt.Sprintf("failed to pull RST %s: %v", levelName(e.Level), e.Err)
}

func (e *ResetPinError) Unwrap() error {
	return e.Err
}

func levelName(l gpio.Level) string {
	if l == gpio.High {
		return "high"
	}
	return "low"
}

// InitError is returned by Init. Err is either a *ResetPinError or a
// *TransportError.
type InitError struct {
	Err error
}

func (e *InitError) Error() string {
	return "mipidsi: init: " + e.Err.Error()
}

func (e *InitError) Unwrap() error {
	return e.Err
}

// IsPin reports whether initialization failed on the reset line rather than the bus.
func (e *InitError) IsPin() bool {
	var pe *ResetPinError
	return errors.As(e.Err, &pe)
}
