//go:build !linux

package framesched

import (
	"errors"
)

// ErrPinUnsupported is returned by PinToCPU outside Linux.
var ErrPinUnsupported = errors.New("framesched: cpu pinning is only supported on linux")

func PinToCPU(cpu int) error {
	return ErrPinUnsupported
}
