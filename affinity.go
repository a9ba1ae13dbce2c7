//go:build linux

package framesched

import (
	"golang.org/x/sys/unix"
)

// PinToCPU restricts the calling OS thread to cpu. The caller should hold
// the thread with runtime.LockOSThread, as a frame loop usually does.
func PinToCPU(cpu int) error {
	var mask unix.CPUSet
	mask.Zero()
	mask.Set(cpu)
	return unix.SchedSetaffinity(0, &mask)
}
