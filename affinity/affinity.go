// File: affinity/affinity.go
// Author: momentics <momentics@gmail.com>
//
// Platform-neutral API for CPU affinity. Platform-specific implementations are located
// in affinity_linux.go and affinity_stub.go, guarded by build tags.

package affinity

import "github.com/momentics/hioload-tcp/api"

// SetAffinity pins the calling OS thread to a logical CPU. The caller must
// hold runtime.LockOSThread, otherwise the goroutine may migrate away.
// On unsupported platforms it returns an api.ErrNotSupported error.
func SetAffinity(cpuID int) error {
	if cpuID < 0 {
		return api.InvalidArgument("affinity: negative cpu %d", cpuID)
	}
	return setAffinityPlatform(cpuID)
}

// Allowed returns the logical CPUs the calling thread may run on.
func Allowed() ([]int, error) {
	return allowedPlatform()
}
