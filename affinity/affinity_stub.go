//go:build !linux
// +build !linux

// File: affinity/affinity_stub.go
// Author: momentics <momentics@gmail.com>
//
// Stub implementation for unsupported platforms.

package affinity

import "github.com/momentics/hioload-tcp/api"

func setAffinityPlatform(cpuID int) error {
	e := api.NewError(api.ErrCodeNotSupported, "affinity: not supported on this platform")
	e.Op = "set affinity"
	return e
}

func allowedPlatform() ([]int, error) {
	return nil, api.ErrNotSupported
}
