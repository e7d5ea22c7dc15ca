// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package driver

import "errors"

// Package errors for GPU drivers.
//
// Drivers must return (or wrap with %w) the surface sentinels below so
// that driver-independent code can classify acquisition failures.
var (
	// ErrNoDriver is returned when no driver is registered or available.
	ErrNoDriver = errors.New("driver: no driver available")

	// ErrSurfaceLost indicates the presentable surface was lost and must
	// be reconfigured before the next acquisition. Recoverable.
	ErrSurfaceLost = errors.New("driver: surface lost")

	// ErrSurfaceOutdated indicates the surface no longer matches the
	// window (typically after a resize the configuration missed) and
	// must be reconfigured. Recoverable.
	ErrSurfaceOutdated = errors.New("driver: surface outdated")

	// ErrSurfaceTimeout indicates frame acquisition timed out under
	// presentation backpressure. Transient; retry on the next tick.
	ErrSurfaceTimeout = errors.New("driver: surface acquire timed out")

	// ErrDeviceLost indicates the logical device was lost. Fatal.
	ErrDeviceLost = errors.New("driver: device lost")

	// ErrOutOfMemory indicates the device is out of memory. Fatal.
	ErrOutOfMemory = errors.New("driver: out of device memory")
)

// NotFoundError indicates a named driver is not registered.
type NotFoundError struct {
	Name string
}

func (e *NotFoundError) Error() string {
	return "driver: not found: " + e.Name
}

// UnavailableError indicates a driver is registered but reports itself
// unavailable on this system.
type UnavailableError struct {
	Name string
}

func (e *UnavailableError) Error() string {
	return "driver: unavailable: " + e.Name
}

// Recoverable reports whether err is a surface condition that a
// reconfigure-and-retry cycle can repair.
func Recoverable(err error) bool {
	return errors.Is(err, ErrSurfaceLost) || errors.Is(err, ErrSurfaceOutdated)
}

// Transient reports whether err is a surface condition that clears on
// its own, so the caller should skip the frame and retry next tick.
func Transient(err error) bool {
	return errors.Is(err, ErrSurfaceTimeout)
}

// Fatal reports whether err is a device condition that no surface
// reconfiguration can repair.
func Fatal(err error) bool {
	return errors.Is(err, ErrDeviceLost) || errors.Is(err, ErrOutOfMemory)
}
