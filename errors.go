// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package frameloop

import (
	"errors"
	"fmt"

	"github.com/gogpu/frameloop/driver"
)

// Surface error sentinels, re-exported from the driver boundary so
// most applications never import driver directly.
var (
	// ErrSurfaceLost indicates the surface was lost; the loop
	// reconfigures and retries once before escalating.
	ErrSurfaceLost = driver.ErrSurfaceLost

	// ErrSurfaceOutdated indicates the surface no longer matches the
	// window; handled like ErrSurfaceLost.
	ErrSurfaceOutdated = driver.ErrSurfaceOutdated

	// ErrSurfaceTimeout indicates acquisition timed out; the loop skips
	// the frame and retries next tick.
	ErrSurfaceTimeout = driver.ErrSurfaceTimeout

	// ErrDeviceLost indicates the logical device is gone. Fatal.
	ErrDeviceLost = driver.ErrDeviceLost
)

// Package errors.
var (
	// ErrReleased is returned when a Context is used after Release.
	ErrReleased = errors.New("frameloop: context released")

	// ErrFrameOutstanding is returned by AcquireFrame while a previous
	// frame has been neither presented nor discarded.
	ErrFrameOutstanding = errors.New("frameloop: frame already outstanding")

	// ErrFrameResolved is returned by Frame.Present after the frame was
	// already presented or discarded.
	ErrFrameResolved = errors.New("frameloop: frame already resolved")

	// errEmptyShader rejects pipeline descriptors with no WGSL source.
	errEmptyShader = errors.New("empty WGSL source")
)

// InitError reports a failure to initialize the GPU context: no driver,
// no compatible adapter, or device creation failure.
type InitError struct {
	// Driver is the name of the driver that failed, or empty when no
	// driver could be selected at all.
	Driver string

	// Err is the underlying cause.
	Err error
}

func (e *InitError) Error() string {
	if e.Driver == "" {
		return fmt.Sprintf("frameloop: initialization failed: %v", e.Err)
	}
	return fmt.Sprintf("frameloop: initialization failed (driver %s): %v", e.Driver, e.Err)
}

func (e *InitError) Unwrap() error { return e.Err }

// CompileError reports a shader or pipeline compilation failure.
type CompileError struct {
	// Label identifies the pipeline or shader that failed.
	Label string

	// Err is the underlying compiler error.
	Err error
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("frameloop: pipeline %q: %v", e.Label, e.Err)
}

func (e *CompileError) Unwrap() error { return e.Err }
