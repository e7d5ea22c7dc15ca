// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package drivertest provides an in-memory driver.Driver for testing
// frame-loop behavior without a GPU.
//
// The fake Device records every call in order and supports injected
// failures, so tests can assert surface-lifecycle properties such as
// "a resize reconfigures before the next acquisition" or "frames are
// presented in submission order".
package drivertest

import (
	"fmt"

	"github.com/gogpu/frameloop/driver"
	"github.com/gogpu/gputypes"
)

// Driver is a fake driver.Driver. Every Open returns the same Device,
// so tests can hold a reference and inspect it.
type Driver struct {
	// RegistryName is the name the driver reports and registers under.
	RegistryName string

	// OpenErr, when set, makes Open fail.
	OpenErr error

	// Device is the device returned by Open. Populated by New.
	Device *Device
}

// New creates a fake driver with a fresh Device.
func New(name string) *Driver {
	return &Driver{
		RegistryName: name,
		Device: &Device{
			Format: gputypes.TextureFormatBGRA8Unorm,
		},
	}
}

// Install creates a fake driver and registers it under name with a
// priority above hardware drivers. Callers must driver.Unregister the
// name when done (typically via t.Cleanup).
func Install(name string) *Driver {
	d := New(name)
	driver.Register(name, 1000, func() driver.Driver { return d }, nil)
	return d
}

// Name implements driver.Driver.
func (d *Driver) Name() string { return d.RegistryName }

// Open implements driver.Driver.
func (d *Driver) Open(win driver.Window, opts driver.Options) (driver.Device, error) {
	if d.OpenErr != nil {
		return nil, d.OpenErr
	}
	d.Device.Opts = opts
	return d.Device, nil
}

// Device is a fake driver.Device recording calls in order.
type Device struct {
	// Format is the value reported by SurfaceFormat.
	Format gputypes.TextureFormat

	// Opts are the options passed to Open.
	Opts driver.Options

	// Log records every device call in order, entries like
	// "configure 800x600", "acquire", "encode", "submit 0",
	// "present 0", "discard 1", "wait", "release".
	Log []string

	// Configures records every Configure call.
	Configures []driver.SurfaceConfig

	// AcquireErrs is a queue of errors returned by successive Acquire
	// calls before successful acquisition resumes.
	AcquireErrs []error

	// ConfigureErr, EncodeErr, SubmitErr, PresentErr, WaitErr inject
	// failures into the corresponding calls.
	ConfigureErr error
	EncodeErr    error
	SubmitErr    error
	PresentErr   error
	WaitErr      error

	// NewPipelineErr makes NewPipeline fail.
	NewPipelineErr error

	// Pipelines records every descriptor passed to NewPipeline.
	Pipelines []driver.PipelineDescriptor

	// Submitted and Presented hold frame ids in call order.
	Submitted []uint64
	Presented []uint64

	// OnEncode, when set, runs at the start of every Encode call.
	// Tests use it to deliver events while a frame is being encoded.
	OnEncode func()

	// Waits counts Wait calls. Released reports whether Release ran.
	Waits    int
	Released bool

	nextFrame uint64
}

// Frame is a fake driver.Frame.
type Frame struct {
	dev *Device

	// ID is the acquisition ordinal of the frame, starting at zero.
	ID uint64
}

// Pipeline is a fake driver.Pipeline.
type Pipeline struct {
	// Desc is the descriptor the pipeline was built from.
	Desc driver.PipelineDescriptor

	// Released reports whether Release ran.
	Released bool
}

// command carries the frame id from Encode to Submit.
type command struct {
	frame uint64
}

func (d *Device) logf(format string, args ...any) {
	d.Log = append(d.Log, fmt.Sprintf(format, args...))
}

// Configure implements driver.Device.
func (d *Device) Configure(cfg driver.SurfaceConfig) error {
	d.logf("configure %dx%d", cfg.Width, cfg.Height)
	d.Configures = append(d.Configures, cfg)
	return d.ConfigureErr
}

// Acquire implements driver.Device.
func (d *Device) Acquire() (driver.Frame, error) {
	if len(d.AcquireErrs) > 0 {
		err := d.AcquireErrs[0]
		d.AcquireErrs = d.AcquireErrs[1:]
		if err != nil {
			d.logf("acquire error")
			return nil, err
		}
	}
	f := &Frame{dev: d, ID: d.nextFrame}
	d.nextFrame++
	d.logf("acquire %d", f.ID)
	return f, nil
}

// NewPipeline implements driver.Device.
func (d *Device) NewPipeline(desc driver.PipelineDescriptor) (driver.Pipeline, error) {
	if d.NewPipelineErr != nil {
		return nil, d.NewPipelineErr
	}
	d.Pipelines = append(d.Pipelines, desc)
	d.logf("pipeline %s", desc.Label)
	return &Pipeline{Desc: desc}, nil
}

// Encode implements driver.Device.
func (d *Device) Encode(f driver.Frame, p driver.Pipeline, pass driver.PassConfig) (driver.CommandBuffer, error) {
	if d.OnEncode != nil {
		d.OnEncode()
	}
	fr, ok := f.(*Frame)
	if !ok {
		return nil, fmt.Errorf("drivertest: foreign frame %T", f)
	}
	d.logf("encode %d", fr.ID)
	if d.EncodeErr != nil {
		return nil, d.EncodeErr
	}
	return &command{frame: fr.ID}, nil
}

// Submit implements driver.Device.
func (d *Device) Submit(cb driver.CommandBuffer) error {
	c, ok := cb.(*command)
	if !ok {
		return fmt.Errorf("drivertest: foreign command buffer %T", cb)
	}
	if d.SubmitErr != nil {
		return d.SubmitErr
	}
	d.Submitted = append(d.Submitted, c.frame)
	d.logf("submit %d", c.frame)
	return nil
}

// Wait implements driver.Device.
func (d *Device) Wait() error {
	d.Waits++
	d.logf("wait")
	return d.WaitErr
}

// SurfaceFormat implements driver.Device.
func (d *Device) SurfaceFormat() gputypes.TextureFormat { return d.Format }

// Release implements driver.Device.
func (d *Device) Release() {
	d.Released = true
	d.logf("release")
}

// Present implements driver.Frame.
func (f *Frame) Present() error {
	if f.dev.PresentErr != nil {
		return f.dev.PresentErr
	}
	f.dev.Presented = append(f.dev.Presented, f.ID)
	f.dev.logf("present %d", f.ID)
	return nil
}

// Discard implements driver.Frame.
func (f *Frame) Discard() {
	f.dev.logf("discard %d", f.ID)
}

// Release implements driver.Pipeline.
func (p *Pipeline) Release() { p.Released = true }

// Interface compliance.
var (
	_ driver.Driver   = (*Driver)(nil)
	_ driver.Device   = (*Device)(nil)
	_ driver.Frame    = (*Frame)(nil)
	_ driver.Pipeline = (*Pipeline)(nil)
)
