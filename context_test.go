// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package frameloop

import (
	"errors"
	"strings"
	"testing"

	"github.com/gogpu/frameloop/driver"
	"github.com/gogpu/frameloop/driver/drivertest"
	"github.com/gogpu/gputypes"
)

// testWindow is a Window whose size and event queue are controlled by
// the test.
type testWindow struct {
	w, h   int
	events []Event
}

func (w *testWindow) Size() (width, height int) { return w.w, w.h }

func (w *testWindow) PollEvents() []Event {
	evs := w.events
	w.events = nil
	return evs
}

func (w *testWindow) push(evs ...Event) {
	w.events = append(w.events, evs...)
}

// newTestContext creates a context over a fake driver registered under
// the test's name, cleaned up automatically.
func newTestContext(t *testing.T, width, height int, opts ...Option) (*Context, *drivertest.Device, *testWindow) {
	t.Helper()
	fake := drivertest.Install(t.Name())
	t.Cleanup(func() { driver.Unregister(t.Name()) })

	win := &testWindow{w: width, h: height}
	ctx, err := NewContext(win, append([]Option{WithDriver(t.Name())}, opts...)...)
	if err != nil {
		t.Fatalf("NewContext() error = %v", err)
	}
	t.Cleanup(ctx.Release)
	return ctx, fake.Device, win
}

func TestNewContextConfiguresSurface(t *testing.T) {
	ctx, dev, _ := newTestContext(t, 800, 600)

	cfg := ctx.Config()
	if cfg.Width != 800 || cfg.Height != 600 {
		t.Errorf("Config() = %dx%d, want 800x600", cfg.Width, cfg.Height)
	}
	if len(dev.Configures) != 1 {
		t.Fatalf("Configure calls = %d, want 1", len(dev.Configures))
	}
	if got := dev.Configures[0]; got.Width != 800 || got.Height != 600 {
		t.Errorf("configured %dx%d, want 800x600", got.Width, got.Height)
	}
}

func TestNewContextDefaultFormat(t *testing.T) {
	ctx, _, _ := newTestContext(t, 640, 480)

	if got := ctx.Config().Format; got != gputypes.TextureFormatBGRA8Unorm {
		t.Errorf("Config().Format = %d, want device preferred BGRA8Unorm", int(got))
	}
}

func TestNewContextExplicitFormat(t *testing.T) {
	ctx, dev, _ := newTestContext(t, 640, 480, WithFormat(gputypes.TextureFormatRGBA8Unorm))

	if got := ctx.Config().Format; got != gputypes.TextureFormatRGBA8Unorm {
		t.Errorf("Config().Format = %d, want RGBA8Unorm", int(got))
	}
	if got := dev.Configures[0].Format; got != gputypes.TextureFormatRGBA8Unorm {
		t.Errorf("configured format = %d, want RGBA8Unorm", int(got))
	}
}

func TestNewContextZeroSizeDefersConfigure(t *testing.T) {
	ctx, dev, _ := newTestContext(t, 0, 0)

	if len(dev.Configures) != 0 {
		t.Errorf("Configure calls = %d, want 0 for zero-sized window", len(dev.Configures))
	}

	ctx.Reconfigure(320, 240)
	if len(dev.Configures) != 1 {
		t.Fatalf("Configure calls after resize = %d, want 1", len(dev.Configures))
	}
	if got := dev.Configures[0]; got.Width != 320 || got.Height != 240 {
		t.Errorf("configured %dx%d, want 320x240", got.Width, got.Height)
	}
}

func TestNewContextUnknownDriver(t *testing.T) {
	win := &testWindow{w: 100, h: 100}
	_, err := NewContext(win, WithDriver("no-such-driver"))
	if err == nil {
		t.Fatal("NewContext() with unknown driver should fail")
	}
	var ie *InitError
	if !errors.As(err, &ie) {
		t.Fatalf("error type = %T, want *InitError", err)
	}
	if ie.Driver != "" {
		t.Errorf("InitError.Driver = %q, want empty (no driver selected)", ie.Driver)
	}
}

func TestNewContextOpenError(t *testing.T) {
	fake := drivertest.Install(t.Name())
	t.Cleanup(func() { driver.Unregister(t.Name()) })
	fake.OpenErr = errors.New("no adapter")

	_, err := NewContext(&testWindow{w: 100, h: 100}, WithDriver(t.Name()))
	var ie *InitError
	if !errors.As(err, &ie) {
		t.Fatalf("error type = %T, want *InitError", err)
	}
	if ie.Driver != t.Name() {
		t.Errorf("InitError.Driver = %q, want %q", ie.Driver, t.Name())
	}
	if !strings.Contains(ie.Error(), "no adapter") {
		t.Errorf("InitError.Error() = %q, want it to mention the cause", ie.Error())
	}
}

func TestReconfigure(t *testing.T) {
	ctx, dev, _ := newTestContext(t, 800, 600)

	ctx.Reconfigure(400, 300)
	cfg := ctx.Config()
	if cfg.Width != 400 || cfg.Height != 300 {
		t.Errorf("Config() = %dx%d, want 400x300", cfg.Width, cfg.Height)
	}
	if len(dev.Configures) != 2 {
		t.Errorf("Configure calls = %d, want 2", len(dev.Configures))
	}
}

func TestReconfigureSameSizeIsNoop(t *testing.T) {
	ctx, dev, _ := newTestContext(t, 800, 600)

	ctx.Reconfigure(800, 600)
	if len(dev.Configures) != 1 {
		t.Errorf("Configure calls = %d, want 1 (unchanged size)", len(dev.Configures))
	}
}

func TestReconfigureFailureKeepsConfig(t *testing.T) {
	ctx, dev, _ := newTestContext(t, 800, 600)

	dev.ConfigureErr = errors.New("surface rejected size")
	ctx.Reconfigure(400, 300)

	cfg := ctx.Config()
	if cfg.Width != 800 || cfg.Height != 600 {
		t.Errorf("Config() = %dx%d, want 800x600 (failed configure not committed)", cfg.Width, cfg.Height)
	}

	// Once Configure succeeds again the new size is committed.
	dev.ConfigureErr = nil
	ctx.Reconfigure(400, 300)
	cfg = ctx.Config()
	if cfg.Width != 400 || cfg.Height != 300 {
		t.Errorf("Config() = %dx%d, want 400x300", cfg.Width, cfg.Height)
	}
}

func TestReconfigureZeroSizeKeepsConfig(t *testing.T) {
	ctx, dev, _ := newTestContext(t, 800, 600)

	ctx.Reconfigure(400, 300)
	ctx.Reconfigure(0, 300)
	ctx.Reconfigure(400, 0)

	cfg := ctx.Config()
	if cfg.Width != 400 || cfg.Height != 300 {
		t.Errorf("Config() = %dx%d, want 400x300 after zero-size resizes", cfg.Width, cfg.Height)
	}
	if len(dev.Configures) != 2 {
		t.Errorf("Configure calls = %d, want 2 (zero sizes ignored)", len(dev.Configures))
	}
}

func TestAcquireFrameAtMostOneOutstanding(t *testing.T) {
	ctx, _, _ := newTestContext(t, 800, 600)

	f, err := ctx.AcquireFrame()
	if err != nil {
		t.Fatalf("AcquireFrame() error = %v", err)
	}

	if _, err := ctx.AcquireFrame(); !errors.Is(err, ErrFrameOutstanding) {
		t.Errorf("second AcquireFrame() error = %v, want ErrFrameOutstanding", err)
	}

	if err := f.Present(); err != nil {
		t.Fatalf("Present() error = %v", err)
	}

	if _, err := ctx.AcquireFrame(); err != nil {
		t.Errorf("AcquireFrame() after present error = %v", err)
	}
}

func TestFramePresentTwice(t *testing.T) {
	ctx, _, _ := newTestContext(t, 800, 600)

	f, err := ctx.AcquireFrame()
	if err != nil {
		t.Fatalf("AcquireFrame() error = %v", err)
	}
	if err := f.Present(); err != nil {
		t.Fatalf("Present() error = %v", err)
	}
	if err := f.Present(); !errors.Is(err, ErrFrameResolved) {
		t.Errorf("second Present() error = %v, want ErrFrameResolved", err)
	}
}

func TestFrameDiscardAfterPresentIsNoop(t *testing.T) {
	ctx, dev, _ := newTestContext(t, 800, 600)

	f, _ := ctx.AcquireFrame()
	if err := f.Present(); err != nil {
		t.Fatalf("Present() error = %v", err)
	}
	f.Discard()

	for _, entry := range dev.Log {
		if entry == "discard 0" {
			t.Error("Discard after Present should not reach the driver")
		}
	}
}

func TestAcquireFrameAfterRelease(t *testing.T) {
	ctx, _, _ := newTestContext(t, 800, 600)
	ctx.Release()

	if _, err := ctx.AcquireFrame(); !errors.Is(err, ErrReleased) {
		t.Errorf("AcquireFrame() after Release error = %v, want ErrReleased", err)
	}
	if ctx.Device() != nil {
		t.Error("Device() after Release should be nil")
	}
}

func TestReleaseDiscardsOutstandingFrame(t *testing.T) {
	ctx, dev, _ := newTestContext(t, 800, 600)

	if _, err := ctx.AcquireFrame(); err != nil {
		t.Fatalf("AcquireFrame() error = %v", err)
	}
	ctx.Release()
	ctx.Release() // idempotent

	want := []string{"configure 800x600", "acquire 0", "discard 0", "release"}
	if len(dev.Log) != len(want) {
		t.Fatalf("device log = %v, want %v", dev.Log, want)
	}
	for i, entry := range want {
		if dev.Log[i] != entry {
			t.Errorf("log[%d] = %q, want %q", i, dev.Log[i], entry)
		}
	}
}

func TestReconfigureAfterRelease(t *testing.T) {
	ctx, dev, _ := newTestContext(t, 800, 600)
	ctx.Release()

	ctx.Reconfigure(400, 300)
	if len(dev.Configures) != 1 {
		t.Errorf("Configure calls = %d, want 1 (released context)", len(dev.Configures))
	}
}

func TestContextPassesOptionsToDriver(t *testing.T) {
	_, dev, _ := newTestContext(t, 800, 600,
		WithPresentMode(PresentModeMailbox),
		WithPowerPreference(PowerPreferenceHighPerformance),
	)

	if dev.Opts.PresentMode != PresentModeMailbox {
		t.Errorf("driver present mode = %v, want mailbox", dev.Opts.PresentMode)
	}
	if dev.Opts.Power != PowerPreferenceHighPerformance {
		t.Errorf("driver power preference = %v, want high-performance", dev.Opts.Power)
	}
	if got := dev.Configures[0].PresentMode; got != PresentModeMailbox {
		t.Errorf("configured present mode = %v, want mailbox", got)
	}
}
