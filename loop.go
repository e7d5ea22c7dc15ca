// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package frameloop

import (
	"fmt"

	"github.com/gogpu/frameloop/driver"
	"github.com/gogpu/gputypes"
)

// PassConfig is re-exported from the driver boundary; see
// driver.PassConfig.
type PassConfig = driver.PassConfig

// State is the frame loop's position in its per-tick cycle.
type State uint8

const (
	// StateIdle means no frame is in flight.
	StateIdle State = iota

	// StateFrameAcquired means a surface frame is held but encoding has
	// not begun.
	StateFrameAcquired

	// StateEncoding means the frame's render pass is being recorded.
	StateEncoding

	// StateSubmitted means commands are queued but the frame is not yet
	// presented.
	StateSubmitted

	// StateStopped is terminal, reached on close or fatal error after
	// in-flight work has drained.
	StateStopped
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateFrameAcquired:
		return "frame-acquired"
	case StateEncoding:
		return "encoding"
	case StateSubmitted:
		return "submitted"
	case StateStopped:
		return "stopped"
	default:
		return "unknown"
	}
}

// Handler is a user event handler. Returning true marks the event
// handled and suppresses the loop's built-in reaction (resize ->
// reconfigure, close -> stop).
type Handler func(Event) bool

// Loop drives per-frame rendering for one Context: each tick it
// dispatches pending window events, acquires a surface frame, encodes
// one render pass binding the registry's active pipeline, submits to
// the queue, and presents.
//
// The loop runs single-threaded on the thread that owns the window's
// event queue. Events are observed only between frames - a close
// delivered while a frame is being encoded takes effect on the next
// tick, after the in-flight submission completes.
type Loop struct {
	ctx   *Context
	pipes *PipelineRegistry
	pass  driver.PassConfig

	state    State
	stopping bool
	frames   uint64

	handlers map[EventKind]Handler
	builtins map[EventKind]func(Event)

	onUpdate func()
}

// NewLoop creates a loop for ctx binding pipelines from reg. reg may be
// nil, in which case every pass only clears.
//
// The default pass clears to opaque dark blue-gray, the customary
// "renderer is alive" color.
func NewLoop(ctx *Context, reg *PipelineRegistry) *Loop {
	l := &Loop{
		ctx:   ctx,
		pipes: reg,
		pass: driver.PassConfig{
			Load:  gputypes.LoadOpClear,
			Clear: gputypes.Color{R: 0.1, G: 0.2, B: 0.3, A: 1.0},
		},
		handlers: make(map[EventKind]Handler),
	}
	l.builtins = map[EventKind]func(Event){
		EventResize: func(ev Event) {
			if re, ok := ev.(ResizeEvent); ok {
				l.ctx.Reconfigure(re.Width, re.Height)
			}
		},
		EventClose: func(Event) {
			l.Stop()
		},
	}
	return l
}

// Handle registers a user handler for an event kind, replacing any
// previous one. Handlers run before the built-in reaction and suppress
// it by returning true.
func (l *Loop) Handle(kind EventKind, h Handler) {
	if h == nil {
		delete(l.handlers, kind)
		return
	}
	l.handlers[kind] = h
}

// OnUpdate registers a callback invoked once per tick after event
// dispatch and before frame acquisition, for application state updates.
func (l *Loop) OnUpdate(fn func()) { l.onUpdate = fn }

// SetPass replaces the render pass configuration used for subsequent
// frames.
func (l *Loop) SetPass(p PassConfig) { l.pass = p }

// SetClear sets the clear color, keeping the load operation on clear.
func (l *Loop) SetClear(c gputypes.Color) {
	l.pass.Load = gputypes.LoadOpClear
	l.pass.Clear = c
}

// Stop requests an orderly shutdown: the loop drains in-flight work and
// reaches StateStopped before the next frame's encoding would begin.
func (l *Loop) Stop() { l.stopping = true }

// State returns the loop's current state.
func (l *Loop) State() State { return l.state }

// Frames returns the number of frames presented so far.
func (l *Loop) Frames() uint64 { return l.frames }

// Run ticks the loop until it stops. It returns nil after an orderly
// close and the fatal error otherwise.
func (l *Loop) Run() error {
	for l.state != StateStopped {
		if err := l.Tick(); err != nil {
			return err
		}
	}
	return nil
}

// Tick advances the loop by one frame: dispatch events, then acquire,
// encode, submit, present. Ticking a stopped loop is a no-op.
func (l *Loop) Tick() error {
	if l.state == StateStopped {
		return nil
	}

	l.dispatch(l.ctx.win.PollEvents())
	if l.stopping {
		return l.shutdown(nil)
	}

	if l.onUpdate != nil {
		l.onUpdate()
	}

	// A zero-sized config means the surface has never been configured
	// (window minimized since startup); there is nothing to acquire
	// until the first non-zero resize arrives.
	if cfg := l.ctx.Config(); cfg.Width == 0 || cfg.Height == 0 {
		Logger().Debug("frameloop: surface unconfigured, skipping frame")
		return nil
	}

	f, err := l.acquire()
	if err != nil {
		return l.shutdown(err)
	}
	if f == nil {
		// Transient acquisition failure; skip this frame.
		return nil
	}
	l.state = StateFrameAcquired

	var active driver.Pipeline
	var pl *Pipeline
	if l.pipes != nil {
		if pl = l.pipes.Active(); pl != nil {
			active = pl.raw
		}
	}

	l.state = StateEncoding
	cb, err := l.ctx.dev.Encode(f.raw, active, l.pass)
	if err != nil {
		f.Discard()
		return l.shutdown(fmt.Errorf("frameloop: encode: %w", err))
	}

	if err := l.ctx.dev.Submit(cb); err != nil {
		f.Discard()
		return l.shutdown(fmt.Errorf("frameloop: submit: %w", err))
	}
	l.state = StateSubmitted

	if err := f.Present(); err != nil {
		return l.shutdown(fmt.Errorf("frameloop: present: %w", err))
	}
	l.frames++
	l.state = StateIdle
	return nil
}

// dispatch routes events through the handler table: the user handler
// for the kind first, then the built-in reaction unless suppressed.
func (l *Loop) dispatch(events []Event) {
	for _, ev := range events {
		if h, ok := l.handlers[ev.Kind()]; ok && h(ev) {
			continue
		}
		if b, ok := l.builtins[ev.Kind()]; ok {
			b(ev)
		}
	}
}

// acquire obtains the next frame, applying the recovery policy:
// timeout skips the frame (nil, nil); lost or outdated surfaces are
// reconfigured and retried once; anything else, or a failed retry, is
// fatal.
func (l *Loop) acquire() (*Frame, error) {
	f, err := l.ctx.AcquireFrame()
	if err == nil {
		return f, nil
	}

	switch {
	case driver.Transient(err):
		Logger().Debug("frameloop: frame acquisition timed out, skipping frame")
		l.state = StateIdle
		return nil, nil

	case driver.Recoverable(err):
		Logger().Warn("frameloop: surface needs reconfigure", "err", err)
		if rerr := l.ctx.restore(); rerr != nil {
			return nil, rerr
		}
		f, err = l.ctx.AcquireFrame()
		if err != nil {
			return nil, fmt.Errorf("frameloop: acquire after reconfigure: %w", err)
		}
		return f, nil

	default:
		return nil, fmt.Errorf("frameloop: acquire: %w", err)
	}
}

// shutdown drains in-flight submissions and moves to StateStopped.
// cause, if non-nil, is the fatal error to propagate; an orderly close
// returns nil unless the drain itself fails.
func (l *Loop) shutdown(cause error) error {
	var waitErr error
	if dev := l.ctx.Device(); dev != nil {
		waitErr = dev.Wait()
	}
	l.state = StateStopped
	if cause != nil {
		return cause
	}
	if waitErr != nil {
		return fmt.Errorf("frameloop: drain on shutdown: %w", waitErr)
	}
	Logger().Info("frameloop: stopped", "frames", l.frames)
	return nil
}
