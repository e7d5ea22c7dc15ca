// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package frameloop

// EventKind identifies a window event type. The Loop dispatches events
// from a table keyed by kind, so handling is always synchronous and
// never re-entrant.
type EventKind uint8

const (
	// EventResize reports a new drawable size, including transient
	// zero-sized states while minimized.
	EventResize EventKind = iota

	// EventRedraw requests that the contents be drawn again.
	EventRedraw

	// EventClose requests an orderly shutdown of the loop.
	EventClose

	// EventKey reports a keyboard key press or release.
	EventKey
)

// String returns the event kind name.
func (k EventKind) String() string {
	switch k {
	case EventResize:
		return "resize"
	case EventRedraw:
		return "redraw"
	case EventClose:
		return "close"
	case EventKey:
		return "key"
	default:
		return "unknown"
	}
}

// Event is a window event. Concrete types are ResizeEvent, RedrawEvent,
// CloseEvent, and KeyEvent.
type Event interface {
	Kind() EventKind
}

// ResizeEvent reports a drawable-size change in physical pixels.
// Either dimension may be zero while the window is minimized.
type ResizeEvent struct {
	Width  int
	Height int
}

// Kind implements Event.
func (ResizeEvent) Kind() EventKind { return EventResize }

// RedrawEvent requests a redraw. The loop renders every tick anyway, so
// the built-in reaction is a no-op; it exists for user handlers.
type RedrawEvent struct{}

// Kind implements Event.
func (RedrawEvent) Kind() EventKind { return EventRedraw }

// CloseEvent requests shutdown. The loop drains in-flight work and
// stops before the next frame's encoding begins.
type CloseEvent struct{}

// Kind implements Event.
func (CloseEvent) Kind() EventKind { return EventClose }

// Key identifies a keyboard key. Only the keys the loop itself cares
// about have named constants; window implementations pass through
// their native codes for the rest.
type Key int

const (
	// KeyUnknown is any key without a dedicated constant.
	KeyUnknown Key = 0

	// KeyEscape is the escape key.
	KeyEscape Key = 256
)

// KeyEvent reports a key press or release. The loop has no built-in
// key reaction; applications register a handler for it (commonly
// escape-to-close).
type KeyEvent struct {
	Code    Key
	Pressed bool
}

// Kind implements Event.
func (KeyEvent) Kind() EventKind { return EventKey }

// Window delivers drawable-size queries and pending events to the
// loop. Implementations are not safe for concurrent use; the loop
// polls from its own thread.
type Window interface {
	// Size returns the drawable size in physical pixels. Either
	// dimension may be zero while minimized.
	Size() (width, height int)

	// PollEvents pumps the platform event queue and returns the events
	// accumulated since the previous call, in delivery order.
	PollEvents() []Event
}
