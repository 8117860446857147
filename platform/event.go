package platform

import (
	"fmt"

	"github.com/gogpu/gpucontext"
)

// EventKind identifies the kind of a platform event.
type EventKind uint8

const (
	// EventNone is the zero value and is never delivered.
	EventNone EventKind = iota

	// EventCloseRequested is sent when the user asks to close the window.
	EventCloseRequested

	// EventResized carries the new framebuffer size in pixels.
	EventResized

	// EventMoved carries the new window position in screen coordinates.
	EventMoved

	// EventScaleChanged carries the new content scale of the window.
	EventScaleChanged

	// EventFocus reports focus gain or loss.
	EventFocus

	// EventKey reports a key press, repeat, or release.
	EventKey

	// EventChar carries committed text input.
	EventChar

	// EventMouseMove carries the cursor position.
	EventMouseMove

	// EventMouseButton reports a mouse button press or release.
	EventMouseButton

	// EventScroll carries scroll wheel deltas.
	EventScroll

	// EventMainEventsCleared is sent once all window events of a pump
	// cycle have been delivered.
	EventMainEventsCleared

	// EventRedrawRequested is sent after EventMainEventsCleared when a
	// redraw was requested during the cycle.
	EventRedrawRequested

	// EventLoopDestroyed is the last event a window ever delivers.
	EventLoopDestroyed
)

var eventKindNames = [...]string{
	EventNone:              "None",
	EventCloseRequested:    "CloseRequested",
	EventResized:           "Resized",
	EventMoved:             "Moved",
	EventScaleChanged:      "ScaleChanged",
	EventFocus:             "Focus",
	EventKey:               "Key",
	EventChar:              "Char",
	EventMouseMove:         "MouseMove",
	EventMouseButton:       "MouseButton",
	EventScroll:            "Scroll",
	EventMainEventsCleared: "MainEventsCleared",
	EventRedrawRequested:   "RedrawRequested",
	EventLoopDestroyed:     "LoopDestroyed",
}

// String returns the event kind name.
func (k EventKind) String() string {
	if int(k) < len(eventKindNames) {
		return eventKindNames[k]
	}
	return fmt.Sprintf("EventKind(%d)", uint8(k))
}

// Event is a single platform event. Only the fields relevant to Kind are set.
type Event struct {
	Kind EventKind

	// Width and Height are set for EventResized (framebuffer pixels).
	Width, Height int

	// X and Y are set for EventMoved (screen coordinates).
	X, Y int

	// Scale is set for EventScaleChanged.
	Scale float32

	// Focused is set for EventFocus.
	Focused bool

	// Key, Mods, Pressed and Repeat are set for EventKey.
	// Pressed and Mods are also set for EventMouseButton.
	Key     gpucontext.Key
	Mods    gpucontext.Modifiers
	Pressed bool
	Repeat  bool

	// Text is set for EventChar.
	Text string

	// CursorX and CursorY are set for EventMouseMove and EventMouseButton,
	// in framebuffer pixels.
	CursorX, CursorY float64

	// Button is set for EventMouseButton.
	Button gpucontext.MouseButton

	// ScrollX and ScrollY are set for EventScroll.
	ScrollX, ScrollY float64
}

// String returns a short description of the event for logging.
func (e Event) String() string {
	switch e.Kind {
	case EventResized:
		return fmt.Sprintf("Resized(%dx%d)", e.Width, e.Height)
	case EventMoved:
		return fmt.Sprintf("Moved(%d,%d)", e.X, e.Y)
	case EventScaleChanged:
		return fmt.Sprintf("ScaleChanged(%.2f)", e.Scale)
	default:
		return e.Kind.String()
	}
}
