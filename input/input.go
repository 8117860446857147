// Package input defines the secondary input source polled by the hostapp
// run loop in addition to the window's own events.
//
// The secondary source typically owns game controllers. It is polled once
// per loop iteration and reports a tri-state [PollResult]. Controller events
// found during the poll are handed to a [Sink].
//
// Sources are selected by name through [Sources], a gpucontext registry.
// Implementations register themselves from an init function:
//
//	import _ "github.com/gogpu/hostapp/input/sdl"
//
//	src := input.Open("") // best available source
package input

import (
	"time"

	"github.com/gogpu/gpucontext"
)

// PollResult is the outcome of polling a secondary input source.
type PollResult uint8

const (
	// Idle means nothing happened.
	Idle PollResult = iota

	// Handled means one or more events were consumed.
	Handled

	// Quit means the source received a quit request. The run loop
	// terminates.
	Quit
)

// String returns the result name.
func (r PollResult) String() string {
	switch r {
	case Idle:
		return "Idle"
	case Handled:
		return "Handled"
	case Quit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// Sink receives controller events during Poll.
type Sink interface {
	ControllerAdded(id int)
	ControllerRemoved(id int)
	ControllerButton(id int, button Button, pressed bool)
	ControllerAxis(id int, axis Axis, value int16)
}

// Source is a secondary input source.
type Source interface {
	// Poll drains pending events into sink and reports what happened.
	Poll(sink Sink) PollResult

	// Close releases the source.
	Close() error
}

// Controllers gives access to connected game controllers. Controller ids
// are the ids reported to Sink.ControllerAdded.
//
// Queries about unknown ids return zero values.
type Controllers interface {
	PlayerIndex(id int) int
	SetPlayerIndex(id, index int)
	IsGameCube(id int) bool
	HasRumble(id int) bool
	Rumble(id int, low, high uint16, duration time.Duration) error
	Name(id int) string
}

// Source names known to the registry.
const (
	SourceSDL  = "sdl"
	SourceNone = "none"
)

// Sources is the registry of secondary input sources, best first.
var Sources = gpucontext.NewRegistry[Source](
	gpucontext.WithPriority(SourceSDL, SourceNone),
)

func init() {
	Sources.Register(SourceNone, func() Source { return Null{} })
}

// Open returns the source registered under name, or the best available
// source when name is empty. Unknown names fall back to [Null].
func Open(name string) Source {
	var src Source
	if name == "" {
		src = Sources.Best()
	} else {
		src = Sources.Get(name)
	}
	if src == nil {
		return Null{}
	}
	return src
}

// Null is a source with no devices. It never reports events.
type Null struct{}

// Poll implements Source.
func (Null) Poll(Sink) PollResult { return Idle }

// Close implements Source.
func (Null) Close() error { return nil }

// PlayerIndex implements Controllers.
func (Null) PlayerIndex(int) int { return -1 }

// SetPlayerIndex implements Controllers.
func (Null) SetPlayerIndex(int, int) {}

// IsGameCube implements Controllers.
func (Null) IsGameCube(int) bool { return false }

// HasRumble implements Controllers.
func (Null) HasRumble(int) bool { return false }

// Rumble implements Controllers.
func (Null) Rumble(int, uint16, uint16, time.Duration) error { return nil }

// Name implements Controllers.
func (Null) Name(int) string { return "" }

var (
	_ Source      = Null{}
	_ Controllers = Null{}
)
