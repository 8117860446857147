// Package platform defines the native window contract used by hostapp and
// the event model that flows from the window into the run loop.
//
// A window implementation (see platform/glfw) turns OS callbacks into
// [Event] values and hands them out one at a time through
// [Window.PollEvent]. The [Queue] type sequences those events the same way
// for every implementation:
//
//	window events... -> EventMainEventsCleared -> EventRedrawRequested -> (no event)
//
// The "no event" result ends one pump cycle and gives the run loop a
// chance to poll its other input sources before the next cycle starts.
package platform
