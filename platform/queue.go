package platform

// cyclePhase tracks where a Queue is within one pump cycle.
type cyclePhase uint8

const (
	phaseIdle    cyclePhase = iota // waiting for the next pump
	phaseEvents                    // delivering window events
	phaseCleared                   // MainEventsCleared delivered
	phaseRedraw                    // RedrawRequested considered
)

// Queue sequences window events into pump cycles.
//
// Window implementations push events from their OS callbacks and call
// Next from PollEvent. Each cycle delivers the pushed events, then
// EventMainEventsCleared, then EventRedrawRequested if a redraw was
// requested, and finally reports the end of the cycle. Once Destroy has
// been called and pending events are drained, EventLoopDestroyed is
// delivered exactly once and the queue stays empty afterwards.
//
// Queue is not safe for concurrent use.
type Queue struct {
	pending   []Event
	phase     cyclePhase
	redraw    bool
	destroy   bool
	destroyed bool
}

// Push appends a window event to the current cycle.
func (q *Queue) Push(ev Event) {
	if q.destroyed {
		return
	}
	q.pending = append(q.pending, ev)
}

// RequestRedraw asks for an EventRedrawRequested in the current cycle,
// or in the next one if the current cycle is already past that point.
func (q *Queue) RequestRedraw() {
	q.redraw = true
}

// Destroy schedules EventLoopDestroyed after the pending events.
func (q *Queue) Destroy() {
	q.destroy = true
}

// Destroyed reports whether EventLoopDestroyed has been delivered.
func (q *Queue) Destroyed() bool {
	return q.destroyed
}

// Len returns the number of pending window events.
func (q *Queue) Len() int {
	return len(q.pending)
}

// Next returns the next event. pump is called at the start of every cycle
// to collect OS events; it may call Push and RequestRedraw.
func (q *Queue) Next(pump func()) (Event, bool) {
	if q.destroyed {
		return Event{}, false
	}

	if q.phase == phaseIdle && !q.destroy {
		if pump != nil {
			pump()
		}
		q.phase = phaseEvents
	}

	if len(q.pending) > 0 {
		ev := q.pending[0]
		q.pending[0] = Event{}
		q.pending = q.pending[1:]
		return ev, true
	}

	if q.destroy {
		q.destroyed = true
		q.pending = nil
		return Event{Kind: EventLoopDestroyed}, true
	}

	switch q.phase {
	case phaseEvents:
		q.phase = phaseCleared
		return Event{Kind: EventMainEventsCleared}, true
	case phaseCleared:
		q.phase = phaseRedraw
		if q.redraw {
			q.redraw = false
			return Event{Kind: EventRedrawRequested}, true
		}
	}

	q.phase = phaseIdle
	return Event{}, false
}
