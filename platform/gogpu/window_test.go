//go:build windows || !cgo

package gogpu

import (
	"errors"
	"testing"

	"github.com/gogpu/gpucontext"

	"github.com/gogpu/hostapp/platform"
)

func newTestWindow(t *testing.T) *Window {
	t.Helper()
	return New(Options{Title: "Café", Width: 320, Height: 240, Resizable: true})
}

func TestKeyState_RepeatWhileHeld(t *testing.T) {
	var s keyState
	steps := []struct {
		pressed    bool
		wantRepeat bool
	}{
		{true, false},
		{true, true},
		{true, true},
		{false, false},
		{true, false},
	}
	for i, st := range steps {
		ev := s.event(gpucontext.KeyA, gpucontext.ModShift, st.pressed)
		if ev.Kind != platform.EventKey || ev.Key != gpucontext.KeyA || ev.Pressed != st.pressed {
			t.Fatalf("step %d: event = %v", i, ev)
		}
		if ev.Repeat != st.wantRepeat {
			t.Errorf("step %d: Repeat = %v, want %v", i, ev.Repeat, st.wantRepeat)
		}
	}
	if s.mods != gpucontext.ModShift {
		t.Errorf("mods = %v, want shift", s.mods)
	}
}

func TestKeyState_KeysAreIndependent(t *testing.T) {
	var s keyState
	s.event(gpucontext.KeyA, 0, true)
	if ev := s.event(gpucontext.KeyB, 0, true); ev.Repeat {
		t.Error("first press of a second key reported as repeat")
	}
}

func TestToPixels(t *testing.T) {
	tests := []struct {
		v, scale, want float64
	}{
		{10, 1, 10},
		{10, 2, 20},
		{10, 1.5, 15},
		{10, 0, 10},
	}
	for _, tt := range tests {
		if got := toPixels(tt.v, tt.scale); got != tt.want {
			t.Errorf("toPixels(%v, %v) = %v, want %v", tt.v, tt.scale, got, tt.want)
		}
	}
}

func TestWindow_TitleIsNormalized(t *testing.T) {
	w := newTestWindow(t)
	if got := w.Title(); got != "Café" {
		t.Errorf("Title() = %q, want NFC form", got)
	}
	w.SetTitle("Résumé")
	if got := w.Title(); got != "Résumé" {
		t.Errorf("Title() after SetTitle = %q", got)
	}
}

func TestWindow_SizeBeforeRun(t *testing.T) {
	w := newTestWindow(t)
	if width, height := w.Size(); width != 320 || height != 240 {
		t.Errorf("Size() = %dx%d, want 320x240", width, height)
	}
	if s := w.ScaleFactor(); s != 1 {
		t.Errorf("ScaleFactor() = %v, want 1", s)
	}
	if w.IsFullscreen() {
		t.Error("IsFullscreen() = true before Run")
	}
}

func TestWindow_NoFrameBeforeRun(t *testing.T) {
	w := newTestWindow(t)
	if v := w.CurrentView(); v != nil {
		t.Errorf("CurrentView() = %v outside a frame", v)
	}
	if _, _, _, err := w.GPU(); !errors.Is(err, ErrNoDevice) {
		t.Errorf("GPU() error = %v, want ErrNoDevice", err)
	}
}

func drain(w *Window) []platform.EventKind {
	var kinds []platform.EventKind
	for {
		ev, ok := w.PollEvent()
		if !ok {
			return kinds
		}
		kinds = append(kinds, ev.Kind)
	}
}

func TestWindow_PollEventCycle(t *testing.T) {
	w := newTestWindow(t)
	w.push(platform.Event{Kind: platform.EventFocus, Focused: true})
	w.RequestRedraw()

	got := drain(w)
	want := []platform.EventKind{
		platform.EventFocus,
		platform.EventMainEventsCleared,
		platform.EventRedrawRequested,
	}
	if len(got) != len(want) {
		t.Fatalf("cycle = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("event %d = %v, want %v", i, got[i], want[i])
		}
	}

	if got := drain(w); len(got) != 1 || got[0] != platform.EventMainEventsCleared {
		t.Errorf("idle cycle = %v, want [MainEventsCleared]", got)
	}
}

func TestWindow_CloseEndsEventStream(t *testing.T) {
	w := newTestWindow(t)
	w.push(platform.Event{Kind: platform.EventCloseRequested})
	if err := w.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("second Close() error = %v", err)
	}

	got := drain(w)
	if len(got) != 2 || got[0] != platform.EventCloseRequested || got[1] != platform.EventLoopDestroyed {
		t.Fatalf("events after Close = %v, want [CloseRequested LoopDestroyed]", got)
	}
	if _, ok := w.PollEvent(); ok {
		t.Error("PollEvent() delivered an event after LoopDestroyed")
	}

	w.push(platform.Event{Kind: platform.EventFocus})
	if _, ok := w.PollEvent(); ok {
		t.Error("event pushed after destroy was delivered")
	}
	w.SetFullscreen(true)
}
