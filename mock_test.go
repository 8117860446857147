package hostapp

import (
	"errors"
	"fmt"
	"image"
	"strings"
	"testing"
	"time"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/hostapp/gpu"
	"github.com/gogpu/hostapp/input"
	"github.com/gogpu/hostapp/platform"
)

// callLog records calls across all mocks so tests can assert ordering.
type callLog struct {
	calls []string
}

func (l *callLog) add(format string, args ...any) {
	l.calls = append(l.calls, fmt.Sprintf(format, args...))
}

// only returns the calls that start with one of the given prefixes.
func (l *callLog) only(prefixes ...string) []string {
	var out []string
	for _, c := range l.calls {
		for _, p := range prefixes {
			if strings.HasPrefix(c, p) {
				out = append(out, c)
				break
			}
		}
	}
	return out
}

var subsystemPrefixes = []string{"gpu.", "ui.", "window.", "scene."}

// host returns the delegate callbacks, which carry no subsystem prefix.
func (l *callLog) host() []string {
	var out []string
next:
	for _, c := range l.calls {
		for _, p := range subsystemPrefixes {
			if strings.HasPrefix(c, p) {
				continue next
			}
		}
		out = append(out, c)
	}
	return out
}

func assertCalls(t *testing.T, got, want []string) {
	t.Helper()
	if strings.Join(got, "|") != strings.Join(want, "|") {
		t.Errorf("calls:\n got  %v\n want %v", got, want)
	}
}

// --- window ---

// mockWindow delivers one scripted batch of events per pump cycle and
// requests close once the script is exhausted.
type mockWindow struct {
	log        *callLog
	queue      platform.Queue
	cycles     [][]platform.Event
	cycle      int
	w, h       int
	title      string
	fullscreen bool
	icons      []image.Image
	closed     int
	polls      int
	waits      int
}

func (w *mockWindow) pump() {
	if w.cycle < len(w.cycles) {
		for _, ev := range w.cycles[w.cycle] {
			w.queue.Push(ev)
		}
		w.cycle++
		return
	}
	w.queue.Push(platform.Event{Kind: platform.EventCloseRequested})
}

func (w *mockWindow) PollEvent() (platform.Event, bool) {
	w.polls++
	return w.queue.Next(w.pump)
}

func (w *mockWindow) Size() (int, int)                 { return w.w, w.h }
func (w *mockWindow) ScaleFactor() float64             { return 2 }
func (w *mockWindow) RequestRedraw()                   { w.queue.RequestRedraw() }
func (w *mockWindow) Title() string                    { return w.title }
func (w *mockWindow) SetTitle(title string)            { w.title = title }
func (w *mockWindow) SetIcon(candidates []image.Image) { w.icons = candidates }
func (w *mockWindow) SetFullscreen(enabled bool)       { w.fullscreen = enabled }
func (w *mockWindow) IsFullscreen() bool               { return w.fullscreen }

func (w *mockWindow) WaitNext() { w.waits++ }

func (w *mockWindow) Close() error {
	w.closed++
	w.log.add("window.Close")
	return nil
}

// --- gpu ---

type mockView struct {
	name     string
	released bool
}

func (v *mockView) Release()       { v.released = true }
func (v *mockView) String() string { return v.name }

type mockFrame struct {
	view      *mockView
	discarded bool
}

func (f *mockFrame) View() gpu.TextureView { return f.view }
func (f *mockFrame) Suboptimal() bool      { return false }
func (f *mockFrame) Discard()              { f.discarded = true }

type mockPass struct {
	log    *callLog
	endErr error
}

func (p *mockPass) End() error {
	p.log.add("gpu.End")
	return p.endErr
}

type mockEncoder struct {
	dev *mockDevice
}

func (e *mockEncoder) BeginRenderPass(desc *gpu.PassDescriptor) (gpu.RenderPass, error) {
	e.dev.log.add("gpu.BeginRenderPass")
	e.dev.passes = append(e.dev.passes, desc)
	return &mockPass{log: e.dev.log, endErr: e.dev.endErr}, nil
}

func (e *mockEncoder) Finish() (gpu.CommandBuffer, error) {
	e.dev.log.add("gpu.Finish")
	return "cmd", nil
}

func (e *mockEncoder) Discard() { e.dev.log.add("gpu.Discard") }

type mockDevice struct {
	log      *callLog
	backend  gputypes.Backend
	features gputypes.Features

	configured []gpu.SurfaceConfig
	targets    []*gpu.Targets
	// depths holds the depth view of every CreateTargets call; Targets
	// clears its own fields on release.
	depths []gpu.TextureView
	frames []*mockFrame
	passes []*gpu.PassDescriptor

	// acquireErrs is consumed one entry per AcquireFrame call.
	acquireErrs []error
	configErr   error
	endErr      error
	released    int
}

func (d *mockDevice) Device() gpucontext.Device   { return "device" }
func (d *mockDevice) Queue() gpucontext.Queue     { return "queue" }
func (d *mockDevice) Adapter() gpucontext.Adapter { return "adapter" }
func (d *mockDevice) SurfaceFormat() gputypes.TextureFormat {
	return gputypes.TextureFormatBGRA8Unorm
}
func (d *mockDevice) AdapterInfo() gpucontext.AdapterInfo {
	return gpucontext.AdapterInfo{Name: "mock adapter", Type: gpucontext.AdapterTypeSoftware}
}
func (d *mockDevice) Backend() gputypes.Backend   { return d.backend }
func (d *mockDevice) Features() gputypes.Features { return d.features }

func (d *mockDevice) Configure(cfg gpu.SurfaceConfig) error {
	if d.configErr != nil {
		return d.configErr
	}
	d.log.add("gpu.Configure %dx%d", cfg.Width, cfg.Height)
	d.configured = append(d.configured, cfg)
	return nil
}

func (d *mockDevice) CreateTargets(cfg gpu.SurfaceConfig) (*gpu.Targets, error) {
	t := &gpu.Targets{
		Depth:       &mockView{name: "depth"},
		Width:       cfg.Width,
		Height:      cfg.Height,
		SampleCount: cfg.SampleCount,
	}
	if cfg.Multisampled() {
		t.Color = &mockView{name: "msaa"}
	}
	d.targets = append(d.targets, t)
	d.depths = append(d.depths, t.Depth)
	return t, nil
}

func (d *mockDevice) AcquireFrame() (gpu.Frame, error) {
	d.log.add("gpu.AcquireFrame")
	if len(d.acquireErrs) > 0 {
		err := d.acquireErrs[0]
		d.acquireErrs = d.acquireErrs[1:]
		if err != nil {
			return nil, err
		}
	}
	f := &mockFrame{view: &mockView{name: "surface"}}
	d.frames = append(d.frames, f)
	return f, nil
}

func (d *mockDevice) CreateEncoder(string) (gpu.Encoder, error) {
	return &mockEncoder{dev: d}, nil
}

func (d *mockDevice) Submit(gpu.CommandBuffer) error {
	d.log.add("gpu.Submit")
	return nil
}

func (d *mockDevice) Present(gpu.Frame) error {
	d.log.add("gpu.Present")
	return nil
}

func (d *mockDevice) Release() {
	d.released++
	d.log.add("gpu.Release")
}

// --- overlay ---

type mockOverlay struct {
	log      *callLog
	events   []platform.EventKind
	dts      []time.Duration
	released int
}

func (o *mockOverlay) Prepare(dt time.Duration, _ platform.Window) {
	o.log.add("ui.Prepare")
	o.dts = append(o.dts, dt)
}
func (o *mockOverlay) HandleEvent(ev platform.Event) { o.events = append(o.events, ev.Kind) }
func (o *mockOverlay) Render(gpu.RenderPass) error {
	o.log.add("ui.Render")
	return nil
}
func (o *mockOverlay) Scale() float32 { return 1.5 }
func (o *mockOverlay) Release()       { o.released++ }

// --- input ---

// mockInput plays one scripted poll per loop iteration; after the script
// it reports Idle.
type mockInput struct {
	polls  []func(input.Sink) input.PollResult
	closed int
}

func (m *mockInput) Poll(sink input.Sink) input.PollResult {
	if len(m.polls) == 0 {
		return input.Idle
	}
	p := m.polls[0]
	m.polls = m.polls[1:]
	return p(sink)
}

func (m *mockInput) Close() error {
	m.closed++
	return nil
}

func (m *mockInput) PlayerIndex(id int) int  { return id + 10 }
func (m *mockInput) SetPlayerIndex(int, int) {}
func (m *mockInput) IsGameCube(int) bool     { return true }
func (m *mockInput) HasRumble(int) bool      { return true }
func (m *mockInput) Rumble(int, uint16, uint16, time.Duration) error {
	return errors.New("no motor")
}
func (m *mockInput) Name(int) string { return "pad" }

// --- delegate ---

type recordingDelegate struct {
	log  *callLog
	app  *App
	idle func(frame int) bool

	frames int
	dts    []float32
}

func (d *recordingDelegate) OnAppLaunched() { d.log.add("launched") }
func (d *recordingDelegate) OnAppWindowResized(s WindowSize) {
	d.log.add("resized %dx%d", s.Width, s.Height)
}
func (d *recordingDelegate) OnAppWindowMoved(x, y int) { d.log.add("moved %d,%d", x, y) }

func (d *recordingDelegate) OnAppIdle(dt float32) bool {
	d.log.add("idle")
	d.dts = append(d.dts, dt)
	d.frames++
	if d.idle != nil {
		return d.idle(d.frames)
	}
	return true
}

func (d *recordingDelegate) OnAppDraw() {
	d.log.add("draw")
	if d.app != nil {
		d.app.Scene().Push(func(gpu.RenderPass) error {
			d.log.add("scene.draw")
			return nil
		})
	}
}

func (d *recordingDelegate) OnAppPostDraw() { d.log.add("postdraw") }
func (d *recordingDelegate) OnAppExiting()  { d.log.add("exiting") }

// fullDelegate implements every optional delegate interface.
type fullDelegate struct {
	recordingDelegate
}

func (d *fullDelegate) OnAppDisplayScaleChanged(scale float32) { d.log.add("scale %.1f", scale) }
func (d *fullDelegate) OnOverlayInit(scale float32)            { d.log.add("overlayinit %.1f", scale) }
func (d *fullDelegate) OnKeyDown(key gpucontext.Key, _ gpucontext.Modifiers, repeat bool) {
	d.log.add("keydown %d %v", key, repeat)
}
func (d *fullDelegate) OnKeyUp(key gpucontext.Key, _ gpucontext.Modifiers) {
	d.log.add("keyup %d", key)
}
func (d *fullDelegate) OnTextInput(text string)  { d.log.add("text %s", text) }
func (d *fullDelegate) OnMouseMove(x, y float64) { d.log.add("mousemove %.0f,%.0f", x, y) }
func (d *fullDelegate) OnMouseButton(b gpucontext.MouseButton, _, _ float64, pressed bool) {
	d.log.add("mousebutton %d %v", b, pressed)
}
func (d *fullDelegate) OnScroll(dx, dy float64)  { d.log.add("scroll %.0f,%.0f", dx, dy) }
func (d *fullDelegate) OnControllerAdded(id int) { d.log.add("controller+ %d", id) }
func (d *fullDelegate) OnControllerRemoved(id int) {
	d.log.add("controller- %d", id)
}
func (d *fullDelegate) OnControllerButton(id int, b input.Button, pressed bool) {
	d.log.add("button %d %s %v", id, b, pressed)
}
func (d *fullDelegate) OnControllerAxis(id int, a input.Axis, v int16) {
	d.log.add("axis %d %s %d", id, a, v)
}

// --- fixture ---

type fixture struct {
	log     *callLog
	window  *mockWindow
	device  *mockDevice
	overlay *mockOverlay
	input   *mockInput
	app     *App
}

// newFixture creates an App over mocks with a 640x480 window. The App is
// released at the end of the test if the test did not run it.
func newFixture(t *testing.T, cycles ...[]platform.Event) *fixture {
	t.Helper()
	log := &callLog{}
	f := &fixture{
		log:     log,
		window:  &mockWindow{log: log, w: 640, h: 480, title: "test", cycles: cycles},
		device:  &mockDevice{log: log, backend: gputypes.BackendVulkan},
		overlay: &mockOverlay{log: log},
		input:   &mockInput{},
	}
	app, err := New(DefaultConfig(), Deps{
		Window:  f.window,
		Device:  f.device,
		Overlay: f.overlay,
		Input:   f.input,
		Args:    []string{"--level", "1"},
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	f.app = app
	t.Cleanup(func() {
		if !app.released {
			app.release()
		}
	})
	return f
}

func (f *fixture) delegate() *recordingDelegate {
	return &recordingDelegate{log: f.log, app: f.app}
}

// cycle is a convenience for building scripted event batches.
func cycle(events ...platform.Event) []platform.Event { return events }
