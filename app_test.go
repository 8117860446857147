package hostapp

import (
	"errors"
	"image/color"
	"testing"
	"time"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/hostapp/input"
)

func TestNew_RequiresWindowAndDevice(t *testing.T) {
	log := &callLog{}
	if _, err := New(DefaultConfig(), Deps{Device: &mockDevice{log: log}}); !errors.Is(err, ErrNoWindow) {
		t.Errorf("New without window = %v, want ErrNoWindow", err)
	}
	if _, err := New(DefaultConfig(), Deps{Window: &mockWindow{log: log, w: 1, h: 1}}); !errors.Is(err, ErrNoDevice) {
		t.Errorf("New without device = %v, want ErrNoDevice", err)
	}
}

func TestNew_InvalidIconIsFatal(t *testing.T) {
	log := &callLog{}
	deps := Deps{
		Window: &mockWindow{log: log, w: 10, h: 10},
		Device: &mockDevice{log: log},
		Icon:   Icon{Data: []byte{1, 2, 3}, Width: 1, Height: 1},
	}
	if _, err := New(DefaultConfig(), deps); !errors.Is(err, ErrInvalidIcon) {
		t.Fatalf("New with malformed icon = %v, want ErrInvalidIcon", err)
	}
	// The failed New must not hold the instance slot.
	f := newFixture(t)
	if err := f.app.Run(nil); err != nil {
		t.Fatal(err)
	}
}

func TestNew_AppliesIcon(t *testing.T) {
	log := &callLog{}
	win := &mockWindow{log: log, w: 10, h: 10}
	app, err := New(DefaultConfig(), Deps{
		Window: win,
		Device: &mockDevice{log: log},
		Icon:   solidIcon(64, 64, color.NRGBA{G: 255, A: 255}),
	})
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(app.release)
	if len(win.icons) != 4 {
		t.Errorf("window got %d icon candidates, want 4", len(win.icons))
	}
}

func TestNew_InvalidConfig(t *testing.T) {
	log := &callLog{}
	cfg := DefaultConfig()
	cfg.SampleCount = 2
	_, err := New(cfg, Deps{Window: &mockWindow{log: log, w: 1, h: 1}, Device: &mockDevice{log: log}})
	if !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("New = %v, want ErrInvalidConfig", err)
	}
}

func TestNew_SurfaceConfigFailure(t *testing.T) {
	log := &callLog{}
	dev := &mockDevice{log: log, configErr: errors.New("unsupported format")}
	_, err := New(DefaultConfig(), Deps{Window: &mockWindow{log: log, w: 10, h: 10}, Device: dev})
	if !errors.Is(err, ErrSurfaceConfig) {
		t.Fatalf("New = %v, want ErrSurfaceConfig", err)
	}
	f := newFixture(t)
	if f.app == nil {
		t.Fatal("instance slot leaked by failed New")
	}
}

func TestNew_SingleInstance(t *testing.T) {
	f := newFixture(t)

	log := &callLog{}
	_, err := New(DefaultConfig(), Deps{Window: &mockWindow{log: log, w: 1, h: 1}, Device: &mockDevice{log: log}})
	if !errors.Is(err, ErrAppExists) {
		t.Fatalf("second New = %v, want ErrAppExists", err)
	}

	if err := f.app.Run(nil); err != nil {
		t.Fatal(err)
	}
	app, err := New(DefaultConfig(), Deps{Window: &mockWindow{log: log, w: 1, h: 1}, Device: &mockDevice{log: log}})
	if err != nil {
		t.Fatalf("New after release = %v", err)
	}
	app.release()
}

func TestNew_MinimizedWindowStartsSuspended(t *testing.T) {
	log := &callLog{}
	dev := &mockDevice{log: log}
	app, err := New(DefaultConfig(), Deps{Window: &mockWindow{log: log, w: 0, h: 0}, Device: dev})
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(app.release)
	if !app.suspended || len(dev.configured) != 0 {
		t.Errorf("suspended=%v configured=%d, want suspended and unconfigured", app.suspended, len(dev.configured))
	}
}

func TestApp_Accessors(t *testing.T) {
	f := newFixture(t)
	f.device.features = gputypes.Features(gputypes.FeatureTextureCompressionBC)
	app := f.app

	if got := app.WindowSize(); got != (WindowSize{640, 480}) {
		t.Errorf("WindowSize = %v", got)
	}
	if w, h := app.Size(); w != 640 || h != 480 {
		t.Errorf("Size = %d,%d", w, h)
	}

	app.SetWindowTitle("Renamed")
	if got := app.WindowTitle(); got != "Renamed" {
		t.Errorf("WindowTitle = %q", got)
	}

	if got := app.Backend(); got != BackendVulkan {
		t.Errorf("Backend = %v", got)
	}
	if got := app.BackendString(); got != "Vulkan" {
		t.Errorf("BackendString = %q", got)
	}

	if !app.DxtSupported() {
		t.Error("DxtSupported = false with BC feature")
	}
	if app.TextureCompressionSupported(CompressionASTC) {
		t.Error("ASTC reported without the feature")
	}

	app.SetFullscreen(true)
	if !app.IsFullscreen() || !f.window.fullscreen {
		t.Error("SetFullscreen(true) not applied")
	}

	args := app.Args()
	if len(args) != 2 || args[0] != "--level" || args[1] != "1" {
		t.Errorf("Args = %v, want verbatim [--level 1]", args)
	}

	if app.ScaleFactor() != 2 {
		t.Errorf("ScaleFactor = %v", app.ScaleFactor())
	}
	if app.SurfaceFormat() != gputypes.TextureFormatBGRA8Unorm {
		t.Errorf("SurfaceFormat = %v", app.SurfaceFormat())
	}
	if app.AdapterInfo().Name != "mock adapter" {
		t.Errorf("AdapterInfo = %+v", app.AdapterInfo())
	}
	if app.Device() != "device" || app.Queue() != "queue" || app.Adapter() != "adapter" {
		t.Error("device provider handles not forwarded")
	}
}

func TestApp_Controllers(t *testing.T) {
	f := newFixture(t)
	c := f.app.Controllers()
	if c.PlayerIndex(1) != 11 || !c.IsGameCube(1) || !c.HasRumble(1) || c.Name(1) != "pad" {
		t.Error("controller queries not forwarded to the input source")
	}
	if err := c.Rumble(1, 100, 100, time.Second); err == nil {
		t.Error("Rumble error not forwarded")
	}
}

func TestApp_ControllersWithoutSupport(t *testing.T) {
	log := &callLog{}
	app, err := New(DefaultConfig(), Deps{
		Window: &mockWindow{log: log, w: 1, h: 1},
		Device: &mockDevice{log: log},
		Input:  plainSource{},
	})
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(app.release)
	if _, ok := app.Controllers().(input.Null); !ok {
		t.Errorf("Controllers() = %T, want input.Null", app.Controllers())
	}
}

type plainSource struct{}

func (plainSource) Poll(input.Sink) input.PollResult { return input.Idle }
func (plainSource) Close() error                     { return nil }

func TestApp_AccessorsPanicAfterRelease(t *testing.T) {
	f := newFixture(t)
	if err := f.app.Run(f.delegate()); err != nil {
		t.Fatal(err)
	}

	app := f.app
	accessors := map[string]func(){
		"WindowSize":     func() { app.WindowSize() },
		"WindowTitle":    func() { app.WindowTitle() },
		"SetWindowTitle": func() { app.SetWindowTitle("x") },
		"Backend":        func() { app.Backend() },
		"BackendString":  func() { app.BackendString() },
		"DxtSupported":   func() { app.DxtSupported() },
		"SetFullscreen":  func() { app.SetFullscreen(true) },
		"Args":           func() { app.Args() },
		"Scene":          func() { app.Scene() },
		"Controllers":    func() { app.Controllers() },
		"Exit":           func() { app.Exit() },
		"Config":         func() { app.Config() },
		"IsFullscreen":   func() { app.IsFullscreen() },
	}
	for name, call := range accessors {
		t.Run(name, func(t *testing.T) {
			defer func() {
				r := recover()
				err, ok := r.(error)
				if !ok || !errors.Is(err, ErrAppReleased) {
					t.Errorf("%s after release: recovered %v, want ErrAppReleased", name, r)
				}
			}()
			call()
		})
	}
}
