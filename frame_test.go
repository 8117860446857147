package hostapp

import (
	"errors"
	"testing"
	"time"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/hostapp/gpu"
	"github.com/gogpu/hostapp/platform"
)

func TestFrameTiming(t *testing.T) {
	var ft frameTiming
	t0 := time.Unix(100, 0)

	if dt := ft.advance(t0); dt != defaultFrameDelta {
		t.Errorf("first dt = %v, want %v", dt, defaultFrameDelta)
	}
	if dt := ft.advance(t0.Add(25 * time.Millisecond)); dt != 25*time.Millisecond {
		t.Errorf("second dt = %v, want 25ms", dt)
	}
	if dt := ft.advance(t0.Add(35 * time.Millisecond)); dt != 10*time.Millisecond {
		t.Errorf("third dt = %v, want 10ms", dt)
	}
}

func TestRedraw_DeltaTime(t *testing.T) {
	f := newFixture(t, cycle(), cycle())
	clock := time.Unix(0, 0)
	f.app.now = func() time.Time {
		clock = clock.Add(20 * time.Millisecond)
		return clock
	}
	d := f.delegate()

	if err := f.app.Run(d); err != nil {
		t.Fatal(err)
	}

	if len(d.dts) != 2 {
		t.Fatalf("idle called %d times, want 2", len(d.dts))
	}
	if got := d.dts[0]; got < 0.0166 || got > 0.0167 {
		t.Errorf("first dt = %v, want 1/60", got)
	}
	if got := d.dts[1]; got < 0.0199 || got > 0.0201 {
		t.Errorf("second dt = %v, want 0.02", got)
	}
	if len(f.overlay.dts) != 2 || f.overlay.dts[1] != 20*time.Millisecond {
		t.Errorf("overlay dts = %v", f.overlay.dts)
	}
}

func TestRedraw_PassWiring(t *testing.T) {
	f := newFixture(t, cycle())
	d := f.delegate()

	if err := f.app.Run(d); err != nil {
		t.Fatal(err)
	}

	if len(f.device.passes) != 1 {
		t.Fatalf("render passes = %d, want exactly 1", len(f.device.passes))
	}
	desc := f.device.passes[0]
	targets := f.device.targets[0]
	surface := f.device.frames[0].view

	if desc.Color.View != targets.Color {
		t.Errorf("color attachment = %v, want MSAA target", desc.Color.View)
	}
	if desc.Color.ResolveTarget != surface {
		t.Errorf("resolve target = %v, want surface texture", desc.Color.ResolveTarget)
	}
	if desc.Color.ClearValue != gputypes.ColorBlack || desc.Color.LoadOp != gputypes.LoadOpClear {
		t.Errorf("color clear = %v %+v, want Clear to black", desc.Color.LoadOp, desc.Color.ClearValue)
	}
	if desc.Depth == nil || desc.Depth.View != targets.Depth || desc.Depth.DepthClearValue != 1.0 {
		t.Errorf("depth attachment = %+v, want depth target cleared to 1.0", desc.Depth)
	}

	// Scene first, overlay on top, all inside the one pass.
	assertCalls(t, f.log.only("gpu.BeginRenderPass", "scene.", "ui.Render", "gpu.End"), []string{
		"gpu.BeginRenderPass",
		"scene.draw",
		"ui.Render",
		"gpu.End",
	})
	if f.app.scene != nil && f.app.scene.Len() != 0 {
		t.Errorf("scene queue not drained: %d commands", f.app.scene.Len())
	}
}

func TestRedraw_SingleSample(t *testing.T) {
	log := &callLog{}
	win := &mockWindow{log: log, w: 100, h: 100, cycles: [][]platform.Event{{}}}
	dev := &mockDevice{log: log}
	cfg := DefaultConfig()
	cfg.SampleCount = 1

	app, err := New(cfg, Deps{Window: win, Device: dev})
	if err != nil {
		t.Fatal(err)
	}
	if err := app.Run(&recordingDelegate{log: log}); err != nil {
		t.Fatal(err)
	}

	desc := dev.passes[0]
	if desc.Color.View != dev.frames[0].view || desc.Color.ResolveTarget != nil {
		t.Errorf("single-sample pass: view=%v resolve=%v, want surface and no resolve", desc.Color.View, desc.Color.ResolveTarget)
	}
}

func TestRedraw_EncodeFailureDropsFrame(t *testing.T) {
	f := newFixture(t, cycle())
	f.device.endErr = errors.New("device lost")
	d := f.delegate()

	if err := f.app.Run(d); err != nil {
		t.Fatal(err)
	}

	assertCalls(t, f.log.host(), []string{"launched", "resized 640x480", "idle", "draw", "exiting"})
	if got := f.log.only("gpu.Submit", "gpu.Present"); len(got) != 0 {
		t.Errorf("partial frame submitted: %v", got)
	}
	if !f.device.frames[0].discarded {
		t.Error("acquired frame was not discarded")
	}
}

func TestRedraw_SceneErrorDropsFrame(t *testing.T) {
	f := newFixture(t, cycle())
	d := &sceneFailDelegate{recordingDelegate: recordingDelegate{log: f.log, app: f.app}}

	if err := f.app.Run(d); err != nil {
		t.Fatal(err)
	}
	if got := f.log.only("gpu.Present"); len(got) != 0 {
		t.Errorf("frame presented after scene error: %v", got)
	}
	assertCalls(t, f.log.only("gpu.Discard"), []string{"gpu.Discard"})
}

type sceneFailDelegate struct {
	recordingDelegate
}

func (d *sceneFailDelegate) OnAppDraw() {
	d.log.add("draw")
	d.app.Scene().Push(func(gpu.RenderPass) error { return errors.New("bad pipeline") })
}
