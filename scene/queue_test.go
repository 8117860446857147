package scene

import (
	"errors"
	"testing"

	"github.com/gogpu/hostapp/gpu"
)

type fakePass struct{ draws []string }

func (p *fakePass) End() error { return nil }

func draw(name string) Command {
	return func(pass gpu.RenderPass) error {
		p := pass.(*fakePass)
		p.draws = append(p.draws, name)
		return nil
	}
}

func TestQueue_RenderSceneOrder(t *testing.T) {
	q := NewQueue()
	q.Push(draw("background"))
	q.Push(nil)
	q.Push(draw("sprites"))

	if q.Len() != 2 {
		t.Fatalf("Len = %d, want 2", q.Len())
	}

	pass := &fakePass{}
	if err := q.RenderScene(pass); err != nil {
		t.Fatalf("RenderScene: %v", err)
	}
	if len(pass.draws) != 2 || pass.draws[0] != "background" || pass.draws[1] != "sprites" {
		t.Errorf("draws = %v, want [background sprites]", pass.draws)
	}
	if q.Len() != 0 {
		t.Errorf("Len after render = %d, want 0", q.Len())
	}
}

func TestQueue_RenderSceneJoinsErrors(t *testing.T) {
	errA := errors.New("a failed")
	errB := errors.New("b failed")

	q := NewQueue()
	q.Push(func(gpu.RenderPass) error { return errA })
	q.Push(draw("still runs"))
	q.Push(func(gpu.RenderPass) error { return errB })

	pass := &fakePass{}
	err := q.RenderScene(pass)
	if !errors.Is(err, errA) || !errors.Is(err, errB) {
		t.Errorf("RenderScene error = %v, want both errors", err)
	}
	if len(pass.draws) != 1 {
		t.Errorf("draws = %v, want the middle command to run", pass.draws)
	}
}

type sceneRendererFunc func(gpu.RenderPass) error

func (f sceneRendererFunc) RenderScene(p gpu.RenderPass) error { return f(p) }

func TestRenderer(t *testing.T) {
	called := false
	q := NewQueue()
	q.Push(Renderer(sceneRendererFunc(func(gpu.RenderPass) error {
		called = true
		return nil
	})))
	if err := q.RenderScene(&fakePass{}); err != nil {
		t.Fatal(err)
	}
	if !called {
		t.Error("wrapped renderer not called")
	}
}
