//go:build windows && cgo

package main

import (
	"fmt"

	imgui "github.com/inkyblackness/imgui-go/v4"

	"github.com/gogpu/hostapp/overlay"
	ui "github.com/gogpu/hostapp/overlay/imgui"
)

func (d *demo) statsWindow() {
	imgui.SetNextWindowPos(imgui.Vec2{X: 10, Y: 10})
	if imgui.Begin("hostapp") {
		imgui.Text("Backend: " + d.app.BackendString())
		imgui.Text("Adapter: " + d.app.AdapterInfo().Name)
		imgui.Text(fmt.Sprintf("Window: %dx%d", d.size.Width, d.size.Height))
		imgui.Text(fmt.Sprintf("FPS: %.1f", d.fps.rate))
		imgui.Checkbox("Animate background", &d.animate)
		if imgui.Button("Toggle fullscreen") {
			d.app.SetFullscreen(!d.app.IsFullscreen())
		}
		imgui.Separator()
		if len(d.pads) == 0 {
			imgui.Text("No controllers")
		}
		for id, name := range d.pads {
			imgui.Text(fmt.Sprintf("#%d %s (player %d)", id, name, d.app.Controllers().PlayerIndex(id)))
		}
	}
	imgui.End()
}

// overlayWantsKeyboard reports whether the UI has keyboard focus.
func overlayWantsKeyboard(o overlay.Overlay) bool {
	u, ok := o.(*ui.Overlay)
	if !ok {
		return false
	}
	_, keyboard := u.WantsInput()
	return keyboard
}
