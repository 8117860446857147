//go:build !(windows && cgo)

package main

import (
	"github.com/gogpu/hostapp"
	"github.com/gogpu/hostapp/overlay"
)

// statsInterval is the time between stats reports, in seconds.
const statsInterval = 5

// statsWindow logs the stats the overlay would show. Builds without cgo
// have no UI overlay.
func (d *demo) statsWindow() {
	if d.elapsed-d.lastStats < statsInterval {
		return
	}
	d.lastStats = d.elapsed
	hostapp.Logger().Info("demo: stats",
		"backend", d.app.BackendString(),
		"window", d.size,
		"fps", d.fps.rate,
		"controllers", len(d.pads))
}

func overlayWantsKeyboard(overlay.Overlay) bool { return false }
