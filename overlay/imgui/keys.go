//go:build windows && cgo

package imgui

import (
	imgui "github.com/inkyblackness/imgui-go/v4"

	"github.com/gogpu/gpucontext"
)

// keysDown is the size of the ImGui KeysDown array.
const keysDown = 512

// navKeys are the keys ImGui needs to know for text editing and
// navigation.
var navKeys = map[int]gpucontext.Key{
	imgui.KeyTab:        gpucontext.KeyTab,
	imgui.KeyLeftArrow:  gpucontext.KeyLeft,
	imgui.KeyRightArrow: gpucontext.KeyRight,
	imgui.KeyUpArrow:    gpucontext.KeyUp,
	imgui.KeyDownArrow:  gpucontext.KeyDown,
	imgui.KeyPageUp:     gpucontext.KeyPageUp,
	imgui.KeyPageDown:   gpucontext.KeyPageDown,
	imgui.KeyHome:       gpucontext.KeyHome,
	imgui.KeyEnd:        gpucontext.KeyEnd,
	imgui.KeyInsert:     gpucontext.KeyInsert,
	imgui.KeyDelete:     gpucontext.KeyDelete,
	imgui.KeyBackspace:  gpucontext.KeyBackspace,
	imgui.KeySpace:      gpucontext.KeySpace,
	imgui.KeyEnter:      gpucontext.KeyEnter,
	imgui.KeyEscape:     gpucontext.KeyEscape,
	imgui.KeyA:          gpucontext.KeyA,
	imgui.KeyC:          gpucontext.KeyC,
	imgui.KeyV:          gpucontext.KeyV,
	imgui.KeyX:          gpucontext.KeyX,
	imgui.KeyY:          gpucontext.KeyY,
	imgui.KeyZ:          gpucontext.KeyZ,
}

func setKeyMap(io imgui.IO) {
	for imguiKey, key := range navKeys {
		io.KeyMap(imguiKey, int(key))
	}
}

// keyIndex returns the KeysDown slot of key.
func keyIndex(key gpucontext.Key) (int, bool) {
	if key == gpucontext.KeyUnknown || int(key) >= keysDown {
		return 0, false
	}
	return int(key), true
}

// mouseIndex returns the ImGui mouse button index of b.
func mouseIndex(b gpucontext.MouseButton) (int, bool) {
	switch b {
	case gpucontext.MouseButtonLeft:
		return 0, true
	case gpucontext.MouseButtonRight:
		return 1, true
	case gpucontext.MouseButtonMiddle:
		return 2, true
	case gpucontext.MouseButton4:
		return 3, true
	case gpucontext.MouseButton5:
		return 4, true
	default:
		return 0, false
	}
}
