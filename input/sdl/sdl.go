//go:build cgo

// Package sdl is the SDL2 game-controller input source.
//
// Importing the package registers the source with input.Sources under
// input.SourceSDL. SDL is initialized with only the game controller and
// event subsystems; windowing stays with the platform package. An SDL quit
// event (window manager or SIGINT) ends the run loop.
package sdl

import (
	"fmt"
	"time"

	"github.com/gogpu/hostapp"
	"github.com/gogpu/hostapp/input"
	"github.com/veandco/go-sdl2/sdl"
)

// GameCube adapter USB ids.
const (
	gameCubeVendor  = 0x057E
	gameCubeProduct = 0x0337
)

const subsystems = sdl.INIT_GAMECONTROLLER | sdl.INIT_EVENTS

func init() {
	input.Sources.Register(input.SourceSDL, func() input.Source {
		src, err := Open()
		if err != nil {
			hostapp.Logger().Warn("sdl: controller input unavailable", "err", err)
			return input.Null{}
		}
		return src
	})
}

type pad struct {
	ctrl     *sdl.GameController
	name     string
	gameCube bool
	rumble   bool
}

// Source polls SDL for controller events.
type Source struct {
	pads   map[int]*pad
	opened bool
}

var (
	_ input.Source      = (*Source)(nil)
	_ input.Controllers = (*Source)(nil)
)

// Open initializes the SDL controller subsystem. Controllers already
// plugged in are reported as added on the first Poll.
func Open() (*Source, error) {
	if err := sdl.InitSubSystem(subsystems); err != nil {
		return nil, fmt.Errorf("sdl: init: %w", err)
	}
	return &Source{pads: make(map[int]*pad), opened: true}, nil
}

// Poll implements input.Source.
func (s *Source) Poll(sink input.Sink) input.PollResult {
	result := input.Idle
	for ev := sdl.PollEvent(); ev != nil; ev = sdl.PollEvent() {
		switch r := s.handle(ev, sink); r {
		case input.Quit:
			return input.Quit
		case input.Handled:
			result = input.Handled
		}
	}
	return result
}

func (s *Source) handle(ev sdl.Event, sink input.Sink) input.PollResult {
	switch e := ev.(type) {
	case *sdl.QuitEvent:
		return input.Quit
	case *sdl.ControllerDeviceEvent:
		switch e.Type {
		case sdl.CONTROLLERDEVICEADDED:
			// Which is the device index here, not an instance id.
			if id, ok := s.open(int(e.Which)); ok {
				sink.ControllerAdded(id)
			}
		case sdl.CONTROLLERDEVICEREMOVED:
			id := int(e.Which)
			if s.close(id) {
				sink.ControllerRemoved(id)
			}
		default:
			return input.Idle
		}
		return input.Handled
	case *sdl.ControllerButtonEvent:
		sink.ControllerButton(int(e.Which), mapButton(sdl.GameControllerButton(e.Button)), e.State == sdl.PRESSED)
		return input.Handled
	case *sdl.ControllerAxisEvent:
		sink.ControllerAxis(int(e.Which), mapAxis(sdl.GameControllerAxis(e.Axis)), e.Value)
		return input.Handled
	}
	return input.Idle
}

func (s *Source) open(index int) (int, bool) {
	ctrl := sdl.GameControllerOpen(index)
	if ctrl == nil {
		hostapp.Logger().Warn("sdl: open controller", "index", index, "err", sdl.GetError())
		return 0, false
	}
	id := int(ctrl.Joystick().InstanceID())
	if _, dup := s.pads[id]; dup {
		ctrl.Close()
		return 0, false
	}
	p := &pad{
		ctrl:     ctrl,
		name:     ctrl.Name(),
		gameCube: isGameCube(ctrl.Vendor(), ctrl.Product()),
		rumble:   ctrl.Rumble(0, 0, 0) == nil,
	}
	s.pads[id] = p
	hostapp.Logger().Debug("sdl: controller added", "id", id, "name", p.name, "gamecube", p.gameCube, "rumble", p.rumble)
	return id, true
}

func (s *Source) close(id int) bool {
	p, ok := s.pads[id]
	if !ok {
		return false
	}
	delete(s.pads, id)
	if p.ctrl != nil {
		p.ctrl.Close()
	}
	hostapp.Logger().Debug("sdl: controller removed", "id", id)
	return true
}

// Close closes all controllers and shuts the SDL subsystems down.
func (s *Source) Close() error {
	for id := range s.pads {
		s.close(id)
	}
	if s.opened {
		s.opened = false
		sdl.QuitSubSystem(subsystems)
	}
	return nil
}

// PlayerIndex implements input.Controllers. Unknown controllers report -1.
func (s *Source) PlayerIndex(id int) int {
	p, ok := s.pads[id]
	if !ok || p.ctrl == nil {
		return -1
	}
	return p.ctrl.PlayerIndex()
}

// SetPlayerIndex implements input.Controllers.
func (s *Source) SetPlayerIndex(id, index int) {
	if p, ok := s.pads[id]; ok && p.ctrl != nil {
		p.ctrl.SetPlayerIndex(index)
	}
}

// IsGameCube implements input.Controllers.
func (s *Source) IsGameCube(id int) bool {
	p, ok := s.pads[id]
	return ok && p.gameCube
}

// HasRumble implements input.Controllers.
func (s *Source) HasRumble(id int) bool {
	p, ok := s.pads[id]
	return ok && p.rumble
}

// Rumble implements input.Controllers.
func (s *Source) Rumble(id int, low, high uint16, d time.Duration) error {
	p, ok := s.pads[id]
	if !ok || p.ctrl == nil {
		return fmt.Errorf("sdl: no controller %d", id)
	}
	if !p.rumble {
		return fmt.Errorf("sdl: controller %d has no rumble motors", id)
	}
	return p.ctrl.Rumble(low, high, uint32(d.Milliseconds()))
}

// Name implements input.Controllers.
func (s *Source) Name(id int) string {
	if p, ok := s.pads[id]; ok {
		return p.name
	}
	return ""
}

func isGameCube(vendor, product int) bool {
	return vendor == gameCubeVendor && product == gameCubeProduct
}

func mapButton(b sdl.GameControllerButton) input.Button {
	switch b {
	case sdl.CONTROLLER_BUTTON_A:
		return input.ButtonSouth
	case sdl.CONTROLLER_BUTTON_B:
		return input.ButtonEast
	case sdl.CONTROLLER_BUTTON_X:
		return input.ButtonWest
	case sdl.CONTROLLER_BUTTON_Y:
		return input.ButtonNorth
	case sdl.CONTROLLER_BUTTON_BACK:
		return input.ButtonBack
	case sdl.CONTROLLER_BUTTON_GUIDE:
		return input.ButtonGuide
	case sdl.CONTROLLER_BUTTON_START:
		return input.ButtonStart
	case sdl.CONTROLLER_BUTTON_LEFTSTICK:
		return input.ButtonLeftStick
	case sdl.CONTROLLER_BUTTON_RIGHTSTICK:
		return input.ButtonRightStick
	case sdl.CONTROLLER_BUTTON_LEFTSHOULDER:
		return input.ButtonLeftShoulder
	case sdl.CONTROLLER_BUTTON_RIGHTSHOULDER:
		return input.ButtonRightShoulder
	case sdl.CONTROLLER_BUTTON_DPAD_UP:
		return input.ButtonDPadUp
	case sdl.CONTROLLER_BUTTON_DPAD_DOWN:
		return input.ButtonDPadDown
	case sdl.CONTROLLER_BUTTON_DPAD_LEFT:
		return input.ButtonDPadLeft
	case sdl.CONTROLLER_BUTTON_DPAD_RIGHT:
		return input.ButtonDPadRight
	default:
		return input.ButtonOther
	}
}

func mapAxis(a sdl.GameControllerAxis) input.Axis {
	switch a {
	case sdl.CONTROLLER_AXIS_LEFTX:
		return input.AxisLeftX
	case sdl.CONTROLLER_AXIS_LEFTY:
		return input.AxisLeftY
	case sdl.CONTROLLER_AXIS_RIGHTX:
		return input.AxisRightX
	case sdl.CONTROLLER_AXIS_RIGHTY:
		return input.AxisRightY
	case sdl.CONTROLLER_AXIS_TRIGGERLEFT:
		return input.AxisTriggerLeft
	case sdl.CONTROLLER_AXIS_TRIGGERRIGHT:
		return input.AxisTriggerRight
	default:
		return input.AxisOther
	}
}
