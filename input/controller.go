package input

import "fmt"

// Button is a game controller button, using the standard gamepad layout.
type Button uint8

const (
	ButtonSouth Button = iota // A on Xbox layouts
	ButtonEast                // B
	ButtonWest                // X
	ButtonNorth               // Y
	ButtonBack
	ButtonGuide
	ButtonStart
	ButtonLeftStick
	ButtonRightStick
	ButtonLeftShoulder
	ButtonRightShoulder
	ButtonDPadUp
	ButtonDPadDown
	ButtonDPadLeft
	ButtonDPadRight
	ButtonOther
)

var buttonNames = [...]string{
	ButtonSouth:         "South",
	ButtonEast:          "East",
	ButtonWest:          "West",
	ButtonNorth:         "North",
	ButtonBack:          "Back",
	ButtonGuide:         "Guide",
	ButtonStart:         "Start",
	ButtonLeftStick:     "LeftStick",
	ButtonRightStick:    "RightStick",
	ButtonLeftShoulder:  "LeftShoulder",
	ButtonRightShoulder: "RightShoulder",
	ButtonDPadUp:        "DPadUp",
	ButtonDPadDown:      "DPadDown",
	ButtonDPadLeft:      "DPadLeft",
	ButtonDPadRight:     "DPadRight",
	ButtonOther:         "Other",
}

func (b Button) String() string {
	if int(b) < len(buttonNames) {
		return buttonNames[b]
	}
	return fmt.Sprintf("Button(%d)", uint8(b))
}

// Axis is a game controller axis.
type Axis uint8

const (
	AxisLeftX Axis = iota
	AxisLeftY
	AxisRightX
	AxisRightY
	AxisTriggerLeft
	AxisTriggerRight
	AxisOther
)

var axisNames = [...]string{
	AxisLeftX:        "LeftX",
	AxisLeftY:        "LeftY",
	AxisRightX:       "RightX",
	AxisRightY:       "RightY",
	AxisTriggerLeft:  "TriggerLeft",
	AxisTriggerRight: "TriggerRight",
	AxisOther:        "Other",
}

func (a Axis) String() string {
	if int(a) < len(axisNames) {
		return axisNames[a]
	}
	return fmt.Sprintf("Axis(%d)", uint8(a))
}
