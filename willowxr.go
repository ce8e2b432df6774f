package willowxr

import "github.com/go-gl/mathgl/mgl64"

// Vec3 is a 3D vector used for positions, offsets, directions and scales
// throughout the API.
type Vec3 = mgl64.Vec3

// Mat4 is a column-major 4x4 affine matrix. Rotation and scale live in the
// upper 3x3 block and translation in elements 12..14.
type Mat4 = mgl64.Mat4

// Axis names one of the three principal axes of a frame.
type Axis uint8

const (
	AxisX Axis = iota // first column of a frame
	AxisY             // second column of a frame
	AxisZ             // third column of a frame
)

// String returns "X", "Y" or "Z".
func (a Axis) String() string {
	switch a {
	case AxisX:
		return "X"
	case AxisY:
		return "Y"
	case AxisZ:
		return "Z"
	default:
		return "?"
	}
}

// Hand identifies a tracked controller.
type Hand uint8

const (
	HandLeft  Hand = iota // left controller
	HandRight             // right controller
)

// String returns "left" or "right".
func (h Hand) String() string {
	if h == HandLeft {
		return "left"
	}
	return "right"
}

// Mode is the manipulation state of a Session.
type Mode uint8

const (
	ModeIdle        Mode = iota // no trigger held
	ModeTranslating             // move trigger held
	ModeRotating                // rotate trigger held, move trigger released
)

// String returns a lowercase name for the mode.
func (m Mode) String() string {
	switch m {
	case ModeTranslating:
		return "translating"
	case ModeRotating:
		return "rotating"
	default:
		return "idle"
	}
}

// RotationPolicy selects how a held rotate trigger turns the target.
type RotationPolicy uint8

const (
	// PolicyContinuousAim applies the frame-to-frame change of the
	// controller's aimed up axis to the target.
	PolicyContinuousAim RotationPolicy = iota
	// PolicyDiscreteSnap turns the target in fixed steps about the
	// controller axis that changed least, once the largest change passes
	// a threshold.
	PolicyDiscreteSnap
	// PolicyFollow places the target at a fixed offset in front of the
	// controller each frame.
	PolicyFollow
)

// EventType identifies a kind of interaction event.
type EventType uint8

const (
	EventGrab         EventType = iota // a manipulation target resolved
	EventRelease                       // a trigger released a resolved target
	EventTranslate                     // a target root moved this frame
	EventRotate                        // a target root turned this frame
	EventStrike                        // an implement tip hit a leaf
	EventPlayModeOn                    // implements were created
	EventPlayModeOff                   // implements were removed
)

// String returns a lowercase name for the event type.
func (e EventType) String() string {
	switch e {
	case EventGrab:
		return "grab"
	case EventRelease:
		return "release"
	case EventTranslate:
		return "translate"
	case EventRotate:
		return "rotate"
	case EventStrike:
		return "strike"
	case EventPlayModeOn:
		return "play-on"
	case EventPlayModeOff:
		return "play-off"
	default:
		return "unknown"
	}
}
