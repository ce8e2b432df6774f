package willowxr

// Button is one sampled controller button. No debouncing is applied; callers
// that need edges compare consecutive frames themselves.
type Button struct {
	Pressed bool
	Touched bool
}

// Buttons is a per-hand button array as reported by the device. Indices are
// device-profile specific; see Profile.
type Buttons []Button

// At returns the button at index, or a released button when the index is
// outside the array.
func (b Buttons) At(index int) Button {
	if index < 0 || index >= len(b) {
		return Button{}
	}
	return b[index]
}

// FrameInput is everything the engine consumes from the device layer in one
// frame. Poses are world-space controller matrices before calibration.
type FrameInput struct {
	Left, Right               Mat4
	LeftButtons, RightButtons Buttons

	// Tracked is true when the device reported controller poses this frame.
	// Play mode is driven from buttons only while tracked.
	Tracked bool
}

// Pose returns the raw pose for a hand.
func (in FrameInput) Pose(h Hand) Mat4 {
	if h == HandLeft {
		return in.Left
	}
	return in.Right
}

// ButtonsFor returns the button array for a hand.
func (in FrameInput) ButtonsFor(h Hand) Buttons {
	if h == HandLeft {
		return in.LeftButtons
	}
	return in.RightButtons
}

// Profile maps logical triggers to device button indices. A negative index
// disables that trigger.
type Profile struct {
	Name         string `toml:"name"`
	MoveButton   int    `toml:"move_button" env:"MOVE_BUTTON"`
	RotateButton int    `toml:"rotate_button" env:"ROTATE_BUTTON"`
	PlayButton   int    `toml:"play_button" env:"PLAY_BUTTON"`
}

// ProfileVR is the default handheld VR layout: trigger moves, squeeze
// rotates, thumbstick touch enables play mode.
var ProfileVR = Profile{Name: "vr", MoveButton: 0, RotateButton: 1, PlayButton: 3}

// ProfileWebXR rotates with the select button instead of squeeze and has no
// play-mode button.
var ProfileWebXR = Profile{Name: "webxr", MoveButton: 0, RotateButton: 3, PlayButton: -1}

// move reports whether the move trigger is held in b.
func (p Profile) move(b Buttons) bool {
	return p.MoveButton >= 0 && b.At(p.MoveButton).Pressed
}

// rotate reports whether the rotate trigger is held in b.
func (p Profile) rotate(b Buttons) bool {
	return p.RotateButton >= 0 && b.At(p.RotateButton).Pressed
}

// play reports whether b asks for play mode. ok is false when the profile
// has no play button.
func (p Profile) play(b Buttons) (on, ok bool) {
	if p.PlayButton < 0 {
		return false, false
	}
	return b.At(p.PlayButton).Touched, true
}
