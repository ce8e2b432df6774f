package willowxr

import (
	"encoding/json"
	"fmt"
	"math"
)

// testStep represents a single action in a test script.
type testStep struct {
	Action   string     `json:"action"`
	Hand     string     `json:"hand,omitempty"`
	Button   int        `json:"button,omitempty"`
	Position [3]float64 `json:"position,omitempty"`
	Axis     string     `json:"axis,omitempty"`
	Degrees  float64    `json:"degrees,omitempty"`
	On       bool       `json:"on,omitempty"`
	Frames   int        `json:"frames,omitempty"`
}

// testScript is the top-level JSON structure for a test script.
type testScript struct {
	Steps []testStep `json:"steps"`
}

// TestRunner sequences scripted controller input across frames for
// automated interaction testing. Attach to a Scene via SetTestRunner.
//
// Actions:
//
//	pose    {"hand", "position"}           place a controller
//	move    {"hand", "position", "frames"} sweep a controller to a position
//	turn    {"hand", "axis", "degrees", "frames"} rotate a controller about its own axis
//	press   {"hand", "button"}             hold a button
//	release {"hand", "button"}             let go of a button
//	touch   {"hand", "button"}             set a button's touched flag
//	untouch {"hand", "button"}             clear a button's touched flag
//	play    {"on"}                         turn play mode on or off
//	wait    {"frames"}                     hold the current input
type TestRunner struct {
	steps     []testStep
	cursor    int
	waitCount int
	done      bool
	state     FrameInput
}

// LoadTestScript parses a JSON test script and returns a TestRunner ready
// to be attached to a Scene via SetTestRunner.
func LoadTestScript(jsonData []byte) (*TestRunner, error) {
	var script testScript
	if err := json.Unmarshal(jsonData, &script); err != nil {
		return nil, fmt.Errorf("parse test script: %w", err)
	}
	if len(script.Steps) == 0 {
		return nil, fmt.Errorf("parse test script: no steps")
	}
	for i, st := range script.Steps {
		if err := st.validate(); err != nil {
			return nil, fmt.Errorf("parse test script: step %d: %w", i, err)
		}
	}
	return &TestRunner{
		steps: script.Steps,
		state: FrameInput{Left: Identity, Right: Identity, Tracked: true},
	}, nil
}

func (st testStep) validate() error {
	switch st.Action {
	case "pose", "move", "play", "wait":
	case "press", "release", "touch", "untouch":
		if st.Button < 0 {
			return fmt.Errorf("%s: negative button %d", st.Action, st.Button)
		}
	case "turn":
		if _, err := parseAxis(st.Axis); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unknown action %q", st.Action)
	}
	if st.Hand != "" && st.Hand != "left" && st.Hand != "right" {
		return fmt.Errorf("%s: unknown hand %q", st.Action, st.Hand)
	}
	return nil
}

func parseAxis(s string) (Axis, error) {
	switch s {
	case "x", "X":
		return AxisX, nil
	case "y", "Y":
		return AxisY, nil
	case "z", "Z":
		return AxisZ, nil
	default:
		return 0, fmt.Errorf("unknown axis %q", s)
	}
}

// SetTestRunner attaches a TestRunner to the scene. The runner's step method
// is called at the start of every Scene.Update.
func (s *Scene) SetTestRunner(runner *TestRunner) {
	s.testRunner = runner
}

// Done reports whether all steps in the test script have been executed.
func (r *TestRunner) Done() bool {
	return r.done
}

// step advances the test runner by one frame. Instant actions (pose, press,
// release, touch, play) run back to back; move, turn and wait consume
// frames. Every frame of the script injects the scripted input.
func (r *TestRunner) step(s *Scene) {
	if r.done {
		return
	}
	// Wait for pending sweeps to drain before advancing.
	if len(s.injectQueue) > 0 {
		return
	}
	if r.waitCount > 0 {
		r.waitCount--
		s.InjectFrame(r.state)
		return
	}
	if r.cursor >= len(r.steps) {
		r.done = true
		return
	}

	for r.cursor < len(r.steps) {
		st := r.steps[r.cursor]
		r.cursor++
		hand := HandRight
		if st.Hand == "left" {
			hand = HandLeft
		}

		switch st.Action {
		case "pose":
			m := r.state.Pose(hand)
			m[12], m[13], m[14] = st.Position[0], st.Position[1], st.Position[2]
			r.state = withPose(r.state, hand, m)
		case "press", "release", "touch", "untouch":
			r.setButton(hand, st)
		case "play":
			// Tracked frames drive play mode from the profile's button,
			// so script it through the button when there is one.
			if pb := s.cfg.Profile.PlayButton; pb >= 0 {
				action := "untouch"
				if st.On {
					action = "touch"
				}
				r.setButton(manipulationHand, testStep{Action: action, Button: pb})
			} else {
				s.SetPlayMode(st.On)
			}
		case "move":
			from := r.state.Pose(hand)
			to := from
			to[12], to[13], to[14] = st.Position[0], st.Position[1], st.Position[2]
			s.InjectSweep(hand, from, to, st.Frames, r.state)
			r.state = withPose(r.state, hand, to)
			return
		case "turn":
			axis, _ := parseAxis(st.Axis)
			from := r.state.Pose(hand)
			rad := st.Degrees * math.Pi / 180
			s.InjectTurn(hand, from, axis, rad, st.Frames, r.state)
			r.state = withPose(r.state, hand, Compose(from, RotateAxis(axis, rad)))
			return
		case "wait":
			if st.Frames > 0 {
				r.waitCount = st.Frames - 1 // this frame counts as one
			}
			s.InjectFrame(r.state)
			return
		}
	}

	s.InjectFrame(r.state)
	if r.cursor >= len(r.steps) && r.waitCount == 0 {
		r.done = true
	}
}

// setButton applies a press/release/touch/untouch step to the scripted state.
func (r *TestRunner) setButton(hand Hand, st testStep) {
	buttons := r.state.ButtonsFor(hand)
	for len(buttons) <= st.Button {
		buttons = append(buttons, Button{})
	}
	b := &buttons[st.Button]
	switch st.Action {
	case "press":
		b.Pressed = true
	case "release":
		b.Pressed = false
	case "touch":
		b.Touched = true
	case "untouch":
		b.Touched = false
	}
	if hand == HandLeft {
		r.state.LeftButtons = buttons
	} else {
		r.state.RightButtons = buttons
	}
}
