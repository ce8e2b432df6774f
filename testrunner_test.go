package willowxr

import (
	"math"
	"strings"
	"testing"
)

func TestLoadTestScript(t *testing.T) {
	data := []byte(`{
		"steps": [
			{"action": "pose", "hand": "right", "position": [0, 1, -0.5]},
			{"action": "press", "button": 0},
			{"action": "move", "position": [0.2, 1, -0.5], "frames": 10},
			{"action": "turn", "axis": "z", "degrees": 45, "frames": 3},
			{"action": "wait", "frames": 3}
		]
	}`)

	runner, err := LoadTestScript(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(runner.steps) != 5 {
		t.Fatalf("expected 5 steps, got %d", len(runner.steps))
	}
	if runner.steps[0].Action != "pose" || runner.steps[0].Position != [3]float64{0, 1, -0.5} {
		t.Error("step 0 mismatch")
	}
	if runner.steps[2].Action != "move" || runner.steps[2].Frames != 10 {
		t.Error("step 2 mismatch")
	}
	if runner.steps[3].Axis != "z" || runner.steps[3].Degrees != 45 {
		t.Error("step 3 mismatch")
	}
}

func TestLoadTestScript_Invalid(t *testing.T) {
	_, err := LoadTestScript([]byte(`not json`))
	if err == nil {
		t.Error("expected error for invalid JSON")
	}
}

func TestLoadTestScript_Empty(t *testing.T) {
	_, err := LoadTestScript([]byte(`{"steps": []}`))
	if err == nil {
		t.Error("expected error for empty steps")
	}
}

func TestLoadTestScript_BadSteps(t *testing.T) {
	tests := []struct {
		name string
		step string
		want string
	}{
		{"unknown action", `{"action": "click"}`, "unknown action"},
		{"negative button", `{"action": "press", "button": -1}`, "negative button"},
		{"bad axis", `{"action": "turn", "axis": "w"}`, "unknown axis"},
		{"bad hand", `{"action": "pose", "hand": "middle"}`, "unknown hand"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadTestScript([]byte(`{"steps": [` + tt.step + `]}`))
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) || !strings.Contains(err.Error(), "step 0") {
				t.Errorf("error = %q, want step 0 and %q", err, tt.want)
			}
		})
	}
}

// runScript attaches a script to s and updates until it finishes.
func runScript(t *testing.T, s *Scene, script string) {
	t.Helper()
	runner, err := LoadTestScript([]byte(script))
	if err != nil {
		t.Fatal(err)
	}
	s.SetTestRunner(runner)
	for i := 0; i < 1000 && !runner.Done(); i++ {
		s.Update(FrameInput{})
	}
	if !runner.Done() {
		t.Fatal("script did not finish")
	}
}

func TestRunnerStep_Wait(t *testing.T) {
	s := NewScene()
	runner, err := LoadTestScript([]byte(`{"steps": [
		{"action": "wait", "frames": 3},
		{"action": "press", "button": 0}
	]}`))
	if err != nil {
		t.Fatal(err)
	}

	// Frames 1-3: the wait holds the scripted input.
	for i := 0; i < 3; i++ {
		runner.step(s)
		if runner.Done() {
			t.Fatalf("should not be done during wait (frame %d)", i+1)
		}
		if _, ok := s.popInjected(); !ok {
			t.Fatalf("frame %d should inject input", i+1)
		}
	}

	// Frame 4: press runs and the script finishes.
	runner.step(s)
	if !runner.Done() {
		t.Error("runner should be done after the press step")
	}
	in, ok := s.popInjected()
	if !ok || !in.RightButtons.At(0).Pressed {
		t.Errorf("final frame should hold the button: %+v", in)
	}
}

func TestRunnerStep_MoveWaitsForQueue(t *testing.T) {
	s := NewScene()
	runner, err := LoadTestScript([]byte(`{"steps": [
		{"action": "move", "position": [1, 0, 0], "frames": 4},
		{"action": "press", "button": 0}
	]}`))
	if err != nil {
		t.Fatal(err)
	}

	runner.step(s)
	if len(s.injectQueue) != 4 {
		t.Fatalf("expected 4 queued frames for move, got %d", len(s.injectQueue))
	}
	// Step again; should NOT advance because the inject queue is not drained.
	runner.step(s)
	if len(s.injectQueue) != 4 || runner.Done() {
		t.Error("runner should wait for the sweep to drain")
	}
}

func TestScriptTranslatesProp(t *testing.T) {
	s := NewSceneWithConfig(uncalibrated())
	prop := s.Root().Add("prop")
	prop.Add("box").ScaleUniform(0.5)

	runScript(t, s, `{"steps": [
		{"action": "pose", "position": [0, 0, 0]},
		{"action": "press", "button": 0},
		{"action": "wait", "frames": 1},
		{"action": "move", "position": [0, 0.5, 0], "frames": 5},
		{"action": "release", "button": 0}
	]}`)

	assertVec(t, "prop", prop.WorldPosition(), Vec3{0, 0.5, 0})
	if s.Session().Mode != ModeIdle {
		t.Errorf("mode = %v, want idle after release", s.Session().Mode)
	}
}

func TestScriptRotatesProp(t *testing.T) {
	s := NewSceneWithConfig(uncalibrated())
	box := s.Root().Add("prop").Add("box").ScaleUniform(0.5)

	runScript(t, s, `{"steps": [
		{"action": "press", "button": 1},
		{"action": "wait", "frames": 1},
		{"action": "turn", "axis": "z", "degrees": 30, "frames": 3},
		{"action": "release", "button": 1}
	]}`)

	want := Compose(RotateAxis(AxisZ, 30*math.Pi/180), Scale(Vec3{0.5, 0.5, 0.5}))
	assertMatrix(t, "box", box.LocalTransform(), want)
}

func TestScriptPlayMode(t *testing.T) {
	s := NewScene()
	runScript(t, s, `{"steps": [{"action": "play", "on": true}]}`)
	if !s.PlayMode() {
		t.Error("play step should enable play mode")
	}

	runScript(t, s, `{"steps": [{"action": "play", "on": false}]}`)
	if s.PlayMode() {
		t.Error("play step should disable play mode")
	}
}

func TestScriptPlayModeWithoutButton(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Profile = ProfileWebXR
	s := NewSceneWithConfig(cfg)
	runScript(t, s, `{"steps": [{"action": "play", "on": true}]}`)
	if !s.PlayMode() {
		t.Error("play step should enable play mode directly")
	}
}

func TestScriptTouch(t *testing.T) {
	s := NewScene()
	runScript(t, s, `{"steps": [
		{"action": "touch", "hand": "left", "button": 2},
		{"action": "untouch", "hand": "left", "button": 2},
		{"action": "touch", "hand": "left", "button": 1}
	]}`)
	b := s.LastInput().LeftButtons
	if b.At(2).Touched || !b.At(1).Touched {
		t.Errorf("left buttons = %+v", b)
	}
}
