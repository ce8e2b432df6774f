package willowxr

import "time"

// manipulationHand is the controller that drives the manipulation session.
const manipulationHand = HandRight

// Scene is the top-level object that owns the node tree, the manipulation
// session, the implements, and the per-frame input plumbing.
type Scene struct {
	root  *Node
	cfg   Config
	store EntityStore
	debug bool

	session    Session
	play       bool
	implements [2]*Implement
	exclude    ExcludeSet

	handlers handlerRegistry
	frame    uint64

	// Scripted input
	injectQueue []FrameInput
	testRunner  *TestRunner
	last        FrameInput
}

// NewScene creates a scene with DefaultConfig and an empty root.
func NewScene() *Scene {
	return NewSceneWithConfig(DefaultConfig())
}

// NewSceneWithConfig creates a scene with the given configuration.
func NewSceneWithConfig(cfg Config) *Scene {
	s := &Scene{
		root:    NewNode("root"),
		cfg:     cfg,
		exclude: make(ExcludeSet),
	}
	if cfg.Debug {
		s.SetDebugMode(true)
	}
	return s
}

// Root returns the scene's root node. Its children are the props that
// manipulation moves as units.
func (s *Scene) Root() *Node {
	return s.root
}

// Config returns the scene's configuration.
func (s *Scene) Config() Config {
	return s.cfg
}

// SetConfig replaces the configuration. Active implements keep the geometry
// they were created with until play mode is next turned on.
func (s *Scene) SetConfig(cfg Config) {
	s.cfg = cfg
}

// Session returns the manipulation session. Callers may inspect it; Update
// is the only thing that should advance it.
func (s *Scene) Session() *Session {
	return &s.session
}

// Frame returns the number of updates run so far.
func (s *Scene) Frame() uint64 {
	return s.frame
}

// LastInput returns the input consumed by the most recent Update, after
// injected input replaced it if any was queued.
func (s *Scene) LastInput() FrameInput {
	return s.last
}

// Calibrated returns the pose for hand with its calibration offset applied.
func (s *Scene) Calibrated(in FrameInput, h Hand) Mat4 {
	return Compose(in.Pose(h), Translate(s.cfg.calibration(h)))
}

// Update runs one frame. Injected input, when queued, is consumed in place
// of in. The order is: calibrate poses, follow the play-mode button,
// manipulate (translate before rotate), then move implements and strike.
func (s *Scene) Update(in FrameInput) {
	var t0 time.Time
	if s.debug {
		t0 = time.Now()
	}
	s.frame++

	if s.testRunner != nil {
		s.testRunner.step(s)
	}
	if injected, ok := s.popInjected(); ok {
		in = injected
	}
	s.last = in

	poses := [2]Mat4{s.Calibrated(in, HandLeft), s.Calibrated(in, HandRight)}

	if in.Tracked {
		if on, ok := s.cfg.Profile.play(in.ButtonsFor(manipulationHand)); ok {
			s.SetPlayMode(on)
		}
	}

	var exclude ExcludeSet
	if s.cfg.SelfExclusion {
		exclude = s.exclude
	}
	buttons := in.ButtonsFor(manipulationHand)
	controller := poses[manipulationHand]
	res := s.session.Step(s.root,
		s.cfg.Profile.move(buttons),
		s.cfg.Profile.rotate(buttons),
		controller, exclude, s.cfg)
	s.handleStep(res, controller)

	strikes := 0
	if s.play {
		strikes = s.strike(poses)
	}

	if s.debug {
		s.debugLog(debugStats{
			updateTime: time.Since(t0),
			queries:    res.Queries,
			strikes:    strikes,
			mode:       res.Mode,
			target:     s.session.Target,
		})
	}
}

// handleStep turns a session step into callbacks and events.
func (s *Scene) handleStep(res StepResult, controller Mat4) {
	pos := Position(controller)
	if res.Released != nil {
		s.emit(InteractionEvent{
			Type:     EventRelease,
			Hand:     manipulationHand,
			RootID:   res.Released.ID,
			Position: pos,
		})
	}
	target := s.session.Target
	if res.Grabbed && target != nil {
		s.fireGrab(GrabContext{
			Node:     target,
			Root:     s.session.TargetRoot,
			Mode:     res.Mode,
			Hand:     manipulationHand,
			EntityID: target.EntityID,
			UserData: target.UserData,
		})
		s.emit(InteractionEvent{
			Type:     EventGrab,
			Hand:     manipulationHand,
			NodeID:   target.ID,
			RootID:   idOf(s.session.TargetRoot),
			EntityID: target.EntityID,
			Position: pos,
		})
	}
	if res.Translated {
		s.emit(InteractionEvent{
			Type:     EventTranslate,
			Hand:     manipulationHand,
			NodeID:   idOf(target),
			RootID:   idOf(s.session.TargetRoot),
			Position: pos,
			Delta:    res.Delta,
		})
	}
	if res.Rotated {
		s.emit(InteractionEvent{
			Type:     EventRotate,
			Hand:     manipulationHand,
			NodeID:   idOf(target),
			RootID:   idOf(s.session.TargetRoot),
			Position: pos,
			Rotation: res.Rotation,
		})
	}
}

// SetEntityStore sets the optional ECS bridge.
func (s *Scene) SetEntityStore(store EntityStore) {
	s.store = store
}

// SetDebugMode enables or disables debug mode. When enabled, disposed-node
// access panics, tree depth and child count warnings are printed, and
// per-frame stats are logged to stderr.
func (s *Scene) SetDebugMode(enabled bool) {
	s.debug = enabled
	globalDebug = enabled
}

// globalDebug mirrors the most recently set Scene debug flag so that node
// operations (which lack a Scene pointer) can check it cheaply. Only valid
// with a single Scene; multiple Scenes with differing debug modes will
// reflect whichever called SetDebugMode last.
var globalDebug bool
