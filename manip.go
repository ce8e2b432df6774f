package willowxr

// Session is the manipulation state driven by one controller. It is owned by
// a Scene and threaded through each frame's update; nothing about it is
// package-global, so independent scenes never share a target.
type Session struct {
	Mode Mode

	// Target is the leaf the controller resolved; TargetRoot is its
	// top-level ancestor, the unit actually moved.
	Target     *Node
	TargetRoot *Node

	prevPos    Vec3
	hasPrevPos bool

	prevAim    Mat4
	hasPrevAim bool

	prevOrient    Mat4
	hasPrevOrient bool
}

// StepResult reports what one Session.Step did.
type StepResult struct {
	Mode Mode

	// Grabbed is true on the frame a new target root resolved.
	Grabbed bool
	// Released is the target root let go of this frame, if any.
	Released *Node

	Translated bool
	Delta      Vec3

	Rotated  bool
	Rotation Mat4

	// Queries counts FindHit calls made.
	Queries int
}

// Reset returns the session to ModeIdle and forgets every cached pose.
func (s *Session) Reset() {
	s.clear()
	s.Mode = ModeIdle
}

func (s *Session) clear() {
	s.Target = nil
	s.TargetRoot = nil
	s.hasPrevPos = false
	s.hasPrevAim = false
	s.hasPrevOrient = false
}

// Step advances the state machine by one frame. move and rotate are the
// sampled trigger signals, controller is the calibrated controller pose and
// exclude is passed to every FindHit the step makes. The translate branch is
// evaluated first; while move is held, rotate is ignored. Props are the
// children of root.
//
// A controller pose that is not finite or has a singular basis (the zero
// matrix of an untracked frame) still drives mode changes and releases, but
// queries nothing and moves nothing; the cached poses are kept so the next
// good frame continues from the last good one.
func (s *Session) Step(root *Node, move, rotate bool, controller Mat4, exclude ExcludeSet, cfg Config) StepResult {
	if s.TargetRoot != nil && s.TargetRoot.IsDisposed() {
		s.clear()
	}
	prevRoot := s.TargetRoot
	tracked := validPose(controller)

	if move {
		res := StepResult{}
		if s.Mode == ModeRotating {
			res.Released = s.TargetRoot
			s.clear()
		}
		s.Mode = ModeTranslating
		if tracked {
			s.translate(root, controller, exclude, &res)
		}
		res.Mode = s.Mode
		return res
	}

	var res StepResult
	if s.Mode == ModeTranslating {
		res.Released = s.TargetRoot
		s.clear()
		s.Mode = ModeIdle
		prevRoot = nil
	}

	if rotate {
		s.Mode = ModeRotating
		if !tracked {
			res.Mode = s.Mode
			return res
		}
		res.Queries++
		s.Target = FindHit(root, controller, exclude)
		s.TargetRoot = s.Target.TopAncestorUnder(root)
		if s.TargetRoot != nil && s.TargetRoot != prevRoot {
			res.Grabbed = true
		}
		switch cfg.RotationPolicy {
		case PolicyDiscreteSnap:
			s.rotateSnap(controller, cfg, &res)
		case PolicyFollow:
			s.rotateFollow(controller, cfg, &res)
		default:
			s.rotateAim(controller, &res)
		}
		res.Mode = s.Mode
		return res
	}

	if s.Mode == ModeRotating {
		res.Released = s.TargetRoot
		s.clear()
		s.Mode = ModeIdle
	}
	res.Mode = s.Mode
	return res
}

// translate resolves a target while none is held, then moves the target root
// by the controller's world-space displacement since the previous frame.
func (s *Session) translate(root *Node, controller Mat4, exclude ExcludeSet, res *StepResult) {
	cur := Position(controller)
	if s.Target == nil {
		res.Queries++
		hit := FindHit(root, controller, exclude)
		if hit == nil {
			return
		}
		s.Target = hit
		s.TargetRoot = hit.TopAncestorUnder(root)
		s.prevPos = cur
		s.hasPrevPos = true
		res.Grabbed = s.TargetRoot != nil
	}
	if s.TargetRoot == nil || !s.hasPrevPos {
		return
	}
	delta := Blend(cur, s.prevPos, 1, -1)
	s.TargetRoot.SetLocalTransform(Compose(Translate(delta), s.TargetRoot.LocalTransform()))
	s.prevPos = cur
	if delta != (Vec3{}) {
		res.Translated = true
		res.Delta = delta
	}
}

// rotateAim applies the change between this frame's and the previous
// frame's aimed up axis. The previous aim is refreshed every frame, with or
// without a target, and completes the next one so the change stays small
// when the up axis passes world Z.
func (s *Session) rotateAim(controller Mat4, res *StepResult) {
	up := BasisAxis(controller, AxisY)
	aim := AimAxis(AxisY, up)
	if s.hasPrevAim {
		aim = aimAxisFrom(AxisY, up, BasisAxis(s.prevAim, AxisZ))
	}
	if s.hasPrevAim && s.TargetRoot != nil {
		delta := Compose(aim, Invert(s.prevAim))
		if !delta.ApproxEqualThreshold(Identity, 1e-12) {
			applyToLeaves(s.TargetRoot, delta)
			res.Rotated = true
			res.Rotation = delta
		}
	}
	s.prevAim = aim
	s.hasPrevAim = true
}

// rotateSnap turns the target by a fixed step about the controller axis that
// changed least, once the axis that changed most has moved past the gate.
// Below the gate the reference orientation is kept so slow turns add up.
func (s *Session) rotateSnap(controller Mat4, cfg Config, res *StepResult) {
	if !s.hasPrevOrient {
		s.prevOrient = controller
		s.hasPrevOrient = true
		return
	}
	var angles [3]float64
	for a := AxisX; a <= AxisZ; a++ {
		angles[a] = axisAngle(BasisAxis(s.prevOrient, a), BasisAxis(controller, a))
	}
	least, most := AxisX, AxisX
	for a := AxisY; a <= AxisZ; a++ {
		if angles[a] < angles[least] {
			least = a
		}
		if angles[a] > angles[most] {
			most = a
		}
	}
	if angles[most] <= cfg.snapThreshold() {
		return
	}

	// Turn in the same sense the controller turned about the pivot axis.
	pivot := BasisAxis(controller, least)
	moved := BasisAxis(s.prevOrient, most).Cross(BasisAxis(controller, most))
	step := cfg.snapStep()
	if Dot(moved, pivot) < 0 {
		step = -step
	}

	s.prevOrient = controller
	if s.TargetRoot == nil {
		return
	}
	delta := RotateAxis(least, step)
	applyToLeaves(s.TargetRoot, delta)
	res.Rotated = true
	res.Rotation = delta
}

// rotateFollow holds the target root at a fixed offset from the controller.
func (s *Session) rotateFollow(controller Mat4, cfg Config, res *StepResult) {
	if s.TargetRoot == nil {
		return
	}
	m := Compose(controller, Translate(cfg.FollowOffset))
	s.TargetRoot.SetLocalTransform(m)
	res.Rotated = true
	res.Rotation = m
}

// applyToLeaves left-multiplies every leaf local transform under n (n itself
// when it is a leaf) by delta: leaf.local = Compose(delta, leaf.local).
func applyToLeaves(n *Node, delta Mat4) {
	if n.IsLeaf() {
		n.SetLocalTransform(Compose(delta, n.local))
		return
	}
	for _, c := range n.children {
		applyToLeaves(c, delta)
	}
}
