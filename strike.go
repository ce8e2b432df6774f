package willowxr

// Implement is a hand-held striking tool (a drumstick). It is a child of the
// scene root that follows a controller, with exactly one child: the tip
// geometry, offset along the implement's local Z.
type Implement struct {
	Hand Hand
	Node *Node
	Tip  *Node
}

// newImplement adds an implement for hand under root.
func newImplement(root *Node, hand Hand, cfg Config) *Implement {
	n := root.Add("implement-" + hand.String())
	tip := n.Add("implement-tip-" + hand.String())
	tip.SetLocalTransform(Compose(Translate(cfg.TipOffset), Scale(cfg.ImplementSize)))
	return &Implement{Hand: hand, Node: n, Tip: tip}
}

// TipFrame returns the strike query frame: the implement's world transform,
// moved by strikeOffset, composed with the tip child's local transform.
func (im *Implement) TipFrame(strikeOffset Vec3) Mat4 {
	return Compose(im.Node.WorldTransform(), Translate(strikeOffset), im.Tip.LocalTransform())
}

// --- Play mode ---

// PlayMode reports whether implements are active.
func (s *Scene) PlayMode() bool {
	return s.play
}

// SetPlayMode creates both implements when turned on and removes them when
// turned off. Setting the current value is a no-op.
func (s *Scene) SetPlayMode(on bool) {
	if on == s.play {
		return
	}
	s.play = on
	if on {
		for h := HandLeft; h <= HandRight; h++ {
			s.implements[h] = newImplement(s.root, h, s.cfg)
		}
		s.rebuildExclusion()
		s.emit(InteractionEvent{Type: EventPlayModeOn})
		return
	}
	for h, im := range s.implements {
		if im != nil {
			s.root.RemoveChild(im.Node)
			s.implements[h] = nil
		}
	}
	s.rebuildExclusion()
	s.emit(InteractionEvent{Type: EventPlayModeOff})
}

// TogglePlayMode flips play mode.
func (s *Scene) TogglePlayMode() {
	s.SetPlayMode(!s.play)
}

// Implement returns the active implement for a hand, or nil outside play
// mode.
func (s *Scene) Implement(h Hand) *Implement {
	if int(h) >= len(s.implements) {
		return nil
	}
	return s.implements[h]
}

// rebuildExclusion recomputes the set covering every implement subtree.
func (s *Scene) rebuildExclusion() {
	s.exclude = make(ExcludeSet)
	for _, im := range s.implements {
		if im != nil {
			s.exclude.AddSubtree(im.Node)
		}
	}
}

// strike moves each implement to its calibrated pose and triggers the sink
// of any leaf its tip hits. Every frame with a hit fires again; there is no
// dedupe. Returns the number of strikes.
func (s *Scene) strike(poses [2]Mat4) int {
	strikes := 0
	for h, im := range s.implements {
		if im == nil || !validPose(poses[h]) {
			continue
		}
		im.Node.SetLocalTransform(poses[h])
		tip := im.TipFrame(s.cfg.StrikeOffset)
		hit := FindHit(s.root, tip, s.exclude)
		if hit == nil {
			continue
		}
		strikes++
		sink := hit.Audio()
		if sink != nil {
			sink.Play()
		}
		s.fireStrike(StrikeContext{
			Node:      hit,
			Implement: im.Node,
			Hand:      im.Hand,
			Tip:       Position(tip),
			EntityID:  hit.EntityID,
			UserData:  hit.UserData,
			Sounded:   sink != nil,
		})
	}
	return strikes
}
