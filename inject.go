package willowxr

// InjectFrame queues a synthetic frame of input. Each Update consumes one
// queued frame in place of the input it was given.
func (s *Scene) InjectFrame(in FrameInput) {
	s.injectQueue = append(s.injectQueue, cloneInput(in))
}

// InjectSweep queues frames that move hand's pose from from to to: the
// translation is linearly interpolated over frames steps while the rotation
// is taken from to. base supplies the other hand and the buttons, which stay
// as given for the whole sweep. The last queued frame lands exactly on to.
// Minimum frames is 1.
func (s *Scene) InjectSweep(hand Hand, from, to Mat4, frames int, base FrameInput) {
	if frames < 1 {
		frames = 1
	}
	p0, p1 := Position(from), Position(to)
	for i := 1; i <= frames; i++ {
		m := to
		p := Lerp(p0, p1, float64(i)/float64(frames))
		m[12], m[13], m[14] = p[0], p[1], p[2]
		s.InjectFrame(withPose(base, hand, m))
	}
}

// InjectTurn queues frames that rotate hand's pose about one of its own axes
// by radians in equal increments, starting from from. base supplies the
// other hand and the buttons.
func (s *Scene) InjectTurn(hand Hand, from Mat4, axis Axis, radians float64, frames int, base FrameInput) {
	if frames < 1 {
		frames = 1
	}
	for i := 1; i <= frames; i++ {
		a := radians * float64(i) / float64(frames)
		s.InjectFrame(withPose(base, hand, Compose(from, RotateAxis(axis, a))))
	}
}

// popInjected removes and returns the oldest queued frame.
func (s *Scene) popInjected() (FrameInput, bool) {
	if len(s.injectQueue) == 0 {
		return FrameInput{}, false
	}
	in := s.injectQueue[0]
	copy(s.injectQueue, s.injectQueue[1:])
	s.injectQueue[len(s.injectQueue)-1] = FrameInput{}
	s.injectQueue = s.injectQueue[:len(s.injectQueue)-1]
	return in, true
}

// withPose returns a copy of in with hand's pose replaced.
func withPose(in FrameInput, hand Hand, m Mat4) FrameInput {
	out := cloneInput(in)
	if hand == HandLeft {
		out.Left = m
	} else {
		out.Right = m
	}
	return out
}

// cloneInput copies the button slices so later edits by the caller do not
// leak into queued frames.
func cloneInput(in FrameInput) FrameInput {
	out := in
	out.LeftButtons = append(Buttons(nil), in.LeftButtons...)
	out.RightButtons = append(Buttons(nil), in.RightButtons...)
	return out
}
