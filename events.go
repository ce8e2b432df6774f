package willowxr

import "slices"

// EntityStore is the interface for optional ECS integration.
// When set on a Scene, interaction events are forwarded to the ECS.
type EntityStore interface {
	EmitEvent(event InteractionEvent)
}

// InteractionEvent carries interaction data for the ECS bridge.
type InteractionEvent struct {
	Type     EventType
	Frame    uint64
	Hand     Hand
	NodeID   uint32 // hit leaf, if any
	RootID   uint32 // manipulated top-level prop, if any
	EntityID uint32 // EntityID of the hit leaf
	// Position is the controller (or implement tip) world position.
	Position Vec3
	// Delta is the translation applied (EventTranslate).
	Delta Vec3
	// Rotation is the rotation applied to each leaf (EventRotate).
	Rotation Mat4
}

// StrikeContext carries strike data to OnStrike callbacks.
type StrikeContext struct {
	Node      *Node // struck leaf
	Implement *Node // striking implement
	Hand      Hand
	Tip       Vec3 // world position of the strike point
	EntityID  uint32
	UserData  any
	// Sounded is true when the leaf had a sink and it was triggered.
	Sounded bool
}

// GrabContext carries data to OnGrab callbacks when a manipulation target
// resolves.
type GrabContext struct {
	Node     *Node // grabbed leaf
	Root     *Node // top-level prop that will move
	Mode     Mode
	Hand     Hand
	EntityID uint32
	UserData any
}

// --- Handler registry ---

type strikeHandler struct {
	id uint32
	fn func(StrikeContext)
}

type grabHandler struct {
	id uint32
	fn func(GrabContext)
}

type handlerRegistry struct {
	strike []strikeHandler
	grab   []grabHandler
	nextID uint32
}

// CallbackHandle allows removing a registered scene-level callback.
type CallbackHandle struct {
	id    uint32
	reg   *handlerRegistry
	event EventType
}

// Remove unregisters this callback so it no longer fires. It is safe to call
// from inside a callback; handlers already being dispatched for the current
// event still run.
func (h CallbackHandle) Remove() {
	if h.reg == nil {
		return
	}
	switch h.event {
	case EventStrike:
		h.reg.strike = slices.DeleteFunc(slices.Clone(h.reg.strike), func(sh strikeHandler) bool {
			return sh.id == h.id
		})
	case EventGrab:
		h.reg.grab = slices.DeleteFunc(slices.Clone(h.reg.grab), func(gh grabHandler) bool {
			return gh.id == h.id
		})
	}
}

// OnStrike registers a scene-level callback fired for every strike, after
// the struck node's own OnStrike.
func (s *Scene) OnStrike(fn func(StrikeContext)) CallbackHandle {
	s.handlers.nextID++
	id := s.handlers.nextID
	s.handlers.strike = append(s.handlers.strike, strikeHandler{id: id, fn: fn})
	return CallbackHandle{id: id, reg: &s.handlers, event: EventStrike}
}

// OnGrab registers a scene-level callback fired when a manipulation target
// resolves, after the grabbed node's own OnGrab.
func (s *Scene) OnGrab(fn func(GrabContext)) CallbackHandle {
	s.handlers.nextID++
	id := s.handlers.nextID
	s.handlers.grab = append(s.handlers.grab, grabHandler{id: id, fn: fn})
	return CallbackHandle{id: id, reg: &s.handlers, event: EventGrab}
}

func (s *Scene) fireStrike(ctx StrikeContext) {
	if ctx.Node.OnStrike != nil {
		ctx.Node.OnStrike(ctx)
	}
	for _, h := range s.handlers.strike {
		h.fn(ctx)
	}
	s.emit(InteractionEvent{
		Type:     EventStrike,
		Hand:     ctx.Hand,
		NodeID:   ctx.Node.ID,
		RootID:   idOf(ctx.Node.TopAncestorUnder(s.root)),
		EntityID: ctx.EntityID,
		Position: ctx.Tip,
	})
}

func (s *Scene) fireGrab(ctx GrabContext) {
	if ctx.Node.OnGrab != nil {
		ctx.Node.OnGrab(ctx)
	}
	for _, h := range s.handlers.grab {
		h.fn(ctx)
	}
}

// emit forwards an event to the entity store, stamping the frame number.
func (s *Scene) emit(e InteractionEvent) {
	if s.store == nil {
		return
	}
	e.Frame = s.frame
	s.store.EmitEvent(e)
}

func idOf(n *Node) uint32 {
	if n == nil {
		return 0
	}
	return n.ID
}
