package ecs

import (
	"testing"

	"github.com/phanxgames/willowxr"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

func TestNewDonburiStore(t *testing.T) {
	world := donburi.NewWorld()
	store := NewDonburiStore(world)
	if store == nil {
		t.Fatal("NewDonburiStore returned nil")
	}
}

func TestDonburiStore_EmitEvent(t *testing.T) {
	world := donburi.NewWorld()
	store := NewDonburiStore(world)

	var received []willowxr.InteractionEvent
	InteractionEventType.Subscribe(world, func(w donburi.World, e willowxr.InteractionEvent) {
		received = append(received, e)
	})

	store.EmitEvent(willowxr.InteractionEvent{
		Type:     willowxr.EventStrike,
		Hand:     willowxr.HandLeft,
		EntityID: 42,
		Position: willowxr.Vec3{0.1, 0.2, 0.3},
	})

	store.EmitEvent(willowxr.InteractionEvent{
		Type:  willowxr.EventTranslate,
		Delta: willowxr.Vec3{0, 0, -0.5},
	})

	// Events are queued; process them.
	InteractionEventType.ProcessEvents(world)

	if len(received) != 2 {
		t.Fatalf("expected 2 events, got %d", len(received))
	}

	e0 := received[0]
	if e0.Type != willowxr.EventStrike || e0.EntityID != 42 || e0.Hand != willowxr.HandLeft {
		t.Errorf("event 0: %+v", e0)
	}
	if e0.Position != (willowxr.Vec3{0.1, 0.2, 0.3}) {
		t.Errorf("event 0 position: %v", e0.Position)
	}

	e1 := received[1]
	if e1.Type != willowxr.EventTranslate || e1.Delta[2] != -0.5 {
		t.Errorf("event 1: %+v", e1)
	}
}

func TestDonburiStore_ImplementsEntityStore(t *testing.T) {
	world := donburi.NewWorld()
	var store willowxr.EntityStore = NewDonburiStore(world)
	_ = store // compile-time interface check
}

func TestDonburiStore_MultipleSubscribers(t *testing.T) {
	world := donburi.NewWorld()
	store := NewDonburiStore(world)

	var count1, count2 int
	InteractionEventType.Subscribe(world, func(w donburi.World, e willowxr.InteractionEvent) {
		count1++
	})
	InteractionEventType.Subscribe(world, func(w donburi.World, e willowxr.InteractionEvent) {
		count2++
	})

	store.EmitEvent(willowxr.InteractionEvent{Type: willowxr.EventGrab})
	events.ProcessAllEvents(world)

	if count1 != 1 || count2 != 1 {
		t.Errorf("expected both subscribers called once, got %d and %d", count1, count2)
	}
}

func TestDonburiStore_SceneGrabAndRelease(t *testing.T) {
	world := donburi.NewWorld()
	scene := willowxr.NewScene()
	scene.SetEntityStore(NewDonburiStore(world))

	prop := scene.Root().Add("prop")
	leaf := prop.Add("box")
	leaf.EntityID = 7

	var types []willowxr.EventType
	InteractionEventType.Subscribe(world, func(w donburi.World, e willowxr.InteractionEvent) {
		types = append(types, e.Type)
	})

	held := willowxr.FrameInput{
		Left:         willowxr.Identity,
		Right:        willowxr.Identity,
		RightButtons: willowxr.Buttons{{Pressed: true}},
	}
	scene.Update(held)
	released := held
	released.RightButtons = nil
	scene.Update(released)
	InteractionEventType.ProcessEvents(world)

	want := []willowxr.EventType{willowxr.EventGrab, willowxr.EventRelease}
	if len(types) != len(want) {
		t.Fatalf("events = %v, want %v", types, want)
	}
	for i := range want {
		if types[i] != want[i] {
			t.Errorf("event %d = %v, want %v", i, types[i], want[i])
		}
	}
}
