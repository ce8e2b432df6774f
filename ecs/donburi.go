// Package ecs provides ECS adapters for willowxr.
package ecs

import (
	"github.com/phanxgames/willowxr"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// InteractionEventType carries every willowxr.InteractionEvent a Scene
// emits: EventGrab and EventRelease when a controller takes or lets go of a
// prop, EventTranslate and EventRotate per frame of movement, EventStrike
// when an implement hits a leaf, and EventPlayModeOn/Off. Type selects which.
var InteractionEventType = events.NewEventType[willowxr.InteractionEvent]()

type donburiStore struct {
	world donburi.World
}

// NewDonburiStore returns an EntityStore for Scene.SetEntityStore that
// publishes into world. Events queue until InteractionEventType.ProcessEvents
// runs on world, so a system sees one frame's grabs and strikes together.
func NewDonburiStore(world donburi.World) willowxr.EntityStore {
	return &donburiStore{world: world}
}

func (s *donburiStore) EmitEvent(event willowxr.InteractionEvent) {
	InteractionEventType.Publish(s.world, event)
}
