package systems

import (
	"github.com/automoto/handbeat/shared/messages"
	"github.com/yohamta/donburi/features/events"
)

// Event types published into the session world. Subscribers run when the
// session dispatches events at the end of a tick.
var (
	ScoreEvents   = events.NewEventType[messages.ScoreEvent]()
	ReachedEvents = events.NewEventType[messages.ReachedPlayerEvent]()
	SpawnEvents   = events.NewEventType[messages.SpawnEvent]()
	ShotEvents    = events.NewEventType[messages.ShotEvent]()
	BeatEvents    = events.NewEventType[messages.BeatEvent]()
)
