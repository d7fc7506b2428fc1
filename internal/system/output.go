package system

import (
	"time"

	"github.com/gridhaven/server/internal/core/event"
	coresys "github.com/gridhaven/server/internal/core/system"
	"github.com/gridhaven/server/internal/net"
	"github.com/gridhaven/server/internal/net/packet"
	"github.com/gridhaven/server/internal/world"
)

// OutputSystem drains the event bus exactly once per tick, encodes the
// wire-facing events, broadcasts them to authenticated sessions and the
// observer feed, and flushes every session's output buffer. Phase 4
// (Output).
type OutputSystem struct {
	bus   *event.Bus
	store *net.SessionStore
	feed  *net.Feed // may be nil (feed disabled)
}

func NewOutputSystem(bus *event.Bus, store *net.SessionStore, feed *net.Feed) *OutputSystem {
	s := &OutputSystem{bus: bus, store: store, feed: feed}

	event.Subscribe(bus, func(ev world.EvSpawned) {
		s.broadcast(buildSpawned(ev))
		s.publish("spawned", ev)
	})
	event.Subscribe(bus, func(ev world.EvStateChanged) {
		s.broadcast(buildStateChanged(ev))
		s.publish("state_changed", ev)
	})
	event.Subscribe(bus, func(ev world.EvConstructionProgress) {
		s.broadcast(buildConstructionProgress(ev))
		s.publish("construction_progress", ev)
	})
	event.Subscribe(bus, func(ev world.EvUpgraded) {
		s.broadcast(buildLevelChanged(packet.S_OPCODE_UPGRADED, ev.ID, ev.Owner, ev.X, ev.Y, ev.Level, ev.Capacity))
		s.publish("upgraded", ev)
	})
	event.Subscribe(bus, func(ev world.EvDowngraded) {
		s.broadcast(buildLevelChanged(packet.S_OPCODE_DOWNGRADED, ev.ID, ev.Owner, ev.X, ev.Y, ev.Level, ev.Capacity))
		s.publish("downgraded", ev)
	})
	event.Subscribe(bus, func(ev world.EvDeconstructed) {
		s.broadcast(buildDeconstructed(ev))
		s.publish("deconstructed", ev)
	})
	event.Subscribe(bus, func(ev world.EvDebrisCleared) {
		s.broadcast(buildDebrisCleared(ev))
		s.publish("debris_cleared", ev)
	})

	return s
}

func (s *OutputSystem) Phase() coresys.Phase { return coresys.PhaseOutput }

func (s *OutputSystem) Update(_ time.Duration) {
	s.bus.SwapBuffers()
	s.bus.DispatchAll()

	s.store.Each(func(sess *net.Session) {
		sess.FlushOutput()
	})
}

func (s *OutputSystem) broadcast(data []byte) {
	s.store.Each(func(sess *net.Session) {
		if sess.State() == packet.StateAuthenticated {
			sess.Send(data)
		}
	})
}

func (s *OutputSystem) publish(eventType string, ev any) {
	if s.feed != nil {
		s.feed.Publish(eventType, ev)
	}
}
