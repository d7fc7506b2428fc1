package system

import (
	"time"

	coresys "github.com/gridhaven/server/internal/core/system"
	"github.com/gridhaven/server/internal/net"
	"github.com/gridhaven/server/internal/net/packet"
	"go.uber.org/zap"
)

// InputSystem drains message queues from all sessions and dispatches them
// through the message registry. Phase 0 (Input). Handlers run inside the
// dispatch, so all inbound mutation requests are enqueued before the
// update phases run.
type InputSystem struct {
	netServer  *net.Server
	registry   *packet.Registry
	store      *net.SessionStore
	maxPerTick int
	log        *zap.Logger
}

func NewInputSystem(
	netServer *net.Server,
	registry *packet.Registry,
	store *net.SessionStore,
	maxPerTick int,
	log *zap.Logger,
) *InputSystem {
	return &InputSystem{
		netServer:  netServer,
		registry:   registry,
		store:      store,
		maxPerTick: maxPerTick,
		log:        log,
	}
}

func (s *InputSystem) Phase() coresys.Phase { return coresys.PhaseInput }

func (s *InputSystem) Update(_ time.Duration) {
	// Accept new sessions
	for {
		select {
		case sess := <-s.netServer.NewSessions():
			s.store.Add(sess)
		default:
			goto doneNew
		}
	}
doneNew:

	// Process dead sessions
	for {
		select {
		case id := <-s.netServer.DeadSessions():
			s.store.Remove(id)
		default:
			goto doneDead
		}
	}
doneDead:

	// Drain messages from each session (up to maxPerTick per session)
	s.store.Each(func(sess *net.Session) {
		if sess.IsClosed() {
			s.store.Remove(sess.ID)
			return
		}
		for i := 0; i < s.maxPerTick; i++ {
			select {
			case data := <-sess.InQueue:
				if err := s.registry.Dispatch(sess, sess.State(), data); err != nil {
					s.log.Warn("dispatch failed",
						zap.Uint64("session", sess.ID),
						zap.Error(err),
					)
				}
			default:
				return
			}
		}
	})
}
