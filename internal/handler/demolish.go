package handler

import (
	"github.com/gridhaven/server/internal/core/ecs"
	"github.com/gridhaven/server/internal/net"
	"github.com/gridhaven/server/internal/net/packet"
	"github.com/gridhaven/server/internal/system"
	"github.com/gridhaven/server/internal/world"
	"go.uber.org/zap"
)

// HandleDemolish processes a demolition order (opcode 20).
// Format: [opcode][version][building id Q]
// The order is queued and charged on this tick's update pass; the result
// message goes back on the same tick's flush.
func HandleDemolish(sess *net.Session, r *packet.Reader, deps *Deps) {
	id := ecs.EntityID(r.ReadQ())
	deps.Log.Debug("demolish requested",
		zap.Uint64("session", sess.ID),
		zap.Int32("overseer", sess.Overseer),
		zap.Uint64("building", uint64(id)))

	deps.Demolition.Enqueue(system.DemolitionRequest{
		PlayerInitiated: true,
		ID:              id,
		Owner:           world.OwnerID(sess.Overseer),
		Session:         sess,
	})
}
