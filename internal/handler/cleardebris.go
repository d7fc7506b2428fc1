package handler

import (
	"github.com/gridhaven/server/internal/core/ecs"
	"github.com/gridhaven/server/internal/net"
	"github.com/gridhaven/server/internal/net/packet"
	"github.com/gridhaven/server/internal/system"
	"github.com/gridhaven/server/internal/world"
)

// HandleClearDebris processes a paid debris clear (opcode 21).
// Format: [opcode][version][building id Q]
// Unlike demolition there is nothing to order against a live building, so
// the charge and removal happen inline and the result goes straight back.
func HandleClearDebris(sess *net.Session, r *packet.Reader, deps *Deps) {
	id := ecs.EntityID(r.ReadQ())
	res := deps.Debris.ClearDebris(id, world.OwnerID(sess.Overseer))
	system.SendClearDebrisResult(sess, id, res)
}
