package system

import (
	"github.com/gridhaven/server/internal/core/ecs"
	"github.com/gridhaven/server/internal/net"
	"github.com/gridhaven/server/internal/net/packet"
	"github.com/gridhaven/server/internal/world"
)

// Outbound message builders. Field order is the wire contract: opcode,
// version, then fixed-width little-endian fields in declared order.

func buildSpawned(ev world.EvSpawned) []byte {
	w := packet.NewWriterWithOpcode(packet.S_OPCODE_SPAWNED)
	w.WriteQ(int64(ev.ID))
	w.WriteD(int32(ev.Owner))
	w.WriteD(ev.X)
	w.WriteD(ev.Y)
	w.WriteD(ev.TemplateID)
	w.WriteC(byte(ev.Category))
	w.WriteC(byte(ev.Density))
	return w.Bytes()
}

func buildStateChanged(ev world.EvStateChanged) []byte {
	w := packet.NewWriterWithOpcode(packet.S_OPCODE_STATE_CHANGED)
	w.WriteQ(int64(ev.ID))
	w.WriteD(int32(ev.Owner))
	w.WriteD(ev.X)
	w.WriteD(ev.Y)
	w.WriteC(byte(ev.From))
	w.WriteC(byte(ev.To))
	w.WriteQ(ev.Tick)
	return w.Bytes()
}

func buildConstructionProgress(ev world.EvConstructionProgress) []byte {
	w := packet.NewWriterWithOpcode(packet.S_OPCODE_CONSTRUCTION_PROGRESS)
	w.WriteQ(int64(ev.ID))
	w.WriteD(int32(ev.Owner))
	w.WriteD(ev.X)
	w.WriteD(ev.Y)
	w.WriteQ(ev.Elapsed)
	w.WriteQ(ev.Total)
	return w.Bytes()
}

func buildLevelChanged(opcode byte, id ecs.EntityID, owner world.OwnerID, x, y int32, level int16, capacity int32) []byte {
	w := packet.NewWriterWithOpcode(opcode)
	w.WriteQ(int64(id))
	w.WriteD(int32(owner))
	w.WriteD(x)
	w.WriteD(y)
	w.WriteH(uint16(level))
	w.WriteD(capacity)
	return w.Bytes()
}

func buildDeconstructed(ev world.EvDeconstructed) []byte {
	w := packet.NewWriterWithOpcode(packet.S_OPCODE_DECONSTRUCTED)
	w.WriteQ(int64(ev.ID))
	w.WriteD(int32(ev.Owner))
	w.WriteD(ev.X)
	w.WriteD(ev.Y)
	if ev.PlayerInitiated {
		w.WriteC(1)
	} else {
		w.WriteC(0)
	}
	w.WriteQ(ev.CostPaid)
	return w.Bytes()
}

func buildDebrisCleared(ev world.EvDebrisCleared) []byte {
	w := packet.NewWriterWithOpcode(packet.S_OPCODE_DEBRIS_CLEARED)
	w.WriteQ(int64(ev.ID))
	w.WriteD(int32(ev.Owner))
	w.WriteD(ev.X)
	w.WriteD(ev.Y)
	if ev.Paid {
		w.WriteC(1)
	} else {
		w.WriteC(0)
	}
	return w.Bytes()
}

func sendDemolishResult(sess *net.Session, id ecs.EntityID, res world.Result) {
	w := packet.NewWriterWithOpcode(packet.S_OPCODE_DEMOLISH_RESULT)
	w.WriteQ(int64(id))
	w.WriteC(byte(res.Reason))
	w.WriteQ(res.Cost)
	sess.Send(w.Bytes())
}

// SendClearDebrisResult replies to a manual debris clear request. Exported
// for the inbound handler.
func SendClearDebrisResult(sess *net.Session, id ecs.EntityID, res world.Result) {
	w := packet.NewWriterWithOpcode(packet.S_OPCODE_CLEAR_DEBRIS_RESULT)
	w.WriteQ(int64(id))
	w.WriteC(byte(res.Reason))
	w.WriteQ(res.Cost)
	sess.Send(w.Bytes())
}
