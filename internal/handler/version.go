package handler

import (
	"time"

	"github.com/gridhaven/server/internal/net"
	"github.com/gridhaven/server/internal/net/packet"
	"go.uber.org/zap"
)

// HandleVersion processes the client hello (opcode 10) and transitions the
// session to VersionOK. Only the major protocol version is checked; minor
// revisions stay compatible on the wire.
func HandleVersion(sess *net.Session, r *packet.Reader, deps *Deps) {
	clientVersion := r.ReadC()
	deps.Log.Debug("received client version",
		zap.Uint64("session", sess.ID),
		zap.Uint8("version", clientVersion))

	cfg := deps.Config
	uptime := int32(time.Now().Unix() - cfg.Server.StartTime)

	w := packet.NewWriterWithOpcode(packet.S_OPCODE_SERVER_INFO)
	if clientVersion == packet.Version1 {
		w.WriteC(0x00) // accepted
	} else {
		w.WriteC(0x01) // version mismatch
	}
	w.WriteD(int32(cfg.Server.ID))
	w.WriteS(cfg.Server.Name)
	w.WriteD(uptime)
	sess.Send(w.Bytes())

	if clientVersion != packet.Version1 {
		sess.Close()
		return
	}
	sess.SetState(packet.StateVersionOK)
}
