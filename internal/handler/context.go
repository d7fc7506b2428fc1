package handler

import (
	"github.com/gridhaven/server/internal/config"
	"github.com/gridhaven/server/internal/net"
	"github.com/gridhaven/server/internal/net/packet"
	"github.com/gridhaven/server/internal/persist"
	"github.com/gridhaven/server/internal/system"
	"github.com/gridhaven/server/internal/world"
	"go.uber.org/zap"
)

// Deps holds shared dependencies injected into all packet handlers.
type Deps struct {
	AccountRepo *persist.AccountRepo
	Config      *config.Config
	Log         *zap.Logger
	State       *world.State
	Treasury    *world.Treasury
	Demolition  *system.DemolitionSystem
	Debris      *system.DebrisSystem
}

// RegisterAll registers all packet handlers into the registry.
func RegisterAll(reg *packet.Registry, deps *Deps) {
	// Handshake phase
	reg.Register(packet.C_OPCODE_VERSION,
		[]packet.SessionState{packet.StateHandshake},
		func(sess any, r *packet.Reader) {
			HandleVersion(sess.(*net.Session), r, deps)
		},
	)

	// Login phase: account\0 password\0
	reg.Register(packet.C_OPCODE_LOGIN,
		[]packet.SessionState{packet.StateVersionOK},
		func(sess any, r *packet.Reader) {
			HandleLogin(sess.(*net.Session), r, deps)
		},
	)

	// Authenticated phase
	authStates := []packet.SessionState{packet.StateAuthenticated}

	reg.Register(packet.C_OPCODE_DEMOLISH, authStates,
		func(sess any, r *packet.Reader) {
			HandleDemolish(sess.(*net.Session), r, deps)
		},
	)
	reg.Register(packet.C_OPCODE_CLEAR_DEBRIS, authStates,
		func(sess any, r *packet.Reader) {
			HandleClearDebris(sess.(*net.Session), r, deps)
		},
	)
}
