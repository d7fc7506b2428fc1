package system

import "time"

// Phase defines execution ordering within a single tick.
type Phase int

const (
	PhaseInput      Phase = iota // 0: drain session queues, enqueue commands
	PhasePreUpdate               // 1: zone scanning + spawning
	PhaseUpdate                  // 2: construction, lifecycle, progression, demolition
	PhasePostUpdate              // 3: debris timers
	PhaseOutput                  // 4: drain event bus, build + send packets
	PhasePersist                 // 5: snapshot + treasury + ledger flush
	PhaseCleanup                 // 6: destroy queued entities
)

// System is the interface every simulation system implements.
type System interface {
	Phase() Phase
	Update(dt time.Duration)
}
