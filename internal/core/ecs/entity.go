package ecs

// EntityID is a simulation-wide unique identifier. IDs are handed out
// monotonically starting at 1 and are never reused; 0 is the reserved
// invalid id, so a zero value always means "no entity".
type EntityID uint64

func (id EntityID) IsZero() bool { return id == 0 }

// EntityPool allocates entity ids and tracks liveness.
type EntityPool struct {
	next EntityID
	live map[EntityID]struct{}
}

func NewEntityPool() *EntityPool {
	return &EntityPool{
		next: 1,
		live: make(map[EntityID]struct{}, 1024),
	}
}

func (p *EntityPool) Create() EntityID {
	id := p.next
	p.next++
	p.live[id] = struct{}{}
	return id
}

func (p *EntityPool) Alive(id EntityID) bool {
	_, ok := p.live[id]
	return ok
}

// Destroy retires an id. The id is never handed out again.
func (p *EntityPool) Destroy(id EntityID) {
	delete(p.live, id)
}

// Adopt marks an externally restored id as live and bumps the allocator
// past it, so snapshot loads never collide with future allocations.
func (p *EntityPool) Adopt(id EntityID) {
	if id == 0 {
		return
	}
	p.live[id] = struct{}{}
	if id >= p.next {
		p.next = id + 1
	}
}

// Count returns the number of live entities.
func (p *EntityPool) Count() int {
	return len(p.live)
}
