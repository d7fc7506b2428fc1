package world

// Clock is the authoritative simulation tick counter. The main loop
// advances it once per tick after all phases have run; systems read it.
type Clock struct {
	tick int64
}

func NewClock() *Clock { return &Clock{} }

func (c *Clock) Now() int64 { return c.tick }

func (c *Clock) Advance() int64 {
	c.tick++
	return c.tick
}

// Set jumps the clock (boot-time restore from a snapshot).
func (c *Clock) Set(tick int64) { c.tick = tick }
