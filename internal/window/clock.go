package window

// Clock measures the time between frames.
type Clock struct {
	last    float64
	started bool
}

// Tick records now and returns the seconds since the previous tick. The first tick
// returns 0 so the first frame does not jump.
func (c *Clock) Tick(now float64) float32 {
	if !c.started {
		c.started = true
		c.last = now
		return 0
	}
	delta := now - c.last
	c.last = now
	if delta < 0 {
		return 0
	}
	return float32(delta)
}
