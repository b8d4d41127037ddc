package core

import "time"

// Reference timing used when a game config leaves the clock fields empty.
const (
	DefaultReferenceHz   = 60.0
	DefaultMaxFrameScale = 3.0
)

// Clock converts host frame timestamps into a normalized logical delta.
// dt == 1.0 is one frame at the reference rate; all per-frame arithmetic in
// the games is multiplied by dt so a 144 Hz display and a 30 Hz display move
// the world the same distance per second.
type Clock struct {
	frame    time.Duration // Duration of one reference frame
	maxScale float64       // Largest dt a single callback may produce
	last     time.Duration
	primed   bool
}

// NewClock creates a clock for the given reference rate. maxScale caps a
// single delta at that many reference frames (3 means a tab that was in the
// background for a minute advances the world by only three frames).
func NewClock(referenceHz, maxScale float64) Clock {
	if referenceHz <= 0 {
		referenceHz = DefaultReferenceHz
	}
	if maxScale <= 0 {
		maxScale = DefaultMaxFrameScale
	}
	return Clock{
		frame:    time.Duration(float64(time.Second) / referenceHz),
		maxScale: maxScale,
	}
}

// Delta returns the normalized delta since the previous call.
// The first call after construction or Reset returns 0.
func (c *Clock) Delta(ts time.Duration) float64 {
	if !c.primed {
		c.primed = true
		c.last = ts
		return 0
	}

	raw := ts - c.last
	c.last = ts
	if raw <= 0 {
		// Host clock went backwards or repeated a timestamp
		return 0
	}

	dt := float64(raw) / float64(c.frame)
	return ClampF(dt, 0, c.maxScale)
}

// Reset forgets the previous timestamp so the next Delta returns 0.
func (c *Clock) Reset() {
	c.primed = false
	c.last = 0
}

// FrameDuration returns the duration of one reference frame.
func (c Clock) FrameDuration() time.Duration {
	return c.frame
}
