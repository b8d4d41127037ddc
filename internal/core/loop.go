package core

import "time"

// FrameFunc is invoked once per display refresh with the host timestamp.
type FrameFunc func(ts time.Duration)

// CancelFunc cancels a scheduled callback. Calling it more than once is safe.
type CancelFunc func()

// Scheduler is the host scheduling primitive games subscribe to.
type Scheduler interface {
	// OnFrame invokes fn once per display refresh until cancelled.
	OnFrame(fn FrameFunc) CancelFunc

	// Every invokes fn every interval until cancelled.
	Every(interval time.Duration, fn func()) CancelFunc
}

type frameEntry struct {
	fn   FrameFunc
	dead bool
}

type timerEntry struct {
	fn       func()
	interval time.Duration
	next     time.Duration
	dead     bool
}

// Loop is a single-threaded Scheduler driven by the host. Every call to
// Advance represents one display refresh: due interval timers fire first,
// then frame callbacks, all on the caller's goroutine. Nothing runs between
// Advance calls, so callbacks never race with each other.
type Loop struct {
	now    time.Duration
	frames []*frameEntry
	timers []*timerEntry
}

// NewLoop creates an empty loop.
func NewLoop() *Loop {
	return &Loop{}
}

// OnFrame registers a display-refresh callback.
func (l *Loop) OnFrame(fn FrameFunc) CancelFunc {
	e := &frameEntry{fn: fn}
	l.frames = append(l.frames, e)
	return func() { e.dead = true }
}

// Every registers an interval callback. The first invocation happens one
// interval after the registration time.
func (l *Loop) Every(interval time.Duration, fn func()) CancelFunc {
	if interval <= 0 {
		interval = time.Millisecond
	}
	e := &timerEntry{fn: fn, interval: interval, next: l.now + interval}
	l.timers = append(l.timers, e)
	return func() { e.dead = true }
}

// Advance moves the loop to timestamp ts and runs everything that is due.
// A timer fires at most once per Advance; when the host stalls for several
// intervals the missed ticks are dropped rather than replayed in a burst.
func (l *Loop) Advance(ts time.Duration) {
	if ts > l.now {
		l.now = ts
	}

	// Callbacks may register or cancel entries, so iterate over copies.
	timers := append([]*timerEntry(nil), l.timers...)
	for _, t := range timers {
		if t.dead || l.now < t.next {
			continue
		}
		t.fn()
		t.next += t.interval
		if t.next <= l.now {
			t.next = l.now + t.interval
		}
	}

	frames := append([]*frameEntry(nil), l.frames...)
	for _, f := range frames {
		if f.dead {
			continue
		}
		f.fn(ts)
	}

	l.compact()
}

// Now returns the latest timestamp the loop has seen.
func (l *Loop) Now() time.Duration {
	return l.now
}

// Pending returns the number of live callbacks (frames plus timers).
func (l *Loop) Pending() int {
	n := 0
	for _, f := range l.frames {
		if !f.dead {
			n++
		}
	}
	for _, t := range l.timers {
		if !t.dead {
			n++
		}
	}
	return n
}

func (l *Loop) compact() {
	frames := l.frames[:0]
	for _, f := range l.frames {
		if !f.dead {
			frames = append(frames, f)
		}
	}
	l.frames = frames

	timers := l.timers[:0]
	for _, t := range l.timers {
		if !t.dead {
			timers = append(timers, t)
		}
	}
	l.timers = timers
}
