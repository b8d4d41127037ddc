package core

// Listener receives session notifications. Each method is invoked at most
// once per logical event, synchronously, from inside the update step.
type Listener interface {
	OnGameStart()
	OnScore(score int)
	OnLevelUp(level int)
	OnGameOver(stats GameStats)
}

// ListenerFuncs adapts optional callbacks to Listener. Nil fields are skipped.
type ListenerFuncs struct {
	GameStart func()
	Score     func(score int)
	LevelUp   func(level int)
	GameOver  func(stats GameStats)
}

// OnGameStart implements Listener.
func (f ListenerFuncs) OnGameStart() {
	if f.GameStart != nil {
		f.GameStart()
	}
}

// OnScore implements Listener.
func (f ListenerFuncs) OnScore(score int) {
	if f.Score != nil {
		f.Score(score)
	}
}

// OnLevelUp implements Listener.
func (f ListenerFuncs) OnLevelUp(level int) {
	if f.LevelUp != nil {
		f.LevelUp(level)
	}
}

// OnGameOver implements Listener.
func (f ListenerFuncs) OnGameOver(stats GameStats) {
	if f.GameOver != nil {
		f.GameOver(stats)
	}
}

// Emitter fans notifications out to subscribed listeners in subscription order.
type Emitter struct {
	nextID    int
	listeners []subscription
}

type subscription struct {
	id int
	l  Listener
}

// Subscribe adds a listener and returns a function that removes it.
func (e *Emitter) Subscribe(l Listener) func() {
	if l == nil {
		return func() {}
	}
	e.nextID++
	id := e.nextID
	e.listeners = append(e.listeners, subscription{id: id, l: l})
	return func() {
		for i, s := range e.listeners {
			if s.id == id {
				e.listeners = append(e.listeners[:i:i], e.listeners[i+1:]...)
				return
			}
		}
	}
}

// Len returns the number of subscribed listeners.
func (e *Emitter) Len() int {
	return len(e.listeners)
}

func (e *Emitter) each(fn func(Listener)) {
	// A listener may unsubscribe itself while being notified.
	for _, s := range append([]subscription(nil), e.listeners...) {
		fn(s.l)
	}
}

func (e *Emitter) gameStart() { e.each(func(l Listener) { l.OnGameStart() }) }

func (e *Emitter) score(score int) { e.each(func(l Listener) { l.OnScore(score) }) }

func (e *Emitter) levelUp(level int) { e.each(func(l Listener) { l.OnLevelUp(level) }) }

func (e *Emitter) gameOver(stats GameStats) {
	e.each(func(l Listener) { l.OnGameOver(stats.Clone()) })
}
