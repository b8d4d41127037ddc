package core

import (
	"io"
	"maps"
	"time"

	"github.com/charmbracelet/log"
)

// State is the lifecycle state of a play session.
type State int

const (
	StateIdle State = iota
	StatePlaying
	StatePaused
	StateGameOver
)

// String returns the lowercase state name.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StatePlaying:
		return "playing"
	case StatePaused:
		return "paused"
	case StateGameOver:
		return "gameover"
	default:
		return "unknown"
	}
}

// GameStats is the terminal payload of a session. It is built once when the
// session ends and is the only contract with leaderboard persistence.
type GameStats struct {
	GameID    string         `json:"game_id" msgpack:"game_id"`
	Score     int            `json:"score" msgpack:"score"`
	Level     int            `json:"level" msgpack:"level"`
	Extra     map[string]int `json:"extra,omitempty" msgpack:"extra,omitempty"`
	ElapsedMs int64          `json:"elapsed_ms" msgpack:"elapsed_ms"`
}

// Clone returns a deep copy so receivers cannot mutate the session's record.
func (s GameStats) Clone() GameStats {
	s.Extra = maps.Clone(s.Extra)
	return s
}

// Session is the play/pause/game-over state machine shared by all games.
// It owns score and level and enforces their invariants: both only grow while
// playing, level starts at 1, and only Start resets them.
type Session struct {
	gameID string
	state  State
	score  int
	level  int

	reported  int // Last score passed to OnScore
	startedAt time.Time
	pausedAt  time.Time
	pausedFor time.Duration
	stats     *GameStats

	now    func() time.Time
	logger *log.Logger
	events Emitter
}

// NewSession creates an idle session. A nil logger discards output.
func NewSession(gameID string, logger *log.Logger) *Session {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Session{
		gameID: gameID,
		level:  1,
		now:    time.Now,
		logger: logger,
	}
}

// SetClock replaces the wall clock used for startedAt and elapsed time.
func (s *Session) SetClock(now func() time.Time) {
	if now != nil {
		s.now = now
	}
}

// Subscribe registers a listener; the returned function unsubscribes it.
func (s *Session) Subscribe(l Listener) func() {
	return s.events.Subscribe(l)
}

// State returns the current state.
func (s *Session) State() State { return s.state }

// Score returns the current score.
func (s *Session) Score() int { return s.score }

// Level returns the current level (>= 1).
func (s *Session) Level() int { return s.level }

// Playing reports whether the update step should run.
func (s *Session) Playing() bool { return s.state == StatePlaying }

// Status is a read-only view of a session for hosts and snapshots.
type Status struct {
	State State
	Score int
	Level int
}

// Status returns the current state, score and level.
func (s *Session) Status() Status {
	return Status{State: s.state, Score: s.score, Level: s.level}
}

// Start begins a new session from any state. Score drops to 0, level to 1
// and any previous stats are discarded.
func (s *Session) Start() {
	prev := s.state
	s.state = StatePlaying
	s.score = 0
	s.level = 1
	s.reported = 0
	s.stats = nil
	s.startedAt = s.now()
	s.pausedAt = time.Time{}
	s.pausedFor = 0

	s.logger.Debug("session started", "game", s.gameID, "from", prev, "listeners", s.events.Len())
	s.events.gameStart()
}

// SetPaused moves between playing and paused. It returns false when the
// request does not apply to the current state.
func (s *Session) SetPaused(paused bool) bool {
	switch {
	case paused && s.state == StatePlaying:
		s.state = StatePaused
		s.pausedAt = s.now()
	case !paused && s.state == StatePaused:
		s.state = StatePlaying
		s.pausedFor += s.now().Sub(s.pausedAt)
		s.pausedAt = time.Time{}
	default:
		return false
	}
	s.logger.Debug("session pause toggled", "game", s.gameID, "paused", paused)
	return true
}

// AddScore adds points while playing. Non-positive amounts are ignored.
func (s *Session) AddScore(points int) {
	if s.state != StatePlaying || points <= 0 {
		return
	}
	s.score += points
}

// ReportScore emits OnScore if the score changed since the last report.
// Games call it at their own cadence to bound notification volume.
func (s *Session) ReportScore() {
	if s.score == s.reported {
		return
	}
	s.reported = s.score
	s.events.score(s.score)
}

// RaiseLevel moves the session up to level, emitting OnLevelUp once for
// every level crossed. Lower or equal levels are ignored.
func (s *Session) RaiseLevel(level int) bool {
	if s.state != StatePlaying || level <= s.level {
		return false
	}
	for s.level < level {
		s.level++
		s.logger.Debug("level up", "game", s.gameID, "level", s.level, "score", s.score)
		s.events.levelUp(s.level)
	}
	return true
}

// End finishes a playing session and emits OnGameOver. It returns the stats
// and true the first time; later calls return the stored stats and false.
func (s *Session) End(extra map[string]int) (GameStats, bool) {
	if s.state != StatePlaying {
		if s.stats != nil {
			return s.stats.Clone(), false
		}
		return GameStats{}, false
	}

	s.ReportScore()
	s.state = StateGameOver
	stats := GameStats{
		GameID:    s.gameID,
		Score:     s.score,
		Level:     s.level,
		Extra:     maps.Clone(extra),
		ElapsedMs: s.Elapsed().Milliseconds(),
	}
	s.stats = &stats

	s.logger.Debug("game over", "game", s.gameID, "score", s.score, "level", s.level, "elapsed_ms", stats.ElapsedMs)
	s.events.gameOver(stats)
	return stats.Clone(), true
}

// Stats returns the terminal stats once the session is over.
func (s *Session) Stats() (GameStats, bool) {
	if s.stats == nil {
		return GameStats{}, false
	}
	return s.stats.Clone(), true
}

// Elapsed returns active play time, excluding time spent paused.
func (s *Session) Elapsed() time.Duration {
	if s.startedAt.IsZero() {
		return 0
	}
	end := s.now()
	if s.state == StatePaused {
		end = s.pausedAt
	}
	if s.state == StateGameOver && s.stats != nil {
		return time.Duration(s.stats.ElapsedMs) * time.Millisecond
	}
	elapsed := end.Sub(s.startedAt) - s.pausedFor
	if elapsed < 0 {
		return 0
	}
	return elapsed
}
