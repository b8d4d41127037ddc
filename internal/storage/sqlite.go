package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/vmihailenco/msgpack/v5"
	"github.com/vovakirdan/prompt-arcade/internal/core"
	_ "modernc.org/sqlite"
)

// sqliteTime is the layout SQLite uses for CURRENT_TIMESTAMP.
const sqliteTime = "2006-01-02 15:04:05"

// Store handles persistent storage of finished sessions.
type Store struct {
	db *sql.DB
}

// ScoreEntry represents a single recorded session.
type ScoreEntry struct {
	ID        int64
	GameID    string
	Score     int
	Level     int
	ElapsedMs int64
	Extra     map[string]int
	CreatedAt time.Time
}

// Duration returns the active play time of the session.
func (e ScoreEntry) Duration() time.Duration {
	return time.Duration(e.ElapsedMs) * time.Millisecond
}

// Open opens or creates the database at the given path.
func Open(path string) (*Store, error) {
	if strings.HasPrefix(path, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: get home dir: %w", err)
		}
		path = filepath.Join(home, path[1:])
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: create dir %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("storage: open db: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: ping db: %w", err)
	}

	// One connection serializes writers from concurrent SSH sessions
	db.SetMaxOpenConns(1)

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, err
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	const schema = `
	CREATE TABLE IF NOT EXISTS scores (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		game_id TEXT NOT NULL,
		score INTEGER NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);
	CREATE INDEX IF NOT EXISTS idx_scores_game_score ON scores(game_id, score DESC);
	`
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("storage: migrate: %w", err)
	}

	// Databases created before session stats existed only have the columns above
	columns := []struct{ name, decl string }{
		{"level", "INTEGER NOT NULL DEFAULT 1"},
		{"elapsed_ms", "INTEGER NOT NULL DEFAULT 0"},
		{"extra", "BLOB"},
	}
	for _, c := range columns {
		if err := s.addColumn("scores", c.name, c.decl); err != nil {
			return err
		}
	}
	return nil
}

// addColumn adds a column unless the table already has it.
func (s *Store) addColumn(table, name, decl string) error {
	rows, err := s.db.Query(fmt.Sprintf("PRAGMA table_info(%s)", table))
	if err != nil {
		return fmt.Errorf("storage: table info %s: %w", table, err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			cid        int
			colName    string
			colType    string
			notNull    int
			defaultVal sql.NullString
			pk         int
		)
		if err := rows.Scan(&cid, &colName, &colType, &notNull, &defaultVal, &pk); err != nil {
			return fmt.Errorf("storage: scan table info: %w", err)
		}
		if colName == name {
			return nil
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("storage: table info rows: %w", err)
	}
	rows.Close()

	if _, err := s.db.Exec(fmt.Sprintf("ALTER TABLE %s ADD COLUMN %s %s", table, name, decl)); err != nil {
		return fmt.Errorf("storage: add column %s.%s: %w", table, name, err)
	}
	return nil
}

// SaveStats records a finished session and returns its row id.
func (s *Store) SaveStats(stats core.GameStats) (int64, error) {
	if stats.GameID == "" {
		return 0, fmt.Errorf("storage: save stats: empty game id")
	}

	var extra []byte
	if len(stats.Extra) > 0 {
		b, err := msgpack.Marshal(stats.Extra)
		if err != nil {
			return 0, fmt.Errorf("storage: encode extra: %w", err)
		}
		extra = b
	}

	result, err := s.db.Exec(
		"INSERT INTO scores (game_id, score, level, elapsed_ms, extra) VALUES (?, ?, ?, ?, ?)",
		stats.GameID, stats.Score, max(1, stats.Level), stats.ElapsedMs, extra,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: save stats: %w", err)
	}
	return result.LastInsertId()
}

// Recorder returns a listener that saves every finished session.
// Failures are logged; the game never sees them.
func (s *Store) Recorder(logger *log.Logger) core.Listener {
	return core.ListenerFuncs{
		GameOver: func(stats core.GameStats) {
			id, err := s.SaveStats(stats)
			if err != nil {
				if logger != nil {
					logger.Error("save score", "game", stats.GameID, "err", err)
				}
				return
			}
			if logger != nil {
				logger.Debug("score saved", "id", id, "game", stats.GameID, "score", stats.Score)
			}
		},
	}
}

const entryColumns = "id, game_id, score, level, elapsed_ms, extra, created_at"

// TopScores returns the top N scores for a game. Ties keep insertion order.
func (s *Store) TopScores(gameID string, limit int) ([]ScoreEntry, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := s.db.Query(
		"SELECT "+entryColumns+" FROM scores WHERE game_id = ? ORDER BY score DESC, id ASC LIMIT ?",
		gameID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: query top scores: %w", err)
	}
	defer rows.Close()

	return scanEntries(rows)
}

// AllScores returns all scores for a game, newest first.
func (s *Store) AllScores(gameID string) ([]ScoreEntry, error) {
	rows, err := s.db.Query(
		"SELECT "+entryColumns+" FROM scores WHERE game_id = ? ORDER BY created_at DESC, id DESC",
		gameID,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: query all scores: %w", err)
	}
	defer rows.Close()

	return scanEntries(rows)
}

func scanEntries(rows *sql.Rows) ([]ScoreEntry, error) {
	var entries []ScoreEntry
	for rows.Next() {
		var (
			e         ScoreEntry
			extra     []byte
			createdAt any
		)
		if err := rows.Scan(&e.ID, &e.GameID, &e.Score, &e.Level, &e.ElapsedMs, &extra, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: scan score: %w", err)
		}
		if len(extra) > 0 {
			if err := msgpack.Unmarshal(extra, &e.Extra); err != nil {
				return nil, fmt.Errorf("storage: decode extra for score %d: %w", e.ID, err)
			}
		}
		e.CreatedAt = parseTime(createdAt)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: rows error: %w", err)
	}
	return entries, nil
}

// parseTime accepts the forms the driver may return for DATETIME columns.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse(sqliteTime, t); err == nil {
			return parsed
		}
		if parsed, err := time.Parse(time.RFC3339, t); err == nil {
			return parsed
		}
	case []byte:
		return parseTime(string(t))
	}
	return time.Time{}
}

// HighScore returns the highest score for a game, or 0 if none.
func (s *Store) HighScore(gameID string) (int, error) {
	var score sql.NullInt64
	err := s.db.QueryRow(
		"SELECT MAX(score) FROM scores WHERE game_id = ?",
		gameID,
	).Scan(&score)
	if err != nil {
		return 0, fmt.Errorf("storage: query high score: %w", err)
	}
	if !score.Valid {
		return 0, nil
	}
	return int(score.Int64), nil
}

// ClearScores removes all scores for a game.
func (s *Store) ClearScores(gameID string) error {
	_, err := s.db.Exec("DELETE FROM scores WHERE game_id = ?", gameID)
	if err != nil {
		return fmt.Errorf("storage: clear scores: %w", err)
	}
	return nil
}

// Summary aggregates every recorded session of one game.
type Summary struct {
	GameID      string
	GamesPlayed int
	HighScore   int
	BestLevel   int
	AvgScore    float64
	TotalScore  int
	TotalPlayMs int64
	LastPlayed  time.Time
}

// TotalPlayTime returns the summed active play time.
func (s Summary) TotalPlayTime() time.Duration {
	return time.Duration(s.TotalPlayMs) * time.Millisecond
}

// Summary returns aggregated statistics for a game.
func (s *Store) Summary(gameID string) (*Summary, error) {
	var (
		count      int
		highScore  sql.NullInt64
		bestLevel  sql.NullInt64
		avgScore   sql.NullFloat64
		totalScore sql.NullInt64
		totalMs    sql.NullInt64
		lastPlayed any
	)

	err := s.db.QueryRow(`
		SELECT COUNT(*), MAX(score), MAX(level), AVG(score), SUM(score), SUM(elapsed_ms), MAX(created_at)
		FROM scores WHERE game_id = ?
	`, gameID).Scan(&count, &highScore, &bestLevel, &avgScore, &totalScore, &totalMs, &lastPlayed)
	if err != nil {
		return nil, fmt.Errorf("storage: query summary: %w", err)
	}

	return &Summary{
		GameID:      gameID,
		GamesPlayed: count,
		HighScore:   int(highScore.Int64),
		BestLevel:   int(bestLevel.Int64),
		AvgScore:    avgScore.Float64,
		TotalScore:  int(totalScore.Int64),
		TotalPlayMs: totalMs.Int64,
		LastPlayed:  parseTime(lastPlayed),
	}, nil
}

// AllSummaries returns statistics for every game with at least one score.
func (s *Store) AllSummaries() (map[string]*Summary, error) {
	rows, err := s.db.Query("SELECT DISTINCT game_id FROM scores ORDER BY game_id")
	if err != nil {
		return nil, fmt.Errorf("storage: query games: %w", err)
	}

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return nil, fmt.Errorf("storage: scan game id: %w", err)
		}
		ids = append(ids, id)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: rows error: %w", err)
	}

	result := make(map[string]*Summary, len(ids))
	for _, id := range ids {
		sum, err := s.Summary(id)
		if err != nil {
			return nil, err
		}
		result[id] = sum
	}
	return result, nil
}
