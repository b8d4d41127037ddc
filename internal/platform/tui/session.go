package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/prompt-arcade/internal/core"
	"github.com/vovakirdan/prompt-arcade/internal/registry"
	"github.com/vovakirdan/prompt-arcade/internal/storage"
)

type sessionView int

const (
	viewPalette sessionView = iota
	viewGame
	viewScores
)

// SessionModel manages the full arcade flow: palette -> game or
// scoreboard -> palette. Used by `arcade palette` and by every SSH session.
type SessionModel struct {
	store    *storage.Store
	config   core.RuntimeConfig
	username string
	view     sessionView
	palette  PaletteModel
	game     *Model
	scores   ScoreboardModel
	lastErr  string
	quitting bool
}

// NewSessionModel creates a session that opens on the palette.
func NewSessionModel(store *storage.Store, cfg core.RuntimeConfig, username string) SessionModel {
	return SessionModel{
		store:    store,
		config:   cfg,
		username: username,
		palette:  NewPaletteModel(store, cfg),
	}
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return m.palette.Init()
}

// Update routes messages to the active view.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.config.ScreenW = wsm.Width
		m.config.ScreenH = wsm.Height
	}

	switch m.view {
	case viewGame:
		return m.updateGame(msg)
	case viewScores:
		return m.updateScores(msg)
	default:
		return m.updatePalette(msg)
	}
}

// updatePalette handles updates when the palette is showing. The
// palette's own tea.Quit is swallowed unless the user quits.
func (m SessionModel) updatePalette(msg tea.Msg) (tea.Model, tea.Cmd) {
	newPalette, cmd := m.palette.Update(msg)
	if p, ok := newPalette.(PaletteModel); ok {
		m.palette = p
	}

	switch {
	case m.palette.IsQuitting():
		m.quitting = true
		return m, tea.Quit

	case m.palette.WantsScoreboard():
		m.scores = NewScoreboardModel(m.store, m.config.ScreenW, m.config.ScreenH)
		m.view = viewScores
		return m, m.scores.Init()

	case m.palette.Selected() != nil:
		return m.launch(m.palette.Selected().GameID)
	}

	return m, cmd
}

// launch creates and mounts a game. Each launch gets a fresh seed unless
// one was configured.
func (m SessionModel) launch(gameID string) (tea.Model, tea.Cmd) {
	cfg := m.config
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	game, err := registry.Create(gameID, cfg)
	if err != nil {
		cfg.Log().Error("create game", "game", gameID, "user", m.username, "err", err)
		m.lastErr = err.Error()
		return m.backToPalette()
	}
	cfg.Log().Info("game launched", "game", gameID, "user", m.username, "seed", cfg.Seed)

	gm := NewModel(game, m.store, cfg)
	gm.embedded = true
	m.game = &gm
	m.view = viewGame
	m.lastErr = ""
	return m, m.game.Init()
}

// updateGame handles updates when a game is running.
func (m SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.game.Update(msg)
	if gm, ok := newModel.(Model); ok {
		m.game = &gm
	}

	if m.game.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	if m.game.BackToMenu() {
		m.game = nil
		return m.backToPalette()
	}
	return m, cmd
}

// updateScores handles updates when the scoreboard is showing.
func (m SessionModel) updateScores(msg tea.Msg) (tea.Model, tea.Cmd) {
	newScores, cmd := m.scores.Update(msg)
	if sb, ok := newScores.(ScoreboardModel); ok {
		m.scores = sb
	}

	if m.scores.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	if m.scores.IsGoingBack() {
		return m.backToPalette()
	}
	return m, cmd
}

// backToPalette rebuilds the palette so best scores are current.
func (m SessionModel) backToPalette() (tea.Model, tea.Cmd) {
	m.palette = NewPaletteModel(m.store, m.config)
	m.view = viewPalette
	return m, m.palette.Init()
}

// View renders the active view.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.view {
	case viewGame:
		return m.game.View()
	case viewScores:
		return m.scores.View()
	}
	if m.lastErr != "" {
		return m.palette.View() + "\n" + bannerStyle.Render(m.lastErr)
	}
	return m.palette.View()
}

// RunSession runs the palette flow in the local terminal.
func RunSession(store *storage.Store, cfg core.RuntimeConfig) error {
	p := tea.NewProgram(
		NewSessionModel(store, cfg, ""),
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}
