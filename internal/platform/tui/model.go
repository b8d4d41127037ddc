package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/prompt-arcade/internal/core"
	"github.com/vovakirdan/prompt-arcade/internal/registry"
	"github.com/vovakirdan/prompt-arcade/internal/storage"
)

// chromeRows is the number of terminal rows below the game screen
// (status line and help bar).
const chromeRows = 2

// bannerTime is how long the level-up banner stays in the status line.
const bannerTime = 2 * time.Second

// hud is the host-side view of session events. It is shared by pointer so
// listener callbacks reach it through Bubble Tea's value-copied models.
type hud struct {
	best        int
	banner      string
	bannerUntil time.Duration
}

// Model hosts one mounted game. Every FrameMsg advances the loop with the
// time elapsed since the model was created; keys become game actions.
type Model struct {
	game   registry.Game
	loop   *core.Loop
	screen *core.Screen
	config core.RuntimeConfig
	logger *log.Logger
	keys   KeyMap
	help   help.Model
	hud    *hud
	epoch  time.Time
	id     uint64
	unsubs []func()

	embedded   bool // Back returns to the palette instead of quitting
	quitting   bool
	backToMenu bool
}

// NewModel mounts game on a fresh loop and screen. A nil store disables
// score saving.
func NewModel(game registry.Game, store *storage.Store, cfg core.RuntimeConfig) Model {
	logger := cfg.Log()
	m := Model{
		game:   game,
		loop:   core.NewLoop(),
		screen: core.NewScreen(cfg.ScreenW, max(0, cfg.ScreenH-chromeRows)),
		config: cfg,
		logger: logger,
		keys:   DefaultKeyMap(),
		help:   help.New(),
		hud:    &hud{},
		epoch:  time.Now(),
		id:     nextHostID(),
	}
	m.help.Width = cfg.ScreenW

	if store != nil {
		if best, err := store.HighScore(game.ID()); err == nil {
			m.hud.best = best
		} else {
			logger.Warn("load high score", "game", game.ID(), "err", err)
		}
		m.unsubs = append(m.unsubs, game.Subscribe(store.Recorder(logger)))
	}

	h, loop := m.hud, m.loop
	m.unsubs = append(m.unsubs, game.Subscribe(core.ListenerFuncs{
		LevelUp: func(level int) {
			h.banner = fmt.Sprintf("LEVEL %d!", level)
			h.bannerUntil = loop.Now() + bannerTime
		},
		GameOver: func(stats core.GameStats) {
			h.best = max(h.best, stats.Score)
			logger.Info("game over", "game", stats.GameID, "score", stats.Score, "level", stats.Level)
		},
	}))

	game.Mount(m.loop, m.screen)
	return m
}

// Init starts the frame ticker.
func (m Model) Init() tea.Cmd {
	return frameCmd(m.config.TickRate, m.id)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, max(0, msg.Height-chromeRows))
		m.help.Width = msg.Width
		return m, nil

	case FrameMsg:
		if msg.Host != m.id || m.quitting || m.backToMenu {
			return m, nil
		}
		m.loop.Advance(msg.At.Sub(m.epoch))
		return m, frameCmd(m.config.TickRate, m.id)
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	case key.Matches(msg, m.keys.Screenshot):
		m.saveScreenshot()
		return m, nil
	}

	switch action := m.keys.Action(msg); action {
	case core.ActionQuit:
		m.close()
		m.quitting = true
		return m, tea.Quit
	case core.ActionBack:
		m.close()
		if m.embedded {
			m.backToMenu = true
			return m, nil
		}
		m.quitting = true
		return m, tea.Quit
	case core.ActionNone:
		return m, nil
	default:
		m.game.Handle(action)
	}
	return m, nil
}

// close detaches the game from the loop and drops host listeners.
func (m *Model) close() {
	m.game.Dispose()
	for _, unsub := range m.unsubs {
		unsub()
	}
	m.unsubs = nil
}

// saveScreenshot writes the current screen buffer to ~/.arcade/screenshots.
func (m *Model) saveScreenshot() {
	home, err := os.UserHomeDir()
	if err != nil {
		m.logger.Warn("screenshot", "err", err)
		return
	}
	dir := filepath.Join(home, ".arcade", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Warn("screenshot", "err", err)
		return
	}

	name := fmt.Sprintf("%s_%s.txt", m.game.ID(), time.Now().Format("20060102_150405"))
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("screenshot", "err", err)
		return
	}
	m.logger.Info("screenshot saved", "path", path)
}

// View renders the game screen with the status line and help bar.
func (m Model) View() string {
	if m.quitting || m.backToMenu {
		return ""
	}
	return RenderScreen(m.screen) + "\n" + m.statusLine() + "\n" + m.help.View(m.keys)
}

// statusLine summarizes the session for the row under the game.
func (m Model) statusLine() string {
	st := m.game.Status()
	line := fmt.Sprintf(" %s  %s  Score %d  Level %d  Best %d",
		m.game.Title(), st.State, st.Score, st.Level, max(m.hud.best, st.Score))

	if m.hud.banner != "" && m.loop.Now() < m.hud.bannerUntil {
		return statusStyle.Render(line) + "  " + bannerStyle.Render(m.hud.banner)
	}
	return statusStyle.Render(line)
}

// IsQuitting returns true if the user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if the user asked to return to the palette.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// Run starts a Bubble Tea program that plays a single game.
func Run(game registry.Game, store *storage.Store, cfg core.RuntimeConfig) error {
	model := NewModel(game, store, cfg)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
