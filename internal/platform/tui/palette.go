package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/prompt-arcade/internal/core"
	"github.com/vovakirdan/prompt-arcade/internal/registry"
	"github.com/vovakirdan/prompt-arcade/internal/storage"
)

// PaletteItem is one launchable game.
type PaletteItem struct {
	GameID string
	Title  string
	Best   int
	Played int
}

// FilterValue is the text the filter input matches against.
func (i PaletteItem) FilterValue() string {
	return i.GameID + " " + i.Title
}

// PaletteModel is a command palette: typing narrows the game list, Enter
// launches the highlighted game.
type PaletteModel struct {
	items    []PaletteItem
	visible  []PaletteItem
	cursor   int
	input    textinput.Model
	keys     PaletteKeyMap
	help     help.Model
	width    int
	height   int
	config   core.RuntimeConfig
	quitting bool

	selected       *PaletteItem
	openScoreboard bool
}

// NewPaletteModel lists the registered games. A non-nil store adds each
// game's best score and play count.
func NewPaletteModel(store *storage.Store, cfg core.RuntimeConfig) PaletteModel {
	var summaries map[string]*storage.Summary
	if store != nil {
		var err error
		if summaries, err = store.AllSummaries(); err != nil {
			cfg.Log().Warn("load summaries", "err", err)
		}
	}

	games := registry.List()
	items := make([]PaletteItem, 0, len(games))
	for _, g := range games {
		item := PaletteItem{GameID: g.ID, Title: g.Title}
		if s, ok := summaries[g.ID]; ok {
			item.Best = s.HighScore
			item.Played = s.GamesPlayed
		}
		items = append(items, item)
	}

	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "type to filter games"
	ti.CharLimit = 32
	ti.Focus()

	m := PaletteModel{
		items:  items,
		input:  ti,
		keys:   DefaultPaletteKeyMap(),
		help:   help.New(),
		width:  cfg.ScreenW,
		height: cfg.ScreenH,
		config: cfg,
	}
	m.help.Width = cfg.ScreenW
	m.applyFilter()
	return m
}

// applyFilter recomputes the visible items from the input text.
func (m *PaletteModel) applyFilter() {
	query := strings.ToLower(strings.TrimSpace(m.input.Value()))
	visible := make([]PaletteItem, 0, len(m.items))
	for _, item := range m.items {
		if query == "" || strings.Contains(strings.ToLower(item.FilterValue()), query) {
			visible = append(visible, item)
		}
	}
	m.visible = visible
	if m.cursor >= len(m.visible) {
		m.cursor = max(0, len(m.visible)-1)
	}
}

// Init starts the cursor blink.
func (m PaletteModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages for the palette.
func (m PaletteModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Clear):
			if m.input.Value() == "" {
				m.quitting = true
				return m, tea.Quit
			}
			m.input.SetValue("")
			m.applyFilter()
			return m, nil

		case key.Matches(msg, m.keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
			return m, nil

		case key.Matches(msg, m.keys.Down):
			if m.cursor < len(m.visible)-1 {
				m.cursor++
			}
			return m, nil

		case key.Matches(msg, m.keys.Launch):
			if len(m.visible) > 0 {
				selected := m.visible[m.cursor]
				m.selected = &selected
				return m, tea.Quit
			}
			return m, nil

		case key.Matches(msg, m.keys.Scores):
			m.openScoreboard = true
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.help.Width = msg.Width
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.applyFilter()
	return m, cmd
}

// View renders the palette.
func (m PaletteModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centerText(titleStyle.Render("P R O M P T   A R C A D E"), m.width))
	b.WriteString("\n\n")
	b.WriteString("  " + m.input.View())
	b.WriteString("\n\n")

	if len(m.visible) == 0 {
		b.WriteString(dimStyle.Render("  no matching games"))
		b.WriteString("\n")
	}
	for i, item := range m.visible {
		cursor := "  "
		title := item.Title
		if i == m.cursor {
			cursor = "▸ "
			title = titleStyle.Render(title)
		}
		stats := ""
		if item.Played > 0 {
			stats = dimStyle.Render(fmt.Sprintf("  best %d · %d played", item.Best, item.Played))
		}
		fmt.Fprintf(&b, "  %s%s %s%s\n", cursor, title, dimStyle.Render("("+item.GameID+")"), stats)
	}

	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

// Selected returns the launched item, or nil if none.
func (m PaletteModel) Selected() *PaletteItem {
	return m.selected
}

// IsQuitting returns true if the user requested to quit.
func (m PaletteModel) IsQuitting() bool {
	return m.quitting
}

// WantsScoreboard returns true if the user asked for the scoreboard.
func (m PaletteModel) WantsScoreboard() bool {
	return m.openScoreboard
}

// Config returns the runtime config, updated by resizes.
func (m PaletteModel) Config() core.RuntimeConfig {
	return m.config
}
