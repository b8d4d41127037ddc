package tui

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/zyedidia/generic/mapset"

	"github.com/vovakirdan/prompt-arcade/internal/registry"
	"github.com/vovakirdan/prompt-arcade/internal/storage"
)

const (
	maxScores      = 100
	scoreboardRows = 8 // Title, summary, tabs, table borders and help
	minMetricWidth = 5
)

// fixedColumns are shown for every game. Extra metrics follow them.
var fixedColumns = []table.Column{
	{Title: "#", Width: 4},
	{Title: "Score", Width: 7},
	{Title: "Lvl", Width: 3},
	{Title: "Time", Width: 7},
	{Title: "Date", Width: 12},
}

// ScoreboardKeyMap defines the key bindings for the scoreboard.
type ScoreboardKeyMap struct {
	Up   key.Binding
	Down key.Binding
	Next key.Binding
	Prev key.Binding
	Back key.Binding
	Quit key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Prev, k.Next, k.Back, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

// DefaultScoreboardKeyMap returns default key bindings.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Up:   key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("up/k", "scroll")),
		Down: key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("down/j", "scroll")),
		Next: key.NewBinding(key.WithKeys("right", "l", "tab"), key.WithHelp("right/tab", "next game")),
		Prev: key.NewBinding(key.WithKeys("left", "h", "shift+tab"), key.WithHelp("left", "prev game")),
		Back: key.NewBinding(key.WithKeys("esc", "b"), key.WithHelp("esc/b", "back")),
		Quit: key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ScoreboardModel lists the best runs of one game at a time. The extra
// stats a game records with its runs (apples, obstacles_cleared, ...)
// become columns of their own.
type ScoreboardModel struct {
	games   []registry.GameInfo
	cursor  int
	store   *storage.Store
	scores  []storage.ScoreEntry
	summary *storage.Summary
	metrics []string // Extra keys present in scores, sorted
	table   table.Model
	help    help.Model
	keys    ScoreboardKeyMap
	width   int
	height  int

	quitting  bool
	goingBack bool
}

// NewScoreboardModel creates a scoreboard showing the first registered game.
func NewScoreboardModel(store *storage.Store, width, height int) ScoreboardModel {
	m := ScoreboardModel{
		games:  registry.List(),
		store:  store,
		keys:   DefaultScoreboardKeyMap(),
		help:   help.New(),
		width:  width,
		height: height,
	}
	m.help.Width = width
	m.load()
	return m
}

// GameID returns the game whose scores are shown.
func (m ScoreboardModel) GameID() string {
	if len(m.games) == 0 {
		return ""
	}
	return m.games[m.cursor].ID
}

// load reads the selected game's runs and rebuilds the table around them.
func (m *ScoreboardModel) load() {
	m.scores, m.summary = nil, nil
	if id := m.GameID(); m.store != nil && id != "" {
		if scores, err := m.store.TopScores(id, maxScores); err == nil {
			m.scores = scores
		}
		if sum, err := m.store.Summary(id); err == nil {
			m.summary = sum
		}
	}
	m.metrics = metricKeys(m.scores)
	m.rebuild()
}

// metricKeys collects the extra stat names recorded with these runs.
func metricKeys(scores []storage.ScoreEntry) []string {
	set := mapset.New[string]()
	for _, s := range scores {
		for k := range s.Extra {
			set.Put(k)
		}
	}
	keys := make([]string, 0, set.Size())
	set.Each(func(k string) { keys = append(keys, k) })
	sort.Strings(keys)
	return keys
}

// metricTitle turns "obstacles_cleared" into "Cleared".
func metricTitle(k string) string {
	if i := strings.LastIndexByte(k, '_'); i >= 0 {
		k = k[i+1:]
	}
	if k == "" {
		return k
	}
	return strings.ToUpper(k[:1]) + k[1:]
}

// columns returns the fixed columns plus as many metric columns as fit.
// The second result is how many metrics made it.
func (m ScoreboardModel) columns() ([]table.Column, int) {
	cols := append([]table.Column(nil), fixedColumns...)
	used := 0
	for _, c := range cols {
		used += c.Width + 2 // Cell padding
	}

	n := 0
	for _, k := range m.metrics {
		title := metricTitle(k)
		w := max(len(title), minMetricWidth)
		if used+w+2 > m.width-2 {
			break
		}
		cols = append(cols, table.Column{Title: title, Width: w})
		used += w + 2
		n++
	}
	return cols, n
}

func (m *ScoreboardModel) rebuild() {
	cols, shown := m.columns()

	rows := make([]table.Row, len(m.scores))
	for i, s := range m.scores {
		row := table.Row{
			fmt.Sprintf("%d", i+1),
			fmt.Sprintf("%d", s.Score),
			fmt.Sprintf("%d", s.Level),
			formatDuration(s.Duration()),
			s.CreatedAt.Local().Format("Jan 02 15:04"),
		}
		for _, k := range m.metrics[:shown] {
			v, ok := s.Extra[k]
			if !ok {
				row = append(row, "-")
				continue
			}
			row = append(row, fmt.Sprintf("%d", v))
		}
		rows[i] = row
	}

	t := table.New(
		table.WithColumns(cols),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(max(3, m.height-scoreboardRows)),
	)
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)
	m.table = t
}

// Init initializes the scoreboard model.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the scoreboard.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Next):
			m.step(1)
			return m, nil
		case key.Matches(msg, m.keys.Prev):
			m.step(-1)
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.rebuild()
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// step moves the game selection by delta, wrapping around.
func (m *ScoreboardModel) step(delta int) {
	if len(m.games) == 0 {
		return
	}
	m.cursor = (m.cursor + delta + len(m.games)) % len(m.games)
	m.load()
}

// View renders the scoreboard.
func (m ScoreboardModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder
	b.WriteString(centerText(titleStyle.Render("HIGH SCORES"), m.width))
	b.WriteString("\n")
	b.WriteString(centerText(m.tabs(), m.width))
	b.WriteString("\n")
	b.WriteString(centerText(dimStyle.Render(m.summaryLine()), m.width))
	b.WriteString("\n\n")

	if len(m.scores) == 0 {
		b.WriteString(centerText(dimStyle.Italic(true).Render("No runs recorded yet."), m.width))
	} else {
		box := lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240"))
		b.WriteString(lipgloss.PlaceHorizontal(m.width, lipgloss.Center, box.Render(m.table.View())))
	}

	b.WriteString("\n")
	b.WriteString(dimStyle.Render(m.help.View(m.keys)))
	return b.String()
}

// tabs renders the game titles with the selected one highlighted.
func (m ScoreboardModel) tabs() string {
	parts := make([]string, len(m.games))
	for i, g := range m.games {
		if i == m.cursor {
			parts[i] = bannerStyle.Render(g.Title)
		} else {
			parts[i] = dimStyle.Render(" " + g.Title + " ")
		}
	}
	return strings.Join(parts, " ")
}

// summaryLine renders the aggregate stats for the selected game.
func (m ScoreboardModel) summaryLine() string {
	if m.summary == nil || m.summary.GamesPlayed == 0 {
		return "no games played"
	}
	s := m.summary
	return fmt.Sprintf("%d played · best %d · avg %.0f · best level %d · %s total",
		s.GamesPlayed, s.HighScore, s.AvgScore, s.BestLevel, formatDuration(s.TotalPlayTime()))
}

// formatDuration renders m:ss, or h:mm:ss past an hour.
func formatDuration(d time.Duration) string {
	d = d.Round(time.Second)
	h := int(d / time.Hour)
	mins := int(d/time.Minute) % 60
	secs := int(d/time.Second) % 60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, mins, secs)
	}
	return fmt.Sprintf("%d:%02d", mins, secs)
}

// IsGoingBack returns true if the user wants to return to the palette.
func (m ScoreboardModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if the user wants to quit entirely.
func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}
