// Package tui provides the Bubble Tea host for the arcade. It drives a
// core.Loop from display ticks, maps keys to actions and paints the
// games' screen buffers.
package tui

import (
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// FrameMsg marks one display refresh for the host with the matching id.
type FrameMsg struct {
	At   time.Time
	Host uint64
}

var hostIDs atomic.Uint64

// nextHostID returns a unique id so a stale ticker from a closed game never
// drives a newer one.
func nextHostID() uint64 {
	return hostIDs.Add(1)
}

// frameCmd schedules the next display refresh at fps.
func frameCmd(fps int, host uint64) tea.Cmd {
	if fps <= 0 {
		fps = 60
	}
	interval := time.Second / time.Duration(fps)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return FrameMsg{At: t, Host: host}
	})
}
