package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/regform/internal/register"
)

// submitResultMsg carries the outcome of one Submit call.
type submitResultMsg struct {
	alert register.Alert
	err   error
}

// dismissAlertMsg clears the alert if seq still names the visible one.
type dismissAlertMsg struct {
	seq int
}

func dismissAlertCmd(seq int, after time.Duration) tea.Cmd {
	return tea.Tick(after, func(time.Time) tea.Msg {
		return dismissAlertMsg{seq: seq}
	})
}
