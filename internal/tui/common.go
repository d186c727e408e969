package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// viewState represents the currently active view.
type viewState int

const (
	viewPalette viewState = iota
	viewTodos
	viewCompleted
	viewDeleted
	viewStats
	viewSettings
)

var viewNames = []string{"Palette", "Todos", "Completed", "Deleted", "Stats", "Settings"}

// todoViews cycle with alt+up/down.
var todoViews = []viewState{viewTodos, viewCompleted, viewDeleted}

// cycleTodoView steps through the todo views. Returns false when the active
// view is not a todo view.
func cycleTodoView(cur viewState, forward bool) (viewState, bool) {
	for i, v := range todoViews {
		if v != cur {
			continue
		}
		n := len(todoViews)
		if forward {
			return todoViews[(i+1)%n], true
		}
		return todoViews[(i-1+n)%n], true
	}
	return cur, false
}

// --- Messages ---

type statusMsg struct {
	text    string
	isError bool
}

type tickMsg time.Time

// searchDebounceMsg fires after the trailing-edge delay; gen identifies the
// keystroke generation it belongs to, so stale timers are ignored.
type searchDebounceMsg struct {
	gen int
}

type exportDoneMsg struct {
	path string
}

// requestConfirmMsg asks the app to gate a destructive action behind a
// confirm dialog. Declining drops the action without touching state.
type requestConfirmMsg struct {
	prompt string
	action tea.Cmd
}

// --- Helpers ---

// formatMillis renders a ms-epoch timestamp for list metadata lines.
func formatMillis(ms int64) string {
	if ms == 0 {
		return ""
	}
	return time.UnixMilli(ms).Local().Format("2006/01/02 15:04")
}

func status(text string) tea.Cmd {
	return func() tea.Msg { return statusMsg{text: text} }
}

func errStatus(text string) tea.Cmd {
	return func() tea.Msg { return statusMsg{text: text, isError: true} }
}
