package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"tabpal/internal/store"
	"tabpal/internal/todo"
)

// todosModel renders the active, completed and deleted lists. The three are
// one model because an item moves between them without losing its place.
type todosModel struct {
	mgr    *todo.Manager
	width  int
	height int

	mode     viewState // viewTodos, viewCompleted or viewDeleted
	input    textinput.Model
	selected string // item ID, empty means first
}

func newTodosModel(m *todo.Manager) todosModel {
	ti := textinput.New()
	ti.Placeholder = "Add a todo"
	ti.Prompt = "+ "
	ti.Focus()

	return todosModel{mgr: m, mode: viewTodos, input: ti}
}

func (t *todosModel) setSize(w, h int) {
	t.width = w
	t.height = h
}

func (t *todosModel) setMode(v viewState) {
	if t.mode != v {
		t.mode = v
		t.selected = ""
	}
}

func (t todosModel) refresh() tea.Cmd {
	if err := t.mgr.Load(); err != nil {
		return errStatus(fmt.Sprintf("Load error: %v", err))
	}
	return nil
}

// list returns the slice the current mode displays.
func (t todosModel) list() []store.TodoItem {
	state := t.mgr.State()
	switch t.mode {
	case viewCompleted:
		return state.Completed
	case viewDeleted:
		return state.Deleted
	default:
		return state.Active
	}
}

func (t todosModel) selection() int {
	list := t.list()
	for i, item := range list {
		if item.ID == t.selected {
			return i
		}
	}
	if len(list) > 0 {
		return 0
	}
	return -1
}

func (t *todosModel) moveSelection(delta int) {
	list := t.list()
	n := len(list)
	if n == 0 {
		return
	}
	idx := (t.selection() + delta) % n
	if idx < 0 {
		idx += n
	}
	t.selected = list[idx].ID
}

func (t todosModel) update(msg tea.Msg) (todosModel, tea.Cmd) {
	msgKey, ok := msg.(tea.KeyMsg)
	if !ok {
		if t.mode == viewTodos {
			var cmd tea.Cmd
			t.input, cmd = t.input.Update(msg)
			return t, cmd
		}
		return t, nil
	}

	switch {
	case key.Matches(msgKey, keys.Up):
		t.moveSelection(-1)
		return t, nil
	case key.Matches(msgKey, keys.Down):
		t.moveSelection(1)
		return t, nil
	case key.Matches(msgKey, keys.Enter):
		if t.mode != viewTodos {
			return t, nil
		}
		item, added, err := t.mgr.Add(t.input.Value())
		if err != nil {
			return t, errStatus(fmt.Sprintf("Add error: %v", err))
		}
		if added {
			t.input.SetValue("")
			t.selected = item.ID
		}
		return t, nil
	case key.Matches(msgKey, keys.Complete):
		return t.applyToSelected(viewTodos, t.mgr.Complete, "Completed")
	case key.Matches(msgKey, keys.Restore):
		if t.mode == viewTodos {
			return t, nil
		}
		return t.applyToSelected(t.mode, t.mgr.Restore, "Restored")
	case key.Matches(msgKey, keys.Remove):
		if t.mode == viewDeleted {
			return t, nil
		}
		return t.applyToSelected(t.mode, t.mgr.Delete, "Deleted")
	case key.Matches(msgKey, keys.Purge):
		if t.mode != viewDeleted {
			return t, nil
		}
		sel := t.selection()
		if sel < 0 {
			return t, nil
		}
		id := t.list()[sel].ID
		mgr := t.mgr
		return t, func() tea.Msg {
			return requestConfirmMsg{
				prompt: "Permanently remove this todo?",
				action: func() tea.Msg {
					if err := mgr.Purge(id); err != nil {
						return statusMsg{text: fmt.Sprintf("Purge error: %v", err), isError: true}
					}
					return statusMsg{text: "Purged"}
				},
			}
		}
	case key.Matches(msgKey, keys.ClearAll):
		mgr := t.mgr
		return t, func() tea.Msg {
			return requestConfirmMsg{
				prompt: "Clear all todos? Active, completed and deleted are removed.",
				action: func() tea.Msg {
					if err := mgr.ClearAll(); err != nil {
						return statusMsg{text: fmt.Sprintf("Clear error: %v", err), isError: true}
					}
					return statusMsg{text: "All todos cleared"}
				},
			}
		}
	}

	if t.mode == viewTodos {
		var cmd tea.Cmd
		t.input, cmd = t.input.Update(msg)
		return t, cmd
	}
	return t, nil
}

// applyToSelected runs op against the selected item of the given mode and
// advances the selection past the removed row.
func (t todosModel) applyToSelected(mode viewState, op func(string) error, done string) (todosModel, tea.Cmd) {
	if t.mode != mode {
		return t, nil
	}
	sel := t.selection()
	if sel < 0 {
		return t, nil
	}
	id := t.list()[sel].ID
	if err := op(id); err != nil {
		return t, errStatus(fmt.Sprintf("%s error: %v", done, err))
	}
	if next, ok := todo.NextSelection(t.list(), sel); ok {
		t.selected = next
	} else {
		t.selected = ""
	}
	return t, status(done)
}

func (t todosModel) view() string {
	w := t.width - 4

	state := t.mgr.State()
	counts := mutedStyle.Render(fmt.Sprintf("%d active · %d completed · %d deleted",
		len(state.Active), len(state.Completed), len(state.Deleted)))

	title := titleStyle.Render(viewNames[t.mode])
	header := lipgloss.JoinHorizontal(lipgloss.Bottom, title, "  ", counts)

	rows := []string{header, ""}
	if t.mode == viewTodos {
		rows = append(rows, t.input.View(), "")
	}

	list := t.list()
	sel := t.selection()
	if len(list) == 0 {
		rows = append(rows, mutedStyle.Render("  Nothing here"))
	}
	for i, item := range list {
		rows = append(rows, t.renderItem(item, i == sel))
	}

	rows = append(rows, "", t.hint())
	return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func (t todosModel) renderItem(item store.TodoItem, selected bool) string {
	cursor := "  "
	if selected {
		cursor = "> "
	}

	var text, meta string
	switch t.mode {
	case viewCompleted:
		text = completedTextStyle.Render(item.Text)
		meta = formatMillis(item.CompletedAt)
	case viewDeleted:
		text = deletedTextStyle.Render(item.Text)
		meta = formatMillis(item.DeletedAt)
	default:
		style := normalItemStyle
		if selected {
			style = selectedItemStyle
		}
		text = style.Render(item.Text)
		meta = formatMillis(item.CreatedAt)
	}

	if meta != "" {
		meta = urlStyle.Render("  " + meta)
	}
	return cursor + text + meta
}

func (t todosModel) hint() string {
	switch t.mode {
	case viewCompleted:
		return mutedStyle.Render("  ctrl+r: restore  ctrl+x: delete  alt+↑/↓: switch list")
	case viewDeleted:
		return mutedStyle.Render("  ctrl+r: restore  ctrl+g: purge  alt+↑/↓: switch list")
	default:
		return mutedStyle.Render("  enter: add  ctrl+d: complete  ctrl+x: delete  ctrl+l: clear all")
	}
}
