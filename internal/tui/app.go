package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"tabpal/internal/export"
	"tabpal/internal/palette"
	"tabpal/internal/store"
	"tabpal/internal/todo"
)

// App is the root Bubble Tea model.
type App struct {
	store  *store.Store
	width  int
	height int

	activeView    viewState
	showHelp      bool
	exportPicking bool
	exportCursor  int

	// Pending destructive action gated behind the confirm dialog.
	confirmForm   *huh.Form
	confirmAction tea.Cmd
	confirmOK     *bool

	pal      paletteModel
	todos    todosModel
	stats    statsModel
	settings settingsModel

	help      help.Model
	status    string
	statusErr bool
}

func NewApp(s *store.Store, pc *palette.Controller, tm *todo.Manager) App {
	h := help.New()
	h.ShowAll = false

	ok := false
	return App{
		store:      s,
		activeView: viewPalette,
		pal:        newPaletteModel(pc),
		todos:      newTodosModel(tm),
		stats:      newStatsModel(pc, tm),
		settings:   newSettingsModel(pc),
		help:       h,
		confirmOK:  &ok,
	}
}

func (a App) Init() tea.Cmd {
	return tea.Batch(
		a.pal.Init(),
		tickCmd(),
	)
}

// The dwell tracker writes history from its own context; the tick keeps the
// palette view converging on the stored state.
func tickCmd() tea.Cmd {
	return tea.Tick(2*time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.help.Width = msg.Width
		contentHeight := a.height - 4 // header + footer
		a.pal.setSize(a.width, contentHeight)
		a.todos.setSize(a.width, contentHeight)
		a.stats.setSize(a.width, contentHeight)
		a.settings.setSize(a.width, contentHeight)
		return a, nil

	case tea.KeyMsg:
		if a.confirmForm != nil {
			return a.updateConfirm(msg)
		}
		if a.exportPicking {
			return a.updateExportPicker(msg)
		}
		if a.isFormActive() {
			return a.updateActiveView(msg)
		}

		switch {
		case key.Matches(msg, keys.Export):
			a.exportPicking = true
			a.exportCursor = 0
			return a, nil
		case key.Matches(msg, keys.Quit):
			return a, tea.Quit
		case key.Matches(msg, keys.Help):
			a.showHelp = !a.showHelp
			a.help.ShowAll = a.showHelp
			return a, nil
		case key.Matches(msg, keys.Tab1):
			return a.switchView(viewPalette)
		case key.Matches(msg, keys.Tab2):
			return a.switchView(viewTodos)
		case key.Matches(msg, keys.Tab3):
			return a.switchView(viewCompleted)
		case key.Matches(msg, keys.Tab4):
			return a.switchView(viewDeleted)
		case key.Matches(msg, keys.Tab5):
			return a.switchView(viewStats)
		case key.Matches(msg, keys.Tab6):
			return a.switchView(viewSettings)
		case key.Matches(msg, keys.Tab):
			return a.switchView((a.activeView + 1) % viewState(len(viewNames)))
		case key.Matches(msg, keys.CycleUp), key.Matches(msg, keys.CycleDn):
			if next, ok := cycleTodoView(a.activeView, key.Matches(msg, keys.CycleDn)); ok {
				return a.switchView(next)
			}
		}

	case tickMsg:
		cmds := []tea.Cmd{tickCmd()}
		if a.activeView == viewPalette {
			var cmd tea.Cmd
			a.pal, cmd = a.pal.update(msg)
			if cmd != nil {
				cmds = append(cmds, cmd)
			}
		}
		return a, tea.Batch(cmds...)

	case statusMsg:
		a.status = msg.text
		a.statusErr = msg.isError
		return a, nil

	case exportDoneMsg:
		a.status = "Exported to " + msg.path
		a.statusErr = false
		a.exportPicking = false
		return a, nil

	case requestConfirmMsg:
		return a.showConfirm(msg)
	}

	if a.confirmForm != nil {
		return a.updateConfirm(msg)
	}

	return a.updateActiveView(msg)
}

func (a App) switchView(v viewState) (tea.Model, tea.Cmd) {
	a.activeView = v
	switch v {
	case viewPalette:
		return a, a.pal.refresh()
	case viewTodos, viewCompleted, viewDeleted:
		a.todos.setMode(v)
		return a, a.todos.refresh()
	case viewStats:
		return a, a.stats.refresh()
	case viewSettings:
		return a, a.settings.refresh()
	}
	return a, nil
}

func (a App) updateActiveView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch a.activeView {
	case viewPalette:
		a.pal, cmd = a.pal.update(msg)
	case viewTodos, viewCompleted, viewDeleted:
		a.todos, cmd = a.todos.update(msg)
	case viewStats:
		a.stats, cmd = a.stats.update(msg)
	case viewSettings:
		a.settings, cmd = a.settings.update(msg)
	}
	return a, cmd
}

func (a App) isFormActive() bool {
	if a.activeView == viewSettings {
		return a.settings.formActive
	}
	return false
}

// --- Confirm dialog ---

func (a App) showConfirm(msg requestConfirmMsg) (tea.Model, tea.Cmd) {
	*a.confirmOK = false
	a.confirmAction = msg.action
	a.confirmForm = huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(msg.prompt).
				Affirmative("Yes").
				Negative("No").
				Value(a.confirmOK),
		),
	).WithShowHelp(false)
	return a, a.confirmForm.Init()
}

func (a App) updateConfirm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && msg.String() == "esc" {
		a.confirmForm = nil
		a.confirmAction = nil
		return a, nil
	}

	form, cmd := a.confirmForm.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		a.confirmForm = f
	}

	if a.confirmForm.State == huh.StateCompleted {
		action := a.confirmAction
		confirmed := *a.confirmOK
		a.confirmForm = nil
		a.confirmAction = nil
		if confirmed {
			return a, action
		}
		return a, nil
	}

	return a, cmd
}

func (a App) View() string {
	if a.width == 0 {
		return "Loading..."
	}

	header := a.renderHeader()
	footer := a.renderFooter()

	var content string
	switch a.activeView {
	case viewPalette:
		content = a.pal.view()
	case viewTodos, viewCompleted, viewDeleted:
		content = a.todos.view()
	case viewStats:
		content = a.stats.view()
	case viewSettings:
		content = a.settings.view()
	}

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := a.height - headerHeight - footerHeight
	if contentHeight < 1 {
		contentHeight = 1
	}

	if a.exportPicking {
		content = a.renderExportPicker()
	}
	if a.confirmForm != nil {
		content = a.renderConfirm()
	}

	content = lipgloss.NewStyle().
		Width(a.width).
		Height(contentHeight).
		Render(content)

	return lipgloss.JoinVertical(lipgloss.Left, header, content, footer)
}

func (a App) renderHeader() string {
	var tabs []string
	for i, name := range viewNames {
		if viewState(i) == a.activeView {
			tabs = append(tabs, activeTabStyle.Render(name))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(name))
		}
	}

	tabRow := lipgloss.JoinHorizontal(lipgloss.Bottom, tabs...)

	title := lipgloss.NewStyle().Bold(true).Foreground(colorPrimary).Render("tabpal")
	gap := a.width - lipgloss.Width(title) - lipgloss.Width(tabRow) - 4
	if gap < 1 {
		gap = 1
	}
	spacer := lipgloss.NewStyle().Width(gap).Render("")

	return headerStyle.Render(
		lipgloss.JoinHorizontal(lipgloss.Bottom, title, spacer, tabRow),
	)
}

func (a App) renderFooter() string {
	helpView := a.help.View(keys)

	status := ""
	if a.status != "" {
		style := mutedStyle
		if a.statusErr {
			style = errorStyle
		}
		status = style.Render(" " + a.status)
	}

	left := footerStyle.Render(helpView)

	gap := a.width - lipgloss.Width(left) - lipgloss.Width(status) - 2
	if gap < 1 {
		gap = 1
	}
	spacer := lipgloss.NewStyle().Width(gap).Render("")

	return lipgloss.JoinHorizontal(lipgloss.Bottom, left, spacer, status)
}

func (a App) renderConfirm() string {
	w := a.width - 4
	return activePanelStyle.Width(w).Render(a.confirmForm.View())
}

// --- Export picker ---

var exportFormats = []string{"Todos CSV", "Todos JSON", "History CSV"}

func (a App) renderExportPicker() string {
	title := titleStyle.Render("Export")
	var rows []string
	rows = append(rows, title)
	rows = append(rows, "")
	for i, f := range exportFormats {
		cursor := "  "
		style := normalItemStyle
		if i == a.exportCursor {
			cursor = "> "
			style = selectedItemStyle
		}
		rows = append(rows, style.Render(cursor+f))
	}
	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  enter: export  esc: cancel"))

	w := a.width - 4
	return activePanelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func (a App) updateExportPicker(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Up):
		if a.exportCursor > 0 {
			a.exportCursor--
		}
	case key.Matches(msg, keys.Down):
		if a.exportCursor < len(exportFormats)-1 {
			a.exportCursor++
		}
	case key.Matches(msg, keys.Enter):
		a.exportPicking = false
		return a, a.doExport(a.exportCursor)
	case key.Matches(msg, keys.Back):
		a.exportPicking = false
	}
	return a, nil
}

func (a App) doExport(format int) tea.Cmd {
	return func() tea.Msg {
		home, _ := os.UserHomeDir()
		dateStr := time.Now().Format("2006-01-02")

		var path string
		var err error
		switch format {
		case 0:
			path = filepath.Join(home, fmt.Sprintf("tabpal-todos-%s.csv", dateStr))
			state, lerr := a.store.LoadTodo(time.Now().UnixMilli())
			if lerr != nil {
				return statusMsg{text: fmt.Sprintf("Export error: %v", lerr), isError: true}
			}
			err = export.TodosToCSV(state, path)
		case 1:
			path = filepath.Join(home, fmt.Sprintf("tabpal-todos-%s.json", dateStr))
			state, lerr := a.store.LoadTodo(time.Now().UnixMilli())
			if lerr != nil {
				return statusMsg{text: fmt.Sprintf("Export error: %v", lerr), isError: true}
			}
			err = export.TodosToJSON(state, path)
		default:
			path = filepath.Join(home, fmt.Sprintf("tabpal-history-%s.csv", dateStr))
			state, lerr := a.store.LoadPalette()
			if lerr != nil {
				return statusMsg{text: fmt.Sprintf("Export error: %v", lerr), isError: true}
			}
			err = export.HistoryToCSV(state, path)
		}
		if err != nil {
			return statusMsg{text: fmt.Sprintf("Export error: %v", err), isError: true}
		}

		return exportDoneMsg{path: path}
	}
}
