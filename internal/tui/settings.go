package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"tabpal/internal/palette"
	"tabpal/internal/store"
)

type settingsModel struct {
	ctrl   *palette.Controller
	width  int
	height int

	formActive bool
	form       *huh.Form

	// Form values as pointers (survive value copies)
	dwell      *string
	maxHistory *string
	excluded   *string
}

func newSettingsModel(c *palette.Controller) settingsModel {
	d, m, e := "", "", ""
	return settingsModel{
		ctrl:       c,
		dwell:      &d,
		maxHistory: &m,
		excluded:   &e,
	}
}

func (s *settingsModel) setSize(w, h int) {
	s.width = w
	s.height = h
}

func (s settingsModel) refresh() tea.Cmd {
	if err := s.ctrl.Reload(); err != nil {
		return errStatus(fmt.Sprintf("Load error: %v", err))
	}
	return nil
}

func (s settingsModel) update(msg tea.Msg) (settingsModel, tea.Cmd) {
	if s.formActive && s.form != nil {
		return s.updateForm(msg)
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, keys.Enter):
			return s.showForm()
		case key.Matches(msg, keys.ClearAll):
			ctrl := s.ctrl
			return s, func() tea.Msg {
				return requestConfirmMsg{
					prompt: "Clear history? Pinned entries are kept.",
					action: func() tea.Msg {
						if err := ctrl.ClearHistory(); err != nil {
							return statusMsg{text: fmt.Sprintf("Clear error: %v", err), isError: true}
						}
						return statusMsg{text: "History cleared"}
					},
				}
			}
		}
	}
	return s, nil
}

func (s settingsModel) showForm() (settingsModel, tea.Cmd) {
	cur := s.ctrl.Settings()
	*s.dwell = strconv.Itoa(cur.DwellSeconds)
	*s.maxHistory = strconv.Itoa(cur.MaxHistory)
	*s.excluded = strings.Join(cur.ExcludedPatterns, "\n")

	s.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title(fmt.Sprintf("Dwell time (seconds, %d-%d)", store.MinDwellSeconds, store.MaxDwellSeconds)).
				Value(s.dwell),
			huh.NewInput().
				Title(fmt.Sprintf("History size (%d-%d)", store.MinMaxHistory, store.MaxMaxHistory)).
				Value(s.maxHistory),
			huh.NewText().
				Title("Excluded URL patterns (one glob per line, * matches anything)").
				Value(s.excluded),
		).Title("Palette"),
	).WithShowHelp(true).WithShowErrors(true)

	s.formActive = true
	return s, s.form.Init()
}

func (s settingsModel) updateForm(msg tea.Msg) (settingsModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			s.formActive = false
			s.form = nil
			return s, nil
		}
	}

	form, cmd := s.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		s.form = f
	}

	if s.form.State == huh.StateCompleted {
		s.formActive = false
		s.form = nil
		return s, s.save()
	}

	return s, cmd
}

func (s settingsModel) save() tea.Cmd {
	next := s.ctrl.Settings()
	if v, err := strconv.Atoi(strings.TrimSpace(*s.dwell)); err == nil {
		next.DwellSeconds = v
	}
	if v, err := strconv.Atoi(strings.TrimSpace(*s.maxHistory)); err == nil {
		next.MaxHistory = v
	}
	next.ExcludedPatterns = splitPatterns(*s.excluded)

	if err := s.ctrl.UpdateSettings(next); err != nil {
		return errStatus(fmt.Sprintf("Save error: %v", err))
	}
	return status("Settings saved")
}

func splitPatterns(raw string) []string {
	var out []string
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			out = append(out, line)
		}
	}
	return out
}

func (s settingsModel) view() string {
	w := s.width - 4

	if s.formActive && s.form != nil {
		title := titleStyle.Render("Settings")
		return panelStyle.Width(w).Render(
			lipgloss.JoinVertical(lipgloss.Left, title, "", s.form.View()),
		)
	}

	cur := s.ctrl.Settings()

	var rows []string
	rows = append(rows, titleStyle.Render("Settings"))
	rows = append(rows, "")
	rows = append(rows, settingRow("Dwell time", fmt.Sprintf("%d s", cur.DwellSeconds)))
	rows = append(rows, settingRow("History size", strconv.Itoa(cur.MaxHistory)))

	if len(cur.ExcludedPatterns) == 0 {
		rows = append(rows, settingRow("Excluded patterns", "none"))
	} else {
		rows = append(rows, settingRow("Excluded patterns", cur.ExcludedPatterns[0]))
		for _, p := range cur.ExcludedPatterns[1:] {
			rows = append(rows, settingRow("", p))
		}
	}

	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("Press enter to edit, ctrl+l to clear history"))

	return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func settingRow(label, value string) string {
	l := lipgloss.NewStyle().Width(24).Render(label)
	return fmt.Sprintf("  %s %s", l, sectionStyle.Render(value))
}
