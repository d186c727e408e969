package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"tabpal/internal/palette"
)

// searchDebounce is the trailing-edge delay before a keystroke reaches the
// ranking engine.
const searchDebounce = 120 * time.Millisecond

type paletteModel struct {
	ctrl   *palette.Controller
	width  int
	height int

	input textinput.Model
	gen   int // debounce generation
}

func newPaletteModel(c *palette.Controller) paletteModel {
	ti := textinput.New()
	ti.Placeholder = "Search history, or /t for open tabs"
	ti.Prompt = "> "
	ti.Focus()

	return paletteModel{ctrl: c, input: ti}
}

func (p *paletteModel) setSize(w, h int) {
	p.width = w
	p.height = h
}

func (p paletteModel) Init() tea.Cmd {
	return textinput.Blink
}

func (p paletteModel) refresh() tea.Cmd {
	if err := p.ctrl.Reload(); err != nil {
		return errStatus(fmt.Sprintf("Load error: %v", err))
	}
	return nil
}

func (p paletteModel) update(msg tea.Msg) (paletteModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		return p, p.refresh()

	case searchDebounceMsg:
		if msg.gen == p.gen {
			p.ctrl.Search(p.input.Value())
		}
		return p, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Up):
			p.ctrl.MoveSelection(-1)
			return p, nil
		case key.Matches(msg, keys.Down):
			p.ctrl.MoveSelection(1)
			return p, nil
		case key.Matches(msg, keys.Enter):
			url, err := p.ctrl.Activate()
			if err != nil {
				return p, errStatus(fmt.Sprintf("Open error: %v", err))
			}
			if url == "" {
				return p, nil
			}
			return p, status("Opening " + url)
		case key.Matches(msg, keys.Pin):
			if err := p.ctrl.TogglePin(); err != nil {
				return p, errStatus(fmt.Sprintf("Pin error: %v", err))
			}
			return p, nil
		case key.Matches(msg, keys.Remove):
			if err := p.ctrl.DeleteEntry(); err != nil {
				return p, errStatus(fmt.Sprintf("Delete error: %v", err))
			}
			return p, nil
		case key.Matches(msg, keys.Back):
			p.input.SetValue("")
			p.gen++
			p.ctrl.Search("")
			return p, nil
		}

		var cmd tea.Cmd
		before := p.input.Value()
		p.input, cmd = p.input.Update(msg)
		if p.input.Value() != before {
			p.gen++
			gen := p.gen
			return p, tea.Batch(cmd, tea.Tick(searchDebounce, func(time.Time) tea.Msg {
				return searchDebounceMsg{gen: gen}
			}))
		}
		return p, cmd
	}

	var cmd tea.Cmd
	p.input, cmd = p.input.Update(msg)
	return p, cmd
}

func (p paletteModel) view() string {
	w := p.width - 4

	title := titleStyle.Render("Palette")
	mode := mutedStyle.Render("history")
	if p.ctrl.TabsMode() {
		mode = accentStyle.Render("open tabs")
	}
	header := lipgloss.JoinHorizontal(lipgloss.Bottom, title, "  ", mode)

	rows := []string{header, "", p.input.View(), ""}

	items := p.ctrl.Rows()
	sel := p.ctrl.Selection()
	pinned := p.ctrl.PinnedCount()

	if len(items) == 0 {
		rows = append(rows, mutedStyle.Render("  No matches"))
	}

	maxRows := p.height - 10
	if maxRows < 3 {
		maxRows = 3
	}

	for i, it := range items {
		if i >= maxRows {
			rows = append(rows, mutedStyle.Render(fmt.Sprintf("  … %d more", len(items)-i)))
			break
		}
		if i == 0 && it.Pinned {
			rows = append(rows, sectionStyle.Render("  Pinned"))
		}
		if pinned > 0 && i == pinned {
			section := "  Recent"
			if p.ctrl.TabsMode() {
				section = "  Open tabs"
			}
			rows = append(rows, "", sectionStyle.Render(section))
		}
		rows = append(rows, p.renderRow(it, i == sel, w))
	}

	hint := mutedStyle.Render("  enter: open  ctrl+p: pin  ctrl+x: delete  /t: tabs")
	rows = append(rows, "", hint)

	return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func (p paletteModel) renderRow(r palette.Row, selected bool, w int) string {
	cursor := "  "
	style := normalItemStyle
	if selected {
		cursor = "> "
		style = selectedItemStyle
	}

	marker := "  "
	if r.Pinned {
		marker = pinStyle.Render("★ ")
	}

	title := r.Title
	if title == "" {
		title = r.URL
	}
	line := cursor + marker + style.Render(truncate(title, w/2))
	url := urlStyle.Render("  " + truncate(r.URL, w/2-4))
	return line + url
}

func truncate(s string, n int) string {
	if n < 4 {
		n = 4
	}
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-1]) + "…"
}
