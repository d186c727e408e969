package tui

import (
	"fmt"
	"time"

	"github.com/NimbleMarkets/ntcharts/barchart"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"tabpal/internal/palette"
	"tabpal/internal/todo"
)

const statsDays = 7

type statsModel struct {
	ctrl   *palette.Controller
	mgr    *todo.Manager
	width  int
	height int

	completedChart barchart.Model
	visitsChart    barchart.Model
}

func newStatsModel(c *palette.Controller, m *todo.Manager) statsModel {
	return statsModel{
		ctrl:           c,
		mgr:            m,
		completedChart: barchart.New(60, 8),
		visitsChart:    barchart.New(60, 8),
	}
}

func (s *statsModel) setSize(w, h int) {
	s.width = w
	s.height = h
}

type statsDataMsg struct{}

func (s statsModel) refresh() tea.Cmd {
	if err := s.mgr.Load(); err != nil {
		return errStatus(fmt.Sprintf("Load error: %v", err))
	}
	if err := s.ctrl.Reload(); err != nil {
		return errStatus(fmt.Sprintf("Load error: %v", err))
	}
	return func() tea.Msg { return statsDataMsg{} }
}

func (s statsModel) update(msg tea.Msg) (statsModel, tea.Cmd) {
	if _, ok := msg.(statsDataMsg); ok {
		s.buildCharts()
	}
	return s, nil
}

// dayBuckets counts ms-epoch stamps per local day, oldest first.
func dayBuckets(stamps []int64, now time.Time) []float64 {
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).
		AddDate(0, 0, -(statsDays - 1))
	counts := make([]float64, statsDays)
	for _, ms := range stamps {
		if ms == 0 {
			continue
		}
		t := time.UnixMilli(ms).In(now.Location())
		day := int(t.Sub(start).Hours() / 24)
		if day >= 0 && day < statsDays {
			counts[day]++
		}
	}
	return counts
}

func (s *statsModel) buildCharts() {
	chartWidth := s.width - 8
	if chartWidth < 20 {
		chartWidth = 20
	}

	now := time.Now()
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).
		AddDate(0, 0, -(statsDays - 1))

	var completed []int64
	for _, item := range s.mgr.State().Completed {
		completed = append(completed, item.CompletedAt)
	}

	var visits []int64
	state := s.ctrl.State()
	for _, e := range state.History {
		visits = append(visits, e.LastVisitedAt)
	}

	s.completedChart = buildDayChart(chartWidth, dayBuckets(completed, now), start, successStyle)
	s.visitsChart = buildDayChart(chartWidth, dayBuckets(visits, now), start, lipgloss.NewStyle().Foreground(colorPrimary))
}

func buildDayChart(width int, counts []float64, start time.Time, style lipgloss.Style) barchart.Model {
	chart := barchart.New(width, 8)

	var bars []barchart.BarData
	for i, c := range counts {
		label := start.AddDate(0, 0, i).Format("Mon 02")
		bars = append(bars, barchart.BarData{
			Label: label,
			Values: []barchart.BarValue{
				{Name: "count", Value: c, Style: style},
			},
		})
	}

	chart.PushAll(bars)
	chart.Draw()
	return chart
}

func (s statsModel) view() string {
	w := s.width - 4

	state := s.ctrl.State()
	todos := s.mgr.State()

	summary := mutedStyle.Render(fmt.Sprintf(
		"%d history · %d pinned · %d active todos",
		len(state.History), len(state.Pinned), len(todos.Active),
	))
	header := lipgloss.JoinHorizontal(lipgloss.Bottom, titleStyle.Render("Stats"), "  ", summary)

	return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left,
		header,
		"",
		sectionStyle.Render("Todos completed, last 7 days"),
		s.completedChart.View(),
		"",
		sectionStyle.Render("History visits, last 7 days"),
		s.visitsChart.View(),
	))
}
