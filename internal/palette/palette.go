// Package palette owns the quick-switcher state: pinned entries, ranked
// results, and the selection over both.
package palette

import (
	"strings"
	"time"

	"tabpal/internal/browser"
	"tabpal/internal/pattern"
	"tabpal/internal/rank"
	"tabpal/internal/store"
)

// TabsPrefix switches the palette's source list from history to open tabs.
const TabsPrefix = "/t"

// Row is one selectable line: a pinned entry or a ranked result.
type Row struct {
	Title   string
	URL     string
	Favicon string
	Pinned  bool
}

// Controller composes the ranking engine, the state store and the tab host.
// It is confined to the UI context.
type Controller struct {
	store *store.Store
	host  browser.Host // nil when no browser feed is attached
	now   func() time.Time

	state     store.PaletteState
	query     string
	tabsMode  bool
	results   []Row
	selection int
}

func NewController(s *store.Store, host browser.Host, now func() time.Time) (*Controller, error) {
	if now == nil {
		now = time.Now
	}
	c := &Controller{store: s, host: host, now: now}
	if err := c.Reload(); err != nil {
		return nil, err
	}
	return c, nil
}

// Reload re-reads the palette document and re-runs the current query. The
// dwell tracker writes history from another context, so the UI refreshes
// through here rather than assuming its copy is current.
func (c *Controller) Reload() error {
	state, err := c.store.LoadPalette()
	if err != nil {
		return err
	}
	c.state = state
	c.refreshResults()
	return nil
}

// Search ranks the source list against the query. A query starting with
// TabsPrefix searches live open tabs instead of history; pinned entries are
// always shown unfiltered ahead of the results.
func (c *Controller) Search(query string) {
	c.query = query
	c.refreshResults()
	c.selection = 0
	if len(c.Rows()) == 0 {
		c.selection = -1
	}
}

func (c *Controller) refreshResults() {
	query := strings.TrimSpace(c.query)
	c.tabsMode = strings.HasPrefix(query, TabsPrefix)

	var source []Row
	if c.tabsMode {
		query = strings.TrimSpace(strings.TrimPrefix(query, TabsPrefix))
		source = c.openTabRows()
	} else {
		for _, h := range c.state.History {
			source = append(source, Row{Title: h.Title, URL: h.URL, Favicon: h.Favicon})
		}
	}

	items := make([]rank.Item, len(source))
	byURL := make(map[string]Row, len(source))
	for i, r := range source {
		items[i] = rank.Item{Title: r.Title, URL: r.URL}
		byURL[r.URL] = r
	}

	ranked := rank.Rank(items, query)
	c.results = c.results[:0]
	for _, it := range ranked {
		c.results = append(c.results, byURL[it.URL])
	}

	if c.selection >= len(c.Rows()) {
		c.selection = len(c.Rows()) - 1
	}
}

func (c *Controller) openTabRows() []Row {
	if c.host == nil {
		return nil
	}
	var rows []Row
	for _, t := range c.host.Tabs() {
		if pattern.Skippable(t.URL) {
			continue
		}
		title := t.Title
		if title == "" {
			title = t.URL
		}
		rows = append(rows, Row{Title: title, URL: t.URL, Favicon: t.Favicon})
	}
	return rows
}

// Rows returns the combined selectable sequence: pinned first, then results.
func (c *Controller) Rows() []Row {
	rows := make([]Row, 0, len(c.state.Pinned)+len(c.results))
	for _, p := range c.state.Pinned {
		rows = append(rows, Row{Title: p.Title, URL: p.URL, Favicon: p.Favicon, Pinned: true})
	}
	return append(rows, c.results...)
}

// TabsMode reports whether the current query targets open tabs.
func (c *Controller) TabsMode() bool { return c.tabsMode }

// State returns the loaded palette document.
func (c *Controller) State() store.PaletteState { return c.state }

// Settings returns the current (clamped) settings.
func (c *Controller) Settings() store.Settings { return c.state.Settings }

// PinnedCount is the number of rows belonging to the pinned section.
func (c *Controller) PinnedCount() int { return len(c.state.Pinned) }

// Selection returns the selected index into Rows, or -1 when empty.
func (c *Controller) Selection() int {
	if len(c.Rows()) == 0 {
		return -1
	}
	if c.selection < 0 {
		return 0
	}
	return c.selection
}

// MoveSelection moves circularly over the combined sequence.
func (c *Controller) MoveSelection(delta int) {
	n := len(c.Rows())
	if n == 0 {
		c.selection = -1
		return
	}
	c.selection = ((c.Selection() + delta) % n + n) % n
}

// Selected returns the currently selected row.
func (c *Controller) Selected() (Row, bool) {
	rows := c.Rows()
	i := c.Selection()
	if i < 0 || i >= len(rows) {
		return Row{}, false
	}
	return rows[i], true
}

// Activate asks the host to surface the selected URL. The host decides
// whether to focus an existing tab or open a new one. Returns the URL so the
// caller can close the palette.
func (c *Controller) Activate() (string, error) {
	row, ok := c.Selected()
	if !ok {
		return "", nil
	}
	if c.host != nil {
		if err := c.host.Open(row.URL); err != nil {
			return "", err
		}
	}
	return row.URL, nil
}

// TogglePin moves the selected row between the pinned set and history.
// Pinning removes the URL from history; unpinning puts it back at the front.
// The selection follows the URL across the re-render when it is still
// visible.
func (c *Controller) TogglePin() error {
	row, ok := c.Selected()
	if !ok {
		return nil
	}

	if c.state.IsPinned(row.URL) {
		var entry store.PinnedEntry
		keep := c.state.Pinned[:0]
		for _, p := range c.state.Pinned {
			if p.URL == row.URL {
				entry = p
				continue
			}
			keep = append(keep, p)
		}
		c.state.Pinned = keep

		hist := []store.HistoryEntry{{
			URL:           entry.URL,
			Title:         entry.Title,
			Favicon:       entry.Favicon,
			LastVisitedAt: c.now().UnixMilli(),
		}}
		for _, h := range c.state.History {
			if h.URL != entry.URL {
				hist = append(hist, h)
			}
		}
		if len(hist) > c.state.Settings.MaxHistory {
			hist = hist[:c.state.Settings.MaxHistory]
		}
		c.state.History = hist
	} else {
		entry := store.PinnedEntry{URL: row.URL, Title: row.Title, Favicon: row.Favicon}
		keep := c.state.History[:0]
		for _, h := range c.state.History {
			if h.URL == row.URL {
				entry = store.PinnedEntry{URL: h.URL, Title: h.Title, Favicon: h.Favicon}
				continue
			}
			keep = append(keep, h)
		}
		c.state.History = keep

		c.state.Pinned = append([]store.PinnedEntry{entry}, c.state.Pinned...)
		if len(c.state.Pinned) > store.MaxPinned {
			c.state.Pinned = c.state.Pinned[:store.MaxPinned]
		}
	}

	if err := c.store.SavePalette(c.state); err != nil {
		return err
	}
	c.refreshResults()
	c.selectURL(row.URL)
	return nil
}

// DeleteEntry removes the selected URL from both the pinned set and history.
func (c *Controller) DeleteEntry() error {
	row, ok := c.Selected()
	if !ok {
		return nil
	}

	keepHist := c.state.History[:0]
	for _, h := range c.state.History {
		if h.URL != row.URL {
			keepHist = append(keepHist, h)
		}
	}
	c.state.History = keepHist

	keepPinned := c.state.Pinned[:0]
	for _, p := range c.state.Pinned {
		if p.URL != row.URL {
			keepPinned = append(keepPinned, p)
		}
	}
	c.state.Pinned = keepPinned

	if err := c.store.SavePalette(c.state); err != nil {
		return err
	}
	c.refreshResults()
	if c.selection >= len(c.Rows()) {
		c.selection = len(c.Rows()) - 1
	}
	return nil
}

// UpdateSettings clamps and persists new settings, then refreshes derived
// state (a smaller MaxHistory truncates the stored history).
func (c *Controller) UpdateSettings(s store.Settings) error {
	c.state.Settings = s.Clamp()
	if len(c.state.History) > c.state.Settings.MaxHistory {
		c.state.History = c.state.History[:c.state.Settings.MaxHistory]
	}
	if err := c.store.SavePalette(c.state); err != nil {
		return err
	}
	c.refreshResults()
	return nil
}

// ClearHistory wipes history; pinned entries survive. The UI confirms the
// destructive action before calling this.
func (c *Controller) ClearHistory() error {
	c.state.History = nil
	if err := c.store.SavePalette(c.state); err != nil {
		return err
	}
	c.refreshResults()
	return nil
}

func (c *Controller) selectURL(url string) {
	for i, r := range c.Rows() {
		if r.URL == url {
			c.selection = i
			return
		}
	}
	if c.selection >= len(c.Rows()) {
		c.selection = len(c.Rows()) - 1
	}
}
