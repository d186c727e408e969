package palette

import (
	"fmt"
	"testing"
	"time"

	"tabpal/internal/browser"
	"tabpal/internal/store"
)

type fakeHost struct {
	tabs   []browser.Tab
	opened []string
}

func (h *fakeHost) ActiveTab() (browser.Tab, error) { return browser.Tab{}, browser.ErrNoTab }

func (h *fakeHost) Tab(id int) (browser.Tab, error) {
	for _, t := range h.tabs {
		if t.ID == id {
			return t, nil
		}
	}
	return browser.Tab{}, browser.ErrNoTab
}

func (h *fakeHost) Tabs() []browser.Tab { return h.tabs }

func (h *fakeHost) Open(url string) error {
	h.opened = append(h.opened, url)
	return nil
}

func (h *fakeHost) Events() <-chan browser.Event { return nil }

func newTestController(t *testing.T, host browser.Host) (*Controller, *store.Store) {
	t.Helper()
	s, err := store.NewMemory()
	if err != nil {
		t.Fatalf("new memory store: %v", err)
	}
	t.Cleanup(func() { s.Close() })

	now := time.UnixMilli(1_000_000_000_000)
	c, err := NewController(s, host, func() time.Time { return now })
	if err != nil {
		t.Fatalf("new controller: %v", err)
	}
	return c, s
}

func seedHistory(t *testing.T, s *store.Store, c *Controller, urls ...string) {
	t.Helper()
	state, err := s.LoadPalette()
	if err != nil {
		t.Fatal(err)
	}
	var hist []store.HistoryEntry
	for i, u := range urls {
		hist = append(hist, store.HistoryEntry{
			URL: u, Title: "Title " + u, LastVisitedAt: int64(1000 - i),
		})
	}
	state.History = hist
	if err := s.SavePalette(state); err != nil {
		t.Fatal(err)
	}
	if err := c.Reload(); err != nil {
		t.Fatal(err)
	}
}

func rowURLs(rows []Row) []string {
	var out []string
	for _, r := range rows {
		out = append(out, r.URL)
	}
	return out
}

func TestSearchHistory(t *testing.T) {
	c, s := newTestController(t, nil)
	seedHistory(t, s, c, "https://go.dev", "https://news.example")

	c.Search("go")
	rows := c.Rows()
	if len(rows) != 1 || rows[0].URL != "https://go.dev" {
		t.Fatalf("rows = %v", rowURLs(rows))
	}
}

func TestSearchEmptyQueryIsRecencyOrder(t *testing.T) {
	c, s := newTestController(t, nil)
	seedHistory(t, s, c, "https://a.example", "https://b.example", "https://c.example")

	c.Search("")
	got := rowURLs(c.Rows())
	want := []string{"https://a.example", "https://b.example", "https://c.example"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("rows = %v, want %v", got, want)
		}
	}
}

func TestSearchTabsMode(t *testing.T) {
	host := &fakeHost{tabs: []browser.Tab{
		{ID: 1, URL: "https://docs.example", Title: "Docs"},
		{ID: 2, URL: "chrome://settings", Title: "Settings"},
		{ID: 3, URL: "https://mail.example", Title: "Mail"},
	}}
	c, s := newTestController(t, host)
	seedHistory(t, s, c, "https://history.example")

	c.Search("/t")
	if !c.TabsMode() {
		t.Fatal("expected tabs mode")
	}
	got := rowURLs(c.Rows())
	// Internal scheme filtered; history ignored in tabs mode.
	want := []string{"https://docs.example", "https://mail.example"}
	if len(got) != len(want) {
		t.Fatalf("rows = %v, want %v", got, want)
	}

	c.Search("/t mail")
	got = rowURLs(c.Rows())
	if len(got) != 1 || got[0] != "https://mail.example" {
		t.Fatalf("rows = %v", got)
	}
}

func TestSearchTabsModeWithoutHost(t *testing.T) {
	c, s := newTestController(t, nil)
	seedHistory(t, s, c, "https://history.example")

	c.Search("/t anything")
	if len(c.Rows()) != 0 {
		t.Fatalf("no host should mean no tab rows, got %v", rowURLs(c.Rows()))
	}
}

func TestPinnedAlwaysShownUnfiltered(t *testing.T) {
	c, s := newTestController(t, nil)
	state, _ := s.LoadPalette()
	state.Pinned = []store.PinnedEntry{{URL: "https://pin.example", Title: "Pin"}}
	state.History = []store.HistoryEntry{{URL: "https://go.dev", Title: "Go", LastVisitedAt: 1}}
	s.SavePalette(state)
	c.Reload()

	c.Search("go")
	rows := c.Rows()
	if len(rows) != 2 {
		t.Fatalf("rows = %v", rowURLs(rows))
	}
	if !rows[0].Pinned || rows[0].URL != "https://pin.example" {
		t.Fatalf("pinned row should lead even when it does not match: %+v", rows[0])
	}
}

func TestMoveSelectionCircular(t *testing.T) {
	c, s := newTestController(t, nil)
	seedHistory(t, s, c, "https://a.example", "https://b.example", "https://c.example")
	c.Search("")

	if c.Selection() != 0 {
		t.Fatalf("initial selection = %d", c.Selection())
	}
	c.MoveSelection(1)
	c.MoveSelection(1)
	if c.Selection() != 2 {
		t.Fatalf("selection = %d, want 2", c.Selection())
	}
	c.MoveSelection(1)
	if c.Selection() != 0 {
		t.Fatalf("selection should wrap to 0, got %d", c.Selection())
	}
	c.MoveSelection(-1)
	if c.Selection() != 2 {
		t.Fatalf("selection should wrap to end, got %d", c.Selection())
	}
}

func TestMoveSelectionEmptyNoop(t *testing.T) {
	c, _ := newTestController(t, nil)
	c.Search("no matches")
	c.MoveSelection(1)
	if c.Selection() != -1 {
		t.Fatalf("selection on empty rows = %d, want -1", c.Selection())
	}
}

func TestActivateOpensSelected(t *testing.T) {
	host := &fakeHost{}
	c, s := newTestController(t, host)
	seedHistory(t, s, c, "https://a.example", "https://b.example")
	c.Search("")
	c.MoveSelection(1)

	url, err := c.Activate()
	if err != nil {
		t.Fatal(err)
	}
	if url != "https://b.example" {
		t.Fatalf("activated %q", url)
	}
	if len(host.opened) != 1 || host.opened[0] != "https://b.example" {
		t.Fatalf("host.opened = %v", host.opened)
	}
}

func TestTogglePinInvolution(t *testing.T) {
	c, s := newTestController(t, nil)
	seedHistory(t, s, c, "https://a.example", "https://b.example")
	c.Search("")

	// Pin a.example.
	if err := c.TogglePin(); err != nil {
		t.Fatal(err)
	}
	state, _ := s.LoadPalette()
	if !state.IsPinned("https://a.example") {
		t.Fatal("expected a.example pinned")
	}
	for _, h := range state.History {
		if h.URL == "https://a.example" {
			t.Fatal("pinned url must leave history")
		}
	}

	// Selection follows the url into the pinned section.
	row, ok := c.Selected()
	if !ok || row.URL != "https://a.example" || !row.Pinned {
		t.Fatalf("selection did not follow url: %+v", row)
	}

	// Unpin restores it into history without duplication.
	if err := c.TogglePin(); err != nil {
		t.Fatal(err)
	}
	state, _ = s.LoadPalette()
	if state.IsPinned("https://a.example") {
		t.Fatal("expected a.example unpinned")
	}
	count := 0
	for _, h := range state.History {
		if h.URL == "https://a.example" {
			count++
		}
	}
	if count != 1 {
		t.Fatalf("a.example appears %d times in history, want 1", count)
	}
}

func TestPinnedCap(t *testing.T) {
	c, s := newTestController(t, nil)

	var urls []string
	for i := 0; i < 12; i++ {
		urls = append(urls, fmt.Sprintf("https://h%d.example", i))
	}
	seedHistory(t, s, c, urls...)

	for i := 0; i < 12; i++ {
		c.Search("")
		if c.PinnedCount() == len(c.Rows()) {
			break // nothing left to pin
		}
		// Move onto the first history row, past the pinned block.
		c.MoveSelection(c.PinnedCount())
		if err := c.TogglePin(); err != nil {
			t.Fatal(err)
		}
		state, _ := s.LoadPalette()
		if len(state.Pinned) > store.MaxPinned {
			t.Fatalf("pinned exceeded cap: %d", len(state.Pinned))
		}
	}

	state, _ := s.LoadPalette()
	if len(state.Pinned) != store.MaxPinned {
		t.Fatalf("pinned = %d, want %d", len(state.Pinned), store.MaxPinned)
	}
}

func TestDeleteEntryRemovesEverywhere(t *testing.T) {
	c, s := newTestController(t, nil)
	state, _ := s.LoadPalette()
	state.Pinned = []store.PinnedEntry{{URL: "https://both.example", Title: "Both"}}
	state.History = []store.HistoryEntry{{URL: "https://both.example", Title: "Both", LastVisitedAt: 1}}
	s.SavePalette(state)
	c.Reload()
	c.Search("")

	if err := c.DeleteEntry(); err != nil {
		t.Fatal(err)
	}
	state, _ = s.LoadPalette()
	if len(state.Pinned) != 0 || len(state.History) != 0 {
		t.Fatalf("entry survived delete: %+v", state)
	}
}

func TestUpdateSettingsClampsAndTruncates(t *testing.T) {
	c, s := newTestController(t, nil)
	seedHistory(t, s, c, "https://a.example", "https://b.example", "https://c.example")

	if err := c.UpdateSettings(store.Settings{DwellSeconds: 99, MaxHistory: 2}); err != nil {
		t.Fatal(err)
	}
	got := c.Settings()
	if got.DwellSeconds != store.MaxDwellSeconds {
		t.Fatalf("dwellSeconds = %d", got.DwellSeconds)
	}

	state, _ := s.LoadPalette()
	if len(state.History) != 2 {
		t.Fatalf("history should be truncated to 2, got %d", len(state.History))
	}
}

func TestClearHistoryKeepsPinned(t *testing.T) {
	c, s := newTestController(t, nil)
	state, _ := s.LoadPalette()
	state.Pinned = []store.PinnedEntry{{URL: "https://pin.example", Title: "Pin"}}
	state.History = []store.HistoryEntry{{URL: "https://h.example", Title: "H", LastVisitedAt: 1}}
	s.SavePalette(state)
	c.Reload()

	if err := c.ClearHistory(); err != nil {
		t.Fatal(err)
	}
	state, _ = s.LoadPalette()
	if len(state.History) != 0 {
		t.Fatal("history should be empty")
	}
	if len(state.Pinned) != 1 {
		t.Fatal("pinned should survive a history clear")
	}
}
