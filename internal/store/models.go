package store

import "strings"

// Document keys. The palette document and the todo document are written
// independently; a failed write of one never corrupts the other.
const (
	KeyPalette = "palette"
	KeyTodo    = "todoState"
)

// MaxPinned caps the pinned list.
const MaxPinned = 10

// Settings ranges. Values outside a range are clamped on load and on save.
const (
	MinDwellSeconds = 1
	MaxDwellSeconds = 10
	MinMaxHistory   = 1
	MaxMaxHistory   = 30
)

// HistoryEntry is one recorded visit. URL is the unique key; re-visiting
// moves the entry to the front.
type HistoryEntry struct {
	URL           string `json:"url"`
	Title         string `json:"title"`
	Favicon       string `json:"favicon,omitempty"`
	LastVisitedAt int64  `json:"lastVisitedAt"` // ms since epoch
}

// PinnedEntry is a history item the user marked to persist indefinitely.
type PinnedEntry struct {
	URL     string `json:"url"`
	Title   string `json:"title"`
	Favicon string `json:"favicon,omitempty"`
}

// Settings is the singleton user configuration.
type Settings struct {
	DwellSeconds     int      `json:"dwellSeconds"`
	MaxHistory       int      `json:"maxHistory"`
	ExcludedPatterns []string `json:"excludedPatterns"`
}

// DefaultSettings returns the out-of-box configuration.
func DefaultSettings() Settings {
	return Settings{DwellSeconds: 3, MaxHistory: 10}
}

// Clamp forces every field into its documented range.
func (s Settings) Clamp() Settings {
	s.DwellSeconds = clamp(s.DwellSeconds, MinDwellSeconds, MaxDwellSeconds)
	s.MaxHistory = clamp(s.MaxHistory, MinMaxHistory, MaxMaxHistory)
	return s
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// PaletteState is the palette document: recent history, pinned entries and
// settings, persisted together under KeyPalette.
type PaletteState struct {
	History  []HistoryEntry `json:"history"`
	Pinned   []PinnedEntry  `json:"pinned"`
	Settings Settings       `json:"settings"`
}

// IsPinned reports whether the URL is currently pinned.
func (p *PaletteState) IsPinned(url string) bool {
	for _, e := range p.Pinned {
		if e.URL == url {
			return true
		}
	}
	return false
}

// TodoItem lives in exactly one of the three TodoState lists. CompletedAt
// and DeletedAt are zero while unset; CompletedAt survives a later delete.
type TodoItem struct {
	ID          string `json:"id"`
	Text        string `json:"text"`
	CreatedAt   int64  `json:"createdAt"` // ms since epoch
	UpdatedAt   int64  `json:"updatedAt"`
	CompletedAt int64  `json:"completedAt,omitempty"`
	DeletedAt   int64  `json:"deletedAt,omitempty"`
}

// TodoState is the todo document, persisted whole under KeyTodo.
type TodoState struct {
	Active    []TodoItem `json:"active"`
	Completed []TodoItem `json:"completed"`
	Deleted   []TodoItem `json:"deleted"`
}

// sanitizeHistory drops records that fail shape validation and fills
// defaulted fields, keeping the rest of the document loadable.
func sanitizeHistory(entries []HistoryEntry) []HistoryEntry {
	out := entries[:0]
	for _, e := range entries {
		if e.URL == "" {
			continue
		}
		if e.Title == "" {
			e.Title = e.URL
		}
		out = append(out, e)
	}
	return out
}

func sanitizePinned(entries []PinnedEntry) []PinnedEntry {
	out := entries[:0]
	for _, e := range entries {
		if e.URL == "" {
			continue
		}
		if e.Title == "" {
			e.Title = e.URL
		}
		out = append(out, e)
	}
	return out
}

// sanitizeTodos drops items without text and repairs missing timestamps.
// stampField names the timestamp the list requires (completed/deleted lists
// must carry one to be sweepable); missing stamps default to now.
func sanitizeTodos(items []TodoItem, now int64, stamp func(*TodoItem)) []TodoItem {
	out := items[:0]
	for _, it := range items {
		it.Text = strings.TrimSpace(it.Text)
		if it.Text == "" || it.ID == "" {
			continue
		}
		if it.CreatedAt == 0 {
			it.CreatedAt = now
		}
		if it.UpdatedAt == 0 {
			it.UpdatedAt = it.CreatedAt
		}
		if stamp != nil {
			stamp(&it)
		}
		out = append(out, it)
	}
	return out
}
