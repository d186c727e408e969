package browser

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"sync"
)

// command is the wire shape of requests sent back to the browser companion.
type command struct {
	Type string `json:"type"`
	URL  string `json:"url,omitempty"`
}

// StreamHost is a Host fed by a JSONL event stream. It maintains a live tab
// table from the feed and writes navigation commands as JSONL to a sink.
//
// The reader goroutine owns the decode loop; the tab table is shared with
// whoever calls the snapshot methods, so it sits behind a mutex.
type StreamHost struct {
	mu       sync.Mutex
	tabs     []Tab // newest (most recently touched) first
	activeID int
	focusWin int

	cmdMu sync.Mutex
	cmds  io.Writer

	events chan Event
}

// NewStreamHost starts decoding events from r. Commands are written to w;
// a nil w turns Open into a no-op.
func NewStreamHost(r io.Reader, w io.Writer) *StreamHost {
	h := &StreamHost{
		activeID: -1,
		focusWin: WindowNone,
		cmds:     w,
		events:   make(chan Event, 16),
	}
	go h.readLoop(r)
	return h
}

func (h *StreamHost) readLoop(r io.Reader) {
	defer close(h.events)

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		line := sc.Bytes()
		if len(line) == 0 {
			continue
		}
		var ev Event
		if err := json.Unmarshal(line, &ev); err != nil {
			// Malformed lines are dropped; the feed keeps flowing.
			continue
		}
		h.apply(ev)
		h.events <- ev
	}
}

// apply folds one event into the tab table.
func (h *StreamHost) apply(ev Event) {
	h.mu.Lock()
	defer h.mu.Unlock()

	switch ev.Type {
	case EventTabCreated, EventTabUpdated, EventNavComplete:
		h.upsertLocked(Tab{
			ID:       ev.TabID,
			WindowID: ev.WindowID,
			URL:      ev.URL,
			Title:    ev.Title,
			Favicon:  ev.Favicon,
		})
	case EventTabActivated:
		h.activeID = ev.TabID
		if ev.URL != "" {
			h.upsertLocked(Tab{
				ID:       ev.TabID,
				WindowID: ev.WindowID,
				URL:      ev.URL,
				Title:    ev.Title,
				Favicon:  ev.Favicon,
			})
		}
	case EventWindowFocus:
		h.focusWin = ev.WindowID
	case EventTabRemoved:
		for i, t := range h.tabs {
			if t.ID == ev.TabID {
				h.tabs = append(h.tabs[:i], h.tabs[i+1:]...)
				break
			}
		}
		if h.activeID == ev.TabID {
			h.activeID = -1
		}
	}
}

// upsertLocked moves the tab to the front, merging fields so a sparse event
// does not wipe what an earlier one reported.
func (h *StreamHost) upsertLocked(tab Tab) {
	for i, t := range h.tabs {
		if t.ID == tab.ID {
			if tab.URL == "" {
				tab.URL = t.URL
			}
			if tab.Title == "" {
				tab.Title = t.Title
			}
			if tab.Favicon == "" {
				tab.Favicon = t.Favicon
			}
			if tab.WindowID == 0 {
				tab.WindowID = t.WindowID
			}
			h.tabs = append(h.tabs[:i], h.tabs[i+1:]...)
			break
		}
	}
	h.tabs = append([]Tab{tab}, h.tabs...)
}

func (h *StreamHost) ActiveTab() (Tab, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.activeID < 0 {
		return Tab{}, ErrNoTab
	}
	for _, t := range h.tabs {
		if t.ID == h.activeID {
			return t, nil
		}
	}
	return Tab{}, ErrNoTab
}

func (h *StreamHost) Tab(id int) (Tab, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, t := range h.tabs {
		if t.ID == id {
			return t, nil
		}
	}
	return Tab{}, ErrNoTab
}

func (h *StreamHost) Tabs() []Tab {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]Tab, len(h.tabs))
	copy(out, h.tabs)
	return out
}

func (h *StreamHost) Open(url string) error {
	if h.cmds == nil {
		return nil
	}
	h.cmdMu.Lock()
	defer h.cmdMu.Unlock()
	data, err := json.Marshal(command{Type: "open", URL: url})
	if err != nil {
		return fmt.Errorf("encode open command: %w", err)
	}
	if _, err := h.cmds.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("write open command: %w", err)
	}
	return nil
}

func (h *StreamHost) Events() <-chan Event {
	return h.events
}
