// Package browser abstracts the tab/window side of the running browser.
//
// A Host hands out tab snapshots, opens URLs, and republishes the browser's
// tab lifecycle as a stream of events. The production implementation decodes
// a JSONL feed written by a browser-side companion; tests substitute fakes.
package browser

import "errors"

// WindowNone marks a focus-change event where no browser window has focus.
const WindowNone = -1

// ErrNoTab is returned when a tab id no longer resolves. Tabs close at any
// time, so callers treat this as an expected race and skip the dependent
// action.
var ErrNoTab = errors.New("browser: no such tab")

// Tab is a point-in-time snapshot of one browser tab.
type Tab struct {
	ID       int    `json:"id"`
	WindowID int    `json:"windowId"`
	URL      string `json:"url"`
	Title    string `json:"title"`
	Favicon  string `json:"favicon,omitempty"`
}

// EventType enumerates the tab lifecycle events a Host republishes.
type EventType string

const (
	EventTabActivated  EventType = "tab_activated"
	EventWindowFocus   EventType = "window_focus"
	EventNavComplete   EventType = "nav_complete"
	EventTabCreated    EventType = "tab_created"
	EventTabRemoved    EventType = "tab_removed"
	EventTabUpdated    EventType = "tab_updated"
)

// Event is one entry in the browser event feed.
type Event struct {
	Type     EventType `json:"type"`
	TabID    int       `json:"tabId,omitempty"`
	WindowID int       `json:"windowId,omitempty"`
	URL      string    `json:"url,omitempty"`
	Title    string    `json:"title,omitempty"`
	Favicon  string    `json:"favicon,omitempty"`
	TS       int64     `json:"ts,omitempty"`
}

// Host is the tab/window collaborator the palette and dwell tracker consume.
type Host interface {
	// ActiveTab returns the focused tab of the focused window, or ErrNoTab.
	ActiveTab() (Tab, error)
	// Tab resolves a tab id, or ErrNoTab if it has gone away.
	Tab(id int) (Tab, error)
	// Tabs lists the currently open tabs, newest first.
	Tabs() []Tab
	// Open asks the browser to surface the URL: focus an existing tab when
	// one already shows it, otherwise create a new one.
	Open(url string) error
	// Events delivers the tab lifecycle feed. The channel closes when the
	// underlying feed ends.
	Events() <-chan Event
}
