// Package dwell credits a visit to history once a tab has held focus long
// enough.
//
// The tracker owns a single active-session slot. Switching tabs or losing
// window focus settles the previous session: if the tab held focus for at
// least the configured dwell time and its URL is recordable, a history entry
// is upserted through the store.
package dwell

import (
	"context"
	"errors"
	"time"

	"tabpal/internal/browser"
	"tabpal/internal/pattern"
	"tabpal/internal/store"
)

// Clock abstracts time so the dwell boundary is testable.
type Clock interface {
	Now() time.Time
}

// SystemClock is the production Clock.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// session is the single active slot: which tab has focus and since when.
type session struct {
	tabID     int
	windowID  int
	startedAt time.Time
}

// Tracker is the background-context dwell state machine.
type Tracker struct {
	clock Clock
	host  browser.Host
	store *store.Store

	active *session
}

func NewTracker(clock Clock, host browser.Host, st *store.Store) *Tracker {
	return &Tracker{clock: clock, host: host, store: st}
}

// Run consumes the host's event feed until the context is done or the feed
// closes. Storage errors for a single event are dropped: this is a
// single-user local tool and the next eligible visit writes again.
func (t *Tracker) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-t.host.Events():
			if !ok {
				return
			}
			t.handle(ev)
		}
	}
}

func (t *Tracker) handle(ev browser.Event) {
	switch ev.Type {
	case browser.EventTabActivated:
		_ = t.TabActivated(ev.TabID, ev.WindowID)
	case browser.EventWindowFocus:
		_ = t.WindowFocusChanged(ev.WindowID)
	case browser.EventNavComplete:
		t.NavigationComplete(ev.TabID)
	}
}

// TabActivated settles any session for a different tab, then starts a fresh
// session for the newly focused tab.
func (t *Tracker) TabActivated(tabID, windowID int) error {
	now := t.clock.Now()

	var err error
	if t.active != nil && t.active.tabID != tabID {
		err = t.settle(now)
	}

	if tabID > 0 && windowID > 0 {
		t.active = &session{tabID: tabID, windowID: windowID, startedAt: now}
	} else {
		t.active = nil
	}
	return err
}

// WindowFocusChanged settles the current session. When no window has focus
// the slot empties; otherwise the session re-anchors on whichever tab is
// active now.
func (t *Tracker) WindowFocusChanged(windowID int) error {
	now := t.clock.Now()

	err := t.settle(now)
	t.active = nil

	if windowID == browser.WindowNone {
		return err
	}

	tab, tabErr := t.host.ActiveTab()
	if tabErr != nil {
		// The window may have closed between the event and the query.
		return err
	}
	t.active = &session{tabID: tab.ID, windowID: windowID, startedAt: now}
	return err
}

// NavigationComplete restarts the dwell timer when the session tab finishes
// a navigation. Time spent on the page before a same-tab navigation is not
// credited to the new page.
func (t *Tracker) NavigationComplete(tabID int) {
	if t.active != nil && t.active.tabID == tabID {
		t.active.startedAt = t.clock.Now()
	}
}

// settle evaluates the current session for eligibility and commits a history
// entry when it qualifies. The slot itself is left for the caller to replace.
func (t *Tracker) settle(now time.Time) error {
	if t.active == nil {
		return nil
	}

	tab, err := t.host.Tab(t.active.tabID)
	if errors.Is(err, browser.ErrNoTab) {
		// The tab closed before we could look at it. Expected race.
		return nil
	}
	if err != nil {
		return err
	}

	elapsed := now.Sub(t.active.startedAt)
	return t.recordIfEligible(elapsed, tab, now)
}

func (t *Tracker) recordIfEligible(elapsed time.Duration, tab browser.Tab, now time.Time) error {
	state, err := t.store.LoadPalette()
	if err != nil {
		return err
	}

	dwell := time.Duration(state.Settings.DwellSeconds) * time.Second
	if elapsed < dwell {
		return nil
	}
	if pattern.Skippable(tab.URL) {
		return nil
	}
	if pattern.MatchesAny(tab.URL, state.Settings.ExcludedPatterns) {
		return nil
	}
	if state.IsPinned(tab.URL) {
		return nil
	}

	title := tab.Title
	if title == "" {
		title = tab.URL
	}
	entry := store.HistoryEntry{
		URL:           tab.URL,
		Title:         title,
		Favicon:       tab.Favicon,
		LastVisitedAt: now.UnixMilli(),
	}

	// Upsert: dedupe by URL, newest first, capped at MaxHistory.
	next := make([]store.HistoryEntry, 0, len(state.History)+1)
	next = append(next, entry)
	for _, h := range state.History {
		if h.URL != entry.URL {
			next = append(next, h)
		}
	}
	if len(next) > state.Settings.MaxHistory {
		next = next[:state.Settings.MaxHistory]
	}
	state.History = next

	return t.store.SavePalette(state)
}
