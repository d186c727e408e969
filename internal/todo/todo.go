// Package todo owns the todo item lifecycle: active, completed, deleted.
//
// Every item lives in exactly one of the three lists. Transitions move the
// item between lists, stamp the relevant timestamp and persist all three
// lists together. Completed and deleted items age out after seven days via
// the store's lazy sweep.
package todo

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"tabpal/internal/store"
)

// Manager composes the state store with the lifecycle transitions. It is
// confined to the UI context; cross-context consistency is last-write-wins
// through the store.
type Manager struct {
	store *store.Store
	state store.TodoState
	now   func() time.Time
}

func NewManager(s *store.Store, now func() time.Time) *Manager {
	if now == nil {
		now = time.Now
	}
	return &Manager{store: s, now: now}
}

// Load reads the persisted document, sweeping stale completed/deleted items.
func (m *Manager) Load() error {
	state, err := m.store.LoadTodo(m.now().UnixMilli())
	if err != nil {
		return err
	}
	m.state = state
	return nil
}

// State exposes the three lists for rendering and export.
func (m *Manager) State() store.TodoState {
	return m.state
}

func (m *Manager) persist() error {
	return m.store.SaveTodo(m.state, m.now().UnixMilli())
}

// Add creates an item at the front of the active list. Empty or whitespace
// text is a no-op.
func (m *Manager) Add(text string) (store.TodoItem, bool, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return store.TodoItem{}, false, nil
	}

	now := m.now().UnixMilli()
	item := store.TodoItem{
		ID:        uuid.NewString(),
		Text:      text,
		CreatedAt: now,
		UpdatedAt: now,
	}
	m.state.Active = append([]store.TodoItem{item}, m.state.Active...)
	return item, true, m.persist()
}

// Complete moves an active item to the completed list. Unknown ids are
// no-ops.
func (m *Manager) Complete(id string) error {
	idx := indexOf(m.state.Active, id)
	if idx < 0 {
		return nil
	}
	item := m.state.Active[idx]
	m.state.Active = removeAt(m.state.Active, idx)

	item.CompletedAt = m.now().UnixMilli()
	m.state.Completed = append([]store.TodoItem{item}, m.state.Completed...)
	return m.persist()
}

// Restore moves a completed or deleted item back to active, dropping its
// completion/deletion stamps.
func (m *Manager) Restore(id string) error {
	if idx := indexOf(m.state.Completed, id); idx >= 0 {
		item := m.state.Completed[idx]
		m.state.Completed = removeAt(m.state.Completed, idx)
		m.state.Active = append([]store.TodoItem{restored(item, m.now())}, m.state.Active...)
		return m.persist()
	}
	if idx := indexOf(m.state.Deleted, id); idx >= 0 {
		item := m.state.Deleted[idx]
		m.state.Deleted = removeAt(m.state.Deleted, idx)
		m.state.Active = append([]store.TodoItem{restored(item, m.now())}, m.state.Active...)
		return m.persist()
	}
	return nil
}

func restored(item store.TodoItem, now time.Time) store.TodoItem {
	return store.TodoItem{
		ID:        item.ID,
		Text:      item.Text,
		CreatedAt: item.CreatedAt,
		UpdatedAt: now.UnixMilli(),
	}
}

// Delete moves an active or completed item to the deleted list. A completed
// item keeps its CompletedAt through the move.
func (m *Manager) Delete(id string) error {
	now := m.now().UnixMilli()

	if idx := indexOf(m.state.Active, id); idx >= 0 {
		item := m.state.Active[idx]
		m.state.Active = removeAt(m.state.Active, idx)
		item.DeletedAt = now
		m.state.Deleted = append([]store.TodoItem{item}, m.state.Deleted...)
		return m.persist()
	}
	if idx := indexOf(m.state.Completed, id); idx >= 0 {
		item := m.state.Completed[idx]
		m.state.Completed = removeAt(m.state.Completed, idx)
		item.DeletedAt = now
		m.state.Deleted = append([]store.TodoItem{item}, m.state.Deleted...)
		return m.persist()
	}
	return nil
}

// Purge permanently removes a deleted item. There is no way back.
func (m *Manager) Purge(id string) error {
	idx := indexOf(m.state.Deleted, id)
	if idx < 0 {
		return nil
	}
	m.state.Deleted = removeAt(m.state.Deleted, idx)
	return m.persist()
}

// ClearAll wipes the whole todo document after the UI has confirmed the
// destructive action.
func (m *Manager) ClearAll() error {
	if err := m.store.ClearTodo(); err != nil {
		return err
	}
	m.state = store.TodoState{}
	return nil
}

// NextSelection picks the id to select after removing the item at removedIdx
// from list: the item now occupying the vacated index, else the previous
// index, else none.
func NextSelection(list []store.TodoItem, removedIdx int) (string, bool) {
	if removedIdx >= 0 && removedIdx < len(list) {
		return list[removedIdx].ID, true
	}
	if removedIdx-1 >= 0 && removedIdx-1 < len(list) {
		return list[removedIdx-1].ID, true
	}
	return "", false
}

func indexOf(list []store.TodoItem, id string) int {
	for i, it := range list {
		if it.ID == id {
			return i
		}
	}
	return -1
}

func removeAt(list []store.TodoItem, idx int) []store.TodoItem {
	return append(list[:idx:idx], list[idx+1:]...)
}
