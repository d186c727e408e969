package store

import "encoding/json"

// RetentionMS is how long completed and deleted todos are kept before the
// lazy sweep drops them.
const RetentionMS = 7 * 24 * 60 * 60 * 1000

// LoadTodo reads the todo document, dropping malformed items and sweeping
// anything past retention. now is ms since epoch; passing it in keeps the
// sweep testable.
func (s *Store) LoadTodo(now int64) (TodoState, error) {
	var state TodoState

	raw, ok, err := s.Get(KeyTodo)
	if err != nil {
		return state, err
	}
	if ok {
		_ = json.Unmarshal(raw, &state)
	}

	state.Active = sanitizeTodos(state.Active, now, nil)
	state.Completed = sanitizeTodos(state.Completed, now, func(it *TodoItem) {
		if it.CompletedAt == 0 {
			it.CompletedAt = now
		}
	})
	state.Deleted = sanitizeTodos(state.Deleted, now, func(it *TodoItem) {
		if it.DeletedAt == 0 {
			it.DeletedAt = now
		}
	})

	state = sweep(state, now)
	return state, nil
}

// SaveTodo sweeps stale items and persists the three lists together.
func (s *Store) SaveTodo(state TodoState, now int64) error {
	state = sweep(state, now)
	if state.Active == nil {
		state.Active = []TodoItem{}
	}
	if state.Completed == nil {
		state.Completed = []TodoItem{}
	}
	if state.Deleted == nil {
		state.Deleted = []TodoItem{}
	}
	return s.Set(KeyTodo, state)
}

// ClearTodo removes the todo document entirely.
func (s *Store) ClearTodo() error {
	return s.Remove(KeyTodo)
}

// sweep filters into fresh slices; the caller's lists keep their backing
// arrays and stay valid after a save.
func sweep(state TodoState, now int64) TodoState {
	threshold := now - RetentionMS

	keepCompleted := make([]TodoItem, 0, len(state.Completed))
	for _, it := range state.Completed {
		if it.CompletedAt >= threshold {
			keepCompleted = append(keepCompleted, it)
		}
	}
	state.Completed = keepCompleted

	keepDeleted := make([]TodoItem, 0, len(state.Deleted))
	for _, it := range state.Deleted {
		if it.DeletedAt >= threshold {
			keepDeleted = append(keepDeleted, it)
		}
	}
	state.Deleted = keepDeleted

	return state
}
