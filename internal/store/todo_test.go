package store

import "testing"

const dayMS = 24 * 60 * 60 * 1000

func TestLoadTodoEmptyStore(t *testing.T) {
	s := newTestStore(t)

	state, err := s.LoadTodo(1000)
	if err != nil {
		t.Fatal(err)
	}
	if len(state.Active)+len(state.Completed)+len(state.Deleted) != 0 {
		t.Fatalf("expected empty state, got %+v", state)
	}
}

func TestTodoRoundTrip(t *testing.T) {
	s := newTestStore(t)
	now := int64(1_000_000_000_000)

	in := TodoState{
		Active:    []TodoItem{{ID: "a", Text: "buy milk", CreatedAt: now, UpdatedAt: now}},
		Completed: []TodoItem{{ID: "b", Text: "done", CreatedAt: now, UpdatedAt: now, CompletedAt: now}},
		Deleted:   []TodoItem{{ID: "c", Text: "gone", CreatedAt: now, UpdatedAt: now, DeletedAt: now}},
	}
	if err := s.SaveTodo(in, now); err != nil {
		t.Fatal(err)
	}

	out, err := s.LoadTodo(now)
	if err != nil {
		t.Fatal(err)
	}
	if len(out.Active) != 1 || out.Active[0].Text != "buy milk" {
		t.Fatalf("active mangled: %+v", out.Active)
	}
	if len(out.Completed) != 1 || out.Completed[0].CompletedAt != now {
		t.Fatalf("completed mangled: %+v", out.Completed)
	}
	if len(out.Deleted) != 1 || out.Deleted[0].DeletedAt != now {
		t.Fatalf("deleted mangled: %+v", out.Deleted)
	}
}

func TestLoadTodoSweepsStaleItems(t *testing.T) {
	s := newTestStore(t)
	now := int64(1_000_000_000_000)

	in := TodoState{
		Completed: []TodoItem{
			{ID: "old", Text: "old", CreatedAt: 1, UpdatedAt: 1, CompletedAt: now - 8*dayMS},
			{ID: "recent", Text: "recent", CreatedAt: 1, UpdatedAt: 1, CompletedAt: now - 6*dayMS},
		},
		Deleted: []TodoItem{
			{ID: "stale", Text: "stale", CreatedAt: 1, UpdatedAt: 1, DeletedAt: now - 8*dayMS},
		},
	}
	// Persist without sweeping so the stale items are actually stored.
	if err := s.Set(KeyTodo, in); err != nil {
		t.Fatal(err)
	}

	out, err := s.LoadTodo(now)
	if err != nil {
		t.Fatal(err)
	}
	if len(out.Completed) != 1 || out.Completed[0].ID != "recent" {
		t.Fatalf("expected only the 6-day-old item to survive, got %+v", out.Completed)
	}
	if len(out.Deleted) != 0 {
		t.Fatalf("stale deleted item survived: %+v", out.Deleted)
	}
}

func TestSaveTodoSweeps(t *testing.T) {
	s := newTestStore(t)
	now := int64(1_000_000_000_000)

	in := TodoState{
		Completed: []TodoItem{
			{ID: "old", Text: "old", CreatedAt: 1, UpdatedAt: 1, CompletedAt: now - 8*dayMS},
		},
	}
	if err := s.SaveTodo(in, now); err != nil {
		t.Fatal(err)
	}

	out, _ := s.LoadTodo(now)
	if len(out.Completed) != 0 {
		t.Fatal("SaveTodo should sweep past-retention items before writing")
	}
}

func TestSaveTodoDoesNotMutateInput(t *testing.T) {
	s := newTestStore(t)
	now := int64(1_000_000_000_000)

	in := TodoState{
		Completed: []TodoItem{
			{ID: "old", Text: "old", CreatedAt: 1, UpdatedAt: 1, CompletedAt: now - 8*dayMS},
			{ID: "kept", Text: "kept", CreatedAt: 1, UpdatedAt: 1, CompletedAt: now},
		},
		Deleted: []TodoItem{
			{ID: "gone", Text: "gone", CreatedAt: 1, UpdatedAt: 1, DeletedAt: now - 8*dayMS},
		},
	}
	if err := s.SaveTodo(in, now); err != nil {
		t.Fatal(err)
	}

	if len(in.Completed) != 2 || in.Completed[0].ID != "old" || in.Completed[1].ID != "kept" {
		t.Fatalf("SaveTodo rewrote the caller's completed list: %+v", in.Completed)
	}
	if len(in.Deleted) != 1 || in.Deleted[0].ID != "gone" {
		t.Fatalf("SaveTodo rewrote the caller's deleted list: %+v", in.Deleted)
	}
}

func TestLoadTodoDropsMalformedItems(t *testing.T) {
	s := newTestStore(t)
	now := int64(1_000_000_000_000)

	doc := map[string]any{
		"active": []map[string]any{
			{"id": "ok", "text": "fine", "createdAt": 1, "updatedAt": 1},
			{"id": "blank", "text": "   "},
			{"text": "no id"},
		},
		"completed": []map[string]any{
			// Missing completedAt defaults to now instead of being dropped.
			{"id": "c1", "text": "done", "createdAt": 1, "updatedAt": 1},
		},
	}
	s.Set(KeyTodo, doc)

	out, err := s.LoadTodo(now)
	if err != nil {
		t.Fatal(err)
	}
	if len(out.Active) != 1 || out.Active[0].ID != "ok" {
		t.Fatalf("expected 1 valid active item, got %+v", out.Active)
	}
	if len(out.Completed) != 1 || out.Completed[0].CompletedAt != now {
		t.Fatalf("completedAt should default to now, got %+v", out.Completed)
	}
}

func TestLoadTodoRepairsTimestamps(t *testing.T) {
	s := newTestStore(t)
	now := int64(1_000_000_000_000)

	doc := map[string]any{
		"active": []map[string]any{
			{"id": "x", "text": "todo", "createdAt": 500},
		},
	}
	s.Set(KeyTodo, doc)

	out, _ := s.LoadTodo(now)
	if out.Active[0].UpdatedAt != 500 {
		t.Fatalf("updatedAt should default to createdAt, got %d", out.Active[0].UpdatedAt)
	}
}

func TestClearTodo(t *testing.T) {
	s := newTestStore(t)
	now := int64(1_000_000_000_000)

	s.SaveTodo(TodoState{Active: []TodoItem{{ID: "a", Text: "x", CreatedAt: now, UpdatedAt: now}}}, now)
	if err := s.ClearTodo(); err != nil {
		t.Fatal(err)
	}

	if _, ok, _ := s.Get(KeyTodo); ok {
		t.Fatal("todo document should be gone")
	}
}
