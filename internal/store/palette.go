package store

import "encoding/json"

// LoadPalette reads the palette document, dropping malformed records,
// clamping settings and re-applying the list caps. A missing or unreadable
// document decodes to an empty state with default settings.
func (s *Store) LoadPalette() (PaletteState, error) {
	state := PaletteState{Settings: DefaultSettings()}

	raw, ok, err := s.Get(KeyPalette)
	if err != nil {
		return state, err
	}
	if ok {
		// A document that is not even valid JSON is treated as absent;
		// individual bad records inside a valid document are dropped below.
		_ = json.Unmarshal(raw, &state)
	}

	state.Settings = state.Settings.Clamp()
	state.History = sanitizeHistory(state.History)
	state.Pinned = sanitizePinned(state.Pinned)

	if len(state.History) > state.Settings.MaxHistory {
		state.History = state.History[:state.Settings.MaxHistory]
	}
	if len(state.Pinned) > MaxPinned {
		state.Pinned = state.Pinned[:MaxPinned]
	}
	return state, nil
}

// SavePalette persists the whole palette document, clamping settings and
// caps first so a bad in-memory state never lands on disk.
func (s *Store) SavePalette(state PaletteState) error {
	state.Settings = state.Settings.Clamp()
	if len(state.History) > state.Settings.MaxHistory {
		state.History = state.History[:state.Settings.MaxHistory]
	}
	if len(state.Pinned) > MaxPinned {
		state.Pinned = state.Pinned[:MaxPinned]
	}
	if state.History == nil {
		state.History = []HistoryEntry{}
	}
	if state.Pinned == nil {
		state.Pinned = []PinnedEntry{}
	}
	return s.Set(KeyPalette, state)
}
