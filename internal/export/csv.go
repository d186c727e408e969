package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"time"

	"tabpal/internal/store"
)

// TodosToCSV writes the three todo lists as one flattened table. Fields
// containing delimiters, quotes or newlines are quoted by encoding/csv,
// which doubles embedded quotes.
func TodosToCSV(state store.TodoState, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	// Header
	if err := w.Write([]string{"status", "id", "text", "createdAt", "updatedAt", "completedAt", "deletedAt"}); err != nil {
		return err
	}

	write := func(items []store.TodoItem, status string) error {
		for _, it := range items {
			row := []string{
				status,
				it.ID,
				it.Text,
				formatMillis(it.CreatedAt),
				formatMillis(it.UpdatedAt),
				formatMillis(it.CompletedAt),
				formatMillis(it.DeletedAt),
			}
			if err := w.Write(row); err != nil {
				return err
			}
		}
		return nil
	}

	if err := write(state.Active, "active"); err != nil {
		return err
	}
	if err := write(state.Completed, "completed"); err != nil {
		return err
	}
	if err := write(state.Deleted, "deleted"); err != nil {
		return err
	}

	return w.Error()
}

// HistoryToCSV dumps the pinned and history lists of the palette document.
func HistoryToCSV(state store.PaletteState, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write([]string{"kind", "url", "title", "lastVisitedAt"}); err != nil {
		return err
	}

	for _, p := range state.Pinned {
		if err := w.Write([]string{"pinned", p.URL, p.Title, ""}); err != nil {
			return err
		}
	}
	for _, h := range state.History {
		if err := w.Write([]string{"history", h.URL, h.Title, formatMillis(h.LastVisitedAt)}); err != nil {
			return err
		}
	}

	return w.Error()
}

func formatMillis(ms int64) string {
	if ms == 0 {
		return ""
	}
	return time.UnixMilli(ms).Local().Format(time.RFC3339)
}
