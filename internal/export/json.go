package export

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"tabpal/internal/store"
)

type jsonExport struct {
	ExportedAt string     `json:"exported_at"`
	Count      int        `json:"count"`
	Items      []jsonItem `json:"items"`
}

type jsonItem struct {
	Status      string `json:"status"`
	ID          string `json:"id"`
	Text        string `json:"text"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
	CompletedAt string `json:"completed_at,omitempty"`
	DeletedAt   string `json:"deleted_at,omitempty"`
}

// TodosToJSON writes the flattened todo table as pretty-printed JSON.
func TodosToJSON(state store.TodoState, path string) error {
	export := jsonExport{
		ExportedAt: time.Now().UTC().Format(time.RFC3339),
	}

	appendItems := func(items []store.TodoItem, status string) {
		for _, it := range items {
			export.Items = append(export.Items, jsonItem{
				Status:      status,
				ID:          it.ID,
				Text:        it.Text,
				CreatedAt:   formatMillis(it.CreatedAt),
				UpdatedAt:   formatMillis(it.UpdatedAt),
				CompletedAt: formatMillis(it.CompletedAt),
				DeletedAt:   formatMillis(it.DeletedAt),
			})
		}
	}
	appendItems(state.Active, "active")
	appendItems(state.Completed, "completed")
	appendItems(state.Deleted, "deleted")
	export.Count = len(export.Items)

	data, err := json.MarshalIndent(export, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write json file: %w", err)
	}
	return nil
}
