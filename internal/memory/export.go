package memory

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/basupportii/ai-router/internal/reqtypes"
)

// ExportFormat is the closed set spec.md §6's memory export endpoint
// accepts.
type ExportFormat string

const (
	ExportText     ExportFormat = "text"
	ExportJSON     ExportFormat = "json"
	ExportMarkdown ExportFormat = "markdown"
	ExportCSV      ExportFormat = "csv"
)

// Export renders entries in the requested format.
func Export(entries []reqtypes.MemoryEntry, format ExportFormat) (string, error) {
	switch format {
	case ExportJSON:
		data, err := json.MarshalIndent(entries, "", "  ")
		return string(data), err
	case ExportMarkdown:
		return exportMarkdown(entries), nil
	case ExportCSV:
		return exportCSV(entries)
	default:
		return exportText(entries), nil
	}
}

func exportText(entries []reqtypes.MemoryEntry) string {
	var b strings.Builder
	for _, e := range entries {
		fmt.Fprintf(&b, "[%s]\nQ: %s\nA: %s\n\n", e.CreatedAt.Format("2006-01-02 15:04"), e.Prompt, e.Response)
	}
	return b.String()
}

func exportMarkdown(entries []reqtypes.MemoryEntry) string {
	var b strings.Builder
	b.WriteString("# Memory export\n\n")
	for _, e := range entries {
		fmt.Fprintf(&b, "## %s\n\n**Prompt:** %s\n\n**Response:** %s\n\n", e.CreatedAt.Format("2006-01-02 15:04"), e.Prompt, e.Response)
	}
	return b.String()
}

func exportCSV(entries []reqtypes.MemoryEntry) (string, error) {
	var b strings.Builder
	w := csv.NewWriter(&b)
	if err := w.Write([]string{"id", "createdAt", "prompt", "response"}); err != nil {
		return "", err
	}
	for _, e := range entries {
		if err := w.Write([]string{e.ID, e.CreatedAt.Format("2006-01-02T15:04:05Z07:00"), e.Prompt, e.Response}); err != nil {
			return "", err
		}
	}
	w.Flush()
	return b.String(), w.Error()
}
