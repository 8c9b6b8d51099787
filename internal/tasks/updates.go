package tasks

import (
	"fmt"
)

// ProgressUpdate represents a progress event during a long-running operation.
//
// Used to send real-time updates to the CLI or UI layer for display.
type ProgressUpdate struct {
	Phase   Phase  // Operation phase
	Step    int    // Current step number within phase
	Total   int    // Total steps in this phase
	Message string // Human-readable message for display
	Data    any    // Optional phase-specific data for advanced UIs
}

// Operation phase enumeration
type Phase int

const (
	ParseInput Phase = iota
	ImportMovies
	FetchCatalog
	ExportCatalog
)

func (p Phase) String() string {
	switch p {
	case ParseInput:
		return "parse_input"
	case ImportMovies:
		return "import_movies"
	case FetchCatalog:
		return "fetch_catalog"
	case ExportCatalog:
		return "export_catalog"
	default:
		return ""
	}
}

func parseInputUpdate(path string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ParseInput,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Reading %s...", path),
	}
}

func importStartUpdate(total int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ImportMovies,
		Step:    0,
		Total:   total,
		Message: fmt.Sprintf("Importing %d movies...", total),
	}
}

func importedUpdate(step, total int, label string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ImportMovies,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] ✓ %s", step, total, label),
	}
}

func importFailedUpdate(step, total int, label string, err error) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ImportMovies,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] ✗ %s: %v", step, total, label, err),
	}
}

func fetchCatalogUpdate() ProgressUpdate {
	return ProgressUpdate{
		Phase:   FetchCatalog,
		Step:    1,
		Total:   2,
		Message: "Fetching movie catalog...",
	}
}

func exportCompletedUpdate(path string, count int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ExportCatalog,
		Step:    2,
		Total:   2,
		Message: fmt.Sprintf("Exported %d movies to %s", count, path),
	}
}
