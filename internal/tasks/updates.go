package tasks

import (
	"fmt"

	"github.com/desertthunder/marquee/internal/models"
)

// ProgressUpdate represents a progress event during a long-running operation.
//
// Used to send real-time updates to the CLI layer for display.
type ProgressUpdate struct {
	Phase   Phase  // Operation phase
	Step    int    // Current step number within phase
	Total   int    // Total steps in this phase
	Message string // Human-readable message for display
	Data    any    // Optional phase-specific data
}

// Operation phase enumeration
type Phase int

const (
	FetchPage Phase = iota
	ExportPage
	WriteManifest
)

func (p Phase) String() string {
	switch p {
	case FetchPage:
		return "fetch_page"
	case ExportPage:
		return "export_page"
	case WriteManifest:
		return "write_manifest"
	default:
		return ""
	}
}

func fetchingPageUpdate(step, total int, group models.Group, page int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   FetchPage,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] Fetching %s page %d...", step, total, group.Label(), page),
	}
}

func exportCompletedUpdate(step, total int, res PageExportResult) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ExportPage,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] ✓ page %d (%d titles) -> %s", step, total, res.Page, res.Items, res.File),
		Data:    res,
	}
}

func exportFailedUpdate(step, total int, res PageExportResult) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ExportPage,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] ✗ page %d: %s", step, total, res.Page, res.Error),
		Data:    res,
	}
}

func manifestUpdate(path string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   WriteManifest,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Manifest written to %s", path),
	}
}
