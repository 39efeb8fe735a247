package dto

import (
	"time"

	"github.com/yukikurage/collab-dashboard-api/internal/models"
)

// DashboardView is the assembled, render-ready dashboard payload.
type DashboardView struct {
	User     UserVM      `json:"user"`
	Member   MemberVM    `json:"member"`
	Project  ProjectVM   `json:"project"`
	Messages []MessageVM `json:"messages"`

	// Derived fields
	TaskCount         int    `json:"task_count"`
	FileCount         int    `json:"file_count"`
	AnnouncementCount int    `json:"announcement_count"`
	SuggestionCount   int    `json:"suggestion_count"`
	Completeness      int    `json:"completeness"`
	Timeline          string `json:"timeline"`
}

// Completeness returns the percentage of tasks marked done. A project with no
// tasks is 0% complete, never a division fault.
func Completeness(tasks []models.Task) int {
	if len(tasks) == 0 {
		return 0
	}

	done := 0
	for _, task := range tasks {
		if task.Status == models.TaskStatusDone {
			done++
		}
	}

	return done * 100 / len(tasks)
}

// FormatTimeline renders the project's start and due dates the way the
// dashboard card shows them, e.g. "September 1, 2026 - October 15, 2026".
func FormatTimeline(createdAt time.Time, dueAt *time.Time) string {
	const layout = "January 2, 2006"

	start := createdAt.UTC().Format(layout)
	if dueAt == nil {
		return start
	}
	return start + " - " + dueAt.UTC().Format(layout)
}
