package database

import (
	"fmt"

	"gorm.io/gorm"
)

// AddIndexes adds performance-critical indexes to the database
func AddIndexes(db *gorm.DB) error {
	indexes := []struct {
		table   string
		name    string
		columns string
	}{
		// Member indexes for route pair resolution and project listings
		{"members", "idx_members_user_id", "user_id"},
		{"members", "idx_members_project_id", "project_id"},
		{"members", "idx_members_active", "active"},

		// Task indexes for dashboard counts and filtering
		{"tasks", "idx_tasks_project_id", "project_id"},
		{"tasks", "idx_tasks_member_id", "member_id"},
		{"tasks", "idx_tasks_status", "status"},
		{"tasks", "idx_tasks_due_at", "due_at"},

		// Todo ordering within a task
		{"todos", "idx_todos_task_id", "task_id"},

		// Message history per project
		{"messages", "idx_messages_project_id", "project_id"},
		{"messages", "idx_messages_created_at", "created_at"},

		// Dashboard count queries
		{"files", "idx_files_project_id", "project_id"},
		{"announcements", "idx_announcements_project_id", "project_id"},
		{"suggestions", "idx_suggestions_project_id", "project_id"},

		// Project share code lookup on join
		{"projects", "idx_projects_code", "code"},
	}

	for _, idx := range indexes {
		// Check if index already exists
		var count int64
		err := db.Raw(`
			SELECT COUNT(*)
			FROM pg_indexes
			WHERE tablename = ? AND indexname = ?
		`, idx.table, idx.name).Count(&count).Error

		if err != nil {
			return fmt.Errorf("failed to check index %s: %w", idx.name, err)
		}

		if count > 0 {
			fmt.Printf("Index %s already exists, skipping\n", idx.name)
			continue
		}

		sql := fmt.Sprintf("CREATE INDEX %s ON %s (%s)", idx.name, idx.table, idx.columns)
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("failed to create index %s: %w", idx.name, err)
		}

		fmt.Printf("Created index %s on %s(%s)\n", idx.name, idx.table, idx.columns)
	}

	return nil
}

// MigrateDatabase runs all database migrations
func MigrateDatabase(db *gorm.DB) error {
	if err := AddIndexes(db); err != nil {
		return fmt.Errorf("failed to add indexes: %w", err)
	}

	return nil
}
