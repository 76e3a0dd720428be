package db

import (
	"fmt"

	"briefnote/internal/auth"
	"briefnote/internal/jobs"
	"briefnote/internal/note"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func Connect(dsn string) (*gorm.DB, error) {
	gdb, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}
	return gdb, nil
}

func AutoMigrateAndIndexes(gdb *gorm.DB) error {
	// Tables
	if err := gdb.AutoMigrate(
		&note.Note{},
		&jobs.Job{},
		&auth.User{},
	); err != nil {
		return err
	}

	// List query: owner's notes newest-first
	if err := gdb.Exec(`create index if not exists idx_notes_owner_created on notes(owner_id, created_at desc);`).Error; err != nil {
		return err
	}

	// Label filter (GIN for text[])
	if err := gdb.Exec(`create index if not exists idx_notes_labels on notes using gin (labels);`).Error; err != nil {
		return err
	}

	// Helpful indexes
	stmts := []string{
		`create index if not exists idx_jobs_due on jobs(status, run_at);`,
		`create index if not exists idx_jobs_lock on jobs(status, locked_at);`,
	}
	for _, s := range stmts {
		if err := gdb.Exec(s).Error; err != nil {
			return fmt.Errorf("index exec failed: %w (sql=%s)", err, s)
		}
	}

	return nil
}
