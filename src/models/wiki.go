package models

import "time"

type WikiPage struct {
	ID int `db:"id"`

	Slug    string `db:"slug"`
	Title   string `db:"title"`
	Content string `db:"content"` // raw markdown, never rendered HTML

	CreatedAt      time.Time `db:"created_at"`
	LastModifiedAt time.Time `db:"last_modified_at"`

	EditorID *int `db:"editor_id"` // most recent editor; weak reference
}

// A full snapshot of a page at a point in time, not a diff. Revisions are
// append-only: every page create or edit appends exactly one.
type WikiRevision struct {
	ID     int `db:"id"`
	PageID int `db:"page_id"`

	EditorID *int `db:"editor_id"`

	Timestamp time.Time `db:"timestamp"`
	Title     string    `db:"title"`
	Content   string    `db:"content"`
	Comment   string    `db:"comment"`
}
