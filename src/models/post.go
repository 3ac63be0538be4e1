package models

import "time"

type Post struct {
	ID int `db:"id"`

	ThreadID int  `db:"thread_id"`
	AuthorID *int `db:"author_id"`

	Content   string    `db:"content"` // raw markdown
	CreatedAt time.Time `db:"created_at"`
}
