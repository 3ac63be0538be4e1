package models

import "time"

type Thread struct {
	ID int `db:"id"`

	CategoryID int  `db:"category_id"`
	AuthorID   *int `db:"author_id"`

	Title     string    `db:"title"`
	CreatedAt time.Time `db:"created_at"`

	// Derived fields caching the most recent post for cheap listing pages.
	// The source of truth is the posts themselves; any post deletion must
	// recompute these in the same transaction (see tcndata.FixupThread).
	LastPostAt   time.Time `db:"last_post_at"`
	LastPostID   *int      `db:"last_post_id"`
	LastPosterID *int      `db:"last_poster_id"`
}
