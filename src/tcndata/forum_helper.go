package tcndata

import (
	"context"
	"strings"
	"time"

	"git.teamcore.network/tcn/tcn/src/db"
	"git.teamcore.network/tcn/tcn/src/models"
	"git.teamcore.network/tcn/tcn/src/oops"
)

//
// Categories
//

// Fetches all forum categories, alphabetically.
func FetchCategories(ctx context.Context, dbConn db.ConnOrTx) ([]*models.Category, error) {
	categories, err := db.Query[models.Category](ctx, dbConn,
		`
		SELECT $columns
		FROM category
		ORDER BY LOWER(name), id
		`,
	)
	if err != nil {
		return nil, oops.New(err, "failed to fetch categories")
	}
	return categories, nil
}

// Fetches a single category by slug. Returns db.NotFound if there is none.
func FetchCategory(ctx context.Context, dbConn db.ConnOrTx, slug string) (*models.Category, error) {
	category, err := db.QueryOne[models.Category](ctx, dbConn,
		`
		SELECT $columns
		FROM category
		WHERE slug = $1
		`,
		slug,
	)
	if err != nil {
		if err == db.NotFound {
			return nil, err
		}
		return nil, oops.New(err, "failed to fetch category")
	}
	return category, nil
}

// Creates a category. The slug is derived from the name.
func CreateCategory(ctx context.Context, dbConn db.ConnOrTx, name, description string) (*models.Category, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ValidationError{Field: "name", Reason: "must not be empty"}
	}
	slug := Slugify(name)
	if slug == "" {
		return nil, ValidationError{Field: "name", Reason: "must contain at least one letter or digit"}
	}

	category, err := db.QueryOne[models.Category](ctx, dbConn,
		`
		INSERT INTO category (name, description, slug)
		VALUES ($1, $2, $3)
		RETURNING $columns
		`,
		name, description, slug,
	)
	if err != nil {
		if err = translateUniqueViolation(err); err != nil {
			if _, ok := err.(DuplicateError); ok {
				return nil, err
			}
		}
		return nil, oops.New(err, "failed to create category")
	}
	return category, nil
}

// Updates a category's name and description. Renaming re-derives the slug
// from the new name, so links to the old slug go stale. The slug is never an
// input of its own.
func UpdateCategory(ctx context.Context, dbConn db.ConnOrTx, categoryID int, name, description string) (*models.Category, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ValidationError{Field: "name", Reason: "must not be empty"}
	}
	slug := Slugify(name)
	if slug == "" {
		return nil, ValidationError{Field: "name", Reason: "must contain at least one letter or digit"}
	}

	category, err := db.QueryOne[models.Category](ctx, dbConn,
		`
		UPDATE category
		SET name = $2, description = $3, slug = $4
		WHERE id = $1
		RETURNING $columns
		`,
		categoryID, name, description, slug,
	)
	if err != nil {
		if err == db.NotFound {
			return nil, err
		}
		if err = translateUniqueViolation(err); err != nil {
			if _, ok := err.(DuplicateError); ok {
				return nil, err
			}
		}
		return nil, oops.New(err, "failed to update category")
	}
	return category, nil
}

/*
Deletes a category, but only if it has no threads left. The category row is
locked before counting: thread inserts hold a share lock on it through their
foreign key, so once the exclusive lock is granted the count is authoritative
and no thread can appear between the count and the delete.
*/
func DeleteCategory(ctx context.Context, dbConn db.ConnOrTx, categoryID int) error {
	tx, err := dbConn.Begin(ctx)
	if err != nil {
		return oops.New(err, "failed to start transaction")
	}
	defer tx.Rollback(ctx)

	_, err = db.QueryOneScalar[int](ctx, tx,
		`SELECT id FROM category WHERE id = $1 FOR UPDATE`,
		categoryID,
	)
	if err != nil {
		if err == db.NotFound {
			return db.NotFound
		}
		return oops.New(err, "failed to lock category")
	}

	numThreads, err := db.QueryOneScalar[int](ctx, tx,
		`SELECT COUNT(*) FROM thread WHERE category_id = $1`,
		categoryID,
	)
	if err != nil {
		return oops.New(err, "failed to count threads in category")
	}
	if numThreads > 0 {
		return ErrCategoryNotEmpty
	}

	tag, err := tx.Exec(ctx, `DELETE FROM category WHERE id = $1`, categoryID)
	if err != nil {
		return oops.New(err, "failed to delete category")
	}
	if tag.RowsAffected() == 0 {
		return db.NotFound
	}

	err = tx.Commit(ctx)
	if err != nil {
		return oops.New(err, "failed to commit category deletion")
	}
	return nil
}

//
// Threads
//

type threadRow struct {
	Thread     models.Thread `db:"thread"`
	Author     *models.User  `db:"author"`
	LastPoster *models.User  `db:"last_poster"`
}

type ThreadAndStuff struct {
	Thread     *models.Thread
	Author     *models.User // nil when the account was deleted
	LastPoster *models.User
}

type ThreadsQuery struct {
	CategoryID int // 0 means all categories

	Limit, Offset int // if empty, no pagination
}

/*
Fetches threads and their related users, most recently active first. The sort
key is the denormalized last_post_at cache, so a reply bumps its thread to the
top of the category.
*/
func FetchThreads(ctx context.Context, dbConn db.ConnOrTx, q ThreadsQuery) ([]ThreadAndStuff, error) {
	var qb db.QueryBuilder
	qb.Add(`
		SELECT $columns
		FROM
			thread
			LEFT JOIN tcn_user AS author ON author.id = thread.author_id
			LEFT JOIN tcn_user AS last_poster ON last_poster.id = thread.last_poster_id
		WHERE
			TRUE
	`)
	if q.CategoryID != 0 {
		qb.Add(`AND thread.category_id = $?`, q.CategoryID)
	}
	qb.Add(`ORDER BY thread.last_post_at DESC, thread.id DESC`)
	if q.Limit > 0 {
		qb.Add(`LIMIT $? OFFSET $?`, q.Limit, q.Offset)
	}

	rows, err := db.Query[threadRow](ctx, dbConn, qb.String(), qb.Args()...)
	if err != nil {
		return nil, oops.New(err, "failed to fetch threads")
	}

	result := make([]ThreadAndStuff, len(rows))
	for i, row := range rows {
		thread := row.Thread
		result[i] = ThreadAndStuff{
			Thread:     &thread,
			Author:     row.Author,
			LastPoster: row.LastPoster,
		}
	}
	return result, nil
}

// Fetches a single thread by id. Returns db.NotFound if there is none.
func FetchThread(ctx context.Context, dbConn db.ConnOrTx, threadID int) (*models.Thread, error) {
	thread, err := db.QueryOne[models.Thread](ctx, dbConn,
		`
		SELECT $columns
		FROM thread
		WHERE id = $1
		`,
		threadID,
	)
	if err != nil {
		if err == db.NotFound {
			return nil, err
		}
		return nil, oops.New(err, "failed to fetch thread")
	}
	return thread, nil
}

func CountThreads(ctx context.Context, dbConn db.ConnOrTx, categoryID int) (int, error) {
	var qb db.QueryBuilder
	qb.Add(`SELECT COUNT(*) FROM thread WHERE TRUE`)
	if categoryID != 0 {
		qb.Add(`AND category_id = $?`, categoryID)
	}
	count, err := db.QueryOneScalar[int](ctx, dbConn, qb.String(), qb.Args()...)
	if err != nil {
		return 0, oops.New(err, "failed to count threads")
	}
	return count, nil
}

/*
Creates a thread together with its opening post. The thread and the post share
one timestamp, and the thread's last-post cache starts out pointing at the
opening post, so a freshly created thread sorts correctly without a fixup.
*/
func CreateThread(ctx context.Context, dbConn db.ConnOrTx, categoryID, authorID int, title, content string) (*models.Thread, *models.Post, error) {
	if strings.TrimSpace(title) == "" {
		return nil, nil, ValidationError{Field: "title", Reason: "must not be empty"}
	}
	if strings.TrimSpace(content) == "" {
		return nil, nil, ValidationError{Field: "content", Reason: "must not be empty"}
	}

	tx, err := dbConn.Begin(ctx)
	if err != nil {
		return nil, nil, oops.New(err, "failed to start transaction")
	}
	defer tx.Rollback(ctx)

	now := time.Now()
	thread, err := db.QueryOne[models.Thread](ctx, tx,
		`
		INSERT INTO thread (category_id, author_id, title, created_at, last_post_at)
		VALUES ($1, $2, $3, $4, $4)
		RETURNING $columns
		`,
		categoryID, authorID, title, now,
	)
	if err != nil {
		return nil, nil, oops.New(err, "failed to create thread")
	}

	post, err := db.QueryOne[models.Post](ctx, tx,
		`
		INSERT INTO post (thread_id, author_id, content, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING $columns
		`,
		thread.ID, authorID, content, now,
	)
	if err != nil {
		return nil, nil, oops.New(err, "failed to create opening post")
	}

	_, err = tx.Exec(ctx,
		`
		UPDATE thread
		SET last_post_id = $2, last_poster_id = $3
		WHERE id = $1
		`,
		thread.ID, post.ID, authorID,
	)
	if err != nil {
		return nil, nil, oops.New(err, "failed to point thread at its opening post")
	}
	thread.LastPostID = &post.ID
	thread.LastPosterID = &authorID

	err = tx.Commit(ctx)
	if err != nil {
		return nil, nil, oops.New(err, "failed to commit new thread")
	}
	return thread, post, nil
}

// Deletes a thread and all its posts.
func DeleteThread(ctx context.Context, dbConn db.ConnOrTx, threadID int) error {
	tx, err := dbConn.Begin(ctx)
	if err != nil {
		return oops.New(err, "failed to start transaction")
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `DELETE FROM post WHERE thread_id = $1`, threadID)
	if err != nil {
		return oops.New(err, "failed to delete thread posts")
	}

	tag, err := tx.Exec(ctx, `DELETE FROM thread WHERE id = $1`, threadID)
	if err != nil {
		return oops.New(err, "failed to delete thread")
	}
	if tag.RowsAffected() == 0 {
		return db.NotFound
	}

	err = tx.Commit(ctx)
	if err != nil {
		return oops.New(err, "failed to commit thread deletion")
	}
	return nil
}

//
// Posts
//

type postRow struct {
	Post   models.Post  `db:"post"`
	Author *models.User `db:"author"`
}

type PostAndStuff struct {
	Post   *models.Post
	Author *models.User // nil when the account was deleted
}

type PostsQuery struct {
	Limit, Offset int // if empty, no pagination
}

// Fetches a thread's posts in chronological order, with their authors.
func FetchThreadPosts(ctx context.Context, dbConn db.ConnOrTx, threadID int, q PostsQuery) ([]PostAndStuff, error) {
	var qb db.QueryBuilder
	qb.Add(`
		SELECT $columns
		FROM
			post
			LEFT JOIN tcn_user AS author ON author.id = post.author_id
		WHERE
			post.thread_id = $?
		ORDER BY post.created_at, post.id
	`, threadID)
	if q.Limit > 0 {
		qb.Add(`LIMIT $? OFFSET $?`, q.Limit, q.Offset)
	}

	rows, err := db.Query[postRow](ctx, dbConn, qb.String(), qb.Args()...)
	if err != nil {
		return nil, oops.New(err, "failed to fetch thread posts")
	}

	result := make([]PostAndStuff, len(rows))
	for i, row := range rows {
		post := row.Post
		result[i] = PostAndStuff{Post: &post, Author: row.Author}
	}
	return result, nil
}

// Fetches a single post by id. Returns db.NotFound if there is none.
func FetchPost(ctx context.Context, dbConn db.ConnOrTx, postID int) (*models.Post, error) {
	post, err := db.QueryOne[models.Post](ctx, dbConn,
		`
		SELECT $columns
		FROM post
		WHERE id = $1
		`,
		postID,
	)
	if err != nil {
		if err == db.NotFound {
			return nil, err
		}
		return nil, oops.New(err, "failed to fetch post")
	}
	return post, nil
}

func CountPostsInThread(ctx context.Context, dbConn db.ConnOrTx, threadID int) (int, error) {
	count, err := db.QueryOneScalar[int](ctx, dbConn,
		`SELECT COUNT(*) FROM post WHERE thread_id = $1`,
		threadID,
	)
	if err != nil {
		return 0, oops.New(err, "failed to count posts")
	}
	return count, nil
}

/*
Appends a reply to a thread and advances the thread's last-post cache in the
same transaction, so the category listing can sort by activity without a join.
*/
func CreateReply(ctx context.Context, dbConn db.ConnOrTx, threadID, authorID int, content string) (*models.Post, error) {
	if strings.TrimSpace(content) == "" {
		return nil, ValidationError{Field: "content", Reason: "must not be empty"}
	}

	tx, err := dbConn.Begin(ctx)
	if err != nil {
		return nil, oops.New(err, "failed to start transaction")
	}
	defer tx.Rollback(ctx)

	now := time.Now()
	post, err := db.QueryOne[models.Post](ctx, tx,
		`
		INSERT INTO post (thread_id, author_id, content, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING $columns
		`,
		threadID, authorID, content, now,
	)
	if err != nil {
		return nil, oops.New(err, "failed to create reply")
	}

	_, err = tx.Exec(ctx,
		`
		UPDATE thread
		SET last_post_at = $2, last_post_id = $3, last_poster_id = $4
		WHERE id = $1
		`,
		threadID, now, post.ID, authorID,
	)
	if err != nil {
		return nil, oops.New(err, "failed to bump thread")
	}

	err = tx.Commit(ctx)
	if err != nil {
		return nil, oops.New(err, "failed to commit reply")
	}
	return post, nil
}

// Replaces a post's content. Authorization happens in the handler; the store
// only cares that the post exists.
func EditPost(ctx context.Context, dbConn db.ConnOrTx, postID int, content string) (*models.Post, error) {
	if strings.TrimSpace(content) == "" {
		return nil, ValidationError{Field: "content", Reason: "must not be empty"}
	}

	post, err := db.QueryOne[models.Post](ctx, dbConn,
		`
		UPDATE post
		SET content = $2
		WHERE id = $1
		RETURNING $columns
		`,
		postID, content,
	)
	if err != nil {
		if err == db.NotFound {
			return nil, err
		}
		return nil, oops.New(err, "failed to edit post")
	}
	return post, nil
}

/*
Deletes a reply from a thread. The opening post cannot be deleted this way;
delete the whole thread instead. The check and the delete share a transaction,
and the thread's last-post cache is recomputed before committing.
*/
func DeletePost(ctx context.Context, dbConn db.ConnOrTx, threadID, postID int) error {
	tx, err := dbConn.Begin(ctx)
	if err != nil {
		return oops.New(err, "failed to start transaction")
	}
	defer tx.Rollback(ctx)

	posts, err := db.Query[models.Post](ctx, tx,
		`
		SELECT $columns
		FROM post
		WHERE thread_id = $1
		`,
		threadID,
	)
	if err != nil {
		return oops.New(err, "failed to fetch posts for thread")
	}

	opening := OpeningPost(posts)
	if opening == nil {
		return db.NotFound
	}
	if opening.ID == postID {
		return ErrDeleteOpeningPost
	}

	tag, err := tx.Exec(ctx, `DELETE FROM post WHERE id = $1 AND thread_id = $2`, postID, threadID)
	if err != nil {
		return oops.New(err, "failed to delete post")
	}
	if tag.RowsAffected() == 0 {
		return db.NotFound
	}

	err = FixupThread(ctx, tx, threadID)
	if err != nil {
		return err
	}

	err = tx.Commit(ctx)
	if err != nil {
		return oops.New(err, "failed to commit post deletion")
	}
	return nil
}

/*
Recomputes a thread's denormalized last-post fields from its actual posts.
A thread whose posts are all gone falls back to its own creation time, with
the post and poster references cleared.
*/
func FixupThread(ctx context.Context, dbConn db.ConnOrTx, threadID int) error {
	posts, err := db.Query[models.Post](ctx, dbConn,
		`
		SELECT $columns
		FROM post
		WHERE thread_id = $1
		`,
		threadID,
	)
	if err != nil {
		return oops.New(err, "failed to fetch posts when fixing up thread")
	}

	last := LatestPost(posts)
	if last == nil {
		_, err = dbConn.Exec(ctx,
			`
			UPDATE thread
			SET last_post_at = created_at, last_post_id = NULL, last_poster_id = NULL
			WHERE id = $1
			`,
			threadID,
		)
	} else {
		_, err = dbConn.Exec(ctx,
			`
			UPDATE thread
			SET last_post_at = $2, last_post_id = $3, last_poster_id = $4
			WHERE id = $1
			`,
			threadID, last.CreatedAt, last.ID, last.AuthorID,
		)
	}
	if err != nil {
		return oops.New(err, "failed to update thread last-post cache")
	}
	return nil
}

// The chronologically first post of the given posts, breaking timestamp ties
// by the lower id. Returns nil for an empty slice.
func OpeningPost(posts []*models.Post) *models.Post {
	var first *models.Post
	for _, post := range posts {
		if first == nil ||
			post.CreatedAt.Before(first.CreatedAt) ||
			(post.CreatedAt.Equal(first.CreatedAt) && post.ID < first.ID) {
			first = post
		}
	}
	return first
}

// The chronologically last post of the given posts, breaking timestamp ties
// by the higher id. Returns nil for an empty slice.
func LatestPost(posts []*models.Post) *models.Post {
	var last *models.Post
	for _, post := range posts {
		if last == nil ||
			post.CreatedAt.After(last.CreatedAt) ||
			(post.CreatedAt.Equal(last.CreatedAt) && post.ID > last.ID) {
			last = post
		}
	}
	return last
}
