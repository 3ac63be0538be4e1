package tcndata

import (
	"context"
	"strings"
	"time"

	"git.teamcore.network/tcn/tcn/src/db"
	"git.teamcore.network/tcn/tcn/src/models"
	"git.teamcore.network/tcn/tcn/src/oops"
	"github.com/jackc/pgx/v5"
)

// Fetches all wiki pages, alphabetically by title.
func FetchWikiPages(ctx context.Context, dbConn db.ConnOrTx) ([]*models.WikiPage, error) {
	pages, err := db.Query[models.WikiPage](ctx, dbConn,
		`
		SELECT $columns
		FROM wiki_page
		ORDER BY LOWER(title), id
		`,
	)
	if err != nil {
		return nil, oops.New(err, "failed to fetch wiki pages")
	}
	return pages, nil
}

// Fetches a single wiki page by its slug. Slugs are stored lowercase, so the
// lookup is exact. Returns db.NotFound if no such page exists.
func FetchWikiPage(ctx context.Context, dbConn db.ConnOrTx, slug string) (*models.WikiPage, error) {
	page, err := db.QueryOne[models.WikiPage](ctx, dbConn,
		`
		SELECT $columns
		FROM wiki_page
		WHERE slug = $1
		`,
		slug,
	)
	if err != nil {
		if err == db.NotFound {
			return nil, err
		}
		return nil, oops.New(err, "failed to fetch wiki page")
	}
	return page, nil
}

type wikiRevisionRow struct {
	Revision models.WikiRevision `db:"wiki_revision"`
	Editor   *models.User        `db:"editor"`
}

type WikiRevisionAndEditor struct {
	Revision *models.WikiRevision
	Editor   *models.User // nil when the editing account was deleted
}

// Fetches a page's full history, newest first.
func FetchWikiRevisions(ctx context.Context, dbConn db.ConnOrTx, pageID int) ([]WikiRevisionAndEditor, error) {
	rows, err := db.Query[wikiRevisionRow](ctx, dbConn,
		`
		SELECT $columns
		FROM
			wiki_revision
			LEFT JOIN tcn_user AS editor ON editor.id = wiki_revision.editor_id
		WHERE
			wiki_revision.page_id = $1
		ORDER BY wiki_revision.timestamp DESC, wiki_revision.id DESC
		`,
		pageID,
	)
	if err != nil {
		return nil, oops.New(err, "failed to fetch wiki revisions")
	}

	result := make([]WikiRevisionAndEditor, len(rows))
	for i, row := range rows {
		rev := row.Revision
		result[i] = WikiRevisionAndEditor{Revision: &rev, Editor: row.Editor}
	}
	return result, nil
}

/*
Creates a wiki page together with its first revision. The revision is a full
snapshot of the page, so history replay never needs the page row. Both inserts
happen in one transaction; a page without history does not exist even briefly.
*/
func CreateWikiPage(ctx context.Context, dbConn db.ConnOrTx, editorID int, slug, title, content string) (*models.WikiPage, error) {
	if err := validateWikiInput(slug, title); err != nil {
		return nil, err
	}

	tx, err := dbConn.Begin(ctx)
	if err != nil {
		return nil, oops.New(err, "failed to start transaction")
	}
	defer tx.Rollback(ctx)

	now := time.Now()
	page, err := db.QueryOne[models.WikiPage](ctx, tx,
		`
		INSERT INTO wiki_page (slug, title, content, created_at, last_modified_at, editor_id)
		VALUES ($1, $2, $3, $4, $4, $5)
		RETURNING $columns
		`,
		slug, title, content, now, editorID,
	)
	if err != nil {
		if err = translateUniqueViolation(err); err != nil {
			if _, ok := err.(DuplicateError); ok {
				return nil, err
			}
		}
		return nil, oops.New(err, "failed to create wiki page")
	}

	err = insertWikiRevision(ctx, tx, page.ID, &editorID, now, title, content, "Initial creation")
	if err != nil {
		return nil, err
	}

	err = tx.Commit(ctx)
	if err != nil {
		return nil, oops.New(err, "failed to commit new wiki page")
	}
	return page, nil
}

/*
Applies an edit to a wiki page and appends a matching revision, atomically.
The page row and the new revision share a single timestamp.
*/
func EditWikiPage(ctx context.Context, dbConn db.ConnOrTx, pageID, editorID int, slug, title, content, comment string) (*models.WikiPage, error) {
	if err := validateWikiInput(slug, title); err != nil {
		return nil, err
	}

	tx, err := dbConn.Begin(ctx)
	if err != nil {
		return nil, oops.New(err, "failed to start transaction")
	}
	defer tx.Rollback(ctx)

	now := time.Now()
	page, err := db.QueryOne[models.WikiPage](ctx, tx,
		`
		UPDATE wiki_page
		SET slug = $2, title = $3, content = $4, last_modified_at = $5, editor_id = $6
		WHERE id = $1
		RETURNING $columns
		`,
		pageID, slug, title, content, now, editorID,
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
		return nil, oops.New(err, "failed to update wiki page")
	}

	err = insertWikiRevision(ctx, tx, pageID, &editorID, now, title, content, comment)
	if err != nil {
		return nil, err
	}

	err = tx.Commit(ctx)
	if err != nil {
		return nil, oops.New(err, "failed to commit wiki edit")
	}
	return page, nil
}

// Deletes a wiki page and its entire history.
func DeleteWikiPage(ctx context.Context, dbConn db.ConnOrTx, pageID int) error {
	tx, err := dbConn.Begin(ctx)
	if err != nil {
		return oops.New(err, "failed to start transaction")
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `DELETE FROM wiki_revision WHERE page_id = $1`, pageID)
	if err != nil {
		return oops.New(err, "failed to delete wiki revisions")
	}

	tag, err := tx.Exec(ctx, `DELETE FROM wiki_page WHERE id = $1`, pageID)
	if err != nil {
		return oops.New(err, "failed to delete wiki page")
	}
	if tag.RowsAffected() == 0 {
		return db.NotFound
	}

	err = tx.Commit(ctx)
	if err != nil {
		return oops.New(err, "failed to commit wiki page deletion")
	}
	return nil
}

func insertWikiRevision(
	ctx context.Context,
	tx pgx.Tx,
	pageID int,
	editorID *int,
	timestamp time.Time,
	title, content, comment string,
) error {
	_, err := tx.Exec(ctx,
		`
		INSERT INTO wiki_revision (page_id, editor_id, timestamp, title, content, comment)
		VALUES ($1, $2, $3, $4, $5, $6)
		`,
		pageID, editorID, timestamp, title, content, comment,
	)
	if err != nil {
		return oops.New(err, "failed to record wiki revision")
	}
	return nil
}

func validateWikiInput(slug, title string) error {
	if err := ValidateSlug(slug); err != nil {
		return err
	}
	if strings.TrimSpace(title) == "" {
		return ValidationError{Field: "title", Reason: "must not be empty"}
	}
	return nil
}
