/*
This package contains lowish-level APIs for making queries to our Postgres
database. It streamlines the process of mapping query results to Go types,
while allowing you to write arbitrary SQL queries.

The primary functions are Query and QueryIterator.

# Query syntax

Arguments can be provided using placeholders like $1, $2, etc. All arguments
will be safely escaped and mapped from their Go type to the correct Postgres
type. (This is a direct proxy to pgx.)

	ids, err := db.Query[int](ctx, conn,
		`
		SELECT id
		FROM wiki_page
		WHERE slug = ANY($1)
		`,
		[]string{"intro", "rules"},
	)

To query multiple columns at once, you may use a struct type with `db:"column_name"`
tags, and the special $columns placeholder:

	type WikiPage struct {
		ID    int    `db:"id"`
		Slug  string `db:"slug"`
		Title string `db:"title"`
	}
	pages, err := db.Query[WikiPage](ctx, conn, `SELECT $columns FROM wiki_page`)
	// Resulting query:
	// SELECT id, slug, title FROM wiki_page

If you use table aliases in your query, you can provide a prefix in the $columns
placeholder, like `$columns{p}`, and all columns will be prefixed accordingly.
Nested structs with `db` tags likewise have their tag used as a column prefix,
which allows one query to fetch several joined tables at once.
*/
package db
