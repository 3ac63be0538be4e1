package models

type Category struct {
	ID int `db:"id"`

	Name        string `db:"name"`
	Description string `db:"description"`

	// Derived from Name whenever the name is set; see tcndata.Slugify.
	Slug string `db:"slug"`
}
