package tcndata

import (
	"errors"
	"fmt"

	"git.teamcore.network/tcn/tcn/src/db"
)

/*
The errors in this file are the ones that operations intentionally produce and
that handlers are expected to recover and report as field-level problems.
Anything else coming out of a store operation is a persistence failure: it gets
logged with its cause, and users see only a generic failure notice.
*/

// A uniqueness conflict on the named field (username, email, slug, name...).
// Produced authoritatively by the database's unique indexes, so concurrent
// duplicate inserts fail deterministically even without a pre-check.
type DuplicateError struct {
	Field string
}

func (e DuplicateError) Error() string {
	return fmt.Sprintf("%s is already in use", e.Field)
}

type ValidationError struct {
	Field  string
	Reason string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// An operation that is structurally impossible in the entity's current state,
// regardless of who asks.
type InvalidStateError struct {
	Reason string
}

func (e InvalidStateError) Error() string {
	return e.Reason
}

var (
	ErrDeleteOpeningPost = InvalidStateError{"the opening post of a thread cannot be deleted on its own"}
	ErrCategoryNotEmpty  = InvalidStateError{"the category still contains threads"}

	// Registration before the baseline roles were seeded.
	ErrRoleMissing = errors.New("required role does not exist; run `tcn seed` first")
)

// Unique index names (see the initial migration) mapped to the user-facing
// field they guard.
var uniqueConstraintFields = map[string]string{
	"tcn_user_unique_username": "username",
	"tcn_user_unique_email":    "email",
	"role_unique_name":         "name",
	"category_unique_name":     "name",
	"category_unique_slug":     "slug",
	"wiki_page_unique_slug":    "slug",
}

/*
Translates a Postgres unique violation into the matching DuplicateError.
Returns the error unchanged if it is anything else.
*/
func translateUniqueViolation(err error) error {
	if constraint, ok := db.UniqueConstraint(err); ok {
		if field, known := uniqueConstraintFields[constraint]; known {
			return DuplicateError{Field: field}
		}
	}
	return err
}
