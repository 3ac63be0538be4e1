package tcndata

import (
	"regexp"
	"strings"
)

// Wiki slugs are chosen by the author; category slugs are derived. Both must
// satisfy this shape, and both are globally unique within their table.
var SlugRegex = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

func ValidateSlug(slug string) error {
	if !SlugRegex.MatchString(slug) {
		return ValidationError{
			Field:  "slug",
			Reason: "may only contain lowercase letters, digits, and hyphens",
		}
	}
	return nil
}

/*
Derives a URL slug from a display name: lowercase, runs of anything that is not
a letter or digit become single hyphens, leading/trailing hyphens dropped.
Called explicitly wherever a category name is set, at the same call site that
validates name uniqueness.
*/
func Slugify(name string) string {
	var b strings.Builder
	lastWasHyphen := true // swallow leading separators
	for _, r := range strings.ToLower(name) {
		isAlnum := (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9')
		if isAlnum {
			b.WriteRune(r)
			lastWasHyphen = false
		} else if !lastWasHyphen {
			b.WriteByte('-')
			lastWasHyphen = true
		}
	}
	return strings.TrimRight(b.String(), "-")
}
