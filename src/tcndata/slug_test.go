package tcndata

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	items := []struct {
		name string
		in   string
		out  string
	}{
		{"simple", "General", "general"},
		{"spaces", "Game Server Talk", "game-server-talk"},
		{"punctuation", "Bugs & Glitches!", "bugs-glitches"},
		{"consecutive separators", "a  --  b", "a-b"},
		{"leading and trailing junk", "  ...tips...  ", "tips"},
		{"digits", "Season 2 Recap", "season-2-recap"},
		{"already a slug", "already-a-slug", "already-a-slug"},
	}

	for _, item := range items {
		t.Run(item.name, func(t *testing.T) {
			assert.Equal(t, item.out, Slugify(item.in))
		})
	}
}

func TestSlugifyProducesValidSlugs(t *testing.T) {
	for _, name := range []string{"General", "Off Topic", "Q&A", "100% Legit"} {
		assert.Nil(t, ValidateSlug(Slugify(name)))
	}
}

func TestValidateSlug(t *testing.T) {
	valid := []string{"intro", "my-first-page", "a", "0", "page-2"}
	invalid := []string{"", "-intro", "intro-", "My-Page", "two--hyphens", "spaces here", "ünïcode"}

	for _, slug := range valid {
		assert.Nil(t, ValidateSlug(slug), slug)
	}
	for _, slug := range invalid {
		err := ValidateSlug(slug)
		if assert.NotNil(t, err, slug) {
			assert.Equal(t, "slug", err.(ValidationError).Field)
		}
	}
}
