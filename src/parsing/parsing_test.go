package parsing

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseMarkdown(t *testing.T) {
	t.Run("emphasis", func(t *testing.T) {
		out := string(ParseMarkdown("Hello **there**", RealMarkdown))
		assert.Contains(t, out, "<strong>there</strong>")
	})
	t.Run("gfm strikethrough", func(t *testing.T) {
		out := string(ParseMarkdown("~~gone~~", RealMarkdown))
		assert.Contains(t, out, "<del>gone</del>")
	})
	t.Run("fenced code blocks get our wrapper", func(t *testing.T) {
		out := string(ParseMarkdown("```go\npackage main\n```", RealMarkdown))
		assert.Contains(t, out, `<pre class="tcn-code">`)
	})
	t.Run("script tags do not survive", func(t *testing.T) {
		out := string(ParseMarkdown("<script>alert('hi')</script>", RealMarkdown))
		assert.False(t, strings.Contains(out, "<script>"))
	})
}

func TestStrictMarkdown(t *testing.T) {
	t.Run("single newlines become line breaks", func(t *testing.T) {
		out := string(ParseMarkdown("line one\nline two", StrictMarkdown))
		assert.Contains(t, out, "<br")
	})
	t.Run("script tags do not survive", func(t *testing.T) {
		out := string(ParseMarkdown("<script>alert('hi')</script>", StrictMarkdown))
		assert.False(t, strings.Contains(out, "<script>"))
	})
}
