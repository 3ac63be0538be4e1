package parsing

import (
	"bytes"
	"html/template"

	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/util"
)

// Used for generating the final HTML for wiki pages and forum posts. The
// stores only ever hold raw markdown source; this runs at display time.
var RealMarkdown = goldmark.New(
	goldmark.WithExtensions(
		extension.GFM,
		highlightExtension,
	),
)

// Same pipeline, but with hard line breaks. For plain-text-ish input like
// support ticket messages, where a single newline should stay a line break.
var StrictMarkdown = goldmark.New(
	goldmark.WithExtensions(
		extension.GFM,
		highlightExtension,
	),
	goldmark.WithRendererOptions(html.WithHardWraps()),
)

var highlightExtension = highlighting.NewHighlighting(
	highlighting.WithFormatOptions(TCNChromaOptions...),
	highlighting.WithWrapperRenderer(func(w util.BufWriter, context highlighting.CodeBlockContext, entering bool) {
		if entering {
			w.WriteString(`<pre class="tcn-code">`)
		} else {
			w.WriteString(`</pre>`)
		}
	}),
)

func ParseMarkdown(source string, md goldmark.Markdown) template.HTML {
	var buf bytes.Buffer
	if err := md.Convert([]byte(source), &buf); err != nil {
		panic(err)
	}

	return template.HTML(buf.String())
}
