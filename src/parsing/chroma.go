package parsing

import "github.com/alecthomas/chroma/formatters/html"

var TCNChromaOptions = []html.Option{
	html.WithClasses(true),
	html.WithPreWrapper(nopPreWrapper{}),
}

// The wrapper renderer in parsing.go emits the <pre> tags; chroma should not
// add its own.
type nopPreWrapper struct{}

var _ html.PreWrapper = nopPreWrapper{}

func (w nopPreWrapper) Start(code bool, styleAttr string) string {
	return ""
}

func (w nopPreWrapper) End(code bool) string {
	return ""
}
