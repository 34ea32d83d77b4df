package render

import (
	"bytes"
	"context"
	"html"

	"github.com/m-mizutani/goerr/v2"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
)

// Markdown renders report text to HTML via goldmark. The engine stores the
// output opaquely; callers fall back to Fallback when rendering fails.
type Markdown struct {
	md goldmark.Markdown
}

// NewMarkdown creates a Markdown renderer with GFM tables and fenced code
func NewMarkdown() *Markdown {
	return &Markdown{
		md: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
			goldmark.WithParserOptions(parser.WithAutoHeadingID()),
		),
	}
}

// Render converts Markdown text to HTML
func (r *Markdown) Render(ctx context.Context, text string) (string, error) {
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(text), &buf); err != nil {
		return "", goerr.Wrap(err, "failed to render markdown")
	}
	return buf.String(), nil
}

// Fallback returns the text escaped inside a <pre> block, used when the
// renderer is unavailable or fails for a single record.
func Fallback(text string) string {
	return "<pre>" + html.EscapeString(text) + "</pre>"
}
