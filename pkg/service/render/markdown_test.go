package render_test

import (
	"context"
	"strings"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/seclens/auditdash/pkg/service/render"
)

func TestMarkdownRender(t *testing.T) {
	ctx := context.Background()
	r := render.NewMarkdown()

	t.Run("renders headings", func(t *testing.T) {
		html, err := r.Render(ctx, "# Audit Report\n\nSome prose.")
		gt.NoError(t, err)
		gt.True(t, strings.Contains(html, "Audit Report</h1>"))
		gt.True(t, strings.Contains(html, "<p>Some prose.</p>"))
	})

	t.Run("renders GFM tables", func(t *testing.T) {
		html, err := r.Render(ctx, "| a | b |\n|---|---|\n| 1 | 2 |\n")
		gt.NoError(t, err)
		gt.True(t, strings.Contains(html, "<table>"))
	})

	t.Run("empty input yields empty output", func(t *testing.T) {
		html, err := r.Render(ctx, "")
		gt.NoError(t, err)
		gt.Equal(t, html, "")
	})
}

func TestFallback(t *testing.T) {
	t.Run("escapes markup", func(t *testing.T) {
		out := render.Fallback(`<script>alert("x & y")</script>`)
		gt.True(t, strings.HasPrefix(out, "<pre>"))
		gt.True(t, strings.HasSuffix(out, "</pre>"))
		gt.False(t, strings.Contains(out, "<script>"))
		gt.True(t, strings.Contains(out, "&amp;"))
	})

	t.Run("empty text yields empty block", func(t *testing.T) {
		gt.Equal(t, render.Fallback(""), "<pre></pre>")
	})
}
