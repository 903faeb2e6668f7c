package mdpress

import (
	"bytes"
	"context"
	"fmt"
	"sync"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	chromastyles "github.com/alecthomas/chroma/v2/styles"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
)

// highlightStyle is the chroma style used for fenced code blocks.
const highlightStyle = "github"

// htmlRenderer abstracts Markdown to HTML fragment conversion.
type htmlRenderer interface {
	Render(ctx context.Context, content string) (string, error)
}

// goldmarkRenderer converts Markdown to an HTML fragment using goldmark (pure Go).
type goldmarkRenderer struct {
	md goldmark.Markdown
}

// newGoldmarkRenderer creates a goldmarkRenderer with the default extension
// set: GFM (tables, fenced code, strikethrough, autolinks, task lists),
// footnotes, syntax highlighting, and auto heading IDs for TOC anchors.
func newGoldmarkRenderer() *goldmarkRenderer {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			extension.Footnote,
			highlighting.NewHighlighting(
				highlighting.WithFormatOptions(
					chromahtml.WithClasses(true), // CSS classes; the composer injects the stylesheet
				),
			),
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(), // Generate IDs for headings (required for TOC)
		),
		goldmark.WithRendererOptions(
			html.WithXHTML(), // Self-closing tags
			// Note: WithUnsafe() intentionally NOT used. Raw HTML in the
			// Markdown source is suppressed per Goldmark's default policy.
		),
	)
	return &goldmarkRenderer{md: md}
}

// Render converts Markdown content to an HTML fragment.
// Supports context cancellation via goroutine + select pattern since
// Goldmark doesn't natively support context.
func (r *goldmarkRenderer) Render(ctx context.Context, content string) (string, error) {
	// Fast path: check context before starting
	if err := ctx.Err(); err != nil {
		return "", err
	}

	type result struct {
		html string
		err  error
	}

	done := make(chan result, 1)

	go func() {
		var buf bytes.Buffer
		if err := r.md.Convert([]byte(content), &buf); err != nil {
			done <- result{err: fmt.Errorf("%w: %v", ErrHTMLConversion, err)}
			return
		}
		done <- result{html: buf.String()}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case res := <-done:
		return res.html, res.err
	}
}

var (
	highlightCSSOnce sync.Once
	highlightCSSText string
)

// highlightCSS returns the chroma-generated stylesheet matching the
// class-based highlighting output. Computed once; the result is stable
// for a given chroma version and style.
func highlightCSS() string {
	highlightCSSOnce.Do(func() {
		formatter := chromahtml.New(chromahtml.WithClasses(true))
		var buf bytes.Buffer
		if err := formatter.WriteCSS(&buf, chromastyles.Get(highlightStyle)); err != nil {
			// The style is a compile-time constant; a write to a Buffer
			// cannot fail. Leave the stylesheet empty rather than panic.
			return
		}
		highlightCSSText = buf.String()
	})
	return highlightCSSText
}
