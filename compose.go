package mdpress

import (
	"context"
	"fmt"
	"html"
	"strings"
)

// composeOptions carries everything the composer needs beyond the
// rendered HTML fragment.
type composeOptions struct {
	Title       string
	Encoding    string
	Styles      []Style
	ForceTOC    bool
	TOCMaxDepth int
}

// documentComposer assembles a rendered HTML fragment into a complete,
// self-contained document.
type documentComposer interface {
	Compose(ctx context.Context, fragment string, opts composeOptions) (string, error)
}

// standardComposer produces a minimal HTML5 document with all CSS
// inlined in a single <style> element. The output depends only on its
// inputs, so identical inputs always yield identical documents.
type standardComposer struct{}

func newStandardComposer() *standardComposer {
	return &standardComposer{}
}

func (c *standardComposer) Compose(ctx context.Context, fragment string, opts composeOptions) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	encoding := opts.Encoding
	if encoding == "" {
		encoding = "UTF-8"
	}
	title := opts.Title
	if title == "" {
		title = "Document"
	}

	body := spliceTOC(fragment, opts.ForceTOC, opts.TOCMaxDepth)

	var doc strings.Builder
	doc.WriteString("<!DOCTYPE html>\n<html>\n<head>\n")
	fmt.Fprintf(&doc, "<meta charset=%q>\n", encoding)
	fmt.Fprintf(&doc, "<title>%s</title>\n", html.EscapeString(title))
	doc.WriteString("<style>\n")
	doc.WriteString(composeStyles(opts.Styles))
	doc.WriteString("</style>\n</head>\n<body>\n")
	doc.WriteString(body)
	doc.WriteString("\n</body>\n</html>\n")

	return doc.String(), nil
}

// composeStyles concatenates the syntax highlighting stylesheet and the
// configured style blocks, each labeled with a comment carrying its name.
func composeStyles(styles []Style) string {
	var b strings.Builder

	b.WriteString("/* highlight */\n")
	b.WriteString(sanitizeCSS(highlightCSS()))
	if !strings.HasSuffix(b.String(), "\n") {
		b.WriteString("\n")
	}

	for _, s := range styles {
		fmt.Fprintf(&b, "/* %s */\n", sanitizeStyleName(s.Name))
		css := sanitizeCSS(s.CSS)
		b.WriteString(css)
		if !strings.HasSuffix(css, "\n") {
			b.WriteString("\n")
		}
	}
	return b.String()
}

// sanitizeCSS prevents CSS content from terminating the enclosing
// <style> element early.
func sanitizeCSS(css string) string {
	return strings.ReplaceAll(css, "</", `<\/`)
}

// sanitizeStyleName keeps block labels from breaking out of their
// comment delimiters.
func sanitizeStyleName(name string) string {
	name = strings.ReplaceAll(name, "*/", "")
	name = strings.ReplaceAll(name, "/*", "")
	return strings.TrimSpace(name)
}

// spliceTOC replaces the preprocessor's TOC placeholder with a generated
// table of contents. When forced and no placeholder is present, the TOC
// is prepended to the fragment instead. A fragment without eligible
// headings has its placeholder removed and no TOC inserted.
func spliceTOC(fragment string, force bool, maxDepth int) string {
	wrapped := "<p>" + tocPlaceholder + "</p>"
	hasMarker := strings.Contains(fragment, tocPlaceholder)

	if !hasMarker && !force {
		return fragment
	}

	toc := buildTOC(fragment, maxDepth)

	if hasMarker {
		if toc == "" {
			fragment = strings.ReplaceAll(fragment, wrapped, "")
			return strings.ReplaceAll(fragment, tocPlaceholder, "")
		}
		if strings.Contains(fragment, wrapped) {
			return strings.ReplaceAll(fragment, wrapped, toc)
		}
		return strings.ReplaceAll(fragment, tocPlaceholder, toc)
	}

	// Forced TOC with no marker: place it before the content.
	if toc == "" {
		return fragment
	}
	return toc + "\n" + fragment
}
