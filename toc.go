package mdpress

import (
	"fmt"
	"html"
	"regexp"
	"strconv"
	"strings"
)

// defaultTOCMaxDepth limits TOC entries to h1-h3 unless overridden.
const defaultTOCMaxDepth = 3

// headingInfo represents an extracted heading from HTML.
type headingInfo struct {
	Level int    // 1-6
	ID    string // anchor ID
	Text  string // heading text content
}

// headingPattern matches h1-h6 tags with id attribute.
// Captures: 1=level, 2=id, 3=inner HTML (may contain inline tags)
var headingPattern = regexp.MustCompile(`(?is)<h([1-6])[^>]*\bid="([^"]*)"[^>]*>(.*?)</h[1-6]>`)

// htmlTagPattern matches HTML tags for stripping from heading text.
var htmlTagPattern = regexp.MustCompile(`<[^>]*>`)

// stripHTMLTags removes HTML tags from a string and trims whitespace.
func stripHTMLTags(s string) string {
	return strings.TrimSpace(htmlTagPattern.ReplaceAllString(s, ""))
}

// extractHeadings parses an HTML fragment and returns all headings up to
// maxDepth. Headings without IDs are skipped.
func extractHeadings(fragment string, maxDepth int) []headingInfo {
	matches := headingPattern.FindAllStringSubmatch(fragment, -1)
	if len(matches) == 0 {
		return nil
	}

	var headings []headingInfo
	for _, m := range matches {
		level, _ := strconv.Atoi(m[1])
		if level > maxDepth {
			continue
		}
		headings = append(headings, headingInfo{
			Level: level,
			ID:    m[2],
			Text:  stripHTMLTags(m[3]),
		})
	}
	return headings
}

// buildTOC generates a numbered table of contents from the fragment's
// headings. Returns "" when the fragment has no eligible headings.
// Numbering is normalized so the shallowest heading level becomes 1,
// and level gaps (h1 followed by h3) do not produce zero components.
func buildTOC(fragment string, maxDepth int) string {
	if maxDepth <= 0 {
		maxDepth = defaultTOCMaxDepth
	}

	headings := extractHeadings(fragment, maxDepth)
	if len(headings) == 0 {
		return ""
	}

	minLevel := 6
	for _, h := range headings {
		if h.Level < minLevel {
			minLevel = h.Level
		}
	}

	var b strings.Builder
	b.WriteString("<nav class=\"toc\">\n<ul>\n")

	var counters [6]int
	prevDepth := -1
	for _, h := range headings {
		depth := h.Level - minLevel
		if depth > prevDepth+1 {
			depth = prevDepth + 1
		}
		prevDepth = depth

		counters[depth]++
		for i := depth + 1; i < len(counters); i++ {
			counters[i] = 0
		}

		parts := make([]string, depth+1)
		for i := 0; i <= depth; i++ {
			parts[i] = strconv.Itoa(counters[i])
		}

		fmt.Fprintf(&b, "<li class=\"toc-level-%d\"><a href=\"#%s\">%s. %s</a></li>\n",
			depth+1, html.EscapeString(h.ID), strings.Join(parts, "."), html.EscapeString(h.Text))
	}

	b.WriteString("</ul>\n</nav>")
	return b.String()
}
