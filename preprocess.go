package mdpress

import (
	"context"
	"regexp"
	"strings"
)

// The [TOC] marker is replaced with a Unicode Private Use Area placeholder
// before Goldmark runs. PUA characters pass through Goldmark unchanged, so
// the composer can splice the generated TOC where the marker stood without
// enabling raw HTML.
const tocPlaceholder = "\uE000"

// Precompiled regex patterns for performance.
var (
	// Line ending normalization
	crlfOrCR = regexp.MustCompile(`\r\n?`)

	// Compress multiple blank lines to max 2
	multipleBlankLines = regexp.MustCompile(`\n{3,}`)

	// A [TOC] marker on a line of its own (case-insensitive)
	tocMarker = regexp.MustCompile(`(?i)^\[TOC\][ \t]*$`)

	// Fenced code block delimiter
	fencedCodeBlock = regexp.MustCompile("^(```|~~~)")
)

// markdownPreprocessor defines the contract for markdown preprocessing.
type markdownPreprocessor interface {
	Preprocess(ctx context.Context, content string) string
}

// commonMarkPreprocessor applies transformations before CommonMark conversion.
type commonMarkPreprocessor struct{}

// Preprocess applies all transformations to prepare Markdown for conversion.
func (p *commonMarkPreprocessor) Preprocess(ctx context.Context, content string) string {
	// Check for cancellation before processing
	if ctx.Err() != nil {
		return content
	}

	content = normalizeLineEndings(content)
	content = markTOC(content)
	content = compressBlankLines(content)
	return content
}

// normalizeLineEndings converts \r\n and \r to \n.
func normalizeLineEndings(content string) string {
	return crlfOrCR.ReplaceAllString(content, "\n")
}

// compressBlankLines limits consecutive blank lines to 2 maximum.
func compressBlankLines(content string) string {
	return multipleBlankLines.ReplaceAllString(content, "\n\n")
}

// markTOC replaces [TOC] marker lines with the placeholder character.
// Lines inside fenced code blocks are left alone so a document can show
// the marker literally.
func markTOC(content string) string {
	lines := strings.Split(content, "\n")

	inCodeBlock := false
	for i, line := range lines {
		if fencedCodeBlock.MatchString(line) {
			inCodeBlock = !inCodeBlock
			continue
		}
		if inCodeBlock {
			continue
		}
		if tocMarker.MatchString(line) {
			lines[i] = tocPlaceholder
		}
	}

	return strings.Join(lines, "\n")
}
