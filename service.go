package mdpress

import (
	"context"
	"fmt"

	"github.com/mdpress/mdpress/internal/pdfinfo"
)

// Service orchestrates the markdown-to-PDF pipeline.
type Service struct {
	cfg          serviceConfig
	preprocessor markdownPreprocessor
	renderer     htmlRenderer
	composer     documentComposer
	pdfConverter pdfConverter
	stamper      metadataStamper
}

// New creates a Service with default configuration.
// Use options to customize behavior (e.g., WithTimeout).
func New(opts ...Option) *Service {
	s := &Service{
		cfg:          serviceConfig{timeout: defaultTimeout},
		preprocessor: &commonMarkPreprocessor{},
		renderer:     newGoldmarkRenderer(),
		composer:     newStandardComposer(),
		stamper:      pdfinfoStamper{},
	}

	for _, opt := range opts {
		opt(s)
	}

	// Create PDF converter if not injected (e.g., by tests)
	if s.pdfConverter == nil {
		s.pdfConverter = newRodConverter(s.cfg.timeout, s.cfg.browserFlags)
	}

	return s
}

// Convert runs the full pipeline and returns the composed HTML and,
// unless input.HTMLOnly is set, the rendered PDF.
// The context is used for cancellation and timeout.
func (s *Service) Convert(ctx context.Context, input Input) (*Result, error) {
	if err := s.validateInput(input); err != nil {
		return nil, err
	}

	// Fail fast when the browser is missing, before any rendering work.
	if !input.HTMLOnly {
		if err := s.pdfConverter.Available(); err != nil {
			return nil, err
		}
	}

	// Preprocess markdown
	mdContent := s.preprocessor.Preprocess(ctx, input.Markdown)
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	// Convert to an HTML fragment
	fragment, err := s.renderer.Render(ctx, mdContent)
	if err != nil {
		return nil, fmt.Errorf("converting to HTML: %w", err)
	}

	title := resolveTitle(input, fragment)

	// Compose the full document with inlined styles and TOC
	doc, err := s.composer.Compose(ctx, fragment, composeOptions{
		Title:       title,
		Encoding:    input.Encoding,
		Styles:      input.Styles,
		ForceTOC:    input.TOC,
		TOCMaxDepth: input.TOCMaxDepth,
	})
	if err != nil {
		return nil, fmt.Errorf("composing document: %w", err)
	}

	if input.HTMLOnly {
		return &Result{HTML: doc}, nil
	}

	// Convert to PDF
	pdfBytes, err := s.pdfConverter.ToPDF(ctx, doc, &renderOptions{
		Page:   input.Page,
		Footer: input.Footer,
	})
	if err != nil {
		return nil, fmt.Errorf("converting to PDF: %w", err)
	}
	if len(pdfBytes) == 0 {
		return nil, ErrEmptyPDF
	}

	// Stamp the Info dictionary
	if input.Metadata != nil {
		info := pdfinfo.Info{
			Title:    input.Metadata.Title,
			Creator:  input.Metadata.Creator,
			Producer: input.Metadata.Producer,
		}
		if info.Title == "" {
			info.Title = title
		}
		stamped, err := s.stamper.Stamp(pdfBytes, info)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMetadataStamp, err)
		}
		pdfBytes = stamped
	}

	return &Result{PDF: pdfBytes, HTML: doc}, nil
}

// Close releases resources (headless Chrome browser).
func (s *Service) Close() error {
	if s.pdfConverter != nil {
		return s.pdfConverter.Close()
	}
	return nil
}

// validateInput checks that required fields are present and valid.
func (s *Service) validateInput(input Input) error {
	if input.Markdown == "" {
		return ErrEmptyMarkdown
	}
	if err := input.Page.Validate(); err != nil {
		return err
	}
	if err := input.Footer.Validate(); err != nil {
		return err
	}
	return nil
}

// resolveTitle picks the document title with the following precedence:
// explicit title, first H1 in the rendered content, caller fallback,
// then "Document".
func resolveTitle(input Input, fragment string) string {
	if input.Title != "" {
		return input.Title
	}
	if h1 := extractHeadings(fragment, 1); len(h1) > 0 && h1[0].Text != "" {
		return h1[0].Text
	}
	if input.TitleFallback != "" {
		return input.TitleFallback
	}
	return "Document"
}

// metadataStamper abstracts Info dictionary stamping for testing.
type metadataStamper interface {
	Stamp(pdf []byte, info pdfinfo.Info) ([]byte, error)
}

type pdfinfoStamper struct{}

func (pdfinfoStamper) Stamp(pdf []byte, info pdfinfo.Info) ([]byte, error) {
	return pdfinfo.Stamp(pdf, info)
}
