package mdpress

import (
	"fmt"
	"strings"
	"time"
)

// A4 page dimensions and the default margin, in inches.
const (
	defaultPaperWidthInches  = 8.27
	defaultPaperHeightInches = 11.69
	defaultMarginInches      = 20.0 / 25.4 // 20mm

	// Minimum bottom margin when Chrome renders a native footer.
	marginBottomWithFooter = 0.75
)

// maxMarginInches bounds margins to keep a printable area on any paper size.
const maxMarginInches = 3.0

// PageSettings configures PDF page geometry in inches.
type PageSettings struct {
	Width        float64
	Height       float64
	MarginTop    float64
	MarginBottom float64
	MarginLeft   float64
	MarginRight  float64
}

// DefaultPageSettings returns A4 portrait with 20mm margins.
func DefaultPageSettings() *PageSettings {
	return &PageSettings{
		Width:        defaultPaperWidthInches,
		Height:       defaultPaperHeightInches,
		MarginTop:    defaultMarginInches,
		MarginBottom: defaultMarginInches,
		MarginLeft:   defaultMarginInches,
		MarginRight:  defaultMarginInches,
	}
}

// Validate checks that page settings are physically plausible.
// Returns nil if p is nil (nil means use defaults).
func (p *PageSettings) Validate() error {
	if p == nil {
		return nil
	}

	if p.Width <= 0 || p.Height <= 0 {
		return fmt.Errorf("%w: %.2f x %.2f inches", ErrInvalidPaper, p.Width, p.Height)
	}

	for _, m := range []struct {
		name  string
		value float64
	}{
		{"top", p.MarginTop},
		{"bottom", p.MarginBottom},
		{"left", p.MarginLeft},
		{"right", p.MarginRight},
	} {
		if m.value < 0 || m.value > maxMarginInches {
			return fmt.Errorf("%w: %s %.2f (must be between 0 and %.1f inches)",
				ErrInvalidMargin, m.name, m.value, maxMarginInches)
		}
	}

	if p.MarginLeft+p.MarginRight >= p.Width || p.MarginTop+p.MarginBottom >= p.Height {
		return fmt.Errorf("%w: margins leave no printable area", ErrInvalidMargin)
	}

	return nil
}

// Footer configures Chrome's native PDF footer.
type Footer struct {
	Position       string // "left", "center", "right" (default: "center")
	ShowPageNumber bool
	Text           string
}

// Validate checks that footer settings are valid.
// Returns nil if f is nil (nil means no footer).
func (f *Footer) Validate() error {
	if f == nil {
		return nil
	}
	switch strings.ToLower(f.Position) {
	case "", "left", "center", "right":
		return nil
	default:
		return fmt.Errorf("%w: %q (must be left, center, or right)", ErrInvalidFooterPosition, f.Position)
	}
}

// enabled reports whether the footer has any visible content.
func (f *Footer) enabled() bool {
	return f != nil && (f.ShowPageNumber || f.Text != "")
}

// Metadata holds PDF document information dictionary fields.
// Empty fields are not stamped.
type Metadata struct {
	Title    string
	Creator  string
	Producer string
}

// Style is a named CSS block injected into the composed document.
// Blocks are emitted in slice order; later blocks override earlier ones
// through the normal CSS cascade.
type Style struct {
	Name string
	CSS  string
}

// Input contains conversion parameters for a single document.
type Input struct {
	Markdown      string        // Markdown content (required)
	Title         string        // Document title ("" = derive from first H1)
	TitleFallback string        // Used when Title is empty and no H1 exists
	Encoding      string        // Charset for the composed document ("" = UTF-8)
	Styles        []Style       // Ordered CSS blocks (optional)
	Page          *PageSettings // Page geometry (nil = defaults)
	Footer        *Footer       // Native PDF footer (nil = none)
	Metadata      *Metadata     // Info dictionary stamping (nil = none)
	TOC           bool          // Force a TOC even without a [TOC] marker
	TOCMaxDepth   int           // Max heading depth in the TOC (0 = default 3)
	HTMLOnly      bool          // Skip PDF generation, return composed HTML only
}

// Result holds the output of a conversion.
type Result struct {
	PDF  []byte // Final PDF with stamped metadata (nil when HTMLOnly)
	HTML string // Composed HTML document
}

// BrowserFlag is a command-line switch passed verbatim to the browser
// process at launch. The escape hatch for renderer options the typed
// configuration does not model.
type BrowserFlag struct {
	Name  string
	Value string
}

// Option configures a Service.
type Option func(*Service)

// serviceConfig holds internal configuration for Service.
type serviceConfig struct {
	timeout      time.Duration
	browserFlags []BrowserFlag
}

// defaultTimeout is used when no timeout is specified.
const defaultTimeout = 30 * time.Second

// WithTimeout sets the PDF rendering timeout.
// Panics if d <= 0 (programmer error, similar to time.NewTicker).
func WithTimeout(d time.Duration) Option {
	if d <= 0 {
		panic("mdpress: WithTimeout duration must be positive")
	}
	return func(s *Service) {
		s.cfg.timeout = d
	}
}

// WithBrowserFlags appends switches passed to the browser at launch.
func WithBrowserFlags(flags ...BrowserFlag) Option {
	return func(s *Service) {
		s.cfg.browserFlags = append(s.cfg.browserFlags, flags...)
	}
}
