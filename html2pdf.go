package mdpress

import (
	"context"
	"fmt"
	"html"
	"io"
	"os"
	"strings"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/launcher/flags"
	"github.com/go-rod/rod/lib/proto"

	"github.com/mdpress/mdpress/internal/fileutil"
)

// pdfConverter abstracts HTML to PDF conversion to allow different backends.
type pdfConverter interface {
	// Available reports whether the backend can run at all, without
	// launching it. Returns ErrBrowserNotFound when no browser binary
	// can be located.
	Available() error
	ToPDF(ctx context.Context, htmlContent string, opts *renderOptions) ([]byte, error)
	Close() error
}

// pdfRenderer abstracts PDF rendering from an HTML file to enable
// testing without a browser.
type pdfRenderer interface {
	RenderFromFile(ctx context.Context, filePath string, opts *renderOptions) ([]byte, error)
}

// Compile-time interface checks
var (
	_ pdfConverter = (*rodConverter)(nil)
	_ pdfRenderer  = (*rodRenderer)(nil)
)

// renderOptions holds per-document options for PDF generation.
type renderOptions struct {
	Page   *PageSettings
	Footer *Footer
}

const footerFontFamily = `-apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, sans-serif`

// rodRenderer implements pdfRenderer using go-rod.
// Rod automatically downloads Chromium on first run if not found.
type rodRenderer struct {
	browser  *rod.Browser
	pid      int
	timeout  time.Duration
	extraFlg []BrowserFlag
}

// newRodRenderer creates a rodRenderer with the given timeout and
// extra browser launch flags.
func newRodRenderer(timeout time.Duration, extra []BrowserFlag) *rodRenderer {
	return &rodRenderer{timeout: timeout, extraFlg: extra}
}

// browserBinary locates the browser binary to launch.
// ROD_BROWSER_BIN takes priority over system lookup.
func browserBinary() (string, bool) {
	if bin := os.Getenv("ROD_BROWSER_BIN"); bin != "" {
		return bin, true
	}
	return launcher.LookPath()
}

// Available reports whether a browser binary can be found without
// launching it.
func (r *rodRenderer) Available() error {
	if r.browser != nil {
		return nil
	}
	if bin, ok := browserBinary(); !ok {
		return fmt.Errorf("%w: no chromium-based browser on this system", ErrBrowserNotFound)
	} else if os.Getenv("ROD_BROWSER_BIN") != "" && !fileutil.FileExists(bin) {
		return fmt.Errorf("%w: ROD_BROWSER_BIN points to %q which does not exist", ErrBrowserNotFound, bin)
	}
	return nil
}

// ensureBrowser lazily launches and connects to the browser.
func (r *rodRenderer) ensureBrowser() error {
	if r.browser != nil {
		return nil
	}

	l := launcher.New()

	// Use pre-installed browser if specified (Docker/containerized environments)
	if bin := os.Getenv("ROD_BROWSER_BIN"); bin != "" {
		l = l.Bin(bin)
	}

	// NoSandbox required for CI and containerized environments
	if os.Getenv("CI") == "true" || os.Getenv("ROD_BROWSER_BIN") != "" {
		l = l.NoSandbox(true)
	}

	// Pass through configured browser flags in declaration order
	for _, f := range r.extraFlg {
		l = l.Set(flags.Flag(f.Name), f.Value)
	}

	u, err := l.Launch()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}
	r.pid = l.PID()

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		if r.pid > 0 {
			killProcessGroup(r.pid)
		}
		r.pid = 0
		return fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}
	r.browser = browser
	return nil
}

// Close releases browser resources. The process group kill is a
// fallback for orphaned Chrome child processes that survive the
// graceful close.
func (r *rodRenderer) Close() error {
	if r.browser == nil {
		return nil
	}
	err := r.browser.Close()
	r.browser = nil

	if r.pid > 0 {
		killProcessGroup(r.pid)
		r.pid = 0
	}
	return err
}

// RenderFromFile opens a local HTML file in headless Chrome and renders
// it to PDF. Returns explicit errors instead of panicking when browser
// operations fail.
func (r *rodRenderer) RenderFromFile(ctx context.Context, filePath string, opts *renderOptions) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if err := r.ensureBrowser(); err != nil {
		return nil, err
	}

	page, err := r.browser.Page(proto.TargetCreateTarget{URL: "file://" + filePath})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageCreate, err)
	}
	defer page.Close()

	// Wait for page to load with timeout from context or default
	timeout := r.timeout
	if deadline, ok := ctx.Deadline(); ok {
		timeout = time.Until(deadline)
		if timeout <= 0 {
			return nil, context.DeadlineExceeded
		}
	}

	if err := page.Timeout(timeout).WaitLoad(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageLoad, err)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	reader, err := page.PDF(buildPrintOptions(opts))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPDFGeneration, err)
	}

	pdfBuf, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("%w: reading PDF stream: %v", ErrPDFGeneration, err)
	}

	return pdfBuf, nil
}

// buildPrintOptions constructs proto.PagePrintToPDF from page settings
// and an optional footer. Nil settings fall back to defaults.
func buildPrintOptions(opts *renderOptions) *proto.PagePrintToPDF {
	page := *DefaultPageSettings()
	if opts != nil && opts.Page != nil {
		page = *opts.Page
	}

	var footer *Footer
	if opts != nil && opts.Footer != nil && opts.Footer.enabled() {
		footer = opts.Footer
	}

	marginBottom := page.MarginBottom
	if footer != nil && marginBottom < marginBottomWithFooter {
		marginBottom = marginBottomWithFooter
	}

	pdfOpts := &proto.PagePrintToPDF{
		PaperWidth:      floatPtr(page.Width),
		PaperHeight:     floatPtr(page.Height),
		MarginTop:       floatPtr(page.MarginTop),
		MarginBottom:    floatPtr(marginBottom),
		MarginLeft:      floatPtr(page.MarginLeft),
		MarginRight:     floatPtr(page.MarginRight),
		PrintBackground: true,
	}

	if footer != nil {
		pdfOpts.DisplayHeaderFooter = true
		pdfOpts.HeaderTemplate = "<span></span>" // Empty header
		pdfOpts.FooterTemplate = buildFooterTemplate(footer)
	}

	return pdfOpts
}

// buildFooterTemplate generates an HTML template for Chrome's native
// footer. Page numbers use Chrome's pageNumber/totalPages CSS classes.
func buildFooterTemplate(f *Footer) string {
	if f == nil {
		return "<span></span>"
	}

	var parts []string
	if f.ShowPageNumber {
		parts = append(parts, `<span class="pageNumber"></span>/<span class="totalPages"></span>`)
	}
	if f.Text != "" {
		parts = append(parts, html.EscapeString(f.Text))
	}
	if len(parts) == 0 {
		return "<span></span>"
	}

	content := strings.Join(parts, " - ")

	// Position: left, center, or right (default)
	textAlign := "right"
	switch f.Position {
	case "left":
		textAlign = "left"
	case "center":
		textAlign = "center"
	}

	return fmt.Sprintf(`<div style="font-size: 10px; font-family: %s; color: #aaa; width: 100%%; text-align: %s; padding: 0 0.5in;">%s</div>`, footerFontFamily, textAlign, content)
}

// floatPtr returns a pointer to a float64 value.
func floatPtr(v float64) *float64 {
	return &v
}

// rodConverter converts HTML to PDF using headless Chrome via go-rod.
type rodConverter struct {
	renderer *rodRenderer
}

// newRodConverter creates a rodConverter with production renderer.
func newRodConverter(timeout time.Duration, extra []BrowserFlag) *rodConverter {
	return &rodConverter{
		renderer: newRodRenderer(timeout, extra),
	}
}

// Available reports whether a browser binary can be located.
func (c *rodConverter) Available() error {
	return c.renderer.Available()
}

// ToPDF converts HTML content to PDF bytes using headless Chrome.
func (c *rodConverter) ToPDF(ctx context.Context, htmlContent string, opts *renderOptions) ([]byte, error) {
	tmpPath, cleanup, err := fileutil.WriteTempFile(htmlContent, "html")
	if err != nil {
		return nil, err
	}
	defer cleanup()

	return c.renderer.RenderFromFile(ctx, tmpPath, opts)
}

// Close releases browser resources.
func (c *rodConverter) Close() error {
	if c.renderer != nil {
		return c.renderer.Close()
	}
	return nil
}
