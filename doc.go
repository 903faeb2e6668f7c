// Package mdpress converts Markdown documents to styled PDF files using
// headless Chrome.
//
// # Quick Start
//
// Create a service, convert markdown, and close when done:
//
//	svc := mdpress.New()
//	defer svc.Close()
//
//	res, err := svc.Convert(ctx, mdpress.Input{
//	    Markdown: "# Hello\n\nWorld",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.WriteFile("output.pdf", res.PDF, 0644)
//
// The result contains both the PDF bytes (res.PDF) and the composed HTML
// document (res.HTML) for debugging. Use Input.HTMLOnly to skip PDF
// generation entirely.
//
// # Conversion Pipeline
//
// The conversion process follows these stages:
//
//  1. Markdown preprocessing (line normalization, [TOC] marker)
//  2. Markdown to HTML conversion via Goldmark (GFM, syntax highlighting)
//  3. Document composition (HTML boilerplate, ordered CSS blocks, TOC)
//  4. PDF rendering via headless Chrome (go-rod)
//  5. Metadata stamping (title, creator, producer) via pdfcpu
//
// Stages 1-3 are pure and deterministic: identical input and configuration
// produce byte-identical composed HTML.
//
// # Configuration
//
// Use functional options to customize the service:
//
//	svc := mdpress.New(
//	    mdpress.WithTimeout(2 * time.Minute),
//	    mdpress.WithBrowserFlags(mdpress.BrowserFlag{Name: "disable-gpu"}),
//	)
//
// Per-conversion options are passed via Input:
//
//	res, err := svc.Convert(ctx, mdpress.Input{
//	    Markdown: content,
//	    Styles:   []mdpress.Style{{Name: "base", CSS: "body { font-size: 12pt; }"}},
//	    Page:     mdpress.DefaultPageSettings(),
//	    Footer:   &mdpress.Footer{ShowPageNumber: true},
//	    Metadata: &mdpress.Metadata{Creator: "Alice"},
//	})
//
// # Parallel Processing
//
// For batch conversion, use ServicePool to manage multiple browser instances:
//
//	pool := mdpress.NewServicePool(4)
//	defer pool.Close()
//
//	svc := pool.Acquire()
//	defer pool.Release(svc)
//	res, err := svc.Convert(ctx, input)
//
// # Browser Requirements
//
// PDF generation requires Chrome/Chromium discoverable on the system. The
// service fails fast with ErrBrowserNotFound before any HTML is composed
// when no browser is available.
//
// For containers and CI environments, set ROD_NO_SANDBOX=1 to disable the
// Chrome sandbox. Use ROD_BROWSER_BIN to specify a custom Chrome binary.
package mdpress
