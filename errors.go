package mdpress

import "errors"

// Sentinel errors for library operations.
var (
	ErrEmptyMarkdown  = errors.New("markdown content cannot be empty")
	ErrHTMLConversion = errors.New("HTML conversion failed")

	// Dependency errors: the external renderer is missing.
	ErrBrowserNotFound = errors.New("Chrome/Chromium not found on execution path")

	// Render errors: the external renderer was found but failed.
	ErrBrowserConnect = errors.New("failed to connect to browser")
	ErrPageCreate     = errors.New("failed to create browser page")
	ErrPageLoad       = errors.New("failed to load page")
	ErrPDFGeneration  = errors.New("PDF generation failed")
	ErrEmptyPDF       = errors.New("renderer produced empty PDF output")

	// Metadata stamping errors.
	ErrMetadataStamp = errors.New("metadata stamping failed")

	// Page settings validation errors.
	ErrInvalidMargin = errors.New("invalid margin")
	ErrInvalidPaper  = errors.New("invalid paper dimensions")

	// Footer validation errors.
	ErrInvalidFooterPosition = errors.New("invalid footer position")
)
