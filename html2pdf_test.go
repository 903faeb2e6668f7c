package mdpress

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestBuildPrintOptions(t *testing.T) {
	t.Parallel()

	t.Run("nil options use defaults", func(t *testing.T) {
		t.Parallel()
		got := buildPrintOptions(nil)

		if *got.PaperWidth != defaultPaperWidthInches {
			t.Errorf("PaperWidth = %v, want %v", *got.PaperWidth, defaultPaperWidthInches)
		}
		if *got.PaperHeight != defaultPaperHeightInches {
			t.Errorf("PaperHeight = %v, want %v", *got.PaperHeight, defaultPaperHeightInches)
		}
		if *got.MarginTop != defaultMarginInches {
			t.Errorf("MarginTop = %v, want %v", *got.MarginTop, defaultMarginInches)
		}
		if !got.PrintBackground {
			t.Error("PrintBackground should be true")
		}
		if got.DisplayHeaderFooter {
			t.Error("DisplayHeaderFooter should be false without footer")
		}
	})

	t.Run("custom page settings", func(t *testing.T) {
		t.Parallel()
		got := buildPrintOptions(&renderOptions{
			Page: &PageSettings{
				Width: 8.5, Height: 11,
				MarginTop: 0.5, MarginBottom: 0.5, MarginLeft: 1, MarginRight: 1,
			},
		})

		if *got.PaperWidth != 8.5 || *got.PaperHeight != 11 {
			t.Errorf("paper = %v x %v, want 8.5 x 11", *got.PaperWidth, *got.PaperHeight)
		}
		if *got.MarginLeft != 1 || *got.MarginRight != 1 {
			t.Errorf("horizontal margins = %v / %v, want 1 / 1", *got.MarginLeft, *got.MarginRight)
		}
	})

	t.Run("footer enables header footer display", func(t *testing.T) {
		t.Parallel()
		got := buildPrintOptions(&renderOptions{
			Footer: &Footer{ShowPageNumber: true},
		})

		if !got.DisplayHeaderFooter {
			t.Error("DisplayHeaderFooter should be true with footer")
		}
		if got.HeaderTemplate != "<span></span>" {
			t.Errorf("HeaderTemplate = %q, want empty span", got.HeaderTemplate)
		}
		if !strings.Contains(got.FooterTemplate, "pageNumber") {
			t.Error("FooterTemplate missing pageNumber span")
		}
	})

	t.Run("footer bumps small bottom margin", func(t *testing.T) {
		t.Parallel()
		got := buildPrintOptions(&renderOptions{
			Page:   DefaultPageSettings(),
			Footer: &Footer{ShowPageNumber: true},
		})
		if *got.MarginBottom != marginBottomWithFooter {
			t.Errorf("MarginBottom = %v, want %v", *got.MarginBottom, marginBottomWithFooter)
		}
	})

	t.Run("footer keeps larger bottom margin", func(t *testing.T) {
		t.Parallel()
		page := DefaultPageSettings()
		page.MarginBottom = 1.5
		got := buildPrintOptions(&renderOptions{
			Page:   page,
			Footer: &Footer{Text: "footer"},
		})
		if *got.MarginBottom != 1.5 {
			t.Errorf("MarginBottom = %v, want 1.5", *got.MarginBottom)
		}
	})

	t.Run("empty footer ignored", func(t *testing.T) {
		t.Parallel()
		got := buildPrintOptions(&renderOptions{
			Footer: &Footer{Position: "center"},
		})
		if got.DisplayHeaderFooter {
			t.Error("footer with no content should not enable DisplayHeaderFooter")
		}
	})
}

func TestBuildFooterTemplate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		footer       *Footer
		wantContains []string
		wantNot      []string
	}{
		{
			name:   "nil footer",
			footer: nil,
			wantContains: []string{
				"<span></span>",
			},
		},
		{
			name:   "page numbers only",
			footer: &Footer{ShowPageNumber: true},
			wantContains: []string{
				`<span class="pageNumber"></span>`,
				`<span class="totalPages"></span>`,
				"text-align: right",
			},
		},
		{
			name:   "text and page numbers joined",
			footer: &Footer{ShowPageNumber: true, Text: "Confidential", Position: "center"},
			wantContains: []string{
				"pageNumber",
				"Confidential",
				" - ",
				"text-align: center",
			},
		},
		{
			name:   "left position",
			footer: &Footer{Text: "draft", Position: "left"},
			wantContains: []string{
				"text-align: left",
			},
		},
		{
			name:   "text escaped",
			footer: &Footer{Text: "<b>bold</b>"},
			wantContains: []string{
				"&lt;b&gt;bold&lt;/b&gt;",
			},
			wantNot: []string{"<b>bold</b>"},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := buildFooterTemplate(tt.footer)
			for _, want := range tt.wantContains {
				if !strings.Contains(got, want) {
					t.Errorf("buildFooterTemplate() missing %q in %q", want, got)
				}
			}
			for _, not := range tt.wantNot {
				if strings.Contains(got, not) {
					t.Errorf("buildFooterTemplate() should not contain %q", not)
				}
			}
		})
	}
}

func TestRodRenderer_Available(t *testing.T) {
	t.Run("missing ROD_BROWSER_BIN path", func(t *testing.T) {
		t.Setenv("ROD_BROWSER_BIN", filepath.Join(t.TempDir(), "no-such-browser"))

		r := newRodRenderer(time.Second, nil)
		err := r.Available()
		if !errors.Is(err, ErrBrowserNotFound) {
			t.Errorf("Available() error = %v, want ErrBrowserNotFound", err)
		}
	})

	t.Run("existing ROD_BROWSER_BIN path", func(t *testing.T) {
		bin := filepath.Join(t.TempDir(), "chromium")
		if err := os.WriteFile(bin, []byte("#!/bin/sh\n"), 0o755); err != nil {
			t.Fatal(err)
		}
		t.Setenv("ROD_BROWSER_BIN", bin)

		r := newRodRenderer(time.Second, nil)
		if err := r.Available(); err != nil {
			t.Errorf("Available() error = %v, want nil", err)
		}
	})
}

func TestRodRenderer_CloseWithoutBrowser(t *testing.T) {
	t.Parallel()

	r := newRodRenderer(time.Second, nil)
	if err := r.Close(); err != nil {
		t.Errorf("Close() on unopened renderer error = %v", err)
	}
}

func TestRodConverter_CloseIdempotent(t *testing.T) {
	t.Parallel()

	c := newRodConverter(time.Second, nil)
	if err := c.Close(); err != nil {
		t.Errorf("first Close() error = %v", err)
	}
	if err := c.Close(); err != nil {
		t.Errorf("second Close() error = %v", err)
	}
}
