package mdpress

import (
	"errors"
	"testing"
)

func TestPageSettings_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		page    *PageSettings
		wantErr error
	}{
		{
			name:    "nil is valid",
			page:    nil,
			wantErr: nil,
		},
		{
			name:    "defaults are valid",
			page:    DefaultPageSettings(),
			wantErr: nil,
		},
		{
			name:    "zero width",
			page:    &PageSettings{Width: 0, Height: 11},
			wantErr: ErrInvalidPaper,
		},
		{
			name:    "negative height",
			page:    &PageSettings{Width: 8.5, Height: -1},
			wantErr: ErrInvalidPaper,
		},
		{
			name:    "negative margin",
			page:    &PageSettings{Width: 8.5, Height: 11, MarginTop: -0.1},
			wantErr: ErrInvalidMargin,
		},
		{
			name:    "margin above cap",
			page:    &PageSettings{Width: 8.5, Height: 11, MarginLeft: 3.5},
			wantErr: ErrInvalidMargin,
		},
		{
			name: "margins consume the page",
			page: &PageSettings{
				Width: 4, Height: 11,
				MarginLeft: 2, MarginRight: 2,
			},
			wantErr: ErrInvalidMargin,
		},
		{
			name: "margins consume the height",
			page: &PageSettings{
				Width: 8.5, Height: 4,
				MarginTop: 2, MarginBottom: 2,
			},
			wantErr: ErrInvalidMargin,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := tt.page.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("Validate() error = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestDefaultPageSettings(t *testing.T) {
	t.Parallel()

	p := DefaultPageSettings()
	if p.Width != defaultPaperWidthInches || p.Height != defaultPaperHeightInches {
		t.Errorf("paper = %v x %v, want A4", p.Width, p.Height)
	}
	for _, m := range []float64{p.MarginTop, p.MarginBottom, p.MarginLeft, p.MarginRight} {
		if m != defaultMarginInches {
			t.Errorf("margin = %v, want %v", m, defaultMarginInches)
		}
	}
	if err := p.Validate(); err != nil {
		t.Errorf("defaults failed validation: %v", err)
	}
}

func TestFooter_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		footer  *Footer
		wantErr bool
	}{
		{"nil is valid", nil, false},
		{"empty position", &Footer{}, false},
		{"left", &Footer{Position: "left"}, false},
		{"center", &Footer{Position: "center"}, false},
		{"right", &Footer{Position: "right"}, false},
		{"uppercase accepted", &Footer{Position: "Center"}, false},
		{"top rejected", &Footer{Position: "top"}, true},
		{"garbage rejected", &Footer{Position: "middle"}, true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := tt.footer.Validate()
			if tt.wantErr && !errors.Is(err, ErrInvalidFooterPosition) {
				t.Errorf("Validate() error = %v, want ErrInvalidFooterPosition", err)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("Validate() error = %v, want nil", err)
			}
		})
	}
}

func TestFooter_Enabled(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		footer *Footer
		want   bool
	}{
		{"nil", nil, false},
		{"empty", &Footer{}, false},
		{"position only", &Footer{Position: "center"}, false},
		{"page numbers", &Footer{ShowPageNumber: true}, true},
		{"text", &Footer{Text: "draft"}, true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := tt.footer.enabled(); got != tt.want {
				t.Errorf("enabled() = %v, want %v", got, tt.want)
			}
		})
	}
}
