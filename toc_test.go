package mdpress

import (
	"strings"
	"testing"
)

func TestExtractHeadings(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		fragment string
		maxDepth int
		want     []headingInfo
	}{
		{
			name:     "simple headings",
			fragment: `<h1 id="one">One</h1><h2 id="two">Two</h2>`,
			maxDepth: 6,
			want: []headingInfo{
				{Level: 1, ID: "one", Text: "One"},
				{Level: 2, ID: "two", Text: "Two"},
			},
		},
		{
			name:     "inline markup stripped from text",
			fragment: `<h1 id="x"><em>Styled</em> <code>code</code></h1>`,
			maxDepth: 6,
			want: []headingInfo{
				{Level: 1, ID: "x", Text: "Styled code"},
			},
		},
		{
			name:     "depth filter",
			fragment: `<h1 id="a">A</h1><h4 id="b">B</h4>`,
			maxDepth: 3,
			want: []headingInfo{
				{Level: 1, ID: "a", Text: "A"},
			},
		},
		{
			name:     "heading without id skipped",
			fragment: `<h1>No Anchor</h1><h2 id="ok">OK</h2>`,
			maxDepth: 6,
			want: []headingInfo{
				{Level: 2, ID: "ok", Text: "OK"},
			},
		},
		{
			name:     "no headings",
			fragment: `<p>just text</p>`,
			maxDepth: 6,
			want:     nil,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := extractHeadings(tt.fragment, tt.maxDepth)
			if len(got) != len(tt.want) {
				t.Fatalf("extractHeadings() returned %d headings, want %d", len(got), len(tt.want))
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("heading %d = %+v, want %+v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestBuildTOC(t *testing.T) {
	t.Parallel()

	t.Run("hierarchical numbering", func(t *testing.T) {
		t.Parallel()
		fragment := `<h1 id="a">A</h1>
<h2 id="b">B</h2>
<h2 id="c">C</h2>
<h1 id="d">D</h1>
<h2 id="e">E</h2>`

		toc := buildTOC(fragment, 6)
		for _, want := range []string{
			"1. A",
			"1.1. B",
			"1.2. C",
			"2. D",
			"2.1. E",
		} {
			if !strings.Contains(toc, want) {
				t.Errorf("buildTOC() missing %q in:\n%s", want, toc)
			}
		}
	})

	t.Run("numbering normalized when document starts at h2", func(t *testing.T) {
		t.Parallel()
		fragment := `<h2 id="a">A</h2><h3 id="b">B</h3>`
		toc := buildTOC(fragment, 6)
		if !strings.Contains(toc, "1. A") || !strings.Contains(toc, "1.1. B") {
			t.Errorf("buildTOC() numbering not normalized:\n%s", toc)
		}
	})

	t.Run("level gaps do not produce zero components", func(t *testing.T) {
		t.Parallel()
		fragment := `<h1 id="a">A</h1><h3 id="b">B</h3>`
		toc := buildTOC(fragment, 6)
		if strings.Contains(toc, ".0.") || strings.Contains(toc, "1.0") {
			t.Errorf("buildTOC() produced zero numbering component:\n%s", toc)
		}
		if !strings.Contains(toc, "1.1. B") {
			t.Errorf("buildTOC() gap not collapsed:\n%s", toc)
		}
	})

	t.Run("entries escaped", func(t *testing.T) {
		t.Parallel()
		fragment := `<h1 id="a">Ampersand &amp; Co</h1>`
		toc := buildTOC(fragment, 6)
		if strings.Contains(toc, "& Co") && !strings.Contains(toc, "&amp;") {
			t.Errorf("buildTOC() did not escape entry text:\n%s", toc)
		}
	})

	t.Run("empty for no headings", func(t *testing.T) {
		t.Parallel()
		if toc := buildTOC("<p>text</p>", 6); toc != "" {
			t.Errorf("buildTOC() = %q, want empty", toc)
		}
	})

	t.Run("zero depth uses default", func(t *testing.T) {
		t.Parallel()
		fragment := `<h3 id="c">C</h3><h4 id="d">D</h4>`
		toc := buildTOC(fragment, 0)
		if !strings.Contains(toc, `href="#c"`) {
			t.Error("buildTOC() missing h3 entry at default depth")
		}
		if strings.Contains(toc, `href="#d"`) {
			t.Error("buildTOC() included h4 entry at default depth")
		}
	})
}
