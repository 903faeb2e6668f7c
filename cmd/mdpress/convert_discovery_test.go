package main

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestDiscoverFiles(t *testing.T) {
	t.Parallel()

	t.Run("single file", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		input := filepath.Join(dir, "doc.md")
		if err := os.WriteFile(input, []byte("# x"), 0o644); err != nil {
			t.Fatal(err)
		}

		files, err := discoverFiles(input, "")
		if err != nil {
			t.Fatalf("discoverFiles() error = %v", err)
		}
		if len(files) != 1 {
			t.Fatalf("got %d files, want 1", len(files))
		}
		want := filepath.Join(dir, "doc.pdf")
		if files[0].OutputPath != want {
			t.Errorf("OutputPath = %q, want %q", files[0].OutputPath, want)
		}
	})

	t.Run("single file with explicit output", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		input := filepath.Join(dir, "doc.md")
		if err := os.WriteFile(input, []byte("# x"), 0o644); err != nil {
			t.Fatal(err)
		}

		files, err := discoverFiles(input, filepath.Join(dir, "custom.pdf"))
		if err != nil {
			t.Fatalf("discoverFiles() error = %v", err)
		}
		if files[0].OutputPath != filepath.Join(dir, "custom.pdf") {
			t.Errorf("OutputPath = %q", files[0].OutputPath)
		}
	})

	t.Run("wrong extension rejected", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		input := filepath.Join(dir, "doc.txt")
		if err := os.WriteFile(input, []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}

		_, err := discoverFiles(input, "")
		if !errors.Is(err, ErrInvalidExtension) {
			t.Errorf("discoverFiles() error = %v, want ErrInvalidExtension", err)
		}
	})

	t.Run("missing input", func(t *testing.T) {
		t.Parallel()
		_, err := discoverFiles(filepath.Join(t.TempDir(), "absent.md"), "")
		if !errors.Is(err, os.ErrNotExist) {
			t.Errorf("discoverFiles() error = %v, want os.ErrNotExist", err)
		}
	})

	t.Run("directory with pdf output rejected", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		for _, name := range []string{"a.md", "b.md"} {
			if err := os.WriteFile(filepath.Join(dir, name), []byte("# x"), 0o644); err != nil {
				t.Fatal(err)
			}
		}

		_, err := discoverFiles(dir, filepath.Join(dir, "out.pdf"))
		if !errors.Is(err, ErrOutputForDirectory) {
			t.Errorf("discoverFiles() error = %v, want ErrOutputForDirectory", err)
		}
	})

	t.Run("directory walked recursively", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		sub := filepath.Join(dir, "nested")
		if err := os.MkdirAll(sub, 0o750); err != nil {
			t.Fatal(err)
		}
		for _, name := range []string{
			filepath.Join(dir, "a.md"),
			filepath.Join(sub, "b.markdown"),
			filepath.Join(dir, "ignore.txt"),
		} {
			if err := os.WriteFile(name, []byte("# x"), 0o644); err != nil {
				t.Fatal(err)
			}
		}

		out := filepath.Join(dir, "out")
		files, err := discoverFiles(dir, out)
		if err != nil {
			t.Fatalf("discoverFiles() error = %v", err)
		}
		if len(files) != 2 {
			t.Fatalf("got %d files, want 2", len(files))
		}

		// Nested structure is mirrored under the output directory.
		found := false
		for _, f := range files {
			if f.OutputPath == filepath.Join(out, "nested", "b.pdf") {
				found = true
			}
		}
		if !found {
			t.Errorf("nested output path not mirrored: %+v", files)
		}
	})
}

func TestResolveOutputPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		inputPath    string
		output       string
		baseInputDir string
		want         string
	}{
		{
			name:      "default next to input",
			inputPath: filepath.Join("docs", "readme.md"),
			want:      filepath.Join("docs", "readme.pdf"),
		},
		{
			name:      "explicit pdf path",
			inputPath: "readme.md",
			output:    filepath.Join("out", "final.pdf"),
			want:      filepath.Join("out", "final.pdf"),
		},
		{
			name:      "output directory",
			inputPath: "readme.md",
			output:    "out",
			want:      filepath.Join("out", "readme.pdf"),
		},
		{
			name:         "directory structure mirrored",
			inputPath:    filepath.Join("src", "guides", "intro.md"),
			output:       "out",
			baseInputDir: "src",
			want:         filepath.Join("out", "guides", "intro.pdf"),
		},
		{
			name:      "markdown extension variant",
			inputPath: "notes.markdown",
			want:      "notes.pdf",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := resolveOutputPath(tt.inputPath, tt.output, tt.baseInputDir)
			if got != tt.want {
				t.Errorf("resolveOutputPath() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTitleFallback(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path string
		want string
	}{
		{filepath.Join("docs", "user-guide.md"), "user-guide"},
		{"README.markdown", "README"},
		{"plain", "plain"},
	}

	for _, tt := range tests {
		tt := tt
		if got := titleFallback(tt.path); got != tt.want {
			t.Errorf("titleFallback(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}
