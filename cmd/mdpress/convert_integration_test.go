//go:build integration

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

// TestConvertCmd_Integration runs the full CLI against a real browser.
func TestConvertCmd_Integration(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "report.md")
	content := "# Report\n\n[TOC]\n\n## Findings\n\nSome text.\n\n```go\nfunc main() {}\n```\n"
	if err := os.WriteFile(input, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	env, _, stderr := testEnv()
	code := realMain([]string{"mdpress", "convert", input}, env)
	if code != ExitSuccess {
		t.Fatalf("exit code = %d, stderr = %q", code, stderr.String())
	}

	data, err := os.ReadFile(filepath.Join(dir, "report.pdf"))
	if err != nil {
		t.Fatalf("PDF not written: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF-")) {
		t.Errorf("output is not a PDF, prefix: %q", data[:10])
	}
}

// TestConvertCmd_Directory_Integration converts a directory tree.
func TestConvertCmd_Directory_Integration(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "docs")
	if err := os.MkdirAll(sub, 0o750); err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{filepath.Join(dir, "a.md"), filepath.Join(sub, "b.md")} {
		if err := os.WriteFile(name, []byte("# "+filepath.Base(name)+"\n"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	out := filepath.Join(dir, "out")
	env, _, stderr := testEnv()
	code := realMain([]string{"mdpress", "convert", dir, "-o", out, "-w", "2"}, env)
	if code != ExitSuccess {
		t.Fatalf("exit code = %d, stderr = %q", code, stderr.String())
	}

	for _, want := range []string{
		filepath.Join(out, "a.pdf"),
		filepath.Join(out, "docs", "b.pdf"),
	} {
		if _, err := os.Stat(want); err != nil {
			t.Errorf("missing output %s: %v", want, err)
		}
	}
}
