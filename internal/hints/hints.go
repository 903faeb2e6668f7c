// Package hints turns well-known failures into actionable suggestions.
// Every hint renders as "\n  hint: <text>" so callers can append it
// directly to an error line.
package hints

import (
	"os"
	"strings"

	"github.com/mdpress/mdpress/internal/fileutil"
)

const prefix = "\n  hint: "

// IsInContainer reports whether the process appears to run inside
// Docker. Overridable in tests.
var IsInContainer = func() bool {
	return fileutil.FileExists("/.dockerenv")
}

func inCI() bool {
	for _, v := range []string{"CI", "GITHUB_ACTIONS", "GITLAB_CI", "JENKINS_URL"} {
		if os.Getenv(v) != "" {
			return true
		}
	}
	return false
}

// ForBrowserNotFound suggests fixes for a missing Chrome/Chromium binary.
func ForBrowserNotFound() string {
	return format("install Chrome/Chromium or set ROD_BROWSER_BIN to its path")
}

// ForBrowserConnect suggests fixes for browser launch or connection
// failures, tailored to CI and container environments.
func ForBrowserConnect() string {
	var parts []string

	if (inCI() || IsInContainer()) && os.Getenv("ROD_NO_SANDBOX") != "1" {
		parts = append(parts, "set ROD_NO_SANDBOX=1 for Docker/CI")
	}
	if os.Getenv("ROD_BROWSER_BIN") == "" {
		parts = append(parts, "set ROD_BROWSER_BIN to use custom Chrome")
	}

	return formatHints(parts)
}

// ForTimeout suggests raising the render timeout.
func ForTimeout() string {
	return format("for large documents, use --timeout or pdf_options.timeout")
}

// ForConfigNotFound suggests the --config flag and, when the search
// list includes the user config directory, creating the file there.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/file.yaml"

	for _, p := range searchedPaths {
		if strings.Contains(p, ".config/mdpress") {
			hint += " or create " + p
			break
		}
	}

	return format(hint)
}

// ForOutputDirectory suggests checking the destination directory.
func ForOutputDirectory() string {
	return format("check parent directory exists and is writable")
}

func format(hint string) string {
	if hint == "" {
		return ""
	}
	return prefix + hint
}

func formatHints(hints []string) string {
	if len(hints) == 0 {
		return ""
	}
	return format(strings.Join(hints, "; "))
}
