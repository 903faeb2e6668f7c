package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/go-rod/rod/lib/launcher"
)

const (
	levelOK   = "ok"
	levelWarn = "warn"
	levelFail = "fail"
)

// finding is one diagnostic observation within a section.
type finding struct {
	Level  string `json:"level"`
	Detail string `json:"detail"`
}

// doctorSection groups related findings under a named heading.
type doctorSection struct {
	Name     string    `json:"name"`
	Findings []finding `json:"findings"`
}

// doctorReport is the full diagnostic output. Ready is false when any
// finding is at fail level.
type doctorReport struct {
	Ready    bool            `json:"ready"`
	Sections []doctorSection `json:"sections"`
}

func (r *doctorReport) add(section string, level, format string, args ...interface{}) {
	detail := fmt.Sprintf(format, args...)
	for i := range r.Sections {
		if r.Sections[i].Name == section {
			r.Sections[i].Findings = append(r.Sections[i].Findings, finding{level, detail})
			return
		}
	}
	r.Sections = append(r.Sections, doctorSection{
		Name:     section,
		Findings: []finding{{level, detail}},
	})
}

// runDoctorCmd checks whether the host can convert documents and returns
// an exit code: 0 when ready (warnings allowed), 1 when a check failed.
func runDoctorCmd(args []string, env *Environment) int {
	jsonOutput := false
	for _, arg := range args {
		if arg == "--json" {
			jsonOutput = true
		}
	}

	report := runDoctor()

	if jsonOutput {
		enc := json.NewEncoder(env.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(report)
	} else {
		printDoctorReport(env.Stdout, report)
	}

	if !report.Ready {
		return ExitGeneral
	}
	return ExitSuccess
}

func runDoctor() *doctorReport {
	report := &doctorReport{Ready: true}

	checkBrowser(report)
	checkEnvironment(report)
	checkConfigPaths(report)
	checkWorkspace(report)

	for _, s := range report.Sections {
		for _, f := range s.Findings {
			if f.Level == levelFail {
				report.Ready = false
			}
		}
	}

	return report
}

// checkBrowser locates Chrome/Chromium and records its version and
// sandbox mode. ROD_BROWSER_BIN takes precedence over auto-detection,
// matching the renderer's own lookup order.
func checkBrowser(report *doctorReport) {
	binPath := os.Getenv("ROD_BROWSER_BIN")
	if binPath == "" {
		found := ""
		if p, ok := launcher.LookPath(); ok {
			found = p
		}
		if found == "" {
			report.add("browser", levelFail,
				"Chrome/Chromium not found; install Chrome or set ROD_BROWSER_BIN")
			return
		}
		binPath = found
	}

	if _, err := os.Stat(binPath); err != nil {
		report.add("browser", levelFail, "browser binary missing at %s", binPath)
		return
	}
	report.add("browser", levelOK, "binary %s", binPath)

	if out, err := exec.Command(binPath, "--version").Output(); err == nil { // #nosec G204 -- path comes from lookup or operator env
		report.add("browser", levelOK, "version %s", strings.TrimSpace(string(out)))
	} else {
		report.add("browser", levelWarn, "could not query browser version: %v", err)
	}

	if os.Getenv("ROD_NO_SANDBOX") == "1" {
		report.add("browser", levelOK, "sandbox disabled (ROD_NO_SANDBOX=1)")
	} else {
		report.add("browser", levelOK, "sandbox enabled")
	}
}

// containerChecks are evaluated in order; the first hit wins.
var containerChecks = []struct {
	name  string
	found func() bool
}{
	{"MDPRESS_CONTAINER=1", func() bool { return os.Getenv("MDPRESS_CONTAINER") == "1" }},
	{"/.dockerenv", func() bool { _, err := os.Stat("/.dockerenv"); return err == nil }},
	{"container env var", func() bool { return os.Getenv("container") != "" }},
	{"KUBERNETES_SERVICE_HOST", func() bool { return os.Getenv("KUBERNETES_SERVICE_HOST") != "" }},
}

var ciEnvVars = []string{"CI", "GITHUB_ACTIONS", "GITLAB_CI", "JENKINS_URL", "CIRCLECI"}

func detectContainer() (string, bool) {
	for _, c := range containerChecks {
		if c.found() {
			return c.name, true
		}
	}
	return "", false
}

func detectCI() bool {
	for _, v := range ciEnvVars {
		if os.Getenv(v) != "" {
			return true
		}
	}
	return false
}

// checkEnvironment records platform facts and warns when a container or
// CI host runs with the Chrome sandbox still enabled, which usually
// makes the launch fail.
func checkEnvironment(report *doctorReport) {
	report.add("environment", levelOK, "platform %s/%s", runtime.GOOS, runtime.GOARCH)

	hint, inContainer := detectContainer()
	if inContainer {
		report.add("environment", levelOK, "container detected via %s", hint)
	}
	inCI := detectCI()
	if inCI {
		report.add("environment", levelOK, "CI environment detected")
	}

	if (inContainer || inCI) && os.Getenv("ROD_NO_SANDBOX") != "1" {
		report.add("environment", levelWarn,
			"container/CI detected without ROD_NO_SANDBOX=1; Chrome may refuse to start")
	}
}

// checkConfigPaths reports where named configs are resolved from.
func checkConfigPaths(report *doctorReport) {
	report.add("config", levelOK, "search path: current directory")
	if dir, err := os.UserConfigDir(); err == nil {
		report.add("config", levelOK, "search path: %s", filepath.Join(dir, "mdpress"))
	} else {
		report.add("config", levelWarn, "user config directory unavailable: %v", err)
	}
}

// checkWorkspace verifies the temp directory is writable; the renderer
// stages composed HTML there before handing it to the browser.
func checkWorkspace(report *doctorReport) {
	tmpDir := os.TempDir()
	marker := filepath.Join(tmpDir, "mdpress-doctor-check")
	if err := os.WriteFile(marker, []byte("ok"), 0o600); err != nil {
		report.add("workspace", levelFail, "temp directory %s not writable: %v", tmpDir, err)
		return
	}
	_ = os.Remove(marker)
	report.add("workspace", levelOK, "temp directory %s writable", tmpDir)
}

func printDoctorReport(w io.Writer, r *doctorReport) {
	fmt.Fprintln(w, "mdpress doctor")

	for _, s := range r.Sections {
		fmt.Fprintf(w, "\n%s:\n", s.Name)
		for _, f := range s.Findings {
			fmt.Fprintf(w, "  %-4s %s\n", f.Level, f.Detail)
		}
	}

	fmt.Fprintln(w)
	if r.Ready {
		fmt.Fprintln(w, "ready: yes")
	} else {
		fmt.Fprintln(w, "ready: no")
	}
}
