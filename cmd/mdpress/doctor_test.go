package main

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestRunDoctorCmd(t *testing.T) {
	t.Run("human readable output", func(t *testing.T) {
		env, stdout, _ := testEnv()
		runDoctorCmd(nil, env)

		out := stdout.String()
		for _, want := range []string{
			"mdpress doctor",
			"environment:",
			"config:",
			"workspace:",
			"ready:",
		} {
			if !strings.Contains(out, want) {
				t.Errorf("output missing %q", want)
			}
		}
	})

	t.Run("json output", func(t *testing.T) {
		env, stdout, _ := testEnv()
		runDoctorCmd([]string{"--json"}, env)

		var report doctorReport
		if err := json.Unmarshal(stdout.Bytes(), &report); err != nil {
			t.Fatalf("output is not valid JSON: %v", err)
		}
		if len(report.Sections) == 0 {
			t.Fatal("JSON output has no sections")
		}
		names := make(map[string]bool)
		for _, s := range report.Sections {
			names[s.Name] = true
		}
		for _, want := range []string{"environment", "config", "workspace"} {
			if !names[want] {
				t.Errorf("JSON output missing section %q", want)
			}
		}
	})
}

func TestDetectContainer_Override(t *testing.T) {
	t.Setenv("MDPRESS_CONTAINER", "1")

	hint, got := detectContainer()
	if !got {
		t.Error("detectContainer() = false with MDPRESS_CONTAINER=1")
	}
	if hint != "MDPRESS_CONTAINER=1" {
		t.Errorf("hint = %q", hint)
	}
}

func TestCheckWorkspace(t *testing.T) {
	t.Parallel()

	report := &doctorReport{Ready: true}
	checkWorkspace(report)
	for _, s := range report.Sections {
		for _, f := range s.Findings {
			if f.Level == levelFail {
				t.Errorf("unexpected failure: %s", f.Detail)
			}
		}
	}
}

func TestDoctorReportAdd(t *testing.T) {
	t.Parallel()

	r := &doctorReport{}
	r.add("browser", levelOK, "binary %s", "/usr/bin/chromium")
	r.add("browser", levelWarn, "no version")
	r.add("workspace", levelOK, "writable")

	if len(r.Sections) != 2 {
		t.Fatalf("got %d sections, want 2", len(r.Sections))
	}
	if len(r.Sections[0].Findings) != 2 {
		t.Errorf("browser section has %d findings, want 2", len(r.Sections[0].Findings))
	}
	if r.Sections[0].Findings[0].Detail != "binary /usr/bin/chromium" {
		t.Errorf("Detail = %q", r.Sections[0].Findings[0].Detail)
	}
}
