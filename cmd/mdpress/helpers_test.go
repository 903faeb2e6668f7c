package main

import (
	"bytes"
	"time"

	"github.com/mdpress/mdpress/internal/config"
)

// testEnv returns an Environment with buffered output for assertions.
func testEnv() (*Environment, *bytes.Buffer, *bytes.Buffer) {
	var stdout, stderr bytes.Buffer
	env := &Environment{
		Now:    func() time.Time { return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC) },
		Stdout: &stdout,
		Stderr: &stderr,
	}
	return env, &stdout, &stderr
}

// defaultTestConfig returns the built-in configuration.
func defaultTestConfig() *config.Config {
	return config.Default()
}

// silentLogger returns a logger that discards all output.
func silentLogger() *logger {
	var buf bytes.Buffer
	return &logger{console: &buf, errOut: &buf}
}
