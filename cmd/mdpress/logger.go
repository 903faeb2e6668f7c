package main

import (
	"fmt"
	"io"
	"os"
)

// logger writes progress messages according to verbosity settings.
// Errors always reach stderr. With --log, a file receives every message
// regardless of console verbosity, so quiet runs still leave a trail.
type logger struct {
	console io.Writer
	errOut  io.Writer
	file    io.Writer // nil when --log is not set
	verbose bool
	quiet   bool
}

// newLogger builds a logger for the given environment. The returned
// cleanup closes the log file and is safe to call when no file was opened.
func newLogger(env *Environment, verbose, quiet bool, logPath string) (*logger, func(), error) {
	l := &logger{
		console: env.Stdout,
		errOut:  env.Stderr,
		verbose: verbose,
		quiet:   quiet,
	}

	if logPath == "" {
		return l, func() {}, nil
	}

	f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644) // #nosec G304 -- log path is user-provided
	if err != nil {
		return nil, nil, fmt.Errorf("opening log file: %w", err)
	}
	l.file = f

	return l, func() { _ = f.Close() }, nil
}

func (l *logger) toFile(format string, args ...interface{}) {
	if l.file != nil {
		fmt.Fprintf(l.file, format+"\n", args...)
	}
}

// Infof reports normal progress. Suppressed on the console by --quiet.
func (l *logger) Infof(format string, args ...interface{}) {
	l.toFile(format, args...)
	if l.quiet {
		return
	}
	fmt.Fprintf(l.console, format+"\n", args...)
}

// Debugf reports detail shown on the console only with --verbose.
func (l *logger) Debugf(format string, args ...interface{}) {
	l.toFile(format, args...)
	if !l.verbose || l.quiet {
		return
	}
	fmt.Fprintf(l.console, format+"\n", args...)
}

// Errorf reports failures. Never suppressed.
func (l *logger) Errorf(format string, args ...interface{}) {
	l.toFile(format, args...)
	fmt.Fprintf(l.errOut, format+"\n", args...)
}
