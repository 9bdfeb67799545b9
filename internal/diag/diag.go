// Package diag provides the terminal reporting used by the quill
// command line tool.
package diag

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
)

// Level controls how much the reporter prints.
type Level int

const (
	LevelError Level = iota
	LevelWarn
	LevelInfo
	LevelVerbose
)

// Reporter writes leveled, colored diagnostics for contract lint runs.
type Reporter struct {
	level    Level
	out      io.Writer
	errOut   io.Writer
	errorFmt *color.Color
	warnFmt  *color.Color
	infoFmt  *color.Color
	okFmt    *color.Color
	dimFmt   *color.Color
}

// NewReporter creates a reporter writing to stdout/stderr
func NewReporter(level Level) *Reporter {
	return &Reporter{
		level:    level,
		out:      os.Stdout,
		errOut:   os.Stderr,
		errorFmt: color.New(color.FgRed, color.Bold),
		warnFmt:  color.New(color.FgYellow),
		infoFmt:  color.New(color.FgBlue),
		okFmt:    color.New(color.FgGreen),
		dimFmt:   color.New(color.Faint),
	}
}

// NewQuietReporter only reports errors
func NewQuietReporter() *Reporter {
	return NewReporter(LevelError)
}

// NewVerboseReporter reports everything
func NewVerboseReporter() *Reporter {
	return NewReporter(LevelVerbose)
}

// Errorf reports an error (always shown)
func (r *Reporter) Errorf(format string, args ...any) {
	fmt.Fprintf(r.errOut, "%s %s\n", r.errorFmt.Sprint("ERROR"), fmt.Sprintf(format, args...))
}

// Warnf reports a warning
func (r *Reporter) Warnf(format string, args ...any) {
	if r.level >= LevelWarn {
		fmt.Fprintf(r.out, "%s %s\n", r.warnFmt.Sprint("WARN"), fmt.Sprintf(format, args...))
	}
}

// Infof reports progress
func (r *Reporter) Infof(format string, args ...any) {
	if r.level >= LevelInfo {
		fmt.Fprintf(r.out, "%s %s\n", r.infoFmt.Sprint("INFO"), fmt.Sprintf(format, args...))
	}
}

// Successf reports a successful result with emphasis
func (r *Reporter) Successf(format string, args ...any) {
	if r.level >= LevelInfo {
		fmt.Fprintf(r.out, "%s %s\n", r.okFmt.Sprint("OK"), fmt.Sprintf(format, args...))
	}
}

// Detailf reports secondary detail lines in verbose runs
func (r *Reporter) Detailf(format string, args ...any) {
	if r.level >= LevelVerbose {
		fmt.Fprintf(r.out, "     %s\n", r.dimFmt.Sprint(fmt.Sprintf(format, args...)))
	}
}
