package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"

	"episodemap/internal/preflight"
)

type statusKind int

const (
	statusInfo statusKind = iota
	statusOK
	statusWarn
	statusError
)

const (
	ansiReset  = "\x1b[0m"
	ansiRed    = "\x1b[31m"
	ansiGreen  = "\x1b[32m"
	ansiYellow = "\x1b[33m"
	ansiBlue   = "\x1b[34m"
)

const (
	statusLabelWidth = 20
	statusIndent     = "  "
)

var statusStyles = map[statusKind]struct{ label, color string }{
	statusInfo:  {"INFO", ansiBlue},
	statusOK:    {"OK", ansiGreen},
	statusWarn:  {"WARN", ansiYellow},
	statusError: {"ERROR", ansiRed},
}

func paint(text, color string, colorize bool) string {
	if !colorize || color == "" {
		return text
	}
	return color + text + ansiReset
}

func renderStatusLine(label string, kind statusKind, message string, colorize bool) string {
	style, ok := statusStyles[kind]
	if !ok {
		style = statusStyles[statusInfo]
	}
	status := "[" + style.label + "]"
	if message != "" {
		status += " " + message
	}
	return paint(fmt.Sprintf("%s%-*s %s", statusIndent, statusLabelWidth, label+":", status), style.color, colorize)
}

// statusReport accumulates the sections printed by the status command.
type statusReport struct {
	colorize bool
	lines    []string
}

func (r *statusReport) section(title string) {
	if len(r.lines) > 0 {
		r.lines = append(r.lines, "")
	}
	heading := "== " + strings.TrimSpace(title) + " =="
	r.lines = append(r.lines,
		paint(heading, ansiBlue, r.colorize),
		paint(strings.Repeat("-", len(heading)), ansiBlue, r.colorize),
	)
}

func (r *statusReport) add(label string, kind statusKind, message string) {
	r.lines = append(r.lines, renderStatusLine(label, kind, message, r.colorize))
}

// checks renders preflight results under a summary line.
func (r *statusReport) checks(results []preflight.Result) {
	r.lines = append(r.lines, checkLines(results, r.colorize)...)
}

func (r *statusReport) writeTo(w io.Writer) {
	for _, line := range r.lines {
		fmt.Fprintln(w, line)
	}
}

func checkLines(results []preflight.Result, colorize bool) []string {
	failed := len(preflight.Failed(results))
	kind, summary := statusOK, fmt.Sprintf("%d of %d checks passed", len(results)-failed, len(results))
	switch {
	case len(results) == 0:
		kind, summary = statusWarn, "no checks ran"
	case failed > 0:
		kind = statusError
	}

	lines := make([]string, 0, len(results)+1)
	lines = append(lines, renderStatusLine("Summary", kind, summary, colorize))
	for _, result := range results {
		resultKind := statusOK
		if !result.Passed {
			resultKind = statusError
		}
		lines = append(lines, renderStatusLine(result.Name, resultKind, result.Detail, colorize))
	}
	return lines
}

func shouldColorize(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(file.Fd()) || isatty.IsCygwinTerminal(file.Fd())
}
