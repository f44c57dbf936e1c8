package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"

	"studioctl/internal/api"
)

const (
	ansiReset  = "\x1b[0m"
	ansiRed    = "\x1b[31m"
	ansiGreen  = "\x1b[32m"
	ansiYellow = "\x1b[33m"
	ansiBlue   = "\x1b[34m"
	ansiGray   = "\x1b[90m"
)

// colorizeEnabled reports whether out is a terminal worth coloring.
func colorizeEnabled(out io.Writer) bool {
	f, ok := out.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// renderJobStatus prints a status word, colored for terminals.
func renderJobStatus(status api.JobStatus, colorize bool) string {
	label := string(status)
	if !colorize {
		return label
	}
	var color string
	switch status {
	case api.StatusCompleted, api.StatusReadyForExport:
		color = ansiGreen
	case api.StatusFailed:
		color = ansiRed
	case api.StatusCancelled:
		color = ansiGray
	case api.StatusPlanned:
		color = ansiYellow
	default:
		color = ansiBlue
	}
	return color + label + ansiReset
}

// renderProgressLine formats one live progress event for watch output.
func renderProgressLine(event api.ProgressEvent, colorize bool) string {
	var builder strings.Builder
	builder.WriteString(renderJobStatus(event.Status, colorize))
	if event.Progress != nil {
		fmt.Fprintf(&builder, " %5.1f%%", *event.Progress)
	}
	if event.Message != "" {
		builder.WriteString("  ")
		builder.WriteString(event.Message)
	}
	return builder.String()
}
