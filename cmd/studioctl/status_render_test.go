package main

import (
	"io"
	"strings"
	"testing"

	"studioctl/internal/api"
)

func TestRenderJobStatusNoColor(t *testing.T) {
	if got := renderJobStatus(api.StatusRendering, false); got != "rendering" {
		t.Fatalf("expected plain label, got %q", got)
	}
}

func TestRenderJobStatusColors(t *testing.T) {
	cases := []struct {
		status api.JobStatus
		color  string
	}{
		{api.StatusCompleted, ansiGreen},
		{api.StatusReadyForExport, ansiGreen},
		{api.StatusFailed, ansiRed},
		{api.StatusCancelled, ansiGray},
		{api.StatusPlanned, ansiYellow},
		{api.StatusRendering, ansiBlue},
	}
	for _, tc := range cases {
		got := renderJobStatus(tc.status, true)
		if !strings.HasPrefix(got, tc.color) {
			t.Errorf("%s: expected prefix %q, got %q", tc.status, tc.color, got)
		}
		if !strings.HasSuffix(got, ansiReset) {
			t.Errorf("%s: expected reset suffix, got %q", tc.status, got)
		}
	}
}

func TestRenderProgressLine(t *testing.T) {
	pct := 42.5
	event := api.ProgressEvent{Status: api.StatusGeneratingMusic, Progress: &pct, Message: "track 3 of 12"}
	got := renderProgressLine(event, false)
	want := "generating_music  42.5%  track 3 of 12"
	if got != want {
		t.Fatalf("renderProgressLine mismatch\n got: %q\nwant: %q", got, want)
	}
}

func TestRenderProgressLineOmitsEmptyParts(t *testing.T) {
	event := api.ProgressEvent{Status: api.StatusRendering}
	if got := renderProgressLine(event, false); got != "rendering" {
		t.Fatalf("expected bare status, got %q", got)
	}
}

func TestColorizeEnabledNonFile(t *testing.T) {
	if colorizeEnabled(io.Discard) {
		t.Fatalf("expected non-file writer to disable color")
	}
}
