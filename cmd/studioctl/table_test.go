package main

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/spf13/cobra"
)

func TestRenderTablePadsShortRows(t *testing.T) {
	out := renderTable(
		[]string{"ID", "Title", "Count"},
		[][]string{{"abc"}, {"def", "Lofi Nights", "42"}},
		[]columnAlignment{alignLeft, alignLeft, alignRight},
	)
	for _, want := range []string{"ID", "Title", "Count", "abc", "Lofi Nights", "42"} {
		if !strings.Contains(out, want) {
			t.Errorf("table missing %q:\n%s", want, out)
		}
	}
}

func TestRenderTableEmptyHeaders(t *testing.T) {
	if out := renderTable(nil, [][]string{{"x"}}, nil); out != "" {
		t.Errorf("expected empty output, got %q", out)
	}
}

func TestRenderTableCapsCellWidth(t *testing.T) {
	long := strings.Repeat("x", 200)
	out := renderTable([]string{"Prompt"}, [][]string{{long}}, nil)
	for _, line := range strings.Split(out, "\n") {
		if len([]rune(line)) > maxCellWidth+8 {
			t.Errorf("line exceeds cell cap: %d runes", len([]rune(line)))
		}
	}
}

func TestWriteJSONIndents(t *testing.T) {
	cmd := &cobra.Command{}
	var buf bytes.Buffer
	cmd.SetOut(&buf)

	if err := writeJSON(cmd, map[string]int{"count": 3}); err != nil {
		t.Fatalf("writeJSON: %v", err)
	}
	var decoded map[string]int
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if decoded["count"] != 3 {
		t.Errorf("count = %d", decoded["count"])
	}
	if !strings.Contains(buf.String(), "\n  ") {
		t.Error("expected indented output")
	}
}
