package api

import "testing"

func TestParseJobStatus(t *testing.T) {
	tests := []struct {
		input  string
		want   JobStatus
		wantOK bool
	}{
		{"planned", StatusPlanned, true},
		{" Rendering ", StatusRendering, true},
		{"GENERATING_MUSIC", StatusGeneratingMusic, true},
		{"cancelled", StatusCancelled, true},
		{"", "", false},
		{"exporting", "", false},
	}
	for _, tc := range tests {
		got, ok := ParseJobStatus(tc.input)
		if got != tc.want || ok != tc.wantOK {
			t.Errorf("ParseJobStatus(%q) = %q, %v; want %q, %v", tc.input, got, ok, tc.want, tc.wantOK)
		}
	}
}

func TestStageOrdinalFollowsPipelineOrder(t *testing.T) {
	prev := -1
	for _, stage := range PipelineStages() {
		ordinal := stage.StageOrdinal()
		if ordinal <= prev {
			t.Errorf("stage %s ordinal %d not after %d", stage, ordinal, prev)
		}
		prev = ordinal
	}
	if StatusFailed.StageOrdinal() != -1 {
		t.Errorf("failed should have no ordinal, got %d", StatusFailed.StageOrdinal())
	}
	if StatusCancelled.StageOrdinal() != -1 {
		t.Errorf("cancelled should have no ordinal, got %d", StatusCancelled.StageOrdinal())
	}
}

func TestTerminalStatuses(t *testing.T) {
	for _, status := range AllJobStatuses() {
		terminal := status == StatusCompleted || status == StatusFailed || status == StatusCancelled
		if status.IsTerminal() != terminal {
			t.Errorf("%s IsTerminal = %v, want %v", status, status.IsTerminal(), terminal)
		}
		if status.IsActive() == terminal {
			t.Errorf("%s IsActive = %v, want %v", status, status.IsActive(), !terminal)
		}
	}
}
