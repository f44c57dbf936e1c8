package tui

import (
	"testing"

	"studioctl/internal/api"
)

func stepStates(steps []Step) []StepState {
	states := make([]StepState, len(steps))
	for i, s := range steps {
		states[i] = s.State
	}
	return states
}

func TestTrackerStepsFollowPipeline(t *testing.T) {
	tests := []struct {
		status api.JobStatus
		want   []StepState
	}{
		{api.StatusPlanned, []StepState{StepInProgress, StepPending, StepPending, StepPending, StepPending}},
		{api.StatusGeneratingMusic, []StepState{StepCompleted, StepInProgress, StepPending, StepPending, StepPending}},
		{api.StatusGeneratingImage, []StepState{StepCompleted, StepCompleted, StepInProgress, StepPending, StepPending}},
		{api.StatusRendering, []StepState{StepCompleted, StepCompleted, StepCompleted, StepInProgress, StepPending}},
		{api.StatusReadyForExport, []StepState{StepCompleted, StepCompleted, StepCompleted, StepCompleted, StepInProgress}},
		{api.StatusCompleted, []StepState{StepCompleted, StepCompleted, StepCompleted, StepCompleted, StepCompleted}},
	}
	for _, tc := range tests {
		t.Run(string(tc.status), func(t *testing.T) {
			got := stepStates(TrackerSteps(tc.status))
			if len(got) != len(tc.want) {
				t.Fatalf("got %d steps, want %d", len(got), len(tc.want))
			}
			for i := range got {
				if got[i] != tc.want[i] {
					t.Errorf("step %d = %s, want %s", i, got[i], tc.want[i])
				}
			}
		})
	}
}

func TestTrackerNeverSkipsStates(t *testing.T) {
	// Walking the pipeline forward, each step must move pending ->
	// in_progress -> completed with no step jumping ahead of its
	// predecessor.
	statuses := api.PipelineStages()
	prev := TrackerSteps(statuses[0])
	for _, status := range statuses[1:] {
		cur := TrackerSteps(status)
		for i := range cur {
			if cur[i].State < prev[i].State {
				t.Errorf("step %d regressed from %s to %s at status %s",
					i, prev[i].State, cur[i].State, status)
			}
			if cur[i].State == StepCompleted && i > 0 && cur[i-1].State != StepCompleted {
				t.Errorf("step %d completed before step %d at status %s", i, i-1, status)
			}
		}
		prev = cur
	}
}

func TestTrackerTerminalFailureShowsNoProgress(t *testing.T) {
	// Failed and cancelled jobs have no stage ordinal; every step stays
	// pending and the failure line below the tracker tells the story.
	for _, status := range []api.JobStatus{api.StatusFailed, api.StatusCancelled} {
		steps := TrackerSteps(status)
		for i, step := range steps {
			if step.State != StepPending {
				t.Errorf("%s: step %d = %s, want pending", status, i, step.State)
			}
		}
	}
}
