package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"

	"studioctl/internal/api"
)

// StepState is one tracker step's display state.
type StepState int

const (
	StepPending StepState = iota
	StepInProgress
	StepCompleted
)

func (s StepState) String() string {
	switch s {
	case StepPending:
		return "pending"
	case StepInProgress:
		return "in_progress"
	case StepCompleted:
		return "completed"
	default:
		return "unknown"
	}
}

// Step is one pipeline stage in the progress tracker.
type Step struct {
	Stage api.JobStatus
	Label string
	State StepState
}

var stepLabels = map[api.JobStatus]string{
	api.StatusPlanned:         "Planned",
	api.StatusGeneratingMusic: "Music",
	api.StatusGeneratingImage: "Artwork",
	api.StatusRendering:       "Render",
	api.StatusReadyForExport:  "Export",
}

// TrackerSteps maps a job status onto the five pipeline steps. Stages before
// the current one are completed, the current one is in progress, and later
// ones are pending. Completed jobs show every step completed. Failed and
// cancelled jobs carry no stage ordinal, so every step renders pending
// beneath the failure line.
func TrackerSteps(status api.JobStatus) []Step {
	stages := api.PipelineStages()
	// Drop the completed pseudo-stage; the tracker shows the five working steps.
	stages = stages[:len(stages)-1]

	steps := make([]Step, len(stages))
	current := status.StageOrdinal()
	allDone := status == api.StatusCompleted
	for i, stage := range stages {
		state := StepPending
		switch {
		case allDone:
			state = StepCompleted
		case current < 0:
			// Failed or cancelled: nothing advances.
		case i < current:
			state = StepCompleted
		case i == current:
			state = StepInProgress
		}
		steps[i] = Step{Stage: stage, Label: stepLabels[stage], State: state}
	}
	return steps
}

func renderTracker(status api.JobStatus, percent *float64, bar progress.Model, width int) string {
	steps := TrackerSteps(status)
	parts := make([]string, 0, len(steps))
	for _, step := range steps {
		var marker string
		switch step.State {
		case StepCompleted:
			marker = stepDoneStyle.Render("[x] " + step.Label)
		case StepInProgress:
			marker = stepActiveStyle.Render("[>] " + step.Label)
		default:
			marker = stepPendingStyle.Render("[ ] " + step.Label)
		}
		parts = append(parts, marker)
	}
	line := strings.Join(parts, "  ")

	switch {
	case status == api.StatusFailed:
		line += "\n" + errorStyle.Render("Pipeline failed")
	case status == api.StatusCancelled:
		line += "\n" + mutedStyle.Render("Pipeline cancelled")
	case status == api.StatusCompleted:
		line += "\n" + okStyle.Render("Pipeline complete")
	case percent != nil:
		bar.Width = clampInt(width-12, 10, 60)
		line += "\n" + bar.ViewAs(*percent/100) + fmt.Sprintf(" %3.0f%%", *percent)
	}
	return line
}
