package tui

import (
	"time"

	"studioctl/internal/api"
)

type jobsLoadedMsg struct {
	jobs     []api.VideoJob
	channels map[string]string
	err      error
}

type jobDetailMsg struct {
	detail api.VideoJobDetail
	err    error
}

type genresLoadedMsg struct {
	genres []api.Genre
	err    error
}

type ideaSavedMsg struct {
	idea api.VideoIdea
	err  error
}

type jobActionMsg struct {
	verb string
	job  api.VideoJob
	err  error
}

type pollTickMsg time.Time

type storeChangedMsg struct{}

// streamEventMsg carries one progress event together with the job it belongs
// to, so events buffered from a stopped subscription can be told apart from
// the currently followed job's stream.
type streamEventMsg struct {
	jobID string
	event api.ProgressEvent
}

type streamDoneMsg struct {
	jobID  string
	status api.JobStatus
}

type streamConnMsg struct {
	jobID     string
	connected bool
}
