package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"studioctl/internal/api"
)

const requestTimeout = 15 * time.Second

func loadJobsCmd(client *api.Client) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		jobs, err := client.ListJobs(ctx, api.JobFilter{})
		if err != nil {
			return jobsLoadedMsg{err: err}
		}
		channels, err := client.ListChannels(ctx, false)
		if err != nil {
			return jobsLoadedMsg{err: err}
		}
		names := make(map[string]string, len(channels))
		for _, ch := range channels {
			names[ch.ID] = ch.Name
		}
		return jobsLoadedMsg{jobs: jobs, channels: names}
	}
}

func loadDetailCmd(client *api.Client, id string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		detail, err := client.GetJob(ctx, id)
		return jobDetailMsg{detail: detail, err: err}
	}
}

func loadGenresCmd(client *api.Client) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		genres, err := client.ListGenres(ctx, false)
		return genresLoadedMsg{genres: genres, err: err}
	}
}

func saveIdeaCmd(client *api.Client, req api.CreateIdeaRequest) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		idea, err := client.CreateIdea(ctx, req)
		return ideaSavedMsg{idea: idea, err: err}
	}
}

func cancelJobCmd(client *api.Client, id string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		job, err := client.CancelJob(ctx, id)
		return jobActionMsg{verb: "cancel", job: job, err: err}
	}
}

func retryJobCmd(client *api.Client, id string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		job, err := client.RetryJob(ctx, id)
		return jobActionMsg{verb: "retry", job: job, err: err}
	}
}

func pollCmd(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return pollTickMsg(t)
	})
}

func waitStoreCmd(ch <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		<-ch
		return storeChangedMsg{}
	}
}

func waitStreamCmd(ch <-chan tea.Msg) tea.Cmd {
	return func() tea.Msg {
		msg, ok := <-ch
		if !ok {
			return nil
		}
		return msg
	}
}
