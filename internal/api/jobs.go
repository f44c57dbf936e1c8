package api

import (
	"context"
	"net/url"
)

// CreateJobRequest is the payload for queueing a new video job.
type CreateJobRequest struct {
	ChannelID             string `json:"channel_id" validate:"required"`
	IdeaID                string `json:"idea_id,omitempty"`
	NicheLabel            string `json:"niche_label" validate:"required,max=255"`
	MoodKeywords          string `json:"mood_keywords,omitempty"`
	TargetDurationMinutes int    `json:"target_duration_minutes" validate:"gte=60,lte=90"`
}

// JobFilter narrows ListJobs results.
type JobFilter struct {
	ChannelID string
	Status    JobStatus
}

// ListJobs returns jobs matching the filter, newest first.
func (c *Client) ListJobs(ctx context.Context, filter JobFilter) ([]VideoJob, error) {
	query := url.Values{}
	if filter.ChannelID != "" {
		query.Set("channel_id", filter.ChannelID)
	}
	if filter.Status != "" {
		query.Set("status", string(filter.Status))
	}
	var jobs []VideoJob
	if err := c.getJSON(ctx, "/api/video-jobs", query, &jobs); err != nil {
		return nil, err
	}
	return jobs, nil
}

// GetJob fetches a job with its tracks, images, and render tasks.
func (c *Client) GetJob(ctx context.Context, id string) (VideoJobDetail, error) {
	var job VideoJobDetail
	if err := c.getJSON(ctx, "/api/video-jobs/"+url.PathEscape(id), nil, &job); err != nil {
		return VideoJobDetail{}, err
	}
	return job, nil
}

// CreateJob queues a new pipeline run.
func (c *Client) CreateJob(ctx context.Context, req CreateJobRequest) (VideoJob, error) {
	if err := ValidateRequest(req); err != nil {
		return VideoJob{}, err
	}
	var job VideoJob
	if err := c.postJSON(ctx, "/api/video-jobs", req, &job); err != nil {
		return VideoJob{}, err
	}
	return job, nil
}

// CancelJob requests cancellation of an active job.
func (c *Client) CancelJob(ctx context.Context, id string) (VideoJob, error) {
	var job VideoJob
	if err := c.postJSON(ctx, "/api/video-jobs/"+url.PathEscape(id)+"/cancel", nil, &job); err != nil {
		return VideoJob{}, err
	}
	return job, nil
}

// RetryJob re-queues a failed job from its last completed stage.
func (c *Client) RetryJob(ctx context.Context, id string) (VideoJob, error) {
	var job VideoJob
	if err := c.postJSON(ctx, "/api/video-jobs/"+url.PathEscape(id)+"/retry", nil, &job); err != nil {
		return VideoJob{}, err
	}
	return job, nil
}

// DeleteJob removes a terminal job and its records.
func (c *Client) DeleteJob(ctx context.Context, id string) error {
	return c.deleteJSON(ctx, "/api/video-jobs/"+url.PathEscape(id))
}

// JobEventsURL is the SSE endpoint carrying per-job progress events.
func (c *Client) JobEventsURL(id string) string {
	return c.Resolve("/api/video-jobs/"+url.PathEscape(id)+"/events", nil).String()
}
