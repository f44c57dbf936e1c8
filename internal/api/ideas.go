package api

import (
	"context"
	"net/url"
	"strconv"
)

// CreateIdeaRequest is the payload for creating a video idea.
type CreateIdeaRequest struct {
	GenreID               string   `json:"genre_id" validate:"required"`
	Title                 string   `json:"title" validate:"required,max=255"`
	Description           string   `json:"description,omitempty"`
	NicheLabel            string   `json:"niche_label" validate:"required,max=255"`
	MoodTags              []string `json:"mood_tags,omitempty"`
	TargetDurationMinutes int      `json:"target_duration_minutes" validate:"gte=60,lte=120"`
	NumTracks             int      `json:"num_tracks" validate:"gte=10,lte=30"`
	IsTemplate            bool     `json:"is_template,omitempty"`
}

// UpdateIdeaRequest carries optional fields for an idea update.
type UpdateIdeaRequest struct {
	GenreID               *string  `json:"genre_id,omitempty"`
	Title                 *string  `json:"title,omitempty" validate:"omitempty,max=255"`
	Description           *string  `json:"description,omitempty"`
	NicheLabel            *string  `json:"niche_label,omitempty" validate:"omitempty,max=255"`
	MoodTags              []string `json:"mood_tags,omitempty"`
	TargetDurationMinutes *int     `json:"target_duration_minutes,omitempty" validate:"omitempty,gte=60,lte=120"`
	NumTracks             *int     `json:"num_tracks,omitempty" validate:"omitempty,gte=10,lte=30"`
	IsTemplate            *bool    `json:"is_template,omitempty"`
	IsArchived            *bool    `json:"is_archived,omitempty"`
}

// IdeaFilter narrows ListIdeas results.
type IdeaFilter struct {
	GenreID         string
	Search          string
	IncludeArchived bool
	TemplatesOnly   bool
}

// ListIdeas returns ideas matching the filter.
func (c *Client) ListIdeas(ctx context.Context, filter IdeaFilter) ([]VideoIdea, error) {
	query := url.Values{}
	if filter.GenreID != "" {
		query.Set("genre_id", filter.GenreID)
	}
	if filter.Search != "" {
		query.Set("search", filter.Search)
	}
	if filter.IncludeArchived {
		query.Set("include_archived", strconv.FormatBool(true))
	}
	if filter.TemplatesOnly {
		query.Set("templates_only", strconv.FormatBool(true))
	}
	var ideas []VideoIdea
	if err := c.getJSON(ctx, "/api/ideas", query, &ideas); err != nil {
		return nil, err
	}
	return ideas, nil
}

// GetIdea fetches one idea with its genre and prompts.
func (c *Client) GetIdea(ctx context.Context, id string) (VideoIdeaDetail, error) {
	var idea VideoIdeaDetail
	if err := c.getJSON(ctx, "/api/ideas/"+url.PathEscape(id), nil, &idea); err != nil {
		return VideoIdeaDetail{}, err
	}
	return idea, nil
}

// CreateIdea stores a new idea after validating its ranges locally.
func (c *Client) CreateIdea(ctx context.Context, req CreateIdeaRequest) (VideoIdea, error) {
	if err := ValidateRequest(req); err != nil {
		return VideoIdea{}, err
	}
	var idea VideoIdea
	if err := c.postJSON(ctx, "/api/ideas", req, &idea); err != nil {
		return VideoIdea{}, err
	}
	return idea, nil
}

// UpdateIdea applies a partial update.
func (c *Client) UpdateIdea(ctx context.Context, id string, req UpdateIdeaRequest) (VideoIdea, error) {
	if err := ValidateRequest(req); err != nil {
		return VideoIdea{}, err
	}
	var idea VideoIdea
	if err := c.putJSON(ctx, "/api/ideas/"+url.PathEscape(id), req, &idea); err != nil {
		return VideoIdea{}, err
	}
	return idea, nil
}

// ArchiveIdea soft-deletes an idea.
func (c *Client) ArchiveIdea(ctx context.Context, id string) error {
	archived := true
	_, err := c.UpdateIdea(ctx, id, UpdateIdeaRequest{IsArchived: &archived})
	return err
}

// CloneIdea duplicates an idea as a fresh, unarchived copy.
func (c *Client) CloneIdea(ctx context.Context, id string) (VideoIdea, error) {
	var idea VideoIdea
	if err := c.postJSON(ctx, "/api/ideas/"+url.PathEscape(id)+"/clone", nil, &idea); err != nil {
		return VideoIdea{}, err
	}
	return idea, nil
}

// GenerateIdeaPrompts asks the backend to (re)generate prompts for an idea.
func (c *Client) GenerateIdeaPrompts(ctx context.Context, id string) (IdeaPrompts, error) {
	var prompts IdeaPrompts
	if err := c.postJSON(ctx, "/api/ideas/"+url.PathEscape(id)+"/prompts", nil, &prompts); err != nil {
		return IdeaPrompts{}, err
	}
	return prompts, nil
}
