package api

import (
	"encoding/json"
	"strings"
	"time"
)

// JobStatus represents the lifecycle of a video job in the generation pipeline.
type JobStatus string

const (
	StatusPlanned         JobStatus = "planned"
	StatusGeneratingMusic JobStatus = "generating_music"
	StatusGeneratingImage JobStatus = "generating_image"
	StatusRendering       JobStatus = "rendering"
	StatusReadyForExport  JobStatus = "ready_for_export"
	StatusCompleted       JobStatus = "completed"
	StatusFailed          JobStatus = "failed"
	StatusCancelled       JobStatus = "cancelled"
)

var allJobStatuses = []JobStatus{
	StatusPlanned,
	StatusGeneratingMusic,
	StatusGeneratingImage,
	StatusRendering,
	StatusReadyForExport,
	StatusCompleted,
	StatusFailed,
	StatusCancelled,
}

// pipelineStages is the forward path a job walks when nothing goes wrong.
var pipelineStages = []JobStatus{
	StatusPlanned,
	StatusGeneratingMusic,
	StatusGeneratingImage,
	StatusRendering,
	StatusReadyForExport,
	StatusCompleted,
}

var stageOrdinals = func() map[JobStatus]int {
	ordinals := make(map[JobStatus]int, len(pipelineStages))
	for i, stage := range pipelineStages {
		ordinals[stage] = i
	}
	return ordinals
}()

// AllJobStatuses returns the ordered list of known statuses.
func AllJobStatuses() []JobStatus {
	cp := make([]JobStatus, len(allJobStatuses))
	copy(cp, allJobStatuses)
	return cp
}

// PipelineStages returns the ordered forward path of the pipeline.
func PipelineStages() []JobStatus {
	cp := make([]JobStatus, len(pipelineStages))
	copy(cp, pipelineStages)
	return cp
}

// ParseJobStatus converts a string into a known JobStatus.
func ParseJobStatus(value string) (JobStatus, bool) {
	normalized := JobStatus(strings.ToLower(strings.TrimSpace(value)))
	if normalized == "" {
		return "", false
	}
	for _, status := range allJobStatuses {
		if status == normalized {
			return normalized, true
		}
	}
	return "", false
}

// StageOrdinal returns the position of a status on the forward pipeline path,
// or -1 for failed, cancelled, and unknown statuses, which carry no ordering.
func (s JobStatus) StageOrdinal() int {
	if ordinal, ok := stageOrdinals[s]; ok {
		return ordinal
	}
	return -1
}

// IsTerminal reports whether a status ends the pipeline.
func (s JobStatus) IsTerminal() bool {
	switch s {
	case StatusCompleted, StatusFailed, StatusCancelled:
		return true
	default:
		return false
	}
}

// IsActive reports whether a job in this status may still emit progress events.
func (s JobStatus) IsActive() bool {
	return !s.IsTerminal()
}

// VideoJob is one pipeline run producing a finished video for a channel.
type VideoJob struct {
	ID                    string          `json:"id"`
	ChannelID             string          `json:"channel_id"`
	Status                JobStatus       `json:"status"`
	NicheLabel            string          `json:"niche_label"`
	MoodKeywords          string          `json:"mood_keywords"`
	TargetDurationMinutes int             `json:"target_duration_minutes"`
	PromptsJSON           json.RawMessage `json:"prompts_json,omitempty"`
	LocalVideoPath        string          `json:"local_video_path,omitempty"`
	OutputDirectory       string          `json:"output_directory"`
	ErrorMessage          string          `json:"error_message,omitempty"`
	CreatedAt             time.Time       `json:"created_at"`
	UpdatedAt             time.Time       `json:"updated_at"`
}

// VideoJobDetail is a job plus its generated assets.
type VideoJobDetail struct {
	VideoJob
	AudioTracks []AudioTrack `json:"audio_tracks"`
	Images      []Image      `json:"images"`
	RenderTasks []RenderTask `json:"render_tasks"`
}

// AudioTrack is one generated music track belonging to a job.
type AudioTrack struct {
	ID              string  `json:"id"`
	VideoJobID      string  `json:"video_job_id"`
	Provider        string  `json:"provider"`
	OrderIndex      int     `json:"order_index"`
	LocalFilePath   string  `json:"local_file_path,omitempty"`
	PromptText      string  `json:"prompt_text,omitempty"`
	DurationSeconds float64 `json:"duration_seconds,omitempty"`
	Status          string  `json:"status"`
}

// Image is one generated visual belonging to a job.
type Image struct {
	ID            string `json:"id"`
	VideoJobID    string `json:"video_job_id"`
	Provider      string `json:"provider"`
	OrderIndex    int    `json:"order_index"`
	LocalFilePath string `json:"local_file_path,omitempty"`
	PromptText    string `json:"prompt_text,omitempty"`
	IsSelected    bool   `json:"is_selected"`
	Upscaled      bool   `json:"upscaled"`
}

// RenderTask is one FFmpeg render run for a job.
type RenderTask struct {
	ID              string     `json:"id"`
	VideoJobID      string     `json:"video_job_id"`
	Resolution      string     `json:"resolution"`
	DurationSeconds float64    `json:"duration_seconds,omitempty"`
	Status          string     `json:"status"`
	ErrorMessage    string     `json:"error_message,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	CompletedAt     *time.Time `json:"completed_at,omitempty"`
}

// Channel is a YouTube destination entity that owns video jobs.
type Channel struct {
	ID               string    `json:"id"`
	Name             string    `json:"name"`
	YouTubeChannelID string    `json:"youtube_channel_id,omitempty"`
	BrandNiche       string    `json:"brand_niche"`
	IsActive         bool      `json:"is_active"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// VideoIdea is a reusable template describing a video concept.
type VideoIdea struct {
	ID                    string    `json:"id"`
	GenreID               string    `json:"genre_id"`
	Title                 string    `json:"title"`
	Description           string    `json:"description,omitempty"`
	NicheLabel            string    `json:"niche_label"`
	MoodTags              []string  `json:"mood_tags"`
	TargetDurationMinutes int       `json:"target_duration_minutes"`
	NumTracks             int       `json:"num_tracks"`
	IsTemplate            bool      `json:"is_template"`
	IsArchived            bool      `json:"is_archived"`
	TimesUsed             int       `json:"times_used"`
	CreatedAt             time.Time `json:"created_at"`
	UpdatedAt             time.Time `json:"updated_at"`
}

// VideoIdeaDetail is an idea with its genre and generated prompts attached.
type VideoIdeaDetail struct {
	VideoIdea
	Genre   *Genre       `json:"genre,omitempty"`
	Prompts *IdeaPrompts `json:"prompts,omitempty"`
}

// IdeaPrompts holds pre-generated music and visual prompts for an idea.
type IdeaPrompts struct {
	ID            string    `json:"id"`
	VideoIdeaID   string    `json:"video_idea_id"`
	MusicPrompts  []string  `json:"music_prompts"`
	VisualPrompts []string  `json:"visual_prompts"`
	GeneratedAt   time.Time `json:"generated_at"`
}

// Genre categorizes ideas.
type Genre struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description string    `json:"description,omitempty"`
	IsActive    bool      `json:"is_active"`
	SortOrder   int       `json:"sort_order"`
	TotalIdeas  int       `json:"total_ideas,omitempty"`
	ActiveIdeas int       `json:"active_ideas,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// ScrapedChannel is an externally scraped YouTube channel record.
type ScrapedChannel struct {
	ID                 int64      `json:"id"`
	YouTubeChannelID   string     `json:"youtube_channel_id"`
	ChannelName        string     `json:"channel_name"`
	ChannelURL         string     `json:"channel_url"`
	Description        string     `json:"description,omitempty"`
	SubscriberCount    int64      `json:"subscriber_count"`
	VideoCount         int64      `json:"video_count"`
	VideoCountScraped  int64      `json:"video_count_scraped"`
	ScrapeStatus       string     `json:"scrape_status"`
	ErrorMessage       string     `json:"error_message,omitempty"`
	LastScrapedAt      *time.Time `json:"last_scraped_at,omitempty"`
	LinkedChannelID    string     `json:"linked_channel_id,omitempty"`
}

// ScrapedVideo is one video row from a scraped channel.
type ScrapedVideo struct {
	ID               int64      `json:"id"`
	ScrapedChannelID int64      `json:"scraped_channel_id"`
	YouTubeVideoID   string     `json:"youtube_video_id"`
	Title            string     `json:"title"`
	VideoURL         string     `json:"video_url"`
	ThumbnailURL     string     `json:"thumbnail_url,omitempty"`
	PublishedAt      *time.Time `json:"published_at,omitempty"`
	DurationSeconds  int64      `json:"duration_seconds,omitempty"`
	ViewCount        int64      `json:"view_count,omitempty"`
	LikeCount        int64      `json:"like_count,omitempty"`
	CommentCount     int64      `json:"comment_count,omitempty"`
	Tags             []string   `json:"tags,omitempty"`
}

// ScrapeStats aggregates analytics over a scraped channel's videos.
type ScrapeStats struct {
	ChannelID       int64   `json:"channel_id"`
	VideoCount      int64   `json:"video_count"`
	TotalViews      int64   `json:"total_views"`
	AverageViews    float64 `json:"average_views"`
	AverageDuration float64 `json:"average_duration_seconds"`
	TopVideoID      string  `json:"top_video_id,omitempty"`
	TopVideoTitle   string  `json:"top_video_title,omitempty"`
}

// ProviderStatus reports one configured generation provider.
type ProviderStatus struct {
	Name      string `json:"name"`
	Type      string `json:"type"`
	Connected bool   `json:"connected"`
	Selected  bool   `json:"selected"`
}

// Settings is the backend provider configuration surface.
type Settings struct {
	MusicProvider  string           `json:"music_provider"`
	VisualProvider string           `json:"visual_provider"`
	Providers      []ProviderStatus `json:"providers"`
}

// ProgressEvent is one tick of the per-job progress stream.
type ProgressEvent struct {
	Status   JobStatus `json:"status"`
	Progress *float64  `json:"progress"`
	Message  string    `json:"message,omitempty"`
}
