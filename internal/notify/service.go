// Package notify pushes job and scrape milestones to a ntfy topic so
// operators hear about long-running pipeline work without watching a screen.
package notify

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"studioctl/internal/config"
)

const userAgent = "studioctl/0.1.0"

// Service defines the notification surface exposed to dashboard components.
type Service interface {
	NotifyJobCompleted(ctx context.Context, jobID, nicheLabel string) error
	NotifyJobFailed(ctx context.Context, jobID, nicheLabel, reason string) error
	NotifyJobCancelled(ctx context.Context, jobID, nicheLabel string) error
	NotifyScrapeCompleted(ctx context.Context, channelName string, videoCount int64) error
	NotifyScrapeFailed(ctx context.Context, channelName, reason string) error
	TestNotification(ctx context.Context) error
}

// NewService builds a notification service backed by ntfy when configured.
// When no ntfy topic is configured, a noop implementation is returned.
func NewService(cfg *config.Config) Service {
	topic := strings.TrimSpace(cfg.Notifications.NtfyTopic)
	if topic == "" {
		return noopService{}
	}

	timeout := time.Duration(cfg.Notifications.RequestTimeout) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &ntfyService{
		endpoint:        topic,
		client:          &http.Client{Timeout: timeout},
		jobCompleted:    cfg.Notifications.JobCompleted,
		jobFailed:       cfg.Notifications.JobFailed,
		scrapeCompleted: cfg.Notifications.ScrapeCompleted,
	}
}

type payload struct {
	title    string
	message  string
	tags     []string
	priority string
}

type ntfyService struct {
	endpoint        string
	client          *http.Client
	jobCompleted    bool
	jobFailed       bool
	scrapeCompleted bool
}

func (n *ntfyService) NotifyJobCompleted(ctx context.Context, jobID, nicheLabel string) error {
	if !n.jobCompleted {
		return nil
	}
	nicheLabel = strings.TrimSpace(nicheLabel)
	data := payload{
		title:    "Studio - Video Ready",
		message:  fmt.Sprintf("Video job finished: %s (%s)", nicheLabel, shortID(jobID)),
		tags:     []string{"studio", "job", "completed"},
		priority: "high",
	}
	return n.send(ctx, data)
}

func (n *ntfyService) NotifyJobFailed(ctx context.Context, jobID, nicheLabel, reason string) error {
	if !n.jobFailed {
		return nil
	}
	var builder strings.Builder
	fmt.Fprintf(&builder, "Video job failed: %s (%s)", strings.TrimSpace(nicheLabel), shortID(jobID))
	if reason = strings.TrimSpace(reason); reason != "" {
		builder.WriteString("\n")
		builder.WriteString(reason)
	}
	data := payload{
		title:    "Studio - Job Failed",
		message:  builder.String(),
		tags:     []string{"studio", "job", "failed"},
		priority: "high",
	}
	return n.send(ctx, data)
}

func (n *ntfyService) NotifyJobCancelled(ctx context.Context, jobID, nicheLabel string) error {
	if !n.jobFailed {
		return nil
	}
	data := payload{
		title:   "Studio - Job Cancelled",
		message: fmt.Sprintf("Video job cancelled: %s (%s)", strings.TrimSpace(nicheLabel), shortID(jobID)),
		tags:    []string{"studio", "job", "cancelled"},
	}
	return n.send(ctx, data)
}

func (n *ntfyService) NotifyScrapeCompleted(ctx context.Context, channelName string, videoCount int64) error {
	if !n.scrapeCompleted {
		return nil
	}
	data := payload{
		title:   "Studio - Scrape Complete",
		message: fmt.Sprintf("Scraped %d videos from %s", videoCount, strings.TrimSpace(channelName)),
		tags:    []string{"studio", "scrape", "completed"},
	}
	return n.send(ctx, data)
}

func (n *ntfyService) NotifyScrapeFailed(ctx context.Context, channelName, reason string) error {
	if !n.scrapeCompleted {
		return nil
	}
	var builder strings.Builder
	fmt.Fprintf(&builder, "Scrape failed: %s", strings.TrimSpace(channelName))
	if reason = strings.TrimSpace(reason); reason != "" {
		builder.WriteString("\n")
		builder.WriteString(reason)
	}
	data := payload{
		title:    "Studio - Scrape Failed",
		message:  builder.String(),
		tags:     []string{"studio", "scrape", "failed"},
		priority: "high",
	}
	return n.send(ctx, data)
}

func (n *ntfyService) TestNotification(ctx context.Context) error {
	data := payload{
		title:    "Studio - Test",
		message:  "Notification system test",
		tags:     []string{"studio", "test"},
		priority: "low",
	}
	return n.send(ctx, data)
}

func (n *ntfyService) send(ctx context.Context, data payload) error {
	if n == nil || n.client == nil {
		return nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.endpoint, strings.NewReader(data.message))
	if err != nil {
		return fmt.Errorf("build ntfy request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Content-Type", "text/plain; charset=utf-8")
	if data.title != "" {
		req.Header.Set("Title", data.title)
	}
	if len(data.tags) > 0 {
		req.Header.Set("Tags", strings.Join(data.tags, ","))
	}
	if data.priority != "" && data.priority != "default" {
		req.Header.Set("Priority", data.priority)
	}

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("send ntfy notification: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return fmt.Errorf("ntfy returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

type noopService struct{}

func (noopService) NotifyJobCompleted(context.Context, string, string) error           { return nil }
func (noopService) NotifyJobFailed(context.Context, string, string, string) error      { return nil }
func (noopService) NotifyJobCancelled(context.Context, string, string) error           { return nil }
func (noopService) NotifyScrapeCompleted(context.Context, string, int64) error         { return nil }
func (noopService) NotifyScrapeFailed(context.Context, string, string) error           { return nil }
func (noopService) TestNotification(context.Context) error                             { return nil }
