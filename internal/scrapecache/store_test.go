package scrapecache

import (
	"context"
	"testing"
	"time"

	"studioctl/internal/api"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func sampleChannel() api.ScrapedChannel {
	scraped := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	return api.ScrapedChannel{
		ID:                1,
		YouTubeChannelID:  "UCabc123",
		ChannelName:       "Lofi Lounge",
		ChannelURL:        "https://www.youtube.com/@lofilounge",
		SubscriberCount:   120000,
		VideoCount:        240,
		VideoCountScraped: 50,
		ScrapeStatus:      "completed",
		LastScrapedAt:     &scraped,
	}
}

func sampleVideos() []api.ScrapedVideo {
	published := time.Date(2026, 7, 15, 0, 0, 0, 0, time.UTC)
	return []api.ScrapedVideo{
		{
			ID: 10, ScrapedChannelID: 1, YouTubeVideoID: "vid-a",
			Title: "Rainy Night Study", VideoURL: "https://youtu.be/vid-a",
			PublishedAt: &published, DurationSeconds: 3600,
			ViewCount: 50000, Tags: []string{"lofi", "rain"},
		},
		{
			ID: 11, ScrapedChannelID: 1, YouTubeVideoID: "vid-b",
			Title: "Morning Coffee Jazz", VideoURL: "https://youtu.be/vid-b",
			DurationSeconds: 4200, ViewCount: 20000,
		},
	}
}

func TestSyncAndListRoundTrip(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	if err := store.Sync(ctx, sampleChannel(), sampleVideos()); err != nil {
		t.Fatalf("Sync: %v", err)
	}

	channels, err := store.ListChannels(ctx, "")
	if err != nil {
		t.Fatalf("ListChannels: %v", err)
	}
	if len(channels) != 1 {
		t.Fatalf("got %d channels, want 1", len(channels))
	}
	got := channels[0]
	if got.ChannelName != "Lofi Lounge" || got.SubscriberCount != 120000 {
		t.Errorf("unexpected channel: %+v", got)
	}
	if got.LastScrapedAt == nil || !got.LastScrapedAt.Equal(time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)) {
		t.Errorf("last_scraped_at = %v", got.LastScrapedAt)
	}

	videos, err := store.ListVideos(ctx, 1)
	if err != nil {
		t.Fatalf("ListVideos: %v", err)
	}
	if len(videos) != 2 {
		t.Fatalf("got %d videos, want 2", len(videos))
	}
	if videos[0].YouTubeVideoID != "vid-a" {
		t.Errorf("expected most-viewed first, got %s", videos[0].YouTubeVideoID)
	}
	if len(videos[0].Tags) != 2 || videos[0].Tags[0] != "lofi" {
		t.Errorf("tags round trip failed: %v", videos[0].Tags)
	}
}

func TestSyncReplacesStaleVideos(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	if err := store.Sync(ctx, sampleChannel(), sampleVideos()); err != nil {
		t.Fatalf("first Sync: %v", err)
	}
	fresh := []api.ScrapedVideo{{
		ID: 12, ScrapedChannelID: 1, YouTubeVideoID: "vid-c",
		Title: "New Upload", VideoURL: "https://youtu.be/vid-c", ViewCount: 100,
	}}
	channel := sampleChannel()
	channel.SubscriberCount = 130000
	if err := store.Sync(ctx, channel, fresh); err != nil {
		t.Fatalf("second Sync: %v", err)
	}

	videos, err := store.ListVideos(ctx, 1)
	if err != nil {
		t.Fatalf("ListVideos: %v", err)
	}
	if len(videos) != 1 || videos[0].YouTubeVideoID != "vid-c" {
		t.Fatalf("stale videos not replaced: %+v", videos)
	}
	channels, err := store.ListChannels(ctx, "completed")
	if err != nil {
		t.Fatalf("ListChannels: %v", err)
	}
	if len(channels) != 1 || channels[0].SubscriberCount != 130000 {
		t.Fatalf("channel not updated: %+v", channels)
	}
}

func TestStatsAggregates(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()
	if err := store.Sync(ctx, sampleChannel(), sampleVideos()); err != nil {
		t.Fatalf("Sync: %v", err)
	}

	stats, err := store.Stats(ctx, 1)
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if stats.VideoCount != 2 || stats.TotalViews != 70000 {
		t.Errorf("unexpected totals: %+v", stats)
	}
	if stats.AverageViews != 35000 {
		t.Errorf("average views = %v", stats.AverageViews)
	}
	if stats.TopVideoID != "vid-a" || stats.TopVideoTitle != "Rainy Night Study" {
		t.Errorf("top video = %s %q", stats.TopVideoID, stats.TopVideoTitle)
	}
}

func TestStatsEmptyChannel(t *testing.T) {
	store := openTestStore(t)
	stats, err := store.Stats(context.Background(), 99)
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if stats.VideoCount != 0 || stats.TopVideoID != "" {
		t.Errorf("unexpected stats for empty channel: %+v", stats)
	}
}

func TestClear(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()
	if err := store.Sync(ctx, sampleChannel(), sampleVideos()); err != nil {
		t.Fatalf("Sync: %v", err)
	}
	if err := store.Clear(ctx); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	channels, err := store.ListChannels(ctx, "")
	if err != nil {
		t.Fatalf("ListChannels: %v", err)
	}
	if len(channels) != 0 {
		t.Fatalf("cache not cleared: %+v", channels)
	}
}
