package main

import (
	"testing"
	"time"

	"studioctl/internal/api"
)

func TestBuildJobRows(t *testing.T) {
	updated := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)
	jobs := []api.VideoJob{
		{
			ID:                    "0b5e9c32-1111-2222-3333-444455556666",
			Status:                api.StatusRendering,
			NicheLabel:            "lofi study beats",
			TargetDurationMinutes: 75,
			UpdatedAt:             updated,
		},
	}
	rows := buildJobRows(jobs, false)
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}
	row := rows[0]
	if row[0] != "0b5e9c32" {
		t.Errorf("expected shortened id, got %q", row[0])
	}
	if row[1] != "rendering" {
		t.Errorf("expected status label, got %q", row[1])
	}
	if row[2] != "lofi study beats" {
		t.Errorf("expected niche label, got %q", row[2])
	}
	if row[3] != "75 min" {
		t.Errorf("expected duration, got %q", row[3])
	}
	if row[4] != updated.Local().Format("2006-01-02 15:04") {
		t.Errorf("expected local timestamp, got %q", row[4])
	}
}

func TestBuildChannelRows(t *testing.T) {
	channels := []api.Channel{
		{
			ID:         "ch-abc12345",
			Name:       "Midnight FM",
			BrandNiche: "dark ambient",
			IsActive:   true,
			CreatedAt:  time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC),
		},
	}
	rows := buildChannelRows(channels)
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}
	if rows[0][1] != "Midnight FM" || rows[0][2] != "dark ambient" {
		t.Fatalf("unexpected channel row %v", rows[0])
	}
	if rows[0][3] != "yes" {
		t.Fatalf("expected active marker, got %q", rows[0][3])
	}
}

func TestBuildIdeaRows(t *testing.T) {
	ideas := []api.VideoIdea{
		{
			ID:                    "idea-9f8e7d6c",
			Title:                 "Rainy Tokyo Nights",
			NicheLabel:            "city pop",
			TargetDurationMinutes: 90,
			NumTracks:             18,
			TimesUsed:             4,
		},
	}
	rows := buildIdeaRows(ideas)
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}
	want := []string{"idea-9f8", "Rainy Tokyo Nights", "city pop", "90 min", "18", "4"}
	for i, cell := range want {
		if rows[0][i] != cell {
			t.Errorf("column %d: got %q, want %q", i, rows[0][i], cell)
		}
	}
}

func TestBuildGenreRows(t *testing.T) {
	genres := []api.Genre{
		{ID: "genre-lofi-hiphop", Name: "Lofi Hip Hop", Slug: "lofi-hip-hop", TotalIdeas: 12, IsActive: true},
		{ID: "genre-dr", Name: "Dark Ambient", Slug: "dark-ambient", IsActive: false},
	}
	rows := buildGenreRows(genres)
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if rows[0][1] != "Lofi Hip Hop" || rows[0][3] != "12" || rows[0][4] != "yes" {
		t.Fatalf("unexpected first row %v", rows[0])
	}
	if rows[1][4] != "no" {
		t.Fatalf("expected inactive marker, got %q", rows[1][4])
	}
}

func TestBuildScrapedChannelRows(t *testing.T) {
	channels := []api.ScrapedChannel{
		{
			ID:                42,
			ChannelName:       "Chillhop Radio",
			SubscriberCount:   1_300_000,
			VideoCount:        300,
			VideoCountScraped: 120,
			ScrapeStatus:      "completed",
		},
	}
	rows := buildScrapedChannelRows(channels)
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}
	want := []string{"42", "Chillhop Radio", "1.3M", "120/300", "completed"}
	for i, cell := range want {
		if rows[0][i] != cell {
			t.Errorf("column %d: got %q, want %q", i, rows[0][i], cell)
		}
	}
}

func TestFormatCount(t *testing.T) {
	cases := []struct {
		in   int64
		want string
	}{
		{0, "0"},
		{999, "999"},
		{1500, "1.5K"},
		{2_400_000, "2.4M"},
	}
	for _, tc := range cases {
		if got := formatCount(tc.in); got != tc.want {
			t.Errorf("formatCount(%d) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestFormatDuration(t *testing.T) {
	cases := []struct {
		in   int64
		want string
	}{
		{0, ""},
		{59, "0:59"},
		{125, "2:05"},
		{3723, "1:02:03"},
	}
	for _, tc := range cases {
		if got := formatDuration(tc.in); got != tc.want {
			t.Errorf("formatDuration(%d) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestParseBoolFlag(t *testing.T) {
	truthy := []string{"y", "YES", " true ", "1"}
	for _, raw := range truthy {
		got, err := parseBoolFlag(raw)
		if err != nil || !got {
			t.Errorf("parseBoolFlag(%q) = %v, %v; want true", raw, got, err)
		}
	}
	falsy := []string{"n", "No", "false", "0"}
	for _, raw := range falsy {
		got, err := parseBoolFlag(raw)
		if err != nil || got {
			t.Errorf("parseBoolFlag(%q) = %v, %v; want false", raw, got, err)
		}
	}
	if _, err := parseBoolFlag("maybe"); err == nil {
		t.Fatalf("expected error for invalid value")
	}
}

func TestTrimPrompt(t *testing.T) {
	long := "a calm nocturnal soundscape with soft rain, vinyl crackle, and distant thunder rolling over the city"
	got := trimPrompt(long)
	if len(got) != 60 {
		t.Fatalf("expected 60 chars, got %d (%q)", len(got), got)
	}
	if got[57:] != "..." {
		t.Fatalf("expected ellipsis suffix, got %q", got)
	}
	if short := trimPrompt("  gentle piano  "); short != "gentle piano" {
		t.Fatalf("expected trimmed prompt, got %q", short)
	}
}

func TestSplitCommaList(t *testing.T) {
	got := splitCommaList("calm, rainy,, night ")
	want := []string{"calm", "rainy", "night"}
	if len(got) != len(want) {
		t.Fatalf("expected %d parts, got %v", len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("part %d: got %q, want %q", i, got[i], want[i])
		}
	}
}
