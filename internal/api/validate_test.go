package api

import "testing"

func TestCreateIdeaRequestValidation(t *testing.T) {
	valid := CreateIdeaRequest{
		GenreID:               "genre-1",
		Title:                 "Midnight Rain Ambience",
		NicheLabel:            "rain sounds",
		TargetDurationMinutes: 70,
		NumTracks:             20,
	}

	tests := []struct {
		name    string
		mutate  func(*CreateIdeaRequest)
		wantErr bool
	}{
		{"valid defaults", func(r *CreateIdeaRequest) {}, false},
		{"duration at lower bound", func(r *CreateIdeaRequest) { r.TargetDurationMinutes = 60 }, false},
		{"duration at upper bound", func(r *CreateIdeaRequest) { r.TargetDurationMinutes = 120 }, false},
		{"tracks at lower bound", func(r *CreateIdeaRequest) { r.NumTracks = 10 }, false},
		{"tracks at upper bound", func(r *CreateIdeaRequest) { r.NumTracks = 30 }, false},
		{"missing title", func(r *CreateIdeaRequest) { r.Title = "" }, true},
		{"missing genre", func(r *CreateIdeaRequest) { r.GenreID = "" }, true},
		{"missing niche", func(r *CreateIdeaRequest) { r.NicheLabel = "" }, true},
		{"duration too short", func(r *CreateIdeaRequest) { r.TargetDurationMinutes = 59 }, true},
		{"duration too long", func(r *CreateIdeaRequest) { r.TargetDurationMinutes = 121 }, true},
		{"too few tracks", func(r *CreateIdeaRequest) { r.NumTracks = 9 }, true},
		{"too many tracks", func(r *CreateIdeaRequest) { r.NumTracks = 31 }, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := valid
			tc.mutate(&req)
			err := ValidateRequest(req)
			if tc.wantErr && err == nil {
				t.Fatal("expected validation error")
			}
			if !tc.wantErr && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tc.wantErr && !IsValidationError(err) {
				t.Fatalf("expected *ValidationError, got %T", err)
			}
		})
	}
}

func TestScrapeChannelRequestValidation(t *testing.T) {
	if err := ValidateRequest(ScrapeChannelRequest{ChannelURL: "https://www.youtube.com/@lofigirl"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := ValidateRequest(ScrapeChannelRequest{ChannelURL: "not a url"}); !IsValidationError(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if err := ValidateRequest(ScrapeChannelRequest{ChannelURL: "https://youtube.com/@x", MaxVideos: 900}); !IsValidationError(err) {
		t.Fatalf("expected validation error for max_videos, got %v", err)
	}
}
