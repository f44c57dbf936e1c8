package tui

import (
	"testing"

	"studioctl/internal/api"
)

func testGenres() []api.Genre {
	return []api.Genre{
		{ID: "genre-1", Name: "Lofi"},
		{ID: "genre-2", Name: "Ambient"},
	}
}

func setField(t *testing.T, f *ideaForm, key, value string) {
	t.Helper()
	for i := range f.Fields {
		if f.Fields[i].Key == key {
			f.Fields[i].Value = value
			f.revalidate()
			return
		}
	}
	t.Fatalf("field %q not found", key)
}

func TestNewFormStartsInvalid(t *testing.T) {
	f := newIdeaForm(testGenres(), 80)
	if f.Valid() {
		t.Fatal("empty form must not be submittable")
	}
	if _, ok := f.Errors["title"]; !ok {
		t.Errorf("expected title error, got %v", f.Errors)
	}
	if _, ok := f.Errors["niche_label"]; !ok {
		t.Errorf("expected niche error, got %v", f.Errors)
	}
}

func TestFormBecomesValidWithRequiredFields(t *testing.T) {
	f := newIdeaForm(testGenres(), 80)
	setField(t, f, "title", "Night Drive Synthwave")
	setField(t, f, "niche_label", "synthwave driving")
	if !f.Valid() {
		t.Fatalf("form should be valid, errors: %v", f.Errors)
	}

	req := f.toRequest()
	if req.GenreID != "genre-1" {
		t.Errorf("genre id = %q", req.GenreID)
	}
	if req.TargetDurationMinutes != 70 || req.NumTracks != 20 {
		t.Errorf("defaults = %d min, %d tracks", req.TargetDurationMinutes, req.NumTracks)
	}
}

func TestFormRejectsOutOfRangeNumbers(t *testing.T) {
	f := newIdeaForm(testGenres(), 80)
	setField(t, f, "title", "x")
	setField(t, f, "niche_label", "y")
	setField(t, f, "duration", "130")
	if f.Valid() {
		t.Fatal("duration 130 must invalidate the form")
	}
	if _, ok := f.Errors["duration"]; !ok {
		t.Errorf("expected duration error, got %v", f.Errors)
	}

	setField(t, f, "duration", "90")
	setField(t, f, "num_tracks", "5")
	if f.Valid() {
		t.Fatal("5 tracks must invalidate the form")
	}
	setField(t, f, "num_tracks", "30")
	if !f.Valid() {
		t.Fatalf("boundary values should pass, errors: %v", f.Errors)
	}
}

func TestFormUnparseableNumberIsInvalid(t *testing.T) {
	f := newIdeaForm(testGenres(), 80)
	setField(t, f, "title", "x")
	setField(t, f, "niche_label", "y")
	setField(t, f, "duration", "ninety")
	if f.Valid() {
		t.Fatal("non-numeric duration must invalidate the form")
	}
}

func TestFormParsesMoodTags(t *testing.T) {
	f := newIdeaForm(testGenres(), 80)
	setField(t, f, "mood_tags", " calm, rainy , focus ")
	req := f.toRequest()
	want := []string{"calm", "rainy", "focus"}
	if len(req.MoodTags) != len(want) {
		t.Fatalf("mood tags = %v", req.MoodTags)
	}
	for i, tag := range want {
		if req.MoodTags[i] != tag {
			t.Errorf("tag %d = %q, want %q", i, req.MoodTags[i], tag)
		}
	}
}

func TestFormCycleSelect(t *testing.T) {
	f := newIdeaForm(testGenres(), 80)
	for i := range f.Fields {
		if f.Fields[i].Key == "genre" {
			f.Index = i
		}
	}
	f.cycleSelect(1)
	if got := f.currentField().Value; got != "Ambient" {
		t.Errorf("after cycle = %q", got)
	}
	f.cycleSelect(1)
	if got := f.currentField().Value; got != "Lofi" {
		t.Errorf("cycle should wrap, got %q", got)
	}
}
