package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	client, err := NewClient(server.URL, WithToken("test-token"))
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	return client
}

func TestListJobsSendsFilterAndAuth(t *testing.T) {
	var gotQuery map[string]string
	var gotAuth string
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/video-jobs" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		gotAuth = r.Header.Get("Authorization")
		gotQuery = map[string]string{
			"channel_id": r.URL.Query().Get("channel_id"),
			"status":     r.URL.Query().Get("status"),
		}
		json.NewEncoder(w).Encode([]VideoJob{{ID: "job-1", Status: StatusRendering}})
	}))

	jobs, err := client.ListJobs(context.Background(), JobFilter{ChannelID: "chan-1", Status: StatusRendering})
	if err != nil {
		t.Fatalf("ListJobs: %v", err)
	}
	if len(jobs) != 1 || jobs[0].ID != "job-1" {
		t.Fatalf("unexpected jobs: %+v", jobs)
	}
	if gotAuth != "Bearer test-token" {
		t.Errorf("authorization header = %q", gotAuth)
	}
	if gotQuery["channel_id"] != "chan-1" || gotQuery["status"] != "rendering" {
		t.Errorf("unexpected query: %v", gotQuery)
	}
}

func TestGetJobNotFoundMapsToSentinel(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]string{"detail": "Video job not found"})
	}))

	_, err := client.GetJob(context.Background(), "missing")
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound match, got %v", err)
	}
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %T", err)
	}
	if apiErr.StatusCode != http.StatusNotFound || apiErr.Detail != "Video job not found" {
		t.Errorf("unexpected APIError: %+v", apiErr)
	}
}

func TestCreateJobPostsBody(t *testing.T) {
	var gotBody CreateJobRequest
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s", r.Method)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("content type = %q", ct)
		}
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decode body: %v", err)
		}
		json.NewEncoder(w).Encode(VideoJob{ID: "job-2", Status: StatusPlanned})
	}))

	job, err := client.CreateJob(context.Background(), CreateJobRequest{
		ChannelID:             "chan-1",
		NicheLabel:            "lofi study beats",
		TargetDurationMinutes: 70,
	})
	if err != nil {
		t.Fatalf("CreateJob: %v", err)
	}
	if job.ID != "job-2" {
		t.Errorf("unexpected job: %+v", job)
	}
	if gotBody.ChannelID != "chan-1" || gotBody.TargetDurationMinutes != 70 {
		t.Errorf("unexpected request body: %+v", gotBody)
	}
}

func TestCreateJobRejectsInvalidLocally(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("request should not reach the server")
	}))

	_, err := client.CreateJob(context.Background(), CreateJobRequest{
		ChannelID:             "chan-1",
		NicheLabel:            "ambient",
		TargetDurationMinutes: 120,
	})
	if !IsValidationError(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestDeleteChannelHandlesNoContent(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete {
			t.Errorf("method = %s", r.Method)
		}
		w.WriteHeader(http.StatusNoContent)
	}))

	if err := client.DeleteChannel(context.Background(), "chan-1"); err != nil {
		t.Fatalf("DeleteChannel: %v", err)
	}
}

func TestUnreachableBackendIsUnavailable(t *testing.T) {
	client, err := NewClient("http://127.0.0.1:1")
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	_, err = client.Health(context.Background())
	if !IsUnavailable(err) {
		t.Errorf("expected unavailable error, got %v", err)
	}
}

func TestJobEventsURL(t *testing.T) {
	client, err := NewClient("http://localhost:8000")
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	got := client.JobEventsURL("job-1")
	want := "http://localhost:8000/api/video-jobs/job-1/events"
	if got != want {
		t.Errorf("JobEventsURL = %q, want %q", got, want)
	}
}
