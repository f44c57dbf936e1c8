package progress

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"studioctl/internal/api"
)

func sseServer(t *testing.T, events []api.ProgressEvent) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Accept") != "text/event-stream" {
			t.Errorf("missing event-stream accept header")
		}
		w.Header().Set("Content-Type", "text/event-stream")
		flusher := w.(http.Flusher)
		fmt.Fprint(w, ": connected\n\n")
		flusher.Flush()
		for _, event := range events {
			payload, err := json.Marshal(event)
			if err != nil {
				t.Errorf("marshal event: %v", err)
				return
			}
			fmt.Fprintf(w, "data: %s\n\n", payload)
			flusher.Flush()
		}
	}))
}

func floatPtr(v float64) *float64 { return &v }

func collectEvents(t *testing.T, events []api.ProgressEvent) (got []api.ProgressEvent, completions []api.JobStatus) {
	t.Helper()
	server := sseServer(t, events)
	defer server.Close()
	client, err := api.NewClient(server.URL)
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}

	var mu sync.Mutex
	done := make(chan struct{})
	sub := New(client, "job-1", Options{
		OnEvent: func(e api.ProgressEvent) {
			mu.Lock()
			got = append(got, e)
			mu.Unlock()
		},
		OnComplete: func(status api.JobStatus) {
			mu.Lock()
			completions = append(completions, status)
			mu.Unlock()
			close(done)
		},
	})
	if err := sub.Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer sub.Stop()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for completion")
	}
	sub.Stop()
	return got, completions
}

func TestSubscriptionDeliversEventsInOrder(t *testing.T) {
	got, completions := collectEvents(t, []api.ProgressEvent{
		{Status: api.StatusPlanned},
		{Status: api.StatusGeneratingMusic, Progress: floatPtr(25)},
		{Status: api.StatusRendering, Progress: floatPtr(10)},
		{Status: api.StatusCompleted},
	})
	want := []api.JobStatus{api.StatusPlanned, api.StatusGeneratingMusic, api.StatusRendering, api.StatusCompleted}
	if len(got) != len(want) {
		t.Fatalf("got %d events, want %d: %+v", len(got), len(want), got)
	}
	for i, e := range got {
		if e.Status != want[i] {
			t.Errorf("event %d status = %s, want %s", i, e.Status, want[i])
		}
	}
	if len(completions) != 1 || completions[0] != api.StatusCompleted {
		t.Errorf("completions = %v", completions)
	}
}

func TestSubscriptionDropsRegressingStages(t *testing.T) {
	got, _ := collectEvents(t, []api.ProgressEvent{
		{Status: api.StatusRendering, Progress: floatPtr(40)},
		{Status: api.StatusGeneratingMusic, Progress: floatPtr(90)},
		{Status: api.StatusRendering, Progress: floatPtr(60)},
		{Status: api.StatusCompleted},
	})
	for _, e := range got {
		if e.Status == api.StatusGeneratingMusic {
			t.Fatalf("regressed stage should have been dropped: %+v", got)
		}
	}
	if len(got) != 3 {
		t.Errorf("got %d events, want 3: %+v", len(got), got)
	}
}

func TestSubscriptionClampsProgress(t *testing.T) {
	got, _ := collectEvents(t, []api.ProgressEvent{
		{Status: api.StatusRendering, Progress: floatPtr(150)},
		{Status: api.StatusRendering, Progress: floatPtr(30)},
		{Status: api.StatusFailed},
	})
	if len(got) < 2 {
		t.Fatalf("got %d events: %+v", len(got), got)
	}
	if *got[0].Progress != 100 {
		t.Errorf("first progress = %v, want clamp to 100", *got[0].Progress)
	}
	if *got[1].Progress != 100 {
		t.Errorf("second progress = %v, want held at 100", *got[1].Progress)
	}
}

func TestSubscriptionFailurePassesAtAnyPoint(t *testing.T) {
	got, completions := collectEvents(t, []api.ProgressEvent{
		{Status: api.StatusRendering, Progress: floatPtr(80)},
		{Status: api.StatusFailed, Message: "render crashed"},
	})
	last := got[len(got)-1]
	if last.Status != api.StatusFailed || last.Message != "render crashed" {
		t.Errorf("last event = %+v", last)
	}
	if len(completions) != 1 || completions[0] != api.StatusFailed {
		t.Errorf("completions = %v", completions)
	}
}

func TestStartTwiceReturnsError(t *testing.T) {
	server := sseServer(t, []api.ProgressEvent{{Status: api.StatusCompleted}})
	defer server.Close()
	client, err := api.NewClient(server.URL)
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	sub := New(client, "job-1", Options{})
	if err := sub.Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer sub.Stop()
	if err := sub.Start(context.Background()); err != ErrAlreadyStarted {
		t.Errorf("second Start = %v, want ErrAlreadyStarted", err)
	}
}

func TestStopPreventsFurtherCallbacks(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		flusher := w.(http.Flusher)
		fmt.Fprint(w, "data: {\"status\":\"planned\"}\n\n")
		flusher.Flush()
		<-release
		fmt.Fprint(w, "data: {\"status\":\"rendering\"}\n\n")
		flusher.Flush()
	}))
	defer server.Close()
	defer close(release)

	client, err := api.NewClient(server.URL)
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}

	var mu sync.Mutex
	var events []api.ProgressEvent
	first := make(chan struct{}, 1)
	sub := New(client, "job-1", Options{
		OnEvent: func(e api.ProgressEvent) {
			mu.Lock()
			events = append(events, e)
			mu.Unlock()
			select {
			case first <- struct{}{}:
			default:
			}
		},
	})
	if err := sub.Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}

	select {
	case <-first:
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for first event")
	}
	sub.Stop()
	sub.Stop() // idempotent

	mu.Lock()
	countAtStop := len(events)
	mu.Unlock()

	time.Sleep(100 * time.Millisecond)
	mu.Lock()
	defer mu.Unlock()
	if len(events) != countAtStop {
		t.Errorf("events delivered after Stop: %d -> %d", countAtStop, len(events))
	}
}

func TestBackoffDoublesToCapWithJitter(t *testing.T) {
	b := newBackoff(time.Second, 8*time.Second)
	prevBase := time.Duration(0)
	for i := 0; i < 6; i++ {
		delay := b.Next()
		base := time.Second << uint(i)
		if base > 8*time.Second {
			base = 8 * time.Second
		}
		lower := time.Duration(float64(base) * 0.8)
		if lower < time.Second {
			lower = time.Second
		}
		upper := time.Duration(float64(base) * 1.2)
		if delay < lower || delay > upper {
			t.Errorf("attempt %d delay %v outside [%v, %v]", i, delay, lower, upper)
		}
		if base > prevBase {
			prevBase = base
		}
	}
	b.Reset()
	delay := b.Next()
	if delay > time.Duration(float64(time.Second)*1.2) {
		t.Errorf("delay after Reset = %v, want near initial", delay)
	}
}
