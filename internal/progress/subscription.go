package progress

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"studioctl/internal/api"
)

// ErrAlreadyStarted is returned when Start is called twice on a subscription.
var ErrAlreadyStarted = errors.New("subscription already started")

// Options configures a job progress subscription. All callbacks are optional
// and are invoked from the subscription's goroutine, never after Stop returns.
type Options struct {
	// OnEvent receives each accepted progress event.
	OnEvent func(api.ProgressEvent)
	// OnComplete fires exactly once when the job reaches a terminal status.
	OnComplete func(api.JobStatus)
	// OnConnectionChange reports stream connectivity transitions.
	OnConnectionChange func(connected bool)

	// HTTPDoer overrides the streaming transport, typically in tests.
	HTTPDoer api.HTTPDoer

	// ReconnectInitial and ReconnectMax bound the retry delay. Zero values
	// fall back to 1s and 30s.
	ReconnectInitial time.Duration
	ReconnectMax     time.Duration

	Logger *slog.Logger
}

// Subscription follows one job's server-sent progress events, reconnecting
// with backoff until the job reaches a terminal status or Stop is called.
type Subscription struct {
	client *api.Client
	jobID  string
	opts   Options
	http   api.HTTPDoer
	logger *slog.Logger

	mu        sync.Mutex
	started   bool
	stopped   bool
	cancel    context.CancelFunc
	done      chan struct{}
	completed bool
	connected bool

	lastOrdinal  int
	lastProgress float64
}

// New builds a subscription for one job. Start must be called to connect.
func New(client *api.Client, jobID string, opts Options) *Subscription {
	doer := opts.HTTPDoer
	if doer == nil {
		// No timeout: the stream stays open until the job finishes.
		doer = &http.Client{}
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Subscription{
		client:      client,
		jobID:       jobID,
		opts:        opts,
		http:        doer,
		logger:      logger.With(slog.String("job_id", jobID)),
		lastOrdinal: -1,
	}
}

// Start opens the stream in a background goroutine. Calling Start on a
// subscription that is already started or stopped returns ErrAlreadyStarted.
func (s *Subscription) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.started || s.stopped {
		s.mu.Unlock()
		return ErrAlreadyStarted
	}
	runCtx, cancel := context.WithCancel(ctx)
	s.started = true
	s.cancel = cancel
	s.done = make(chan struct{})
	s.mu.Unlock()

	go s.run(runCtx)
	return nil
}

// Stop terminates the stream and waits for the worker goroutine to exit.
// After Stop returns no callback will be invoked. Stop is idempotent.
func (s *Subscription) Stop() {
	s.mu.Lock()
	if s.stopped {
		s.mu.Unlock()
		return
	}
	s.stopped = true
	cancel := s.cancel
	done := s.done
	s.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	if done != nil {
		<-done
	}
}

func (s *Subscription) run(ctx context.Context) {
	defer close(s.done)

	retry := newBackoff(s.opts.ReconnectInitial, s.opts.ReconnectMax)
	for {
		if ctx.Err() != nil {
			return
		}
		finished, connected, err := s.stream(ctx)
		if finished {
			return
		}
		if connected {
			retry.Reset()
		}
		if err != nil && ctx.Err() == nil {
			s.logger.Debug("progress stream interrupted", slog.String("error", err.Error()))
		}
		s.notifyConnection(false)

		delay := retry.Next()
		select {
		case <-ctx.Done():
			return
		case <-time.After(delay):
		}
	}
}

// stream holds one SSE connection open. It returns finished=true when the
// job reached a terminal status and no reconnect should happen.
func (s *Subscription) stream(ctx context.Context) (finished, connected bool, err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.client.JobEventsURL(s.jobID), nil)
	if err != nil {
		return false, false, err
	}
	req.Header.Set("Accept", "text/event-stream")
	req.Header.Set("Cache-Control", "no-cache")
	if token := s.client.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := s.http.Do(req)
	if err != nil {
		return false, false, err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		return false, false, &api.APIError{StatusCode: resp.StatusCode}
	}

	s.notifyConnection(true)

	scanner := bufio.NewScanner(resp.Body)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	var data strings.Builder
	for scanner.Scan() {
		line := scanner.Text()
		switch {
		case line == "":
			if data.Len() > 0 {
				done := s.dispatch(data.String())
				data.Reset()
				if done {
					return true, true, nil
				}
			}
		case strings.HasPrefix(line, ":"):
			// Comment lines keep the connection alive.
		case strings.HasPrefix(line, "data:"):
			if data.Len() > 0 {
				data.WriteByte('\n')
			}
			data.WriteString(strings.TrimSpace(strings.TrimPrefix(line, "data:")))
		}
	}
	if data.Len() > 0 {
		if s.dispatch(data.String()) {
			return true, true, nil
		}
	}
	return false, true, scanner.Err()
}

// dispatch parses one event payload and forwards it if it passes the ordering
// guard. It returns true when the event carried a terminal status.
func (s *Subscription) dispatch(payload string) bool {
	var event api.ProgressEvent
	if err := json.Unmarshal([]byte(payload), &event); err != nil {
		s.logger.Debug("dropping malformed progress event", slog.String("error", err.Error()))
		return false
	}
	if !s.accept(&event) {
		return false
	}

	s.mu.Lock()
	if s.stopped {
		s.mu.Unlock()
		return event.Status.IsTerminal()
	}
	onEvent := s.opts.OnEvent
	var onComplete func(api.JobStatus)
	if event.Status.IsTerminal() && !s.completed {
		s.completed = true
		onComplete = s.opts.OnComplete
	}
	s.mu.Unlock()

	if onEvent != nil {
		onEvent(event)
	}
	if onComplete != nil {
		onComplete(event.Status)
	}
	return event.Status.IsTerminal()
}

// accept enforces forward-only stage ordering and clamps progress so stale or
// out-of-order events never move the display backwards. Terminal failures and
// cancellations pass at any point.
func (s *Subscription) accept(event *api.ProgressEvent) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if event.Status == api.StatusFailed || event.Status == api.StatusCancelled {
		return true
	}

	ordinal := event.Status.StageOrdinal()
	if ordinal < 0 {
		s.logger.Debug("dropping event with unknown status", slog.String("status", string(event.Status)))
		return false
	}
	if ordinal < s.lastOrdinal {
		return false
	}
	if ordinal > s.lastOrdinal {
		s.lastOrdinal = ordinal
		s.lastProgress = 0
	}

	if event.Progress != nil {
		pct := *event.Progress
		if pct < 0 {
			pct = 0
		}
		if pct > 100 {
			pct = 100
		}
		if pct < s.lastProgress {
			pct = s.lastProgress
		}
		s.lastProgress = pct
		event.Progress = &pct
	}
	return true
}

// Connected reports whether the stream is currently open.
func (s *Subscription) Connected() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.connected
}

func (s *Subscription) notifyConnection(connected bool) {
	s.mu.Lock()
	if s.stopped || s.connected == connected {
		s.mu.Unlock()
		return
	}
	s.connected = connected
	cb := s.opts.OnConnectionChange
	s.mu.Unlock()
	if cb != nil {
		cb(connected)
	}
}
