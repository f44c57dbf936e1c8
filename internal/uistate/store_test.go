package uistate

import (
	"testing"
	"time"
)

// fakeScheduler records deferred functions so tests fire them explicitly.
type fakeScheduler struct {
	pending   []func()
	cancelled int
}

func (f *fakeScheduler) schedule(d time.Duration, fn func()) func() {
	idx := len(f.pending)
	f.pending = append(f.pending, fn)
	return func() {
		if f.pending[idx] != nil {
			f.pending[idx] = nil
			f.cancelled++
		}
	}
}

func (f *fakeScheduler) fireAll() {
	for i, fn := range f.pending {
		if fn != nil {
			f.pending[i] = nil
			fn()
		}
	}
}

func TestAddNotificationAssignsUniqueIDsInOrder(t *testing.T) {
	store := New(WithSuccessExpiry(0))
	first := store.AddNotification(KindInfo, "Scrape started", "")
	second := store.AddNotification(KindError, "Scrape failed", "network timeout")
	if first == second {
		t.Fatal("notification ids must be unique")
	}
	got := store.Notifications()
	if len(got) != 2 || got[0].ID != first || got[1].ID != second {
		t.Fatalf("unexpected order: %+v", got)
	}
	if !got[0].Dismissible {
		t.Error("notifications default to dismissible")
	}
}

func TestRemoveNotificationIsIdempotent(t *testing.T) {
	store := New(WithSuccessExpiry(0))
	id := store.AddNotification(KindInfo, "Job queued", "")
	store.RemoveNotification(id)
	if got := store.Notifications(); len(got) != 0 {
		t.Fatalf("expected empty store, got %+v", got)
	}
	// Removing again, or removing an unknown id, must not panic or mutate.
	store.RemoveNotification(id)
	store.RemoveNotification("does-not-exist")
	if got := store.Notifications(); len(got) != 0 {
		t.Fatalf("expected empty store, got %+v", got)
	}
}

func TestSuccessToastAutoExpires(t *testing.T) {
	sched := &fakeScheduler{}
	store := New(WithScheduler(sched.schedule))
	id := store.AddNotification(KindSuccess, "Video exported", "")
	if len(sched.pending) != 1 {
		t.Fatalf("expected one scheduled expiry, got %d", len(sched.pending))
	}
	sched.fireAll()
	if got := store.Notifications(); len(got) != 0 {
		t.Fatalf("toast should have expired, got %+v", got)
	}
	_ = id
}

func TestManualDismissCancelsExpiryTimer(t *testing.T) {
	sched := &fakeScheduler{}
	store := New(WithScheduler(sched.schedule))
	id := store.AddNotification(KindSuccess, "Done", "")
	store.RemoveNotification(id)
	if sched.cancelled != 1 {
		t.Errorf("expiry timer not cancelled: %d", sched.cancelled)
	}
	// Firing anything left over must be harmless.
	sched.fireAll()
	if got := store.Notifications(); len(got) != 0 {
		t.Fatalf("expected empty store, got %+v", got)
	}
}

func TestErrorToastsDoNotAutoExpire(t *testing.T) {
	sched := &fakeScheduler{}
	store := New(WithScheduler(sched.schedule))
	store.AddNotification(KindError, "Render failed", "ffmpeg exit 1")
	if len(sched.pending) != 0 {
		t.Fatalf("error toasts must not schedule expiry, got %d", len(sched.pending))
	}
}

func TestUpdateNotificationAdvancesProgress(t *testing.T) {
	store := New(WithSuccessExpiry(0))
	id := store.AddNotification(KindProgress, "Rendering", "", WithPercent(10))
	store.UpdateNotification(id, func(n *Notification) {
		pct := 55.0
		n.Percent = &pct
	})
	got := store.Notifications()
	if len(got) != 1 || got[0].Percent == nil || *got[0].Percent != 55 {
		t.Fatalf("unexpected state: %+v", got)
	}
}

func TestClearNotificationsCancelsTimers(t *testing.T) {
	sched := &fakeScheduler{}
	store := New(WithScheduler(sched.schedule))
	store.AddNotification(KindSuccess, "a", "")
	store.AddNotification(KindSuccess, "b", "")
	store.ClearNotifications()
	if got := store.Notifications(); len(got) != 0 {
		t.Fatalf("expected empty store, got %+v", got)
	}
	if sched.cancelled != 2 {
		t.Errorf("expected 2 cancelled timers, got %d", sched.cancelled)
	}
}

func TestToggleSidebarAndSubscribe(t *testing.T) {
	store := New(WithSuccessExpiry(0))
	updates := store.Subscribe()
	if !store.SidebarOpen() {
		t.Fatal("sidebar should start open")
	}
	if open := store.ToggleSidebar(); open {
		t.Fatal("toggle should close the sidebar")
	}
	select {
	case <-updates:
	default:
		t.Error("subscriber not notified of sidebar toggle")
	}
	if open := store.ToggleSidebar(); !open {
		t.Fatal("second toggle should reopen the sidebar")
	}
}
