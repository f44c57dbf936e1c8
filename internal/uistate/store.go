package uistate

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Scheduler defers a function, returning a cancel func. The default uses
// time.AfterFunc; tests inject a synchronous fake.
type Scheduler func(d time.Duration, fn func()) (cancel func())

func defaultScheduler(d time.Duration, fn func()) func() {
	timer := time.AfterFunc(d, fn)
	return func() { timer.Stop() }
}

// Store holds transient UI state shared across views: the sidebar toggle and
// the notification list. All methods are safe for concurrent use.
type Store struct {
	mu            sync.Mutex
	sidebarOpen   bool
	notifications []Notification
	expiryCancels map[string]func()
	subscribers   []chan struct{}
	schedule      Scheduler
	successExpiry time.Duration
}

// StoreOption customizes a Store.
type StoreOption func(*Store)

// WithScheduler replaces the timer used for auto-expiry.
func WithScheduler(s Scheduler) StoreOption {
	return func(st *Store) {
		if s != nil {
			st.schedule = s
		}
	}
}

// WithSuccessExpiry changes how long success toasts live before auto-removal.
// Zero disables auto-expiry.
func WithSuccessExpiry(d time.Duration) StoreOption {
	return func(st *Store) {
		st.successExpiry = d
	}
}

// New builds a Store with sidebar open and no notifications.
func New(opts ...StoreOption) *Store {
	st := &Store{
		sidebarOpen:   true,
		expiryCancels: make(map[string]func()),
		schedule:      defaultScheduler,
		successExpiry: 5 * time.Second,
	}
	for _, opt := range opts {
		opt(st)
	}
	return st
}

// SidebarOpen reports the sidebar toggle state.
func (s *Store) SidebarOpen() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sidebarOpen
}

// ToggleSidebar flips the sidebar state and returns the new value.
func (s *Store) ToggleSidebar() bool {
	s.mu.Lock()
	s.sidebarOpen = !s.sidebarOpen
	open := s.sidebarOpen
	s.mu.Unlock()
	s.notify()
	return open
}

// AddNotification appends a toast and returns its generated id. Success
// toasts are scheduled for automatic removal.
func (s *Store) AddNotification(kind NotificationKind, title, message string, opts ...NotificationOption) string {
	n := Notification{
		ID:          uuid.NewString(),
		Kind:        kind,
		Title:       title,
		Message:     message,
		Dismissible: true,
		CreatedAt:   time.Now(),
	}
	for _, opt := range opts {
		opt(&n)
	}

	s.mu.Lock()
	s.notifications = append(s.notifications, n)
	s.mu.Unlock()

	if kind == KindSuccess && s.successExpiry > 0 {
		id := n.ID
		cancel := s.schedule(s.successExpiry, func() {
			s.RemoveNotification(id)
		})
		s.mu.Lock()
		if s.hasNotificationLocked(id) {
			s.expiryCancels[id] = cancel
			cancel = nil
		}
		s.mu.Unlock()
		// Toast was already removed before the timer registered.
		if cancel != nil {
			cancel()
		}
	}
	s.notify()
	return n.ID
}

func (s *Store) hasNotificationLocked(id string) bool {
	for i := range s.notifications {
		if s.notifications[i].ID == id {
			return true
		}
	}
	return false
}

// UpdateNotification mutates an existing toast in place, typically to advance
// a progress percentage. Unknown ids are ignored.
func (s *Store) UpdateNotification(id string, fn func(*Notification)) {
	s.mu.Lock()
	changed := false
	for i := range s.notifications {
		if s.notifications[i].ID == id {
			fn(&s.notifications[i])
			changed = true
			break
		}
	}
	s.mu.Unlock()
	if changed {
		s.notify()
	}
}

// RemoveNotification deletes a toast by id. Removing an id that is absent is
// a no-op, so expiry timers and manual dismissal can race safely.
func (s *Store) RemoveNotification(id string) {
	s.mu.Lock()
	removed := false
	for i := range s.notifications {
		if s.notifications[i].ID == id {
			s.notifications = append(s.notifications[:i], s.notifications[i+1:]...)
			removed = true
			break
		}
	}
	if cancel, ok := s.expiryCancels[id]; ok {
		delete(s.expiryCancels, id)
		defer cancel()
	}
	s.mu.Unlock()
	if removed {
		s.notify()
	}
}

// ClearNotifications removes all toasts and cancels pending expiries.
func (s *Store) ClearNotifications() {
	s.mu.Lock()
	cancels := make([]func(), 0, len(s.expiryCancels))
	for id, cancel := range s.expiryCancels {
		cancels = append(cancels, cancel)
		delete(s.expiryCancels, id)
	}
	had := len(s.notifications) > 0
	s.notifications = nil
	s.mu.Unlock()
	for _, cancel := range cancels {
		cancel()
	}
	if had {
		s.notify()
	}
}

// Notifications returns a snapshot in insertion order.
func (s *Store) Notifications() []Notification {
	s.mu.Lock()
	defer s.mu.Unlock()
	snapshot := make([]Notification, len(s.notifications))
	copy(snapshot, s.notifications)
	return snapshot
}

// Subscribe returns a channel that receives a signal after every state
// change. The channel has a one-slot buffer; signals coalesce.
func (s *Store) Subscribe() <-chan struct{} {
	ch := make(chan struct{}, 1)
	s.mu.Lock()
	s.subscribers = append(s.subscribers, ch)
	s.mu.Unlock()
	return ch
}

func (s *Store) notify() {
	s.mu.Lock()
	subs := make([]chan struct{}, len(s.subscribers))
	copy(subs, s.subscribers)
	s.mu.Unlock()
	for _, ch := range subs {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}
