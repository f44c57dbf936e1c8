package uistate

import "time"

// NotificationKind classifies a toast.
type NotificationKind string

const (
	KindSuccess  NotificationKind = "success"
	KindError    NotificationKind = "error"
	KindWarning  NotificationKind = "warning"
	KindInfo     NotificationKind = "info"
	KindProgress NotificationKind = "progress"
)

// Notification is one toast entry in the store.
type Notification struct {
	ID          string
	Kind        NotificationKind
	Title       string
	Message     string
	Percent     *float64
	ActionLabel string
	ActionURL   string
	Dismissible bool
	CreatedAt   time.Time
}

// NotificationOption customizes a notification at add time.
type NotificationOption func(*Notification)

// WithPercent attaches a progress percentage to the toast.
func WithPercent(percent float64) NotificationOption {
	return func(n *Notification) {
		n.Percent = &percent
	}
}

// WithAction attaches a labelled link to the toast.
func WithAction(label, url string) NotificationOption {
	return func(n *Notification) {
		n.ActionLabel = label
		n.ActionURL = url
	}
}

// WithoutDismiss makes the toast non-dismissible until replaced or cleared.
func WithoutDismiss() NotificationOption {
	return func(n *Notification) {
		n.Dismissible = false
	}
}
