package domain

import (
	"context"
	"time"
)

// Mailer defines the contract for sending emails (infrastructure port).
type Mailer interface {
	Send(to, subject, html, text string) error
}

// SubscriptionNoticeData holds data for the notification sent to a meetup's
// organizer when someone subscribes.
type SubscriptionNoticeData struct {
	OrganizerName  string
	OrganizerEmail string
	SubscriberName string
	MeetupTitle    string
	MeetupDate     time.Time
}

// Notifier delivers best-effort notifications about domain activity.
// Errors are reported to the caller but are never fatal to the operation
// that triggered the notification.
type Notifier interface {
	NotifySubscription(ctx context.Context, data *SubscriptionNoticeData) error
}
