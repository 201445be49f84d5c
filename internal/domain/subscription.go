package domain

import (
	"context"
	"errors"
	"time"
)

// ErrAlreadySubscribed is returned when a (user, meetup) pair already has an
// active subscription, including when a concurrent subscribe loses the race
// at the storage layer.
var ErrAlreadySubscribed = errors.New("already subscribed to this meetup")

// Subscription records one user's intent to attend one meetup. It is created
// once per valid (user, meetup) pair and never mutated.
// swagger:model Subscription
type Subscription struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	MeetupID  string    `json:"meetup_id"`
	CreatedAt time.Time `json:"created_at"`
}

// NewSubscription returns a new Subscription. ID is set by the repository on
// create.
func NewSubscription(userID, meetupID string, createdAt time.Time) *Subscription {
	return &Subscription{
		UserID:    userID,
		MeetupID:  meetupID,
		CreatedAt: createdAt,
	}
}

// SubscriptionRepository defines storage operations for subscriptions.
// Create must surface a storage-level uniqueness violation on
// (user_id, meetup_id) as ErrAlreadySubscribed so that a check-then-create
// race degrades into a detectable conflict.
type SubscriptionRepository interface {
	Create(ctx context.Context, sub *Subscription) error
	GetByUserAndMeetup(ctx context.Context, userID, meetupID string) (*Subscription, error)
	ListByUserID(ctx context.Context, userID string) ([]*Subscription, error)
}

// SubscriptionWithMeetup bundles a subscription with its meetup.
type SubscriptionWithMeetup struct {
	Subscription *Subscription `json:"subscription"`
	Meetup       *Meetup       `json:"meetup"`
}

// SubscriptionService defines attendee-facing subscription operations.
type SubscriptionService interface {
	// Subscribe creates a subscription for the user on the meetup. On
	// success the organizer is notified best-effort; notification failure
	// does not undo the subscription.
	Subscribe(ctx context.Context, userID, meetupID string) (*Subscription, error)
	ListByUser(ctx context.Context, userID string) ([]*SubscriptionWithMeetup, error)
}
