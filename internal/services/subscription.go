package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/vessoni/MeetApp/internal/domain"
)

type subscriptionService struct {
	subscriptionRepo domain.SubscriptionRepository
	meetupRepo       domain.MeetupRepository
	userRepo         domain.UserRepository
	notifier         domain.Notifier
	clock            domain.Clock
	logger           *slog.Logger
	contextTimeout   time.Duration
}

// NewSubscriptionService creates a SubscriptionService with the given
// repositories, notifier, and clock.
func NewSubscriptionService(
	subscriptionRepo domain.SubscriptionRepository,
	meetupRepo domain.MeetupRepository,
	userRepo domain.UserRepository,
	notifier domain.Notifier,
	clock domain.Clock,
	logger *slog.Logger,
	timeout time.Duration,
) domain.SubscriptionService {
	return &subscriptionService{
		subscriptionRepo: subscriptionRepo,
		meetupRepo:       meetupRepo,
		userRepo:         userRepo,
		notifier:         notifier,
		clock:            clock,
		logger:           logger,
		contextTimeout:   timeout,
	}
}

func (s *subscriptionService) Subscribe(ctx context.Context, userID, meetupID string) (*domain.Subscription, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	// The caller identity is already authenticated; this guards against a
	// stale or mismatched identity rather than a missing user.
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}

	meetup, err := s.meetupRepo.GetByID(ctx, meetupID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get meetup: %w", err)
	}

	if _, err := s.subscriptionRepo.GetByUserAndMeetup(ctx, userID, meetupID); err == nil {
		return nil, domain.ErrAlreadySubscribed
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("get subscription: %w", err)
	}

	if meetup.IsPast(s.clock.Now()) {
		return nil, domain.ErrPastDate
	}

	sub := domain.NewSubscription(userID, meetupID, s.clock.Now())
	if err := s.subscriptionRepo.Create(ctx, sub); err != nil {
		// A concurrent subscribe for the same pair may win between the
		// pre-check and the insert; the unique index turns that into a
		// conflict here.
		if errors.Is(err, domain.ErrAlreadySubscribed) {
			return nil, domain.ErrAlreadySubscribed
		}
		return nil, fmt.Errorf("create subscription: %w", err)
	}

	s.notifyOrganizer(ctx, user, meetup)
	return sub, nil
}

// notifyOrganizer sends the new-subscriber notice. The subscription is
// durable by the time this runs; failures are logged and never propagated.
func (s *subscriptionService) notifyOrganizer(ctx context.Context, subscriber *domain.User, meetup *domain.Meetup) {
	organizer, err := s.userRepo.GetByID(ctx, meetup.OrganizerID)
	if err != nil {
		s.logger.Warn("subscription notice skipped",
			"meetup_id", meetup.ID, "organizer_id", meetup.OrganizerID, "err", err)
		return
	}
	data := &domain.SubscriptionNoticeData{
		OrganizerName:  organizer.Name,
		OrganizerEmail: organizer.Email,
		SubscriberName: subscriber.Name,
		MeetupTitle:    meetup.Title,
		MeetupDate:     meetup.Date,
	}
	if err := s.notifier.NotifySubscription(ctx, data); err != nil {
		s.logger.Warn("subscription notice failed",
			"meetup_id", meetup.ID, "organizer_id", meetup.OrganizerID, "err", err)
	}
}

func (s *subscriptionService) ListByUser(ctx context.Context, userID string) ([]*domain.SubscriptionWithMeetup, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	subs, err := s.subscriptionRepo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list subscriptions: %w", err)
	}
	if len(subs) == 0 {
		return []*domain.SubscriptionWithMeetup{}, nil
	}

	meetupsByID := make(map[string]*domain.Meetup)
	result := make([]*domain.SubscriptionWithMeetup, 0, len(subs))
	for _, sub := range subs {
		meetup, ok := meetupsByID[sub.MeetupID]
		if !ok {
			meetup, err = s.meetupRepo.GetByID(ctx, sub.MeetupID)
			if err != nil {
				if errors.Is(err, domain.ErrNotFound) {
					// Meetup cancelled after the subscription was made;
					// skip the orphaned entry.
					continue
				}
				return nil, fmt.Errorf("get meetup for subscription: %w", err)
			}
			meetupsByID[sub.MeetupID] = meetup
		}
		result = append(result, &domain.SubscriptionWithMeetup{
			Subscription: sub,
			Meetup:       meetup,
		})
	}
	return result, nil
}
