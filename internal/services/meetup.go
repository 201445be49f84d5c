package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/vessoni/MeetApp/internal/domain"
)

// MeetupPageSize is the fixed page size for meetup listings.
const MeetupPageSize = 10

type meetupService struct {
	meetupRepo     domain.MeetupRepository
	clock          domain.Clock
	contextTimeout time.Duration
}

// NewMeetupService creates a MeetupService with the given repository and clock.
func NewMeetupService(meetupRepo domain.MeetupRepository, clock domain.Clock, timeout time.Duration) domain.MeetupService {
	return &meetupService{
		meetupRepo:     meetupRepo,
		clock:          clock,
		contextTimeout: timeout,
	}
}

func validateMeetupParams(p domain.MeetupParams) error {
	if strings.TrimSpace(p.Title) == "" ||
		strings.TrimSpace(p.Description) == "" ||
		strings.TrimSpace(p.Locale) == "" ||
		p.Date.IsZero() {
		return domain.ErrInvalidInput
	}
	return nil
}

func (s *meetupService) List(ctx context.Context, day *time.Time, page int) ([]*domain.MeetupWithOrganizer, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if page < 1 {
		page = 1
	}

	var from, to *time.Time
	if day != nil {
		start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
		end := start.Add(24*time.Hour - time.Nanosecond)
		from, to = &start, &end
	}

	meetups, err := s.meetupRepo.List(ctx, from, to, domain.PaginationParams{Page: page, PageSize: MeetupPageSize})
	if err != nil {
		return nil, fmt.Errorf("list meetups: %w", err)
	}
	if meetups == nil {
		meetups = []*domain.MeetupWithOrganizer{}
	}
	return meetups, nil
}

func (s *meetupService) ListByOrganizer(ctx context.Context, organizerID string) ([]*domain.Meetup, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	meetups, err := s.meetupRepo.ListByOrganizerID(ctx, organizerID)
	if err != nil {
		return nil, fmt.Errorf("list organizer meetups: %w", err)
	}
	if meetups == nil {
		meetups = []*domain.Meetup{}
	}
	return meetups, nil
}

func (s *meetupService) Create(ctx context.Context, organizerID string, params domain.MeetupParams) (*domain.Meetup, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if organizerID == "" {
		return nil, fmt.Errorf("meetup organizer is required")
	}
	if err := validateMeetupParams(params); err != nil {
		return nil, err
	}

	now := s.clock.Now()
	if domain.PastHour(params.Date, now) {
		return nil, domain.ErrPastDate
	}

	meetup := domain.NewMeetup(params.Title, params.Description, params.Locale, params.Date, organizerID, params.ImageID, now, now)
	if err := s.meetupRepo.Create(ctx, meetup); err != nil {
		return nil, fmt.Errorf("create meetup: %w", err)
	}
	return meetup, nil
}

// Update applies the checks in a fixed order: existence, field validation,
// temporal validity of the stored date and of the proposed date, then
// ownership. The first failing check wins.
func (s *meetupService) Update(ctx context.Context, callerID, meetupID string, params domain.MeetupParams) (*domain.Meetup, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	meetup, err := s.meetupRepo.GetByID(ctx, meetupID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get meetup: %w", err)
	}

	if err := validateMeetupParams(params); err != nil {
		return nil, err
	}

	now := s.clock.Now()
	if meetup.IsPast(now) {
		return nil, domain.ErrPastDate
	}
	if domain.PastHour(params.Date, now) {
		return nil, domain.ErrPastDate
	}

	if meetup.OrganizerID != callerID {
		return nil, domain.ErrForbidden
	}

	meetup.Title = params.Title
	meetup.Description = params.Description
	meetup.Locale = params.Locale
	meetup.Date = params.Date
	if params.ImageID != nil {
		meetup.ImageID = params.ImageID
	}
	meetup.UpdatedAt = now

	if err := s.meetupRepo.Update(ctx, meetup); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("update meetup: %w", err)
	}
	return meetup, nil
}

// Delete cancels a meetup permanently. Same check order as Update, minus
// field validation: existence, temporal validity, ownership.
func (s *meetupService) Delete(ctx context.Context, callerID, meetupID string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	meetup, err := s.meetupRepo.GetByID(ctx, meetupID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("get meetup: %w", err)
	}

	if meetup.IsPast(s.clock.Now()) {
		return domain.ErrPastDate
	}

	if meetup.OrganizerID != callerID {
		return domain.ErrForbidden
	}

	if err := s.meetupRepo.Delete(ctx, meetupID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("delete meetup: %w", err)
	}
	return nil
}
