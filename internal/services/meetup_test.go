package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/vessoni/MeetApp/internal/domain"
)

type fixedClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fixedClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fixedClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

type mockMeetupRepository struct {
	mu      sync.Mutex
	meetups map[string]*domain.Meetup
	err     error

	listFrom   *time.Time
	listTo     *time.Time
	listParams domain.PaginationParams
	listResult []*domain.MeetupWithOrganizer
}

func newMockMeetupRepository() *mockMeetupRepository {
	return &mockMeetupRepository{meetups: make(map[string]*domain.Meetup)}
}

func (m *mockMeetupRepository) Create(ctx context.Context, meetup *domain.Meetup) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	meetup.ID = fmt.Sprintf("m%d", len(m.meetups)+1)
	copied := *meetup
	m.meetups[meetup.ID] = &copied
	return nil
}

func (m *mockMeetupRepository) GetByID(ctx context.Context, id string) (*domain.Meetup, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	meetup, ok := m.meetups[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	copied := *meetup
	return &copied, nil
}

func (m *mockMeetupRepository) List(ctx context.Context, from, to *time.Time, p domain.PaginationParams) ([]*domain.MeetupWithOrganizer, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	m.listFrom, m.listTo, m.listParams = from, to, p
	return m.listResult, nil
}

func (m *mockMeetupRepository) ListByOrganizerID(ctx context.Context, organizerID string) ([]*domain.Meetup, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	var result []*domain.Meetup
	for _, meetup := range m.meetups {
		if meetup.OrganizerID == organizerID {
			copied := *meetup
			result = append(result, &copied)
		}
	}
	return result, nil
}

func (m *mockMeetupRepository) Update(ctx context.Context, meetup *domain.Meetup) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	if _, ok := m.meetups[meetup.ID]; !ok {
		return domain.ErrNotFound
	}
	copied := *meetup
	m.meetups[meetup.ID] = &copied
	return nil
}

func (m *mockMeetupRepository) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	if _, ok := m.meetups[id]; !ok {
		return domain.ErrNotFound
	}
	delete(m.meetups, id)
	return nil
}

func (m *mockMeetupRepository) put(meetup *domain.Meetup) {
	m.mu.Lock()
	defer m.mu.Unlock()
	copied := *meetup
	m.meetups[meetup.ID] = &copied
}

func validParams(date time.Time) domain.MeetupParams {
	return domain.MeetupParams{
		Title:       "Tech Talk",
		Description: "Monthly community talk",
		Locale:      "Porto Alegre",
		Date:        date,
	}
}

func TestMeetupService_Create(t *testing.T) {
	// 12:30 into the hour, so anything dated within the 12:00 hour is past.
	now := time.Date(2025, 6, 10, 12, 30, 0, 0, time.UTC)

	tests := []struct {
		name        string
		organizerID string
		params      domain.MeetupParams
		wantErr     error
	}{
		{
			name:        "success next hour",
			organizerID: "u1",
			params:      validParams(time.Date(2025, 6, 10, 13, 0, 0, 0, time.UTC)),
		},
		{
			name:        "success tomorrow",
			organizerID: "u1",
			params:      validParams(time.Date(2025, 6, 11, 18, 0, 0, 0, time.UTC)),
		},
		{
			name:        "future date inside the current hour is past",
			organizerID: "u1",
			params:      validParams(time.Date(2025, 6, 10, 12, 45, 0, 0, time.UTC)),
			wantErr:     domain.ErrPastDate,
		},
		{
			name:        "elapsed date is past",
			organizerID: "u1",
			params:      validParams(time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC)),
			wantErr:     domain.ErrPastDate,
		},
		{
			name:        "missing title",
			organizerID: "u1",
			params: domain.MeetupParams{
				Description: "desc",
				Locale:      "POA",
				Date:        time.Date(2025, 6, 11, 18, 0, 0, 0, time.UTC),
			},
			wantErr: domain.ErrInvalidInput,
		},
		{
			name:        "missing date",
			organizerID: "u1",
			params: domain.MeetupParams{
				Title:       "Tech Talk",
				Description: "desc",
				Locale:      "POA",
			},
			wantErr: domain.ErrInvalidInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newMockMeetupRepository()
			svc := NewMeetupService(repo, &fixedClock{now: now}, time.Second)

			meetup, err := svc.Create(context.Background(), tt.organizerID, tt.params)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if meetup.ID == "" {
				t.Fatal("expected repository to assign an ID")
			}
			if meetup.OrganizerID != tt.organizerID {
				t.Fatalf("expected organizer %q, got %q", tt.organizerID, meetup.OrganizerID)
			}
		})
	}
}

func TestMeetupService_Update(t *testing.T) {
	now := time.Date(2025, 6, 10, 12, 30, 0, 0, time.UTC)
	future := time.Date(2025, 6, 11, 18, 0, 0, 0, time.UTC)
	past := time.Date(2025, 6, 9, 18, 0, 0, 0, time.UTC)

	stored := &domain.Meetup{
		ID: "m1", Title: "Tech Talk", Description: "desc", Locale: "POA",
		Date: future, OrganizerID: "u1",
	}

	tests := []struct {
		name     string
		stored   *domain.Meetup
		callerID string
		meetupID string
		params   domain.MeetupParams
		wantErr  error
	}{
		{
			name:     "success",
			stored:   stored,
			callerID: "u1",
			meetupID: "m1",
			params:   validParams(time.Date(2025, 6, 12, 19, 0, 0, 0, time.UTC)),
		},
		{
			name:     "not found",
			stored:   stored,
			callerID: "u1",
			meetupID: "missing",
			params:   validParams(future),
			wantErr:  domain.ErrNotFound,
		},
		{
			name: "stored date already past",
			stored: &domain.Meetup{
				ID: "m1", Title: "Tech Talk", Description: "desc", Locale: "POA",
				Date: past, OrganizerID: "u1",
			},
			callerID: "u1",
			meetupID: "m1",
			params:   validParams(future),
			wantErr:  domain.ErrPastDate,
		},
		{
			name:     "proposed date already past",
			stored:   stored,
			callerID: "u1",
			meetupID: "m1",
			params:   validParams(past),
			wantErr:  domain.ErrPastDate,
		},
		{
			name:     "not the organizer",
			stored:   stored,
			callerID: "u2",
			meetupID: "m1",
			params:   validParams(future),
			wantErr:  domain.ErrForbidden,
		},
		{
			// The temporal check runs before ownership, so a non-organizer
			// probing a past meetup sees ErrPastDate.
			name: "past beats forbidden",
			stored: &domain.Meetup{
				ID: "m1", Title: "Tech Talk", Description: "desc", Locale: "POA",
				Date: past, OrganizerID: "u1",
			},
			callerID: "u2",
			meetupID: "m1",
			params:   validParams(future),
			wantErr:  domain.ErrPastDate,
		},
		{
			name:     "invalid fields",
			stored:   stored,
			callerID: "u1",
			meetupID: "m1",
			params:   domain.MeetupParams{Title: "", Description: "d", Locale: "l", Date: future},
			wantErr:  domain.ErrInvalidInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newMockMeetupRepository()
			repo.put(tt.stored)
			svc := NewMeetupService(repo, &fixedClock{now: now}, time.Second)

			updated, err := svc.Update(context.Background(), tt.callerID, tt.meetupID, tt.params)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !updated.Date.Equal(tt.params.Date) {
				t.Fatalf("expected date %v, got %v", tt.params.Date, updated.Date)
			}
			if updated.OrganizerID != "u1" {
				t.Fatalf("organizer must be immutable, got %q", updated.OrganizerID)
			}
		})
	}
}

func TestMeetupService_Delete(t *testing.T) {
	now := time.Date(2025, 6, 10, 12, 30, 0, 0, time.UTC)
	future := time.Date(2025, 6, 11, 18, 0, 0, 0, time.UTC)
	past := time.Date(2025, 6, 9, 18, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		date     time.Time
		callerID string
		meetupID string
		wantErr  error
	}{
		{name: "success", date: future, callerID: "u1", meetupID: "m1"},
		{name: "not found", date: future, callerID: "u1", meetupID: "missing", wantErr: domain.ErrNotFound},
		{name: "past meetup", date: past, callerID: "u1", meetupID: "m1", wantErr: domain.ErrPastDate},
		{name: "not the organizer", date: future, callerID: "u2", meetupID: "m1", wantErr: domain.ErrForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newMockMeetupRepository()
			repo.put(&domain.Meetup{
				ID: "m1", Title: "Tech Talk", Description: "desc", Locale: "POA",
				Date: tt.date, OrganizerID: "u1",
			})
			svc := NewMeetupService(repo, &fixedClock{now: now}, time.Second)

			err := svc.Delete(context.Background(), tt.callerID, tt.meetupID)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if _, err := repo.GetByID(context.Background(), "m1"); !errors.Is(err, domain.ErrNotFound) {
				t.Fatal("expected meetup to be removed")
			}
		})
	}
}

func TestMeetupService_List(t *testing.T) {
	now := time.Date(2025, 6, 10, 12, 30, 0, 0, time.UTC)

	t.Run("no filter", func(t *testing.T) {
		repo := newMockMeetupRepository()
		svc := NewMeetupService(repo, &fixedClock{now: now}, time.Second)

		result, err := svc.List(context.Background(), nil, 2)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result == nil {
			t.Fatal("expected empty slice, got nil")
		}
		if repo.listFrom != nil || repo.listTo != nil {
			t.Fatal("expected no date window without a filter")
		}
		if repo.listParams.Page != 2 || repo.listParams.PageSize != MeetupPageSize {
			t.Fatalf("expected page 2 size %d, got %+v", MeetupPageSize, repo.listParams)
		}
		if repo.listParams.Offset() != 10 {
			t.Fatalf("expected offset 10, got %d", repo.listParams.Offset())
		}
	})

	t.Run("day filter covers the whole calendar day", func(t *testing.T) {
		repo := newMockMeetupRepository()
		svc := NewMeetupService(repo, &fixedClock{now: now}, time.Second)

		day := time.Date(2025, 6, 11, 15, 42, 0, 0, time.UTC)
		if _, err := svc.List(context.Background(), &day, 1); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		wantFrom := time.Date(2025, 6, 11, 0, 0, 0, 0, time.UTC)
		wantTo := time.Date(2025, 6, 11, 23, 59, 59, int(time.Second-time.Nanosecond), time.UTC)
		if repo.listFrom == nil || !repo.listFrom.Equal(wantFrom) {
			t.Fatalf("expected window start %v, got %v", wantFrom, repo.listFrom)
		}
		if repo.listTo == nil || !repo.listTo.Equal(wantTo) {
			t.Fatalf("expected window end %v, got %v", wantTo, repo.listTo)
		}
	})

	t.Run("page below one falls back to first page", func(t *testing.T) {
		repo := newMockMeetupRepository()
		svc := NewMeetupService(repo, &fixedClock{now: now}, time.Second)

		if _, err := svc.List(context.Background(), nil, 0); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if repo.listParams.Page != 1 {
			t.Fatalf("expected page 1, got %d", repo.listParams.Page)
		}
	})
}
