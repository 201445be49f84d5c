package domain

import (
	"context"
	"errors"
	"time"
)

// ErrPastDate is returned when a temporal rule is violated. A meetup counts
// as past once the clock hour containing its date has begun, not merely once
// the exact date-time has elapsed.
var ErrPastDate = errors.New("past dates are not permitted")

// PastHour reports whether the hour containing date has already begun at now.
// This is the single temporal rule used by create, update, delete, and
// subscribe.
func PastHour(date, now time.Time) bool {
	return !date.Truncate(time.Hour).After(now)
}

// Meetup represents an organizer-owned event with a fixed start instant.
// swagger:model Meetup
type Meetup struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Locale      string    `json:"locale"`
	Date        time.Time `json:"date"`
	OrganizerID string    `json:"organizer_id"`
	ImageID     *string   `json:"image_id,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewMeetup returns a new Meetup with the given fields. ID is set by the
// repository on create.
func NewMeetup(title, description, locale string, date time.Time, organizerID string, imageID *string, createdAt, updatedAt time.Time) *Meetup {
	return &Meetup{
		Title:       title,
		Description: description,
		Locale:      locale,
		Date:        date,
		OrganizerID: organizerID,
		ImageID:     imageID,
		CreatedAt:   createdAt,
		UpdatedAt:   updatedAt,
	}
}

// IsPast reports whether the meetup is past at now under the past-hour rule.
func (m *Meetup) IsPast(now time.Time) bool {
	return PastHour(m.Date, now)
}

// MeetupParams carries the caller-supplied fields for create and update.
// Title, Description, Locale, and Date are required; ImageID is optional.
type MeetupParams struct {
	Title       string
	Description string
	Locale      string
	Date        time.Time
	ImageID     *string
}

// OrganizerProfile is the public subset of the organizer joined into listings.
type OrganizerProfile struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// MeetupWithOrganizer bundles a meetup with its organizer's public profile.
type MeetupWithOrganizer struct {
	Meetup    *Meetup           `json:"meetup"`
	Organizer *OrganizerProfile `json:"organizer"`
}

// MeetupRepository defines storage operations for meetups.
type MeetupRepository interface {
	Create(ctx context.Context, m *Meetup) error
	GetByID(ctx context.Context, id string) (*Meetup, error)
	// List returns meetups joined with their organizer's public profile,
	// in creation order. When from and to are set, only meetups whose date
	// falls within [from, to] are returned.
	List(ctx context.Context, from, to *time.Time, p PaginationParams) ([]*MeetupWithOrganizer, error)
	ListByOrganizerID(ctx context.Context, organizerID string) ([]*Meetup, error)
	Update(ctx context.Context, m *Meetup) error
	Delete(ctx context.Context, id string) error
}

// MeetupService defines the event lifecycle: listing, creation, and
// organizer-only mutation of meetups.
type MeetupService interface {
	// List returns one page (fixed size 10) of meetups, optionally filtered
	// to the calendar day containing day.
	List(ctx context.Context, day *time.Time, page int) ([]*MeetupWithOrganizer, error)
	// ListByOrganizer returns all meetups owned by the caller, unpaginated.
	ListByOrganizer(ctx context.Context, organizerID string) ([]*Meetup, error)
	Create(ctx context.Context, organizerID string, params MeetupParams) (*Meetup, error)
	Update(ctx context.Context, callerID, meetupID string, params MeetupParams) (*Meetup, error)
	Delete(ctx context.Context, callerID, meetupID string) error
}
