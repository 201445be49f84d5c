package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/vessoni/MeetApp/internal/domain"
)

type meetupRepository struct {
	DB *sql.DB
}

func NewMeetupRepository(db *sql.DB) domain.MeetupRepository {
	return &meetupRepository{
		DB: db,
	}
}

func (r *meetupRepository) Create(ctx context.Context, m *domain.Meetup) error {
	query := `
		INSERT INTO meetups (title, description, locale, date, organizer_id, image_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`
	var imageID sql.NullString
	if m.ImageID != nil {
		imageID = sql.NullString{String: *m.ImageID, Valid: true}
	}
	return r.DB.QueryRowContext(ctx, query,
		m.Title, m.Description, m.Locale, m.Date, m.OrganizerID, imageID, m.CreatedAt, m.UpdatedAt,
	).Scan(&m.ID)
}

func (r *meetupRepository) GetByID(ctx context.Context, id string) (*domain.Meetup, error) {
	query := `
		SELECT id, title, description, locale, date, organizer_id, image_id, created_at, updated_at
		FROM meetups
		WHERE id = $1
	`
	m := &domain.Meetup{}
	var imageID sql.NullString
	err := r.DB.QueryRowContext(ctx, query, id).Scan(
		&m.ID, &m.Title, &m.Description, &m.Locale, &m.Date, &m.OrganizerID, &imageID, &m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if imageID.Valid {
		m.ImageID = &imageID.String
	}
	return m, nil
}

func (r *meetupRepository) List(ctx context.Context, from, to *time.Time, p domain.PaginationParams) ([]*domain.MeetupWithOrganizer, error) {
	where := ""
	args := []interface{}{}
	if from != nil && to != nil {
		where = "WHERE m.date BETWEEN $1 AND $2"
		args = append(args, *from, *to)
	}
	query := fmt.Sprintf(`
		SELECT m.id, m.title, m.description, m.locale, m.date, m.organizer_id, m.image_id, m.created_at, m.updated_at,
		       u.name, u.email
		FROM meetups m
		JOIN users u ON u.id = m.organizer_id
		%s
		ORDER BY m.created_at, m.id
		LIMIT $%d OFFSET $%d
	`, where, len(args)+1, len(args)+2)
	args = append(args, p.PageSize, p.Offset())

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	meetups := make([]*domain.MeetupWithOrganizer, 0)
	for rows.Next() {
		m := &domain.Meetup{}
		org := &domain.OrganizerProfile{}
		var imageID sql.NullString
		if err := rows.Scan(
			&m.ID, &m.Title, &m.Description, &m.Locale, &m.Date, &m.OrganizerID, &imageID, &m.CreatedAt, &m.UpdatedAt,
			&org.Name, &org.Email,
		); err != nil {
			return nil, err
		}
		if imageID.Valid {
			m.ImageID = &imageID.String
		}
		meetups = append(meetups, &domain.MeetupWithOrganizer{Meetup: m, Organizer: org})
	}
	return meetups, rows.Err()
}

func (r *meetupRepository) ListByOrganizerID(ctx context.Context, organizerID string) ([]*domain.Meetup, error) {
	query := `
		SELECT id, title, description, locale, date, organizer_id, image_id, created_at, updated_at
		FROM meetups
		WHERE organizer_id = $1
		ORDER BY date
	`
	rows, err := r.DB.QueryContext(ctx, query, organizerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	meetups := make([]*domain.Meetup, 0)
	for rows.Next() {
		m := &domain.Meetup{}
		var imageID sql.NullString
		if err := rows.Scan(&m.ID, &m.Title, &m.Description, &m.Locale, &m.Date, &m.OrganizerID, &imageID, &m.CreatedAt, &m.UpdatedAt); err != nil {
			return nil, err
		}
		if imageID.Valid {
			m.ImageID = &imageID.String
		}
		meetups = append(meetups, m)
	}
	return meetups, rows.Err()
}

func (r *meetupRepository) Update(ctx context.Context, m *domain.Meetup) error {
	query := `
		UPDATE meetups
		SET title = $1, description = $2, locale = $3, date = $4, image_id = $5, updated_at = $6
		WHERE id = $7
	`
	var imageID sql.NullString
	if m.ImageID != nil {
		imageID = sql.NullString{String: *m.ImageID, Valid: true}
	}
	result, err := r.DB.ExecContext(ctx, query, m.Title, m.Description, m.Locale, m.Date, imageID, m.UpdatedAt, m.ID)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *meetupRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM meetups WHERE id = $1`
	result, err := r.DB.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}
