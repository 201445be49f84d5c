package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"github.com/vessoni/MeetApp/internal/domain"
)

type subscriptionRepository struct {
	DB *sql.DB
}

func NewSubscriptionRepository(db *sql.DB) domain.SubscriptionRepository {
	return &subscriptionRepository{
		DB: db,
	}
}

// Create inserts the subscription. The unique index on (user_id, meetup_id)
// turns a concurrent duplicate into ErrAlreadySubscribed, so two racing
// subscribe calls cannot both succeed.
func (r *subscriptionRepository) Create(ctx context.Context, sub *domain.Subscription) error {
	query := `
		INSERT INTO subscriptions (user_id, meetup_id, created_at)
		VALUES ($1, $2, $3)
		RETURNING id
	`
	err := r.DB.QueryRowContext(ctx, query, sub.UserID, sub.MeetupID, sub.CreatedAt).Scan(&sub.ID)
	if err != nil {
		var perr *pq.Error
		if errors.As(err, &perr) && perr.Code == "23505" {
			return domain.ErrAlreadySubscribed
		}
		return err
	}
	return nil
}

func (r *subscriptionRepository) GetByUserAndMeetup(ctx context.Context, userID, meetupID string) (*domain.Subscription, error) {
	query := `
		SELECT id, user_id, meetup_id, created_at
		FROM subscriptions
		WHERE user_id = $1 AND meetup_id = $2
	`
	sub := &domain.Subscription{}
	err := r.DB.QueryRowContext(ctx, query, userID, meetupID).
		Scan(&sub.ID, &sub.UserID, &sub.MeetupID, &sub.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return sub, nil
}

func (r *subscriptionRepository) ListByUserID(ctx context.Context, userID string) ([]*domain.Subscription, error) {
	query := `
		SELECT id, user_id, meetup_id, created_at
		FROM subscriptions
		WHERE user_id = $1
		ORDER BY created_at DESC
	`
	rows, err := r.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	subs := make([]*domain.Subscription, 0)
	for rows.Next() {
		sub := &domain.Subscription{}
		if err := rows.Scan(&sub.ID, &sub.UserID, &sub.MeetupID, &sub.CreatedAt); err != nil {
			return nil, err
		}
		subs = append(subs, sub)
	}
	return subs, rows.Err()
}
