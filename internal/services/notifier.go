package services

import (
	"context"
	"fmt"

	"github.com/vessoni/MeetApp/internal/domain"
)

type emailNotifier struct {
	mailer domain.Mailer
}

// NewEmailNotifier returns a Notifier that delivers subscription notices to
// the organizer by email.
func NewEmailNotifier(mailer domain.Mailer) domain.Notifier {
	return &emailNotifier{mailer: mailer}
}

func (n *emailNotifier) NotifySubscription(ctx context.Context, data *domain.SubscriptionNoticeData) error {
	subject := fmt.Sprintf("New subscription: %s", data.MeetupTitle)
	date := data.MeetupDate.Format("Monday, 02 Jan 2006 at 15:04")
	text := fmt.Sprintf(
		"Hi %s,\n\n%s just subscribed to %s, scheduled for %s.\n",
		data.OrganizerName, data.SubscriberName, data.MeetupTitle, date,
	)
	html := fmt.Sprintf(
		"<p>Hi %s,</p><p><strong>%s</strong> just subscribed to <strong>%s</strong>, scheduled for %s.</p>",
		data.OrganizerName, data.SubscriberName, data.MeetupTitle, date,
	)
	if err := n.mailer.Send(data.OrganizerEmail, subject, html, text); err != nil {
		return fmt.Errorf("send subscription notice: %w", err)
	}
	return nil
}
