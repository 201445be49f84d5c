package controllers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/vessoni/MeetApp/internal/delivery/http/helpers"
	"github.com/vessoni/MeetApp/internal/domain"
)

type mockSubscriptionService struct {
	sub  *domain.Subscription
	subs []*domain.SubscriptionWithMeetup
	err  error
}

func (m *mockSubscriptionService) Subscribe(ctx context.Context, userID, meetupID string) (*domain.Subscription, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.sub, nil
}

func (m *mockSubscriptionService) ListByUser(ctx context.Context, userID string) ([]*domain.SubscriptionWithMeetup, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.subs, nil
}

func TestSubscriptionController_Subscribe_Unauthorized(t *testing.T) {
	ctrl := NewSubscriptionController(testLogger(), &mockSubscriptionService{})

	req := httptest.NewRequest(http.MethodPost, "/subscriptions", nil)
	w := httptest.NewRecorder()
	ctrl.Subscribe(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected status %d, got %d", http.StatusUnauthorized, w.Code)
	}
}

func TestSubscriptionController_Subscribe_Success(t *testing.T) {
	sub := &domain.Subscription{ID: "s1", UserID: "u1", MeetupID: "m1"}
	ctrl := NewSubscriptionController(testLogger(), &mockSubscriptionService{sub: sub})

	w := httptest.NewRecorder()
	ctrl.Subscribe(w, authedRequest(http.MethodPost, "/subscriptions", `{"meetup_id":"m1"}`))

	if w.Code != http.StatusCreated {
		t.Fatalf("expected status %d, got %d", http.StatusCreated, w.Code)
	}
	resp := decodeResponse(t, w)
	if resp.Error != nil {
		t.Fatalf("expected no error, got %v", resp.Error)
	}
}

func TestSubscriptionController_Subscribe_MissingMeetupID(t *testing.T) {
	ctrl := NewSubscriptionController(testLogger(), &mockSubscriptionService{})

	w := httptest.NewRecorder()
	ctrl.Subscribe(w, authedRequest(http.MethodPost, "/subscriptions", `{"meetup_id":"  "}`))

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, w.Code)
	}
}

func TestSubscriptionController_Subscribe_ErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		svcErr     error
		wantStatus int
		wantCode   string
	}{
		{"user gone", domain.ErrUserNotFound, http.StatusNotFound, helpers.ErrCodeNotFound},
		{"meetup gone", domain.ErrNotFound, http.StatusNotFound, helpers.ErrCodeNotFound},
		{"duplicate", domain.ErrAlreadySubscribed, http.StatusConflict, helpers.ErrCodeConflict},
		{"past", domain.ErrPastDate, http.StatusBadRequest, helpers.ErrCodePastDate},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := NewSubscriptionController(testLogger(), &mockSubscriptionService{err: tt.svcErr})

			w := httptest.NewRecorder()
			ctrl.Subscribe(w, authedRequest(http.MethodPost, "/subscriptions", `{"meetup_id":"m1"}`))

			if w.Code != tt.wantStatus {
				t.Fatalf("expected status %d, got %d", tt.wantStatus, w.Code)
			}
			resp := decodeResponse(t, w)
			if resp.Error == nil || resp.Error.Code != tt.wantCode {
				t.Fatalf("expected error code %q, got %v", tt.wantCode, resp.Error)
			}
		})
	}
}

func TestSubscriptionController_List_Success(t *testing.T) {
	subs := []*domain.SubscriptionWithMeetup{
		{
			Subscription: &domain.Subscription{ID: "s1", UserID: "u1", MeetupID: "m1"},
			Meetup:       &domain.Meetup{ID: "m1", Title: "Tech Talk"},
		},
	}
	ctrl := NewSubscriptionController(testLogger(), &mockSubscriptionService{subs: subs})

	w := httptest.NewRecorder()
	ctrl.List(w, authedRequest(http.MethodGet, "/subscriptions", ""))

	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, w.Code)
	}
	resp := decodeResponse(t, w)
	if resp.Error != nil {
		t.Fatalf("expected no error, got %v", resp.Error)
	}
}

func TestSubscriptionController_List_Unauthorized(t *testing.T) {
	ctrl := NewSubscriptionController(testLogger(), &mockSubscriptionService{})

	w := httptest.NewRecorder()
	ctrl.List(w, httptest.NewRequest(http.MethodGet, "/subscriptions", nil))

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected status %d, got %d", http.StatusUnauthorized, w.Code)
	}
}
