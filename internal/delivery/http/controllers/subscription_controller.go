package controllers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/vessoni/MeetApp/internal/delivery/http/helpers"
	"github.com/vessoni/MeetApp/internal/delivery/http/middleware"
	"github.com/vessoni/MeetApp/internal/domain"
)

type SubscriptionController struct {
	Logger  *slog.Logger
	Service domain.SubscriptionService
}

func NewSubscriptionController(logger *slog.Logger, svc domain.SubscriptionService) *SubscriptionController {
	return &SubscriptionController{
		Logger:  logger,
		Service: svc,
	}
}

// SubscribeRequest is the request body for POST /subscriptions.
type SubscribeRequest struct {
	MeetupID string `json:"meetup_id"`
}

// Validate implements helpers.Validator.
func (r *SubscribeRequest) Validate() []string {
	r.MeetupID = strings.TrimSpace(r.MeetupID)
	if r.MeetupID == "" {
		return []string{"meetup_id is required"}
	}
	return nil
}

// Subscribe godoc
// @Summary Subscribe to a meetup
// @Description Subscribes the authenticated user to the meetup. At most one subscription per (user, meetup); the meetup's starting hour must not have begun.
// @Tags subscriptions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body controllers.SubscribeRequest true "Meetup reference"
// @Success 201 {object} helpers.APIResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request or past_date"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict"
// @Router /subscriptions [post]
func (c *SubscriptionController) Subscribe(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}

	var req SubscribeRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}

	sub, err := c.Service.Subscribe(r.Context(), userID, req.MeetupID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "user not found")
			return
		}
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "meetup not found")
			return
		}
		if errors.Is(err, domain.ErrAlreadySubscribed) {
			helpers.WriteJSONError(w, http.StatusConflict, helpers.ErrCodeConflict, "already subscribed to this meetup")
			return
		}
		if errors.Is(err, domain.ErrPastDate) {
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodePastDate, "cannot subscribe to past meetups")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, sub)
}

// List godoc
// @Summary List the caller's subscriptions
// @Tags subscriptions
// @Produce json
// @Security BearerAuth
// @Success 200 {object} helpers.APIResponse
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Router /subscriptions [get]
func (c *SubscriptionController) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}

	subs, err := c.Service.ListByUser(r.Context(), userID)
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, subs)
}
