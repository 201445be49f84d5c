package controllers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/vessoni/MeetApp/internal/delivery/http/helpers"
	"github.com/vessoni/MeetApp/internal/delivery/http/middleware"
	"github.com/vessoni/MeetApp/internal/domain"
)

type MeetupController struct {
	Logger  *slog.Logger
	Service domain.MeetupService
}

func NewMeetupController(logger *slog.Logger, svc domain.MeetupService) *MeetupController {
	return &MeetupController{
		Logger:  logger,
		Service: svc,
	}
}

// MeetupRequest is the request body for POST /meetups and PUT /meetups/{meetupID}.
type MeetupRequest struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Locale      string  `json:"locale"`
	Date        string  `json:"date"`
	ImageID     *string `json:"image_id,omitempty"`

	date time.Time
}

// Validate implements helpers.Validator.
func (r *MeetupRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(r.Title) == "" {
		errs = append(errs, "title is required")
	}
	if strings.TrimSpace(r.Description) == "" {
		errs = append(errs, "description is required")
	}
	if strings.TrimSpace(r.Locale) == "" {
		errs = append(errs, "locale is required")
	}
	if strings.TrimSpace(r.Date) == "" {
		errs = append(errs, "date is required")
	} else {
		d, err := time.Parse(time.RFC3339, r.Date)
		if err != nil {
			errs = append(errs, "date must be a valid RFC3339 timestamp")
		} else {
			r.date = d
		}
	}
	return errs
}

func (r *MeetupRequest) params() domain.MeetupParams {
	return domain.MeetupParams{
		Title:       r.Title,
		Description: r.Description,
		Locale:      r.Locale,
		Date:        r.date,
		ImageID:     r.ImageID,
	}
}

// List godoc
// @Summary List meetups
// @Description Lists meetups in pages of 10, optionally filtered to a calendar day, each joined with the organizer's public profile.
// @Tags meetups
// @Produce json
// @Security BearerAuth
// @Param date query string false "Calendar day filter (RFC3339 or YYYY-MM-DD)"
// @Param page query int false "Page number (default 1)"
// @Success 200 {object} helpers.APIResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Router /meetups [get]
func (c *MeetupController) List(w http.ResponseWriter, r *http.Request) {
	page := helpers.ParsePage(r)

	var day *time.Time
	if s := r.URL.Query().Get("date"); s != "" {
		d, err := time.Parse(time.RFC3339, s)
		if err != nil {
			d, err = time.Parse("2006-01-02", s)
		}
		if err != nil {
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "invalid date filter")
			return
		}
		day = &d
	}

	meetups, err := c.Service.List(r.Context(), day, page)
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, meetups)
}

// ListOrganizing godoc
// @Summary List the caller's own meetups
// @Tags meetups
// @Produce json
// @Security BearerAuth
// @Success 200 {object} helpers.APIResponse
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Router /organizing [get]
func (c *MeetupController) ListOrganizing(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}

	meetups, err := c.Service.ListByOrganizer(r.Context(), userID)
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, meetups)
}

// Create godoc
// @Summary Create a meetup
// @Description Creates a meetup owned by the authenticated user. The starting hour must not have begun yet.
// @Tags meetups
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body controllers.MeetupRequest true "Meetup fields"
// @Success 201 {object} helpers.APIResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request or past_date"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Router /meetups [post]
func (c *MeetupController) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}

	var req MeetupRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}

	meetup, err := c.Service.Create(r.Context(), userID, req.params())
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "validation fails")
			return
		}
		if errors.Is(err, domain.ErrPastDate) {
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodePastDate, "past dates are not permitted")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, meetup)
}

// Update godoc
// @Summary Update a meetup
// @Description Updates a meetup. Only the organizer may update, and only while the meetup is not past.
// @Tags meetups
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param meetupID path string true "Meetup ID"
// @Param body body controllers.MeetupRequest true "Meetup fields"
// @Success 200 {object} helpers.APIResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request or past_date"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /meetups/{meetupID} [put]
func (c *MeetupController) Update(w http.ResponseWriter, r *http.Request) {
	meetupID := r.PathValue("meetupID")
	if meetupID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing meetupID")
		return
	}

	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}

	var req MeetupRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}

	meetup, err := c.Service.Update(r.Context(), userID, meetupID, req.params())
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "meetup not found")
			return
		}
		if errors.Is(err, domain.ErrInvalidInput) {
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "validation fails")
			return
		}
		if errors.Is(err, domain.ErrPastDate) {
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodePastDate, "cannot edit past meetups")
			return
		}
		if errors.Is(err, domain.ErrForbidden) {
			helpers.WriteJSONError(w, http.StatusForbidden, helpers.ErrCodeForbidden, "only the organizer can edit a meetup")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, meetup)
}

// Delete godoc
// @Summary Cancel a meetup
// @Description Permanently deletes a meetup. Only the organizer may cancel, and only while the meetup is not past.
// @Tags meetups
// @Produce json
// @Security BearerAuth
// @Param meetupID path string true "Meetup ID"
// @Success 204 "No Content"
// @Failure 400 {object} helpers.APIResponse "error.code: past_date"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /meetups/{meetupID} [delete]
func (c *MeetupController) Delete(w http.ResponseWriter, r *http.Request) {
	meetupID := r.PathValue("meetupID")
	if meetupID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing meetupID")
		return
	}

	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}

	if err := c.Service.Delete(r.Context(), userID, meetupID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "meetup not found")
			return
		}
		if errors.Is(err, domain.ErrPastDate) {
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodePastDate, "cannot cancel past meetups")
			return
		}
		if errors.Is(err, domain.ErrForbidden) {
			helpers.WriteJSONError(w, http.StatusForbidden, helpers.ErrCodeForbidden, "only the organizer can cancel a meetup")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
