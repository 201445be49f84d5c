package controllers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/vessoni/MeetApp/internal/delivery/http/helpers"
	"github.com/vessoni/MeetApp/internal/domain"
)

type SessionController struct {
	Logger  *slog.Logger
	Service domain.UserService
}

func NewSessionController(logger *slog.Logger, svc domain.UserService) *SessionController {
	return &SessionController{
		Logger:  logger,
		Service: svc,
	}
}

// SessionRequest is the request body for POST /sessions.
type SessionRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate implements helpers.Validator.
func (r *SessionRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(r.Email) == "" {
		errs = append(errs, "email is required")
	}
	if r.Password == "" {
		errs = append(errs, "password is required")
	}
	return errs
}

// SessionResponse is the success payload for POST /sessions.
type SessionResponse struct {
	Token string       `json:"token"`
	User  *domain.User `json:"user"`
}

// Create godoc
// @Summary Start a session
// @Description Authenticates with email and password and returns a bearer token.
// @Tags sessions
// @Accept json
// @Produce json
// @Param body body controllers.SessionRequest true "Credentials"
// @Success 200 {object} helpers.APIResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Router /sessions [post]
func (c *SessionController) Create(w http.ResponseWriter, r *http.Request) {
	var req SessionRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}

	token, user, err := c.Service.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "invalid email or password")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, SessionResponse{Token: token, User: user})
}
