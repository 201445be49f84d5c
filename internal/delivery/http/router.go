package http

import (
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/vessoni/MeetApp/internal/delivery/http/controllers"
	"github.com/vessoni/MeetApp/internal/delivery/http/middleware"
	"github.com/vessoni/MeetApp/internal/domain"
)

// NewRouter initializes the HTTP router with all application routes.
// Everything except signup, session creation, and the swagger UI requires a
// bearer token.
func NewRouter(
	verifier domain.TokenVerifier,
	userController *controllers.UserController,
	sessionController *controllers.SessionController,
	meetupController *controllers.MeetupController,
	subscriptionController *controllers.SubscriptionController,
	fileController *controllers.FileController,
) *http.ServeMux {
	mux := http.NewServeMux()
	auth := middleware.RequireAuth(verifier)

	// Accounts and sessions
	mux.HandleFunc("POST /users", userController.SignUp)
	mux.HandleFunc("POST /sessions", sessionController.Create)
	mux.HandleFunc("PUT /users", auth(userController.Update))

	// Meetups
	mux.HandleFunc("GET /meetups", auth(meetupController.List))
	mux.HandleFunc("POST /meetups", auth(meetupController.Create))
	mux.HandleFunc("PUT /meetups/{meetupID}", auth(meetupController.Update))
	mux.HandleFunc("DELETE /meetups/{meetupID}", auth(meetupController.Delete))
	mux.HandleFunc("GET /organizing", auth(meetupController.ListOrganizing))

	// Subscriptions
	mux.HandleFunc("GET /subscriptions", auth(subscriptionController.List))
	mux.HandleFunc("POST /subscriptions", auth(subscriptionController.Subscribe))

	// Files
	mux.HandleFunc("POST /files", auth(fileController.Upload))

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}
