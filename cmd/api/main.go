package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"

	"github.com/vessoni/MeetApp/config"
	_ "github.com/vessoni/MeetApp/docs"
	"github.com/vessoni/MeetApp/internal/adapters/auth"
	"github.com/vessoni/MeetApp/internal/adapters/email"
	deliveryhttp "github.com/vessoni/MeetApp/internal/delivery/http"
	"github.com/vessoni/MeetApp/internal/delivery/http/controllers"
	"github.com/vessoni/MeetApp/internal/delivery/http/middleware"
	"github.com/vessoni/MeetApp/internal/domain"
	"github.com/vessoni/MeetApp/internal/repository/postgres"
	"github.com/vessoni/MeetApp/internal/services"
)

const serviceTimeout = 5 * time.Second

// @title MeetApp API
// @version 1.0
// @description Meetup management: organizers create meetups, attendees subscribe.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}
	logger := config.NewLogger(cfg.Environment)

	db, err := sql.Open("postgres", cfg.DBUrl)
	if err != nil {
		logger.Error("open database", "err", err)
		os.Exit(1)
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		logger.Error("ping database", "err", err)
		os.Exit(1)
	}

	userRepo := postgres.NewUserRepository(db)
	meetupRepo := postgres.NewMeetupRepository(db)
	subscriptionRepo := postgres.NewSubscriptionRepository(db)
	fileRepo := postgres.NewFileRepository(db)

	hasher := auth.NewBcryptHasher(10)
	tokenIssuer := auth.NewJWTIssuer(cfg.JWTSecret)
	tokenVerifier := auth.NewJWTVerifier(cfg.JWTSecret)

	mailer, err := email.NewMailer(email.MailerConfig{
		Provider:    cfg.MailProvider,
		FromAddress: cfg.MailFromAddress,
		FromName:    cfg.MailFromName,
		SES: email.SESConfig{
			Region:          cfg.SESRegion,
			AccessKeyID:     cfg.SESAccessKeyID,
			SecretAccessKey: cfg.SESSecretAccessKey,
		},
	})
	if err != nil {
		logger.Error("create mailer", "err", err)
		os.Exit(1)
	}
	notifier := services.NewEmailNotifier(mailer)

	clock := domain.SystemClock()

	userService := services.NewUserService(userRepo, hasher, tokenIssuer, cfg.TokenExpiry, clock, serviceTimeout)
	meetupService := services.NewMeetupService(meetupRepo, clock, serviceTimeout)
	subscriptionService := services.NewSubscriptionService(subscriptionRepo, meetupRepo, userRepo, notifier, clock, logger, serviceTimeout)
	fileService, err := services.NewFileService(fileRepo, cfg.UploadDir, clock, serviceTimeout)
	if err != nil {
		logger.Error("create file service", "err", err)
		os.Exit(1)
	}

	mux := deliveryhttp.NewRouter(
		tokenVerifier,
		controllers.NewUserController(logger, userService),
		controllers.NewSessionController(logger, userService),
		controllers.NewMeetupController(logger, meetupService),
		controllers.NewSubscriptionController(logger, subscriptionService),
		controllers.NewFileController(logger, fileService),
	)

	handler := middleware.CORS(cfg.CORSOrigins, middleware.Logging(logger, mux))
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      30 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("server listening", "port", cfg.Port, "env", cfg.Environment)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", "err", err)
			stop()
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown", "err", err)
	}
}
