package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	zlog "github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"github.com/rahat-sukari/api/internal/config"
	"github.com/rahat-sukari/api/internal/email"
	accountHandler "github.com/rahat-sukari/api/internal/handler/account"
	alertHandler "github.com/rahat-sukari/api/internal/handler/alert"
	appointmentHandler "github.com/rahat-sukari/api/internal/handler/appointment"
	attachmentHandler "github.com/rahat-sukari/api/internal/handler/attachment"
	authHandler "github.com/rahat-sukari/api/internal/handler/auth"
	consultationHandler "github.com/rahat-sukari/api/internal/handler/consultation"
	doctorHandler "github.com/rahat-sukari/api/internal/handler/doctor"
	healthHandler "github.com/rahat-sukari/api/internal/handler/health"
	medicationHandler "github.com/rahat-sukari/api/internal/handler/medication"
	noteHandler "github.com/rahat-sukari/api/internal/handler/note"
	notificationHandler "github.com/rahat-sukari/api/internal/handler/notification"
	patientHandler "github.com/rahat-sukari/api/internal/handler/patient"
	readingHandler "github.com/rahat-sukari/api/internal/handler/reading"
	"github.com/rahat-sukari/api/internal/middleware"
	"github.com/rahat-sukari/api/internal/repository/postgres"
	"github.com/rahat-sukari/api/internal/router"
	accountService "github.com/rahat-sukari/api/internal/service/account"
	alertService "github.com/rahat-sukari/api/internal/service/alert"
	appointmentService "github.com/rahat-sukari/api/internal/service/appointment"
	attachmentService "github.com/rahat-sukari/api/internal/service/attachment"
	authService "github.com/rahat-sukari/api/internal/service/auth"
	consultationService "github.com/rahat-sukari/api/internal/service/consultation"
	doctorService "github.com/rahat-sukari/api/internal/service/doctor"
	medicationService "github.com/rahat-sukari/api/internal/service/medication"
	noteService "github.com/rahat-sukari/api/internal/service/note"
	notificationService "github.com/rahat-sukari/api/internal/service/notification"
	patientService "github.com/rahat-sukari/api/internal/service/patient"
	readingService "github.com/rahat-sukari/api/internal/service/reading"
	"github.com/rahat-sukari/api/internal/storage"
	"github.com/rahat-sukari/api/pkg/auth"
	"github.com/rahat-sukari/api/pkg/logger"
	"github.com/rahat-sukari/api/pkg/messaging"
	redisBroker "github.com/rahat-sukari/api/pkg/messaging/redis"
	"github.com/rahat-sukari/api/pkg/security"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		zlog.Fatal().Err(err).Msg("failed to load configuration")
	}

	level, err := zerolog.ParseLevel(cfg.Log.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}
	l := logger.New(&logger.Config{
		Level:   level,
		Pretty:  cfg.Log.Pretty,
		Service: "rahat-sukari-api",
	})
	zlog.Logger = *l.Zerolog()

	db, err := postgres.NewDB(cfg.Database)
	if err != nil {
		zlog.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	accountRepo := postgres.NewAccountRepository(db)
	patientRepo := postgres.NewPatientRepository(db)
	doctorRepo := postgres.NewDoctorRepository(db)
	readingRepo := postgres.NewGlucoseReadingRepository(db)
	medicationRepo := postgres.NewMedicationRepository(db)
	noteRepo := postgres.NewDoctorNoteRepository(db)
	attachmentRepo := postgres.NewAttachmentRepository(db)
	consultationRepo := postgres.NewConsultationRepository(db)
	alertRepo := postgres.NewAlertRepository(db)
	appointmentRepo := postgres.NewAppointmentRepository(db)
	notificationRepo := postgres.NewNotificationRepository(db)
	favoriteRepo := postgres.NewFavoriteRepository(db)

	var broker messaging.Broker = messaging.NopBroker{}
	if cfg.Redis.Enabled {
		broker, err = redisBroker.NewBroker(redisBroker.Config{URL: cfg.Redis.URL}, l.Zerolog())
		if err != nil {
			zlog.Fatal().Err(err).Msg("failed to connect to redis")
		}
		defer broker.Close()
	}

	var emailSvc email.Service = email.NopService{}
	if cfg.SMTP.Enabled {
		emailSvc = email.NewService(cfg.SMTP)
	}

	store, err := storage.NewDiskStore(cfg.Media.Dir)
	if err != nil {
		zlog.Fatal().Err(err).Msg("failed to initialize media store")
	}

	hasher := security.NewBcryptHasher(0)
	tokens := auth.NewJWTService(cfg.JWT.Secret, time.Duration(cfg.JWT.ExpiryHours)*time.Hour)

	notifSvc := notificationService.NewService(notificationRepo, broker)
	accountSvc := accountService.NewService(accountRepo, patientRepo, doctorRepo, hasher, emailSvc)
	authSvc := authService.NewService(accountRepo, patientRepo, doctorRepo, tokens, hasher)
	patientSvc := patientService.NewService(patientRepo, readingRepo, medicationRepo, noteRepo, store)
	doctorSvc := doctorService.NewService(doctorRepo, favoriteRepo)
	readingSvc := readingService.NewService(readingRepo)
	medicationSvc := medicationService.NewService(medicationRepo)
	noteSvc := noteService.NewService(noteRepo, patientRepo, accountRepo, notifSvc)
	attachmentSvc := attachmentService.NewService(attachmentRepo, store)
	consultationSvc := consultationService.NewService(consultationRepo, patientRepo, notifSvc)
	alertSvc := alertService.NewService(alertRepo)
	appointmentSvc := appointmentService.NewService(appointmentRepo, doctorRepo, patientRepo, notifSvc, emailSvc)

	authMiddleware := middleware.NewAuthMiddleware(authSvc)

	r := router.New(authMiddleware, router.Config{
		RateLimit:      rate.Limit(cfg.RateLimit.RPS),
		RateBurst:      cfg.RateLimit.Burst,
		CORSConfig:     middleware.DefaultCORSConfig(),
		MetricsPrefix:  "rahat_sukari",
		RequestTimeout: middleware.TimeoutConfig{Duration: cfg.Server.RequestTimeout},
	})

	r.Public(
		authHandler.NewHandler(authSvc, accountSvc),
		healthHandler.NewHandler(db),
	)
	r.Protected(
		accountHandler.NewHandler(accountSvc),
		patientHandler.NewHandler(patientSvc, cfg.Server.BaseURL),
		doctorHandler.NewHandler(doctorSvc),
		readingHandler.NewHandler(readingSvc),
		medicationHandler.NewHandler(medicationSvc),
		noteHandler.NewHandler(noteSvc),
		attachmentHandler.NewHandler(attachmentSvc, cfg.Server.BaseURL),
		consultationHandler.NewHandler(consultationSvc),
		alertHandler.NewHandler(alertSvc),
		appointmentHandler.NewHandler(appointmentSvc),
		notificationHandler.NewHandler(notifSvc),
	)
	r.Setup()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      r.Engine(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		zlog.Info().Int("port", cfg.Server.Port).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zlog.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	zlog.Info().Msg("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		zlog.Fatal().Err(err).Msg("server forced to shutdown")
	}

	zlog.Info().Msg("server exited properly")
}
