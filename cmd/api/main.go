package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"github.com/leadmessenger/outreach-api/internal/config"
	"github.com/leadmessenger/outreach-api/internal/handler"
	authHandler "github.com/leadmessenger/outreach-api/internal/handler/auth"
	contactHandler "github.com/leadmessenger/outreach-api/internal/handler/contact"
	messageHandler "github.com/leadmessenger/outreach-api/internal/handler/message"
	taskHandler "github.com/leadmessenger/outreach-api/internal/handler/task"
	templateHandler "github.com/leadmessenger/outreach-api/internal/handler/template"
	webhookHandler "github.com/leadmessenger/outreach-api/internal/handler/webhook"
	"github.com/leadmessenger/outreach-api/internal/middleware"
	"github.com/leadmessenger/outreach-api/internal/repository/postgres"
	"github.com/leadmessenger/outreach-api/internal/router"
	authService "github.com/leadmessenger/outreach-api/internal/service/auth"
	contactService "github.com/leadmessenger/outreach-api/internal/service/contact"
	eventService "github.com/leadmessenger/outreach-api/internal/service/event"
	messageService "github.com/leadmessenger/outreach-api/internal/service/message"
	taskService "github.com/leadmessenger/outreach-api/internal/service/task"
	templateService "github.com/leadmessenger/outreach-api/internal/service/template"
	"github.com/leadmessenger/outreach-api/pkg/auth"
	"github.com/leadmessenger/outreach-api/pkg/logger"
	"github.com/leadmessenger/outreach-api/pkg/messaging"
	redisBroker "github.com/leadmessenger/outreach-api/pkg/messaging/redis"
	"github.com/leadmessenger/outreach-api/pkg/metrics"
)

func main() {
	logger.Setup(os.Getenv("LEADMSNGR_LOG_LEVEL"))

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	db, err := postgres.NewDB(cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	// Repositories
	userRepo := postgres.NewUserRepository(db)
	contactRepo := postgres.NewContactRepository(db)
	templateRepo := postgres.NewTemplateRepository(db)
	taskRepo := postgres.NewTaskRepository(db)
	messageRepo := postgres.NewMessageRepository(db)
	eventRepo := postgres.NewEventRepository(db)

	// Notification broker; optional, disabled when no Redis URL is configured.
	var broker messaging.Broker = messaging.NoopBroker{}
	if cfg.Redis.URL != "" {
		rb, err := redisBroker.NewRedisBroker(cfg.Redis.URL)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to Redis")
		}
		defer rb.Close()
		broker = rb
	}

	m := metrics.NewMetrics("outreach")

	// Services
	jwtSvc := auth.NewJWTService(cfg.JWT)
	authSvc := authService.NewService(userRepo, jwtSvc)
	contactSvc := contactService.NewService(contactRepo, cfg.Limits.MaxContactsPerUser, m)
	templateSvc := templateService.NewService(templateRepo)
	taskSvc := taskService.NewService(taskRepo)
	messageSvc := messageService.NewService(messageRepo, contactRepo, broker, m)
	eventSvc := eventService.NewService(eventRepo, messageRepo, broker, m)

	// Handlers
	h := handler.NewHandler(db)
	authH := authHandler.NewHandler(authSvc)
	webhookH := webhookHandler.NewHandler(eventSvc)
	contactH := contactHandler.NewHandler(contactSvc)
	templateH := templateHandler.NewHandler(templateSvc)
	taskH := taskHandler.NewHandler(taskSvc)
	messageH := messageHandler.NewHandler(messageSvc, eventSvc)

	authMiddleware := middleware.NewAuthMiddleware(authSvc)

	r := router.NewRouter(
		authMiddleware,
		authH,
		webhookH,
		contactH,
		templateH,
		taskH,
		messageH,
		h,
		router.RouterConfig{
			RateLimit:     rate.Limit(cfg.Server.RateLimitRPS),
			RateBurst:     cfg.Server.RateLimitBurst,
			CORSOrigins:   cfg.Server.CORSOrigins,
			MetricsPrefix: "outreach_http",
		},
	)
	r.Setup()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      r.Engine(),
		ReadTimeout:  time.Duration(cfg.Server.TimeoutSeconds) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.TimeoutSeconds) * time.Second,
	}

	go func() {
		log.Info().Int("port", cfg.Server.Port).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server exited properly")
}
