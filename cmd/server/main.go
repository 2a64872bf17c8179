package main

import (
	"context"
	"encoding/json"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/zabava/dashboard-go/internal/api"
	"github.com/zabava/dashboard-go/internal/audit"
	"github.com/zabava/dashboard-go/internal/auth"
	"github.com/zabava/dashboard-go/internal/config"
	"github.com/zabava/dashboard-go/internal/database"
	"github.com/zabava/dashboard-go/internal/handler"
	"github.com/zabava/dashboard-go/internal/jobs"
	"github.com/zabava/dashboard-go/internal/middleware"
	"github.com/zabava/dashboard-go/internal/model"
	"github.com/zabava/dashboard-go/internal/notify"
	"github.com/zabava/dashboard-go/internal/redis"
	"github.com/zabava/dashboard-go/internal/repository"
	"github.com/zabava/dashboard-go/internal/sse"
	"github.com/zabava/dashboard-go/internal/store"
)

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	setLogLevel(cfg.LogLevel)

	isProduction := os.Getenv("FLY_APP_NAME") != ""
	if err := cfg.Validate(isProduction); err != nil {
		log.Fatal().Err(err).Msg("invalid config")
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), config.DBPingTimeout)
	if err := db.Ping(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to ping database")
	}
	cancel()
	log.Info().Msg("database connected")

	redisClient, err := redis.NewClient(cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer redisClient.Close()
	log.Info().Msg("redis connected")

	auditRepo := repository.NewAuditRepository(db.DB)
	recorder := audit.NewRecorder(auditRepo)

	kv := store.NewRedisKV(redisClient)
	sessionStore := store.NewSessionStore(kv)
	notificationStore := store.NewNotificationStore(kv)

	broker := sse.NewBroker(redisClient)
	defer broker.Close()

	apiClient := api.NewClient(cfg)
	manager := auth.NewManager(apiClient, sessionStore)

	center := notify.NewCenter(notificationStore, broker)
	center.Load(context.Background())

	poller := jobs.NewNotificationPoller(apiClient, manager, center, cfg.PollInterval())
	manager.SetRoleListener(func(role model.Role) {
		if role == model.RoleAdmin {
			poller.Wake()
		}
	})

	manager.Hydrate(context.Background())

	sessionGate := middleware.NewSessionGate(manager)
	publicRateLimit := middleware.NewPublicRateLimitMiddleware(redisClient.Client)
	loginRateLimit := middleware.NewLoginRateLimitMiddleware(redisClient.Client)
	bodyLimitMiddleware := middleware.NewBodyLimitMiddleware(0)

	authHandler := handler.NewAuthHandler(manager, recorder)
	partnerHandler := handler.NewPartnerHandler(apiClient, manager, recorder)
	adminHandler := handler.NewAdminHandler(apiClient, manager, recorder, auditRepo)
	notificationsHandler := handler.NewNotificationsHandler(center)
	eventsHandler := handler.NewEventsHandler(broker, center)
	bonusHandler := handler.NewBonusHandler(apiClient)

	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestLogger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(config.ServerRequestTimeout))
	r.Use(bodyLimitMiddleware.Handler)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]any{
			"status":     "ok",
			"timestamp":  time.Now().UnixMilli(),
			"sseClients": broker.ClientCount(),
		})
	})

	r.Route("/auth", func(r chi.Router) {
		r.With(loginRateLimit.Handler).Post("/login", authHandler.Login)
		r.With(loginRateLimit.Handler).Post("/signup", authHandler.Signup)
		r.Post("/logout", authHandler.Logout)
		r.Get("/session", authHandler.Session)
	})

	r.Route("/partner", func(r chi.Router) {
		r.Use(sessionGate.RequireSession)
		r.Get("/dashboard", partnerHandler.Dashboard)
		r.Post("/visit", partnerHandler.MarkVisit)
		r.Get("/redemption", partnerHandler.CheckRedemption)
		r.Post("/redemption", partnerHandler.ProcessRedemption)
	})

	r.Route("/admin", func(r chi.Router) {
		r.Use(sessionGate.RequireSession)
		r.Use(sessionGate.RequireAdmin)
		r.Get("/overview", adminHandler.Overview)
		r.Get("/partners", adminHandler.Partners)
		r.Put("/partners/{id}", adminHandler.UpdatePartner)
		r.Get("/invites", adminHandler.Invites)
		r.Post("/invites", adminHandler.CreateInvite)
		r.Get("/rewards", adminHandler.Rewards)
		r.Post("/rewards", adminHandler.CreateReward)
		r.Put("/rewards/{id}", adminHandler.UpdateReward)
		r.Delete("/rewards/{id}", adminHandler.DeleteReward)
		r.Get("/analytics/export", adminHandler.ExportAnalytics)
		r.Get("/activity", adminHandler.Activity)
	})

	r.Route("/notifications", func(r chi.Router) {
		r.Use(sessionGate.RequireSession)
		r.Get("/", notificationsHandler.List)
		r.Post("/{id}/read", notificationsHandler.MarkRead)
		r.Post("/read-all", notificationsHandler.MarkAllRead)
		r.Delete("/{id}", notificationsHandler.Delete)
		r.Delete("/", notificationsHandler.Clear)
	})

	r.Route("/events", func(r chi.Router) {
		r.Use(sessionGate.RequireSession)
		r.Get("/", eventsHandler.ServeHTTP)
	})

	r.Route("/bonus", func(r chi.Router) {
		r.Use(publicRateLimit.Handler)
		r.Get("/points", bonusHandler.Points)
		r.Post("/redeem", bonusHandler.Redeem)
	})

	poller.Start()
	defer poller.Stop()

	retentionJob := jobs.NewAuditRetentionJob(auditRepo, config.AuditRetentionInterval, config.AuditRetentionMaxAge)
	retentionJob.Start()
	defer retentionJob.Stop()

	server := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  config.ServerReadTimeout,
		WriteTimeout: 0,
		IdleTimeout:  config.ServerIdleTimeout,
	}

	go func() {
		log.Info().Str("addr", cfg.Addr()).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down server")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), config.ServerShutdownTimeout)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server stopped")
}

func setLogLevel(level string) {
	switch level {
	case "debug":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case "info":
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	case "warn":
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	case "error":
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
}
