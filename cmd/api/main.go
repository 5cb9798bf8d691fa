package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"frontdesk-api/internal/auth"
	"frontdesk-api/internal/bookings"
	"frontdesk-api/internal/chats"
	"frontdesk-api/internal/config"
	"frontdesk-api/internal/export"
	"frontdesk-api/internal/httpapi"
	"frontdesk-api/internal/ivr"
	"frontdesk-api/internal/leads"
	"frontdesk-api/internal/messaging"
	"frontdesk-api/internal/notify"
	"frontdesk-api/internal/payments"
	"frontdesk-api/internal/store"
	"frontdesk-api/internal/telephony"
	"frontdesk-api/internal/tickets"
	"frontdesk-api/pkg/logger"
	"frontdesk-api/pkg/utils"

	"github.com/gin-gonic/gin"
	_ "github.com/jackc/pgx/v5/stdlib"
)

// dedupeTTL bounds how long a CallSid claim survives in Redis. Twilio
// retries webhooks within minutes; a day is comfortably past that.
const dedupeTTL = 24 * time.Hour

func main() {
	// Root context that cancels on shutdown
	rootCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("config load failed", "err", err)
		os.Exit(1)
	}

	log := logger.New(cfg.App.Env)
	slog.SetDefault(log)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	authManager, err := auth.NewManager(cfg.Auth)
	if err != nil {
		log.Error("auth init failed", "err", err)
		os.Exit(1)
	}

	db, err := utils.OpenPostgres(rootCtx, "pgx", cfg.PostgresDSN(), utils.PostgresPoolConfig{})
	if err != nil {
		log.Error("postgres init failed", "err", err)
		os.Exit(1)
	}
	defer db.Close()

	docs := store.NewPostgresStore(db)
	if err := docs.Migrate(rootCtx); err != nil {
		log.Error("store migration failed", "err", err)
		os.Exit(1)
	}

	rdb, err := utils.OpenRedis(rootCtx, utils.RedisConfig{Addr: cfg.RedisAddr()})
	if err != nil {
		log.Error("redis init failed", "err", err)
		os.Exit(1)
	}
	defer rdb.Close()

	twilioClient := notify.NewClient(cfg.Twilio)
	if !twilioClient.Configured() {
		log.Warn("twilio credentials missing, outbound messaging disabled")
	}

	messagingService := messaging.NewService(
		docs,
		twilioClient,
		cfg.Twilio.FromNumber,
		cfg.Twilio.CallbackURL("/webhooks/twilio/voice"),
	)
	leadService := leads.NewService(docs)
	ticketService := tickets.NewService(docs)

	// First-delivery claims live in Redis. A Redis outage must not take
	// the phone line down, so claim errors fall back to treating the
	// delivery as first; the worst case is a duplicate call log entry.
	claim := func(ctx context.Context, callSid string) bool {
		first, err := utils.ClaimDelivery(ctx, rdb, "ivr:call:"+callSid, dedupeTTL)
		if err != nil {
			log.Warn("delivery claim failed", "call_sid", callSid, "err", err)
			return true
		}
		return first
	}

	flow := ivr.NewController(
		ivr.Options{
			GatherActionURL: cfg.Twilio.CallbackURL("/webhooks/twilio/voice/gather"),
			SchedulingLink:  cfg.Twilio.SchedulingLink,
			SalesLink:       cfg.Twilio.SalesLink,
		},
		leadService,
		ticketService,
		messagingService,
		messagingService,
		claim,
	)

	h := httpapi.Handlers{
		Auth:      authManager,
		Users:     auth.NewUserService(docs),
		Leads:     leadService,
		Chats:     chats.NewService(docs),
		Bookings:  bookings.NewService(docs),
		Tickets:   ticketService,
		Payments:  payments.NewService(docs),
		Messaging: messagingService,
		Export:    export.NewService(docs),
	}

	// Gin router
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(logger.Middleware(log))

	registerRoutes(r, h, flow, telephony.NewVerifier(cfg.Twilio), authManager, db, rdb)

	srv := &http.Server{
		Addr:              cfg.HTTPAddr(),
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Info("api listening", "addr", srv.Addr, "env", cfg.App.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("http server failed", "err", err)
			stop()
		}
	}()

	<-rootCtx.Done()
	log.Info("shutdown initiated")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("http shutdown failed", "err", err)
	}
}
