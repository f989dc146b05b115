package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"matehub/config"
	"matehub/cron"
	"matehub/database"
	"matehub/database/repository"
	"matehub/handlers"
	"matehub/routes"
	"matehub/services/booking"
	"matehub/services/events"
	"matehub/services/mate"
	"matehub/services/payment"
	"matehub/services/user"
	"matehub/utils"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()
	cfg := config.AppConfig

	loc, err := config.CivilLocation()
	if err != nil {
		logger.Sugar().Fatalf("main: invalid civil timezone %q: %v", cfg.CivilTimezone, err)
	}

	database.InitDB()
	utils.InitCache()

	if err := handlers.RegisterValidators(); err != nil {
		logger.Sugar().Fatalf("main: failed to register validators: %v", err)
	}

	// repositories.
	db := database.DB()
	userRepo := repository.NewMongoUserRepo(db, logger)
	bookingRepo := repository.NewMongoBookingRepo(db, repository.BookingRepoOptions{
		HoldTTL:         cfg.HoldTTL,
		UseTransactions: cfg.MongoTransactions,
	}, logger)

	// collaborators.
	var gateway payment.Gateway = payment.Disabled{}
	if stripeGateway, err := payment.NewStripeGateway(cfg.StripeKey, logger); err != nil {
		logger.Warn("Stripe is not configured; payment steps will fail", zap.Error(err))
	} else {
		gateway = stripeGateway
	}

	var publisher events.Publisher = events.NoopPublisher{}
	if cfg.RabbitMQURL != "" {
		publisher = events.NewAMQPPublisher(cfg.RabbitMQURL, logger)
	}

	opts := []booking.Option{
		booking.WithLocation(loc),
		booking.WithHoldTTL(cfg.HoldTTL),
		booking.WithCurrency(cfg.PaymentCurrency),
		booking.WithSweepBatch(cfg.SweepBatch),
	}
	var invalidator mate.ProfileInvalidator
	if cache := booking.NewRedisProfileCache(utils.GetCacheClient(), cfg.ProfileCacheTTL, logger); cache != nil {
		opts = append(opts, booking.WithProfileCache(cache))
		invalidator = cache
	}

	// services.
	bookingService := booking.NewBookingService(booking.Store{
		Holds:        bookingRepo,
		Transactions: bookingRepo,
		Reviews:      bookingRepo,
		Mates:        userRepo,
		Renters:      userRepo,
	}, gateway, publisher, logger, opts...)
	mateService := mate.NewMateService(userRepo, invalidator, logger)
	userService := user.NewUserService(userRepo, logger)

	// background work.
	bgCtx, stopBackground := context.WithCancel(context.Background())
	defer stopBackground()

	utils.StartHealthMonitor(bgCtx, utils.GetCacheClient(), database.MongoClient, 30*time.Second)

	var sweepWorker *cron.SweepWorker
	switch cfg.SweepDriver {
	case "ticker":
		go cron.NewTickerScheduler(bookingService, cfg.SweepInterval, logger).Start(bgCtx)
	default:
		sweepWorker, err = cron.StartSweepWorker(cron.SweepWorkerConfig{
			Redis: asynq.RedisClientOpt{
				Addr:     cfg.RedisAddr,
				Password: cfg.RedisPassword,
				DB:       cfg.RedisQueueDB,
			},
			CronSpec: cfg.SweepCron,
			Location: loc,
		}, bookingService, logger)
		if err != nil {
			logger.Sugar().Fatalf("main: failed to start sweep worker: %v", err)
		}
	}

	// Create the Gin router.
	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Logger())

	handlerBundle := handlers.NewHandlerBundle(bookingService, mateService, userService, logger)
	routes.RegisterRoutes(router, handlerBundle, routes.Options{
		FrontAPI:          cfg.FrontAPI,
		MaxRequestsPerMin: cfg.MaxRequestsPerMin,
	})

	// Start the HTTP server.
	port := cfg.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Errorf("main: server forced to shutdown: %v", err)
	}

	stopBackground()
	if sweepWorker != nil {
		sweepWorker.Shutdown()
	}
	if client := utils.GetCacheClient(); client != nil {
		_ = client.Close()
	}
	if err := database.Disconnect(ctx); err != nil {
		logger.Sugar().Errorf("main: mongo disconnect: %v", err)
	}

	_ = logger.Sync()
	logger.Sugar().Info("main: server stopped gracefully")
}
