package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
	"github.com/stripe/stripe-go/v76"

	"rently/config"
	"rently/cron"
	"rently/database"
	userRepoPkg "rently/database/repository/user"
	vehicleRepoPkg "rently/database/repository/vehicle"
	"rently/handlers"
	"rently/middleware"
	"rently/routes"
	"rently/services/auth"
	"rently/services/booking"
	"rently/services/catalog"
	"rently/services/payment"
	"rently/services/rentalapi"
	"rently/services/tasks"
	"rently/utils"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitRedis()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())
	stripe.Key = config.AppConfig.StripeKey

	// repositories.
	vehicleRepo := vehicleRepoPkg.NewMongoVehicleRepo()
	userRepo := userRepoPkg.NewMongoUserRepo()

	// upstream rental API client.
	credStore := auth.NewRedisCredentialStore(utils.GetAuthCacheClient(), logger)
	gateway := rentalapi.NewClient(
		config.AppConfig.RentalAPIBaseURL,
		config.AppConfig.RentalAPITimeout,
		credStore,
		logger,
	)

	// services.
	catalogService := &catalog.DefaultCatalogService{
		VehicleRepo: vehicleRepo,
		Gateway:     gateway,
		Logger:      logger,
	}

	authService := &auth.DefaultAuthService{
		Repo:      userRepo,
		AuthCache: utils.GetAuthCacheClient(),
		Logger:    logger,
	}

	reminderQueue := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisReminderDB,
	})
	defer reminderQueue.Close()

	var paymentProvider booking.PaymentProvider
	if config.AppConfig.StripeKey != "" {
		paymentProvider = payment.NewStripeProvider(logger)
	}

	wizardService := &booking.DefaultWizardService{
		Drafts:     booking.NewRedisDraftStore(utils.GetCacheClient(), logger),
		Catalog:    catalogService,
		Gateway:    gateway,
		Payments:   paymentProvider,
		Reminder:   &tasks.AsynqScheduler{Client: reminderQueue, Logger: logger},
		Logger:     logger,
		SuccessURL: config.AppConfig.PaymentSuccessURL,
		CancelURL:  config.AppConfig.PaymentCancelURL,
	}

	favoritesStore := catalog.NewFavoritesStore(utils.GetCacheClient(), logger)

	// Assemble the handler bundle.
	handlerBundle := &routes.HandlerBundle{
		UserRepo:  userRepo,
		Booking:   handlers.NewBookingHandler(wizardService, logger),
		Catalog:   handlers.NewCatalogHandler(catalogService, logger),
		Favorites: handlers.NewFavoritesHandler(favoritesStore, catalogService, logger),
		Auth:      handlers.NewAuthHandler(authService, logger),
	}
	routes.RegisterRoutes(router, handlerBundle)

	// Pickup reminder worker.
	cron.InitReminderWorker(logger)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
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
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
