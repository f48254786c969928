package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.temporal.io/sdk/client"
	temporalotel "go.temporal.io/sdk/contrib/opentelemetry"
	workerlog "go.temporal.io/sdk/log"
	"gorm.io/gorm"

	"github.com/pawsit/pawsit-server/internal/clients/http/paygate"
	pawsitserver "github.com/pawsit/pawsit-server/server"

	analyticsobs "github.com/pawsit/pawsit-server/internal/domains/analytics/adapters/observability"
	analyticsapp "github.com/pawsit/pawsit-server/internal/domains/analytics/application"

	bookingsmemory "github.com/pawsit/pawsit-server/internal/domains/bookings/adapters/memory"
	bookingsobs "github.com/pawsit/pawsit-server/internal/domains/bookings/adapters/observability"
	bookingspostgres "github.com/pawsit/pawsit-server/internal/domains/bookings/adapters/persistence/postgres"
	bookingsusers "github.com/pawsit/pawsit-server/internal/domains/bookings/adapters/users"
	bookingsapp "github.com/pawsit/pawsit-server/internal/domains/bookings/application"
	bookingsports "github.com/pawsit/pawsit-server/internal/domains/bookings/ports"

	notiflogging "github.com/pawsit/pawsit-server/internal/domains/notifications/adapters/logging"
	notifmemory "github.com/pawsit/pawsit-server/internal/domains/notifications/adapters/memory"
	notifpostgres "github.com/pawsit/pawsit-server/internal/domains/notifications/adapters/persistence/postgres"
	notifapp "github.com/pawsit/pawsit-server/internal/domains/notifications/application"
	notifports "github.com/pawsit/pawsit-server/internal/domains/notifications/ports"

	paymentsbookings "github.com/pawsit/pawsit-server/internal/domains/payments/adapters/bookings"
	paymentsmemory "github.com/pawsit/pawsit-server/internal/domains/payments/adapters/memory"
	paymentspostgres "github.com/pawsit/pawsit-server/internal/domains/payments/adapters/persistence/postgres"
	paymentsworkflows "github.com/pawsit/pawsit-server/internal/domains/payments/adapters/workflows"
	paymentsapp "github.com/pawsit/pawsit-server/internal/domains/payments/application"
	paymentsports "github.com/pawsit/pawsit-server/internal/domains/payments/ports"

	petsmemory "github.com/pawsit/pawsit-server/internal/domains/pets/adapters/memory"
	petspostgres "github.com/pawsit/pawsit-server/internal/domains/pets/adapters/persistence/postgres"
	petsusers "github.com/pawsit/pawsit-server/internal/domains/pets/adapters/users"
	petsapp "github.com/pawsit/pawsit-server/internal/domains/pets/application"
	petsports "github.com/pawsit/pawsit-server/internal/domains/pets/ports"

	reviewsbookings "github.com/pawsit/pawsit-server/internal/domains/reviews/adapters/bookings"
	reviewsmemory "github.com/pawsit/pawsit-server/internal/domains/reviews/adapters/memory"
	reviewspostgres "github.com/pawsit/pawsit-server/internal/domains/reviews/adapters/persistence/postgres"
	reviewsusers "github.com/pawsit/pawsit-server/internal/domains/reviews/adapters/users"
	reviewsapp "github.com/pawsit/pawsit-server/internal/domains/reviews/application"
	reviewsports "github.com/pawsit/pawsit-server/internal/domains/reviews/ports"

	usersmemory "github.com/pawsit/pawsit-server/internal/domains/users/adapters/memory"
	userspostgres "github.com/pawsit/pawsit-server/internal/domains/users/adapters/persistence/postgres"
	usersapp "github.com/pawsit/pawsit-server/internal/domains/users/application"
	usersports "github.com/pawsit/pawsit-server/internal/domains/users/ports"

	platformobservability "github.com/pawsit/pawsit-server/internal/platform/observability"
	platformpostgres "github.com/pawsit/pawsit-server/internal/platform/postgres"
)

// Run boots the Pawsit HTTP API with observability, repositories, and
// workflows wired.
func Run(ctx context.Context) error {
	const serviceName = "pawsit-api"
	instruments, shutdown, err := platformobservability.Init(ctx, serviceName)
	if err != nil {
		return fmt.Errorf("failed to initialize observability: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			instruments.Logger.Error("failed to shutdown observability", slog.String("error", err.Error()))
		}
	}()
	logger := instruments.Logger

	db, cleanupDB := platformpostgres.ConnectFromEnv(ctx, logger)
	defer cleanupDB()

	userRepo, sessionStore := buildUserStorage(db)
	userService := usersapp.NewService(userRepo, sessionStore)

	petRepo := buildPetRepository(db)
	petService := petsapp.NewService(petRepo, petsusers.NewDirectory(userRepo))

	notifRepo := buildNotificationRepository(db)
	notifService := notifapp.NewService(notifRepo, notiflogging.NewDispatcher(logger))

	bookingRepo := buildBookingRepository(db)
	bookingService := bookingsobs.New(
		bookingsapp.NewService(
			bookingRepo,
			bookingsapp.WithPartyDirectory(bookingsusers.NewDirectory(userRepo)),
			bookingsapp.WithNotifier(notifService),
		),
		bookingsobs.WithLogger(logger),
		bookingsobs.WithTracer(instruments.Tracer("internal.bookings.application")),
		bookingsobs.WithMeter(instruments.Meter("internal.bookings.application")),
	)

	paymentRepo := buildPaymentRepository(db)
	paymentService := paymentsapp.NewService(
		paymentRepo,
		buildPaymentGateway(logger),
		paymentsapp.WithBookingDirectory(paymentsbookings.NewDirectory(bookingRepo)),
		paymentsapp.WithNotifier(notifService, sitterPayeeResolver(bookingRepo)),
	)
	var paymentWorkflows paymentsports.WorkflowOrchestrator = paymentsworkflows.NewInlinePaymentWorkflows(paymentService)
	if temporalClient, err := connectTemporalClient(instruments); err != nil {
		logger.Warn("Temporal workflows unavailable, capturing payments inline", slog.String("error", err.Error()))
	} else {
		defer temporalClient.Close()
		paymentWorkflows = paymentsworkflows.NewTemporalPaymentWorkflows(temporalClient)
		logger.Info("Temporal workflows enabled", slog.String("namespace", envOrDefault("TEMPORAL_NAMESPACE", client.DefaultNamespace)))
	}

	reviewRepo := buildReviewRepository(db)
	reviewService := reviewsapp.NewService(
		reviewRepo,
		reviewsapp.WithBookingDirectory(reviewsbookings.NewDirectory(bookingRepo)),
		reviewsapp.WithRatingRecorder(reviewsusers.NewRecorder(userService)),
		reviewsapp.WithNotifier(notifService),
	)

	analyticsService := analyticsobs.New(
		analyticsapp.NewService(bookingRepo, paymentRepo, reviewRepo, petRepo, userRepo),
		analyticsobs.WithLogger(logger),
		analyticsobs.WithTracer(instruments.Tracer("internal.analytics.application")),
		analyticsobs.WithMeter(instruments.Meter("internal.analytics.application")),
	)

	handlers := pawsitserver.ApiHandleFunctions{
		UserAPI:         pawsitserver.NewUserAPI(userService),
		PetAPI:          pawsitserver.NewPetAPI(petService),
		BookingAPI:      pawsitserver.NewBookingAPI(bookingService),
		PaymentAPI:      pawsitserver.NewPaymentAPI(paymentService, paymentWorkflows),
		ReviewAPI:       pawsitserver.NewReviewAPI(reviewService),
		NotificationAPI: pawsitserver.NewNotificationAPI(notifService),
		AnalyticsAPI:    pawsitserver.NewAnalyticsAPI(analyticsService),
	}

	router := pawsitserver.NewRouter(handlers)
	router.Use(otelgin.Middleware(serviceName))
	addr := ":8080"
	if v := os.Getenv("PORT"); v != "" {
		addr = ":" + v
	}
	logger.Info("Pawsit API listening", slog.String("addr", addr))
	if err := router.Run(addr); err != nil {
		logger.Error("Pawsit API server exited", slog.String("addr", addr), slog.String("error", err.Error()))
		return err
	}
	return nil
}

func buildUserStorage(db *gorm.DB) (usersports.Repository, usersports.SessionStore) {
	if db == nil {
		return usersmemory.NewRepository(), usersmemory.NewSessionStore()
	}
	return userspostgres.NewRepository(db), userspostgres.NewSessionStore(db, userspostgres.DefaultSessionTTL)
}

func buildPetRepository(db *gorm.DB) petsports.Repository {
	if db == nil {
		return petsmemory.NewRepository()
	}
	return petspostgres.NewRepository(db)
}

func buildBookingRepository(db *gorm.DB) bookingsports.Repository {
	if db == nil {
		return bookingsmemory.NewRepository()
	}
	return bookingspostgres.NewRepository(db)
}

func buildPaymentRepository(db *gorm.DB) paymentsports.Repository {
	if db == nil {
		return paymentsmemory.NewRepository()
	}
	return paymentspostgres.NewRepository(db)
}

func buildReviewRepository(db *gorm.DB) reviewsports.Repository {
	if db == nil {
		return reviewsmemory.NewRepository()
	}
	return reviewspostgres.NewRepository(db)
}

func buildNotificationRepository(db *gorm.DB) notifports.Repository {
	if db == nil {
		return notifmemory.NewRepository()
	}
	return notifpostgres.NewRepository(db)
}

func buildPaymentGateway(logger *slog.Logger) paymentsports.Gateway {
	baseURL := os.Getenv("PAYMENT_GATEWAY_URL")
	if baseURL == "" {
		logger.Warn("PAYMENT_GATEWAY_URL not set, using in-memory payment gateway")
		return paymentsmemory.NewGateway()
	}
	gateway, err := paygate.NewClient(baseURL, &http.Client{Timeout: 5 * time.Second})
	if err != nil {
		logger.Warn("failed to configure payment gateway client, using in-memory gateway", slog.String("error", err.Error()))
		return paymentsmemory.NewGateway()
	}
	logger.Info("payment gateway configured", slog.String("url", baseURL))
	return gateway
}

// sitterPayeeResolver routes payment notifications to the sitter on the
// booking being paid.
func sitterPayeeResolver(bookings bookingsports.Repository) paymentsapp.PayeeResolver {
	return func(ctx context.Context, bookingID int64) (int64, error) {
		booking, err := bookings.GetByID(ctx, bookingID)
		if err != nil {
			return 0, err
		}
		return booking.Entity.SitterID, nil
	}
}

func connectTemporalClient(instruments *platformobservability.Instruments) (client.Client, error) {
	if os.Getenv("TEMPORAL_DISABLED") == "1" {
		return nil, errors.New("temporal disabled via TEMPORAL_DISABLED env")
	}
	address := os.Getenv("TEMPORAL_ADDRESS")
	if address == "" {
		address = client.DefaultHostPort
	}
	tracerOptions := temporalotel.TracerOptions{}
	if instruments != nil {
		tracerOptions.Tracer = instruments.Tracer("temporal-client")
	}
	tracingInterceptor, err := temporalotel.NewTracingInterceptor(tracerOptions)
	if err != nil {
		return nil, err
	}
	logger := workerlog.NewStructuredLogger(effectiveLogger(instruments))
	options := client.Options{
		HostPort:  address,
		Namespace: envOrDefault("TEMPORAL_NAMESPACE", client.DefaultNamespace),
		Logger:    logger,
	}
	options.Interceptors = append(options.Interceptors, tracingInterceptor)
	return client.Dial(options)
}

func effectiveLogger(instruments *platformobservability.Instruments) *slog.Logger {
	if instruments != nil && instruments.Logger != nil {
		return instruments.Logger
	}
	return slog.New(slog.NewTextHandler(os.Stdout, nil))
}

func envOrDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
