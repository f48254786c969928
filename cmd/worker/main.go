package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"time"

	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/client"
	temporalotel "go.temporal.io/sdk/contrib/opentelemetry"
	workerlog "go.temporal.io/sdk/log"
	"go.temporal.io/sdk/worker"
	"go.temporal.io/sdk/workflow"
	"gorm.io/gorm"

	"github.com/pawsit/pawsit-server/internal/clients/http/paygate"
	paymentsbookings "github.com/pawsit/pawsit-server/internal/domains/payments/adapters/bookings"
	paymentsmemory "github.com/pawsit/pawsit-server/internal/domains/payments/adapters/memory"
	paymentspostgres "github.com/pawsit/pawsit-server/internal/domains/payments/adapters/persistence/postgres"
	paymentsapp "github.com/pawsit/pawsit-server/internal/domains/payments/application"
	paymentsports "github.com/pawsit/pawsit-server/internal/domains/payments/ports"

	bookingsmemory "github.com/pawsit/pawsit-server/internal/domains/bookings/adapters/memory"
	bookingspostgres "github.com/pawsit/pawsit-server/internal/domains/bookings/adapters/persistence/postgres"
	bookingsports "github.com/pawsit/pawsit-server/internal/domains/bookings/ports"

	platformobservability "github.com/pawsit/pawsit-server/internal/platform/observability"
	platformpostgres "github.com/pawsit/pawsit-server/internal/platform/postgres"
	paymentactivities "github.com/pawsit/pawsit-server/internal/platform/temporal/activities/payments"
	paymentworkflows "github.com/pawsit/pawsit-server/internal/platform/temporal/workflows/payments"
)

func main() {
	ctx := context.Background()
	const serviceName = "pawsit-worker"
	instruments, shutdown, err := platformobservability.Init(ctx, serviceName)
	if err != nil {
		log.Fatalf("failed to initialize observability: %v", err)
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

	paymentService := paymentsapp.NewService(
		buildPaymentRepository(db),
		buildPaymentGateway(logger),
		paymentsapp.WithBookingDirectory(paymentsbookings.NewDirectory(buildBookingRepository(db))),
	)
	paymentActivities := paymentactivities.NewActivities(paymentService)

	tracerOptions := temporalotel.TracerOptions{Tracer: instruments.Tracer("temporal-worker")}
	tracingInterceptor, err := temporalotel.NewTracingInterceptor(tracerOptions)
	if err != nil {
		logger.Error("failed to configure Temporal tracing interceptor", slog.String("error", err.Error()))
		os.Exit(1)
	}
	clientOptions := client.Options{
		HostPort:  envOrDefault("TEMPORAL_ADDRESS", client.DefaultHostPort),
		Namespace: envOrDefault("TEMPORAL_NAMESPACE", client.DefaultNamespace),
		Logger:    workerlog.NewStructuredLogger(logger),
	}
	clientOptions.Interceptors = append(clientOptions.Interceptors, tracingInterceptor)
	temporalClient, err := client.Dial(clientOptions)
	if err != nil {
		logger.Error("failed to create Temporal client", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer temporalClient.Close()

	w := worker.New(temporalClient, paymentworkflows.PaymentCaptureTaskQueue, worker.Options{})
	w.RegisterWorkflowWithOptions(paymentworkflows.PaymentCaptureWorkflow, workflow.RegisterOptions{Name: paymentworkflows.PaymentCaptureWorkflowName})
	w.RegisterActivityWithOptions(paymentActivities.CapturePayment, activity.RegisterOptions{Name: paymentactivities.CapturePaymentActivityName})

	logger.Info("worker listening", slog.String("taskQueue", paymentworkflows.PaymentCaptureTaskQueue), slog.String("namespace", clientOptions.Namespace))
	if err := w.Run(worker.InterruptCh()); err != nil {
		logger.Error("Temporal worker exited with error", slog.String("error", err.Error()))
		return
	}
	logger.Info("Temporal worker stopped")
}

func buildPaymentRepository(db *gorm.DB) paymentsports.Repository {
	if db == nil {
		return paymentsmemory.NewRepository()
	}
	return paymentspostgres.NewRepository(db)
}

func buildBookingRepository(db *gorm.DB) bookingsports.Repository {
	if db == nil {
		return bookingsmemory.NewRepository()
	}
	return bookingspostgres.NewRepository(db)
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

func envOrDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
