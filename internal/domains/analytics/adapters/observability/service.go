package observability

import (
	"context"
	"io"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	"github.com/pawsit/pawsit-server/internal/domains/analytics/domain"
	"github.com/pawsit/pawsit-server/internal/domains/analytics/ports"
	bookingdomain "github.com/pawsit/pawsit-server/internal/domains/bookings/domain"
)

const tracerName = "github.com/pawsit/pawsit-server/internal/domains/analytics/adapters/observability/service"

// Service decorates the analytics port with tracing, logging, and metrics.
type Service struct {
	inner   ports.Service
	tracer  trace.Tracer
	logger  *slog.Logger
	metrics serviceMetrics
}

type Option func(*Service)

// WithLogger injects a slog logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithTracer injects a tracer implementation.
func WithTracer(tr trace.Tracer) Option {
	return func(s *Service) {
		s.tracer = tr
	}
}

// WithMeter injects the meter used to create service metrics instruments.
func WithMeter(m metric.Meter) Option {
	return func(s *Service) {
		s.metrics = newServiceMetrics(m)
	}
}

// New wires a decorator around the core service.
func New(inner ports.Service, opts ...Option) ports.Service {
	s := &Service{
		inner:   inner,
		tracer:  nooptrace.NewTracerProvider().Tracer(tracerName),
		logger:  defaultLogger(),
		metrics: newServiceMetrics(nil),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	if s.tracer == nil {
		s.tracer = nooptrace.NewTracerProvider().Tracer(tracerName)
	}
	if s.logger == nil {
		s.logger = defaultLogger()
	}
	return s
}

// DashboardSummary computes the dashboard rollup with instrumentation.
func (s *Service) DashboardSummary(ctx context.Context, window ports.Window) (*domain.Summary, error) {
	ctx, span := s.startSpan(ctx, "Service.DashboardSummary", windowAttributes(window)...)
	defer span.End()

	result, err := s.inner.DashboardSummary(ctx, window)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to compute dashboard summary")
	}
	s.metrics.recordQuery(ctx, "dashboard")
	if result != nil {
		span.SetAttributes(attribute.Int("analytics.bookings", result.Bookings))
		s.logInfo(ctx, "dashboard summary computed",
			slog.Int("bookings", result.Bookings),
			slog.Float64("completion_rate", result.CompletionRate),
		)
	}
	return result, nil
}

// BookingStatusHistogram buckets bookings by lifecycle state.
func (s *Service) BookingStatusHistogram(ctx context.Context, window ports.Window) (map[bookingdomain.Status]int, error) {
	ctx, span := s.startSpan(ctx, "Service.BookingStatusHistogram", windowAttributes(window)...)
	defer span.End()

	result, err := s.inner.BookingStatusHistogram(ctx, window)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to compute status histogram")
	}
	s.metrics.recordQuery(ctx, "histogram")
	return result, nil
}

// UserRating averages the ratings a user has received.
func (s *Service) UserRating(ctx context.Context, userID int64) (domain.RatingSummary, error) {
	ctx, span := s.startSpan(ctx, "Service.UserRating", attribute.Int64("user.id", userID))
	defer span.End()

	result, err := s.inner.UserRating(ctx, userID)
	if err != nil {
		return domain.RatingSummary{}, s.handleError(ctx, span, err, "failed to compute user rating", slog.Int64("user_id", userID))
	}
	s.metrics.recordQuery(ctx, "rating")
	span.SetAttributes(attribute.Int("analytics.reviews", result.TotalReviews))
	return result, nil
}

// TopSitters builds the sitter leaderboard.
func (s *Service) TopSitters(ctx context.Context, window ports.Window, limit int) ([]domain.SitterStat, error) {
	attrs := append(windowAttributes(window), attribute.Int("analytics.limit", limit))
	ctx, span := s.startSpan(ctx, "Service.TopSitters", attrs...)
	defer span.End()

	result, err := s.inner.TopSitters(ctx, window, limit)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to rank sitters")
	}
	s.metrics.recordQuery(ctx, "leaderboard")
	span.SetAttributes(attribute.Int("analytics.result.count", len(result)))
	s.logInfo(ctx, "sitter leaderboard computed", slog.Int("count", len(result)))
	return result, nil
}

// PetBreakdown groups the registered pet population by headline type.
func (s *Service) PetBreakdown(ctx context.Context) (domain.PetBreakdown, error) {
	ctx, span := s.startSpan(ctx, "Service.PetBreakdown")
	defer span.End()

	result, err := s.inner.PetBreakdown(ctx)
	if err != nil {
		return domain.PetBreakdown{}, s.handleError(ctx, span, err, "failed to compute pet breakdown")
	}
	s.metrics.recordQuery(ctx, "pets")
	span.SetAttributes(attribute.Int("analytics.pets", result.Total))
	return result, nil
}

func windowAttributes(window ports.Window) []attribute.KeyValue {
	var attrs []attribute.KeyValue
	if window.From != nil {
		attrs = append(attrs, attribute.String("analytics.window.from", window.From.String()))
	}
	if window.To != nil {
		attrs = append(attrs, attribute.String("analytics.window.to", window.To.String()))
	}
	return attrs
}

func (s *Service) startSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	tracer := s.tracer
	if tracer == nil {
		tracer = nooptrace.NewTracerProvider().Tracer(tracerName)
	}
	return tracer.Start(ctx, name, trace.WithAttributes(attrs...))
}

func (s *Service) logInfo(ctx context.Context, msg string, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	s.logger.LogAttrs(ctx, slog.LevelInfo, msg, attrs...)
}

func (s *Service) logError(ctx context.Context, msg string, err error, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	if err != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
	}
	s.logger.LogAttrs(ctx, slog.LevelError, msg, attrs...)
}

func (s *Service) handleError(ctx context.Context, span trace.Span, err error, msg string, attrs ...slog.Attr) error {
	if err == nil {
		return nil
	}
	if span != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	s.logError(ctx, msg, err, attrs...)
	return err
}

func defaultLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type serviceMetrics struct {
	queries metric.Int64Counter
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	queries, _ := m.Int64Counter("analytics.service.queries", metric.WithDescription("Number of analytics queries served"))
	return serviceMetrics{queries: queries}
}

func (m serviceMetrics) recordQuery(ctx context.Context, kind string) {
	if m.queries == nil {
		return
	}
	m.queries.Add(ctx, 1, metric.WithAttributes(attribute.String("analytics.query", kind)))
}

var _ ports.Service = (*Service)(nil)
