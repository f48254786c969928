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

	"github.com/pawsit/pawsit-server/internal/domains/bookings/domain"
	"github.com/pawsit/pawsit-server/internal/domains/bookings/ports"
	"github.com/pawsit/pawsit-server/internal/shared/projection"
)

const tracerName = "github.com/pawsit/pawsit-server/internal/domains/bookings/adapters/observability/service"

// Service decorates a bookings application port with tracing, logging, and metrics.
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

// Create persists a new booking with instrumentation.
func (s *Service) Create(ctx context.Context, booking *domain.Booking) (*projection.Projection[*domain.Booking], error) {
	attrs := []attribute.KeyValue{}
	if booking != nil {
		attrs = append(attrs,
			attribute.Int64("booking.owner_id", booking.OwnerID),
			attribute.Int64("booking.sitter_id", booking.SitterID),
		)
	}
	ctx, span := s.startSpan(ctx, "Service.Create", attrs...)
	defer span.End()

	s.logInfo(ctx, "creating booking")
	result, err := s.inner.Create(ctx, booking)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to create booking")
	}
	if result != nil && result.Entity != nil {
		s.metrics.recordCreated(ctx, result.Entity.Status)
		s.logInfo(ctx, "booking created", slog.Int64("booking.id", result.Entity.ID), slog.String("status", string(result.Entity.Status)))
	}
	return result, nil
}

// GetByID loads a single booking aggregate.
func (s *Service) GetByID(ctx context.Context, id int64) (*projection.Projection[*domain.Booking], error) {
	ctx, span := s.startSpan(ctx, "Service.GetByID", attribute.Int64("booking.id", id))
	defer span.End()

	s.logInfo(ctx, "loading booking", slog.Int64("booking.id", id))
	result, err := s.inner.GetByID(ctx, id)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to load booking", slog.Int64("booking.id", id))
	}
	return result, nil
}

// Update overrides an existing booking with new state.
func (s *Service) Update(ctx context.Context, id int64, updated *domain.Booking) (*projection.Projection[*domain.Booking], error) {
	ctx, span := s.startSpan(ctx, "Service.Update", attribute.Int64("booking.id", id))
	defer span.End()

	s.logInfo(ctx, "updating booking", slog.Int64("booking.id", id))
	result, err := s.inner.Update(ctx, id, updated)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to update booking", slog.Int64("booking.id", id))
	}
	if result != nil && result.Entity != nil {
		s.metrics.recordUpdated(ctx, result.Entity.Status)
		s.logInfo(ctx, "booking updated", slog.Int64("booking.id", result.Entity.ID))
	}
	return result, nil
}

// ChangeStatus advances the booking lifecycle.
func (s *Service) ChangeStatus(ctx context.Context, id int64, next domain.Status) (*projection.Projection[*domain.Booking], error) {
	ctx, span := s.startSpan(ctx, "Service.ChangeStatus",
		attribute.Int64("booking.id", id),
		attribute.String("booking.status.requested", string(next)),
	)
	defer span.End()

	s.logInfo(ctx, "changing booking status", slog.Int64("booking.id", id), slog.String("status", string(next)))
	result, err := s.inner.ChangeStatus(ctx, id, next)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to change booking status", slog.Int64("booking.id", id))
	}
	if result != nil && result.Entity != nil {
		s.metrics.recordTransition(ctx, result.Entity.Status)
		s.logInfo(ctx, "booking status changed", slog.Int64("booking.id", result.Entity.ID), slog.String("status", string(result.Entity.Status)))
	}
	return result, nil
}

// Delete removes a booking.
func (s *Service) Delete(ctx context.Context, id int64) error {
	ctx, span := s.startSpan(ctx, "Service.Delete", attribute.Int64("booking.id", id))
	defer span.End()

	s.logInfo(ctx, "deleting booking", slog.Int64("booking.id", id))
	if err := s.inner.Delete(ctx, id); err != nil {
		return s.handleError(ctx, span, err, "failed to delete booking", slog.Int64("booking.id", id))
	}
	s.metrics.recordDeleted(ctx)
	s.logInfo(ctx, "booking deleted", slog.Int64("booking.id", id))
	return nil
}

// FindByOwner returns the bookings placed by one owner.
func (s *Service) FindByOwner(ctx context.Context, ownerID int64) ([]*projection.Projection[*domain.Booking], error) {
	ctx, span := s.startSpan(ctx, "Service.FindByOwner", attribute.Int64("booking.owner_id", ownerID))
	defer span.End()

	result, err := s.inner.FindByOwner(ctx, ownerID)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to find bookings by owner", slog.Int64("owner_id", ownerID))
	}
	span.SetAttributes(attribute.Int("booking.result.count", len(result)))
	return result, nil
}

// FindBySitter returns the bookings assigned to one sitter.
func (s *Service) FindBySitter(ctx context.Context, sitterID int64) ([]*projection.Projection[*domain.Booking], error) {
	ctx, span := s.startSpan(ctx, "Service.FindBySitter", attribute.Int64("booking.sitter_id", sitterID))
	defer span.End()

	result, err := s.inner.FindBySitter(ctx, sitterID)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to find bookings by sitter", slog.Int64("sitter_id", sitterID))
	}
	span.SetAttributes(attribute.Int("booking.result.count", len(result)))
	return result, nil
}

// FindByStatus searches bookings matching any of the provided statuses.
func (s *Service) FindByStatus(ctx context.Context, statuses []domain.Status) ([]*projection.Projection[*domain.Booking], error) {
	requested := make([]string, 0, len(statuses))
	for _, status := range statuses {
		requested = append(requested, string(status))
	}
	ctx, span := s.startSpan(ctx, "Service.FindByStatus", attribute.StringSlice("booking.statuses.requested", requested))
	defer span.End()

	result, err := s.inner.FindByStatus(ctx, statuses)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to find bookings by status", slog.Any("statuses", requested))
	}
	span.SetAttributes(attribute.Int("booking.result.count", len(result)))
	return result, nil
}

// List exposes all bookings for reporting or admin use cases.
func (s *Service) List(ctx context.Context) ([]*projection.Projection[*domain.Booking], error) {
	ctx, span := s.startSpan(ctx, "Service.List")
	defer span.End()

	result, err := s.inner.List(ctx)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list bookings")
	}
	span.SetAttributes(attribute.Int("booking.result.count", len(result)))
	return result, nil
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
	bookingsCreated    metric.Int64Counter
	bookingsUpdated    metric.Int64Counter
	bookingsDeleted    metric.Int64Counter
	bookingTransitions metric.Int64Counter
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	created, _ := m.Int64Counter("bookings.service.created", metric.WithDescription("Number of bookings created"))
	updated, _ := m.Int64Counter("bookings.service.updated", metric.WithDescription("Number of bookings updated"))
	deleted, _ := m.Int64Counter("bookings.service.deleted", metric.WithDescription("Number of bookings deleted"))
	transitions, _ := m.Int64Counter("bookings.service.transitions", metric.WithDescription("Number of booking status transitions"))
	return serviceMetrics{
		bookingsCreated:    created,
		bookingsUpdated:    updated,
		bookingsDeleted:    deleted,
		bookingTransitions: transitions,
	}
}

func (m serviceMetrics) recordCreated(ctx context.Context, status domain.Status) {
	addCounter(ctx, m.bookingsCreated, 1, attribute.String("booking.status", string(status)))
}

func (m serviceMetrics) recordUpdated(ctx context.Context, status domain.Status) {
	addCounter(ctx, m.bookingsUpdated, 1, attribute.String("booking.status", string(status)))
}

func (m serviceMetrics) recordDeleted(ctx context.Context) {
	addCounter(ctx, m.bookingsDeleted, 1)
}

func (m serviceMetrics) recordTransition(ctx context.Context, status domain.Status) {
	addCounter(ctx, m.bookingTransitions, 1, attribute.String("booking.status", string(status)))
}

func addCounter(ctx context.Context, counter metric.Int64Counter, value int64, attrs ...attribute.KeyValue) {
	if counter == nil {
		return
	}
	counter.Add(ctx, value, metric.WithAttributes(attrs...))
}

var _ ports.Service = (*Service)(nil)
