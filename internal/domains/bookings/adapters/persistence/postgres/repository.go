package postgres

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/pawsit/pawsit-server/internal/domains/bookings/domain"
	"github.com/pawsit/pawsit-server/internal/domains/bookings/ports"
	"github.com/pawsit/pawsit-server/internal/shared/projection"
)

var _ ports.Repository = (*Repository)(nil)

// Repository persists bookings in PostgreSQL using GORM-mapped columns.
type Repository struct {
	db *gorm.DB
}

// NewRepository wires a PostgreSQL-backed repository. The caller owns the DB lifecycle.
func NewRepository(db *gorm.DB) *Repository {
	repo := &Repository{db: db}
	if db != nil {
		if err := db.AutoMigrate(&bookingRecord{}); err != nil {
			log.Printf("postgres booking repository migration failed: %v", err)
		}
	}
	return repo
}

type bookingRecord struct {
	ID          int64         `gorm:"primaryKey;column:id"`
	OwnerID     int64         `gorm:"column:owner_id;index"`
	SitterID    int64         `gorm:"column:sitter_id;index"`
	PetIDs      pq.Int64Array `gorm:"column:pet_ids;type:bigint[]"`
	Status      string        `gorm:"column:status;type:varchar(16);index"`
	TotalAmount float64       `gorm:"column:total_amount"`
	StartDate   time.Time     `gorm:"column:start_date"`
	EndDate     time.Time     `gorm:"column:end_date"`
	CreatedAt   time.Time     `gorm:"column:created_at;index"`
	UpdatedAt   time.Time     `gorm:"column:updated_at"`
}

func (bookingRecord) TableName() string { return "bookings" }

func newBookingRecord(b *domain.Booking) bookingRecord {
	return bookingRecord{
		ID:          b.ID,
		OwnerID:     b.OwnerID,
		SitterID:    b.SitterID,
		PetIDs:      pq.Int64Array(b.PetIDs),
		Status:      string(b.Status),
		TotalAmount: b.TotalAmount,
		StartDate:   b.StartDate,
		EndDate:     b.EndDate,
	}
}

// Save inserts or updates a booking aggregate. New bookings receive a
// database-generated identifier.
func (r *Repository) Save(ctx context.Context, booking *domain.Booking) (*projection.Projection[*domain.Booking], error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if booking == nil {
		return nil, errors.New("cannot save nil booking")
	}
	record := newBookingRecord(booking)
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "id"}},
			DoUpdates: clause.Assignments(map[string]any{
				"owner_id":     record.OwnerID,
				"sitter_id":    record.SitterID,
				"pet_ids":      record.PetIDs,
				"status":       record.Status,
				"total_amount": record.TotalAmount,
				"start_date":   record.StartDate,
				"end_date":     record.EndDate,
				"updated_at":   gorm.Expr("NOW()"),
			}),
		}).Create(&record).Error
	if err != nil {
		return nil, err
	}
	booking.ID = record.ID
	return r.GetByID(ctx, record.ID)
}

// GetByID fetches a booking by identifier.
func (r *Repository) GetByID(ctx context.Context, id int64) (*projection.Projection[*domain.Booking], error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record bookingRecord
	if err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	return toProjection(&record), nil
}

// FindByOwner returns the bookings placed by one owner.
func (r *Repository) FindByOwner(ctx context.Context, ownerID int64) ([]*projection.Projection[*domain.Booking], error) {
	return r.find(ctx, "owner_id = ?", ownerID)
}

// FindBySitter returns the bookings assigned to one sitter.
func (r *Repository) FindBySitter(ctx context.Context, sitterID int64) ([]*projection.Projection[*domain.Booking], error) {
	return r.find(ctx, "sitter_id = ?", sitterID)
}

// FindByStatus returns bookings matching any of the provided statuses.
func (r *Repository) FindByStatus(ctx context.Context, statuses []domain.Status) ([]*projection.Projection[*domain.Booking], error) {
	values := make([]string, 0, len(statuses))
	for _, status := range statuses {
		values = append(values, string(status))
	}
	return r.find(ctx, "status IN ?", values)
}

// ListWithin returns bookings created inside the half-open window [From, To).
func (r *Repository) ListWithin(ctx context.Context, window ports.Window) ([]*projection.Projection[*domain.Booking], error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	query := r.db.WithContext(ctx)
	if window.From != nil {
		query = query.Where("created_at >= ?", *window.From)
	}
	if window.To != nil {
		query = query.Where("created_at < ?", *window.To)
	}
	var records []bookingRecord
	if err := query.Find(&records).Error; err != nil {
		return nil, err
	}
	return recordsToProjections(records), nil
}

// List returns every persisted booking.
func (r *Repository) List(ctx context.Context) ([]*projection.Projection[*domain.Booking], error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var records []bookingRecord
	if err := r.db.WithContext(ctx).Find(&records).Error; err != nil {
		return nil, err
	}
	return recordsToProjections(records), nil
}

// Delete removes a booking by identifier.
func (r *Repository) Delete(ctx context.Context, id int64) error {
	if err := r.ensureDB(); err != nil {
		return err
	}
	result := r.db.WithContext(ctx).Delete(&bookingRecord{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ports.ErrNotFound
	}
	return nil
}

func (r *Repository) find(ctx context.Context, condition string, args ...any) ([]*projection.Projection[*domain.Booking], error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var records []bookingRecord
	if err := r.db.WithContext(ctx).Where(condition, args...).Find(&records).Error; err != nil {
		return nil, err
	}
	return recordsToProjections(records), nil
}

func recordsToProjections(records []bookingRecord) []*projection.Projection[*domain.Booking] {
	list := make([]*projection.Projection[*domain.Booking], 0, len(records))
	for i := range records {
		list = append(list, toProjection(&records[i]))
	}
	return list
}

func toProjection(record *bookingRecord) *projection.Projection[*domain.Booking] {
	if record == nil {
		return nil
	}
	booking := &domain.Booking{
		ID:          record.ID,
		OwnerID:     record.OwnerID,
		SitterID:    record.SitterID,
		PetIDs:      []int64(record.PetIDs),
		Status:      domain.Status(record.Status),
		TotalAmount: record.TotalAmount,
		StartDate:   record.StartDate,
		EndDate:     record.EndDate,
		CreatedAt:   record.CreatedAt,
	}
	return &projection.Projection[*domain.Booking]{
		Entity:   booking,
		Metadata: projection.Metadata{CreatedAt: record.CreatedAt, UpdatedAt: record.UpdatedAt},
	}
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres booking repository not configured")
	}
	return nil
}
