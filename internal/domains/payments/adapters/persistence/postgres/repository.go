package postgres

import (
	"context"
	"errors"
	"log"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/pawsit/pawsit-server/internal/domains/payments/domain"
	"github.com/pawsit/pawsit-server/internal/domains/payments/ports"
	"github.com/pawsit/pawsit-server/internal/shared/projection"
)

var _ ports.Repository = (*Repository)(nil)

// Repository persists payments in PostgreSQL using GORM-mapped columns. The
// unique index on booking_id makes duplicate payments an atomic insert-or-fail.
type Repository struct {
	db *gorm.DB
}

// NewRepository wires a PostgreSQL-backed repository. The caller owns the DB lifecycle.
func NewRepository(db *gorm.DB) *Repository {
	repo := &Repository{db: db}
	if db != nil {
		if err := db.AutoMigrate(&paymentRecord{}); err != nil {
			log.Printf("postgres payment repository migration failed: %v", err)
		}
	}
	return repo
}

type paymentRecord struct {
	ID             int64     `gorm:"primaryKey;column:id"`
	BookingID      int64     `gorm:"column:booking_id;uniqueIndex"`
	Amount         float64   `gorm:"column:amount"`
	Status         string    `gorm:"column:status;type:varchar(16);index"`
	TransactionRef string    `gorm:"column:transaction_ref"`
	CreatedAt      time.Time `gorm:"column:created_at;index"`
	UpdatedAt      time.Time `gorm:"column:updated_at"`
}

func (paymentRecord) TableName() string { return "payments" }

func newPaymentRecord(p *domain.Payment) paymentRecord {
	return paymentRecord{
		ID:             p.ID,
		BookingID:      p.BookingID,
		Amount:         p.Amount,
		Status:         string(p.Status),
		TransactionRef: p.TransactionRef,
	}
}

// Save inserts or updates a payment. A second payment for the same booking
// surfaces as ports.ErrDuplicateBooking via the unique index.
func (r *Repository) Save(ctx context.Context, payment *domain.Payment) (*projection.Projection[*domain.Payment], error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if payment == nil {
		return nil, errors.New("cannot save nil payment")
	}
	record := newPaymentRecord(payment)
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "id"}},
			DoUpdates: clause.Assignments(map[string]any{
				"booking_id":      record.BookingID,
				"amount":          record.Amount,
				"status":          record.Status,
				"transaction_ref": record.TransactionRef,
				"updated_at":      gorm.Expr("NOW()"),
			}),
		}).Create(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ports.ErrDuplicateBooking
		}
		return nil, err
	}
	payment.ID = record.ID
	return r.GetByID(ctx, record.ID)
}

// GetByID fetches a payment by identifier.
func (r *Repository) GetByID(ctx context.Context, id int64) (*projection.Projection[*domain.Payment], error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record paymentRecord
	if err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	return toProjection(&record), nil
}

// GetByBooking fetches the payment attached to one booking.
func (r *Repository) GetByBooking(ctx context.Context, bookingID int64) (*projection.Projection[*domain.Payment], error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record paymentRecord
	if err := r.db.WithContext(ctx).First(&record, "booking_id = ?", bookingID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	return toProjection(&record), nil
}

// ListWithin returns payments created inside the half-open window [From, To).
func (r *Repository) ListWithin(ctx context.Context, window ports.Window) ([]*projection.Projection[*domain.Payment], error) {
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
	var records []paymentRecord
	if err := query.Find(&records).Error; err != nil {
		return nil, err
	}
	return recordsToProjections(records), nil
}

// List returns every persisted payment.
func (r *Repository) List(ctx context.Context) ([]*projection.Projection[*domain.Payment], error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var records []paymentRecord
	if err := r.db.WithContext(ctx).Find(&records).Error; err != nil {
		return nil, err
	}
	return recordsToProjections(records), nil
}

// Delete removes a payment by identifier.
func (r *Repository) Delete(ctx context.Context, id int64) error {
	if err := r.ensureDB(); err != nil {
		return err
	}
	result := r.db.WithContext(ctx).Delete(&paymentRecord{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ports.ErrNotFound
	}
	return nil
}

func recordsToProjections(records []paymentRecord) []*projection.Projection[*domain.Payment] {
	list := make([]*projection.Projection[*domain.Payment], 0, len(records))
	for i := range records {
		list = append(list, toProjection(&records[i]))
	}
	return list
}

func toProjection(record *paymentRecord) *projection.Projection[*domain.Payment] {
	if record == nil {
		return nil
	}
	payment := &domain.Payment{
		ID:             record.ID,
		BookingID:      record.BookingID,
		Amount:         record.Amount,
		Status:         domain.Status(record.Status),
		TransactionRef: record.TransactionRef,
		CreatedAt:      record.CreatedAt,
	}
	return &projection.Projection[*domain.Payment]{
		Entity:   payment,
		Metadata: projection.Metadata{CreatedAt: record.CreatedAt, UpdatedAt: record.UpdatedAt},
	}
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres payment repository not configured")
	}
	return nil
}
