package postgres

import (
	"context"
	"errors"
	"log"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/pawsit/pawsit-server/internal/domains/reviews/domain"
	"github.com/pawsit/pawsit-server/internal/domains/reviews/ports"
	"github.com/pawsit/pawsit-server/internal/shared/projection"
)

var _ ports.Repository = (*Repository)(nil)

// Repository persists reviews in PostgreSQL using GORM-mapped columns. The
// composite unique index on (booking_id, reviewer_id) makes duplicate reviews
// an atomic insert-or-fail.
type Repository struct {
	db *gorm.DB
}

// NewRepository wires a PostgreSQL-backed repository. The caller owns the DB lifecycle.
func NewRepository(db *gorm.DB) *Repository {
	repo := &Repository{db: db}
	if db != nil {
		if err := db.AutoMigrate(&reviewRecord{}); err != nil {
			log.Printf("postgres review repository migration failed: %v", err)
		}
	}
	return repo
}

type reviewRecord struct {
	ID             int64     `gorm:"primaryKey;column:id"`
	BookingID      int64     `gorm:"column:booking_id;uniqueIndex:idx_reviews_booking_reviewer"`
	ReviewerID     int64     `gorm:"column:reviewer_id;uniqueIndex:idx_reviews_booking_reviewer"`
	ReviewedUserID int64     `gorm:"column:reviewed_user_id;index"`
	Rating         int       `gorm:"column:rating"`
	Comment        string    `gorm:"column:comment"`
	CreatedAt      time.Time `gorm:"column:created_at"`
	UpdatedAt      time.Time `gorm:"column:updated_at"`
}

func (reviewRecord) TableName() string { return "reviews" }

func newReviewRecord(rev *domain.Review) reviewRecord {
	return reviewRecord{
		ID:             rev.ID,
		BookingID:      rev.BookingID,
		ReviewerID:     rev.ReviewerID,
		ReviewedUserID: rev.ReviewedUserID,
		Rating:         rev.Rating,
		Comment:        rev.Comment,
	}
}

// Save inserts or updates a review. A duplicate (booking, reviewer) pair
// surfaces as ports.ErrDuplicateReview via the composite unique index.
func (r *Repository) Save(ctx context.Context, review *domain.Review) (*projection.Projection[*domain.Review], error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if review == nil {
		return nil, errors.New("cannot save nil review")
	}
	record := newReviewRecord(review)
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "id"}},
			DoUpdates: clause.Assignments(map[string]any{
				"rating":     record.Rating,
				"comment":    record.Comment,
				"updated_at": gorm.Expr("NOW()"),
			}),
		}).Create(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ports.ErrDuplicateReview
		}
		return nil, err
	}
	review.ID = record.ID
	return r.GetByID(ctx, record.ID)
}

// GetByID fetches a review by identifier.
func (r *Repository) GetByID(ctx context.Context, id int64) (*projection.Projection[*domain.Review], error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record reviewRecord
	if err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	return toProjection(&record), nil
}

// FindByBooking returns the reviews attached to one booking.
func (r *Repository) FindByBooking(ctx context.Context, bookingID int64) ([]*projection.Projection[*domain.Review], error) {
	return r.find(ctx, "booking_id = ?", bookingID)
}

// FindByReviewedUser returns the reviews received by one user.
func (r *Repository) FindByReviewedUser(ctx context.Context, userID int64) ([]*projection.Projection[*domain.Review], error) {
	return r.find(ctx, "reviewed_user_id = ?", userID)
}

// List returns every persisted review.
func (r *Repository) List(ctx context.Context) ([]*projection.Projection[*domain.Review], error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var records []reviewRecord
	if err := r.db.WithContext(ctx).Find(&records).Error; err != nil {
		return nil, err
	}
	return recordsToProjections(records), nil
}

// Delete removes a review by identifier.
func (r *Repository) Delete(ctx context.Context, id int64) error {
	if err := r.ensureDB(); err != nil {
		return err
	}
	result := r.db.WithContext(ctx).Delete(&reviewRecord{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ports.ErrNotFound
	}
	return nil
}

func (r *Repository) find(ctx context.Context, condition string, args ...any) ([]*projection.Projection[*domain.Review], error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var records []reviewRecord
	if err := r.db.WithContext(ctx).Where(condition, args...).Find(&records).Error; err != nil {
		return nil, err
	}
	return recordsToProjections(records), nil
}

func recordsToProjections(records []reviewRecord) []*projection.Projection[*domain.Review] {
	list := make([]*projection.Projection[*domain.Review], 0, len(records))
	for i := range records {
		list = append(list, toProjection(&records[i]))
	}
	return list
}

func toProjection(record *reviewRecord) *projection.Projection[*domain.Review] {
	if record == nil {
		return nil
	}
	review := &domain.Review{
		ID:             record.ID,
		BookingID:      record.BookingID,
		ReviewerID:     record.ReviewerID,
		ReviewedUserID: record.ReviewedUserID,
		Rating:         record.Rating,
		Comment:        record.Comment,
		CreatedAt:      record.CreatedAt,
	}
	return &projection.Projection[*domain.Review]{
		Entity:   review,
		Metadata: projection.Metadata{CreatedAt: record.CreatedAt, UpdatedAt: record.UpdatedAt},
	}
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres review repository not configured")
	}
	return nil
}
