package postgres

import (
	"context"
	"errors"
	"log"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/pawsit/pawsit-server/internal/domains/notifications/domain"
	"github.com/pawsit/pawsit-server/internal/domains/notifications/ports"
	"github.com/pawsit/pawsit-server/internal/shared/projection"
)

var _ ports.Repository = (*Repository)(nil)

// Repository persists notifications in PostgreSQL using GORM-mapped columns.
type Repository struct {
	db *gorm.DB
}

// NewRepository wires a PostgreSQL-backed repository. The caller owns the DB lifecycle.
func NewRepository(db *gorm.DB) *Repository {
	repo := &Repository{db: db}
	if db != nil {
		if err := db.AutoMigrate(&notificationRecord{}); err != nil {
			log.Printf("postgres notification repository migration failed: %v", err)
		}
	}
	return repo
}

type notificationRecord struct {
	ID        int64          `gorm:"primaryKey;column:id"`
	UserID    int64          `gorm:"column:user_id;index"`
	Type      string         `gorm:"column:type;type:varchar(32);index"`
	Message   string         `gorm:"column:message"`
	Data      map[string]any `gorm:"column:data;serializer:json"`
	IsRead    bool           `gorm:"column:is_read;index"`
	CreatedAt time.Time      `gorm:"column:created_at"`
	UpdatedAt time.Time      `gorm:"column:updated_at"`
}

func (notificationRecord) TableName() string { return "notifications" }

func newNotificationRecord(n *domain.Notification) notificationRecord {
	return notificationRecord{
		ID:      n.ID,
		UserID:  n.UserID,
		Type:    string(n.Type),
		Message: n.Message,
		Data:    n.Data,
		IsRead:  n.IsRead,
	}
}

// Save inserts or updates a notification. New notifications receive a
// database-generated identifier.
func (r *Repository) Save(ctx context.Context, notification *domain.Notification) (*projection.Projection[*domain.Notification], error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if notification == nil {
		return nil, errors.New("cannot save nil notification")
	}
	record := newNotificationRecord(notification)
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "id"}},
			DoUpdates: clause.Assignments(map[string]any{
				"user_id":    record.UserID,
				"type":       record.Type,
				"message":    record.Message,
				"data":       record.Data,
				"is_read":    record.IsRead,
				"updated_at": gorm.Expr("NOW()"),
			}),
		}).Create(&record).Error
	if err != nil {
		return nil, err
	}
	notification.ID = record.ID
	return r.GetByID(ctx, record.ID)
}

// GetByID fetches a notification by identifier.
func (r *Repository) GetByID(ctx context.Context, id int64) (*projection.Projection[*domain.Notification], error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record notificationRecord
	if err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	return toProjection(&record), nil
}

// FindByUser returns every notification addressed to one user, newest first.
func (r *Repository) FindByUser(ctx context.Context, userID int64) ([]*projection.Projection[*domain.Notification], error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var records []notificationRecord
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&records).Error; err != nil {
		return nil, err
	}
	return recordsToProjections(records), nil
}

// FindUnreadByUser returns the user's unread notifications, newest first.
func (r *Repository) FindUnreadByUser(ctx context.Context, userID int64) ([]*projection.Projection[*domain.Notification], error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var records []notificationRecord
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND is_read = ?", userID, false).
		Order("created_at DESC").
		Find(&records).Error; err != nil {
		return nil, err
	}
	return recordsToProjections(records), nil
}

// List returns every persisted notification.
func (r *Repository) List(ctx context.Context) ([]*projection.Projection[*domain.Notification], error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var records []notificationRecord
	if err := r.db.WithContext(ctx).Find(&records).Error; err != nil {
		return nil, err
	}
	return recordsToProjections(records), nil
}

// Delete removes a notification by identifier.
func (r *Repository) Delete(ctx context.Context, id int64) error {
	if err := r.ensureDB(); err != nil {
		return err
	}
	result := r.db.WithContext(ctx).Delete(&notificationRecord{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ports.ErrNotFound
	}
	return nil
}

func recordsToProjections(records []notificationRecord) []*projection.Projection[*domain.Notification] {
	list := make([]*projection.Projection[*domain.Notification], 0, len(records))
	for i := range records {
		list = append(list, toProjection(&records[i]))
	}
	return list
}

func toProjection(record *notificationRecord) *projection.Projection[*domain.Notification] {
	if record == nil {
		return nil
	}
	notification := &domain.Notification{
		ID:        record.ID,
		UserID:    record.UserID,
		Type:      domain.Type(record.Type),
		Message:   record.Message,
		Data:      record.Data,
		IsRead:    record.IsRead,
		CreatedAt: record.CreatedAt,
	}
	return &projection.Projection[*domain.Notification]{
		Entity:   notification,
		Metadata: projection.Metadata{CreatedAt: record.CreatedAt, UpdatedAt: record.UpdatedAt},
	}
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres notification repository not configured")
	}
	return nil
}
