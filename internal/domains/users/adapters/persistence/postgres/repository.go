package postgres

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/pawsit/pawsit-server/internal/domains/users/domain"
	"github.com/pawsit/pawsit-server/internal/domains/users/ports"
	"github.com/pawsit/pawsit-server/internal/shared/projection"
)

var _ ports.Repository = (*Repository)(nil)

// Repository persists users in PostgreSQL using GORM-mapped columns.
type Repository struct {
	db *gorm.DB
}

// NewRepository wires a PostgreSQL-backed repository. The caller owns the DB lifecycle.
func NewRepository(db *gorm.DB) *Repository {
	repo := &Repository{db: db}
	if db != nil {
		if err := db.AutoMigrate(&userRecord{}); err != nil {
			log.Printf("postgres user repository migration failed: %v", err)
		}
	}
	return repo
}

type userRecord struct {
	ID          int64     `gorm:"primaryKey;column:id"`
	Email       string    `gorm:"column:email;uniqueIndex"`
	Name        string    `gorm:"column:name"`
	Role        string    `gorm:"column:role;type:varchar(16);index"`
	Password    string    `gorm:"column:password_hash"`
	Rating      float64   `gorm:"column:rating"`
	ReviewCount int       `gorm:"column:review_count"`
	CreatedAt   time.Time `gorm:"column:created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at"`
}

func (userRecord) TableName() string { return "users" }

func newUserRecord(u *domain.User) userRecord {
	return userRecord{
		ID:          u.ID,
		Email:       u.Email,
		Name:        u.Name,
		Role:        string(u.Role),
		Password:    u.Password,
		Rating:      u.Rating,
		ReviewCount: u.ReviewCount,
	}
}

// Save inserts or updates a user aggregate. Duplicate emails surface as
// ports.ErrDuplicateEmail via the unique index.
func (r *Repository) Save(ctx context.Context, user *domain.User) (*projection.Projection[*domain.User], error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if user == nil {
		return nil, errors.New("cannot save nil user")
	}
	record := newUserRecord(user)
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "id"}},
			DoUpdates: clause.Assignments(map[string]any{
				"email":         record.Email,
				"name":          record.Name,
				"role":          record.Role,
				"password_hash": record.Password,
				"rating":        record.Rating,
				"review_count":  record.ReviewCount,
				"updated_at":    gorm.Expr("NOW()"),
			}),
		}).Create(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ports.ErrDuplicateEmail
		}
		return nil, err
	}
	user.ID = record.ID
	return r.GetByID(ctx, record.ID)
}

// GetByID fetches a user by identifier.
func (r *Repository) GetByID(ctx context.Context, id int64) (*projection.Projection[*domain.User], error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record userRecord
	if err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	return toProjection(&record), nil
}

// GetByEmail fetches a user by its unique email (case insensitive).
func (r *Repository) GetByEmail(ctx context.Context, email string) (*projection.Projection[*domain.User], error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record userRecord
	if err := r.db.WithContext(ctx).First(&record, "lower(email) = ?", strings.ToLower(email)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	return toProjection(&record), nil
}

// FindByRole returns users holding the requested role.
func (r *Repository) FindByRole(ctx context.Context, role domain.Role) ([]*projection.Projection[*domain.User], error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var records []userRecord
	if err := r.db.WithContext(ctx).Where("role = ?", string(role)).Find(&records).Error; err != nil {
		return nil, err
	}
	return recordsToProjections(records), nil
}

// List returns every persisted user.
func (r *Repository) List(ctx context.Context) ([]*projection.Projection[*domain.User], error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var records []userRecord
	if err := r.db.WithContext(ctx).Find(&records).Error; err != nil {
		return nil, err
	}
	return recordsToProjections(records), nil
}

// Delete removes a user by identifier.
func (r *Repository) Delete(ctx context.Context, id int64) error {
	if err := r.ensureDB(); err != nil {
		return err
	}
	result := r.db.WithContext(ctx).Delete(&userRecord{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ports.ErrNotFound
	}
	return nil
}

func recordsToProjections(records []userRecord) []*projection.Projection[*domain.User] {
	list := make([]*projection.Projection[*domain.User], 0, len(records))
	for i := range records {
		list = append(list, toProjection(&records[i]))
	}
	return list
}

func toProjection(record *userRecord) *projection.Projection[*domain.User] {
	if record == nil {
		return nil
	}
	user := &domain.User{
		ID:          record.ID,
		Email:       record.Email,
		Name:        record.Name,
		Role:        domain.Role(record.Role),
		Password:    record.Password,
		Rating:      record.Rating,
		ReviewCount: record.ReviewCount,
	}
	return &projection.Projection[*domain.User]{
		Entity:   user,
		Metadata: projection.Metadata{CreatedAt: record.CreatedAt, UpdatedAt: record.UpdatedAt},
	}
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres user repository not configured")
	}
	return nil
}
