package postgres

import (
	"context"
	"errors"
	"log"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/pawsit/pawsit-server/internal/domains/pets/domain"
	"github.com/pawsit/pawsit-server/internal/domains/pets/ports"
	"github.com/pawsit/pawsit-server/internal/shared/projection"
)

var _ ports.Repository = (*Repository)(nil)

// Repository persists pets in PostgreSQL using GORM-mapped columns.
type Repository struct {
	db *gorm.DB
}

// NewRepository wires a PostgreSQL-backed repository. The caller owns the DB lifecycle.
func NewRepository(db *gorm.DB) *Repository {
	repo := &Repository{db: db}
	if db != nil {
		if err := db.AutoMigrate(&petRecord{}); err != nil {
			log.Printf("postgres pet repository migration failed: %v", err)
		}
	}
	return repo
}

type petRecord struct {
	ID        int64     `gorm:"primaryKey;column:id"`
	OwnerID   int64     `gorm:"column:owner_id;index"`
	Name      string    `gorm:"column:name"`
	Type      string    `gorm:"column:type;type:varchar(16);index"`
	Breed     string    `gorm:"column:breed"`
	Age       int       `gorm:"column:age"`
	WeightKg  float64   `gorm:"column:weight_kg"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (petRecord) TableName() string { return "pets" }

func newPetRecord(p *domain.Pet) petRecord {
	return petRecord{
		ID:       p.ID,
		OwnerID:  p.OwnerID,
		Name:     p.Name,
		Type:     string(p.Type),
		Breed:    p.Breed,
		Age:      p.Age,
		WeightKg: p.WeightKg,
	}
}

// Save inserts or updates a pet aggregate.
func (r *Repository) Save(ctx context.Context, pet *domain.Pet) (*projection.Projection[*domain.Pet], error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if pet == nil {
		return nil, errors.New("cannot save nil pet")
	}
	record := newPetRecord(pet)
	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "id"}},
			DoUpdates: clause.Assignments(map[string]any{
				"owner_id":   record.OwnerID,
				"name":       record.Name,
				"type":       record.Type,
				"breed":      record.Breed,
				"age":        record.Age,
				"weight_kg":  record.WeightKg,
				"updated_at": gorm.Expr("NOW()"),
			}),
		}).Create(&record).Error; err != nil {
		return nil, err
	}
	pet.ID = record.ID
	return r.GetByID(ctx, record.ID)
}

// GetByID fetches a pet by identifier.
func (r *Repository) GetByID(ctx context.Context, id int64) (*projection.Projection[*domain.Pet], error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record petRecord
	if err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	return toProjection(&record), nil
}

// FindByOwner returns pets linked to the owner account.
func (r *Repository) FindByOwner(ctx context.Context, ownerID int64) ([]*projection.Projection[*domain.Pet], error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var records []petRecord
	if err := r.db.WithContext(ctx).Where("owner_id = ?", ownerID).Find(&records).Error; err != nil {
		return nil, err
	}
	return recordsToProjections(records), nil
}

// List returns every persisted pet.
func (r *Repository) List(ctx context.Context) ([]*projection.Projection[*domain.Pet], error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var records []petRecord
	if err := r.db.WithContext(ctx).Find(&records).Error; err != nil {
		return nil, err
	}
	return recordsToProjections(records), nil
}

// Delete removes a pet by identifier.
func (r *Repository) Delete(ctx context.Context, id int64) error {
	if err := r.ensureDB(); err != nil {
		return err
	}
	result := r.db.WithContext(ctx).Delete(&petRecord{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ports.ErrNotFound
	}
	return nil
}

func recordsToProjections(records []petRecord) []*projection.Projection[*domain.Pet] {
	list := make([]*projection.Projection[*domain.Pet], 0, len(records))
	for i := range records {
		list = append(list, toProjection(&records[i]))
	}
	return list
}

func toProjection(record *petRecord) *projection.Projection[*domain.Pet] {
	if record == nil {
		return nil
	}
	pet := &domain.Pet{
		ID:       record.ID,
		OwnerID:  record.OwnerID,
		Name:     record.Name,
		Type:     domain.Type(record.Type),
		Breed:    record.Breed,
		Age:      record.Age,
		WeightKg: record.WeightKg,
	}
	return &projection.Projection[*domain.Pet]{
		Entity:   pet,
		Metadata: projection.Metadata{CreatedAt: record.CreatedAt, UpdatedAt: record.UpdatedAt},
	}
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres pet repository not configured")
	}
	return nil
}
