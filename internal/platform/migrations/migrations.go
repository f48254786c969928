package migrations

import (
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

// Run applies the schema for the bounded contexts. Intended to replace adapter-level automigrate.
func Run(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	return db.AutoMigrate(
		&userRecord{},
		&sessionRecord{},
		&petRecord{},
		&bookingRecord{},
		&paymentRecord{},
		&reviewRecord{},
		&notificationRecord{},
	)
}

// User schema mirrors the users Postgres adapter.
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

// Session schema mirrors the session store.
type sessionRecord struct {
	Token     string     `gorm:"primaryKey;column:token;size:512"`
	Email     string     `gorm:"column:email;index"`
	ExpiresAt *time.Time `gorm:"column:expires_at;index"`
	CreatedAt time.Time  `gorm:"column:created_at;index"`
	UpdatedAt time.Time  `gorm:"column:updated_at;index"`
}

func (sessionRecord) TableName() string { return "sessions" }

// Pet schema mirrors the pets Postgres adapter.
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

// Booking schema mirrors the bookings Postgres adapter.
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

// Payment schema mirrors the payments Postgres adapter.
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

// Review schema mirrors the reviews Postgres adapter.
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

// Notification schema mirrors the notifications Postgres adapter.
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
