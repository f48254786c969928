package pawsitserver

import "time"

// Transport models for the REST API. Field names follow the JSON contract,
// not the domain types.

// User is the wire representation of an account.
type User struct {
	ID          int64   `json:"id"`
	Email       string  `json:"email"`
	Name        string  `json:"name"`
	Role        string  `json:"role"`
	Password    string  `json:"password,omitempty"`
	Rating      float64 `json:"rating"`
	ReviewCount int     `json:"reviewCount"`
}

// Pet is the wire representation of a registered pet.
type Pet struct {
	ID      int64   `json:"id"`
	OwnerID int64   `json:"ownerId"`
	Name    string  `json:"name"`
	Type    string  `json:"type"`
	Breed   string  `json:"breed,omitempty"`
	Age     int     `json:"age,omitempty"`
	Weight  float64 `json:"weight,omitempty"`
}

// Booking is the wire representation of a pet-care engagement.
type Booking struct {
	ID          int64     `json:"id"`
	OwnerID     int64     `json:"ownerId"`
	SitterID    int64     `json:"sitterId"`
	PetIDs      []int64   `json:"petIds"`
	Status      string    `json:"status"`
	TotalAmount float64   `json:"totalAmount"`
	StartDate   time.Time `json:"startDate"`
	EndDate     time.Time `json:"endDate"`
	CreatedAt   time.Time `json:"createdAt,omitempty"`
}

// Payment is the wire representation of a booking charge.
type Payment struct {
	ID             int64   `json:"id"`
	BookingID      int64   `json:"bookingId"`
	Amount         float64 `json:"amount"`
	Status         string  `json:"status"`
	TransactionRef string  `json:"transactionRef,omitempty"`
}

// Review is the wire representation of a booking review.
type Review struct {
	ID             int64  `json:"id"`
	BookingID      int64  `json:"bookingId"`
	ReviewerID     int64  `json:"reviewerId"`
	ReviewedUserID int64  `json:"reviewedUserId"`
	Rating         int    `json:"rating"`
	Comment        string `json:"comment,omitempty"`
}

// Notification is the wire representation of a user notification.
type Notification struct {
	ID        int64          `json:"id"`
	UserID    int64          `json:"userId"`
	Type      string         `json:"type"`
	Message   string         `json:"message"`
	Data      map[string]any `json:"data,omitempty"`
	IsRead    bool           `json:"isRead"`
	CreatedAt time.Time      `json:"createdAt,omitempty"`
}

// DashboardSummary is the analytics rollup response.
type DashboardSummary struct {
	TotalUsers        int     `json:"totalUsers"`
	TotalBookings     int     `json:"totalBookings"`
	TotalPets         int     `json:"totalPets"`
	TotalPayments     int     `json:"totalPayments"`
	TotalReviews      int     `json:"totalReviews"`
	CompletedBookings int     `json:"completedBookings"`
	PendingBookings   int     `json:"pendingBookings"`
	TotalRevenue      float64 `json:"totalRevenue"`
	CompletionRate    float64 `json:"completionRate"`
}

// RatingSummary pairs an average rating with its review count.
type RatingSummary struct {
	AverageRating float64 `json:"averageRating"`
	TotalReviews  int     `json:"totalReviews"`
}

// SitterStat is one row of the sitter leaderboard.
type SitterStat struct {
	SitterID          int64   `json:"sitterId"`
	Name              string  `json:"name"`
	TotalBookings     int     `json:"totalBookings"`
	CompletedBookings int     `json:"completedBookings"`
	TotalReviews      int     `json:"totalReviews"`
	CompletionRate    float64 `json:"completionRate"`
	AverageRating     float64 `json:"averageRating"`
}

// PetBreakdown groups the pet population by headline type.
type PetBreakdown struct {
	Total           int     `json:"total"`
	Dogs            int     `json:"dogs"`
	Cats            int     `json:"cats"`
	Others          int     `json:"others"`
	DogPercentage   float64 `json:"dogPercentage"`
	CatPercentage   float64 `json:"catPercentage"`
	OtherPercentage float64 `json:"otherPercentage"`
}
