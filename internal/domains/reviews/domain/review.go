package domain

import (
	"errors"
	"time"
)

var (
	ErrInvalidBooking  = errors.New("booking id must be greater than zero")
	ErrInvalidReviewer = errors.New("reviewer id must be greater than zero")
	ErrInvalidReviewed = errors.New("reviewed user id must be greater than zero")
	ErrSelfReview      = errors.New("reviewer cannot review themselves")
	ErrInvalidRating   = errors.New("rating must be between 1 and 5")
)

// Review is a rating left by one booking participant about the other.
type Review struct {
	ID             int64
	BookingID      int64
	ReviewerID     int64
	ReviewedUserID int64
	Rating         int
	Comment        string
	CreatedAt      time.Time
}

// NewReview validates the invariants and builds a new Review.
func NewReview(id, bookingID, reviewerID, reviewedUserID int64, rating int, comment string) (*Review, error) {
	r := &Review{ID: id, Comment: comment}
	if err := r.assignBooking(bookingID); err != nil {
		return nil, err
	}
	if err := r.assignParties(reviewerID, reviewedUserID); err != nil {
		return nil, err
	}
	if err := r.SetRating(rating); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *Review) assignBooking(bookingID int64) error {
	if bookingID <= 0 {
		return ErrInvalidBooking
	}
	r.BookingID = bookingID
	return nil
}

func (r *Review) assignParties(reviewerID, reviewedUserID int64) error {
	if reviewerID <= 0 {
		return ErrInvalidReviewer
	}
	if reviewedUserID <= 0 {
		return ErrInvalidReviewed
	}
	if reviewerID == reviewedUserID {
		return ErrSelfReview
	}
	r.ReviewerID = reviewerID
	r.ReviewedUserID = reviewedUserID
	return nil
}

// SetRating validates and stores the star rating.
func (r *Review) SetRating(rating int) error {
	if rating < 1 || rating > 5 {
		return ErrInvalidRating
	}
	r.Rating = rating
	return nil
}

// SetComment stores the free-text comment. Empty comments are allowed.
func (r *Review) SetComment(comment string) {
	r.Comment = comment
}

// Validate re-applies core invariants for persistence.
func (r *Review) Validate() error {
	if err := r.assignBooking(r.BookingID); err != nil {
		return err
	}
	if err := r.assignParties(r.ReviewerID, r.ReviewedUserID); err != nil {
		return err
	}
	return r.SetRating(r.Rating)
}
