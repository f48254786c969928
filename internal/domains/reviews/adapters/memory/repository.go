package memory

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/pawsit/pawsit-server/internal/domains/reviews/domain"
	"github.com/pawsit/pawsit-server/internal/domains/reviews/ports"
	"github.com/pawsit/pawsit-server/internal/shared/projection"
)

var _ ports.Repository = (*Repository)(nil)

// Repository is an in-memory implementation used for demos/tests. It enforces
// the one-review-per-reviewer-per-booking rule the relational schema guarantees.
type Repository struct {
	mu      sync.RWMutex
	reviews map[int64]*storedReview
	nextID  int64
	now     func() time.Time
}

type storedReview struct {
	review   *domain.Review
	metadata projection.Metadata
}

// NewRepository constructs an empty in-memory store.
func NewRepository() *Repository {
	return &Repository{
		reviews: map[int64]*storedReview{},
		nextID:  1,
		now:     time.Now,
	}
}

// WithClock overrides the time source for deterministic testing.
func (r *Repository) WithClock(now func() time.Time) {
	if now != nil {
		r.now = now
	}
}

// Save inserts or replaces a review, assigning an identifier to new ones.
func (r *Repository) Save(_ context.Context, review *domain.Review) (*projection.Projection[*domain.Review], error) {
	if review == nil {
		return nil, errors.New("cannot save nil review")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for id, entry := range r.reviews {
		if id != review.ID &&
			entry.review.BookingID == review.BookingID &&
			entry.review.ReviewerID == review.ReviewerID {
			return nil, ports.ErrDuplicateReview
		}
	}

	if review.ID == 0 {
		review.ID = r.nextID
		r.nextID++
	}

	entry, ok := r.reviews[review.ID]
	timestamp := r.now()
	metadata := projection.Metadata{CreatedAt: timestamp, UpdatedAt: timestamp}
	if ok {
		metadata.CreatedAt = entry.metadata.CreatedAt
	}
	if review.CreatedAt.IsZero() {
		review.CreatedAt = metadata.CreatedAt
	}

	stored := &storedReview{review: cloneReview(review), metadata: metadata}
	r.reviews[review.ID] = stored
	return projectionCopy(stored), nil
}

// GetByID fetches a review if present.
func (r *Repository) GetByID(_ context.Context, id int64) (*projection.Projection[*domain.Review], error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	entry, ok := r.reviews[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	return projectionCopy(entry), nil
}

// FindByBooking returns the reviews attached to one booking.
func (r *Repository) FindByBooking(_ context.Context, bookingID int64) ([]*projection.Projection[*domain.Review], error) {
	return r.filter(func(rev *domain.Review) bool { return rev.BookingID == bookingID })
}

// FindByReviewedUser returns the reviews received by one user.
func (r *Repository) FindByReviewedUser(_ context.Context, userID int64) ([]*projection.Projection[*domain.Review], error) {
	return r.filter(func(rev *domain.Review) bool { return rev.ReviewedUserID == userID })
}

// List returns all reviews.
func (r *Repository) List(_ context.Context) ([]*projection.Projection[*domain.Review], error) {
	return r.filter(func(*domain.Review) bool { return true })
}

// Delete removes a review.
func (r *Repository) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.reviews[id]; !ok {
		return ports.ErrNotFound
	}
	delete(r.reviews, id)
	return nil
}

func (r *Repository) filter(keep func(*domain.Review) bool) ([]*projection.Projection[*domain.Review], error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var list []*projection.Projection[*domain.Review]
	for _, entry := range r.reviews {
		if keep(entry.review) {
			list = append(list, projectionCopy(entry))
		}
	}
	return list, nil
}

func projectionCopy(entry *storedReview) *projection.Projection[*domain.Review] {
	return &projection.Projection[*domain.Review]{
		Entity:   cloneReview(entry.review),
		Metadata: entry.metadata,
	}
}

func cloneReview(rev *domain.Review) *domain.Review {
	if rev == nil {
		return nil
	}
	clone := *rev
	return &clone
}
