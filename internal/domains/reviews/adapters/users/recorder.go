package users

import (
	"context"
	"errors"

	"github.com/pawsit/pawsit-server/internal/domains/reviews/ports"
	userports "github.com/pawsit/pawsit-server/internal/domains/users/ports"
)

var _ ports.RatingRecorder = (*Recorder)(nil)

// Recorder folds accepted reviews into user ratings via the users context.
type Recorder struct {
	users userports.Service
}

// NewRecorder wires the recorder over the users service.
func NewRecorder(users userports.Service) *Recorder {
	return &Recorder{users: users}
}

// RecordReview updates the reviewed user's running average.
func (r *Recorder) RecordReview(ctx context.Context, userID int64, rating int) error {
	if r == nil || r.users == nil {
		return errors.New("rating recorder not configured")
	}
	return r.users.RecordReview(ctx, userID, rating)
}
