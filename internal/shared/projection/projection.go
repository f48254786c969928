package projection

import "time"

// Metadata captures persistence timestamps shared by projections.
type Metadata struct {
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Projection represents an aggregate view plus persistence metadata.
type Projection[T any] struct {
	Entity   T
	Metadata Metadata
}

// New wraps an aggregate with its persistence metadata.
func New[T any](entity T, createdAt, updatedAt time.Time) *Projection[T] {
	return &Projection[T]{
		Entity:   entity,
		Metadata: Metadata{CreatedAt: createdAt, UpdatedAt: updatedAt},
	}
}
