package ports

import (
	"context"
	"errors"
)

var ErrOwnerMissing = errors.New("owner account does not exist")

// OwnerDirectory answers whether an owner account exists. Implemented by a thin
// adapter over the users context so pet registration can validate the relation.
type OwnerDirectory interface {
	OwnerExists(ctx context.Context, ownerID int64) (bool, error)
}
