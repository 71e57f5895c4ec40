package repository

import (
	"context"

	"github.com/jbweber/homelab/cornerstone/internal/crud"
)

// Repository is a crud.Persistence backed by database/sql.
type Repository[T any, ID comparable] interface {
	crud.Persistence[T, ID]

	// ExistsByID checks if an entity exists by its ID
	ExistsByID(ctx context.Context, id ID) (bool, error)

	// DeleteByID removes an entity by its ID
	DeleteByID(ctx context.Context, id ID) error
}
